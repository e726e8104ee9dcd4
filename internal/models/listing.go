package models

import (
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
)

type FreightType string

const (
	FreightCommercial   FreightType = "Ticari"
	FreightHousehold    FreightType = "Evden Eve"
	FreightEmptyVehicle FreightType = "Boş Araç"
)

var ErrUnknownFreightType = errors.New("unknown freight type")

func ParseFreightType(s string) (FreightType, error) {
	switch FreightType(strings.TrimSpace(s)) {
	case FreightCommercial:
		return FreightCommercial, nil
	case FreightHousehold:
		return FreightHousehold, nil
	case FreightEmptyVehicle:
		return FreightEmptyVehicle, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFreightType, s)
	}
}

type ListingBase struct {
	ID                  string      `bson:"_id,omitempty" json:"id"`
	UserID              string      `bson:"userId" json:"userId" validate:"required"`
	PostedBy            string      `bson:"postedBy,omitempty" json:"postedBy,omitempty"`
	FreightType         FreightType `bson:"freightType" json:"freightType"`
	OriginCountry       string      `bson:"originCountry,omitempty" json:"originCountry,omitempty"`
	OriginCity          string      `bson:"originCity" json:"originCity" validate:"required"`
	OriginDistrict      string      `bson:"originDistrict,omitempty" json:"originDistrict,omitempty"`
	DestinationCountry  string      `bson:"destinationCountry,omitempty" json:"destinationCountry,omitempty"`
	DestinationCity     string      `bson:"destinationCity" json:"destinationCity" validate:"required"`
	DestinationDistrict string      `bson:"destinationDistrict,omitempty" json:"destinationDistrict,omitempty"`
	LoadingDate         string      `bson:"loadingDate,omitempty" json:"loadingDate,omitempty"`
	Description         string      `bson:"description,omitempty" json:"description,omitempty"`
	ContactPhone        string      `bson:"contactPhone,omitempty" json:"contactPhone,omitempty"`
	PostedAt            string      `bson:"postedAt,omitempty" json:"postedAt"`
	IsActive            bool        `bson:"isActive" json:"isActive"`
}

// FreightDetails is the payload selected by freightType.
type FreightDetails interface {
	FreightType() FreightType
}

// CommercialFreight is a "Ticari" load.
type CommercialFreight struct {
	CargoType       string  `bson:"cargoType" json:"cargoType" validate:"required"`
	CargoWeight     float64 `bson:"cargoWeight,omitempty" json:"cargoWeight,omitempty" validate:"gte=0"`
	CargoWeightUnit string  `bson:"cargoWeightUnit,omitempty" json:"cargoWeightUnit,omitempty" validate:"omitempty,oneof=kg ton"`
	VehicleNeeded   string  `bson:"vehicleNeeded,omitempty" json:"vehicleNeeded,omitempty"`
	LoadingType     string  `bson:"loadingType,omitempty" json:"loadingType,omitempty"`
	IsContinuous    bool    `bson:"isContinuous" json:"isContinuous"`
}

func (CommercialFreight) FreightType() FreightType { return FreightCommercial }

// HouseholdFreight is an "Evden Eve" move.
type HouseholdFreight struct {
	ResidenceType    string `bson:"residenceType" json:"residenceType" validate:"required"`
	Floor            int    `bson:"floor" json:"floor"`
	HasElevator      bool   `bson:"hasElevator" json:"hasElevator"`
	ItemsDescription string `bson:"itemsDescription,omitempty" json:"itemsDescription,omitempty"`
	NeedsPacking     bool   `bson:"needsPacking" json:"needsPacking"`
}

func (HouseholdFreight) FreightType() FreightType { return FreightHousehold }

// EmptyVehicle advertises free capacity ("Boş Araç").
type EmptyVehicle struct {
	VehicleType   string     `bson:"vehicleType" json:"vehicleType" validate:"required"`
	CapacityTons  float64    `bson:"capacityTons,omitempty" json:"capacityTons,omitempty" validate:"gte=0"`
	AvailableFrom string     `bson:"availableFrom,omitempty" json:"availableFrom,omitempty"`
	ServiceTypes  StringList `bson:"serviceTypes,omitempty" json:"serviceTypes,omitempty"`
}

func (EmptyVehicle) FreightType() FreightType { return FreightEmptyVehicle }

type Listing struct {
	ListingBase
	Details FreightDetails
}

// ListingFromDocument decodes a normalized listings document.
func ListingFromDocument(doc bson.M) (Listing, error) {
	var l Listing
	if err := decodeDoc(doc, &l.ListingBase); err != nil {
		return Listing{}, err
	}

	switch l.FreightType {
	case FreightCommercial:
		var d CommercialFreight
		if err := decodeDoc(doc, &d); err != nil {
			return Listing{}, err
		}
		l.Details = d
	case FreightHousehold:
		var d HouseholdFreight
		if err := decodeDoc(doc, &d); err != nil {
			return Listing{}, err
		}
		l.Details = d
	case FreightEmptyVehicle:
		var d EmptyVehicle
		if err := decodeDoc(doc, &d); err != nil {
			return Listing{}, err
		}
		l.Details = d
	default:
		return Listing{}, fmt.Errorf("%w: %q (listing %s)", ErrUnknownFreightType, l.FreightType, l.ID)
	}
	return l, nil
}

func (l Listing) Validate() error {
	if l.Details == nil {
		return fmt.Errorf("%w: %q", ErrUnknownFreightType, l.FreightType)
	}
	if err := validate.Struct(l.ListingBase); err != nil {
		return err
	}
	return validate.Struct(l.Details)
}

func (l Listing) Document() (bson.M, error) {
	if l.Details == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFreightType, l.FreightType)
	}
	l.FreightType = l.Details.FreightType()
	return mergeDocuments(l.ListingBase, l.Details)
}

func (l Listing) MarshalJSON() ([]byte, error) {
	return mergeJSON(l.ListingBase, l.Details)
}
