package models

import "errors"

var ErrOfferWithoutPrice = errors.New("at least one price is required")

// TransportOffer is a priced route offered by a carrier.
type TransportOffer struct {
	ID                 string   `bson:"_id,omitempty" json:"id"`
	UserID             string   `bson:"userId" json:"userId" validate:"required"`
	CompanyName        string   `bson:"companyName,omitempty" json:"companyName,omitempty"`
	OriginCountry      string   `bson:"originCountry,omitempty" json:"originCountry,omitempty"`
	OriginCity         string   `bson:"originCity" json:"originCity" validate:"required"`
	DestinationCountry string   `bson:"destinationCountry,omitempty" json:"destinationCountry,omitempty"`
	DestinationCity    string   `bson:"destinationCity" json:"destinationCity" validate:"required"`
	VehicleType        string   `bson:"vehicleType,omitempty" json:"vehicleType,omitempty"`
	DistanceKm         float64  `bson:"distanceKm,omitempty" json:"distanceKm,omitempty" validate:"gte=0"`
	PriceTRY           *float64 `bson:"priceTRY,omitempty" json:"priceTRY,omitempty" validate:"omitempty,gte=0"`
	PriceUSD           *float64 `bson:"priceUSD,omitempty" json:"priceUSD,omitempty" validate:"omitempty,gte=0"`
	PriceEUR           *float64 `bson:"priceEUR,omitempty" json:"priceEUR,omitempty" validate:"omitempty,gte=0"`
	Notes              string   `bson:"notes,omitempty" json:"notes,omitempty"`
	PostedAt           string   `bson:"postedAt,omitempty" json:"postedAt"`
	IsActive           bool     `bson:"isActive" json:"isActive"`
}

func (o TransportOffer) Validate() error {
	if err := validate.Struct(o); err != nil {
		return err
	}
	if o.PriceTRY == nil && o.PriceUSD == nil && o.PriceEUR == nil {
		return ErrOfferWithoutPrice
	}
	return nil
}
