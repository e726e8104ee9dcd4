package models

import (
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
)

type Role string

const (
	RoleIndividual Role = "individual"
	RoleCompany    Role = "company"
)

var ErrUnknownRole = errors.New("unknown profile role")

func ParseRole(s string) (Role, error) {
	switch Role(strings.TrimSpace(s)) {
	case RoleIndividual:
		return RoleIndividual, nil
	case RoleCompany:
		return RoleCompany, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
}

type SponsorshipRef struct {
	Type EntityType `bson:"type" json:"type"`
	Name string     `bson:"name" json:"name"`
}

// ProfileBase holds the fields shared by every profile variant.
type ProfileBase struct {
	ID                string           `bson:"_id,omitempty" json:"id"`
	Role              Role             `bson:"role" json:"role"`
	Email             string           `bson:"email" json:"email" validate:"omitempty,email"`
	Phone             string           `bson:"phone,omitempty" json:"phone,omitempty"`
	IsActive          bool             `bson:"isActive" json:"isActive"`
	MembershipStatus  string           `bson:"membershipStatus,omitempty" json:"membershipStatus,omitempty"`
	MembershipEndDate string           `bson:"membershipEndDate,omitempty" json:"membershipEndDate,omitempty"`
	Sponsorships      []SponsorshipRef `bson:"sponsorships,omitempty" json:"sponsorships,omitempty"`
	CreatedAt         string           `bson:"createdAt,omitempty" json:"createdAt"`
	UpdatedAt         string           `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// ProfileDetails is the role specific payload: IndividualDetails or
// CompanyDetails.
type ProfileDetails interface {
	Role() Role
}

type IndividualDetails struct {
	FirstName string `bson:"firstName" json:"firstName" validate:"required"`
	LastName  string `bson:"lastName" json:"lastName" validate:"required"`
	City      string `bson:"city,omitempty" json:"city,omitempty"`
}

func (IndividualDetails) Role() Role { return RoleIndividual }

type CompanyDetails struct {
	CompanyName     string     `bson:"companyName" json:"companyName" validate:"required"`
	CompanyCategory string     `bson:"companyCategory,omitempty" json:"companyCategory,omitempty"`
	TaxOffice       string     `bson:"taxOffice,omitempty" json:"taxOffice,omitempty"`
	TaxNumber       string     `bson:"taxNumber,omitempty" json:"taxNumber,omitempty"`
	AddressCountry  string     `bson:"addressCountry,omitempty" json:"addressCountry,omitempty"`
	AddressCity     string     `bson:"addressCity,omitempty" json:"addressCity,omitempty"`
	AddressDistrict string     `bson:"addressDistrict,omitempty" json:"addressDistrict,omitempty"`
	Address         string     `bson:"address,omitempty" json:"address,omitempty"`
	LogoURL         string     `bson:"logoUrl,omitempty" json:"logoUrl,omitempty" validate:"omitempty,url"`
	Website         string     `bson:"website,omitempty" json:"website,omitempty" validate:"omitempty,url"`
	Description     string     `bson:"description,omitempty" json:"description,omitempty"`
	VehicleTypes    StringList `bson:"vehicleTypes,omitempty" json:"vehicleTypes,omitempty"`
	AuthDocs        StringList `bson:"authDocs,omitempty" json:"authDocs,omitempty"`
}

func (CompanyDetails) Role() Role { return RoleCompany }

// UserProfile is stored flat in the users collection; Details carries the
// variant selected by Role.
type UserProfile struct {
	ProfileBase
	Details ProfileDetails
}

// ProfileFromDocument decodes a normalized users document, selecting the
// variant by its role field.
func ProfileFromDocument(doc bson.M) (UserProfile, error) {
	var p UserProfile
	if err := decodeDoc(doc, &p.ProfileBase); err != nil {
		return UserProfile{}, err
	}

	switch p.Role {
	case RoleIndividual:
		var d IndividualDetails
		if err := decodeDoc(doc, &d); err != nil {
			return UserProfile{}, err
		}
		p.Details = d
	case RoleCompany:
		var d CompanyDetails
		if err := decodeDoc(doc, &d); err != nil {
			return UserProfile{}, err
		}
		p.Details = d
	default:
		return UserProfile{}, fmt.Errorf("%w: %q (user %s)", ErrUnknownRole, p.Role, p.ID)
	}
	return p, nil
}

func (p UserProfile) Individual() (IndividualDetails, bool) {
	d, ok := p.Details.(IndividualDetails)
	return d, ok
}

func (p UserProfile) Company() (CompanyDetails, bool) {
	d, ok := p.Details.(CompanyDetails)
	return d, ok
}

// DisplayName is the company name for companies and the full name for
// individuals.
func (p UserProfile) DisplayName() string {
	switch d := p.Details.(type) {
	case CompanyDetails:
		return d.CompanyName
	case IndividualDetails:
		return strings.TrimSpace(d.FirstName + " " + d.LastName)
	default:
		return p.Email
	}
}

func (p UserProfile) Validate() error {
	if p.Details == nil {
		return fmt.Errorf("%w: %q", ErrUnknownRole, p.Role)
	}
	if err := validate.Struct(p.ProfileBase); err != nil {
		return err
	}
	return validate.Struct(p.Details)
}

// Document flattens the profile for storage. The role always follows the
// details variant.
func (p UserProfile) Document() (bson.M, error) {
	if p.Details == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRole, p.Role)
	}
	p.Role = p.Details.Role()
	return mergeDocuments(p.ProfileBase, p.Details)
}

func (p UserProfile) MarshalJSON() ([]byte, error) {
	return mergeJSON(p.ProfileBase, p.Details)
}
