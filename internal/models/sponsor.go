package models

import (
	"fmt"
	"strings"
)

type EntityType string

const (
	EntityCountry EntityType = "country"
	EntityCity    EntityType = "city"
)

func ParseEntityType(s string) (EntityType, error) {
	switch EntityType(strings.TrimSpace(s)) {
	case EntityCountry:
		return EntityCountry, nil
	case EntityCity:
		return EntityCity, nil
	default:
		return "", fmt.Errorf("unknown sponsorship target %q", s)
	}
}

// Sponsor is a paid placement of a company on a country or city page.
// Company display fields are copied at write time.
type Sponsor struct {
	ID          string     `bson:"_id,omitempty" json:"id"`
	CompanyID   string     `bson:"companyId" json:"companyId" validate:"required"`
	CompanyName string     `bson:"companyName" json:"companyName"`
	CompanyLogo string     `bson:"companyLogo,omitempty" json:"companyLogo,omitempty"`
	CompanyLink string     `bson:"companyLink,omitempty" json:"companyLink,omitempty"`
	EntityType  EntityType `bson:"entityType" json:"entityType" validate:"oneof=country city"`
	EntityName  string     `bson:"entityName" json:"entityName" validate:"required"`
	StartDate   string     `bson:"startDate,omitempty" json:"startDate"`
	EndDate     string     `bson:"endDate,omitempty" json:"endDate,omitempty"`
	IsActive    bool       `bson:"isActive" json:"isActive"`
	CreatedAt   string     `bson:"createdAt,omitempty" json:"createdAt"`
}

func (s Sponsor) Validate() error { return validate.Struct(s) }
