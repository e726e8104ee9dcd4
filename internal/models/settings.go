package models

// Setting is implemented by the admin managed lookup records. UniqueField
// names the field that must be unique within its collection, or "" when
// duplicates are allowed.
type Setting interface {
	UniqueField() string
	UniqueValue() string
	Validate() error
}

type VehicleTypeSetting struct {
	ID        string `bson:"_id,omitempty" json:"id"`
	Name      string `bson:"name" json:"name" validate:"required"`
	Category  string `bson:"category,omitempty" json:"category,omitempty"`
	IsActive  bool   `bson:"isActive" json:"isActive"`
	CreatedAt string `bson:"createdAt,omitempty" json:"createdAt"`
}

func (s VehicleTypeSetting) UniqueField() string { return "name" }
func (s VehicleTypeSetting) UniqueValue() string { return s.Name }
func (s VehicleTypeSetting) Validate() error     { return validate.Struct(s) }

type CargoTypeSetting struct {
	ID        string `bson:"_id,omitempty" json:"id"`
	Name      string `bson:"name" json:"name" validate:"required"`
	Category  string `bson:"category,omitempty" json:"category,omitempty"`
	IsActive  bool   `bson:"isActive" json:"isActive"`
	CreatedAt string `bson:"createdAt,omitempty" json:"createdAt"`
}

func (s CargoTypeSetting) UniqueField() string { return "name" }
func (s CargoTypeSetting) UniqueValue() string { return s.Name }
func (s CargoTypeSetting) Validate() error     { return validate.Struct(s) }

// AuthDocSetting is a document type users must (or may) upload.
type AuthDocSetting struct {
	ID          string `bson:"_id,omitempty" json:"id"`
	Name        string `bson:"name" json:"name" validate:"required"`
	RequiredFor string `bson:"requiredFor" json:"requiredFor" validate:"oneof=individual company both"`
	IsRequired  bool   `bson:"isRequired" json:"isRequired"`
	IsActive    bool   `bson:"isActive" json:"isActive"`
	CreatedAt   string `bson:"createdAt,omitempty" json:"createdAt"`
}

func (s AuthDocSetting) UniqueField() string { return "name" }
func (s AuthDocSetting) UniqueValue() string { return s.Name }
func (s AuthDocSetting) Validate() error     { return validate.Struct(s) }

type TransportTypeSetting struct {
	ID          string `bson:"_id,omitempty" json:"id"`
	Name        string `bson:"name" json:"name" validate:"required"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
	IsActive    bool   `bson:"isActive" json:"isActive"`
	CreatedAt   string `bson:"createdAt,omitempty" json:"createdAt"`
}

func (s TransportTypeSetting) UniqueField() string { return "name" }
func (s TransportTypeSetting) UniqueValue() string { return s.Name }
func (s TransportTypeSetting) Validate() error     { return validate.Struct(s) }

// MembershipSetting is a purchasable membership package.
type MembershipSetting struct {
	ID           string     `bson:"_id,omitempty" json:"id"`
	Name         string     `bson:"name" json:"name" validate:"required"`
	DurationDays int        `bson:"durationDays" json:"durationDays" validate:"gt=0"`
	Price        float64    `bson:"price" json:"price" validate:"gte=0"`
	Currency     string     `bson:"currency" json:"currency" validate:"oneof=TRY USD EUR"`
	Features     StringList `bson:"features,omitempty" json:"features,omitempty"`
	IsActive     bool       `bson:"isActive" json:"isActive"`
	CreatedAt    string     `bson:"createdAt,omitempty" json:"createdAt"`
}

func (s MembershipSetting) UniqueField() string { return "name" }
func (s MembershipSetting) UniqueValue() string { return s.Name }
func (s MembershipSetting) Validate() error     { return validate.Struct(s) }

type AnnouncementSetting struct {
	ID        string `bson:"_id,omitempty" json:"id"`
	Title     string `bson:"title" json:"title" validate:"required"`
	Content   string `bson:"content" json:"content"`
	Audience  string `bson:"audience" json:"audience" validate:"oneof=all individual company"`
	StartDate string `bson:"startDate,omitempty" json:"startDate,omitempty"`
	EndDate   string `bson:"endDate,omitempty" json:"endDate,omitempty"`
	IsActive  bool   `bson:"isActive" json:"isActive"`
	CreatedAt string `bson:"createdAt,omitempty" json:"createdAt"`
}

// Announcements may repeat titles.
func (s AnnouncementSetting) UniqueField() string { return "" }
func (s AnnouncementSetting) UniqueValue() string { return "" }
func (s AnnouncementSetting) Validate() error     { return validate.Struct(s) }
