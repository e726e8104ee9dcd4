package models

// DirectoryContact is a manually entered lead that is not a platform user
// yet.
type DirectoryContact struct {
	ID          string `bson:"_id,omitempty" json:"id"`
	CompanyName string `bson:"companyName" json:"companyName" validate:"required"`
	ContactName string `bson:"contactName,omitempty" json:"contactName,omitempty"`
	Phone       string `bson:"phone,omitempty" json:"phone,omitempty"`
	Email       string `bson:"email,omitempty" json:"email,omitempty" validate:"omitempty,email"`
	City        string `bson:"city,omitempty" json:"city,omitempty"`
	Country     string `bson:"country,omitempty" json:"country,omitempty"`
	Category    string `bson:"category,omitempty" json:"category,omitempty"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
	IsActive    bool   `bson:"isActive" json:"isActive"`
	CreatedAt   string `bson:"createdAt,omitempty" json:"createdAt"`
	UpdatedAt   string `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

func (c DirectoryContact) Validate() error { return validate.Struct(c) }
