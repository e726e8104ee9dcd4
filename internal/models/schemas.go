package models

import "github.com/issever22/nakliyeciDunyasi-sub001/internal/normalize"

// Conversion schemas, one per stored entity.
var (
	UserProfileSchema = normalize.Schema{
		Timestamps:         []string{"createdAt"},
		OptionalTimestamps: []string{"updatedAt", "membershipEndDate"},
		DefaultTrue:        []string{"isActive"},
	}
	ListingSchema = normalize.Schema{
		Timestamps:         []string{"postedAt"},
		OptionalTimestamps: []string{"loadingDate", "availableFrom"},
		DefaultTrue:        []string{"isActive"},
	}
	TransportOfferSchema = normalize.Schema{
		Timestamps:  []string{"postedAt"},
		DefaultTrue: []string{"isActive"},
	}
	SponsorSchema = normalize.Schema{
		Timestamps:         []string{"createdAt", "startDate"},
		OptionalTimestamps: []string{"endDate"},
		DefaultTrue:        []string{"isActive"},
	}
	MessageSchema = normalize.Schema{
		Timestamps: []string{"createdAt"},
	}
	NoteSchema = normalize.Schema{
		Timestamps: []string{"createdAt"},
	}
	DirectoryContactSchema = normalize.Schema{
		Timestamps:         []string{"createdAt"},
		OptionalTimestamps: []string{"updatedAt"},
		DefaultTrue:        []string{"isActive"},
	}
	MembershipRequestSchema = normalize.Schema{
		Timestamps:         []string{"createdAt"},
		OptionalTimestamps: []string{"decidedAt"},
	}
	SettingSchema = normalize.Schema{
		Timestamps:  []string{"createdAt"},
		DefaultTrue: []string{"isActive"},
	}
	AnnouncementSchema = normalize.Schema{
		Timestamps:         []string{"createdAt"},
		OptionalTimestamps: []string{"startDate", "endDate"},
		DefaultTrue:        []string{"isActive"},
	}
	AdminSchema = normalize.Schema{
		Timestamps:         []string{"createdAt"},
		OptionalTimestamps: []string{"lastLoginAt"},
		DefaultTrue:        []string{"isActive"},
	}
	NoteTransferSchema = normalize.Schema{
		Timestamps:         []string{"createdAt"},
		OptionalTimestamps: []string{"updatedAt"},
	}
)
