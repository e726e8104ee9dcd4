package models

type MembershipRequestStatus string

const (
	RequestPending  MembershipRequestStatus = "pending"
	RequestApproved MembershipRequestStatus = "approved"
	RequestRejected MembershipRequestStatus = "rejected"
)

// Membership status values written on user profiles.
const (
	MembershipActive  = "active"
	MembershipPending = "pending"
	MembershipExpired = "expired"
	MembershipNone    = "none"
)

type MembershipRequest struct {
	ID             string                  `bson:"_id,omitempty" json:"id"`
	UserID         string                  `bson:"userId" json:"userId" validate:"required"`
	UserName       string                  `bson:"userName,omitempty" json:"userName,omitempty"`
	MembershipID   string                  `bson:"membershipId" json:"membershipId" validate:"required"`
	MembershipName string                  `bson:"membershipName,omitempty" json:"membershipName,omitempty"`
	Status         MembershipRequestStatus `bson:"status" json:"status"`
	Note           string                  `bson:"note,omitempty" json:"note,omitempty"`
	CreatedAt      string                  `bson:"createdAt,omitempty" json:"createdAt"`
	DecidedAt      string                  `bson:"decidedAt,omitempty" json:"decidedAt,omitempty"`
}

func (r MembershipRequest) Validate() error { return validate.Struct(r) }
