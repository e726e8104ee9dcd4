package models

type TransferState string

const (
	TransferCopying TransferState = "copying"
	TransferCopied  TransferState = "copied"
	TransferDone    TransferState = "done"
)

// NoteTransfer marks a contact to company conversion in progress. It is
// written before any note is copied and advanced after each phase, so an
// interrupted conversion can be picked up again.
type NoteTransfer struct {
	ID          string        `bson:"_id,omitempty" json:"id"`
	ContactID   string        `bson:"contactId" json:"contactId"`
	CompanyID   string        `bson:"companyId" json:"companyId"`
	State       TransferState `bson:"state" json:"state"`
	CopiedCount int           `bson:"copiedCount" json:"copiedCount"`
	Open        bool          `bson:"open,omitempty" json:"-"`
	CreatedAt   string        `bson:"createdAt,omitempty" json:"createdAt"`
	UpdatedAt   string        `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}
