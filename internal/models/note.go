package models

import "fmt"

type NoteType string

const (
	NoteTypeNote    NoteType = "note"
	NoteTypePayment NoteType = "payment"
)

// NoteParentType names the record a note hangs under.
type NoteParentType string

const (
	NoteParentUser    NoteParentType = "user"
	NoteParentContact NoteParentType = "contact"
)

type NoteParent struct {
	Type NoteParentType
	ID   string
}

func (p NoteParent) String() string { return fmt.Sprintf("%s/%s", p.Type, p.ID) }

// CompanyNote is an admin note under a user or a directory contact.
// TransferID and SourceNoteID are set on copies made by a contact
// conversion.
type CompanyNote struct {
	ID           string         `bson:"_id,omitempty" json:"id"`
	ParentType   NoteParentType `bson:"parentType" json:"parentType"`
	ParentID     string         `bson:"parentId" json:"parentId"`
	Title        string         `bson:"title" json:"title" validate:"required"`
	Content      string         `bson:"content" json:"content"`
	Author       string         `bson:"author,omitempty" json:"author,omitempty"`
	Type         NoteType       `bson:"type" json:"type" validate:"oneof=note payment"`
	CreatedAt    string         `bson:"createdAt,omitempty" json:"createdAt"`
	TransferID   string         `bson:"transferId,omitempty" json:"-"`
	SourceNoteID string         `bson:"sourceNoteId,omitempty" json:"-"`
}

func (n CompanyNote) Validate() error { return validate.Struct(n) }
