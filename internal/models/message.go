package models

// Message is an administrative message addressed to one user.
type Message struct {
	ID        string `bson:"_id,omitempty" json:"id"`
	UserID    string `bson:"userId" json:"userId" validate:"required"`
	UserName  string `bson:"userName,omitempty" json:"userName,omitempty"`
	Title     string `bson:"title" json:"title" validate:"required"`
	Content   string `bson:"content" json:"content" validate:"required"`
	CreatedAt string `bson:"createdAt,omitempty" json:"createdAt"`
	IsRead    bool   `bson:"isRead" json:"isRead"`
}

func (m Message) Validate() error { return validate.Struct(m) }
