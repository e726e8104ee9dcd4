package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/issever22/nakliyeciDunyasi-sub001/internal/database"
	"github.com/issever22/nakliyeciDunyasi-sub001/internal/models"
	"github.com/issever22/nakliyeciDunyasi-sub001/internal/normalize"
)

const msgContactNotFound = "Rehber kaydı bulunamadı."

// contactSpec lists the admin directory. Inactive contacts are included.
var contactSpec = pageSpec{
	collection: database.DirectoryContactsCollection,
	sortField:  "createdAt",
	descending: true,
	filters: map[string]filterField{
		"city":     {key: "city"},
		"country":  {key: "country"},
		"category": {key: "category"},
		"active":   {key: "isActive", boolean: true},
	},
}

type Contacts struct {
	c *mongo.Collection
}

func NewContacts(db *mongo.Database) *Contacts {
	return &Contacts{c: db.Collection(database.DirectoryContactsCollection)}
}

var decodeContact = decodeWith[models.DirectoryContact](models.DirectoryContactSchema)

func (s *Contacts) Get(ctx context.Context, id string) (models.DirectoryContact, error) {
	raw, err := findRaw(ctx, s.c, bson.M{"_id": id}, msgContactNotFound)
	if err != nil {
		return models.DirectoryContact{}, err
	}
	return decodeContact(id, raw)
}

func (s *Contacts) Create(ctx context.Context, fields bson.M) (models.DirectoryContact, error) {
	id := newID()
	doc, err := prepareInput(id, fields, models.DirectoryContactSchema)
	if err != nil {
		return models.DirectoryContact{}, err
	}
	var contact models.DirectoryContact
	if err := normalize.Into(doc, &contact); err != nil {
		return models.DirectoryContact{}, invalid("Geçersiz rehber kaydı.")
	}
	contact.ID = id
	contact.UpdatedAt = ""
	if err := contact.Validate(); err != nil {
		return models.DirectoryContact{}, validationError(err)
	}

	now := clock()
	stored, err := storageDocument(contact, models.DirectoryContactSchema)
	if err != nil {
		return models.DirectoryContact{}, err
	}
	stored["createdAt"] = now

	if _, err := s.c.InsertOne(ctx, stored); err != nil {
		return models.DirectoryContact{}, err
	}
	zap.L().Info("directory contact created", zap.String("id", id))
	contact.CreatedAt = normalize.FormatTime(now)
	return contact, nil
}

func (s *Contacts) Update(ctx context.Context, id string, patch bson.M) error {
	return applyPatch(ctx, s.c, id, patch, models.DirectoryContactSchema, "createdAt", true, msgContactNotFound)
}

// Delete removes the contact only. Its notes stay in place.
func (s *Contacts) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, s.c, id, msgContactNotFound)
}

// List returns one page of the directory, newest first.
func (s *Contacts) List(ctx context.Context, q Query) Page[models.DirectoryContact] {
	return fetchPage(ctx, s.c.Database(), contactSpec, q, decodeContact)
}
