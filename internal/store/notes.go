package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/issever22/nakliyeciDunyasi-sub001/internal/database"
	"github.com/issever22/nakliyeciDunyasi-sub001/internal/models"
	"github.com/issever22/nakliyeciDunyasi-sub001/internal/normalize"
	"github.com/issever22/nakliyeciDunyasi-sub001/internal/sanitize"
)

const msgNoteNotFound = "Not bulunamadı."

// Notes stores admin notes for users and directory contacts in one
// collection, keyed by parent type and id.
type Notes struct {
	c        *mongo.Collection
	users    *mongo.Collection
	contacts *mongo.Collection
	markers  *mongo.Collection
}

func NewNotes(db *mongo.Database) *Notes {
	return &Notes{
		c:        db.Collection(database.NotesCollection),
		users:    db.Collection(database.UsersCollection),
		contacts: db.Collection(database.DirectoryContactsCollection),
		markers:  db.Collection(database.NoteTransfersCollection),
	}
}

var decodeNote = decodeWith[models.CompanyNote](models.NoteSchema)

func parentFilter(p models.NoteParent) bson.M {
	return bson.M{"parentType": string(p.Type), "parentId": p.ID}
}

func (s *Notes) checkParent(ctx context.Context, p models.NoteParent) error {
	var (
		coll *mongo.Collection
		msg  string
	)
	switch p.Type {
	case models.NoteParentUser:
		coll, msg = s.users, msgUserNotFound
	case models.NoteParentContact:
		coll, msg = s.contacts, msgContactNotFound
	default:
		return invalidf("Geçersiz not sahibi türü: %q", p.Type)
	}
	n, err := coll.CountDocuments(ctx, bson.M{"_id": p.ID}, options.Count().SetLimit(1))
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound(msg)
	}
	return s.checkWritable(ctx, p)
}

// checkWritable rejects note writes under a contact whose conversion to a
// company has not finished.
func (s *Notes) checkWritable(ctx context.Context, p models.NoteParent) error {
	if p.Type != models.NoteParentContact {
		return nil
	}
	open, err := transferOpen(ctx, s.markers, p.ID)
	if err != nil {
		return err
	}
	if open {
		return conflict(msgTransferRunning)
	}
	return nil
}

// Add stores a note under parent. createdAt is assigned here.
func (s *Notes) Add(ctx context.Context, parent models.NoteParent, fields bson.M) (models.CompanyNote, error) {
	if err := s.checkParent(ctx, parent); err != nil {
		return models.CompanyNote{}, err
	}

	id := newID()
	doc, err := prepareInput(id, withoutKeys(fields, "transferId", "sourceNoteId"), models.NoteSchema)
	if err != nil {
		return models.CompanyNote{}, err
	}
	var note models.CompanyNote
	if err := normalize.Into(doc, &note); err != nil {
		return models.CompanyNote{}, invalid("Geçersiz not verisi.")
	}
	note.ID = id
	note.ParentType, note.ParentID = parent.Type, parent.ID
	if note.Type == "" {
		note.Type = models.NoteTypeNote
	}
	note.Title = sanitize.Text(note.Title)
	note.Content = sanitize.HTML(note.Content)
	if err := note.Validate(); err != nil {
		return models.CompanyNote{}, validationError(err)
	}

	now := clock()
	stored, err := storageDocument(note, models.NoteSchema)
	if err != nil {
		return models.CompanyNote{}, err
	}
	stored["createdAt"] = now

	if _, err := s.c.InsertOne(ctx, stored); err != nil {
		return models.CompanyNote{}, err
	}
	note.CreatedAt = normalize.FormatTime(now)
	return note, nil
}

// List returns the notes of parent, newest first.
func (s *Notes) List(ctx context.Context, parent models.NoteParent) ([]models.CompanyNote, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	return findAll(ctx, s.c, parentFilter(parent), opts, decodeNote)
}

func (s *Notes) Count(ctx context.Context, parent models.NoteParent) (int64, error) {
	return s.c.CountDocuments(ctx, parentFilter(parent))
}

func (s *Notes) Update(ctx context.Context, parent models.NoteParent, id string, patch bson.M) error {
	clean := withoutKeys(patch, "parentType", "parentId", "transferId", "sourceNoteId")
	if title, ok := clean["title"].(string); ok {
		clean["title"] = sanitize.Text(title)
	}
	if content, ok := clean["content"].(string); ok {
		clean["content"] = sanitize.HTML(content)
	}
	if t, ok := clean["type"]; ok && t != string(models.NoteTypeNote) && t != string(models.NoteTypePayment) {
		return invalid("type şu değerlerden biri olmalı: note payment")
	}
	clean = cleanPatch(clean, "createdAt")
	if len(clean) == 0 {
		return invalid("Güncellenecek alan bulunamadı.")
	}
	if err := normalize.CheckInput(clean, models.NoteSchema); err != nil {
		return invalid(err.Error())
	}

	if err := s.checkWritable(ctx, parent); err != nil {
		return err
	}
	filter := parentFilter(parent)
	filter["_id"] = id
	res, err := s.c.UpdateOne(ctx, filter, bson.M{"$set": normalize.Storage(clean, models.NoteSchema)})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return notFound(msgNoteNotFound)
	}
	return nil
}

func (s *Notes) Delete(ctx context.Context, parent models.NoteParent, id string) error {
	if err := s.checkWritable(ctx, parent); err != nil {
		return err
	}
	filter := parentFilter(parent)
	filter["_id"] = id
	res, err := s.c.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return notFound(msgNoteNotFound)
	}
	return nil
}
