package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/issever22/nakliyeciDunyasi-sub001/internal/database"
)

// Fixtures inserts raw documents the way the application stores them.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

func (f *Fixtures) insert(ctx context.Context, collection string, doc bson.M) string {
	f.t.Helper()
	if _, ok := doc["_id"]; !ok {
		doc["_id"] = uuid.NewString()
	}
	if _, err := f.db.Collection(collection).InsertOne(ctx, doc); err != nil {
		f.t.Fatalf("insert into %s: %v", collection, err)
	}
	return doc["_id"].(string)
}

// CreateCompany inserts an active company profile in city.
func (f *Fixtures) CreateCompany(ctx context.Context, id, name, city string) string {
	f.t.Helper()
	return f.insert(ctx, database.UsersCollection, bson.M{
		"_id":            id,
		"role":           "company",
		"email":          id + "@example.com",
		"companyName":    name,
		"addressCountry": "TR",
		"addressCity":    city,
		"logoUrl":        "https://cdn.example.com/" + id + ".png",
		"website":        "https://" + id + ".example.com",
		"isActive":       true,
		"createdAt":      time.Now().UTC(),
	})
}

// CreateIndividual inserts an individual profile. isActive is left unset.
func (f *Fixtures) CreateIndividual(ctx context.Context, id, first, last string) string {
	f.t.Helper()
	return f.insert(ctx, database.UsersCollection, bson.M{
		"_id":       id,
		"role":      "individual",
		"email":     id + "@example.com",
		"firstName": first,
		"lastName":  last,
		"createdAt": time.Now().UTC(),
	})
}

// CreateContact inserts a directory contact.
func (f *Fixtures) CreateContact(ctx context.Context, name string) string {
	f.t.Helper()
	return f.insert(ctx, database.DirectoryContactsCollection, bson.M{
		"companyName": name,
		"contactName": "Ahmet Yılmaz",
		"isActive":    true,
		"createdAt":   time.Now().UTC(),
	})
}

// CreateNote inserts a note under parentType/parentID.
func (f *Fixtures) CreateNote(ctx context.Context, parentType, parentID, title string) string {
	f.t.Helper()
	return f.insert(ctx, database.NotesCollection, bson.M{
		"parentType": parentType,
		"parentId":   parentID,
		"title":      title,
		"content":    "içerik",
		"type":       "note",
		"createdAt":  time.Now().UTC(),
	})
}

// CreateMessage inserts an unread message for userID.
func (f *Fixtures) CreateMessage(ctx context.Context, userID, title string) string {
	f.t.Helper()
	return f.insert(ctx, database.MessagesCollection, bson.M{
		"userId":    userID,
		"title":     title,
		"content":   "Merhaba",
		"isRead":    false,
		"createdAt": time.Now().UTC(),
	})
}

// CreateMembership inserts an active membership package.
func (f *Fixtures) CreateMembership(ctx context.Context, name string, days int) string {
	f.t.Helper()
	return f.insert(ctx, database.SettingsMembershipsCollection, bson.M{
		"name":         name,
		"durationDays": days,
		"price":        1000.0,
		"currency":     "TRY",
		"isActive":     true,
		"createdAt":    time.Now().UTC(),
	})
}

// Count returns the number of documents in collection matching filter.
func (f *Fixtures) Count(ctx context.Context, collection string, filter bson.M) int64 {
	f.t.Helper()
	n, err := f.db.Collection(collection).CountDocuments(ctx, filter)
	if err != nil {
		f.t.Fatalf("count %s: %v", collection, err)
	}
	return n
}
