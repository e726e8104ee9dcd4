// Package store is the data-access layer: one type per collection, each
// built from a *mongo.Database. Reads go through the normalize schemas so
// callers always receive ISO timestamps and defaulted flags.
package store

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/issever22/nakliyeciDunyasi-sub001/internal/models"
	"github.com/issever22/nakliyeciDunyasi-sub001/internal/normalize"
)

var clock = func() time.Time { return time.Now().UTC() }

func newID() string { return uuid.NewString() }

// cleanPatch drops the id, the creation timestamp and any operator keys
// from a client patch.
func cleanPatch(patch bson.M, createdField string) bson.M {
	out := bson.M{}
	for k, v := range patch {
		if k == "id" || k == "_id" || k == createdField || strings.HasPrefix(k, "$") {
			continue
		}
		out[k] = v
	}
	return out
}

func withoutKeys(m bson.M, keys ...string) bson.M {
	out := make(bson.M, len(m))
	for k, v := range m {
		out[k] = v
	}
	for _, k := range keys {
		delete(out, k)
	}
	return out
}

// prepareInput checks client fields against the schema and returns them in
// the normalized read shape, ready to decode into a model.
func prepareInput(id string, fields bson.M, s normalize.Schema) (bson.M, error) {
	if err := normalize.CheckInput(fields, s); err != nil {
		return nil, invalid(err.Error())
	}
	return normalize.Document(id, fields, s), nil
}

// storageDocument encodes a validated model for insertion.
func storageDocument(v interface{}, s normalize.Schema) (bson.M, error) {
	var (
		doc bson.M
		err error
	)
	switch typed := v.(type) {
	case models.UserProfile:
		doc, err = typed.Document()
	case models.Listing:
		doc, err = typed.Document()
	default:
		doc, err = models.ToDocument(v)
	}
	if err != nil {
		return nil, err
	}
	return normalize.Storage(doc, s), nil
}

func validationError(err error) error {
	return invalid(models.ValidationMessage(err))
}

// applyPatch runs a partial $set on one document.
func applyPatch(ctx context.Context, coll *mongo.Collection, id string, patch bson.M, s normalize.Schema, createdField string, stamp bool, notFoundMsg string) error {
	clean := cleanPatch(patch, createdField)
	if len(clean) == 0 {
		return invalid("Güncellenecek alan bulunamadı.")
	}
	if err := normalize.CheckInput(clean, s); err != nil {
		return invalid(err.Error())
	}

	set := normalize.Storage(clean, s)
	if stamp {
		set["updatedAt"] = clock()
	}

	res, err := coll.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return notFound(notFoundMsg)
	}
	return nil
}

// setActive writes an explicit isActive value.
func setActive(ctx context.Context, coll *mongo.Collection, id string, active bool, notFoundMsg string) error {
	res, err := coll.UpdateByID(ctx, id, bson.M{"$set": bson.M{"isActive": active}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return notFound(notFoundMsg)
	}
	return nil
}

// toggleActive flips isActive, reading a missing flag as true, and returns
// the new value.
func toggleActive(ctx context.Context, coll *mongo.Collection, id string, notFoundMsg string) (bool, error) {
	update := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{{Key: "isActive", Value: bson.D{{Key: "$not", Value: bson.A{
			bson.D{{Key: "$ifNull", Value: bson.A{"$isActive", true}}},
		}}}}}}},
	}
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(bson.M{"isActive": 1})

	var out struct {
		IsActive bool `bson:"isActive"`
	}
	err := coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&out)
	if err != nil {
		return false, missing(err, notFoundMsg)
	}
	return out.IsActive, nil
}

func deleteByID(ctx context.Context, coll *mongo.Collection, id string, notFoundMsg string) error {
	res, err := coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return notFound(notFoundMsg)
	}
	return nil
}

func findRaw(ctx context.Context, coll *mongo.Collection, filter interface{}, notFoundMsg string) (bson.M, error) {
	var raw bson.M
	if err := coll.FindOne(ctx, filter).Decode(&raw); err != nil {
		return nil, missing(err, notFoundMsg)
	}
	return raw, nil
}

// findAll decodes every match with decode, skipping documents that fail to
// decode.
func findAll[T any](ctx context.Context, coll *mongo.Collection, filter interface{}, opts *options.FindOptions, decode func(id string, raw bson.M) (T, error)) ([]T, error) {
	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	out := make([]T, 0)
	for cursor.Next(ctx) {
		var raw bson.M
		if err := cursor.Decode(&raw); err != nil {
			return nil, err
		}
		item, err := decode(normalize.ID(raw), raw)
		if err != nil {
			logDecodeFailure(coll.Name(), normalize.ID(raw), err)
			continue
		}
		out = append(out, item)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func decodeWith[T any](s normalize.Schema) func(id string, raw bson.M) (T, error) {
	return func(id string, raw bson.M) (T, error) {
		return normalize.Decode[T](id, raw, s)
	}
}
