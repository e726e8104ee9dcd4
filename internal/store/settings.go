package store

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/issever22/nakliyeciDunyasi-sub001/internal/collation"
	"github.com/issever22/nakliyeciDunyasi-sub001/internal/database"
	"github.com/issever22/nakliyeciDunyasi-sub001/internal/models"
	"github.com/issever22/nakliyeciDunyasi-sub001/internal/normalize"
	"github.com/issever22/nakliyeciDunyasi-sub001/internal/sanitize"
)

const msgSettingNotFound = "Kayıt bulunamadı."

// Settings is the store for one admin managed lookup collection.
type Settings[T models.Setting] struct {
	c      *mongo.Collection
	schema normalize.Schema
}

func NewSettings[T models.Setting](db *mongo.Database, collection string, schema normalize.Schema) *Settings[T] {
	return &Settings[T]{c: db.Collection(collection), schema: schema}
}

// SettingsCatalog groups the six settings stores.
type SettingsCatalog struct {
	VehicleTypes   *Settings[models.VehicleTypeSetting]
	CargoTypes     *Settings[models.CargoTypeSetting]
	AuthDocs       *Settings[models.AuthDocSetting]
	TransportTypes *Settings[models.TransportTypeSetting]
	Memberships    *Settings[models.MembershipSetting]
	Announcements  *Settings[models.AnnouncementSetting]
}

func NewSettingsCatalog(db *mongo.Database) *SettingsCatalog {
	return &SettingsCatalog{
		VehicleTypes:   NewSettings[models.VehicleTypeSetting](db, database.SettingsVehicleTypesCollection, models.SettingSchema),
		CargoTypes:     NewSettings[models.CargoTypeSetting](db, database.SettingsCargoTypesCollection, models.SettingSchema),
		AuthDocs:       NewSettings[models.AuthDocSetting](db, database.SettingsAuthDocsCollection, models.SettingSchema),
		TransportTypes: NewSettings[models.TransportTypeSetting](db, database.SettingsTransportTypesCollection, models.SettingSchema),
		Memberships:    NewSettings[models.MembershipSetting](db, database.SettingsMembershipsCollection, models.SettingSchema),
		Announcements:  NewSettings[models.AnnouncementSetting](db, database.SettingsAnnouncementsCollection, models.AnnouncementSchema),
	}
}

func (s *Settings[T]) decode(id string, raw bson.M) (T, error) {
	return normalize.Decode[T](id, raw, s.schema)
}

// List returns the records ordered by name, or newest first for
// collections without a unique name.
func (s *Settings[T]) List(ctx context.Context, activeOnly bool) ([]T, error) {
	filter := bson.M{}
	if activeOnly {
		filter["isActive"] = bson.M{"$ne": false}
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	out, err := findAll(ctx, s.c, filter, opts, s.decode)
	if err != nil {
		return nil, err
	}
	var zero T
	if zero.UniqueField() != "" {
		collation.SortBy(out, func(v T) string { return v.UniqueValue() })
	}
	return out, nil
}

func (s *Settings[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	raw, err := findRaw(ctx, s.c, bson.M{"_id": id}, msgSettingNotFound)
	if err != nil {
		return zero, err
	}
	return s.decode(id, raw)
}

// taken reports whether another record already uses value for field,
// ignoring case under Turkish collation.
func (s *Settings[T]) taken(ctx context.Context, field, value, exceptID string) (bool, error) {
	filter := bson.M{field: value}
	if exceptID != "" {
		filter["_id"] = bson.M{"$ne": exceptID}
	}
	opts := options.Count().
		SetLimit(1).
		SetCollation(&options.Collation{Locale: database.TurkishLocale, Strength: 2})
	n, err := s.c.CountDocuments(ctx, filter, opts)
	return n > 0, err
}

func duplicateName(value string) error {
	return conflictf("%q adıyla bir kayıt zaten mevcut.", value)
}

func (s *Settings[T]) Add(ctx context.Context, fields bson.M) (T, error) {
	var zero T
	id := newID()
	doc, err := prepareInput(id, withoutKeys(fields, "createdAt"), s.schema)
	if err != nil {
		return zero, err
	}
	for _, k := range []string{"name", "title", "description"} {
		if v, ok := doc[k].(string); ok {
			doc[k] = strings.TrimSpace(sanitize.Text(v))
		}
	}
	if v, ok := doc["content"].(string); ok {
		doc["content"] = sanitize.HTML(v)
	}

	var item T
	if err := normalize.Into(doc, &item); err != nil {
		return zero, invalid("Geçersiz kayıt verisi.")
	}
	if err := item.Validate(); err != nil {
		return zero, validationError(err)
	}

	if field := item.UniqueField(); field != "" {
		taken, err := s.taken(ctx, field, item.UniqueValue(), "")
		if err != nil {
			return zero, err
		}
		if taken {
			return zero, duplicateName(item.UniqueValue())
		}
	}

	stored, err := storageDocument(item, s.schema)
	if err != nil {
		return zero, err
	}
	if _, err := s.c.InsertOne(ctx, stored); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return zero, duplicateName(item.UniqueValue())
		}
		return zero, err
	}
	zap.L().Info("setting added", zap.String("collection", s.c.Name()), zap.String("id", id))
	return item, nil
}

// Update merges patch into the stored record and validates the result
// before writing.
func (s *Settings[T]) Update(ctx context.Context, id string, patch bson.M) error {
	clean := cleanPatch(patch, "createdAt")
	if len(clean) == 0 {
		return invalid("Güncellenecek alan bulunamadı.")
	}
	if err := normalize.CheckInput(clean, s.schema); err != nil {
		return invalid(err.Error())
	}
	if v, ok := clean["name"].(string); ok {
		clean["name"] = strings.TrimSpace(sanitize.Text(v))
	}
	if v, ok := clean["content"].(string); ok {
		clean["content"] = sanitize.HTML(v)
	}

	raw, err := findRaw(ctx, s.c, bson.M{"_id": id}, msgSettingNotFound)
	if err != nil {
		return err
	}
	merged := normalize.Document(id, raw, s.schema)
	for k, v := range clean {
		merged[k] = v
	}
	var item T
	if err := normalize.Into(merged, &item); err != nil {
		return invalid("Geçersiz kayıt verisi.")
	}
	if err := item.Validate(); err != nil {
		return validationError(err)
	}

	if field := item.UniqueField(); field != "" {
		if _, changed := clean[field]; changed {
			taken, err := s.taken(ctx, field, item.UniqueValue(), id)
			if err != nil {
				return err
			}
			if taken {
				return duplicateName(item.UniqueValue())
			}
		}
	}

	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": normalize.Storage(clean, s.schema)})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return duplicateName(item.UniqueValue())
		}
		return err
	}
	if res.MatchedCount == 0 {
		return notFound(msgSettingNotFound)
	}
	return nil
}

func (s *Settings[T]) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, s.c, id, msgSettingNotFound)
}

func (s *Settings[T]) ToggleActive(ctx context.Context, id string) (bool, error) {
	return toggleActive(ctx, s.c, id, msgSettingNotFound)
}
