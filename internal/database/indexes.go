package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll startup'ta çağrılır. Her ensure fonksiyonu idempotent.
Hatalar toplanır, böylece tüm problemler tek seferde görünür.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	for _, set := range indexPlan() {
		if err := ensureIndexSet(ctx, db.Collection(set.collection), set.models); err != nil {
			problems = append(problems, set.collection+": "+err.Error())
		}
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

type indexSet struct {
	collection string
	models     []mongo.IndexModel
}

func turkishCollation() *options.Collation {
	return &options.Collation{Locale: TurkishLocale}
}

func indexPlan() []indexSet {
	settingsName := func(coll string) indexSet {
		return indexSet{coll, []mongo.IndexModel{{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetName("name_unique").SetUnique(true),
		}}}
	}

	return []indexSet{
		{UsersCollection, []mongo.IndexModel{
			{
				Keys: bson.D{{Key: "role", Value: 1}, {Key: "isActive", Value: 1}, {Key: "companyName", Value: 1}, {Key: "_id", Value: 1}},
				Options: options.Index().
					SetName("role_active_companyName").
					SetCollation(turkishCollation()),
			},
			{
				Keys: bson.D{{Key: "role", Value: 1}, {Key: "isActive", Value: 1}, {Key: "addressCity", Value: 1}, {Key: "companyName", Value: 1}},
				Options: options.Index().
					SetName("role_active_city_companyName").
					SetCollation(turkishCollation()),
			},
			{
				Keys:    bson.D{{Key: "createdAt", Value: -1}},
				Options: options.Index().SetName("createdAt_desc"),
			},
		}},
		{ListingsCollection, []mongo.IndexModel{
			{
				Keys:    bson.D{{Key: "isActive", Value: 1}, {Key: "postedAt", Value: -1}, {Key: "_id", Value: -1}},
				Options: options.Index().SetName("active_postedAt"),
			},
			{
				Keys:    bson.D{{Key: "isActive", Value: 1}, {Key: "freightType", Value: 1}, {Key: "postedAt", Value: -1}},
				Options: options.Index().SetName("active_freightType_postedAt"),
			},
			{
				Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "postedAt", Value: -1}},
				Options: options.Index().SetName("userId_postedAt"),
			},
		}},
		{TransportOffersCollection, []mongo.IndexModel{
			{
				Keys:    bson.D{{Key: "isActive", Value: 1}, {Key: "postedAt", Value: -1}, {Key: "_id", Value: -1}},
				Options: options.Index().SetName("active_postedAt"),
			},
			{
				Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "postedAt", Value: -1}},
				Options: options.Index().SetName("userId_postedAt"),
			},
		}},
		{SponsorsCollection, []mongo.IndexModel{
			{
				Keys:    bson.D{{Key: "companyId", Value: 1}, {Key: "entityType", Value: 1}, {Key: "entityName", Value: 1}},
				Options: options.Index().SetName("company_entity_unique").SetUnique(true),
			},
			{
				Keys:    bson.D{{Key: "entityType", Value: 1}, {Key: "entityName", Value: 1}, {Key: "isActive", Value: 1}},
				Options: options.Index().SetName("entity_active"),
			},
		}},
		{MessagesCollection, []mongo.IndexModel{
			{
				Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
				Options: options.Index().SetName("userId_createdAt"),
			},
		}},
		{NotesCollection, []mongo.IndexModel{
			{
				Keys:    bson.D{{Key: "parentType", Value: 1}, {Key: "parentId", Value: 1}, {Key: "createdAt", Value: -1}},
				Options: options.Index().SetName("parent_createdAt"),
			},
			{
				Keys: bson.D{{Key: "transferId", Value: 1}, {Key: "sourceNoteId", Value: 1}},
				Options: options.Index().
					SetName("transfer_source_unique").
					SetUnique(true).
					SetPartialFilterExpression(bson.M{
						"transferId": bson.M{"$exists": true},
					}),
			},
		}},
		{NoteTransfersCollection, []mongo.IndexModel{
			{
				Keys:    bson.D{{Key: "state", Value: 1}},
				Options: options.Index().SetName("state_index"),
			},
			{
				Keys: bson.D{{Key: "contactId", Value: 1}},
				Options: options.Index().
					SetName("contactId_open_unique").
					SetUnique(true).
					SetPartialFilterExpression(bson.M{"open": true}),
			},
		}},
		{AdminsCollection, []mongo.IndexModel{
			{
				Keys:    bson.D{{Key: "userName", Value: 1}},
				Options: options.Index().SetName("userName_unique").SetUnique(true),
			},
		}},
		{MembershipRequestsCollection, []mongo.IndexModel{
			{
				Keys:    bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}},
				Options: options.Index().SetName("status_createdAt"),
			},
		}},
		{DirectoryContactsCollection, []mongo.IndexModel{
			{
				Keys:    bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}},
				Options: options.Index().SetName("createdAt_desc"),
			},
		}},
		settingsName(SettingsVehicleTypesCollection),
		settingsName(SettingsCargoTypesCollection),
		settingsName(SettingsAuthDocsCollection),
		settingsName(SettingsTransportTypesCollection),
		settingsName(SettingsMembershipsCollection),
		{SettingsAnnouncementsCollection, []mongo.IndexModel{
			{
				Keys:    bson.D{{Key: "createdAt", Value: -1}},
				Options: options.Index().SetName("createdAt_desc"),
			},
		}},
	}
}

func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	var errs []string

	for _, m := range models {
		name := ""
		if m.Options != nil && m.Options.Name != nil {
			name = *m.Options.Name
		}

		start := time.Now()
		createCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		_, err := coll.Indexes().CreateOne(createCtx, m)
		cancel()

		switch {
		case err == nil:
			zap.L().Info("index ensured",
				zap.String("collection", coll.Name()),
				zap.String("name", name),
				zap.String("keys", keySig(m.Keys.(bson.D))),
				zap.String("took", time.Since(start).String()))
		case isOptionsConflictErr(err):
			// Same keys already indexed under another name or options; keep it.
			zap.L().Warn("index exists with different options",
				zap.String("collection", coll.Name()),
				zap.String("name", name),
				zap.Error(err))
		case mongo.IsDuplicateKeyError(err):
			errs = append(errs, fmt.Sprintf("%s(%s): cannot create unique index (duplicates present)", coll.Name(), name))
		default:
			errs = append(errs, fmt.Sprintf("%s(%s): %v", coll.Name(), name, err))
		}
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func keySig(keys bson.D) string {
	parts := make([]string, 0, len(keys))
	for _, kv := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", kv.Key, kv.Value))
	}
	return strings.Join(parts, ", ")
}

// Mongo returns IndexOptionsConflict (85) or IndexKeySpecsConflict (86)
// when an equivalent index already exists under different settings.
func isOptionsConflictErr(err error) bool {
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 85 || ce.Code == 86) {
		return true
	}
	return strings.Contains(err.Error(), "IndexOptionsConflict") ||
		strings.Contains(err.Error(), "IndexKeySpecsConflict")
}
