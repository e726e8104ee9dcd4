package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/issever22/nakliyeciDunyasi-sub001/internal/database"
	"github.com/issever22/nakliyeciDunyasi-sub001/internal/models"
	"github.com/issever22/nakliyeciDunyasi-sub001/internal/normalize"
)

const msgUserNotFound = "Kullanıcı bulunamadı."

var companySpec = pageSpec{
	collection: database.UsersCollection,
	sortField:  "companyName",
	filters: map[string]filterField{
		"city":     {key: "addressCity"},
		"country":  {key: "addressCountry"},
		"category": {key: "companyCategory"},
		"district": {key: "addressDistrict"},
	},
	base:       bson.M{"role": string(models.RoleCompany)},
	collation:  &options.Collation{Locale: database.TurkishLocale},
	activeOnly: true,
}

type Users struct {
	c *mongo.Collection
}

func NewUsers(db *mongo.Database) *Users {
	return &Users{c: db.Collection(database.UsersCollection)}
}

func decodeProfile(id string, raw bson.M) (models.UserProfile, error) {
	return models.ProfileFromDocument(normalize.Document(id, raw, models.UserProfileSchema))
}

func (s *Users) Get(ctx context.Context, id string) (models.UserProfile, error) {
	raw, err := findRaw(ctx, s.c, bson.M{"_id": id}, msgUserNotFound)
	if err != nil {
		return models.UserProfile{}, err
	}
	return decodeProfile(id, raw)
}

// Create stores the profile of an identity-provider user. id is the
// provider's user id.
func (s *Users) Create(ctx context.Context, id string, fields bson.M) (models.UserProfile, error) {
	if id == "" {
		return models.UserProfile{}, invalid("Kullanıcı kimliği zorunludur.")
	}

	doc, err := prepareInput(id, withoutKeys(fields, "sponsorships", "membershipStatus", "membershipEndDate"), models.UserProfileSchema)
	if err != nil {
		return models.UserProfile{}, err
	}
	profile, err := models.ProfileFromDocument(doc)
	if err != nil {
		return models.UserProfile{}, invalid("Geçersiz rol. 'individual' veya 'company' olmalı.")
	}
	if err := profile.Validate(); err != nil {
		return models.UserProfile{}, validationError(err)
	}

	now := clock()
	profile.ID = id
	profile.UpdatedAt = ""
	if profile.MembershipStatus == "" {
		profile.MembershipStatus = models.MembershipNone
	}
	stored, err := storageDocument(profile, models.UserProfileSchema)
	if err != nil {
		return models.UserProfile{}, err
	}
	stored["createdAt"] = now

	if _, err := s.c.InsertOne(ctx, stored); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.UserProfile{}, conflict("Bu kullanıcı için profil zaten mevcut.")
		}
		return models.UserProfile{}, err
	}

	zap.L().Info("user profile created", zap.String("id", id), zap.String("role", string(profile.Role)))
	profile.CreatedAt = normalize.FormatTime(now)
	return profile, nil
}

// Update applies a partial patch. The id and createdAt are never changed.
func (s *Users) Update(ctx context.Context, id string, patch bson.M) error {
	if role, ok := patch["role"]; ok {
		r, _ := role.(string)
		if _, err := models.ParseRole(r); err != nil {
			return invalid("Geçersiz rol. 'individual' veya 'company' olmalı.")
		}
	}
	return applyPatch(ctx, s.c, id, withoutKeys(patch, "sponsorships"), models.UserProfileSchema, "createdAt", true, msgUserNotFound)
}

func (s *Users) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, s.c, id, msgUserNotFound)
}

// List returns every profile, newest first, optionally narrowed by role.
func (s *Users) List(ctx context.Context, role models.Role) ([]models.UserProfile, error) {
	filter := bson.M{}
	if role != "" {
		filter["role"] = string(role)
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return findAll(ctx, s.c, filter, opts, decodeProfile)
}

// ListCompanies returns one page of active companies ordered by name with
// Turkish collation.
func (s *Users) ListCompanies(ctx context.Context, q Query) Page[models.UserProfile] {
	return fetchPage(ctx, s.c.Database(), companySpec, q, decodeProfile)
}

func (s *Users) UpdateRole(ctx context.Context, id string, role models.Role) error {
	if _, err := models.ParseRole(string(role)); err != nil {
		return invalid("Geçersiz rol. 'individual' veya 'company' olmalı.")
	}
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{"role": string(role), "updatedAt": clock()}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return notFound(msgUserNotFound)
	}
	return nil
}

func (s *Users) SetActive(ctx context.Context, id string, active bool) error {
	return setActive(ctx, s.c, id, active, msgUserNotFound)
}

func (s *Users) ToggleActive(ctx context.Context, id string) (bool, error) {
	return toggleActive(ctx, s.c, id, msgUserNotFound)
}

// UpdateMembership sets the membership status and end date. A nil endDate
// clears the date.
func (s *Users) UpdateMembership(ctx context.Context, id, status string, endDate *time.Time) error {
	switch status {
	case models.MembershipActive, models.MembershipPending, models.MembershipExpired, models.MembershipNone:
	default:
		return invalidf("Geçersiz üyelik durumu: %q", status)
	}

	update := bson.M{"$set": bson.M{"membershipStatus": status, "updatedAt": clock()}}
	if endDate != nil {
		update["$set"].(bson.M)["membershipEndDate"] = endDate.UTC()
	} else {
		update["$unset"] = bson.M{"membershipEndDate": ""}
	}

	res, err := s.c.UpdateByID(ctx, id, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return notFound(msgUserNotFound)
	}
	return nil
}
