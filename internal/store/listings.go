package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/issever22/nakliyeciDunyasi-sub001/internal/database"
	"github.com/issever22/nakliyeciDunyasi-sub001/internal/models"
	"github.com/issever22/nakliyeciDunyasi-sub001/internal/normalize"
)

const msgListingNotFound = "İlan bulunamadı."

var listingSpec = pageSpec{
	collection: database.ListingsCollection,
	sortField:  "postedAt",
	descending: true,
	filters: map[string]filterField{
		"freightType":        {key: "freightType"},
		"originCountry":      {key: "originCountry"},
		"originCity":         {key: "originCity"},
		"destinationCountry": {key: "destinationCountry"},
		"destinationCity":    {key: "destinationCity"},
		"vehicleType":        {key: "vehicleType"},
		"cargoType":          {key: "cargoType"},
		"userId":             {key: "userId"},
		"continuous":         {key: "isContinuous", boolean: true},
	},
	activeOnly: true,
}

type Listings struct {
	c *mongo.Collection
}

func NewListings(db *mongo.Database) *Listings {
	return &Listings{c: db.Collection(database.ListingsCollection)}
}

func decodeListing(id string, raw bson.M) (models.Listing, error) {
	return models.ListingFromDocument(normalize.Document(id, raw, models.ListingSchema))
}

func (s *Listings) Get(ctx context.Context, id string) (models.Listing, error) {
	raw, err := findRaw(ctx, s.c, bson.M{"_id": id}, msgListingNotFound)
	if err != nil {
		return models.Listing{}, err
	}
	return decodeListing(id, raw)
}

// Create posts a listing on behalf of owner. The freight type in fields
// selects the payload; postedAt is always the server time.
func (s *Listings) Create(ctx context.Context, owner models.UserProfile, fields bson.M) (models.Listing, error) {
	id := newID()
	doc, err := prepareInput(id, fields, models.ListingSchema)
	if err != nil {
		return models.Listing{}, err
	}
	listing, err := models.ListingFromDocument(doc)
	if err != nil {
		return models.Listing{}, invalid("Geçersiz ilan türü. 'Ticari', 'Evden Eve' veya 'Boş Araç' olmalı.")
	}

	listing.ID = id
	listing.UserID = owner.ID
	listing.PostedBy = owner.DisplayName()
	if listing.ContactPhone == "" {
		listing.ContactPhone = owner.Phone
	}
	if err := listing.Validate(); err != nil {
		return models.Listing{}, validationError(err)
	}

	now := clock()
	stored, err := storageDocument(listing, models.ListingSchema)
	if err != nil {
		return models.Listing{}, err
	}
	stored["postedAt"] = now

	if _, err := s.c.InsertOne(ctx, stored); err != nil {
		return models.Listing{}, err
	}

	zap.L().Info("listing created",
		zap.String("id", id),
		zap.String("userId", owner.ID),
		zap.String("freightType", string(listing.FreightType)))
	listing.PostedAt = normalize.FormatTime(now)
	return listing, nil
}

// Update patches a listing. A non-empty ownerID restricts the update to that
// owner's listings. The freight type cannot change.
func (s *Listings) Update(ctx context.Context, id, ownerID string, patch bson.M) error {
	if _, ok := patch["freightType"]; ok {
		return invalid("İlan türü değiştirilemez.")
	}
	if err := s.checkOwner(ctx, id, ownerID); err != nil {
		return err
	}
	return applyPatch(ctx, s.c, id, withoutKeys(patch, "userId", "postedBy"), models.ListingSchema, "postedAt", false, msgListingNotFound)
}

func (s *Listings) Delete(ctx context.Context, id, ownerID string) error {
	if err := s.checkOwner(ctx, id, ownerID); err != nil {
		return err
	}
	return deleteByID(ctx, s.c, id, msgListingNotFound)
}

// ListByUser returns every listing of one user, active or not, newest first.
func (s *Listings) ListByUser(ctx context.Context, userID string) ([]models.Listing, error) {
	opts := options.Find().SetSort(bson.D{{Key: "postedAt", Value: -1}, {Key: "_id", Value: -1}})
	return findAll(ctx, s.c, bson.M{"userId": userID}, opts, decodeListing)
}

// List returns one page of active listings.
func (s *Listings) List(ctx context.Context, q Query) Page[models.Listing] {
	return fetchPage(ctx, s.c.Database(), listingSpec, q, decodeListing)
}

func (s *Listings) SetActive(ctx context.Context, id string, active bool) error {
	return setActive(ctx, s.c, id, active, msgListingNotFound)
}

func (s *Listings) ToggleActive(ctx context.Context, id string) (bool, error) {
	return toggleActive(ctx, s.c, id, msgListingNotFound)
}

func (s *Listings) checkOwner(ctx context.Context, id, ownerID string) error {
	return checkOwner(ctx, s.c, id, ownerID, msgListingNotFound)
}

// checkOwner fails with not found unless the document exists and, when
// ownerID is set, belongs to ownerID.
func checkOwner(ctx context.Context, coll *mongo.Collection, id, ownerID, notFoundMsg string) error {
	if ownerID == "" {
		return nil
	}
	n, err := coll.CountDocuments(ctx, bson.M{"_id": id, "userId": ownerID}, options.Count().SetLimit(1))
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound(notFoundMsg)
	}
	return nil
}
