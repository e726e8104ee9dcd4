package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/issever22/nakliyeciDunyasi-sub001/internal/database"
	"github.com/issever22/nakliyeciDunyasi-sub001/internal/models"
	"github.com/issever22/nakliyeciDunyasi-sub001/internal/normalize"
)

const msgOfferNotFound = "Nakliye teklifi bulunamadı."

var offerSpec = pageSpec{
	collection: database.TransportOffersCollection,
	sortField:  "postedAt",
	descending: true,
	filters: map[string]filterField{
		"originCountry":      {key: "originCountry"},
		"originCity":         {key: "originCity"},
		"destinationCountry": {key: "destinationCountry"},
		"destinationCity":    {key: "destinationCity"},
		"vehicleType":        {key: "vehicleType"},
		"userId":             {key: "userId"},
	},
	activeOnly: true,
}

type Offers struct {
	c *mongo.Collection
}

func NewOffers(db *mongo.Database) *Offers {
	return &Offers{c: db.Collection(database.TransportOffersCollection)}
}

var decodeOffer = decodeWith[models.TransportOffer](models.TransportOfferSchema)

func (s *Offers) Get(ctx context.Context, id string) (models.TransportOffer, error) {
	raw, err := findRaw(ctx, s.c, bson.M{"_id": id}, msgOfferNotFound)
	if err != nil {
		return models.TransportOffer{}, err
	}
	return decodeOffer(id, raw)
}

func (s *Offers) Create(ctx context.Context, owner models.UserProfile, fields bson.M) (models.TransportOffer, error) {
	id := newID()
	doc, err := prepareInput(id, fields, models.TransportOfferSchema)
	if err != nil {
		return models.TransportOffer{}, err
	}
	var offer models.TransportOffer
	if err := normalize.Into(doc, &offer); err != nil {
		return models.TransportOffer{}, invalid("Geçersiz teklif verisi.")
	}

	offer.ID = id
	offer.UserID = owner.ID
	if offer.CompanyName == "" {
		offer.CompanyName = owner.DisplayName()
	}
	if err := offer.Validate(); err != nil {
		if errors.Is(err, models.ErrOfferWithoutPrice) {
			return models.TransportOffer{}, invalid("En az bir fiyat (TRY, USD veya EUR) girilmelidir.")
		}
		return models.TransportOffer{}, validationError(err)
	}

	now := clock()
	stored, err := storageDocument(offer, models.TransportOfferSchema)
	if err != nil {
		return models.TransportOffer{}, err
	}
	stored["postedAt"] = now

	if _, err := s.c.InsertOne(ctx, stored); err != nil {
		return models.TransportOffer{}, err
	}
	zap.L().Info("transport offer created", zap.String("id", id), zap.String("userId", owner.ID))
	offer.PostedAt = normalize.FormatTime(now)
	return offer, nil
}

func (s *Offers) Update(ctx context.Context, id, ownerID string, patch bson.M) error {
	if err := checkOwner(ctx, s.c, id, ownerID, msgOfferNotFound); err != nil {
		return err
	}
	return applyPatch(ctx, s.c, id, withoutKeys(patch, "userId"), models.TransportOfferSchema, "postedAt", false, msgOfferNotFound)
}

func (s *Offers) Delete(ctx context.Context, id, ownerID string) error {
	if err := checkOwner(ctx, s.c, id, ownerID, msgOfferNotFound); err != nil {
		return err
	}
	return deleteByID(ctx, s.c, id, msgOfferNotFound)
}

func (s *Offers) ListByUser(ctx context.Context, userID string) ([]models.TransportOffer, error) {
	opts := options.Find().SetSort(bson.D{{Key: "postedAt", Value: -1}, {Key: "_id", Value: -1}})
	return findAll(ctx, s.c, bson.M{"userId": userID}, opts, decodeOffer)
}

func (s *Offers) List(ctx context.Context, q Query) Page[models.TransportOffer] {
	return fetchPage(ctx, s.c.Database(), offerSpec, q, decodeOffer)
}

func (s *Offers) SetActive(ctx context.Context, id string, active bool) error {
	return setActive(ctx, s.c, id, active, msgOfferNotFound)
}

func (s *Offers) ToggleActive(ctx context.Context, id string) (bool, error) {
	return toggleActive(ctx, s.c, id, msgOfferNotFound)
}
