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

const (
	msgRequestNotFound    = "Üyelik talebi bulunamadı."
	msgMembershipNotFound = "Üyelik paketi bulunamadı."
)

type MembershipRequests struct {
	c        *mongo.Collection
	users    *mongo.Collection
	packages *mongo.Collection
}

func NewMembershipRequests(db *mongo.Database) *MembershipRequests {
	return &MembershipRequests{
		c:        db.Collection(database.MembershipRequestsCollection),
		users:    db.Collection(database.UsersCollection),
		packages: db.Collection(database.SettingsMembershipsCollection),
	}
}

var (
	decodeRequest    = decodeWith[models.MembershipRequest](models.MembershipRequestSchema)
	decodeMembership = decodeWith[models.MembershipSetting](models.SettingSchema)
)

func (s *MembershipRequests) membership(ctx context.Context, id string) (models.MembershipSetting, error) {
	raw, err := findRaw(ctx, s.packages, bson.M{"_id": id}, msgMembershipNotFound)
	if err != nil {
		return models.MembershipSetting{}, err
	}
	return decodeMembership(id, raw)
}

// Create files a request by userID for an active membership package. A user
// has at most one pending request.
func (s *MembershipRequests) Create(ctx context.Context, userID, membershipID, note string) (models.MembershipRequest, error) {
	raw, err := findRaw(ctx, s.users, bson.M{"_id": userID}, msgUserNotFound)
	if err != nil {
		return models.MembershipRequest{}, err
	}
	user, err := decodeProfile(userID, raw)
	if err != nil {
		return models.MembershipRequest{}, err
	}
	pkg, err := s.membership(ctx, membershipID)
	if err != nil {
		return models.MembershipRequest{}, err
	}
	if !pkg.IsActive {
		return models.MembershipRequest{}, invalid("Bu üyelik paketi şu anda satışta değil.")
	}

	n, err := s.c.CountDocuments(ctx, bson.M{"userId": userID, "status": string(models.RequestPending)}, options.Count().SetLimit(1))
	if err != nil {
		return models.MembershipRequest{}, err
	}
	if n > 0 {
		return models.MembershipRequest{}, conflict("Bekleyen bir üyelik talebiniz zaten var.")
	}

	req := models.MembershipRequest{
		ID:             newID(),
		UserID:         userID,
		UserName:       user.DisplayName(),
		MembershipID:   pkg.ID,
		MembershipName: pkg.Name,
		Status:         models.RequestPending,
		Note:           note,
	}
	if err := req.Validate(); err != nil {
		return models.MembershipRequest{}, validationError(err)
	}

	now := clock()
	stored, err := storageDocument(req, models.MembershipRequestSchema)
	if err != nil {
		return models.MembershipRequest{}, err
	}
	stored["createdAt"] = now
	if _, err := s.c.InsertOne(ctx, stored); err != nil {
		return models.MembershipRequest{}, err
	}

	if _, err := s.users.UpdateOne(ctx,
		bson.M{"_id": userID, "membershipStatus": bson.M{"$ne": models.MembershipActive}},
		bson.M{"$set": bson.M{"membershipStatus": models.MembershipPending}},
	); err != nil {
		zap.L().Warn("membership status not marked pending", zap.String("userId", userID), zap.Error(err))
	}

	req.CreatedAt = normalize.FormatTime(now)
	return req, nil
}

// List returns requests newest first, optionally narrowed by status.
func (s *MembershipRequests) List(ctx context.Context, status models.MembershipRequestStatus) ([]models.MembershipRequest, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = string(status)
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return findAll(ctx, s.c, filter, opts, decodeRequest)
}

func (s *MembershipRequests) pendingRequest(ctx context.Context, id string) (models.MembershipRequest, error) {
	raw, err := findRaw(ctx, s.c, bson.M{"_id": id}, msgRequestNotFound)
	if err != nil {
		return models.MembershipRequest{}, err
	}
	req, err := decodeRequest(id, raw)
	if err != nil {
		return models.MembershipRequest{}, err
	}
	if req.Status != models.RequestPending {
		return models.MembershipRequest{}, conflict("Bu talep zaten sonuçlandırılmış.")
	}
	return req, nil
}

// membershipEnd is the end of a membership of days starting at from.
func membershipEnd(from time.Time, days int) time.Time {
	y, m, d := from.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).AddDate(0, 0, days)
}

// Approve activates the requested membership on the user for the package's
// duration, counted from today.
func (s *MembershipRequests) Approve(ctx context.Context, id string) (time.Time, error) {
	req, err := s.pendingRequest(ctx, id)
	if err != nil {
		return time.Time{}, err
	}
	pkg, err := s.membership(ctx, req.MembershipID)
	if err != nil {
		return time.Time{}, err
	}

	now := clock()
	end := membershipEnd(now, pkg.DurationDays)
	err = database.WithTransaction(ctx, s.c.Database().Client(), func(ctx context.Context) error {
		res, err := s.c.UpdateOne(ctx,
			bson.M{"_id": id, "status": string(models.RequestPending)},
			bson.M{"$set": bson.M{"status": string(models.RequestApproved), "decidedAt": now}})
		if err != nil {
			return err
		}
		if res.MatchedCount == 0 {
			return conflict("Bu talep zaten sonuçlandırılmış.")
		}
		res, err = s.users.UpdateByID(ctx, req.UserID, bson.M{"$set": bson.M{
			"membershipStatus":  models.MembershipActive,
			"membershipEndDate": end,
			"updatedAt":         now,
		}})
		if err != nil {
			return err
		}
		if res.MatchedCount == 0 {
			return notFound(msgUserNotFound)
		}
		return nil
	})
	if err != nil {
		return time.Time{}, err
	}

	zap.L().Info("membership approved",
		zap.String("requestId", id),
		zap.String("userId", req.UserID),
		zap.Time("endDate", end))
	return end, nil
}

func (s *MembershipRequests) Reject(ctx context.Context, id, note string) error {
	req, err := s.pendingRequest(ctx, id)
	if err != nil {
		return err
	}
	set := bson.M{"status": string(models.RequestRejected), "decidedAt": clock()}
	if note != "" {
		set["note"] = note
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id, "status": string(models.RequestPending)}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return conflict("Bu talep zaten sonuçlandırılmış.")
	}

	if _, err := s.users.UpdateOne(ctx,
		bson.M{"_id": req.UserID, "membershipStatus": models.MembershipPending},
		bson.M{"$set": bson.M{"membershipStatus": models.MembershipNone}},
	); err != nil {
		zap.L().Warn("membership status not reset", zap.String("userId", req.UserID), zap.Error(err))
	}
	return nil
}
