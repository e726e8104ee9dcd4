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
	"github.com/issever22/nakliyeciDunyasi-sub001/internal/sanitize"
)

const msgMessageNotFound = "Mesaj bulunamadı."

type Messages struct {
	c     *mongo.Collection
	users *mongo.Collection
}

func NewMessages(db *mongo.Database) *Messages {
	return &Messages{
		c:     db.Collection(database.MessagesCollection),
		users: db.Collection(database.UsersCollection),
	}
}

var decodeMessage = decodeWith[models.Message](models.MessageSchema)

// Send delivers an administrative message to one user. The recipient must
// exist; the title is reduced to plain text and the body to safe HTML.
func (s *Messages) Send(ctx context.Context, userID, title, content string) (models.Message, error) {
	raw, err := findRaw(ctx, s.users, bson.M{"_id": userID}, msgUserNotFound)
	if err != nil {
		return models.Message{}, err
	}
	recipient, err := decodeProfile(userID, raw)
	if err != nil {
		return models.Message{}, err
	}

	msg := models.Message{
		ID:       newID(),
		UserID:   userID,
		UserName: recipient.DisplayName(),
		Title:    sanitize.Text(title),
		Content:  sanitize.HTML(content),
	}
	if err := msg.Validate(); err != nil {
		return models.Message{}, validationError(err)
	}

	now := clock()
	stored, err := storageDocument(msg, models.MessageSchema)
	if err != nil {
		return models.Message{}, err
	}
	stored["createdAt"] = now
	stored["isRead"] = false

	if _, err := s.c.InsertOne(ctx, stored); err != nil {
		return models.Message{}, err
	}
	zap.L().Info("message sent", zap.String("id", msg.ID), zap.String("userId", userID))
	msg.CreatedAt = normalize.FormatTime(now)
	return msg, nil
}

func (s *Messages) ListByUser(ctx context.Context, userID string) ([]models.Message, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return findAll(ctx, s.c, bson.M{"userId": userID}, opts, decodeMessage)
}

func (s *Messages) List(ctx context.Context) ([]models.Message, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return findAll(ctx, s.c, bson.M{}, opts, decodeMessage)
}

// MarkRead sets isRead. Marking an already read message succeeds. A
// non-empty userID restricts the update to that recipient's messages.
func (s *Messages) MarkRead(ctx context.Context, id, userID string) error {
	filter := bson.M{"_id": id}
	if userID != "" {
		filter["userId"] = userID
	}
	res, err := s.c.UpdateOne(ctx, filter, bson.M{"$set": bson.M{"isRead": true}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return notFound(msgMessageNotFound)
	}
	return nil
}

func (s *Messages) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, s.c, id, msgMessageNotFound)
}

func (s *Messages) UnreadCount(ctx context.Context, userID string) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"userId": userID, "isRead": bson.M{"$ne": true}})
}
