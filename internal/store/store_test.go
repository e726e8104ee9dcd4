package store

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/issever22/nakliyeciDunyasi-sub001/internal/models"
)

func TestCleanPatchDropsIdentityAndOperators(t *testing.T) {
	out := cleanPatch(bson.M{
		"id":        "x",
		"_id":       "y",
		"createdAt": "2024-01-01",
		"$set":      bson.M{"role": "admin"},
		"phone":     "555",
	}, "createdAt")

	assert.Equal(t, bson.M{"phone": "555"}, out)
}

func TestCleanPatchKeepsOtherTimestamps(t *testing.T) {
	out := cleanPatch(bson.M{"createdAt": "2024-01-01", "loadingDate": "2024-02-01"}, "postedAt")
	assert.Contains(t, out, "createdAt")
	assert.Contains(t, out, "loadingDate")
}

func TestWithoutKeysCopies(t *testing.T) {
	in := bson.M{"a": 1, "b": 2}
	out := withoutKeys(in, "a")
	assert.Equal(t, bson.M{"b": 2}, out)
	assert.Len(t, in, 2)
}

func TestMembershipEnd(t *testing.T) {
	from := time.Date(2024, 1, 31, 17, 45, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), membershipEnd(from, 30))
}

func TestNoteCopyReparents(t *testing.T) {
	created := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	src := bson.M{
		"_id":          "n1",
		"parentType":   "contact",
		"parentId":     "c1",
		"title":        "Ödeme",
		"type":         "payment",
		"createdAt":    created,
		"transferId":   "old",
		"sourceNoteId": "old-src",
	}

	cp := noteCopy(src, "co1")
	assert.NotEqual(t, "n1", cp["_id"])
	assert.Equal(t, string(models.NoteParentUser), cp["parentType"])
	assert.Equal(t, "co1", cp["parentId"])
	assert.Equal(t, "Ödeme", cp["title"])
	assert.Equal(t, created, cp["createdAt"])
	assert.NotContains(t, cp, "transferId")
	assert.NotContains(t, cp, "sourceNoteId")
	assert.Equal(t, "contact", src["parentType"], "source must not change")
}

func TestMessageExtractsStoreText(t *testing.T) {
	assert.Equal(t, "Firma bulunamadı.", Message(notFound("Firma bulunamadı.")))
	assert.Equal(t, "", Message(assert.AnError))
}

func TestStoreErrorKinds(t *testing.T) {
	err := conflict(msgTransferRunning)
	assert.True(t, errors.Is(err, ErrConflict))
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, msgTransferRunning, Message(err))

	wrapped := fmt.Errorf("copy notes: %w", notFound(msgContactNotFound))
	assert.True(t, errors.Is(wrapped, ErrNotFound))
	assert.Equal(t, msgContactNotFound, Message(wrapped))

	assert.True(t, errors.Is(missing(mongo.ErrNoDocuments, msgContactNotFound), ErrNotFound))
	assert.Empty(t, Message(errors.New("connection reset")))
}
