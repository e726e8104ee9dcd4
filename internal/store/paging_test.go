package store

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestCompanyFilterComposition(t *testing.T) {
	f, err := companySpec.filter(Query{Filters: map[string]string{
		"city":     "İstanbul",
		"category": "  ",
		"unknown":  "x",
	}})
	require.NoError(t, err)

	assert.Equal(t, bson.M{
		"role":        "company",
		"isActive":    true,
		"addressCity": "İstanbul",
	}, f)
}

func TestListingFilterParsesBooleans(t *testing.T) {
	spec := pageSpec{
		collection: "x",
		sortField:  "postedAt",
		filters:    map[string]filterField{"continuous": {key: "isContinuous", boolean: true}},
		activeOnly: true,
	}
	f, err := spec.filter(Query{Filters: map[string]string{"continuous": "true"}})
	require.NoError(t, err)
	assert.Equal(t, true, f["isContinuous"])

	_, err = spec.filter(Query{Filters: map[string]string{"continuous": "maybe"}})
	assert.Error(t, err)
}

func TestAdminListsSkipActiveConstraint(t *testing.T) {
	f, err := contactSpec.filter(Query{})
	require.NoError(t, err)
	_, has := f["isActive"]
	assert.False(t, has)
}

func TestSortDirection(t *testing.T) {
	assert.True(t, listingSpec.isDescending(SortDefault), "listings default to newest first")
	assert.False(t, listingSpec.isDescending(SortAsc))
	assert.False(t, companySpec.isDescending(SortDefault), "companies default to A-Z")
	assert.True(t, companySpec.isDescending(SortDesc))
}

func TestCursorRoundTrip(t *testing.T) {
	posted := primitive.NewDateTimeFromTime(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	enc, err := encodeCursor(posted, "listing-9")
	require.NoError(t, err)

	c, err := decodeCursor(enc)
	require.NoError(t, err)
	assert.Equal(t, "listing-9", c.ID)
	assert.Equal(t, posted, c.Value)

	enc, err = encodeCursor("Çelik Nakliyat", "uid-3")
	require.NoError(t, err)
	c, err = decodeCursor(enc)
	require.NoError(t, err)
	assert.Equal(t, "Çelik Nakliyat", c.Value)
}

func TestDecodeCursorRejectsGarbage(t *testing.T) {
	_, err := decodeCursor("!!not-base64!!")
	assert.Error(t, err)

	empty, err := encodeCursor("x", "")
	require.NoError(t, err)
	_, err = decodeCursor(empty)
	assert.Error(t, err)
}

func TestKeysetWindow(t *testing.T) {
	w := keysetWindow("postedAt", true, cursorKey{Value: "v", ID: "id1"})
	assert.Equal(t, bson.M{"$or": bson.A{
		bson.M{"postedAt": bson.M{"$lt": "v"}},
		bson.M{"postedAt": "v", "_id": bson.M{"$lt": "id1"}},
	}}, w)

	w = keysetWindow("companyName", false, cursorKey{Value: "A", ID: "id2"})
	or := w["$or"].(bson.A)
	assert.Equal(t, bson.M{"companyName": bson.M{"$gt": "A"}}, or[0])
}

func TestNormalizePageSize(t *testing.T) {
	assert.Equal(t, DefaultPageSize, normalizePageSize(0))
	assert.Equal(t, DefaultPageSize, normalizePageSize(-3))
	assert.Equal(t, 7, normalizePageSize(7))
	assert.Equal(t, MaxPageSize, normalizePageSize(MaxPageSize+1))
}

func TestIndexHint(t *testing.T) {
	hint := listingSpec.indexHint(bson.M{"isActive": true, "originCity": "Ankara"}, true)
	assert.Equal(t, "db.listings.createIndex({ isActive: 1, originCity: 1, postedAt: -1, _id: -1 })", hint)

	hint = companySpec.indexHint(bson.M{"role": "company", "isActive": true}, false)
	assert.Contains(t, hint, `collation: { locale: "tr" }`)
}

func TestQueryErrorFromIndexFailure(t *testing.T) {
	err := mongo.CommandError{
		Code:    292,
		Message: "Sort exceeded memory limit, see https://dochub.mongodb.org/core/sort-memory for details",
	}
	qe := queryError(err, "db.listings.createIndex({ postedAt: -1 })")
	assert.Equal(t, "db.listings.createIndex({ postedAt: -1 })", qe.IndexHint)
	assert.Equal(t, "https://dochub.mongodb.org/core/sort-memory", qe.IndexURL)
	assert.NotEmpty(t, qe.Message)
}

func TestQueryErrorGeneric(t *testing.T) {
	qe := queryError(errors.New("connection refused"), "hint")
	assert.Empty(t, qe.IndexHint)
	assert.Empty(t, qe.IndexURL)
	assert.Equal(t, "Liste yüklenirken bir hata oluştu.", qe.Message)
}
