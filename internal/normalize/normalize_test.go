package normalize

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var testSchema = Schema{
	Timestamps:         []string{"createdAt"},
	OptionalTimestamps: []string{"endDate"},
	DefaultTrue:        []string{"isActive"},
}

func freezeNow(t *testing.T, at time.Time) {
	t.Helper()
	prev := now
	now = func() time.Time { return at }
	t.Cleanup(func() { now = prev })
}

func TestDocumentConvertsStoredTimestamps(t *testing.T) {
	created := time.Date(2024, 3, 5, 10, 30, 0, 0, time.UTC)
	ends := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)

	doc := Document("abc", bson.M{
		"createdAt": primitive.NewDateTimeFromTime(created),
		"endDate":   primitive.Timestamp{T: uint32(ends.Unix())},
	}, testSchema)

	if doc["createdAt"] != "2024-03-05T10:30:00.000Z" {
		t.Fatalf("expected ISO createdAt, got %v", doc["createdAt"])
	}
	if doc["endDate"] != "2024-12-31T00:00:00.000Z" {
		t.Fatalf("expected ISO endDate, got %v", doc["endDate"])
	}
}

func TestDocumentFallsBackToNowForBadRequiredTimestamp(t *testing.T) {
	freezeNow(t, time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC))

	for _, value := range []interface{}{nil, "not a date", 42} {
		doc := Document("x", bson.M{"createdAt": value}, testSchema)
		if doc["createdAt"] != "2025-01-02T03:04:05.000Z" {
			t.Fatalf("value %v: expected fallback to now, got %v", value, doc["createdAt"])
		}
	}
}

func TestDocumentPassesThroughParseableStrings(t *testing.T) {
	for _, value := range []string{"2024-01-01", "2024-01-01T08:00:00Z", "2024-01-01T08:00:00"} {
		doc := Document("x", bson.M{"createdAt": value}, testSchema)
		if doc["createdAt"] != value {
			t.Fatalf("expected %q to pass through, got %v", value, doc["createdAt"])
		}
	}
}

func TestDocumentOmitsMissingOptionalTimestamp(t *testing.T) {
	doc := Document("x", bson.M{"endDate": nil}, testSchema)
	if _, ok := doc["endDate"]; ok {
		t.Fatalf("expected endDate to be omitted, got %v", doc["endDate"])
	}
}

func TestDocumentDefaultsIsActive(t *testing.T) {
	cases := []struct {
		raw  bson.M
		want bool
	}{
		{bson.M{}, true},
		{bson.M{"isActive": nil}, true},
		{bson.M{"isActive": false}, false},
		{bson.M{"isActive": true}, true},
		{bson.M{"isActive": "no"}, true},
	}
	for _, tc := range cases {
		doc := Document("x", tc.raw, testSchema)
		if doc["isActive"] != tc.want {
			t.Fatalf("raw %v: expected isActive=%v, got %v", tc.raw, tc.want, doc["isActive"])
		}
	}
}

func TestDocumentIDComesFromArgument(t *testing.T) {
	doc := Document("real", bson.M{"id": "fake", "_id": "other", "name": "A"}, testSchema)
	if doc["_id"] != "real" {
		t.Fatalf("expected _id=real, got %v", doc["_id"])
	}
	if _, ok := doc["id"]; ok {
		t.Fatal("expected payload id to be dropped")
	}
	if doc["name"] != "A" {
		t.Fatalf("expected other fields preserved, got %v", doc["name"])
	}
}

func TestDocumentDoesNotMutateInput(t *testing.T) {
	raw := bson.M{"createdAt": primitive.NewDateTimeFromTime(time.Now())}
	Document("x", raw, testSchema)
	if _, ok := raw["createdAt"].(primitive.DateTime); !ok {
		t.Fatalf("expected raw document untouched, got %T", raw["createdAt"])
	}
}

type sample struct {
	ID        string `bson:"_id"`
	Name      string `bson:"name"`
	IsActive  bool   `bson:"isActive"`
	CreatedAt string `bson:"createdAt"`
	EndDate   string `bson:"endDate,omitempty"`
}

func TestDecodeIntoStruct(t *testing.T) {
	got, err := Decode[sample]("s1", bson.M{
		"_id":       primitive.NewObjectID(),
		"name":      "Kargo",
		"createdAt": primitive.NewDateTimeFromTime(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
	}, testSchema)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if got.ID != "s1" || got.Name != "Kargo" || !got.IsActive {
		t.Fatalf("unexpected decode result %+v", got)
	}
	if got.CreatedAt != "2024-01-01T00:00:00.000Z" {
		t.Fatalf("unexpected createdAt %q", got.CreatedAt)
	}
	if got.EndDate != "" {
		t.Fatalf("expected empty endDate, got %q", got.EndDate)
	}
}

func TestID(t *testing.T) {
	oid := primitive.NewObjectID()
	if ID(bson.M{"_id": oid}) != oid.Hex() {
		t.Fatal("expected ObjectID hex")
	}
	if ID(bson.M{"_id": "uid-1"}) != "uid-1" {
		t.Fatal("expected string id")
	}
	if ID(bson.M{}) != "" {
		t.Fatal("expected empty id")
	}
}
