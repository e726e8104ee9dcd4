package normalize

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

func TestCheckInput(t *testing.T) {
	ok := []bson.M{
		{},
		{"createdAt": "2024-01-01", "isActive": false},
		{"endDate": nil},
		{"endDate": ""},
	}
	for _, fields := range ok {
		if err := CheckInput(fields, testSchema); err != nil {
			t.Fatalf("fields %v: unexpected error %v", fields, err)
		}
	}

	bad := []bson.M{
		{"createdAt": "yesterday"},
		{"endDate": 20240101},
		{"isActive": "yes"},
	}
	for _, fields := range bad {
		if err := CheckInput(fields, testSchema); err == nil {
			t.Fatalf("fields %v: expected error", fields)
		}
	}
}

func TestStorageConvertsTimestamps(t *testing.T) {
	doc := Storage(bson.M{
		"createdAt": "2024-01-01T10:00:00.000Z",
		"endDate":   "",
		"name":      "x",
	}, testSchema)

	created, ok := doc["createdAt"].(time.Time)
	if !ok {
		t.Fatalf("expected time.Time, got %T", doc["createdAt"])
	}
	if !created.Equal(time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected createdAt %v", created)
	}
	if _, ok := doc["endDate"]; ok {
		t.Fatal("expected empty endDate to be dropped")
	}
	if doc["name"] != "x" {
		t.Fatal("expected other fields untouched")
	}
}
