package models

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestProfileFromDocumentCompany(t *testing.T) {
	p, err := ProfileFromDocument(bson.M{
		"_id":          "uid-1",
		"role":         "company",
		"email":        "info@acme.com.tr",
		"isActive":     true,
		"companyName":  "Acme Lojistik",
		"addressCity":  "İstanbul",
		"vehicleTypes": "Tır, Kamyon",
		"createdAt":    "2024-01-01T00:00:00.000Z",
	})
	require.NoError(t, err)

	company, ok := p.Company()
	require.True(t, ok)
	assert.Equal(t, "Acme Lojistik", company.CompanyName)
	assert.Equal(t, StringList{"Tır", "Kamyon"}, company.VehicleTypes)
	assert.Equal(t, "Acme Lojistik", p.DisplayName())

	_, isIndividual := p.Individual()
	assert.False(t, isIndividual)
}

func TestProfileFromDocumentIndividual(t *testing.T) {
	p, err := ProfileFromDocument(bson.M{
		"_id":       "uid-2",
		"role":      "individual",
		"firstName": "Ayşe",
		"lastName":  "Yılmaz",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ayşe Yılmaz", p.DisplayName())
	assert.NoError(t, p.Validate())
}

func TestProfileFromDocumentUnknownRole(t *testing.T) {
	_, err := ProfileFromDocument(bson.M{"_id": "uid-3", "role": "driver"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownRole))
}

func TestProfileDocumentFollowsDetails(t *testing.T) {
	p := UserProfile{
		ProfileBase: ProfileBase{Role: RoleIndividual, Email: "a@b.co", IsActive: true},
		Details:     CompanyDetails{CompanyName: "Beta Nakliyat"},
	}
	doc, err := p.Document()
	require.NoError(t, err)
	assert.Equal(t, "company", doc["role"])
	assert.Equal(t, "Beta Nakliyat", doc["companyName"])
	assert.Equal(t, true, doc["isActive"])
	_, hasID := doc["_id"]
	assert.False(t, hasID, "empty id must not be stored")
}

func TestProfileJSONIsFlat(t *testing.T) {
	p := UserProfile{
		ProfileBase: ProfileBase{ID: "uid-1", Role: RoleCompany, IsActive: true},
		Details:     CompanyDetails{CompanyName: "Acme", AddressCity: "Ankara"},
	}
	data, err := json.Marshal(p)
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, "uid-1", out["id"])
	assert.Equal(t, "Acme", out["companyName"])
	assert.Equal(t, "Ankara", out["addressCity"])
	assert.NotContains(t, out, "Details")
}

func TestProfileValidateReportsJSONNames(t *testing.T) {
	p := UserProfile{
		ProfileBase: ProfileBase{Role: RoleCompany, Email: "not-an-email"},
		Details:     CompanyDetails{},
	}
	err := p.Validate()
	require.Error(t, err)
	assert.Contains(t, ValidationMessage(err), "email")
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole(" company ")
	require.NoError(t, err)
	assert.Equal(t, RoleCompany, r)

	_, err = ParseRole("admin")
	assert.ErrorIs(t, err, ErrUnknownRole)
}
