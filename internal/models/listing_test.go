package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestListingFromDocumentVariants(t *testing.T) {
	base := func(freightType string, extra bson.M) bson.M {
		doc := bson.M{
			"_id":             "l1",
			"userId":          "u1",
			"freightType":     freightType,
			"originCity":      "İzmir",
			"destinationCity": "Bursa",
			"isActive":        true,
			"postedAt":        "2024-02-01T09:00:00.000Z",
		}
		for k, v := range extra {
			doc[k] = v
		}
		return doc
	}

	commercial, err := ListingFromDocument(base("Ticari", bson.M{"cargoType": "Paletli", "cargoWeight": 12.5, "vehicleNeeded": "Tır"}))
	require.NoError(t, err)
	c, ok := commercial.Details.(CommercialFreight)
	require.True(t, ok)
	assert.Equal(t, 12.5, c.CargoWeight)
	assert.Equal(t, "Tır", c.VehicleNeeded)

	household, err := ListingFromDocument(base("Evden Eve", bson.M{"residenceType": "3+1", "floor": int32(4), "hasElevator": true}))
	require.NoError(t, err)
	h, ok := household.Details.(HouseholdFreight)
	require.True(t, ok)
	assert.Equal(t, 4, h.Floor)
	assert.True(t, h.HasElevator)

	empty, err := ListingFromDocument(base("Boş Araç", bson.M{"vehicleType": "Kamyonet", "serviceTypes": bson.A{"Parsiyel"}}))
	require.NoError(t, err)
	e, ok := empty.Details.(EmptyVehicle)
	require.True(t, ok)
	assert.Equal(t, StringList{"Parsiyel"}, e.ServiceTypes)
}

func TestListingFromDocumentUnknownType(t *testing.T) {
	_, err := ListingFromDocument(bson.M{"_id": "l2", "freightType": "Uçak"})
	assert.ErrorIs(t, err, ErrUnknownFreightType)
}

func TestListingValidate(t *testing.T) {
	l := Listing{
		ListingBase: ListingBase{UserID: "u1", OriginCity: "Ankara", DestinationCity: "Konya"},
		Details:     CommercialFreight{CargoType: "Dökme", CargoWeightUnit: "ton"},
	}
	assert.NoError(t, l.Validate())

	l.Details = CommercialFreight{CargoType: "Dökme", CargoWeightUnit: "lb"}
	assert.Error(t, l.Validate())

	l.Details = nil
	assert.ErrorIs(t, l.Validate(), ErrUnknownFreightType)
}

func TestListingJSONCarriesVariantFields(t *testing.T) {
	l := Listing{
		ListingBase: ListingBase{ID: "l1", FreightType: FreightHousehold},
		Details:     HouseholdFreight{ResidenceType: "2+1", Floor: 3},
	}
	data, err := json.Marshal(l)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"residenceType":"2+1"`)
	assert.Contains(t, string(data), `"freightType":"Evden Eve"`)
}

func TestStringListJSON(t *testing.T) {
	var s StringList
	require.NoError(t, json.Unmarshal([]byte(`"a, b ,"`), &s))
	assert.Equal(t, StringList{"a", "b"}, s)

	require.NoError(t, json.Unmarshal([]byte(`["x"]`), &s))
	assert.Equal(t, StringList{"x"}, s)

	assert.Error(t, json.Unmarshal([]byte(`12`), &s))
}

func TestTransportOfferRequiresPrice(t *testing.T) {
	o := TransportOffer{UserID: "u1", OriginCity: "Mersin", DestinationCity: "Adana"}
	assert.ErrorIs(t, o.Validate(), ErrOfferWithoutPrice)

	price := 1500.0
	o.PriceTRY = &price
	assert.NoError(t, o.Validate())
}
