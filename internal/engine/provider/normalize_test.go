package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tastemap/internal/model"
)

var testOrigin = model.Coordinate{Lat: 40.7128, Lng: -74.0060}

func TestNormalizeDefaults(t *testing.T) {
	rec := RawRecord{
		"latitude":  40.7138,
		"longitude": -74.0050,
	}

	r, ok := Normalize(rec, testOrigin, 3)
	require.True(t, ok)

	assert.Equal(t, "restaurant-3", r.ID)
	assert.Equal(t, "Restaurant", r.Name)
	assert.Equal(t, "Restaurant", r.Category)
	assert.Equal(t, model.PriceModerate, r.Price)
	assert.Equal(t, placeholderImages[3], r.Image)
	assert.Equal(t, genericDescriptions[3], r.Description)
	assert.Equal(t, "Address not available", r.Address)
	assert.Equal(t, "Phone not available", r.Phone)
	assert.Equal(t, "Website not available", r.Website)
	assert.Equal(t, "Hours not available", r.Hours)
	assert.Zero(t, r.Rating)
	assert.Zero(t, r.Reviews)
	assert.NotEmpty(t, r.Distance)
}

func TestNormalizeTravelAdvisorRecord(t *testing.T) {
	rec := RawRecord{
		"location_id":    "8014253",
		"name":           "Katz's Delicatessen",
		"latitude":       "40.722233", // string floats happen
		"longitude":      "-73.987566",
		"rating":         "4.5",
		"num_reviews":    "12000",
		"price_level":    "$$ - $$$",
		"address_string": "205 E Houston St, New York",
		"phone":          "+1 212-254-2246",
		"website":        "https://katzsdelicatessen.com",
		"open_now_text":  "Open until 10:45PM",
		"cuisine": []any{
			map[string]any{"name": "Deli"},
		},
	}

	r, ok := Normalize(rec, testOrigin, 0)
	require.True(t, ok)

	assert.Equal(t, "8014253", r.ID)
	assert.Equal(t, "Katz's Delicatessen", r.Name)
	assert.InDelta(t, 4.5, r.Rating, 1e-9)
	assert.Equal(t, 12000, r.Reviews)
	assert.Equal(t, model.PriceExpensive, r.Price)
	assert.Equal(t, "Deli", r.Category)
	assert.Equal(t, "205 E Houston St, New York", r.Address)
	assert.Equal(t, "Open until 10:45PM", r.Hours)
	assert.InDelta(t, 40.722233, r.Position.Lat, 1e-9)
}

func TestNormalizePlacesRecord(t *testing.T) {
	rec := RawRecord{
		"place_id": "ChIJ123",
		"name":     "Blue Ribbon Sushi",
		"geometry": map[string]any{
			"location": map[string]any{"lat": 40.7265, "lng": -74.0025},
		},
		"rating":             4.4,
		"user_ratings_total": 1850.0,
		"price_level":        3.0,
		"vicinity":           "119 Sullivan St",
		"types":              []any{"meal_takeaway", "restaurant", "food"},
		"opening_hours":      map[string]any{"open_now": true},
	}

	r, ok := Normalize(rec, testOrigin, 0)
	require.True(t, ok)

	assert.Equal(t, "ChIJ123", r.ID)
	assert.Equal(t, 1850, r.Reviews)
	assert.Equal(t, model.PriceExpensive, r.Price)
	assert.Equal(t, "Takeaway", r.Category)
	assert.Equal(t, "119 Sullivan St", r.Address)
	assert.Equal(t, "Open now", r.Hours)
}

func TestNormalizeDropsBadCoordinates(t *testing.T) {
	cases := []struct {
		name string
		rec  RawRecord
	}{
		{"missing latitude", RawRecord{"longitude": -74.0}},
		{"missing both", RawRecord{"name": "Ghost Kitchen"}},
		{"latitude out of range", RawRecord{"latitude": 200.0, "longitude": -74.0}},
		{"longitude out of range", RawRecord{"latitude": 40.0, "longitude": 999.0}},
		{"non-numeric latitude", RawRecord{"latitude": "north", "longitude": -74.0}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, ok := Normalize(tc.rec, testOrigin, 0)
			assert.False(t, ok)
		})
	}
}

func TestNormalizePrice(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want string
	}{
		{"level 1", 1.0, model.PriceCheap},
		{"level 2", 2.0, model.PriceModerate},
		{"level 3", 3, model.PriceExpensive},
		{"level 4", 4.0, model.PriceLuxury},
		{"level out of range", 9.0, model.PriceModerate},
		{"single dollar", "$", model.PriceCheap},
		{"dollar range reads as upper tier", "$$ - $$$", model.PriceExpensive},
		{"four dollars", "$$$$", model.PriceLuxury},
		{"moderate keyword", "Moderate", model.PriceModerate},
		{"inexpensive keyword", "Inexpensive", model.PriceCheap},
		{"expensive keyword", "Expensive", model.PriceExpensive},
		{"very expensive keyword", "Very Expensive", model.PriceLuxury},
		{"unknown string", "cheap eats", model.PriceModerate},
		{"nil", nil, model.PriceModerate},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizePrice(tc.in))
		})
	}
}

func TestFilterFields(t *testing.T) {
	t.Run("nested category name", func(t *testing.T) {
		rec := RawRecord{
			"name":     "Joe's Pizza",
			"category": map[string]any{"name": "Pizza Place"},
		}
		category, name := FilterFields(rec)
		assert.Equal(t, "Pizza Place", category)
		assert.Equal(t, "Joe's Pizza", name)
	})

	t.Run("first type tag", func(t *testing.T) {
		rec := RawRecord{
			"name":  "Sky Deck",
			"types": []any{"tourist_attraction", "point_of_interest"},
		}
		category, _ := FilterFields(rec)
		assert.Equal(t, "tourist_attraction", category)
	})

	t.Run("first cuisine entry", func(t *testing.T) {
		rec := RawRecord{
			"cuisine": []any{map[string]any{"name": "Thai"}},
		}
		category, _ := FilterFields(rec)
		assert.Equal(t, "Thai", category)
	})
}
