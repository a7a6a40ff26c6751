package provider

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"

	"tastemap/internal/engine/geo"
	"tastemap/internal/model"
)

// Synthetic data tables. Which entries a given origin selects is
// deterministic; see MockRestaurants.
var mockNames = []string{
	"The Golden Fork",
	"Bella Vista",
	"Harbor House",
	"The Rustic Table",
	"Saffron Garden",
	"Blue Plate Bistro",
	"The Copper Kettle",
	"Luna Rossa",
	"Ember & Oak",
	"The Daily Catch",
	"Casa Verde",
	"Maple & Thyme",
	"The Velvet Spoon",
	"Old Town Grill",
	"Juniper Kitchen",
	"The Wandering Chef",
	"Sol y Mar",
	"Cedar Street Eatery",
	"The Brass Lantern",
	"Wild Basil",
}

var mockTypes = []struct {
	name string
	icon string
}{
	{"Italian", "🍝"},
	{"Japanese", "🍣"},
	{"Mexican", "🌮"},
	{"American", "🍔"},
	{"Thai", "🍜"},
	{"Mediterranean", "🥗"},
	{"Indian", "🥘"},
	{"French", "🥖"},
	{"Seafood", "🍤"},
	{"Steakhouse", "🍖"},
}

var mockStreets = []string{
	"Main Street",
	"Oak Avenue",
	"Harbor Road",
	"Elm Street",
	"Market Street",
	"Sunset Boulevard",
	"River Lane",
	"Park Avenue",
}

const mockResultCount = 5

// MockRestaurants generates five synthetic restaurants around the origin.
// The name, category, street, and description of each slot are selected by
// a seed derived from the origin, so the same coordinate always yields the
// same venues; ratings, review counts, price tiers, and positional jitter
// are drawn from the process RNG and vary between calls.
func MockRestaurants(origin model.Coordinate) []model.Restaurant {
	locationHash := math.Abs(origin.Lat*1000 + origin.Lng*1000)
	seed := int(locationHash) % 1000

	restaurants := make([]model.Restaurant, 0, mockResultCount)
	for i := 0; i < mockResultCount; i++ {
		nameIdx := (seed + i*7) % len(mockNames)
		typeIdx := (seed + i*11) % len(mockTypes)
		streetIdx := (seed + i*13) % len(mockStreets)
		descIdx := (seed + i*17) % len(genericDescriptions)

		rating := math.Round((3.5+rand.Float64()*1.5)*10) / 10
		reviews := rand.IntN(2000) + 100
		price := strings.Repeat("$", rand.IntN(3)+1)

		pos := model.Coordinate{
			Lat: origin.Lat + (rand.Float64()-0.5)*0.01,
			Lng: origin.Lng + (rand.Float64()-0.5)*0.01,
		}
		distance, _ := geo.Distance(origin, pos)

		hours := "Open now"
		if rand.Float64() <= 0.3 {
			hours = "Closed"
		}

		restaurants = append(restaurants, model.Restaurant{
			ID:          fmt.Sprintf("mock-%d-%d", int(locationHash), i),
			Name:        mockNames[nameIdx],
			Rating:      rating,
			Reviews:     reviews,
			Price:       price,
			Category:    mockTypes[typeIdx].name,
			Image:       mockTypes[typeIdx].icon,
			Description: genericDescriptions[descIdx],
			Position:    pos,
			Distance:    distance,
			Address: fmt.Sprintf("%d %s",
				rand.IntN(999)+1, mockStreets[streetIdx]),
			Phone: fmt.Sprintf("(%d) %d-%d",
				rand.IntN(900)+100, rand.IntN(900)+100, rand.IntN(9000)+1000),
			Website: defaultWebsite,
			Hours:   hours,
		})
	}

	return restaurants
}
