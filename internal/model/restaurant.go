package model

import "math"

// Coordinate is a WGS84 latitude/longitude pair.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Valid reports whether both components are finite and inside the
// -90..90 / -180..180 ranges. Out-of-range values are rejected, never
// clamped.
func (c Coordinate) Valid() bool {
	if math.IsNaN(c.Lat) || math.IsInf(c.Lat, 0) {
		return false
	}
	if math.IsNaN(c.Lng) || math.IsInf(c.Lng, 0) {
		return false
	}
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

// Price tiers as rendered on result cards.
const (
	PriceCheap     = "$"
	PriceModerate  = "$$"
	PriceExpensive = "$$$"
	PriceLuxury    = "$$$$"
)

// Restaurant is the canonical record every provider response is
// normalized into. Instances are built fresh per search response and
// never mutated afterwards.
type Restaurant struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Rating      float64    `json:"rating"`
	Reviews     int        `json:"reviews"`
	Price       string     `json:"price"`
	Category    string     `json:"category"`
	Image       string     `json:"image"`
	Description string     `json:"description"`
	Position    Coordinate `json:"position"`
	Distance    string     `json:"distance"`
	Address     string     `json:"address"`
	Phone       string     `json:"phone"`
	Website     string     `json:"website"`
	Hours       string     `json:"hours"`
}

// SearchParams holds one search invocation's inputs.
type SearchParams struct {
	Location  Coordinate
	RadiusM   int
	Category  string
	MinRating float64
	MaxPrice  int
}

// Viewport describes the map's visible region.
type Viewport struct {
	Center Coordinate
	Zoom   int
}
