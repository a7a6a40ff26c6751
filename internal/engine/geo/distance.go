package geo

import (
	"errors"
	"fmt"
	"math"

	"tastemap/internal/model"
)

const earthRadiusKm = 6371.0

// ErrInvalidCoordinate is returned when a coordinate is non-finite or
// outside the valid lat/lng ranges.
var ErrInvalidCoordinate = errors.New("invalid coordinate")

// HaversineKm returns the great-circle distance between two points in km.
func HaversineKm(a, b model.Coordinate) float64 {
	dLat := (b.Lat - a.Lat) * math.Pi / 180.0
	dLng := (b.Lng - a.Lng) * math.Pi / 180.0
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(a.Lat*math.Pi/180.0)*math.Cos(b.Lat*math.Pi/180.0)*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusKm * c
}

// Distance returns the human-formatted distance between two coordinates:
// rounded meters below 1 km ("300m"), one decimal above ("1.1km").
func Distance(from, to model.Coordinate) (string, error) {
	if !from.Valid() || !to.Valid() {
		return "", ErrInvalidCoordinate
	}
	return FormatKm(HaversineKm(from, to)), nil
}

// FormatKm renders a distance in km as a short human string.
func FormatKm(km float64) string {
	if km < 1 {
		return fmt.Sprintf("%dm", int(math.Round(km*1000)))
	}
	return fmt.Sprintf("%.1fkm", km)
}
