package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoordinateValid(t *testing.T) {
	cases := []struct {
		name string
		c    Coordinate
		want bool
	}{
		{"origin", Coordinate{}, true},
		{"new york", Coordinate{Lat: 40.7128, Lng: -74.0060}, true},
		{"poles", Coordinate{Lat: 90, Lng: 180}, true},
		{"antimeridian", Coordinate{Lat: -90, Lng: -180}, true},
		{"lat too high", Coordinate{Lat: 90.0001, Lng: 0}, false},
		{"lng too low", Coordinate{Lat: 0, Lng: -180.0001}, false},
		{"nan lat", Coordinate{Lat: math.NaN(), Lng: 0}, false},
		{"inf lng", Coordinate{Lat: 0, Lng: math.Inf(1)}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.c.Valid())
		})
	}
}
