package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tastemap/internal/model"
)

func TestDistanceIdentity(t *testing.T) {
	p := model.Coordinate{Lat: 40.7128, Lng: -74.0060}

	d, err := Distance(p, p)
	require.NoError(t, err)
	assert.Equal(t, "0m", d)
}

func TestHaversineSymmetry(t *testing.T) {
	a := model.Coordinate{Lat: 40.7128, Lng: -74.0060}
	b := model.Coordinate{Lat: 34.0522, Lng: -118.2437}

	assert.InDelta(t, HaversineKm(a, b), HaversineKm(b, a), 1e-9)
}

func TestDistanceFormatting(t *testing.T) {
	origin := model.Coordinate{Lat: 40.7128, Lng: -74.0060}

	t.Run("kilometers with one decimal", func(t *testing.T) {
		// 0.01 degrees of latitude is about 1.11 km.
		d, err := Distance(origin, model.Coordinate{Lat: 40.7228, Lng: -74.0060})
		require.NoError(t, err)
		assert.Equal(t, "1.1km", d)
	})

	t.Run("meters below one kilometer", func(t *testing.T) {
		d, err := Distance(origin, model.Coordinate{Lat: 40.7178, Lng: -74.0060})
		require.NoError(t, err)
		assert.Equal(t, "556m", d)
	})
}

func TestDistanceInvalidCoordinates(t *testing.T) {
	valid := model.Coordinate{Lat: 40.7128, Lng: -74.0060}

	cases := []struct {
		name string
		c    model.Coordinate
	}{
		{"latitude above range", model.Coordinate{Lat: 91, Lng: 0}},
		{"latitude below range", model.Coordinate{Lat: -91, Lng: 0}},
		{"longitude above range", model.Coordinate{Lat: 0, Lng: 181}},
		{"longitude below range", model.Coordinate{Lat: 0, Lng: -181}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Distance(valid, tc.c)
			assert.ErrorIs(t, err, ErrInvalidCoordinate)

			_, err = Distance(tc.c, valid)
			assert.ErrorIs(t, err, ErrInvalidCoordinate)
		})
	}
}
