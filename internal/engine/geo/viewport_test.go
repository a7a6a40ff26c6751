package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tastemap/internal/model"
)

func TestZoomSpanDegrees(t *testing.T) {
	// Each zoom step halves the visible span.
	assert.InDelta(t, ZoomSpanDegrees(14)*0.5, ZoomSpanDegrees(15), 1e-12)
	assert.Greater(t, ZoomSpanDegrees(10), ZoomSpanDegrees(16))
}

func TestViewportBoundContainsCenter(t *testing.T) {
	center := model.Coordinate{Lat: 40.7128, Lng: -74.0060}
	b := ViewportBound(center, 15)

	assert.True(t, InBound(b, center))
	assert.False(t, InBound(b, model.Coordinate{Lat: 41.7128, Lng: -74.0060}))
}

func TestViewportBoundWidensAwayFromEquator(t *testing.T) {
	atEquator := ViewportBound(model.Coordinate{Lat: 0, Lng: 0}, 14)
	atHighLat := ViewportBound(model.Coordinate{Lat: 60, Lng: 0}, 14)

	equatorSpan := atEquator.Max[0] - atEquator.Min[0]
	highLatSpan := atHighLat.Max[0] - atHighLat.Min[0]
	assert.Greater(t, highLatSpan, equatorSpan)
}

func TestCullMarkers(t *testing.T) {
	center := model.Coordinate{Lat: 40.7128, Lng: -74.0060}
	b := ViewportBound(center, 15)

	inside := model.Restaurant{ID: "in", Position: center}
	outside := model.Restaurant{ID: "out", Position: model.Coordinate{Lat: 50, Lng: 10}}

	visible := CullMarkers(b, []model.Restaurant{outside, inside, outside})
	assert.Len(t, visible, 1)
	assert.Equal(t, "in", visible[0].ID)
}
