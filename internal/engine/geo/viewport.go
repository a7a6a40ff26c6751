package geo

import (
	"math"

	"github.com/paulmach/orb"

	"tastemap/internal/model"
)

// Map viewports are modeled after web map tiles: at zoom z one tile covers
// 360/2^z degrees, and the visible panel spans roughly two tiles of
// latitude.
const viewportTiles = 2.0

// ZoomSpanDegrees converts a zoom level to the latitude span (degrees)
// visible in the map panel.
func ZoomSpanDegrees(zoom int) float64 {
	return 360.0 / math.Pow(2, float64(zoom)) * viewportTiles
}

// ViewportBound returns the geographic bounding box visible for a map
// centered at center with the given zoom. Longitude span is widened for
// Mercator distortion away from the equator.
func ViewportBound(center model.Coordinate, zoom int) orb.Bound {
	latSpan := ZoomSpanDegrees(zoom)
	cosLat := math.Cos(center.Lat * math.Pi / 180.0)
	if cosLat < 0.01 {
		cosLat = 0.01
	}
	lngSpan := latSpan / cosLat

	return orb.Bound{
		Min: orb.Point{center.Lng - lngSpan/2, center.Lat - latSpan/2},
		Max: orb.Point{center.Lng + lngSpan/2, center.Lat + latSpan/2},
	}
}

// InBound reports whether a coordinate falls inside the bound.
func InBound(b orb.Bound, c model.Coordinate) bool {
	return b.Contains(orb.Point{c.Lng, c.Lat}) // orb.Point is [lng, lat]
}

// CullMarkers returns the restaurants whose positions fall inside the
// viewport bound, preserving order.
func CullMarkers(b orb.Bound, restaurants []model.Restaurant) []model.Restaurant {
	var visible []model.Restaurant
	for _, r := range restaurants {
		if InBound(b, r.Position) {
			visible = append(visible, r)
		}
	}
	return visible
}
