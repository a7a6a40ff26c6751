package components

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/paulmach/orb"

	"tastemap/internal/engine/geo"
	"tastemap/internal/model"
	"tastemap/internal/tui/styles"
)

// Marker is one plottable point on the map panel.
type Marker struct {
	Position model.Coordinate
	Title    string
}

// overlay is a single-cell glyph drawn on top of the braille grid.
type overlay struct {
	col, row int
	ch       string
	style    lipgloss.Style
}

// MapView renders restaurant markers around a viewport center using
// Braille characters. The visible bound follows the viewport (center +
// zoom); it never auto-fits to the data, so panning feels stable.
type MapView struct {
	width    int
	height   int
	markers  []Marker
	selected int // index into markers, -1 if none

	center model.Coordinate
	zoom   int
	bound  orb.Bound
}

func NewMapView(width, height int) MapView {
	return MapView{
		width:    width,
		height:   height,
		selected: -1,
	}
}

func (m *MapView) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetViewport recenters the map. The geographic bound is derived from
// the zoom level the same way a web map tile grid would.
func (m *MapView) SetViewport(center model.Coordinate, zoom int) {
	m.center = center
	m.zoom = zoom
	m.bound = geo.ViewportBound(center, zoom)
}

func (m *MapView) SetMarkers(markers []Marker) {
	m.markers = markers
	if m.selected >= len(markers) {
		m.selected = -1
	}
}

func (m *MapView) SetSelected(idx int) {
	m.selected = idx
}

func (m MapView) Center() model.Coordinate { return m.center }
func (m MapView) Zoom() int                { return m.zoom }

// PanStep returns the degree offset one pan keypress moves the center,
// scaled to the current zoom and corrected for Mercator distortion.
func (m MapView) PanStep() (dLat, dLng float64) {
	span := geo.ZoomSpanDegrees(m.zoom)
	cosLat := math.Cos(m.center.Lat * math.Pi / 180.0)
	if cosLat < 0.01 {
		cosLat = 0.01
	}
	return span * 0.15, span * 0.15 / cosLat
}

// Braille character encoding: each char is a 2x4 dot grid, Unicode
// 0x2800 plus the raised dot bits.
var brailleDots = [8]rune{0x01, 0x02, 0x04, 0x08, 0x10, 0x20, 0x40, 0x80}

var dotPositions = [8][2]int{
	{0, 0}, {1, 0}, {2, 0}, {0, 1},
	{1, 1}, {2, 1}, {3, 0}, {3, 1},
}

func (m MapView) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}

	cols := m.width
	rows := m.height
	dotW := cols * 2
	dotH := rows * 4

	minLng, minLat := m.bound.Min[0], m.bound.Min[1]
	maxLng, maxLat := m.bound.Max[0], m.bound.Max[1]
	latRange := maxLat - minLat
	lngRange := maxLng - minLng
	if latRange <= 0 || lngRange <= 0 {
		return blank(cols, rows)
	}

	toDot := func(c model.Coordinate) (int, int) {
		x := int((c.Lng - minLng) / lngRange * float64(dotW-1))
		y := int((maxLat - c.Lat) / latRange * float64(dotH-1))
		return x, y
	}

	pointGrid := make([][]bool, dotH)
	for i := range pointGrid {
		pointGrid[i] = make([]bool, dotW)
	}
	for i, mk := range m.markers {
		if i == m.selected {
			continue // drawn as a cell overlay below
		}
		if !geo.InBound(m.bound, mk.Position) {
			continue
		}
		x, y := toDot(mk.Position)
		if x >= 0 && x < dotW && y >= 0 && y < dotH {
			pointGrid[y][x] = true
		}
	}

	// Cell overlays: viewport center crosshair, then the selected
	// marker on top.
	var overlays []overlay
	cx, cy := toDot(m.center)
	overlays = append(overlays, overlay{
		col:   cx / 2,
		row:   cy / 4,
		ch:    "+",
		style: lipgloss.NewStyle().Foreground(styles.Muted),
	})
	if m.selected >= 0 && m.selected < len(m.markers) {
		sel := m.markers[m.selected]
		if geo.InBound(m.bound, sel.Position) {
			sx, sy := toDot(sel.Position)
			overlays = append(overlays, overlay{
				col:   sx / 2,
				row:   sy / 4,
				ch:    "◉",
				style: lipgloss.NewStyle().Foreground(styles.Warning).Bold(true),
			})
		}
	}

	pointStyle := lipgloss.NewStyle().Foreground(styles.Success)

	var sb strings.Builder
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			if ov, ok := overlayAt(overlays, col, row); ok {
				sb.WriteString(ov.style.Render(ov.ch))
				continue
			}

			var val rune = 0x2800
			for dot := 0; dot < 8; dot++ {
				dy := row*4 + dotPositions[dot][0]
				dx := col*2 + dotPositions[dot][1]
				if dy < dotH && dx < dotW && pointGrid[dy][dx] {
					val |= brailleDots[dot]
				}
			}

			if val != 0x2800 {
				sb.WriteString(pointStyle.Render(string(val)))
			} else {
				sb.WriteRune(' ')
			}
		}
		if row < rows-1 {
			sb.WriteRune('\n')
		}
	}

	return sb.String()
}

// overlayAt returns the topmost overlay claiming a cell.
func overlayAt(overlays []overlay, col, row int) (overlay, bool) {
	for i := len(overlays) - 1; i >= 0; i-- {
		if overlays[i].col == col && overlays[i].row == row {
			return overlays[i], true
		}
	}
	return overlay{}, false
}

func blank(cols, rows int) string {
	line := strings.Repeat(" ", cols)
	lines := make([]string, rows)
	for i := range lines {
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}
