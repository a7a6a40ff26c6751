package views

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tastemap/internal/engine/geo"
	"tastemap/internal/model"
	"tastemap/internal/tui/styles"
)

type searchMode int

const (
	modeMyLocation searchMode = iota
	modeCoords
)

// Field indices; fieldMode is a virtual field (not a textinput)
const (
	fieldMode = iota
	fieldLat
	fieldLng
	fieldRadius
	fieldMinRating
	fieldCount
)

type SearchModel struct {
	inputs   []textinput.Model
	mode     searchMode
	category string
	focused  int
	err      string
	locating bool
}

type locatedMsg struct {
	pos model.Coordinate
	err error
}

func NewSearchModel(category string) SearchModel {
	if category == "" {
		category = "restaurant"
	}

	inputs := make([]textinput.Model, fieldCount)

	inputs[fieldMode] = textinput.New() // placeholder, never used
	inputs[fieldLat] = newInput("40.7128", "", 15)
	inputs[fieldLng] = newInput("-74.0060", "", 15)
	inputs[fieldRadius] = newInput("1000", "", 10)
	inputs[fieldMinRating] = newInput("0", "", 5)

	return SearchModel{
		inputs:   inputs,
		mode:     modeMyLocation,
		category: category,
		focused:  fieldMode,
	}
}

func newInput(placeholder, value string, width int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 100
	if width > 0 {
		ti.Width = width
	}
	if value != "" {
		ti.SetValue(value)
	}
	return ti
}

func (m SearchModel) Init() tea.Cmd {
	return nil
}

func (m SearchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case locatedMsg:
		m.locating = false
		if msg.err != nil {
			m.err = msg.err.Error()
			return m, nil
		}
		return m, m.startExplore(msg.pos, "My Location")

	case tea.KeyMsg:
		if m.locating {
			if msg.String() == "esc" {
				m.locating = false
			}
			return m, nil
		}

		key := msg.String()

		switch key {
		case "esc":
			return m, func() tea.Msg { return NavigateToHome{} }

		case "up":
			m.err = ""
			return m, m.focusPrev()

		case "down", "tab":
			m.err = ""
			return m, m.focusNext()

		case "shift+tab":
			m.err = ""
			return m, m.focusPrev()

		case "enter":
			if cmd := m.submit(); cmd != nil {
				return m, cmd
			}

		case "left":
			if m.focused == fieldMode {
				m.mode = modeMyLocation
				return m, nil
			}

		case "right":
			if m.focused == fieldMode {
				m.mode = modeCoords
				return m, nil
			}
		}
	}

	// Update focused textinput (skip mode field)
	var cmd tea.Cmd
	if m.focused != fieldMode && m.focused >= 0 && m.focused < fieldCount {
		m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	}

	return m, cmd
}

func (m *SearchModel) focusNext() tea.Cmd {
	if m.focused != fieldMode {
		m.inputs[m.focused].Blur()
	}
	m.focused++
	m.focused = m.skipField(m.focused, 1)
	if m.focused >= fieldCount {
		m.focused = fieldMode
	}
	if m.focused == fieldMode {
		return nil
	}
	m.inputs[m.focused].Focus()
	return textinput.Blink
}

func (m *SearchModel) focusPrev() tea.Cmd {
	if m.focused != fieldMode {
		m.inputs[m.focused].Blur()
	}
	m.focused--
	m.focused = m.skipField(m.focused, -1)
	if m.focused < 0 {
		m.focused = fieldMinRating
		m.inputs[m.focused].Focus()
		return textinput.Blink
	}
	if m.focused == fieldMode {
		return nil
	}
	m.inputs[m.focused].Focus()
	return textinput.Blink
}

func (m *SearchModel) skipField(idx, dir int) int {
	for idx > fieldMode && idx < fieldCount {
		if m.mode == modeMyLocation && (idx == fieldLat || idx == fieldLng) {
			idx += dir
			continue
		}
		break
	}
	return idx
}

func (m *SearchModel) submit() tea.Cmd {
	if m.mode == modeMyLocation {
		m.locating = true
		m.err = ""
		return func() tea.Msg {
			pos, err := geo.NewLocator(slog.Default()).CurrentPosition(context.Background())
			return locatedMsg{pos: pos, err: err}
		}
	}

	latStr := strings.TrimSpace(m.inputs[fieldLat].Value())
	lngStr := strings.TrimSpace(m.inputs[fieldLng].Value())
	if latStr == "" || lngStr == "" {
		m.err = "Lat and Lng are required"
		return nil
	}
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		m.err = "Latitude must be a number"
		return nil
	}
	lng, err := strconv.ParseFloat(lngStr, 64)
	if err != nil {
		m.err = "Longitude must be a number"
		return nil
	}
	pos := model.Coordinate{Lat: lat, Lng: lng}
	if !pos.Valid() {
		m.err = "Coordinates out of range"
		return nil
	}

	label := fmt.Sprintf("%.4f, %.4f", lat, lng)
	return m.startExplore(pos, label)
}

func (m *SearchModel) startExplore(pos model.Coordinate, label string) tea.Cmd {
	radiusM := 0
	if s := strings.TrimSpace(m.inputs[fieldRadius].Value()); s != "" {
		r, err := strconv.Atoi(s)
		if err != nil || r < 1 {
			m.err = "Radius must be a positive number of meters"
			return nil
		}
		radiusM = r
	}

	minRating := 0.0
	if s := strings.TrimSpace(m.inputs[fieldMinRating].Value()); s != "" {
		r, err := strconv.ParseFloat(s, 64)
		if err != nil || r < 0 || r > 5 {
			m.err = "Min rating must be between 0 and 5"
			return nil
		}
		minRating = r
	}

	category := m.category
	return func() tea.Msg {
		return StartExploreMsg{
			Center:    pos,
			Label:     label,
			Category:  category,
			RadiusM:   radiusM,
			MinRating: minRating,
		}
	}
}

func (m SearchModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Find Restaurants") + "\n\n")

	catLabel := styles.Label.Render("Category:")
	catValue := styles.Value.Render(m.category)
	b.WriteString(fmt.Sprintf("%s %s\n", catLabel, catValue))

	// Mode selector
	b.WriteString(m.renderMode())
	b.WriteString("\n")

	if m.mode == modeCoords {
		b.WriteString(m.renderField("Latitude:", fieldLat))
		b.WriteString(m.renderField("Longitude:", fieldLng))
	}

	b.WriteString(m.renderField("Radius (m):", fieldRadius))
	b.WriteString(m.renderField("Min rating:", fieldMinRating))

	if m.locating {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(styles.Secondary).Italic(true).
			Render("  Detecting your location..."))
	}

	if m.err != "" {
		b.WriteString("\n")
		b.WriteString(styles.ErrorText.Render("  " + m.err))
	}

	b.WriteString("\n\n")
	b.WriteString(styles.StatusBar.Render("enter search • tab next • esc back"))

	return styles.Border.Render(b.String())
}

func (m SearchModel) renderMode() string {
	label := styles.Label.Render("Origin:")

	active := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
	inactive := lipgloss.NewStyle().Foreground(styles.Muted)

	var locStr, coordsStr string
	if m.mode == modeMyLocation {
		locStr = active.Render("< My Location >")
		coordsStr = inactive.Render("Coordinates")
	} else {
		locStr = inactive.Render("My Location")
		coordsStr = active.Render("< Coordinates >")
	}

	line := fmt.Sprintf("%s  %s   %s", label, locStr, coordsStr)

	if m.focused == fieldMode {
		indicator := lipgloss.NewStyle().Foreground(styles.Secondary).Render(" ←→")
		line += indicator
	}

	return line + "\n"
}

func (m SearchModel) renderField(label string, idx int) string {
	l := styles.Label.Render(label)
	v := m.inputs[idx].View()
	return fmt.Sprintf("%s %s\n", l, v)
}

// Messages
type NavigateToHome struct{}

type StartExploreMsg struct {
	Center    model.Coordinate
	Label     string
	Category  string
	RadiusM   int
	MinRating float64
}
