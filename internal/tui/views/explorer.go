package views

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tastemap/internal/config"
	"tastemap/internal/engine/provider"
	"tastemap/internal/engine/search"
	"tastemap/internal/model"
	"tastemap/internal/tui/components"
	"tastemap/internal/tui/styles"
)

const (
	startZoom = 15
	maxZoom   = 18
	minZoom   = 3
)

// ExplorerModel shows the map panel next to the result cards. Panning or
// zooming the map feeds the viewport controller, which debounces and
// re-runs the search around the new center.
type ExplorerModel struct {
	ctrl *search.Controller
	mapv components.MapView

	label    string
	category string

	restaurants []model.Restaurant
	selected    int
	loading     bool
	errMsg      string
	showResults bool

	center model.Coordinate
	zoom   int

	spin   spinner.Model
	width  int
	height int
}

type snapshotMsg search.Snapshot

type updatesClosedMsg struct{}

func NewExplorerModel(cfg config.Config, msg StartExploreMsg) ExplorerModel {
	logger := slog.Default()

	client := provider.NewClient(provider.Config{
		RapidAPIKey:      cfg.RapidAPIKey,
		PlacesAPIKey:     cfg.PlacesAPIKey,
		TravelAdvisorURL: cfg.TravelAdvisorURL,
		PlacesURL:        cfg.PlacesURL,
	}, logger)
	orch := search.NewOrchestrator(
		provider.NewTravelAdvisor(client),
		provider.NewPlaces(client),
		logger,
	)

	radiusM := msg.RadiusM
	if radiusM == 0 {
		radiusM = cfg.RadiusM
	}
	ctrl := search.NewController(orch, search.Options{
		MinZoom:   cfg.MinZoom,
		Debounce:  cfg.Debounce,
		RadiusM:   radiusM,
		Category:  msg.Category,
		MinRating: msg.MinRating,
		MaxPrice:  cfg.MaxPrice,
	}, logger)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.Primary)

	m := ExplorerModel{
		ctrl:     ctrl,
		label:    msg.Label,
		category: msg.Category,
		selected: -1,
		center:   msg.Center,
		zoom:     startZoom,
		spin:     sp,
	}
	m.mapv = components.NewMapView(0, 0)
	m.mapv.SetViewport(msg.Center, startZoom)
	return m
}

func (m ExplorerModel) Init() tea.Cmd {
	ctrl, center, zoom := m.ctrl, m.center, m.zoom
	kick := func() tea.Msg {
		ctrl.SetViewport(center, zoom)
		return nil
	}
	return tea.Batch(m.spin.Tick, kick, m.waitForSnapshot())
}

// waitForSnapshot blocks on the controller's update stream and converts
// each snapshot into a bubbletea message.
func (m ExplorerModel) waitForSnapshot() tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		snap, ok := <-ctrl.Updates()
		if !ok {
			return updatesClosedMsg{}
		}
		return snapshotMsg(snap)
	}
}

func (m ExplorerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.mapv.SetSize(m.mapWidth(), m.mapHeight())
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case snapshotMsg:
		m.restaurants = msg.Restaurants
		m.loading = msg.Loading
		m.errMsg = msg.Err
		m.showResults = msg.ShouldShowResults
		markers := make([]components.Marker, len(m.restaurants))
		for i, r := range m.restaurants {
			markers[i] = components.Marker{Position: r.Position, Title: r.Name}
		}
		m.mapv.SetMarkers(markers)
		if m.selected >= len(m.restaurants) {
			m.selected = -1
			m.mapv.SetSelected(-1)
		}
		return m, m.waitForSnapshot()

	case updatesClosedMsg:
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.ctrl.Close()
			return m, tea.Quit

		case "esc", "q":
			m.ctrl.Close()
			return m, func() tea.Msg { return NavigateToHome{} }

		case "up", "k":
			return m.pan(1, 0), nil
		case "down", "j":
			return m.pan(-1, 0), nil
		case "left", "h":
			return m.pan(0, -1), nil
		case "right", "l":
			return m.pan(0, 1), nil

		case "+", "=":
			if m.zoom < maxZoom {
				m.zoom++
				m.applyViewport()
			}
			return m, nil
		case "-", "_":
			if m.zoom > minZoom {
				m.zoom--
				m.applyViewport()
			}
			return m, nil

		case "tab":
			if len(m.restaurants) > 0 {
				m.selected = (m.selected + 1) % len(m.restaurants)
				m.mapv.SetSelected(m.selected)
			}
			return m, nil
		case "shift+tab":
			if len(m.restaurants) > 0 {
				m.selected--
				if m.selected < 0 {
					m.selected = len(m.restaurants) - 1
				}
				m.mapv.SetSelected(m.selected)
			}
			return m, nil
		}
	}

	return m, nil
}

func (m ExplorerModel) pan(dRow, dCol int) ExplorerModel {
	dLat, dLng := m.mapv.PanStep()
	m.center.Lat += dLat * float64(dRow)
	m.center.Lng += dLng * float64(dCol)
	if m.center.Lat > 85 {
		m.center.Lat = 85
	}
	if m.center.Lat < -85 {
		m.center.Lat = -85
	}
	if m.center.Lng > 180 {
		m.center.Lng -= 360
	}
	if m.center.Lng < -180 {
		m.center.Lng += 360
	}
	m.applyViewport()
	return m
}

func (m *ExplorerModel) applyViewport() {
	m.mapv.SetViewport(m.center, m.zoom)
	m.ctrl.SetViewport(m.center, m.zoom)
}

func (m ExplorerModel) mapWidth() int {
	w := m.width*3/5 - 6
	if w < 20 {
		w = 20
	}
	return w
}

func (m ExplorerModel) mapHeight() int {
	h := m.height - 9
	if h < 8 {
		h = 8
	}
	return h
}

func (m ExplorerModel) View() string {
	var b strings.Builder

	title := fmt.Sprintf("Exploring near %s", m.label)
	b.WriteString(styles.Title.Render(title))
	b.WriteString(lipgloss.NewStyle().Foreground(styles.Muted).
		Render(fmt.Sprintf("  %s • zoom %d", m.category, m.zoom)))
	b.WriteString("\n")

	mapBox := styles.FocusedBorder.Padding(0, 1).Render(m.mapv.View())
	cards := m.viewCards()
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, mapBox, " ", cards))
	b.WriteString("\n")

	switch {
	case m.loading:
		b.WriteString(m.spin.View())
		b.WriteString(lipgloss.NewStyle().Foreground(styles.Muted).Render("Searching..."))
	case m.errMsg != "":
		b.WriteString(styles.ErrorText.Render(m.errMsg))
	case !m.showResults:
		b.WriteString(lipgloss.NewStyle().Foreground(styles.Secondary).Italic(true).
			Render("Zoom in to see restaurants (+)"))
	case len(m.restaurants) == 0:
		b.WriteString(lipgloss.NewStyle().Foreground(styles.Muted).Italic(true).
			Render("No restaurants in this area"))
	default:
		b.WriteString(lipgloss.NewStyle().Foreground(styles.Success).
			Render(fmt.Sprintf("%d restaurants", len(m.restaurants))))
	}
	b.WriteString("\n")

	b.WriteString(styles.StatusBar.Render("↑↓←→ pan • +/- zoom • tab select • esc back"))

	return b.String()
}

func (m ExplorerModel) viewCards() string {
	cardW := m.width - m.mapWidth() - 10
	if cardW < 30 {
		cardW = 30
	}

	if !m.showResults || len(m.restaurants) == 0 {
		return lipgloss.NewStyle().
			Foreground(styles.Muted).
			Italic(true).
			Width(cardW).
			Render("Results appear here as you explore the map.")
	}

	// Each card takes 4 lines; fit what the panel height allows,
	// keeping the selected card visible.
	maxCards := m.mapHeight() / 4
	if maxCards < 1 {
		maxCards = 1
	}
	start := 0
	if m.selected >= maxCards {
		start = m.selected - maxCards + 1
	}
	end := start + maxCards
	if end > len(m.restaurants) {
		end = len(m.restaurants)
	}

	var sb strings.Builder
	for i := start; i < end; i++ {
		sb.WriteString(m.viewCard(i, cardW))
		if i < end-1 {
			sb.WriteString("\n")
		}
	}
	if end < len(m.restaurants) {
		sb.WriteString("\n")
		sb.WriteString(lipgloss.NewStyle().Foreground(styles.Muted).
			Render(fmt.Sprintf("  +%d more (tab)", len(m.restaurants)-end)))
	}
	return sb.String()
}

func (m ExplorerModel) viewCard(i, w int) string {
	r := m.restaurants[i]

	nameStyle := lipgloss.NewStyle().Bold(true).Foreground(styles.Text)
	marker := "  "
	if i == m.selected {
		nameStyle = nameStyle.Foreground(styles.Primary)
		marker = lipgloss.NewStyle().Foreground(styles.Warning).Render("◉ ")
	}

	name := truncate(fmt.Sprintf("%s %s", r.Image, r.Name), w-2)
	line1 := marker + nameStyle.Render(name)

	stars := lipgloss.NewStyle().Foreground(styles.Star).
		Render(fmt.Sprintf("★ %.1f", r.Rating))
	reviews := lipgloss.NewStyle().Foreground(styles.Muted).
		Render(fmt.Sprintf("(%d)", r.Reviews))
	meta := lipgloss.NewStyle().Foreground(styles.Text).
		Render(fmt.Sprintf("  %s • %s • %s", r.Price, r.Category, r.Distance))
	line2 := fmt.Sprintf("  %s %s%s", stars, reviews, meta)

	desc := lipgloss.NewStyle().Foreground(styles.Muted).
		Render("  " + truncate(r.Description, w-2))

	return line1 + "\n" + line2 + "\n" + desc + "\n"
}

func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
