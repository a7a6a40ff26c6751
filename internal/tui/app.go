package tui

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tastemap/internal/config"
	"tastemap/internal/tui/views"
)

type viewID int

const (
	viewHome viewID = iota
	viewCategories
	viewSearch
	viewExplorer
	viewRecent
)

// App is the root bubbletea model.
type App struct {
	cfg         config.Config
	currentView viewID
	width       int
	height      int
	home        views.HomeModel
	categories  views.CategoriesModel
	search      views.SearchModel
	explorer    views.ExplorerModel
	recent      views.RecentModel
}

func NewApp(cfg config.Config) App {
	return App{
		cfg:         cfg,
		currentView: viewHome,
		home:        views.NewHomeModel(),
	}
}

func (a App) Init() tea.Cmd {
	return a.home.Init()
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
	case views.NavigateToSearch:
		a.currentView = viewSearch
		a.search = views.NewSearchModel(msg.Category)
		return a, a.search.Init()
	case views.NavigateToCategories:
		a.currentView = viewCategories
		a.categories = views.NewCategoriesModel()
		return a, a.categories.Init()
	case views.NavigateToHome:
		a.currentView = viewHome
		return a, nil
	case views.StartExploreMsg:
		a.currentView = viewExplorer
		a.explorer = views.NewExplorerModel(a.cfg, msg)
		SaveRecent(RecentEntry{
			Label:    msg.Label,
			Lat:      msg.Center.Lat,
			Lng:      msg.Center.Lng,
			Category: msg.Category,
		})
		return a, tea.Batch(a.explorer.Init(), a.sizeCmd())
	case views.NavigateToRecent:
		a.currentView = viewRecent
		entries := LoadRecent()
		var recentEntries []views.RecentEntry
		for _, e := range entries {
			recentEntries = append(recentEntries, views.RecentEntry{
				Label:    e.Label,
				Lat:      e.Lat,
				Lng:      e.Lng,
				Category: e.Category,
				OpenedAt: e.OpenedAt,
			})
		}
		a.recent = views.NewRecentModel(recentEntries)
		return a, a.recent.Init()
	}

	var cmd tea.Cmd
	switch a.currentView {
	case viewHome:
		var m tea.Model
		m, cmd = a.home.Update(msg)
		a.home = m.(views.HomeModel)
	case viewCategories:
		var m tea.Model
		m, cmd = a.categories.Update(msg)
		a.categories = m.(views.CategoriesModel)
	case viewSearch:
		var m tea.Model
		m, cmd = a.search.Update(msg)
		a.search = m.(views.SearchModel)
	case viewExplorer:
		var m tea.Model
		m, cmd = a.explorer.Update(msg)
		a.explorer = m.(views.ExplorerModel)
	case viewRecent:
		var m tea.Model
		m, cmd = a.recent.Update(msg)
		a.recent = m.(views.RecentModel)
	}

	return a, cmd
}

func (a App) View() string {
	var content string
	switch a.currentView {
	case viewHome:
		content = a.home.View()
	case viewCategories:
		content = a.categories.View()
	case viewSearch:
		content = a.search.View()
	case viewExplorer:
		content = a.explorer.View()
	case viewRecent:
		content = a.recent.View()
	}

	return lipgloss.Place(
		a.width, a.height,
		lipgloss.Center, lipgloss.Top,
		content,
	)
}

// sizeCmd sends a WindowSizeMsg so newly created views get the current terminal size.
func (a App) sizeCmd() tea.Cmd {
	w, h := a.width, a.height
	return func() tea.Msg {
		return tea.WindowSizeMsg{Width: w, Height: h}
	}
}

// setupLogger routes slog to a file; stderr would tear the alt screen.
func setupLogger() {
	var w io.Writer = io.Discard
	if cfgDir, err := os.UserConfigDir(); err == nil {
		path := filepath.Join(cfgDir, "tastemap", "tastemap.log")
		os.MkdirAll(filepath.Dir(path), 0755)
		if f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644); err == nil {
			w = f
		}
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})))
}

// Run starts the TUI.
func Run() error {
	setupLogger()
	p := tea.NewProgram(NewApp(config.Load()), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
