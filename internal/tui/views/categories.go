package views

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tastemap/internal/tui/styles"
)

type categoryItem struct {
	icon  string
	label string
	desc  string
	// value is the place type sent to providers.
	value string
}

var categoryItems = []categoryItem{
	{icon: "🍽️", label: "All Restaurants", desc: "Everything nearby", value: "restaurant"},
	{icon: "☕", label: "Cafes", desc: "Coffee, brunch and pastries", value: "cafe"},
	{icon: "🍸", label: "Bars", desc: "Drinks and nightlife", value: "bar"},
	{icon: "🥐", label: "Bakeries", desc: "Fresh bread and sweets", value: "bakery"},
	{icon: "🥡", label: "Takeaway", desc: "Grab and go", value: "meal_takeaway"},
	{icon: "🛵", label: "Delivery", desc: "Brought to your door", value: "meal_delivery"},
}

// CategoriesModel lets the user pick a cuisine category before searching.
type CategoriesModel struct {
	cursor int
}

func NewCategoriesModel() CategoriesModel {
	return CategoriesModel{}
}

func (m CategoriesModel) Init() tea.Cmd {
	return nil
}

func (m CategoriesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(categoryItems)-1 {
				m.cursor++
			}
		case "enter":
			selected := categoryItems[m.cursor]
			return m, func() tea.Msg {
				return NavigateToSearch{Category: selected.value}
			}
		case "esc", "q":
			return m, func() tea.Msg { return NavigateToHome{} }
		}
	}
	return m, nil
}

func (m CategoriesModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Browse Categories") + "\n\n")

	for i, item := range categoryItems {
		cursor := "  "
		style := styles.InactiveItem
		if i == m.cursor {
			cursor = "> "
			style = styles.ActiveItem
		}

		label := style.Render(fmt.Sprintf("%s %s", item.icon, item.label))
		desc := lipgloss.NewStyle().
			Foreground(styles.Muted).
			Render(" - " + item.desc)

		b.WriteString(fmt.Sprintf("%s%s%s\n", cursor, label, desc))
	}

	b.WriteString("\n")
	b.WriteString(styles.StatusBar.Render("↑↓ navigate • enter select • esc back"))

	return styles.Border.Render(b.String())
}
