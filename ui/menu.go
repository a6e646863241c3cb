package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"simple-panels/keys"
)

var keyStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{
	Light: "#655F5F",
	Dark:  "#7F7A7A",
})

var descStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{
	Light: "#7A7474",
	Dark:  "#9C9494",
})

var sepStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{
	Light: "#DDDADA",
	Dark:  "#3C3C3C",
})

var statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

// Menu is the bottom bar: a status line above the key help.
type Menu struct {
	help          help.Model
	height, width int
	status        string
	compact       bool
}

func NewMenu() *Menu {
	h := help.New()
	h.ShortSeparator = " • "
	h.FullSeparator = "   "
	h.Styles.ShortKey = keyStyle
	h.Styles.ShortDesc = descStyle
	h.Styles.ShortSeparator = sepStyle
	h.Styles.FullKey = keyStyle
	h.Styles.FullDesc = descStyle
	h.Styles.FullSeparator = sepStyle
	return &Menu{help: h}
}

// ToggleHelp switches between the one line and the full key help.
func (m *Menu) ToggleHelp() {
	m.help.ShowAll = !m.help.ShowAll
}

// ShowingFullHelp reports whether the full key help is shown.
func (m *Menu) ShowingFullHelp() bool {
	return m.help.ShowAll
}

// SetStatus sets the line shown above the key help.
func (m *Menu) SetStatus(status string) {
	m.status = status
}

// Status returns the current status line.
func (m *Menu) Status() string {
	return m.status
}

// SetSize sets the width of the window. The menu will be centered horizontally within this width.
func (m *Menu) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width
}

// SetCompact drops the status line and the full help.
func (m *Menu) SetCompact(compact bool) {
	m.compact = compact
}

// Height returns the number of lines String renders.
func (m *Menu) Height() int {
	if m.compact {
		return 1
	}
	if m.help.ShowAll {
		return 1 + len(keys.HelpMap{}.FullHelp()[1])
	}
	return 2
}

func (m *Menu) String() string {
	if m.compact {
		return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, m.help.ShortHelpView(keys.HelpMap{}.ShortHelp()))
	}
	helpView := m.help.View(keys.HelpMap{})
	status := statusStyle.Render(m.status)
	body := lipgloss.JoinVertical(lipgloss.Center, status, helpView)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Bottom, body)
}
