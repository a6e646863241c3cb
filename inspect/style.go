package inspect

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// StyleInfo is the part of a lipgloss style that tells panel states apart.
type StyleInfo struct {
	Name       string `json:"name"`
	Foreground string `json:"foreground,omitempty"`
	Bold       bool   `json:"bold,omitempty"`
	Faint      bool   `json:"faint,omitempty"`
}

func describeStyle(name string, style lipgloss.Style) *StyleInfo {
	return &StyleInfo{
		Name:       name,
		Foreground: colorName(style.GetForeground()),
		Bold:       style.GetBold(),
		Faint:      style.GetFaint(),
	}
}

// colorName renders the color kinds the panel styles use.
func colorName(c lipgloss.TerminalColor) string {
	switch v := c.(type) {
	case nil, lipgloss.NoColor:
		return ""
	case lipgloss.Color:
		return string(v)
	case lipgloss.AdaptiveColor:
		if v.Light == v.Dark {
			return v.Dark
		}
		return fmt.Sprintf("%s/%s", v.Light, v.Dark)
	default:
		return fmt.Sprintf("%v", c)
	}
}

var styles = make(map[string]lipgloss.Style)

// RegisterStyle makes a named style show up in snapshots. Call it from init.
func RegisterStyle(name string, style lipgloss.Style) {
	styles[name] = style
}

// Styles describes every registered style.
func Styles() map[string]*StyleInfo {
	out := make(map[string]*StyleInfo, len(styles))
	for name, style := range styles {
		out[name] = describeStyle(name, style)
	}
	return out
}

// StyleNames returns the registered style names, sorted.
func StyleNames() []string {
	names := make([]string, 0, len(styles))
	for name := range styles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
