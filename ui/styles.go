package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"simple-panels/layout"
)

// Semantic Color Palette

// UI chrome colors - structural elements
var (
	// Primary is the accent/focus color
	Primary = lipgloss.AdaptiveColor{Light: "#7D56F4", Dark: "#7D56F4"}

	// Border is the default border color
	Border = lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#3C3C3C"}

	// BorderFocus is the border color for focused elements
	BorderFocus = lipgloss.AdaptiveColor{Light: "#7D56F4", Dark: "#7D56F4"}

	// Warning marks a separator whose drag is about to collapse a panel.
	Warning = lipgloss.AdaptiveColor{Light: "#F59E0B", Dark: "#F59E0B"}

	// TextPrimary is the main text color
	TextPrimary = lipgloss.AdaptiveColor{Light: "#1a1a1a", Dark: "#dddddd"}

	// TextSecondary is for secondary text (descriptions, labels)
	TextSecondary = lipgloss.AdaptiveColor{Light: "#4B5563", Dark: "#9CA3AF"}

	// TextMuted is for hints and subtle text
	TextMuted = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6B7280"}
)

// PanelTitleStyle renders the first line of a panel.
var PanelTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(TextPrimary)

// PanelBodyStyle renders panel content.
var PanelBodyStyle = lipgloss.NewStyle().Foreground(TextSecondary)

// separatorState is how a separator is drawn.
type separatorState int

const (
	separatorIdle separatorState = iota
	separatorInert
	separatorFocused
	separatorHovered
	separatorDragging
)

var separatorStyles = map[separatorState]lipgloss.Style{
	separatorIdle:     lipgloss.NewStyle().Foreground(Border),
	separatorInert:    lipgloss.NewStyle().Foreground(Border).Faint(true),
	separatorFocused:  lipgloss.NewStyle().Foreground(TextMuted),
	separatorHovered:  lipgloss.NewStyle().Foreground(Primary),
	separatorDragging: lipgloss.NewStyle().Foreground(BorderFocus).Bold(true),
}

// separatorGlyphs holds the line glyph and the affordance marks per axis.
type separatorGlyphs struct {
	line, inert, resize, towardStart, towardEnd string
}

var horizontalGlyphs = separatorGlyphs{line: "│", inert: "┆", resize: "↔", towardStart: "◀", towardEnd: "▶"}

var verticalGlyphs = separatorGlyphs{line: "─", inert: "┄", resize: "↕", towardStart: "▲", towardEnd: "▼"}

// AffordanceGlyph returns the mark drawn in the middle of a highlighted
// separator.
func AffordanceGlyph(o layout.Orientation, a layout.Affordance) string {
	g := horizontalGlyphs
	if o == layout.Vertical {
		g = verticalGlyphs
	}
	switch a {
	case layout.AffordanceResize:
		return g.resize
	case layout.AffordanceTowardStart:
		return g.towardStart
	case layout.AffordanceTowardEnd:
		return g.towardEnd
	default:
		return g.line
	}
}

// renderSeparator draws a one cell thick separator filling r.
func renderSeparator(o layout.Orientation, r layout.Rect, state separatorState, affordance layout.Affordance) string {
	g := horizontalGlyphs
	length := int(r.Height)
	if o == layout.Vertical {
		g = verticalGlyphs
		length = int(r.Width)
	}
	if length <= 0 {
		return ""
	}

	cells := make([]string, length)
	for i := range cells {
		cells[i] = g.line
		if state == separatorInert {
			cells[i] = g.inert
		}
	}
	if affordance != layout.AffordanceNone {
		cells[length/2] = AffordanceGlyph(o, affordance)
	}

	style := separatorStyles[state]
	if affordance == layout.AffordanceTowardStart || affordance == layout.AffordanceTowardEnd {
		style = style.Foreground(Warning)
	}

	sep := "\n"
	if o == layout.Vertical {
		sep = ""
	}
	return style.Render(strings.Join(cells, sep))
}
