package ui

import "simple-panels/layout"

// Terminal size breakpoints
const (
	// MinWidth is the narrowest terminal the workspace is drawn in.
	MinWidth = 40

	// MinHeight is the shortest terminal the workspace is drawn in.
	MinHeight = 10

	// CompactWidth and CompactHeight drop the status line below them.
	CompactWidth  = 80
	CompactHeight = 24
)

// ChromeMode represents how much surrounding UI fits around the panels.
type ChromeMode int

const (
	// ChromeFull shows the status line and the key help.
	ChromeFull ChromeMode = iota

	// ChromeCompact shows the key help only.
	ChromeCompact

	// ChromeMinimal replaces everything with a size warning.
	ChromeMinimal
)

// String returns the string representation of the chrome mode.
func (m ChromeMode) String() string {
	switch m {
	case ChromeFull:
		return "full"
	case ChromeCompact:
		return "compact"
	case ChromeMinimal:
		return "minimal"
	default:
		return "unknown"
	}
}

// DetermineChrome picks the chrome mode for a terminal. The more restrictive
// dimension wins.
func DetermineChrome(width, height int) ChromeMode {
	if width < MinWidth || height < MinHeight {
		return ChromeMinimal
	}
	if width < CompactWidth || height < CompactHeight {
		return ChromeCompact
	}
	return ChromeFull
}

// MenuHeight returns the lines reserved for the menu in mode.
func MenuHeight(mode ChromeMode, menu *Menu) int {
	if mode == ChromeMinimal {
		return 0
	}
	menu.SetCompact(mode == ChromeCompact)
	return menu.Height()
}

// WorkspaceRect is the area left for panels in a terminal of the given size.
func WorkspaceRect(width, height int, mode ChromeMode, menu *Menu) layout.Rect {
	h := height - MenuHeight(mode, menu)
	if mode == ChromeMinimal || h <= 0 {
		return layout.Rect{}
	}
	return layout.Rect{X: 0, Y: 0, Width: float64(width), Height: float64(h)}
}
