package inspect

import (
	"fmt"
	"strings"
	"time"

	"simple-panels/layout"
)

// Snapshot represents a complete UI state at a point in time.
type Snapshot struct {
	// Timestamp when the snapshot was taken.
	Timestamp time.Time `json:"timestamp"`

	// Version of the snapshot format.
	Version string `json:"version"`

	// Terminal contains terminal dimensions.
	Terminal TerminalInfo `json:"terminal"`

	// Chrome describes the UI surrounding the panels.
	Chrome ChromeInfo `json:"chrome"`

	// Groups lists every mounted panel group, outermost first.
	Groups []GroupInfo `json:"groups"`

	// HoverOwner is the id of the group holding the shared hover marker.
	HoverOwner string `json:"hover_owner,omitempty"`

	// Components is the root of the component tree.
	Components *Node `json:"components,omitempty"`

	// Styles describes the registered named styles.
	Styles map[string]*StyleInfo `json:"styles,omitempty"`
}

// TerminalInfo contains terminal dimensions.
type TerminalInfo struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// ChromeInfo contains the chrome mode and the space it leaves for panels.
type ChromeInfo struct {
	// Mode is the current chrome mode.
	Mode string `json:"mode"`

	// MenuHeight is the menu height.
	MenuHeight int `json:"menu_height"`

	// Workspace is the area given to the root group.
	Workspace Bounds `json:"workspace"`

	// Status is the menu's status line.
	Status string `json:"status,omitempty"`

	// Breakpoints contains information about responsive breakpoints.
	Breakpoints []BreakpointInfo `json:"breakpoints"`
}

// BreakpointInfo contains information about a responsive breakpoint.
type BreakpointInfo struct {
	// Name is the breakpoint name.
	Name string `json:"name"`

	// Threshold is the dimension threshold.
	Threshold int `json:"threshold"`

	// Active indicates if this breakpoint is currently triggered.
	Active bool `json:"active"`

	// Dimension is "width" or "height".
	Dimension string `json:"dimension"`
}

// GroupInfo is the layout state of one group.
type GroupInfo struct {
	Name        string    `json:"name"`
	ID          string    `json:"id"`
	Orientation string    `json:"orientation"`
	Sizes       []float64 `json:"sizes"`
	Collapsed   []bool    `json:"collapsed"`

	// SeparatorPositions are the boundary offsets along the layout axis.
	SeparatorPositions []float64 `json:"separator_positions,omitempty"`

	// ActiveSeparator is the separator within hover distance, or -1.
	ActiveSeparator int `json:"active_separator"`

	// DragSeparator is the separator being dragged, or -1.
	DragSeparator int `json:"drag_separator"`

	// Affordance is the hint the highlighted separator shows.
	Affordance string `json:"affordance,omitempty"`
}

// NewGroupInfo captures the current state of g.
func NewGroupInfo(name string, g *layout.Group) GroupInfo {
	info := GroupInfo{
		Name:               name,
		ID:                 g.ID(),
		Orientation:        g.Orientation().String(),
		Sizes:              g.Sizes(),
		Collapsed:          g.CollapsedStates(),
		SeparatorPositions: g.SeparatorPositions(),
		ActiveSeparator:    g.ActiveSeparator(),
		DragSeparator:      g.DragSeparator(),
	}
	if hover, ok := g.Hover(); ok {
		info.Affordance = hover.Affordance.String()
	}
	return info
}

// NewSnapshot creates a new snapshot with current timestamp.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Timestamp:  time.Now(),
		Version:    "1.0.0",
		HoverOwner: layout.HoverOwner(),
	}
}

// WithTerminal sets terminal info and returns the snapshot for chaining.
func (s *Snapshot) WithTerminal(width, height int) *Snapshot {
	s.Terminal = TerminalInfo{Width: width, Height: height}
	return s
}

// WithChrome sets the chrome info and returns the snapshot for chaining.
func (s *Snapshot) WithChrome(chrome ChromeInfo) *Snapshot {
	s.Chrome = chrome
	return s
}

// AddGroup appends the state of g and returns the snapshot for chaining.
func (s *Snapshot) AddGroup(name string, g *layout.Group) *Snapshot {
	s.Groups = append(s.Groups, NewGroupInfo(name, g))
	return s
}

// WithComponents sets the component tree root.
func (s *Snapshot) WithComponents(root *Node) *Snapshot {
	s.Components = root
	return s
}

// WithStyles records every registered style.
func (s *Snapshot) WithStyles() *Snapshot {
	s.Styles = Styles()
	return s
}

// Group returns the recorded group with the given name.
func (s *Snapshot) Group(name string) (GroupInfo, bool) {
	for _, g := range s.Groups {
		if g.Name == name {
			return g, true
		}
	}
	return GroupInfo{}, false
}

// ToText returns a human-readable text representation.
func (s *Snapshot) ToText() string {
	var b strings.Builder

	b.WriteString("=== UI Snapshot ===\n")
	b.WriteString(fmt.Sprintf("Time: %s\n", s.Timestamp.Format(time.RFC3339)))
	b.WriteString(fmt.Sprintf("Terminal: %dx%d\n", s.Terminal.Width, s.Terminal.Height))
	b.WriteString(fmt.Sprintf("Chrome: %s (menu %d)\n", s.Chrome.Mode, s.Chrome.MenuHeight))
	if s.Chrome.Status != "" {
		b.WriteString(fmt.Sprintf("Status: %s\n", s.Chrome.Status))
	}

	b.WriteString("\n--- Active Breakpoints ---\n")
	for _, bp := range s.Chrome.Breakpoints {
		status := "[ ]"
		if bp.Active {
			status = "[X]"
		}
		b.WriteString(fmt.Sprintf("  %s %s (threshold: %d %s)\n", status, bp.Name, bp.Threshold, bp.Dimension))
	}

	b.WriteString("\n--- Groups ---\n")
	for _, g := range s.Groups {
		b.WriteString(fmt.Sprintf("%s %s sizes=%s", g.Name, g.Orientation, formatSizes(g.Sizes)))
		for i, c := range g.Collapsed {
			if c {
				b.WriteString(fmt.Sprintf(" collapsed[%d]", i))
			}
		}
		if g.DragSeparator >= 0 {
			b.WriteString(fmt.Sprintf(" dragging=%d", g.DragSeparator))
		} else if g.ActiveSeparator >= 0 {
			b.WriteString(fmt.Sprintf(" hover=%d", g.ActiveSeparator))
		}
		if g.Affordance != "" {
			b.WriteString(fmt.Sprintf(" (%s)", g.Affordance))
		}
		if g.ID == s.HoverOwner {
			b.WriteString(" *")
		}
		b.WriteString("\n")
	}

	if s.Components != nil {
		b.WriteString("\n--- Components ---\n")
		writeNodeText(&b, s.Components, 0)
	}

	return b.String()
}

func formatSizes(sizes []float64) string {
	parts := make([]string, len(sizes))
	for i, v := range sizes {
		parts[i] = fmt.Sprintf("%.1f", v)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func writeNodeText(b *strings.Builder, node *Node, indent int) {
	b.WriteString(strings.Repeat("  ", indent))
	b.WriteString(string(node.Kind))
	if node.ID != "" {
		b.WriteString(fmt.Sprintf(" [%s]", node.ID))
	}
	b.WriteString(fmt.Sprintf(" (%dx%d)", node.Bounds.Width, node.Bounds.Height))

	switch node.Kind {
	case KindGroup:
		b.WriteString(" " + node.Orientation)
	case KindPanel:
		b.WriteString(fmt.Sprintf(" %.1f%%", node.Size))
		if node.Collapsed {
			b.WriteString(" collapsed")
		}
	case KindSeparator:
		b.WriteString(" " + node.State)
		if node.Affordance != "" {
			b.WriteString(" " + node.Affordance)
		}
	}
	if node.TitleClip != nil {
		b.WriteString(fmt.Sprintf(" CLIPPED(%d->%d)", node.TitleClip.Width, node.TitleClip.Shown))
	}
	b.WriteString("\n")

	for _, child := range node.Children {
		writeNodeText(b, child, indent+1)
	}
}
