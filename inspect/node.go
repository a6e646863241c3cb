package inspect

import (
	"github.com/charmbracelet/lipgloss"

	"simple-panels/layout"
)

// NodeKind names the part of a layout a Node describes.
type NodeKind string

const (
	KindGroup     NodeKind = "group"
	KindPanel     NodeKind = "panel"
	KindSeparator NodeKind = "separator"
)

// Node is one group, panel or separator in the rendered layout tree. A panel
// hosting a nested group has that group as its only child.
type Node struct {
	Kind   NodeKind `json:"kind"`
	ID     string   `json:"id,omitempty"`
	Bounds Bounds   `json:"bounds"`
	// Visible is false for a collapsed panel or an unmeasured group.
	Visible bool `json:"visible"`

	// Orientation is set on groups.
	Orientation string `json:"orientation,omitempty"`

	// Title, Size and Collapsed are set on panels. Size is in percent.
	Title     string  `json:"title,omitempty"`
	Size      float64 `json:"size,omitempty"`
	Collapsed bool    `json:"collapsed,omitempty"`
	// TitleClip is set when the title line was cut to the panel width.
	TitleClip *Clip `json:"title_clip,omitempty"`

	// State and Affordance are set on separators.
	State      string `json:"state,omitempty"`
	Affordance string `json:"affordance,omitempty"`

	Style    *StyleInfo `json:"style,omitempty"`
	Children []*Node    `json:"children,omitempty"`
}

// Bounds is a cell rectangle.
type Bounds struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// BoundsOf converts a layout rectangle to cells.
func BoundsOf(r layout.Rect) Bounds {
	return Bounds{X: int(r.X), Y: int(r.Y), Width: int(r.Width), Height: int(r.Height)}
}

// Clip records a title cut to fit: Width cells wanted, Shown cells drawn.
type Clip struct {
	Width int `json:"width"`
	Shown int `json:"shown"`
}

// GroupNode describes a panel group.
func GroupNode(id string, orientation layout.Orientation, r layout.Rect) *Node {
	return &Node{
		Kind:        KindGroup,
		ID:          id,
		Bounds:      BoundsOf(r),
		Visible:     !r.Empty(),
		Orientation: orientation.String(),
	}
}

// PanelNode describes one panel at size percent.
func PanelNode(id, title string, r layout.Rect, size float64, collapsed bool) *Node {
	return &Node{
		Kind:      KindPanel,
		ID:        id,
		Bounds:    BoundsOf(r),
		Visible:   !r.Empty(),
		Title:     title,
		Size:      size,
		Collapsed: collapsed,
	}
}

// SeparatorNode describes the boundary after a panel.
func SeparatorNode(id, state string, affordance layout.Affordance, r layout.Rect) *Node {
	n := &Node{
		Kind:    KindSeparator,
		ID:      id,
		Bounds:  BoundsOf(r),
		Visible: !r.Empty(),
		State:   state,
	}
	if affordance != layout.AffordanceNone {
		n.Affordance = affordance.String()
	}
	return n
}

// ClipTitle records that a title width cells wide was shown in shown cells.
func (n *Node) ClipTitle(width, shown int) *Node {
	n.TitleClip = &Clip{Width: width, Shown: shown}
	return n
}

// WithStyle attaches the named style the node is drawn with.
func (n *Node) WithStyle(name string, style lipgloss.Style) *Node {
	n.Style = describeStyle(name, style)
	return n
}

// Add appends child and returns n.
func (n *Node) Add(child *Node) *Node {
	n.Children = append(n.Children, child)
	return n
}

// Find returns the first node in the tree with the given kind and id.
func (n *Node) Find(kind NodeKind, id string) *Node {
	if n.Kind == kind && n.ID == id {
		return n
	}
	for _, c := range n.Children {
		if found := c.Find(kind, id); found != nil {
			return found
		}
	}
	return nil
}
