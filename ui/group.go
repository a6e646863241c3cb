package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"

	"simple-panels/layout"
)

// PanelContent is what one panel of a GroupView shows: either a titled body
// or a nested group filling the whole panel.
type PanelContent struct {
	ID    string
	Title string
	Body  string
	Child *GroupView
}

// GroupView renders a layout.Group into a rectangle of terminal cells. It
// implements layout.Geometry so the group measures exactly what is drawn:
// every separator takes one cell and the panels share the rest.
type GroupView struct {
	Name   string
	Group  *layout.Group
	Panels []PanelContent

	bounds layout.Rect
	zones  *zone.Manager

	// focused is the separator selected from the keyboard, or NoSeparator.
	focused int
}

// NewGroupView wraps group. zones may be nil when titles need not be
// clickable.
func NewGroupView(name string, group *layout.Group, panels []PanelContent, zones *zone.Manager) *GroupView {
	v := &GroupView{
		Name:    name,
		Group:   group,
		Panels:  panels,
		zones:   zones,
		focused: layout.NoSeparator,
	}
	group.SetGeometry(v)
	return v
}

// SetBounds places the view and every nested view.
func (v *GroupView) SetBounds(r layout.Rect) {
	v.bounds = r
	for i, p := range v.Panels {
		if p.Child == nil {
			continue
		}
		if pr, ok := v.PanelRect(i); ok {
			p.Child.SetBounds(pr)
		} else {
			p.Child.SetBounds(layout.Rect{})
		}
	}
}

// Bounds returns the rectangle the view occupies.
func (v *GroupView) Bounds() layout.Rect {
	return v.bounds
}

// Views returns v and every nested view, innermost last.
func (v *GroupView) Views() []*GroupView {
	out := []*GroupView{v}
	for _, p := range v.Panels {
		if p.Child != nil {
			out = append(out, p.Child.Views()...)
		}
	}
	return out
}

// SetFocused selects the separator shown as keyboard focused.
func (v *GroupView) SetFocused(separator int) {
	v.focused = separator
}

// Focused returns the keyboard focused separator.
func (v *GroupView) Focused() int {
	return v.focused
}

// ZoneID returns the click zone id of panel i's title.
func (v *GroupView) ZoneID(i int) string {
	return fmt.Sprintf("%s/title/%d", v.Group.ID(), i)
}

// ContainerRect implements layout.Geometry.
func (v *GroupView) ContainerRect() (layout.Rect, bool) {
	if v.bounds.Empty() {
		return layout.Rect{}, false
	}
	return v.bounds, true
}

// PanelRect implements layout.Geometry.
func (v *GroupView) PanelRect(index int) (layout.Rect, bool) {
	cuts, ok := v.cuts()
	if !ok || index < 0 || index >= len(cuts)-1 {
		return layout.Rect{}, false
	}
	start := cuts[index] + index
	extent := cuts[index+1] - cuts[index]
	return v.axisRect(start, extent), true
}

// SeparatorRect implements layout.Geometry.
func (v *GroupView) SeparatorRect(index int) (layout.Rect, bool) {
	cuts, ok := v.cuts()
	if !ok || index < 0 || index >= len(cuts)-2 {
		return layout.Rect{}, false
	}
	return v.axisRect(cuts[index+1]+index, 1), true
}

// available is the number of cells the panels share.
func (v *GroupView) available() int {
	extent := v.bounds.Width
	if v.Group.Orientation() == layout.Vertical {
		extent = v.bounds.Height
	}
	return int(extent) - (v.Group.PanelCount() - 1)
}

// cuts converts the sizes into cell offsets: panel i spans
// [cuts[i], cuts[i+1]) before separators are inserted.
func (v *GroupView) cuts() ([]int, bool) {
	avail := v.available()
	if v.bounds.Empty() || avail <= 0 {
		return nil, false
	}
	sizes := v.Group.Sizes()
	cuts := make([]int, len(sizes)+1)
	acc := 0.0
	for i, s := range sizes {
		acc += s
		cuts[i+1] = int(math.Round(acc / layout.TotalSize * float64(avail)))
	}
	cuts[len(sizes)] = avail
	return cuts, true
}

func (v *GroupView) axisRect(start, extent int) layout.Rect {
	if v.Group.Orientation() == layout.Vertical {
		return layout.Rect{X: v.bounds.X, Y: v.bounds.Y + float64(start), Width: v.bounds.Width, Height: float64(extent)}
	}
	return layout.Rect{X: v.bounds.X + float64(start), Y: v.bounds.Y, Width: float64(extent), Height: v.bounds.Height}
}

// Render draws the group at its bounds.
func (v *GroupView) Render() string {
	if v.bounds.Empty() {
		return ""
	}
	// Nested views follow the latest sizes.
	v.SetBounds(v.bounds)
	n := v.Group.PanelCount()
	hover, hovered := v.Group.Hover()

	parts := make([]string, 0, 2*n-1)
	for i := 0; i < n; i++ {
		if r, ok := v.PanelRect(i); ok && !r.Empty() {
			parts = append(parts, v.renderPanel(i, r))
		}
		if i == n-1 {
			continue
		}
		sr, ok := v.SeparatorRect(i)
		if !ok {
			continue
		}
		affordance := layout.AffordanceNone
		if hovered && hover.Separator == i {
			affordance = hover.Affordance
		}
		parts = append(parts, renderSeparator(v.Group.Orientation(), sr, v.separatorState(i), affordance))
	}

	if v.Group.Orientation() == layout.Vertical {
		return lipgloss.JoinVertical(lipgloss.Left, parts...)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (v *GroupView) separatorState(i int) separatorState {
	hover, hovered := v.Group.Hover()
	switch {
	case !v.Group.HasSeparator(i):
		return separatorInert
	case hovered && hover.Separator == i && hover.Dragging:
		return separatorDragging
	case hovered && hover.Separator == i:
		return separatorHovered
	case v.focused == i:
		return separatorFocused
	}
	return separatorIdle
}

// title is the first line of panel i before truncation.
func (v *GroupView) title(i int) string {
	var name string
	if i < len(v.Panels) {
		name = v.Panels[i].Title
	}
	return fmt.Sprintf("%d %s %.0f%%", i+1, name, v.Group.Sizes()[i])
}

func (v *GroupView) renderPanel(i int, r layout.Rect) string {
	width, height := int(r.Width), int(r.Height)
	var p PanelContent
	if i < len(v.Panels) {
		p = v.Panels[i]
	}
	if p.Child != nil {
		return p.Child.Render()
	}

	title := runewidth.Truncate(v.title(i), width, "…")
	title = PanelTitleStyle.Render(title)
	if v.zones != nil {
		title = v.zones.Mark(v.ZoneID(i), title)
	}

	lines := []string{title}
	if height > 1 && p.Body != "" {
		for _, line := range strings.Split(wordwrap.String(p.Body, width), "\n") {
			if len(lines) >= height {
				break
			}
			lines = append(lines, PanelBodyStyle.Render(truncate.StringWithTail(line, uint(width), "…")))
		}
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		MaxWidth(width).
		MaxHeight(height).
		Render(strings.Join(lines, "\n"))
}
