package ui

import (
	"fmt"

	"github.com/mattn/go-runewidth"

	"simple-panels/inspect"
	"simple-panels/layout"
)

func init() {
	inspect.RegisterStyle("panel_title", PanelTitleStyle)
	inspect.RegisterStyle("panel_body", PanelBodyStyle)
	for state, name := range separatorStateNames {
		inspect.RegisterStyle("separator_"+name, separatorStyles[state])
	}
}

var separatorStateNames = map[separatorState]string{
	separatorIdle:     "idle",
	separatorInert:    "inert",
	separatorFocused:  "focused",
	separatorHovered:  "hovered",
	separatorDragging: "dragging",
}

var _ inspect.Introspectable = (*GroupView)(nil)

// InspectNode describes the group as laid out by the last SetBounds: one
// panel node per panel, with a separator node after every panel but the last.
func (v *GroupView) InspectNode() *inspect.Node {
	g := v.Group
	node := inspect.GroupNode(v.Name, g.Orientation(), v.bounds)
	sizes := g.Sizes()
	collapsed := g.CollapsedStates()
	hover, hovered := g.Hover()

	for i := range sizes {
		r, _ := v.PanelRect(i)
		var p PanelContent
		if i < len(v.Panels) {
			p = v.Panels[i]
		}
		panel := inspect.PanelNode(p.ID, p.Title, r, sizes[i], collapsed[i])
		if p.Child != nil {
			panel.Add(p.Child.InspectNode())
		} else {
			panel.WithStyle("panel_title", PanelTitleStyle)
			if w := runewidth.StringWidth(v.title(i)); w > int(r.Width) {
				panel.ClipTitle(w, int(r.Width))
			}
		}
		node.Add(panel)

		if i == len(sizes)-1 {
			continue
		}
		sr, _ := v.SeparatorRect(i)
		state := v.separatorState(i)
		affordance := layout.AffordanceNone
		if hovered && hover.Separator == i {
			affordance = hover.Affordance
		}
		name := separatorStateNames[state]
		node.Add(inspect.SeparatorNode(fmt.Sprintf("%s/%d", v.Name, i), name, affordance, sr).
			WithStyle("separator_"+name, separatorStyles[state]))
	}
	return node
}
