package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simple-panels/inspect"
	"simple-panels/layout"
)

func TestGroupViewInspectNode(t *testing.T) {
	v := newView(t, layout.Horizontal, []float64{50, 50},
		PanelContent{ID: "left", Title: "collections"}, PanelContent{ID: "right", Title: "x"})
	v.SetBounds(layout.Rect{Width: 21, Height: 5})

	node := v.InspectNode()
	assert.Equal(t, inspect.KindGroup, node.Kind)
	assert.Equal(t, "test", node.ID)
	assert.Equal(t, "horizontal", node.Orientation)
	require.Len(t, node.Children, 3)

	left, sep, right := node.Children[0], node.Children[1], node.Children[2]
	assert.Equal(t, "left", left.ID)
	assert.Equal(t, 50.0, left.Size)
	assert.Equal(t, inspect.Bounds{Width: 10, Height: 5}, left.Bounds)
	require.NotNil(t, left.TitleClip)
	assert.Equal(t, inspect.Clip{Width: 17, Shown: 10}, *left.TitleClip)
	assert.Nil(t, right.TitleClip)
	assert.Equal(t, "panel_title", left.Style.Name)

	assert.Equal(t, inspect.KindSeparator, sep.Kind)
	assert.Equal(t, "test/0", sep.ID)
	assert.Equal(t, "idle", sep.State)
	assert.Empty(t, sep.Affordance)
	assert.Equal(t, inspect.Bounds{X: 10, Width: 1, Height: 5}, sep.Bounds)

	v.SetFocused(0)
	assert.Equal(t, "focused", v.InspectNode().Children[1].State)
}

func TestGroupViewInspectCollapsedAndHovered(t *testing.T) {
	g := layout.NewGroup(layout.Options{Panels: []layout.PanelSpec{{Collapsible: true}, {}}})
	t.Cleanup(g.Close)
	v := NewGroupView("side", g, []PanelContent{{ID: "nav", Title: "Nav"}, {ID: "main", Title: "Main"}}, nil)
	v.SetBounds(layout.Rect{Width: 21, Height: 5})
	require.True(t, g.Collapse(0))

	g.PointerMove(layout.Point{X: 0.5, Y: 2.5})
	node := v.InspectNode()

	nav := node.Find(inspect.KindPanel, "nav")
	require.NotNil(t, nav)
	assert.True(t, nav.Collapsed)
	assert.False(t, nav.Visible)

	sep := node.Find(inspect.KindSeparator, "side/0")
	require.NotNil(t, sep)
	assert.Equal(t, "hovered", sep.State)
	assert.Equal(t, layout.AffordanceTowardEnd.String(), sep.Affordance)
	assert.Equal(t, "separator_hovered", sep.Style.Name)
}

func TestGroupViewInspectNested(t *testing.T) {
	inner := newView(t, layout.Vertical, []float64{50, 50},
		PanelContent{ID: "request"}, PanelContent{ID: "response"})
	outer := newView(t, layout.Horizontal, []float64{40, 60},
		PanelContent{ID: "collections"}, PanelContent{ID: "editor", Child: inner})
	outer.SetBounds(layout.Rect{Width: 41, Height: 9})

	editor := outer.InspectNode().Find(inspect.KindPanel, "editor")
	require.NotNil(t, editor)
	require.Len(t, editor.Children, 1)
	assert.Equal(t, inspect.KindGroup, editor.Children[0].Kind)
	assert.Equal(t, "vertical", editor.Children[0].Orientation)
	assert.NotNil(t, editor.Find(inspect.KindPanel, "response"))
}

func TestRegisteredStyles(t *testing.T) {
	names := inspect.StyleNames()
	for _, want := range []string{"panel_title", "panel_body", "separator_idle", "separator_dragging", "separator_hovered"} {
		assert.Contains(t, names, want)
	}
}
