package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProximityThreshold(t *testing.T) {
	g := newTestGroup(t, Options{
		Panels:             []PanelSpec{{}, {}},
		Geometry:           rowGeometry(10, 100, 100),
		ProximityThreshold: 8,
	})

	tests := []struct {
		name    string
		pointer Point
		want    int
	}{
		{name: "on the separator", pointer: Point{X: 100, Y: 5}, want: 0},
		{name: "5 cells right", pointer: Point{X: 105, Y: 5}, want: 0},
		{name: "5 cells left", pointer: Point{X: 95, Y: 5}, want: 0},
		{name: "exactly at the threshold", pointer: Point{X: 108, Y: 5}, want: 0},
		{name: "12 cells away", pointer: Point{X: 112, Y: 5}, want: NoSeparator},
		{name: "outside the container", pointer: Point{X: 103, Y: 50}, want: NoSeparator},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, g.PointerMove(tt.pointer))
			assert.Equal(t, tt.want, g.ActiveSeparator())
		})
	}
}

func TestProximityDefaultThreshold(t *testing.T) {
	g := newTestGroup(t, Options{Panels: []PanelSpec{{}, {}}})

	assert.Equal(t, DefaultProximityThreshold, g.ProximityThreshold())
}

func TestProximityPicksNearestSeparator(t *testing.T) {
	g := newTestGroup(t, Options{
		Panels:             []PanelSpec{{}, {}, {}},
		Geometry:           rowGeometry(10, 10, 10, 10),
		ProximityThreshold: 8,
	})

	assert.Equal(t, 0, g.PointerMove(Point{X: 14, Y: 1}))
	assert.Equal(t, 1, g.PointerMove(Point{X: 16, Y: 1}))
}

func TestProximityFollowsOrientation(t *testing.T) {
	g := newTestGroup(t, Options{
		Orientation:        Vertical,
		Panels:             []PanelSpec{{}, {}},
		Geometry:           columnGeometry(80, 10, 10),
		ProximityThreshold: 2,
	})

	assert.Equal(t, 0, g.PointerMove(Point{X: 70, Y: 11}))
	assert.Equal(t, NoSeparator, g.PointerMove(Point{X: 10, Y: 4}))
}

func TestProximityFallsBackToSeparatorPositions(t *testing.T) {
	g := newTestGroup(t, Options{
		Panels:             []PanelSpec{{DefaultSize: 25}, {}},
		Geometry:           &StaticGeometry{Container: Rect{X: 20, Width: 200, Height: 10}},
		ProximityThreshold: 3,
	})

	assert.Equal(t, []float64{70}, g.SeparatorPositions())
	assert.Equal(t, 0, g.PointerMove(Point{X: 72, Y: 2}))
	assert.Equal(t, NoSeparator, g.PointerMove(Point{X: 120, Y: 2}))
}

func TestProximitySkipsInertSeparators(t *testing.T) {
	captureWarnings(t)
	g := newTestGroup(t, Options{
		Panels:             []PanelSpec{{}, {}, {}},
		Separators:         []SeparatorSpec{{Index: 1}},
		Geometry:           rowGeometry(10, 10, 10, 10),
		ProximityThreshold: 3,
	})

	assert.Equal(t, NoSeparator, g.PointerMove(Point{X: 10, Y: 1}))
	assert.Equal(t, 1, g.PointerMove(Point{X: 20, Y: 1}))
}

func TestHoverAffordance(t *testing.T) {
	g := newTestGroup(t, Options{
		Panels:             []PanelSpec{{Collapsible: true}, {}, {Collapsible: true}},
		Geometry:           rowGeometry(10, 100, 100, 100),
		ProximityThreshold: 4,
	})

	hover, ok := g.Hover()
	assert.False(t, ok)
	assert.Equal(t, NoSeparator, hover.Separator)

	g.PointerMove(Point{X: 100, Y: 1})
	hover, ok = g.Hover()
	require.True(t, ok)
	assert.Equal(t, HoverState{Separator: 0, Affordance: AffordanceResize}, hover)

	require.True(t, g.Collapse(0))
	hover, _ = g.Hover()
	assert.Equal(t, AffordanceTowardEnd, hover.Affordance, "expand the collapsed panel before")

	require.True(t, g.Collapse(2))
	g.PointerMove(Point{X: 200, Y: 1})
	hover, _ = g.Hover()
	assert.Equal(t, 1, hover.Separator)
	assert.Equal(t, AffordanceTowardStart, hover.Affordance, "expand the collapsed panel after")
}

func TestHoverMarkerArbitration(t *testing.T) {
	a := newTestGroup(t, Options{
		Panels:             []PanelSpec{{}, {}},
		Geometry:           rowGeometry(10, 50, 50),
		ProximityThreshold: 4,
	})
	b := newTestGroup(t, Options{
		Panels:             []PanelSpec{{}, {}},
		Geometry:           rowGeometry(10, 50, 50),
		ProximityThreshold: 4,
	})
	require.NotEqual(t, a.ID(), b.ID())
	require.Empty(t, HoverOwner())

	near := Point{X: 51, Y: 5}
	far := Point{X: 10, Y: 5}

	assert.Equal(t, 0, a.PointerMove(near))
	assert.Equal(t, a.ID(), HoverOwner())

	// b is near its own separator but a holds the marker.
	assert.Equal(t, 0, b.PointerMove(near))
	assert.Equal(t, a.ID(), HoverOwner())
	_, ok := b.Hover()
	assert.False(t, ok)

	// Only the owner may clear the marker.
	b.PointerMove(far)
	assert.Equal(t, a.ID(), HoverOwner())

	a.PointerMove(far)
	assert.Empty(t, HoverOwner())

	b.PointerMove(near)
	assert.Equal(t, b.ID(), HoverOwner())
	_, ok = b.Hover()
	assert.True(t, ok)

	a.Close()
	assert.Equal(t, b.ID(), HoverOwner(), "closing a non-owner leaves the marker alone")

	b.PointerLeave()
	assert.Empty(t, HoverOwner())
}

func TestLeavingContainerReleasesMarker(t *testing.T) {
	g := newTestGroup(t, Options{
		Panels:             []PanelSpec{{}, {}},
		Geometry:           rowGeometry(10, 50, 50),
		ProximityThreshold: 4,
	})

	g.PointerMove(Point{X: 50, Y: 5})
	require.Equal(t, g.ID(), HoverOwner())

	g.PointerMove(Point{X: 50, Y: 20})
	assert.Empty(t, HoverOwner())
	assert.Equal(t, NoSeparator, g.ActiveSeparator())
}

func TestCloseReleasesMarker(t *testing.T) {
	g := NewGroup(Options{
		Panels:             []PanelSpec{{}, {}},
		Geometry:           rowGeometry(10, 50, 50),
		ProximityThreshold: 4,
	})

	g.PointerMove(Point{X: 50, Y: 5})
	require.Equal(t, g.ID(), HoverOwner())

	g.Close()
	assert.Empty(t, HoverOwner())
	assert.Equal(t, NoSeparator, g.PointerMove(Point{X: 50, Y: 5}), "closed groups ignore the pointer")
}

func TestProximityIgnoredWhileDragging(t *testing.T) {
	g := newTestGroup(t, Options{
		Panels:             []PanelSpec{{}, {}, {}},
		Geometry:           rowGeometry(10, 100, 100, 100),
		ProximityThreshold: 4,
	})

	require.True(t, g.BeginDrag(0, Point{X: 100, Y: 1}, 1))
	assert.Equal(t, 0, g.PointerMove(Point{X: 200, Y: 1}))
	g.PointerLeave()
	assert.Equal(t, g.ID(), HoverOwner())

	g.EndDrag()
	assert.Equal(t, 1, g.PointerMove(Point{X: 200, Y: 1}))
}
