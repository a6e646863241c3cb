package layout

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGroupReportsInitialSizes(t *testing.T) {
	var reported [][]float64
	g := newTestGroup(t, Options{
		Panels:        []PanelSpec{{DefaultSize: 30}, {}},
		OnSizesChange: func(sizes []float64) { reported = append(reported, sizes) },
	})

	assert.Equal(t, [][]float64{{30, 70}}, reported)
	assert.Equal(t, Horizontal, g.Orientation())
	assert.Equal(t, 2, g.PanelCount())
	assert.Equal(t, 1, g.SeparatorCount())
}

func TestMissingSeparatorIsReportedAndInert(t *testing.T) {
	warnings := captureWarnings(t)
	g := newTestGroup(t, Options{
		Panels:     []PanelSpec{{}, {}, {}},
		Separators: []SeparatorSpec{{Index: 0}, {Index: 7}},
		Geometry:   rowGeometry(10, 100, 100, 100),
	})

	assert.Contains(t, warnings.String(), "panels 1 and 2 have no separator")
	assert.Contains(t, warnings.String(), "separator index 7 out of range")
	assert.True(t, g.HasSeparator(0))
	assert.False(t, g.HasSeparator(1))
	assert.False(t, g.BeginDrag(1, Point{X: 200}, 1))
	assert.Equal(t, NoSeparator, g.SeparatorAt(Point{X: 200, Y: 1}))
	assert.Equal(t, 0, g.SeparatorAt(Point{X: 100, Y: 1}))

	require.True(t, g.Collapse(1), "imperative control still works across an inert boundary")
}

func TestSeparatorPositions(t *testing.T) {
	g := newTestGroup(t, Options{
		Orientation: Vertical,
		Panels:      []PanelSpec{{DefaultSize: 20}, {DefaultSize: 30}, {}},
		Geometry:    &StaticGeometry{Container: Rect{Y: 10, Width: 40, Height: 50}},
	})

	assert.Equal(t, []float64{20, 35}, g.SeparatorPositions())

	require.True(t, g.SetSizes([]float64{50, 30, 20}))
	assert.Equal(t, []float64{35, 50}, g.SeparatorPositions())

	g.SetGeometry(nil)
	assert.Nil(t, g.SeparatorPositions())
}

func TestToggle(t *testing.T) {
	g := newTestGroup(t, Options{Panels: []PanelSpec{{Collapsible: true}, {}}})

	require.True(t, g.Toggle(0))
	assert.Equal(t, []bool{true, false}, g.CollapsedStates())
	require.True(t, g.Toggle(0))
	assert.Equal(t, []float64{50, 50}, g.Sizes())
	assert.False(t, g.Toggle(5))
}

func TestResetSizes(t *testing.T) {
	g := newTestGroup(t, Options{Panels: []PanelSpec{{DefaultSize: 40}, {}}})
	require.True(t, g.SetSizes([]float64{10, 90}))

	require.True(t, g.ResetSizes())
	assert.Equal(t, []float64{40, 60}, g.Sizes())
	assert.False(t, g.ResetSizes())
}

func TestSetPanels(t *testing.T) {
	t.Run("same count keeps sizes", func(t *testing.T) {
		g := newTestGroup(t, Options{Panels: []PanelSpec{{}, {}}})
		require.True(t, g.SetSizes([]float64{30, 70}))

		g.SetPanels([]PanelSpec{{ID: "left"}, {ID: "right"}}, nil)

		assert.Equal(t, []float64{30, 70}, g.Sizes())
		assert.Equal(t, "left", g.Panels()[0].ID)
	})

	t.Run("new count recomputes defaults and aborts the drag", func(t *testing.T) {
		ends := &counter{}
		var reported []float64
		g := newTestGroup(t, Options{
			Panels:        []PanelSpec{{}, {}},
			Geometry:      rowGeometry(10, 100, 100),
			OnResizeEnd:   func([]float64) { ends.inc() },
			OnSizesChange: func(sizes []float64) { reported = sizes },
		})
		require.True(t, g.BeginDrag(0, Point{X: 100}, 1))
		g.Drag(Point{X: 140})

		g.SetPanels([]PanelSpec{{}, {}, {DefaultSize: 50}}, nil)

		assert.False(t, g.Dragging())
		assert.Equal(t, 0, ends.n)
		assert.Equal(t, []float64{25, 25, 50}, g.Sizes())
		assert.Equal(t, []float64{25, 25, 50}, reported)
		assert.Equal(t, 2, g.SeparatorCount())
		assert.False(t, g.Drag(Point{X: 10}))
	})
}

func TestControlledGroup(t *testing.T) {
	var reported []float64
	g := newTestGroup(t, Options{
		Panels:          []PanelSpec{{Collapsible: true}, {}},
		ControlledSizes: []float64{40, 60},
		OnSizesChange:   func(sizes []float64) { reported = sizes },
	})
	assert.Equal(t, []float64{40, 60}, reported)

	require.True(t, g.Collapse(0))
	assert.Equal(t, []float64{0, 100}, reported, "constraint math still runs")
	assert.Equal(t, []float64{40, 60}, g.Sizes(), "until the caller applies it")

	require.True(t, g.SetControlledSizes(reported))
	assert.Equal(t, []bool{true, false}, g.CollapsedStates())
	assert.False(t, g.SetControlledSizes([]float64{100}))
}

func TestSetControlledSizesOnUncontrolledGroup(t *testing.T) {
	captureWarnings(t)
	g := newTestGroup(t, Options{Panels: []PanelSpec{{}, {}}})

	assert.False(t, g.SetControlledSizes([]float64{10, 90}))
	assert.Equal(t, []float64{50, 50}, g.Sizes())
}

func TestCloseFlushesAndDisablesGroup(t *testing.T) {
	storage := NewMemoryStorage()
	g := NewGroup(Options{
		Panels:       []PanelSpec{{}, {}},
		Geometry:     rowGeometry(10, 100, 100),
		StorageID:    "unmount",
		Storage:      storage,
		PersistDelay: time.Hour,
	})
	require.True(t, g.SetSizes([]float64{20, 80}))
	require.True(t, g.BeginDrag(0, Point{X: 40}, 1))

	g.Close()
	g.Close()

	assert.False(t, g.Dragging())
	raw, ok := storage.GetItem(StorageKey("unmount"))
	require.True(t, ok)
	assert.Equal(t, "[20,80]", raw)
	assert.False(t, g.Collapse(0))
	assert.False(t, g.SetSizes([]float64{50, 50}))
	assert.False(t, g.BeginDrag(0, Point{X: 40}, 1))
}

func TestImperativeAndDragPathsAgree(t *testing.T) {
	tests := []struct {
		name          string
		neighbour     PanelSpec
		wantSizes     []float64
		wantCollapsed []bool
		wantCollapses int
	}{
		{
			name:          "unconstrained neighbour",
			neighbour:     PanelSpec{},
			wantSizes:     []float64{0, 100},
			wantCollapsed: []bool{true, false},
			wantCollapses: 1,
		},
		{
			name:          "neighbour capped at its maximum",
			neighbour:     PanelSpec{MaxSize: 60},
			wantSizes:     []float64{40, 60},
			wantCollapsed: []bool{false, false},
			wantCollapses: 0,
		},
		{
			name:          "neighbour with a large minimum",
			neighbour:     PanelSpec{MinSize: 70},
			wantSizes:     []float64{0, 100},
			wantCollapsed: []bool{true, false},
			wantCollapses: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			panels := func(c *counter) []PanelSpec {
				return []PanelSpec{{Collapsible: true, OnCollapse: c.inc}, tt.neighbour}
			}
			viaDrag, viaCall := &counter{}, &counter{}
			dragged := newTestGroup(t, Options{Panels: panels(viaDrag), Geometry: rowGeometry(10, 100, 100)})
			called := newTestGroup(t, Options{Panels: panels(viaCall)})
			require.Equal(t, called.Sizes(), dragged.Sizes())

			require.True(t, dragged.BeginDrag(0, Point{X: 100}, 1))
			dragged.Drag(Point{X: 0})
			dragged.EndDrag()
			called.Collapse(0)

			assert.Equal(t, tt.wantSizes, dragged.Sizes())
			assert.Equal(t, dragged.Sizes(), called.Sizes())
			assert.Equal(t, tt.wantCollapsed, called.CollapsedStates())
			assert.Equal(t, dragged.CollapsedStates(), called.CollapsedStates())
			assert.Equal(t, tt.wantCollapses, viaDrag.n)
			assert.Equal(t, tt.wantCollapses, viaCall.n)

			if tt.wantCollapsed[0] {
				require.True(t, dragged.Expand(0))
				require.True(t, called.Expand(0))
				assert.Equal(t, dragged.Sizes(), called.Sizes())
			}
		})
	}
}
