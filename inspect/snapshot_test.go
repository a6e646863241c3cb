package inspect

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simple-panels/layout"
)

func testGroup(t *testing.T) *layout.Group {
	t.Helper()
	g := layout.NewGroup(layout.Options{
		Panels: []layout.PanelSpec{{ID: "side", DefaultSize: 30, Collapsible: true}, {ID: "main"}},
		Geometry: &layout.StaticGeometry{
			Container: layout.Rect{Width: 100, Height: 10},
		},
	})
	t.Cleanup(g.Close)
	return g
}

func TestNewGroupInfo(t *testing.T) {
	g := testGroup(t)
	info := NewGroupInfo("workspace", g)

	assert.Equal(t, "workspace", info.Name)
	assert.Equal(t, g.ID(), info.ID)
	assert.Equal(t, "horizontal", info.Orientation)
	assert.Equal(t, []float64{30, 70}, info.Sizes)
	assert.Equal(t, []bool{false, false}, info.Collapsed)
	assert.Equal(t, []float64{30}, info.SeparatorPositions)
	assert.Equal(t, layout.NoSeparator, info.ActiveSeparator)
	assert.Equal(t, layout.NoSeparator, info.DragSeparator)
	assert.Empty(t, info.Affordance)

	require.True(t, g.Collapse(0))
	info = NewGroupInfo("workspace", g)
	assert.Equal(t, []bool{true, false}, info.Collapsed)
}

func TestSnapshotRoundTripThroughFile(t *testing.T) {
	g := testGroup(t)
	snap := NewSnapshot().
		WithTerminal(120, 40).
		WithChrome(ChromeInfo{Mode: "full", MenuHeight: 2, Status: "ready"}).
		AddGroup("workspace", g).
		WithComponents(GroupNode("workspace", layout.Horizontal, layout.Rect{Width: 120, Height: 38}))

	path := filepath.Join(t.TempDir(), "inspect.json")
	require.NoError(t, WriteFile(snap, path))

	loaded, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, TerminalInfo{Width: 120, Height: 40}, loaded.Terminal)
	assert.Equal(t, "ready", loaded.Chrome.Status)

	info, ok := loaded.Group("workspace")
	require.True(t, ok)
	assert.Equal(t, []float64{30, 70}, info.Sizes)
	_, ok = loaded.Group("missing")
	assert.False(t, ok)

	require.NotNil(t, loaded.Components)
	assert.Equal(t, Bounds{Width: 120, Height: 38}, loaded.Components.Bounds)
}

func TestSnapshotToText(t *testing.T) {
	g := testGroup(t)
	require.True(t, g.Collapse(0))

	text := NewSnapshot().
		WithTerminal(80, 24).
		WithChrome(ChromeInfo{
			Mode:        "compact",
			MenuHeight:  1,
			Breakpoints: []BreakpointInfo{{Name: "compact_width", Threshold: 80, Active: true, Dimension: "width"}},
		}).
		AddGroup("workspace", g).
		WithComponents(GroupNode("workspace", layout.Horizontal, layout.Rect{Width: 80, Height: 23}).
			Add(PanelNode("side", "Side", layout.Rect{Width: 4, Height: 23}, 5, false).ClipTitle(12, 4)).
			Add(SeparatorNode("workspace/0", "hovered", layout.AffordanceTowardStart, layout.Rect{X: 4, Width: 1, Height: 23})).
			Add(PanelNode("main", "Main", layout.Rect{Height: 23}, 0, true))).
		ToText()

	assert.Contains(t, text, "Terminal: 80x24")
	assert.Contains(t, text, "Chrome: compact (menu 1)")
	assert.Contains(t, text, "[X] compact_width (threshold: 80 width)")
	assert.Contains(t, text, "workspace horizontal sizes=[0.0 100.0] collapsed[0]")
	assert.Contains(t, text, "group [workspace] (80x23) horizontal")
	assert.Contains(t, text, "  panel [side] (4x23) 5.0% CLIPPED(12->4)")
	assert.Contains(t, text, "  separator [workspace/0] (1x23) hovered toward-start")
	assert.Contains(t, text, "  panel [main] (0x23) 0.0% collapsed")
}

func TestNodeVisibility(t *testing.T) {
	n := SeparatorNode("g/0", "idle", layout.AffordanceNone, layout.Rect{X: 10, Y: 2, Width: 1, Height: 5})
	assert.Equal(t, Bounds{X: 10, Y: 2, Width: 1, Height: 5}, n.Bounds)
	assert.True(t, n.Visible)
	assert.Empty(t, n.Affordance)

	n = PanelNode("p", "P", layout.Rect{X: 3, Height: 5}, 0, true)
	assert.False(t, n.Visible)
}

func TestResolvePath(t *testing.T) {
	assert.Empty(t, resolvePath(""))
	assert.Empty(t, resolvePath("0"))
	assert.Equal(t, filepath.Join(os.TempDir(), DefaultFileName), resolvePath("1"))
	assert.Equal(t, "/tmp/layout.json", resolvePath("/tmp/layout.json"))
}

func TestWriteDisabled(t *testing.T) {
	if Enabled() {
		t.Skip("SP_INSPECT is set")
	}
	assert.Empty(t, Path())
	assert.NoError(t, Write(NewSnapshot()))
}
