package app

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simple-panels/config"
	"simple-panels/layout"
	"simple-panels/testing/harness"
	"simple-panels/testing/snapshot"
)

// With the built-in layout in a 120x40 terminal the root group gets 120x38:
// 119 cells for panels, so the collections/editor separator sits at x=30.
// The editor group gets 37 rows and its separator sits at y=20.
const rootSeparatorX = 30

func newTestHome(t *testing.T, storage layout.Storage) (*home, *harness.Harness) {
	t.Helper()
	h := newHome(context.Background(), Options{Storage: storage})
	t.Cleanup(h.close)
	return h, harness.New(t, h, 120, 40)
}

func TestInitialLayout(t *testing.T) {
	m, _ := newTestHome(t, nil)

	assert.Equal(t, layout.Rect{Width: 120, Height: 38}, m.ws.root.Bounds())
	assert.Equal(t, []float64{25, 75}, m.ws.root.Group.Sizes())

	editor := m.ws.find("editor")
	require.NotNil(t, editor)
	assert.Equal(t, []float64{55, 45}, editor.Group.Sizes())
	assert.Len(t, m.ws.views, 2)

	sep, ok := m.ws.root.SeparatorRect(0)
	require.True(t, ok)
	assert.Equal(t, float64(rootSeparatorX), sep.X)
}

func TestMouseDragResizes(t *testing.T) {
	storage := layout.NewMemoryStorage()
	m, h := newTestHome(t, storage)

	h.Press(rootSeparatorX, 5)
	require.NotNil(t, m.drag)
	assert.True(t, m.ws.root.Group.Dragging())

	h.Motion(60, 5, true)
	// Collections is capped at 50%.
	assert.InDelta(t, 50, m.ws.root.Group.Sizes()[0], 1e-9)

	h.Release(60, 5)
	assert.Nil(t, m.drag)
	assert.False(t, m.ws.root.Group.Dragging())

	stored, ok := storage.GetItem(layout.StorageKey("workspace"))
	require.True(t, ok)
	assert.Equal(t, "[50,50]", stored)
	assert.Equal(t, "workspace [50 50]", m.menu.Status())
}

func TestMouseDragCollapses(t *testing.T) {
	m, h := newTestHome(t, nil)

	h.Drag(rootSeparatorX, 5, 2, 5)

	assert.Equal(t, []bool{true, false}, m.ws.root.Group.CollapsedStates())
	assert.Equal(t, []float64{0, 100}, m.ws.root.Group.Sizes())
	assert.Equal(t, "Collections collapsed", m.menu.Status())

	// The separator stays at the edge and drags the panel back open.
	h.Drag(0, 5, 40, 5)
	assert.Equal(t, []bool{false, false}, m.ws.root.Group.CollapsedStates())
	assert.Equal(t, "Collections expanded", m.menu.Status())
}

func TestPressOutsideSeparatorDoesNotDrag(t *testing.T) {
	m, h := newTestHome(t, nil)

	h.Press(10, 5)
	assert.Nil(t, m.drag)
	h.Motion(50, 5, true)
	assert.Equal(t, []float64{25, 75}, m.ws.root.Group.Sizes())
}

func TestBlurEndsDrag(t *testing.T) {
	m, h := newTestHome(t, nil)

	h.Press(rootSeparatorX, 5)
	h.Motion(40, 5, true)
	moved := m.ws.root.Group.Sizes()

	h.SendMsg(tea.BlurMsg{})
	assert.Nil(t, m.drag)
	assert.False(t, m.ws.root.Group.Dragging())
	assert.Equal(t, moved, m.ws.root.Group.Sizes())

	// Later motion no longer resizes.
	h.Motion(80, 5, true)
	assert.Equal(t, moved, m.ws.root.Group.Sizes())
}

func TestHoverShowsAffordance(t *testing.T) {
	m, h := newTestHome(t, nil)

	h.Motion(rootSeparatorX-1, 5, false)
	assert.Equal(t, 0, m.ws.root.Group.ActiveSeparator())
	assert.Equal(t, m.ws.root.Group.ID(), layout.HoverOwner())
	snapshot.New(t).AssertContains(h.View(), "↔")

	editor := m.ws.find("editor")
	h.Motion(70, 19, false)
	assert.Equal(t, layout.NoSeparator, m.ws.root.Group.ActiveSeparator())
	assert.Equal(t, 0, editor.Group.ActiveSeparator())
	assert.Equal(t, editor.Group.ID(), layout.HoverOwner())
	snapshot.New(t).AssertContains(h.View(), "↕")
}

func TestKeyboardResize(t *testing.T) {
	m, h := newTestHome(t, nil)
	editor := m.ws.find("editor")

	// Without a selection nothing moves.
	h.SendKey("]")
	assert.Equal(t, []float64{25, 75}, m.ws.root.Group.Sizes())
	assert.Equal(t, "press tab to select a separator", m.menu.Status())

	h.SendSpecialKey(tea.KeyTab)
	assert.Equal(t, 0, m.ws.root.Focused())
	h.SendKey("]")
	assert.InDelta(t, 30, m.ws.root.Group.Sizes()[0], 1e-9)

	h.SendSpecialKey(tea.KeyTab)
	assert.Equal(t, layout.NoSeparator, m.ws.root.Focused())
	assert.Equal(t, 0, editor.Focused())
	h.SendKey("[")
	assert.InDelta(t, 50, editor.Group.Sizes()[0], 1e-9)

	// Selection wraps.
	h.SendSpecialKey(tea.KeyTab)
	assert.Equal(t, 0, m.ws.root.Focused())
	h.SendSpecialKey(tea.KeyShiftTab)
	assert.Equal(t, 0, editor.Focused())
}

func TestTogglePanelKeys(t *testing.T) {
	m, h := newTestHome(t, nil)

	h.SendKey("1")
	assert.Equal(t, []float64{0, 100}, m.ws.root.Group.Sizes())
	h.SendKey("1")
	assert.Equal(t, []float64{25, 75}, m.ws.root.Group.Sizes())

	h.SendKey("2")
	assert.Equal(t, []float64{25, 75}, m.ws.root.Group.Sizes())
	assert.Equal(t, "workspace panel 2 cannot collapse", m.menu.Status())

	// Digits address the group of the selected separator.
	h.SendSpecialKey(tea.KeyTab)
	h.SendSpecialKey(tea.KeyTab)
	h.SendKey("2")
	assert.Equal(t, []bool{false, true}, m.ws.find("editor").Group.CollapsedStates())

	// Out of range digits are ignored.
	h.SendKey("9")
	assert.Equal(t, []float64{25, 75}, m.ws.root.Group.Sizes())
}

func TestKeySequenceCollapseAndReset(t *testing.T) {
	m, h := newTestHome(t, nil)

	harness.NewKeySequence("1", "0").Play(h)
	assert.Equal(t, []float64{25, 75}, m.ws.root.Group.Sizes())
	assert.Equal(t, []bool{false, false}, m.ws.root.Group.CollapsedStates())
}

func TestResetKey(t *testing.T) {
	m, h := newTestHome(t, nil)

	h.Drag(rootSeparatorX, 5, 45, 5)
	h.SendKey("1")
	require.NotEqual(t, []float64{25, 75}, m.ws.root.Group.Sizes())

	h.SendKey("0")
	assert.Equal(t, []float64{25, 75}, m.ws.root.Group.Sizes())
	assert.Equal(t, []float64{55, 45}, m.ws.find("editor").Group.Sizes())
	assert.Equal(t, "sizes reset", m.menu.Status())
}

func TestTitleClickToggles(t *testing.T) {
	m, h := newTestHome(t, nil)

	h.View()
	id := m.ws.root.ZoneID(0)
	require.Eventually(t, func() bool {
		return !m.zones.Get(id).IsZero()
	}, time.Second, 5*time.Millisecond)

	h.Press(2, 0)
	assert.Equal(t, []bool{true, false}, m.ws.root.Group.CollapsedStates())
}

func TestChromeModes(t *testing.T) {
	m, h := newTestHome(t, nil)

	h.SendKey("?")
	assert.True(t, m.menu.ShowingFullHelp())
	assert.Equal(t, 35.0, m.ws.root.Bounds().Height)

	harness.RunWithCommonSizes(t, func(t *testing.T, size harness.TerminalSize) {
		h.Resize(size.Width, size.Height)
		out := h.View()
		assert.Equal(t, size.Height, snapshot.Lines(out))
		assert.LessOrEqual(t, snapshot.Width(out), size.Width)
	})

	h.Resize(30, 8)
	snapshot.New(t).AssertContains(h.View(), "Terminal too small (30x8)")
	assert.True(t, m.ws.root.Bounds().Empty())
}

func TestQuitFlushesAndQuits(t *testing.T) {
	storage := layout.NewMemoryStorage()
	m, h := newTestHome(t, storage)

	h.SendKey("1")
	_, ok := storage.GetItem(layout.StorageKey("workspace"))
	assert.False(t, ok, "write is still debounced")

	cmd := h.SendKey("q")
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())

	stored, ok := storage.GetItem(layout.StorageKey("workspace"))
	require.True(t, ok)
	assert.Equal(t, "[0,100]", stored)
	assert.Equal(t, []float64{0, 100}, m.ws.root.Group.Sizes())
}

func TestSizesRestoredOnNextRun(t *testing.T) {
	storage := layout.NewMemoryStorage()
	m, h := newTestHome(t, storage)
	h.Drag(rootSeparatorX, 5, 45, 5)
	want := m.ws.root.Group.Sizes()
	m.close()

	next := newHome(context.Background(), Options{Storage: storage})
	t.Cleanup(next.close)
	assert.Equal(t, want, next.ws.root.Group.Sizes())
}

func TestStorageIDPrefix(t *testing.T) {
	storage := layout.NewMemoryStorage()
	m := newHome(context.Background(), Options{Storage: storage, StorageID: "alt"})
	t.Cleanup(m.close)
	harness.New(t, m, 120, 40).SendKey("1")
	m.close()

	_, ok := storage.GetItem(layout.StorageKey("alt/workspace"))
	assert.True(t, ok)
	_, ok = storage.GetItem(layout.StorageKey("workspace"))
	assert.False(t, ok)

	assert.Equal(t, "", ScopedStorageID("alt", ""))
	assert.Equal(t, "workspace", ScopedStorageID("", "workspace"))
}

func TestCustomLayout(t *testing.T) {
	decl, err := config.ParseLayout([]byte(`
name: columns
orientation: vertical
panels:
  - id: top
    title: Top
  - id: middle
    title: Middle
  - id: bottom
    title: Bottom
`))
	require.NoError(t, err)

	m := newHome(context.Background(), Options{Layout: decl})
	t.Cleanup(m.close)
	h := harness.New(t, m, 100, 40)

	require.Len(t, m.ws.views, 1)
	assert.Equal(t, layout.Vertical, m.ws.root.Group.Orientation())
	assert.Len(t, m.ws.separators(), 2)
	snapshot.New(t).AssertContains(h.View(), "3 Bottom")
}
