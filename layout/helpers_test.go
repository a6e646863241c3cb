package layout

import (
	"bytes"
	stdlog "log"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"simple-panels/log"
)

// rowGeometry lays panels of the given widths side by side with a one cell
// separator centered on every boundary.
func rowGeometry(height float64, widths ...float64) *StaticGeometry {
	g := &StaticGeometry{}
	x := 0.0
	for i, w := range widths {
		g.Panels = append(g.Panels, Rect{X: x, Y: 0, Width: w, Height: height})
		x += w
		if i < len(widths)-1 {
			g.Separators = append(g.Separators, Rect{X: x - 0.5, Y: 0, Width: 1, Height: height})
		}
	}
	g.Container = Rect{X: 0, Y: 0, Width: x, Height: height}
	return g
}

// columnGeometry stacks panels of the given heights.
func columnGeometry(width float64, heights ...float64) *StaticGeometry {
	g := &StaticGeometry{}
	y := 0.0
	for i, h := range heights {
		g.Panels = append(g.Panels, Rect{X: 0, Y: y, Width: width, Height: h})
		y += h
		if i < len(heights)-1 {
			g.Separators = append(g.Separators, Rect{X: 0, Y: y - 0.5, Width: width, Height: 1})
		}
	}
	g.Container = Rect{X: 0, Y: 0, Width: width, Height: y}
	return g
}

// newTestGroup mounts a group and closes it when the test ends so the shared
// hover marker never leaks between tests.
func newTestGroup(t *testing.T, opts Options) *Group {
	t.Helper()
	g := NewGroup(opts)
	t.Cleanup(g.Close)
	return g
}

// captureWarnings redirects WarningLog into a buffer for the test.
func captureWarnings(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := log.WarningLog
	log.WarningLog = stdlog.New(&buf, "WARNING:", 0)
	t.Cleanup(func() { log.WarningLog = prev })
	return &buf
}

// requireInvariants checks what must hold after every commit.
func requireInvariants(t *testing.T, g *Group) {
	t.Helper()
	sizes := g.Sizes()
	panels := g.Panels()
	require.Len(t, sizes, len(panels))
	require.InDelta(t, TotalSize, sum(sizes), sumTolerance, "sizes %v", sizes)

	collapsed := g.CollapsedStates()
	for i, s := range sizes {
		require.False(t, math.IsNaN(s), "size %d is NaN", i)
		require.GreaterOrEqual(t, s, 0.0, "size %d in %v", i, sizes)
		require.LessOrEqual(t, s, TotalSize, "size %d in %v", i, sizes)
		require.Equal(t, s <= panels[i].CollapsedSize, collapsed[i], "collapsed flag %d for %v", i, sizes)
	}
}

// counter counts callback invocations.
type counter struct {
	n int
}

func (c *counter) inc() {
	c.n++
}
