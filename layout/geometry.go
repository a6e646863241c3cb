package layout

// Point is a pointer position in the host's coordinate space (terminal cells
// for the bundled UI, pixels elsewhere).
type Point struct {
	X, Y float64
}

// Rect is an axis aligned box in the same coordinate space as Point.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether p lies inside r. The right and bottom edges are
// exclusive.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width && p.Y >= r.Y && p.Y < r.Y+r.Height
}

// Center returns the midpoint of r.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Geometry is the live measurement of a rendered group. Every method reports
// ok=false when the element is not currently measurable.
type Geometry interface {
	ContainerRect() (Rect, bool)
	PanelRect(index int) (Rect, bool)
	SeparatorRect(index int) (Rect, bool)
}

// StaticGeometry is a Geometry backed by fixed rectangles. Hosts that lay out
// synchronously can fill it after each render; tests use it directly.
type StaticGeometry struct {
	Container  Rect
	Panels     []Rect
	Separators []Rect
}

// ContainerRect implements Geometry.
func (g *StaticGeometry) ContainerRect() (Rect, bool) {
	if g == nil || g.Container.Empty() {
		return Rect{}, false
	}
	return g.Container, true
}

// PanelRect implements Geometry.
func (g *StaticGeometry) PanelRect(index int) (Rect, bool) {
	if g == nil || index < 0 || index >= len(g.Panels) {
		return Rect{}, false
	}
	return g.Panels[index], true
}

// SeparatorRect implements Geometry.
func (g *StaticGeometry) SeparatorRect(index int) (Rect, bool) {
	if g == nil || index < 0 || index >= len(g.Separators) {
		return Rect{}, false
	}
	return g.Separators[index], true
}

// measuredExtent is the sum of the measurable panel extents along the axis,
// falling back to the container extent.
func measuredExtent(g Geometry, o Orientation, panelCount int) float64 {
	if g == nil {
		return 0
	}
	total := 0.0
	measured := false
	for i := 0; i < panelCount; i++ {
		r, ok := g.PanelRect(i)
		if !ok {
			continue
		}
		_, extent := o.span(r)
		total += extent
		measured = true
	}
	if measured && total > 0 {
		return total
	}
	if r, ok := g.ContainerRect(); ok {
		_, extent := o.span(r)
		return extent
	}
	return 0
}
