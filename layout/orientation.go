// Package layout implements a resizable panel group: N panels along one axis,
// separated by N-1 draggable separators, with sizes kept as percentages that
// always sum to 100.
package layout

// Orientation selects the axis panels are laid out along.
type Orientation int

const (
	// Horizontal places panels side by side; separators are vertical bars
	// and drags follow the pointer's X coordinate.
	Horizontal Orientation = iota

	// Vertical stacks panels top to bottom; drags follow Y.
	Vertical
)

// String returns the string representation of the orientation.
func (o Orientation) String() string {
	switch o {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return "unknown"
	}
}

// ParseOrientation maps "horizontal"/"vertical" (and the short forms "h"/"v")
// to an Orientation. Anything else is reported as not ok.
func ParseOrientation(s string) (Orientation, bool) {
	switch s {
	case "horizontal", "h", "row":
		return Horizontal, true
	case "vertical", "v", "column":
		return Vertical, true
	default:
		return Horizontal, false
	}
}

// axis returns the coordinate of p that moves along the layout axis.
func (o Orientation) axis(p Point) float64 {
	if o == Vertical {
		return p.Y
	}
	return p.X
}

// span returns the start and extent of r along the layout axis.
func (o Orientation) span(r Rect) (start, extent float64) {
	if o == Vertical {
		return r.Y, r.Height
	}
	return r.X, r.Width
}
