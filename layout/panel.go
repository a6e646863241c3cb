package layout

import "math"

// PanelSpec declares one panel of a group. Sizes are percentages of the group.
//
// Zero values select defaults: MinSize 0 means DefaultMinSize, MaxSize 0 means
// DefaultMaxSize and DefaultSize 0 means the panel takes an even share of
// whatever the declared panels leave over.
type PanelSpec struct {
	// ID is an optional name used in logs and inspection output.
	ID string

	DefaultSize float64
	MinSize     float64
	MaxSize     float64

	// Collapsible panels may be dragged or set below MinSize down to
	// CollapsedSize.
	Collapsible   bool
	CollapsedSize float64

	// DefaultCollapsed starts the panel at CollapsedSize when no persisted
	// layout exists.
	DefaultCollapsed bool

	// OnCollapse and OnExpand fire once per transition, whether it was caused
	// by a drag or by Collapse/Expand.
	OnCollapse func()
	OnExpand   func()
}

// SeparatorSpec declares the boundary between panel Index and Index+1. It is
// cosmetic and carries no constraint data.
type SeparatorSpec struct {
	Index int
	ID    string
}

// Separators returns one SeparatorSpec per boundary for panelCount panels.
func Separators(panelCount int) []SeparatorSpec {
	if panelCount < 2 {
		return nil
	}
	seps := make([]SeparatorSpec, panelCount-1)
	for i := range seps {
		seps[i] = SeparatorSpec{Index: i}
	}
	return seps
}

// normalized fills defaults and repairs contradictory constraints.
func (p PanelSpec) normalized() PanelSpec {
	if p.MinSize <= 0 {
		p.MinSize = DefaultMinSize
	}
	if p.MaxSize <= 0 || p.MaxSize > TotalSize {
		p.MaxSize = DefaultMaxSize
	}
	if p.MinSize > p.MaxSize {
		p.MinSize = p.MaxSize
	}
	if p.CollapsedSize < 0 {
		p.CollapsedSize = 0
	}
	if p.CollapsedSize > p.MinSize {
		p.CollapsedSize = p.MinSize
	}
	if p.DefaultSize < 0 {
		p.DefaultSize = 0
	}
	return p
}

func normalizePanels(panels []PanelSpec) []PanelSpec {
	out := make([]PanelSpec, len(panels))
	for i, p := range panels {
		out[i] = p.normalized()
	}
	return out
}

// reachableMin is the smallest size a drag can leave the panel at.
func (p PanelSpec) reachableMin() float64 {
	if p.Collapsible {
		return p.CollapsedSize
	}
	return p.MinSize
}

// isCollapsed is the one definition of the collapsed state.
func (p PanelSpec) isCollapsed(size float64) bool {
	return size <= p.CollapsedSize
}

// DefaultSizes computes the mount-time sizes for panels: explicitly sized or
// collapsed panels take their share first and the rest is split evenly across
// the remaining panels. The result always sums to TotalSize.
func DefaultSizes(panels []PanelSpec) []float64 {
	panels = normalizePanels(panels)
	sizes := make([]float64, len(panels))
	pinned := make([]bool, len(panels))

	used := 0.0
	var open []int
	for i, p := range panels {
		switch {
		case p.DefaultCollapsed:
			sizes[i] = p.CollapsedSize
			pinned[i] = true
			used += sizes[i]
		case p.DefaultSize > 0:
			sizes[i] = p.DefaultSize
			used += sizes[i]
		default:
			open = append(open, i)
		}
	}

	if len(open) > 0 {
		share := math.Max(TotalSize-used, 0) / float64(len(open))
		for _, i := range open {
			sizes[i] = share
		}
	}

	return fitToTotal(sizes, pinned)
}

// fitToTotal scales the unpinned sizes so the whole slice sums to TotalSize
// and rounds every value. If the pinned sizes alone exceed the total,
// everything is scaled.
func fitToTotal(sizes []float64, pinned []bool) []float64 {
	out := make([]float64, len(sizes))
	copy(out, sizes)
	if len(out) == 0 {
		return out
	}

	pinnedSum, freeSum := 0.0, 0.0
	var free []int
	for i, s := range out {
		if pinned != nil && pinned[i] {
			pinnedSum += s
			continue
		}
		free = append(free, i)
		freeSum += s
	}
	if len(free) == 0 || pinnedSum > TotalSize {
		free = free[:0]
		for i := range out {
			free = append(free, i)
		}
		freeSum += pinnedSum
		pinnedSum = 0
	}

	target := TotalSize - pinnedSum
	if math.Abs(freeSum-target) > snapEpsilon {
		if freeSum > 0 {
			scale := target / freeSum
			for _, i := range free {
				out[i] *= scale
			}
		} else {
			for _, i := range free {
				out[i] = target / float64(len(free))
			}
		}
	}

	for i := range out {
		out[i] = round(out[i])
	}

	// Push the rounding residue onto the last free panel.
	residue := TotalSize - sum(out)
	if residue != 0 {
		last := free[len(free)-1]
		out[last] = round(out[last] + residue)
	}
	return out
}

func round(v float64) float64 {
	return math.Round(v*roundScale) / roundScale
}

func sum(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total
}

func cloneSizes(sizes []float64) []float64 {
	if sizes == nil {
		return nil
	}
	out := make([]float64, len(sizes))
	copy(out, sizes)
	return out
}

// collapsedStates derives the collapsed flags from sizes. It is never stored.
func collapsedStates(panels []PanelSpec, sizes []float64) []bool {
	states := make([]bool, len(sizes))
	for i := range sizes {
		if i < len(panels) {
			states[i] = panels[i].isCollapsed(sizes[i])
		}
	}
	return states
}

// adjacent returns the panel that absorbs or donates space when panel index
// collapses or expands: the following panel, or the preceding one for the
// last panel. ok is false for a group with a single panel.
func adjacent(index, count int) (int, bool) {
	if count < 2 || index < 0 || index >= count {
		return 0, false
	}
	if index == count-1 {
		return index - 1, true
	}
	return index + 1, true
}
