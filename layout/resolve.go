package layout

import "math"

// collapseThreshold is the soft snap boundary of a collapsible panel: a drag
// that takes the panel to or below it collapses the panel outright. It sits
// halfway between CollapsedSize and MinSize.
func collapseThreshold(p PanelSpec) float64 {
	return p.CollapsedSize + (p.MinSize-p.CollapsedSize)/2
}

// panelResult is the outcome of resolving one panel's candidate size.
type panelResult struct {
	size      float64
	collapsed bool
	// pending is set when the panel collapsed or is pinned at MinSize on
	// the way to collapsing.
	pending bool
}

// resolvePanel applies one panel's constraint policy to a candidate size.
// collapsed is the panel's session collapsed flag.
func resolvePanel(p PanelSpec, candidate float64, collapsed bool) panelResult {
	if !p.Collapsible {
		return panelResult{size: clamp(candidate, p.MinSize, p.MaxSize)}
	}

	if collapsed {
		// Stay pinned until the virtual size reaches MinSize again.
		if candidate < p.MinSize {
			return panelResult{size: p.CollapsedSize, collapsed: true}
		}
		return panelResult{size: math.Min(candidate, p.MaxSize)}
	}

	switch {
	case candidate <= collapseThreshold(p):
		return panelResult{size: p.CollapsedSize, collapsed: true, pending: true}
	case candidate < p.MinSize:
		return panelResult{size: p.MinSize, pending: true}
	default:
		return panelResult{size: math.Min(candidate, p.MaxSize)}
	}
}

// deltaEnvelope returns the hard bounds on the delta moved from panel b to
// panel a, given their start sizes. Collapsibility extends each panel's
// reachable minimum down to its collapsed size.
func deltaEnvelope(pa, pb PanelSpec, startA, startB float64) (lo, hi float64) {
	lo = math.Max(pa.reachableMin()-startA, startB-pb.MaxSize)
	hi = math.Min(pa.MaxSize-startA, startB-pb.reachableMin())
	return lo, hi
}

// pairMove is the outcome of moving the boundary between two adjacent panels.
type pairMove struct {
	sizeA, sizeB float64
	// pending flags the panel the move is collapsing or about to.
	pending Affordance
}

// resolvePair moves deltaPct from panel b to panel a, starting from startA
// and startB, under both panels' constraints. Drags and imperative collapse
// and expand all go through it.
func resolvePair(pa, pb PanelSpec, startA, startB, deltaPct float64, collapsedA, collapsedB bool) pairMove {
	// Panel a resolves first; its result narrows what b sees.
	ra := resolvePanel(pa, startA+deltaPct, collapsedA)
	rb := resolvePanel(pb, startB-(ra.size-startA), collapsedB)
	delta := startB - rb.size

	lo, hi := deltaEnvelope(pa, pb, startA, startB)
	if lo > hi {
		delta = 0
	} else {
		delta = clamp(delta, lo, hi)
	}

	total := startA + startB
	sizeA := settle(pa, pb, startA+delta, total)
	sizeA = snapCollapsed(pa, round(sizeA))
	sizeB := snapCollapsed(pb, round(total-sizeA))

	m := pairMove{sizeA: sizeA, sizeB: sizeB}
	switch {
	case ra.pending && math.Abs(sizeA-ra.size) <= snapEpsilon:
		m.pending = AffordanceTowardStart
	case rb.pending && math.Abs(sizeB-rb.size) <= snapEpsilon:
		m.pending = AffordanceTowardEnd
	}
	return m
}

// inDeadZone reports whether size lies strictly between a collapsible panel's
// collapsed size and its minimum, where no drag may leave it.
func inDeadZone(p PanelSpec, size float64) bool {
	return p.Collapsible && size > p.CollapsedSize+snapEpsilon && size < p.MinSize-snapEpsilon
}

// legalSize reports whether a drag may leave the panel at size.
func legalSize(p PanelSpec, size float64) bool {
	if size > p.MaxSize+snapEpsilon {
		return false
	}
	if size >= p.MinSize-snapEpsilon {
		return true
	}
	return p.Collapsible && math.Abs(size-p.CollapsedSize) <= snapEpsilon
}

// settle moves a pair out of any dead zone, keeping a+b == total. The nearer
// legal edge wins when the partner can absorb it.
func settle(pa, pb PanelSpec, a, total float64) float64 {
	if inDeadZone(pa, a) {
		for _, cand := range nearestFirst(a, pa.MinSize, pa.CollapsedSize) {
			if legalSize(pb, total-cand) {
				a = cand
				break
			}
		}
	}
	if b := total - a; inDeadZone(pb, b) {
		for _, cand := range nearestFirst(b, pb.MinSize, pb.CollapsedSize) {
			if legalSize(pa, total-cand) {
				a = total - cand
				break
			}
		}
	}
	return a
}

func nearestFirst(v, x, y float64) [2]float64 {
	if math.Abs(v-y) < math.Abs(v-x) {
		return [2]float64{y, x}
	}
	return [2]float64{x, y}
}

// snapCollapsed lands a size exactly on the collapsed size when float drift
// leaves it a hair away.
func snapCollapsed(p PanelSpec, size float64) float64 {
	if math.Abs(size-p.CollapsedSize) <= snapEpsilon {
		return p.CollapsedSize
	}
	return size
}

// Helper functions

func clamp(value, minVal, maxVal float64) float64 {
	if value < minVal {
		return minVal
	}
	if value > maxVal {
		return maxVal
	}
	return value
}
