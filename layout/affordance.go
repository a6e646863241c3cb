package layout

// Affordance is the hint a separator shows while hovered or dragged.
type Affordance int

const (
	// AffordanceNone means the separator is not active.
	AffordanceNone Affordance = iota

	// AffordanceResize is the plain two-way resize hint.
	AffordanceResize

	// AffordanceTowardStart points at the panel before the separator
	// (left or up): the drag is about to collapse it, or the panel after
	// the separator is collapsed and dragging that way expands it.
	AffordanceTowardStart

	// AffordanceTowardEnd points at the panel after the separator.
	AffordanceTowardEnd
)

// String returns the string representation of the affordance.
func (a Affordance) String() string {
	switch a {
	case AffordanceNone:
		return "none"
	case AffordanceResize:
		return "resize"
	case AffordanceTowardStart:
		return "toward-start"
	case AffordanceTowardEnd:
		return "toward-end"
	default:
		return "unknown"
	}
}

// separatorAffordance derives the hint for an idle separator from the
// collapsed flags of the panels on either side. A collapsed panel before the
// separator is expanded by dragging away from it, toward the end.
func separatorAffordance(separator int, collapsed []bool) Affordance {
	if separator < 0 || separator+1 >= len(collapsed) {
		return AffordanceNone
	}
	switch {
	case collapsed[separator]:
		return AffordanceTowardEnd
	case collapsed[separator+1]:
		return AffordanceTowardStart
	default:
		return AffordanceResize
	}
}

// HoverState describes the separator a group is currently highlighting.
type HoverState struct {
	Separator  int
	Affordance Affordance
	Dragging   bool
}
