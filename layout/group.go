package layout

import (
	"time"

	"github.com/google/uuid"

	"simple-panels/log"
)

// Options configures a Group.
type Options struct {
	Orientation Orientation
	Panels      []PanelSpec

	// Separators declares the draggable boundaries. Nil means every boundary
	// has one. A boundary missing from a non-nil slice is inert.
	Separators []SeparatorSpec

	// StorageID keys the persisted layout. Empty disables persistence.
	StorageID    string
	Storage      Storage
	PersistDelay time.Duration

	// ProximityThreshold is the hover distance in the geometry's units.
	ProximityThreshold float64

	ControlledSizes []float64

	OnSizesChange func(sizes []float64)
	OnResizeStart func()
	OnResizeEnd   func(sizes []float64)

	Geometry Geometry
	Capture  PointerCapture
}

// Group is one independently mounted layout: N panels along one axis with the
// separators between them.
type Group struct {
	id          string
	orientation Orientation
	separators  []bool

	store      *Store
	controller *Controller
	detector   *Detector
	geometry   Geometry

	closed bool
}

// NewGroup mounts a group. OnSizesChange receives the initial sizes before
// NewGroup returns.
func NewGroup(opts Options) *Group {
	g := &Group{
		id:          uuid.NewString(),
		orientation: opts.Orientation,
	}

	g.store = NewStore(opts.Panels, StoreOptions{
		StorageID:       opts.StorageID,
		Storage:         opts.Storage,
		PersistDelay:    opts.PersistDelay,
		ControlledSizes: opts.ControlledSizes,
		OnSizesChange:   opts.OnSizesChange,
	})

	g.controller = NewController(g.store, opts.Orientation, opts.Capture)
	g.controller.onResizeStart = opts.OnResizeStart
	g.controller.onResizeEnd = opts.OnResizeEnd

	g.detector = NewDetector(g.id, opts.Orientation, opts.ProximityThreshold)
	g.detector.SetPositions(g.SeparatorPositions)

	g.setSeparators(opts.Separators)
	g.SetGeometry(opts.Geometry)

	log.LayoutTrace("group %s mounted: %s, %d panels, sizes=%v", g.id, g.orientation, g.store.PanelCount(), g.store.sizes)
	g.store.Notify()
	return g
}

// setSeparators records which boundaries are draggable and warns about the
// ones that are not.
func (g *Group) setSeparators(seps []SeparatorSpec) {
	n := g.store.PanelCount() - 1
	if n < 0 {
		n = 0
	}
	g.separators = make([]bool, n)
	if seps == nil {
		for i := range g.separators {
			g.separators[i] = true
		}
		return
	}
	for _, s := range seps {
		if s.Index < 0 || s.Index >= n {
			log.WarningLog.Printf("group %s: separator index %d out of range for %d panels", g.id, s.Index, n+1)
			continue
		}
		g.separators[s.Index] = true
	}
	for i, ok := range g.separators {
		if !ok {
			log.WarningLog.Printf("group %s: panels %d and %d have no separator between them; that boundary cannot be resized", g.id, i, i+1)
		}
	}
}

// ID returns the group's unique owner token.
func (g *Group) ID() string {
	return g.id
}

// Orientation returns the layout axis.
func (g *Group) Orientation() Orientation {
	return g.orientation
}

// Panels returns the normalized panel declarations.
func (g *Group) Panels() []PanelSpec {
	return g.store.Panels()
}

// PanelCount returns the number of panels.
func (g *Group) PanelCount() int {
	return g.store.PanelCount()
}

// SeparatorCount returns the number of boundaries, draggable or not.
func (g *Group) SeparatorCount() int {
	return len(g.separators)
}

// HasSeparator reports whether boundary index is draggable.
func (g *Group) HasSeparator(index int) bool {
	return index >= 0 && index < len(g.separators) && g.separators[index]
}

func (g *Group) liveSeparators() []int {
	out := make([]int, 0, len(g.separators))
	for i, ok := range g.separators {
		if ok {
			out = append(out, i)
		}
	}
	return out
}

// Sizes returns the committed sizes.
func (g *Group) Sizes() []float64 {
	return g.store.Sizes()
}

// CollapsedStates returns the collapsed flag of each panel.
func (g *Group) CollapsedStates() []bool {
	return g.store.CollapsedStates()
}

// Collapse collapses panel index. See Store.Collapse.
func (g *Group) Collapse(index int) bool {
	if g.closed {
		return false
	}
	return g.store.Collapse(index)
}

// Expand expands panel index. See Store.Expand.
func (g *Group) Expand(index int) bool {
	if g.closed {
		return false
	}
	return g.store.Expand(index)
}

// Toggle collapses an expanded panel or expands a collapsed one.
func (g *Group) Toggle(index int) bool {
	if index < 0 || index >= g.store.PanelCount() {
		return false
	}
	if g.store.CollapsedStates()[index] {
		return g.Expand(index)
	}
	return g.Collapse(index)
}

// SetSizes replaces the whole layout. See Store.Commit.
func (g *Group) SetSizes(sizes []float64) bool {
	if g.closed {
		return false
	}
	return g.store.Commit(sizes)
}

// SetControlledSizes updates the caller-owned sizes in controlled mode. It is
// ignored for uncontrolled groups.
func (g *Group) SetControlledSizes(sizes []float64) bool {
	if !g.store.Controlled() {
		log.WarningLog.Printf("group %s: SetControlledSizes on an uncontrolled group", g.id)
		return false
	}
	return g.store.SetControlled(sizes)
}

// ResetSizes commits the default sizes.
func (g *Group) ResetSizes() bool {
	if g.closed {
		return false
	}
	return g.store.Commit(DefaultSizes(g.store.panels))
}

// SetPanels replaces the panel declarations. A different panel count aborts
// any drag and recomputes the sizes from defaults.
func (g *Group) SetPanels(panels []PanelSpec, seps []SeparatorSpec) {
	if len(panels) != g.store.PanelCount() {
		log.InfoLog.Printf("group %s: panel count %d -> %d, resetting layout", g.id, g.store.PanelCount(), len(panels))
		g.controller.Abort()
		g.detector.Reset()
		g.store.Reset(panels)
	} else {
		g.store.UpdatePanels(panels)
	}
	g.setSeparators(seps)
}

// SetGeometry supplies the live measurements of the rendered group.
func (g *Group) SetGeometry(geometry Geometry) {
	g.geometry = geometry
	g.controller.SetGeometry(geometry)
	g.detector.SetGeometry(geometry)
}

// SeparatorPositions returns the offset of every boundary along the layout
// axis, derived from the committed sizes and the container's current bounds.
// It returns nil when the container cannot be measured.
func (g *Group) SeparatorPositions() []float64 {
	if g.geometry == nil {
		return nil
	}
	r, ok := g.geometry.ContainerRect()
	if !ok {
		return nil
	}
	start, extent := g.orientation.span(r)
	sizes := g.store.sizes
	if len(sizes) < 2 {
		return nil
	}
	positions := make([]float64, len(sizes)-1)
	acc := 0.0
	for i := range positions {
		acc += sizes[i]
		positions[i] = start + extent*acc/TotalSize
	}
	return positions
}

// SeparatorAt returns the draggable separator whose rectangle contains p, or
// NoSeparator.
func (g *Group) SeparatorAt(p Point) int {
	if g.geometry == nil {
		return NoSeparator
	}
	for _, i := range g.liveSeparators() {
		if r, ok := g.geometry.SeparatorRect(i); ok && r.Contains(p) {
			return i
		}
	}
	return NoSeparator
}

// Contains reports whether p lies inside the group's container.
func (g *Group) Contains(p Point) bool {
	if g.geometry == nil {
		return false
	}
	r, ok := g.geometry.ContainerRect()
	return ok && r.Contains(p)
}

// BeginDrag starts a drag of separator at p for pointerID.
func (g *Group) BeginDrag(separator int, p Point, pointerID int) bool {
	if g.closed || !g.HasSeparator(separator) {
		return false
	}
	if !g.controller.Begin(separator, g.orientation.axis(p), pointerID) {
		return false
	}
	g.detector.Claim(separator)
	return true
}

// Drag moves the active drag to p. It reports whether the sizes changed.
func (g *Group) Drag(p Point) bool {
	return g.controller.Move(g.orientation.axis(p))
}

// DragBy moves the active drag by deltaPct percent from its start.
func (g *Group) DragBy(deltaPct float64) bool {
	return g.controller.MoveBy(deltaPct)
}

// EndDrag finishes the drag normally. Without an active drag it does nothing.
func (g *Group) EndDrag() {
	g.controller.End()
}

// LostPointerCapture ends the drag when the host takes the pointer away.
func (g *Group) LostPointerCapture() {
	g.controller.End()
}

// CancelDrag drops the drag without OnResizeEnd and clears the hover.
func (g *Group) CancelDrag() {
	g.controller.Abort()
	g.detector.Reset()
}

// Dragging reports whether a drag session is active.
func (g *Group) Dragging() bool {
	return g.controller.Active()
}

// DragSeparator returns the separator being dragged, or NoSeparator.
func (g *Group) DragSeparator() int {
	if s := g.controller.Session(); s != nil {
		return s.Separator
	}
	return NoSeparator
}

// PointerMove updates hover proximity for a pointer at p. It is ignored while
// a drag is active. It returns the active separator.
func (g *Group) PointerMove(p Point) int {
	if g.closed {
		return NoSeparator
	}
	if g.controller.Active() {
		return g.detector.Active()
	}
	return g.detector.Update(p, g.Contains(p), g.liveSeparators())
}

// PointerLeave reports that the pointer left the group.
func (g *Group) PointerLeave() {
	if g.controller.Active() {
		return
	}
	g.detector.Reset()
}

// ActiveSeparator returns the separator within proximity of the pointer, or
// NoSeparator.
func (g *Group) ActiveSeparator() int {
	return g.detector.Active()
}

// Hover returns the separator this group should highlight and its affordance.
// ok is false when nothing is highlighted or another group owns the shared
// hover marker.
func (g *Group) Hover() (HoverState, bool) {
	if s := g.controller.Session(); s != nil {
		affordance := s.pending
		if affordance == AffordanceNone {
			affordance = separatorAffordance(s.Separator, g.store.CollapsedStates())
		}
		return HoverState{Separator: s.Separator, Affordance: affordance, Dragging: true}, true
	}

	active := g.detector.Active()
	if active == NoSeparator || !g.detector.Owns() {
		return HoverState{Separator: NoSeparator}, false
	}
	return HoverState{
		Separator:  active,
		Affordance: separatorAffordance(active, g.store.CollapsedStates()),
	}, true
}

// ProximityThreshold returns the hover distance.
func (g *Group) ProximityThreshold() float64 {
	return g.detector.Threshold()
}

// Flush writes the committed sizes to storage now.
func (g *Group) Flush() {
	g.store.Flush()
}

// Close unmounts the group: any drag is dropped, the shared hover marker is
// released if this group holds it and a pending write is flushed.
func (g *Group) Close() {
	if g.closed {
		return
	}
	g.closed = true
	g.controller.Abort()
	g.detector.Reset()
	g.store.Close()
	log.LayoutTrace("group %s closed", g.id)
}
