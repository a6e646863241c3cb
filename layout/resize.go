package layout

import "simple-panels/log"

// PointerCapture grants one pointer exclusive ownership of a group's pointer
// stream for the duration of a drag.
type PointerCapture interface {
	Acquire(pointerID int) bool
	Release(pointerID int)
}

// exclusiveCapture is the default PointerCapture: a single slot that one
// pointer may hold at a time.
type exclusiveCapture struct {
	held    bool
	pointer int
}

// NewPointerCapture returns a capture that several groups can share so only
// one of them drags at a time.
func NewPointerCapture() PointerCapture {
	return &exclusiveCapture{}
}

func (c *exclusiveCapture) Acquire(pointerID int) bool {
	if c.held {
		return false
	}
	c.held = true
	c.pointer = pointerID
	return true
}

func (c *exclusiveCapture) Release(pointerID int) {
	if c.held && c.pointer == pointerID {
		c.held = false
	}
}

// DragSession is the state of one pointer-down to pointer-up gesture.
type DragSession struct {
	Separator     int
	PointerID     int
	StartPosition float64
	StartSizes    []float64

	// sessionCollapsed starts as a copy of the committed collapsed states
	// and follows the drag; the committed states only change on commit.
	sessionCollapsed []bool

	// pending points at a panel the drag is collapsing or about to.
	pending Affordance
}

// Controller turns pointer movement on one separator into a size delta shared
// by the two panels either side of it.
type Controller struct {
	store       *Store
	orientation Orientation
	geometry    Geometry
	capture     PointerCapture
	session     *DragSession

	onResizeStart func()
	onResizeEnd   func(sizes []float64)
}

// NewController returns a Controller committing into store.
func NewController(store *Store, orientation Orientation, capture PointerCapture) *Controller {
	if capture == nil {
		capture = &exclusiveCapture{}
	}
	return &Controller{
		store:       store,
		orientation: orientation,
		capture:     capture,
	}
}

// SetGeometry supplies the live measurements used to convert pointer travel
// into percent.
func (c *Controller) SetGeometry(g Geometry) {
	c.geometry = g
}

// Session returns the active session, or nil.
func (c *Controller) Session() *DragSession {
	return c.session
}

// Active reports whether a drag is in progress.
func (c *Controller) Active() bool {
	return c.session != nil
}

// Begin starts a drag of separator at the given axis position. It fails when
// a session already exists, the separator is out of range or the capture is
// held by another pointer.
func (c *Controller) Begin(separator int, position float64, pointerID int) bool {
	if c.session != nil {
		return false
	}
	if separator < 0 || separator+1 >= c.store.PanelCount() {
		return false
	}
	if !c.capture.Acquire(pointerID) {
		log.InputTrace("pointer %d denied capture for separator %d", pointerID, separator)
		return false
	}

	c.session = &DragSession{
		Separator:        separator,
		PointerID:        pointerID,
		StartPosition:    position,
		StartSizes:       c.store.Sizes(),
		sessionCollapsed: c.store.CollapsedStates(),
	}
	log.InputTrace("drag start separator=%d pos=%v sizes=%v", separator, position, c.session.StartSizes)
	if c.onResizeStart != nil {
		c.onResizeStart()
	}
	return true
}

// Move applies the pointer's current axis position. It reports whether the
// committed sizes changed.
func (c *Controller) Move(position float64) bool {
	s := c.session
	if s == nil {
		return false
	}
	extent := measuredExtent(c.geometry, c.orientation, c.store.PanelCount())
	if extent <= 0 {
		return false
	}
	deltaPct := (position - s.StartPosition) / extent * TotalSize
	return c.apply(deltaPct)
}

// MoveBy applies a delta already expressed in percent. Keyboard resizing
// uses it.
func (c *Controller) MoveBy(deltaPct float64) bool {
	if c.session == nil {
		return false
	}
	return c.apply(deltaPct)
}

func (c *Controller) apply(deltaPct float64) bool {
	s := c.session
	panels := c.store.panels
	a, b := s.Separator, s.Separator+1
	if b >= len(panels) || len(s.StartSizes) != len(panels) {
		return false
	}
	pa, pb := panels[a], panels[b]
	startA, startB := s.StartSizes[a], s.StartSizes[b]

	m := resolvePair(pa, pb, startA, startB, deltaPct, s.sessionCollapsed[a], s.sessionCollapsed[b])
	sizeA, sizeB := m.sizeA, m.sizeB
	s.pending = m.pending

	wasA, wasB := s.sessionCollapsed[a], s.sessionCollapsed[b]
	s.sessionCollapsed[a] = pa.isCollapsed(sizeA)
	s.sessionCollapsed[b] = pb.isCollapsed(sizeB)
	if s.sessionCollapsed[a] && !wasA {
		c.store.rememberPreCollapse(a, startA)
	}
	if s.sessionCollapsed[b] && !wasB {
		c.store.rememberPreCollapse(b, startB)
	}

	next := cloneSizes(s.StartSizes)
	next[a] = sizeA
	next[b] = sizeB
	return c.store.commit(next)
}

// Pending returns the collapse direction flagged by the last move.
func (c *Controller) Pending() Affordance {
	if c.session == nil {
		return AffordanceNone
	}
	return c.session.pending
}

// End finishes the session: the capture is released, the sizes are written to
// storage at once and OnResizeEnd receives them. Without a session it does
// nothing.
func (c *Controller) End() {
	s := c.release()
	if s == nil {
		return
	}
	c.store.Flush()
	sizes := c.store.Sizes()
	log.InputTrace("drag end separator=%d sizes=%v", s.Separator, sizes)
	if c.onResizeEnd != nil {
		c.onResizeEnd(sizes)
	}
}

// Abort drops the session without callbacks. Already committed sizes stay.
func (c *Controller) Abort() {
	if s := c.release(); s != nil {
		log.InputTrace("drag aborted separator=%d", s.Separator)
	}
}

func (c *Controller) release() *DragSession {
	s := c.session
	if s == nil {
		return nil
	}
	c.session = nil
	c.capture.Release(s.PointerID)
	return s
}
