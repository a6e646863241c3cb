package layout

import (
	"math"
	"sync"

	"simple-panels/log"
)

// hoverMarker is the one process-wide slot recording which group owns the
// hover affordance. A group may take the slot when it is free or already its
// own, and may only clear it while it is still the recorded owner.
type hoverMarker struct {
	mu    sync.Mutex
	owner string
}

var sharedHover = &hoverMarker{}

func (m *hoverMarker) claim(owner string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.owner != "" && m.owner != owner {
		return false
	}
	m.owner = owner
	return true
}

func (m *hoverMarker) release(owner string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.owner != owner {
		return false
	}
	m.owner = ""
	return true
}

func (m *hoverMarker) ownedBy(owner string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.owner != "" && m.owner == owner
}

// HoverOwner returns the owner token holding the shared hover marker, or ""
// when it is free.
func HoverOwner() string {
	sharedHover.mu.Lock()
	defer sharedHover.mu.Unlock()
	return sharedHover.owner
}

// Detector finds the separator nearest the pointer while no drag is active.
type Detector struct {
	owner       string
	threshold   float64
	orientation Orientation
	geometry    Geometry
	active      int

	// positions supplies separator centers when geometry cannot measure them.
	positions func() []float64
}

// NewDetector returns a Detector whose marker claims are made as owner.
func NewDetector(owner string, orientation Orientation, threshold float64) *Detector {
	if threshold <= 0 {
		threshold = DefaultProximityThreshold
	}
	return &Detector{
		owner:       owner,
		threshold:   threshold,
		orientation: orientation,
		active:      NoSeparator,
	}
}

// SetGeometry supplies live separator measurements.
func (d *Detector) SetGeometry(g Geometry) {
	d.geometry = g
}

// SetPositions supplies separator centers for separators the geometry cannot
// measure.
func (d *Detector) SetPositions(positions func() []float64) {
	d.positions = positions
}

// Threshold returns the proximity threshold.
func (d *Detector) Threshold() float64 {
	return d.threshold
}

// Active returns the active separator or NoSeparator.
func (d *Detector) Active() int {
	return d.active
}

// Owns reports whether this detector holds the shared hover marker.
func (d *Detector) Owns() bool {
	return sharedHover.ownedBy(d.owner)
}

// Nearest returns the separator whose center is closest to p along the layout
// axis, provided it lies within the threshold. Only the listed separators are
// considered.
func (d *Detector) Nearest(p Point, separators []int) int {
	var fallback []float64
	if d.positions != nil {
		fallback = d.positions()
	}

	best := NoSeparator
	bestDistance := math.Inf(1)
	for _, i := range separators {
		center, ok := d.separatorCenter(i)
		if !ok {
			if i >= len(fallback) {
				continue
			}
			center = fallback[i]
		}
		distance := math.Abs(d.orientation.axis(p) - center)
		if distance <= d.threshold && distance < bestDistance {
			best = i
			bestDistance = distance
		}
	}
	return best
}

func (d *Detector) separatorCenter(i int) (float64, bool) {
	if d.geometry == nil {
		return 0, false
	}
	r, ok := d.geometry.SeparatorRect(i)
	if !ok || r.Empty() {
		return 0, false
	}
	return d.orientation.axis(r.Center()), true
}

// Update recomputes the active separator for a pointer at p and claims or
// releases the shared marker to match. inside is false when the pointer has
// left the group's container. It returns the new active separator.
func (d *Detector) Update(p Point, inside bool, separators []int) int {
	next := NoSeparator
	if inside {
		next = d.Nearest(p, separators)
	}
	if next != d.active {
		log.InputTrace("hover %s: separator %d -> %d", d.owner, d.active, next)
	}
	d.active = next

	if next == NoSeparator {
		sharedHover.release(d.owner)
	} else if !sharedHover.claim(d.owner) {
		log.InputTrace("hover %s: marker held by %s", d.owner, HoverOwner())
	}
	return next
}

// Claim makes separator active and takes the shared marker for a drag. It
// fails when another group already holds the marker.
func (d *Detector) Claim(separator int) bool {
	d.active = separator
	return sharedHover.claim(d.owner)
}

// Reset clears the active separator and releases the marker if owned.
func (d *Detector) Reset() {
	d.active = NoSeparator
	sharedHover.release(d.owner)
}
