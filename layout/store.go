package layout

import (
	"math"
	"time"

	"simple-panels/log"
)

// StoreOptions configures a Store.
type StoreOptions struct {
	// StorageID selects the persistence key. Empty disables persistence.
	StorageID string
	Storage   Storage

	// PersistDelay is the debounce window for writes after a commit.
	PersistDelay time.Duration

	// ControlledSizes, when non-nil, makes the caller the source of truth:
	// commits are reported through OnSizesChange but not stored, and
	// storage is neither read nor written.
	ControlledSizes []float64

	OnSizesChange func(sizes []float64)
}

// Store owns the committed sizes of a group. Collapsed states are derived
// from sizes on demand and never stored. Every mutation goes through commit.
type Store struct {
	panels      []PanelSpec
	sizes       []float64
	preCollapse []float64

	storage       Storage
	storageKey    string
	persist       *debouncer
	controlled    bool
	onSizesChange func([]float64)
}

// NewStore builds a Store and computes the initial sizes: the persisted
// layout when it parses and matches the panel count, else DefaultSizes.
func NewStore(panels []PanelSpec, opts StoreOptions) *Store {
	s := &Store{
		panels:        normalizePanels(panels),
		storage:       opts.Storage,
		persist:       newDebouncer(opts.PersistDelay),
		onSizesChange: opts.OnSizesChange,
	}
	if opts.StorageID != "" {
		s.storageKey = StorageKey(opts.StorageID)
	}
	s.preCollapse = make([]float64, len(s.panels))

	if opts.ControlledSizes != nil {
		s.controlled = true
		if !s.SetControlled(opts.ControlledSizes) {
			s.sizes = DefaultSizes(s.panels)
		}
		return s
	}

	s.sizes = s.load()
	return s
}

// load reads the persisted layout or falls back to defaults.
func (s *Store) load() []float64 {
	if s.storage == nil || s.storageKey == "" {
		return DefaultSizes(s.panels)
	}
	raw, ok := s.storage.GetItem(s.storageKey)
	if !ok {
		return DefaultSizes(s.panels)
	}
	sizes, err := decodeSizes(raw, len(s.panels))
	if err != nil {
		log.WarningLog.Printf("ignoring persisted layout %s: %v", s.storageKey, err)
		return DefaultSizes(s.panels)
	}
	if total := sum(sizes); math.Abs(total-TotalSize) > snapEpsilon {
		if math.Abs(total-TotalSize) > sumTolerance {
			log.InfoLog.Printf("persisted layout %s sums to %v, rescaling", s.storageKey, total)
		}
		sizes = fitToTotal(sizes, nil)
	}
	return sizes
}

// Sizes returns a copy of the committed sizes.
func (s *Store) Sizes() []float64 {
	return cloneSizes(s.sizes)
}

// CollapsedStates derives the collapsed flag of each panel from the sizes.
func (s *Store) CollapsedStates() []bool {
	return collapsedStates(s.panels, s.sizes)
}

// Panels returns the normalized panel specs.
func (s *Store) Panels() []PanelSpec {
	out := make([]PanelSpec, len(s.panels))
	copy(out, s.panels)
	return out
}

// PanelCount returns the number of panels.
func (s *Store) PanelCount() int {
	return len(s.panels)
}

// Controlled reports whether the caller owns the sizes.
func (s *Store) Controlled() bool {
	return s.controlled
}

// SetControlled replaces the source of truth in controlled mode without
// notifying OnSizesChange. It reports false when sizes has the wrong length.
func (s *Store) SetControlled(sizes []float64) bool {
	if len(sizes) != len(s.panels) {
		log.WarningLog.Printf("controlled sizes have %d entries, group has %d panels", len(sizes), len(s.panels))
		return false
	}
	s.sizes = fitToTotal(clampAll(sizes), nil)
	return true
}

// Commit validates newSizes and makes them the committed layout. It reports
// whether anything changed.
func (s *Store) Commit(newSizes []float64) bool {
	if len(newSizes) != len(s.panels) {
		log.WarningLog.Printf("commit rejected: %d sizes for %d panels", len(newSizes), len(s.panels))
		return false
	}
	for i, v := range newSizes {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			log.WarningLog.Printf("commit rejected: size %d is %v", i, v)
			return false
		}
	}

	next := clampAll(newSizes)
	if math.Abs(sum(next)-TotalSize) > sumTolerance {
		log.WarningLog.Printf("sizes sum to %v, rescaling to %v", sum(next), TotalSize)
		next = fitToTotal(next, nil)
	}
	for i := range next {
		next[i] = snapCollapsed(s.panels[i], round(next[i]))
	}
	return s.commit(next)
}

// commit stores already valid sizes, fires collapse/expand edges and
// notifications, and schedules persistence.
func (s *Store) commit(next []float64) bool {
	if equalSizes(s.sizes, next) {
		return false
	}

	before := s.CollapsedStates()
	after := collapsedStates(s.panels, next)

	if !s.controlled {
		s.sizes = next
	}
	log.LayoutTrace("commit %v", next)

	for i := range s.panels {
		if before[i] == after[i] {
			continue
		}
		if after[i] {
			log.LayoutTrace("panel %d (%s) collapsed", i, s.panels[i].ID)
			if s.panels[i].OnCollapse != nil {
				s.panels[i].OnCollapse()
			}
		} else {
			log.LayoutTrace("panel %d (%s) expanded", i, s.panels[i].ID)
			if s.panels[i].OnExpand != nil {
				s.panels[i].OnExpand()
			}
		}
	}

	if s.onSizesChange != nil {
		s.onSizesChange(cloneSizes(next))
	}
	s.schedulePersist(next)
	return true
}

// Collapse moves panel index down to its collapsed size, giving the space to
// the following panel (the preceding one for the last panel). The move goes
// through the same resolution as a drag, so a neighbour at its MaxSize keeps
// the panel from collapsing fully. It is a no-op when the panel is already
// collapsed or has no neighbour.
func (s *Store) Collapse(index int) bool {
	if index < 0 || index >= len(s.panels) {
		return false
	}
	target, ok := adjacent(index, len(s.panels))
	if !ok {
		return false
	}
	p := s.panels[index]
	current := s.sizes[index]
	if p.isCollapsed(current) {
		return false
	}

	amount := current - p.CollapsedSize
	next := s.shift(index, target, amount)
	if p.isCollapsed(next[index]) {
		s.preCollapse[index] = current
	} else {
		log.WarningLog.Printf("panel %d cannot collapse fully: panel %d cannot take %v", index, target, amount)
	}
	return s.commit(next)
}

// Expand restores a collapsed panel to its size before collapsing (or its
// default size, at least MinSize), taking the space from the neighbouring
// panel without pushing that panel below its own MinSize.
func (s *Store) Expand(index int) bool {
	if index < 0 || index >= len(s.panels) {
		return false
	}
	donor, ok := adjacent(index, len(s.panels))
	if !ok {
		return false
	}
	p := s.panels[index]
	current := s.sizes[index]
	if !p.isCollapsed(current) {
		return false
	}

	desired := s.preCollapse[index]
	if desired <= p.CollapsedSize {
		desired = math.Max(p.DefaultSize, p.MinSize)
	}
	desired = math.Min(desired, p.MaxSize)

	diff := desired - current
	maxYield := s.sizes[donor] - s.panels[donor].MinSize
	if maxYield <= 0 {
		log.WarningLog.Printf("cannot expand panel %d: panel %d has nothing to yield", index, donor)
		return false
	}
	diff = math.Min(diff, maxYield)
	if diff <= 0 {
		return false
	}
	return s.commit(s.shift(index, donor, -diff))
}

// shift moves amount percent from panel index to its neighbour as a one-step
// drag of the separator between them. Panel index counts as collapsible for
// the move, since collapse and expand apply to any panel.
func (s *Store) shift(index, neighbour int, amount float64) []float64 {
	a, b := index, neighbour
	delta := -amount
	if neighbour < index {
		a, b = neighbour, index
		delta = amount
	}

	pa, pb := s.panels[a], s.panels[b]
	if a == index {
		pa.Collapsible = true
	} else {
		pb.Collapsible = true
	}
	collapsed := s.CollapsedStates()
	m := resolvePair(pa, pb, s.sizes[a], s.sizes[b], delta, collapsed[a], collapsed[b])

	next := cloneSizes(s.sizes)
	next[a] = m.sizeA
	next[b] = m.sizeB
	return next
}

// rememberPreCollapse records the size a drag collapsed panel index from.
func (s *Store) rememberPreCollapse(index int, size float64) {
	if index >= 0 && index < len(s.preCollapse) && size > s.panels[index].CollapsedSize {
		s.preCollapse[index] = size
	}
}

// Reset discards the current sizes and commits DefaultSizes for panels. Used
// when the panel set changes.
func (s *Store) Reset(panels []PanelSpec) {
	s.panels = normalizePanels(panels)
	s.preCollapse = make([]float64, len(s.panels))
	next := DefaultSizes(s.panels)

	// Collapse edges are meaningless across a panel set change, so this
	// bypasses commit.
	s.sizes = next
	if s.onSizesChange != nil {
		s.onSizesChange(cloneSizes(next))
	}
	s.schedulePersist(next)
}

// UpdatePanels swaps in new constraints for the same number of panels without
// touching the sizes.
func (s *Store) UpdatePanels(panels []PanelSpec) bool {
	if len(panels) != len(s.panels) {
		return false
	}
	s.panels = normalizePanels(panels)
	return true
}

// Notify reports the committed sizes to OnSizesChange. The group calls it once
// at mount.
func (s *Store) Notify() {
	if s.onSizesChange != nil {
		s.onSizesChange(s.Sizes())
	}
}

func (s *Store) persistable() bool {
	return !s.controlled && s.storage != nil && s.storageKey != ""
}

func (s *Store) schedulePersist(sizes []float64) {
	if !s.persistable() {
		return
	}
	snapshot := cloneSizes(sizes)
	s.persist.Trigger(func() {
		s.write(snapshot)
	})
}

// Flush writes the committed sizes immediately, superseding any pending
// debounced write.
func (s *Store) Flush() {
	if !s.persistable() {
		return
	}
	snapshot := s.Sizes()
	s.persist.Flush(func() {
		s.write(snapshot)
	})
}

// Close writes out a pending debounced layout so nothing is lost at unmount.
func (s *Store) Close() {
	if s.persist.Pending() {
		s.Flush()
		return
	}
	s.persist.Wait()
}

func (s *Store) write(sizes []float64) {
	value, err := encodeSizes(sizes)
	if err != nil {
		log.ErrorLog.Printf("failed to encode layout %s: %v", s.storageKey, err)
		return
	}
	if err := s.storage.SetItem(s.storageKey, value); err != nil {
		log.WarningLog.Printf("failed to persist layout %s: %v", s.storageKey, err)
	}
}

func clampAll(sizes []float64) []float64 {
	out := make([]float64, len(sizes))
	for i, v := range sizes {
		out[i] = clamp(v, 0, TotalSize)
	}
	return out
}

func equalSizes(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
