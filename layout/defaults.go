package layout

import "time"

// Panel constraint defaults, in percent of the group.
const (
	// DefaultMinSize applies when a PanelSpec leaves MinSize at zero.
	DefaultMinSize = 10.0

	// DefaultMaxSize applies when a PanelSpec leaves MaxSize at zero.
	DefaultMaxSize = 100.0

	// TotalSize is what the sizes of a group always add up to.
	TotalSize = 100.0
)

// Pointer handling defaults.
const (
	// DefaultProximityThreshold is how close (in cells or pixels) the
	// pointer must be to a separator's center for it to become active.
	DefaultProximityThreshold = 12.0

	// NoSeparator is reported when no separator is active.
	NoSeparator = -1
)

// Persistence defaults.
const (
	// StorageKeyPrefix namespaces persisted layouts in the storage adapter.
	StorageKeyPrefix = "simple-panels:"

	// DefaultPersistDelay is the debounce window for writes after a commit.
	DefaultPersistDelay = 500 * time.Millisecond
)

// Numeric tolerances.
const (
	// sumTolerance bounds how far a committed sum may drift from TotalSize.
	sumTolerance = 1e-6

	// snapEpsilon snaps a size onto its collapsed size.
	snapEpsilon = 1e-9

	// roundScale rounds every committed value to 1e-10.
	roundScale = 1e10
)
