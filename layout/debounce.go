package layout

import (
	"sync"
	"time"
)

// debouncer coalesces rapid triggers into one callback: only the most recent
// callback runs, duration after its trigger. Flush runs a callback right away
// and invalidates anything pending; the two never interleave.
type debouncer struct {
	duration time.Duration

	mu    sync.Mutex
	timer *time.Timer
	seq   uint64

	// run serialises callbacks so a late timer never overwrites a flush.
	run sync.Mutex
}

func newDebouncer(duration time.Duration) *debouncer {
	if duration <= 0 {
		duration = DefaultPersistDelay
	}
	return &debouncer{duration: duration}
}

// Trigger schedules callback, replacing any pending one.
func (d *debouncer) Trigger(callback func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	seq := d.seq

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.duration, func() {
		d.run.Lock()
		defer d.run.Unlock()

		d.mu.Lock()
		current := seq == d.seq
		if current {
			d.timer = nil
		}
		d.mu.Unlock()
		if current {
			callback()
		}
	})
}

// Pending reports whether a callback is scheduled.
func (d *debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// Cancel drops any pending callback.
func (d *debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Flush cancels anything pending and runs callback synchronously.
func (d *debouncer) Flush(callback func()) {
	d.run.Lock()
	defer d.run.Unlock()
	d.Cancel()
	callback()
}

// Wait blocks until a callback already running on the timer has returned.
func (d *debouncer) Wait() {
	d.run.Lock()
	defer d.run.Unlock()
}
