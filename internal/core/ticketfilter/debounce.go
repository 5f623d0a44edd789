package ticketfilter

import (
	"sync"
	"time"
)

// DefaultDebounce is the wait applied to bursts of criteria or snapshot updates.
const DefaultDebounce = 300 * time.Millisecond

// Debouncer coalesces triggers that arrive within the wait window into one
// call of fn. Each Trigger restarts the window.
type Debouncer struct {
	wait time.Duration
	fn   func()

	mu      sync.Mutex
	timer   *time.Timer
	pending bool
	stopped bool
}

// NewDebouncer returns a Debouncer calling fn once per settled burst.
// A non-positive wait uses DefaultDebounce.
func NewDebouncer(wait time.Duration, fn func()) *Debouncer {
	if wait <= 0 {
		wait = DefaultDebounce
	}
	return &Debouncer{wait: wait, fn: fn}
}

// Trigger schedules fn after the wait window, replacing any pending call.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	d.pending = true
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.wait, d.fire)
}

// Flush runs fn immediately if a call is pending.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
	}
	run := d.pending && !d.stopped
	d.pending = false
	d.mu.Unlock()
	if run {
		d.fn()
	}
}

// Stop cancels any pending call. Later triggers are ignored.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	d.pending = false
	if d.timer != nil {
		d.timer.Stop()
	}
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	run := d.pending && !d.stopped
	d.pending = false
	d.mu.Unlock()
	if run {
		d.fn()
	}
}
