package rate

import (
	"sync"
	"time"
)

// Debouncer groups rapid successive calls into a single call after a quiet
// period. Only the trailing edge fires: the wrapped func runs once, delay
// after the last Call, with that call's arguments.
//
// Thread-safety: all methods are safe for concurrent use. The wrapped func
// is never called concurrently with itself from the debouncer.
type Debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	fn      Func
	timer   *time.Timer
	pending bool
	args    []any
	seq     uint64 // sequence number to detect stale timer callbacks
}

// NewDebouncer creates a debouncer with the specified delay.
func NewDebouncer(delay time.Duration, fn Func) (*Debouncer, error) {
	if delay <= 0 {
		return nil, ErrNonPositiveInterval
	}
	if fn == nil {
		return nil, ErrNilFunc
	}
	return &Debouncer{delay: delay, fn: fn}, nil
}

// Call schedules the wrapped func to run after the debounce delay,
// replacing any previously pending call and its arguments.
func (d *Debouncer) Call(args ...any) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending = true
	d.args = args
	d.seq++
	currentSeq := d.seq

	if d.timer != nil {
		d.timer.Stop()
	}

	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		// Only fire if this is still the current scheduled call
		if d.pending && d.seq == currentSeq {
			d.pending = false
			args := d.args
			d.args = nil
			d.mu.Unlock()
			d.fn(args...)
		} else {
			d.mu.Unlock()
		}
	})
}

// Flush runs the wrapped func now with the pending arguments, if a call is
// pending, canceling the scheduled timer.
func (d *Debouncer) Flush() {
	d.mu.Lock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.seq++ // invalidate any timer callback already running

	if d.pending {
		d.pending = false
		args := d.args
		d.args = nil
		d.mu.Unlock()
		d.fn(args...)
	} else {
		d.mu.Unlock()
	}
}

// Cancel drops any pending call without running it.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.seq++
	d.pending = false
	d.args = nil
}

// Pending returns true if a call is waiting to fire.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}
