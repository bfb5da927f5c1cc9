package rate

import (
	"sync"
	"time"
)

// Throttler allows at most one call per cooldown interval, plus one trailing
// call. The first Call in a window runs the wrapped func immediately and
// starts the cooldown; calls arriving during the cooldown collapse into a
// single invocation when the cooldown ends, carrying the most recent
// arguments. If nothing arrives during the cooldown, nothing else fires.
//
// Thread-safety: all methods are safe for concurrent use.
type Throttler struct {
	mu       sync.Mutex
	limit    time.Duration
	fn       Func
	lastCall time.Time
	timer    *time.Timer
	pending  bool
	args     []any
	seq      uint64 // sequence number to detect stale timer callbacks
}

// NewThrottler creates a throttler with the specified cooldown interval.
func NewThrottler(limit time.Duration, fn Func) (*Throttler, error) {
	if limit <= 0 {
		return nil, ErrNonPositiveInterval
	}
	if fn == nil {
		return nil, ErrNilFunc
	}
	return &Throttler{limit: limit, fn: fn}, nil
}

// Call runs the wrapped func immediately when outside a cooldown window.
// Inside the window it records the arguments for the single trailing call.
func (t *Throttler) Call(args ...any) {
	t.mu.Lock()

	now := time.Now()
	if t.lastCall.IsZero() || now.Sub(t.lastCall) >= t.limit {
		// Leading edge: run in the caller's goroutine, outside the lock.
		t.lastCall = now
		t.mu.Unlock()
		t.fn(args...)
		return
	}

	// Within the cooldown: keep the latest arguments for the trailing call.
	t.pending = true
	t.args = args

	if t.timer == nil {
		remaining := t.limit - now.Sub(t.lastCall)
		t.seq++
		currentSeq := t.seq
		t.timer = time.AfterFunc(remaining, func() {
			t.mu.Lock()
			if t.pending && t.seq == currentSeq {
				t.pending = false
				t.lastCall = time.Now()
				t.timer = nil
				args := t.args
				t.args = nil
				t.mu.Unlock()
				t.fn(args...)
			} else {
				t.timer = nil
				t.mu.Unlock()
			}
		})
	}
	t.mu.Unlock()
}

// Pending returns true if a trailing call is waiting to fire.
func (t *Throttler) Pending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pending
}

// Cancel drops any pending trailing call without running it. It does not
// reset the cooldown window.
func (t *Throttler) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.seq++
	t.pending = false
	t.args = nil
}

// Reset clears the throttler state, ending the cooldown window and dropping
// any pending trailing call.
func (t *Throttler) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.seq++
	t.pending = false
	t.args = nil
	t.lastCall = time.Time{}
}
