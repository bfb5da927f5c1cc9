// Package rate provides call-rate combinators for funneling bursty callers
// into a controlled number of invocations.
//
// Two combinators are provided:
//
//   - Debouncer: trailing edge only. A burst of calls produces a single
//     invocation after a quiet period, with the last call's arguments.
//
//   - Throttler: leading edge plus at most one trailing call. The first call
//     in a cooldown window runs immediately; calls arriving during the
//     cooldown collapse into one invocation at the end of the window, again
//     with the last call's arguments.
//
// Each instance owns its own timer state; instances never interfere with one
// another. Both are safe for concurrent use.
package rate

import (
	"errors"
	"time"
)

// Sentinel errors for combinator construction.
var (
	// ErrNonPositiveInterval is returned when a combinator is constructed
	// with a zero or negative interval.
	ErrNonPositiveInterval = errors.New("interval must be positive")

	// ErrNilFunc is returned when a combinator is constructed with a nil
	// function.
	ErrNilFunc = errors.New("func cannot be nil")
)

// Func is the shape of a wrapped callable.
type Func func(args ...any)

// Debounce wraps fn so that a burst of calls collapses into a single
// invocation, delay after the burst settles, with the last call's arguments.
func Debounce(fn Func, delay time.Duration) (Func, error) {
	d, err := NewDebouncer(delay, fn)
	if err != nil {
		return nil, err
	}
	return d.Call, nil
}

// Throttle wraps fn so that it runs immediately on the first call of a
// cooldown window, and at most once more when the window ends, with the
// arguments of the most recent call received during the cooldown.
func Throttle(fn Func, limit time.Duration) (Func, error) {
	t, err := NewThrottler(limit, fn)
	if err != nil {
		return nil, err
	}
	return t.Call, nil
}
