package beacon

import (
	"context"
	"runtime/debug"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/dshills/beacon/topic"
)

// Emitter is an in-process publish/subscribe dispatcher. Listeners register
// against dot-delimited topic patterns (with * and ** wildcards) and are
// invoked synchronously, in registration order, when a matching event is
// emitted. Each Emitter owns an independent registry; there is no package
// level instance.
//
// All methods are safe for concurrent use. Listeners run outside the
// registry lock, so they may register and unregister freely.
type Emitter struct {
	mu      sync.RWMutex
	lists   map[topic.Topic][]*entry
	order   map[topic.Topic]uint64 // first-registration sequence per pattern
	nextSeq uint64
	matcher *topic.Matcher

	capacity int
	sink     Sink

	// Stats
	emitted        atomic.Uint64
	delivered      atomic.Uint64
	listenerErrors atomic.Uint64
	listenerPanics atomic.Uint64
}

// New creates an emitter with the given options.
func New(opts ...Option) *Emitter {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}

	return &Emitter{
		lists:    make(map[topic.Topic][]*entry),
		order:    make(map[topic.Topic]uint64),
		matcher:  topic.NewMatcher(),
		capacity: config.capacity,
		sink:     config.sink,
	}
}

// On registers a listener for every event matching the pattern.
// The returned CancelFunc removes the registration; it is idempotent.
func (e *Emitter) On(pattern topic.Topic, l Listener) (CancelFunc, error) {
	if l == nil {
		return nil, ErrNilListener
	}
	ent := newEntry(l)
	ent.listener = l
	return e.add(pattern, ent)
}

// OnFunc registers a function listener.
func (e *Emitter) OnFunc(pattern topic.Topic, fn ListenerFunc) (CancelFunc, error) {
	if fn == nil {
		return nil, ErrNilListener
	}
	return e.On(pattern, fn)
}

// Once registers a listener that fires at most one time. The wrapper removes
// itself from the registry before invoking the listener, so even a re-entrant
// Emit from inside the listener cannot fire it twice. The registration can be
// removed early through the CancelFunc or with Off(pattern, l).
func (e *Emitter) Once(pattern topic.Topic, l Listener) (CancelFunc, error) {
	if l == nil {
		return nil, ErrNilListener
	}
	ent := newEntry(l)
	ent.listener = ListenerFunc(func(ctx context.Context, args ...any) error {
		if !e.removeEntry(pattern, ent.id) {
			return nil // lost the race: already fired or unregistered
		}
		return l.Notify(ctx, args...)
	})
	return e.add(pattern, ent)
}

// OnceFunc registers a function listener that fires at most one time.
func (e *Emitter) OnceFunc(pattern topic.Topic, fn ListenerFunc) (CancelFunc, error) {
	if fn == nil {
		return nil, ErrNilListener
	}
	return e.Once(pattern, fn)
}

// add appends the entry to the pattern's list and reports a capacity warning
// when the list reaches the advisory threshold.
func (e *Emitter) add(pattern topic.Topic, ent *entry) (CancelFunc, error) {
	if !pattern.IsValid() {
		return nil, ErrInvalidTopic
	}

	e.mu.Lock()
	if _, ok := e.lists[pattern]; !ok {
		e.order[pattern] = e.nextSeq
		e.nextSeq++
		e.matcher.Add(pattern)
	}
	e.lists[pattern] = append(e.lists[pattern], ent)
	count := len(e.lists[pattern])
	e.mu.Unlock()

	if e.capacity > 0 && count >= e.capacity {
		e.sink.CapacityWarning(pattern, count, e.capacity)
	}

	return func() { e.removeEntry(pattern, ent.id) }, nil
}

// Off removes registrations for a pattern. With no listeners it drops the
// whole pattern; with listeners it removes the first matching registration
// for each, including Once wrappers, by the original listener's identity.
// Removing something that is not registered is a no-op.
func (e *Emitter) Off(pattern topic.Topic, listeners ...Listener) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(listeners) == 0 {
		e.dropPatternLocked(pattern)
		return
	}

	for _, l := range listeners {
		ptr := identity(l)
		if ptr == 0 {
			continue // no stable identity; removable only via CancelFunc
		}
		list := e.lists[pattern]
		for i, ent := range list {
			if ent.ptr == ptr {
				e.lists[pattern] = append(list[:i], list[i+1:]...)
				break
			}
		}
	}
	if len(e.lists[pattern]) == 0 {
		e.dropPatternLocked(pattern)
	}
}

// removeEntry removes one entry by ID. It returns true only if the entry was
// present, which makes CancelFuncs idempotent and Once wrappers single-shot.
func (e *Emitter) removeEntry(pattern topic.Topic, id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	list := e.lists[pattern]
	for i, ent := range list {
		if ent.id == id {
			e.lists[pattern] = append(list[:i], list[i+1:]...)
			if len(e.lists[pattern]) == 0 {
				e.dropPatternLocked(pattern)
			}
			return true
		}
	}
	return false
}

// dropPatternLocked deletes a pattern key entirely (must hold lock).
// Empty listener lists never persist as registry keys.
func (e *Emitter) dropPatternLocked(pattern topic.Topic) {
	if _, ok := e.lists[pattern]; !ok {
		return
	}
	delete(e.lists, pattern)
	delete(e.order, pattern)
	e.matcher.Remove(pattern)
}

// Emit dispatches an event to every listener whose pattern matches.
//
// For each matching pattern a snapshot of its listener list is taken, then
// listeners are invoked in registration order with the snapshot isolated
// from concurrent mutation. A listener error or panic is reported to the
// diagnostic sink and never stops dispatch to the remaining listeners.
//
// Emit returns true if at least one listener invocation started, even when
// that listener later failed; false if nothing matched. Patterns fire in
// first-registration order; callers should only rely on ordering within a
// single pattern.
func (e *Emitter) Emit(ctx context.Context, event topic.Topic, args ...any) bool {
	e.emitted.Add(1)

	if !event.IsValid() {
		return false
	}

	patterns := e.matcher.Match(event)
	if len(patterns) == 0 {
		return false
	}

	e.mu.RLock()
	sort.Slice(patterns, func(i, j int) bool {
		return e.order[patterns[i]] < e.order[patterns[j]]
	})
	e.mu.RUnlock()

	fired := false
	for _, pattern := range patterns {
		e.mu.RLock()
		list := e.lists[pattern]
		snapshot := make([]*entry, len(list))
		copy(snapshot, list)
		e.mu.RUnlock()

		for _, ent := range snapshot {
			fired = true
			e.invoke(ctx, event, pattern, ent, args)
		}
	}
	return fired
}

// invoke runs one listener with panic recovery. Failures are reported to the
// sink with event and pattern context; nothing propagates to the caller.
func (e *Emitter) invoke(ctx context.Context, event, pattern topic.Topic, ent *entry, args []any) {
	defer func() {
		if r := recover(); r != nil {
			e.listenerPanics.Add(1)
			e.sink.ListenerError(event, pattern, &PanicError{
				Value: r,
				Stack: debug.Stack(),
			})
		}
	}()

	if err := ent.listener.Notify(ctx, args...); err != nil {
		e.listenerErrors.Add(1)
		e.sink.ListenerError(event, pattern, err)
		return
	}
	e.delivered.Add(1)
}

// Count returns the number of registered listeners: the total across all
// patterns when called with no arguments, otherwise the sum over the given
// patterns. Unknown patterns count zero.
func (e *Emitter) Count(patterns ...topic.Topic) int {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if len(patterns) == 0 {
		total := 0
		for _, list := range e.lists {
			total += len(list)
		}
		return total
	}

	total := 0
	for _, p := range patterns {
		total += len(e.lists[p])
	}
	return total
}

// Topics returns the patterns that currently have listeners, in
// first-registration order.
func (e *Emitter) Topics() []topic.Topic {
	e.mu.RLock()
	defer e.mu.RUnlock()

	topics := make([]topic.Topic, 0, len(e.lists))
	for t := range e.lists {
		topics = append(topics, t)
	}
	sort.Slice(topics, func(i, j int) bool {
		return e.order[topics[i]] < e.order[topics[j]]
	})
	return topics
}

// Clear removes every registration.
func (e *Emitter) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.lists = make(map[topic.Topic][]*entry)
	e.order = make(map[topic.Topic]uint64)
	e.matcher.Clear()
}

// Stats contains emitter counters.
type Stats struct {
	// Emitted is the total number of Emit calls.
	Emitted uint64

	// Delivered is the number of listener invocations that completed
	// without error.
	Delivered uint64

	// ListenerErrors is the number of listeners that returned errors.
	ListenerErrors uint64

	// ListenerPanics is the number of listeners that panicked.
	ListenerPanics uint64

	// Patterns is the current number of registered patterns.
	Patterns int

	// Listeners is the current number of registered listeners.
	Listeners int
}

// Stats returns a snapshot of the emitter's counters.
func (e *Emitter) Stats() Stats {
	e.mu.RLock()
	patterns := len(e.lists)
	listeners := 0
	for _, list := range e.lists {
		listeners += len(list)
	}
	e.mu.RUnlock()

	return Stats{
		Emitted:        e.emitted.Load(),
		Delivered:      e.delivered.Load(),
		ListenerErrors: e.listenerErrors.Load(),
		ListenerPanics: e.listenerPanics.Load(),
		Patterns:       patterns,
		Listeners:      listeners,
	}
}
