package beacon

import (
	"context"
	"reflect"

	"github.com/google/uuid"
)

// Listener receives events dispatched by an Emitter.
// The args are the values passed to Emit, in order.
type Listener interface {
	Notify(ctx context.Context, args ...any) error
}

// ListenerFunc is a function adapter for Listener.
type ListenerFunc func(ctx context.Context, args ...any) error

// Notify implements the Listener interface.
func (f ListenerFunc) Notify(ctx context.Context, args ...any) error {
	return f(ctx, args...)
}

// CancelFunc removes the registration that produced it.
// Calling it more than once is a no-op after the first call.
type CancelFunc func()

// entry is one registered listener within a pattern's list.
type entry struct {
	id       string
	listener Listener // what Emit invokes; a once wrapper for Once entries
	ptr      uintptr  // identity of the caller's original listener, 0 if none
}

func newEntry(l Listener) *entry {
	return &entry{
		id:  uuid.NewString(),
		ptr: identity(l),
	}
}

// identity derives a comparable identity for a listener value. Functions,
// pointers, maps, and channels have a stable pointer identity; plain value
// types do not and can only be removed through their CancelFunc.
func identity(l Listener) uintptr {
	if l == nil {
		return 0
	}
	v := reflect.ValueOf(l)
	switch v.Kind() {
	case reflect.Func, reflect.Pointer, reflect.UnsafePointer, reflect.Map, reflect.Chan:
		return v.Pointer()
	default:
		return 0
	}
}
