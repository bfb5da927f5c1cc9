package beacon

import "errors"

// Sentinel errors for the emitter.
var (
	// ErrNilListener is returned when a nil listener is registered.
	ErrNilListener = errors.New("listener cannot be nil")

	// ErrInvalidTopic is returned when a topic or pattern is empty or malformed.
	ErrInvalidTopic = errors.New("invalid topic")

	// ErrListenerPanic is the sentinel matched by errors.Is for PanicError.
	ErrListenerPanic = errors.New("listener panicked")
)

// PanicError wraps a recovered panic from a listener.
// It is reported to the diagnostic sink; it never propagates out of Emit.
type PanicError struct {
	// Value is the value passed to panic().
	Value any

	// Stack is the stack trace captured at recovery.
	Stack []byte
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return "listener panicked"
}

// Is allows errors.Is to match PanicError with ErrListenerPanic.
func (e *PanicError) Is(target error) bool {
	return target == ErrListenerPanic
}
