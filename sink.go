package beacon

import (
	"log/slog"

	"github.com/dshills/beacon/topic"
)

// Sink receives diagnostics from an Emitter. It is an external collaborator:
// the emitter reports through it and otherwise treats it as opaque.
type Sink interface {
	// CapacityWarning reports that a pattern's listener list has reached or
	// exceeded the advisory capacity threshold. Registration still succeeds.
	CapacityWarning(pattern topic.Topic, count, threshold int)

	// ListenerError reports a failure raised by a listener during dispatch.
	// err is a *PanicError when the listener panicked.
	ListenerError(event, pattern topic.Topic, err error)
}

// SlogSink reports diagnostics through a slog.Logger.
type SlogSink struct {
	logger *slog.Logger
}

// NewSlogSink creates a sink backed by the given logger.
// A nil logger falls back to slog.Default.
func NewSlogSink(logger *slog.Logger) *SlogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogSink{logger: logger}
}

// CapacityWarning implements Sink.
func (s *SlogSink) CapacityWarning(pattern topic.Topic, count, threshold int) {
	s.logger.Warn("possible listener leak",
		"pattern", pattern.String(),
		"count", count,
		"threshold", threshold,
	)
}

// ListenerError implements Sink.
func (s *SlogSink) ListenerError(event, pattern topic.Topic, err error) {
	s.logger.Error("listener failed",
		"event", event.String(),
		"pattern", pattern.String(),
		"error", err,
	)
}

// NopSink discards all diagnostics.
type NopSink struct{}

// CapacityWarning implements Sink.
func (NopSink) CapacityWarning(topic.Topic, int, int) {}

// ListenerError implements Sink.
func (NopSink) ListenerError(topic.Topic, topic.Topic, error) {}
