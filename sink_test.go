package beacon

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestSlogSink(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	sink := NewSlogSink(logger)

	sink.CapacityWarning("user.*", 12, 10)
	out := buf.String()
	if !strings.Contains(out, "user.*") || !strings.Contains(out, "threshold=10") {
		t.Errorf("capacity warning output missing fields: %q", out)
	}

	buf.Reset()
	sink.ListenerError("user.created", "user.*", errors.New("boom"))
	out = buf.String()
	if !strings.Contains(out, "user.created") || !strings.Contains(out, "boom") {
		t.Errorf("listener error output missing fields: %q", out)
	}
}

func TestSlogSink_NilLogger(t *testing.T) {
	if NewSlogSink(nil) == nil {
		t.Fatal("NewSlogSink(nil) returned nil")
	}
}

func TestNopSink(t *testing.T) {
	// Must not panic.
	var s NopSink
	s.CapacityWarning("x", 1, 1)
	s.ListenerError("x", "x", errors.New("ignored"))
}
