package beacon

// DefaultCapacity is the advisory per-pattern listener threshold.
// Reaching it produces a diagnostic warning, never an error.
const DefaultCapacity = 10

type emitterConfig struct {
	capacity int
	sink     Sink
}

func defaultConfig() emitterConfig {
	return emitterConfig{
		capacity: DefaultCapacity,
		sink:     NewSlogSink(nil),
	}
}

// Option configures an Emitter.
type Option func(*emitterConfig)

// WithCapacity sets the advisory per-pattern listener threshold.
// Values below one disable the warning.
func WithCapacity(n int) Option {
	return func(c *emitterConfig) {
		c.capacity = n
	}
}

// WithSink sets the diagnostic sink. A nil sink discards diagnostics.
func WithSink(s Sink) Option {
	return func(c *emitterConfig) {
		if s == nil {
			s = NopSink{}
		}
		c.sink = s
	}
}
