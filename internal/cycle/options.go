package cycle

// Tracer is notified when a sub-cycle starts, before its setup line
// changes, and at the start of every phase, before the clock transition.
type Tracer interface {
	BeginSubCycle(kind Kind)
	BeginPhase(kind Kind, index int)
}

type config struct {
	tracer Tracer
}

// Option configures an Engine.
type Option func(*config)

// WithTracer reports every phase to t.
func WithTracer(t Tracer) Option {
	return func(c *config) {
		c.tracer = t
	}
}
