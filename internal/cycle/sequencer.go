package cycle

import (
	"time"

	"github.com/retroenv/read4001/internal/port"
	"github.com/retroenv/read4001/internal/timer"
)

// Phases is the number of phases of one sub-cycle.
const Phases = 7

// Hook runs after phase index of a sub-cycle has been held.
type Hook func(index int)

// Sequencer clocks sub-cycles of 7 phases, each held for one timing unit.
type Sequencer struct {
	port   port.Port
	waiter timer.Waiter
	unit   time.Duration
	tracer Tracer
}

// NewSequencer returns a sequencer holding each phase for unit.
func NewSequencer(p port.Port, waiter timer.Waiter, unit time.Duration, opts ...Option) *Sequencer {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Sequencer{
		port:   p,
		waiter: waiter,
		unit:   unit,
		tracer: cfg.tracer,
	}
}

// Begin announces a sub-cycle to the tracer. Line changes made between
// Begin and RunSubCycle belong to the setup of that sub-cycle.
func (s *Sequencer) Begin(kind Kind) {
	if s.tracer != nil {
		s.tracer.BeginSubCycle(kind)
	}
}

// RunPhase performs the clock transition of phase index and holds it.
// Phases without a transition are held as well.
func (s *Sequencer) RunPhase(kind Kind, index int) {
	if s.tracer != nil {
		s.tracer.BeginPhase(kind, index)
	}

	switch index {
	case 0:
		s.port.SetLine(port.Clk2, false)
	case 1:
		s.port.SetLine(port.Clk1, true)
	case 3:
		s.port.SetLine(port.Clk1, false)
	case 5:
		s.port.SetLine(port.Clk2, true)
	}

	s.waiter.Wait(s.unit)
}

// RunSubCycle runs phases 0..6 in order. A non nil hook is called after
// every phase with the phase index.
func (s *Sequencer) RunSubCycle(kind Kind, hook Hook) {
	for i := 0; i < Phases; i++ {
		s.RunPhase(kind, i)
		if hook != nil {
			hook(i)
		}
	}
}
