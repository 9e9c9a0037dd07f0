// Package config handles application configuration and setup
package config

import (
	"fmt"
	"time"

	"github.com/retroenv/retrogolib/log"
)

// Clock rates the 4001 is specified for.
const (
	DefaultClockKHz = 740
	MinClockKHz     = 500
	MaxClockKHz     = 740
)

// CyclesPerWord is the number of sub-cycles of one word read.
const CyclesPerWord = 8

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// Timing holds the protocol durations derived from the clock rate.
type Timing struct {
	ClockKHz int
	Cycle    time.Duration // one sub-cycle
	Unit     time.Duration // one phase, 1/7 of a sub-cycle
}

// NewTiming derives the sub-cycle and phase durations from a clock rate in
// kHz. Both are truncated to whole nanoseconds.
func NewTiming(clockKHz int) (Timing, error) {
	if clockKHz < MinClockKHz || clockKHz > MaxClockKHz {
		return Timing{}, fmt.Errorf("clock %d kHz out of range %d-%d", clockKHz, MinClockKHz, MaxClockKHz)
	}

	cycleNS := 1_000_000 / clockKHz
	return Timing{
		ClockKHz: clockKHz,
		Cycle:    time.Duration(cycleNS),
		Unit:     time.Duration(cycleNS / 7),
	}, nil
}

// PerWord returns the nominal duration of one word read.
func (t Timing) PerWord() time.Duration {
	return CyclesPerWord * t.Cycle
}
