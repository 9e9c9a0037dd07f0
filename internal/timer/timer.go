// Package timer provides the busy-wait delay that holds the read protocol
// phases for their minimum dwell time.
package timer

import "time"

// Waiter blocks the calling goroutine for at least the given duration.
type Waiter interface {
	Wait(d time.Duration)
}

// Spin polls the monotonic clock until the deadline is reached.
// It never yields to the scheduler, phase windows are shorter than any
// sleep granularity the runtime can guarantee.
type Spin struct{}

// Wait spins for at least d. Overshoot is not bounded.
func (Spin) Wait(d time.Duration) {
	deadline := time.Now().Add(d)
	for time.Now().Before(deadline) {
	}
}

// WaitNanoseconds spins for at least ns nanoseconds.
func WaitNanoseconds(ns int64) {
	Spin{}.Wait(time.Duration(ns))
}
