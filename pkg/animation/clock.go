// Package animation provides the time sources that drive pull-to-refresh
// hosts: a replaceable clock, frame-stepped one-shot timers, and the spring
// used to settle an overscrolled list.
//
// Nothing in this package starts goroutines. Hosts call [StepTimers] (or
// [Timers.Step] on their own queue) once per frame from the UI thread, so
// every timer callback runs on the same goroutine as the scroll events it
// races against.
package animation

import "time"

// Clock provides time for timers and simulations. The default implementation
// uses system time. Tests can inject a fake clock via SetClock to control
// timing deterministically.
type Clock interface {
	Now() time.Time
}

// realClock uses system time.
type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// clock is the package-level time source, replaceable for testing.
var clock Clock = realClock{}

// SetClock replaces the package clock. Returns the previous clock
// so callers can restore it during cleanup. Passing nil restores system time.
func SetClock(c Clock) Clock {
	prev := clock
	if c == nil {
		c = realClock{}
	}
	clock = c
	return prev
}

// Now returns the current time from the active clock.
func Now() time.Time { return clock.Now() }
