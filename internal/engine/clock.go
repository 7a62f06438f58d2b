package engine

import "time"

// Clock supplies the timestamps used to measure Result.Elapsed.
//
// Engines read the clock exactly twice per invocation: once at call entry
// and once after the algorithm finishes. Tests inject a stepping clock to
// get reproducible durations.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock. time.Now carries a monotonic reading,
// so the difference of two calls is immune to wall-clock adjustments.
//
// Thread-safety: SystemClock is stateless and safe for concurrent use.
type SystemClock struct{}

// Now returns the current time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// stopwatch measures one engine invocation.
type stopwatch struct {
	clock Clock
	start time.Time
}

func startStopwatch(c Clock) stopwatch {
	return stopwatch{clock: c, start: c.Now()}
}

func (s stopwatch) elapsed() time.Duration {
	return s.clock.Now().Sub(s.start)
}
