package scribe

import "time"

// Clock provides the timestamps used to measure call durations.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Monotonicity: successive calls must not go backwards.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to the Clock interface.
type ClockFunc func() time.Time

// Now calls f.
func (f ClockFunc) Now() time.Time {
	return f()
}

// SystemClock reads the wall clock. Durations between its readings use the
// monotonic clock reading carried by time.Time.
var SystemClock Clock = ClockFunc(time.Now)
