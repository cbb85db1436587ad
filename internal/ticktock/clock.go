package ticktock

import "time"

// Instant is a reading on a monotonic timeline, in nanoseconds from an
// arbitrary per-clock epoch. It has no meaning outside the clock that
// produced it and cannot be converted back into a time.Time.
type Instant int64

// Sub returns the elapsed duration i-u.
func (i Instant) Sub(u Instant) time.Duration {
	return time.Duration(i - u)
}

// Clock supplies the instants stamped on tick and tock events.
// Implementations must be monotonic: Now never returns a value smaller than
// a previous call.
type Clock interface {
	Now() Instant
}

// MonotonicClock reads Go's monotonic clock.
//
// time.Time carries a monotonic reading since Go 1.9 and time.Since uses it,
// so readings are immune to wall-clock adjustments.
type MonotonicClock struct {
	epoch time.Time
}

// NewMonotonicClock creates a clock whose epoch is now.
func NewMonotonicClock() *MonotonicClock {
	return &MonotonicClock{epoch: time.Now()}
}

// Now returns nanoseconds elapsed since the clock's epoch.
func (c *MonotonicClock) Now() Instant {
	return Instant(time.Since(c.epoch).Nanoseconds())
}
