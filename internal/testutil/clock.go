package testutil

import (
	"fmt"
	"sync"
	"time"

	"github.com/roach88/ticktock/internal/ticktock"
)

// ManualClock is a ticktock.Clock whose readings are set by the test.
//
// Unlike ticktock.MonotonicClock, ManualClock never moves on its own, so a
// scenario can place every tick and tock at an exact nanosecond offset and
// assert exact durations.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type ManualClock struct {
	mu  sync.Mutex
	now ticktock.Instant
}

// NewManualClock creates a clock reading 0.
func NewManualClock() *ManualClock {
	return &ManualClock{}
}

// Now returns the current reading. Implements ticktock.Clock.
func (c *ManualClock) Now() ticktock.Instant {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Set moves the clock to at.
//
// Panics if at is before the current reading. A clock that goes backwards
// is a test bug, and failing fast beats asserting on negative durations.
func (c *ManualClock) Set(at ticktock.Instant) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if at < c.now {
		panic(fmt.Sprintf("ManualClock: cannot move from %d back to %d", c.now, at))
	}
	c.now = at
}

// Advance moves the clock forward by d. Panics on negative d.
func (c *ManualClock) Advance(d time.Duration) {
	if d < 0 {
		panic(fmt.Sprintf("ManualClock: negative advance %v", d))
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now += ticktock.Instant(d)
}

// Reset moves the clock back to 0. Used for test reuse.
func (c *ManualClock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = 0
}
