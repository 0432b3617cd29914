// Package clock supplies the time source the handlers and engines use
// to resolve "today". Every summary, streak, and suggestion is keyed by
// calendar date, so tests pin the clock instead of sleeping or racing
// midnight.
package clock

import (
	"sync"
	"time"
)

// Clock yields the current time. Anything that derives a date key takes
// one of these rather than calling time.Now itself.
type Clock interface {
	Now() time.Time
}

// RealClock reads the system clock.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// FakeClock serves a fixed instant that tests move by hand.
type FakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func NewFakeClock(start time.Time) *FakeClock {
	return &FakeClock{t: start}
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

// Set jumps the clock to an absolute instant.
func (c *FakeClock) Set(t time.Time) {
	c.mu.Lock()
	c.t = t
	c.mu.Unlock()
}

// Advance moves the clock forward, or backward for a negative duration.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}
