package clock

import (
	"sync"
	"time"
)

// Clock is the single source of "now" for booking rules: future-start checks,
// cancellation windows, reminder windows and idempotency expiry.
type Clock interface {
	Now() time.Time
}

// RealClock reports UTC wall time truncated to the microsecond so values
// survive a round trip through timestamptz unchanged.
type RealClock struct{}

func NewRealClock() Clock {
	return RealClock{}
}

func (RealClock) Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// MockClock is a settable clock safe for use from concurrent bookings in tests.
type MockClock struct {
	mu  sync.RWMutex
	now time.Time
}

func NewMockClock(t time.Time) *MockClock {
	return &MockClock{now: t}
}

func (c *MockClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.now
}

func (c *MockClock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

// Advance moves the clock forward, e.g. across a cancellation window boundary.
func (c *MockClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}
