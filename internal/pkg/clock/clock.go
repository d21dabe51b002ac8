// Package clock provides the time source used for roll timestamps
package clock

import (
	"sync"
	"time"
)

// Clock provides time functionality
type Clock interface {
	Now() time.Time
}

// Real implements Clock using actual system time
type Real struct{}

// Now returns the current time in UTC
func (c *Real) Now() time.Time {
	return time.Now().UTC()
}

// New returns a new real clock
func New() Clock {
	return &Real{}
}

// Stepping is a Clock that starts at a fixed instant and advances by Step on
// every call. Tests use it to get strictly increasing timestamps.
type Stepping struct {
	mu   sync.Mutex
	now  time.Time
	Step time.Duration
}

// NewStepping returns a Stepping clock starting at start
func NewStepping(start time.Time, step time.Duration) *Stepping {
	return &Stepping{now: start, Step: step}
}

// Now returns the current instant and advances the clock
func (c *Stepping) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now
	c.now = c.now.Add(c.Step)
	return now
}
