package bango

import "time"

// Clock is a monotonic millisecond time source.
type Clock interface {
	NowMillis() int64
}

// monotonicClock measures elapsed time since its creation using the runtime's
// monotonic reading, so wall-clock adjustments never produce negative drag
// durations.
type monotonicClock struct {
	epoch time.Time
}

// NewMonotonicClock returns a Clock that starts at zero.
func NewMonotonicClock() Clock {
	return monotonicClock{epoch: time.Now()}
}

func (c monotonicClock) NowMillis() int64 {
	return time.Since(c.epoch).Milliseconds()
}

// ManualClock is a Clock advanced explicitly. Used by scripts and tests.
type ManualClock struct {
	now int64
}

// NowMillis returns the current reading.
func (c *ManualClock) NowMillis() int64 {
	return c.now
}

// Set moves the clock to ms.
func (c *ManualClock) Set(ms int64) {
	c.now = ms
}

// Advance moves the clock forward by ms.
func (c *ManualClock) Advance(ms int64) {
	c.now += ms
}
