package core

import "time"

// Clock is a monotonic millisecond time source used for spawn gating.
type Clock interface {
	NowMillis() int64
}

// SystemClock reads the monotonic wall clock relative to its creation.
type SystemClock struct {
	start time.Time
}

// NewSystemClock creates a clock that starts at zero now.
func NewSystemClock() *SystemClock {
	return &SystemClock{start: time.Now()}
}

// NowMillis returns milliseconds elapsed since the clock was created.
func (c *SystemClock) NowMillis() int64 {
	return time.Since(c.start).Milliseconds()
}

// ManualClock is advanced explicitly. Used by tests and the headless simulator.
type ManualClock struct {
	now int64
}

// NewManualClock creates a manual clock at the given time.
func NewManualClock(startMillis int64) *ManualClock {
	return &ManualClock{now: startMillis}
}

// NowMillis returns the current manual time.
func (c *ManualClock) NowMillis() int64 {
	return c.now
}

// Advance moves the clock forward by d milliseconds.
func (c *ManualClock) Advance(d int64) {
	c.now += d
}

// Set jumps the clock to an absolute time.
func (c *ManualClock) Set(millis int64) {
	c.now = millis
}
