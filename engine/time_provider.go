package engine

import "time"

// Clock is the time source driving the frame loop
type Clock interface {
	// Now returns the current time with monotonic clock reading
	Now() time.Time

	// Sleep blocks until d has elapsed; the loop's only suspension point
	Sleep(d time.Duration)
}

// MonotonicClock provides the real system time
type MonotonicClock struct{}

// NewMonotonicClock creates a new monotonic clock
func NewMonotonicClock() *MonotonicClock {
	return &MonotonicClock{}
}

// Now returns the current time with monotonic clock reading
func (c *MonotonicClock) Now() time.Time {
	return time.Now()
}

// Sleep pauses the calling goroutine
func (c *MonotonicClock) Sleep(d time.Duration) {
	time.Sleep(d)
}
