package engine

import (
	"time"
)

// LoopState is the lifecycle state of a Loop
type LoopState int32

const (
	StateUninitialized LoopState = iota
	StateRunning
	StateStopped
)

// String returns the state name
func (s LoopState) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	}
	return "unknown"
}

// Loop is a cooperative single-threaded frame loop
// Each iteration measures dt since the previous one, accumulates it and calls update synchronously
type Loop struct {
	clock    Clock
	interval time.Duration // Minimum frame period, 0 = uncapped

	state     LoopState
	total     time.Duration
	lastDelta time.Duration
	frames    uint64
}

// NewLoop creates a loop on the given clock
// A positive interval paces frames by sleeping until the next slot
func NewLoop(clock Clock, interval time.Duration) *Loop {
	if clock == nil {
		clock = NewMonotonicClock()
	}
	return &Loop{
		clock:    clock,
		interval: max(interval, 0),
	}
}

// Run calls start once, then update(dt) until it returns false
// dt is in seconds; the first update receives 0
func (l *Loop) Run(start func() bool, update func(dt float64) bool) error {
	if l.state != StateUninitialized {
		return ErrAlreadyStarted
	}
	l.state = StateRunning
	defer func() { l.state = StateStopped }()

	if !start() {
		return ErrSceneStart
	}

	var prev time.Time
	for {
		now := l.clock.Now()
		var delta time.Duration
		if l.frames > 0 {
			// Clamp keeps total monotonic if a clock steps backwards
			delta = max(now.Sub(prev), 0)
		}
		prev = now

		l.total += delta
		l.lastDelta = delta
		l.frames++

		if !update(delta.Seconds()) {
			return nil
		}

		if l.interval > 0 {
			if wait := l.interval - l.clock.Now().Sub(now); wait > 0 {
				l.clock.Sleep(wait)
			}
		}
	}
}

// State returns the current lifecycle state
func (l *Loop) State() LoopState {
	return l.state
}

// TotalElapsed returns accumulated frame time
// Integral so equal totals compare equal regardless of step size
func (l *Loop) TotalElapsed() time.Duration {
	return l.total
}

// Elapsed returns accumulated frame time in seconds
func (l *Loop) Elapsed() float64 {
	return l.total.Seconds()
}

// LastDelta returns the dt passed to the most recent update
func (l *Loop) LastDelta() time.Duration {
	return l.lastDelta
}

// Frames returns how many updates have been issued
func (l *Loop) Frames() uint64 {
	return l.frames
}

// Interval returns the frame pacing period
func (l *Loop) Interval() time.Duration {
	return l.interval
}
