package engine

import (
	"sync"
	"time"
)

// MockClock provides a controllable time source for testing
// Sleep advances the mocked time instead of blocking
type MockClock struct {
	mu          sync.RWMutex
	currentTime time.Time
	step        time.Duration
	sleeps      int
}

// NewMockClock creates a new mock clock with the given start time
func NewMockClock(startTime time.Time) *MockClock {
	return &MockClock{
		currentTime: startTime,
	}
}

// Now returns the current mocked time
// With a non-zero step, each call also advances time by step after reading
func (m *MockClock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.currentTime
	m.currentTime = m.currentTime.Add(m.step)
	return now
}

// SetStep makes every Now call advance the clock, emulating work done between samples
func (m *MockClock) SetStep(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.step = d
}

// SetTime sets the current time for the mock
func (m *MockClock) SetTime(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = t
}

// Advance advances the current time by the given duration
func (m *MockClock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = m.currentTime.Add(d)
}

// Sleep advances the current time by d without blocking
func (m *MockClock) Sleep(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = m.currentTime.Add(d)
	m.sleeps++
}

// Sleeps returns how many times Sleep was called
func (m *MockClock) Sleeps() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sleeps
}
