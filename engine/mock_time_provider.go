package engine

import (
	"sync/atomic"
	"time"
)

// MockTimeProvider is a manually driven clock for tests
// Now is lock-free; RPC workers stamp posted events from their own goroutines
type MockTimeProvider struct {
	base   time.Time
	offset atomic.Int64 // Nanoseconds since base, never decreases
}

// NewMockTimeProvider creates a clock reading start until advanced
func NewMockTimeProvider(start time.Time) *MockTimeProvider {
	return &MockTimeProvider{base: start}
}

// Now returns the current mocked time
func (m *MockTimeProvider) Now() time.Time {
	return m.base.Add(time.Duration(m.offset.Load()))
}

// Advance moves the clock forward by d; non-positive d is ignored
func (m *MockTimeProvider) Advance(d time.Duration) {
	if d > 0 {
		m.offset.Add(int64(d))
	}
}

// SetTime jumps forward to t and reports whether it moved
// Scheduler deadlines assume a monotonic clock, so earlier times are refused
func (m *MockTimeProvider) SetTime(t time.Time) bool {
	next := int64(t.Sub(m.base))
	for {
		cur := m.offset.Load()
		if next < cur {
			return false
		}
		if m.offset.CompareAndSwap(cur, next) {
			return true
		}
	}
}

// Elapsed returns the total advance since construction
func (m *MockTimeProvider) Elapsed() time.Duration {
	return time.Duration(m.offset.Load())
}
