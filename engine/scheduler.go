package engine

import (
	"time"

	"github.com/lixenwraith/blockrooms/parameter"
)

// Scheduler owns every deferred callback of the frame loop
// Each pending callback is a Timer carrying its own deadline; the frame loop
// calls Advance once per frame to fire whatever is due
//
// Thread-Safety: none. Owned by the frame loop goroutine
type Scheduler struct {
	clock TimeProvider
	armed []*Timer
	seq   uint64

	// Lifetime counters for the debug overlay
	firedTotal    uint64
	canceledTotal uint64
}

// Timer is a re-armable one-shot deadline
// Zero or one pending callback at any time; Arm replaces, Cancel clears
type Timer struct {
	sched    *Scheduler
	name     string
	deadline time.Time
	seq      uint64 // Arm order, breaks deadline ties
	fn       func()
	armed    bool
}

// NewScheduler creates a scheduler reading time from clock
func NewScheduler(clock TimeProvider) *Scheduler {
	return &Scheduler{clock: clock}
}

// Now returns the scheduler's clock reading
func (s *Scheduler) Now() time.Time {
	return s.clock.Now()
}

// NewTimer creates an unarmed timer bound to this scheduler
func (s *Scheduler) NewTimer(name string) *Timer {
	return &Timer{sched: s, name: name}
}

// After creates and arms a timer in one call
func (s *Scheduler) After(name string, d time.Duration, fn func()) *Timer {
	t := s.NewTimer(name)
	t.Arm(d, fn)
	return t
}

// Advance fires every timer whose deadline is at or before the current time
// Timers fire in deadline order, ties in arm order. Callbacks may arm or cancel
// other timers; newly armed timers that are already due fire in the same call
// Returns the number of callbacks fired
func (s *Scheduler) Advance() int {
	now := s.clock.Now()
	fired := 0

	for fired < parameter.SchedulerMaxFirePerAdvance {
		idx := -1
		for i, t := range s.armed {
			if t.deadline.After(now) {
				continue
			}
			if idx < 0 || t.deadline.Before(s.armed[idx].deadline) ||
				(t.deadline.Equal(s.armed[idx].deadline) && t.seq < s.armed[idx].seq) {
				idx = i
			}
		}
		if idx < 0 {
			break
		}

		t := s.armed[idx]
		s.remove(idx)
		t.armed = false
		fn := t.fn
		t.fn = nil

		fired++
		s.firedTotal++
		if fn != nil {
			fn()
		}
	}

	return fired
}

// CancelAll disarms every pending timer
// Used on controller teardown so no callback outlives its owner
func (s *Scheduler) CancelAll() {
	for _, t := range s.armed {
		t.armed = false
		t.fn = nil
		s.canceledTotal++
	}
	s.armed = s.armed[:0]
}

// Pending returns the number of armed timers
func (s *Scheduler) Pending() int {
	return len(s.armed)
}

// Stats returns lifetime fired and canceled counts
func (s *Scheduler) Stats() (fired, canceled uint64) {
	return s.firedTotal, s.canceledTotal
}

// NextDeadline returns the earliest pending deadline
func (s *Scheduler) NextDeadline() (time.Time, bool) {
	var next time.Time
	found := false
	for _, t := range s.armed {
		if !found || t.deadline.Before(next) {
			next = t.deadline
			found = true
		}
	}
	return next, found
}

func (s *Scheduler) remove(idx int) {
	last := len(s.armed) - 1
	s.armed[idx] = s.armed[last]
	s.armed[last] = nil
	s.armed = s.armed[:last]
}

func (s *Scheduler) indexOf(t *Timer) int {
	for i, a := range s.armed {
		if a == t {
			return i
		}
	}
	return -1
}

// Name returns the timer's diagnostic name
func (t *Timer) Name() string {
	return t.name
}

// Arm schedules fn to run d from now, replacing any pending callback
func (t *Timer) Arm(d time.Duration, fn func()) {
	s := t.sched
	if !t.armed {
		s.armed = append(s.armed, t)
	}
	s.seq++
	t.seq = s.seq
	t.deadline = s.clock.Now().Add(d)
	t.fn = fn
	t.armed = true
}

// Cancel disarms the timer, returns true if a callback was pending
func (t *Timer) Cancel() bool {
	if !t.armed {
		return false
	}
	s := t.sched
	if idx := s.indexOf(t); idx >= 0 {
		s.remove(idx)
	}
	t.armed = false
	t.fn = nil
	s.canceledTotal++
	return true
}

// Armed reports whether a callback is pending
func (t *Timer) Armed() bool {
	return t.armed
}

// Deadline returns the pending deadline
func (t *Timer) Deadline() (time.Time, bool) {
	if !t.armed {
		return time.Time{}, false
	}
	return t.deadline, true
}

// Remaining returns time until the deadline, zero if unarmed or overdue
func (t *Timer) Remaining() time.Duration {
	if !t.armed {
		return 0
	}
	d := t.deadline.Sub(t.sched.clock.Now())
	if d < 0 {
		return 0
	}
	return d
}
