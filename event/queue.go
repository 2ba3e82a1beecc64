package event

import (
	"sync"
	"sync/atomic"

	"github.com/lixenwraith/blockrooms/parameter"
)

// EventQueue hands worker results to the frame loop without losing any
// Thread-Safety:
//   - Push: any goroutine; lock-free while the ring has room
//   - Drain: frame loop only
//
// Overflow: a full ring spills to a locked list that Drain empties after the
// ring. Pushes keep spilling until that Drain, so each producer stays FIFO
type EventQueue struct {
	slots [parameter.EventQueueSize]queueSlot
	enq   atomic.Uint64
	deq   atomic.Uint64

	spillMu  sync.Mutex
	spill    []GameEvent
	spilling atomic.Bool
	spilled  atomic.Uint64
}

// queueSlot seq equals the position a writer may claim, pos+1 once readable
type queueSlot struct {
	seq atomic.Uint64
	ev  GameEvent
}

func NewEventQueue() *EventQueue {
	q := &EventQueue{}
	for i := range q.slots {
		q.slots[i].seq.Store(uint64(i))
	}
	return q
}

// Push appends ev; never blocks on the consumer
func (q *EventQueue) Push(ev GameEvent) {
	if !q.spilling.Load() && q.tryRing(ev) {
		return
	}

	q.spillMu.Lock()
	q.spilling.Store(true)
	q.spill = append(q.spill, ev)
	q.spillMu.Unlock()
	q.spilled.Add(1)
}

func (q *EventQueue) tryRing(ev GameEvent) bool {
	for {
		pos := q.enq.Load()
		s := &q.slots[pos&parameter.EventBufferMask]
		switch diff := int64(s.seq.Load()) - int64(pos); {
		case diff == 0:
			if q.enq.CompareAndSwap(pos, pos+1) {
				s.ev = ev
				s.seq.Store(pos + 1) // Publishes ev
				return true
			}
		case diff < 0:
			return false // Full
		}
		// diff > 0: another producer claimed pos, reload
	}
}

// Drain passes pending events to fn in FIFO order and returns the count
// Events pushed by fn itself wait for the next Drain
func (q *EventQueue) Drain(fn func(GameEvent)) int {
	n := 0
	end := q.enq.Load()
	for pos := q.deq.Load(); pos < end; pos++ {
		s := &q.slots[pos&parameter.EventBufferMask]
		if s.seq.Load() != pos+1 {
			break // Claimed but not yet written
		}
		ev := s.ev
		s.ev = GameEvent{}
		s.seq.Store(pos + parameter.EventQueueSize)
		q.deq.Store(pos + 1)
		fn(ev)
		n++
	}

	if !q.spilling.Load() {
		return n
	}
	q.spillMu.Lock()
	spill := q.spill
	q.spill = nil
	q.spilling.Store(false)
	q.spillMu.Unlock()

	for _, ev := range spill {
		fn(ev)
	}
	return n + len(spill)
}

// Len returns the approximate pending count
func (q *EventQueue) Len() int {
	ring := int(q.enq.Load() - q.deq.Load())
	q.spillMu.Lock()
	defer q.spillMu.Unlock()
	return ring + len(q.spill)
}

// Spilled returns how many events ever overflowed the ring
func (q *EventQueue) Spilled() uint64 {
	return q.spilled.Load()
}
