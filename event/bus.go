package event

import (
	"time"
)

// Handler processes a single routed event
type Handler func(ev GameEvent)

// Bus is the typed event router owned by the game controller
//
// Architecture:
//   - Publish dispatches synchronously on the caller's goroutine (frame loop)
//   - Post enqueues from any goroutine; DispatchPending drains on the frame loop
//   - Multiple handlers per type, invoked in registration order
//   - Catch-all handlers run after typed handlers
//
// Usage:
//  1. Create: NewBus(clock)
//  2. Subscribe handlers during setup
//  3. Each frame: DispatchPending() before subsystem updates
type Bus struct {
	handlers map[EventType][]Handler
	catchAll []Handler
	queue    *EventQueue
	now      func() time.Time
	frame    int64
}

// NewBus creates a bus stamping events with now
func NewBus(now func() time.Time) *Bus {
	InitRegistry()
	if now == nil {
		now = time.Now
	}
	return &Bus{
		handlers: make(map[EventType][]Handler),
		queue:    NewEventQueue(),
		now:      now,
	}
}

// Subscribe adds a handler for one event type
func (b *Bus) Subscribe(t EventType, h Handler) {
	b.handlers[t] = append(b.handlers[t], h)
}

// SubscribeAll adds a handler receiving every dispatched event
func (b *Bus) SubscribeAll(h Handler) {
	b.catchAll = append(b.catchAll, h)
}

// SetFrame sets the frame number stamped on subsequent events
func (b *Bus) SetFrame(frame int64) {
	b.frame = frame
}

// Frame returns the current frame number
func (b *Bus) Frame() int64 {
	return b.frame
}

// Publish dispatches an event immediately
// Frame loop only; handlers may publish further events, which nest
func (b *Bus) Publish(t EventType, payload any) {
	b.dispatch(GameEvent{
		Type:      t,
		Payload:   payload,
		Frame:     b.frame,
		Timestamp: b.now(),
	})
}

// Post enqueues an event for the next DispatchPending
// Safe for concurrent use; never drops, so a posted result always arrives
func (b *Bus) Post(t EventType, payload any) {
	b.queue.Push(GameEvent{
		Type:      t,
		Payload:   payload,
		Timestamp: b.now(),
	})
}

// DispatchPending drains posted events in FIFO order and dispatches each
// Returns the number of events dispatched
func (b *Bus) DispatchPending() int {
	return b.queue.Drain(func(ev GameEvent) {
		ev.Frame = b.frame
		b.dispatch(ev)
	})
}

// Pending returns the approximate posted backlog
func (b *Bus) Pending() int {
	return b.queue.Len()
}

// HandlerCount returns the number of handlers registered for the given type
func (b *Bus) HandlerCount(t EventType) int {
	return len(b.handlers[t])
}

func (b *Bus) dispatch(ev GameEvent) {
	for _, h := range b.handlers[ev.Type] {
		h(ev)
	}
	for _, h := range b.catchAll {
		h(ev)
	}
}
