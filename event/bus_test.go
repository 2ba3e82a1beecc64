package event

import (
	"sync"
	"testing"
	"time"

	"github.com/lixenwraith/blockrooms/parameter"
)

func fixedNow() time.Time {
	return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
}

func TestPublishDispatchesInRegistrationOrder(t *testing.T) {
	bus := NewBus(fixedNow)

	var order []string
	bus.Subscribe(EventAmmoChanged, func(ev GameEvent) { order = append(order, "first") })
	bus.Subscribe(EventAmmoChanged, func(ev GameEvent) { order = append(order, "second") })
	bus.SubscribeAll(func(ev GameEvent) { order = append(order, "all:"+ev.Type.String()) })
	bus.Subscribe(EventReloadChanged, func(ev GameEvent) { t.Error("wrong type dispatched") })

	bus.SetFrame(7)
	bus.Publish(EventAmmoChanged, &AmmoPayload{Magazine: 5, Reserve: 10})

	want := []string{"first", "second", "all:EventAmmoChanged"}
	if len(order) != len(want) {
		t.Fatalf("got %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %q, want %q", i, order[i], want[i])
		}
	}
}

func TestPostDefersUntilDispatch(t *testing.T) {
	bus := NewBus(fixedNow)

	var got []GameEvent
	bus.Subscribe(EventMoveResolved, func(ev GameEvent) { got = append(got, ev) })

	bus.Post(EventMoveResolved, &MoveResolvedPayload{Seq: 1})
	bus.Post(EventMoveResolved, &MoveResolvedPayload{Seq: 2})

	if len(got) != 0 {
		t.Fatal("Post must not dispatch synchronously")
	}

	bus.SetFrame(42)
	if n := bus.DispatchPending(); n != 2 {
		t.Fatalf("expected 2 dispatched, got %d", n)
	}
	if got[0].Payload.(*MoveResolvedPayload).Seq != 1 || got[1].Payload.(*MoveResolvedPayload).Seq != 2 {
		t.Error("posted events out of order")
	}
	if got[0].Frame != 42 {
		t.Errorf("expected frame stamp 42, got %d", got[0].Frame)
	}
}

func TestPostConcurrentProducers(t *testing.T) {
	bus := NewBus(nil)

	count := 0
	bus.Subscribe(EventWorldFetched, func(ev GameEvent) { count++ })

	var wg sync.WaitGroup
	for p := 0; p < 4; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				bus.Post(EventWorldFetched, &WorldFetchedPayload{})
			}
		}()
	}
	wg.Wait()

	bus.DispatchPending()
	if count != 200 {
		t.Errorf("expected 200 events, got %d", count)
	}
}

func TestQueueOverflowSpillsInOrder(t *testing.T) {
	q := NewEventQueue()

	total := parameter.EventQueueSize + 10
	for i := 0; i < total; i++ {
		q.Push(GameEvent{Type: EventAmmoChanged, Payload: i})
	}
	if q.Len() != total {
		t.Errorf("expected backlog %d, got %d", total, q.Len())
	}
	if q.Spilled() != 10 {
		t.Errorf("expected 10 spilled, got %d", q.Spilled())
	}

	var got []int
	n := q.Drain(func(ev GameEvent) { got = append(got, ev.Payload.(int)) })
	if n != total || len(got) != total {
		t.Fatalf("expected %d events, got %d", total, len(got))
	}
	for i, v := range got {
		if v != i {
			t.Fatalf("event %d out of order: %d", i, v)
		}
	}

	// Ring is used again once the spill is drained
	q.Push(GameEvent{Type: EventAmmoChanged, Payload: total})
	if n := q.Drain(func(GameEvent) {}); n != 1 {
		t.Errorf("expected 1 event after spill, got %d", n)
	}
	if q.Spilled() != 10 || q.Len() != 0 {
		t.Errorf("spilled %d len %d after drain", q.Spilled(), q.Len())
	}
}

func TestPostFromHandlerWaitsForNextDispatch(t *testing.T) {
	bus := NewBus(fixedNow)

	seen := 0
	bus.Subscribe(EventWorldFetched, func(ev GameEvent) {
		seen++
		if seen == 1 {
			bus.Post(EventWorldFetched, &WorldFetchedPayload{})
		}
	})

	bus.Post(EventWorldFetched, &WorldFetchedPayload{})
	if n := bus.DispatchPending(); n != 1 {
		t.Fatalf("expected 1 dispatched, got %d", n)
	}
	if n := bus.DispatchPending(); n != 1 || seen != 2 {
		t.Errorf("re-posted event: dispatched %d, seen %d", n, seen)
	}
}

func TestRegistryNames(t *testing.T) {
	InitRegistry()

	et, ok := GetEventType("EventTxFailed")
	if !ok || et != EventTxFailed {
		t.Fatalf("lookup failed: %v %v", et, ok)
	}
	if p, ok := NewPayloadStruct(EventTxFailed).(*TxPayload); !ok || p == nil {
		t.Errorf("expected *TxPayload, got %T", NewPayloadStruct(EventTxFailed))
	}
	if NewPayloadStruct(EventDryFire) != nil {
		t.Error("EventDryFire has no payload")
	}
	if EventType(9999).String() != "EventUnknown" {
		t.Error("unregistered type should stringify as EventUnknown")
	}
}
