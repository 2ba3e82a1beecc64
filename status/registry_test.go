package status

import (
	"strings"
	"sync"
	"sync/atomic"
	"testing"
)

func TestMetricMapCachesPointer(t *testing.T) {
	r := NewRegistry()

	a := r.Counter(TxSubmitted)
	b := r.Counter(TxSubmitted)
	if a != b {
		t.Fatal("Get must return the same pointer for a key")
	}

	a.Add(3)
	if got := r.Counters.Get(TxSubmitted).Load(); got != 3 {
		t.Errorf("expected 3, got %d", got)
	}
}

func TestConcurrentCounterUpdates(t *testing.T) {
	r := NewRegistry()
	c := r.Counter(ShotsFired)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				c.Add(1)
			}
		}()
	}
	wg.Wait()

	if got := c.Load(); got != 8000 {
		t.Errorf("expected 8000, got %d", got)
	}
}

func TestMetricMapKeysSortedUnderConcurrentInsert(t *testing.T) {
	m := NewMetricMap[atomic.Int64]()
	keys := []string{RefetchOK, TxSubmitted, ShotsFired, EnemiesKilled, Reloads, TxFailed}

	var wg sync.WaitGroup
	ptrs := make([][]*atomic.Int64, 4)
	for w := range ptrs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, k := range keys {
				ptrs[w] = append(ptrs[w], m.Get(k))
			}
		}()
	}
	wg.Wait()

	for w := 1; w < len(ptrs); w++ {
		for i := range keys {
			if ptrs[w][i] != ptrs[0][i] {
				t.Fatalf("key %s resolved to different pointers", keys[i])
			}
		}
	}

	want := []string{EnemiesKilled, RefetchOK, Reloads, ShotsFired, TxFailed, TxSubmitted}
	got := m.Keys()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("keys = %v, want %v", got, want)
	}
	if m.Count() != len(want) || !m.Has(Reloads) || m.Has(NetState) {
		t.Errorf("count %d, has reloads %v, has net.state %v", m.Count(), m.Has(Reloads), m.Has(NetState))
	}
}

func TestSnapshotSortedAndTyped(t *testing.T) {
	r := NewRegistry()
	r.Counter(TxFailed).Add(1)
	r.Gauges.Get(PlayerSpeed).Set(2.5)
	r.Flags.Get(GateEnabled).Store(true)
	r.Labels.Get(NetState).Store("connected")

	snap := r.Snapshot()
	want := []string{"gate.enabled=true", "net.state=connected", "player.speed=2.50", "tx.failed=1"}
	if len(snap) != len(want) {
		t.Fatalf("got %v, want %v", snap, want)
	}
	for i := range want {
		if snap[i] != want[i] {
			t.Errorf("snap[%d] = %q, want %q", i, snap[i], want[i])
		}
	}
	if r.TotalCount() != 4 {
		t.Errorf("expected 4 metrics, got %d", r.TotalCount())
	}
}

func TestAtomicStringTruncates(t *testing.T) {
	var s AtomicString
	if s.Load() != "" {
		t.Error("zero value should load empty")
	}
	s.Store(strings.Repeat("x", MaxLabelLen+10))
	if len(s.Load()) != MaxLabelLen {
		t.Errorf("expected truncation to %d, got %d", MaxLabelLen, len(s.Load()))
	}
}
