package status

import (
	"slices"
	"sync"
	"sync/atomic"
)

// MetricMap is a registry of metrics of type T keyed by name
// Lookups and Range are lock-free; only the first Get of a key takes the lock.
// The debug line ranges every frame, so the sorted key list is rebuilt on
// insert rather than on read
type MetricMap[T any] struct {
	items sync.Map                 // string -> *T
	keys  atomic.Pointer[[]string] // Sorted, replaced on insert
	mu    sync.Mutex               // Serializes inserts
}

// NewMetricMap creates an empty MetricMap
func NewMetricMap[T any]() *MetricMap[T] {
	m := &MetricMap[T]{}
	m.keys.Store(&[]string{})
	return m
}

// Get returns the metric pointer for key, creating it on first use
func (m *MetricMap[T]) Get(key string) *T {
	if ptr, ok := m.items.Load(key); ok {
		return ptr.(*T)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	ptr, loaded := m.items.LoadOrStore(key, new(T))
	if !loaded {
		keys := slices.Clone(*m.keys.Load())
		i, _ := slices.BinarySearch(keys, key)
		keys = slices.Insert(keys, i, key)
		m.keys.Store(&keys)
	}
	return ptr.(*T)
}

// Has returns true if the key exists
func (m *MetricMap[T]) Has(key string) bool {
	_, ok := m.items.Load(key)
	return ok
}

// Keys returns the registered keys in sorted order; the slice is shared, do not modify
func (m *MetricMap[T]) Keys() []string {
	return *m.keys.Load()
}

// Range iterates over all metrics in sorted key order
func (m *MetricMap[T]) Range(fn func(key string, ptr *T)) {
	for _, k := range m.Keys() {
		if ptr, ok := m.items.Load(k); ok {
			fn(k, ptr.(*T))
		}
	}
}

// Count returns the number of registered metrics
func (m *MetricMap[T]) Count() int {
	return len(m.Keys())
}
