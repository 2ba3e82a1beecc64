// Package status holds lock-free runtime counters shared by the frame loop,
// worker goroutines and the HUD
package status

import (
	"fmt"
	"sort"
	"strings"
	"sync/atomic"
)

// Well-known metric keys
const (
	TxSubmitted = "tx.submitted"
	TxConfirmed = "tx.confirmed"
	TxFailed    = "tx.failed"
	TxDropped   = "tx.dropped"

	ShotsFired = "shots.fired"
	ShotsHit   = "shots.hit"
	ShotsDry   = "shots.dry"
	Reloads    = "reloads"

	EnemiesKilled = "enemies.killed"

	RefetchOK  = "refetch.ok"
	RefetchErr = "refetch.err"

	FrameDeltaMs = "frame.dt_ms"
	PlayerSpeed  = "player.speed"

	GateEnabled = "gate.enabled"
	NetState    = "net.state"
)

// Registry is the central metrics facade
// Subsystems cache pointers during construction; update paths write directly to atomics
type Registry struct {
	Counters *MetricMap[atomic.Int64]
	Gauges   *MetricMap[AtomicFloat]
	Flags    *MetricMap[atomic.Bool]
	Labels   *MetricMap[AtomicString]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Counters: NewMetricMap[atomic.Int64](),
		Gauges:   NewMetricMap[AtomicFloat](),
		Flags:    NewMetricMap[atomic.Bool](),
		Labels:   NewMetricMap[AtomicString](),
	}
}

// Counter returns the cached counter pointer for key
func (r *Registry) Counter(key string) *atomic.Int64 {
	return r.Counters.Get(key)
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Counters.Count() + r.Gauges.Count() + r.Flags.Count() + r.Labels.Count()
}

// Snapshot renders every metric as sorted key=value pairs
func (r *Registry) Snapshot() []string {
	var out []string
	r.Counters.Range(func(k string, v *atomic.Int64) {
		out = append(out, fmt.Sprintf("%s=%d", k, v.Load()))
	})
	r.Gauges.Range(func(k string, v *AtomicFloat) {
		out = append(out, fmt.Sprintf("%s=%.2f", k, v.Get()))
	})
	r.Flags.Range(func(k string, v *atomic.Bool) {
		out = append(out, fmt.Sprintf("%s=%t", k, v.Load()))
	})
	r.Labels.Range(func(k string, v *AtomicString) {
		out = append(out, fmt.Sprintf("%s=%s", k, v.Load()))
	})
	sort.Strings(out)
	return out
}

// String joins Snapshot for log lines
func (r *Registry) String() string {
	return strings.Join(r.Snapshot(), " ")
}
