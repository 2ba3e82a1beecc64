// Package movement reconciles the locally simulated player with the
// authoritative backend: one transaction per grid-cell crossing, gated by
// session stability, with forced-reload recovery on failure
package movement

import (
	"io"
	"log"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/blockrooms/engine"
	"github.com/lixenwraith/blockrooms/event"
	"github.com/lixenwraith/blockrooms/parameter"
	"github.com/lixenwraith/blockrooms/status"
)

// Publisher receives gate and pipeline notifications; *event.Bus satisfies it
type Publisher interface {
	Publish(t event.EventType, payload any)
}

// Gate holds transaction submission closed until a session has been
// continuously active for an arming delay
type Gate struct {
	enabled   bool
	sessionID int64
	armedAt   time.Time // Zero when unarmed

	// lastKnown survives phase exits so a return to the same session is a reconnect
	lastKnown    int64
	hasLastKnown bool

	timer *engine.Timer
	sched *engine.Scheduler
	pub   Publisher
	log   *log.Logger

	statEnabled *atomic.Bool
}

// NewGate creates a closed, unarmed gate
func NewGate(sched *engine.Scheduler, pub Publisher, reg *status.Registry, logger *log.Logger) *Gate {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Gate{
		timer:       sched.NewTimer("movement-gate"),
		sched:       sched,
		pub:         pub,
		log:         logger,
		statEnabled: reg.Flags.Get(status.GateEnabled),
	}
}

// Restore seeds the last known session, typically from the journal after a reload
func (g *Gate) Restore(sessionID int64) {
	g.lastKnown = sessionID
	g.hasLastKnown = true
}

// Observe feeds the current phase and session; idempotent for unchanged input
func (g *Gate) Observe(phaseActive, gameActive bool, sessionID int64) {
	if !phaseActive || !gameActive {
		g.disarm()
		return
	}

	sameSession := g.hasLastKnown && g.lastKnown == sessionID
	if sameSession && !g.armedAt.IsZero() {
		return
	}

	delay := parameter.GateDelayNewSession
	kind := "new session"
	if sameSession {
		delay = parameter.GateDelayReconnect
		kind = "reconnect"
	}

	g.lastKnown = sessionID
	g.hasLastKnown = true
	g.sessionID = sessionID
	g.setEnabled(false)
	g.armedAt = g.sched.Now()
	g.timer.Arm(delay, func() {
		g.setEnabled(true)
	})
	g.log.Printf("gate armed: %s %d, opens in %v", kind, sessionID, delay)
}

// Enabled reports whether submission is allowed
func (g *Gate) Enabled() bool {
	return g.enabled
}

// Armed reports whether the gate has been armed for the current active period
func (g *Gate) Armed() bool {
	return !g.armedAt.IsZero()
}

// ArmedAt returns when the gate was last armed, zero if unarmed
func (g *Gate) ArmedAt() time.Time {
	return g.armedAt
}

// Remaining returns time until the gate opens, zero if open or unarmed
func (g *Gate) Remaining() time.Duration {
	return g.timer.Remaining()
}

// LastKnownSessionID returns the most recent session observed while active
func (g *Gate) LastKnownSessionID() (int64, bool) {
	return g.lastKnown, g.hasLastKnown
}

// Stop cancels the arming timer
func (g *Gate) Stop() {
	g.timer.Cancel()
}

func (g *Gate) disarm() {
	if g.timer.Cancel() {
		g.log.Printf("gate arming canceled for session %d", g.sessionID)
	}
	g.armedAt = time.Time{}
	g.setEnabled(false)
}

func (g *Gate) setEnabled(v bool) {
	if g.enabled == v {
		return
	}
	g.enabled = v
	g.statEnabled.Store(v)
	g.pub.Publish(event.EventGateChanged, &event.GatePayload{Enabled: v, SessionID: g.sessionID})
}
