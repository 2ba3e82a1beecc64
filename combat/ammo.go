// Package combat implements the weapon: magazine/reserve accounting,
// timed reloads, recoil gating and hit-scan resolution
package combat

import (
	"sync/atomic"
	"time"

	"github.com/lixenwraith/blockrooms/engine"
	"github.com/lixenwraith/blockrooms/event"
	"github.com/lixenwraith/blockrooms/parameter"
	"github.com/lixenwraith/blockrooms/status"
)

// Publisher receives state-change notifications; *event.Bus satisfies it
type Publisher interface {
	Publish(t event.EventType, payload any)
}

// Ammo owns magazine, reserve and the reload timer
// All mutation goes through Reload, AddAmmo and the weapon's consume
type Ammo struct {
	magazine  int
	reserve   int
	reloading bool
	variant   event.ReloadVariant

	timer *engine.Timer
	pub   Publisher

	statReloads *atomic.Int64
}

// NewAmmo creates ammo at the spawn loadout
func NewAmmo(sched *engine.Scheduler, pub Publisher, reg *status.Registry) *Ammo {
	return &Ammo{
		magazine:    parameter.InitialMagazine,
		reserve:     parameter.InitialReserve,
		timer:       sched.NewTimer("reload"),
		pub:         pub,
		statReloads: reg.Counter(status.Reloads),
	}
}

// Magazine returns loaded rounds
func (a *Ammo) Magazine() int { return a.magazine }

// Reserve returns stored rounds
func (a *Ammo) Reserve() int { return a.reserve }

// Reloading reports whether a reload is in progress
func (a *Ammo) Reloading() bool { return a.reloading }

// Variant returns the variant of the current or last reload
func (a *Ammo) Variant() event.ReloadVariant { return a.variant }

// ReloadRemaining returns time left on the current reload
func (a *Ammo) ReloadRemaining() time.Duration { return a.timer.Remaining() }

// Snapshot returns the current counts
func (a *Ammo) Snapshot() event.AmmoPayload {
	return event.AmmoPayload{Magazine: a.magazine, Reserve: a.reserve}
}

// Reload starts a reload; returns false if guarded out
// Guards: already reloading, magazine full, reserve empty
func (a *Ammo) Reload(variant event.ReloadVariant) bool {
	if a.reloading || a.magazine >= parameter.MagSize || a.reserve <= 0 {
		return false
	}

	a.reloading = true
	a.variant = variant
	a.statReloads.Add(1)
	a.pub.Publish(event.EventReloadChanged, &event.ReloadPayload{Reloading: true, Variant: variant})

	a.timer.Arm(parameter.ReloadDuration, a.completeReload)
	return true
}

// completeReload transfers min(need, reserve) using counts current at completion
func (a *Ammo) completeReload() {
	need := parameter.MagSize - a.magazine
	take := min(need, a.reserve)
	if take < 0 {
		take = 0
	}

	a.reserve -= take
	a.magazine += take
	a.reloading = false

	a.publishAmmo()
	a.pub.Publish(event.EventReloadChanged, &event.ReloadPayload{Reloading: false, Variant: a.variant})
}

// AddAmmo adds a non-negative amount to the reserve; no cap
func (a *Ammo) AddAmmo(amount int) {
	if amount <= 0 {
		return
	}
	a.reserve += amount
	a.publishAmmo()
}

// consume removes one round from the magazine, returns false if empty
func (a *Ammo) consume() bool {
	if a.magazine <= 0 {
		return false
	}
	a.magazine--
	a.publishAmmo()
	return true
}

// Cancel aborts a reload in progress without transferring rounds
// Called when the controller is torn down
func (a *Ammo) Cancel() {
	if a.timer.Cancel() {
		a.reloading = false
		a.pub.Publish(event.EventReloadChanged, &event.ReloadPayload{Reloading: false, Variant: a.variant})
	}
}

func (a *Ammo) publishAmmo() {
	snap := a.Snapshot()
	a.pub.Publish(event.EventAmmoChanged, &snap)
}
