package combat

import (
	"sync/atomic"

	"github.com/lixenwraith/blockrooms/engine"
	"github.com/lixenwraith/blockrooms/event"
	"github.com/lixenwraith/blockrooms/parameter"
	"github.com/lixenwraith/blockrooms/scene"
	"github.com/lixenwraith/blockrooms/status"
)

// Kind selects the weapon variant; only the fire sound differs
type Kind string

const (
	KindPistol  Kind = "pistol"
	KindShotgun Kind = "shotgun"
)

// ParseKind returns the variant for s, defaulting to pistol
func ParseKind(s string) Kind {
	if Kind(s) == KindShotgun {
		return KindShotgun
	}
	return KindPistol
}

// SelfOwner is the scene owner tag of the weapon's own hierarchy
const SelfOwner = "weapon"

// FireOutcome classifies a Fire call
type FireOutcome uint8

const (
	FireRejected      FireOutcome = iota // Gate closed, recoiling or reloading
	FireDry                              // Empty magazine and reserve
	FireReloadStarted                    // Empty magazine, reload began instead of a shot
	FireShot                             // Round fired, hit-scan resolved
)

func (o FireOutcome) String() string {
	switch o {
	case FireDry:
		return "dry"
	case FireReloadStarted:
		return "reload"
	case FireShot:
		return "shot"
	default:
		return "rejected"
	}
}

// FireResult is the outcome of one Fire call
type FireResult struct {
	Outcome FireOutcome
	Shot    event.ShotPayload // Valid when Outcome == FireShot
}

// Weapon gates firing and resolves shots against the scene
type Weapon struct {
	kind  Kind
	ammo  *Ammo
	scene scene.Intersector
	pub   Publisher

	// canShoot is the external gate: weapon held and no UI capturing input
	canShoot func() bool

	recoil *engine.Timer
	flash  *engine.Timer
	shake  *engine.Timer

	statFired *atomic.Int64
	statHit   *atomic.Int64
	statDry   *atomic.Int64
}

// NewWeapon creates a weapon firing into s
func NewWeapon(kind Kind, ammo *Ammo, s scene.Intersector, sched *engine.Scheduler, pub Publisher, reg *status.Registry, canShoot func() bool) *Weapon {
	if canShoot == nil {
		canShoot = func() bool { return true }
	}
	return &Weapon{
		kind:      kind,
		ammo:      ammo,
		scene:     s,
		pub:       pub,
		canShoot:  canShoot,
		recoil:    sched.NewTimer("recoil"),
		flash:     sched.NewTimer("muzzle-flash"),
		shake:     sched.NewTimer("camera-shake"),
		statFired: reg.Counter(status.ShotsFired),
		statHit:   reg.Counter(status.ShotsHit),
		statDry:   reg.Counter(status.ShotsDry),
	}
}

// Kind returns the weapon variant
func (w *Weapon) Kind() Kind { return w.kind }

// Ammo returns the weapon's ammo state
func (w *Weapon) Ammo() *Ammo { return w.ammo }

// Recoiling reports whether the recoil lock is active
func (w *Weapon) Recoiling() bool { return w.recoil.Armed() }

// Flashing reports whether the muzzle flash is lit
func (w *Weapon) Flashing() bool { return w.flash.Armed() }

// Shaking reports whether the camera shake window is active
func (w *Weapon) Shaking() bool { return w.shake.Armed() }

// Reload is the player-initiated short reload
func (w *Weapon) Reload() bool {
	return w.ammo.Reload(event.ReloadShort)
}

// Fire attempts one shot from aim
func (w *Weapon) Fire(aim Aim) FireResult {
	if !w.canShoot() || w.recoil.Armed() || w.ammo.Reloading() {
		return FireResult{Outcome: FireRejected}
	}

	if w.ammo.Magazine() == 0 {
		if w.ammo.Reload(event.ReloadLong) {
			return FireResult{Outcome: FireReloadStarted}
		}
		w.statDry.Add(1)
		w.pub.Publish(event.EventDryFire, nil)
		return FireResult{Outcome: FireDry}
	}

	w.ammo.consume()
	if w.ammo.Magazine() == 0 {
		// Auto-reload on empty; guarded internally on reserve
		w.ammo.Reload(event.ReloadLong)
	}

	w.statFired.Add(1)
	w.recoil.Arm(parameter.RecoilLockDuration, nil)
	w.flash.Arm(parameter.MuzzleFlashDuration, nil)
	w.shake.Arm(parameter.CameraShakeDuration, nil)
	w.pub.Publish(event.EventShotFired, &event.ShotFiredPayload{Weapon: string(w.kind), Origin: aim.Origin})

	shot := w.resolve(aim)
	w.pub.Publish(event.EventShotResolved, &shot)
	return FireResult{Outcome: FireShot, Shot: shot}
}

func (w *Weapon) resolve(aim Aim) event.ShotPayload {
	ray := aim.Ray()
	shot := event.ShotPayload{Origin: aim.Origin}

	hit, ok := HitScan(w.scene, ray, SelfOwner)
	if !ok {
		return shot
	}

	w.statHit.Add(1)
	shot.Hit = true
	shot.Point = hit.Point
	shot.TargetID = hit.ObjectID
	shot.Distance = hit.Distance
	return shot
}
