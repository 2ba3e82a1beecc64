// Package enemy drives hostile entities: a per-entity behavior machine and
// the horde that spawns them, moves them and resolves shots against them
package enemy

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/blockrooms/engine"
	"github.com/lixenwraith/blockrooms/parameter"
	"github.com/lixenwraith/blockrooms/scene"
)

// Behavior is the entity's current state
type Behavior uint8

const (
	BehaviorIdle Behavior = iota
	BehaviorCharging
	BehaviorAttacking
	BehaviorHit
	BehaviorDead
)

func (b Behavior) String() string {
	switch b {
	case BehaviorIdle:
		return "idle"
	case BehaviorCharging:
		return "charging"
	case BehaviorAttacking:
		return "attacking"
	case BehaviorHit:
		return "hit"
	case BehaviorDead:
		return "dead"
	default:
		return "unknown"
	}
}

// Enemy is one hostile entity
// Health and behavior change only through Update, ApplyHit and its own timers
type Enemy struct {
	id       string
	health   int
	behavior Behavior
	position mgl64.Vec3
	yaw      float64

	hasStartedCharging bool
	chargeArmedAt      time.Time // Zero until the player first holds a weapon

	sched       *engine.Scheduler
	armTimer    *engine.Timer
	attackTimer *engine.Timer
	hitTimer    *engine.Timer

	onDeath       func(*Enemy)
	onChargeStart func(*Enemy)
	deathNotified bool
}

// New creates an idle enemy at pos
func New(id string, pos mgl64.Vec3, sched *engine.Scheduler) *Enemy {
	pos[1] = parameter.EnemyGroundY
	return &Enemy{
		id:          id,
		health:      parameter.EnemyInitialHealth,
		behavior:    BehaviorIdle,
		position:    pos,
		sched:       sched,
		armTimer:    sched.NewTimer(id + ":arm"),
		attackTimer: sched.NewTimer(id + ":attack"),
		hitTimer:    sched.NewTimer(id + ":hit"),
	}
}

// OnDeath registers the completion callback, invoked exactly once
func (e *Enemy) OnDeath(fn func(*Enemy)) { e.onDeath = fn }

// OnChargeStart registers a callback for the first transition to charging
func (e *Enemy) OnChargeStart(fn func(*Enemy)) { e.onChargeStart = fn }

// ID returns the entity's scene identifier
func (e *Enemy) ID() string { return e.id }

// Health returns remaining hit points
func (e *Enemy) Health() int { return e.health }

// Behavior returns the current state
func (e *Enemy) Behavior() Behavior { return e.behavior }

// Position returns the world position at ground level
func (e *Enemy) Position() mgl64.Vec3 { return e.position }

// Yaw returns the facing angle about +Y
func (e *Enemy) Yaw() float64 { return e.yaw }

// HasStartedCharging reports whether the arming countdown has completed
func (e *Enemy) HasStartedCharging() bool { return e.hasStartedCharging }

// ChargeArmedAt returns when the arming countdown started, zero if not yet
func (e *Enemy) ChargeArmedAt() time.Time { return e.chargeArmedAt }

// Alive reports whether the entity is not dead
func (e *Enemy) Alive() bool { return e.behavior != BehaviorDead }

// ArmingRemaining returns time left before the first charge
func (e *Enemy) ArmingRemaining() time.Duration { return e.armTimer.Remaining() }

// Box returns the bounding volume used for hit tests
func (e *Enemy) Box() scene.AABB {
	return scene.BoxFromGround(e.position, parameter.EnemyHalfWidth, parameter.EnemyHeight)
}

// Update advances the entity by dt seconds toward player
// hasGun starts the one-shot arming countdown the first time it is seen true
func (e *Enemy) Update(dt float64, player mgl64.Vec3, hasGun bool) {
	if e.behavior == BehaviorDead {
		return
	}

	if hasGun && e.chargeArmedAt.IsZero() {
		e.chargeArmedAt = e.sched.Now()
		e.armTimer.Arm(parameter.EnemyArmingDelay, e.startCharging)
	}

	if e.behavior != BehaviorCharging {
		return
	}

	dir := mgl64.Vec3{player.X() - e.position.X(), 0, player.Z() - e.position.Z()}
	if l := dir.Len(); l > 0 {
		dir = dir.Mul(1 / l)
		e.position = e.position.Add(dir.Mul(parameter.EnemyChargeSpeed * dt))
		e.yaw = math.Atan2(dir.X(), dir.Z())
	}
	e.position[1] = parameter.EnemyGroundY

	if e.planarDistance(player) < parameter.EnemyAttackRange {
		e.setBehavior(BehaviorAttacking)
	}
}

// ApplyHit resolves a hit-scan point against this entity
// Returns true if the point hit a live entity
func (e *Enemy) ApplyHit(point mgl64.Vec3) bool {
	if e.behavior == BehaviorDead {
		return false
	}
	if !e.Box().Contains(point) {
		return false
	}

	e.health--
	if e.health <= 0 {
		e.health = 0
		e.die()
		return true
	}

	e.setBehavior(BehaviorHit)
	return true
}

// Stop cancels all pending timers without changing state
func (e *Enemy) Stop() {
	e.armTimer.Cancel()
	e.attackTimer.Cancel()
	e.hitTimer.Cancel()
}

func (e *Enemy) startCharging() {
	if e.behavior == BehaviorDead {
		return
	}
	e.hasStartedCharging = true
	if e.onChargeStart != nil {
		e.onChargeStart(e)
	}
	// A hit reaction in progress resumes charging on its own timer
	if e.behavior == BehaviorIdle {
		e.setBehavior(BehaviorCharging)
	}
}

func (e *Enemy) setBehavior(next Behavior) {
	prev := e.behavior
	if prev == BehaviorAttacking && next != BehaviorAttacking {
		e.attackTimer.Cancel()
	}
	if prev == BehaviorHit && next != BehaviorHit {
		e.hitTimer.Cancel()
	}

	e.behavior = next

	switch next {
	case BehaviorAttacking:
		e.attackTimer.Arm(parameter.EnemyAttackDuration, func() {
			if e.health > 0 && e.behavior == BehaviorAttacking {
				e.setBehavior(BehaviorCharging)
			}
		})
	case BehaviorHit:
		e.hitTimer.Arm(parameter.EnemyHitReactDuration, func() {
			if e.health <= 0 || e.behavior != BehaviorHit {
				return
			}
			if e.hasStartedCharging {
				e.setBehavior(BehaviorCharging)
			} else {
				e.setBehavior(BehaviorIdle)
			}
		})
	}
}

func (e *Enemy) die() {
	e.setBehavior(BehaviorDead)
	e.Stop()
	if e.deathNotified {
		return
	}
	e.deathNotified = true
	if e.onDeath != nil {
		e.onDeath(e)
	}
}

func (e *Enemy) planarDistance(p mgl64.Vec3) float64 {
	dx := p.X() - e.position.X()
	dz := p.Z() - e.position.Z()
	return math.Sqrt(dx*dx + dz*dz)
}
