package enemy

import (
	"fmt"
	"math"
	"math/rand"
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/blockrooms/engine"
	"github.com/lixenwraith/blockrooms/event"
	"github.com/lixenwraith/blockrooms/parameter"
	"github.com/lixenwraith/blockrooms/scene"
	"github.com/lixenwraith/blockrooms/status"
)

// Owner is the scene owner tag for enemy nodes
const Owner = "enemy"

// Publisher receives horde notifications; *event.Bus satisfies it
type Publisher interface {
	Publish(t event.EventType, payload any)
}

// Horde owns every live enemy and keeps the scene in sync with them
type Horde struct {
	sched *engine.Scheduler
	world *scene.World
	pub   Publisher
	rng   *rand.Rand

	enemies []*Enemy
	nextID  int

	statKilled *atomic.Int64
}

// NewHorde creates an empty horde; rng drives spawn placement
func NewHorde(sched *engine.Scheduler, world *scene.World, pub Publisher, reg *status.Registry, rng *rand.Rand) *Horde {
	return &Horde{
		sched:      sched,
		world:      world,
		pub:        pub,
		rng:        rng,
		statKilled: reg.Counter(status.EnemiesKilled),
	}
}

// SpawnPosition returns a ground point at a random angle, 10 to 30 units from player
func SpawnPosition(rng *rand.Rand, player mgl64.Vec3) mgl64.Vec3 {
	angle := rng.Float64() * 2 * math.Pi
	dist := parameter.EnemySpawnMinDistance + rng.Float64()*(parameter.EnemySpawnMaxDistance-parameter.EnemySpawnMinDistance)
	return mgl64.Vec3{
		player.X() + math.Cos(angle)*dist,
		parameter.EnemyGroundY,
		player.Z() + math.Sin(angle)*dist,
	}
}

// Spawn places one enemy around player and registers it in the scene
func (h *Horde) Spawn(player mgl64.Vec3) *Enemy {
	h.nextID++
	e := New(fmt.Sprintf("enemy-%d", h.nextID), SpawnPosition(h.rng, player), h.sched)

	e.OnChargeStart(func(e *Enemy) {
		h.pub.Publish(event.EventEnemyCharging, payloadOf(e))
	})
	e.OnDeath(func(e *Enemy) {
		h.world.Remove(e.ID())
		h.statKilled.Add(1)
		h.pub.Publish(event.EventEnemyKilled, payloadOf(e))
	})

	h.enemies = append(h.enemies, e)
	h.world.Upsert(scene.Object{
		ID:          e.ID(),
		Kind:        scene.KindMesh,
		Owner:       Owner,
		Visible:     true,
		HasGeometry: true,
		Interactive: true,
		Box:         e.Box(),
	})
	h.pub.Publish(event.EventEnemySpawned, payloadOf(e))
	return e
}

// Update advances every live enemy and syncs its scene box
func (h *Horde) Update(dt float64, player mgl64.Vec3, hasGun bool) {
	for _, e := range h.enemies {
		if !e.Alive() {
			continue
		}
		e.Update(dt, player, hasGun)
		h.world.SetBox(e.ID(), e.Box())
	}
}

// HandleShot evaluates a resolved shot against every live enemy independently
// Returns the number of enemies hit
func (h *Horde) HandleShot(shot event.ShotPayload) int {
	if !shot.Hit {
		return 0
	}
	hits := 0
	for _, e := range h.enemies {
		if !e.Alive() {
			continue
		}
		if e.ApplyHit(shot.Point) {
			hits++
			if e.Alive() {
				h.pub.Publish(event.EventEnemyHit, payloadOf(e))
			}
		}
	}
	return hits
}

// Enemies returns all spawned enemies, dead included
func (h *Horde) Enemies() []*Enemy {
	return h.enemies
}

// Alive returns the count of live enemies
func (h *Horde) Alive() int {
	n := 0
	for _, e := range h.enemies {
		if e.Alive() {
			n++
		}
	}
	return n
}

// Stop cancels every enemy's timers
func (h *Horde) Stop() {
	for _, e := range h.enemies {
		e.Stop()
	}
}

func payloadOf(e *Enemy) *event.EnemyPayload {
	return &event.EnemyPayload{ID: e.ID(), Health: e.Health(), Position: e.Position()}
}
