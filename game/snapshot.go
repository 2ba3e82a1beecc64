package game

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/blockrooms/chain"
	"github.com/lixenwraith/blockrooms/combat"
	"github.com/lixenwraith/blockrooms/enemy"
	"github.com/lixenwraith/blockrooms/event"
	"github.com/lixenwraith/blockrooms/grid"
	"github.com/lixenwraith/blockrooms/movement"
)

// Snapshot is a read-only copy of everything the HUD draws
// Built on the frame loop; safe to hand to a renderer afterwards
type Snapshot struct {
	Phase Phase
	Frame int64

	Position mgl64.Vec3
	Yaw      float64
	Speed    float64
	Cell     grid.Cell
	Verified grid.Position

	HasGun    bool
	Weapon    combat.Kind
	Ammo      event.AmmoPayload
	Reloading bool
	ReloadIn  time.Duration
	Flash     bool
	Shake     bool

	GateEnabled bool
	GateArmed   bool
	GateIn      time.Duration

	Tx movement.Signals

	Chain  *chain.PlayerState // Nil until the first successful refetch
	Others []chain.PlayerState

	Enemies []EnemyView
	Pickups []Pickup // Untaken only

	Prompt string
	Banner string
	Muted  bool
	Stats  string
}

// EnemyView is one enemy as drawn on the map
type EnemyView struct {
	ID       string
	Position mgl64.Vec3
	Behavior enemy.Behavior
	Health   int
}
