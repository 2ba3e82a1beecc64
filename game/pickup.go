package game

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/blockrooms/grid"
	"github.com/lixenwraith/blockrooms/parameter"
)

// PickupKind names a floor item
type PickupKind string

const (
	PickupGun  PickupKind = "gun"
	PickupAmmo PickupKind = "ammo"
)

// Pickup is a collectible floor item
type Pickup struct {
	ID       string
	Kind     PickupKind
	Position mgl64.Vec3
	Amount   int // Rounds for ammo, zero for the gun
	Taken    bool
}

// Prompt returns the interaction hint shown when in range
func (p *Pickup) Prompt() string {
	if p.Kind == PickupGun {
		return "[F] pick up gun"
	}
	return fmt.Sprintf("[F] take ammo (+%d)", p.Amount)
}

// pickupLayout is relative to the spawn cell center
var pickupLayout = []struct {
	kind   PickupKind
	dx, dz float64
}{
	{PickupGun, 0, -4},
	{PickupAmmo, 7, 6},
	{PickupAmmo, -26, -3},
	{PickupAmmo, 14, -31},
}

// newPickups lays out the gun and ammo crates around spawn
func newPickups(spawn grid.Position) []*Pickup {
	items := make([]*Pickup, 0, len(pickupLayout))
	for i, l := range pickupLayout {
		p := &Pickup{
			ID:       fmt.Sprintf("%s-%d", l.kind, i),
			Kind:     l.kind,
			Position: mgl64.Vec3{spawn.X + l.dx, 0, spawn.Z + l.dz},
		}
		if l.kind == PickupAmmo {
			p.Amount = parameter.PickupAmmoAmount
		}
		items = append(items, p)
	}
	return items
}

// nearestPickup returns the closest untaken item within PickupRadius of pos
func nearestPickup(items []*Pickup, pos mgl64.Vec3) *Pickup {
	var best *Pickup
	bestDist := parameter.PickupRadius
	for _, p := range items {
		if p.Taken {
			continue
		}
		d := math.Hypot(p.Position.X()-pos.X(), p.Position.Z()-pos.Z())
		if d <= bestDist {
			best, bestDist = p, d
		}
	}
	return best
}
