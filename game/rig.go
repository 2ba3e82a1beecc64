package game

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/blockrooms/combat"
	"github.com/lixenwraith/blockrooms/scene"
)

// Scene nodes carried at the player's eye
// Shots start inside or next to them; hit-scan must skip all three
const (
	ownerPlayer = "player"

	nodeCamera = "player-camera"
	nodeLight  = "player-flashlight"
	nodeWeapon = "weapon-model"
)

var (
	cameraHalf = mgl64.Vec3{0.2, 0.2, 0.2}
	lightHalf  = mgl64.Vec3{0.1, 0.1, 0.1}
	weaponHalf = mgl64.Vec3{0.1, 0.25, 0.3}

	// Weapon model sits ahead of and below the eye, still across the aim line
	weaponOffset = mgl64.Vec3{0.05, -0.15, -0.5}
	lightOffset  = mgl64.Vec3{0, 0, -0.3}
)

// attachRig registers the camera, its light and the held weapon
func (c *Controller) attachRig() {
	c.world.Upsert(scene.Object{ID: nodeCamera, Kind: scene.KindCamera, Owner: ownerPlayer, Visible: true})
	c.world.Upsert(scene.Object{ID: nodeLight, Kind: scene.KindLight, Owner: ownerPlayer, Visible: true})
	c.world.Upsert(scene.Object{ID: nodeWeapon, Kind: scene.KindMesh, Owner: combat.SelfOwner, HasGeometry: true})
	c.syncRig()
}

// syncRig follows the player's eye and yaw; the weapon shows once picked up
func (c *Controller) syncRig() {
	eye := c.player.Position()
	rot := c.player.Orientation()

	c.world.SetBox(nodeCamera, scene.BoxAround(eye, cameraHalf))
	c.world.SetBox(nodeLight, scene.BoxAround(eye.Add(rot.Rotate(lightOffset)), lightHalf))
	c.world.SetBox(nodeWeapon, scene.BoxAround(eye.Add(rot.Rotate(weaponOffset)), weaponHalf))
	c.world.SetVisible(nodeWeapon, c.hasGun)
}
