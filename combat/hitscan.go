package combat

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/blockrooms/parameter"
	"github.com/lixenwraith/blockrooms/scene"
)

// cameraForward is the camera's local look direction
var cameraForward = mgl64.Vec3{0, 0, -1}

// Aim is the camera pose at the moment of firing
type Aim struct {
	Origin      mgl64.Vec3
	Orientation mgl64.Quat
}

// AimFromYaw builds an Aim looking along yaw radians about +Y
func AimFromYaw(origin mgl64.Vec3, yaw float64) Aim {
	return Aim{
		Origin:      origin,
		Orientation: mgl64.QuatRotate(yaw, mgl64.Vec3{0, 1, 0}),
	}
}

// Ray returns the hit-scan ray for this aim
func (a Aim) Ray() scene.Ray {
	dir := a.Orientation.Rotate(cameraForward)
	if l := dir.Len(); l > 0 {
		dir = dir.Mul(1 / l)
	}
	return scene.Ray{Origin: a.Origin, Dir: dir}
}

// HitScan casts ray into s and returns the nearest eligible intersection
// Skipped: lights, cameras, nodes owned by selfOwner, invisible nodes
// Kept: interactive entities or anything with geometry
func HitScan(s scene.Intersector, ray scene.Ray, selfOwner string) (scene.Intersection, bool) {
	for _, hit := range s.IntersectRay(ray, parameter.HitScanMaxDistance) {
		if hit.IsLight || hit.IsCamera {
			continue
		}
		if selfOwner != "" && hit.Owner == selfOwner {
			continue
		}
		if !hit.Visible {
			continue
		}
		if hit.Interactive || hit.HasGeometry {
			return hit, true
		}
	}
	return scene.Intersection{}, false
}
