// Package scene is the minimal spatial scene graph queried by hit-scan:
// axis-aligned boxes tagged the way a renderer tags its nodes
package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// containsEpsilon widens Contains so surface points from ray hits test inside
const containsEpsilon = 1e-6

// AABB is an axis-aligned bounding box
type AABB struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// BoxFromGround returns a box standing on base with the given half width and height
func BoxFromGround(base mgl64.Vec3, halfWidth, height float64) AABB {
	return AABB{
		Min: mgl64.Vec3{base.X() - halfWidth, base.Y(), base.Z() - halfWidth},
		Max: mgl64.Vec3{base.X() + halfWidth, base.Y() + height, base.Z() + halfWidth},
	}
}

// BoxAround returns a box centered on c with half extents h
func BoxAround(c, h mgl64.Vec3) AABB {
	return AABB{Min: c.Sub(h), Max: c.Add(h)}
}

// Center returns the box midpoint
func (b AABB) Center() mgl64.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Contains reports whether p lies inside or on the surface of b
func (b AABB) Contains(p mgl64.Vec3) bool {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i]-containsEpsilon || p[i] > b.Max[i]+containsEpsilon {
			return false
		}
	}
	return true
}

// Ray is a half-line; Dir need not be normalized but distances are in Dir units
type Ray struct {
	Origin mgl64.Vec3
	Dir    mgl64.Vec3
}

// At returns the point at parameter t
func (r Ray) At(t float64) mgl64.Vec3 {
	return r.Origin.Add(r.Dir.Mul(t))
}

// IntersectRay returns the ray parameter of the first surface hit
// A ray starting inside the box reports the exit point
func (b AABB) IntersectRay(r Ray) (float64, bool) {
	tmin := math.Inf(-1)
	tmax := math.Inf(1)

	for i := 0; i < 3; i++ {
		o, d := r.Origin[i], r.Dir[i]
		if d == 0 {
			if o < b.Min[i] || o > b.Max[i] {
				return 0, false
			}
			continue
		}
		inv := 1 / d
		t1 := (b.Min[i] - o) * inv
		t2 := (b.Max[i] - o) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math.Max(tmin, t1)
		tmax = math.Min(tmax, t2)
		if tmin > tmax {
			return 0, false
		}
	}

	if tmax < 0 {
		return 0, false
	}
	if tmin >= 0 {
		return tmin, true
	}
	return tmax, true
}
