package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAABBIntersectRay(t *testing.T) {
	box := AABB{Min: mgl64.Vec3{-1, 0, -11}, Max: mgl64.Vec3{1, 2, -9}}

	tests := []struct {
		name  string
		ray   Ray
		hit   bool
		wantT float64
	}{
		{"straight ahead", Ray{mgl64.Vec3{0, 1, 0}, mgl64.Vec3{0, 0, -1}}, true, 9},
		{"behind origin", Ray{mgl64.Vec3{0, 1, 0}, mgl64.Vec3{0, 0, 1}}, false, 0},
		{"parallel outside slab", Ray{mgl64.Vec3{5, 1, 0}, mgl64.Vec3{0, 0, -1}}, false, 0},
		{"from inside exits", Ray{mgl64.Vec3{0, 1, -10}, mgl64.Vec3{0, 0, -1}}, true, 1},
		{"over the top", Ray{mgl64.Vec3{0, 3, 0}, mgl64.Vec3{0, 0, -1}}, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := box.IntersectRay(tt.ray)
			require.Equal(t, tt.hit, ok)
			if ok {
				assert.InDelta(t, tt.wantT, got, 1e-9)
			}
		})
	}
}

func TestAABBContainsSurfacePoint(t *testing.T) {
	box := BoxFromGround(mgl64.Vec3{0, 0, -10}, 0.6, 2)
	ray := Ray{Origin: mgl64.Vec3{0, 1.7, 0}, Dir: mgl64.Vec3{0, 0, -1}}

	tHit, ok := box.IntersectRay(ray)
	require.True(t, ok)
	assert.True(t, box.Contains(ray.At(tHit)), "ray hit point must test inside")
	assert.False(t, box.Contains(mgl64.Vec3{0, 2.5, -10}))
	assert.InDelta(t, 1.0, box.Center().Y(), 1e-9)
}

func TestWorldIntersectOrdersByDistance(t *testing.T) {
	w := NewWorld()
	w.Upsert(Object{ID: "far", Visible: true, HasGeometry: true, Box: BoxAround(mgl64.Vec3{0, 1, -20}, mgl64.Vec3{1, 1, 1})})
	w.Upsert(Object{ID: "near", Visible: true, HasGeometry: true, Box: BoxAround(mgl64.Vec3{0, 1, -5}, mgl64.Vec3{1, 1, 1})})
	w.Upsert(Object{ID: "lamp", Kind: KindLight, Visible: true, Box: BoxAround(mgl64.Vec3{0, 1, -3}, mgl64.Vec3{0.2, 0.2, 0.2})})
	w.Upsert(Object{ID: "off-axis", Visible: true, HasGeometry: true, Box: BoxAround(mgl64.Vec3{10, 1, -5}, mgl64.Vec3{1, 1, 1})})

	hits := w.IntersectRay(Ray{Origin: mgl64.Vec3{0, 1, 0}, Dir: mgl64.Vec3{0, 0, -1}}, 0)
	require.Len(t, hits, 3)
	assert.Equal(t, "lamp", hits[0].ObjectID)
	assert.True(t, hits[0].IsLight)
	assert.Equal(t, "near", hits[1].ObjectID)
	assert.InDelta(t, 4.0, hits[1].Distance, 1e-9)
	assert.Equal(t, "far", hits[2].ObjectID)

	limited := w.IntersectRay(Ray{Origin: mgl64.Vec3{0, 1, 0}, Dir: mgl64.Vec3{0, 0, -1}}, 10)
	assert.Len(t, limited, 2)
}

func TestWorldMutation(t *testing.T) {
	w := NewWorld()
	w.Upsert(Object{ID: "enemy-1", Visible: true})

	assert.True(t, w.SetBox("enemy-1", BoxAround(mgl64.Vec3{}, mgl64.Vec3{1, 1, 1})))
	assert.True(t, w.SetVisible("enemy-1", false))
	assert.False(t, w.SetBox("ghost", AABB{}))

	o, ok := w.Get("enemy-1")
	require.True(t, ok)
	assert.False(t, o.Visible)

	w.Remove("enemy-1")
	assert.Equal(t, 0, w.Len())
}
