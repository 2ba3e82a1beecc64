package scene

import (
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// Kind classifies a scene node the way the renderer's graph does
type Kind uint8

const (
	KindMesh Kind = iota
	KindLight
	KindCamera
	KindGroup
)

// Object is one node of the scene
type Object struct {
	ID   string
	Kind Kind

	// Owner is the root of the hierarchy this node belongs to ("weapon", "player")
	Owner string

	Visible     bool
	HasGeometry bool
	Interactive bool // Tagged as a gameplay entity

	Box AABB
}

// Intersection is one ray hit with the node tags copied out
type Intersection struct {
	ObjectID string
	Point    mgl64.Vec3
	Distance float64

	IsLight     bool
	IsCamera    bool
	Owner       string
	Visible     bool
	HasGeometry bool
	Interactive bool
}

// Intersector answers ray queries, nearest hit first
type Intersector interface {
	IntersectRay(r Ray, maxDistance float64) []Intersection
}

// World is an in-memory scene of boxes
// Thread-Safety: none. Owned by the frame loop
type World struct {
	objects map[string]*Object
}

// NewWorld creates an empty scene
func NewWorld() *World {
	return &World{objects: make(map[string]*Object)}
}

// Upsert inserts or replaces a node
func (w *World) Upsert(obj Object) {
	o := obj
	w.objects[obj.ID] = &o
}

// SetBox moves an existing node, returns false if absent
func (w *World) SetBox(id string, box AABB) bool {
	o, ok := w.objects[id]
	if !ok {
		return false
	}
	o.Box = box
	return true
}

// SetVisible toggles a node's visibility, returns false if absent
func (w *World) SetVisible(id string, visible bool) bool {
	o, ok := w.objects[id]
	if !ok {
		return false
	}
	o.Visible = visible
	return true
}

// Remove deletes a node
func (w *World) Remove(id string) {
	delete(w.objects, id)
}

// Get returns a copy of a node
func (w *World) Get(id string) (Object, bool) {
	o, ok := w.objects[id]
	if !ok {
		return Object{}, false
	}
	return *o, true
}

// Len returns the node count
func (w *World) Len() int {
	return len(w.objects)
}

// Objects returns copies of all nodes in ID order
func (w *World) Objects() []Object {
	out := make([]Object, 0, len(w.objects))
	for _, o := range w.objects {
		out = append(out, *o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// IntersectRay implements Intersector
// Every node is tested regardless of tags; filtering is the caller's policy
func (w *World) IntersectRay(r Ray, maxDistance float64) []Intersection {
	var hits []Intersection
	for _, o := range w.objects {
		t, ok := o.Box.IntersectRay(r)
		if !ok {
			continue
		}
		dist := t * r.Dir.Len()
		if maxDistance > 0 && dist > maxDistance {
			continue
		}
		hits = append(hits, Intersection{
			ObjectID:    o.ID,
			Point:       r.At(t),
			Distance:    dist,
			IsLight:     o.Kind == KindLight,
			IsCamera:    o.Kind == KindCamera,
			Owner:       o.Owner,
			Visible:     o.Visible,
			HasGeometry: o.HasGeometry,
			Interactive: o.Interactive,
		})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].Distance != hits[j].Distance {
			return hits[i].Distance < hits[j].Distance
		}
		return hits[i].ObjectID < hits[j].ObjectID
	})
	return hits
}
