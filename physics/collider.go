package physics

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/atlascore/component"
	"github.com/lixenwraith/atlascore/core"
	"github.com/lixenwraith/atlascore/engine"
	"github.com/lixenwraith/atlascore/vmath"
)

// ShapeKind selects the narrowphase test for a collider
type ShapeKind uint8

const (
	ShapeBox ShapeKind = iota
	ShapeCircle
)

// Collider is the broadphase input: bounds plus the narrowphase shape
type Collider struct {
	Entity core.Entity
	Bounds vmath.AABB
	Shape  ShapeKind
	Center mgl64.Vec2
	Radius float64
}

// BoxCollider wraps an AABB as a box-shaped collider
func BoxCollider(e core.Entity, bounds vmath.AABB) Collider {
	return Collider{Entity: e, Bounds: bounds, Shape: ShapeBox, Center: bounds.Center()}
}

// CircleCollider builds a circle collider with bounds center ± radius
func CircleCollider(e core.Entity, center mgl64.Vec2, radius float64) Collider {
	return Collider{
		Entity: e,
		Bounds: vmath.AABBFromCircle(center, radius),
		Shape:  ShapeCircle,
		Center: center,
		Radius: radius,
	}
}

// leverArm returns the contact lever used for angular response
func (c *Collider) leverArm() float64 {
	if c.Shape == ShapeCircle {
		return c.Radius
	}
	return c.Bounds.HalfDiagonal()
}

// SyncDynamicAABBs re-centers the AABB of each dynamic body on its transform, preserving extents
// Static bodies keep their authored bounds
func SyncDynamicAABBs(w *engine.World) {
	bodies, ok := engine.LookupStore[component.RigidBodyComponent](w)
	if !ok {
		return
	}
	engine.View2(w, func(e core.Entity, box *component.AABBComponent, tf *component.TransformComponent) {
		rb, ok := bodies.Get(e)
		if !ok || rb.InvMass == 0 {
			return
		}
		box.AABB = box.AABB.Recentered(tf.Position)
	})
}

// GatherColliders appends one collider per AABB entity, then one per circle entity without an AABB
// An entity with both keeps the AABB as its broadphase bounds and the circle as its narrowphase shape
func GatherColliders(w *engine.World, out []Collider) []Collider {
	out = out[:0]
	transforms, _ := engine.LookupStore[component.TransformComponent](w)
	circles, _ := engine.LookupStore[component.CircleColliderComponent](w)

	circleCenter := func(e core.Entity, c *component.CircleColliderComponent, fallback mgl64.Vec2) mgl64.Vec2 {
		if transforms != nil {
			if tf, ok := transforms.Get(e); ok {
				return c.Center(tf.Position)
			}
		}
		return fallback
	}

	if boxes, ok := engine.LookupStore[component.AABBComponent](w); ok {
		boxes.ForEach(func(e core.Entity, box *component.AABBComponent) {
			col := BoxCollider(e, box.AABB)
			if circles != nil {
				if c, ok := circles.Get(e); ok {
					col.Shape = ShapeCircle
					col.Center = circleCenter(e, c, box.AABB.Center())
					col.Radius = c.Radius
				}
			}
			out = append(out, col)
		})
	}

	if circles != nil {
		boxes, _ := engine.LookupStore[component.AABBComponent](w)
		circles.ForEach(func(e core.Entity, c *component.CircleColliderComponent) {
			if boxes != nil && boxes.Has(e) {
				return
			}
			if transforms == nil || !transforms.Has(e) {
				return
			}
			out = append(out, CircleCollider(e, circleCenter(e, c, mgl64.Vec2{}), c.Radius))
		})
	}
	return out
}
