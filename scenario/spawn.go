package scenario

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/atlascore/component"
	"github.com/lixenwraith/atlascore/core"
	"github.com/lixenwraith/atlascore/engine"
	"github.com/lixenwraith/atlascore/physics"
	"github.com/lixenwraith/atlascore/vmath"
)

// Body describes mass and surface properties of a spawned entity
// Mass <= 0 spawns a static body
type Body struct {
	Mass            float64
	Restitution     float64
	Friction        float64
	AngularDrag     float64
	AngularFriction float64
	Velocity        mgl64.Vec2
}

func addBody(w *engine.World, pos mgl64.Vec2, b Body) (core.Entity, *component.RigidBodyComponent) {
	e := w.CreateEntity()
	engine.AddComponent(w, e, component.TransformComponent{Position: pos})
	rb := engine.AddComponent(w, e, component.RigidBodyComponent{
		Velocity:        b.Velocity,
		Mass:            b.Mass,
		Restitution:     b.Restitution,
		Friction:        b.Friction,
		AngularDrag:     b.AngularDrag,
		AngularFriction: b.AngularFriction,
		LastPosition:    pos,
	})
	physics.EnsureDerivedMass(rb)
	if rb.IsStatic() {
		rb.Velocity = mgl64.Vec2{}
	}
	return e, rb
}

// SpawnBox creates an axis-aligned box body centered on center
func SpawnBox(w *engine.World, center mgl64.Vec2, width, height float64, b Body) core.Entity {
	e, rb := addBody(w, center, b)
	physics.ConfigureBoxInertia(rb, width, height)
	engine.AddComponent(w, e, component.AABBComponent{AABB: vmath.AABBFromCenter(center, width/2, height/2)})
	return e
}

// SpawnStaticBox creates an immovable box; b.Mass is ignored
func SpawnStaticBox(w *engine.World, center mgl64.Vec2, width, height float64, b Body) core.Entity {
	b.Mass = 0
	return SpawnBox(w, center, width, height, b)
}

// SpawnBall creates a circle body that also carries explicit AABB bounds
func SpawnBall(w *engine.World, center mgl64.Vec2, radius float64, b Body) core.Entity {
	e := SpawnCircle(w, center, radius, b)
	engine.AddComponent(w, e, component.AABBComponent{AABB: vmath.AABBFromCircle(center, radius)})
	return e
}

// SpawnCircle creates a circle body whose bounds are derived from its radius
func SpawnCircle(w *engine.World, center mgl64.Vec2, radius float64, b Body) core.Entity {
	e, rb := addBody(w, center, b)
	physics.ConfigureCircleInertia(rb, radius)
	engine.AddComponent(w, e, component.CircleColliderComponent{Radius: radius})
	return e
}

// SpawnAnchor creates a static, collider-less joint anchor
func SpawnAnchor(w *engine.World, pos mgl64.Vec2) core.Entity {
	e, _ := addBody(w, pos, Body{})
	return e
}

// SpawnJoint links a and b; target <= 0 uses their current separation
func SpawnJoint(w *engine.World, a, b core.Entity, target, compliance float64) core.Entity {
	if target <= 0 {
		ta, okA := engine.GetComponent[component.TransformComponent](w, a)
		tb, okB := engine.GetComponent[component.TransformComponent](w, b)
		if okA && okB {
			target = tb.Position.Sub(ta.Position).Len()
		}
	}
	e := w.CreateEntity()
	engine.AddComponent(w, e, component.DistanceJointComponent{
		EntityA:        a,
		EntityB:        b,
		TargetDistance: target,
		Compliance:     compliance,
	})
	return e
}
