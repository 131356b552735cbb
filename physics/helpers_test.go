package physics

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/atlascore/component"
	"github.com/lixenwraith/atlascore/core"
	"github.com/lixenwraith/atlascore/engine"
	"github.com/lixenwraith/atlascore/vmath"
)

// addBox creates a box body; mass 0 makes it static
func addBox(w *engine.World, pos mgl64.Vec2, halfW, halfH, mass float64) core.Entity {
	e := w.CreateEntity()
	engine.AddComponent(w, e, component.TransformComponent{Position: pos})
	rb := component.RigidBodyComponent{Mass: mass}
	EnsureDerivedMass(&rb)
	engine.AddComponent(w, e, rb)
	engine.AddComponent(w, e, component.AABBComponent{AABB: vmath.AABBFromCenter(pos, halfW, halfH)})
	return e
}

// addBall creates a circle body without an explicit AABB
func addBall(w *engine.World, pos mgl64.Vec2, radius, mass float64) core.Entity {
	e := w.CreateEntity()
	engine.AddComponent(w, e, component.TransformComponent{Position: pos})
	rb := component.RigidBodyComponent{Mass: mass}
	EnsureDerivedMass(&rb)
	ConfigureCircleInertia(&rb, radius)
	engine.AddComponent(w, e, rb)
	engine.AddComponent(w, e, component.CircleColliderComponent{Radius: radius})
	return e
}

func body(w *engine.World, e core.Entity) *component.RigidBodyComponent {
	rb, _ := engine.GetComponent[component.RigidBodyComponent](w, e)
	return rb
}

func pose(w *engine.World, e core.Entity) *component.TransformComponent {
	tf, _ := engine.GetComponent[component.TransformComponent](w, e)
	return tf
}
