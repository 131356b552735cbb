package scenario

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/atlascore/component"
	"github.com/lixenwraith/atlascore/engine"
	"github.com/lixenwraith/atlascore/physics"
	"github.com/lixenwraith/atlascore/vmath"
)

const (
	pendulumLinks      = 5
	pendulumLinkLength = 1.5
	pendulumLinkSize   = 0.4
)

type pendulum struct {
	base
}

// NewPendulum is a horizontal chain of boxes hanging from a static anchor
func NewPendulum() Scenario {
	return &pendulum{base{name: "pendulum", bounds: vmath.AABB{MinX: -10, MinY: -10, MaxX: 10, MaxY: 5}}}
}

func (p *pendulum) Setup(w *engine.World, deps Deps) error {
	if w == nil {
		return errNilWorld
	}
	env := component.EnvironmentForces{GravityY: -9.81, Drag: 0.01}
	p.install(w, deps, physics.DefaultSettings(), env)

	link := Body{Restitution: 0.05, Friction: 0.8, AngularFriction: 0.3, AngularDrag: 0.01}
	prev := SpawnStaticBox(w, mgl64.Vec2{0, 4}, pendulumLinkSize, pendulumLinkSize, link)

	link.Mass = 1
	for i := 0; i < pendulumLinks; i++ {
		next := SpawnBox(w, mgl64.Vec2{float64(i+1) * pendulumLinkLength, 4}, pendulumLinkSize, pendulumLinkSize, link)
		SpawnJoint(w, prev, next, pendulumLinkLength, 0)
		prev = next
	}

	p.logSummary(w)
	return nil
}
