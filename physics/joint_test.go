package physics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/atlascore/component"
	"github.com/lixenwraith/atlascore/core"
	"github.com/lixenwraith/atlascore/engine"
)

func jointError(w *engine.World) float64 {
	worst := 0.0
	engine.ForEach(w, func(_ core.Entity, j *component.DistanceJointComponent) {
		d := pose(w, j.EntityB).Position.Sub(pose(w, j.EntityA).Position).Len()
		worst = math.Max(worst, math.Abs(d-j.TargetDistance))
	})
	return worst
}

// chain builds a static anchor with two dangling links displaced from their rest lengths
func chain(compliance float64) *engine.World {
	w := engine.NewWorld()
	anchor := addBall(w, mgl64.Vec2{0, 0}, 0.1, 0)
	l1 := addBall(w, mgl64.Vec2{0, -1.5}, 0.2, 1)
	l2 := addBall(w, mgl64.Vec2{0.3, -3.4}, 0.2, 1)
	j := w.CreateEntity()
	engine.AddComponent(w, j, component.DistanceJointComponent{EntityA: anchor, EntityB: l1, TargetDistance: 1, Compliance: compliance})
	j = w.CreateEntity()
	engine.AddComponent(w, j, component.DistanceJointComponent{EntityA: l1, EntityB: l2, TargetDistance: 1, Compliance: compliance})
	return w
}

func TestRigidJointSingleLinkExact(t *testing.T) {
	w := engine.NewWorld()
	anchor := addBall(w, mgl64.Vec2{0, 0}, 0.1, 0)
	link := addBall(w, mgl64.Vec2{3, 0}, 0.2, 1)
	j := w.CreateEntity()
	engine.AddComponent(w, j, component.DistanceJointComponent{EntityA: anchor, EntityB: link, TargetDistance: 2})

	SolveJoints(w, 1.0/60, 1)
	if p := pose(w, anchor).Position; p != (mgl64.Vec2{}) {
		t.Errorf("Anchor moved to %v", p)
	}
	if p := pose(w, link).Position; math.Abs(p[0]-2) > 1e-12 || p[1] != 0 {
		t.Errorf("Expected link at (2,0), got %v", p)
	}
}

func TestRigidJointChainConverges(t *testing.T) {
	slop := DefaultSettings().PenetrationSlop

	prev := math.Inf(1)
	for _, iterations := range []int{1, 4, 16, 100} {
		w := chain(0)
		SolveJoints(w, 1.0/60, iterations)
		e := jointError(w)
		if e > prev+1e-12 {
			t.Errorf("%d iterations: error %v grew from %v", iterations, e, prev)
		}
		prev = e
	}
	if prev > slop {
		t.Errorf("Expected error within %v after 100 iterations, got %v", slop, prev)
	}
}

func TestCompliantJointIsSofter(t *testing.T) {
	build := func(compliance float64) (*engine.World, core.Entity) {
		w := engine.NewWorld()
		anchor := addBall(w, mgl64.Vec2{0, 0}, 0.1, 0)
		link := addBall(w, mgl64.Vec2{3, 0}, 0.2, 1)
		engine.AddComponent(w, w.CreateEntity(), component.DistanceJointComponent{
			EntityA: anchor, EntityB: link, TargetDistance: 2, Compliance: compliance,
		})
		return w, link
	}

	rigid, _ := build(0)
	soft, link := build(1e-3)
	SolveJoints(rigid, 1.0/60, 1)
	SolveJoints(soft, 1.0/60, 1)

	if jointError(rigid) > 1e-12 {
		t.Errorf("Expected rigid link exact, got error %v", jointError(rigid))
	}
	x := pose(soft, link).Position[0]
	if x <= 2 || x >= 3 {
		t.Errorf("Expected soft link partially corrected, got x=%v", x)
	}
}

func TestJointSkipsInvalid(t *testing.T) {
	w := engine.NewWorld()
	a := addBall(w, mgl64.Vec2{0, 0}, 0.1, 0)
	b := addBall(w, mgl64.Vec2{5, 0}, 0.1, 0)
	c := addBall(w, mgl64.Vec2{1, 1}, 0.1, 1)
	ghost := w.CreateEntity()

	for _, jc := range []component.DistanceJointComponent{
		{EntityA: a, EntityB: b, TargetDistance: 1},     // both static
		{EntityA: c, EntityB: ghost, TargetDistance: 1}, // missing transform
		{EntityA: c, EntityB: c, TargetDistance: 1},     // self
	} {
		engine.AddComponent(w, w.CreateEntity(), jc)
	}

	SolveJoints(w, 1.0/60, 8)
	if pose(w, a).Position != (mgl64.Vec2{0, 0}) || pose(w, b).Position != (mgl64.Vec2{5, 0}) {
		t.Error("Static endpoints moved")
	}
	if pose(w, c).Position != (mgl64.Vec2{1, 1}) {
		t.Errorf("Expected c untouched, got %v", pose(w, c).Position)
	}

	SolveJoints(w, math.NaN(), 8)
	SolveJoints(w, 0, 8)
}
