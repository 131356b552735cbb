package scenario

import (
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/atlascore/component"
	"github.com/lixenwraith/atlascore/core"
	"github.com/lixenwraith/atlascore/engine"
	"github.com/lixenwraith/atlascore/physics"
	"github.com/lixenwraith/atlascore/vmath"
)

const (
	stressBodies = 2000
	stressSeed   = 42
	stressSpawn  = 40.0
	stressSpeed  = 10.0
)

var stressWrap = vmath.AABB{MinX: -50, MinY: -50, MaxX: 50, MaxY: 50}

type stressTest struct {
	base
}

// NewStressTest scatters unit boxes with random velocities in an open field that wraps at its edges
func NewStressTest() Scenario {
	return &stressTest{base{name: "stress", bounds: stressWrap}}
}

func (s *stressTest) Setup(w *engine.World, deps Deps) error {
	if w == nil {
		return errNilWorld
	}
	s.install(w, deps, physics.DefaultSettings(), component.EnvironmentForces{GravityY: -9.81, Drag: 0.01})

	rng := rand.New(rand.NewPCG(stressSeed, stressSeed))
	between := func(lo, hi float64) float64 { return lo + rng.Float64()*(hi-lo) }
	for i := 0; i < stressBodies; i++ {
		pos := mgl64.Vec2{between(-stressSpawn, stressSpawn), between(-stressSpawn, stressSpawn)}
		SpawnBox(w, pos, 1, 1, Body{
			Mass:     1,
			Velocity: mgl64.Vec2{between(-stressSpeed, stressSpeed), between(-stressSpeed, stressSpeed)},
		})
	}

	s.logSummary(w)
	return nil
}

// Step wraps bodies that left the field to the opposite edge
func (s *stressTest) Step(w *engine.World, _ float64) {
	engine.ForEach(w, func(_ core.Entity, tf *component.TransformComponent) {
		p := &tf.Position
		switch {
		case p[0] < stressWrap.MinX:
			p[0] = stressWrap.MaxX
		case p[0] > stressWrap.MaxX:
			p[0] = stressWrap.MinX
		}
		switch {
		case p[1] < stressWrap.MinY:
			p[1] = stressWrap.MaxY
		case p[1] > stressWrap.MaxY:
			p[1] = stressWrap.MinY
		}
	})
}
