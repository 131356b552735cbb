package scenario

import (
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/atlascore/component"
	"github.com/lixenwraith/atlascore/engine"
	"github.com/lixenwraith/atlascore/physics"
	"github.com/lixenwraith/atlascore/vmath"
)

const (
	fluidParticles = 100
	fluidRadius    = 0.3
	fluidSeed      = 123
	// Walls are thick so fast particles cannot tunnel through in one substep
	fluidWallThickness = 100.0
)

type particleFluid struct {
	base
}

// NewParticleFluid drops bouncy particles into a closed container
// The particle count keeps the broadphase above its parallel threshold
func NewParticleFluid() Scenario {
	return &particleFluid{base{name: "fluid", bounds: vmath.AABB{MinX: -20, MinY: -15, MaxX: 20, MaxY: 25}}}
}

func (f *particleFluid) Setup(w *engine.World, deps Deps) error {
	if w == nil {
		return errNilWorld
	}
	settings := physics.DefaultSettings()
	settings.Substeps = 8
	f.install(w, deps, settings, component.EnvironmentForces{GravityY: -9.81})

	// Inner faces at x = ±18.5, y = -13.5 and 23.5
	half := fluidWallThickness / 2
	SpawnStaticBox(w, mgl64.Vec2{-18.5 - half, 5}, fluidWallThickness, 40, Body{})
	SpawnStaticBox(w, mgl64.Vec2{18.5 + half, 5}, fluidWallThickness, 40, Body{})
	SpawnStaticBox(w, mgl64.Vec2{0, -13.5 - half}, 40, fluidWallThickness, Body{})
	SpawnStaticBox(w, mgl64.Vec2{0, 23.5 + half}, 40, fluidWallThickness, Body{})

	rng := rand.New(rand.NewPCG(fluidSeed, fluidSeed))
	particle := Body{Mass: 0.1, Restitution: 0.9}
	for i := 0; i < fluidParticles; i++ {
		pos := mgl64.Vec2{-15 + rng.Float64()*30, -5 + rng.Float64()*20}
		SpawnBall(w, pos, fluidRadius, particle)
	}

	f.logSummary(w)
	return nil
}
