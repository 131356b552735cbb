package scenario

import (
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/atlascore/component"
	"github.com/lixenwraith/atlascore/core"
	"github.com/lixenwraith/atlascore/engine"
	"github.com/lixenwraith/atlascore/physics"
	"github.com/lixenwraith/atlascore/vmath"
)

const (
	planetG          = 100.0
	planetStarMass   = 1000.0
	planetStarRadius = 2.0
	planetMinDist    = 0.1

	planetCount  = 100
	planetRadius = 0.5
	planetSeed   = 42

	// Orbit radii keep circular speeds sqrt(G·M/r) under parameter.MaxLinearSpeed
	planetOrbitMin = 42.0
	planetOrbitMax = 70.0
)

// PlanetaryGravitySystem pulls every dynamic body toward a fixed point mass
// Bodies within MinDistance of the center are left alone
type PlanetaryGravitySystem struct {
	Center      mgl64.Vec2
	G           float64
	Mass        float64
	MinDistance float64
}

func NewPlanetaryGravitySystem(g, mass float64) *PlanetaryGravitySystem {
	return &PlanetaryGravitySystem{G: g, Mass: mass, MinDistance: planetMinDist}
}

// Update adds G·M/d² toward the center to each dynamic body's velocity over dt
func (s *PlanetaryGravitySystem) Update(w *engine.World, dt float64) {
	if !vmath.IsFinite(dt) || dt <= 0 {
		return
	}
	gm := s.G * s.Mass
	engine.View2(w, func(_ core.Entity, tf *component.TransformComponent, rb *component.RigidBodyComponent) {
		if rb.IsStatic() {
			return
		}
		delta := s.Center.Sub(tf.Position)
		distSq := vmath.LengthSq(delta)
		dist := math.Sqrt(distSq)
		if dist <= s.MinDistance {
			return
		}
		rb.Velocity = rb.Velocity.Add(delta.Mul(gm / (distSq * dist) * dt))
	})
}

type planetary struct {
	base
	gravity *PlanetaryGravitySystem
}

// NewPlanetaryGravity orbits a ring of planets around a static star in empty space
func NewPlanetaryGravity() Scenario {
	return &planetary{base: base{name: "planetary", bounds: vmath.AABB{MinX: -75, MinY: -75, MaxX: 75, MaxY: 75}}}
}

// Gravity returns the attractor registered by Setup
func (p *planetary) Gravity() *PlanetaryGravitySystem {
	return p.gravity
}

func (p *planetary) Setup(w *engine.World, deps Deps) error {
	if w == nil {
		return errNilWorld
	}
	settings := physics.DefaultSettings()
	settings.Substeps = 8
	p.install(w, deps, settings, component.EnvironmentForces{})

	// Runs after physics each frame
	p.gravity = NewPlanetaryGravitySystem(planetG, planetStarMass)
	w.AddSystem(p.gravity)

	SpawnCircle(w, p.gravity.Center, planetStarRadius, Body{})

	rng := rand.New(rand.NewPCG(planetSeed, planetSeed))
	between := func(lo, hi float64) float64 { return lo + rng.Float64()*(hi-lo) }
	gm := planetG * planetStarMass
	for i := 0; i < planetCount; i++ {
		angle := between(0, 2*math.Pi)
		r := between(planetOrbitMin, planetOrbitMax)
		sin, cos := math.Sincos(angle)
		speed := math.Sqrt(gm / r)

		SpawnCircle(w, p.gravity.Center.Add(mgl64.Vec2{cos * r, sin * r}), planetRadius, Body{
			Mass:        between(0.5, 2),
			Restitution: 0.8,
			Velocity:    mgl64.Vec2{-sin * speed, cos * speed},
		})
	}

	p.logSummary(w)
	return nil
}
