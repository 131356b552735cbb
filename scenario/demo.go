package scenario

import (
	"log"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/atlascore/component"
	"github.com/lixenwraith/atlascore/core"
	"github.com/lixenwraith/atlascore/engine"
	"github.com/lixenwraith/atlascore/physics"
	"github.com/lixenwraith/atlascore/vmath"
)

// Arena inner bounds
const (
	demoFloorY   = -9.5
	demoLeftX    = -19.0
	demoRightX   = 19.0
	demoArenaTop = 9.5
)

const (
	demoLinkDist   = 2.0
	demoBallRadius = 1.5
	demoChainCount = 4 // Three links and the ball

	demoBoxSize   = 1.4
	demoTowerLeft = -1.0
	demoTowerCols = 4
	demoTowerRows = 3

	demoParticles = 30
	demoSeed      = 2025

	demoGustPeriod  = 6.0
	demoGustImpulse = 3.0
)

type fullDemo struct {
	base
	wind *WindGustSystem
}

// NewFullDemo combines a chain-swung ball, a box tower on a shelf, bouncing particles and periodic wind gusts
func NewFullDemo() Scenario {
	return &fullDemo{base: base{
		name:   "demo",
		bounds: vmath.AABB{MinX: demoLeftX - 1, MinY: demoFloorY - 0.5, MaxX: demoRightX + 1, MaxY: demoArenaTop + 0.5},
	}}
}

// Wind returns the gust system registered by Setup
func (d *fullDemo) Wind() *WindGustSystem {
	return d.wind
}

func (d *fullDemo) Setup(w *engine.World, deps Deps) error {
	if w == nil {
		return errNilWorld
	}
	settings := physics.DefaultSettings()
	settings.Substeps = 16
	settings.ConstraintIterations = 16
	settings.PositionIterations = 20
	d.install(w, deps, settings, component.EnvironmentForces{GravityY: -9.81, Drag: 0.02})

	// Runs after physics each frame
	d.wind = NewWindGustSystem(demoGustPeriod, demoGustImpulse)
	w.AddSystem(d.wind)

	SpawnStaticBox(w, mgl64.Vec2{0, demoFloorY - 50}, 80, 100, Body{Friction: 0.8})
	SpawnStaticBox(w, mgl64.Vec2{demoLeftX - 50, 0}, 100, 40, Body{})
	SpawnStaticBox(w, mgl64.Vec2{demoRightX + 50, 0}, 100, 40, Body{})
	// Tower shelf, top surface at y = 0
	SpawnStaticBox(w, mgl64.Vec2{2, -1}, 8, 2, Body{Friction: 0.8})

	anchorPos := mgl64.Vec2{-5, 9}
	prev := SpawnAnchor(w, anchorPos)
	for i := 0; i < demoChainCount; i++ {
		// 45° down-left so the chain swings back through the tower
		pos := anchorPos.Sub(mgl64.Vec2{1.41, 1.41}.Mul(float64(i + 1)))
		var link core.Entity
		if i == demoChainCount-1 {
			link = SpawnCircle(w, pos, demoBallRadius, Body{Mass: 25, Restitution: 0.4, Friction: 0.3, AngularDrag: 0.15})
		} else {
			link = SpawnCircle(w, pos, 0.22, Body{Mass: 0.6, Restitution: 0.1})
		}
		SpawnJoint(w, prev, link, demoLinkDist, 0)
		prev = link
	}

	log.Printf("[scenario] demo: building box tower")
	box := Body{Mass: 1.5, Friction: 0.7, Restitution: 0.1, AngularDrag: 0.15}
	for row := 0; row < demoTowerRows; row++ {
		for col := 0; col < demoTowerCols; col++ {
			pos := mgl64.Vec2{
				demoTowerLeft + (float64(col)+0.5)*demoBoxSize,
				(float64(row) + 0.5) * demoBoxSize,
			}
			SpawnBox(w, pos, demoBoxSize, demoBoxSize, box)
		}
	}

	rng := rand.New(rand.NewPCG(demoSeed, demoSeed))
	between := func(lo, hi float64) float64 { return lo + rng.Float64()*(hi-lo) }
	for i := 0; i < demoParticles; i++ {
		pos := mgl64.Vec2{between(demoLeftX+1, -2), between(demoFloorY+0.5, 3)}
		SpawnCircle(w, pos, 0.3, Body{
			Mass:        0.12,
			Restitution: 0.8,
			Friction:    0.05,
			Velocity:    mgl64.Vec2{between(-4, 4), between(2, 10)},
		})
	}

	d.logSummary(w)
	return nil
}
