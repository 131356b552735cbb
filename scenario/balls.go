package scenario

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/atlascore/component"
	"github.com/lixenwraith/atlascore/engine"
	"github.com/lixenwraith/atlascore/physics"
	"github.com/lixenwraith/atlascore/vmath"
)

type ballShowcase struct {
	base
}

// NewBallShowcase runs three lanes: a head-on hit, a dropped hammer onto a cluster, and a glancing strike
func NewBallShowcase() Scenario {
	return &ballShowcase{base{name: "balls", bounds: vmath.AABB{MinX: -12, MinY: -6, MaxX: 12, MaxY: 8}}}
}

type ballDesc struct {
	pos         mgl64.Vec2
	radius      float64
	mass        float64
	vel         mgl64.Vec2
	restitution float64
	friction    float64
}

func (b *ballShowcase) Setup(w *engine.World, deps Deps) error {
	if w == nil {
		return errNilWorld
	}
	settings := physics.Settings{
		Substeps:              20,
		PositionIterations:    28,
		VelocityIterations:    16,
		ConstraintIterations:  12,
		PenetrationSlop:       physics.DefaultSettings().PenetrationSlop,
		CorrectionPercent:     0.25,
		MaxPositionCorrection: 0.08,
	}
	b.install(w, deps, settings, component.EnvironmentForces{GravityY: -12, Drag: 0.05})

	bounds := b.bounds
	wall := Body{Friction: 0.9, Restitution: 0.05}
	height := bounds.MaxY - bounds.MinY
	midY := (bounds.MinY + bounds.MaxY) / 2
	SpawnStaticBox(w, mgl64.Vec2{bounds.MinX + 0.4, midY}, 0.4, height, wall)
	SpawnStaticBox(w, mgl64.Vec2{bounds.MaxX - 0.4, midY}, 0.4, height, wall)

	platform := Body{Friction: 0.9, Restitution: 0.1}
	SpawnStaticBox(w, mgl64.Vec2{-8, -3}, 6, 0.5, platform)
	SpawnStaticBox(w, mgl64.Vec2{-0.5, -3.6}, 6, 0.8, platform)
	SpawnStaticBox(w, mgl64.Vec2{8, -1}, 5, 0.4, platform)

	const baseY = -2.9
	balls := []ballDesc{
		// Lane 1: horizontal hit
		{mgl64.Vec2{-10.2, -1.7}, 0.65, 1.3, mgl64.Vec2{3.8, -0.1}, 0.7, 0.3},
		{mgl64.Vec2{-7, -1.7}, 0.65, 1.2, mgl64.Vec2{}, 0.6, 0.35},
		// Lane 2: hammer onto a cluster
		{mgl64.Vec2{-1, baseY}, 0.55, 1, mgl64.Vec2{}, 0.35, 0.65},
		{mgl64.Vec2{0, baseY}, 0.55, 1, mgl64.Vec2{}, 0.35, 0.65},
		{mgl64.Vec2{1, baseY}, 0.55, 1, mgl64.Vec2{}, 0.35, 0.65},
		{mgl64.Vec2{-0.5, baseY + 0.8}, 0.55, 1, mgl64.Vec2{}, 0.35, 0.65},
		{mgl64.Vec2{0.5, baseY + 0.8}, 0.55, 1, mgl64.Vec2{}, 0.35, 0.65},
		{mgl64.Vec2{0, 1.2}, 0.7, 2.5, mgl64.Vec2{0, -1.5}, 0.5, 0.25},
		// Lane 3: glancing strike
		{mgl64.Vec2{7.5, 0}, 0.6, 1.2, mgl64.Vec2{}, 0.7, 0.2},
		{mgl64.Vec2{9, 0.7}, 0.6, 1.2, mgl64.Vec2{}, 0.7, 0.2},
		{mgl64.Vec2{6, 0.4}, 0.55, 1, mgl64.Vec2{4.2, -0.35}, 0.55, 0.2},
	}
	for _, d := range balls {
		SpawnBall(w, d.pos, d.radius, Body{
			Mass:            d.mass,
			Restitution:     d.restitution,
			Friction:        d.friction,
			AngularFriction: 0.25,
			AngularDrag:     0.02,
			Velocity:        d.vel,
		})
	}

	b.logSummary(w)
	return nil
}
