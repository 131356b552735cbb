package scenario

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/atlascore/component"
	"github.com/lixenwraith/atlascore/core"
	"github.com/lixenwraith/atlascore/engine"
	"github.com/lixenwraith/atlascore/physics"
	"github.com/lixenwraith/atlascore/vmath"
)

const (
	wreckWallCols   = 6
	wreckWallRows   = 8
	wreckBoxSize    = 1.5
	wreckChainLinks = 10
	wreckLinkLength = 1.5
	wreckBallRadius = 2.0
	wreckBallMass   = 50.0
)

type wreckingBall struct {
	base
	ball core.Entity
}

// NewWreckingBall swings a heavy ball on a rigid chain into a wall of boxes
func NewWreckingBall() Scenario {
	return &wreckingBall{base: base{name: "wrecking", bounds: vmath.AABB{MinX: -20, MinY: -12, MaxX: 20, MaxY: 18}}}
}

func (s *wreckingBall) Setup(w *engine.World, deps Deps) error {
	if w == nil {
		return errNilWorld
	}
	settings := physics.DefaultSettings()
	settings.Substeps = 16
	settings.ConstraintIterations = 16
	s.install(w, deps, settings, component.EnvironmentForces{GravityY: -15, Drag: 0.01})

	SpawnStaticBox(w, mgl64.Vec2{0, -10}, 80, 2, Body{Friction: 0.8})

	box := Body{Mass: 1, Friction: 0.6}
	for row := 0; row < wreckWallRows; row++ {
		for col := 0; col < wreckWallCols; col++ {
			pos := mgl64.Vec2{5 + float64(col)*wreckBoxSize, -9 + float64(row)*wreckBoxSize + wreckBoxSize/2}
			SpawnBox(w, pos, wreckBoxSize, wreckBoxSize, box)
		}
	}

	anchor := mgl64.Vec2{-10, 10}
	prev := SpawnAnchor(w, anchor)
	for i := 0; i < wreckChainLinks; i++ {
		pos := anchor.Add(mgl64.Vec2{float64(i + 1), -float64(i + 1)})
		var link core.Entity
		if i == wreckChainLinks-1 {
			link = SpawnCircle(w, pos, wreckBallRadius, Body{Mass: wreckBallMass, Restitution: 0.2, Friction: 0.3})
			s.ball = link
		} else {
			link = SpawnCircle(w, pos, 0.2, Body{Mass: 0.5})
		}
		SpawnJoint(w, prev, link, wreckLinkLength, 0)
		prev = link
	}

	s.logSummary(w)
	return nil
}

// Ball returns the wrecking ball entity after Setup
func (s *wreckingBall) Ball() core.Entity {
	return s.ball
}
