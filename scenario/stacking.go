package scenario

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/atlascore/component"
	"github.com/lixenwraith/atlascore/engine"
	"github.com/lixenwraith/atlascore/physics"
	"github.com/lixenwraith/atlascore/vmath"
)

const (
	stackRows    = 6
	stackBoxSize = 1.2
)

type stacking struct {
	base
}

// NewStacking is a box pyramid resting on a static floor
func NewStacking() Scenario {
	return &stacking{base{name: "stacking", bounds: vmath.AABB{MinX: -10, MinY: -5, MaxX: 10, MaxY: 15}}}
}

func (s *stacking) Setup(w *engine.World, deps Deps) error {
	if w == nil {
		return errNilWorld
	}
	settings := physics.Settings{
		Substeps:              24,
		PositionIterations:    32,
		VelocityIterations:    18,
		ConstraintIterations:  12,
		PenetrationSlop:       physics.DefaultSettings().PenetrationSlop,
		CorrectionPercent:     0.3,
		MaxPositionCorrection: 0.1,
	}
	s.install(w, deps, settings, component.EnvironmentForces{GravityY: -9.81, Drag: 0.05})

	SpawnStaticBox(w, mgl64.Vec2{0, -4}, 18, 1, Body{Friction: 0.8})

	// Boxes are slightly smaller than their pitch so neighbours start apart
	box := Body{Mass: 1, Friction: 0.6, Restitution: 0.05}
	side := stackBoxSize * 0.9
	for row := 0; row < stackRows; row++ {
		cols := stackRows - row
		startX := -float64(cols-1) * stackBoxSize * 0.5
		y := -3.0 + float64(row)*stackBoxSize
		for col := 0; col < cols; col++ {
			SpawnBox(w, mgl64.Vec2{startX + float64(col)*stackBoxSize, y}, side, side, box)
		}
	}

	s.logSummary(w)
	return nil
}
