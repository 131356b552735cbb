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
	clothRows     = 10
	clothCols     = 10
	clothSpacing  = 1.0
	clothParticle = 0.2 // AABB edge of one lattice node
)

// Top-left node; rows hang downward from the pinned row
var clothOrigin = mgl64.Vec2{0, 4}

type cloth struct {
	base
}

// NewCloth hangs a lattice of particles from a pinned top row, linked right and down by rigid joints,
// and blows it sideways with a steady wind
func NewCloth() Scenario {
	return &cloth{base{name: "cloth", bounds: vmath.AABB{MinX: -5, MinY: -15, MaxX: 15, MaxY: 5}}}
}

func (c *cloth) Setup(w *engine.World, deps Deps) error {
	if w == nil {
		return errNilWorld
	}
	// Heavier drag keeps the fluttering bounded
	c.install(w, deps, physics.DefaultSettings(), component.EnvironmentForces{GravityY: -9.81, WindX: 3, Drag: 0.05})

	var grid [clothRows][clothCols]core.Entity
	for r := 0; r < clothRows; r++ {
		node := Body{Mass: 1}
		if r == 0 {
			node.Mass = 0
		}
		for col := 0; col < clothCols; col++ {
			pos := clothOrigin.Add(mgl64.Vec2{float64(col) * clothSpacing, -float64(r) * clothSpacing})
			grid[r][col] = SpawnBox(w, pos, clothParticle, clothParticle, node)
		}
	}

	for r := 0; r < clothRows; r++ {
		for col := 0; col < clothCols; col++ {
			if col < clothCols-1 {
				SpawnJoint(w, grid[r][col], grid[r][col+1], clothSpacing, 0)
			}
			if r < clothRows-1 {
				SpawnJoint(w, grid[r][col], grid[r+1][col], clothSpacing, 0)
			}
		}
	}

	c.logSummary(w)
	return nil
}
