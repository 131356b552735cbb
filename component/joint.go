package component

import "github.com/lixenwraith/atlascore/core"

// DistanceJointComponent keeps two bodies at TargetDistance
// Compliance 0 is rigid; > 0 softens the joint (inverse stiffness, scaled by 1/dt²)
type DistanceJointComponent struct {
	EntityA        core.Entity
	EntityB        core.Entity
	TargetDistance float64
	Compliance     float64
}
