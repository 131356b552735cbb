package component

import "github.com/lixenwraith/atlascore/vmath"

// AABBComponent is the axis-aligned collider of an entity
// Dynamic bodies have it re-centered on their transform every substep, static ones keep their creation bounds
type AABBComponent struct {
	vmath.AABB
}
