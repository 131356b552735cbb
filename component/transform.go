package component

import "github.com/go-gl/mathgl/mgl64"

// TransformComponent is the world pose of an entity
// Mutated only by integration and the solvers
type TransformComponent struct {
	Position mgl64.Vec2
	Rotation float64 // Radians
}
