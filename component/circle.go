package component

import "github.com/go-gl/mathgl/mgl64"

// CircleColliderComponent is a circle shape offset from the transform position
type CircleColliderComponent struct {
	Radius float64
	Offset mgl64.Vec2
}

// Center returns the world-space circle center for the given position
func (c *CircleColliderComponent) Center(position mgl64.Vec2) mgl64.Vec2 {
	return position.Add(c.Offset)
}
