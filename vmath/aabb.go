package vmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// AABB is an axis-aligned bounding box in world units
type AABB struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// AABBFromCenter builds a box from center and half extents
func AABBFromCenter(center mgl64.Vec2, halfW, halfH float64) AABB {
	return AABB{
		MinX: center[0] - halfW,
		MinY: center[1] - halfH,
		MaxX: center[0] + halfW,
		MaxY: center[1] + halfH,
	}
}

// AABBFromCircle returns the bounds of a circle
func AABBFromCircle(center mgl64.Vec2, radius float64) AABB {
	r := math.Max(0, radius)
	return AABBFromCenter(center, r, r)
}

// Overlaps reports whether a and b intersect; touching edges count as overlap
func (a AABB) Overlaps(b AABB) bool {
	return !(a.MaxX < b.MinX || b.MaxX < a.MinX || a.MaxY < b.MinY || b.MaxY < a.MinY)
}

// Intersection returns the overlap rectangle, valid only when a and b overlap
func (a AABB) Intersection(b AABB) AABB {
	return AABB{
		MinX: math.Max(a.MinX, b.MinX),
		MinY: math.Max(a.MinY, b.MinY),
		MaxX: math.Min(a.MaxX, b.MaxX),
		MaxY: math.Min(a.MaxY, b.MaxY),
	}
}

// Center returns the box midpoint
func (a AABB) Center() mgl64.Vec2 {
	return mgl64.Vec2{(a.MinX + a.MaxX) * 0.5, (a.MinY + a.MaxY) * 0.5}
}

// HalfExtents returns non-negative half width and half height
func (a AABB) HalfExtents() (halfW, halfH float64) {
	return math.Max(0, (a.MaxX-a.MinX)*0.5), math.Max(0, (a.MaxY-a.MinY)*0.5)
}

// HalfDiagonal is the distance from center to a corner
func (a AABB) HalfDiagonal() float64 {
	hw, hh := a.HalfExtents()
	return math.Sqrt(hw*hw + hh*hh)
}

// Recentered keeps the extents and moves the box to center
func (a AABB) Recentered(center mgl64.Vec2) AABB {
	hw, hh := a.HalfExtents()
	return AABBFromCenter(center, hw, hh)
}

// ClosestPoint clamps p into the box
func (a AABB) ClosestPoint(p mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Vec2{Clamp(p[0], a.MinX, a.MaxX), Clamp(p[1], a.MinY, a.MaxY)}
}

// Contains reports whether p lies inside or on the boundary
func (a AABB) Contains(p mgl64.Vec2) bool {
	return p[0] >= a.MinX && p[0] <= a.MaxX && p[1] >= a.MinY && p[1] <= a.MaxY
}
