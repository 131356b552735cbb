package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// collide computes the contact normal (A toward B) and penetration for two colliders with overlapping bounds
// Returns false when the shapes themselves do not touch
func collide(a, b *Collider) (mgl64.Vec2, float64, bool) {
	switch {
	case a.Shape == ShapeCircle && b.Shape == ShapeCircle:
		return circleCircle(a, b)
	case a.Shape == ShapeCircle:
		n, pen, ok := circleBox(a, b)
		return n.Mul(-1), pen, ok
	case b.Shape == ShapeCircle:
		return circleBox(b, a)
	default:
		return boxBox(a, b)
	}
}

// boxBox resolves along the axis of least overlap
func boxBox(a, b *Collider) (mgl64.Vec2, float64, bool) {
	overlapX := math.Min(a.Bounds.MaxX, b.Bounds.MaxX) - math.Max(a.Bounds.MinX, b.Bounds.MinX)
	overlapY := math.Min(a.Bounds.MaxY, b.Bounds.MaxY) - math.Max(a.Bounds.MinY, b.Bounds.MinY)
	if overlapX < 0 || overlapY < 0 {
		return mgl64.Vec2{}, 0, false
	}

	ca := a.Bounds.Center()
	cb := b.Bounds.Center()
	if overlapX < overlapY {
		if cb[0] < ca[0] {
			return mgl64.Vec2{-1, 0}, overlapX, true
		}
		return mgl64.Vec2{1, 0}, overlapX, true
	}
	if cb[1] < ca[1] {
		return mgl64.Vec2{0, -1}, overlapY, true
	}
	return mgl64.Vec2{0, 1}, overlapY, true
}

func circleCircle(a, b *Collider) (mgl64.Vec2, float64, bool) {
	delta := b.Center.Sub(a.Center)
	radii := a.Radius + b.Radius
	distSq := delta.Dot(delta)
	if distSq > radii*radii {
		return mgl64.Vec2{}, 0, false
	}
	dist := math.Sqrt(distSq)
	if dist == 0 {
		return mgl64.Vec2{1, 0}, radii, true
	}
	return delta.Mul(1 / dist), radii - dist, true
}

// circleBox returns the normal pointing from the box toward the circle
func circleBox(circle, box *Collider) (mgl64.Vec2, float64, bool) {
	if !box.Bounds.Contains(circle.Center) {
		closest := box.Bounds.ClosestPoint(circle.Center)
		delta := circle.Center.Sub(closest)
		distSq := delta.Dot(delta)
		if distSq > circle.Radius*circle.Radius {
			return mgl64.Vec2{}, 0, false
		}
		dist := math.Sqrt(distSq)
		if dist == 0 {
			return mgl64.Vec2{0, 1}, circle.Radius, true
		}
		return delta.Mul(1 / dist), circle.Radius - dist, true
	}

	// Center inside the box: push out through the nearest face
	p := circle.Center
	faces := [4]struct {
		dist   float64
		normal mgl64.Vec2
	}{
		{p[0] - box.Bounds.MinX, mgl64.Vec2{-1, 0}},
		{box.Bounds.MaxX - p[0], mgl64.Vec2{1, 0}},
		{p[1] - box.Bounds.MinY, mgl64.Vec2{0, -1}},
		{box.Bounds.MaxY - p[1], mgl64.Vec2{0, 1}},
	}
	best := 0
	for i := 1; i < len(faces); i++ {
		if faces[i].dist < faces[best].dist {
			best = i
		}
	}
	return faces[best].normal, faces[best].dist + circle.Radius, true
}
