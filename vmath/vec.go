package vmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Clamp restricts v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// LengthSq returns |v|²
func LengthSq(v mgl64.Vec2) float64 {
	return v[0]*v[0] + v[1]*v[1]
}

// ClampLength scales v down to maxLen when longer, direction preserved
func ClampLength(v mgl64.Vec2, maxLen float64) mgl64.Vec2 {
	lenSq := LengthSq(v)
	if lenSq <= maxLen*maxLen {
		return v
	}
	l := math.Sqrt(lenSq)
	return mgl64.Vec2{v[0] / l * maxLen, v[1] / l * maxLen}
}

// Cross2 is the scalar z component of the 3D cross product of a and b
func Cross2(a, b mgl64.Vec2) float64 {
	return a[0]*b[1] - a[1]*b[0]
}

// IsFinite reports whether f is neither NaN nor infinite
func IsFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
