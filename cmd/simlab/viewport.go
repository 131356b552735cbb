package main

import "github.com/lixenwraith/atlascore/vmath"

// cellAspect is the height of a terminal cell relative to its width
const cellAspect = 2.0

// fitAspect grows bounds around its center so world units look square on a width x height grid
func fitAspect(bounds vmath.AABB, width, height int) vmath.AABB {
	if width <= 0 || height <= 0 {
		return bounds
	}
	bw := bounds.MaxX - bounds.MinX
	bh := bounds.MaxY - bounds.MinY
	if bw <= 0 || bh <= 0 {
		return bounds
	}
	screenAspect := float64(width) / (float64(height) * cellAspect)
	c := bounds.Center()
	if bw/bh < screenAspect {
		bw = bh * screenAspect
	} else {
		bh = bw / screenAspect
	}
	return vmath.AABBFromCenter(c, bw/2, bh/2)
}
