package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/atlascore/vmath"
)

// Viewport maps a world-space window onto a Width x Height character grid
// World +Y is up, screen row 0 is the top
type Viewport struct {
	World  vmath.AABB
	Width  int
	Height int
}

// NewViewport frames bounds on a width x height grid
func NewViewport(bounds vmath.AABB, width, height int) Viewport {
	return Viewport{World: bounds, Width: width, Height: height}
}

// Scale returns cells per world unit along each axis
func (v Viewport) Scale() (sx, sy float64) {
	w := v.World.MaxX - v.World.MinX
	h := v.World.MaxY - v.World.MinY
	if w <= 0 || h <= 0 || v.Width <= 0 || v.Height <= 0 {
		return 0, 0
	}
	return float64(v.Width-1) / w, float64(v.Height-1) / h
}

// ToScreen maps a world point to the nearest cell
func (v Viewport) ToScreen(p mgl64.Vec2) (x, y int) {
	sx, sy := v.Scale()
	fx := (p[0] - v.World.MinX) * sx
	fy := (v.World.MaxY - p[1]) * sy
	return toCell(fx), toCell(fy)
}

// Extent converts world lengths to cell counts, rounded
func (v Viewport) Extent(w, h float64) (cw, ch int) {
	sx, sy := v.Scale()
	return toCell(w * sx), toCell(h * sy)
}

// Visible reports whether the cell lies on the grid
func (v Viewport) Visible(x, y int) bool {
	return x >= 0 && x < v.Width && y >= 0 && y < v.Height
}

// toCell rounds and saturates so far-off coordinates stay representable
func toCell(f float64) int {
	if !vmath.IsFinite(f) {
		return math.MinInt32
	}
	return int(math.Round(vmath.Clamp(f, math.MinInt32, math.MaxInt32)))
}
