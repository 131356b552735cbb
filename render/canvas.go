package render

import (
	"math"
	"strings"
)

// Cell is one character slot of the canvas
type Cell struct {
	Rune  rune
	Color Color
}

var blankCell = Cell{Rune: ' '}

// Canvas is a fixed-size character grid with a committed copy of the previous frame for diffing
// Writes outside the grid are ignored
type Canvas struct {
	width  int
	height int
	cells  []Cell
	prev   []Cell
}

// NewCanvas creates a blank canvas; the first Diff reports every cell as changed
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{}
	c.Resize(width, height)
	return c
}

// Resize reallocates the grid and invalidates the previous frame
func (c *Canvas) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		width, height = 0, 0
	}
	size := width * height
	if cap(c.cells) < size {
		c.cells = make([]Cell, size)
		c.prev = make([]Cell, size)
	} else {
		c.cells = c.cells[:size]
		c.prev = c.prev[:size]
	}
	c.width, c.height = width, height
	c.Clear(' ', ColorDefault)
	c.Invalidate()
}

// Size returns the grid dimensions
func (c *Canvas) Size() (width, height int) {
	return c.width, c.height
}

// Invalidate forgets the previous frame so the next present redraws everything
func (c *Canvas) Invalidate() {
	for i := range c.prev {
		c.prev[i] = Cell{}
	}
}

// Clear fills every cell using exponential copy
func (c *Canvas) Clear(fill rune, color Color) {
	if len(c.cells) == 0 {
		return
	}
	c.cells[0] = Cell{Rune: fill, Color: color}
	for filled := 1; filled < len(c.cells); filled *= 2 {
		copy(c.cells[filled:], c.cells[:filled])
	}
}

func (c *Canvas) inBounds(x, y int) bool {
	return x >= 0 && x < c.width && y >= 0 && y < c.height
}

// Put writes one cell
func (c *Canvas) Put(x, y int, r rune, color Color) {
	if !c.inBounds(x, y) {
		return
	}
	c.cells[y*c.width+x] = Cell{Rune: r, Color: color}
}

// Get returns the cell at x, y; out-of-range reads return a blank cell
func (c *Canvas) Get(x, y int) Cell {
	if !c.inBounds(x, y) {
		return blankCell
	}
	return c.cells[y*c.width+x]
}

// DrawText writes s left to right starting at x, y, clipped to the grid
func (c *Canvas) DrawText(x, y int, s string, color Color) {
	for _, r := range s {
		c.Put(x, y, r, color)
		x++
	}
}

// DrawLine rasterizes a segment with Bresenham's algorithm, both endpoints inclusive
// Segments leaving the grid are clipped first so far-off endpoints cost nothing
func (c *Canvas) DrawLine(x0, y0, x1, y1 int, r rune, color Color) {
	if !c.inBounds(x0, y0) || !c.inBounds(x1, y1) {
		var ok bool
		if x0, y0, x1, y1, ok = c.clip(x0, y0, x1, y1); !ok {
			return
		}
	}
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		c.Put(x0, y0, r, color)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// clip trims a segment to the grid with Liang-Barsky, reporting false when nothing remains
func (c *Canvas) clip(x0, y0, x1, y1 int) (int, int, int, int, bool) {
	if c.width == 0 || c.height == 0 {
		return 0, 0, 0, 0, false
	}
	fx0, fy0 := float64(x0), float64(y0)
	dx, dy := float64(x1-x0), float64(y1-y0)
	t0, t1 := 0.0, 1.0
	edges := [4][2]float64{
		{-dx, fx0},
		{dx, float64(c.width-1) - fx0},
		{-dy, fy0},
		{dy, float64(c.height-1) - fy0},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			t0 = max(t0, t)
		} else {
			t1 = min(t1, t)
		}
		if t0 > t1 {
			return 0, 0, 0, 0, false
		}
	}
	round := func(f float64) int { return int(math.Round(f)) }
	return round(fx0 + t0*dx), round(fy0 + t0*dy), round(fx0 + t1*dx), round(fy0 + t1*dy), true
}

// DrawRect outlines the rectangle with top-left x, y spanning w x h cells
func (c *Canvas) DrawRect(x, y, w, h int, r rune, color Color) {
	if w <= 0 || h <= 0 {
		return
	}
	x1, y1 := x+w-1, y+h-1
	c.DrawLine(x, y, x1, y, r, color)
	c.DrawLine(x, y1, x1, y1, r, color)
	c.DrawLine(x, y, x, y1, r, color)
	c.DrawLine(x1, y, x1, y1, r, color)
}

// FillRect fills the rectangle with top-left x, y spanning w x h cells
func (c *Canvas) FillRect(x, y, w, h int, r rune, color Color) {
	for row := max(y, 0); row < min(y+h, c.height); row++ {
		for col := max(x, 0); col < min(x+w, c.width); col++ {
			c.Put(col, row, r, color)
		}
	}
}

// DrawCircle outlines a circle with the midpoint algorithm
func (c *Canvas) DrawCircle(xc, yc, radius int, r rune, color Color) {
	if radius < 0 {
		return
	}
	x, y := radius, 0
	d := 1 - radius
	for x >= y {
		c.Put(xc+x, yc+y, r, color)
		c.Put(xc-x, yc+y, r, color)
		c.Put(xc+x, yc-y, r, color)
		c.Put(xc-x, yc-y, r, color)
		c.Put(xc+y, yc+x, r, color)
		c.Put(xc-y, yc+x, r, color)
		c.Put(xc+y, yc-x, r, color)
		c.Put(xc-y, yc-x, r, color)
		y++
		if d < 0 {
			d += 2*y + 1
		} else {
			x--
			d += 2*(y-x) + 1
		}
	}
}

// DrawEllipse outlines an axis-aligned ellipse with the midpoint algorithm
func (c *Canvas) DrawEllipse(xc, yc, rx, ry int, r rune, color Color) {
	c.ellipse(xc, yc, rx, ry, func(x, y int) {
		c.Put(xc+x, yc+y, r, color)
		c.Put(xc-x, yc+y, r, color)
		c.Put(xc+x, yc-y, r, color)
		c.Put(xc-x, yc-y, r, color)
	})
}

// FillEllipse fills an axis-aligned ellipse with horizontal spans
func (c *Canvas) FillEllipse(xc, yc, rx, ry int, r rune, color Color) {
	c.ellipse(xc, yc, rx, ry, func(x, y int) {
		for col := xc - x; col <= xc+x; col++ {
			c.Put(col, yc+y, r, color)
			c.Put(col, yc-y, r, color)
		}
	})
}

// ellipse walks the first quadrant boundary of the ellipse, calling plot for each point
func (c *Canvas) ellipse(xc, yc, rx, ry int, plot func(x, y int)) {
	if rx < 0 || ry < 0 {
		return
	}
	if rx == 0 || ry == 0 {
		// Degenerate ellipse is a segment
		for x := 0; x <= rx; x++ {
			plot(x, 0)
		}
		for y := 0; y <= ry; y++ {
			plot(0, y)
		}
		return
	}

	rx2, ry2 := rx*rx, ry*ry
	x, y := 0, ry
	px, py := 0, 2*rx2*y

	// Region 1: slope magnitude < 1
	p := ry2 - rx2*ry + rx2/4
	for px < py {
		plot(x, y)
		x++
		px += 2 * ry2
		if p < 0 {
			p += ry2 + px
		} else {
			y--
			py -= 2 * rx2
			p += ry2 + px - py
		}
	}

	// Region 2
	p = ry2*(2*x+1)*(2*x+1)/4 + rx2*(y-1)*(y-1) - rx2*ry2
	for y >= 0 {
		plot(x, y)
		y--
		py -= 2 * rx2
		if p > 0 {
			p += rx2 - py
		} else {
			x++
			px += 2 * ry2
			p += rx2 - py + px
		}
	}
}

// Diff counts cells that differ from the committed frame, without side effects
func (c *Canvas) Diff() int {
	changed := 0
	for i := range c.cells {
		if c.cells[i] != c.prev[i] {
			changed++
		}
	}
	return changed
}

// DirtyRows reports, per row, whether any cell differs from the committed frame
func (c *Canvas) DirtyRows() []bool {
	rows := make([]bool, c.height)
	for y := 0; y < c.height; y++ {
		line := c.cells[y*c.width : (y+1)*c.width]
		prev := c.prev[y*c.width : (y+1)*c.width]
		for x := range line {
			if line[x] != prev[x] {
				rows[y] = true
				break
			}
		}
	}
	return rows
}

// Commit records the current frame as presented and returns how many cells changed
func (c *Canvas) Commit() int {
	changed := c.Diff()
	copy(c.prev, c.cells)
	return changed
}

// String dumps the grid as newline-terminated rows, ignoring color
func (c *Canvas) String() string {
	var sb strings.Builder
	sb.Grow((c.width + 1) * c.height)
	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			r := c.cells[y*c.width+x].Rune
			if r == 0 {
				r = ' '
			}
			sb.WriteRune(r)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
