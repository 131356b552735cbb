package render

import (
	"math"
	"strings"
	"testing"
)

func TestPutClipsOutOfRange(t *testing.T) {
	c := NewCanvas(4, 3)
	c.Put(-1, 0, 'x', ColorRed)
	c.Put(4, 0, 'x', ColorRed)
	c.Put(0, 3, 'x', ColorRed)
	c.Put(3, 2, 'x', ColorRed)

	if got := c.Get(3, 2); got != (Cell{'x', ColorRed}) {
		t.Errorf("Expected red x at corner, got %+v", got)
	}
	if strings.Count(c.String(), "x") != 1 {
		t.Errorf("Expected exactly one x, got:\n%s", c.String())
	}
	if got := c.Get(10, 10); got.Rune != ' ' {
		t.Errorf("Expected blank for out-of-range read, got %q", got.Rune)
	}
}

func TestDrawLine(t *testing.T) {
	tests := []struct {
		name           string
		x0, y0, x1, y1 int
		want           int // cells drawn
	}{
		{"horizontal", 0, 0, 7, 0, 8},
		{"vertical", 2, 7, 2, 0, 8},
		{"diagonal", 0, 0, 5, 5, 6},
		{"point", 3, 3, 3, 3, 1},
		{"steep", 1, 0, 3, 7, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCanvas(8, 8)
			c.DrawLine(tt.x0, tt.y0, tt.x1, tt.y1, '*', ColorDefault)
			if got := strings.Count(c.String(), "*"); got != tt.want {
				t.Errorf("Expected %d cells, got %d:\n%s", tt.want, got, c.String())
			}
			if c.Get(tt.x0, tt.y0).Rune != '*' || c.Get(tt.x1, tt.y1).Rune != '*' {
				t.Error("Expected both endpoints drawn")
			}
		})
	}
}

func TestDrawRectOutline(t *testing.T) {
	c := NewCanvas(6, 5)
	c.DrawRect(1, 1, 4, 3, '+', ColorWhite)
	want := "      \n" +
		" ++++ \n" +
		" +  + \n" +
		" ++++ \n" +
		"      \n"
	if c.String() != want {
		t.Errorf("Unexpected rect:\n%s", c.String())
	}

	c.Clear(' ', ColorDefault)
	c.DrawRect(0, 0, 0, 3, '+', ColorWhite)
	if strings.Contains(c.String(), "+") {
		t.Error("Expected zero-width rect to draw nothing")
	}
}

func TestDrawCircle(t *testing.T) {
	c := NewCanvas(11, 11)
	c.DrawCircle(5, 5, 3, 'o', ColorBlue)
	for _, p := range [][2]int{{8, 5}, {2, 5}, {5, 8}, {5, 2}} {
		if c.Get(p[0], p[1]).Rune != 'o' {
			t.Errorf("Expected extreme point %v on circle", p)
		}
	}
	if c.Get(5, 5).Rune != ' ' {
		t.Error("Expected hollow circle")
	}
	// Symmetric about both axes
	for y := 0; y < 11; y++ {
		for x := 0; x < 11; x++ {
			if c.Get(x, y) != c.Get(10-x, y) || c.Get(x, y) != c.Get(x, 10-y) {
				t.Fatalf("Asymmetry at (%d,%d)", x, y)
			}
		}
	}
}

func TestEllipses(t *testing.T) {
	c := NewCanvas(11, 9)
	c.FillEllipse(5, 4, 3, 2, 'O', ColorRed)
	want := "           \n" +
		"           \n" +
		"    OOO    \n" +
		"   OOOOO   \n" +
		"  OOOOOOO  \n" +
		"   OOOOO   \n" +
		"    OOO    \n" +
		"           \n" +
		"           \n"
	if c.String() != want {
		t.Errorf("Unexpected filled ellipse:\n%s", c.String())
	}

	c.Clear(' ', ColorDefault)
	c.DrawEllipse(5, 4, 3, 2, ':', ColorRed)
	if c.Get(5, 4).Rune != ' ' {
		t.Error("Expected hollow ellipse")
	}
	for _, p := range [][2]int{{8, 4}, {2, 4}, {5, 6}, {5, 2}} {
		if c.Get(p[0], p[1]).Rune != ':' {
			t.Errorf("Expected extreme point %v on ellipse", p)
		}
	}

	c.Clear(' ', ColorDefault)
	c.DrawEllipse(5, 4, 2, 0, '-', ColorRed)
	if got := strings.Count(c.String(), "-"); got != 5 {
		t.Errorf("Expected flat ellipse of 5 cells, got %d", got)
	}
}

func TestDiffAndCommit(t *testing.T) {
	c := NewCanvas(4, 2)
	if got := c.Diff(); got != 8 {
		t.Errorf("Expected first frame fully dirty, got %d", got)
	}
	if got := c.Commit(); got != 8 {
		t.Errorf("Expected commit to report 8, got %d", got)
	}
	if got := c.Diff(); got != 0 {
		t.Errorf("Expected clean canvas after commit, got %d", got)
	}

	c.Put(1, 1, '#', ColorDefault)
	c.Put(2, 1, ' ', ColorRed) // color alone is a change
	if got := c.Diff(); got != 2 {
		t.Errorf("Expected 2 changed cells, got %d", got)
	}
	rows := c.DirtyRows()
	if rows[0] || !rows[1] {
		t.Errorf("Expected only row 1 dirty, got %v", rows)
	}
	// Diff has no side effects
	if got := c.Diff(); got != 2 {
		t.Errorf("Expected Diff to be repeatable, got %d", got)
	}
	c.Commit()

	c.Invalidate()
	if got := c.Diff(); got != 8 {
		t.Errorf("Expected full redraw after Invalidate, got %d", got)
	}
}

func TestResize(t *testing.T) {
	c := NewCanvas(2, 2)
	c.Commit()
	c.Resize(3, 1)
	if w, h := c.Size(); w != 3 || h != 1 {
		t.Errorf("Expected 3x1, got %dx%d", w, h)
	}
	if c.String() != "   \n" {
		t.Errorf("Expected blank row, got %q", c.String())
	}
	if c.Diff() != 3 {
		t.Error("Expected resized canvas to be fully dirty")
	}
	c.Resize(-1, 4)
	if c.String() != "" {
		t.Error("Expected empty canvas for negative width")
	}
}

func TestColorPalette(t *testing.T) {
	if ColorRed.String() != "red" || Color(42).String() != "unknown" {
		t.Error("Unexpected color names")
	}
	if Color(42).RGB() != ColorDefault.RGB() {
		t.Error("Expected out-of-range color to use default")
	}
	seen := map[RGB]bool{}
	for col := ColorDefault; col < colorCount; col++ {
		seen[col.RGB()] = true
	}
	if len(seen) != int(colorCount) {
		t.Errorf("Expected %d distinct colors, got %d", colorCount, len(seen))
	}
	if got := (RGB{0, 0, 0}).Blend(RGB{200, 100, 50}, 0.5); got != (RGB{100, 50, 25}) {
		t.Errorf("Unexpected blend %v", got)
	}
}

func TestDrawLineClipped(t *testing.T) {
	c := NewCanvas(8, 8)
	c.DrawLine(-1000, 3, 1000, 3, '-', ColorDefault)
	if got := strings.Count(c.String(), "-"); got != 8 {
		t.Errorf("Expected a full clipped row, got %d cells", got)
	}

	c.Clear(' ', ColorDefault)
	c.DrawLine(math.MinInt32, 0, 3, 3, '\\', ColorDefault)
	if c.Get(3, 3).Rune != '\\' {
		t.Error("Expected the visible endpoint drawn")
	}

	c.Clear(' ', ColorDefault)
	c.DrawLine(-5, -5, -1, 20, '*', ColorDefault)
	if strings.Contains(c.String(), "*") {
		t.Error("Expected segment outside the grid to draw nothing")
	}
}
