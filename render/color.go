package render

import "github.com/gdamore/tcell/v2"

// Color is one of the eight canvas palette entries
type Color uint8

const (
	ColorDefault Color = iota
	ColorWhite
	ColorRed
	ColorGreen
	ColorBlue
	ColorYellow
	ColorCyan
	ColorMagenta

	colorCount
)

// RGB stores explicit 8-bit color channels, decoupled from tcell
type RGB struct {
	R, G, B uint8
}

// Tokyo Night palette
var (
	RgbBackground = RGB{26, 27, 38}
	RgbForeground = RGB{192, 202, 245}

	palette = [colorCount]RGB{
		ColorDefault: RgbForeground,
		ColorWhite:   {255, 255, 255},
		ColorRed:     {247, 118, 142},
		ColorGreen:   {158, 206, 106},
		ColorBlue:    {122, 162, 247},
		ColorYellow:  {224, 175, 104},
		ColorCyan:    {125, 207, 255},
		ColorMagenta: {187, 154, 247},
	}

	colorNames = [colorCount]string{"default", "white", "red", "green", "blue", "yellow", "cyan", "magenta"}
)

// RGB returns the palette value, out-of-range colors map to the default foreground
func (c Color) RGB() RGB {
	if c >= colorCount {
		return palette[ColorDefault]
	}
	return palette[c]
}

func (c Color) String() string {
	if c >= colorCount {
		return "unknown"
	}
	return colorNames[c]
}

// Blend performs alpha blending: result = src*alpha + dst*(1-alpha)
func (dst RGB) Blend(src RGB, alpha float64) RGB {
	if alpha <= 0 {
		return dst
	}
	if alpha >= 1 {
		return src
	}
	inv := 1.0 - alpha
	return RGB{
		R: uint8(float64(src.R)*alpha + float64(dst.R)*inv),
		G: uint8(float64(src.G)*alpha + float64(dst.G)*inv),
		B: uint8(float64(src.B)*alpha + float64(dst.B)*inv),
	}
}

// RGBToTcell converts RGB to tcell.Color
func RGBToTcell(rgb RGB) tcell.Color {
	return tcell.NewRGBColor(int32(rgb.R), int32(rgb.G), int32(rgb.B))
}

// Style returns the tcell style used to present c
func (c Color) Style() tcell.Style {
	return tcell.StyleDefault.
		Foreground(RGBToTcell(c.RGB())).
		Background(RGBToTcell(RgbBackground))
}
