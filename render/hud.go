package render

import (
	"strings"

	"github.com/lixenwraith/atlascore/status"
)

// DrawHUD centers title on the top row and packs metrics as key=value into the bottom rows
// Returns the number of bottom rows used
func DrawHUD(c *Canvas, title string, metrics []status.Metric) int {
	width, height := c.Size()
	if width == 0 || height == 0 {
		return 0
	}
	if title != "" {
		padded := " " + title + " "
		c.DrawText(max(0, (width-len(padded))/2), 0, padded, ColorMagenta)
	}

	lines := packMetrics(metrics, width)
	if len(lines) > height-1 {
		lines = lines[len(lines)-(height-1):]
	}
	top := height - len(lines)
	for i, line := range lines {
		c.FillRect(0, top+i, width, 1, ' ', ColorDefault)
		c.DrawText(0, top+i, line, ColorWhite)
	}
	return len(lines)
}

// packMetrics greedily fills lines no wider than width
func packMetrics(metrics []status.Metric, width int) []string {
	var lines []string
	var sb strings.Builder
	for _, m := range metrics {
		entry := m.Key + "=" + m.Value
		if sb.Len() > 0 && sb.Len()+2+len(entry) > width {
			lines = append(lines, sb.String())
			sb.Reset()
		}
		if sb.Len() > 0 {
			sb.WriteString("  ")
		}
		sb.WriteString(entry)
	}
	if sb.Len() > 0 {
		lines = append(lines, sb.String())
	}
	return lines
}
