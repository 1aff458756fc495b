package render

import (
	"fmt"
	"math"
	"strings"
)

// ASCIIPlot draws p on a width x height character grid for terminals. Zero
// axes are drawn when they fall inside the plotted window.
func ASCIIPlot(p *Plot, width, height int) string {
	if p == nil || width < 8 || height < 4 {
		return ""
	}
	segments := finiteSegments(p)
	if len(segments) == 0 {
		return ""
	}
	ymin, ymax := yRange(segments)

	grid := make([][]byte, height)
	for i := range grid {
		grid[i] = []byte(strings.Repeat(" ", width))
	}
	col := func(x float64) int {
		return int(math.Round((x - p.XMin) / (p.XMax - p.XMin) * float64(width-1)))
	}
	row := func(y float64) int {
		return height - 1 - int(math.Round((y-ymin)/(ymax-ymin)*float64(height-1)))
	}
	inside := func(r, c int) bool { return r >= 0 && r < height && c >= 0 && c < width }

	if ymin <= 0 && ymax >= 0 {
		r := row(0)
		for c := range grid[r] {
			grid[r][c] = '-'
		}
	}
	if p.XMin <= 0 && p.XMax >= 0 {
		c := col(0)
		for r := range grid {
			if grid[r][c] == '-' {
				grid[r][c] = '+'
			} else {
				grid[r][c] = '|'
			}
		}
	}
	for _, s := range segments {
		for i := range s.x {
			if r, c := row(s.y[i]), col(s.x[i]); inside(r, c) {
				grid[r][c] = '*'
			}
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", ASCII(p.Label))
	fmt.Fprintf(&b, "y in [%.4g, %.4g], x in [%.4g, %.4g]\n", ymin, ymax, p.XMin, p.XMax)
	for _, line := range grid {
		b.Write(line)
		b.WriteByte('\n')
	}
	return b.String()
}
