package render

import (
	"bytes"
	"errors"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"multicalc.com/server/expr"
)

// ErrNoPlot is returned when a Display carries nothing to draw.
var ErrNoPlot = errors.New("display has no plot")

var (
	curveStyle = chart.Style{StrokeColor: chart.ColorBlue, StrokeWidth: 2}
	zeroStyle  = chart.Style{StrokeColor: drawing.ColorBlack, StrokeWidth: 0.5, StrokeDashArray: []float64{4, 3}}
	gridStyle  = chart.Style{StrokeColor: drawing.ColorFromHex("808080"), StrokeWidth: 0.5, StrokeDashArray: []float64{3, 3}}
)

// PlotPNG draws p as a line chart: title, axis names, dashed zero lines, a
// dashed grid and a legend with the curve label. Runs of non-finite samples
// break the curve instead of being joined.
func PlotPNG(p *Plot, width, height int) ([]byte, error) {
	if p == nil {
		return nil, ErrNoPlot
	}
	segments := finiteSegments(p)
	if len(segments) == 0 {
		return nil, ErrNoPlot
	}
	ymin, ymax := yRange(segments)

	var series []chart.Series
	for i, seg := range segments {
		s := chart.ContinuousSeries{Style: curveStyle, XValues: seg.x, YValues: seg.y}
		if i == 0 {
			s.Name = p.Label
		}
		series = append(series, s)
	}
	if ymin <= 0 && ymax >= 0 {
		series = append(series, chart.ContinuousSeries{Style: zeroStyle, XValues: []float64{p.XMin, p.XMax}, YValues: []float64{0, 0}})
	}
	if p.XMin <= 0 && p.XMax >= 0 {
		series = append(series, chart.ContinuousSeries{Style: zeroStyle, XValues: []float64{0, 0}, YValues: []float64{ymin, ymax}})
	}

	ch := chart.Chart{
		Title:      "Graph of the Function",
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:           "x",
			Range:          &chart.ContinuousRange{Min: p.XMin, Max: p.XMax},
			GridMajorStyle: gridStyle,
			GridMinorStyle: gridStyle,
		},
		YAxis: chart.YAxis{
			Name:           "y",
			Range:          &chart.ContinuousRange{Min: ymin, Max: ymax},
			GridMajorStyle: gridStyle,
			GridMinorStyle: gridStyle,
		},
		Series: series,
	}
	// Only the first curve segment is listed in the legend.
	labelled := chart.Chart{Series: series[:1]}
	ch.Elements = []chart.Renderable{chart.Legend(&labelled)}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type segment struct{ x, y []float64 }

// finiteSegments splits the samples at non-finite values. Single points are
// kept as a zero-length segment so isolated values still show.
func finiteSegments(p *Plot) []segment {
	var out []segment
	var cur segment
	flush := func() {
		switch len(cur.x) {
		case 0:
			return
		case 1:
			cur.x = append(cur.x, cur.x[0])
			cur.y = append(cur.y, cur.y[0])
		}
		out = append(out, cur)
		cur = segment{}
	}
	for i := range p.X {
		x, y := float64(p.X[i]), float64(p.Y[i])
		if !expr.Finite(x) || !expr.Finite(y) {
			flush()
			continue
		}
		cur.x = append(cur.x, x)
		cur.y = append(cur.y, y)
	}
	flush()
	return out
}

// yRange returns the span of the finite samples with a 5% margin.
func yRange(segments []segment) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, s := range segments {
		for _, y := range s.y {
			lo, hi = math.Min(lo, y), math.Max(hi, y)
		}
	}
	if hi-lo < 1e-12 {
		return lo - 1, hi + 1
	}
	pad := (hi - lo) * 0.05
	return lo - pad, hi + pad
}
