package icalc

import (
	"multicalc.com/server/expr"
)

// graph samples the expression at SampleCount evenly spaced points. The tree
// is evaluated once over the whole sample vector; NaN and ±Inf stay in the
// series.
func (c *Calc) graph(r *GraphRequest) Result {
	if !expr.Finite(r.XMin) || !expr.Finite(r.XMax) {
		return newFailure(ParseError, "x-axis limits must be finite numbers")
	}
	if r.XMin >= r.XMax {
		return newFailure(ParseError, "x-axis maximum (%s) must be greater than minimum (%s)",
			FormatNumber(r.XMax), FormatNumber(r.XMin))
	}

	n, err := expr.ParseLimit(r.Expression, c.opts.MaxExpressionLength)
	if err != nil {
		return AsFailure(err)
	}
	v := chooseVariable(r.Variable, expr.Variables(n))

	xs := expr.Linspace(r.XMin, r.XMax, SampleCount)
	ys, err := expr.EvaluateVector(n, v, xs)
	if err != nil {
		return AsFailure(err)
	}
	if expr.CountFinite(ys) == 0 {
		return newFailure(DomainError, "%s is undefined everywhere on [%s, %s]",
			expr.Normalize(r.Expression), FormatNumber(r.XMin), FormatNumber(r.XMax))
	}

	points := make([]Point, len(xs))
	for i := range xs {
		points[i] = Point{X: xs[i], Y: ys[i]}
	}
	return &PlotSeries{
		Expression: expr.Normalize(r.Expression),
		Variable:   v,
		XMin:       r.XMin,
		XMax:       r.XMax,
		Points:     points,
	}
}

// chooseVariable picks the explicit variable, else the only free name, else x.
func chooseVariable(explicit string, free []string) string {
	if explicit != "" {
		return explicit
	}
	if len(free) == 1 {
		return free[0]
	}
	return "x"
}
