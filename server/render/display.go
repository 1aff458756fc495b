// Package render turns evaluation results into what the web page, the API
// and the terminal client show: text lines, a LaTeX formula, a plot.
package render

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"multicalc.com/server/expr"
	"multicalc.com/server/icalc"
)

// WarningPrefix starts every user-visible error line.
const WarningPrefix = "⚠️ "

// Display is the rendered form of one evaluation. It is JSON and gob safe.
type Display struct {
	Mode        icalc.Mode        `json:"mode"`
	Kind        icalc.ResultKind  `json:"kind,omitempty"`
	Title       string            `json:"title"`
	Lines       []string          `json:"lines,omitempty"`
	LaTeX       string            `json:"latex,omitempty"`
	Error       string            `json:"error,omitempty"`
	FailureKind icalc.FailureKind `json:"failure_kind,omitempty"`
	Plot        *Plot             `json:"plot,omitempty"`
}

// Failed reports whether the display carries an error line.
func (d Display) Failed() bool { return d.Error != "" }

// Plot is a sampled curve ready to draw.
type Plot struct {
	Label string   `json:"label"`
	XMin  float64  `json:"x_min"`
	XMax  float64  `json:"x_max"`
	X     []Sample `json:"x"`
	Y     []Sample `json:"y"`
}

// Sample is a plot coordinate. Non-finite samples encode as JSON null.
type Sample float64

func (s Sample) MarshalJSON() ([]byte, error) {
	if !expr.Finite(float64(s)) {
		return []byte("null"), nil
	}
	return json.Marshal(float64(s))
}

func (s *Sample) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*s = Sample(math.NaN())
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*s = Sample(f)
	return nil
}

// FromResult renders res, produced for mode.
func FromResult(mode icalc.Mode, res icalc.Result) Display {
	d := Display{Mode: mode, Title: Info(mode).Heading}
	if res == nil {
		return d
	}
	d.Kind = res.ResultKind()

	switch r := res.(type) {
	case *icalc.Failure:
		d.FailureKind = r.Kind
		d.Error = ErrorLine(r)

	case *icalc.PlotSeries:
		d.Plot = plotOf(r)
		d.Lines = []string{fmt.Sprintf("y = %s, %d samples on [%s, %s]",
			r.Expression, len(r.Points), icalc.FormatNumber(r.XMin), icalc.FormatNumber(r.XMax))}

	case *icalc.SymbolicExpression:
		d.Lines, d.LaTeX = symbolicLines(r)

	case *icalc.NumericScalarSet:
		angle := icalc.FormatNumber(r.AngleDegrees)
		for _, ratio := range r.Ratios {
			value := "undefined"
			if ratio.Defined() {
				value = icalc.FormatNumber(ratio.Value)
			}
			d.Lines = append(d.Lines, fmt.Sprintf("%s(%s°) = %s", ratio.Name, angle, value))
		}

	case *icalc.ArithmeticResult:
		d.Lines = []string{fmt.Sprintf("The result of %s %s %s is %s",
			icalc.FormatNumber(r.Operand1), r.Operator.Symbol(), icalc.FormatNumber(r.Operand2), icalc.FormatNumber(r.Value))}
	}
	return d
}

// ErrorLine formats a failure the way every shell shows it.
func ErrorLine(f *icalc.Failure) string {
	if f.Kind == icalc.DivisionByZero {
		return WarningPrefix + f.Message
	}
	return WarningPrefix + "An error occurred: " + f.Message
}

func symbolicLines(r *icalc.SymbolicExpression) ([]string, string) {
	var lines []string
	var tex string
	eq := "="
	if r.Approximate {
		eq = `\approx`
	}
	switch r.Mode {
	case icalc.ModeIndefiniteIntegral:
		lines = append(lines, fmt.Sprintf("The indefinite integral of %s is:", r.Expression))
		tex = fmt.Sprintf(`\int %s \, d%s = %s`, r.InputLaTeX, r.Variable, r.LaTeX)
	case icalc.ModeDefiniteIntegral:
		lines = append(lines, fmt.Sprintf("The definite integral of %s from %s to %s is:",
			r.Expression, bound(r.Lower), bound(r.Upper)))
		tex = fmt.Sprintf(`\int_{%s}^{%s} %s \, d%s %s %s`, r.LowerLaTeX, r.UpperLaTeX, r.InputLaTeX, r.Variable, eq, r.LaTeX)
	case icalc.ModeDerivative:
		lines = append(lines, fmt.Sprintf("The derivative of %s is:", r.Expression))
		tex = fmt.Sprintf(`\frac{d}{d%s}\left(%s\right) = %s`, r.Variable, r.InputLaTeX, r.LaTeX)
	}

	lines = append(lines, r.Text)
	if r.Value != nil && r.Text != icalc.FormatNumber(*r.Value) {
		lines = append(lines, "≈ "+icalc.FormatNumber(*r.Value))
	}
	if r.Approximate {
		lines = append(lines, "No closed form was found; the value was computed numerically with the trapezoid rule.")
	}
	if r.Unevaluated {
		lines = append(lines, "No closed form was found; the integral is left unevaluated.")
	}
	return lines, tex
}

// bound prints a numeric integration limit with a decimal point (0.0, 1.0).
func bound(s string) string {
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return icalc.FormatNumber(f)
	}
	return s
}

func plotOf(r *icalc.PlotSeries) *Plot {
	p := &Plot{
		Label: "y = " + r.Expression,
		XMin:  r.XMin,
		XMax:  r.XMax,
		X:     make([]Sample, len(r.Points)),
		Y:     make([]Sample, len(r.Points)),
	}
	for i, pt := range r.Points {
		p.X[i], p.Y[i] = Sample(pt.X), Sample(pt.Y)
	}
	return p
}
