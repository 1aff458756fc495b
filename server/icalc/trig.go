package icalc

import (
	"math"

	"multicalc.com/server/expr"
)

// TrigRatioNames lists the ratios of a NumericScalarSet in display order.
var TrigRatioNames = []string{"sin", "cos", "tan", "cot", "sec", "cosec"}

// trig computes the six ratios of an angle given in degrees. A reciprocal
// ratio whose denominator is within ZeroTolerance of zero is undefined; the
// other ratios are still computed.
func (c *Calc) trig(r *TrigRequest) Result {
	if !expr.Finite(r.AngleDegrees) {
		return newFailure(DomainError, "angle must be a finite number of degrees, got %s", FormatNumber(r.AngleDegrees))
	}
	rad := r.AngleDegrees * math.Pi / 180
	sin, cos, tan := math.Sin(rad), math.Cos(rad), math.Tan(rad)

	reciprocal := func(name string, d float64) Ratio {
		if math.Abs(d) <= c.opts.ZeroTolerance {
			return Ratio{
				Name:    name,
				Value:   math.NaN(),
				Failure: newFailure(UndefinedValue, "%s(%s°) is undefined", name, FormatNumber(r.AngleDegrees)),
			}
		}
		return Ratio{Name: name, Value: 1 / d}
	}

	return &NumericScalarSet{
		AngleDegrees: r.AngleDegrees,
		Ratios: []Ratio{
			{Name: "sin", Value: sin},
			{Name: "cos", Value: cos},
			{Name: "tan", Value: tan},
			reciprocal("cot", tan),
			reciprocal("sec", cos),
			reciprocal("cosec", sin),
		},
	}
}
