package symbolic

import (
	"math"
)

// Integral is an integral the engine could not evaluate in closed form. Lower
// and upper are nil for an indefinite integral.
type Integral struct {
	body         Expr
	v            string
	lower, upper Expr
}

// NewIntegral returns the unevaluated indefinite integral of body dv.
func NewIntegral(body Expr, v string) Expr {
	if isZero(body) {
		return N(0)
	}
	return &Integral{body: body, v: v}
}

// NewDefiniteIntegral returns the unevaluated integral of body dv over
// [lower, upper].
func NewDefiniteIntegral(body Expr, v string, lower, upper Expr) Expr {
	if isZero(body) || equal(lower, upper) {
		return N(0)
	}
	return &Integral{body: body, v: v, lower: lower, upper: upper}
}

func (in *Integral) Definite() bool { return in.lower != nil }

func (in *Integral) String() string {
	if in.lower == nil {
		return "Integral(" + in.body.String() + ", " + in.v + ")"
	}
	return "Integral(" + in.body.String() + ", (" + in.v + ", " + in.lower.String() + ", " + in.upper.String() + "))"
}

func (in *Integral) LaTeX() string {
	bounds := ""
	if in.lower != nil {
		bounds = "_{" + in.lower.LaTeX() + "}^{" + in.upper.LaTeX() + "}"
	}
	return `\int` + bounds + " " + latexParen(in.body, precMul) + `\, d` + in.v
}

// Diff applies the fundamental theorem of calculus (Leibniz rule for bounds).
func (in *Integral) Diff(v string) Expr {
	if in.lower == nil {
		if in.v == v {
			return in.body
		}
		return NewIntegral(in.body.Diff(v), in.v)
	}
	terms := []Expr{
		NewMul(in.body.Subs(in.v, in.upper), in.upper.Diff(v)),
		Neg(NewMul(in.body.Subs(in.v, in.lower), in.lower.Diff(v))),
	}
	if in.v != v {
		terms = append(terms, NewDefiniteIntegral(in.body.Diff(v), in.v, in.lower, in.upper))
	}
	return NewAdd(terms...)
}

// Subs never touches the bound integration variable.
func (in *Integral) Subs(v string, val Expr) Expr {
	body := in.body
	if v != in.v {
		body = body.Subs(v, val)
	}
	if in.lower == nil {
		return NewIntegral(body, in.v)
	}
	return NewDefiniteIntegral(body, in.v, in.lower.Subs(v, val), in.upper.Subs(v, val))
}

func (in *Integral) Float(map[string]float64) float64 { return math.NaN() }

func (in *Integral) Equal(o Expr) bool { return equal(in, o) }
