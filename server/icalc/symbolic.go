package icalc

import (
	"math"

	"multicalc.com/server/expr"
	"multicalc.com/server/symbolic"
)

// singularityScanPoints is the number of interior points checked for
// non-finite integrand values before a numeric definite integral.
const singularityScanPoints = 1001

func (c *Calc) parseSymbolic(src, variable string) (symbolic.Expr, string, error) {
	e, err := symbolic.Parse(src, c.opts.MaxExpressionLength)
	if err != nil {
		return nil, "", err
	}
	return e, chooseVariable(variable, symbolic.Symbols(e)), nil
}

func (c *Calc) indefiniteIntegral(r *IndefiniteIntegralRequest) Result {
	e, v, err := c.parseSymbolic(r.Expression, r.Variable)
	if err != nil {
		return AsFailure(err)
	}
	res := &SymbolicExpression{
		Mode:       ModeIndefiniteIntegral,
		Variable:   v,
		Expression: e.String(),
		InputLaTeX: e.LaTeX(),
	}
	F, ok := symbolic.Integrate(e, v)
	if !ok {
		F = symbolic.NewIntegral(e, v)
		res.Unevaluated = true
	}
	res.Text, res.LaTeX = F.String(), F.LaTeX()
	return res
}

func (c *Calc) derivative(r *DerivativeRequest) Result {
	e, v, err := c.parseSymbolic(r.Expression, r.Variable)
	if err != nil {
		return AsFailure(err)
	}
	d := e.Diff(v)
	return &SymbolicExpression{
		Mode:       ModeDerivative,
		Variable:   v,
		Expression: e.String(),
		InputLaTeX: e.LaTeX(),
		Text:       d.String(),
		LaTeX:      d.LaTeX(),
	}
}

// definiteIntegral reduces to a number when the bounds and the integrand are
// numeric. Poles inside the interval are rejected first; the value then comes
// from an antiderivative when one exists and trapezoid quadrature otherwise. Symbolic bounds give a closed form or an unevaluated
// integral.
func (c *Calc) definiteIntegral(r *DefiniteIntegralRequest) Result {
	e, v, err := c.parseSymbolic(r.Expression, r.Variable)
	if err != nil {
		return AsFailure(err)
	}
	lo, err := symbolic.Parse(r.Lower, c.opts.MaxExpressionLength)
	if err != nil {
		return newFailure(ParseError, "lower limit: %s", err)
	}
	up, err := symbolic.Parse(r.Upper, c.opts.MaxExpressionLength)
	if err != nil {
		return newFailure(ParseError, "upper limit: %s", err)
	}

	res := &SymbolicExpression{
		Mode:       ModeDefiniteIntegral,
		Variable:   v,
		Expression: e.String(),
		InputLaTeX: e.LaTeX(),
		Lower:      lo.String(),
		Upper:      up.String(),
		LowerLaTeX: lo.LaTeX(),
		UpperLaTeX: up.LaTeX(),
	}
	if lo.Equal(up) {
		zero := 0.0
		res.Text, res.LaTeX, res.Value = "0", "0", &zero
		return res
	}

	numeric := len(symbolic.Symbols(lo)) == 0 && len(symbolic.Symbols(up)) == 0 && onlySymbol(e, v)
	if !numeric {
		val, ok := symbolic.DefiniteIntegrate(e, v, lo, up)
		if !ok {
			val = symbolic.NewDefiniteIntegral(e, v, lo, up)
			res.Unevaluated = true
		}
		res.Text, res.LaTeX = val.String(), val.LaTeX()
		if f := val.Float(nil); len(symbolic.Symbols(val)) == 0 && expr.Finite(f) {
			res.Value = &f
		}
		return res
	}

	a, b := lo.Float(nil), up.Float(nil)
	if !expr.Finite(a) || !expr.Finite(b) {
		return newFailure(DomainError, "integration limits must be finite")
	}
	poles := symbolic.Poles(e, v, a, b)
	for _, p := range poles {
		if interior(p, a, b) {
			return newFailure(DomainError, "the integrand %s is undefined at %s = %s", e, v, FormatNumber(p))
		}
	}
	if x, bad := scanSingularity(e, v, a, b); bad {
		return newFailure(DomainError, "the integrand %s is undefined at %s = %s", e, v, FormatNumber(x))
	}

	if F, ok := symbolic.Integrate(e, v); ok {
		// log(u) of the antiderivative is taken as log(abs(u)) when u < 0
		// somewhere on the interval.
		for _, G := range []symbolic.Expr{F, symbolic.RealLogs(F)} {
			val := symbolic.Sub(G.Subs(v, up), G.Subs(v, lo))
			if f := val.Float(nil); expr.Finite(f) {
				res.Text, res.LaTeX, res.Value = val.String(), val.LaTeX(), &f
				return res
			}
		}
		if len(poles) > 0 {
			return newFailure(DomainError, "the integral of %s from %s to %s does not converge", e, lo, up)
		}
	}

	f, err := c.quadrature(e, v, a, b)
	if err != nil {
		return AsFailure(err)
	}
	res.Text, res.LaTeX, res.Value, res.Approximate = FormatNumber(f), FormatNumber(f), &f, true
	return res
}

func onlySymbol(e symbolic.Expr, v string) bool {
	for _, s := range symbolic.Symbols(e) {
		if s != v {
			return false
		}
	}
	return true
}

// interior reports whether p lies strictly inside [a, b], up to rounding.
func interior(p, a, b float64) bool {
	if a > b {
		a, b = b, a
	}
	eps := 1e-12 * (1 + math.Abs(p))
	return p-a > eps && b-p > eps
}

// scanSingularity samples the integrand strictly inside [a, b] and reports
// the first point where it is not finite.
func scanSingularity(e symbolic.Expr, v string, a, b float64) (float64, bool) {
	if a > b {
		a, b = b, a
	}
	env := map[string]float64{}
	xs := expr.Linspace(a, b, singularityScanPoints+2)
	for _, x := range xs[1 : len(xs)-1] {
		env[v] = x
		if !expr.Finite(e.Float(env)) {
			return x, true
		}
	}
	return 0, false
}
