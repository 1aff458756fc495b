package icalc

import (
	"log"
	"math/big"
	"time"

	"multicalc.com/server/expr"
	"multicalc.com/server/symbolic"
)

// quadraturePrec is the mantissa precision of the trapezoid accumulator.
const quadraturePrec = 256

// quadrature integrates e over [a, b] with the composite trapezoid rule:
// h * (f(a)/2 + f(a+h) + ... + f(b-h) + f(b)/2). The sum is carried in a
// big.Float so that many small terms do not lose precision.
func (c *Calc) quadrature(e symbolic.Expr, v string, a, b float64) (float64, error) {
	start := time.Now()
	n := c.opts.QuadraturePoints
	h := (b - a) / float64(n)
	env := map[string]float64{}

	f := func(x float64) (float64, error) {
		env[v] = x
		y := e.Float(env)
		if !expr.Finite(y) {
			return 0, newFailure(DomainError, "the integrand %s is undefined at %s = %s", e, v, FormatNumber(x))
		}
		return y, nil
	}

	first, err := f(a)
	if err != nil {
		return 0, err
	}
	last, err := f(b)
	if err != nil {
		return 0, err
	}
	sum := new(big.Float).SetPrec(quadraturePrec).SetFloat64((first + last) / 2)
	term := new(big.Float).SetPrec(quadraturePrec)
	for i := 1; i < n; i++ {
		y, err := f(a + float64(i)*h)
		if err != nil {
			return 0, err
		}
		sum.Add(sum, term.SetFloat64(y))
	}
	sum.Mul(sum, big.NewFloat(h))

	res, _ := sum.Float64()
	log.Printf("Quadrature of %s over [%g, %g] with %d intervals took %s. Result %s",
		e, a, b, n, time.Since(start), sum.Text('g', 17))
	if !expr.Finite(res) {
		return 0, newFailure(DomainError, "the integral of %s over [%s, %s] does not converge", e, FormatNumber(a), FormatNumber(b))
	}
	return res, nil
}
