package icalc

import (
	"fmt"
	"log"

	"multicalc.com/server/config"
)

// SampleCount is the number of points in every plotted series.
const SampleCount = 500

// Options tune evaluation limits.
type Options struct {
	MaxExpressionLength int     // 0 disables the limit
	QuadraturePoints    int     // trapezoid subintervals for numeric definite integrals
	ZeroTolerance       float64 // |denominator| below which a trig ratio is undefined
}

// DefaultOptions returns the built-in limits.
func DefaultOptions() Options {
	return Options{
		MaxExpressionLength: 512,
		QuadraturePoints:    100000,
		ZeroTolerance:       1e-12,
	}
}

// Calc is the expression pipeline. It holds no per-request state and is
// safe for concurrent use.
type Calc struct {
	opts Options
}

// NewCalc builds a Calc from the loaded configuration.
func NewCalc() *Calc {
	return NewCalcWithOptions(Options{
		MaxExpressionLength: config.MaxExpressionLength,
		QuadraturePoints:    config.QuadraturePoints,
		ZeroTolerance:       config.ZeroTolerance,
	})
}

func NewCalcWithOptions(opts Options) *Calc {
	def := DefaultOptions()
	if opts.QuadraturePoints < 2 {
		opts.QuadraturePoints = def.QuadraturePoints
	}
	if opts.ZeroTolerance < 0 {
		opts.ZeroTolerance = def.ZeroTolerance
	}
	return &Calc{opts: opts}
}

// Evaluate runs one request to completion. It never panics: any failure,
// including a recovered panic, is returned as a *Failure.
func (c *Calc) Evaluate(req Request) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic while evaluating %T: %v", req, r)
			res = newFailure(ParseError, "%v", r)
		}
	}()

	switch r := req.(type) {
	case *GraphRequest:
		return c.graph(r)
	case *IndefiniteIntegralRequest:
		return c.indefiniteIntegral(r)
	case *DefiniteIntegralRequest:
		return c.definiteIntegral(r)
	case *DerivativeRequest:
		return c.derivative(r)
	case *TrigRequest:
		return c.trig(r)
	case *ArithmeticRequest:
		return c.arithmetic(r)
	case nil:
		return newFailure(ParseError, "no calculator selected")
	}
	return newFailure(ParseError, "unsupported request %T", req)
}

// EvaluateInput builds the request for in and evaluates it.
func (c *Calc) EvaluateInput(in Input) Result {
	req, err := BuildRequest(in)
	if err != nil {
		return AsFailure(err)
	}
	return c.Evaluate(req)
}

func (c *Calc) String() string {
	return fmt.Sprintf("Calc{maxExpr=%d quadPoints=%d zeroTol=%g}",
		c.opts.MaxExpressionLength, c.opts.QuadraturePoints, c.opts.ZeroTolerance)
}
