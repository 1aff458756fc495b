package expr

import (
	"fmt"
	"math"
)

// Evaluate computes n for the given variable bindings. Out-of-domain
// operations produce NaN or ±Inf, never an error.
func Evaluate(n Node, vars map[string]float64) (float64, error) {
	switch t := n.(type) {
	case *Number:
		return t.Value, nil
	case *Ident:
		if v, ok := vars[t.Name]; ok {
			return v, nil
		}
		if v, ok := Constant(t.Name); ok {
			return v, nil
		}
		return 0, &NameError{Name: t.Name}
	case *Unary:
		x, err := Evaluate(t.X, vars)
		if err != nil {
			return 0, err
		}
		if t.Op == '-' {
			return -x, nil
		}
		return x, nil
	case *Binary:
		l, err := Evaluate(t.Left, vars)
		if err != nil {
			return 0, err
		}
		r, err := Evaluate(t.Right, vars)
		if err != nil {
			return 0, err
		}
		return apply(t.Op, l, r), nil
	case *Call:
		f, ok := Lookup(t.Func)
		if !ok {
			return 0, fmt.Errorf("%w: unknown function '%s'", ErrName, t.Func)
		}
		x, err := Evaluate(t.Arg, vars)
		if err != nil {
			return 0, err
		}
		return f(x), nil
	}
	return 0, fmt.Errorf("%w: unsupported node %T", ErrSyntax, n)
}

// EvaluateVector evaluates n over every value of xs bound to variable. The tree
// is walked once; each node produces a whole vector.
func EvaluateVector(n Node, variable string, xs []float64) ([]float64, error) {
	switch t := n.(type) {
	case *Number:
		return fill(len(xs), t.Value), nil
	case *Ident:
		if t.Name == variable {
			out := make([]float64, len(xs))
			copy(out, xs)
			return out, nil
		}
		if v, ok := Constant(t.Name); ok {
			return fill(len(xs), v), nil
		}
		return nil, &NameError{Name: t.Name}
	case *Unary:
		x, err := EvaluateVector(t.X, variable, xs)
		if err != nil {
			return nil, err
		}
		if t.Op == '-' {
			for i := range x {
				x[i] = -x[i]
			}
		}
		return x, nil
	case *Binary:
		l, err := EvaluateVector(t.Left, variable, xs)
		if err != nil {
			return nil, err
		}
		r, err := EvaluateVector(t.Right, variable, xs)
		if err != nil {
			return nil, err
		}
		for i := range l {
			l[i] = apply(t.Op, l[i], r[i])
		}
		return l, nil
	case *Call:
		f, ok := Lookup(t.Func)
		if !ok {
			return nil, fmt.Errorf("%w: unknown function '%s'", ErrName, t.Func)
		}
		x, err := EvaluateVector(t.Arg, variable, xs)
		if err != nil {
			return nil, err
		}
		for i := range x {
			x[i] = f(x[i])
		}
		return x, nil
	}
	return nil, fmt.Errorf("%w: unsupported node %T", ErrSyntax, n)
}

// apply follows IEEE semantics: x/0 is ±Inf (NaN for 0/0).
func apply(op byte, l, r float64) float64 {
	switch op {
	case '+':
		return l + r
	case '-':
		return l - r
	case '*':
		return l * r
	case '/':
		return l / r
	case '^':
		return math.Pow(l, r)
	}
	return math.NaN()
}

func fill(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}
