package symbolic

import (
	"fmt"
	"math/big"

	"multicalc.com/server/expr"
)

// Parse parses src with the sandboxed grammar and converts it.
func Parse(src string, maxLen int) (Expr, error) {
	n, err := expr.ParseLimit(src, maxLen)
	if err != nil {
		return nil, err
	}
	return FromNode(n)
}

// FromNode converts a parsed tree into canonical symbolic form. Decimal
// literals become exact rationals (0.5 -> 1/2).
func FromNode(n expr.Node) (Expr, error) {
	switch t := n.(type) {
	case *expr.Number:
		r, ok := new(big.Rat).SetString(t.Text)
		if !ok {
			r = new(big.Rat)
			if r.SetFloat64(t.Value) == nil {
				return nil, fmt.Errorf("%w: number '%s' is out of range", ErrUnsupported, t.Text)
			}
		}
		return NumRat(r), nil

	case *expr.Ident:
		switch t.Name {
		case "pi":
			return Pi, nil
		case "e", "E":
			return E, nil
		}
		return S(t.Name), nil

	case *expr.Unary:
		x, err := FromNode(t.X)
		if err != nil {
			return nil, err
		}
		if t.Op == '-' {
			return Neg(x), nil
		}
		return x, nil

	case *expr.Binary:
		l, err := FromNode(t.Left)
		if err != nil {
			return nil, err
		}
		r, err := FromNode(t.Right)
		if err != nil {
			return nil, err
		}
		switch t.Op {
		case '+':
			return NewAdd(l, r), nil
		case '-':
			return Sub(l, r), nil
		case '*':
			return NewMul(l, r), nil
		case '/':
			return Div(l, r), nil
		case '^':
			return NewPow(l, r), nil
		}
		return nil, fmt.Errorf("%w: operator '%c'", ErrUnsupported, t.Op)

	case *expr.Call:
		arg, err := FromNode(t.Arg)
		if err != nil {
			return nil, err
		}
		switch t.Func {
		case "sqrt":
			return Sqrt(arg), nil
		case "sec":
			return NewPow(NewCall("cos", arg), N(-1)), nil
		case "csc":
			return NewPow(NewCall("sin", arg), N(-1)), nil
		case "cot":
			return NewPow(NewCall("tan", arg), N(-1)), nil
		case "log10":
			return Div(NewCall("log", arg), NewCall("log", N(10))), nil
		case "log2":
			return Div(NewCall("log", arg), NewCall("log", N(2))), nil
		case "floor", "ceil":
			return nil, fmt.Errorf("%w: %s()", ErrUnsupported, t.Func)
		}
		return NewCall(t.Func, arg), nil
	}
	return nil, fmt.Errorf("%w: %T", ErrUnsupported, n)
}
