package symbolic

import (
	"math"
	"math/big"

	"multicalc.com/server/expr"
)

// Call is a named elementary function applied to one argument.
type Call struct {
	fn  string
	arg Expr
}

func (c *Call) Func() string { return c.fn }
func (c *Call) Arg() Expr    { return c.arg }

var (
	oddFuncs  = map[string]bool{"sin": true, "tan": true, "asin": true, "atan": true, "sinh": true, "tanh": true, "asinh": true, "atanh": true, "sign": true}
	evenFuncs = map[string]bool{"cos": true, "cosh": true, "abs": true}
)

var latexFuncs = map[string]string{
	"sin":  `\sin`,
	"cos":  `\cos`,
	"tan":  `\tan`,
	"sinh": `\sinh`,
	"cosh": `\cosh`,
	"tanh": `\tanh`,
	"log":  `\log`,
	"asin": `\operatorname{asin}`,
	"acos": `\operatorname{acos}`,
	"atan": `\operatorname{atan}`,

	"asinh": `\operatorname{asinh}`,
	"acosh": `\operatorname{acosh}`,
	"atanh": `\operatorname{atanh}`,
	"sign":  `\operatorname{sign}`,
}

// NewCall applies fn to arg, folding exact special values.
func NewCall(fn string, arg Expr) Expr {
	if v, ok := specialValue(fn, arg); ok {
		return v
	}
	if c, ok := arg.(*Call); ok {
		switch {
		case fn == "exp" && c.fn == "log", fn == "log" && c.fn == "exp":
			return c.arg
		case fn == "abs" && (c.fn == "abs" || c.fn == "exp" || c.fn == "cosh"):
			return c
		}
	}
	if negative(arg) {
		switch {
		case oddFuncs[fn]:
			return Neg(NewCall(fn, Neg(arg)))
		case evenFuncs[fn]:
			return NewCall(fn, Neg(arg))
		}
	}
	return &Call{fn: fn, arg: arg}
}

func specialValue(fn string, arg Expr) (Expr, bool) {
	if n, ok := arg.(*Num); ok {
		switch fn {
		case "abs":
			r := n.Rat()
			return NumRat(r.Abs(r)), true
		case "sign":
			return N(int64(n.Sign())), true
		}
		switch {
		case n.IsZero():
			switch fn {
			case "sin", "tan", "asin", "atan", "sinh", "tanh", "asinh", "atanh":
				return N(0), true
			case "cos", "cosh", "exp":
				return N(1), true
			case "acos":
				return NewMul(Frac(1, 2), Pi), true
			}
		case n.IsOne():
			switch fn {
			case "log", "acos", "acosh":
				return N(0), true
			case "exp":
				return E, true
			case "asin":
				return NewMul(Frac(1, 2), Pi), true
			case "atan":
				return NewMul(Frac(1, 4), Pi), true
			}
		}
		return nil, false
	}
	if c, ok := arg.(*Const); ok && c.Name == E.Name && fn == "log" {
		return N(1), true
	}
	if k, ok := halfPiMultiple(arg); ok {
		switch fn {
		case "sin":
			return N([]int64{0, 1, 0, -1}[k%4]), true
		case "cos":
			return N([]int64{1, 0, -1, 0}[k%4]), true
		case "tan":
			if k%2 == 0 {
				return N(0), true
			}
		}
	}
	return nil, false
}

// halfPiMultiple returns k when arg == k*pi/2 with k >= 0.
func halfPiMultiple(arg Expr) (int, bool) {
	if c, ok := arg.(*Const); ok && c.Name == Pi.Name {
		return 2, true
	}
	m, ok := arg.(*Mul)
	if !ok || len(m.factors) != 2 {
		return 0, false
	}
	n, ok := m.factors[0].(*Num)
	if !ok {
		return 0, false
	}
	if c, ok := m.factors[1].(*Const); !ok || c.Name != Pi.Name {
		return 0, false
	}
	twice := new(big.Rat).Mul(n.Rat(), big.NewRat(2, 1))
	if !twice.IsInt() || twice.Sign() < 0 || !twice.Num().IsInt64() {
		return 0, false
	}
	return int(twice.Num().Int64() % 4), true
}

func (c *Call) String() string { return c.fn + "(" + c.arg.String() + ")" }

func (c *Call) LaTeX() string {
	switch c.fn {
	case "exp":
		return "e^{" + c.arg.LaTeX() + "}"
	case "abs":
		return `\left|{` + c.arg.LaTeX() + `}\right|`
	}
	name, ok := latexFuncs[c.fn]
	if !ok {
		name = `\operatorname{` + c.fn + `}`
	}
	return name + `{\left(` + c.arg.LaTeX() + ` \right)}`
}

// derivative returns f'(u) for the outer function.
func (c *Call) derivative() Expr {
	u := c.arg
	one := N(1)
	sq := NewPow(u, N(2))
	switch c.fn {
	case "sin":
		return NewCall("cos", u)
	case "cos":
		return Neg(NewCall("sin", u))
	case "tan":
		return NewAdd(NewPow(NewCall("tan", u), N(2)), one)
	case "asin":
		return NewPow(Sub(one, sq), Frac(-1, 2))
	case "acos":
		return Neg(NewPow(Sub(one, sq), Frac(-1, 2)))
	case "atan":
		return NewPow(NewAdd(sq, one), N(-1))
	case "sinh":
		return NewCall("cosh", u)
	case "cosh":
		return NewCall("sinh", u)
	case "tanh":
		return Sub(one, NewPow(NewCall("tanh", u), N(2)))
	case "asinh":
		return NewPow(NewAdd(sq, one), Frac(-1, 2))
	case "acosh":
		return NewPow(Sub(sq, one), Frac(-1, 2))
	case "atanh":
		return NewPow(Sub(one, sq), N(-1))
	case "exp":
		return c
	case "log":
		return NewPow(u, N(-1))
	case "abs":
		return NewCall("sign", u)
	}
	// sign is piecewise constant
	return N(0)
}

func (c *Call) Diff(v string) Expr {
	du := c.arg.Diff(v)
	if isZero(du) {
		return N(0)
	}
	return NewMul(c.derivative(), du)
}

func (c *Call) Subs(v string, val Expr) Expr {
	return NewCall(c.fn, c.arg.Subs(v, val))
}

func (c *Call) Float(env map[string]float64) float64 {
	f, ok := expr.Lookup(c.fn)
	if !ok {
		return math.NaN()
	}
	return f(c.arg.Float(env))
}

func (c *Call) Equal(o Expr) bool { return equal(c, o) }
