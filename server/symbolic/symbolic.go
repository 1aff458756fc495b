// Package symbolic is a small computer-algebra core: exact rational
// arithmetic, canonical sums/products/powers, differentiation, rule based
// integration and plain-text / LaTeX printing.
package symbolic

import (
	"errors"
	"math"
	"math/big"
	"sort"
)

// ErrUnsupported is returned when an expression uses a construct the engine
// cannot represent symbolically.
var ErrUnsupported = errors.New("unsupported in symbolic mode")

// Expr is a symbolic expression. Values are immutable; every transformation
// returns a new canonical tree.
type Expr interface {
	// String renders the expression the way a Python CAS prints it (x**3/3).
	String() string
	// LaTeX renders a typeset form.
	LaTeX() string
	// Diff differentiates with respect to the named symbol.
	Diff(v string) Expr
	// Subs replaces every occurrence of the named symbol.
	Subs(v string, val Expr) Expr
	// Float evaluates numerically; unbound symbols evaluate to NaN.
	Float(env map[string]float64) float64
	// Equal reports structural equality of canonical forms.
	Equal(other Expr) bool
}

// ===== numbers =====

// Num is an exact rational number.
type Num struct{ val *big.Rat }

func N(n int64) *Num            { return &Num{val: new(big.Rat).SetInt64(n)} }
func Frac(p, q int64) *Num      { return &Num{val: big.NewRat(p, q)} }
func NumRat(r *big.Rat) *Num    { return &Num{val: new(big.Rat).Set(r)} }
func (n *Num) Rat() *big.Rat    { return new(big.Rat).Set(n.val) }
func (n *Num) IsZero() bool     { return n.val.Sign() == 0 }
func (n *Num) IsOne() bool      { return n.val.Cmp(big.NewRat(1, 1)) == 0 }
func (n *Num) IsInt() bool      { return n.val.IsInt() }
func (n *Num) Sign() int        { return n.val.Sign() }
func (n *Num) Diff(string) Expr { return N(0) }

func (n *Num) Subs(string, Expr) Expr { return n }

func (n *Num) Float(map[string]float64) float64 {
	f, _ := n.val.Float64()
	return f
}

func (n *Num) Equal(o Expr) bool {
	m, ok := o.(*Num)
	return ok && n.val.Cmp(m.val) == 0
}

func (n *Num) String() string {
	if n.val.IsInt() {
		return n.val.Num().String()
	}
	return n.val.Num().String() + "/" + n.val.Denom().String()
}

func (n *Num) LaTeX() string {
	if n.val.IsInt() {
		return n.val.Num().String()
	}
	num := new(big.Int).Abs(n.val.Num())
	s := `\frac{` + num.String() + `}{` + n.val.Denom().String() + `}`
	if n.val.Sign() < 0 {
		return "-" + s
	}
	return s
}

func numAdd(a, b *Num) *Num { return &Num{val: new(big.Rat).Add(a.val, b.val)} }
func numMul(a, b *Num) *Num { return &Num{val: new(big.Rat).Mul(a.val, b.val)} }
func numNeg(a *Num) *Num    { return &Num{val: new(big.Rat).Neg(a.val)} }

// smallInt returns the value of n when it is an integer that fits comfortably
// in an int.
func (n *Num) smallInt() (int, bool) {
	if !n.val.IsInt() || !n.val.Num().IsInt64() {
		return 0, false
	}
	v := n.val.Num().Int64()
	if v > 1<<20 || v < -(1<<20) {
		return 0, false
	}
	return int(v), true
}

// ===== symbols =====

// Sym is a free variable.
type Sym struct{ Name string }

func S(name string) *Sym         { return &Sym{Name: name} }
func (s *Sym) String() string    { return s.Name }
func (s *Sym) LaTeX() string     { return s.Name }
func (s *Sym) Equal(o Expr) bool { t, ok := o.(*Sym); return ok && t.Name == s.Name }

func (s *Sym) Diff(v string) Expr {
	if s.Name == v {
		return N(1)
	}
	return N(0)
}

func (s *Sym) Subs(v string, val Expr) Expr {
	if s.Name == v {
		return val
	}
	return s
}

func (s *Sym) Float(env map[string]float64) float64 {
	if f, ok := env[s.Name]; ok {
		return f
	}
	return math.NaN()
}

// ===== constants =====

// Const is a named mathematical constant.
type Const struct{ Name string }

var (
	Pi = &Const{Name: "pi"}
	E  = &Const{Name: "E"}
)

func (c *Const) String() string         { return c.Name }
func (c *Const) Diff(string) Expr       { return N(0) }
func (c *Const) Subs(string, Expr) Expr { return c }
func (c *Const) Equal(o Expr) bool      { k, ok := o.(*Const); return ok && k.Name == c.Name }
func (c *Const) Float(map[string]float64) float64 {
	if c.Name == Pi.Name {
		return math.Pi
	}
	return math.E
}

func (c *Const) LaTeX() string {
	if c.Name == "pi" {
		return `\pi`
	}
	return "e"
}

// ===== helpers =====

// Symbols returns the sorted free symbol names of e.
func Symbols(e Expr) []string {
	seen := map[string]bool{}
	walk(e, func(x Expr) {
		if s, ok := x.(*Sym); ok {
			seen[s.Name] = true
		}
	})
	out := make([]string, 0, len(seen))
	for n := range seen {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// FreeOf reports whether e does not depend on v.
func FreeOf(e Expr, v string) bool {
	free := true
	walk(e, func(x Expr) {
		if s, ok := x.(*Sym); ok && s.Name == v {
			free = false
		}
	})
	return free
}

func walk(e Expr, fn func(Expr)) {
	fn(e)
	switch t := e.(type) {
	case *Add:
		for _, x := range t.terms {
			walk(x, fn)
		}
	case *Mul:
		for _, x := range t.factors {
			walk(x, fn)
		}
	case *Pow:
		walk(t.base, fn)
		walk(t.exp, fn)
	case *Call:
		walk(t.arg, fn)
	case *Integral:
		walk(t.body, fn)
		if t.lower != nil {
			walk(t.lower, fn)
			walk(t.upper, fn)
		}
	}
}

func isZero(e Expr) bool {
	n, ok := e.(*Num)
	return ok && n.IsZero()
}

func isOne(e Expr) bool {
	n, ok := e.(*Num)
	return ok && n.IsOne()
}

// Neg returns -e.
func Neg(e Expr) Expr { return NewMul(N(-1), e) }

// Sub returns a - b.
func Sub(a, b Expr) Expr { return NewAdd(a, Neg(b)) }

// Div returns a / b.
func Div(a, b Expr) Expr { return NewMul(a, NewPow(b, N(-1))) }
