package symbolic

import (
	"math/big"
	"sort"
	"strings"
)

// Add is a canonical sum of at least two terms. Like terms are collected,
// terms are ordered by descending degree and the numeric term comes last.
type Add struct{ terms []Expr }

// Terms returns the summands.
func (a *Add) Terms() []Expr { return a.terms }

// NewAdd builds the canonical sum of terms.
func NewAdd(terms ...Expr) Expr {
	constant := N(0)
	var order []string
	coeffs := map[string]*big.Rat{}
	rests := map[string]Expr{}

	var collect func(Expr)
	collect = func(t Expr) {
		switch x := t.(type) {
		case *Num:
			constant = numAdd(constant, x)
			return
		case *Add:
			for _, y := range x.terms {
				collect(y)
			}
			return
		}
		c, rest := splitCoeff(t)
		key := rest.String()
		if _, ok := coeffs[key]; !ok {
			order = append(order, key)
			coeffs[key] = new(big.Rat)
			rests[key] = rest
		}
		coeffs[key].Add(coeffs[key], c)
	}
	for _, t := range terms {
		collect(t)
	}

	out := make([]Expr, 0, len(order)+1)
	for _, key := range order {
		c := coeffs[key]
		if c.Sign() == 0 {
			continue
		}
		out = append(out, withCoeff(c, rests[key]))
	}
	sort.SliceStable(out, func(i, j int) bool {
		di, dj := degree(out[i]), degree(out[j])
		if di != dj {
			return di > dj
		}
		_, ri := splitCoeff(out[i])
		_, rj := splitCoeff(out[j])
		return ri.String() < rj.String()
	})
	if !constant.IsZero() {
		out = append(out, constant)
	}

	switch len(out) {
	case 0:
		return N(0)
	case 1:
		return out[0]
	}
	return &Add{terms: out}
}

// splitCoeff separates the leading rational coefficient of a term.
func splitCoeff(e Expr) (*big.Rat, Expr) {
	m, ok := e.(*Mul)
	if !ok {
		return big.NewRat(1, 1), e
	}
	c, ok := m.factors[0].(*Num)
	if !ok {
		return big.NewRat(1, 1), e
	}
	rest := m.factors[1:]
	if len(rest) == 1 {
		return c.Rat(), rest[0]
	}
	return c.Rat(), &Mul{factors: rest}
}

// withCoeff rebuilds c*rest without re-canonicalizing rest.
func withCoeff(c *big.Rat, rest Expr) Expr {
	if c.Cmp(big.NewRat(1, 1)) == 0 {
		return rest
	}
	coeff := NumRat(c)
	if m, ok := rest.(*Mul); ok {
		return &Mul{factors: append([]Expr{coeff}, m.factors...)}
	}
	return &Mul{factors: []Expr{coeff, rest}}
}

// degree is the total polynomial degree used for ordering terms.
func degree(e Expr) float64 {
	switch t := e.(type) {
	case *Sym:
		return 1
	case *Pow:
		if n, ok := t.exp.(*Num); ok {
			return degree(t.base) * n.Float(nil)
		}
	case *Mul:
		d := 0.0
		for _, f := range t.factors {
			d += degree(f)
		}
		return d
	}
	return 0
}

// negative reports whether e prints with a leading minus sign.
func negative(e Expr) bool {
	switch t := e.(type) {
	case *Num:
		return t.Sign() < 0
	case *Mul:
		if c, ok := t.factors[0].(*Num); ok {
			return c.Sign() < 0
		}
	}
	return false
}

func (a *Add) String() string {
	var b strings.Builder
	for i, t := range a.terms {
		switch {
		case i == 0:
			b.WriteString(t.String())
		case negative(t):
			b.WriteString(" - ")
			b.WriteString(Neg(t).String())
		default:
			b.WriteString(" + ")
			b.WriteString(t.String())
		}
	}
	return b.String()
}

func (a *Add) LaTeX() string {
	var b strings.Builder
	for i, t := range a.terms {
		switch {
		case i == 0:
			b.WriteString(t.LaTeX())
		case negative(t):
			b.WriteString(" - ")
			b.WriteString(Neg(t).LaTeX())
		default:
			b.WriteString(" + ")
			b.WriteString(t.LaTeX())
		}
	}
	return b.String()
}

func (a *Add) Diff(v string) Expr {
	out := make([]Expr, len(a.terms))
	for i, t := range a.terms {
		out[i] = t.Diff(v)
	}
	return NewAdd(out...)
}

func (a *Add) Subs(v string, val Expr) Expr {
	out := make([]Expr, len(a.terms))
	for i, t := range a.terms {
		out[i] = t.Subs(v, val)
	}
	return NewAdd(out...)
}

func (a *Add) Float(env map[string]float64) float64 {
	sum := 0.0
	for _, t := range a.terms {
		sum += t.Float(env)
	}
	return sum
}

func (a *Add) Equal(o Expr) bool { return equal(a, o) }

func equal(a, b Expr) bool { return a.String() == b.String() }
