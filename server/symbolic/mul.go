package symbolic

import (
	"math/big"
	"sort"
	"strings"
)

// Mul is a canonical product of at least two factors. A numeric coefficient,
// when present and not 1, is the first factor; powers of a common base are
// merged.
type Mul struct{ factors []Expr }

// Factors returns the multiplicands.
func (m *Mul) Factors() []Expr { return m.factors }

// NewMul builds the canonical product of factors.
func NewMul(factors ...Expr) Expr {
	coeff := N(1)
	var order []string
	bases := map[string]Expr{}
	exps := map[string][]Expr{}

	var collect func(Expr)
	collect = func(f Expr) {
		switch x := f.(type) {
		case *Num:
			coeff = numMul(coeff, x)
			return
		case *Mul:
			for _, y := range x.factors {
				collect(y)
			}
			return
		}
		base, exp := asPow(f)
		key := base.String()
		if _, ok := bases[key]; !ok {
			order = append(order, key)
			bases[key] = base
		}
		exps[key] = append(exps[key], exp)
	}
	for _, f := range factors {
		collect(f)
	}
	if coeff.IsZero() {
		return N(0)
	}

	out := make([]Expr, 0, len(order))
	regroup := false
	for _, key := range order {
		p := NewPow(bases[key], NewAdd(exps[key]...))
		switch x := p.(type) {
		case *Num:
			coeff = numMul(coeff, x)
			continue
		case *Mul:
			regroup = true
		}
		out = append(out, p)
	}
	if regroup {
		return NewMul(append([]Expr{coeff}, out...)...)
	}
	if coeff.IsZero() {
		return N(0)
	}
	if i, j, arg, n, ok := trigQuotient(out); ok {
		// sin(u)**n / cos(u)**n == tan(u)**n
		rest := []Expr{coeff, NewPow(NewCall("tan", arg), n)}
		for k, f := range out {
			if k != i && k != j {
				rest = append(rest, f)
			}
		}
		return NewMul(rest...)
	}

	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := factorRank(out[i]), factorRank(out[j])
		if ri != rj {
			return ri < rj
		}
		return out[i].String() < out[j].String()
	})

	// A bare coefficient distributes over a single sum: 2*(x + 1) -> 2*x + 2.
	if !coeff.IsOne() && len(out) == 1 {
		if a, ok := out[0].(*Add); ok {
			terms := make([]Expr, len(a.terms))
			for i, t := range a.terms {
				terms[i] = NewMul(coeff, t)
			}
			return NewAdd(terms...)
		}
	}

	switch {
	case len(out) == 0:
		return coeff
	case len(out) == 1 && coeff.IsOne():
		return out[0]
	case coeff.IsOne():
		return &Mul{factors: out}
	}
	return &Mul{factors: append([]Expr{coeff}, out...)}
}

// trigQuotient finds sin(u)**n and cos(u)**-n among factors.
func trigQuotient(factors []Expr) (int, int, Expr, Expr, bool) {
	for i, f := range factors {
		sb, se := asPow(f)
		s, ok := sb.(*Call)
		if !ok || s.fn != "sin" {
			continue
		}
		for j, g := range factors {
			cb, ce := asPow(g)
			if c, ok := cb.(*Call); ok && c.fn == "cos" && equal(c.arg, s.arg) && isZero(NewAdd(se, ce)) {
				return i, j, s.arg, se, true
			}
		}
	}
	return 0, 0, nil, nil, false
}

func asPow(e Expr) (Expr, Expr) {
	if p, ok := e.(*Pow); ok {
		return p.base, p.exp
	}
	return e, N(1)
}

func factorRank(e Expr) int {
	switch t := e.(type) {
	case *Pow:
		switch t.base.(type) {
		case *Num:
			return 0
		case *Sym, *Const:
			return 2
		case *Call:
			return 3
		}
		return 4
	case *Const:
		return 1
	case *Sym:
		return 2
	case *Call:
		return 3
	}
	return 4
}

// splitFraction separates a product into numerator and denominator factors,
// moving negative powers to the denominator. The sign is returned apart.
func splitFraction(factors []Expr) (neg bool, num, den []Expr) {
	for _, f := range factors {
		if c, ok := f.(*Num); ok {
			r := c.Rat()
			if r.Sign() < 0 {
				neg = true
				r.Neg(r)
			}
			one := big.NewRat(1, 1)
			if p := new(big.Rat).SetInt(r.Num()); p.Cmp(one) != 0 {
				num = append(num, NumRat(p))
			}
			if q := new(big.Rat).SetInt(r.Denom()); q.Cmp(one) != 0 {
				den = append(den, NumRat(q))
			}
			continue
		}
		if p, ok := f.(*Pow); ok {
			if e, ok := p.exp.(*Num); ok && e.Sign() < 0 {
				den = append(den, NewPow(p.base, numNeg(e)))
				continue
			}
		}
		num = append(num, f)
	}
	return neg, num, den
}

func (m *Mul) String() string { return fractionString(m.factors) }
func (m *Mul) LaTeX() string  { return fractionLaTeX(m.factors) }

func fractionString(factors []Expr) string {
	neg, num, den := splitFraction(factors)
	var b strings.Builder
	if neg {
		b.WriteString("-")
	}
	if len(num) == 0 {
		b.WriteString("1")
	}
	for i, f := range num {
		if i > 0 {
			b.WriteString("*")
		}
		b.WriteString(paren(f, precMul))
	}
	if len(den) == 0 {
		return b.String()
	}
	b.WriteString("/")
	if len(den) == 1 {
		b.WriteString(paren(den[0], precMul+1))
		return b.String()
	}
	parts := make([]string, len(den))
	for i, f := range den {
		parts[i] = paren(f, precMul)
	}
	b.WriteString("(" + strings.Join(parts, "*") + ")")
	return b.String()
}

func fractionLaTeX(factors []Expr) string {
	neg, num, den := splitFraction(factors)
	join := func(fs []Expr) string {
		if len(fs) == 0 {
			return "1"
		}
		parts := make([]string, len(fs))
		for i, f := range fs {
			parts[i] = latexParen(f, precMul)
		}
		return strings.Join(parts, " ")
	}
	s := join(num)
	if len(den) > 0 {
		s = `\frac{` + s + `}{` + join(den) + `}`
	}
	if neg {
		return "-" + s
	}
	return s
}

func (m *Mul) Diff(v string) Expr {
	terms := make([]Expr, 0, len(m.factors))
	for i, f := range m.factors {
		d := f.Diff(v)
		if isZero(d) {
			continue
		}
		rest := make([]Expr, 0, len(m.factors))
		rest = append(rest, d)
		rest = append(rest, m.factors[:i]...)
		rest = append(rest, m.factors[i+1:]...)
		terms = append(terms, NewMul(rest...))
	}
	return NewAdd(terms...)
}

func (m *Mul) Subs(v string, val Expr) Expr {
	out := make([]Expr, len(m.factors))
	for i, f := range m.factors {
		out[i] = f.Subs(v, val)
	}
	return NewMul(out...)
}

func (m *Mul) Float(env map[string]float64) float64 {
	p := 1.0
	for _, f := range m.factors {
		p *= f.Float(env)
	}
	return p
}

func (m *Mul) Equal(o Expr) bool { return equal(m, o) }
