package symbolic

import (
	"math"
	"math/big"
)

// maxExactBits bounds the size of exactly computed rational powers.
const maxExactBits = 4096

// Pow is base**exp.
type Pow struct{ base, exp Expr }

func (p *Pow) Base() Expr     { return p.base }
func (p *Pow) Exponent() Expr { return p.exp }

// NewPow builds the canonical power base**exp.
func NewPow(base, exp Expr) Expr {
	if isZero(exp) {
		return N(1)
	}
	if isOne(exp) || isOne(base) {
		if isOne(base) {
			return N(1)
		}
		return base
	}
	en, expNum := exp.(*Num)
	if isZero(base) && expNum && en.Sign() > 0 {
		return N(0)
	}

	if bn, ok := base.(*Num); ok && expNum {
		if r, ok := exactPow(bn, en); ok {
			return r
		}
		return &Pow{base: base, exp: exp}
	}

	if expNum && en.IsInt() {
		switch b := base.(type) {
		case *Pow:
			// (u**a)**n == u**(a*n) for integer n
			return NewPow(b.base, NewMul(b.exp, en))
		case *Mul:
			fs := make([]Expr, len(b.factors))
			for i, f := range b.factors {
				fs[i] = NewPow(f, en)
			}
			return NewMul(fs...)
		}
	}
	if c, ok := base.(*Const); ok && c.Name == E.Name {
		return NewCall("exp", exp)
	}
	return &Pow{base: base, exp: exp}
}

// Sqrt returns e**(1/2).
func Sqrt(e Expr) Expr { return NewPow(e, Frac(1, 2)) }

// exactPow evaluates b**e when the result is rational: integer exponents and
// square roots of perfect squares.
func exactPow(b, e *Num) (Expr, bool) {
	if b.IsZero() && e.Sign() < 0 {
		return nil, false
	}
	er := e.Rat()
	q := er.Denom()
	switch {
	case q.IsInt64() && q.Int64() == 1:
	case q.IsInt64() && q.Int64() == 2:
		if b.Sign() < 0 {
			return nil, false
		}
		root, ok := ratSqrt(b.Rat())
		if !ok {
			return nil, false
		}
		b = NumRat(root)
		er = new(big.Rat).SetInt(er.Num())
	default:
		return nil, false
	}

	n := er.Num()
	if !n.IsInt64() {
		return nil, false
	}
	k := n.Int64()
	br := b.Rat()
	bits := int64(br.Num().BitLen() + br.Denom().BitLen())
	if k > 64 || k < -64 || bits*abs64(k) > maxExactBits {
		return nil, false
	}
	if k < 0 {
		br.Inv(br)
		k = -k
	}
	num := new(big.Int).Exp(br.Num(), big.NewInt(k), nil)
	den := new(big.Int).Exp(br.Denom(), big.NewInt(k), nil)
	return NumRat(new(big.Rat).SetFrac(num, den)), true
}

func ratSqrt(r *big.Rat) (*big.Rat, bool) {
	sqrtInt := func(x *big.Int) (*big.Int, bool) {
		s := new(big.Int).Sqrt(x)
		return s, new(big.Int).Mul(s, s).Cmp(x) == 0
	}
	p, ok := sqrtInt(r.Num())
	if !ok {
		return nil, false
	}
	q, ok := sqrtInt(r.Denom())
	if !ok {
		return nil, false
	}
	return new(big.Rat).SetFrac(p, q), true
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

func isHalf(e Expr) bool {
	n, ok := e.(*Num)
	return ok && n.val.Cmp(big.NewRat(1, 2)) == 0
}

func (p *Pow) String() string {
	if n, ok := p.exp.(*Num); ok && n.Sign() < 0 {
		return fractionString([]Expr{p})
	}
	if isHalf(p.exp) {
		return "sqrt(" + p.base.String() + ")"
	}
	return paren(p.base, precPow+1) + "**" + paren(p.exp, precPow)
}

func (p *Pow) LaTeX() string {
	if n, ok := p.exp.(*Num); ok && n.Sign() < 0 {
		return fractionLaTeX([]Expr{p})
	}
	if isHalf(p.exp) {
		return `\sqrt{` + p.base.LaTeX() + `}`
	}
	if c, ok := p.base.(*Call); ok {
		if name, ok := latexFuncs[c.fn]; ok {
			return name + "^{" + p.exp.LaTeX() + `}{\left(` + c.arg.LaTeX() + ` \right)}`
		}
	}
	return latexParen(p.base, precPow+1) + "^{" + p.exp.LaTeX() + "}"
}

func (p *Pow) Diff(v string) Expr {
	db := p.base.Diff(v)
	de := p.exp.Diff(v)
	switch {
	case isZero(de):
		// n * u**(n-1) * u'
		return NewMul(p.exp, NewPow(p.base, NewAdd(p.exp, N(-1))), db)
	case isZero(db):
		// c**u * log(c) * u'
		return NewMul(p, NewCall("log", p.base), de)
	}
	// u**w * (w' log u + w u'/u)
	return NewMul(p, NewAdd(
		NewMul(de, NewCall("log", p.base)),
		NewMul(p.exp, db, NewPow(p.base, N(-1))),
	))
}

func (p *Pow) Subs(v string, val Expr) Expr {
	return NewPow(p.base.Subs(v, val), p.exp.Subs(v, val))
}

func (p *Pow) Float(env map[string]float64) float64 {
	return math.Pow(p.base.Float(env), p.exp.Float(env))
}

func (p *Pow) Equal(o Expr) bool { return equal(p, o) }
