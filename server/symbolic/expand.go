package symbolic

// maxExpandPower bounds (a + b)**n expansion.
const maxExpandPower = 16

// maxExpandTerms bounds the term products one Expand call may form. Past it
// the input is returned as is.
const maxExpandTerms = 2000

// Expand multiplies out products and integer powers of sums. Expressions
// whose expansion would exceed maxExpandTerms products come back unchanged.
func Expand(e Expr) Expr {
	x := &expander{budget: maxExpandTerms}
	if r, ok := x.expand(e); ok {
		return r
	}
	return e
}

type expander struct{ budget int }

func (x *expander) expand(e Expr) (Expr, bool) {
	switch t := e.(type) {
	case *Add:
		terms := make([]Expr, len(t.terms))
		for i, s := range t.terms {
			r, ok := x.expand(s)
			if !ok {
				return nil, false
			}
			terms[i] = r
		}
		return NewAdd(terms...), true
	case *Mul:
		acc := Expr(N(1))
		for _, f := range t.factors {
			r, ok := x.expand(f)
			if !ok {
				return nil, false
			}
			if acc, ok = x.mul(acc, r); !ok {
				return nil, false
			}
		}
		return acc, true
	case *Pow:
		base, ok := x.expand(t.base)
		if !ok {
			return nil, false
		}
		n, isNum := t.exp.(*Num)
		if a, isSum := base.(*Add); isSum && isNum {
			if k, ok := n.smallInt(); ok && k > 1 && k <= maxExpandPower {
				acc := Expr(a)
				for i := 1; i < k; i++ {
					if acc, ok = x.mul(acc, a); !ok {
						return nil, false
					}
				}
				return acc, true
			}
		}
		exp, ok := x.expand(t.exp)
		if !ok {
			return nil, false
		}
		return NewPow(base, exp), true
	case *Call:
		arg, ok := x.expand(t.arg)
		if !ok {
			return nil, false
		}
		return NewCall(t.fn, arg), true
	}
	return e, true
}

// mul distributes a*b term by term. It never hands two sums to NewMul,
// which would fold them back into a power.
func (x *expander) mul(a, b Expr) (Expr, bool) {
	ta, tb := terms(a), terms(b)
	x.budget -= len(ta) * len(tb)
	if x.budget < 0 {
		return nil, false
	}
	out := make([]Expr, 0, len(ta)*len(tb))
	for _, s := range ta {
		for _, t := range tb {
			out = append(out, NewMul(s, t))
		}
	}
	return NewAdd(out...), true
}

func terms(e Expr) []Expr {
	if a, ok := e.(*Add); ok {
		return a.terms
	}
	return []Expr{e}
}
