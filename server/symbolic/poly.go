package symbolic

// maxPolyDegree bounds the degree recognized as a polynomial.
const maxPolyDegree = 64

// PolyCoeffs returns the coefficients of e as a polynomial in v, lowest degree
// first. Coefficients are free of v.
func PolyCoeffs(e Expr, v string) ([]Expr, bool) {
	byDeg := map[int][]Expr{}
	top := 0
	for _, t := range terms(Expand(e)) {
		d, c, ok := monomial(t, v)
		if !ok {
			return nil, false
		}
		byDeg[d] = append(byDeg[d], c)
		top = max(top, d)
	}
	out := make([]Expr, top+1)
	for d := range out {
		out[d] = NewAdd(byDeg[d]...)
	}
	return out, true
}

// monomial splits c*v**d.
func monomial(t Expr, v string) (int, Expr, bool) {
	if FreeOf(t, v) {
		return 0, t, true
	}
	if d, ok := varPower(t, v); ok {
		return d, N(1), true
	}
	m, ok := t.(*Mul)
	if !ok {
		return 0, nil, false
	}
	deg := -1
	var rest []Expr
	for _, f := range m.factors {
		if FreeOf(f, v) {
			rest = append(rest, f)
			continue
		}
		d, ok := varPower(f, v)
		if !ok || deg >= 0 {
			return 0, nil, false
		}
		deg = d
	}
	return deg, NewMul(rest...), true
}

func varPower(e Expr, v string) (int, bool) {
	switch t := e.(type) {
	case *Sym:
		return 1, t.Name == v
	case *Pow:
		s, ok := t.base.(*Sym)
		if !ok || s.Name != v {
			return 0, false
		}
		n, ok := t.exp.(*Num)
		if !ok {
			return 0, false
		}
		k, ok := n.smallInt()
		if !ok || k < 1 || k > maxPolyDegree {
			return 0, false
		}
		return k, true
	}
	return 0, false
}

// IsPolynomial reports whether e is a polynomial in v.
func IsPolynomial(e Expr, v string) bool {
	_, ok := PolyCoeffs(e, v)
	return ok
}

// linear matches u == a*v + b with a != 0.
func linear(u Expr, v string) (a, b Expr, ok bool) {
	cs, ok := PolyCoeffs(u, v)
	if !ok || len(cs) != 2 || isZero(cs[1]) {
		return nil, nil, false
	}
	return cs[1], cs[0], true
}
