package symbolic

// maxIntegrateDepth bounds the recursion of the rule search.
const maxIntegrateDepth = 24

// substitution variable; not a valid identifier in the input grammar
const substVar = "'u"

// Integrate returns an antiderivative of e with respect to v, without the
// constant of integration. ok is false when no rule applies.
func Integrate(e Expr, v string) (Expr, bool) {
	return (&integrator{v: v}).integrate(e, 0)
}

// DefiniteIntegrate evaluates the integral of e over [lower, upper] through
// an antiderivative.
func DefiniteIntegrate(e Expr, v string, lower, upper Expr) (Expr, bool) {
	if equal(lower, upper) {
		return N(0), true
	}
	F, ok := Integrate(e, v)
	if !ok {
		return nil, false
	}
	return Sub(F.Subs(v, upper), F.Subs(v, lower)), true
}

type integrator struct{ v string }

func (in *integrator) integrate(e Expr, depth int) (Expr, bool) {
	if depth > maxIntegrateDepth {
		return nil, false
	}
	v := in.v
	if FreeOf(e, v) {
		return NewMul(e, S(v)), true
	}

	switch t := e.(type) {
	case *Sym:
		return NewMul(Frac(1, 2), NewPow(t, N(2))), true
	case *Add:
		parts := make([]Expr, 0, len(t.terms))
		for _, x := range t.terms {
			r, ok := in.integrate(x, depth+1)
			if !ok {
				return nil, false
			}
			parts = append(parts, r)
		}
		return NewAdd(parts...), true
	case *Mul:
		var consts, deps []Expr
		for _, f := range t.factors {
			if FreeOf(f, v) {
				consts = append(consts, f)
			} else {
				deps = append(deps, f)
			}
		}
		if len(consts) > 0 {
			r, ok := in.integrate(NewMul(deps...), depth+1)
			if !ok {
				return nil, false
			}
			return NewMul(append(consts, r)...), true
		}
	}

	if r, ok := in.table(e); ok {
		return r, true
	}
	if r, ok := in.quadratic(e); ok {
		return r, true
	}
	if r, ok := in.byParts(e, depth); ok {
		return r, true
	}
	if x := Expand(e); !equal(x, e) {
		if r, ok := in.integrate(x, depth+1); ok {
			return r, true
		}
	}
	return in.substitute(e, depth)
}

// antiderivatives of f(u) du.
var antiderivatives = map[string]func(u Expr) Expr{
	"sin":  func(u Expr) Expr { return Neg(NewCall("cos", u)) },
	"cos":  func(u Expr) Expr { return NewCall("sin", u) },
	"tan":  func(u Expr) Expr { return Neg(NewCall("log", NewCall("cos", u))) },
	"exp":  func(u Expr) Expr { return NewCall("exp", u) },
	"sinh": func(u Expr) Expr { return NewCall("cosh", u) },
	"cosh": func(u Expr) Expr { return NewCall("sinh", u) },
	"tanh": func(u Expr) Expr { return NewCall("log", NewCall("cosh", u)) },
	"log":  func(u Expr) Expr { return Sub(NewMul(u, NewCall("log", u)), u) },
	"sign": func(u Expr) Expr { return NewCall("abs", u) },
	"abs":  func(u Expr) Expr { return NewMul(Frac(1, 2), u, NewCall("abs", u)) },
	"asin": func(u Expr) Expr {
		return NewAdd(NewMul(u, NewCall("asin", u)), Sqrt(Sub(N(1), NewPow(u, N(2)))))
	},
	"acos": func(u Expr) Expr {
		return Sub(NewMul(u, NewCall("acos", u)), Sqrt(Sub(N(1), NewPow(u, N(2)))))
	},
	"atan": func(u Expr) Expr {
		return Sub(NewMul(u, NewCall("atan", u)), NewMul(Frac(1, 2), NewCall("log", NewAdd(NewPow(u, N(2)), N(1)))))
	},
	"asinh": func(u Expr) Expr {
		return Sub(NewMul(u, NewCall("asinh", u)), Sqrt(NewAdd(NewPow(u, N(2)), N(1))))
	},
	"acosh": func(u Expr) Expr {
		return Sub(NewMul(u, NewCall("acosh", u)), Sqrt(Sub(NewPow(u, N(2)), N(1))))
	},
	"atanh": func(u Expr) Expr {
		return NewAdd(NewMul(u, NewCall("atanh", u)), NewMul(Frac(1, 2), NewCall("log", Sub(N(1), NewPow(u, N(2))))))
	},
}

// table integrates f(a*v + b) and (a*v + b)**n directly.
func (in *integrator) table(e Expr) (Expr, bool) {
	switch t := e.(type) {
	case *Pow:
		if c, ok := t.base.(*Call); ok && !FreeOf(c, in.v) {
			return in.trigPower(c, t.exp)
		}
		if FreeOf(t.exp, in.v) {
			a, _, ok := linear(t.base, in.v)
			if !ok {
				return nil, false
			}
			n, isNum := t.exp.(*Num)
			if isNum && n.Equal(N(-1)) {
				return Div(NewCall("log", t.base), a), true
			}
			if _, isSum := t.base.(*Add); isSum && isNum && n.IsInt() && n.Sign() > 0 {
				// expanded polynomials integrate term by term
				return nil, false
			}
			n1 := NewAdd(t.exp, N(1))
			return Div(NewPow(t.base, n1), NewMul(a, n1)), true
		}
		if FreeOf(t.base, in.v) {
			a, _, ok := linear(t.exp, in.v)
			if !ok {
				return nil, false
			}
			return Div(t, NewMul(a, NewCall("log", t.base))), true
		}
	case *Call:
		F, ok := antiderivatives[t.fn]
		if !ok {
			return nil, false
		}
		a, _, ok := linear(t.arg, in.v)
		if !ok {
			return nil, false
		}
		return Div(F(t.arg), a), true
	}
	return nil, false
}

// trigPower integrates squares of sin, cos and tan of a linear argument by
// power reduction, and 1/cos(u)**2, 1/sin(u)**2 through tan.
func (in *integrator) trigPower(c *Call, exp Expr) (Expr, bool) {
	a, _, ok := linear(c.arg, in.v)
	if !ok {
		return nil, false
	}
	u := c.arg
	half := NewMul(Frac(1, 2), u)
	quarter := NewMul(Frac(1, 4), NewCall("sin", NewMul(N(2), u)))

	var F Expr
	switch {
	case exp.Equal(N(2)) && c.fn == "sin":
		F = Sub(half, quarter)
	case exp.Equal(N(2)) && c.fn == "cos":
		F = NewAdd(half, quarter)
	case exp.Equal(N(2)) && c.fn == "tan":
		F = Sub(NewCall("tan", u), u)
	case exp.Equal(N(-2)) && c.fn == "cos":
		F = NewCall("tan", u)
	case exp.Equal(N(-2)) && c.fn == "sin":
		F = Neg(NewPow(NewCall("tan", u), N(-1)))
	default:
		return nil, false
	}
	return Div(F, a), true
}

// quadratic handles 1/(a*v**2 + b*v + c) with no real roots,
// 1/sqrt(c - a*v**2) and 1/sqrt(a*v**2 + c).
func (in *integrator) quadratic(e Expr) (Expr, bool) {
	p, ok := e.(*Pow)
	if !ok {
		return nil, false
	}
	cs, ok := PolyCoeffs(p.base, in.v)
	if !ok || len(cs) != 3 {
		return nil, false
	}
	a, ok1 := cs[2].(*Num)
	b, ok2 := cs[1].(*Num)
	c, ok3 := cs[0].(*Num)
	if !ok1 || !ok2 || !ok3 {
		return nil, false
	}
	x := S(in.v)

	switch {
	case p.exp.Equal(N(-1)) && a.Sign() > 0:
		// a*(v + b/2a)**2 + d
		shift := Div(b, NewMul(N(2), a))
		d := Sub(c, Div(NewPow(b, N(2)), NewMul(N(4), a)))
		dn, ok := d.(*Num)
		if !ok || dn.Sign() <= 0 {
			return nil, false
		}
		w := NewAdd(x, shift)
		return Div(NewCall("atan", NewMul(w, Sqrt(Div(a, d)))), Sqrt(NewMul(a, d))), true

	case p.exp.Equal(Frac(-1, 2)) && b.IsZero() && c.Sign() > 0:
		if a.Sign() < 0 {
			na := numNeg(a)
			return Div(NewCall("asin", NewMul(x, Sqrt(Div(na, c)))), Sqrt(na)), true
		}
		return Div(NewCall("asinh", NewMul(x, Sqrt(Div(a, c)))), Sqrt(a)), true
	}
	return nil, false
}

// byParts integrates P(v)*g(v) where P is a polynomial and g has a table
// antiderivative (trigonometric, hyperbolic, exponential), and P(v)*log(v).
func (in *integrator) byParts(e Expr, depth int) (Expr, bool) {
	m, ok := e.(*Mul)
	if !ok {
		return nil, false
	}
	var g Expr
	var poly []Expr
	for _, f := range m.factors {
		if g == nil && partsCandidate(f, in.v) {
			g = f
			continue
		}
		poly = append(poly, f)
	}
	if g == nil {
		return nil, false
	}
	P := NewMul(poly...)
	if !IsPolynomial(P, in.v) {
		return nil, false
	}

	if c, ok := g.(*Call); ok && c.fn == "log" {
		// (∫P) log(u) - ∫ (∫P) u'/u
		iP, ok := in.integrate(P, depth+1)
		if !ok {
			return nil, false
		}
		rest, ok := in.integrate(Expand(NewMul(iP, g.Diff(in.v))), depth+1)
		if !ok {
			return nil, false
		}
		return Sub(NewMul(iP, g), rest), true
	}

	G, ok := in.table(g)
	if !ok {
		return nil, false
	}
	rest, ok := in.integrate(Expand(NewMul(P.Diff(in.v), G)), depth+1)
	if !ok {
		return nil, false
	}
	return Sub(NewMul(P, G), rest), true
}

func partsCandidate(f Expr, v string) bool {
	switch t := f.(type) {
	case *Call:
		switch t.fn {
		case "sin", "cos", "exp", "sinh", "cosh":
			_, _, ok := linear(t.arg, v)
			return ok
		case "log":
			_, b, ok := linear(t.arg, v)
			return ok && isZero(b)
		}
	case *Pow:
		if FreeOf(t.base, v) {
			_, _, ok := linear(t.exp, v)
			return ok
		}
	}
	return false
}

// substitute tries u-substitution for every inner expression u: the
// integrand divided by du/dv must be a function of u alone.
func (in *integrator) substitute(e Expr, depth int) (Expr, bool) {
	t := S(substVar)
	for _, u := range candidates(e, in.v) {
		du := u.Diff(in.v)
		if isZero(du) {
			continue
		}
		g := replace(Div(e, du), u, t)
		if !FreeOf(g, in.v) {
			continue
		}
		G, ok := (&integrator{v: substVar}).integrate(g, depth+1)
		if !ok {
			continue
		}
		return G.Subs(substVar, u), true
	}
	return nil, false
}

func candidates(e Expr, v string) []Expr {
	var out []Expr
	seen := map[string]bool{}
	add := func(x Expr) {
		if s, ok := x.(*Sym); ok && s.Name == v {
			return
		}
		if FreeOf(x, v) || seen[x.String()] {
			return
		}
		seen[x.String()] = true
		out = append(out, x)
	}
	walk(e, func(x Expr) {
		switch t := x.(type) {
		case *Call:
			add(t)
			add(t.arg)
		case *Pow:
			add(t)
			add(t.base)
		}
	})
	return out
}

// replace substitutes every occurrence of target in e.
func replace(e, target, with Expr) Expr {
	if equal(e, target) {
		return with
	}
	switch t := e.(type) {
	case *Add:
		out := make([]Expr, len(t.terms))
		for i, x := range t.terms {
			out[i] = replace(x, target, with)
		}
		return NewAdd(out...)
	case *Mul:
		out := make([]Expr, len(t.factors))
		for i, x := range t.factors {
			out[i] = replace(x, target, with)
		}
		return NewMul(out...)
	case *Pow:
		return NewPow(replace(t.base, target, with), replace(t.exp, target, with))
	case *Call:
		return NewCall(t.fn, replace(t.arg, target, with))
	}
	return e
}
