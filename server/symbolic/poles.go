package symbolic

import (
	"math"
	"sort"
)

// maxPeriodicPoles bounds the poles of one periodic factor listed over an
// interval.
const maxPeriodicPoles = 4096

// Poles returns the points of [a, b] where e, as a function of v, is
// infinite: real zeros of the base of every negative power, of every log
// argument and of the cosine behind tan. Zeros are located for polynomial
// bases and for sin, cos and tan of a linear argument; other bases are left
// to sampling.
func Poles(e Expr, v string, a, b float64) []float64 {
	if a > b {
		a, b = b, a
	}
	var out []float64
	walk(e, func(x Expr) {
		switch t := x.(type) {
		case *Pow:
			if n, ok := t.exp.(*Num); ok && n.Sign() < 0 && !FreeOf(t.base, v) {
				out = append(out, zeros(t.base, v, a, b)...)
			}
		case *Call:
			switch t.fn {
			case "log":
				out = append(out, zeros(t.arg, v, a, b)...)
			case "tan":
				out = append(out, zeros(NewCall("cos", t.arg), v, a, b)...)
			}
		}
	})
	for i, x := range out {
		if x == 0 {
			out[i] = 0 // no -0
		}
	}
	sort.Float64s(out)
	return dedupe(out)
}

// RealLogs rewrites every log(u) in e as log(abs(u)), the real antiderivative
// form that stays valid where u < 0.
func RealLogs(e Expr) Expr {
	switch t := e.(type) {
	case *Add:
		out := make([]Expr, len(t.terms))
		for i, x := range t.terms {
			out[i] = RealLogs(x)
		}
		return NewAdd(out...)
	case *Mul:
		out := make([]Expr, len(t.factors))
		for i, x := range t.factors {
			out[i] = RealLogs(x)
		}
		return NewMul(out...)
	case *Pow:
		return NewPow(RealLogs(t.base), RealLogs(t.exp))
	case *Call:
		arg := RealLogs(t.arg)
		if t.fn == "log" {
			return NewCall("log", NewCall("abs", arg))
		}
		return NewCall(t.fn, arg)
	}
	return e
}

func zeros(u Expr, v string, a, b float64) []float64 {
	if c, ok := u.(*Call); ok {
		switch c.fn {
		case "sin", "tan":
			return periodicZeros(c.arg, v, 0, a, b)
		case "cos":
			return periodicZeros(c.arg, v, math.Pi/2, a, b)
		}
		return nil
	}
	cs, ok := PolyCoeffs(u, v)
	if !ok {
		return nil
	}
	p := make([]float64, len(cs))
	for i, c := range cs {
		p[i] = c.Float(nil)
		if math.IsNaN(p[i]) || math.IsInf(p[i], 0) {
			return nil
		}
	}
	return realRoots(p, a, b)
}

// periodicZeros returns the v in [a, b] with arg(v) == offset + k*pi for a
// linear arg.
func periodicZeros(arg Expr, v string, offset, a, b float64) []float64 {
	ce, de, ok := linear(arg, v)
	if !ok {
		return nil
	}
	c, d := ce.Float(nil), de.Float(nil)
	if c == 0 || math.IsNaN(c) || math.IsNaN(d) || math.IsInf(c, 0) || math.IsInf(d, 0) {
		return nil
	}
	ulo, uhi := c*a+d, c*b+d
	if ulo > uhi {
		ulo, uhi = uhi, ulo
	}
	kmin := math.Ceil((ulo - offset) / math.Pi)
	kmax := math.Floor((uhi - offset) / math.Pi)
	if kmax-kmin >= maxPeriodicPoles {
		kmax = kmin + maxPeriodicPoles - 1
	}
	var out []float64
	for k := kmin; k <= kmax; k++ {
		x := (offset + k*math.Pi - d) / c
		if x >= a && x <= b {
			out = append(out, x)
		}
	}
	return out
}

// realRoots returns the real roots in [a, b] of the polynomial with
// coefficients p, lowest degree first. The interval is split at the roots
// of the derivative so every piece is monotone and holds at most one root.
func realRoots(p []float64, a, b float64) []float64 {
	for len(p) > 0 && p[len(p)-1] == 0 {
		p = p[:len(p)-1]
	}
	switch len(p) {
	case 0, 1:
		return nil
	case 2:
		if x := -p[0] / p[1]; x >= a && x <= b {
			return []float64{x}
		}
		return nil
	}

	dp := make([]float64, len(p)-1)
	for i := 1; i < len(p); i++ {
		dp[i-1] = float64(i) * p[i]
	}
	cuts := append([]float64{a}, realRoots(dp, a, b)...)
	cuts = append(cuts, b)

	var out []float64
	for i, x := range cuts {
		if nearZero(p, x) {
			out = append(out, x)
		}
		if i == 0 {
			continue
		}
		l, r := cuts[i-1], x
		fl, fr := horner(p, l), horner(p, r)
		if fl*fr < 0 {
			out = append(out, bisect(p, l, r, fl))
		}
	}
	sort.Float64s(out)
	return dedupe(out)
}

func bisect(p []float64, l, r, fl float64) float64 {
	for i := 0; i < 200 && l < r; i++ {
		m := l + (r-l)/2
		if m == l || m == r {
			break
		}
		fm := horner(p, m)
		if fm == 0 {
			return m
		}
		if (fm < 0) == (fl < 0) {
			l, fl = m, fm
		} else {
			r = m
		}
	}
	return l + (r-l)/2
}

// nearZero reports whether p(x) vanishes up to rounding.
func nearZero(p []float64, x float64) bool {
	scale, xp := 0.0, 1.0
	for _, c := range p {
		scale += math.Abs(c) * xp
		xp *= math.Abs(x)
	}
	return math.Abs(horner(p, x)) <= 1e-12*scale
}

func horner(p []float64, x float64) float64 {
	y := 0.0
	for i := len(p) - 1; i >= 0; i-- {
		y = y*x + p[i]
	}
	return y
}

func dedupe(xs []float64) []float64 {
	out := xs[:0]
	for _, x := range xs {
		if n := len(out); n > 0 && math.Abs(out[n-1]-x) <= 1e-12*(1+math.Abs(x)) {
			continue
		}
		out = append(out, x)
	}
	return out
}
