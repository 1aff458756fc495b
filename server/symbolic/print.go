package symbolic

const (
	precAdd  = 10
	precMul  = 20
	precPow  = 30
	precAtom = 100
)

func precedence(e Expr) int {
	switch t := e.(type) {
	case *Add:
		return precAdd
	case *Mul:
		return precMul
	case *Num:
		if t.Sign() < 0 || !t.IsInt() {
			return precMul
		}
	case *Pow:
		if n, ok := t.exp.(*Num); ok && n.Sign() < 0 {
			return precMul
		}
		if isHalf(t.exp) {
			return precAtom
		}
		return precPow
	}
	return precAtom
}

func paren(e Expr, min int) string {
	if precedence(e) < min {
		return "(" + e.String() + ")"
	}
	return e.String()
}

func latexParen(e Expr, min int) string {
	if precedence(e) < min {
		return `\left(` + e.LaTeX() + `\right)`
	}
	return e.LaTeX()
}
