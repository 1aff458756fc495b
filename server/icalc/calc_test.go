package icalc_test

import (
	"math"
	"strings"
	"testing"
	"time"

	"multicalc.com/server/icalc"
)

func newCalc() *icalc.Calc {
	return icalc.NewCalcWithOptions(icalc.DefaultOptions())
}

func wantFailure(t *testing.T, res icalc.Result, kind icalc.FailureKind) *icalc.Failure {
	t.Helper()
	f, ok := res.(*icalc.Failure)
	if !ok {
		t.Fatalf("want %s failure, got %T %+v", kind, res, res)
	}
	if f.Kind != kind {
		t.Fatalf("want %s failure, got %s: %s", kind, f.Kind, f.Message)
	}
	return f
}

func wantSymbolic(t *testing.T, res icalc.Result) *icalc.SymbolicExpression {
	t.Helper()
	s, ok := res.(*icalc.SymbolicExpression)
	if !ok {
		t.Fatalf("want symbolic result, got %T %+v", res, res)
	}
	return s
}

// ===== graph tests =====

func TestGraphSamples(t *testing.T) {
	res := newCalc().Evaluate(&icalc.GraphRequest{Expression: "x**2", XMin: -2, XMax: 2})
	p, ok := res.(*icalc.PlotSeries)
	if !ok {
		t.Fatalf("got %T %+v", res, res)
	}
	if len(p.Points) != icalc.SampleCount {
		t.Fatalf("want %d points, got %d", icalc.SampleCount, len(p.Points))
	}
	first, last := p.Points[0], p.Points[len(p.Points)-1]
	if first.X != -2 || last.X != 2 {
		t.Fatalf("endpoints %v, %v", first.X, last.X)
	}
	if first.Y != 4 || last.Y != 4 {
		t.Fatalf("want y=4 at both ends, got %v, %v", first.Y, last.Y)
	}
	low := math.Inf(1)
	for _, pt := range p.Points {
		low = math.Min(low, pt.Y)
	}
	if low > 1e-4 {
		t.Fatalf("minimum %v, want close to 0", low)
	}
	if p.Variable != "x" {
		t.Fatalf("variable %q", p.Variable)
	}
}

func TestGraphKeepsNonFinite(t *testing.T) {
	res := newCalc().Evaluate(&icalc.GraphRequest{Expression: "log(x)", XMin: -1, XMax: 1})
	p, ok := res.(*icalc.PlotSeries)
	if !ok {
		t.Fatalf("got %T %+v", res, res)
	}
	if !math.IsNaN(p.Points[0].Y) {
		t.Fatalf("log(-1) = %v, want NaN", p.Points[0].Y)
	}
	if got := p.Points[len(p.Points)-1].Y; got != 0 {
		t.Fatalf("log(1) = %v", got)
	}
}

func TestGraphFailures(t *testing.T) {
	c := newCalc()
	wantFailure(t, c.Evaluate(&icalc.GraphRequest{Expression: "log(x)", XMin: -2, XMax: -1}), icalc.DomainError)
	wantFailure(t, c.Evaluate(&icalc.GraphRequest{Expression: "x", XMin: 1, XMax: 1}), icalc.ParseError)
	wantFailure(t, c.Evaluate(&icalc.GraphRequest{Expression: "x", XMin: 0, XMax: math.Inf(1)}), icalc.ParseError)
	wantFailure(t, c.Evaluate(&icalc.GraphRequest{Expression: "__import__('os')", XMin: 0, XMax: 1}), icalc.ParseError)
}

func TestMalformedExpressionIsParseError(t *testing.T) {
	c := newCalc()
	for _, req := range []icalc.Request{
		&icalc.GraphRequest{Expression: "x +* 2", XMin: -1, XMax: 1},
		&icalc.IndefiniteIntegralRequest{Expression: "x +* 2"},
		&icalc.DefiniteIntegralRequest{Expression: "x +* 2", Lower: "0", Upper: "1"},
		&icalc.DerivativeRequest{Expression: "x +* 2"},
	} {
		f := wantFailure(t, c.Evaluate(req), icalc.ParseError)
		if f.Message == "" {
			t.Errorf("%s: empty message", req.Mode())
		}
	}
}

// ===== symbolic tests =====

func TestIndefiniteIntegral(t *testing.T) {
	s := wantSymbolic(t, newCalc().Evaluate(&icalc.IndefiniteIntegralRequest{Expression: "x**2"}))
	if s.Text != "x**3/3" || s.LaTeX != `\frac{x^{3}}{3}` {
		t.Fatalf("got %s / %s", s.Text, s.LaTeX)
	}
	if s.Unevaluated {
		t.Fatal("unexpected unevaluated flag")
	}
}

func TestIndefiniteIntegralUnevaluated(t *testing.T) {
	s := wantSymbolic(t, newCalc().Evaluate(&icalc.IndefiniteIntegralRequest{Expression: "exp(x**2)"}))
	if !s.Unevaluated || s.Text != "Integral(exp(x**2), x)" {
		t.Fatalf("got %+v", s)
	}
}

func TestDerivative(t *testing.T) {
	cases := []struct{ src, want string }{
		{"x**3", "3*x**2"},
		{"sin(x)", "cos(x)"},
		{"t**2", "2*t"},
	}
	c := newCalc()
	for _, tc := range cases {
		s := wantSymbolic(t, c.Evaluate(&icalc.DerivativeRequest{Expression: tc.src}))
		if s.Text != tc.want {
			t.Errorf("d/dx %s: want %s, got %s", tc.src, tc.want, s.Text)
		}
	}
}

func TestDerivativeUndoesIntegral(t *testing.T) {
	c := newCalc()
	for _, src := range []string{"x**3 - 2*x", "sin(x)", "cos(x)", "tan(x)"} {
		F := wantSymbolic(t, c.Evaluate(&icalc.IndefiniteIntegralRequest{Expression: src}))
		d := wantSymbolic(t, c.Evaluate(&icalc.DerivativeRequest{Expression: F.Text}))
		if d.Text != F.Expression {
			t.Errorf("d/dx ∫%s = %s, want %s", src, d.Text, F.Expression)
		}
	}
}

func TestDefiniteIntegral(t *testing.T) {
	c := newCalc()

	s := wantSymbolic(t, c.Evaluate(&icalc.DefiniteIntegralRequest{Expression: "x**2", Lower: "0", Upper: "1"}))
	if s.Text != "1/3" || s.Value == nil || math.Abs(*s.Value-1.0/3) > 1e-15 || s.Approximate {
		t.Fatalf("got %+v", s)
	}

	s = wantSymbolic(t, c.Evaluate(&icalc.DefiniteIntegralRequest{Expression: "exp(x**2)", Lower: "2", Upper: "2.0"}))
	if s.Text != "0" || s.Value == nil || *s.Value != 0 {
		t.Fatalf("equal bounds: got %+v", s)
	}

	s = wantSymbolic(t, c.Evaluate(&icalc.DefiniteIntegralRequest{Expression: "x**2", Lower: "0", Upper: "a"}))
	if s.Text != "a**3/3" || s.Value != nil {
		t.Fatalf("symbolic bound: got %+v", s)
	}
}

func TestDefiniteIntegralQuadrature(t *testing.T) {
	s := wantSymbolic(t, newCalc().Evaluate(&icalc.DefiniteIntegralRequest{Expression: "exp(x**2)", Lower: "0", Upper: "1"}))
	if !s.Approximate || s.Value == nil {
		t.Fatalf("got %+v", s)
	}
	if math.Abs(*s.Value-1.4626517459071816) > 1e-6 {
		t.Fatalf("got %v", *s.Value)
	}
}

func TestDefiniteIntegralDomainError(t *testing.T) {
	c := newCalc()
	wantFailure(t, c.Evaluate(&icalc.DefiniteIntegralRequest{Expression: "log(x)", Lower: "-2", Upper: "-1"}), icalc.DomainError)
	wantFailure(t, c.Evaluate(&icalc.DefiniteIntegralRequest{Expression: "x", Lower: "0", Upper: "1 +"}), icalc.ParseError)

	// poles strictly inside the interval, off the sampling grid
	for _, tc := range []struct{ src, lo, up string }{
		{"1/x**2", "-1", "1"},
		{"1/x", "-1", "2"},
		{"tan(x)", "1", "2"},
		{"1/(x**2 - 1)", "0", "2"},
		{"sec(x)**2", "0", "pi"},
	} {
		f := wantFailure(t, c.Evaluate(&icalc.DefiniteIntegralRequest{Expression: tc.src, Lower: tc.lo, Upper: tc.up}), icalc.DomainError)
		if !strings.Contains(f.Message, "is undefined at x = ") {
			t.Errorf("∫%s over [%s, %s]: %s", tc.src, tc.lo, tc.up, f.Message)
		}
	}
	f := wantFailure(t, c.Evaluate(&icalc.DefiniteIntegralRequest{Expression: "1/x**2", Lower: "-1", Upper: "1"}), icalc.DomainError)
	if f.Message != "the integrand 1/x**2 is undefined at x = 0.0" {
		t.Errorf("got %q", f.Message)
	}

	// a pole on the boundary that does not integrate
	f = wantFailure(t, c.Evaluate(&icalc.DefiniteIntegralRequest{Expression: "1/x", Lower: "0", Upper: "1"}), icalc.DomainError)
	if !strings.Contains(f.Message, "does not converge") {
		t.Errorf("got %q", f.Message)
	}
}

func TestDefiniteIntegralNegativeLogArgument(t *testing.T) {
	c := newCalc()
	cases := []struct {
		src, lo, up string
		want        float64
	}{
		{"1/x", "-2", "-1", -math.Ln2},
		{"tan(x)", "2", "3", math.Log(-math.Cos(2)) - math.Log(-math.Cos(3))},
		{"1/(x - 5)", "0", "1", math.Log(4.0 / 5)},
	}
	for _, tc := range cases {
		s := wantSymbolic(t, c.Evaluate(&icalc.DefiniteIntegralRequest{Expression: tc.src, Lower: tc.lo, Upper: tc.up}))
		if s.Value == nil || s.Approximate || math.Abs(*s.Value-tc.want) > 1e-12 {
			t.Errorf("∫%s over [%s, %s]: got %+v, want %v", tc.src, tc.lo, tc.up, s, tc.want)
		}
	}
	s := wantSymbolic(t, c.Evaluate(&icalc.DefiniteIntegralRequest{Expression: "1/x", Lower: "-2", Upper: "-1"}))
	if s.Text != "-log(2)" {
		t.Errorf("got %s", s.Text)
	}
}

func TestDefiniteIntegralEndpointSingularity(t *testing.T) {
	s := wantSymbolic(t, newCalc().Evaluate(&icalc.DefiniteIntegralRequest{Expression: "1/sqrt(x)", Lower: "0", Upper: "1"}))
	if s.Text != "2" || s.Value == nil || *s.Value != 2 {
		t.Fatalf("got %+v", s)
	}
}

func TestLargeExpansionReturnsQuickly(t *testing.T) {
	c := newCalc()
	for _, src := range []string{"(a+b+c+d+x)**16", "(a+b+c+d+f+g+x)**16", "(a+b+c+d+f+g+x)**16*sin(x)"} {
		start := time.Now()
		res := c.Evaluate(&icalc.IndefiniteIntegralRequest{Expression: src, Variable: "x"})
		if elapsed := time.Since(start); elapsed > 2*time.Second {
			t.Errorf("∫%s took %s", src, elapsed)
		}
		wantSymbolic(t, res)
	}
}

// ===== trigonometric tests =====

func TestTrigAt90(t *testing.T) {
	res := newCalc().Evaluate(&icalc.TrigRequest{AngleDegrees: 90})
	set, ok := res.(*icalc.NumericScalarSet)
	if !ok {
		t.Fatalf("got %T %+v", res, res)
	}
	if len(set.Ratios) != len(icalc.TrigRatioNames) {
		t.Fatalf("got %d ratios", len(set.Ratios))
	}
	sec, _ := set.Ratio("sec")
	if sec.Defined() || sec.Failure.Kind != icalc.UndefinedValue || sec.Failure.Message != "sec(90.0°) is undefined" {
		t.Fatalf("sec: %+v", sec)
	}
	for _, name := range []string{"sin", "cos", "tan", "cot", "cosec"} {
		r, _ := set.Ratio(name)
		if !r.Defined() {
			t.Errorf("%s should be defined at 90°", name)
		}
	}
	if sin, _ := set.Ratio("sin"); sin.Value != 1 {
		t.Errorf("sin = %v", sin.Value)
	}
	if tan, _ := set.Ratio("tan"); tan.Value <= 0 {
		t.Errorf("tan = %v, want large positive", tan.Value)
	}
}

func TestTrigAtZero(t *testing.T) {
	set := newCalc().Evaluate(&icalc.TrigRequest{AngleDegrees: 0}).(*icalc.NumericScalarSet)
	for _, name := range []string{"cot", "cosec"} {
		if r, _ := set.Ratio(name); r.Defined() {
			t.Errorf("%s should be undefined at 0°", name)
		}
	}
	if sec, _ := set.Ratio("sec"); sec.Value != 1 {
		t.Errorf("sec = %v", sec.Value)
	}
}

func TestTrigNonFiniteAngle(t *testing.T) {
	wantFailure(t, newCalc().Evaluate(&icalc.TrigRequest{AngleDegrees: math.NaN()}), icalc.DomainError)
}

// ===== arithmetic tests =====

func TestArithmetic(t *testing.T) {
	cases := []struct {
		a, b float64
		op   icalc.Operator
		want float64
	}{
		{7, 3, icalc.OpMul, 21},
		{7, 3, icalc.OpAdd, 10},
		{7, 3, icalc.OpSub, 4},
		{1, 4, icalc.OpDiv, 0.25},
	}
	c := newCalc()
	for _, tc := range cases {
		res := c.Evaluate(&icalc.ArithmeticRequest{Operand1: tc.a, Operand2: tc.b, Operator: tc.op})
		r, ok := res.(*icalc.ArithmeticResult)
		if !ok || r.Value != tc.want {
			t.Errorf("%v %s %v: want %v, got %+v", tc.a, tc.op.Symbol(), tc.b, tc.want, res)
		}
	}
}

func TestDivisionByZero(t *testing.T) {
	for _, a := range []float64{0, 1, -5} {
		f := wantFailure(t, newCalc().Evaluate(&icalc.ArithmeticRequest{Operand1: a, Operator: icalc.OpDiv}), icalc.DivisionByZero)
		if f.Message != "Division by zero is not allowed." {
			t.Fatalf("message %q", f.Message)
		}
	}
}

// ===== input tests =====

func TestEvaluateInput(t *testing.T) {
	c := newCalc()
	res := c.EvaluateInput(icalc.Input{
		Mode:   icalc.ModeArithmetic,
		Params: map[string]string{"operand1": "7", "operand2": "3", "operator": "Multiplication"},
	})
	if r, ok := res.(*icalc.ArithmeticResult); !ok || r.Value != 21 {
		t.Fatalf("got %+v", res)
	}

	f := wantFailure(t, c.EvaluateInput(icalc.Input{Mode: icalc.ModeGraph, Expression: "x", Params: map[string]string{"x_min": "0"}}), icalc.ParseError)
	if f.Message != "missing required parameter 'x_max'" {
		t.Fatalf("message %q", f.Message)
	}
	f = wantFailure(t, c.EvaluateInput(icalc.Input{Mode: icalc.ModeTrigonometric, Params: map[string]string{"angle": "ninety"}}), icalc.ParseError)
	if f.Message != "could not convert string to float: 'ninety'" {
		t.Fatalf("message %q", f.Message)
	}
	wantFailure(t, c.EvaluateInput(icalc.Input{}), icalc.ParseError)
}

func TestDefaultsEvaluate(t *testing.T) {
	c := newCalc()
	for _, m := range icalc.Modes {
		if m == icalc.ModeNone {
			continue
		}
		if f, ok := c.EvaluateInput(icalc.Defaults(m)).(*icalc.Failure); ok {
			t.Errorf("%s defaults: %s", m, f.Message)
		}
	}
}

func TestEvaluateNil(t *testing.T) {
	wantFailure(t, newCalc().Evaluate(nil), icalc.ParseError)
}
