package icalc

// ResultKind tags the variant of a Result.
type ResultKind string

const (
	KindPlot       ResultKind = "plot"
	KindSymbolic   ResultKind = "symbolic"
	KindNumeric    ResultKind = "numeric"
	KindArithmetic ResultKind = "arithmetic"
	KindFailure    ResultKind = "failure"
)

// Result is the outcome of one evaluation. It is one of *PlotSeries,
// *SymbolicExpression, *NumericScalarSet, *ArithmeticResult or *Failure.
type Result interface {
	ResultKind() ResultKind
	result()
}

// Point is one sample of a plotted function. Y may be NaN or ±Inf.
type Point struct {
	X float64
	Y float64
}

// PlotSeries is a sampled function over [XMin, XMax].
type PlotSeries struct {
	Expression string
	Variable   string
	XMin       float64
	XMax       float64
	Points     []Point
}

// SymbolicExpression is the result of an integral or derivative.
type SymbolicExpression struct {
	Mode       Mode
	Variable   string
	Expression string // canonical input
	InputLaTeX string
	Lower      string // definite integrals only
	Upper      string
	LowerLaTeX string
	UpperLaTeX string

	Text  string
	LaTeX string
	// Value is set when the result reduces to a number.
	Value *float64
	// Approximate marks a numeric quadrature result.
	Approximate bool
	// Unevaluated marks an integral with no closed form.
	Unevaluated bool
}

// Ratio is one trigonometric ratio. Failure is set when it is undefined.
type Ratio struct {
	Name    string
	Value   float64
	Failure *Failure
}

func (r Ratio) Defined() bool { return r.Failure == nil }

// NumericScalarSet holds the six trigonometric ratios of an angle.
type NumericScalarSet struct {
	AngleDegrees float64
	Ratios       []Ratio
}

// Ratio returns the named ratio.
func (n *NumericScalarSet) Ratio(name string) (Ratio, bool) {
	for _, r := range n.Ratios {
		if r.Name == name {
			return r, true
		}
	}
	return Ratio{}, false
}

// ArithmeticResult is the result of a binary operation.
type ArithmeticResult struct {
	Operand1 float64
	Operand2 float64
	Operator Operator
	Value    float64
}

func (*PlotSeries) ResultKind() ResultKind         { return KindPlot }
func (*SymbolicExpression) ResultKind() ResultKind { return KindSymbolic }
func (*NumericScalarSet) ResultKind() ResultKind   { return KindNumeric }
func (*ArithmeticResult) ResultKind() ResultKind   { return KindArithmetic }
func (*Failure) ResultKind() ResultKind            { return KindFailure }

func (*PlotSeries) result()         {}
func (*SymbolicExpression) result() {}
func (*NumericScalarSet) result()   {}
func (*ArithmeticResult) result()   {}
func (*Failure) result()            {}
