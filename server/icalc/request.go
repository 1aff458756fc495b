package icalc

import (
	"fmt"
	"strings"
)

// Request is one evaluation request. The concrete type selects the mode.
type Request interface {
	Mode() Mode
	request()
}

// GraphRequest samples Expression over [XMin, XMax].
type GraphRequest struct {
	Expression string
	Variable   string // optional; inferred when empty
	XMin       float64
	XMax       float64
}

// IndefiniteIntegralRequest integrates Expression symbolically.
type IndefiniteIntegralRequest struct {
	Expression string
	Variable   string
}

// DefiniteIntegralRequest integrates Expression over [Lower, Upper]. Bounds
// are expressions and may be symbolic ("a", "pi/2").
type DefiniteIntegralRequest struct {
	Expression string
	Variable   string
	Lower      string
	Upper      string
}

// DerivativeRequest differentiates Expression.
type DerivativeRequest struct {
	Expression string
	Variable   string
}

// TrigRequest computes the six trigonometric ratios of an angle in degrees.
type TrigRequest struct {
	AngleDegrees float64
}

// ArithmeticRequest applies Operator to two operands.
type ArithmeticRequest struct {
	Operand1 float64
	Operand2 float64
	Operator Operator
}

func (*GraphRequest) Mode() Mode              { return ModeGraph }
func (*IndefiniteIntegralRequest) Mode() Mode { return ModeIndefiniteIntegral }
func (*DefiniteIntegralRequest) Mode() Mode   { return ModeDefiniteIntegral }
func (*DerivativeRequest) Mode() Mode         { return ModeDerivative }
func (*TrigRequest) Mode() Mode               { return ModeTrigonometric }
func (*ArithmeticRequest) Mode() Mode         { return ModeArithmetic }

func (*GraphRequest) request()              {}
func (*IndefiniteIntegralRequest) request() {}
func (*DefiniteIntegralRequest) request()   {}
func (*DerivativeRequest) request()         {}
func (*TrigRequest) request()               {}
func (*ArithmeticRequest) request()         {}

// Operator is a binary arithmetic operator.
type Operator byte

const (
	OpAdd Operator = '+'
	OpSub Operator = '-'
	OpMul Operator = '*'
	OpDiv Operator = '/'
)

// Operators lists the operators in menu order.
var Operators = []Operator{OpAdd, OpSub, OpMul, OpDiv}

// Name returns the menu label ("Addition").
func (o Operator) Name() string {
	switch o {
	case OpAdd:
		return "Addition"
	case OpSub:
		return "Subtraction"
	case OpMul:
		return "Multiplication"
	case OpDiv:
		return "Division"
	}
	return fmt.Sprintf("Operator(%q)", byte(o))
}

// Symbol returns the display symbol (× and ÷ for product and quotient).
func (o Operator) Symbol() string {
	switch o {
	case OpMul:
		return "×"
	case OpDiv:
		return "÷"
	}
	return string(rune(o))
}

func (o Operator) String() string { return o.Name() }

// ParseOperator accepts a symbol (+ - * / × ÷ x) or a menu label.
func ParseOperator(s string) (Operator, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "+", "addition", "add", "plus":
		return OpAdd, nil
	case "-", "subtraction", "subtract", "sub", "minus":
		return OpSub, nil
	case "*", "×", "x", "multiplication", "multiply", "mul", "times":
		return OpMul, nil
	case "/", "÷", "division", "divide", "div":
		return OpDiv, nil
	}
	return 0, fmt.Errorf("unknown operator %q", s)
}
