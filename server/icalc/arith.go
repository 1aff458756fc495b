package icalc

func (c *Calc) arithmetic(r *ArithmeticRequest) Result {
	a, b := r.Operand1, r.Operand2
	var v float64
	switch r.Operator {
	case OpAdd:
		v = a + b
	case OpSub:
		v = a - b
	case OpMul:
		v = a * b
	case OpDiv:
		if b == 0 {
			return newFailure(DivisionByZero, "Division by zero is not allowed.")
		}
		v = a / b
	default:
		return newFailure(ParseError, "unknown operator %q", string(r.Operator))
	}
	return &ArithmeticResult{Operand1: a, Operand2: b, Operator: r.Operator, Value: v}
}
