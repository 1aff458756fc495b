package icalc

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Parameter names shared by the web form, the JSON API and the RPC client.
const (
	ParamExpression = "expression"
	ParamVariable   = "variable"
	ParamXMin       = "x_min"
	ParamXMax       = "x_max"
	ParamLower      = "lower_limit"
	ParamUpper      = "upper_limit"
	ParamAngle      = "angle"
	ParamOperand1   = "operand1"
	ParamOperand2   = "operand2"
	ParamOperator   = "operator"
)

// Input is the untyped form of a request as it arrives from a UI shell.
type Input struct {
	Mode       Mode
	Expression string
	Params     map[string]string
}

// FieldKind selects the input widget for a field.
type FieldKind string

const (
	FieldText   FieldKind = "text"
	FieldNumber FieldKind = "number"
	FieldSelect FieldKind = "select"
)

// Field describes one input of a mode's form.
type Field struct {
	Name    string    `json:"name"`
	Label   string    `json:"label"`
	Kind    FieldKind `json:"kind"`
	Default string    `json:"default"`
	Options []string  `json:"options,omitempty"`
	Help    string    `json:"help,omitempty"`
}

var expressionField = Field{
	Name:    ParamExpression,
	Label:   "Function (use 'x' as the variable, e.g., x**2 + 2*x - 3):",
	Kind:    FieldText,
	Default: "x**2",
	Help:    "Enter a valid mathematical expression using 'x' as the variable.",
}

// Fields returns the form fields of mode in display order.
func Fields(mode Mode) []Field {
	switch mode {
	case ModeGraph:
		return []Field{
			expressionField,
			{Name: ParamXMin, Label: "X-axis minimum value:", Kind: FieldNumber, Default: "-10"},
			{Name: ParamXMax, Label: "X-axis maximum value:", Kind: FieldNumber, Default: "10"},
		}
	case ModeIndefiniteIntegral, ModeDerivative:
		return []Field{expressionField}
	case ModeDefiniteIntegral:
		return []Field{
			expressionField,
			{Name: ParamLower, Label: "Lower limit:", Kind: FieldText, Default: "0.0"},
			{Name: ParamUpper, Label: "Upper limit:", Kind: FieldText, Default: "1.0"},
		}
	case ModeTrigonometric:
		return []Field{
			{Name: ParamAngle, Label: "Enter the angle in degrees:", Kind: FieldNumber, Default: "0.0"},
		}
	case ModeArithmetic:
		ops := make([]string, len(Operators))
		for i, o := range Operators {
			ops[i] = o.Name()
		}
		return []Field{
			{Name: ParamOperand1, Label: "Enter the first number:", Kind: FieldNumber, Default: "0.0"},
			{Name: ParamOperand2, Label: "Enter the second number:", Kind: FieldNumber, Default: "0.0"},
			{Name: ParamOperator, Label: "Select operation:", Kind: FieldSelect, Default: OpAdd.Name(), Options: ops},
		}
	}
	return nil
}

// Defaults returns the default Input of mode.
func Defaults(mode Mode) Input {
	in := Input{Mode: mode, Params: map[string]string{}}
	for _, f := range Fields(mode) {
		if f.Name == ParamExpression {
			in.Expression = f.Default
			continue
		}
		in.Params[f.Name] = f.Default
	}
	return in
}

// BuildRequest validates in and converts it into a typed Request. Missing or
// non-numeric parameters are parse errors.
func BuildRequest(in Input) (Request, error) {
	p := params(in.Params)
	variable := strings.TrimSpace(in.Params[ParamVariable])

	switch in.Mode {
	case ModeGraph:
		lo, err := p.number(ParamXMin)
		if err != nil {
			return nil, err
		}
		hi, err := p.number(ParamXMax)
		if err != nil {
			return nil, err
		}
		return &GraphRequest{Expression: in.Expression, Variable: variable, XMin: lo, XMax: hi}, nil

	case ModeIndefiniteIntegral:
		return &IndefiniteIntegralRequest{Expression: in.Expression, Variable: variable}, nil

	case ModeDefiniteIntegral:
		lo, err := p.text(ParamLower)
		if err != nil {
			return nil, err
		}
		hi, err := p.text(ParamUpper)
		if err != nil {
			return nil, err
		}
		return &DefiniteIntegralRequest{Expression: in.Expression, Variable: variable, Lower: lo, Upper: hi}, nil

	case ModeDerivative:
		return &DerivativeRequest{Expression: in.Expression, Variable: variable}, nil

	case ModeTrigonometric:
		angle, err := p.number(ParamAngle)
		if err != nil {
			return nil, err
		}
		return &TrigRequest{AngleDegrees: angle}, nil

	case ModeArithmetic:
		a, err := p.number(ParamOperand1)
		if err != nil {
			return nil, err
		}
		b, err := p.number(ParamOperand2)
		if err != nil {
			return nil, err
		}
		s, err := p.text(ParamOperator)
		if err != nil {
			return nil, err
		}
		op, err := ParseOperator(s)
		if err != nil {
			return nil, newFailure(ParseError, "%s", err)
		}
		return &ArithmeticRequest{Operand1: a, Operand2: b, Operator: op}, nil

	case ModeNone:
		return nil, newFailure(ParseError, "no calculator selected")
	}
	return nil, newFailure(ParseError, "unknown mode %s", in.Mode)
}

type params map[string]string

func (p params) text(name string) (string, error) {
	v := strings.TrimSpace(p[name])
	if v == "" {
		return "", newFailure(ParseError, "missing required parameter '%s'", name)
	}
	return v, nil
}

func (p params) number(name string) (float64, error) {
	s, err := p.text(name)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, newFailure(ParseError, "could not convert string to float: '%s'", s)
	}
	return f, nil
}

// String renders the input for logs.
func (in Input) String() string {
	return fmt.Sprintf("%s %q %v", in.Mode, in.Expression, in.Params)
}
