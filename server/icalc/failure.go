package icalc

import (
	"errors"
	"fmt"
)

// FailureKind classifies a failed evaluation.
type FailureKind string

const (
	ParseError     FailureKind = "ParseError"
	DomainError    FailureKind = "DomainError"
	DivisionByZero FailureKind = "DivisionByZero"
	UndefinedValue FailureKind = "UndefinedValue"
)

// Failure is a structured evaluation error. It is both a Result variant and
// an error.
type Failure struct {
	Kind    FailureKind
	Message string
}

func (f *Failure) Error() string { return f.Message }

func newFailure(kind FailureKind, format string, args ...any) *Failure {
	return &Failure{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// AsFailure converts any error into a Failure, keeping its message verbatim.
// Errors that are not already Failures are parse errors.
func AsFailure(err error) *Failure {
	var f *Failure
	if errors.As(err, &f) {
		return f
	}
	return &Failure{Kind: ParseError, Message: err.Error()}
}
