package icalc

import (
	"fmt"
	"strings"
)

// Mode selects a calculator. ModeNone is the welcome state.
type Mode int

const (
	ModeNone Mode = iota
	ModeGraph
	ModeIndefiniteIntegral
	ModeDefiniteIntegral
	ModeDerivative
	ModeTrigonometric
	ModeArithmetic
)

// Modes lists the selectable modes in menu order.
var Modes = []Mode{
	ModeGraph,
	ModeIndefiniteIntegral,
	ModeDefiniteIntegral,
	ModeDerivative,
	ModeTrigonometric,
	ModeArithmetic,
}

var modeSlugs = map[Mode]string{
	ModeNone:               "none",
	ModeGraph:              "graph",
	ModeIndefiniteIntegral: "indefinite-integral",
	ModeDefiniteIntegral:   "definite-integral",
	ModeDerivative:         "derivative",
	ModeTrigonometric:      "trigonometric",
	ModeArithmetic:         "arithmetic",
}

var modeTitles = map[Mode]string{
	ModeNone:               "Welcome",
	ModeGraph:              "Graph",
	ModeIndefiniteIntegral: "Indefinite Integral",
	ModeDefiniteIntegral:   "Definite Integral",
	ModeDerivative:         "Derivative",
	ModeTrigonometric:      "Trigonometric",
	ModeArithmetic:         "Arithmetic",
}

// String returns the URL slug of the mode.
func (m Mode) String() string {
	if s, ok := modeSlugs[m]; ok {
		return s
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// Title returns the human readable name.
func (m Mode) Title() string { return modeTitles[m] }

// ExpressionBased reports whether the mode reads the expression field.
func (m Mode) ExpressionBased() bool {
	switch m {
	case ModeGraph, ModeIndefiniteIntegral, ModeDefiniteIntegral, ModeDerivative:
		return true
	}
	return false
}

func (m Mode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (m *Mode) UnmarshalText(b []byte) error {
	parsed, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// ParseMode accepts a slug ("definite-integral"), a title ("Definite
// Integral") or a compact name ("DefiniteIntegral"), case-insensitively. An
// empty string is the welcome state.
func ParseMode(s string) (Mode, error) {
	key := normalizeName(s)
	if key == "" {
		return ModeNone, nil
	}
	for m, slug := range modeSlugs {
		if key == normalizeName(slug) || key == normalizeName(modeTitles[m]) {
			return m, nil
		}
	}
	switch key {
	case "trig", "trigonometry":
		return ModeTrigonometric, nil
	case "simple", "calculator", "arith":
		return ModeArithmetic, nil
	case "integral", "integrate":
		return ModeIndefiniteIntegral, nil
	}
	return ModeNone, fmt.Errorf("unknown mode %q", s)
}

func normalizeName(s string) string {
	r := strings.NewReplacer("-", "", "_", "", " ", "")
	return strings.ToLower(r.Replace(strings.TrimSpace(s)))
}
