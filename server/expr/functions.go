package expr

import (
	"math"
	"sort"
)

var functions map[string]func(float64) float64

var aliases = map[string]string{
	"ln":     "log",
	"arcsin": "asin",
	"arccos": "acos",
	"arctan": "atan",
	"cosec":  "csc",
	"fabs":   "abs",
}

var constants = map[string]float64{
	"pi": math.Pi,
	"e":  math.E,
	"E":  math.E,
}

func init() {
	functions = map[string]func(float64) float64{
		// trigonometric
		"sin": math.Sin,
		"cos": math.Cos,
		"tan": math.Tan,
		"sec": func(x float64) float64 { return 1 / math.Cos(x) },
		"csc": func(x float64) float64 { return 1 / math.Sin(x) },
		"cot": func(x float64) float64 { return 1 / math.Tan(x) },

		// inverse trigonometric
		"asin": math.Asin,
		"acos": math.Acos,
		"atan": math.Atan,

		// hyperbolic
		"sinh":  math.Sinh,
		"cosh":  math.Cosh,
		"tanh":  math.Tanh,
		"asinh": math.Asinh,
		"acosh": math.Acosh,
		"atanh": math.Atanh,

		// exponentials and logarithms; out-of-domain inputs yield NaN
		"exp":   math.Exp,
		"log":   math.Log,
		"log10": math.Log10,
		"log2":  math.Log2,
		"sqrt":  math.Sqrt,

		// piecewise
		"abs":   math.Abs,
		"floor": math.Floor,
		"ceil":  math.Ceil,
		"sign": func(x float64) float64 {
			switch {
			case x > 0:
				return 1
			case x < 0:
				return -1
			case x == 0:
				return 0
			}
			return math.NaN()
		},
	}
}

// Canonical resolves aliases to the canonical function name.
func Canonical(name string) string {
	if c, ok := aliases[name]; ok {
		return c
	}
	return name
}

// Lookup returns the numeric implementation of a whitelisted function.
func Lookup(name string) (func(float64) float64, bool) {
	f, ok := functions[Canonical(name)]
	return f, ok
}

// Constant returns the value of a named constant.
func Constant(name string) (float64, bool) {
	v, ok := constants[name]
	return v, ok
}

// FunctionNames lists every accepted function name, aliases included, sorted.
func FunctionNames() []string {
	names := make([]string, 0, len(functions)+len(aliases))
	for n := range functions {
		names = append(names, n)
	}
	for a := range aliases {
		names = append(names, a)
	}
	sort.Strings(names)
	return names
}
