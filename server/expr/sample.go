package expr

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Linspace returns n evenly spaced values over [start, stop]. Both endpoints
// are included exactly.
func Linspace[F constraints.Float](start, stop F, n int) []F {
	switch {
	case n <= 0:
		return nil
	case n == 1:
		return []F{start}
	}
	out := make([]F, n)
	step := (stop - start) / F(n-1)
	for i := range out {
		out[i] = start + F(i)*step
	}
	out[n-1] = stop
	return out
}

// Finite reports whether v is neither NaN nor infinite.
func Finite[F constraints.Float](v F) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// CountFinite returns how many values of vs are finite.
func CountFinite[F constraints.Float](vs []F) int {
	n := 0
	for _, v := range vs {
		if Finite(v) {
			n++
		}
	}
	return n
}
