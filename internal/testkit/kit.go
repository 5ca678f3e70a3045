// Package testkit provides fixtures and brute-force reference integrals for
// testing the quadrature-based evaluators.
package testkit

import (
	"math"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/stat/distuv"
)

// Sample counts for the composite Simpson references. Odd counts give an
// even number of subintervals.
const (
	SelectionPoints       = 20001
	NestedSelectionPoints = 4001
	NestedOuterPoints     = 401
	GaussFDPoints         = 40001
)

// SortedPValues draws n uniform p-values from a seeded stream, ascending
func SortedPValues(seed int64, n int) []float64 {
	rng := rand.New(rand.NewSource(seed))
	ps := make([]float64, n)
	for i := range ps {
		ps[i] = rng.Float64()
	}
	sort.Float64s(ps)
	return ps
}

// SplitFirst returns the smallest p-value and a copy of the rest
func SplitFirst(ps []float64) (float64, []float64) {
	return ps[0], append([]float64(nil), ps[1:]...)
}

// Integrand is the selection-function integrand at u ∈ [0, 1]. clipFactors
// clamps each factor instead of the product. An empty z gives clamp(1 − u).
func Integrand(u, x float64, z []float64, gamma float64, clipFactors bool) float64 {
	if len(z) == 0 {
		return clamp01(1 - u)
	}
	odds := gamma / (1 - gamma)
	v := 1.0
	for _, zj := range z {
		f := 1 - (odds*(x-zj) + u)
		if clipFactors {
			f = clamp01(f)
		}
		v *= f
	}
	return clamp01(v)
}

// ReferenceSelection integrates Integrand over u ∈ [0, 1]
func ReferenceSelection(x float64, z []float64, gamma float64, clipFactors bool) float64 {
	return referenceSelection(x, z, gamma, clipFactors, SelectionPoints)
}

// ReferenceIntegral integrates ReferenceSelection over x ∈ [0, p]
func ReferenceIntegral(p float64, z []float64, gamma float64, clipFactors bool) float64 {
	return Simpson(func(x float64) float64 {
		return referenceSelection(x, z, gamma, clipFactors, NestedSelectionPoints)
	}, 0, p, NestedOuterPoints)
}

// ReferenceGaussFD evaluates ∫_a^∞ φ(x)·sf(t − x) dx / sf(t/√2) on a grid
// truncated to 12 either side of max(t/2, 0)
func ReferenceGaussFD(a, t float64) float64 {
	const bound = 12.0
	center := math.Max(t/2, 0)
	lower := math.Max(a, center-bound)
	upper := center + bound
	if lower >= upper {
		return 0
	}
	numerator := Simpson(func(x float64) float64 {
		return distuv.UnitNormal.Prob(x) * normalTail(t-x)
	}, lower, upper, GaussFDPoints)
	return numerator / normalTail(t/math.Sqrt2)
}

// Simpson applies the composite Simpson rule to f sampled at n evenly spaced points of [a, b]
func Simpson(f func(float64) float64, a, b float64, n int) float64 {
	if a == b {
		return 0
	}
	xs := floats.Span(make([]float64, n), a, b)
	fs := make([]float64, n)
	for i, x := range xs {
		fs[i] = f(x)
	}
	return integrate.Simpsons(xs, fs)
}

func referenceSelection(x float64, z []float64, gamma float64, clipFactors bool, n int) float64 {
	return Simpson(func(u float64) float64 {
		return Integrand(u, x, z, gamma, clipFactors)
	}, 0, 1, n)
}

func normalTail(x float64) float64 {
	return 0.5 * math.Erfc(x/math.Sqrt2)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
