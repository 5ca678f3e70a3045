package selection

import (
	"math"

	"gonum.org/v1/gonum/integrate/quad"
	"gonum.org/v1/gonum/stat/distuv"
)

const (
	// gaussFDOrder is the Legendre order for the numerator integral
	gaussFDOrder = 200
	// gaussFDCutoff is the half-width of the integration window; e^{-144}
	// relative to the peak is far below double precision
	gaussFDCutoff = 12.0
)

// GaussFD returns the Gaussian tail ratio
//
//	∫_a^∞ φ(x)·sf(t − x) dx / sf(t/√2)
//
// where φ and sf are the standard normal density and survival function. For
// independent standard normals X and Y this is P(X ≥ a, X+Y > t) / P(X+Y > t),
// so GaussFD(-Inf, t) = 1 and GaussFD(+Inf, t) = 0. NaN inputs give NaN.
func GaussFD(a, t float64) float64 {
	integrand := func(x float64) float64 {
		return distuv.UnitNormal.Prob(x) * normalTail(t-x)
	}
	// For x < t the integrand is at most exp(-t²/4 - (x - t/2)²) up to a
	// constant, so its mass sits near max(t/2, 0).
	center := math.Max(t/2, 0)
	lower := math.Max(a, center-gaussFDCutoff)
	upper := math.Max(lower, center) + gaussFDCutoff
	numerator := quad.Fixed(integrand, lower, upper, gaussFDOrder, quad.Legendre{}, 0)
	return numerator / normalTail(t/math.Sqrt2)
}

// normalTail is the standard normal survival function. distuv computes it as
// 0.5*(1 - erf), which cancels to zero beyond about 8.3.
func normalTail(x float64) float64 {
	return 0.5 * math.Erfc(x/math.Sqrt2)
}
