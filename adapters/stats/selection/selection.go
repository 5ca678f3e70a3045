// Package selection evaluates the randomized selection function
//
//	s(x; z, γ) = ∫₀¹ clamp(Π_j (1 − (γ/(1−γ)·(x − z_j) + u)), 0, 1) du
//
// and its integral S(p; z, γ) = ∫₀ᵖ s(x; z, γ) dx with a fixed
// Gauss-Legendre rule. The same rule serves the inner and outer integration.
package selection

import (
	"math"

	"seldom/adapters/stats/quadrature"
	domainQuadrature "seldom/domain/quadrature"
	"seldom/internal/errors"

	"gonum.org/v1/gonum/floats"
)

// Evaluator holds a resolved quadrature rule and evaluation settings.
// It is immutable and safe for concurrent use.
type Evaluator struct {
	rule        *domainQuadrature.Rule
	unitNodes   []float64 // rule mapped to [0, 1]
	unitWeights []float64
	clip        ClipMode
	workers     int
}

// NewEvaluator resolves the options. Without WithRule it requests the rule of
// the configured order (default 100) from the provider.
func NewEvaluator(opts ...Option) (*Evaluator, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	rule := o.rule
	if rule == nil {
		order := quadrature.DefaultOrder
		if o.orderSet {
			order = o.order
		}
		provider := o.provider
		if provider == nil {
			provider = quadrature.Default()
		}
		var err error
		rule, err = provider.Rule(order)
		if err != nil {
			return nil, errors.Wrap(err, "failed to obtain quadrature rule")
		}
		if rule == nil {
			return nil, errors.InvalidArgument("quadrature provider returned no rule for order %d", order)
		}
	}

	nodes, weights := rule.MapTo(0, 1)
	return &Evaluator{
		rule:        rule,
		unitNodes:   nodes,
		unitWeights: weights,
		clip:        o.clip,
		workers:     o.workerLimit(),
	}, nil
}

// Rule returns the quadrature rule on [-1, 1] used for both integrations
func (e *Evaluator) Rule() *domainQuadrature.Rule {
	return e.rule
}

// ClipMode returns the clamping mode of the integrand
func (e *Evaluator) ClipMode() ClipMode {
	return e.clip
}

// Select computes s(x; z, γ). γ must lie strictly inside (0, 1).
func (e *Evaluator) Select(x float64, z []float64, gamma float64) (float64, error) {
	odds, err := oddsOf(gamma)
	if err != nil {
		return math.NaN(), err
	}
	return e.selection(x, z, odds), nil
}

// Integrate computes S(p; z, γ) = ∫₀ᵖ s(x; z, γ) dx
func (e *Evaluator) Integrate(p float64, z []float64, gamma float64) (float64, error) {
	odds, err := oddsOf(gamma)
	if err != nil {
		return math.NaN(), err
	}
	return e.integral(p, z, odds), nil
}

func (e *Evaluator) selection(x float64, z []float64, odds float64) float64 {
	fs := make([]float64, len(e.unitNodes))
	for i, u := range e.unitNodes {
		fs[i] = e.integrand(u, x, z, odds)
	}
	return floats.Dot(e.unitWeights, fs)
}

func (e *Evaluator) integral(p float64, z []float64, odds float64) float64 {
	xs, weights := e.rule.MapTo(0, p)
	ss := make([]float64, len(xs))
	for i, x := range xs {
		ss[i] = e.selection(x, z, odds)
	}
	return floats.Dot(weights, ss)
}

// integrand evaluates the clamped product at a node u of [0, 1].
// With no reference p-values it reduces to clamp(1 − u).
func (e *Evaluator) integrand(u, x float64, z []float64, odds float64) float64 {
	if len(z) == 0 {
		return clamp01(1 - u)
	}
	v := 1.0
	for _, zj := range z {
		f := 1 - (odds*(x-zj) + u)
		if e.clip == ClipFactors {
			f = clamp01(f)
		}
		v *= f
	}
	return clamp01(v)
}

// oddsOf returns γ/(1−γ), rejecting γ outside (0, 1) including NaN
func oddsOf(gamma float64) (float64, error) {
	if !(gamma > 0 && gamma < 1) {
		return math.NaN(), errors.DomainError("gamma must lie strictly inside (0, 1), got %v", gamma)
	}
	return gamma / (1 - gamma), nil
}

// clamp01 keeps NaN so non-finite inputs propagate
func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// SelectionFunc computes s(x; z, γ) with the default order-100 rule unless
// options say otherwise.
func SelectionFunc(x float64, z []float64, gamma float64, opts ...Option) (float64, error) {
	e, err := NewEvaluator(opts...)
	if err != nil {
		return math.NaN(), err
	}
	return e.Select(x, z, gamma)
}

// IntegrateSelectionFunc computes S(p; z, γ) = ∫₀ᵖ s(x; z, γ) dx
func IntegrateSelectionFunc(p float64, z []float64, gamma float64, opts ...Option) (float64, error) {
	e, err := NewEvaluator(opts...)
	if err != nil {
		return math.NaN(), err
	}
	return e.Integrate(p, z, gamma)
}
