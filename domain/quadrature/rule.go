package quadrature

import (
	"math"

	"seldom/internal/errors"
)

// Rule is a fixed quadrature rule on the reference interval [-1, 1].
// A Rule is immutable once constructed and safe for concurrent use.
type Rule struct {
	nodes   []float64
	weights []float64
}

// NewRule builds a rule from caller-supplied nodes and weights on [-1, 1].
// The slices are copied.
func NewRule(nodes, weights []float64) (*Rule, error) {
	if len(nodes) != len(weights) {
		return nil, errors.InvalidArgument("quadrature nodes and weights differ in length: %d != %d", len(nodes), len(weights))
	}
	if len(nodes) == 0 {
		return nil, errors.InvalidArgument("quadrature rule must contain at least one node")
	}
	return &Rule{
		nodes:   append([]float64(nil), nodes...),
		weights: append([]float64(nil), weights...),
	}, nil
}

// Len returns the order of the rule
func (r *Rule) Len() int {
	return len(r.nodes)
}

// Nodes returns a copy of the reference nodes
func (r *Rule) Nodes() []float64 {
	return append([]float64(nil), r.nodes...)
}

// Weights returns a copy of the reference weights
func (r *Rule) Weights() []float64 {
	return append([]float64(nil), r.weights...)
}

// MapTo transforms the rule from [-1, 1] onto [a, b] so that
//
//	∫_a^b f(x) dx ≈ Σ weights[i]·f(nodes[i])
//
// b < a is allowed and yields negated weights.
func (r *Rule) MapTo(a, b float64) (nodes, weights []float64) {
	half := 0.5 * (b - a)
	nodes = make([]float64, len(r.nodes))
	weights = make([]float64, len(r.weights))
	for i, u := range r.nodes {
		nodes[i] = a + half*(u+1)
		weights[i] = half * r.weights[i]
	}
	return nodes, weights
}

// IsSymmetric reports whether the nodes are antisymmetric about zero, the
// weights symmetric, and the weights sum to 2, all within tol.
func (r *Rule) IsSymmetric(tol float64) bool {
	n := len(r.nodes)
	var sum float64
	for i := 0; i < n; i++ {
		j := n - 1 - i
		if math.Abs(r.nodes[i]+r.nodes[j]) > tol || math.Abs(r.weights[i]-r.weights[j]) > tol {
			return false
		}
		sum += r.weights[i]
	}
	return math.Abs(sum-2) <= tol
}
