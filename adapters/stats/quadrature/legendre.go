package quadrature

import (
	"sort"
	"sync"

	domainQuadrature "seldom/domain/quadrature"
	"seldom/internal"
	"seldom/internal/errors"

	"gonum.org/v1/gonum/integrate/quad"
)

// DefaultOrder is the number of Gauss-Legendre points used when the caller
// does not supply a rule.
const DefaultOrder = 100

// LegendreProvider generates Gauss-Legendre rules and caches them by order
type LegendreProvider struct {
	cache  sync.Map // int -> *domainQuadrature.Rule
	logger *internal.Logger
}

var defaultProvider = NewLegendreProvider(internal.DefaultLogger)

// NewLegendreProvider creates a provider with an empty cache
func NewLegendreProvider(logger *internal.Logger) *LegendreProvider {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &LegendreProvider{logger: logger}
}

// Default returns the process-wide provider
func Default() *LegendreProvider {
	return defaultProvider
}

// Rule returns the Gauss-Legendre rule of the given order, generating it on first use
func (p *LegendreProvider) Rule(order int) (*domainQuadrature.Rule, error) {
	if order < 1 {
		return nil, errors.InvalidArgument("quadrature order must be at least 1, got %d", order)
	}
	if cached, ok := p.cache.Load(order); ok {
		p.logger.Trace("reusing cached Gauss-Legendre rule of order %d", order)
		return cached.(*domainQuadrature.Rule), nil
	}

	rule, err := GaussLegendre(order)
	if err != nil {
		return nil, err
	}
	actual, loaded := p.cache.LoadOrStore(order, rule)
	if !loaded {
		p.logger.Debug("generated Gauss-Legendre rule of order %d", order)
	}
	return actual.(*domainQuadrature.Rule), nil
}

// GaussLegendre computes the n-point Gauss-Legendre rule on [-1, 1] without caching.
// Nodes are returned in ascending order, exactly antisymmetric, with symmetric weights.
func GaussLegendre(n int) (*domainQuadrature.Rule, error) {
	if n < 1 {
		return nil, errors.InvalidArgument("quadrature order must be at least 1, got %d", n)
	}

	nodes := make([]float64, n)
	weights := make([]float64, n)
	quad.Legendre{}.FixedLocations(nodes, weights, -1, 1)

	sort.Sort(byNode{nodes: nodes, weights: weights})
	symmetrize(nodes, weights)

	return domainQuadrature.NewRule(nodes, weights)
}

// symmetrize averages mirrored pairs so the rule is symmetric to the last bit
func symmetrize(nodes, weights []float64) {
	n := len(nodes)
	for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
		m := 0.5 * (nodes[j] - nodes[i])
		nodes[i], nodes[j] = -m, m
		w := 0.5 * (weights[i] + weights[j])
		weights[i], weights[j] = w, w
	}
	if n%2 == 1 {
		nodes[n/2] = 0
	}
}

type byNode struct {
	nodes, weights []float64
}

func (b byNode) Len() int           { return len(b.nodes) }
func (b byNode) Less(i, j int) bool { return b.nodes[i] < b.nodes[j] }
func (b byNode) Swap(i, j int) {
	b.nodes[i], b.nodes[j] = b.nodes[j], b.nodes[i]
	b.weights[i], b.weights[j] = b.weights[j], b.weights[i]
}
