package selection

import (
	"runtime"
	"strings"

	domainQuadrature "seldom/domain/quadrature"
	"seldom/internal/errors"
	"seldom/ports"
)

// ClipMode selects where the integrand is clamped to [0, 1]
type ClipMode int

const (
	// ClipProduct clamps the product of the affine factors
	ClipProduct ClipMode = iota
	// ClipFactors clamps every factor before multiplying
	ClipFactors
)

func (m ClipMode) String() string {
	switch m {
	case ClipProduct:
		return "product"
	case ClipFactors:
		return "factors"
	}
	return "unknown"
}

// ParseClipMode accepts "product" (or empty) and "factors"
func ParseClipMode(name string) (ClipMode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "product":
		return ClipProduct, nil
	case "factors":
		return ClipFactors, nil
	}
	return ClipProduct, errors.InvalidArgument("unknown clip mode %q", name)
}

// Option configures an Evaluator
type Option func(*options)

type options struct {
	rule     *domainQuadrature.Rule
	order    int
	orderSet bool
	provider ports.RuleProvider
	clip     ClipMode
	workers  int
}

// WithRule uses a precomputed rule on [-1, 1]. It takes precedence over WithOrder.
func WithRule(rule *domainQuadrature.Rule) Option {
	return func(o *options) {
		o.rule = rule
	}
}

// WithOrder sets the Gauss-Legendre order requested from the provider
func WithOrder(order int) Option {
	return func(o *options) {
		o.order = order
		o.orderSet = true
	}
}

// WithProvider replaces the default cached Gauss-Legendre provider
func WithProvider(provider ports.RuleProvider) Option {
	return func(o *options) {
		o.provider = provider
	}
}

// WithClipMode selects where the integrand is clamped
func WithClipMode(mode ClipMode) Option {
	return func(o *options) {
		o.clip = mode
	}
}

// WithWorkers bounds the goroutines used by the vector forms; n <= 0 means GOMAXPROCS
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

func (o *options) workerLimit() int {
	if o.workers > 0 {
		return o.workers
	}
	return runtime.GOMAXPROCS(0)
}
