package ports

import (
	"seldom/domain/quadrature"
)

// RuleProvider supplies quadrature rules on [-1, 1] for a given order
type RuleProvider interface {
	// Rule returns the rule of the requested order; order < 1 is an invalid-argument error
	Rule(order int) (*quadrature.Rule, error)
}
