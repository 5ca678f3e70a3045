package selection

import (
	"golang.org/x/sync/errgroup"
)

// SelectVec evaluates s(x; z, γ) for every x. Each entry is independent and
// computed against the shared z and γ; the output has the length of xs.
func (e *Evaluator) SelectVec(xs, z []float64, gamma float64) ([]float64, error) {
	odds, err := oddsOf(gamma)
	if err != nil {
		return nil, err
	}
	return e.fanOut(xs, func(x float64) float64 {
		return e.selection(x, z, odds)
	})
}

// IntegrateVec evaluates S(p; z, γ) for every p
func (e *Evaluator) IntegrateVec(ps, z []float64, gamma float64) ([]float64, error) {
	odds, err := oddsOf(gamma)
	if err != nil {
		return nil, err
	}
	return e.fanOut(ps, func(p float64) float64 {
		return e.integral(p, z, odds)
	})
}

func (e *Evaluator) fanOut(in []float64, f func(float64) float64) ([]float64, error) {
	out := make([]float64, len(in))
	var g errgroup.Group
	g.SetLimit(e.workers)
	for i, v := range in {
		i, v := i, v
		g.Go(func() error {
			out[i] = f(v)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// SelectionFuncVec is the element-wise form of SelectionFunc
func SelectionFuncVec(xs, z []float64, gamma float64, opts ...Option) ([]float64, error) {
	e, err := NewEvaluator(opts...)
	if err != nil {
		return nil, err
	}
	return e.SelectVec(xs, z, gamma)
}

// IntegrateSelectionFuncVec is the element-wise form of IntegrateSelectionFunc
func IntegrateSelectionFuncVec(ps, z []float64, gamma float64, opts ...Option) ([]float64, error) {
	e, err := NewEvaluator(opts...)
	if err != nil {
		return nil, err
	}
	return e.IntegrateVec(ps, z, gamma)
}
