package quadrature

import (
	"testing"

	"seldom/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRule_RejectsBadShapes(t *testing.T) {
	_, err := NewRule([]float64{-0.5, 0.5}, []float64{1})
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.CodeInvalidArgument))

	_, err = NewRule(nil, nil)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.CodeInvalidArgument))
}

func TestNewRule_CopiesInput(t *testing.T) {
	nodes := []float64{-0.5, 0.5}
	weights := []float64{1, 1}
	rule, err := NewRule(nodes, weights)
	require.NoError(t, err)

	nodes[0] = 42
	weights[1] = 42
	assert.Equal(t, []float64{-0.5, 0.5}, rule.Nodes())
	assert.Equal(t, []float64{1, 1}, rule.Weights())

	rule.Nodes()[0] = 7
	assert.Equal(t, -0.5, rule.Nodes()[0])
}

func TestRule_MapTo(t *testing.T) {
	rule, err := NewRule([]float64{-1, 0, 1}, []float64{0.5, 1, 0.5})
	require.NoError(t, err)

	nodes, weights := rule.MapTo(0, 1)
	assert.InDeltaSlice(t, []float64{0, 0.5, 1}, nodes, 1e-15)
	assert.InDeltaSlice(t, []float64{0.25, 0.5, 0.25}, weights, 1e-15)

	nodes, weights = rule.MapTo(0, 0.3)
	assert.InDeltaSlice(t, []float64{0, 0.15, 0.3}, nodes, 1e-15)
	assert.InDeltaSlice(t, []float64{0.075, 0.15, 0.075}, weights, 1e-15)
}

func TestRule_IsSymmetric(t *testing.T) {
	rule, err := NewRule([]float64{-0.5, 0.5}, []float64{1, 1})
	require.NoError(t, err)
	assert.True(t, rule.IsSymmetric(1e-12))

	skewed, err := NewRule([]float64{-0.5, 0.4}, []float64{1, 1})
	require.NoError(t, err)
	assert.False(t, skewed.IsSymmetric(1e-12))

	short, err := NewRule([]float64{-0.5, 0.5}, []float64{0.9, 0.9})
	require.NoError(t, err)
	assert.False(t, short.IsSymmetric(1e-12))
}
