package config

import (
	"testing"

	"seldom/adapters/stats/quadrature"
	"seldom/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SELDOM_QUADRATURE_ORDER", "")
	t.Setenv("SELDOM_WORKERS", "")
	t.Setenv("SELDOM_CLIP_MODE", "")
	t.Setenv("LOG_LEVEL", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, quadrature.DefaultOrder, cfg.Quadrature.Order)
	assert.Equal(t, 0, cfg.Evaluation.Workers)
	assert.Equal(t, "product", cfg.Evaluation.ClipMode)
	assert.Equal(t, "INFO", cfg.Logging.Level)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SELDOM_QUADRATURE_ORDER", "64")
	t.Setenv("SELDOM_WORKERS", "4")
	t.Setenv("SELDOM_CLIP_MODE", "Factors")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 64, cfg.Quadrature.Order)
	assert.Equal(t, 4, cfg.Evaluation.Workers)
	assert.Equal(t, "factors", cfg.Evaluation.ClipMode)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"zero order", "SELDOM_QUADRATURE_ORDER", "0"},
		{"unknown clip mode", "SELDOM_CLIP_MODE", "sum"},
		{"unknown log level", "LOG_LEVEL", "LOUD"},
		{"non-integer order", "SELDOM_QUADRATURE_ORDER", "abc"},
		{"fractional order", "SELDOM_QUADRATURE_ORDER", "12.5"},
		{"non-integer workers", "SELDOM_WORKERS", "four"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SELDOM_QUADRATURE_ORDER", "")
			t.Setenv("SELDOM_WORKERS", "")
			t.Setenv("SELDOM_CLIP_MODE", "")
			t.Setenv("LOG_LEVEL", "")
			t.Setenv(tt.key, tt.val)

			_, err := Load()
			require.Error(t, err)
			assert.True(t, errors.HasCode(err, errors.CodeConfigInvalid))
		})
	}
}
