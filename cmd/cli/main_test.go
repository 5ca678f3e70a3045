package main

import (
	"bytes"
	"log"
	"strconv"
	"strings"
	"testing"

	"seldom/adapters/stats/quadrature"
	"seldom/internal"
	"seldom/internal/config"
	"seldom/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Quadrature: config.QuadratureConfig{Order: quadrature.DefaultOrder},
		Evaluation: config.EvaluationConfig{ClipMode: "product"},
		Logging:    config.LoggingConfig{Level: "ERROR"},
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return executeWith(t, testConfig(), args...)
}

func executeWith(t *testing.T, appConfig *config.Config, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(appConfig, internal.NewLoggerFromString(appConfig.Logging.Level))
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSelectCmd(t *testing.T) {
	out, err := execute(t, "select", "--x", "0.3", "--gamma", "0.5")
	require.NoError(t, err)

	v, err := strconv.ParseFloat(strings.TrimSpace(out), 64)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, v, 1e-9)
}

func TestIntegrateCmd(t *testing.T) {
	out, err := execute(t, "integrate", "--p", "0", "--z", "0.5,0.7", "--gamma", "0.5")
	require.NoError(t, err)
	assert.Equal(t, "0", strings.TrimSpace(out))
}

func TestSelectCmd_DegenerateGamma(t *testing.T) {
	_, err := execute(t, "select", "--x", "0.3", "--z", "0.5", "--gamma", "1")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.CodeDomainError))
}

func TestSelectCmd_BadClipMode(t *testing.T) {
	_, err := execute(t, "select", "--x", "0.3", "--clip", "sum")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.CodeInvalidArgument))
}

func TestSweepCmd(t *testing.T) {
	out, err := execute(t, "sweep", "--z", "0.5,0.7", "--gamma", "0.5", "--points", "5", "--workers", "2")
	require.NoError(t, err)

	assert.Contains(t, out, "s(p) summary:")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 1+5+2)

	_, err = execute(t, "sweep", "--points", "1")
	require.Error(t, err)
}

func TestRuleCmd(t *testing.T) {
	out, err := execute(t, "rule", "--order", "3")
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 4)

	_, err = execute(t, "rule", "--order", "0")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.CodeInvalidArgument))
}

func TestRuleCmd_UsesConfiguredLogLevel(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Writer()
	log.SetOutput(&buf)
	defer log.SetOutput(prev)

	cfg := testConfig()
	cfg.Logging.Level = "DEBUG"
	_, err := executeWith(t, cfg, "rule", "--order", "4")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "[DEBUG] generated Gauss-Legendre rule of order 4")

	buf.Reset()
	_, err = execute(t, "rule", "--order", "4")
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "generated Gauss-Legendre rule")
}

func TestSelectCmd_TracesReferenceSet(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Writer()
	log.SetOutput(&buf)
	defer log.SetOutput(prev)

	cfg := testConfig()
	cfg.Logging.Level = "TRACE"
	_, err := executeWith(t, cfg, "select", "--x", "0.3", "--z", "0.5,0.7", "--gamma", "0.5", "--order", "8")
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "[DEBUG] evaluating with order=8")
	assert.Contains(t, out, "[TRACE] reference p-values: [0.5, 0.7]")
	assert.Contains(t, out, "generated Gauss-Legendre rule of order 8")
}

func TestGaussFDCmd(t *testing.T) {
	out, err := execute(t, "gaussfd", "--a", "-40", "--t", "0.5")
	require.NoError(t, err)

	v, err := strconv.ParseFloat(strings.TrimSpace(out), 64)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, v, 1e-6)
}
