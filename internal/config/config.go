package config

import (
	"os"
	"strconv"
	"strings"

	"seldom/adapters/stats/quadrature"
	"seldom/internal"
	"seldom/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Quadrature QuadratureConfig
	Evaluation EvaluationConfig
	Logging    LoggingConfig
}

// QuadratureConfig holds quadrature rule settings
type QuadratureConfig struct {
	Order int
}

// EvaluationConfig holds selection function evaluation settings
type EvaluationConfig struct {
	Workers  int    // <= 0 means GOMAXPROCS
	ClipMode string // "product" or "factors"
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	quadratureConfig, err := loadQuadratureConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load quadrature configuration")
	}

	evaluationConfig, err := loadEvaluationConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load evaluation configuration")
	}

	config := &Config{
		Quadrature: *quadratureConfig,
		Evaluation: *evaluationConfig,
		Logging:    *loadLoggingConfig(),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadQuadratureConfig() (*QuadratureConfig, error) {
	order, err := getEnvIntOrDefault("SELDOM_QUADRATURE_ORDER", quadrature.DefaultOrder)
	if err != nil {
		return nil, err
	}
	return &QuadratureConfig{Order: order}, nil
}

func loadEvaluationConfig() (*EvaluationConfig, error) {
	workers, err := getEnvIntOrDefault("SELDOM_WORKERS", 0)
	if err != nil {
		return nil, err
	}
	return &EvaluationConfig{
		Workers:  workers,
		ClipMode: strings.ToLower(getEnvOrDefault("SELDOM_CLIP_MODE", "product")),
	}, nil
}

func loadLoggingConfig() *LoggingConfig {
	return &LoggingConfig{
		Level: getEnvOrDefault("LOG_LEVEL", "INFO"),
	}
}

func validateConfig(config *Config) error {
	if config.Quadrature.Order < 1 {
		return errors.ConfigInvalid("SELDOM_QUADRATURE_ORDER must be at least 1")
	}
	switch config.Evaluation.ClipMode {
	case "product", "factors":
	default:
		return errors.ConfigInvalid("SELDOM_CLIP_MODE must be \"product\" or \"factors\"")
	}
	if _, ok := internal.ParseLogLevel(config.Logging.Level); !ok {
		return errors.ConfigInvalid("LOG_LEVEL must be one of ERROR, WARN, INFO, DEBUG, TRACE")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return 0, &errors.AppError{
			Code:    errors.CodeConfigInvalid,
			Message: key + " must be an integer",
			Cause:   err,
		}
	}
	return intValue, nil
}
