package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/multierr"

	"stockSignals/internal/adapters/logger"
	"stockSignals/internal/domain"
	"stockSignals/internal/ports"
)

const defaultBaseURL = "https://www.alphavantage.co"

// Config holds all application configuration. It is loaded once at startup
// and passed by value into constructors.
type Config struct {
	// Alpha Vantage
	APIKey      string
	BaseURL     string
	HTTPTimeout time.Duration
	MinInterval time.Duration // Minimum spacing between fresh fetches (free tier: 5 req/min)

	// Data
	CacheDir   string
	OutputSize domain.OutputSize

	// Strategy Parameters
	FastPeriod int
	SlowPeriod int

	// Logging
	LogLevel  logger.LogLevel
	LogFormat logger.Format
}

// LoadConfig loads configuration from environment variables (.env file).
func LoadConfig() (*Config, error) {
	// Load .env file, but don't fail if it doesn't exist (allow pure env vars)
	_ = godotenv.Load()

	cfg := &Config{}
	var errs error

	cfg.APIKey = strings.TrimSpace(getEnv("ALPHAVANTAGE_API_KEY", ""))
	if cfg.APIKey == "" {
		errs = multierr.Append(errs, fmt.Errorf("ALPHAVANTAGE_API_KEY must be set"))
	}
	cfg.BaseURL = strings.TrimRight(getEnv("ALPHAVANTAGE_BASE_URL", defaultBaseURL), "/")

	timeoutSeconds, err := getEnvAsIntRequired("HTTP_TIMEOUT_SECONDS", 30)
	if err != nil {
		errs = multierr.Append(errs, err)
	} else if timeoutSeconds <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("HTTP_TIMEOUT_SECONDS must be positive"))
	}
	cfg.HTTPTimeout = time.Duration(timeoutSeconds) * time.Second

	intervalSeconds, err := getEnvAsFloatRequired("RATE_LIMIT_INTERVAL_SECONDS", 12)
	if err != nil {
		errs = multierr.Append(errs, err)
	} else if intervalSeconds <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("RATE_LIMIT_INTERVAL_SECONDS must be positive"))
	}
	cfg.MinInterval = time.Duration(intervalSeconds * float64(time.Second))

	cfg.CacheDir = getEnv("CACHE_DIR", "data_cache")

	cfg.OutputSize, err = ParseOutputSize(getEnv("OUTPUT_SIZE", string(domain.Compact)))
	if err != nil {
		errs = multierr.Append(errs, err)
	}

	cfg.FastPeriod, err = getEnvAsIntRequired("FAST_PERIOD", 20)
	if err != nil {
		errs = multierr.Append(errs, err)
	}
	cfg.SlowPeriod, err = getEnvAsIntRequired("SLOW_PERIOD", 50)
	if err != nil {
		errs = multierr.Append(errs, err)
	}
	if cfg.FastPeriod <= 0 || cfg.SlowPeriod <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("FAST_PERIOD and SLOW_PERIOD must be positive"))
	}

	cfg.LogLevel = logger.ParseLevel(getEnv("LOG_LEVEL", "INFO"))
	cfg.LogFormat = logger.Format(strings.ToLower(getEnv("LOG_FORMAT", string(logger.FormatText))))

	if errs != nil {
		return nil, fmt.Errorf("%w: %w", ports.ErrConfigurationError, errs)
	}

	return cfg, nil
}

// ParseOutputSize validates an output size string.
func ParseOutputSize(s string) (domain.OutputSize, error) {
	switch size := domain.OutputSize(strings.ToLower(strings.TrimSpace(s))); size {
	case domain.Compact, domain.Full:
		return size, nil
	default:
		return "", fmt.Errorf("%w: output size must be %q or %q, got %q", ports.ErrInvalidInput, domain.Compact, domain.Full, s)
	}
}

// --- Env Var Helpers ---

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsIntRequired(key string, defaultValue int) (int, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return 0, fmt.Errorf("invalid integer value '%s' for key %s: %w", valueStr, key, err)
	}
	return value, nil
}

func getEnvAsFloatRequired(key string, defaultValue float64) (float64, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue, nil
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid float value '%s' for key %s: %w", valueStr, key, err)
	}
	return value, nil
}
