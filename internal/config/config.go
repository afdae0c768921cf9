// Package config loads runtime settings from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/naka-gawa/gitview/internal/gateway"
	"github.com/naka-gawa/gitview/internal/usecase"
)

// Environment variable names.
const (
	EnvAPIURL      = "GITVIEW_API_URL"
	EnvHTTPTimeout = "GITVIEW_HTTP_TIMEOUT"
	EnvConcurrency = "GITVIEW_CONCURRENCY"
)

// DefaultHTTPTimeout bounds every upstream request.
const DefaultHTTPTimeout = 10 * time.Second

// Config holds application configuration.
type Config struct {
	APIURL      string
	HTTPTimeout time.Duration
	Concurrency int
}

// Load reads the given .env files (default ".env") if they exist, then builds
// a Config from the environment. Variables already set in the environment win
// over .env entries.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	cfg := &Config{
		APIURL:      getEnvOrDefault(EnvAPIURL, gateway.DefaultBaseURL),
		HTTPTimeout: DefaultHTTPTimeout,
		Concurrency: usecase.DefaultConcurrency,
	}

	if v := os.Getenv(EnvHTTPTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("invalid %s %q: must be a positive duration", EnvHTTPTimeout, v)
		}
		cfg.HTTPTimeout = d
	}

	if v := os.Getenv(EnvConcurrency); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid %s %q: must be a positive integer", EnvConcurrency, v)
		}
		cfg.Concurrency = n
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
