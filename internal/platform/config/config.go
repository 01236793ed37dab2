package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

var (
	errInvalidPort      = errors.New("config: invalid PORT number")
	errInvalidTimeout   = errors.New("config: timeouts must be positive")
	errInvalidRateLimit = errors.New("config: RATE_LIMIT_RPS and RATE_LIMIT_BURST must not be negative")
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Port     string `envconfig:"PORT" default:"8080"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"ERROR"`

	// AnalyzeTimeout bounds a whole /analyze request. The page fetch keeps
	// its own fixed budget underneath it.
	AnalyzeTimeout   time.Duration `envconfig:"ANALYZE_TIMEOUT" default:"30s"`
	DiscoveryTimeout time.Duration `envconfig:"DISCOVERY_TIMEOUT" default:"5s"`
	ShutdownTimeout  time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`

	// BlockPrivateDial rejects connections to private addresses after DNS
	// resolution, on top of the literal host check.
	BlockPrivateDial bool `envconfig:"BLOCK_PRIVATE_DIAL" default:"true"`

	// RateLimitRPS of 0 disables the per-client limiter.
	RateLimitRPS   float64 `envconfig:"RATE_LIMIT_RPS" default:"1"`
	RateLimitBurst int     `envconfig:"RATE_LIMIT_BURST" default:"5"`
}

// Load reads an optional .env file, then configuration from environment
// variables with sensible defaults.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		// A missing .env is the normal case outside local development.
		if _, statErr := os.Stat(".env"); statErr == nil {
			return Config{}, fmt.Errorf("config: load .env: %w", err)
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}

	return cfg, cfg.validate()
}

func (c Config) validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("%w: %q", errInvalidPort, c.Port)
	}

	if c.AnalyzeTimeout <= 0 || c.DiscoveryTimeout <= 0 || c.ShutdownTimeout <= 0 {
		return fmt.Errorf("%w: analyze=%s discovery=%s shutdown=%s",
			errInvalidTimeout, c.AnalyzeTimeout, c.DiscoveryTimeout, c.ShutdownTimeout)
	}

	if c.RateLimitRPS < 0 || c.RateLimitBurst < 0 {
		return fmt.Errorf("%w: rps=%g burst=%d", errInvalidRateLimit, c.RateLimitRPS, c.RateLimitBurst)
	}

	return nil
}
