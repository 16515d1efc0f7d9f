package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Storage backend names accepted in STORAGE_BACKEND.
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

type Config struct {
	Port           int    `env:"PORT" envDefault:"8080"`
	StorageBackend string `env:"STORAGE_BACKEND" envDefault:"file"`
	DataDir        string `env:"DATA_DIR" envDefault:"./data"`
	DatabaseURL    string `env:"DATABASE_URL"`
	RedisURL       string `env:"REDIS_URL"`
	MatcherURL     string `env:"MATCHER_URL"`
	MatcherTimeout int    `env:"MATCHER_TIMEOUT_SECONDS" envDefault:"20"`
	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func (c *Config) MatcherRequestTimeout() time.Duration {
	return time.Duration(c.MatcherTimeout) * time.Second
}

func (c *Config) Validate() error {
	switch c.StorageBackend {
	case BackendMemory, BackendFile:
	case BackendRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required when STORAGE_BACKEND=redis")
		}
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when STORAGE_BACKEND=postgres")
		}
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q (expected %s)", c.StorageBackend,
			strings.Join([]string{BackendMemory, BackendFile, BackendRedis, BackendPostgres}, ", "))
	}

	if c.MatcherURL != "" &&
		!strings.HasPrefix(c.MatcherURL, "http://") &&
		!strings.HasPrefix(c.MatcherURL, "https://") {
		return fmt.Errorf("MATCHER_URL must be an http(s) URL")
	}

	return nil
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
