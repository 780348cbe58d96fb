package config

import (
	"errors"
	"fmt"
	"os"
	"time"
)

const (
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
	StoreMemory = "memory"
)

// Config holds runtime settings for the ViviGo CLI.
type Config struct {
	APIBaseURL       string        `env:"API_BASE_URL"`
	StoreBackend     string        `env:"STORE"`
	DatabaseDSN      string        `env:"DATABASE_DSN"`
	RedisURL         string        `env:"REDIS_URL"`
	RefreshThreshold time.Duration `env:"REFRESH_THRESHOLD"`
	RequestTimeout   time.Duration `env:"REQUEST_TIMEOUT"`
	WatchInterval    time.Duration `env:"WATCH_INTERVAL"`
	LogLevel         string        `env:"LOG_LEVEL"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8080"
	c.StoreBackend = StoreSQLite
	c.DatabaseDSN = "vivigo.db"
	c.RedisURL = ""
	c.RefreshThreshold = 300 * time.Second
	c.RequestTimeout = 10 * time.Second
	c.WatchInterval = time.Minute
	c.LogLevel = "info"
}

// Validate checks values that cannot be fixed up later.
func (c *Config) Validate() error {
	var errs []error

	if c.APIBaseURL == "" {
		errs = append(errs, errors.New("api base url is required"))
	}
	switch c.StoreBackend {
	case StoreSQLite:
		if c.DatabaseDSN == "" {
			errs = append(errs, errors.New("database dsn is required for the sqlite store"))
		}
	case StoreRedis:
		if c.RedisURL == "" {
			errs = append(errs, errors.New("redis url is required for the redis store"))
		}
	case StoreMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown store backend %q", c.StoreBackend))
	}
	if c.RefreshThreshold <= 0 {
		errs = append(errs, errors.New("refresh threshold must be positive"))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, errors.New("request timeout must be positive"))
	}
	if c.WatchInterval < 0 {
		errs = append(errs, errors.New("watch interval must not be negative"))
	}

	return errors.Join(errs...)
}

// Load builds a Config from args (without the program name). Later
// sources take precedence over earlier ones: defaults, JSON file, .env
// file and environment, flags.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// LoadConfig is Load over the process arguments.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}
