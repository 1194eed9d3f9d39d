package config

import (
	"fmt"

	pkgconfig "github.com/Vinicius-Leon/leons-cupcake/pkg/config"
)

// Storage backends the client can persist to.
const (
	StorageFile  = "file"
	StorageRedis = "redis"
)

// Config holds all configuration for the storefront client.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// Backend API
	APIBaseURL string `env:"API_BASE_URL" envDefault:"http://localhost:5000"`

	// Local storage backend: "file" for a per-device data dir, "redis" for
	// shared kiosk deployments.
	StorageBackend string `env:"STORAGE_BACKEND" envDefault:"file"`
	DataDir        string `env:"DATA_DIR" envDefault:".storefront"`

	// Redis (only used when StorageBackend is "redis")
	RedisAddr   string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass   string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB     int    `env:"REDIS_DB" envDefault:"0"`
	RedisPrefix string `env:"REDIS_PREFIX" envDefault:"storefront"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load storefront config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("API base URL must not be empty")
	}
	if c.StorageBackend != StorageFile && c.StorageBackend != StorageRedis {
		return fmt.Errorf("invalid storage backend: %q", c.StorageBackend)
	}
	if c.StorageBackend == StorageFile && c.DataDir == "" {
		return fmt.Errorf("data dir must not be empty with file storage")
	}
	return nil
}
