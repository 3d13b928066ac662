package config

import (
	"fmt"
	"time"

	pkgconfig "github.com/mohamed-2473/Store/pkg/config"
)

// Config holds all configuration for the storefront reader.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`

	// Catalog API
	CatalogBaseURL     string        `env:"CATALOG_API_BASE_URL" envDefault:"https://dummyjson.com" validate:"required,url"`
	CatalogFetchLimit  int           `env:"CATALOG_FETCH_LIMIT" envDefault:"100" validate:"gte=1,lte=1000"`
	CatalogTimeout     time.Duration `env:"CATALOG_TIMEOUT" envDefault:"30s"`
	CatalogMaxRetries  int           `env:"CATALOG_MAX_RETRIES" envDefault:"0" validate:"gte=0,lte=10"`
	CatalogRateLimit   float64       `env:"CATALOG_RATE_LIMIT_RPS" envDefault:"0" validate:"gte=0"`
	CatalogRateBurst   int           `env:"CATALOG_RATE_BURST" envDefault:"1" validate:"gte=1"`
	CatalogBreakerOn   bool          `env:"CATALOG_BREAKER_ENABLED" envDefault:"true"`
	CatalogCache       string        `env:"CATALOG_CACHE" envDefault:"none" validate:"oneof=none memory redis"`
	CatalogCacheTTL    time.Duration `env:"CATALOG_CACHE_TTL" envDefault:"5m"`
	CatalogHealthCheck time.Duration `env:"CATALOG_HEALTH_TIMEOUT" envDefault:"5s"`

	// Redis (CATALOG_CACHE=redis)
	RedisHost     string `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort     int    `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0" validate:"gte=0"`

	// OpenTelemetry
	OTELEnabled    bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTELEndpoint   string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4318"`
	OTELSampleRate float64 `env:"OTEL_SAMPLE_RATE" envDefault:"1.0"`

	// Metrics are written in Prometheus text format to this file on exit.
	MetricsTextfile string `env:"METRICS_TEXTFILE" envDefault:""`
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

// validate checks configuration invariants the struct tags cannot express.
func (c *Config) validate() error {
	if c.CatalogTimeout <= 0 {
		return fmt.Errorf("CATALOG_TIMEOUT must be positive, got %s", c.CatalogTimeout)
	}
	if c.CatalogCacheTTL <= 0 {
		return fmt.Errorf("CATALOG_CACHE_TTL must be positive, got %s", c.CatalogCacheTTL)
	}
	if c.CatalogHealthCheck <= 0 {
		return fmt.Errorf("CATALOG_HEALTH_TIMEOUT must be positive, got %s", c.CatalogHealthCheck)
	}
	if c.CatalogCache == "redis" {
		if c.RedisHost == "" {
			return fmt.Errorf("REDIS_HOST is required when CATALOG_CACHE=redis")
		}
		if c.RedisPort < 1 || c.RedisPort > 65535 {
			return fmt.Errorf("invalid Redis port: %d", c.RedisPort)
		}
	}
	if c.OTELSampleRate < 0 || c.OTELSampleRate > 1.0 {
		return fmt.Errorf("OTEL_SAMPLE_RATE must be between 0.0 and 1.0, got %f", c.OTELSampleRate)
	}
	return nil
}
