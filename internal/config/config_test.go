package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "https://dummyjson.com", cfg.CatalogBaseURL)
	assert.Equal(t, 100, cfg.CatalogFetchLimit)
	assert.Equal(t, 30*time.Second, cfg.CatalogTimeout)
	assert.Equal(t, 0, cfg.CatalogMaxRetries)
	assert.Zero(t, cfg.CatalogRateLimit)
	assert.True(t, cfg.CatalogBreakerOn)
	assert.Equal(t, "none", cfg.CatalogCache)
	assert.Equal(t, 5*time.Minute, cfg.CatalogCacheTTL)
	assert.Equal(t, "localhost", cfg.RedisHost)
	assert.Equal(t, 6379, cfg.RedisPort)
	assert.False(t, cfg.OTELEnabled)
	assert.Empty(t, cfg.MetricsTextfile)
}

func TestLoad_CustomValues(t *testing.T) {
	t.Setenv("CATALOG_API_BASE_URL", "https://fakestoreapi.com")
	t.Setenv("CATALOG_FETCH_LIMIT", "30")
	t.Setenv("CATALOG_TIMEOUT", "2s")
	t.Setenv("CATALOG_MAX_RETRIES", "2")
	t.Setenv("CATALOG_RATE_LIMIT_RPS", "5.5")
	t.Setenv("CATALOG_BREAKER_ENABLED", "false")
	t.Setenv("CATALOG_CACHE", "memory")
	t.Setenv("METRICS_TEXTFILE", "/tmp/storefront.prom")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "https://fakestoreapi.com", cfg.CatalogBaseURL)
	assert.Equal(t, 30, cfg.CatalogFetchLimit)
	assert.Equal(t, 2*time.Second, cfg.CatalogTimeout)
	assert.Equal(t, 2, cfg.CatalogMaxRetries)
	assert.Equal(t, 5.5, cfg.CatalogRateLimit)
	assert.False(t, cfg.CatalogBreakerOn)
	assert.Equal(t, "memory", cfg.CatalogCache)
	assert.Equal(t, "/tmp/storefront.prom", cfg.MetricsTextfile)
}

func TestLoad_InvalidBaseURL(t *testing.T) {
	t.Setenv("CATALOG_API_BASE_URL", "not a url")

	cfg, err := Load()

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CatalogBaseURL")
}

func TestLoad_InvalidCacheBackend(t *testing.T) {
	t.Setenv("CATALOG_CACHE", "memcached")

	cfg, err := Load()

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CatalogCache")
}

func TestLoad_InvalidFetchLimit(t *testing.T) {
	t.Setenv("CATALOG_FETCH_LIMIT", "0")

	cfg, err := Load()

	assert.Nil(t, cfg)
	assert.Error(t, err)
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "verbose")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_NonPositiveTimeout(t *testing.T) {
	t.Setenv("CATALOG_TIMEOUT", "0s")

	cfg, err := Load()

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CATALOG_TIMEOUT must be positive")
}

func TestLoad_MalformedDuration(t *testing.T) {
	t.Setenv("CATALOG_CACHE_TTL", "soon")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestLoad_RedisPortCheckedOnlyForRedisCache(t *testing.T) {
	t.Setenv("REDIS_PORT", "99999")

	_, err := Load()
	require.NoError(t, err)

	t.Setenv("CATALOG_CACHE", "redis")

	cfg, err := Load()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid Redis port")
}

func TestLoad_InvalidOTELSampleRate(t *testing.T) {
	t.Setenv("OTEL_SAMPLE_RATE", "2.0")

	cfg, err := Load()

	assert.Nil(t, cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "OTEL_SAMPLE_RATE must be between 0.0 and 1.0")
}
