package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mohamed-2473/Store/internal/cache"
	"github.com/mohamed-2473/Store/internal/cache/memory"
	rediscache "github.com/mohamed-2473/Store/internal/cache/redis"
	"github.com/mohamed-2473/Store/internal/catalog"
	"github.com/mohamed-2473/Store/internal/config"
	"github.com/mohamed-2473/Store/internal/detail"
	"github.com/mohamed-2473/Store/pkg/health"
	"github.com/mohamed-2473/Store/pkg/httpclient"
	"github.com/mohamed-2473/Store/pkg/tracing"
)

// App wires together all dependencies of the storefront command line.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	out            io.Writer
	errOut         io.Writer
	catalog        catalog.Catalog
	detail         *detail.Controller
	health         *health.Registry
	store          cache.Store
	tracerShutdown func(context.Context) error
}

// NewApp creates a new application instance, initializing all dependencies.
// Command output goes to out; user notifications go to errOut.
func NewApp(ctx context.Context, cfg *config.Config, logger *slog.Logger, out, errOut io.Writer) (*App, error) {
	initCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	// Initialize OpenTelemetry tracing.
	tracerShutdown, err := tracing.InitTracer(initCtx, tracing.Config{
		ServiceName:    "storefront",
		ServiceVersion: "0.1.0",
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTELEndpoint,
		SampleRate:     cfg.OTELSampleRate,
		Enabled:        cfg.OTELEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	// HTTP transport to the catalog API.
	httpCfg := httpclient.DefaultConfig()
	httpCfg.Timeout = cfg.CatalogTimeout
	httpCfg.MaxRetries = cfg.CatalogMaxRetries
	httpCfg.RateLimit = cfg.CatalogRateLimit
	httpCfg.RateBurst = cfg.CatalogRateBurst
	baseClient := httpclient.New(httpCfg)

	var getter httpclient.Getter = baseClient
	if cfg.CatalogBreakerOn {
		getter = httpclient.NewCircuitBreakerClient(baseClient, httpclient.DefaultCircuitBreakerConfig("catalog"), logger)
	}

	client := catalog.NewClient(catalog.Config{
		BaseURL:    cfg.CatalogBaseURL,
		FetchLimit: cfg.CatalogFetchLimit,
	}, getter, nil, logger)
	logger.Debug("catalog client initialized",
		slog.String("base_url", cfg.CatalogBaseURL),
		slog.Int("fetch_limit", cfg.CatalogFetchLimit),
		slog.Bool("breaker", cfg.CatalogBreakerOn),
	)

	// Health checks.
	registry := health.NewRegistry(cfg.CatalogHealthCheck)
	registry.Register("catalog", client.Ping)

	// Optional response cache.
	var cat catalog.Catalog = client
	var store cache.Store
	switch cfg.CatalogCache {
	case cache.BackendMemory:
		store = memory.New()
		logger.Debug("in-memory catalog cache enabled", slog.Duration("ttl", cfg.CatalogCacheTTL))
	case cache.BackendRedis:
		redisClient, err := rediscache.NewClient(initCtx, rediscache.Config{
			Host:     cfg.RedisHost,
			Port:     cfg.RedisPort,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			_ = tracerShutdown(ctx)
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		redisStore := rediscache.New(redisClient)
		registry.RegisterOptional("redis", redisStore.Ping)
		store = redisStore
		logger.Debug("redis catalog cache enabled",
			slog.String("host", cfg.RedisHost),
			slog.Int("port", cfg.RedisPort),
			slog.Duration("ttl", cfg.CatalogCacheTTL),
		)
	}
	if store != nil {
		cat = catalog.NewCached(client, store, cfg.CatalogCacheTTL, logger)
	}

	return &App{
		cfg:            cfg,
		logger:         logger,
		out:            out,
		errOut:         errOut,
		catalog:        cat,
		detail:         detail.NewController(cat, logger),
		health:         registry,
		store:          store,
		tracerShutdown: tracerShutdown,
	}, nil
}

// Shutdown flushes traces, closes the cache and writes the metrics textfile
// when one is configured.
func (a *App) Shutdown() error {
	var errs []error

	if a.tracerShutdown != nil {
		tracerCtx, tracerCancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer tracerCancel()
		if err := a.tracerShutdown(tracerCtx); err != nil {
			a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.logger.Error("cache close error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	if a.cfg.MetricsTextfile != "" {
		if err := prometheus.WriteToTextfile(a.cfg.MetricsTextfile, prometheus.DefaultGatherer); err != nil {
			a.logger.Error("write metrics textfile", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
