package catalog

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	"github.com/mohamed-2473/Store/internal/cache"
	"github.com/mohamed-2473/Store/internal/domain"
)

// DefaultCacheTTL is how long cached replies stay valid.
const DefaultCacheTTL = 5 * time.Minute

// Cached decorates a Catalog with a response cache keyed by request path.
// Only successful results are stored. Cache failures degrade to a direct call.
type Cached struct {
	next   Catalog
	store  cache.Store
	ttl    time.Duration
	logger *slog.Logger
}

// NewCached wraps next with store.
func NewCached(next Catalog, store cache.Store, ttl time.Duration, logger *slog.Logger) *Cached {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cached{next: next, store: store, ttl: ttl, logger: logger}
}

// FetchAll implements Catalog.
func (c *Cached) FetchAll(ctx context.Context) ([]domain.Product, error) {
	return cachedCall(ctx, c, "/products", c.next.FetchAll)
}

// FetchByID implements Catalog.
func (c *Cached) FetchByID(ctx context.Context, id int) (*domain.Product, error) {
	return cachedCall(ctx, c, "/products/"+strconv.Itoa(id), func(ctx context.Context) (*domain.Product, error) {
		return c.next.FetchByID(ctx, id)
	})
}

// FetchByCategory implements Catalog.
func (c *Cached) FetchByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	return cachedCall(ctx, c, "/products/category/"+url.PathEscape(category), func(ctx context.Context) ([]domain.Product, error) {
		return c.next.FetchByCategory(ctx, category)
	})
}

// Search implements Catalog.
func (c *Cached) Search(ctx context.Context, query string) ([]domain.Product, error) {
	return cachedCall(ctx, c, "/products/search?q="+url.QueryEscape(query), func(ctx context.Context) ([]domain.Product, error) {
		return c.next.Search(ctx, query)
	})
}

// Categories implements Catalog.
func (c *Cached) Categories(ctx context.Context) ([]string, error) {
	return cachedCall(ctx, c, "/products/categories", c.next.Categories)
}

// Featured ranks the cached full catalog.
func (c *Cached) Featured(ctx context.Context, limit int) ([]domain.Product, error) {
	products, err := c.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	return TopRated(products, limit), nil
}

func cachedCall[T any](ctx context.Context, c *Cached, key string, fetch func(context.Context) (T, error)) (T, error) {
	payload, ok, err := c.store.Get(ctx, key)
	if err != nil {
		c.logger.WarnContext(ctx, "catalog cache read failed",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}
	if ok {
		var v T
		if err := json.Unmarshal(payload, &v); err == nil {
			cacheLookups.WithLabelValues("hit").Inc()
			return v, nil
		}
		c.logger.WarnContext(ctx, "discarding undecodable cache entry", slog.String("key", key))
	}
	cacheLookups.WithLabelValues("miss").Inc()

	v, err := fetch(ctx)
	if err != nil {
		return v, err
	}

	payload, err = json.Marshal(v)
	if err != nil {
		return v, nil
	}
	if err := c.store.Set(ctx, key, payload, c.ttl); err != nil {
		c.logger.WarnContext(ctx, "catalog cache write failed",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}
	return v, nil
}

var _ Catalog = (*Cached)(nil)
