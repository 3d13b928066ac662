package catalog

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/mohamed-2473/Store/internal/domain"
	apperrors "github.com/mohamed-2473/Store/pkg/errors"
	"github.com/mohamed-2473/Store/pkg/httpclient"
	"github.com/mohamed-2473/Store/pkg/logger"
	"github.com/mohamed-2473/Store/pkg/tracing"
)

const (
	serviceName = "catalog"

	// DefaultFetchLimit is the number of products requested for the full catalog.
	DefaultFetchLimit = 100

	// DefaultFeaturedLimit is the number of products on the home page.
	DefaultFeaturedLimit = 4

	// maxBody bounds how much of a catalog reply is read.
	maxBody = 16 << 20
)

// Catalog is the read-only product source used by the listing and detail views.
type Catalog interface {
	FetchAll(ctx context.Context) ([]domain.Product, error)
	FetchByID(ctx context.Context, id int) (*domain.Product, error)
	FetchByCategory(ctx context.Context, category string) ([]domain.Product, error)
	Search(ctx context.Context, query string) ([]domain.Product, error)
	Categories(ctx context.Context) ([]string, error)
	Featured(ctx context.Context, limit int) ([]domain.Product, error)
}

// Config holds catalog client settings.
type Config struct {
	BaseURL    string
	FetchLimit int
}

// Client talks to the remote catalog API and normalizes its replies.
// Every call goes to the network; nothing is cached here.
type Client struct {
	http       httpclient.Getter
	baseURL    string
	fetchLimit int
	normalizer *Normalizer
	logger     *slog.Logger
}

// NewClient creates a catalog client. A nil normalizer selects the default one.
func NewClient(cfg Config, httpClient httpclient.Getter, normalizer *Normalizer, logger *slog.Logger) *Client {
	if cfg.FetchLimit <= 0 {
		cfg.FetchLimit = DefaultFetchLimit
	}
	if normalizer == nil {
		normalizer = NewNormalizer(nil)
	}
	return &Client{
		http:       httpClient,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		fetchLimit: cfg.FetchLimit,
		normalizer: normalizer,
		logger:     logger,
	}
}

// FetchAll retrieves the full catalog, up to the configured limit.
func (c *Client) FetchAll(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	err := c.instrument(ctx, "FetchAll", func(ctx context.Context, span trace.Span) error {
		q := url.Values{"limit": {strconv.Itoa(c.fetchLimit)}}
		list, err := c.fetchList(ctx, "/products", q)
		if err != nil {
			return err
		}
		products = list
		span.SetAttributes(attribute.Int("catalog.products", len(products)))
		return nil
	})
	return products, err
}

// FetchByID retrieves one product. A missing product yields an error
// wrapping apperrors.ErrNotFound.
func (c *Client) FetchByID(ctx context.Context, id int) (*domain.Product, error) {
	var product *domain.Product
	err := c.instrument(ctx, "FetchByID", func(ctx context.Context, span trace.Span) error {
		span.SetAttributes(attribute.Int("catalog.product_id", id))
		if id < 1 {
			return apperrors.NotFound("product", strconv.Itoa(id))
		}

		body, err := c.get(ctx, "/products/"+strconv.Itoa(id), nil)
		if err != nil {
			return err
		}

		var raw upstreamProduct
		if err := decodeJSON(body, &raw); err != nil {
			return err
		}
		p := c.normalizer.Product(raw)
		product = &p
		return nil
	})
	return product, err
}

// FetchByCategory retrieves the products of a single category.
func (c *Client) FetchByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	var products []domain.Product
	err := c.instrument(ctx, "FetchByCategory", func(ctx context.Context, span trace.Span) error {
		span.SetAttributes(attribute.String("catalog.category", category))
		list, err := c.fetchList(ctx, "/products/category/"+url.PathEscape(category), nil)
		if err != nil {
			return err
		}
		products = list
		return nil
	})
	return products, err
}

// Search delegates a keyword search to the catalog API.
func (c *Client) Search(ctx context.Context, query string) ([]domain.Product, error) {
	var products []domain.Product
	err := c.instrument(ctx, "Search", func(ctx context.Context, span trace.Span) error {
		span.SetAttributes(attribute.String("catalog.query", query))
		list, err := c.fetchList(ctx, "/products/search", url.Values{"q": {query}})
		if err != nil {
			return err
		}
		products = list
		return nil
	})
	return products, err
}

// Categories retrieves the category slugs known to the catalog API.
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	err := c.instrument(ctx, "Categories", func(ctx context.Context, _ trace.Span) error {
		body, err := c.get(ctx, "/products/categories", nil)
		if err != nil {
			return err
		}
		list, err := decodeCategories(body)
		if err != nil {
			return apperrors.Network("catalog returned a malformed category list", 0, err)
		}
		categories = list
		return nil
	})
	return categories, err
}

// Featured returns the highest rated products of the full catalog.
func (c *Client) Featured(ctx context.Context, limit int) ([]domain.Product, error) {
	products, err := c.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	return TopRated(products, limit), nil
}

// TopRated returns up to limit products ordered by rating, highest first.
// Ties keep catalog order. The input slice is not modified.
func TopRated(products []domain.Product, limit int) []domain.Product {
	if limit <= 0 {
		limit = DefaultFeaturedLimit
	}
	sorted := slices.Clone(products)
	slices.SortStableFunc(sorted, func(a, b domain.Product) int {
		return cmp.Compare(b.Rating.Rate, a.Rating.Rate)
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

// Ping checks that the catalog API answers a minimal product request.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.get(ctx, "/products", url.Values{"limit": {"1"}, "select": {"id"}})
	return err
}

func (c *Client) fetchList(ctx context.Context, path string, query url.Values) ([]domain.Product, error) {
	body, err := c.get(ctx, path, query)
	if err != nil {
		return nil, err
	}
	list, err := decodeProductList(body)
	if err != nil {
		return nil, apperrors.Network("catalog returned a malformed product list", 0, err)
	}
	return c.normalizer.Products(list), nil
}

// get performs a GET against the catalog API and returns the reply body.
// Non-2xx replies and transport failures are mapped onto the error taxonomy.
func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	resp, err := c.http.Get(ctx, target)
	if err != nil {
		return nil, mapTransportError(ctx, err)
	}

	if !httpclient.IsSuccess(resp.StatusCode) {
		return nil, httpclient.ParseResponseError(resp, serviceName)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, apperrors.Network("read catalog response", resp.StatusCode, err)
	}
	return body, nil
}

// mapTransportError turns a failed round trip into a network error. The
// caller's own cancellation is returned as is.
func mapTransportError(ctx context.Context, err error) error {
	var appErr *apperrors.AppError
	switch {
	case errors.As(err, &appErr):
		return err
	case ctx.Err() != nil:
		return ctx.Err()
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return apperrors.Network("catalog temporarily unavailable", http.StatusServiceUnavailable, err)
	default:
		return apperrors.Network("catalog request failed", 0, err)
	}
}

func decodeJSON(body []byte, v any) error {
	if err := json.Unmarshal(body, v); err != nil {
		return apperrors.Network("catalog returned a malformed product", 0, err)
	}
	return nil
}

// instrument runs fn inside a span and records metrics and a log line for the
// operation.
func (c *Client) instrument(ctx context.Context, op string, fn func(ctx context.Context, span trace.Span) error) error {
	ctx, span := tracing.Tracer(serviceName).Start(ctx, serviceName+"."+op)
	defer span.End()

	start := time.Now()
	err := fn(ctx, span)
	elapsed := time.Since(start)

	outcome := outcomeOf(err)
	requestsTotal.WithLabelValues(op, outcome).Inc()
	requestDuration.WithLabelValues(op).Observe(elapsed.Seconds())

	log := logger.WithContext(ctx, c.logger)
	if err != nil {
		tracing.RecordError(span, err)
		log.WarnContext(ctx, "catalog request failed",
			slog.String("operation", op),
			slog.String("outcome", outcome),
			slog.Duration("duration", elapsed),
			slog.String("error", err.Error()),
		)
		return err
	}

	log.DebugContext(ctx, "catalog request completed",
		slog.String("operation", op),
		slog.Duration("duration", elapsed),
	)
	return nil
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return outcomeOK
	case apperrors.IsNotFound(err):
		return outcomeNotFound
	case apperrors.IsNetwork(err):
		return outcomeNetwork
	default:
		return outcomeError
	}
}

var _ Catalog = (*Client)(nil)
