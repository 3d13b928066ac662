// Package detail resolves a single product and its related products for the
// product detail page.
package detail

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/mohamed-2473/Store/internal/domain"
	apperrors "github.com/mohamed-2473/Store/pkg/errors"
	"github.com/mohamed-2473/Store/pkg/logger"
)

// RelatedLimit caps the number of related products.
const RelatedLimit = 4

// ProductSource is the part of the catalog the detail page reads from.
type ProductSource interface {
	FetchAll(ctx context.Context) ([]domain.Product, error)
	FetchByID(ctx context.Context, id int) (*domain.Product, error)
}

// Controller loads detail pages. It only signals outcomes; redirecting and
// notifying the user is up to the caller.
type Controller struct {
	source ProductSource
	logger *slog.Logger
}

// NewController creates a detail controller.
func NewController(source ProductSource, logger *slog.Logger) *Controller {
	return &Controller{source: source, logger: logger}
}

// LoadProduct resolves the product with the given id. Not-found and network
// errors are returned unchanged.
func (c *Controller) LoadProduct(ctx context.Context, id int) (*View, error) {
	p, err := c.source.FetchByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return NewView(*p), nil
}

// LoadRelated returns up to RelatedLimit products from the same category,
// excluding p itself, in catalog order. Fewer matches are returned as they
// are, possibly none.
func (c *Controller) LoadRelated(ctx context.Context, p *domain.Product) ([]domain.Product, error) {
	all, err := c.source.FetchAll(ctx)
	if err != nil {
		return nil, err
	}

	related := make([]domain.Product, 0, RelatedLimit)
	for _, candidate := range all {
		if candidate.Category != p.Category || candidate.ID == p.ID {
			continue
		}
		related = append(related, candidate)
		if len(related) == RelatedLimit {
			break
		}
	}
	return related, nil
}

// Page is a fully loaded detail page.
type Page struct {
	View    *View
	Related []domain.Product
	// RelatedErr is set when related products could not be loaded. The
	// product itself is still valid.
	RelatedErr error
}

// Load resolves the product and then its related products. Only a failure to
// load the product fails the page.
func (c *Controller) Load(ctx context.Context, id int) (*Page, error) {
	view, err := c.LoadProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	page := &Page{View: view, Related: []domain.Product{}}
	related, err := c.LoadRelated(ctx, &view.Product)
	if err != nil {
		logger.WithContext(ctx, c.logger).WarnContext(ctx, "related products unavailable",
			slog.String("product_id", strconv.Itoa(id)),
			slog.String("error", err.Error()),
		)
		page.RelatedErr = apperrors.Wrap(err, "load related products")
		return page, nil
	}
	page.Related = related
	return page, nil
}
