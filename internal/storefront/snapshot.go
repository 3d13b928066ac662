package storefront

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/mohamed-2473/Store/internal/domain"
	"github.com/mohamed-2473/Store/internal/listing"
	"github.com/mohamed-2473/Store/pkg/logger"
)

// Source is the part of the catalog a browse session reads from.
type Source interface {
	FetchAll(ctx context.Context) ([]domain.Product, error)
}

// snapshot is the result of loading a view: the products and the category
// list derived from a second, independent catalog fetch.
type snapshot struct {
	products   []domain.Product
	categories []string
}

// loadSnapshot fetches products and categories concurrently. A failed
// category fetch leaves the category list empty and is only logged; a failed
// product fetch fails the load.
func loadSnapshot(ctx context.Context, source Source, log *slog.Logger) (snapshot, error) {
	var snap snapshot
	var g errgroup.Group

	g.Go(func() error {
		products, err := source.FetchAll(ctx)
		if err != nil {
			return err
		}
		snap.products = products
		return nil
	})

	categories := []string{}
	g.Go(func() error {
		products, err := source.FetchAll(ctx)
		if err != nil {
			logger.WithContext(ctx, log).WarnContext(ctx, "categories unavailable",
				slog.String("error", err.Error()),
			)
			return nil
		}
		categories = listing.Categories(products)
		return nil
	})

	if err := g.Wait(); err != nil {
		return snapshot{products: []domain.Product{}, categories: categories}, err
	}
	snap.categories = categories
	return snap, nil
}
