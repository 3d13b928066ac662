package storefront

import (
	"context"
	"log/slog"

	"github.com/mohamed-2473/Store/internal/domain"
)

// FeaturedCount is the number of products shown on the home page.
const FeaturedCount = 4

// Home is the landing page: the first products of the catalog and the
// category shortcuts.
type Home struct {
	Featured   []domain.Product `json:"featured"`
	Categories []string         `json:"categories"`
}

// LoadHome builds the home page. Featured products are the first
// FeaturedCount products in catalog order.
func LoadHome(ctx context.Context, source Source, logger *slog.Logger) (*Home, error) {
	snap, err := loadSnapshot(ctx, source, logger)
	if err != nil {
		return nil, err
	}

	featured := snap.products
	if len(featured) > FeaturedCount {
		featured = featured[:FeaturedCount]
	}
	return &Home{Featured: featured, Categories: snap.categories}, nil
}
