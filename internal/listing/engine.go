// Package listing turns a product snapshot and a set of criteria into one
// page of the storefront listing.
package listing

import (
	"cmp"
	"slices"
	"strings"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/mohamed-2473/Store/internal/domain"
	"github.com/mohamed-2473/Store/pkg/pagination"
)

// Collators keep internal buffers and are not safe for concurrent use.
var collators = sync.Pool{
	New: func() any { return collate.New(language.English) },
}

// Apply filters, sorts and paginates products according to c. It is pure:
// the input slice is never modified and equal inputs give equal results.
//
// The steps always run in this order: category filter, text filter, stable
// sort, pagination. The requested page is clamped into [1, max(1, totalPages)].
func Apply(products []domain.Product, c domain.Criteria) domain.Listing {
	matched := Filter(products, c)
	Sort(matched, c.Sort)

	pageSize := c.PageSize
	if pageSize <= 0 {
		pageSize = domain.DefaultPageSize
	}
	page := pagination.Paginate(matched, pagination.New(c.Page, pageSize))

	return domain.Listing{
		Items:       page.Data,
		Total:       page.TotalCount,
		Page:        page.Page,
		PageSize:    page.PerPage,
		TotalPages:  page.TotalPages,
		HasNext:     page.HasNext,
		HasPrev:     page.HasPrev,
		PageNumbers: pagination.PageNumbers(page.TotalPages),
	}
}

// Filter returns the products matching the category and text criteria, in
// input order. The result is a new slice.
func Filter(products []domain.Product, c domain.Criteria) []domain.Product {
	query := strings.ToLower(c.Query)
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if !c.IsAllCategories() && p.Category != c.Category {
			continue
		}
		if query != "" && !matchesQuery(p, query) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// matchesQuery reports whether the lowercased query occurs in title or description.
func matchesQuery(p domain.Product, query string) bool {
	return strings.Contains(strings.ToLower(p.Title), query) ||
		strings.Contains(strings.ToLower(p.Description), query)
}

// Sort orders products in place by key. The sort is stable; SortDefault and
// unknown keys keep the current order.
func Sort(products []domain.Product, key domain.SortKey) {
	switch key {
	case domain.SortPriceAsc:
		slices.SortStableFunc(products, func(a, b domain.Product) int {
			return cmp.Compare(a.Price, b.Price)
		})
	case domain.SortPriceDesc:
		slices.SortStableFunc(products, func(a, b domain.Product) int {
			return cmp.Compare(b.Price, a.Price)
		})
	case domain.SortNameAsc, domain.SortNameDesc:
		col := collators.Get().(*collate.Collator)
		defer collators.Put(col)
		desc := key == domain.SortNameDesc
		slices.SortStableFunc(products, func(a, b domain.Product) int {
			if desc {
				return col.CompareString(b.Title, a.Title)
			}
			return col.CompareString(a.Title, b.Title)
		})
	case domain.SortRating:
		slices.SortStableFunc(products, func(a, b domain.Product) int {
			return cmp.Compare(b.Rating.Rate, a.Rating.Rate)
		})
	default:
		// Keep upstream order.
	}
}

// Categories returns the distinct categories of products in first-seen order.
func Categories(products []domain.Product) []string {
	seen := make(map[string]struct{}, len(products))
	out := make([]string, 0)
	for _, p := range products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out
}
