package listing

import (
	"strings"

	"github.com/mohamed-2473/Store/internal/domain"
	apperrors "github.com/mohamed-2473/Store/pkg/errors"
	"github.com/mohamed-2473/Store/pkg/validator"
)

// criteriaInput is raw listing input as typed by a user.
type criteriaInput struct {
	Category string `validate:"max=100"`
	Query    string `validate:"max=200"`
	Sort     string `validate:"omitempty,oneof=default price-asc price-desc name-asc name-desc rating price-low price-high"`
	Page     int    `validate:"gte=0"`
}

// ParseCriteria validates raw user input and builds Criteria from it.
// An empty category selects all categories and page 0 selects the first page.
func ParseCriteria(category, query, sort string, page int) (domain.Criteria, error) {
	sort = strings.ToLower(strings.TrimSpace(sort))
	in := criteriaInput{Category: category, Query: query, Sort: sort, Page: page}
	if err := validator.Validate(in); err != nil {
		return domain.Criteria{}, apperrors.InvalidInput(err.Error())
	}

	key, ok := domain.ParseSortKey(sort)
	if !ok {
		return domain.Criteria{}, apperrors.InvalidInput("unknown sort key: " + sort)
	}

	c := domain.DefaultCriteria().
		WithCategory(category).
		WithQuery(query).
		WithSort(key)
	if page > 0 {
		c.Page = page
	}
	return c, nil
}
