package domain

import (
	"strings"

	"github.com/mohamed-2473/Store/pkg/pagination"
)

// AllCategories is the category sentinel that disables category filtering.
const AllCategories = "all"

// DefaultPageSize is the fixed number of products per listing page.
const DefaultPageSize = 12

// SortKey selects the listing order.
type SortKey string

// Sort key constants.
const (
	SortDefault   SortKey = "default"
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
	SortNameAsc   SortKey = "name-asc"
	SortNameDesc  SortKey = "name-desc"
	SortRating    SortKey = "rating"
)

// sortAliases maps alternate spellings accepted from user input.
var sortAliases = map[string]SortKey{
	"price-low":  SortPriceAsc,
	"price-high": SortPriceDesc,
}

// ValidSortKeys returns every canonical sort key.
func ValidSortKeys() []SortKey {
	return []SortKey{SortDefault, SortPriceAsc, SortPriceDesc, SortNameAsc, SortNameDesc, SortRating}
}

// ParseSortKey resolves s into a SortKey. An empty string yields SortDefault.
func ParseSortKey(s string) (SortKey, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return SortDefault, true
	}
	if k, ok := sortAliases[s]; ok {
		return k, true
	}
	for _, k := range ValidSortKeys() {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

// Criteria is the immutable set of user selections driving a listing.
// Transitions return a new value; the receiver is never modified.
type Criteria struct {
	Category string  `json:"category"`
	Query    string  `json:"query"`
	Sort     SortKey `json:"sort"`
	Page     int     `json:"page"`
	PageSize int     `json:"pageSize"`
}

// DefaultCriteria returns the criteria of a freshly opened listing.
func DefaultCriteria() Criteria {
	return Criteria{
		Category: AllCategories,
		Sort:     SortDefault,
		Page:     1,
		PageSize: DefaultPageSize,
	}
}

// WithCategory selects a category and returns to the first page.
func (c Criteria) WithCategory(category string) Criteria {
	if category == "" {
		category = AllCategories
	}
	c.Category = category
	c.Page = 1
	return c
}

// WithQuery sets the free-text query and returns to the first page.
func (c Criteria) WithQuery(query string) Criteria {
	c.Query = query
	c.Page = 1
	return c
}

// WithSort sets the sort key and returns to the first page.
func (c Criteria) WithSort(key SortKey) Criteria {
	c.Sort = key
	c.Page = 1
	return c
}

// WithPage moves to page when it lies within [1, totalPages]. Out-of-range
// requests leave the criteria unchanged and report false.
func (c Criteria) WithPage(page, totalPages int) (Criteria, bool) {
	if !pagination.InRange(page, totalPages) {
		return c, false
	}
	c.Page = page
	return c, true
}

// Reset returns the default criteria, keeping the page size.
func (c Criteria) Reset() Criteria {
	size := c.PageSize
	c = DefaultCriteria()
	if size > 0 {
		c.PageSize = size
	}
	return c
}

// IsAllCategories reports whether the category filter is disabled.
func (c Criteria) IsAllCategories() bool {
	return c.Category == "" || c.Category == AllCategories
}

// Listing is one rendered page of the filtered and sorted catalog.
type Listing struct {
	Items       []Product `json:"items"`
	Total       int       `json:"total"`
	Page        int       `json:"page"`
	PageSize    int       `json:"pageSize"`
	TotalPages  int       `json:"totalPages"`
	HasNext     bool      `json:"hasNext"`
	HasPrev     bool      `json:"hasPrev"`
	PageNumbers []int     `json:"pageNumbers"`
}
