// Package storefront holds the browse session: the loaded catalog snapshot,
// the current listing criteria and the guard that drops results of
// navigations the user has already left.
package storefront

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"

	"github.com/mohamed-2473/Store/internal/domain"
	"github.com/mohamed-2473/Store/internal/listing"
)

// ErrStale is returned by Load when a newer navigation started while the
// load was in flight. Its result has been discarded.
var ErrStale = errors.New("storefront: stale result discarded")

// Session is a single user's browse state. Safe for concurrent use.
type Session struct {
	source Source
	logger *slog.Logger

	mu         sync.Mutex
	products   []domain.Product
	categories []string
	criteria   domain.Criteria
	generation uint64
	cancel     context.CancelFunc
}

// NewSession creates a session with default criteria and no products.
func NewSession(source Source, logger *slog.Logger) *Session {
	return &Session{
		source:     source,
		logger:     logger,
		products:   []domain.Product{},
		categories: []string{},
		criteria:   domain.DefaultCriteria(),
	}
}

// Navigate starts a new navigation: any load in flight is cancelled and its
// result will be discarded.
func (s *Session) Navigate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.navigateLocked()
}

func (s *Session) navigateLocked() uint64 {
	s.generation++
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	return s.generation
}

// Load fetches the catalog snapshot and commits it unless a newer navigation
// started meanwhile, in which case ErrStale is returned. On a product fetch
// failure the session holds no products and the error is returned.
func (s *Session) Load(ctx context.Context) error {
	s.mu.Lock()
	gen := s.navigateLocked()
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	source := s.source
	s.mu.Unlock()
	defer cancel()

	snap, err := loadSnapshot(ctx, source, s.logger)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		s.logger.DebugContext(ctx, "discarding stale catalog load", slog.Uint64("generation", gen))
		return ErrStale
	}
	s.cancel = nil

	s.products = snap.products
	s.categories = snap.categories
	return err
}

// Criteria returns the current criteria.
func (s *Session) Criteria() domain.Criteria {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.criteria
}

// Categories returns the categories derived from the loaded catalog.
func (s *Session) Categories() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.categories)
}

// View renders the current listing page.
func (s *Session) View() domain.Listing {
	s.mu.Lock()
	defer s.mu.Unlock()
	return listing.Apply(s.products, s.criteria)
}

// SetCriteria replaces the criteria wholesale, e.g. from a deep link.
func (s *Session) SetCriteria(c domain.Criteria) domain.Listing {
	return s.update(func(domain.Criteria) domain.Criteria { return c })
}

// SetCategory selects a category and returns to the first page.
func (s *Session) SetCategory(category string) domain.Listing {
	return s.update(func(c domain.Criteria) domain.Criteria { return c.WithCategory(category) })
}

// SetQuery sets the text query and returns to the first page.
func (s *Session) SetQuery(query string) domain.Listing {
	return s.update(func(c domain.Criteria) domain.Criteria { return c.WithQuery(query) })
}

// SetSort sets the sort key and returns to the first page.
func (s *Session) SetSort(key domain.SortKey) domain.Listing {
	return s.update(func(c domain.Criteria) domain.Criteria { return c.WithSort(key) })
}

// ResetFilters restores the default criteria.
func (s *Session) ResetFilters() domain.Listing {
	return s.update(func(c domain.Criteria) domain.Criteria { return c.Reset() })
}

// ChangePage moves to page if it exists in the current listing. Out-of-range
// requests change nothing and report false.
func (s *Session) ChangePage(page int) (domain.Listing, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := listing.Apply(s.products, s.criteria)
	next, ok := s.criteria.WithPage(page, current.TotalPages)
	if !ok {
		return current, false
	}
	s.criteria = next
	return listing.Apply(s.products, s.criteria), true
}

func (s *Session) update(fn func(domain.Criteria) domain.Criteria) domain.Listing {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.criteria = fn(s.criteria)
	return listing.Apply(s.products, s.criteria)
}
