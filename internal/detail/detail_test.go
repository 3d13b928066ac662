package detail

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohamed-2473/Store/internal/domain"
	apperrors "github.com/mohamed-2473/Store/pkg/errors"
	"github.com/mohamed-2473/Store/pkg/logger"
)

// stubSource is an in-memory ProductSource.
type stubSource struct {
	products []domain.Product
	allErr   error
	byIDErr  error
}

func (s *stubSource) FetchAll(context.Context) ([]domain.Product, error) {
	if s.allErr != nil {
		return nil, s.allErr
	}
	return s.products, nil
}

func (s *stubSource) FetchByID(_ context.Context, id int) (*domain.Product, error) {
	if s.byIDErr != nil {
		return nil, s.byIDErr
	}
	for i := range s.products {
		if s.products[i].ID == id {
			p := s.products[i]
			return &p, nil
		}
	}
	return nil, apperrors.NotFound("product", "999")
}

func catalogWithCategories(categories ...string) []domain.Product {
	out := make([]domain.Product, len(categories))
	for i, c := range categories {
		out[i] = domain.Product{ID: i + 1, Category: c, Images: []string{}}
	}
	return out
}

// ============================================================================
// LoadProduct
// ============================================================================

func TestLoadProduct_Found(t *testing.T) {
	src := &stubSource{products: catalogWithCategories("beauty", "laptops")}
	ctrl := NewController(src, logger.Discard())

	view, err := ctrl.LoadProduct(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, 2, view.Product.ID)
	assert.Equal(t, 0, view.SelectedIndex())
}

func TestLoadProduct_NotFound(t *testing.T) {
	src := &stubSource{products: catalogWithCategories("beauty")}
	ctrl := NewController(src, logger.Discard())

	view, err := ctrl.LoadProduct(context.Background(), 999)
	require.Error(t, err)
	assert.Nil(t, view)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestLoadProduct_NetworkErrorPassesThrough(t *testing.T) {
	netErr := apperrors.Network("catalog request failed", 0, nil)
	src := &stubSource{byIDErr: netErr}
	ctrl := NewController(src, logger.Discard())

	_, err := ctrl.LoadProduct(context.Background(), 1)
	assert.Same(t, netErr, err)
}

// ============================================================================
// LoadRelated
// ============================================================================

func TestLoadRelated_SameCategoryExcludingSelf(t *testing.T) {
	src := &stubSource{products: catalogWithCategories(
		"beauty", "laptops", "beauty", "beauty", "beauty", "beauty", "beauty",
	)}
	ctrl := NewController(src, logger.Discard())

	self := src.products[0]
	related, err := ctrl.LoadRelated(context.Background(), &self)
	require.NoError(t, err)

	require.Len(t, related, RelatedLimit)
	got := []int{related[0].ID, related[1].ID, related[2].ID, related[3].ID}
	assert.Equal(t, []int{3, 4, 5, 6}, got)
}

func TestLoadRelated_FewerThanLimit(t *testing.T) {
	src := &stubSource{products: catalogWithCategories("beauty", "laptops", "beauty")}
	ctrl := NewController(src, logger.Discard())

	self := src.products[1]
	related, err := ctrl.LoadRelated(context.Background(), &self)
	require.NoError(t, err)
	assert.NotNil(t, related)
	assert.Empty(t, related)

	self = src.products[0]
	related, err = ctrl.LoadRelated(context.Background(), &self)
	require.NoError(t, err)
	require.Len(t, related, 1)
	assert.Equal(t, 3, related[0].ID)
}

func TestLoad_RelatedFailureKeepsProduct(t *testing.T) {
	src := &stubSource{
		products: catalogWithCategories("beauty", "beauty"),
		allErr:   apperrors.Network("catalog request failed", 0, nil),
	}
	ctrl := NewController(src, logger.Discard())

	page, err := ctrl.Load(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, page.View)
	assert.Equal(t, 1, page.View.Product.ID)
	assert.Empty(t, page.Related)
	assert.True(t, apperrors.IsNetwork(page.RelatedErr))
}

func TestLoad_Success(t *testing.T) {
	src := &stubSource{products: catalogWithCategories("beauty", "beauty", "laptops")}
	ctrl := NewController(src, logger.Discard())

	page, err := ctrl.Load(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, page.Related, 1)
	assert.Equal(t, 1, page.Related[0].ID)
	assert.NoError(t, page.RelatedErr)
}

func TestLoad_ProductFailureFailsPage(t *testing.T) {
	ctrl := NewController(&stubSource{}, logger.Discard())

	page, err := ctrl.Load(context.Background(), 999)
	assert.Nil(t, page)
	assert.True(t, apperrors.IsNotFound(err))
}

// ============================================================================
// View
// ============================================================================

func TestCurrentImage(t *testing.T) {
	tests := []struct {
		name      string
		images    []string
		thumbnail string
		selected  int
		want      string
	}{
		{"selected present", []string{"a.jpg", "b.jpg"}, "t.jpg", 1, "b.jpg"},
		{"default first", []string{"a.jpg", "b.jpg"}, "t.jpg", 0, "a.jpg"},
		{"out of range falls back to first", []string{"a.jpg"}, "t.jpg", 5, "a.jpg"},
		{"negative falls back to first", []string{"a.jpg"}, "t.jpg", -1, "a.jpg"},
		{"no images uses thumbnail", []string{}, "t.jpg", 0, "t.jpg"},
		{"nothing at all", nil, "", 2, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewView(domain.Product{Images: tt.images, Thumbnail: tt.thumbnail})
			v.SelectImage(tt.selected)
			assert.Equal(t, tt.want, v.CurrentImage())
		})
	}
}

func TestView_Price(t *testing.T) {
	v := NewView(domain.Product{Price: 200, DiscountPercentage: 25})
	assert.True(t, v.HasDiscount())
	assert.InDelta(t, 150.0, v.DiscountedPrice(), 1e-9)

	v = NewView(domain.Product{Price: 200})
	assert.False(t, v.HasDiscount())
	assert.Equal(t, 200.0, v.DiscountedPrice())
}

func TestStars(t *testing.T) {
	assert.Equal(t, [5]bool{true, true, true, true, false}, Stars(4.94))
	assert.Equal(t, [5]bool{true, true, true, false, false}, Stars(3.0))
	assert.Equal(t, [5]bool{}, Stars(0.7))
	assert.Equal(t, [5]bool{true, true, true, true, true}, Stars(5))
}

func TestHalfStar(t *testing.T) {
	assert.True(t, HalfStar(4.5))
	assert.True(t, HalfStar(3.94))
	assert.False(t, HalfStar(3.49))
	assert.False(t, HalfStar(5))
	assert.False(t, HalfStar(-0.5))
}
