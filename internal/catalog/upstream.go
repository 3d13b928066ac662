package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand/v2"

	"github.com/mohamed-2473/Store/internal/domain"
	"github.com/mohamed-2473/Store/pkg/slug"
)

// Rating shapes reported in metrics.
const (
	ratingShapeObject  = "object"
	ratingShapeScalar  = "scalar"
	ratingShapeMissing = "missing"
)

// Synthesized review counts fall in [countBase, countBase+countSpan).
const (
	countBase = 50
	countSpan = 1000
)

// upstreamRating accepts either a bare number or a {rate, count} object.
type upstreamRating struct {
	shape string
	rate  float64
	count int
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *upstreamRating) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		r.shape = ratingShapeMissing
		return nil
	}

	if data[0] == '{' {
		var obj struct {
			Rate  float64 `json:"rate"`
			Count int     `json:"count"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return fmt.Errorf("decode rating object: %w", err)
		}
		r.shape = ratingShapeObject
		r.rate = obj.Rate
		r.count = obj.Count
		return nil
	}

	var rate float64
	if err := json.Unmarshal(data, &rate); err != nil {
		return fmt.Errorf("decode rating: %w", err)
	}
	r.shape = ratingShapeScalar
	r.rate = rate
	return nil
}

// upstreamProduct is a product exactly as the catalog API sends it.
type upstreamProduct struct {
	ID                 int             `json:"id"`
	Title              string          `json:"title"`
	Description        string          `json:"description"`
	Category           string          `json:"category"`
	Brand              string          `json:"brand"`
	Price              float64         `json:"price"`
	DiscountPercentage float64         `json:"discountPercentage"`
	Rating             *upstreamRating `json:"rating"`
	Images             []string        `json:"images"`
	Thumbnail          string          `json:"thumbnail"`
	Image              string          `json:"image"`
	Stock              int             `json:"stock"`
}

// productEnvelope is the paged list reply: {products, total, skip, limit}.
type productEnvelope struct {
	Products []upstreamProduct `json:"products"`
	Total    int               `json:"total"`
	Skip     int               `json:"skip"`
	Limit    int               `json:"limit"`
}

// decodeProductList accepts the paged envelope or a bare JSON array.
func decodeProductList(data []byte) ([]upstreamProduct, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var list []upstreamProduct
		if err := json.Unmarshal(data, &list); err != nil {
			return nil, fmt.Errorf("decode product array: %w", err)
		}
		return list, nil
	}

	var env productEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode product envelope: %w", err)
	}
	return env.Products, nil
}

// decodeCategories accepts ["beauty", ...] or [{"slug": "beauty", "name": "Beauty", "url": ...}, ...].
func decodeCategories(data []byte) ([]string, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}

	out := make([]string, 0, len(raw))
	for _, item := range raw {
		item = bytes.TrimSpace(item)
		if len(item) > 0 && item[0] == '"' {
			var s string
			if err := json.Unmarshal(item, &s); err != nil {
				return nil, fmt.Errorf("decode category name: %w", err)
			}
			out = append(out, s)
			continue
		}

		var obj struct {
			Slug string `json:"slug"`
			Name string `json:"name"`
		}
		if err := json.Unmarshal(item, &obj); err != nil {
			return nil, fmt.Errorf("decode category object: %w", err)
		}
		switch {
		case obj.Slug != "":
			out = append(out, obj.Slug)
		case obj.Name != "":
			out = append(out, slug.Generate(obj.Name))
		}
	}
	return out, nil
}

// Normalizer maps upstream products onto domain.Product.
type Normalizer struct {
	countFn func() int
}

// NewNormalizer returns a Normalizer. countFn supplies review counts for
// ratings that arrive as a bare number; nil selects a random count in [50, 1049].
func NewNormalizer(countFn func() int) *Normalizer {
	if countFn == nil {
		countFn = randomCount
	}
	return &Normalizer{countFn: countFn}
}

func randomCount() int {
	return rand.IntN(countSpan) + countBase
}

// Product converts a single upstream product.
func (n *Normalizer) Product(in upstreamProduct) domain.Product {
	out := domain.Product{
		ID:                 in.ID,
		Title:              in.Title,
		Description:        in.Description,
		Category:           in.Category,
		Brand:              in.Brand,
		Price:              in.Price,
		DiscountPercentage: in.DiscountPercentage,
		Images:             in.Images,
		Thumbnail:          in.Thumbnail,
		Stock:              in.Stock,
	}
	if out.Images == nil {
		out.Images = []string{}
	}
	if out.Thumbnail == "" {
		out.Thumbnail = in.Image
	}

	shape := ratingShapeMissing
	if in.Rating != nil && in.Rating.shape != "" {
		shape = in.Rating.shape
	}
	switch shape {
	case ratingShapeObject:
		out.Rating = domain.Rating{Rate: in.Rating.rate, Count: in.Rating.count}
	case ratingShapeScalar:
		out.Rating = domain.Rating{Rate: in.Rating.rate, Count: n.countFn()}
	default:
		out.Rating = domain.Rating{Count: n.countFn()}
	}
	productsNormalized.WithLabelValues(shape).Inc()

	return out
}

// Products converts a list, preserving upstream order. The result is never nil.
func (n *Normalizer) Products(in []upstreamProduct) []domain.Product {
	out := make([]domain.Product, 0, len(in))
	for i := range in {
		out = append(out, n.Product(in[i]))
	}
	return out
}
