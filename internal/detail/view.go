package detail

import (
	"math"

	"github.com/mohamed-2473/Store/internal/domain"
)

// MaxStars is the size of a rating display.
const MaxStars = 5

// View is the state of a product detail page: the product and the image the
// user has selected.
type View struct {
	Product  domain.Product
	selected int
}

// NewView creates a view showing the first image.
func NewView(p domain.Product) *View {
	return &View{Product: p}
}

// SelectImage selects the image at index i. Indexes with no image fall back
// to the first image when read through CurrentImage.
func (v *View) SelectImage(i int) {
	v.selected = i
}

// SelectedIndex returns the selected image index.
func (v *View) SelectedIndex() int {
	return v.selected
}

// CurrentImage returns the selected image, else the first image, else the
// thumbnail, else "".
func (v *View) CurrentImage() string {
	images := v.Product.Images
	if v.selected >= 0 && v.selected < len(images) && images[v.selected] != "" {
		return images[v.selected]
	}
	if len(images) > 0 && images[0] != "" {
		return images[0]
	}
	return v.Product.Thumbnail
}

// DiscountedPrice returns the price after discount.
func (v *View) DiscountedPrice() float64 {
	return v.Product.DiscountedPrice()
}

// HasDiscount reports whether a discount applies.
func (v *View) HasDiscount() bool {
	return v.Product.HasDiscount()
}

// Stars returns which of the five rating stars are filled: star i is filled
// when i+1 <= floor(rate).
func Stars(rate float64) [MaxStars]bool {
	var stars [MaxStars]bool
	full := int(math.Floor(rate))
	for i := range stars {
		stars[i] = i+1 <= full
	}
	return stars
}

// HalfStar reports whether a half star follows the filled stars.
func HalfStar(rate float64) bool {
	if rate < 0 || rate >= MaxStars {
		return false
	}
	return rate-math.Floor(rate) >= 0.5
}
