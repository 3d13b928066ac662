package domain

// Product is the canonical catalog record. Every Product handed out by the
// catalog client carries its rating in object form and a non-nil Images slice.
type Product struct {
	ID                 int      `json:"id"`
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	Category           string   `json:"category"`
	Brand              string   `json:"brand,omitempty"`
	Price              float64  `json:"price"`
	DiscountPercentage float64  `json:"discountPercentage"`
	Rating             Rating   `json:"rating"`
	Images             []string `json:"images"`
	Thumbnail          string   `json:"thumbnail"`
	Stock              int      `json:"stock"`
}

// Rating is a product's average score and the number of reviews behind it.
type Rating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}

// HasDiscount reports whether the product is sold below its list price.
func (p *Product) HasDiscount() bool {
	return p.DiscountPercentage > 0
}

// DiscountedPrice returns price*(1-discount/100) when a discount applies,
// otherwise the list price.
func (p *Product) DiscountedPrice() float64 {
	if !p.HasDiscount() {
		return p.Price
	}
	return p.Price * (1 - p.DiscountPercentage/100)
}

// InStock reports whether at least one unit is available.
func (p *Product) InStock() bool {
	return p.Stock > 0
}
