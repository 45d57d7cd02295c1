package models

import (
	"github.com/shopspring/decimal"
)

// Category groups products in the shop sidebar
type Category string

const (
	CategoryMen         Category = "men"
	CategoryWomen       Category = "women"
	CategoryKids        Category = "kids"
	CategoryAccessories Category = "accessories"
)

// Categories lists every category in display order
var Categories = []Category{CategoryMen, CategoryWomen, CategoryKids, CategoryAccessories}

// IsValid reports whether c is one of the known categories
func (c Category) IsValid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Product represents a catalog entry. Products are immutable once loaded.
// Example:
//
//	{
//	  "id": 3,
//	  "name": "Summer Dress",
//	  "price": "39.99",
//	  "originalPrice": "49.99",
//	  "category": "women",
//	  "brand": "StyleCraft",
//	  "sizes": ["S", "M"],
//	  "colors": ["red"],
//	  "image": "https://images.example.com/summer-dress.jpg",
//	  "rating": 4.6,
//	  "reviews": 42,
//	  "badge": "Sale",
//	  "inStock": true
//	}
type Product struct {
	ID            int              `json:"id"`
	Name          string           `json:"name"`
	Price         decimal.Decimal  `json:"price"`
	OriginalPrice *decimal.Decimal `json:"originalPrice,omitempty"` // Set when the product is marked down
	Category      Category         `json:"category"`
	Brand         string           `json:"brand"`
	Sizes         []string         `json:"sizes"`
	Colors        []string         `json:"colors"`
	Image         string           `json:"image"`
	Rating        float64          `json:"rating"`
	Reviews       int              `json:"reviews"`
	Badge         string           `json:"badge,omitempty"`
	InStock       bool             `json:"inStock"`
}

// HasAnySize reports whether the product is offered in at least one of sizes
func (p Product) HasAnySize(sizes []string) bool {
	return intersects(p.Sizes, sizes)
}

// HasAnyColor reports whether the product is offered in at least one of colors
func (p Product) HasAnyColor(colors []string) bool {
	return intersects(p.Colors, colors)
}

func intersects(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if h == w {
				return true
			}
		}
	}
	return false
}

// IndexProducts builds a lookup table keyed by product id
func IndexProducts(products []Product) map[int]Product {
	index := make(map[int]Product, len(products))
	for _, p := range products {
		index[p.ID] = p
	}
	return index
}
