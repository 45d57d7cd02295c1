package models

import "github.com/shopspring/decimal"

// FilterCriteria narrows the product listing. Empty sets leave a dimension unconstrained.
type FilterCriteria struct {
	Categories []Category       `json:"categories"`
	Sizes      []string         `json:"sizes"`
	Colors     []string         `json:"colors"`
	MaxPrice   *decimal.Decimal `json:"maxPrice,omitempty"` // Inclusive upper bound, nil for no limit
}

// Page is one window of an ordered sequence
type Page[T any] struct {
	Items      []T  `json:"items"`
	Page       int  `json:"page"`
	PageSize   int  `json:"pageSize"`
	TotalItems int  `json:"totalItems"`
	TotalPages int  `json:"totalPages"`
	HasPrev    bool `json:"hasPrev"`
	HasNext    bool `json:"hasNext"`
}

// ProductQuery is a full listing request: filter, then sort, then paginate
type ProductQuery struct {
	Criteria FilterCriteria
	Sort     string
	Page     int
	PageSize int
}

// LookbookItem represents a single product card in the lookbook export
type LookbookItem struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Brand       string `json:"brand"`
	Category    string `json:"category"`
	Price       string `json:"price"`       // Formatted, e.g. "$39.99"
	WasPrice    string `json:"wasPrice"`    // Formatted original price when marked down
	Badge       string `json:"badge"`
	Sizes       string `json:"sizes"`       // Comma separated for display
	ImageURL    string `json:"imageUrl"`
	ImageBase64 string `json:"imageBase64"` // Thumbnail for HTML/PDF generation
}
