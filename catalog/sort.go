package catalog

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"fashionfusion-storefront/models"
)

// SortKey names a product ordering
type SortKey string

const (
	SortDefault   SortKey = "default"    // id ascending
	SortPriceLow  SortKey = "price-low"  // price ascending
	SortPriceHigh SortKey = "price-high" // price descending
	SortName      SortKey = "name"       // name ascending, English collation
	SortNewest    SortKey = "newest"     // id descending
	SortPopular   SortKey = "popular"    // review count descending
)

// ParseSortKey maps a query value to a SortKey. Unknown values fall back to SortDefault.
func ParseSortKey(s string) SortKey {
	switch key := SortKey(s); key {
	case SortPriceLow, SortPriceHigh, SortName, SortNewest, SortPopular:
		return key
	default:
		return SortDefault
	}
}

// Sort returns a sorted copy of products. The sort is stable, so ties keep input order.
func Sort(products []models.Product, key SortKey) []models.Product {
	sorted := make([]models.Product, len(products))
	copy(sorted, products)

	var less func(a, b models.Product) bool
	switch ParseSortKey(string(key)) {
	case SortPriceLow:
		less = func(a, b models.Product) bool { return a.Price.LessThan(b.Price) }
	case SortPriceHigh:
		less = func(a, b models.Product) bool { return a.Price.GreaterThan(b.Price) }
	case SortName:
		// Collator keeps per-instance buffers, one per call
		collator := collate.New(language.English)
		less = func(a, b models.Product) bool { return collator.CompareString(a.Name, b.Name) < 0 }
	case SortNewest:
		less = func(a, b models.Product) bool { return a.ID > b.ID }
	case SortPopular:
		less = func(a, b models.Product) bool { return a.Reviews > b.Reviews }
	default:
		less = func(a, b models.Product) bool { return a.ID < b.ID }
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		return less(sorted[i], sorted[j])
	})
	return sorted
}
