// Package catalog implements the product listing pipeline: filter, sort, paginate.
package catalog

import (
	"fashionfusion-storefront/models"
)

// Filter returns the products matching every constraint in criteria, in input order.
// Empty category, size and color sets leave that dimension unconstrained.
func Filter(products []models.Product, criteria models.FilterCriteria) []models.Product {
	result := make([]models.Product, 0, len(products))
	for _, p := range products {
		if Matches(p, criteria) {
			result = append(result, p)
		}
	}
	return result
}

// Matches reports whether a single product passes criteria
func Matches(p models.Product, criteria models.FilterCriteria) bool {
	if len(criteria.Categories) > 0 && !hasCategory(criteria.Categories, p.Category) {
		return false
	}
	if len(criteria.Sizes) > 0 && !p.HasAnySize(criteria.Sizes) {
		return false
	}
	if len(criteria.Colors) > 0 && !p.HasAnyColor(criteria.Colors) {
		return false
	}
	if criteria.MaxPrice != nil && p.Price.GreaterThan(*criteria.MaxPrice) {
		return false
	}
	return true
}

func hasCategory(categories []models.Category, c models.Category) bool {
	for _, category := range categories {
		if category == c {
			return true
		}
	}
	return false
}
