package catalog

import (
	"fashionfusion-storefront/models"
)

// DefaultPageSize is used when a non-positive page size is requested
const DefaultPageSize = 12

// Paginate returns one page of items. The requested page is clamped into
// [1, TotalPages]; an empty input yields page 1 of 0 with no items.
func Paginate[T any](items []T, pageSize, page int) models.Page[T] {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	total := len(items)
	totalPages := total / pageSize
	if total%pageSize != 0 {
		totalPages++
	}

	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}

	result := models.Page[T]{
		Items:      []T{},
		Page:       page,
		PageSize:   pageSize,
		TotalItems: total,
		TotalPages: totalPages,
	}
	if total == 0 {
		return result
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if end > total {
		end = total
	}
	result.Items = append(result.Items, items[start:end]...)
	result.HasPrev = page > 1
	result.HasNext = page < totalPages
	return result
}

// List runs the full pipeline: filter, then sort, then paginate
func List(products []models.Product, query models.ProductQuery) models.Page[models.Product] {
	filtered := Filter(products, query.Criteria)
	sorted := Sort(filtered, ParseSortKey(query.Sort))
	return Paginate(sorted, query.PageSize, query.Page)
}
