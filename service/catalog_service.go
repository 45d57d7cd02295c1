package service

import (
	"context"
	"log"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"fashionfusion-storefront/catalog"
	"fashionfusion-storefront/metrics"
	"fashionfusion-storefront/models"
	"fashionfusion-storefront/repository"
)

// CatalogService handles product listing and lookup
type CatalogService struct {
	products        repository.ProductRepositoryInterface
	metrics         *metrics.Registry
	defaultPageSize int
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(products repository.ProductRepositoryInterface, registry *metrics.Registry, defaultPageSize int) *CatalogService {
	if defaultPageSize < 1 {
		defaultPageSize = catalog.DefaultPageSize
	}
	return &CatalogService{
		products:        products,
		metrics:         registry,
		defaultPageSize: defaultPageSize,
	}
}

// List filters, sorts and paginates the catalog
func (s *CatalogService) List(ctx context.Context, query models.ProductQuery) models.Page[models.Product] {
	_, span := tracer.Start(ctx, "CatalogService.List", trace.WithAttributes(
		attribute.String("catalog.sort", query.Sort),
		attribute.Int("catalog.page", query.Page),
	))
	defer span.End()

	if query.PageSize < 1 {
		query.PageSize = s.defaultPageSize
	}
	s.metrics.CatalogQueries.Inc()

	page := catalog.List(s.products.All(), query)
	span.SetAttributes(attribute.Int("catalog.total_items", page.TotalItems))

	log.Printf("🔍 CatalogService.List: sort=%q page=%d/%d matched=%d", query.Sort, page.Page, page.TotalPages, page.TotalItems)
	return page
}

// Matching returns every product the query's criteria accept, in the query's sort order
func (s *CatalogService) Matching(query models.ProductQuery) []models.Product {
	filtered := catalog.Filter(s.products.All(), query.Criteria)
	return catalog.Sort(filtered, catalog.ParseSortKey(query.Sort))
}

func (s *CatalogService) GetProduct(id int) (*models.Product, error) {
	p, ok := s.products.GetByID(id)
	if !ok {
		return nil, notFound("product", id)
	}
	return &p, nil
}
