package repository

import (
	"context"
	"fmt"
	"log"

	"fashionfusion-storefront/db"
	"fashionfusion-storefront/models"
)

// CatalogRepository holds the product catalog. Products are read from the
// store once at startup and are immutable afterwards.
type CatalogRepository struct {
	products []models.Product
	index    map[int]models.Product
}

// Ensure CatalogRepository implements ProductRepositoryInterface
var _ ProductRepositoryInterface = (*CatalogRepository)(nil)

// LoadCatalogRepository reads the catalog from store. When the store has no
// catalog yet, seed is persisted and used.
func LoadCatalogRepository(ctx context.Context, store db.Store, seed []models.Product) (*CatalogRepository, error) {
	log.Printf("🔍 LoadCatalogRepository: Reading %s", catalogProductsKey)

	var products []models.Product
	found, err := getJSON(ctx, store, catalogProductsKey, &products)
	if err != nil {
		return nil, err
	}

	if !found {
		if len(seed) == 0 {
			return nil, fmt.Errorf("catalog is empty and no seed products were given")
		}
		if err := setJSON(ctx, store, catalogProductsKey, seed); err != nil {
			return nil, err
		}
		log.Printf("✓ Catalog seeded with %d products", len(seed))
		products = seed
	}

	log.Printf("✅ LoadCatalogRepository: %d products loaded", len(products))
	return NewCatalogRepository(products), nil
}

// NewCatalogRepository wraps an in-memory product list
func NewCatalogRepository(products []models.Product) *CatalogRepository {
	return &CatalogRepository{
		products: products,
		index:    models.IndexProducts(products),
	}
}

// All returns the catalog in its stored order. Callers must not modify it.
func (r *CatalogRepository) All() []models.Product {
	return r.products
}

func (r *CatalogRepository) Index() map[int]models.Product {
	return r.index
}

func (r *CatalogRepository) GetByID(id int) (models.Product, bool) {
	p, ok := r.index[id]
	return p, ok
}
