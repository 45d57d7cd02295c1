package repository

import (
	"context"

	"fashionfusion-storefront/db"
	"fashionfusion-storefront/models"
)

// WishlistRepository stores each user's wishlist as one ordered list
type WishlistRepository struct {
	store db.Store
}

// NewWishlistRepository creates a new WishlistRepository
func NewWishlistRepository(store db.Store) *WishlistRepository {
	return &WishlistRepository{store: store}
}

// Ensure WishlistRepository implements WishlistRepositoryInterface
var _ WishlistRepositoryInterface = (*WishlistRepository)(nil)

func (r *WishlistRepository) List(ctx context.Context, userID string) ([]models.Product, error) {
	products := []models.Product{}
	if _, err := getJSON(ctx, r.store, userWishlistKey(userID), &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *WishlistRepository) SaveAll(ctx context.Context, userID string, products []models.Product) error {
	if products == nil {
		products = []models.Product{}
	}
	return setJSON(ctx, r.store, userWishlistKey(userID), products)
}

func (r *WishlistRepository) DeleteAll(ctx context.Context, userID string) error {
	return deleteKey(ctx, r.store, userWishlistKey(userID))
}
