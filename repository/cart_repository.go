package repository

import (
	"context"
	"log"

	"fashionfusion-storefront/db"
	"fashionfusion-storefront/models"
)

// CartRepository persists each session's line items and applied promo code
type CartRepository struct {
	store db.Store
}

// NewCartRepository creates a new CartRepository
func NewCartRepository(store db.Store) *CartRepository {
	return &CartRepository{store: store}
}

// Ensure CartRepository implements CartRepositoryInterface
var _ CartRepositoryInterface = (*CartRepository)(nil)

// GetItems returns the session's line items, or an empty slice for a new session
func (r *CartRepository) GetItems(ctx context.Context, sessionID string) ([]models.LineItem, error) {
	items := []models.LineItem{}
	if _, err := getJSON(ctx, r.store, sessionCartKey(sessionID), &items); err != nil {
		return nil, err
	}
	return items, nil
}

// SaveItems writes the whole line item list
func (r *CartRepository) SaveItems(ctx context.Context, sessionID string, items []models.LineItem) error {
	if items == nil {
		items = []models.LineItem{}
	}
	return setJSON(ctx, r.store, sessionCartKey(sessionID), items)
}

func (r *CartRepository) GetPromo(ctx context.Context, sessionID string) (string, error) {
	var code string
	if _, err := getJSON(ctx, r.store, sessionPromoKey(sessionID), &code); err != nil {
		return "", err
	}
	return code, nil
}

func (r *CartRepository) SavePromo(ctx context.Context, sessionID string, code string) error {
	return setJSON(ctx, r.store, sessionPromoKey(sessionID), code)
}

func (r *CartRepository) ClearPromo(ctx context.Context, sessionID string) error {
	return deleteKey(ctx, r.store, sessionPromoKey(sessionID))
}

// Clear drops the applied promo code and then empties the cart, so a failure
// never leaves an empty cart with a stale promo behind
func (r *CartRepository) Clear(ctx context.Context, sessionID string) error {
	if err := r.ClearPromo(ctx, sessionID); err != nil {
		return err
	}
	if err := r.SaveItems(ctx, sessionID, nil); err != nil {
		return err
	}
	log.Printf("🧹 Cart cleared for session %s", sessionID)
	return nil
}
