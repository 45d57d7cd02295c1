package repository

import (
	"context"
	"log"

	"fashionfusion-storefront/db"
	"fashionfusion-storefront/models"
)

// OrderRepository stores each user's order history as a single list, most recent first
type OrderRepository struct {
	store db.Store
}

// NewOrderRepository creates a new OrderRepository
func NewOrderRepository(store db.Store) *OrderRepository {
	return &OrderRepository{store: store}
}

// Ensure OrderRepository implements OrderRepositoryInterface
var _ OrderRepositoryInterface = (*OrderRepository)(nil)

func (r *OrderRepository) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	orders := []models.Order{}
	if _, err := getJSON(ctx, r.store, userOrdersKey(userID), &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// Prepend adds order at the front of the user's history
func (r *OrderRepository) Prepend(ctx context.Context, userID string, order models.Order) error {
	orders, err := r.ListByUser(ctx, userID)
	if err != nil {
		return err
	}
	orders = append([]models.Order{order}, orders...)
	if err := r.SaveAll(ctx, userID, orders); err != nil {
		return err
	}
	log.Printf("✓ Order %s stored for user %s (%d orders)", order.ID, userID, len(orders))
	return nil
}

func (r *OrderRepository) SaveAll(ctx context.Context, userID string, orders []models.Order) error {
	if orders == nil {
		orders = []models.Order{}
	}
	return setJSON(ctx, r.store, userOrdersKey(userID), orders)
}

func (r *OrderRepository) DeleteAll(ctx context.Context, userID string) error {
	return deleteKey(ctx, r.store, userOrdersKey(userID))
}
