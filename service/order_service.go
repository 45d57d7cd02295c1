package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"fashionfusion-storefront/events"
	"fashionfusion-storefront/metrics"
	"fashionfusion-storefront/models"
	"fashionfusion-storefront/repository"
)

// OrderService reads the user's order history and drives order status changes
type OrderService struct {
	users     repository.UserRepositoryInterface
	orders    repository.OrderRepositoryInterface
	products  repository.ProductRepositoryInterface
	cart      *CartService
	publisher events.Publisher
	metrics   *metrics.Registry
	now       func() time.Time
}

// NewOrderService creates a new OrderService
func NewOrderService(
	users repository.UserRepositoryInterface,
	orders repository.OrderRepositoryInterface,
	products repository.ProductRepositoryInterface,
	cart *CartService,
	publisher events.Publisher,
	registry *metrics.Registry,
) *OrderService {
	return &OrderService{
		users:     users,
		orders:    orders,
		products:  products,
		cart:      cart,
		publisher: publisher,
		metrics:   registry,
		now:       time.Now,
	}
}

// List returns the user's orders, most recent first
func (s *OrderService) List(ctx context.Context, sessionID string) ([]models.Order, error) {
	user, err := requireUser(ctx, s.users, sessionID)
	if err != nil {
		return nil, err
	}
	return s.orders.ListByUser(ctx, user.ID)
}

func (s *OrderService) Get(ctx context.Context, sessionID, orderID string) (*models.Order, error) {
	orders, err := s.List(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		if orders[i].ID == orderID {
			return &orders[i], nil
		}
	}
	return nil, notFound("order", orderID)
}

// Reorder adds every item of a past order back into the session's cart.
// Items whose product left the catalog or is out of stock are skipped.
func (s *OrderService) Reorder(ctx context.Context, sessionID, orderID string) (*models.ReorderResponse, error) {
	order, err := s.Get(ctx, sessionID, orderID)
	if err != nil {
		return nil, err
	}

	resp := &models.ReorderResponse{OrderID: order.ID}
	for _, item := range order.Items {
		product, ok := s.products.GetByID(item.ProductID)
		if !ok || !product.InStock {
			resp.SkippedItems = append(resp.SkippedItems, item.ProductID)
			continue
		}
		if _, err := s.cart.Add(ctx, sessionID, item.ProductID, item.Quantity); err != nil {
			return nil, fmt.Errorf("failed to add product %d to cart: %w", item.ProductID, err)
		}
		resp.AddedItems += item.Quantity
	}

	log.Printf("✅ Reorder: order %s added %d items to cart (skipped %d)", order.ID, resp.AddedItems, len(resp.SkippedItems))
	return resp, nil
}

// UpdateStatus moves an order along processing -> shipped -> delivered, or to cancelled
func (s *OrderService) UpdateStatus(ctx context.Context, sessionID, orderID string, status models.OrderStatus) (*models.Order, error) {
	if !status.IsValid() {
		return nil, newValidationError("status", fmt.Sprintf("Unknown order status %q", status))
	}

	user, err := requireUser(ctx, s.users, sessionID)
	if err != nil {
		return nil, err
	}
	orders, err := s.orders.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	var order *models.Order
	for i := range orders {
		if orders[i].ID == orderID {
			order = &orders[i]
			break
		}
	}
	if order == nil {
		return nil, notFound("order", orderID)
	}
	if !order.Status.CanTransitionTo(status) {
		return nil, newValidationError("status", fmt.Sprintf("Cannot change order from %s to %s", order.Status, status))
	}

	order.Status = status
	if err := s.orders.SaveAll(ctx, user.ID, orders); err != nil {
		return nil, fmt.Errorf("failed to save order: %w", err)
	}

	if err := s.publisher.Publish(ctx, events.NewOrderEvent(events.TypeOrderStatusChanged, *order, s.now())); err != nil {
		log.Printf("⚠️  UpdateStatus: failed to publish status change for %s: %v", order.ID, err)
		s.metrics.EventFailures.Inc()
	}

	log.Printf("✅ UpdateStatus: order %s is now %s", order.ID, status)
	updated := *order
	return &updated, nil
}
