package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of an order
type OrderStatus string

const (
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:    {OrderStatusDelivered, OrderStatusCancelled},
}

// IsValid reports whether s is a known order status
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether an order in status s may move to next.
// Delivered and cancelled orders are final.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// OrderItem is a snapshot of a cart line at checkout time.
// Later catalog changes do not alter it.
type OrderItem struct {
	ProductID int             `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Image     string          `json:"image,omitempty"`
}

// Order represents a placed order
// Example response:
//
//	{
//	  "id": "ORD-1760874000000-3F2A9C",
//	  "userId": "b2f7...",
//	  "createdAt": "2026-10-19T11:40:00Z",
//	  "items": [{"productId": 1, "name": "Classic White T-Shirt", "price": "29.99", "quantity": 2}],
//	  "breakdown": {...},
//	  "total": "58.78",
//	  "promoCode": "SAVE10",
//	  "status": "processing"
//	}
type Order struct {
	ID        string          `json:"id"`
	UserID    string          `json:"userId"`
	CreatedAt time.Time       `json:"createdAt"`
	Items     []OrderItem     `json:"items"`
	Breakdown PriceBreakdown  `json:"breakdown"`
	Total     decimal.Decimal `json:"total"`
	PromoCode string          `json:"promoCode,omitempty"`
	Status    OrderStatus     `json:"status"`
}

// ItemCount returns the total quantity across the order's items
func (o Order) ItemCount() int {
	count := 0
	for _, item := range o.Items {
		count += item.Quantity
	}
	return count
}

// UpdateOrderStatusRequest represents the request body for PATCH /profile/orders/{id}/status
type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status"`
}

// ReorderResponse reports which items were put back into the cart
type ReorderResponse struct {
	OrderID      string `json:"orderId"`
	AddedItems   int    `json:"addedItems"`
	SkippedItems []int  `json:"skippedItems,omitempty"` // Product ids that are no longer available
}
