package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fashionfusion-storefront/events"
	"fashionfusion-storefront/models"
)

// placeOrder checks out the given lines on sessionID
func (env *testEnv) placeOrder(t *testing.T, sessionID string, lines ...models.LineItem) *models.Order {
	t.Helper()
	ctx := context.Background()
	for _, line := range lines {
		_, err := env.cart.Add(ctx, sessionID, line.ProductID, line.Quantity)
		require.NoError(t, err)
	}
	order, err := env.checkout.Checkout(ctx, sessionID)
	require.NoError(t, err)
	return order
}

func TestOrderService_ListAndGet(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.orders.List(ctx, "s1")
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	env.login(t, "s1")
	first := env.placeOrder(t, "s1", models.LineItem{ProductID: 1, Quantity: 1})
	second := env.placeOrder(t, "s1", models.LineItem{ProductID: 3, Quantity: 2})

	orders, err := env.orders.List(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, second.ID, orders[0].ID)

	got, err := env.orders.Get(ctx, "s1", first.ID)
	require.NoError(t, err)
	assert.True(t, got.Total.Equal(first.Total))

	_, err = env.orders.Get(ctx, "s1", "ORD-0-MISSING")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOrderService_Reorder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.login(t, "s1")

	order := models.Order{
		ID:     "ORD-1-AAAAAAAA",
		UserID: user.ID,
		Items: []models.OrderItem{
			{ProductID: 1, Name: "Classic White T-Shirt", Price: d("29.99"), Quantity: 2},
			{ProductID: 5, Name: "Straw Hat", Price: d("15.00"), Quantity: 1},
			{ProductID: 77, Name: "Retired Scarf", Price: d("12.00"), Quantity: 1},
		},
		Status: models.OrderStatusDelivered,
	}
	require.NoError(t, env.orderRepo.Prepend(ctx, user.ID, order))
	_, err := env.cart.Add(ctx, "s1", 1, 1)
	require.NoError(t, err)

	resp, err := env.orders.Reorder(ctx, "s1", order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, resp.OrderID)
	assert.Equal(t, 2, resp.AddedItems)
	assert.Equal(t, []int{5, 77}, resp.SkippedItems)

	items, err := env.cart.Items(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, []models.LineItem{{ProductID: 1, Quantity: 3}}, items)
}

func TestOrderService_UpdateStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.login(t, "s1")
	order := env.placeOrder(t, "s1", models.LineItem{ProductID: 2, Quantity: 1})

	_, err := env.orders.UpdateStatus(ctx, "s1", order.ID, models.OrderStatusDelivered)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr, "processing orders cannot jump to delivered")

	_, err = env.orders.UpdateStatus(ctx, "s1", order.ID, models.OrderStatus("lost"))
	require.ErrorAs(t, err, &verr)

	updated, err := env.orders.UpdateStatus(ctx, "s1", order.ID, models.OrderStatusShipped)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusShipped, updated.Status)

	updated, err = env.orders.UpdateStatus(ctx, "s1", order.ID, models.OrderStatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusDelivered, updated.Status)

	_, err = env.orders.UpdateStatus(ctx, "s1", order.ID, models.OrderStatusCancelled)
	require.ErrorAs(t, err, &verr, "delivered is final")

	stored, err := env.orders.Get(ctx, "s1", order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusDelivered, stored.Status)

	published := env.publisher.published()
	require.Len(t, published, 3)
	assert.Equal(t, events.TypeOrderStatusChanged, published[2].Type)
	assert.Equal(t, string(models.OrderStatusDelivered), published[2].Status)

	_, err = env.orders.UpdateStatus(ctx, "s1", "ORD-0-MISSING", models.OrderStatusShipped)
	assert.ErrorIs(t, err, ErrNotFound)
}
