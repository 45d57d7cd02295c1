package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fashionfusion-storefront/db"
	"fashionfusion-storefront/events"
	"fashionfusion-storefront/models"
	"fashionfusion-storefront/repository"
)

// failingCartRepo fails every write with err
type failingCartRepo struct {
	*repository.CartRepository
	err error
}

func (f failingCartRepo) SaveItems(ctx context.Context, sessionID string, items []models.LineItem) error {
	return f.err
}

func (f failingCartRepo) Clear(ctx context.Context, sessionID string) error { return f.err }

// keyFailingStore fails Set or Delete for keys ending in suffix
type keyFailingStore struct {
	db.Store
	op     string
	suffix string
}

func (s keyFailingStore) Set(ctx context.Context, key string, value []byte) error {
	if s.op == "set" && strings.HasSuffix(key, s.suffix) {
		return errors.New("boom")
	}
	return s.Store.Set(ctx, key, value)
}

func (s keyFailingStore) Delete(ctx context.Context, key string) error {
	if s.op == "delete" && strings.HasSuffix(key, s.suffix) {
		return errors.New("boom")
	}
	return s.Store.Delete(ctx, key)
}

func TestNewOrderID(t *testing.T) {
	at := time.UnixMilli(1700000000123)
	id := NewOrderID(at)
	assert.Regexp(t, regexp.MustCompile(`^ORD-1700000000123-[0-9A-F]{8}$`), id)
	assert.NotEqual(t, id, NewOrderID(at))
}

func TestCheckout_PlacesOrderAndClearsCart(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.login(t, "s1")
	env.checkout.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }

	_, err := env.cart.Add(ctx, "s1", 1, 2)
	require.NoError(t, err)
	_, err = env.cart.ApplyPromo(ctx, "s1", "SAVE10")
	require.NoError(t, err)

	order, err := env.checkout.Checkout(ctx, "s1")
	require.NoError(t, err)

	assert.Equal(t, user.ID, order.UserID)
	assert.Equal(t, models.OrderStatusProcessing, order.Status)
	assert.Equal(t, "SAVE10", order.PromoCode)
	assert.True(t, order.Total.Equal(d("58.78")))
	assert.Equal(t, 2, order.ItemCount())
	require.Len(t, order.Items, 1)
	assert.Equal(t, "Classic White T-Shirt", order.Items[0].Name)
	assert.True(t, order.Items[0].Price.Equal(d("29.99")))

	items, err := env.cart.Items(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, items)
	code, err := env.carts.GetPromo(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, code)

	history, err := env.orderRepo.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, order.ID, history[0].ID)

	published := env.publisher.published()
	require.Len(t, published, 1)
	assert.Equal(t, events.TypeOrderPlaced, published[0].Type)
	assert.Equal(t, order.ID, published[0].OrderID)

	assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.OrdersPlaced))
	assert.Equal(t, 58.78, testutil.ToFloat64(env.metrics.OrderRevenue))
}

func TestCheckout_MostRecentOrderFirst(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.login(t, "s1")

	var ids []string
	for _, pid := range []int{1, 3} {
		_, err := env.cart.Add(ctx, "s1", pid, 1)
		require.NoError(t, err)
		order, err := env.checkout.Checkout(ctx, "s1")
		require.NoError(t, err)
		ids = append(ids, order.ID)
	}

	history, err := env.orderRepo.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, ids[1], history[0].ID)
	assert.Equal(t, ids[0], history[1].ID)
}

func TestCheckout_EmptyCart(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.login(t, "s1")

	_, err := env.checkout.Checkout(ctx, "s1")
	assert.ErrorIs(t, err, ErrEmptyCart)

	// Lines for products no longer in the catalog do not count
	stale := []models.LineItem{{ProductID: 404, Quantity: 1}}
	require.NoError(t, env.carts.SaveItems(ctx, "s1", stale))
	_, err = env.checkout.Checkout(ctx, "s1")
	assert.ErrorIs(t, err, ErrEmptyCart)

	items, err := env.cart.Items(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, stale, items)

	history, err := env.orderRepo.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, history)
	assert.Equal(t, 2.0, testutil.ToFloat64(env.metrics.CheckoutFailures.WithLabelValues("empty_cart")))
}

func TestCheckout_RequiresLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.cart.Add(ctx, "s1", 1, 1)
	require.NoError(t, err)

	_, err = env.checkout.Checkout(ctx, "s1")
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	items, err := env.cart.Items(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, []models.LineItem{{ProductID: 1, Quantity: 1}}, items)
	assert.Empty(t, env.publisher.published())
}

func TestCheckout_PublishFailureStillPlacesOrder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.login(t, "s1")
	env.publisher.err = errors.New("broker down")

	_, err := env.cart.Add(ctx, "s1", 3, 1)
	require.NoError(t, err)

	order, err := env.checkout.Checkout(ctx, "s1")
	require.NoError(t, err)
	assert.NotEmpty(t, order.ID)
	assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.EventFailures))
}

func TestCheckout_UnappliedPromoIsNotRecorded(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.login(t, "s1")

	// SAVE20 needs $100; the stored code survives but is not applied
	_, err := env.cart.Add(ctx, "s1", 1, 1)
	require.NoError(t, err)
	require.NoError(t, env.carts.SavePromo(ctx, "s1", "SAVE20"))

	order, err := env.checkout.Checkout(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, order.PromoCode)
	assert.True(t, order.Breakdown.MinimumNotMet)
	assert.True(t, order.Total.Equal(order.Breakdown.Total))
}

func TestCheckout_RollsBackWhenCartCannotBeCleared(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.login(t, "s1")

	_, err := env.cart.Add(ctx, "s1", 1, 1)
	require.NoError(t, err)
	env.checkout.carts = failingCartRepo{CartRepository: env.carts, err: errors.New("write failed")}

	_, err = env.checkout.Checkout(ctx, "s1")
	assert.ErrorContains(t, err, "write failed")

	history, err := env.orderRepo.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, history)
	assert.Empty(t, env.publisher.published())
}

func TestCheckout_PartialClearFailureKeepsCart(t *testing.T) {
	tests := []struct {
		name   string
		op     string
		suffix string
	}{
		{"promo delete fails", "delete", ":promo"},
		{"emptying items fails", "set", ":cart"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			ctx := context.Background()
			user := env.login(t, "s1")

			_, err := env.cart.Add(ctx, "s1", 1, 2)
			require.NoError(t, err)
			_, err = env.cart.ApplyPromo(ctx, "s1", "SAVE10")
			require.NoError(t, err)

			env.checkout.carts = repository.NewCartRepository(keyFailingStore{Store: env.store, op: tt.op, suffix: tt.suffix})

			_, err = env.checkout.Checkout(ctx, "s1")
			assert.ErrorContains(t, err, "boom")

			history, err := env.orderRepo.ListByUser(ctx, user.ID)
			require.NoError(t, err)
			assert.Empty(t, history)

			items, err := env.carts.GetItems(ctx, "s1")
			require.NoError(t, err)
			assert.Equal(t, []models.LineItem{{ProductID: 1, Quantity: 2}}, items)
			code, err := env.carts.GetPromo(ctx, "s1")
			require.NoError(t, err)
			assert.Equal(t, "SAVE10", code)
		})
	}
}
