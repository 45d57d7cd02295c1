package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"fashionfusion-storefront/events"
	"fashionfusion-storefront/metrics"
	"fashionfusion-storefront/models"
	"fashionfusion-storefront/pricing"
	"fashionfusion-storefront/repository"
)

// CheckoutService turns a session's cart into an order for the logged-in user
type CheckoutService struct {
	carts     repository.CartRepositoryInterface
	orders    repository.OrderRepositoryInterface
	users     repository.UserRepositoryInterface
	products  repository.ProductRepositoryInterface
	engine    *pricing.Engine
	locks     *SessionLocks
	publisher events.Publisher
	metrics   *metrics.Registry
	now       func() time.Time
}

// NewCheckoutService creates a new CheckoutService
func NewCheckoutService(
	carts repository.CartRepositoryInterface,
	orders repository.OrderRepositoryInterface,
	users repository.UserRepositoryInterface,
	products repository.ProductRepositoryInterface,
	engine *pricing.Engine,
	locks *SessionLocks,
	publisher events.Publisher,
	registry *metrics.Registry,
) *CheckoutService {
	return &CheckoutService{
		carts:     carts,
		orders:    orders,
		users:     users,
		products:  products,
		engine:    engine,
		locks:     locks,
		publisher: publisher,
		metrics:   registry,
		now:       time.Now,
	}
}

// NewOrderID returns "ORD-" followed by the unix millisecond timestamp and a random suffix
func NewOrderID(at time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return "ORD-" + strconv.FormatInt(at.UnixMilli(), 10) + "-" + suffix
}

// Checkout places an order from the session's cart. The cart is validated,
// priced, snapshotted into the user's order history and cleared while the
// session lock is held, so no cart mutation can interleave.
// On error nothing is written.
func (s *CheckoutService) Checkout(ctx context.Context, sessionID string) (*models.Order, error) {
	start := s.now()
	ctx, span := tracer.Start(ctx, "CheckoutService.Checkout",
		trace.WithAttributes(attribute.String("session.id", sessionID)))
	defer span.End()

	log.Printf("📥 Checkout: session=%s", sessionID)

	unlock := s.locks.Lock(sessionID)
	defer unlock()

	order, err := s.placeOrder(ctx, sessionID, start)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(
		attribute.String("order.id", order.ID),
		attribute.String("order.total", order.Total.StringFixed(2)),
	)

	if err := s.publisher.Publish(ctx, events.NewOrderEvent(events.TypeOrderPlaced, *order, order.CreatedAt)); err != nil {
		// The order is already stored, publishing is best effort
		log.Printf("⚠️  Checkout: failed to publish order %s: %v", order.ID, err)
		s.metrics.EventFailures.Inc()
	}

	total, _ := order.Total.Float64()
	s.metrics.OrdersPlaced.Inc()
	s.metrics.OrderRevenue.Add(total)
	s.metrics.CheckoutLatency.Observe(s.now().Sub(start).Seconds())

	log.Printf("✅ Checkout: order %s placed for user %s, total=%s", order.ID, order.UserID, order.Total.StringFixed(2))
	return order, nil
}

func (s *CheckoutService) placeOrder(ctx context.Context, sessionID string, at time.Time) (*models.Order, error) {
	items, err := s.carts.GetItems(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	index := s.products.Index()
	snapshot := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		product, ok := index[item.ProductID]
		if !ok {
			continue
		}
		snapshot = append(snapshot, models.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  item.Quantity,
			Image:     product.Image,
		})
	}
	if len(snapshot) == 0 {
		log.Printf("❌ Checkout: cart is empty for session %s", sessionID)
		s.metrics.CheckoutFailures.WithLabelValues("empty_cart").Inc()
		return nil, ErrEmptyCart
	}

	user, err := s.users.GetSessionUser(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load current user: %w", err)
	}
	if user == nil {
		log.Printf("❌ Checkout: no user logged in on session %s", sessionID)
		s.metrics.CheckoutFailures.WithLabelValues("not_authenticated").Inc()
		return nil, ErrNotAuthenticated
	}

	code, err := s.carts.GetPromo(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load promo code: %w", err)
	}
	breakdown := s.engine.ComputeBreakdown(items, index, code)

	order := &models.Order{
		ID:        NewOrderID(at),
		UserID:    user.ID,
		CreatedAt: at.UTC(),
		Items:     snapshot,
		Breakdown: breakdown,
		Total:     breakdown.Total,
		Status:    models.OrderStatusProcessing,
	}
	if breakdown.PromoApplied {
		order.PromoCode = breakdown.PromoCode
	}

	if err := s.orders.Prepend(ctx, user.ID, *order); err != nil {
		s.metrics.CheckoutFailures.WithLabelValues("store").Inc()
		return nil, fmt.Errorf("failed to save order: %w", err)
	}
	if err := s.carts.Clear(ctx, sessionID); err != nil {
		// Roll the history back so a retry does not duplicate the order, and
		// put back whatever part of the cart was already cleared
		if rollbackErr := s.removeOrder(ctx, user.ID, order.ID); rollbackErr != nil {
			log.Printf("❌ Checkout: failed to roll back order %s: %v", order.ID, rollbackErr)
		}
		if restoreErr := s.restoreCart(ctx, sessionID, items, code); restoreErr != nil {
			log.Printf("❌ Checkout: failed to restore cart for session %s: %v", sessionID, restoreErr)
		}
		s.metrics.CheckoutFailures.WithLabelValues("store").Inc()
		return nil, fmt.Errorf("failed to clear cart: %w", err)
	}

	return order, nil
}

func (s *CheckoutService) restoreCart(ctx context.Context, sessionID string, items []models.LineItem, code string) error {
	var promoErr error
	if code != "" {
		promoErr = s.carts.SavePromo(ctx, sessionID, code)
	}
	return errors.Join(promoErr, s.carts.SaveItems(ctx, sessionID, items))
}

func (s *CheckoutService) removeOrder(ctx context.Context, userID, orderID string) error {
	orders, err := s.orders.ListByUser(ctx, userID)
	if err != nil {
		return err
	}
	kept := orders[:0]
	for _, o := range orders {
		if o.ID != orderID {
			kept = append(kept, o)
		}
	}
	return s.orders.SaveAll(ctx, userID, kept)
}
