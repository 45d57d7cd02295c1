package service

import (
	"context"
	"fmt"
	"log"
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"fashionfusion-storefront/metrics"
	"fashionfusion-storefront/models"
	"fashionfusion-storefront/pricing"
	"fashionfusion-storefront/repository"
	"fashionfusion-storefront/utils"
)

const maxSuggestions = 4

// CartService handles cart mutations, promo codes and cart pricing.
// Every mutation is written through to the store before it returns.
type CartService struct {
	carts    repository.CartRepositoryInterface
	products repository.ProductRepositoryInterface
	engine   *pricing.Engine
	locks    *SessionLocks
	metrics  *metrics.Registry
}

// NewCartService creates a new CartService
func NewCartService(
	carts repository.CartRepositoryInterface,
	products repository.ProductRepositoryInterface,
	engine *pricing.Engine,
	locks *SessionLocks,
	registry *metrics.Registry,
) *CartService {
	return &CartService{
		carts:    carts,
		products: products,
		engine:   engine,
		locks:    locks,
		metrics:  registry,
	}
}

// mutate loads the session's cart under its lock, applies fn and saves the result.
// When fn fails nothing is written.
func (s *CartService) mutate(ctx context.Context, sessionID, op string, fn func([]models.LineItem) ([]models.LineItem, error)) ([]models.LineItem, error) {
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	items, err := s.carts.GetItems(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	items, err = fn(items)
	if err != nil {
		return nil, err
	}
	if err := s.carts.SaveItems(ctx, sessionID, items); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}

	s.metrics.CartMutations.WithLabelValues(op).Inc()
	return items, nil
}

// Add puts quantity units of productID in the cart, merging with an existing line.
// It returns the line as stored after the merge.
func (s *CartService) Add(ctx context.Context, sessionID string, productID, quantity int) (models.LineItem, error) {
	if quantity < 1 {
		return models.LineItem{}, newValidationError("quantity", "Quantity must be at least 1")
	}
	if _, ok := s.products.GetByID(productID); !ok {
		return models.LineItem{}, notFound("product", productID)
	}

	log.Printf("🛒 AddToCart: session=%s product=%d qty=%d", sessionID, productID, quantity)
	var line models.LineItem
	_, err := s.mutate(ctx, sessionID, "add", func(items []models.LineItem) ([]models.LineItem, error) {
		for i := range items {
			if items[i].ProductID == productID {
				if items[i].Quantity > math.MaxInt-quantity {
					return nil, newValidationError("quantity", "Quantity is too large")
				}
				items[i].Quantity += quantity
				line = items[i]
				return items, nil
			}
		}
		line = models.LineItem{ProductID: productID, Quantity: quantity}
		return append(items, line), nil
	})
	if err != nil {
		return models.LineItem{}, err
	}
	return line, nil
}

// SetQuantity replaces the quantity of a line. A quantity below 1 removes the line.
func (s *CartService) SetQuantity(ctx context.Context, sessionID string, productID, quantity int) ([]models.LineItem, error) {
	if quantity < 1 {
		return s.Remove(ctx, sessionID, productID)
	}

	return s.mutate(ctx, sessionID, "set_quantity", func(items []models.LineItem) ([]models.LineItem, error) {
		for i := range items {
			if items[i].ProductID == productID {
				items[i].Quantity = quantity
				return items, nil
			}
		}
		return nil, notFound("cart item", productID)
	})
}

// Remove deletes the line for productID. Removing an absent line is a no-op.
func (s *CartService) Remove(ctx context.Context, sessionID string, productID int) ([]models.LineItem, error) {
	return s.mutate(ctx, sessionID, "remove", func(items []models.LineItem) ([]models.LineItem, error) {
		kept := items[:0]
		for _, item := range items {
			if item.ProductID != productID {
				kept = append(kept, item)
			}
		}
		return kept, nil
	})
}

// Clear empties the cart and drops any applied promo code
func (s *CartService) Clear(ctx context.Context, sessionID string) error {
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	if err := s.carts.Clear(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	s.metrics.CartMutations.WithLabelValues("clear").Inc()
	return nil
}

// Items returns the session's line items
func (s *CartService) Items(ctx context.Context, sessionID string) ([]models.LineItem, error) {
	return s.carts.GetItems(ctx, sessionID)
}

// TotalItemCount returns the sum of quantities across all lines
func (s *CartService) TotalItemCount(ctx context.Context, sessionID string) (int, error) {
	items, err := s.carts.GetItems(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, item := range items {
		count += item.Quantity
	}
	return count, nil
}

// Breakdown prices the session's cart with its applied promo code
func (s *CartService) Breakdown(ctx context.Context, sessionID string) (models.PriceBreakdown, error) {
	items, err := s.carts.GetItems(ctx, sessionID)
	if err != nil {
		return models.PriceBreakdown{}, err
	}
	code, err := s.carts.GetPromo(ctx, sessionID)
	if err != nil {
		return models.PriceBreakdown{}, err
	}
	return s.engine.ComputeBreakdown(items, s.products.Index(), code), nil
}

// View returns the cart joined with product data, its price breakdown and suggestions
func (s *CartService) View(ctx context.Context, sessionID string) (*models.CartView, error) {
	items, err := s.carts.GetItems(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	code, err := s.carts.GetPromo(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	index := s.products.Index()
	view := &models.CartView{
		Lines:     []models.CartLine{},
		Breakdown: s.engine.ComputeBreakdown(items, index, code),
	}
	inCart := make(map[int]bool, len(items))
	for _, item := range items {
		inCart[item.ProductID] = true
		product, ok := index[item.ProductID]
		if !ok {
			log.Printf("⚠️  CartView: product %d in session %s no longer exists", item.ProductID, sessionID)
			continue
		}
		view.Lines = append(view.Lines, models.CartLine{
			Product:   product,
			Quantity:  item.Quantity,
			LineTotal: utils.RoundCents(product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))),
		})
		view.ItemCount += item.Quantity
	}
	view.Suggestions = s.suggestions(inCart)
	return view, nil
}

// suggestions returns the best rated in-stock products not already in the cart
func (s *CartService) suggestions(inCart map[int]bool) []models.Product {
	candidates := make([]models.Product, 0)
	for _, p := range s.products.All() {
		if p.InStock && !inCart[p.ID] {
			candidates = append(candidates, p)
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Rating > candidates[j].Rating
	})
	if len(candidates) > maxSuggestions {
		candidates = candidates[:maxSuggestions]
	}
	return candidates
}

// ApplyPromo validates code against the current cart and stores it for the session
func (s *CartService) ApplyPromo(ctx context.Context, sessionID, code string) (*models.ApplyPromoResponse, error) {
	code = utils.NormalizeCode(code)
	if code == "" {
		s.metrics.PromoAttempts.WithLabelValues("empty").Inc()
		return nil, newValidationError("code", "Please enter a promo code")
	}

	rule, ok := s.engine.Promos().Lookup(code)
	if !ok {
		log.Printf("❌ ApplyPromo: Invalid promo code %q for session %s", code, sessionID)
		s.metrics.PromoAttempts.WithLabelValues("invalid").Inc()
		return nil, newValidationError("code", "Invalid promo code")
	}

	unlock := s.locks.Lock(sessionID)
	defer unlock()

	items, err := s.carts.GetItems(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	subtotal, _ := pricing.Subtotal(items, s.products.Index())
	if subtotal.LessThan(rule.MinOrder) {
		s.metrics.PromoAttempts.WithLabelValues("minimum_not_met").Inc()
		return nil, newValidationError("code", fmt.Sprintf("Minimum order of %s required", utils.FormatUSD(rule.MinOrder)))
	}

	if err := s.carts.SavePromo(ctx, sessionID, code); err != nil {
		return nil, fmt.Errorf("failed to save promo code: %w", err)
	}
	s.metrics.PromoAttempts.WithLabelValues("applied").Inc()
	log.Printf("✅ ApplyPromo: %s applied for session %s", code, sessionID)

	return &models.ApplyPromoResponse{
		Code:      code,
		Message:   "Promo code applied successfully!",
		Breakdown: s.engine.ComputeBreakdown(items, s.products.Index(), code),
	}, nil
}

// RemovePromo drops the applied promo code and returns the repriced cart
func (s *CartService) RemovePromo(ctx context.Context, sessionID string) (models.PriceBreakdown, error) {
	unlock := s.locks.Lock(sessionID)
	if err := s.carts.ClearPromo(ctx, sessionID); err != nil {
		unlock()
		return models.PriceBreakdown{}, fmt.Errorf("failed to remove promo code: %w", err)
	}
	unlock()
	return s.Breakdown(ctx, sessionID)
}
