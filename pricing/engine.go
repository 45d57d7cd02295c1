package pricing

import (
	"github.com/shopspring/decimal"

	"fashionfusion-storefront/models"
	"fashionfusion-storefront/utils"
)

var (
	// FreeShippingThreshold is the subtotal from which shipping is free
	FreeShippingThreshold = decimal.NewFromInt(50)
	// StandardShipping is charged below FreeShippingThreshold
	StandardShipping = decimal.RequireFromString("5.99")
	// TaxRate applies to the undiscounted subtotal
	TaxRate = decimal.RequireFromString("0.08")

	hundred = decimal.NewFromInt(100)
)

// Engine computes cart price breakdowns
type Engine struct {
	promos *PromoCatalog
}

// NewEngine creates a new pricing engine. A nil catalog uses the built-in promo codes.
func NewEngine(promos *PromoCatalog) *Engine {
	if promos == nil {
		promos = DefaultPromoCatalog()
	}
	return &Engine{promos: promos}
}

// Promos returns the catalog used to resolve promo codes
func (e *Engine) Promos() *PromoCatalog {
	return e.promos
}

// Subtotal sums price x quantity over lines whose product is known
func Subtotal(items []models.LineItem, products map[int]models.Product) (decimal.Decimal, int) {
	subtotal := decimal.Zero
	count := 0
	for _, item := range items {
		product, ok := products[item.ProductID]
		if !ok {
			continue
		}
		subtotal = subtotal.Add(product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		count += item.Quantity
	}
	return subtotal, count
}

// ComputeBreakdown prices a cart. Unknown product ids are skipped and an
// unknown promo code behaves like no code. Every amount is rounded to cents
// and the total is the sum of the rounded parts, never below zero.
func (e *Engine) ComputeBreakdown(items []models.LineItem, products map[int]models.Product, promoCode string) models.PriceBreakdown {
	subtotal, count := Subtotal(items, products)
	if count == 0 {
		return zeroBreakdown()
	}

	breakdown := models.PriceBreakdown{
		ItemCount: count,
		PromoCode: utils.NormalizeCode(promoCode),
	}

	shipping := StandardShipping
	if subtotal.GreaterThanOrEqual(FreeShippingThreshold) {
		shipping = decimal.Zero
	}
	tax := subtotal.Mul(TaxRate)
	discount := decimal.Zero

	if rule, ok := e.promos.Lookup(promoCode); ok {
		if subtotal.LessThan(rule.MinOrder) {
			minOrder := rule.MinOrder
			breakdown.MinimumNotMet = true
			breakdown.MinimumOrder = &minOrder
		} else {
			breakdown.PromoApplied = true
			switch rule.Kind {
			case models.PromoPercentage:
				discount = subtotal.Mul(rule.Value).Div(hundred)
			case models.PromoFreeShipping:
				shipping = decimal.Zero
			case models.PromoFixedAmount:
				discount = rule.Value
			}
		}
	} else {
		breakdown.PromoCode = ""
	}

	breakdown.Subtotal = utils.RoundCents(subtotal)
	breakdown.Shipping = utils.RoundCents(shipping)
	breakdown.Tax = utils.RoundCents(tax)
	breakdown.Discount = utils.RoundCents(discount)

	// Discount never exceeds what the customer would pay before tax
	ceiling := breakdown.Subtotal.Add(breakdown.Shipping)
	if breakdown.Discount.GreaterThan(ceiling) {
		breakdown.Discount = ceiling
	}

	total := breakdown.Subtotal.Add(breakdown.Shipping).Add(breakdown.Tax).Sub(breakdown.Discount)
	if total.IsNegative() {
		total = decimal.Zero
	}
	breakdown.Total = total

	return breakdown
}

func zeroBreakdown() models.PriceBreakdown {
	return models.PriceBreakdown{
		Subtotal: decimal.Zero,
		Shipping: decimal.Zero,
		Tax:      decimal.Zero,
		Discount: decimal.Zero,
		Total:    decimal.Zero,
	}
}
