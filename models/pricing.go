package models

import "github.com/shopspring/decimal"

// PromoKind selects how a promo rule's value is interpreted
type PromoKind string

const (
	PromoPercentage   PromoKind = "percentage"    // Value is a percent of the subtotal
	PromoFreeShipping PromoKind = "free-shipping" // Waives shipping, Value is informational
	PromoFixedAmount  PromoKind = "fixed-amount"  // Value is a currency amount
)

// IsValid reports whether k is a supported promo kind
func (k PromoKind) IsValid() bool {
	switch k {
	case PromoPercentage, PromoFreeShipping, PromoFixedAmount:
		return true
	}
	return false
}

// PromoRule describes a promo code and the discount it grants
type PromoRule struct {
	Code     string          `json:"code"`
	Kind     PromoKind       `json:"kind"`
	Value    decimal.Decimal `json:"value"`
	MinOrder decimal.Decimal `json:"minOrder"`
}

// PriceBreakdown represents the complete pricing calculation result.
// All amounts are rounded to cents.
type PriceBreakdown struct {
	Subtotal      decimal.Decimal  `json:"subtotal"`
	Shipping      decimal.Decimal  `json:"shipping"`
	Tax           decimal.Decimal  `json:"tax"`
	Discount      decimal.Decimal  `json:"discount"`
	Total         decimal.Decimal  `json:"total"`
	ItemCount     int              `json:"itemCount"`
	PromoCode     string           `json:"promoCode,omitempty"`     // Normalized code that was evaluated
	PromoApplied  bool             `json:"promoApplied"`            // True when the code matched and its minimum was met
	MinimumNotMet bool             `json:"minimumNotMet,omitempty"` // True when the code matched but the subtotal is below its minimum
	MinimumOrder  *decimal.Decimal `json:"minimumOrder,omitempty"`
}
