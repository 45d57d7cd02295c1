package models

import "github.com/shopspring/decimal"

// LineItem is a product reference and quantity held in a cart.
// Quantity is always >= 1; a line that would drop below 1 is removed.
type LineItem struct {
	ProductID int `json:"productId"`
	Quantity  int `json:"quantity"`
}

// CartLine is a line item joined with its product for display
type CartLine struct {
	Product   Product         `json:"product"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

// CartView represents the cart page response
// Example response:
//
//	{
//	  "lines": [{"product": {...}, "quantity": 2, "lineTotal": "59.98"}],
//	  "itemCount": 2,
//	  "breakdown": {"subtotal": "59.98", "shipping": "0.00", "tax": "4.80", "discount": "6.00", "total": "58.78", ...},
//	  "suggestions": [...]
//	}
type CartView struct {
	Lines       []CartLine     `json:"lines"`
	ItemCount   int            `json:"itemCount"`
	Breakdown   PriceBreakdown `json:"breakdown"`
	Suggestions []Product      `json:"suggestions"`
}

// AddToCartRequest represents the request body for POST /cart/items
type AddToCartRequest struct {
	ProductID int  `json:"productId"`
	Quantity  *int `json:"quantity,omitempty"` // Optional, defaults to 1
}

// UpdateQuantityRequest represents the request body for PUT /cart/items/{id}
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// ApplyPromoRequest represents the request body for POST /cart/promo
type ApplyPromoRequest struct {
	Code string `json:"code"`
}

// ApplyPromoResponse is returned after a promo code is accepted
type ApplyPromoResponse struct {
	Code      string         `json:"code"`
	Message   string         `json:"message"`
	Breakdown PriceBreakdown `json:"breakdown"`
}
