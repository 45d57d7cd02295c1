package controller

import (
	"log"
	"net/http"

	"fashionfusion-storefront/service"
)

// CheckoutController handles order placement
type CheckoutController struct {
	checkout *service.CheckoutService
}

// NewCheckoutController creates a new CheckoutController
func NewCheckoutController(checkout *service.CheckoutService) *CheckoutController {
	return &CheckoutController{checkout: checkout}
}

// Checkout handles POST /checkout
// Example response:
//
//	{
//	  "id": "ORD-1767225600000-3F9A1C2B",
//	  "userId": "5b0c...",
//	  "createdAt": "2026-01-01T00:00:00Z",
//	  "items": [{"productId": 1, "name": "Classic White T-Shirt", "price": "29.99", "quantity": 2}],
//	  "total": "58.78",
//	  "promoCode": "SAVE10",
//	  "status": "processing"
//	}
func (c *CheckoutController) Checkout(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Checkout: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, "Checkout")
		return
	}

	order, err := c.checkout.Checkout(r.Context(), sessionID(w, r))
	if err != nil {
		writeError(w, "Checkout", err)
		return
	}

	log.Printf("✅ Checkout: Order %s created", order.ID)
	writeJSON(w, http.StatusCreated, order)
}
