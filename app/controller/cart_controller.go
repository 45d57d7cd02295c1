package controller

import (
	"log"
	"net/http"
	"strconv"

	"fashionfusion-storefront/models"
	"fashionfusion-storefront/service"
)

// CartController handles HTTP requests for the session's cart
type CartController struct {
	cart *service.CartService
}

// NewCartController creates a new CartController
func NewCartController(cart *service.CartService) *CartController {
	return &CartController{cart: cart}
}

// respondWithView writes the repriced cart after a mutation
func (c *CartController) respondWithView(w http.ResponseWriter, r *http.Request, op, sid string) {
	view, err := c.cart.View(r.Context(), sid)
	if err != nil {
		writeError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// GetCart handles GET /cart
// Example response:
//
//	{
//	  "lines": [{"product": {...}, "quantity": 2, "lineTotal": "59.98"}],
//	  "itemCount": 2,
//	  "breakdown": {"subtotal": "59.98", "shipping": "0.00", "tax": "4.80", "discount": "6.00", "total": "58.78", ...},
//	  "suggestions": [...]
//	}
func (c *CartController) GetCart(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 GetCart: Received %s request to %s", r.Method, r.URL.Path)
	c.respondWithView(w, r, "GetCart", sessionID(w, r))
}

// ClearCart handles DELETE /cart
func (c *CartController) ClearCart(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 ClearCart: Received %s request to %s", r.Method, r.URL.Path)

	sid := sessionID(w, r)
	if err := c.cart.Clear(r.Context(), sid); err != nil {
		writeError(w, "ClearCart", err)
		return
	}
	c.respondWithView(w, r, "ClearCart", sid)
}

// AddItem handles POST /cart/items
// Example request:
//
//	{"productId": 3, "quantity": 1}
func (c *CartController) AddItem(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 AddItem: Received %s request to %s", r.Method, r.URL.Path)

	var req models.AddToCartRequest
	if !decodeBody(w, r, "AddItem", &req) {
		return
	}

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	sid := sessionID(w, r)
	if _, err := c.cart.Add(r.Context(), sid, req.ProductID, quantity); err != nil {
		writeError(w, "AddItem", err)
		return
	}
	c.respondWithView(w, r, "AddItem", sid)
}

// UpdateItem handles PUT|PATCH /cart/items/{productId}
// A quantity below 1 removes the line.
// Example request:
//
//	{"quantity": 3}
func (c *CartController) UpdateItem(w http.ResponseWriter, r *http.Request, productID int) {
	log.Printf("📥 UpdateItem: Received %s request to %s", r.Method, r.URL.Path)

	var req models.UpdateQuantityRequest
	if !decodeBody(w, r, "UpdateItem", &req) {
		return
	}

	sid := sessionID(w, r)
	if _, err := c.cart.SetQuantity(r.Context(), sid, productID, req.Quantity); err != nil {
		writeError(w, "UpdateItem", err)
		return
	}
	c.respondWithView(w, r, "UpdateItem", sid)
}

// RemoveItem handles DELETE /cart/items/{productId}
func (c *CartController) RemoveItem(w http.ResponseWriter, r *http.Request, productID int) {
	log.Printf("📥 RemoveItem: Received %s request to %s", r.Method, r.URL.Path)

	sid := sessionID(w, r)
	if _, err := c.cart.Remove(r.Context(), sid, productID); err != nil {
		writeError(w, "RemoveItem", err)
		return
	}
	c.respondWithView(w, r, "RemoveItem", sid)
}

// CartItem dispatches /cart/items/{productId} by method
func (c *CartController) CartItem(w http.ResponseWriter, r *http.Request) {
	parts := pathSegments(r.URL.Path, "/cart/items")
	if len(parts) != 1 {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	productID, err := strconv.Atoi(parts[0])
	if err != nil {
		badRequest(w, "CartItem", "invalid product id parameter")
		return
	}

	switch r.Method {
	case http.MethodPut, http.MethodPatch:
		c.UpdateItem(w, r, productID)
	case http.MethodDelete:
		c.RemoveItem(w, r, productID)
	default:
		methodNotAllowed(w, r, "CartItem")
	}
}

// ApplyPromo handles POST /cart/promo
// Example request:
//
//	{"code": "SAVE10"}
//
// Example response:
//
//	{"code": "SAVE10", "message": "Promo code applied successfully!", "breakdown": {...}}
func (c *CartController) ApplyPromo(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 ApplyPromo: Received %s request to %s", r.Method, r.URL.Path)

	var req models.ApplyPromoRequest
	if !decodeBody(w, r, "ApplyPromo", &req) {
		return
	}

	resp, err := c.cart.ApplyPromo(r.Context(), sessionID(w, r), req.Code)
	if err != nil {
		writeError(w, "ApplyPromo", err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// RemovePromo handles DELETE /cart/promo
func (c *CartController) RemovePromo(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 RemovePromo: Received %s request to %s", r.Method, r.URL.Path)

	breakdown, err := c.cart.RemovePromo(r.Context(), sessionID(w, r))
	if err != nil {
		writeError(w, "RemovePromo", err)
		return
	}
	writeJSON(w, http.StatusOK, breakdown)
}
