package controller

import (
	"log"
	"net/http"
	"strconv"

	"fashionfusion-storefront/models"
	"fashionfusion-storefront/service"
)

// ProfileController handles the account pages: personal info, password,
// order history, saved addresses and wishlist
type ProfileController struct {
	profile   *service.ProfileService
	orders    *service.OrderService
	addresses *service.AddressService
	wishlist  *service.WishlistService
}

// NewProfileController creates a new ProfileController
func NewProfileController(
	profile *service.ProfileService,
	orders *service.OrderService,
	addresses *service.AddressService,
	wishlist *service.WishlistService,
) *ProfileController {
	return &ProfileController{
		profile:   profile,
		orders:    orders,
		addresses: addresses,
		wishlist:  wishlist,
	}
}

// Profile handles GET|PUT|DELETE /profile
func (c *ProfileController) Profile(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Profile: Received %s request to %s", r.Method, r.URL.Path)
	sid := sessionID(w, r)

	switch r.Method {
	case http.MethodGet:
		user, err := c.profile.Get(r.Context(), sid)
		if err != nil {
			writeError(w, "GetProfile", err)
			return
		}
		writeJSON(w, http.StatusOK, user)

	case http.MethodPut:
		var req models.UpdateProfileRequest
		if !decodeBody(w, r, "UpdateProfile", &req) {
			return
		}
		user, err := c.profile.Update(r.Context(), sid, req)
		if err != nil {
			writeError(w, "UpdateProfile", err)
			return
		}
		writeJSON(w, http.StatusOK, user)

	case http.MethodDelete:
		if err := c.profile.DeleteAccount(r.Context(), sid); err != nil {
			writeError(w, "DeleteAccount", err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		methodNotAllowed(w, r, "Profile")
	}
}

// ChangePassword handles PUT /profile/password
// Example request:
//
//	{"currentPassword": "Secret123", "newPassword": "Newpass1", "confirmPassword": "Newpass1"}
func (c *ProfileController) ChangePassword(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 ChangePassword: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPut {
		methodNotAllowed(w, r, "ChangePassword")
		return
	}

	var req models.ChangePasswordRequest
	if !decodeBody(w, r, "ChangePassword", &req) {
		return
	}
	if err := c.profile.ChangePassword(r.Context(), sessionID(w, r), req); err != nil {
		writeError(w, "ChangePassword", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Password updated successfully!"})
}

// Orders handles GET /profile/orders, GET /profile/orders/{id},
// POST /profile/orders/{id}/reorder and PATCH /profile/orders/{id}/status
func (c *ProfileController) Orders(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Orders: Received %s request to %s", r.Method, r.URL.Path)
	sid := sessionID(w, r)
	parts := pathSegments(r.URL.Path, "/profile/orders")

	switch {
	case len(parts) == 0 && r.Method == http.MethodGet:
		orders, err := c.orders.List(r.Context(), sid)
		if err != nil {
			writeError(w, "ListOrders", err)
			return
		}
		writeJSON(w, http.StatusOK, orders)

	case len(parts) == 1 && r.Method == http.MethodGet:
		order, err := c.orders.Get(r.Context(), sid, parts[0])
		if err != nil {
			writeError(w, "GetOrder", err)
			return
		}
		writeJSON(w, http.StatusOK, order)

	case len(parts) == 2 && parts[1] == "reorder" && r.Method == http.MethodPost:
		resp, err := c.orders.Reorder(r.Context(), sid, parts[0])
		if err != nil {
			writeError(w, "Reorder", err)
			return
		}
		writeJSON(w, http.StatusOK, resp)

	case len(parts) == 2 && parts[1] == "status" && r.Method == http.MethodPatch:
		var req models.UpdateOrderStatusRequest
		if !decodeBody(w, r, "UpdateOrderStatus", &req) {
			return
		}
		order, err := c.orders.UpdateStatus(r.Context(), sid, parts[0], req.Status)
		if err != nil {
			writeError(w, "UpdateOrderStatus", err)
			return
		}
		writeJSON(w, http.StatusOK, order)

	case len(parts) <= 2:
		methodNotAllowed(w, r, "Orders")

	default:
		http.Error(w, "Not found", http.StatusNotFound)
	}
}

// Addresses handles GET|POST /profile/addresses, PUT|DELETE /profile/addresses/{id}
// and POST /profile/addresses/{id}/default
// Example request:
//
//	{
//	  "label": "Home",
//	  "street": "123 Main St",
//	  "city": "Springfield",
//	  "state": "IL",
//	  "zipCode": "62701",
//	  "country": "US",
//	  "isDefault": true
//	}
func (c *ProfileController) Addresses(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Addresses: Received %s request to %s", r.Method, r.URL.Path)
	sid := sessionID(w, r)
	parts := pathSegments(r.URL.Path, "/profile/addresses")

	switch {
	case len(parts) == 0 && r.Method == http.MethodGet:
		addresses, err := c.addresses.List(r.Context(), sid)
		if err != nil {
			writeError(w, "ListAddresses", err)
			return
		}
		writeJSON(w, http.StatusOK, addresses)

	case len(parts) == 0 && r.Method == http.MethodPost:
		var req models.AddressRequest
		if !decodeBody(w, r, "AddAddress", &req) {
			return
		}
		address, err := c.addresses.Add(r.Context(), sid, req)
		if err != nil {
			writeError(w, "AddAddress", err)
			return
		}
		writeJSON(w, http.StatusCreated, address)

	case len(parts) == 1 && r.Method == http.MethodPut:
		var req models.AddressRequest
		if !decodeBody(w, r, "UpdateAddress", &req) {
			return
		}
		address, err := c.addresses.Update(r.Context(), sid, parts[0], req)
		if err != nil {
			writeError(w, "UpdateAddress", err)
			return
		}
		writeJSON(w, http.StatusOK, address)

	case len(parts) == 1 && r.Method == http.MethodDelete:
		if err := c.addresses.Delete(r.Context(), sid, parts[0]); err != nil {
			writeError(w, "DeleteAddress", err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	case len(parts) == 2 && parts[1] == "default" && r.Method == http.MethodPost:
		addresses, err := c.addresses.SetDefault(r.Context(), sid, parts[0])
		if err != nil {
			writeError(w, "SetDefaultAddress", err)
			return
		}
		writeJSON(w, http.StatusOK, addresses)

	case len(parts) <= 2:
		methodNotAllowed(w, r, "Addresses")

	default:
		http.Error(w, "Not found", http.StatusNotFound)
	}
}

// Wishlist handles GET|POST /profile/wishlist and DELETE /profile/wishlist/{productId}
// Example request:
//
//	{"productId": 2}
func (c *ProfileController) Wishlist(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Wishlist: Received %s request to %s", r.Method, r.URL.Path)
	sid := sessionID(w, r)
	parts := pathSegments(r.URL.Path, "/profile/wishlist")

	switch {
	case len(parts) == 0 && r.Method == http.MethodGet:
		products, err := c.wishlist.List(r.Context(), sid)
		if err != nil {
			writeError(w, "ListWishlist", err)
			return
		}
		writeJSON(w, http.StatusOK, products)

	case len(parts) == 0 && r.Method == http.MethodPost:
		var req models.WishlistRequest
		if !decodeBody(w, r, "AddToWishlist", &req) {
			return
		}
		products, err := c.wishlist.Add(r.Context(), sid, req.ProductID)
		if err != nil {
			writeError(w, "AddToWishlist", err)
			return
		}
		writeJSON(w, http.StatusOK, products)

	case len(parts) == 1 && r.Method == http.MethodDelete:
		productID, err := strconv.Atoi(parts[0])
		if err != nil {
			badRequest(w, "RemoveFromWishlist", "invalid product id parameter")
			return
		}
		products, err := c.wishlist.Remove(r.Context(), sid, productID)
		if err != nil {
			writeError(w, "RemoveFromWishlist", err)
			return
		}
		writeJSON(w, http.StatusOK, products)

	case len(parts) <= 1:
		methodNotAllowed(w, r, "Wishlist")

	default:
		http.Error(w, "Not found", http.StatusNotFound)
	}
}
