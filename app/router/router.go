package router

import (
	"net/http"

	"fashionfusion-storefront/app/controller"
)

type Controllers struct {
	Product  *controller.ProductController
	Cart     *controller.CartController
	Checkout *controller.CheckoutController
	Auth     *controller.AuthController
	Profile  *controller.ProfileController
	Lookbook *controller.LookbookController
	Contact  *controller.ContactController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func SetupRoutes(mux *http.ServeMux, controllers *Controllers, metrics http.Handler) {
	// Ping endpoint
	mux.HandleFunc("/ping", pingHandler)

	// Prometheus scrape endpoint
	mux.Handle("/metrics", metrics)

	// Catalog routes
	mux.HandleFunc("/products", controllers.Product.ListProducts)
	mux.HandleFunc("/products/", controllers.Product.GetProduct)

	// Cart routes - GET shows the cart, DELETE empties it
	mux.HandleFunc("/cart", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			controllers.Cart.GetCart(w, r)
		} else if r.Method == http.MethodDelete {
			controllers.Cart.ClearCart(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc("/cart/items", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			controllers.Cart.AddItem(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// PUT/PATCH/DELETE /cart/items/:productId
	mux.HandleFunc("/cart/items/", controllers.Cart.CartItem)

	mux.HandleFunc("/cart/promo", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			controllers.Cart.ApplyPromo(w, r)
		} else if r.Method == http.MethodDelete {
			controllers.Cart.RemovePromo(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc("/checkout", controllers.Checkout.Checkout)

	// Auth routes
	mux.HandleFunc("/auth/register", controllers.Auth.Register)
	mux.HandleFunc("/auth/login", controllers.Auth.Login)
	mux.HandleFunc("/auth/logout", controllers.Auth.Logout)
	mux.HandleFunc("/auth/me", controllers.Auth.Me)
	mux.HandleFunc("/auth/password-strength", controllers.Auth.PasswordStrength)

	// Profile routes
	mux.HandleFunc("/profile", controllers.Profile.Profile)
	mux.HandleFunc("/profile/password", controllers.Profile.ChangePassword)

	// Orders: list, detail, reorder and status changes
	mux.HandleFunc("/profile/orders", controllers.Profile.Orders)
	mux.HandleFunc("/profile/orders/", controllers.Profile.Orders)

	// Addresses: list, add, update, delete and set default
	mux.HandleFunc("/profile/addresses", controllers.Profile.Addresses)
	mux.HandleFunc("/profile/addresses/", controllers.Profile.Addresses)

	mux.HandleFunc("/profile/wishlist", controllers.Profile.Wishlist)
	mux.HandleFunc("/profile/wishlist/", controllers.Profile.Wishlist)

	// Contact form and newsletter signup
	mux.HandleFunc("/contact", controllers.Contact.Contact)
	mux.HandleFunc("/newsletter", controllers.Contact.Newsletter)

	// Lookbook export (render must be registered for the PDF renderer to reach it)
	mux.HandleFunc("/shop/lookbook", controllers.Lookbook.GenerateLookbook)
	mux.HandleFunc("/shop/lookbook/render", controllers.Lookbook.RenderLookbook)
}
