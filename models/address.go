package models

// Address is a saved shipping address. At most one address per user is the default.
type Address struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Street    string `json:"street"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zipCode"`
	Country   string `json:"country"`
	IsDefault bool   `json:"isDefault"`
}

// AddressRequest represents the request body for creating or updating an address
type AddressRequest struct {
	Label     string `json:"label"`
	Street    string `json:"street"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zipCode"`
	Country   string `json:"country"`
	IsDefault bool   `json:"isDefault"`
}

// WishlistRequest represents the request body for POST /profile/wishlist
type WishlistRequest struct {
	ProductID int `json:"productId"`
}
