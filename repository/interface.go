package repository

import (
	"context"

	"fashionfusion-storefront/models"
)

// CartRepositoryInterface defines the contract for per-session cart persistence
type CartRepositoryInterface interface {
	GetItems(ctx context.Context, sessionID string) ([]models.LineItem, error)
	SaveItems(ctx context.Context, sessionID string, items []models.LineItem) error
	GetPromo(ctx context.Context, sessionID string) (string, error)
	SavePromo(ctx context.Context, sessionID string, code string) error
	ClearPromo(ctx context.Context, sessionID string) error
	Clear(ctx context.Context, sessionID string) error
}

// OrderRepositoryInterface defines the contract for a user's order history, most recent first
type OrderRepositoryInterface interface {
	ListByUser(ctx context.Context, userID string) ([]models.Order, error)
	Prepend(ctx context.Context, userID string, order models.Order) error
	SaveAll(ctx context.Context, userID string, orders []models.Order) error
	DeleteAll(ctx context.Context, userID string) error
}

// UserRepositoryInterface defines the contract for registered users and session users
type UserRepositoryInterface interface {
	List(ctx context.Context) ([]models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	Insert(ctx context.Context, user models.User) error
	Update(ctx context.Context, user models.User) error
	Delete(ctx context.Context, id string) error
	GetSessionUser(ctx context.Context, sessionID string) (*models.SessionUser, error)
	SetSessionUser(ctx context.Context, sessionID string, user models.SessionUser) error
	ClearSessionUser(ctx context.Context, sessionID string) error
}

// AddressRepositoryInterface defines the contract for a user's saved addresses
type AddressRepositoryInterface interface {
	List(ctx context.Context, userID string) ([]models.Address, error)
	SaveAll(ctx context.Context, userID string, addresses []models.Address) error
	DeleteAll(ctx context.Context, userID string) error
}

// WishlistRepositoryInterface defines the contract for a user's wishlist
type WishlistRepositoryInterface interface {
	List(ctx context.Context, userID string) ([]models.Product, error)
	SaveAll(ctx context.Context, userID string, products []models.Product) error
	DeleteAll(ctx context.Context, userID string) error
}

// ProductRepositoryInterface defines the contract for the read-only product catalog
type ProductRepositoryInterface interface {
	All() []models.Product
	Index() map[int]models.Product
	GetByID(id int) (models.Product, bool)
}

// ContactRepositoryInterface defines the contract for contact form messages and newsletter signups
type ContactRepositoryInterface interface {
	ListMessages(ctx context.Context) ([]models.ContactMessage, error)
	SaveMessages(ctx context.Context, messages []models.ContactMessage) error
	ListSubscribers(ctx context.Context) ([]models.NewsletterSubscriber, error)
	SaveSubscribers(ctx context.Context, subscribers []models.NewsletterSubscriber) error
}
