package service

import (
	"context"

	"fashionfusion-storefront/models"
	"fashionfusion-storefront/repository"
)

// WishlistService manages the logged-in user's wishlist
type WishlistService struct {
	users    repository.UserRepositoryInterface
	wishlist repository.WishlistRepositoryInterface
	products repository.ProductRepositoryInterface
}

// NewWishlistService creates a new WishlistService
func NewWishlistService(
	users repository.UserRepositoryInterface,
	wishlist repository.WishlistRepositoryInterface,
	products repository.ProductRepositoryInterface,
) *WishlistService {
	return &WishlistService{users: users, wishlist: wishlist, products: products}
}

func (s *WishlistService) List(ctx context.Context, sessionID string) ([]models.Product, error) {
	user, err := requireUser(ctx, s.users, sessionID)
	if err != nil {
		return nil, err
	}
	return s.wishlist.List(ctx, user.ID)
}

// Add appends a product to the wishlist. Adding a product twice keeps one entry.
func (s *WishlistService) Add(ctx context.Context, sessionID string, productID int) ([]models.Product, error) {
	user, err := requireUser(ctx, s.users, sessionID)
	if err != nil {
		return nil, err
	}
	product, ok := s.products.GetByID(productID)
	if !ok {
		return nil, notFound("product", productID)
	}

	products, err := s.wishlist.List(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	for _, p := range products {
		if p.ID == productID {
			return products, nil
		}
	}
	products = append(products, product)
	if err := s.wishlist.SaveAll(ctx, user.ID, products); err != nil {
		return nil, err
	}
	return products, nil
}

// Remove drops a product from the wishlist. Removing an absent product is a no-op.
func (s *WishlistService) Remove(ctx context.Context, sessionID string, productID int) ([]models.Product, error) {
	user, err := requireUser(ctx, s.users, sessionID)
	if err != nil {
		return nil, err
	}
	products, err := s.wishlist.List(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	kept := make([]models.Product, 0, len(products))
	for _, p := range products {
		if p.ID != productID {
			kept = append(kept, p)
		}
	}
	if err := s.wishlist.SaveAll(ctx, user.ID, kept); err != nil {
		return nil, err
	}
	return kept, nil
}
