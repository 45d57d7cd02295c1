package repository

import (
	"context"

	"fashionfusion-storefront/db"
	"fashionfusion-storefront/models"
)

// AddressRepository stores each user's addresses as one list
type AddressRepository struct {
	store db.Store
}

// NewAddressRepository creates a new AddressRepository
func NewAddressRepository(store db.Store) *AddressRepository {
	return &AddressRepository{store: store}
}

// Ensure AddressRepository implements AddressRepositoryInterface
var _ AddressRepositoryInterface = (*AddressRepository)(nil)

func (r *AddressRepository) List(ctx context.Context, userID string) ([]models.Address, error) {
	addresses := []models.Address{}
	if _, err := getJSON(ctx, r.store, userAddressesKey(userID), &addresses); err != nil {
		return nil, err
	}
	return addresses, nil
}

func (r *AddressRepository) SaveAll(ctx context.Context, userID string, addresses []models.Address) error {
	if addresses == nil {
		addresses = []models.Address{}
	}
	return setJSON(ctx, r.store, userAddressesKey(userID), addresses)
}

func (r *AddressRepository) DeleteAll(ctx context.Context, userID string) error {
	return deleteKey(ctx, r.store, userAddressesKey(userID))
}
