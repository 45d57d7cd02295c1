package service

import (
	"context"
	"log"
	"strings"

	"github.com/google/uuid"

	"fashionfusion-storefront/models"
	"fashionfusion-storefront/repository"
)

// AddressService manages saved addresses. At most one address is the default,
// and the first address saved becomes it.
type AddressService struct {
	users     repository.UserRepositoryInterface
	addresses repository.AddressRepositoryInterface
}

// NewAddressService creates a new AddressService
func NewAddressService(users repository.UserRepositoryInterface, addresses repository.AddressRepositoryInterface) *AddressService {
	return &AddressService{users: users, addresses: addresses}
}

func validateAddress(req models.AddressRequest) error {
	required := []struct{ field, value string }{
		{"label", req.Label},
		{"street", req.Street},
		{"city", req.City},
		{"zipCode", req.ZipCode},
		{"country", req.Country},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return newValidationError(r.field, "This field is required")
		}
	}
	return nil
}

func applyAddressRequest(a *models.Address, req models.AddressRequest) {
	a.Label = strings.TrimSpace(req.Label)
	a.Street = strings.TrimSpace(req.Street)
	a.City = strings.TrimSpace(req.City)
	a.State = strings.TrimSpace(req.State)
	a.ZipCode = strings.TrimSpace(req.ZipCode)
	a.Country = strings.TrimSpace(req.Country)
}

func markDefault(addresses []models.Address, id string) {
	for i := range addresses {
		addresses[i].IsDefault = addresses[i].ID == id
	}
}

func (s *AddressService) List(ctx context.Context, sessionID string) ([]models.Address, error) {
	user, err := requireUser(ctx, s.users, sessionID)
	if err != nil {
		return nil, err
	}
	return s.addresses.List(ctx, user.ID)
}

func (s *AddressService) Add(ctx context.Context, sessionID string, req models.AddressRequest) (*models.Address, error) {
	if err := validateAddress(req); err != nil {
		return nil, err
	}
	user, err := requireUser(ctx, s.users, sessionID)
	if err != nil {
		return nil, err
	}
	addresses, err := s.addresses.List(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	address := models.Address{ID: uuid.NewString()}
	applyAddressRequest(&address, req)
	addresses = append(addresses, address)
	if req.IsDefault || len(addresses) == 1 {
		markDefault(addresses, address.ID)
	}

	if err := s.addresses.SaveAll(ctx, user.ID, addresses); err != nil {
		return nil, err
	}
	log.Printf("✅ AddAddress: address %s saved for user %s", address.ID, user.ID)
	return findAddress(addresses, address.ID), nil
}

// Update edits an address. Clearing IsDefault on the current default is ignored;
// pick another default instead.
func (s *AddressService) Update(ctx context.Context, sessionID, addressID string, req models.AddressRequest) (*models.Address, error) {
	if err := validateAddress(req); err != nil {
		return nil, err
	}
	user, err := requireUser(ctx, s.users, sessionID)
	if err != nil {
		return nil, err
	}
	addresses, err := s.addresses.List(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	address := findAddress(addresses, addressID)
	if address == nil {
		return nil, notFound("address", addressID)
	}
	applyAddressRequest(address, req)
	if req.IsDefault {
		markDefault(addresses, addressID)
	}

	if err := s.addresses.SaveAll(ctx, user.ID, addresses); err != nil {
		return nil, err
	}
	return findAddress(addresses, addressID), nil
}

// SetDefault makes addressID the only default address
func (s *AddressService) SetDefault(ctx context.Context, sessionID, addressID string) ([]models.Address, error) {
	user, err := requireUser(ctx, s.users, sessionID)
	if err != nil {
		return nil, err
	}
	addresses, err := s.addresses.List(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if findAddress(addresses, addressID) == nil {
		return nil, notFound("address", addressID)
	}

	markDefault(addresses, addressID)
	if err := s.addresses.SaveAll(ctx, user.ID, addresses); err != nil {
		return nil, err
	}
	return addresses, nil
}

// Delete removes a non-default address
func (s *AddressService) Delete(ctx context.Context, sessionID, addressID string) error {
	user, err := requireUser(ctx, s.users, sessionID)
	if err != nil {
		return err
	}
	addresses, err := s.addresses.List(ctx, user.ID)
	if err != nil {
		return err
	}

	address := findAddress(addresses, addressID)
	if address == nil {
		return notFound("address", addressID)
	}
	if address.IsDefault {
		return newValidationError("address", "The default address cannot be deleted")
	}

	kept := make([]models.Address, 0, len(addresses)-1)
	for _, a := range addresses {
		if a.ID != addressID {
			kept = append(kept, a)
		}
	}
	return s.addresses.SaveAll(ctx, user.ID, kept)
}

func findAddress(addresses []models.Address, id string) *models.Address {
	for i := range addresses {
		if addresses[i].ID == id {
			return &addresses[i]
		}
	}
	return nil
}
