package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"fashionfusion-storefront/models"
	"fashionfusion-storefront/repository"
	"fashionfusion-storefront/utils"
)

// ProfileService manages the logged-in user's personal info, password and account
type ProfileService struct {
	auth      *AuthService
	users     repository.UserRepositoryInterface
	orders    repository.OrderRepositoryInterface
	addresses repository.AddressRepositoryInterface
	wishlist  repository.WishlistRepositoryInterface
}

// NewProfileService creates a new ProfileService
func NewProfileService(
	auth *AuthService,
	users repository.UserRepositoryInterface,
	orders repository.OrderRepositoryInterface,
	addresses repository.AddressRepositoryInterface,
	wishlist repository.WishlistRepositoryInterface,
) *ProfileService {
	return &ProfileService{
		auth:      auth,
		users:     users,
		orders:    orders,
		addresses: addresses,
		wishlist:  wishlist,
	}
}

// loadAccount returns the session user and the matching registered user
func (s *ProfileService) loadAccount(ctx context.Context, sessionID string) (*models.SessionUser, *models.User, error) {
	current, err := requireUser(ctx, s.users, sessionID)
	if err != nil {
		return nil, nil, err
	}
	user, err := s.users.FindByID(ctx, current.ID)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, notFound("user", current.ID)
	}
	return current, user, nil
}

// Get returns the current user's profile
func (s *ProfileService) Get(ctx context.Context, sessionID string) (*models.SessionUser, error) {
	return requireUser(ctx, s.users, sessionID)
}

// Update changes personal info and refreshes the session user
func (s *ProfileService) Update(ctx context.Context, sessionID string, req models.UpdateProfileRequest) (*models.SessionUser, error) {
	if err := ValidateName("firstName", req.FirstName); err != nil {
		return nil, err
	}
	if err := ValidateName("lastName", req.LastName); err != nil {
		return nil, err
	}
	if err := ValidateEmail("email", req.Email); err != nil {
		return nil, err
	}

	_, user, err := s.loadAccount(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	email := utils.NormalizeEmail(req.Email)
	if email != utils.NormalizeEmail(user.Email) {
		other, err := s.users.FindByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		if other != nil {
			return nil, ErrEmailTaken
		}
	}

	user.Name = strings.TrimSpace(req.FirstName) + " " + strings.TrimSpace(req.LastName)
	user.Email = email
	user.Phone = strings.TrimSpace(req.Phone)
	user.Birthdate = strings.TrimSpace(req.Birthdate)
	user.Gender = strings.TrimSpace(req.Gender)
	if err := s.users.Update(ctx, *user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	current := toSessionUser(*user)
	if err := s.users.SetSessionUser(ctx, sessionID, current); err != nil {
		return nil, fmt.Errorf("failed to refresh session: %w", err)
	}
	log.Printf("✅ UpdateProfile: user %s updated", user.ID)
	return &current, nil
}

// ChangePassword replaces the password after checking the current one
func (s *ProfileService) ChangePassword(ctx context.Context, sessionID string, req models.ChangePasswordRequest) error {
	if req.CurrentPassword == "" || req.NewPassword == "" || req.ConfirmPassword == "" {
		return newValidationError("", "Please fill in all password fields")
	}
	if req.NewPassword != req.ConfirmPassword {
		return newValidationError("confirmPassword", "New passwords do not match")
	}
	if len([]rune(req.NewPassword)) < minPasswordLength {
		return newValidationError("newPassword", "Password must be at least 6 characters long")
	}

	_, user, err := s.loadAccount(ctx, sessionID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return newValidationError("currentPassword", "Current password is incorrect")
	}

	hash, err := s.auth.hashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	if err := s.users.Update(ctx, *user); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	log.Printf("✅ ChangePassword: user %s changed password", user.ID)
	return nil
}

// DeleteAccount removes the user and everything stored for them, then logs the session out
func (s *ProfileService) DeleteAccount(ctx context.Context, sessionID string) error {
	current, err := requireUser(ctx, s.users, sessionID)
	if err != nil {
		return err
	}

	steps := []struct {
		name string
		run  func() error
	}{
		{"user", func() error { return s.users.Delete(ctx, current.ID) }},
		{"addresses", func() error { return s.addresses.DeleteAll(ctx, current.ID) }},
		{"orders", func() error { return s.orders.DeleteAll(ctx, current.ID) }},
		{"wishlist", func() error { return s.wishlist.DeleteAll(ctx, current.ID) }},
		{"session", func() error { return s.users.ClearSessionUser(ctx, sessionID) }},
	}
	for _, step := range steps {
		if err := step.run(); err != nil {
			log.Printf("❌ DeleteAccount: failed to delete %s for user %s: %v", step.name, current.ID, err)
			return fmt.Errorf("failed to delete %s: %w", step.name, err)
		}
	}

	log.Printf("✅ DeleteAccount: user %s deleted", current.ID)
	return nil
}
