package repository

import (
	"context"
	"fmt"
	"log"

	"fashionfusion-storefront/db"
	"fashionfusion-storefront/models"
	"fashionfusion-storefront/utils"
)

// UserRepository stores registered users as one ordered list and the current user per session
type UserRepository struct {
	store db.Store
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(store db.Store) *UserRepository {
	return &UserRepository{store: store}
}

// Ensure UserRepository implements UserRepositoryInterface
var _ UserRepositoryInterface = (*UserRepository)(nil)

func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	if _, err := getJSON(ctx, r.store, usersKey, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// FindByEmail returns nil when no user has email. Comparison ignores case.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	users, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	email = utils.NormalizeEmail(email)
	for i := range users {
		if utils.NormalizeEmail(users[i].Email) == email {
			return &users[i], nil
		}
	}
	return nil, nil
}

// FindByID returns nil when the id is unknown
func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	users, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			return &users[i], nil
		}
	}
	return nil, nil
}

// Insert appends user. Email uniqueness is checked by the caller.
func (r *UserRepository) Insert(ctx context.Context, user models.User) error {
	users, err := r.List(ctx)
	if err != nil {
		return err
	}
	users = append(users, user)
	if err := setJSON(ctx, r.store, usersKey, users); err != nil {
		return err
	}
	log.Printf("✓ User %s registered (%d users)", user.ID, len(users))
	return nil
}

func (r *UserRepository) Update(ctx context.Context, user models.User) error {
	users, err := r.List(ctx)
	if err != nil {
		return err
	}
	for i := range users {
		if users[i].ID == user.ID {
			users[i] = user
			return setJSON(ctx, r.store, usersKey, users)
		}
	}
	return fmt.Errorf("user %s not found", user.ID)
}

// Delete removes the user with id. Deleting an unknown id is a no-op.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	users, err := r.List(ctx)
	if err != nil {
		return err
	}
	kept := users[:0]
	for _, u := range users {
		if u.ID != id {
			kept = append(kept, u)
		}
	}
	return setJSON(ctx, r.store, usersKey, kept)
}

// GetSessionUser returns nil when nobody is logged in on the session
func (r *UserRepository) GetSessionUser(ctx context.Context, sessionID string) (*models.SessionUser, error) {
	var user models.SessionUser
	found, err := getJSON(ctx, r.store, sessionUserKey(sessionID), &user)
	if err != nil || !found {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) SetSessionUser(ctx context.Context, sessionID string, user models.SessionUser) error {
	return setJSON(ctx, r.store, sessionUserKey(sessionID), user)
}

func (r *UserRepository) ClearSessionUser(ctx context.Context, sessionID string) error {
	return deleteKey(ctx, r.store, sessionUserKey(sessionID))
}
