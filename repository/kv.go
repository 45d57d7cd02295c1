package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"fashionfusion-storefront/db"
)

const (
	usersKey              = "users"
	catalogProductsKey    = "catalog:products"
	contactMessagesKey    = "contact:messages"
	newsletterSubscribers = "newsletter:subscribers"
)

func sessionCartKey(sessionID string) string  { return "session:" + sessionID + ":cart" }
func sessionPromoKey(sessionID string) string { return "session:" + sessionID + ":promo" }
func sessionUserKey(sessionID string) string  { return "session:" + sessionID + ":user" }
func userOrdersKey(userID string) string      { return "user:" + userID + ":orders" }
func userAddressesKey(userID string) string   { return "user:" + userID + ":addresses" }
func userWishlistKey(userID string) string    { return "user:" + userID + ":wishlist" }

// getJSON decodes the value at key into dest. It reports false when the key is absent.
func getJSON(ctx context.Context, store db.Store, key string, dest any) (bool, error) {
	data, err := store.Get(ctx, key)
	if errors.Is(err, db.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return true, nil
}

// setJSON encodes v and writes it at key
func setJSON(ctx context.Context, store db.Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := store.Set(ctx, key, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func deleteKey(ctx context.Context, store db.Store, key string) error {
	if err := store.Delete(ctx, key); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}
