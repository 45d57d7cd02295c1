package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fashionfusion-storefront/models"
)

func TestProfileService_RequiresLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.profile.Get(ctx, "anon")
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	_, err = env.profile.Update(ctx, "anon", models.UpdateProfileRequest{FirstName: "Jo", LastName: "Roe", Email: "jo@example.com"})
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	assert.ErrorIs(t, env.profile.DeleteAccount(ctx, "anon"), ErrNotAuthenticated)
}

func TestProfileService_Update(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.login(t, "s1")

	updated, err := env.profile.Update(ctx, "s1", models.UpdateProfileRequest{
		FirstName: "Janet",
		LastName:  "Smith",
		Email:     "Janet@Example.com",
		Phone:     " +1 555 0100 ",
		Gender:    "female",
	})
	require.NoError(t, err)
	assert.Equal(t, user.ID, updated.ID)
	assert.Equal(t, "Janet Smith", updated.Name)
	assert.Equal(t, "janet@example.com", updated.Email)
	assert.Equal(t, "+1 555 0100", updated.Phone)

	current, err := env.profile.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "Janet", current.FirstName)

	// The new email works for login
	_, err = env.auth.Login(ctx, "s2", models.LoginRequest{Email: "janet@example.com", Password: testPassword})
	assert.NoError(t, err)
}

func TestProfileService_UpdateRejectsTakenEmail(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, err := env.auth.Register(ctx, "other", registerRequest("taken@example.com"))
	require.NoError(t, err)
	env.login(t, "s1")

	_, err = env.profile.Update(ctx, "s1", models.UpdateProfileRequest{FirstName: "Jane", LastName: "Doe", Email: "TAKEN@example.com"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	// Keeping one's own email is fine
	_, err = env.profile.Update(ctx, "s1", models.UpdateProfileRequest{FirstName: "Jane", LastName: "Doe", Email: "jane@example.com"})
	assert.NoError(t, err)
}

func TestProfileService_ChangePassword(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.login(t, "s1")

	tests := []struct {
		name    string
		req     models.ChangePasswordRequest
		message string
	}{
		{"missing field", models.ChangePasswordRequest{CurrentPassword: testPassword, NewPassword: "Newpass1"}, "Please fill in all password fields"},
		{"mismatch", models.ChangePasswordRequest{CurrentPassword: testPassword, NewPassword: "Newpass1", ConfirmPassword: "Newpass2"}, "New passwords do not match"},
		{"too short", models.ChangePasswordRequest{CurrentPassword: testPassword, NewPassword: "Ab1", ConfirmPassword: "Ab1"}, "Password must be at least 6 characters long"},
		{"wrong current", models.ChangePasswordRequest{CurrentPassword: "Wrong123", NewPassword: "Newpass1", ConfirmPassword: "Newpass1"}, "Current password is incorrect"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := env.profile.ChangePassword(ctx, "s1", tt.req)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.message, verr.Message)
		})
	}

	require.NoError(t, env.profile.ChangePassword(ctx, "s1", models.ChangePasswordRequest{
		CurrentPassword: testPassword, NewPassword: "Newpass1", ConfirmPassword: "Newpass1",
	}))

	_, err := env.auth.Login(ctx, "s2", models.LoginRequest{Email: "jane@example.com", Password: testPassword})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = env.auth.Login(ctx, "s2", models.LoginRequest{Email: "jane@example.com", Password: "Newpass1"})
	assert.NoError(t, err)
}

func TestProfileService_DeleteAccount(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.login(t, "s1")

	_, err := env.addresses.Add(ctx, "s1", models.AddressRequest{Label: "Home", Street: "1 Main St", City: "Springfield", ZipCode: "12345", Country: "US"})
	require.NoError(t, err)
	_, err = env.wishlist.Add(ctx, "s1", 2)
	require.NoError(t, err)
	require.NoError(t, env.orderRepo.Prepend(ctx, user.ID, models.Order{ID: "ORD-1", UserID: user.ID, Total: decimal.NewFromInt(10)}))

	require.NoError(t, env.profile.DeleteAccount(ctx, "s1"))

	found, err := env.users.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Nil(t, found)
	_, err = env.profile.Get(ctx, "s1")
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	addresses, err := env.addrRepo.List(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, addresses)
	orders, err := env.orderRepo.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, orders)
	wishlist, err := env.wishRepo.List(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, wishlist)

	// The email can be registered again
	_, err = env.auth.Register(ctx, "s3", registerRequest("jane@example.com"))
	assert.NoError(t, err)
}

func homeAddress(label string, isDefault bool) models.AddressRequest {
	return models.AddressRequest{
		Label:     label,
		Street:    "1 Main St",
		City:      "Springfield",
		State:     "IL",
		ZipCode:   "62701",
		Country:   "US",
		IsDefault: isDefault,
	}
}

func TestAddressService_DefaultHandling(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.login(t, "s1")

	home, err := env.addresses.Add(ctx, "s1", homeAddress("Home", false))
	require.NoError(t, err)
	assert.True(t, home.IsDefault, "first address becomes the default")

	work, err := env.addresses.Add(ctx, "s1", homeAddress("Work", false))
	require.NoError(t, err)
	assert.False(t, work.IsDefault)

	cabin, err := env.addresses.Add(ctx, "s1", homeAddress("Cabin", true))
	require.NoError(t, err)
	assert.True(t, cabin.IsDefault)

	list, err := env.addresses.List(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, list, 3)
	defaults := 0
	for _, a := range list {
		if a.IsDefault {
			defaults++
			assert.Equal(t, cabin.ID, a.ID)
		}
	}
	assert.Equal(t, 1, defaults)

	list, err = env.addresses.SetDefault(ctx, "s1", work.ID)
	require.NoError(t, err)
	for _, a := range list {
		assert.Equal(t, a.ID == work.ID, a.IsDefault)
	}

	var verr *ValidationError
	require.ErrorAs(t, env.addresses.Delete(ctx, "s1", work.ID), &verr)
	assert.Equal(t, "The default address cannot be deleted", verr.Message)

	require.NoError(t, env.addresses.Delete(ctx, "s1", home.ID))
	list, err = env.addresses.List(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, list, 2)

	assert.ErrorIs(t, env.addresses.Delete(ctx, "s1", "missing"), ErrNotFound)
	_, err = env.addresses.SetDefault(ctx, "s1", "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddressService_Update(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.login(t, "s1")

	home, err := env.addresses.Add(ctx, "s1", homeAddress("Home", false))
	require.NoError(t, err)

	req := homeAddress("Home", false)
	req.City = "Chicago"
	updated, err := env.addresses.Update(ctx, "s1", home.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "Chicago", updated.City)
	assert.True(t, updated.IsDefault, "the only address stays default")

	req.Street = ""
	_, err = env.addresses.Update(ctx, "s1", home.ID, req)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "street", verr.Field)

	_, err = env.addresses.Update(ctx, "s1", "missing", homeAddress("X", false))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWishlistService(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.wishlist.Add(ctx, "s1", 1)
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	env.login(t, "s1")

	_, err = env.wishlist.Add(ctx, "s1", 404)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = env.wishlist.Add(ctx, "s1", 2)
	require.NoError(t, err)
	products, err := env.wishlist.Add(ctx, "s1", 2)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Denim Jacket", products[0].Name)

	products, err = env.wishlist.Remove(ctx, "s1", 2)
	require.NoError(t, err)
	assert.Empty(t, products)

	products, err = env.wishlist.Remove(ctx, "s1", 2)
	require.NoError(t, err)
	assert.Empty(t, products)
}
