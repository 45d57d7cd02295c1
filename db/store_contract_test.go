package db

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runStoreContract exercises the behavior every Store backend must share
func runStoreContract(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("missing key returns ErrNotFound", func(t *testing.T) {
		_, err := s.Get(ctx, "session:missing:cart")
		assert.True(t, errors.Is(err, ErrNotFound))
	})

	t.Run("set then get round trips", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "session:abc:cart", []byte(`[{"productId":1,"quantity":2}]`)))
		got, err := s.Get(ctx, "session:abc:cart")
		require.NoError(t, err)
		assert.JSONEq(t, `[{"productId":1,"quantity":2}]`, string(got))
	})

	t.Run("set overwrites", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "session:abc:promo", []byte(`"SAVE10"`)))
		require.NoError(t, s.Set(ctx, "session:abc:promo", []byte(`"FREESHIP"`)))
		got, err := s.Get(ctx, "session:abc:promo")
		require.NoError(t, err)
		assert.Equal(t, `"FREESHIP"`, string(got))
	})

	t.Run("delete removes and is idempotent", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "users", []byte(`[]`)))
		require.NoError(t, s.Delete(ctx, "users"))
		require.NoError(t, s.Delete(ctx, "users"))
		_, err := s.Get(ctx, "users")
		assert.True(t, errors.Is(err, ErrNotFound))
	})
}
