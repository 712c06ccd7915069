package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vrikshavalli/storefront/internal/domain"
	"github.com/vrikshavalli/storefront/internal/wishlist"
)

func TestWishlistStorage_ReadMissing(t *testing.T) {
	client, _ := setupTestRedis(t)
	s := NewWishlistStorage(client, 0)

	_, err := s.Read(context.Background(), "vrikshavalli-wishlist:s1")
	assert.True(t, errors.Is(err, wishlist.ErrNotFound))
}

func TestWishlistStorage_WriteRead(t *testing.T) {
	client, mr := setupTestRedis(t)
	s := NewWishlistStorage(client, 30*24*time.Hour)
	ctx := context.Background()

	require.NoError(t, s.Write(ctx, "vrikshavalli-wishlist:s1", []byte(`[{"id":"1"}]`)))

	raw, err := s.Read(ctx, "vrikshavalli-wishlist:s1")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"1"}]`, string(raw))
	assert.Equal(t, 30*24*time.Hour, mr.TTL("vrikshavalli-wishlist:s1"))
}

func TestWishlistStorage_BacksStore(t *testing.T) {
	client, mr := setupTestRedis(t)
	ctx := context.Background()
	storage := NewWishlistStorage(client, 0)
	key := "vrikshavalli-wishlist:s2"

	require.NoError(t, mr.Set(key, "not json"))
	store := wishlist.NewStore(ctx, storage, key)
	assert.Empty(t, store.Items())

	store.Toggle(ctx, domain.WishlistItem{ID: "42", Name: "Fiddle Leaf Fig", Price: 899})

	reloaded := wishlist.NewStore(ctx, storage, key)
	assert.True(t, reloaded.Has("42"))
}

func TestWishlistStorage_ReadFailure(t *testing.T) {
	client, mr := setupTestRedis(t)
	s := NewWishlistStorage(client, 0)
	mr.Close()

	_, err := s.Read(context.Background(), "k")
	require.Error(t, err)
	assert.False(t, errors.Is(err, wishlist.ErrNotFound))
	assert.Error(t, s.Write(context.Background(), "k", []byte("[]")))
}
