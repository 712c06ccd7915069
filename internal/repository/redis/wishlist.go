package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vrikshavalli/storefront/internal/wishlist"
)

// WishlistStorage implements wishlist.Storage with one Redis string per key.
type WishlistStorage struct {
	client *redis.Client
	ttl    time.Duration
}

// NewWishlistStorage creates a Redis wishlist storage. A zero ttl keeps
// payloads until overwritten.
func NewWishlistStorage(client *redis.Client, ttl time.Duration) *WishlistStorage {
	return &WishlistStorage{client: client, ttl: ttl}
}

func (s *WishlistStorage) Read(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, wishlist.ErrNotFound
		}
		return nil, fmt.Errorf("redis get wishlist: %w", err)
	}
	return data, nil
}

func (s *WishlistStorage) Write(ctx context.Context, key string, payload []byte) error {
	if err := s.client.Set(ctx, key, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set wishlist: %w", err)
	}
	return nil
}
