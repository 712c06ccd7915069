package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vrikshavalli/storefront/internal/bag"
	apperrors "github.com/vrikshavalli/storefront/pkg/errors"
	"github.com/vrikshavalli/storefront/pkg/logger"
)

const bagKeyPrefix = "bag:"

var errVersionMismatch = errors.New("bag version mismatch")

// BagRepository implements repository.BagRepository using Redis. Bags live
// for the session TTL, refreshed on every save.
type BagRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewBagRepository creates a Redis-backed bag repository.
func NewBagRepository(client *redis.Client, ttl time.Duration) *BagRepository {
	return &BagRepository{client: client, ttl: ttl}
}

// Get retrieves a session bag.
func (r *BagRepository) Get(ctx context.Context, sessionID string) (*bag.Bag, error) {
	data, err := r.client.Get(ctx, bagKeyPrefix+sessionID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperrors.NotFound("bag", sessionID)
		}
		return nil, fmt.Errorf("redis get bag: %w", err)
	}

	var b bag.Bag
	if err := json.Unmarshal(data, &b); err != nil {
		// An undecodable bag cannot be repaired; drop it so the session
		// starts over with an empty one.
		logger.FromContext(ctx).WarnContext(ctx, "discarding malformed bag",
			slog.String("session_id", sessionID),
			slog.String("error", err.Error()),
		)
		if err := r.drop(ctx, sessionID); err != nil {
			logger.FromContext(ctx).WarnContext(ctx, "failed to drop malformed bag",
				slog.String("session_id", sessionID),
				slog.String("error", err.Error()),
			)
		}
		return nil, apperrors.NotFound("bag", sessionID)
	}
	return &b, nil
}

// SaveIfVersion writes b under WATCH so a concurrent save between the
// version check and the write aborts the transaction. A stored payload that
// does not decode counts as version 0.
func (r *BagRepository) SaveIfVersion(ctx context.Context, b *bag.Bag, expected int) (bool, error) {
	key := bagKeyPrefix + b.SessionID

	err := r.client.Watch(ctx, func(tx *redis.Tx) error {
		current := 0
		data, err := tx.Get(ctx, key).Bytes()
		switch {
		case errors.Is(err, redis.Nil):
		case err != nil:
			return fmt.Errorf("redis get bag: %w", err)
		default:
			var stored bag.Bag
			if json.Unmarshal(data, &stored) == nil {
				current = stored.Version
			}
		}
		if current != expected {
			return errVersionMismatch
		}

		next := *b
		next.Version = expected + 1
		payload, err := json.Marshal(&next)
		if err != nil {
			return fmt.Errorf("marshal bag: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, r.ttl)
			return nil
		})
		return err
	}, key)

	switch {
	case err == nil:
		b.Version = expected + 1
		return true, nil
	case errors.Is(err, errVersionMismatch), errors.Is(err, redis.TxFailedErr):
		return false, nil
	default:
		return false, fmt.Errorf("redis save bag: %w", err)
	}
}

func (r *BagRepository) drop(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, bagKeyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("redis del bag: %w", err)
	}
	return nil
}
