package service

import (
	"context"
	"hash/fnv"
	"log/slog"
	"sync"

	"github.com/vrikshavalli/storefront/internal/domain"
	"github.com/vrikshavalli/storefront/internal/event"
	"github.com/vrikshavalli/storefront/internal/wishlist"
	apperrors "github.com/vrikshavalli/storefront/pkg/errors"
)

const wishlistLockStripes = 64

// WishlistService serves per-session wishlists. Each call hydrates a
// wishlist.Store from storage, so the stored payload is the only state kept
// between requests. Mutations on the same session are serialised.
type WishlistService struct {
	storage   wishlist.Storage
	keyPrefix string
	producer  *event.Producer
	logger    *slog.Logger
	locks     [wishlistLockStripes]sync.Mutex
}

// NewWishlistService creates a wishlist service. Sessions are stored under
// "<keyPrefix>:<session id>".
func NewWishlistService(storage wishlist.Storage, keyPrefix string, producer *event.Producer, logger *slog.Logger) *WishlistService {
	return &WishlistService{
		storage:   storage,
		keyPrefix: keyPrefix,
		producer:  producer,
		logger:    logger,
	}
}

// StorageKey returns the storage key for a session.
func (s *WishlistService) StorageKey(sessionID string) string {
	return s.keyPrefix + ":" + sessionID
}

// Items returns the session's wishlist.
func (s *WishlistService) Items(ctx context.Context, sessionID string) ([]domain.WishlistItem, error) {
	if err := requireSession(sessionID); err != nil {
		return nil, err
	}
	return s.open(ctx, sessionID).Items(), nil
}

// Has reports whether id is on the session's wishlist.
func (s *WishlistService) Has(ctx context.Context, sessionID string, id domain.ID) (bool, error) {
	if err := requireSession(sessionID); err != nil {
		return false, err
	}
	return s.open(ctx, sessionID).Has(id), nil
}

// Add inserts item unless an entry with its id exists.
func (s *WishlistService) Add(ctx context.Context, sessionID string, item domain.WishlistItem) ([]domain.WishlistItem, error) {
	if err := validateWishlistItem(item); err != nil {
		return nil, err
	}
	return s.update(ctx, sessionID, item.ID, func(st *wishlist.Store) string {
		if st.Add(ctx, item) {
			return event.WishlistAdded
		}
		return ""
	})
}

// Remove deletes the entry with id, if any.
func (s *WishlistService) Remove(ctx context.Context, sessionID string, id domain.ID) ([]domain.WishlistItem, error) {
	return s.update(ctx, sessionID, id, func(st *wishlist.Store) string {
		if st.Remove(ctx, id) {
			return event.WishlistRemoved
		}
		return ""
	})
}

// Toggle removes item if present, otherwise adds it. It reports whether the
// item is on the wishlist afterwards.
func (s *WishlistService) Toggle(ctx context.Context, sessionID string, item domain.WishlistItem) (bool, []domain.WishlistItem, error) {
	if err := validateWishlistItem(item); err != nil {
		return false, nil, err
	}
	var present bool
	items, err := s.update(ctx, sessionID, item.ID, func(st *wishlist.Store) string {
		present = st.Toggle(ctx, item)
		if present {
			return event.WishlistAdded
		}
		return event.WishlistRemoved
	})
	if err != nil {
		return false, nil, err
	}
	return present, items, nil
}

// update runs fn under the session lock. fn returns the action to publish,
// or "" when nothing changed. Mutations are refused while the stored list
// cannot be read, so a transient outage never replaces it.
func (s *WishlistService) update(ctx context.Context, sessionID string, id domain.ID, fn func(*wishlist.Store) string) ([]domain.WishlistItem, error) {
	if err := requireSession(sessionID); err != nil {
		return nil, err
	}

	mu := s.lockFor(sessionID)
	mu.Lock()
	st := s.open(ctx, sessionID)
	if err := st.ReadErr(); err != nil {
		mu.Unlock()
		return nil, apperrors.Unavailable("wishlist storage", err)
	}
	action := fn(st)
	items := st.Items()
	mu.Unlock()

	if action == "" {
		return items, nil
	}

	if err := s.producer.PublishWishlistChanged(ctx, sessionID, action, id, len(items)); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish wishlist.changed event",
			slog.String("session_id", sessionID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "wishlist updated",
		slog.String("session_id", sessionID),
		slog.String("action", action),
		slog.String("product_id", id.String()),
	)
	return items, nil
}

func (s *WishlistService) open(ctx context.Context, sessionID string) *wishlist.Store {
	return wishlist.NewStore(ctx, s.storage, s.StorageKey(sessionID))
}

func (s *WishlistService) lockFor(sessionID string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(sessionID))
	return &s.locks[h.Sum32()%wishlistLockStripes]
}

func validateWishlistItem(item domain.WishlistItem) error {
	if item.ID == "" {
		return apperrors.InvalidInput("item id is required")
	}
	return nil
}
