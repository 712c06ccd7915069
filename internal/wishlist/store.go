package wishlist

import (
	"context"
	"log/slog"
	"sync"

	"github.com/vrikshavalli/storefront/internal/domain"
	"github.com/vrikshavalli/storefront/pkg/logger"
)

// Store is a List mirrored to a Storage key. It hydrates once on
// construction; afterwards every change writes the whole list back. Storage
// failures are logged and ignored, so the in-memory list stays
// authoritative. A store whose hydration read failed never writes, since
// its empty list would overwrite whatever the key still holds.
type Store struct {
	mu      sync.RWMutex
	storage Storage
	key     string
	list    List
	readErr error
}

// NewStore hydrates a store from the payload under key.
func NewStore(ctx context.Context, storage Storage, key string) *Store {
	items, err := loadStored(ctx, storage, key)
	return &Store{
		storage: storage,
		key:     key,
		list:    NewList(items),
		readErr: err,
	}
}

// ReadErr returns the error that stopped hydration, or nil when the store
// reflects what is stored.
func (s *Store) ReadErr() error {
	return s.readErr
}

// Items returns a copy of the current entries.
func (s *Store) Items() []domain.WishlistItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.list.Items()
}

// Has reports whether id is on the wishlist.
func (s *Store) Has(id domain.ID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.list.Has(id)
}

// Add inserts item unless already present and reports whether it changed.
func (s *Store) Add(ctx context.Context, item domain.WishlistItem) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	changed := s.list.Add(item)
	if changed {
		s.persist(ctx)
	}
	return changed
}

// Remove deletes id and reports whether it was present.
func (s *Store) Remove(ctx context.Context, id domain.ID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	changed := s.list.Remove(id)
	if changed {
		s.persist(ctx)
	}
	return changed
}

// Toggle flips membership of item and returns whether it is now present.
func (s *Store) Toggle(ctx context.Context, item domain.WishlistItem) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	present := s.list.Toggle(item)
	s.persist(ctx)
	return present
}

// persist must be called with s.mu held.
func (s *Store) persist(ctx context.Context) {
	if s.readErr != nil {
		storageFailures.WithLabelValues("write_skipped").Inc()
		logger.FromContext(ctx).WarnContext(ctx, "wishlist write skipped after failed read",
			slog.String("key", s.key),
			slog.String("error", s.readErr.Error()),
		)
		return
	}
	if err := saveStored(ctx, s.storage, s.key, s.list.Items()); err != nil {
		storageFailures.WithLabelValues("write").Inc()
		logger.FromContext(ctx).WarnContext(ctx, "wishlist write failed",
			slog.String("key", s.key),
			slog.Int("items", s.list.Len()),
			slog.String("error", err.Error()),
		)
	}
}
