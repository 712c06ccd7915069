package wishlist

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"github.com/vrikshavalli/storefront/internal/domain"
	"github.com/vrikshavalli/storefront/pkg/logger"
)

// ErrNotFound is returned by Storage.Read when nothing is stored under key.
var ErrNotFound = errors.New("wishlist: key not found")

// Storage reads and writes one opaque payload per key.
type Storage interface {
	Read(ctx context.Context, key string) ([]byte, error)
	Write(ctx context.Context, key string, payload []byte) error
}

// LoadStored reads the JSON array stored under key. An absent key, a read
// failure, invalid JSON or a non-array payload all yield an empty list.
func LoadStored(ctx context.Context, storage Storage, key string) []domain.WishlistItem {
	items, _ := loadStored(ctx, storage, key)
	return items
}

// loadStored is LoadStored that also returns the read error, if any. An
// absent key is not an error.
func loadStored(ctx context.Context, storage Storage, key string) ([]domain.WishlistItem, error) {
	raw, err := storage.Read(ctx, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return []domain.WishlistItem{}, nil
		}
		storageFailures.WithLabelValues("read").Inc()
		logger.FromContext(ctx).WarnContext(ctx, "wishlist read failed",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		return []domain.WishlistItem{}, err
	}
	if len(raw) == 0 {
		return []domain.WishlistItem{}, nil
	}

	var items []domain.WishlistItem
	if err := json.Unmarshal(raw, &items); err != nil || items == nil {
		if err != nil {
			logger.FromContext(ctx).WarnContext(ctx, "discarding malformed wishlist payload",
				slog.String("key", key),
				slog.String("error", err.Error()),
			)
		}
		return []domain.WishlistItem{}, nil
	}
	return items, nil
}

// saveStored overwrites key with the full list.
func saveStored(ctx context.Context, storage Storage, key string, items []domain.WishlistItem) error {
	payload, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return storage.Write(ctx, key, payload)
}

// MemoryStorage is a process-local Storage, used when no durable backend is
// configured and in tests.
type MemoryStorage struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryStorage returns an empty MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{data: make(map[string][]byte)}
}

func (m *MemoryStorage) Read(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (m *MemoryStorage) Write(_ context.Context, key string, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	v := make([]byte, len(payload))
	copy(v, payload)
	m.data[key] = v
	return nil
}
