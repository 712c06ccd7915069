package repository

import (
	"context"

	"github.com/vrikshavalli/storefront/internal/bag"
)

// BagRepository persists session bags.
type BagRepository interface {
	// Get returns the bag for a session, or an apperrors not-found error
	// when nothing usable is stored.
	Get(ctx context.Context, sessionID string) (*bag.Bag, error)

	// SaveIfVersion stores b only if the stored version still equals
	// expected (0 when nothing is stored). On success b.Version is
	// incremented. It reports false, nil when another writer got there first.
	SaveIfVersion(ctx context.Context, b *bag.Bag, expected int) (bool, error)
}
