package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/vrikshavalli/storefront/internal/bag"
	"github.com/vrikshavalli/storefront/internal/domain"
	"github.com/vrikshavalli/storefront/internal/event"
	"github.com/vrikshavalli/storefront/internal/repository"
	apperrors "github.com/vrikshavalli/storefront/pkg/errors"
)

// Bag limits to prevent abuse.
const (
	// MaxQuantityPerItem is the largest quantity a single line may hold.
	MaxQuantityPerItem = 99
	// MaxLinesPerBag is the maximum number of distinct lines in a bag.
	MaxLinesPerBag = 50
)

// BagService implements the session bag operations.
type BagService struct {
	repo     repository.BagRepository
	producer *event.Producer
	logger   *slog.Logger
	now      func() time.Time
}

// NewBagService creates a new bag service.
func NewBagService(repo repository.BagRepository, producer *event.Producer, logger *slog.Logger) *BagService {
	return &BagService{
		repo:     repo,
		producer: producer,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// GetBag returns the session's bag, or an empty closed bag.
func (s *BagService) GetBag(ctx context.Context, sessionID string) (*bag.Bag, error) {
	if err := requireSession(sessionID); err != nil {
		return nil, err
	}
	return s.load(ctx, sessionID)
}

// AddItem increments the line for input.ID or inserts it with quantity 1.
func (s *BagService) AddItem(ctx context.Context, sessionID string, input domain.AddBagItemInput) (*bag.Bag, error) {
	if strings.TrimSpace(input.ID) == "" {
		return nil, apperrors.InvalidInput("item id is required")
	}
	if input.Price < 0 {
		return nil, apperrors.InvalidInput("price must not be negative")
	}

	b, err := s.mutate(ctx, sessionID, func(b *bag.Bag) error {
		if i := b.FindItemIndex(input.ID); i >= 0 {
			if b.Items[i].Quantity >= MaxQuantityPerItem {
				return apperrors.InvalidInput(fmt.Sprintf("quantity must not exceed %d", MaxQuantityPerItem))
			}
		} else if len(b.Items) >= MaxLinesPerBag {
			return apperrors.InvalidInput(fmt.Sprintf("bag must not contain more than %d items", MaxLinesPerBag))
		}
		b.AddItem(domain.BagItem{
			ID:      input.ID,
			Name:    input.Name,
			Image:   input.Image,
			Price:   input.Price,
			Variant: input.Variant,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "item added to bag",
		slog.String("session_id", sessionID),
		slog.String("item_id", input.ID),
	)
	return b, nil
}

// UpdateQty sets a line's quantity. qty <= 0 removes the line.
func (s *BagService) UpdateQty(ctx context.Context, sessionID, itemID string, qty int) (*bag.Bag, error) {
	if qty > MaxQuantityPerItem {
		return nil, apperrors.InvalidInput(fmt.Sprintf("quantity must not exceed %d", MaxQuantityPerItem))
	}

	b, err := s.mutate(ctx, sessionID, func(b *bag.Bag) error {
		b.UpdateQty(itemID, qty)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "bag item quantity updated",
		slog.String("session_id", sessionID),
		slog.String("item_id", itemID),
		slog.Int("quantity", qty),
	)
	return b, nil
}

// RemoveItem deletes a line. Removing an absent line is not an error.
func (s *BagService) RemoveItem(ctx context.Context, sessionID, itemID string) (*bag.Bag, error) {
	b, err := s.mutate(ctx, sessionID, func(b *bag.Bag) error {
		b.RemoveItem(itemID)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "item removed from bag",
		slog.String("session_id", sessionID),
		slog.String("item_id", itemID),
	)
	return b, nil
}

// ClearBag empties the bag, keeping its visibility.
func (s *BagService) ClearBag(ctx context.Context, sessionID string) (*bag.Bag, error) {
	b, err := s.save(ctx, sessionID, func(b *bag.Bag) error {
		b.Clear()
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.producer.PublishBagCleared(ctx, sessionID); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish bag.cleared event",
			slog.String("session_id", sessionID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "bag cleared", slog.String("session_id", sessionID))
	return b, nil
}

// SetVisibility opens or closes the bag slide-over.
func (s *BagService) SetVisibility(ctx context.Context, sessionID string, open bool) (*bag.Bag, error) {
	return s.save(ctx, sessionID, func(b *bag.Bag) error {
		if open {
			b.Open()
		} else {
			b.Close()
		}
		return nil
	})
}

// mutate saves a change to the bag's lines and publishes bag.updated.
func (s *BagService) mutate(ctx context.Context, sessionID string, fn func(*bag.Bag) error) (*bag.Bag, error) {
	b, err := s.save(ctx, sessionID, fn)
	if err != nil {
		return nil, err
	}

	if err := s.producer.PublishBagUpdated(ctx, b); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish bag.updated event",
			slog.String("session_id", sessionID),
			slog.String("error", err.Error()),
		)
	}
	return b, nil
}

// save loads the bag, applies fn and stores the result with optimistic
// locking. A concurrent writer turns into a conflict error.
func (s *BagService) save(ctx context.Context, sessionID string, fn func(*bag.Bag) error) (*bag.Bag, error) {
	if err := requireSession(sessionID); err != nil {
		return nil, err
	}

	b, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	expectedVersion := b.Version
	if err := fn(b); err != nil {
		return nil, err
	}
	b.UpdatedAt = s.now()

	ok, err := s.repo.SaveIfVersion(ctx, b, expectedVersion)
	if err != nil {
		return nil, fmt.Errorf("save bag: %w", err)
	}
	if !ok {
		return nil, apperrors.Conflict("bag was modified concurrently, please retry")
	}
	return b, nil
}

func (s *BagService) load(ctx context.Context, sessionID string) (*bag.Bag, error) {
	b, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return bag.New(sessionID), nil
		}
		return nil, fmt.Errorf("get bag: %w", err)
	}
	return b, nil
}
