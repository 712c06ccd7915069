// Package bag is the shopping bag: line items keyed by product id, derived
// totals and the slide-over visibility flag.
package bag

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vrikshavalli/storefront/internal/domain"
)

// Bag holds at most one line per item id, each with quantity >= 1.
type Bag struct {
	SessionID string           `json:"session_id"`
	Items     []domain.BagItem `json:"items"`
	IsOpen    bool             `json:"is_open"`
	Version   int              `json:"version"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// New returns an empty, closed bag for session.
func New(sessionID string) *Bag {
	return &Bag{SessionID: sessionID, Items: []domain.BagItem{}}
}

// AddItem increments the line with the same id, or inserts item with
// quantity 1. item.Quantity is ignored.
func (b *Bag) AddItem(item domain.BagItem) {
	if i := b.FindItemIndex(item.ID); i >= 0 {
		b.Items[i].Quantity++
		return
	}
	item.Quantity = 1
	b.Items = append(b.Items, item)
}

// RemoveItem deletes the line with id, if any.
func (b *Bag) RemoveItem(id string) {
	if i := b.FindItemIndex(id); i >= 0 {
		b.Items = append(b.Items[:i:i], b.Items[i+1:]...)
	}
}

// UpdateQty sets the quantity of the line with id. qty <= 0 removes the
// line. Unknown ids are ignored.
func (b *Bag) UpdateQty(id string, qty int) {
	if qty <= 0 {
		b.RemoveItem(id)
		return
	}
	if i := b.FindItemIndex(id); i >= 0 {
		b.Items[i].Quantity = qty
	}
}

// Clear empties the bag. Visibility is unchanged.
func (b *Bag) Clear() {
	b.Items = []domain.BagItem{}
}

// Open shows the bag slide-over.
func (b *Bag) Open() { b.IsOpen = true }

// Close hides the bag slide-over.
func (b *Bag) Close() { b.IsOpen = false }

// Subtotal is the exact sum of price * quantity over all lines.
func (b *Bag) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range b.Items {
		total = total.Add(decimal.NewFromFloat(it.Price).Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}

// ItemCount is the sum of quantities.
func (b *Bag) ItemCount() int {
	n := 0
	for _, it := range b.Items {
		n += it.Quantity
	}
	return n
}

// FindItemIndex returns the index of the line with id, or -1.
func (b *Bag) FindItemIndex(id string) int {
	for i := range b.Items {
		if b.Items[i].ID == id {
			return i
		}
	}
	return -1
}

// Summary is the bag as returned to clients, with derived totals.
type Summary struct {
	Items     []domain.BagItem `json:"items"`
	IsOpen    bool             `json:"is_open"`
	Subtotal  decimal.Decimal  `json:"subtotal"`
	ItemCount int              `json:"item_count"`
	Version   int              `json:"version"`
}

// Summarize computes the client view of b.
func (b *Bag) Summarize() Summary {
	items := b.Items
	if items == nil {
		items = []domain.BagItem{}
	}
	return Summary{
		Items:     items,
		IsOpen:    b.IsOpen,
		Subtotal:  b.Subtotal(),
		ItemCount: b.ItemCount(),
		Version:   b.Version,
	}
}
