// Package wishlist keeps the set of products a shopper has liked. List holds
// the membership rules, Store mirrors a List to a Storage backend.
package wishlist

import "github.com/vrikshavalli/storefront/internal/domain"

// List is an ordered set of wishlist items with at most one entry per ID.
// The zero value is an empty list.
type List struct {
	items []domain.WishlistItem
}

// NewList builds a list from items, keeping the first entry for each ID.
func NewList(items []domain.WishlistItem) List {
	var l List
	for _, it := range items {
		l.Add(it)
	}
	return l
}

// Items returns a copy of the entries in insertion order.
func (l *List) Items() []domain.WishlistItem {
	out := make([]domain.WishlistItem, len(l.items))
	copy(out, l.items)
	return out
}

// Len returns the number of entries.
func (l *List) Len() int { return len(l.items) }

// Has reports whether an entry with id exists.
func (l *List) Has(id domain.ID) bool {
	return l.index(id) >= 0
}

// Add inserts item unless its ID is already present. It reports whether the
// list changed.
func (l *List) Add(item domain.WishlistItem) bool {
	if l.Has(item.ID) {
		return false
	}
	l.items = append(l.items, item)
	return true
}

// Remove deletes the entry with id. It reports whether the list changed.
func (l *List) Remove(id domain.ID) bool {
	i := l.index(id)
	if i < 0 {
		return false
	}
	l.items = append(l.items[:i:i], l.items[i+1:]...)
	return true
}

// Toggle removes item when present and adds it otherwise. It returns whether
// the item is present afterwards.
func (l *List) Toggle(item domain.WishlistItem) bool {
	if l.Remove(item.ID) {
		return false
	}
	l.items = append(l.items, item)
	return true
}

func (l *List) index(id domain.ID) int {
	for i := range l.items {
		if l.items[i].ID == id {
			return i
		}
	}
	return -1
}
