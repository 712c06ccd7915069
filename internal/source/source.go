// Package source provides the product sources the listing and search
// services read from. Every implementation returns display-side products so
// the filter/sort engine behaves the same whatever backs it.
package source

import (
	"context"
	"strings"

	"github.com/vrikshavalli/storefront/internal/domain"
)

// Query selects products from a source. An empty Category spans every
// category. PerPage <= 0 returns the whole result.
type Query struct {
	Category domain.CategorySlug
	Search   string
	Page     int
	PerPage  int
}

// Page is one page of a source result.
type Page struct {
	Products []domain.Product `json:"products"`
	Total    int              `json:"total"`
}

// Source answers product queries.
type Source interface {
	Query(ctx context.Context, q Query) (*Page, error)
}

func (q Query) offset() int {
	if q.Page < 1 || q.PerPage <= 0 {
		return 0
	}
	return (q.Page - 1) * q.PerPage
}

func matchesSearch(name, search string) bool {
	search = strings.TrimSpace(search)
	if search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(name), strings.ToLower(search))
}
