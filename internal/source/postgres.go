package source

import (
	"context"
	"fmt"

	"github.com/vrikshavalli/storefront/internal/domain"
)

// PostgresSource reads active products from the products table.
type PostgresSource struct {
	repo     domain.ProductRepository
	maxLimit int
}

// NewPostgresSource creates a source over repo. Unbounded queries are capped
// at maxLimit rows.
func NewPostgresSource(repo domain.ProductRepository, maxLimit int) *PostgresSource {
	return &PostgresSource{repo: repo, maxLimit: maxLimit}
}

// Query maps q onto a repository filter.
func (s *PostgresSource) Query(ctx context.Context, q Query) (*Page, error) {
	limit := q.PerPage
	if limit <= 0 || limit > s.maxLimit {
		limit = s.maxLimit
	}

	rows, total, err := s.repo.List(ctx, domain.ProductFilter{
		Search:       q.Search,
		CategorySlug: string(q.Category),
		ActiveOnly:   true,
		Limit:        limit,
		Offset:       q.offset(),
	})
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}

	products := make([]domain.Product, len(rows))
	for i, row := range rows {
		products[i] = row.Display()
	}
	return &Page{Products: products, Total: total}, nil
}
