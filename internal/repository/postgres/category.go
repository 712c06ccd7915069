package postgres

import (
	"context"
	"fmt"

	"github.com/vrikshavalli/storefront/internal/domain"
	"github.com/vrikshavalli/storefront/pkg/database"
)

// CategoryRepository implements domain.CategoryRepository using PostgreSQL.
type CategoryRepository struct {
	db database.DBTX
}

// NewCategoryRepository creates a new PostgreSQL-backed category repository.
func NewCategoryRepository(db database.DBTX) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// Upsert inserts c or refreshes the row with the same slug, then fills in
// the stored id and timestamps.
func (r *CategoryRepository) Upsert(ctx context.Context, c *domain.Category) (err error) {
	query := `
		INSERT INTO categories (name, slug, description, image)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (slug) DO UPDATE
		SET name = EXCLUDED.name, description = EXCLUDED.description, image = EXCLUDED.image, updated_at = NOW()
		RETURNING id, created_at, updated_at`

	ctx, end := database.TraceQuery(ctx, "UpsertCategory", query)
	defer func() { end(err) }()

	if err = r.db.QueryRow(ctx, query, c.Name, c.Slug, c.Description, c.Image).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return fmt.Errorf("upsert category %s: %w", c.Slug, err)
	}
	return nil
}
