package postgres

import (
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"

	"github.com/vrikshavalli/storefront/internal/domain"
	"github.com/vrikshavalli/storefront/pkg/database"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := database.NewMockPool()
	require.NoError(t, err)
	return mock
}

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }

var now = time.Date(2026, 2, 10, 8, 0, 0, 0, time.UTC)

var productColumnNames = []string{
	"id", "name", "slug", "description", "price", "original_price", "image", "images",
	"category_id", "name", "rating", "review_count", "stock", "is_new", "is_best_seller",
	"is_hand_picked", "is_active", "sub_category", "size", "created_at", "updated_at",
}

var productColumnNamesWithCount = append(append([]string{}, productColumnNames...), "total_count")

func sampleRow() domain.CatalogProduct {
	return domain.CatalogProduct{
		ID:            "0d7f3c2e-5a1b-4c8e-9f00-1a2b3c4d5e6f",
		Name:          "Snake Plant",
		Slug:          "snake-plant",
		Description:   strPtr("Hardy and low light tolerant"),
		Price:         799,
		OriginalPrice: floatPtr(999),
		Image:         "/snake.webp",
		Images:        []string{"/snake-1.webp"},
		CategoryID:    strPtr("c0ffee00-0000-4000-8000-000000000001"),
		CategoryName:  strPtr("Plants"),
		Rating:        4.5,
		ReviewCount:   87,
		Stock:         12,
		IsBestSeller:  true,
		IsActive:      true,
		SubCategory:   strPtr("indoor"),
		Size:          strPtr(`4"`),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func rowValues(p domain.CatalogProduct) []any {
	return []any{
		p.ID, p.Name, p.Slug, p.Description, p.Price, p.OriginalPrice, p.Image, p.Images,
		p.CategoryID, p.CategoryName, p.Rating, p.ReviewCount, p.Stock, p.IsNew, p.IsBestSeller,
		p.IsHandPicked, p.IsActive, p.SubCategory, p.Size, p.CreatedAt, p.UpdatedAt,
	}
}
