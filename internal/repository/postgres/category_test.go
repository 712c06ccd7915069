package postgres

import (
	"context"
	"errors"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vrikshavalli/storefront/internal/domain"
)

func TestCategoryRepository_Upsert(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewCategoryRepository(mock)

	c := &domain.Category{
		Name:        "Plants",
		Slug:        "plants",
		Description: strPtr("Discover our curated collection of healthy, vibrant plants"),
		Image:       strPtr("/category-plant.webp"),
	}

	mock.ExpectQuery("INSERT INTO categories .+ ON CONFLICT \\(slug\\) DO UPDATE").
		WithArgs(c.Name, c.Slug, c.Description, c.Image).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow("c0ffee00-0000-4000-8000-000000000001", now, now))

	require.NoError(t, repo.Upsert(context.Background(), c))
	assert.Equal(t, "c0ffee00-0000-4000-8000-000000000001", c.ID)
	assert.Equal(t, now, c.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryRepository_Upsert_Error(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewCategoryRepository(mock)

	mock.ExpectQuery("INSERT INTO categories").WillReturnError(errors.New("deadlock detected"))

	err := repo.Upsert(context.Background(), &domain.Category{Name: "Seeds", Slug: "seeds"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upsert category seeds")
}
