package source

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vrikshavalli/storefront/internal/domain"
)

type mockProductRepo struct {
	mock.Mock
}

func (m *mockProductRepo) List(ctx context.Context, filter domain.ProductFilter) ([]domain.CatalogProduct, int, error) {
	args := m.Called(ctx, filter)
	rows, _ := args.Get(0).([]domain.CatalogProduct)
	return rows, args.Int(1), args.Error(2)
}

func (m *mockProductRepo) Create(ctx context.Context, input domain.NewProductInput) (*domain.CatalogProduct, error) {
	args := m.Called(ctx, input)
	p, _ := args.Get(0).(*domain.CatalogProduct)
	return p, args.Error(1)
}

func TestPostgresSource_Query(t *testing.T) {
	repo := &mockProductRepo{}
	s := NewPostgresSource(repo, 100)

	indoor := "indoor"
	repo.On("List", mock.Anything, domain.ProductFilter{
		Search:       "fern",
		CategorySlug: "plants",
		ActiveOnly:   true,
		Limit:        10,
		Offset:       10,
	}).Return([]domain.CatalogProduct{
		{ID: "p1", Name: "Boston Fern", Price: 349, Rating: 4.5, SubCategory: &indoor},
	}, 11, nil)

	page, err := s.Query(context.Background(), Query{Category: domain.CategoryPlants, Search: "fern", Page: 2, PerPage: 10})
	require.NoError(t, err)
	assert.Equal(t, 11, page.Total)
	require.Len(t, page.Products, 1)
	assert.Equal(t, domain.ID("p1"), page.Products[0].ID)
	assert.Equal(t, domain.SubCategoryIndoor, page.Products[0].SubCategory)
	assert.Equal(t, 4.5, page.Products[0].RatingOrZero())
	repo.AssertExpectations(t)
}

func TestPostgresSource_UnboundedQueryUsesMaxLimit(t *testing.T) {
	repo := &mockProductRepo{}
	s := NewPostgresSource(repo, 250)

	repo.On("List", mock.Anything, mock.MatchedBy(func(f domain.ProductFilter) bool {
		return f.Limit == 250 && f.Offset == 0 && f.ActiveOnly
	})).Return([]domain.CatalogProduct{}, 0, nil)

	page, err := s.Query(context.Background(), Query{})
	require.NoError(t, err)
	assert.Empty(t, page.Products)
	repo.AssertExpectations(t)
}

func TestPostgresSource_WrapsError(t *testing.T) {
	repo := &mockProductRepo{}
	repo.On("List", mock.Anything, mock.Anything).Return(nil, 0, errors.New("conn refused"))

	_, err := NewPostgresSource(repo, 100).Query(context.Background(), Query{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "query products")
}
