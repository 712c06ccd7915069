package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vrikshavalli/storefront/internal/domain"
	"github.com/vrikshavalli/storefront/internal/service"
	"github.com/vrikshavalli/storefront/internal/source"
)

func TestListing_Categories(t *testing.T) {
	env := newTestEnv(t, RouterConfig{ListingCacheMaxAge: 60})

	rec := env.do(t, http.MethodGet, "/api/v1/categories", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "public, max-age=60", rec.Header().Get("Cache-Control"))

	meta := decodeData[service.CatalogMeta](t, rec)
	require.Len(t, meta.Categories, 5)
	assert.Equal(t, domain.CategoryPlants, meta.Categories[0].Slug)
	assert.NotEmpty(t, meta.SortOptions)
}

func TestListing_PlantsBySubCategory(t *testing.T) {
	env := newTestEnv(t, RouterConfig{})

	want := 0
	for _, p := range source.GenerateMockProducts(domain.CategoryPlants, 1) {
		if p.SubCategory == domain.SubCategoryIndoor {
			want++
		}
	}
	require.Positive(t, want)

	rec := env.do(t, http.MethodGet, "/api/v1/listing?category=plants&sub_category=indoor", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	res := decodeData[service.ListingResult](t, rec)
	assert.Equal(t, domain.CategoryPlants, res.Category.Slug)
	assert.Equal(t, domain.SubCategoryIndoor, res.SubCategory)
	assert.Equal(t, want, res.Total)
	require.Len(t, res.Products, want)
	for _, p := range res.Products {
		assert.Equal(t, domain.SubCategoryIndoor, p.SubCategory)
	}
	assert.Equal(t, want, res.SubCategoryCounts[domain.SubCategoryIndoor])
}

func TestListing_SortAndFilters(t *testing.T) {
	env := newTestEnv(t, RouterConfig{})

	rec := env.do(t, http.MethodGet, "/api/v1/listing?category=seeds&sort=price-asc&price_min=200&per_page=100", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	res := decodeData[service.ListingResult](t, rec)
	assert.True(t, res.HasActiveFilters)
	assert.Equal(t, 1, res.ActiveFilterCount)
	assert.Empty(t, res.SubCategories)
	for i, p := range res.Products {
		assert.GreaterOrEqual(t, p.Price, 200.0)
		if i > 0 {
			assert.LessOrEqual(t, res.Products[i-1].Price, p.Price)
		}
	}
}

func TestListing_UnknownCategoryFallsBack(t *testing.T) {
	env := newTestEnv(t, RouterConfig{})

	rec := env.do(t, http.MethodGet, "/api/v1/listing?category=furniture", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	res := decodeData[service.ListingResult](t, rec)
	assert.Equal(t, domain.CategoryPlants, res.Category.Slug)
	assert.Equal(t, source.MockProductsPerCategory, res.Total)
}
