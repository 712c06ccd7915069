package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vrikshavalli/storefront/internal/domain"
)

var allSortKeys = []domain.SortKey{
	domain.SortRecommended,
	domain.SortPriceAsc,
	domain.SortPriceDesc,
	domain.SortNewest,
	domain.SortRating,
	domain.SortDiscount,
}

func TestSortProducts_DoesNotMutateInput(t *testing.T) {
	for seed := uint64(1); seed <= 10; seed++ {
		products := randomProducts(seed, 30)
		before := ids(products)

		for _, key := range allSortKeys {
			got := SortProducts(products, key)
			assert.Equal(t, before, ids(products), "input reordered by %s", key)
			assert.Len(t, got, len(products))
			assert.ElementsMatch(t, before, ids(got))
		}
	}
}

func TestSortProducts_Orders(t *testing.T) {
	products := []domain.Product{
		{ID: "a", Price: 300, Rating: ptr(4.0)},
		{ID: "b", Price: 100, IsNew: true},
		{ID: "c", Price: 200, Rating: ptr(5.0), OriginalPrice: ptr(400.0)},
		{ID: "d", Price: 100, Rating: ptr(4.0), IsNew: true, OriginalPrice: ptr(125.0)},
	}

	tests := []struct {
		key  domain.SortKey
		want []domain.ID
	}{
		{domain.SortRecommended, []domain.ID{"a", "b", "c", "d"}},
		{"unknown", []domain.ID{"a", "b", "c", "d"}},
		{domain.SortPriceAsc, []domain.ID{"b", "d", "c", "a"}},
		{domain.SortPriceDesc, []domain.ID{"a", "c", "b", "d"}},
		{domain.SortNewest, []domain.ID{"b", "d", "a", "c"}},
		{domain.SortRating, []domain.ID{"c", "a", "d", "b"}},
		{domain.SortDiscount, []domain.ID{"c", "d", "a", "b"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			assert.Equal(t, tt.want, ids(SortProducts(products, tt.key)))
		})
	}
}

func TestSortProducts_DiscountScenario(t *testing.T) {
	products := []domain.Product{
		{ID: "half-off", Price: 100, OriginalPrice: ptr(200.0)},
		{ID: "ten-off", Price: 90, OriginalPrice: ptr(100.0)},
	}
	assert.Equal(t, []domain.ID{"half-off", "ten-off"}, ids(SortProducts(products, domain.SortDiscount)))

	reversed := []domain.Product{products[1], products[0]}
	assert.Equal(t, []domain.ID{"half-off", "ten-off"}, ids(SortProducts(reversed, domain.SortDiscount)))
}

func TestSortProducts_NewestIsStable(t *testing.T) {
	for seed := uint64(1); seed <= 25; seed++ {
		products := randomProducts(seed, 50)
		got := SortProducts(products, domain.SortNewest)

		var wantNew, wantOld []domain.ID
		for _, p := range products {
			if p.IsNew {
				wantNew = append(wantNew, p.ID)
			} else {
				wantOld = append(wantOld, p.ID)
			}
		}
		require.Len(t, got, len(products))
		assert.Equal(t, append(wantNew, wantOld...), ids(got), "seed %d", seed)
	}
}

func TestSortProducts_TiesKeepInputOrder(t *testing.T) {
	products := []domain.Product{
		{ID: "x", Price: 100},
		{ID: "y", Price: 100},
		{ID: "z", Price: 100},
	}
	for _, key := range allSortKeys {
		assert.Equal(t, []domain.ID{"x", "y", "z"}, ids(SortProducts(products, key)), string(key))
	}
}

func TestSortProducts_Empty(t *testing.T) {
	assert.Empty(t, SortProducts(nil, domain.SortPriceAsc))
	assert.NotNil(t, SortProducts(nil, domain.SortRecommended))
}
