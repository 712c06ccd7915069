package catalog

import (
	"cmp"
	"slices"

	"github.com/vrikshavalli/storefront/internal/domain"
)

// SortProducts returns a reordered copy of products. Ties keep their input
// order for every key. Unknown keys and SortRecommended return the input
// order unchanged.
func SortProducts(products []domain.Product, key domain.SortKey) []domain.Product {
	out := slices.Clone(products)
	if out == nil {
		out = []domain.Product{}
	}

	var less func(a, b domain.Product) int
	switch key {
	case domain.SortPriceAsc:
		less = func(a, b domain.Product) int { return cmp.Compare(a.Price, b.Price) }
	case domain.SortPriceDesc:
		less = func(a, b domain.Product) int { return cmp.Compare(b.Price, a.Price) }
	case domain.SortNewest:
		less = func(a, b domain.Product) int { return cmp.Compare(boolRank(b.IsNew), boolRank(a.IsNew)) }
	case domain.SortRating:
		less = func(a, b domain.Product) int { return cmp.Compare(b.RatingOrZero(), a.RatingOrZero()) }
	case domain.SortDiscount:
		less = func(a, b domain.Product) int { return cmp.Compare(b.DiscountFraction(), a.DiscountFraction()) }
	default:
		return out
	}

	slices.SortStableFunc(out, less)
	return out
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}
