package catalog

import (
	"math"
	"strconv"
	"strings"

	"github.com/vrikshavalli/storefront/internal/domain"
)

// FilterProducts returns the products that satisfy every active criterion
// in f, in input order.
func FilterProducts(products []domain.Product, f domain.FilterState) []domain.Product {
	priceMin, hasMin := threshold(f.PriceMin)
	priceMax, hasMax := threshold(f.PriceMax)
	ratingMin, hasRating := threshold(f.RatingMin)

	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if hasMin && p.Price < priceMin {
			continue
		}
		if hasMax && p.Price > priceMax {
			continue
		}
		if hasRating && p.RatingOrZero() < ratingMin {
			continue
		}
		if f.NewOnly && !p.IsNew {
			continue
		}
		if f.BestSellerOnly && !p.IsBestSeller {
			continue
		}
		if f.HandPickedOnly && !p.IsHandPicked {
			continue
		}
		out = append(out, p)
	}
	return out
}

// threshold parses a filter bound. Empty or non-numeric input is no bound.
func threshold(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// HasActiveFilters reports whether any filter field differs from its default.
func HasActiveFilters(f domain.FilterState) bool {
	return ActiveFilterCount(f) > 0
}

// ActiveFilterCount counts the filter fields set to a non-default value.
func ActiveFilterCount(f domain.FilterState) int {
	n := 0
	for _, s := range []string{f.PriceMin, f.PriceMax, f.RatingMin} {
		if s != "" {
			n++
		}
	}
	for _, b := range []bool{f.NewOnly, f.BestSellerOnly, f.HandPickedOnly} {
		if b {
			n++
		}
	}
	return n
}

// ClearFilters returns the default filter state.
func ClearFilters() domain.FilterState {
	return domain.FilterState{}
}
