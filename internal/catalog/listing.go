package catalog

import "github.com/vrikshavalli/storefront/internal/domain"

// Listing is the state of one category listing view. Sub-category and size
// are tracked apart from the generic filters: ClearFilters leaves them
// alone, SetCategory resets them.
type Listing struct {
	Category    domain.CategorySlug
	SubCategory domain.PlantSubCategory
	Size        domain.PlantSize
	Filters     domain.FilterState
	Sort        domain.SortKey
}

// NewListing starts a listing for category with no narrowing, no filters
// and the recommended order.
func NewListing(category string) Listing {
	return Listing{
		Category:    ValidCategory(category),
		SubCategory: domain.SubCategoryAll,
		Size:        domain.SizeAll,
		Sort:        domain.SortRecommended,
	}
}

// SetCategory switches category and resets sub-category and size.
func (l *Listing) SetCategory(category string) {
	l.Category = ValidCategory(category)
	l.SubCategory = domain.SubCategoryAll
	l.Size = domain.SizeAll
}

// ClearFilters resets the generic filters only.
func (l *Listing) ClearFilters() {
	l.Filters = ClearFilters()
}

// Narrow applies the plants-only sub-category and size selection. Other
// categories pass through unchanged.
func (l Listing) Narrow(products []domain.Product) []domain.Product {
	if l.Category != domain.CategoryPlants {
		return products
	}
	subCat := l.SubCategory
	if subCat == "" {
		subCat = domain.SubCategoryAll
	}
	size := l.Size
	if size == "" {
		size = domain.SizeAll
	}
	if subCat == domain.SubCategoryAll && size == domain.SizeAll {
		return products
	}

	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if subCat != domain.SubCategoryAll && p.SubCategory != subCat {
			continue
		}
		if size != domain.SizeAll && p.Size != size {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Displayed runs category narrowing, then the generic filters, then the sort.
func (l Listing) Displayed(products []domain.Product) []domain.Product {
	return SortProducts(FilterProducts(l.Narrow(products), l.Filters), l.Sort)
}

// ActiveFilterCount counts the active generic filters.
func (l Listing) ActiveFilterCount() int {
	return ActiveFilterCount(l.Filters)
}
