package service

import (
	"context"
	"fmt"

	"github.com/vrikshavalli/storefront/internal/catalog"
	"github.com/vrikshavalli/storefront/internal/domain"
	"github.com/vrikshavalli/storefront/internal/source"
	"github.com/vrikshavalli/storefront/pkg/pagination"
)

// ListingResult is one page of a category listing after narrowing,
// filtering and sorting.
type ListingResult struct {
	Category          catalog.CategoryConfig          `json:"category"`
	SubCategories     []catalog.SubCategoryInfo       `json:"sub_categories,omitempty"`
	SubCategoryCounts map[domain.PlantSubCategory]int `json:"sub_category_counts,omitempty"`
	SubCategory       domain.PlantSubCategory         `json:"sub_category"`
	Size              domain.PlantSize                `json:"size"`
	Filters           domain.FilterState              `json:"filters"`
	Sort              domain.SortKey                  `json:"sort"`
	ActiveFilterCount int                             `json:"active_filter_count"`
	HasActiveFilters  bool                            `json:"has_active_filters"`
	Products          []domain.Product                `json:"products"`
	Total             int                             `json:"total"`
	Page              int                             `json:"page"`
	PerPage           int                             `json:"per_page"`
	TotalPages        int                             `json:"total_pages"`
}

// CatalogMeta describes the listing controls.
type CatalogMeta struct {
	Categories    []catalog.CategoryConfig  `json:"categories"`
	SubCategories []catalog.SubCategoryInfo `json:"sub_categories"`
	Sizes         []domain.PlantSize        `json:"sizes"`
	SortOptions   []domain.SortOption       `json:"sort_options"`
	PriceRange    domain.PriceBounds        `json:"price_range"`
	RatingFloors  []string                  `json:"rating_floors"`
	MOQOptions    []domain.MOQOption        `json:"moq_options"`
}

// ListingService composes a product source with the filter/sort engine.
type ListingService struct {
	src         source.Source
	maxProducts int
}

// NewListingService creates a listing service that reads at most
// maxProducts products per category from src.
func NewListingService(src source.Source, maxProducts int) *ListingService {
	return &ListingService{src: src, maxProducts: maxProducts}
}

// Catalog returns the static listing controls.
func (s *ListingService) Catalog() CatalogMeta {
	return CatalogMeta{
		Categories:    catalog.Categories(),
		SubCategories: catalog.PlantSubCategories(),
		Sizes:         catalog.PlantSizes(),
		SortOptions:   domain.SortOptions(),
		PriceRange:    domain.PriceRange,
		RatingFloors:  append([]string(nil), domain.RatingFloors...),
		MOQOptions:    domain.MOQOptions(),
	}
}

// List loads the listing's category and returns the requested page of the
// displayed products.
func (s *ListingService) List(ctx context.Context, l catalog.Listing, page pagination.Params) (*ListingResult, error) {
	l.Category = catalog.ValidCategory(string(l.Category))

	res, err := s.src.Query(ctx, source.Query{Category: l.Category, Page: 1, PerPage: s.maxProducts})
	if err != nil {
		return nil, fmt.Errorf("load %s products: %w", l.Category, err)
	}

	displayed := l.Displayed(res.Products)
	result := &ListingResult{
		Category:          catalog.CategoryInfo(l.Category),
		SubCategory:       l.SubCategory,
		Size:              l.Size,
		Filters:           l.Filters,
		Sort:              l.Sort,
		ActiveFilterCount: l.ActiveFilterCount(),
		HasActiveFilters:  catalog.HasActiveFilters(l.Filters),
		Products:          pagination.Slice(displayed, page),
		Total:             len(displayed),
		Page:              page.Page,
		PerPage:           page.PerPage,
	}
	if result.Products == nil {
		result.Products = []domain.Product{}
	}
	result.TotalPages = page.TotalPages(result.Total)
	if l.Category == domain.CategoryPlants {
		result.SubCategories = catalog.PlantSubCategories()
		result.SubCategoryCounts = subCategoryCounts(res.Products)
	}
	return result, nil
}

// subCategoryCounts counts the unfiltered products behind each chip.
func subCategoryCounts(products []domain.Product) map[domain.PlantSubCategory]int {
	counts := map[domain.PlantSubCategory]int{domain.SubCategoryAll: len(products)}
	for _, p := range products {
		if p.SubCategory != "" {
			counts[p.SubCategory]++
		}
	}
	return counts
}
