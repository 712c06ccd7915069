package catalog

import "github.com/vrikshavalli/storefront/internal/domain"

// CategoryConfig is the presentation data for a top-level category.
type CategoryConfig struct {
	Slug        domain.CategorySlug `json:"slug"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Image       string              `json:"image"`
}

// DefaultCategory is used when a requested slug is absent or unknown.
const DefaultCategory = domain.CategoryPlants

var categories = []CategoryConfig{
	{domain.CategoryPlants, "Plants", "Discover our curated collection of healthy, vibrant plants", "/category-plant.webp"},
	{domain.CategorySeeds, "Seeds", "Premium quality seeds for your garden", "/category-seeds.avif"},
	{domain.CategoryPotsPlanters, "Pots & Planters", "Stylish pots and planters for every space", "/category-ceramics.webp"},
	{domain.CategoryPlantCare, "Plant Care", "Everything you need to keep your plants thriving", "/category-care.webp"},
	{domain.CategoryGifting, "Gifting", "Perfect plant gifts for your loved ones", "/category-plant.webp"},
}

// Categories returns every category in navigation order.
func Categories() []CategoryConfig {
	out := make([]CategoryConfig, len(categories))
	copy(out, categories)
	return out
}

// ValidCategory returns raw as a category slug, or DefaultCategory.
func ValidCategory(raw string) domain.CategorySlug {
	for _, c := range categories {
		if string(c.Slug) == raw {
			return c.Slug
		}
	}
	return DefaultCategory
}

// CategoryInfo returns the config for slug, falling back to DefaultCategory.
func CategoryInfo(slug domain.CategorySlug) CategoryConfig {
	valid := ValidCategory(string(slug))
	for _, c := range categories {
		if c.Slug == valid {
			return c
		}
	}
	return categories[0]
}

// SubCategoryInfo describes a plant sub-category chip.
type SubCategoryInfo struct {
	Value       domain.PlantSubCategory `json:"value"`
	Label       string                  `json:"label"`
	Description string                  `json:"description"`
}

// PlantSubCategories returns the chips shown on the plants listing, "all"
// first.
func PlantSubCategories() []SubCategoryInfo {
	return []SubCategoryInfo{
		{domain.SubCategoryAll, "All Plants", "Browse our full collection"},
		{domain.SubCategoryIndoor, "Indoor Plants", "Perfect for homes & offices"},
		{domain.SubCategoryOutdoor, "Outdoor Plants", "Thrive in your garden & balcony"},
		{domain.SubCategoryExotic, "Exotic Plants", "Rare & statement varieties"},
	}
}

// PlantSizes returns the size choices, "all" first.
func PlantSizes() []domain.PlantSize {
	return []domain.PlantSize{domain.SizeAll, domain.Size4In, domain.Size6In}
}
