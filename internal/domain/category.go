package domain

import (
	"context"
	"time"
)

// CategorySlug is one of the storefront's top-level categories.
type CategorySlug string

const (
	CategoryPlants       CategorySlug = "plants"
	CategorySeeds        CategorySlug = "seeds"
	CategoryPotsPlanters CategorySlug = "pots-planters"
	CategoryPlantCare    CategorySlug = "plant-care"
	CategoryGifting      CategorySlug = "gifting"
)

// PlantSubCategory narrows the plants category. "all" means no narrowing.
type PlantSubCategory string

const (
	SubCategoryAll     PlantSubCategory = "all"
	SubCategoryIndoor  PlantSubCategory = "indoor"
	SubCategoryOutdoor PlantSubCategory = "outdoor"
	SubCategoryExotic  PlantSubCategory = "exotic"
)

// ParsePlantSubCategory returns the sub-category for raw, or "all" when raw
// is empty or unknown.
func ParsePlantSubCategory(raw string) PlantSubCategory {
	switch s := PlantSubCategory(raw); s {
	case SubCategoryIndoor, SubCategoryOutdoor, SubCategoryExotic:
		return s
	default:
		return SubCategoryAll
	}
}

// PlantSize is a pot size in inches. "all" means no narrowing.
type PlantSize string

const (
	SizeAll PlantSize = "all"
	Size4In PlantSize = `4"`
	Size6In PlantSize = `6"`
)

// ParsePlantSize accepts `4"`, `6"` and the bare numbers 4 and 6.
func ParsePlantSize(raw string) PlantSize {
	switch raw {
	case `4"`, "4":
		return Size4In
	case `6"`, "6":
		return Size6In
	default:
		return SizeAll
	}
}

// Category is a row of the categories table.
type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description *string   `json:"description,omitempty"`
	Image       *string   `json:"image,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CategoryRepository persists categories.
type CategoryRepository interface {
	// Upsert inserts the category or updates the row with the same slug.
	Upsert(ctx context.Context, category *Category) error
}
