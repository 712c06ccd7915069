package domain

import (
	"context"
	"time"
)

// Product is the display-side view of a catalog item, as rendered on
// product cards and consumed by the filter/sort engine.
type Product struct {
	ID            ID               `json:"id"`
	Name          string           `json:"name"`
	Price         float64          `json:"price"`
	OriginalPrice *float64         `json:"original_price,omitempty"`
	Image         string           `json:"image"`
	Rating        *float64         `json:"rating,omitempty"`
	ReviewCount   *int             `json:"review_count,omitempty"`
	Category      string           `json:"category,omitempty"`
	IsNew         bool             `json:"is_new"`
	IsBestSeller  bool             `json:"is_best_seller"`
	IsHandPicked  bool             `json:"is_hand_picked"`
	SubCategory   PlantSubCategory `json:"sub_category,omitempty"`
	Size          PlantSize        `json:"size,omitempty"`
}

// RatingOrZero treats an absent rating as 0.
func (p Product) RatingOrZero() float64 {
	if p.Rating == nil {
		return 0
	}
	return *p.Rating
}

// DiscountFraction returns (original - price) / original, or 0 when there is
// no original price.
func (p Product) DiscountFraction() float64 {
	if p.OriginalPrice == nil || *p.OriginalPrice == 0 {
		return 0
	}
	return (*p.OriginalPrice - p.Price) / *p.OriginalPrice
}

// WishlistSnapshot copies the display fields kept in a wishlist entry.
func (p Product) WishlistSnapshot() WishlistItem {
	return WishlistItem{
		ID:            p.ID,
		Name:          p.Name,
		Price:         p.Price,
		OriginalPrice: p.OriginalPrice,
		Image:         p.Image,
		Rating:        p.Rating,
		ReviewCount:   p.ReviewCount,
		Category:      p.Category,
		IsNew:         p.IsNew,
		IsBestSeller:  p.IsBestSeller,
		IsHandPicked:  p.IsHandPicked,
	}
}

// CatalogProduct is a row of the products table.
type CatalogProduct struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Slug          string    `json:"slug"`
	Description   *string   `json:"description,omitempty"`
	Price         float64   `json:"price"`
	OriginalPrice *float64  `json:"original_price,omitempty"`
	Image         string    `json:"image"`
	Images        []string  `json:"images,omitempty"`
	CategoryID    *string   `json:"category_id,omitempty"`
	CategoryName  *string   `json:"category,omitempty"`
	Rating        float64   `json:"rating"`
	ReviewCount   int       `json:"review_count"`
	Stock         int       `json:"stock"`
	IsNew         bool      `json:"is_new"`
	IsBestSeller  bool      `json:"is_best_seller"`
	IsHandPicked  bool      `json:"is_hand_picked"`
	IsActive      bool      `json:"is_active"`
	SubCategory   *string   `json:"sub_category,omitempty"`
	Size          *string   `json:"size,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Display converts a row into the display model.
func (c CatalogProduct) Display() Product {
	rating := c.Rating
	reviews := c.ReviewCount
	p := Product{
		ID:            ID(c.ID),
		Name:          c.Name,
		Price:         c.Price,
		OriginalPrice: c.OriginalPrice,
		Image:         c.Image,
		Rating:        &rating,
		ReviewCount:   &reviews,
		IsNew:         c.IsNew,
		IsBestSeller:  c.IsBestSeller,
		IsHandPicked:  c.IsHandPicked,
	}
	if c.CategoryName != nil {
		p.Category = *c.CategoryName
	}
	if c.SubCategory != nil {
		p.SubCategory = PlantSubCategory(*c.SubCategory)
	}
	if c.Size != nil {
		p.Size = PlantSize(*c.Size)
	}
	return p
}

// NewProductInput is the body accepted by the product creation endpoint.
// Zero values fall back to the column defaults.
type NewProductInput struct {
	Name          string   `json:"name" validate:"required,notblank,max=255"`
	Slug          string   `json:"slug" validate:"omitempty,max=255"`
	Description   *string  `json:"description"`
	Price         float64  `json:"price" validate:"gte=0"`
	OriginalPrice *float64 `json:"original_price" validate:"omitempty,gte=0"`
	Image         string   `json:"image" validate:"required"`
	Images        []string `json:"images"`
	CategoryID    *string  `json:"category_id" validate:"omitempty,uuid"`
	Rating        float64  `json:"rating" validate:"gte=0,lte=5"`
	ReviewCount   int      `json:"review_count" validate:"gte=0"`
	Stock         int      `json:"stock" validate:"gte=0"`
	IsNew         bool     `json:"is_new"`
	IsBestSeller  bool     `json:"is_best_seller"`
	IsHandPicked  bool     `json:"is_hand_picked"`
	IsActive      *bool    `json:"is_active"`
	SubCategory   *string  `json:"sub_category" validate:"omitempty,oneof=indoor outdoor exotic"`
	Size          *string  `json:"size"`
}

// ProductFilter narrows a products table read.
type ProductFilter struct {
	Search       string
	CategorySlug string
	ActiveOnly   bool
	Limit        int
	Offset       int
}

// ProductRepository persists catalog products.
type ProductRepository interface {
	// List returns matching rows and the total count ignoring Limit/Offset.
	List(ctx context.Context, filter ProductFilter) ([]CatalogProduct, int, error)

	// Create inserts a row and returns it as stored.
	Create(ctx context.Context, input NewProductInput) (*CatalogProduct, error)
}
