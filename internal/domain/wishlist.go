package domain

// WishlistItem is a snapshot of a product's display fields, keyed by ID.
type WishlistItem struct {
	ID            ID       `json:"id"`
	Name          string   `json:"name"`
	Price         float64  `json:"price"`
	OriginalPrice *float64 `json:"original_price,omitempty"`
	Image         string   `json:"image"`
	Rating        *float64 `json:"rating,omitempty"`
	ReviewCount   *int     `json:"review_count,omitempty"`
	Category      string   `json:"category,omitempty"`
	IsNew         bool     `json:"is_new,omitempty"`
	IsBestSeller  bool     `json:"is_best_seller,omitempty"`
	IsHandPicked  bool     `json:"is_hand_picked,omitempty"`
}

// WishlistItemInput is the body accepted when adding or toggling an entry.
type WishlistItemInput struct {
	ID            ID       `json:"id" validate:"required"`
	Name          string   `json:"name" validate:"required,notblank,max=255"`
	Price         float64  `json:"price" validate:"gte=0"`
	OriginalPrice *float64 `json:"original_price" validate:"omitempty,gte=0"`
	Image         string   `json:"image"`
	Rating        *float64 `json:"rating" validate:"omitempty,gte=0,lte=5"`
	ReviewCount   *int     `json:"review_count" validate:"omitempty,gte=0"`
	Category      string   `json:"category"`
	IsNew         bool     `json:"is_new"`
	IsBestSeller  bool     `json:"is_best_seller"`
	IsHandPicked  bool     `json:"is_hand_picked"`
}

// Item converts the input into a wishlist entry.
func (in WishlistItemInput) Item() WishlistItem {
	return WishlistItem{
		ID:            in.ID,
		Name:          in.Name,
		Price:         in.Price,
		OriginalPrice: in.OriginalPrice,
		Image:         in.Image,
		Rating:        in.Rating,
		ReviewCount:   in.ReviewCount,
		Category:      in.Category,
		IsNew:         in.IsNew,
		IsBestSeller:  in.IsBestSeller,
		IsHandPicked:  in.IsHandPicked,
	}
}
