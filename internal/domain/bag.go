package domain

// BagItem is a line in the shopping bag.
type BagItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Image    string  `json:"image"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Variant  string  `json:"variant,omitempty"`
}

// AddBagItemInput is a bag line without quantity; adding it increments the
// existing line or inserts one with quantity 1.
type AddBagItemInput struct {
	ID      string  `json:"id" validate:"required,notblank,max=128"`
	Name    string  `json:"name" validate:"required,notblank,max=255"`
	Image   string  `json:"image" validate:"max=2048"`
	Price   float64 `json:"price" validate:"gte=0"`
	Variant string  `json:"variant" validate:"max=128"`
}

// UpdateBagQtyInput sets a line's quantity. Zero or negative removes it.
type UpdateBagQtyInput struct {
	Quantity *int `json:"quantity" validate:"required"`
}

// BagVisibilityInput opens or closes the bag slide-over.
type BagVisibilityInput struct {
	Open *bool `json:"open" validate:"required"`
}
