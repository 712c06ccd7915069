package domain

// FilterState holds the generic listing filters. Bounds are strings as
// entered in the filter panel; an empty or non-numeric bound means no
// constraint.
type FilterState struct {
	PriceMin       string `json:"price_min"`
	PriceMax       string `json:"price_max"`
	RatingMin      string `json:"rating_min"`
	NewOnly        bool   `json:"new_only"`
	BestSellerOnly bool   `json:"best_seller_only"`
	HandPickedOnly bool   `json:"hand_picked_only"`
}

// SortKey selects the listing comparator.
type SortKey string

const (
	SortRecommended SortKey = "recommended"
	SortPriceAsc    SortKey = "price-asc"
	SortPriceDesc   SortKey = "price-desc"
	SortNewest      SortKey = "newest"
	SortRating      SortKey = "rating"
	SortDiscount    SortKey = "discount"
)

// SortOption pairs a sort key with its label.
type SortOption struct {
	Value SortKey `json:"value"`
	Label string  `json:"label"`
}

var sortOptions = []SortOption{
	{SortRecommended, "Recommended"},
	{SortPriceAsc, "Price: Low to High"},
	{SortPriceDesc, "Price: High to Low"},
	{SortNewest, "Newest"},
	{SortRating, "Rating"},
	{SortDiscount, "Discount"},
}

// SortOptions returns the six sort options in display order.
func SortOptions() []SortOption {
	out := make([]SortOption, len(sortOptions))
	copy(out, sortOptions)
	return out
}

// ParseSortKey maps raw to a known key. Unknown or empty input yields
// SortRecommended and false.
func ParseSortKey(raw string) (SortKey, bool) {
	for _, o := range sortOptions {
		if string(o.Value) == raw {
			return o.Value, true
		}
	}
	return SortRecommended, false
}

// Label returns the display label, defaulting to "Recommended".
func (k SortKey) Label() string {
	for _, o := range sortOptions {
		if o.Value == k {
			return o.Label
		}
	}
	return "Recommended"
}

// PriceBounds describes the price slider domain.
type PriceBounds struct {
	Min  int `json:"min"`
	Max  int `json:"max"`
	Step int `json:"step"`
}

// PriceRange is the fixed price filter domain.
var PriceRange = PriceBounds{Min: 0, Max: 5000, Step: 100}

// RatingFloors are the rating filter choices besides "unset".
var RatingFloors = []string{"3", "4"}
