package http

import (
	"log/slog"
	"net/http"

	"github.com/vrikshavalli/storefront/internal/catalog"
	"github.com/vrikshavalli/storefront/internal/domain"
	"github.com/vrikshavalli/storefront/internal/service"
	"github.com/vrikshavalli/storefront/pkg/httputil"
	"github.com/vrikshavalli/storefront/pkg/pagination"
)

// ListingHandler serves the category listing and its controls.
type ListingHandler struct {
	service *service.ListingService
	logger  *slog.Logger
}

// NewListingHandler creates a new listing HTTP handler.
func NewListingHandler(svc *service.ListingService, logger *slog.Logger) *ListingHandler {
	return &ListingHandler{service: svc, logger: logger}
}

// Categories handles GET /api/v1/categories
func (h *ListingHandler) Categories(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.service.Catalog()})
}

// Listing handles GET /api/v1/listing
func (h *ListingHandler) Listing(w http.ResponseWriter, r *http.Request) {
	res, err := h.service.List(r.Context(), listingFromQuery(r), pagination.FromRequest(r))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: res})
}

// listingFromQuery builds the listing state from query parameters. Unknown
// category, sub-category, size and sort values fall back to their defaults.
func listingFromQuery(r *http.Request) catalog.Listing {
	q := r.URL.Query()

	l := catalog.NewListing(q.Get("category"))
	l.SubCategory = domain.ParsePlantSubCategory(q.Get("sub_category"))
	l.Size = domain.ParsePlantSize(q.Get("size"))
	l.Sort, _ = domain.ParseSortKey(q.Get("sort"))
	l.Filters = domain.FilterState{
		PriceMin:       q.Get("price_min"),
		PriceMax:       q.Get("price_max"),
		RatingMin:      q.Get("rating_min"),
		NewOnly:        httputil.QueryBool(r, "new"),
		BestSellerOnly: httputil.QueryBool(r, "best_seller"),
		HandPickedOnly: httputil.QueryBool(r, "hand_picked"),
	}
	return l
}
