package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vrikshavalli/storefront/internal/domain"
	"github.com/vrikshavalli/storefront/internal/service"
	"github.com/vrikshavalli/storefront/pkg/httputil"
	"github.com/vrikshavalli/storefront/pkg/validator"
)

// WishlistHandler handles HTTP requests for wishlist endpoints.
type WishlistHandler struct {
	service *service.WishlistService
	logger  *slog.Logger
}

// NewWishlistHandler creates a new wishlist HTTP handler.
func NewWishlistHandler(svc *service.WishlistService, logger *slog.Logger) *WishlistHandler {
	return &WishlistHandler{service: svc, logger: logger}
}

type wishlistResponse struct {
	Items []domain.WishlistItem `json:"items"`
	Count int                   `json:"count"`
}

type wishlistHasResponse struct {
	ID      domain.ID `json:"id"`
	Present bool      `json:"present"`
}

type wishlistToggleResponse struct {
	wishlistResponse
	ID      domain.ID `json:"id"`
	Present bool      `json:"present"`
}

func newWishlistResponse(items []domain.WishlistItem) wishlistResponse {
	if items == nil {
		items = []domain.WishlistItem{}
	}
	return wishlistResponse{Items: items, Count: len(items)}
}

// List handles GET /api/v1/wishlist
func (h *WishlistHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.Items(r.Context(), sessionFromContext(r.Context()))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: newWishlistResponse(items)})
}

// Has handles GET /api/v1/wishlist/{id}
func (h *WishlistHandler) Has(w http.ResponseWriter, r *http.Request) {
	id := domain.ID(chi.URLParam(r, "id"))
	present, err := h.service.Has(r.Context(), sessionFromContext(r.Context()), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: wishlistHasResponse{ID: id, Present: present}})
}

// Add handles POST /api/v1/wishlist
func (h *WishlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req domain.WishlistItemInput
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	items, err := h.service.Add(r.Context(), sessionFromContext(r.Context()), req.Item())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: newWishlistResponse(items)})
}

// Toggle handles POST /api/v1/wishlist/toggle
func (h *WishlistHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	var req domain.WishlistItemInput
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	present, items, err := h.service.Toggle(r.Context(), sessionFromContext(r.Context()), req.Item())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: wishlistToggleResponse{
		wishlistResponse: newWishlistResponse(items),
		ID:               req.ID,
		Present:          present,
	}})
}

// Remove handles DELETE /api/v1/wishlist/{id}
func (h *WishlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.Remove(r.Context(), sessionFromContext(r.Context()), domain.ID(chi.URLParam(r, "id")))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: newWishlistResponse(items)})
}
