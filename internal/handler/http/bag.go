package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vrikshavalli/storefront/internal/bag"
	"github.com/vrikshavalli/storefront/internal/domain"
	"github.com/vrikshavalli/storefront/internal/service"
	"github.com/vrikshavalli/storefront/pkg/httputil"
	"github.com/vrikshavalli/storefront/pkg/validator"
)

// BagHandler handles HTTP requests for bag endpoints.
type BagHandler struct {
	service *service.BagService
	logger  *slog.Logger
}

// NewBagHandler creates a new bag HTTP handler.
func NewBagHandler(svc *service.BagService, logger *slog.Logger) *BagHandler {
	return &BagHandler{service: svc, logger: logger}
}

// Get handles GET /api/v1/bag
func (h *BagHandler) Get(w http.ResponseWriter, r *http.Request) {
	b, err := h.service.GetBag(r.Context(), sessionFromContext(r.Context()))
	h.respond(w, r, b, err)
}

// AddItem handles POST /api/v1/bag/items
func (h *BagHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req domain.AddBagItemInput
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	b, err := h.service.AddItem(r.Context(), sessionFromContext(r.Context()), req)
	h.respond(w, r, b, err)
}

// UpdateQty handles PUT /api/v1/bag/items/{id}
func (h *BagHandler) UpdateQty(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateBagQtyInput
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	b, err := h.service.UpdateQty(r.Context(), sessionFromContext(r.Context()), chi.URLParam(r, "id"), *req.Quantity)
	h.respond(w, r, b, err)
}

// RemoveItem handles DELETE /api/v1/bag/items/{id}
func (h *BagHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	b, err := h.service.RemoveItem(r.Context(), sessionFromContext(r.Context()), chi.URLParam(r, "id"))
	h.respond(w, r, b, err)
}

// Clear handles DELETE /api/v1/bag
func (h *BagHandler) Clear(w http.ResponseWriter, r *http.Request) {
	b, err := h.service.ClearBag(r.Context(), sessionFromContext(r.Context()))
	h.respond(w, r, b, err)
}

// SetVisibility handles PUT /api/v1/bag/visibility
func (h *BagHandler) SetVisibility(w http.ResponseWriter, r *http.Request) {
	var req domain.BagVisibilityInput
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	b, err := h.service.SetVisibility(r.Context(), sessionFromContext(r.Context()), *req.Open)
	h.respond(w, r, b, err)
}

func (h *BagHandler) respond(w http.ResponseWriter, r *http.Request, b *bag.Bag, err error) {
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: b.Summarize()})
}
