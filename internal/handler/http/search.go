package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/vrikshavalli/storefront/internal/service"
	apperrors "github.com/vrikshavalli/storefront/pkg/errors"
	"github.com/vrikshavalli/storefront/pkg/httputil"
)

// SearchHandler serves search-as-you-type suggestions.
type SearchHandler struct {
	service *service.SearchService
	logger  *slog.Logger
}

// NewSearchHandler creates a new search HTTP handler.
func NewSearchHandler(svc *service.SearchService, logger *slog.Logger) *SearchHandler {
	return &SearchHandler{service: svc, logger: logger}
}

// Suggest handles GET /api/v1/search?q=&limit=&seq=
//
// seq is the client's request counter. A response for a request that a
// newer one has overtaken is {"data":{"stale":true,...}} with no products.
func (h *SearchHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	var seq uint64
	if raw := r.URL.Query().Get("seq"); raw != "" {
		n, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			httputil.WriteError(w, r, apperrors.InvalidInput("seq must be a non-negative integer"), h.logger)
			return
		}
		seq = n
	}

	res, err := h.service.Suggest(r.Context(), service.SearchRequest{
		SessionID: sessionFromContext(r.Context()),
		Query:     r.URL.Query().Get("q"),
		Seq:       seq,
		Limit:     httputil.QueryInt(r, "limit", service.DefaultSuggestionLimit),
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: res})
}
