package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/vrikshavalli/storefront/internal/domain"
	"github.com/vrikshavalli/storefront/internal/service"
	"github.com/vrikshavalli/storefront/pkg/httputil"
	"github.com/vrikshavalli/storefront/pkg/logger"
)

const (
	msgFetchProductsFailed = "Failed to fetch products"
	msgCreateProductFailed = "Failed to create product"

	maxProductBodyBytes = 1 << 20
)

// ProductHandler serves /api/products. Failures of any kind answer 500 with
// an opaque message in the flat legacy envelope.
type ProductHandler struct {
	service *service.ProductService
	logger  *slog.Logger
}

// NewProductHandler creates a new product HTTP handler.
func NewProductHandler(svc *service.ProductService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{service: svc, logger: logger}
}

// List handles GET /api/products?search=&category=&limit=&page=
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit := httputil.QueryInt(r, "limit", service.DefaultProductLimit)
	page := max(httputil.QueryInt(r, "page", 1), 1)
	if limit <= 0 {
		limit = service.DefaultProductLimit
	}

	products, _, err := h.service.ListProducts(r.Context(), service.ProductQuery{
		Search:   strings.TrimSpace(q.Get("search")),
		Category: strings.TrimSpace(q.Get("category")),
		Limit:    limit,
		Offset:   (page - 1) * limit,
	})
	if err != nil {
		h.fail(r, err, msgFetchProductsFailed)
		httputil.WriteLegacyFailure(w, msgFetchProductsFailed)
		return
	}

	httputil.WriteLegacyList(w, products)
}

// Create handles POST /api/products
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input domain.NewProductInput
	if err := json.NewDecoder(io.LimitReader(r.Body, maxProductBodyBytes)).Decode(&input); err != nil {
		h.fail(r, err, msgCreateProductFailed)
		httputil.WriteLegacyFailure(w, msgCreateProductFailed)
		return
	}

	product, err := h.service.CreateProduct(r.Context(), input)
	if err != nil {
		h.fail(r, err, msgCreateProductFailed)
		httputil.WriteLegacyFailure(w, msgCreateProductFailed)
		return
	}

	httputil.WriteLegacyItem(w, http.StatusOK, product)
}

func (h *ProductHandler) fail(r *http.Request, err error, msg string) {
	l := logger.FromContext(r.Context())
	if l == slog.Default() {
		l = h.logger
	}
	l.ErrorContext(r.Context(), msg,
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("error", err.Error()),
	)
}
