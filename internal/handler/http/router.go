package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vrikshavalli/storefront/internal/service"
	"github.com/vrikshavalli/storefront/pkg/health"
	"github.com/vrikshavalli/storefront/pkg/middleware"
)

const serviceName = "storefront"

// AdminRole is the token role allowed to create products.
const AdminRole = "admin"

// Services are the handlers' dependencies.
type Services struct {
	Products  *service.ProductService
	Listing   *service.ListingService
	Wishlist  *service.WishlistService
	Bag       *service.BagService
	Search    *service.SearchService
	Enquiries *service.EnquiryService
}

// RouterConfig configures NewRouter. Nil limiters and a nil AdminToken
// disable the corresponding checks.
type RouterConfig struct {
	CORSOrigins        []string
	AdminToken         middleware.TokenValidator
	EnquiryLimiter     *middleware.RateLimiter
	SearchLimiter      *middleware.RateLimiter
	ListingCacheMaxAge int
	RequestTimeout     time.Duration
}

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(svc Services, healthHandler *health.Handler, logger *slog.Logger, cfg RouterConfig) http.Handler {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 30 * time.Second
	}

	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(cfg.RequestTimeout))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics(serviceName))
	r.Use(middleware.Tracing(serviceName))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS(middleware.DefaultCORSConfig(cfg.CORSOrigins)))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Handle("/metrics", promhttp.Handler())

	products := NewProductHandler(svc.Products, logger)
	listing := NewListingHandler(svc.Listing, logger)
	wishlist := NewWishlistHandler(svc.Wishlist, logger)
	bagHandler := NewBagHandler(svc.Bag, logger)
	search := NewSearchHandler(svc.Search, logger)
	enquiries := NewEnquiryHandler(svc.Enquiries, logger)

	// Flat-envelope product endpoints.
	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", products.List)
		r.Group(func(r chi.Router) {
			if cfg.AdminToken != nil {
				r.Use(middleware.Auth(cfg.AdminToken))
				r.Use(middleware.RequireRole(AdminRole))
			}
			r.Post("/", products.Create)
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Group(func(r chi.Router) {
			r.Use(middleware.CacheControl(cfg.ListingCacheMaxAge))
			r.Get("/categories", listing.Categories)
			r.Get("/listing", listing.Listing)
		})

		r.Route("/wishlist", func(r chi.Router) {
			r.Use(middleware.NoStore)
			r.Use(SessionFromHeader)

			r.Get("/", wishlist.List)
			r.Post("/", wishlist.Add)
			r.Post("/toggle", wishlist.Toggle)
			r.Get("/{id}", wishlist.Has)
			r.Delete("/{id}", wishlist.Remove)
		})

		r.Route("/bag", func(r chi.Router) {
			r.Use(middleware.NoStore)
			r.Use(SessionFromHeader)

			r.Get("/", bagHandler.Get)
			r.Delete("/", bagHandler.Clear)
			r.Put("/visibility", bagHandler.SetVisibility)

			r.Post("/items", bagHandler.AddItem)
			r.Put("/items/{id}", bagHandler.UpdateQty)
			r.Delete("/items/{id}", bagHandler.RemoveItem)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.NoStore)
			r.Use(SessionFromHeader)
			if cfg.SearchLimiter != nil {
				r.Use(cfg.SearchLimiter.Middleware(logger))
			}
			r.Get("/search", search.Suggest)
		})

		r.Route("/enquiries", func(r chi.Router) {
			r.With(middleware.CacheControl(cfg.ListingCacheMaxAge)).Get("/moq-options", enquiries.MOQOptions)

			r.Group(func(r chi.Router) {
				if cfg.EnquiryLimiter != nil {
					r.Use(cfg.EnquiryLimiter.Middleware(logger))
				}
				r.Post("/gift", enquiries.SubmitGift)
				r.Post("/contact", enquiries.SubmitContact)
			})
		})
	})

	return r
}
