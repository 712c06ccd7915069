package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/vrikshavalli/storefront/internal/domain"
	apperrors "github.com/vrikshavalli/storefront/pkg/errors"
	"github.com/vrikshavalli/storefront/pkg/slug"
	"github.com/vrikshavalli/storefront/pkg/validator"
)

// DefaultProductLimit is the page size of GET /api/products when no limit
// is given.
const DefaultProductLimit = 20

// ProductQuery holds the parameters of a product table read.
type ProductQuery struct {
	Search   string
	Category string
	Limit    int
	Offset   int
}

// ProductService serves the products table.
type ProductService struct {
	repo     domain.ProductRepository
	logger   *slog.Logger
	maxLimit int
}

// NewProductService creates a new product service. Limits above maxLimit
// are clamped.
func NewProductService(repo domain.ProductRepository, logger *slog.Logger, maxLimit int) *ProductService {
	return &ProductService{repo: repo, logger: logger, maxLimit: maxLimit}
}

// ListProducts returns rows matching q with the total match count.
func (s *ProductService) ListProducts(ctx context.Context, q ProductQuery) ([]domain.CatalogProduct, int, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = DefaultProductLimit
	}
	if limit > s.maxLimit {
		limit = s.maxLimit
	}

	products, total, err := s.repo.List(ctx, domain.ProductFilter{
		Search:       q.Search,
		CategorySlug: q.Category,
		Limit:        limit,
		Offset:       max(q.Offset, 0),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	return products, total, nil
}

// CreateProduct inserts a product. A slug is derived from the name when
// none is given; if the derived slug is taken a short random suffix is
// appended once.
func (s *ProductService) CreateProduct(ctx context.Context, input domain.NewProductInput) (*domain.CatalogProduct, error) {
	if err := validator.Validate(input); err != nil {
		return nil, err
	}

	generated := strings.TrimSpace(input.Slug) == ""
	if generated {
		input.Slug = slug.Generate(input.Name)
	} else {
		input.Slug = slug.Generate(input.Slug)
	}
	if input.Slug == "" {
		return nil, apperrors.InvalidInput("name must contain letters or digits")
	}

	product, err := s.repo.Create(ctx, input)
	if err != nil && generated && errors.Is(err, apperrors.ErrAlreadyExists) {
		input.Slug = input.Slug + "-" + uuid.New().String()[:8]
		product, err = s.repo.Create(ctx, input)
	}
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	s.logger.InfoContext(ctx, "product created",
		slog.String("product_id", product.ID),
		slog.String("slug", product.Slug),
	)
	return product, nil
}
