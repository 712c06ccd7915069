// Package seed loads the category table and generated demo products into
// the storefront database.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/vrikshavalli/storefront/internal/catalog"
	"github.com/vrikshavalli/storefront/internal/domain"
	"github.com/vrikshavalli/storefront/internal/source"
	apperrors "github.com/vrikshavalli/storefront/pkg/errors"
)

// DefaultStock is the stock level given to generated products.
const DefaultStock = 25

// Options control a seeding run.
type Options struct {
	Seed           uint64
	Categories     []domain.CategorySlug // empty means all
	CategoriesOnly bool
	DryRun         bool
}

// Result counts what a run did.
type Result struct {
	Categories int
	Inserted   int
	Skipped    int
}

// Seeder upserts categories and inserts mock-generated products. Products
// whose slug already exists are skipped, so runs are repeatable.
type Seeder struct {
	categories domain.CategoryRepository
	products   domain.ProductRepository
	logger     *slog.Logger
}

// New creates a seeder.
func New(categories domain.CategoryRepository, products domain.ProductRepository, logger *slog.Logger) *Seeder {
	return &Seeder{categories: categories, products: products, logger: logger}
}

// Run seeds the selected categories.
func (s *Seeder) Run(ctx context.Context, opts Options) (*Result, error) {
	slugs := opts.Categories
	if len(slugs) == 0 {
		for _, c := range catalog.Categories() {
			slugs = append(slugs, c.Slug)
		}
	}

	res := &Result{}
	for _, slug := range slugs {
		if catalog.ValidCategory(string(slug)) != slug {
			return res, apperrors.InvalidInput(fmt.Sprintf("unknown category %q", slug))
		}

		info := catalog.CategoryInfo(slug)
		cat := &domain.Category{
			Name:        info.Title,
			Slug:        string(info.Slug),
			Description: &info.Description,
			Image:       &info.Image,
		}
		if opts.DryRun {
			s.logger.Info("dry run: would upsert category", slog.String("slug", cat.Slug))
		} else if err := s.categories.Upsert(ctx, cat); err != nil {
			return res, err
		}
		res.Categories++

		if opts.CategoriesOnly {
			continue
		}

		for _, p := range source.GenerateMockProducts(slug, opts.Seed) {
			input := NewProductInput(p, cat.ID)
			if opts.DryRun {
				s.logger.Debug("dry run: would insert product", slog.String("slug", input.Slug))
				res.Inserted++
				continue
			}

			if _, err := s.products.Create(ctx, input); err != nil {
				if errors.Is(err, apperrors.ErrAlreadyExists) {
					res.Skipped++
					continue
				}
				return res, fmt.Errorf("seed product %s: %w", input.Slug, err)
			}
			res.Inserted++
		}

		s.logger.Info("category seeded",
			slog.String("slug", cat.Slug),
			slog.Int("inserted", res.Inserted),
			slog.Int("skipped", res.Skipped),
		)
	}
	return res, nil
}

// NewProductInput converts a generated product into a products row. The
// generated id doubles as the slug so reruns collide instead of duplicating.
func NewProductInput(p domain.Product, categoryID string) domain.NewProductInput {
	in := domain.NewProductInput{
		Name:          p.Name,
		Slug:          string(p.ID),
		Price:         p.Price,
		OriginalPrice: p.OriginalPrice,
		Image:         p.Image,
		Rating:        p.RatingOrZero(),
		Stock:         DefaultStock,
		IsNew:         p.IsNew,
		IsBestSeller:  p.IsBestSeller,
		IsHandPicked:  p.IsHandPicked,
	}
	if categoryID != "" {
		in.CategoryID = &categoryID
	}
	if p.ReviewCount != nil {
		in.ReviewCount = *p.ReviewCount
	}
	if p.SubCategory != "" {
		sub := string(p.SubCategory)
		in.SubCategory = &sub
	}
	if p.Size != "" {
		size := string(p.Size)
		in.Size = &size
	}
	return in
}
