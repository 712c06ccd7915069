package source

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"math/rand/v2"

	"github.com/vrikshavalli/storefront/internal/catalog"
	"github.com/vrikshavalli/storefront/internal/domain"
)

// MockProductsPerCategory is how many products the mock generates per category.
const MockProductsPerCategory = 16

var (
	mockSubCategories = []domain.PlantSubCategory{
		domain.SubCategoryIndoor, domain.SubCategoryIndoor,
		domain.SubCategoryOutdoor, domain.SubCategoryOutdoor,
		domain.SubCategoryExotic,
	}
	mockSizes = []domain.PlantSize{domain.Size4In, domain.Size4In, domain.Size6In}
)

// MockSource generates a fixed catalogue in memory. The same seed always
// yields the same products.
type MockSource struct {
	seed     uint64
	products map[domain.CategorySlug][]domain.Product
}

// NewMockSource generates the catalogue for every category.
func NewMockSource(seed uint64) *MockSource {
	s := &MockSource{
		seed:     seed,
		products: make(map[domain.CategorySlug][]domain.Product),
	}
	for _, c := range catalog.Categories() {
		s.products[c.Slug] = GenerateMockProducts(c.Slug, seed)
	}
	return s
}

// Query filters the generated catalogue by category and name.
func (s *MockSource) Query(ctx context.Context, q Query) (*Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var pool []domain.Product
	if q.Category == "" {
		for _, c := range catalog.Categories() {
			pool = append(pool, s.products[c.Slug]...)
		}
	} else {
		pool = s.products[catalog.ValidCategory(string(q.Category))]
	}

	matched := make([]domain.Product, 0, len(pool))
	for _, p := range pool {
		if matchesSearch(p.Name, q.Search) {
			matched = append(matched, p)
		}
	}

	page := &Page{Total: len(matched)}
	start := min(q.offset(), len(matched))
	end := len(matched)
	if q.PerPage > 0 {
		end = min(start+q.PerPage, len(matched))
	}
	page.Products = matched[start:end]
	return page, nil
}

// All returns every generated product for category.
func (s *MockSource) All(category domain.CategorySlug) []domain.Product {
	src := s.products[catalog.ValidCategory(string(category))]
	out := make([]domain.Product, len(src))
	copy(out, src)
	return out
}

// GenerateMockProducts builds the mock listing for one category. Plants
// cycle through sub-categories and indoor plants through pot sizes.
func GenerateMockProducts(category domain.CategorySlug, seed uint64) []domain.Product {
	cfg := catalog.CategoryInfo(category)
	r := rand.New(rand.NewPCG(seed, categoryStream(cfg.Slug)))

	products := make([]domain.Product, 0, MockProductsPerCategory)
	for i := range MockProductsPerCategory {
		p := domain.Product{
			ID:       domain.ID(fmt.Sprintf("%s-%d", cfg.Slug, i+1)),
			Name:     fmt.Sprintf("%s Product %d", cfg.Title, i+1),
			Image:    cfg.Image,
			Category: cfg.Title,
		}
		if cfg.Slug == domain.CategoryPlants {
			p.SubCategory = mockSubCategories[i%len(mockSubCategories)]
			if p.SubCategory == domain.SubCategoryIndoor {
				p.Size = mockSizes[i%len(mockSizes)]
			}
		}

		p.Price = math.Floor(r.Float64()*500) + 100
		if r.Float64() > 0.5 {
			original := math.Floor(r.Float64()*700) + 200
			p.OriginalPrice = &original
		}
		rating := math.Round((r.Float64()*1.5+3.5)*10) / 10
		reviews := r.IntN(300) + 10
		p.Rating = &rating
		p.ReviewCount = &reviews
		p.IsNew = r.Float64() > 0.7
		p.IsBestSeller = r.Float64() > 0.6
		p.IsHandPicked = r.Float64() > 0.8

		products = append(products, p)
	}
	return products
}

func categoryStream(slug domain.CategorySlug) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(slug))
	return h.Sum64()
}
