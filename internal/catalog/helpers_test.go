package catalog

import (
	"fmt"
	"math/rand/v2"

	"github.com/vrikshavalli/storefront/internal/domain"
)

func ptr[T any](v T) *T { return &v }

// randomProducts builds a reproducible product list with plenty of ties.
func randomProducts(seed uint64, n int) []domain.Product {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	out := make([]domain.Product, n)
	for i := range out {
		p := domain.Product{
			ID:           domain.ID(fmt.Sprintf("p-%d", i)),
			Name:         fmt.Sprintf("Product %d", i),
			Price:        float64(100 * (1 + r.IntN(8))),
			IsNew:        r.IntN(2) == 0,
			IsBestSeller: r.IntN(3) == 0,
			IsHandPicked: r.IntN(4) == 0,
		}
		if r.IntN(3) > 0 {
			p.Rating = ptr(float64(r.IntN(6)))
		}
		if r.IntN(2) == 0 {
			p.OriginalPrice = ptr(p.Price * float64(1+r.IntN(3)))
		}
		out[i] = p
	}
	return out
}

func ids(products []domain.Product) []domain.ID {
	out := make([]domain.ID, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}
