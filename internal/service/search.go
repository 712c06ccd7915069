package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vrikshavalli/storefront/internal/domain"
	"github.com/vrikshavalli/storefront/internal/search"
	"github.com/vrikshavalli/storefront/internal/source"
)

// DefaultSuggestionLimit is the number of suggestions returned when the
// request does not ask for a specific count.
const DefaultSuggestionLimit = 8

// SearchRequest is one keystroke-driven search from a session.
type SearchRequest struct {
	SessionID string
	Query     string
	Seq       uint64
	Limit     int
}

// SearchResult is delivered only for the latest request of a session. A
// stale result carries no products.
type SearchResult struct {
	Query    string           `json:"query"`
	Seq      uint64           `json:"seq"`
	Stale    bool             `json:"stale"`
	Products []domain.Product `json:"products,omitempty"`
	Total    int              `json:"total"`
}

// SearchService answers search-as-you-type requests, discarding results
// that a newer request from the same session has superseded.
type SearchService struct {
	src      source.Source
	coord    *search.Coordinator
	maxLimit int
}

// NewSearchService creates a search service.
func NewSearchService(src source.Source, coord *search.Coordinator, maxLimit int) *SearchService {
	return &SearchService{src: src, coord: coord, maxLimit: maxLimit}
}

// Suggest runs req against the product source. An empty query yields no
// products without querying the source.
func (s *SearchService) Suggest(ctx context.Context, req SearchRequest) (*SearchResult, error) {
	if err := requireSession(req.SessionID); err != nil {
		return nil, err
	}

	q := strings.TrimSpace(req.Query)
	ticket := s.coord.Begin(ctx, req.SessionID, req.Seq)
	stale := &SearchResult{Query: q, Seq: req.Seq, Stale: true}
	if ticket.Stale() {
		return stale, nil
	}

	result := &SearchResult{Query: q, Seq: req.Seq, Products: []domain.Product{}}
	if q != "" {
		limit := req.Limit
		if limit <= 0 {
			limit = DefaultSuggestionLimit
		}
		limit = min(limit, s.maxLimit)

		page, err := s.src.Query(ticket.Context(), source.Query{Search: q, Page: 1, PerPage: limit})
		if err != nil {
			superseded := ticket.Context().Err() != nil && ctx.Err() == nil
			ticket.Release()
			if superseded && errors.Is(err, context.Canceled) {
				return stale, nil
			}
			return nil, fmt.Errorf("search products: %w", err)
		}
		result.Products = page.Products
		result.Total = page.Total
	}

	if !ticket.Commit() {
		return stale, nil
	}
	return result, nil
}
