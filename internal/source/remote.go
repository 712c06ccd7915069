package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/vrikshavalli/storefront/internal/domain"
	"github.com/vrikshavalli/storefront/pkg/httpclient"
)

// RemoteSource reads products from an upstream API that speaks the
// /api/products contract.
type RemoteSource struct {
	baseURL string
	client  httpclient.Doer
}

// NewRemoteSource creates a source for the API rooted at baseURL. client is
// normally a circuit breaker around the retrying httpclient.Client.
func NewRemoteSource(baseURL string, client httpclient.Doer) *RemoteSource {
	return &RemoteSource{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

type remoteEnvelope struct {
	Success bool                    `json:"success"`
	Data    []domain.CatalogProduct `json:"data"`
	Count   int                     `json:"count"`
	Error   string                  `json:"error"`
}

// Query issues GET /api/products with the query translated to parameters.
func (s *RemoteSource) Query(ctx context.Context, q Query) (*Page, error) {
	params := url.Values{}
	if q.Category != "" {
		params.Set("category", string(q.Category))
	}
	if q.Search != "" {
		params.Set("search", q.Search)
	}
	if q.PerPage > 0 {
		params.Set("limit", strconv.Itoa(q.PerPage))
		params.Set("page", strconv.Itoa(max(q.Page, 1)))
	}

	endpoint := s.baseURL + "/api/products"
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create product source request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("product source: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, httpclient.ParseResponseError(resp, "product source")
	}
	defer func() { _ = resp.Body.Close() }()

	var env remoteEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode product source response: %w", err)
	}
	if !env.Success {
		return nil, fmt.Errorf("product source: %s", env.Error)
	}

	products := make([]domain.Product, len(env.Data))
	for i, row := range env.Data {
		products[i] = row.Display()
	}
	total := env.Count
	if total < len(products) {
		total = len(products)
	}
	return &Page{Products: products, Total: total}, nil
}
