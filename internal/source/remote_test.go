package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vrikshavalli/storefront/internal/domain"
	apperrors "github.com/vrikshavalli/storefront/pkg/errors"
	"github.com/vrikshavalli/storefront/pkg/httpclient"
	"github.com/vrikshavalli/storefront/pkg/logger"
)

func testClient() httpclient.Doer {
	return httpclient.New(httpclient.Config{
		Timeout:         2 * time.Second,
		MaxRetries:      0,
		RetryWaitMin:    time.Millisecond,
		RetryWaitMax:    time.Millisecond,
		MaxConnsPerHost: 4,
	})
}

func TestRemoteSource_Query(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/products", r.URL.Path)
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"count":2,"data":[
			{"id":"a","name":"Areca Palm","price":799,"rating":4.2,"review_count":12,"is_new":true,"sub_category":"indoor","size":"6\""},
			{"id":"b","name":"Money Plant","price":199,"original_price":299,"rating":0,"review_count":0}
		]}`))
	}))
	defer server.Close()

	s := NewRemoteSource(server.URL+"/", testClient())
	page, err := s.Query(context.Background(), Query{Category: domain.CategoryPlants, Search: "palm", Page: 1, PerPage: 20})
	require.NoError(t, err)

	assert.Equal(t, "category=plants&limit=20&page=1&search=palm", gotQuery)
	assert.Equal(t, 2, page.Total)
	require.Len(t, page.Products, 2)
	assert.Equal(t, domain.Size6In, page.Products[0].Size)
	assert.True(t, page.Products[0].IsNew)
	assert.InDelta(t, 1.0/3.0, page.Products[1].DiscountFraction(), 0.001)
}

func TestRemoteSource_UpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"success":false,"error":"Failed to fetch products"}`))
	}))
	defer server.Close()

	s := NewRemoteSource(server.URL, testClient())
	_, err := s.Query(context.Background(), Query{})
	require.Error(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, apperrors.HTTPStatus(err))
}

func TestRemoteSource_SuccessFalse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"error":"nope"}`))
	}))
	defer server.Close()

	_, err := NewRemoteSource(server.URL, testClient()).Query(context.Background(), Query{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope")
}

func TestRemoteSource_CircuitBreakerOpens(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	cfg := httpclient.DefaultCircuitBreakerConfig("product-source-test")
	cfg.MinRequests = 2
	breaker := httpclient.NewCircuitBreakerClient(testClient(), cfg, logger.Discard())
	s := NewRemoteSource(server.URL, breaker)

	for range 2 {
		_, err := s.Query(context.Background(), Query{})
		require.Error(t, err)
	}
	_, err := s.Query(context.Background(), Query{})
	assert.ErrorIs(t, err, httpclient.ErrCircuitOpen)
}
