package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vrikshavalli/storefront/internal/bag"
	"github.com/vrikshavalli/storefront/internal/domain"
	"github.com/vrikshavalli/storefront/internal/event"
	"github.com/vrikshavalli/storefront/internal/search"
	"github.com/vrikshavalli/storefront/internal/service"
	"github.com/vrikshavalli/storefront/internal/source"
	"github.com/vrikshavalli/storefront/internal/wishlist"
	apperrors "github.com/vrikshavalli/storefront/pkg/errors"
	"github.com/vrikshavalli/storefront/pkg/health"
	"github.com/vrikshavalli/storefront/pkg/logger"
	"github.com/vrikshavalli/storefront/pkg/middleware"
)

// ============================================================================
// Fakes
// ============================================================================

type mockProductRepository struct {
	mock.Mock
}

func (m *mockProductRepository) List(ctx context.Context, filter domain.ProductFilter) ([]domain.CatalogProduct, int, error) {
	args := m.Called(ctx, filter)
	rows, _ := args.Get(0).([]domain.CatalogProduct)
	return rows, args.Int(1), args.Error(2)
}

func (m *mockProductRepository) Create(ctx context.Context, input domain.NewProductInput) (*domain.CatalogProduct, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CatalogProduct), args.Error(1)
}

type mockEnquiryRepository struct {
	mock.Mock
}

func (m *mockEnquiryRepository) Create(ctx context.Context, e *domain.Enquiry) error {
	return m.Called(ctx, e).Error(0)
}

// memoryBagRepository keeps bags as JSON so callers never share pointers
// with the store.
type memoryBagRepository struct {
	mu   sync.Mutex
	bags map[string][]byte
}

func newMemoryBagRepository() *memoryBagRepository {
	return &memoryBagRepository{bags: make(map[string][]byte)}
}

func (m *memoryBagRepository) Get(_ context.Context, sessionID string) (*bag.Bag, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.bags[sessionID]
	if !ok {
		return nil, apperrors.NotFound("bag", sessionID)
	}
	var b bag.Bag
	if err := json.Unmarshal(raw, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (m *memoryBagRepository) SaveIfVersion(_ context.Context, b *bag.Bag, expected int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	current := 0
	if raw, ok := m.bags[b.SessionID]; ok {
		var stored bag.Bag
		if err := json.Unmarshal(raw, &stored); err != nil {
			return false, err
		}
		current = stored.Version
	}
	if current != expected {
		return false, nil
	}
	b.Version = expected + 1
	raw, err := json.Marshal(b)
	if err != nil {
		return false, err
	}
	m.bags[b.SessionID] = raw
	return true, nil
}

// ============================================================================
// Test server
// ============================================================================

type testEnv struct {
	handler   http.Handler
	products  *mockProductRepository
	enquiries *mockEnquiryRepository
	storage   *wishlist.MemoryStorage
}

func newTestEnv(t *testing.T, cfg RouterConfig) *testEnv {
	t.Helper()

	log := logger.Discard()
	producer := event.NewProducer(nil, log)
	products := &mockProductRepository{}
	enquiries := &mockEnquiryRepository{}
	storage := wishlist.NewMemoryStorage()
	src := source.NewMockSource(1)

	svc := Services{
		Products:  service.NewProductService(products, log, 100),
		Listing:   service.NewListingService(src, 500),
		Wishlist:  service.NewWishlistService(storage, "vrikshavalli-wishlist", producer, log),
		Bag:       service.NewBagService(newMemoryBagRepository(), producer, log),
		Search:    service.NewSearchService(src, search.NewCoordinator(time.Minute), 20),
		Enquiries: service.NewEnquiryService(enquiries, producer, log),
	}
	if cfg.CORSOrigins == nil {
		cfg.CORSOrigins = []string{"*"}
	}

	return &testEnv{
		handler:   NewRouter(svc, health.NewHandler(), log, cfg),
		products:  products,
		enquiries: enquiries,
		storage:   storage,
	}
}

func (e *testEnv) do(t *testing.T, method, path, session string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if session != "" {
		req.Header.Set(middleware.SessionIDHeader, session)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Fields  map[string]string `json:"fields"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env), rec.Body.String())
	return env
}

func decodeData[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	env := decodeEnvelope(t, rec)
	require.Nil(t, env.Error)
	var out T
	require.NoError(t, json.Unmarshal(env.Data, &out))
	return out
}

func newJSONRequest(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func serve(e *testEnv, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}
