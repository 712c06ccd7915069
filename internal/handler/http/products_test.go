package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vrikshavalli/storefront/internal/domain"
	"github.com/vrikshavalli/storefront/pkg/httputil"
	"github.com/vrikshavalli/storefront/pkg/middleware"
)

func decodeLegacy(t *testing.T, body []byte) httputil.LegacyResponse {
	t.Helper()
	var resp httputil.LegacyResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	return resp
}

func TestProducts_List(t *testing.T) {
	env := newTestEnv(t, RouterConfig{})
	env.products.On("List", mock.Anything, domain.ProductFilter{Search: "palm", Limit: 100}).
		Return([]domain.CatalogProduct{{ID: "1", Name: "Areca Palm", Slug: "areca-palm", Price: 799}}, 1, nil)

	rec := env.do(t, http.MethodGet, "/api/products?search=palm&limit=5000", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"count":1,"data":[{
		"id":"1","name":"Areca Palm","slug":"areca-palm","price":799,"image":"",
		"rating":0,"review_count":0,"stock":0,"is_new":false,"is_best_seller":false,
		"is_hand_picked":false,"is_active":false,
		"created_at":"0001-01-01T00:00:00Z","updated_at":"0001-01-01T00:00:00Z"}]}`, rec.Body.String())
}

func TestProducts_ListEmptyIsArray(t *testing.T) {
	env := newTestEnv(t, RouterConfig{})
	env.products.On("List", mock.Anything, mock.Anything).Return([]domain.CatalogProduct(nil), 0, nil)

	rec := env.do(t, http.MethodGet, "/api/products", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"data":[],"count":0}`, rec.Body.String())
}

func TestProducts_ListFailureIsOpaque500(t *testing.T) {
	env := newTestEnv(t, RouterConfig{})
	env.products.On("List", mock.Anything, mock.Anything).Return(nil, 0, errors.New("relation products does not exist"))

	rec := env.do(t, http.MethodGet, "/api/products", "", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"Failed to fetch products"}`, rec.Body.String())
}

func TestProducts_Create(t *testing.T) {
	env := newTestEnv(t, RouterConfig{})
	env.products.On("Create", mock.Anything, mock.MatchedBy(func(in domain.NewProductInput) bool {
		return in.Name == "Peace Lily" && in.Slug == "peace-lily"
	})).Return(&domain.CatalogProduct{ID: "9", Name: "Peace Lily", Slug: "peace-lily", Price: 549}, nil)

	rec := env.do(t, http.MethodPost, "/api/products", "", map[string]any{
		"name": "Peace Lily", "price": 549, "image": "/lily.webp",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeLegacy(t, rec.Body.Bytes())
	assert.True(t, resp.Success)
	assert.Nil(t, resp.Count)
}

func TestProducts_CreateFailuresAreOpaque500(t *testing.T) {
	tests := []struct {
		name string
		body any
	}{
		{name: "malformed json", body: `{"name":`},
		{name: "missing name", body: map[string]any{"price": 10, "image": "/x.webp"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, RouterConfig{})
			rec := env.do(t, http.MethodPost, "/api/products", "", tt.body)

			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			assert.JSONEq(t, `{"success":false,"error":"Failed to create product"}`, rec.Body.String())
			env.products.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestProducts_CreateRequiresAdminWhenConfigured(t *testing.T) {
	secret := []byte("test-secret")
	env := newTestEnv(t, RouterConfig{AdminToken: middleware.NewHMACValidator(secret)})
	env.products.On("Create", mock.Anything, mock.Anything).
		Return(&domain.CatalogProduct{ID: "1", Slug: "fern"}, nil)

	body := map[string]any{"name": "Fern", "image": "/fern.webp"}

	rec := env.do(t, http.MethodPost, "/api/products", "", body)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	sign := func(role string) string {
		claims := middleware.Claims{
			Subject: "u1",
			Role:    role,
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
		require.NoError(t, err)
		return tok
	}

	for role, want := range map[string]int{"customer": http.StatusForbidden, AdminRole: http.StatusOK} {
		req := newJSONRequest(t, http.MethodPost, "/api/products", body)
		req.Header.Set("Authorization", "Bearer "+sign(role))
		rec := serve(env, req)
		assert.Equal(t, want, rec.Code, role)
	}

	// Listing stays public.
	env.products.On("List", mock.Anything, mock.Anything).Return([]domain.CatalogProduct{}, 0, nil)
	rec = env.do(t, http.MethodGet, "/api/products", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
