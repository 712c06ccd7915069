package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("storefront-test-secret")

func signToken(t *testing.T, secret []byte, role string, expiresIn time.Duration) string {
	t.Helper()
	claims := Claims{
		Subject: "admin-1",
		Role:    role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)
	return token
}

func adminChain() http.Handler {
	return Auth(NewHMACValidator(testSecret))(RequireRole("admin")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c := ClaimsFromContext(r.Context()); c != nil {
			w.Header().Set("X-Subject", c.Subject)
		}
		w.WriteHeader(http.StatusCreated)
	})))
}

func TestAuth(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized},
		{"wrong secret", "Bearer " + signToken(t, []byte("other"), "admin", time.Hour), http.StatusUnauthorized},
		{"expired", "Bearer " + signToken(t, testSecret, "admin", -time.Minute), http.StatusUnauthorized},
		{"wrong role", "Bearer " + signToken(t, testSecret, "shopper", time.Hour), http.StatusForbidden},
		{"admin", "Bearer " + signToken(t, testSecret, "admin", time.Hour), http.StatusCreated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/products", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			adminChain().ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
			if tt.want == http.StatusCreated {
				assert.Equal(t, "admin-1", rec.Header().Get("X-Subject"))
			}
		})
	}
}

func TestNewHMACValidator_RejectsOtherAlgorithms(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{Role: "admin"}).SignedString(testSecret)
	require.NoError(t, err)

	_, err = NewHMACValidator(testSecret)(token)
	assert.Error(t, err)
}

func TestRequireRole_WithoutAuth(t *testing.T) {
	rec := httptest.NewRecorder()
	RequireRole("admin")(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
