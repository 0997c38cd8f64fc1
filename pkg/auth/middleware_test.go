package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/veridata-labs/catalog-engine/pkg/testhelpers"
)

func signedToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func protectedEndpoint(m *Middleware) (http.HandlerFunc, *User) {
	var seen User
	handler := m.RequireUser(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = UserFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	return handler, &seen
}

func TestRequireUserWithoutToken(t *testing.T) {
	m := NewMiddleware("secret", true, zap.NewNop())
	handler, _ := protectedEndpoint(m)

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Authentication required")
}

func TestRequireUserVerified(t *testing.T) {
	m := NewMiddleware("secret", true, zap.NewNop())
	handler, seen := protectedEndpoint(m)

	t.Run("valid signature accepted", func(t *testing.T) {
		token := signedToken(t, "secret", jwt.MapClaims{
			"sub":   "user-1",
			"email": "tester@example.com",
			"exp":   time.Now().Add(time.Hour).Unix(),
		})
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "user-1", seen.ID)
		assert.Equal(t, "tester@example.com", seen.Email)
	})

	t.Run("wrong secret rejected", func(t *testing.T) {
		token := signedToken(t, "other", jwt.MapClaims{"sub": "user-1"})
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid token")
	})

	t.Run("unsigned token rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set("Authorization", testhelpers.GenerateTestJWTWithBearer("user-1", ""))
		rec := httptest.NewRecorder()
		handler(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		rec := httptest.NewRecorder()
		handler(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequireUserUnverified(t *testing.T) {
	m := NewMiddleware("", false, zap.NewNop())
	handler, seen := protectedEndpoint(m)

	t.Run("unsigned token accepted", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set("Authorization", testhelpers.GenerateTestJWTWithBearer("user-1", "tester@example.com"))
		rec := httptest.NewRecorder()
		handler(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "tester@example.com", seen.Email)
	})

	t.Run("token without identity rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set("Authorization", testhelpers.GenerateTestJWTWithBearer("", ""))
		rec := httptest.NewRecorder()
		handler(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestBearerTokenParsing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, bearerToken(req))

	req.Header.Set("Authorization", "bearer lower-case-scheme")
	assert.Equal(t, "lower-case-scheme", bearerToken(req))

	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	assert.Empty(t, bearerToken(req))
}

func TestIdentity(t *testing.T) {
	ctx := httptest.NewRequest(http.MethodGet, "/", nil).Context()
	assert.Empty(t, Identity(ctx))

	ctx = WithUser(ctx, User{ID: "user-1"})
	assert.Equal(t, "user-1", Identity(ctx))

	ctx = WithUser(ctx, User{ID: "user-1", Email: "tester@example.com"})
	assert.Equal(t, "tester@example.com", Identity(ctx), "email preferred over id")
}
