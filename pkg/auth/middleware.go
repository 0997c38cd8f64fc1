package auth

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/veridata-labs/catalog-engine/pkg/logging"
)

// Middleware provides HTTP authentication middleware. Tokens are HS256
// JWTs signed with a shared secret; the middleware only extracts the
// caller identity, it does not manage sessions.
type Middleware struct {
	secret []byte
	verify bool
	logger *zap.Logger
}

// NewMiddleware creates an auth middleware. When verify is false the
// token signature is not checked (local development); claims are still
// parsed so handlers see a caller identity.
func NewMiddleware(secret string, verify bool, logger *zap.Logger) *Middleware {
	return &Middleware{secret: []byte(secret), verify: verify, logger: logger}
}

// RequireUser rejects requests without a valid bearer token and places
// the caller identity in the request context for downstream handlers.
func (m *Middleware) RequireUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			m.unauthorized(w, "Authentication required")
			return
		}

		user, err := m.parseToken(token)
		if err != nil {
			m.logger.Debug("token rejected", zap.String("reason", logging.SanitizeError(err)))
			m.unauthorized(w, "Invalid token")
			return
		}

		next(w, r.WithContext(WithUser(r.Context(), user)))
	}
}

func (m *Middleware) parseToken(token string) (User, error) {
	claims := jwt.MapClaims{}
	var err error
	if m.verify {
		_, err = jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return m.secret, nil
		})
	} else {
		_, _, err = jwt.NewParser().ParseUnverified(token, claims)
	}
	if err != nil {
		return User{}, fmt.Errorf("failed to parse token: %w", err)
	}

	user := User{}
	if sub, _ := claims["sub"].(string); sub != "" {
		user.ID = sub
	}
	if email, _ := claims["email"].(string); email != "" {
		user.Email = email
	}
	if user.ID == "" && user.Email == "" {
		return User{}, fmt.Errorf("token carries no identity")
	}
	return user, nil
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return header[len(prefix):]
	}
	return ""
}

func (m *Middleware) unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	if err := json.NewEncoder(w).Encode(map[string]string{
		"error":   "unauthorized",
		"message": message,
	}); err != nil {
		m.logger.Error("Failed to write error response", zap.Error(err))
	}
}
