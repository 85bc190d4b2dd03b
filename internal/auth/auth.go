// Package auth guards the management routes with bearer token verification.
package auth

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"bakeshop/internal/config"
	"bakeshop/internal/logger"
)

// Verifier validates bearer tokens against the configured issuer, audience
// and signing key. Handlers behind it never run for an invalid token.
type Verifier struct {
	secret   []byte
	issuer   string
	audience string
	logger   *logger.Logger
}

// New creates a verifier from the auth configuration.
func New(cfg config.AuthConfig, log *logger.Logger) *Verifier {
	return &Verifier{
		secret:   []byte(cfg.Secret),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		logger:   log,
	}
}

// Middleware wraps a handler with token verification.
func (v *Verifier) Middleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok || !v.valid(token) {
			v.logger.Info("auth_rejected", "Request without valid token", "", map[string]interface{}{
				"path": r.URL.Path,
			})
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"msg": "Invalid token"})
			return
		}
		next(w, r)
	}
}

func (v *Verifier) valid(raw string) bool {
	token, err := jwt.Parse(raw,
		func(t *jwt.Token) (interface{}, error) { return v.secret, nil },
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(v.issuer),
		jwt.WithAudience(v.audience),
		jwt.WithExpirationRequired(),
	)
	return err == nil && token.Valid
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}
