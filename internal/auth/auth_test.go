package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bakeshop/internal/config"
	"bakeshop/internal/logger"
)

const (
	testSecret   = "tokensecret"
	testIssuer   = "https://bakeshop.example.com/"
	testAudience = "bakeshop-api"
)

func newVerifier() *Verifier {
	return New(config.AuthConfig{
		Secret:   testSecret,
		Issuer:   testIssuer,
		Audience: testAudience,
	}, logger.New("test"))
}

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func callProtected(t *testing.T, authorization string) (int, bool) {
	t.Helper()
	called := false
	handler := newVerifier().Middleware(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/manage/getOrders", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec.Code, called
}

func TestMiddleware_ValidToken(t *testing.T) {
	token := signToken(t, jwt.MapClaims{
		"iss": testIssuer,
		"aud": testAudience,
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	code, called := callProtected(t, "Bearer "+token)
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, called)
}

func TestMiddleware_Rejections(t *testing.T) {
	expired := signToken(t, jwt.MapClaims{
		"iss": testIssuer,
		"aud": testAudience,
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	wrongIssuer := signToken(t, jwt.MapClaims{
		"iss": "https://elsewhere.example.com/",
		"aud": testAudience,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	wrongAudience := signToken(t, jwt.MapClaims{
		"iss": testIssuer,
		"aud": "other-api",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	tests := []struct {
		name          string
		authorization string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc"},
		{"garbage token", "Bearer not.a.token"},
		{"expired", "Bearer " + expired},
		{"wrong issuer", "Bearer " + wrongIssuer},
		{"wrong audience", "Bearer " + wrongAudience},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, called := callProtected(t, tt.authorization)
			assert.Equal(t, http.StatusUnauthorized, code)
			assert.False(t, called)
		})
	}
}
