package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"bakeshop/internal/logger"
)

func TestRateLimiter_Threshold(t *testing.T) {
	rl := NewRateLimiter(5, logger.New("test"))
	handler := rl.Middleware(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	call := func(addr string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/order/handleCashOrder", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		handler(rec, req)
		return rec.Code
	}

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, call("10.0.0.1:1234"), "request %d should pass", i)
	}
	assert.Equal(t, http.StatusTooManyRequests, call("10.0.0.1:1234"))

	// other clients are unaffected
	assert.Equal(t, http.StatusOK, call("10.0.0.2:1234"))
}
