package middleware

import (
	"encoding/json"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"bakeshop/internal/logger"
)

// RateLimiter enforces a fixed request-count-per-minute threshold per client
// IP on public submission routes. It sits in front of the pipeline; nothing
// behind it knows about it.
type RateLimiter struct {
	mu        sync.Mutex
	clients   map[string]*client
	limit     rate.Limit
	burst     int
	logger    *logger.Logger
	lastSweep time.Time
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter creates a limiter allowing perMinute requests per client.
func NewRateLimiter(perMinute int, log *logger.Logger) *RateLimiter {
	return &RateLimiter{
		clients:   map[string]*client{},
		limit:     rate.Limit(float64(perMinute) / 60.0),
		burst:     perMinute,
		logger:    log,
		lastSweep: time.Now(),
	}
}

// Middleware wraps a handler with the rate check.
func (rl *RateLimiter) Middleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !rl.allow(clientIP(r)) {
			rl.logger.Info("rate_limited", "Request rejected by rate limiter", "", map[string]interface{}{
				"remote_addr": r.RemoteAddr,
				"path":        r.URL.Path,
			})
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status": http.StatusTooManyRequests,
				"error":  "You are doing that too much. Please try again in 1 minutes.",
			})
			return
		}
		next(w, r)
	}
}

func (rl *RateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	c, ok := rl.clients[ip]
	if !ok {
		c = &client{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.clients[ip] = c
	}
	c.lastSeen = now

	if now.Sub(rl.lastSweep) > 3*time.Minute {
		for key, entry := range rl.clients {
			if now.Sub(entry.lastSeen) > 3*time.Minute {
				delete(rl.clients, key)
			}
		}
		rl.lastSweep = now
	}

	return c.limiter.Allow()
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
