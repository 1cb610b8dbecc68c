package server

import (
	"net"
	"net/http"
	"sync"
	"time"
)

type clientBucket struct {
	tokens     int
	lastRefill time.Time
}

// RateLimiter allows a fixed number of requests per client per window.
type RateLimiter struct {
	mu       sync.Mutex
	capacity int
	window   time.Duration
	clients  map[string]*clientBucket
	now      func() time.Time
	swept    time.Time
}

// NewRateLimiter creates a limiter for capacity requests per window.
func NewRateLimiter(capacity int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		capacity: capacity,
		window:   window,
		clients:  make(map[string]*clientBucket),
		now:      time.Now,
	}
}

// Allow consumes a token for client and reports whether the request may proceed.
func (l *RateLimiter) Allow(client string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if l.swept.IsZero() {
		l.swept = now
	} else if now.Sub(l.swept) >= l.window {
		l.evict(now)
		l.swept = now
	}

	bucket, ok := l.clients[client]
	if !ok {
		l.clients[client] = &clientBucket{tokens: l.capacity - 1, lastRefill: now}
		return l.capacity > 0
	}

	if now.Sub(bucket.lastRefill) >= l.window {
		bucket.tokens = l.capacity
		bucket.lastRefill = now
	}
	if bucket.tokens <= 0 {
		return false
	}
	bucket.tokens--
	return true
}

// evict drops clients idle for more than two windows. It runs at most once
// per window so a request costs O(1) amortized. Caller holds mu.
func (l *RateLimiter) evict(now time.Time) {
	for client, bucket := range l.clients {
		if now.Sub(bucket.lastRefill) > 2*l.window {
			delete(l.clients, client)
		}
	}
}

func (l *RateLimiter) middleware(h *handler, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		client, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			client = r.RemoteAddr
		}
		if !l.Allow(client) {
			h.respondErrorWithOp(w, http.StatusTooManyRequests, "rate limit exceeded", "server.rateLimit")
			return
		}
		next.ServeHTTP(w, r)
	})
}
