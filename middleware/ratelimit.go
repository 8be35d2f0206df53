// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// idleTTL is how long a client's limiter survives without requests.
const idleTTL = 3 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter applies a token bucket per client IP and answers 429 with a
// Retry-After header once a client's bucket is empty.
type RateLimiter struct {
	mu        sync.Mutex
	clients   map[string]*clientLimiter
	limit     rate.Limit
	burst     int
	lastSweep time.Time
	now        func() time.Time
	onReject   func(r *http.Request)
	trustProxy bool
}

// NewRateLimiter allows perSecond requests per client with the given burst.
func NewRateLimiter(perSecond float64, burst int) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		clients: make(map[string]*clientLimiter),
		limit:   rate.Limit(perSecond),
		burst:   burst,
		now:     time.Now,
	}
}

// TrustProxy keys clients by X-Forwarded-For / X-Real-IP instead of the
// connection address. Only enable it behind a proxy that sets those headers.
func (l *RateLimiter) TrustProxy(trust bool) {
	l.trustProxy = trust
}

// OnReject registers a callback run for every throttled request.
func (l *RateLimiter) OnReject(fn func(r *http.Request)) {
	l.onReject = fn
}

// reserve returns how long the client must wait, or 0 if the request may proceed.
func (l *RateLimiter) reserve(key string) time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) > time.Minute {
		for k, c := range l.clients {
			if now.Sub(c.lastSeen) > idleTTL {
				delete(l.clients, k)
			}
		}
		l.lastSweep = now
	}

	c, ok := l.clients[key]
	if !ok {
		c = &clientLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[key] = c
	}
	c.lastSeen = now

	if c.limiter.AllowN(now, 1) {
		return 0
	}
	r := c.limiter.ReserveN(now, 1)
	wait := r.DelayFrom(now)
	r.CancelAt(now)
	if wait <= 0 {
		wait = time.Second
	}
	return wait
}

// Middleware wraps next with the per-client limit.
func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		ip := RemoteIP(r)
		if l.trustProxy {
			ip = GetClientIP(r)
		}
		wait := l.reserve(ip)
		if wait == 0 {
			next.ServeHTTP(w, r)
			return
		}

		seconds := int(math.Ceil(wait.Seconds()))
		slog.Warn("request throttled", "remote", ip, "path", r.URL.Path, "retry_after_s", seconds)
		if l.onReject != nil {
			l.onReject(r)
		}

		w.Header().Set("Retry-After", strconv.Itoa(seconds))
		ErrorResponse(w, http.StatusTooManyRequests,
			"Request was throttled. Expected available in "+strconv.Itoa(seconds)+" seconds.")
	})
}
