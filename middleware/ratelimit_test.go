// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/danielhkuo/idea-board/models"
)

func newFrozenLimiter(perSecond float64, burst int) (*RateLimiter, *time.Time) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	l := NewRateLimiter(perSecond, burst)
	l.now = func() time.Time { return now }
	return l, &now
}

func TestRateLimiter_ThrottlesAfterBurst(t *testing.T) {
	limiter, _ := newFrozenLimiter(1, 2)
	rejected := 0
	limiter.OnReject(func(r *http.Request) { rejected++ })

	handler := limiter.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := make([]int, 3)
	for i := range codes {
		req := httptest.NewRequest("GET", "/ideas/", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		codes[i] = w.Code

		if i == 2 {
			retryAfter, err := strconv.Atoi(w.Header().Get("Retry-After"))
			if err != nil || retryAfter < 1 {
				t.Errorf("Expected positive Retry-After, got '%s'", w.Header().Get("Retry-After"))
			}

			var resp models.ErrorResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("Failed to decode 429 body: %v", err)
			}
			if !strings.HasPrefix(resp.Detail, "Request was throttled.") {
				t.Errorf("Unexpected detail: %s", resp.Detail)
			}
		}
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
		t.Errorf("Expected burst of 2 to pass, got %v", codes)
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Errorf("Expected third request to be throttled, got %d", codes[2])
	}
	if rejected != 1 {
		t.Errorf("Expected 1 rejection callback, got %d", rejected)
	}
}

func TestRateLimiter_PerClient(t *testing.T) {
	limiter, _ := newFrozenLimiter(1, 1)
	handler := limiter.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for _, ip := range []string{"10.0.0.1", "10.0.0.2", "10.0.0.3"} {
		req := httptest.NewRequest("POST", "/ideas/", nil)
		req.RemoteAddr = ip + ":5555"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Client %s should have its own bucket, got %d", ip, w.Code)
		}
	}
}

func TestRateLimiter_IgnoresForwardedHeadersByDefault(t *testing.T) {
	limiter, _ := newFrozenLimiter(1, 1)
	handler := limiter.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := make([]int, 0, 3)
	for _, forged := range []string{"198.51.100.1", "198.51.100.2", "198.51.100.3"} {
		req := httptest.NewRequest("POST", "/ideas/", nil)
		req.RemoteAddr = "10.0.0.9:5555"
		req.Header.Set("X-Forwarded-For", forged)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusTooManyRequests || codes[2] != http.StatusTooManyRequests {
		t.Errorf("Rotating X-Forwarded-For must not reset the bucket, got %v", codes)
	}
}

func TestRateLimiter_TrustProxy(t *testing.T) {
	limiter, _ := newFrozenLimiter(1, 1)
	limiter.TrustProxy(true)
	handler := limiter.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// Every request arrives from the proxy; clients differ by header.
	for _, ip := range []string{"198.51.100.1", "198.51.100.2"} {
		req := httptest.NewRequest("POST", "/ideas/", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		req.Header.Set("X-Forwarded-For", ip)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Client %s behind the proxy should have its own bucket, got %d", ip, w.Code)
		}
	}
}

func TestRateLimiter_Refills(t *testing.T) {
	limiter, now := newFrozenLimiter(1, 1)
	handler := limiter.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func() int {
		req := httptest.NewRequest("GET", "/ideas/", nil)
		req.RemoteAddr = "10.0.0.9:1"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		return w.Code
	}

	if code := send(); code != http.StatusOK {
		t.Fatalf("Expected first request to pass, got %d", code)
	}
	if code := send(); code != http.StatusTooManyRequests {
		t.Fatalf("Expected second request to be throttled, got %d", code)
	}

	*now = now.Add(1100 * time.Millisecond)

	if code := send(); code != http.StatusOK {
		t.Errorf("Expected bucket to refill after a second, got %d", code)
	}
}

func TestRateLimiter_SkipsPreflight(t *testing.T) {
	limiter, _ := newFrozenLimiter(1, 1)
	handler := limiter.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest("OPTIONS", "/ideas/", nil)
		req.RemoteAddr = "10.0.0.1:1"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		if w.Code != http.StatusNoContent {
			t.Fatalf("Preflight %d was throttled: %d", i, w.Code)
		}
	}
}

func TestRateLimiter_SweepsIdleClients(t *testing.T) {
	limiter, now := newFrozenLimiter(1, 1)
	limiter.reserve("10.0.0.1")
	limiter.reserve("10.0.0.2")

	*now = now.Add(idleTTL + 2*time.Minute)
	limiter.reserve("10.0.0.3")

	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	if len(limiter.clients) != 1 {
		t.Errorf("Expected idle clients to be swept, have %d", len(limiter.clients))
	}
}
