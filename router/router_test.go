// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/idea-board/store"
	"github.com/danielhkuo/idea-board/testutil"
)

func newTestRouter(t *testing.T) (http.Handler, store.Store) {
	t.Helper()
	st, _ := testutil.SetupTestStore(t)
	return NewRouter(st, testutil.GetTestConfig()), st
}

func TestHealthEndpoint(t *testing.T) {
	mux, _ := newTestRouter(t)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	if w.Body.String() != "OK" {
		t.Errorf("Expected body 'OK', got '%s'", w.Body.String())
	}
}

func TestRootEndpoint(t *testing.T) {
	mux, _ := newTestRouter(t)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	expected := "idea-board API v1"
	if w.Body.String() != expected {
		t.Errorf("Expected body '%s', got '%s'", expected, w.Body.String())
	}
}

func TestRouteExistence(t *testing.T) {
	mux, st := newTestRouter(t)
	testutil.CreateTestIdea(t, st, "routable")

	testCases := []struct {
		method         string
		path           string
		body           string
		expectedStatus int
	}{
		{"GET", "/ideas/", "", http.StatusOK},
		{"GET", "/ideas", "", http.StatusOK},
		{"GET", "/api/ideas/", "", http.StatusOK},
		{"GET", "/api/ideas", "", http.StatusOK},
		{"POST", "/ideas/", `{"text":"a"}`, http.StatusCreated},
		{"POST", "/ideas", `{"text":"b"}`, http.StatusCreated},
		{"POST", "/api/ideas/", `{"text":"c"}`, http.StatusCreated},
		{"GET", "/ideas/1/", "", http.StatusOK},
		{"GET", "/ideas/1", "", http.StatusOK},
		{"GET", "/api/ideas/1/", "", http.StatusOK},
		{"PATCH", "/ideas/1/upvote/", "", http.StatusOK},
		{"PATCH", "/ideas/1/upvote", "", http.StatusOK},
		{"PATCH", "/api/ideas/1/upvote/", "", http.StatusOK},
		{"DELETE", "/ideas/2/", "", http.StatusNoContent},
		{"DELETE", "/api/ideas/3", "", http.StatusNoContent},
		{"GET", "/metrics", "", http.StatusOK},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			var req *http.Request
			if tc.body != "" {
				req = httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body))
				req.Header.Set("Content-Type", "application/json")
			} else {
				req = httptest.NewRequest(tc.method, tc.path, nil)
			}
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code != tc.expectedStatus {
				t.Errorf("Expected %d for %s %s, got %d. Body: %s", tc.expectedStatus, tc.method, tc.path, w.Code, w.Body.String())
			}
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	mux, _ := newTestRouter(t)

	testCases := []struct {
		method string
		path   string
	}{
		{"POST", "/health"},           // Only GET is defined
		{"PUT", "/ideas/"},            // GET and POST only
		{"POST", "/ideas/1/"},         // GET and DELETE only
		{"GET", "/ideas/1/upvote/"},   // Only PATCH is defined
		{"POST", "/ideas/1/upvote/"},  // Only PATCH is defined
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code != http.StatusMethodNotAllowed {
				t.Errorf("Expected 405 for %s %s, got %d", tc.method, tc.path, w.Code)
			}
		})
	}
}

func TestPathParameterExtraction(t *testing.T) {
	mux, st := newTestRouter(t)

	testutil.CreateTestIdea(t, st, "first")
	second := testutil.CreateTestIdea(t, st, "second")

	req := httptest.NewRequest("GET", "/ideas/2/", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	if !strings.Contains(w.Body.String(), `"text":"`+second.Text+`"`) {
		t.Errorf("Expected idea %d in body, got %s", second.ID, w.Body.String())
	}
}

func TestUnknownIdea(t *testing.T) {
	mux, _ := newTestRouter(t)

	for _, path := range []string{"/ideas/99/", "/ideas/abc/", "/ideas/0/"} {
		req := httptest.NewRequest("GET", path, nil)
		w := httptest.NewRecorder()

		mux.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404 for %s, got %d", path, w.Code)
		}
	}
}

func TestCORSHeaders(t *testing.T) {
	mux, _ := newTestRouter(t)

	req := httptest.NewRequest("OPTIONS", "/ideas/", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "PATCH")
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Error("Expected Access-Control-Allow-Origin on preflight response")
	}
	if w.Code >= 300 {
		t.Errorf("Expected successful preflight, got %d", w.Code)
	}
}

func TestRateLimitedRoutes(t *testing.T) {
	st, _ := testutil.SetupTestStore(t)
	cfg := testutil.GetTestConfig()
	cfg.RateLimit = 1
	cfg.RateBurst = 2
	mux := NewRouter(st, cfg)

	codes := make([]int, 0, 3)
	var last *httptest.ResponseRecorder
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest("GET", "/ideas/", nil)
		req.RemoteAddr = "203.0.113.9:4000"
		req.Header.Set("Origin", "http://localhost:3000")
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)
		codes = append(codes, w.Code)
		last = w
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
		t.Fatalf("Expected first two requests to pass, got %v", codes)
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Fatalf("Expected third request to be throttled, got %d", codes[2])
	}
	if last.Header().Get("Retry-After") == "" {
		t.Error("Expected Retry-After on throttled response")
	}
	if last.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Error("Expected CORS headers on throttled response")
	}
	if !strings.Contains(last.Body.String(), "Request was throttled.") {
		t.Errorf("Unexpected throttle body: %s", last.Body.String())
	}

	// Throttled requests show up in the metrics.
	req := httptest.NewRequest("GET", "/metrics", nil)
	req.RemoteAddr = "198.51.100.1:4000"
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	if !strings.Contains(w.Body.String(), "ideaboard_http_requests_throttled_total 1") {
		t.Errorf("Expected throttled counter in metrics, got:\n%s", w.Body.String())
	}
}
