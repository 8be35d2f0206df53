// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (method, path, remote) and completion (duration_ms).

# CORS Middleware

Enable cross-origin requests for frontend access:

	handler := middleware.CORS(cfg.AllowedOrigins)(mux)

Allows methods GET, POST, PATCH, DELETE, OPTIONS and exposes Retry-After
so browser clients can see throttling hints.

# Rate Limiting

A token bucket per client IP. Throttled requests get 429 with a
Retry-After header and a {"detail": "..."} body:

	limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateBurst)
	handler := limiter.Middleware(mux)

Idle client buckets are swept after a few minutes.

# Metrics

Prometheus request counters and latency histograms, labelled by the
matched route pattern:

	metrics := middleware.NewMetrics("ideaboard")
	handler := metrics.Middleware(mux)
	mux.Handle("GET /metrics", metrics.Handler())

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusNotFound, "Not found.")
	middleware.FieldErrorResponse(w, "text", "This field may not be blank.")

Parse JSON request bodies:

	var req models.CreateIdeaRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "JSON parse error")
		return
	}

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)

Those headers are client-controlled, so the rate limiter keys on
RemoteIP unless RateLimiter.TrustProxy is enabled.
*/
package middleware
