// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/idea-board/cliparse"
	"github.com/danielhkuo/idea-board/handlers"
	"github.com/danielhkuo/idea-board/middleware"
	"github.com/danielhkuo/idea-board/store"
)

// apiPrefixes are the mount points of the idea routes. Clients have used
// both the bare and the /api form.
var apiPrefixes = []string{"", "/api"}

func NewRouter(st store.Store, cfg cliparse.Config) http.Handler {
	mux := http.NewServeMux()

	// Initialize handlers
	ideaHandler := handlers.NewIdeaHandler(st)
	metrics := middleware.NewMetrics("ideaboard")

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	mux.Handle("GET /metrics", metrics.Handler())

	// Ideas, with and without the trailing slash
	for _, prefix := range apiPrefixes {
		base := prefix + "/ideas"

		mux.HandleFunc("GET "+base, middleware.WithLogging(ideaHandler.ListIdeas))
		mux.HandleFunc("GET "+base+"/{$}", middleware.WithLogging(ideaHandler.ListIdeas))
		mux.HandleFunc("POST "+base, middleware.WithLogging(ideaHandler.CreateIdea))
		mux.HandleFunc("POST "+base+"/{$}", middleware.WithLogging(ideaHandler.CreateIdea))

		mux.HandleFunc("GET "+base+"/{id}", middleware.WithLogging(ideaHandler.GetIdea))
		mux.HandleFunc("GET "+base+"/{id}/{$}", middleware.WithLogging(ideaHandler.GetIdea))
		mux.HandleFunc("DELETE "+base+"/{id}", middleware.WithLogging(ideaHandler.DeleteIdea))
		mux.HandleFunc("DELETE "+base+"/{id}/{$}", middleware.WithLogging(ideaHandler.DeleteIdea))

		mux.HandleFunc("PATCH "+base+"/{id}/upvote", middleware.WithLogging(ideaHandler.UpvoteIdea))
		mux.HandleFunc("PATCH "+base+"/{id}/upvote/{$}", middleware.WithLogging(ideaHandler.UpvoteIdea))
	}

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("idea-board API v1"))
	})

	var handler http.Handler = mux
	if cfg.RateLimit > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateBurst)
		limiter.TrustProxy(cfg.TrustProxy)
		limiter.OnReject(func(*http.Request) { metrics.Throttled.Inc() })
		handler = limiter.Middleware(handler)
	}
	handler = metrics.Middleware(handler)

	// CORS sits outermost so throttled responses stay readable by browsers.
	return middleware.CORS(cfg.AllowedOrigins)(handler)
}
