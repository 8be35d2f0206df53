// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router configures HTTP routes for the Idea Board API.

# Routing

Uses Go 1.22+ enhanced routing patterns with method matching:

	mux.HandleFunc("PATCH /ideas/{id}/upvote/{$}", handler)

Path parameters are extracted with r.PathValue("id").

# Route Groups

Public endpoints:

	GET /           - Banner
	GET /health     - Health check
	GET /metrics    - Prometheus metrics

Ideas (each also under /api, trailing slash optional):

	GET    /ideas/              - Ranked list
	POST   /ideas/              - Submit idea
	GET    /ideas/{id}/         - Single idea
	PATCH  /ideas/{id}/upvote/  - Upvote
	DELETE /ideas/{id}/         - Delete

# Middleware

The mux is wrapped, from the outside in, by CORS, Prometheus request
metrics and the per-client rate limiter (only when Config.RateLimit > 0).
Throttled requests receive 429 with a Retry-After header.

# Handler Initialization

	ideaHandler := handlers.NewIdeaHandler(st)

The store is the only dependency; handlers never see the database.
*/
package router
