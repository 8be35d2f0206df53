// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Idea Board API server.

Idea Board is a shared, anonymous board of short ideas. Anyone can submit
an idea, upvote it or delete it, and everyone sees the same list ranked by
upvotes, newest first among equals.

# Starting the Server

With no configuration the server listens on :8000 and stores ideas in a
local SQLite file:

	go run .

Or with flags:

	go run . -p 8000 -t postgres -d "postgres://..."

# Configuration

Settings come from flags, then environment variables, then a .env file:

  - PORT (-p): Server port (default: 8000)
  - DATABASE_TYPE (-t): memory, sqlite or postgres (default: sqlite)
  - DATABASE_URL (-d): Connection string, required for postgres
  - MAX_TEXT_LENGTH (-max-length): Idea length limit in characters (default: 280)
  - RATE_LIMIT (-rate), RATE_BURST (-burst): Per-client request budget, 0 disables
  - TRUST_PROXY (-trust-proxy): Rate limit by X-Forwarded-For behind a reverse proxy
  - CORS_ALLOWED_ORIGINS (-origins): Comma-separated frontend origins

# Architecture

  - store: Idea Store (memory and SQL implementations, canonical ranking)
  - handlers: HTTP request handlers for /ideas/
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, rate limiting, metrics, JSON helpers
  - models: Request/response types
  - db: Connection and schema creation
  - cliparse: Configuration parsing
  - transport, board: Client side (retrying HTTP client and reconciled view)
  - cmd/ideactl: Command-line client

See package documentation for each component.
*/
package main
