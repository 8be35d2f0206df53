// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Server Configuration

ParseFlags returns a validated Config:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 8000)
  - DatabaseType: memory, sqlite or postgres (default: sqlite)
  - DatabaseURL: connection string (default for sqlite: file:ideaboard.db, required for postgres)
  - MaxTextLength: maximum idea length in characters (default: 280)
  - RateLimit: requests per second per client, 0 disables (default: 5)
  - RateBurst: burst allowance per client (default: 10)
  - AllowedOrigins: CORS origins (default: *)
  - TrustProxy: key the rate limiter on X-Forwarded-For (default: false)

# CLI Flags

	-p           Server port
	-d           Database URL
	-t           Database type
	-max-length  Maximum idea length
	-rate        Per-client request rate
	-burst       Per-client burst
	-origins     Comma-separated CORS origins
	-trust-proxy Trust forwarding headers from a reverse proxy
	-env         dotenv file to load (default: .env)

# Environment Variables

Flags fall back to environment variables:

	PORT                 → -p
	DATABASE_URL         → -d
	DATABASE_TYPE        → -t
	MAX_TEXT_LENGTH      → -max-length
	RATE_LIMIT           → -rate
	RATE_BURST           → -burst
	CORS_ALLOWED_ORIGINS → -origins
	TRUST_PROXY          → -trust-proxy

CLI flags take precedence over environment variables, which take
precedence over the dotenv file.

# Client Configuration

NewClientConfig validates the API origin once, up front:

	cfg, err := cliparse.NewClientConfig(flagURL, 3, time.Second)

An empty base URL falls back to IDEABOARD_API_URL. A missing or
non-http(s) URL is an error rather than a silently broken origin.
*/
package cliparse
