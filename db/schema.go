// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Supported dialects. The values double as database/sql driver names.
const (
	DialectSQLite   = "sqlite"
	DialectPostgres = "postgres"
)

// Open connects to the database and verifies the connection.
// SQLite is limited to a single connection: one writer at a time, and an
// in-memory database survives for the life of the pool.
func Open(dialect, dsn string) (*sql.DB, error) {
	switch dialect {
	case DialectSQLite, DialectPostgres:
	default:
		return nil, fmt.Errorf("unsupported database type %q", dialect)
	}

	conn, err := sql.Open(dialect, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if dialect == DialectSQLite {
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return conn, nil
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(conn *sql.DB, dialect string) error {
	var schema string
	switch dialect {
	case DialectSQLite:
		schema = sqliteSchema
	case DialectPostgres:
		schema = postgresSchema
	default:
		return fmt.Errorf("unsupported database type %q", dialect)
	}

	if _, err := conn.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Rebind rewrites $N placeholders into the form the dialect expects.
// SQLite accepts ?N with the same numbering.
func Rebind(dialect, query string) string {
	if dialect == DialectSQLite {
		return strings.ReplaceAll(query, "$", "?")
	}
	return query
}

// created_at holds unix nanoseconds so both dialects sort with the same precision.
// AUTOINCREMENT keeps SQLite from reusing the ids of deleted rows.
const sqliteSchema = `
CREATE TABLE IF NOT EXISTS idea (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    text TEXT NOT NULL CHECK (length(text) > 0),
    upvotes INTEGER NOT NULL DEFAULT 0 CHECK (upvotes >= 0),
    created_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_idea_rank ON idea(upvotes DESC, created_at DESC, id DESC);
`

const postgresSchema = `
CREATE TABLE IF NOT EXISTS idea (
    id BIGSERIAL PRIMARY KEY,
    text TEXT NOT NULL CHECK (length(text) > 0),
    upvotes BIGINT NOT NULL DEFAULT 0 CHECK (upvotes >= 0),
    created_at BIGINT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_idea_rank ON idea(upvotes DESC, created_at DESC, id DESC);
`
