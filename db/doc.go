// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connections and schema creation.

# Connecting

Open selects the driver by dialect and pings the database:

	conn, err := db.Open(db.DialectSQLite, "file:ideaboard.db")

Supported dialects:

  - sqlite: modernc.org/sqlite (pure Go, no cgo). Limited to one open connection.
  - postgres: github.com/lib/pq

# Schema Creation

CreateSchema initializes the idea table for the dialect:

	if err := db.CreateSchema(conn, db.DialectSQLite); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for the table and index.

# Tables

  - idea: id, text, upvotes, created_at (unix nanoseconds)

Ids are never reused after deletion (AUTOINCREMENT on SQLite, a sequence
on PostgreSQL).

# Indexes

  - idea.(upvotes DESC, created_at DESC, id DESC): the ranking order

# Placeholders

Queries are written with $N placeholders. Rebind converts them for SQLite:

	conn.QueryRow(db.Rebind(dialect, "SELECT text FROM idea WHERE id = $1"), id)
*/
package db
