// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store owns the authoritative collection of ideas.

# Implementations

Both implementations satisfy Store:

  - MemoryStore: ideas in a map guarded by one sync.RWMutex
  - SQLStore: ideas in the idea table (SQLite or PostgreSQL)

	st := store.NewMemoryStore(280)
	st := store.NewSQLStore(conn, db.DialectSQLite, 280)

# Ranking

List returns ideas ordered by upvotes descending, then created_at
descending (newest first), then id descending. The same set of ideas
always produces the same sequence. Clients re-sort with SortIdeas.

# Errors

  - ErrInvalidInput: text is blank after trimming or too long.
    Returned as *ValidationError carrying the field and message.
  - ErrNotFound: no idea with that id.

Failed operations never mutate the collection.

# Concurrency

Upvote and Delete are atomic read-modify-write operations: N concurrent
upvotes of one idea add exactly N. List never observes a partial write.
*/
package store
