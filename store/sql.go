// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/danielhkuo/idea-board/db"
	"github.com/danielhkuo/idea-board/models"
)

// SQLStore persists ideas through database/sql. Every mutation is a single
// statement, so the database provides the isolation.
type SQLStore struct {
	db      *sql.DB
	dialect string
	maxLen  int
	now     func() time.Time
}

// NewSQLStore wraps an open connection whose schema already exists.
func NewSQLStore(conn *sql.DB, dialect string, maxLen int) *SQLStore {
	if maxLen <= 0 {
		maxLen = models.DefaultMaxTextLength
	}
	return &SQLStore{
		db:      conn,
		dialect: dialect,
		maxLen:  maxLen,
		now:     time.Now,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanIdea(row rowScanner) (models.Idea, error) {
	var idea models.Idea
	var createdAt int64
	if err := row.Scan(&idea.ID, &idea.Text, &idea.Upvotes, &createdAt); err != nil {
		return models.Idea{}, err
	}
	idea.CreatedAt = time.Unix(0, createdAt).UTC()
	return idea, nil
}

func (s *SQLStore) Create(ctx context.Context, text string) (models.Idea, error) {
	text, err := NormalizeText(text, s.maxLen)
	if err != nil {
		return models.Idea{}, err
	}

	created := s.now().UTC()
	idea := models.Idea{Text: text, CreatedAt: created}

	err = s.db.QueryRowContext(ctx, db.Rebind(s.dialect, `
		INSERT INTO idea (text, upvotes, created_at)
		VALUES ($1, 0, $2)
		RETURNING id
	`), text, created.UnixNano()).Scan(&idea.ID)
	if err != nil {
		return models.Idea{}, fmt.Errorf("failed to insert idea: %w", err)
	}
	return idea, nil
}

func (s *SQLStore) List(ctx context.Context) ([]models.Idea, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, text, upvotes, created_at
		FROM idea
		ORDER BY upvotes DESC, created_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query ideas: %w", err)
	}
	defer rows.Close()

	ideas := []models.Idea{}
	for rows.Next() {
		idea, err := scanIdea(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan idea: %w", err)
		}
		ideas = append(ideas, idea)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate ideas: %w", err)
	}
	return ideas, nil
}

func (s *SQLStore) Get(ctx context.Context, id int64) (models.Idea, error) {
	idea, err := scanIdea(s.db.QueryRowContext(ctx, db.Rebind(s.dialect, `
		SELECT id, text, upvotes, created_at FROM idea WHERE id = $1
	`), id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Idea{}, ErrNotFound
	}
	if err != nil {
		return models.Idea{}, fmt.Errorf("failed to query idea: %w", err)
	}
	return idea, nil
}

// Upvote increments in place so concurrent upvotes can never overwrite
// each other with a stale read.
func (s *SQLStore) Upvote(ctx context.Context, id int64) (models.Idea, error) {
	idea, err := scanIdea(s.db.QueryRowContext(ctx, db.Rebind(s.dialect, `
		UPDATE idea SET upvotes = upvotes + 1
		WHERE id = $1
		RETURNING id, text, upvotes, created_at
	`), id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Idea{}, ErrNotFound
	}
	if err != nil {
		return models.Idea{}, fmt.Errorf("failed to upvote idea: %w", err)
	}
	return idea, nil
}

func (s *SQLStore) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, db.Rebind(s.dialect, `DELETE FROM idea WHERE id = $1`), id)
	if err != nil {
		return fmt.Errorf("failed to delete idea: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete idea: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
