// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/danielhkuo/idea-board/models"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("idea not found")
)

// ValidationError describes why a field was rejected.
// It matches ErrInvalidInput with errors.Is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// Store owns the authoritative idea collection.
// All methods are safe for concurrent use.
type Store interface {
	Create(ctx context.Context, text string) (models.Idea, error)
	List(ctx context.Context) ([]models.Idea, error)
	Get(ctx context.Context, id int64) (models.Idea, error)
	Upvote(ctx context.Context, id int64) (models.Idea, error)
	Delete(ctx context.Context, id int64) error
}

// NormalizeText trims the text and enforces the length policy.
// Length is counted in runes so multi-byte characters count once.
func NormalizeText(text string, maxLen int) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", &ValidationError{Field: "text", Message: "This field may not be blank."}
	}
	if maxLen > 0 && utf8.RuneCountInString(trimmed) > maxLen {
		return "", &ValidationError{
			Field:   "text",
			Message: fmt.Sprintf("Ensure this field has no more than %d characters.", maxLen),
		}
	}
	return trimmed, nil
}

// Compare orders ideas by upvotes desc, then created_at desc, then id desc.
// The result is usable with slices.SortFunc.
func Compare(a, b models.Idea) int {
	if a.Upvotes != b.Upvotes {
		if a.Upvotes > b.Upvotes {
			return -1
		}
		return 1
	}
	if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
		return c
	}
	switch {
	case a.ID > b.ID:
		return -1
	case a.ID < b.ID:
		return 1
	}
	return 0
}

// SortIdeas sorts ideas in place into the canonical ranking.
func SortIdeas(ideas []models.Idea) {
	slices.SortFunc(ideas, Compare)
}
