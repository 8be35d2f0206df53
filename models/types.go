package models

import "time"

// DefaultMaxTextLength matches the 280 character limit the board has
// always advertised to users.
const DefaultMaxTextLength = 280

// Request types

// Text is a pointer so a missing field can be told apart from an empty one.
type CreateIdeaRequest struct {
	Text *string `json:"text" validate:"required"`
}

// Domain types

type Idea struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	Upvotes   int64     `json:"upvotes"`
	CreatedAt time.Time `json:"created_at"`
}

// Error responses

// ErrorResponse is the generic error body: {"detail": "..."}
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// FieldErrorResponse maps a field name to its validation messages,
// e.g. {"text": ["This field may not be blank."]}
type FieldErrorResponse map[string][]string
