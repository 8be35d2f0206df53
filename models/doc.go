// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

  - CreateIdeaRequest: text

# Domain Types

  - Idea: id, text, upvotes, created_at

Ideas are serialized as:

	{"id": 1, "text": "Build a rocket", "upvotes": 0, "created_at": "2025-01-02T15:04:05.999999999Z"}

# Error Types

Error bodies follow the shapes the board's clients already understand:

  - ErrorResponse: {"detail": "Not found."}
  - FieldErrorResponse: {"text": ["This field may not be blank."]}

# Constants

	DefaultMaxTextLength = 280
*/
package models
