// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/danielhkuo/idea-board/store"
)

var (
	// ErrRateLimited marks a 429 response. It is retried.
	ErrRateLimited = errors.New("rate limited")
	// ErrTransportFailure marks an attempt that got no response at all. It is retried.
	ErrTransportFailure = errors.New("transport failure")
	// ErrServer marks a non-2xx response other than 4xx. It is not retried.
	ErrServer = errors.New("server error")
	// ErrExhausted marks a call that ran out of retries.
	ErrExhausted = errors.New("retries exhausted")
)

// APIError is a non-2xx response decoded from the server.
// It unwraps to store.ErrNotFound for 404, store.ErrInvalidInput for other
// 4xx, ErrRateLimited for 429 and ErrServer for the rest.
type APIError struct {
	Status     int
	Detail     string
	Fields     map[string][]string
	RetryAfter time.Duration
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message())
}

// Message renders the server's explanation in one line.
func (e *APIError) Message() string {
	if e.Detail != "" {
		return e.Detail
	}
	if len(e.Fields) > 0 {
		keys := make([]string, 0, len(e.Fields))
		for k := range e.Fields {
			keys = append(keys, k)
		}
		slices.Sort(keys)

		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, k+": "+strings.Join(e.Fields[k], " "))
		}
		return strings.Join(parts, "; ")
	}
	if text := http.StatusText(e.Status); text != "" {
		return text
	}
	return "unexpected status"
}

func (e *APIError) Unwrap() error {
	switch {
	case e.Status == http.StatusTooManyRequests:
		return ErrRateLimited
	case e.Status == http.StatusNotFound:
		return store.ErrNotFound
	case e.Status >= 400 && e.Status < 500:
		return store.ErrInvalidInput
	default:
		return ErrServer
	}
}

// newAPIError decodes either {"detail": "..."} or {"field": ["..."]}.
// Bodies in neither shape leave Detail and Fields empty.
func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{Status: status}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return apiErr
	}
	for key, value := range raw {
		if key == "detail" {
			var detail string
			if json.Unmarshal(value, &detail) == nil {
				apiErr.Detail = detail
			}
			continue
		}
		var messages []string
		if json.Unmarshal(value, &messages) == nil && len(messages) > 0 {
			if apiErr.Fields == nil {
				apiErr.Fields = make(map[string][]string)
			}
			apiErr.Fields[key] = messages
		}
	}
	return apiErr
}

// ExhaustedError is returned once every attempt of a call failed with a
// retryable outcome. It matches both ErrExhausted and the last cause.
type ExhaustedError struct {
	Attempts int
	Last     error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("gave up after %d attempts: %v", e.Attempts, e.Last)
}

func (e *ExhaustedError) Unwrap() []error {
	return []error{ErrExhausted, e.Last}
}

func retryable(err error) bool {
	return errors.Is(err, ErrRateLimited) || errors.Is(err, ErrTransportFailure)
}

// Describe turns an error from the client into a message fit for end users.
func Describe(err error) string {
	if err == nil {
		return ""
	}

	var apiErr *APIError
	hasAPIErr := errors.As(err, &apiErr)

	switch {
	case errors.Is(err, ErrRateLimited):
		return "rate limited, please retry"
	case errors.Is(err, ErrTransportFailure):
		return "server unreachable"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "request cancelled"
	case errors.Is(err, store.ErrNotFound):
		return "idea not found"
	case errors.Is(err, store.ErrInvalidInput):
		if hasAPIErr {
			return "request rejected: " + apiErr.Message()
		}
		return "request rejected: " + err.Error()
	case errors.Is(err, ErrServer):
		if hasAPIErr {
			return "server error: " + apiErr.Message()
		}
		return "server error"
	}
	return err.Error()
}
