// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/idea-board/cliparse"
	"github.com/danielhkuo/idea-board/db"
	"github.com/danielhkuo/idea-board/models"
	"github.com/danielhkuo/idea-board/store"
)

// SetupTestDB creates a fresh in-memory SQLite database with the full schema.
// The database lives as long as its single pooled connection.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(db.DialectSQLite, ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.CreateSchema(conn, db.DialectSQLite); err != nil {
		conn.Close()
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// SetupTestStore returns a SQL-backed store over a fresh test database.
func SetupTestStore(t *testing.T) (*store.SQLStore, *sql.DB) {
	t.Helper()

	conn := SetupTestDB(t)
	return store.NewSQLStore(conn, db.DialectSQLite, models.DefaultMaxTextLength), conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:           8000,
		DatabaseType:   "memory",
		MaxTextLength:  models.DefaultMaxTextLength,
		AllowedOrigins: []string{"*"},
	}
}

// CreateTestIdea inserts an idea and fails the test on error
func CreateTestIdea(t *testing.T, st store.Store, text string) models.Idea {
	t.Helper()

	idea, err := st.Create(context.Background(), text)
	if err != nil {
		t.Fatalf("Failed to create test idea: %v", err)
	}
	return idea
}

// UpvoteTestIdea upvotes an idea n times
func UpvoteTestIdea(t *testing.T, st store.Store, id int64, n int) {
	t.Helper()

	for i := 0; i < n; i++ {
		if _, err := st.Upvote(context.Background(), id); err != nil {
			t.Fatalf("Failed to upvote test idea %d: %v", id, err)
		}
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
