// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/danielhkuo/idea-board/models"
	"github.com/danielhkuo/idea-board/store"
)

const (
	DefaultMaxRetries = 3
	DefaultBaseDelay  = time.Second
	// MaxRetriesLimit caps Config.MaxRetries so the doubling delay stays sane.
	MaxRetriesLimit = 10

	// maxBodySize bounds how much of a response is read.
	maxBodySize = 1 << 20
)

// Config selects the API origin and the retry budget.
type Config struct {
	BaseURL    string
	MaxRetries int
	BaseDelay  time.Duration
	HTTPClient *http.Client
}

// DefaultConfig returns a config with three retries and a one second base delay.
func DefaultConfig(baseURL string) Config {
	return Config{
		BaseURL:    baseURL,
		MaxRetries: DefaultMaxRetries,
		BaseDelay:  DefaultBaseDelay,
	}
}

// Option customizes a Client.
type Option func(*Client)

// WithSleep replaces the backoff wait. fn must return ctx.Err() if ctx ends first.
func WithSleep(fn func(ctx context.Context, d time.Duration) error) Option {
	return func(c *Client) { c.sleep = fn }
}

// Client talks to the idea API. Each call is one logical command: an
// initial attempt plus up to MaxRetries retries on 429 or connection
// failure, waiting BaseDelay*2^k before retry k. Calls share no retry
// state, so one call backing off never delays another.
type Client struct {
	baseURL    string
	maxRetries int
	baseDelay  time.Duration
	http       *http.Client
	sleep      func(ctx context.Context, d time.Duration) error
}

func New(cfg Config, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		maxRetries: cfg.MaxRetries,
		baseDelay:  cfg.BaseDelay,
		http:       cfg.HTTPClient,
		sleep:      sleepContext,
	}
	c.maxRetries = min(max(c.maxRetries, 0), MaxRetriesLimit)
	if c.baseDelay <= 0 {
		c.baseDelay = DefaultBaseDelay
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: 30 * time.Second}
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// List returns every idea in canonical order. The server's order is not
// trusted; the result is re-sorted locally.
func (c *Client) List(ctx context.Context) ([]models.Idea, error) {
	var ideas []models.Idea
	if err := c.do(ctx, http.MethodGet, "/ideas/", nil, &ideas); err != nil {
		return nil, err
	}
	if ideas == nil {
		ideas = []models.Idea{}
	}
	store.SortIdeas(ideas)
	return ideas, nil
}

func (c *Client) Create(ctx context.Context, text string) (models.Idea, error) {
	var idea models.Idea
	err := c.do(ctx, http.MethodPost, "/ideas/", models.CreateIdeaRequest{Text: &text}, &idea)
	return idea, err
}

func (c *Client) Get(ctx context.Context, id int64) (models.Idea, error) {
	var idea models.Idea
	err := c.do(ctx, http.MethodGet, ideaPath(id), nil, &idea)
	return idea, err
}

// Upvote returns the updated idea when the server sends one. A bodiless
// success yields an Idea carrying only the id.
func (c *Client) Upvote(ctx context.Context, id int64) (models.Idea, error) {
	idea := models.Idea{ID: id}
	err := c.do(ctx, http.MethodPatch, ideaPath(id)+"upvote/", nil, &idea)
	return idea, err
}

func (c *Client) Delete(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, ideaPath(id), nil, nil)
}

func ideaPath(id int64) string {
	return "/ideas/" + strconv.FormatInt(id, 10) + "/"
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
	}

	var last error
	for attempt := 0; ; attempt++ {
		err := c.attempt(ctx, method, path, payload, out)
		if err == nil {
			return nil
		}
		if !retryable(err) {
			return err
		}
		last = err

		if attempt >= c.maxRetries {
			slog.Warn("giving up on request", "method", method, "path", path, "attempts", attempt+1, "error", err)
			return &ExhaustedError{Attempts: attempt + 1, Last: last}
		}

		delay := backoff(c.baseDelay, attempt)
		slog.Debug("retrying request", "method", method, "path", path, "attempt", attempt+1, "delay", delay, "error", err)
		if err := c.sleep(ctx, delay); err != nil {
			return err
		}
	}
}

// backoff returns base*2^attempt, saturating instead of overflowing.
func backoff(base time.Duration, attempt int) time.Duration {
	if attempt >= 63 || base > math.MaxInt64>>attempt {
		return math.MaxInt64
	}
	return base << attempt
}

// attempt performs one HTTP round trip and classifies the outcome.
func (c *Client) attempt(ctx context.Context, method, path string, payload []byte, out any) error {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %v", ErrTransportFailure, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: reading response: %v", ErrTransportFailure, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := newAPIError(resp.StatusCode, data)
		if seconds, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil {
			apiErr.RetryAfter = time.Duration(seconds) * time.Second
		}
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: malformed response body: %v", ErrServer, err)
	}
	return nil
}
