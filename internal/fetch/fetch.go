/*
Copyright © 2025 Mirrorkit Authors <oss@mirrorkit.dev>
*/

// Package fetch performs single-shot HTTP downloads into a contained
// directory tree. Failures are reported as typed error values so callers can
// log each class distinctly and continue.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mirrorkit/framerfix/pkg/safeio"
)

// StatusError reports a non-2xx HTTP response.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d for %s", e.StatusCode, e.URL)
}

// ConnError reports a transport-level failure (connection refused, name
// resolution, timeout).
type ConnError struct {
	URL string
	Err error
}

func (e *ConnError) Error() string {
	return fmt.Sprintf("connection error for %s: %v", e.URL, e.Err)
}

func (e *ConnError) Unwrap() error { return e.Err }

// Client downloads remote files one at a time.
type Client struct {
	http *http.Client
}

// NewClient creates a download client with the given per-request timeout.
// Non-positive timeouts fall back to 30 seconds.
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		http: &http.Client{Timeout: timeout},
	}
}

// Download performs a blocking GET of url and writes the whole body to
// relPath under baseDir, creating parent directories as needed. A failed
// download may leave the destination absent or partially written; callers
// log and move on.
func (c *Client) Download(ctx context.Context, url, baseDir, relPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &ConnError{URL: url, Err: err}
	}
	defer resp.Body.Close() //nolint:errcheck // Response body close errors are typically ignored in defer

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	return safeio.WriteFileContained(baseDir, relPath, data)
}
