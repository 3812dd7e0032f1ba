// Package backend is the HTTP client for the recipe server. Every call is a
// single form-encoded POST; nothing is retried.
package backend

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hammamikhairi/ottocart/internal/domain"
	"github.com/hammamikhairi/ottocart/internal/logger"
)

// Compile-time interface check.
var _ domain.Poster = (*Client)(nil)

// RequestIDHeader carries the submission id to the server.
const RequestIDHeader = "X-Request-ID"

// maxBody caps how much of a response is read.
const maxBody = 1 << 20

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Path   string
	Code   int
	Status string
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("backend: POST %s: %s", e.Path, e.Status)
	}
	return fmt.Sprintf("backend: POST %s: %s: %s", e.Path, e.Status, truncate(e.Body, 200))
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithHTTPTimeout sets the HTTP client timeout.
func WithHTTPTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.http.Timeout = d }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *Client) { c.http = h }
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) { c.userAgent = ua }
}

// Client posts forms to the recipe server.
type Client struct {
	baseURL   *url.URL
	userAgent string
	http      *http.Client
	log       *logger.Logger
}

// NewClient creates a client for the server at baseURL.
func NewClient(baseURL string, log *logger.Logger, opts ...ClientOption) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("backend: parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("backend: base url %q must be http or https", baseURL)
	}
	c := &Client{
		baseURL:   u,
		userAgent: "ottocart",
		http:      &http.Client{Timeout: 30 * time.Second},
		log:       log,
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// BaseURL returns the server root.
func (c *Client) BaseURL() string { return c.baseURL.String() }

// PostForm sends form to path and returns the response body.
func (c *Client) PostForm(ctx context.Context, path string, form url.Values) ([]byte, error) {
	target := c.baseURL.JoinPath(path)
	encoded := form.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target.String(), strings.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("backend: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if id, ok := domain.RequestID(ctx); ok {
		req.Header.Set(RequestIDHeader, id)
	}

	c.log.Debug("POST %s (%d bytes)", target, len(encoded))

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("backend: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("backend: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Path: path, Code: resp.StatusCode, Status: resp.Status, Body: strings.TrimSpace(string(body))}
	}

	c.log.Debug("reply %s (%d bytes): %s", resp.Status, len(body), truncate(string(body), 120))
	return body, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
