// Package api provides the HTTP client for the analytics backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jalikoi/analytics-tui/internal/logger"
	"github.com/jalikoi/analytics-tui/internal/models"
	"github.com/jalikoi/analytics-tui/internal/version"
)

// TokenSource supplies the bearer credential. An empty token sends no
// Authorization header.
type TokenSource interface {
	Token() string
}

// StaticToken is a fixed bearer credential.
type StaticToken string

// Token returns the credential.
func (t StaticToken) Token() string { return string(t) }

// Recorder receives one entry per completed request.
type Recorder interface {
	RecordCall(call models.APICall)
}

// Client talks to the analytics API.
type Client struct {
	tokens     TokenSource
	recorder   Recorder
	httpClient *http.Client
	baseURL    string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithRecorder registers a per-request recorder.
func WithRecorder(r Recorder) Option {
	return func(c *Client) { c.recorder = r }
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// NewClient creates a client for baseURL.
func NewClient(baseURL string, tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		tokens:     tokens,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// get issues a GET and decodes the JSON response into out.
func (c *Client) get(ctx context.Context, path string, params url.Values, windowKey string, out any) error {
	return c.do(ctx, http.MethodGet, path, params, nil, windowKey, out)
}

func (c *Client) do(ctx context.Context, method, path string, params url.Values, body any, windowKey string, out any) (err error) {
	endpoint := endpointName(path)
	requestID := uuid.NewString()
	start := time.Now()
	status := 0

	defer func() {
		if c.recorder == nil {
			return
		}
		call := models.APICall{
			Timestamp:  start,
			Endpoint:   endpoint,
			Method:     method,
			RequestID:  requestID,
			WindowKey:  windowKey,
			StatusCode: status,
			DurationMs: int(time.Since(start).Milliseconds()),
		}
		if err != nil {
			call.Error = err.Error()
		}
		c.recorder.RecordCall(call)
	}()

	target := c.baseURL + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode %s request: %w", endpoint, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("failed to create %s request: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if tok := c.tokens.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s request failed: %w", endpoint, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Error("failed to close response body", "error", err)
		}
	}()
	status = resp.StatusCode

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read %s response: %w", endpoint, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newAPIError(endpoint, resp.StatusCode, data)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse %s response: %w", endpoint, err)
	}
	return nil
}

// endpointName strips path parameters so metrics and audit rows group by
// route rather than by segment name.
func endpointName(path string) string {
	if strings.HasPrefix(path, segmentCustomersPath) {
		return segmentCustomersPath + "{segment}"
	}
	return path
}
