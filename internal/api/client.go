// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// Configuration constants for the backend API.
const (
	// DefaultTimeout is the default timeout for ordinary API requests.
	DefaultTimeout = 30 * time.Second

	// GenerateTimeout is the timeout for generation requests, which invoke
	// an LLM server-side and routinely take much longer than CRUD calls.
	GenerateTimeout = 3 * time.Minute

	// MaxResponseSize is the maximum allowed response body size.
	// SECURITY: Response size limit prevents memory exhaustion.
	MaxResponseSize = 16 * 1024 * 1024 // 16MB: generated artifacts can be large

	// healthInterval is the minimum spacing between health probes.
	healthInterval = 10 * time.Second
)

// PERFORMANCE: Connection pooling reduces TCP handshake overhead.
// Shared HTTP transport for all backend requests.
var sharedTransport = &http.Transport{
	MaxIdleConns:        100,
	MaxIdleConnsPerHost: 10,
	IdleConnTimeout:     90 * time.Second,
	TLSHandshakeTimeout: 10 * time.Second,
}

// Error variables for common backend failures.
var (
	// ErrUnauthorized indicates the request needs a valid credential.
	ErrUnauthorized = errors.New("authentication required")

	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrBackendUnavailable indicates the backend could not be reached.
	ErrBackendUnavailable = errors.New("backend unreachable")
)

// APIError represents a non-2xx response from the backend. Message carries
// the backend-provided detail verbatim so callers can surface it unchanged.
type APIError struct {
	Status  int
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend error (HTTP %d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("backend error (HTTP %d)", e.Status)
}

// errorBody is the shape of FastAPI-style error responses.
type errorBody struct {
	Detail string `json:"detail"`
}

// TokenSource supplies the current bearer credential. An empty string means
// unauthenticated; the token is read per request, never cached, so a logout
// takes effect before the next call is issued.
type TokenSource interface {
	Token() string
}

// StaticToken is a TokenSource that always returns the same value. Useful in
// tests and for one-shot CLI invocations.
type StaticToken string

// Token implements TokenSource.
func (t StaticToken) Token() string { return string(t) }

// =============================================================================
// CLIENT
// =============================================================================

// Client is a client for the Webmatic backend API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	genClient  *http.Client
	tokens     TokenSource
	userAgent  string

	// healthLimiter throttles the best-effort health probe so UI refresh
	// loops cannot hammer the endpoint.
	healthLimiter *rate.Limiter
}

// NewClient creates a client for the backend at baseURL. The /api prefix is
// appended here, matching the ingress contract, so callers pass the bare
// backend origin.
func NewClient(baseURL string, tokens TokenSource) *Client {
	base := strings.TrimSuffix(baseURL, "/")
	if !strings.HasSuffix(base, "/api") {
		base += "/api"
	}
	if tokens == nil {
		tokens = StaticToken("")
	}
	return &Client{
		baseURL: base,
		httpClient: &http.Client{
			Transport: sharedTransport,
			Timeout:   DefaultTimeout,
		},
		genClient: &http.Client{
			Transport: sharedTransport,
			Timeout:   GenerateTimeout,
		},
		tokens:        tokens,
		userAgent:     "webmatic-tui/0.1.0",
		healthLimiter: rate.NewLimiter(rate.Every(healthInterval), 1),
	}
}

// WithTimeout sets the request timeout for ordinary calls.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	c.httpClient.Timeout = timeout
	return c
}

// BaseURL returns the resolved base URL including the /api prefix.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// =============================================================================
// REQUEST PLUMBING
// =============================================================================

// do issues one request and decodes a JSON response into out (out may be nil
// for calls where the body is irrelevant). No retries: failures surface once.
func (c *Client) do(ctx context.Context, httpClient *http.Client, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req)

	start := time.Now()
	resp, err := httpClient.Do(req)

	// SECURITY: Clear Authorization header immediately after the request so
	// the credential cannot leak through request logging.
	req.Header.Del("Authorization")

	if err != nil {
		log.Printf("API %s %s failed: %v", method, path, err)
		return fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()
	log.Printf("API %s %s: %d (%v)", method, path, resp.StatusCode, time.Since(start).Round(time.Millisecond))

	data, err := readResponse(resp)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errorFromResponse(resp.StatusCode, data)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// get is shorthand for a GET with the default client.
func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, c.httpClient, http.MethodGet, path, nil, out)
}

// post is shorthand for a POST with the default client.
func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, c.httpClient, http.MethodPost, path, body, out)
}

// setHeaders sets the headers required on every backend request. The bearer
// token is read from the source at call time.
func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// readResponse reads the response body with a size limit.
//
// SECURITY: Response size limit prevents memory exhaustion.
func readResponse(resp *http.Response) ([]byte, error) {
	// Read one byte past the limit so a body of exactly MaxResponseSize
	// bytes is distinguishable from a truncated oversized one.
	limited := io.LimitReader(resp.Body, MaxResponseSize+1)
	body, err := io.ReadAll(limited)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if int64(len(body)) > MaxResponseSize {
		return nil, fmt.Errorf("response exceeded maximum size of %d bytes", MaxResponseSize)
	}
	return body, nil
}

// errorFromResponse converts a non-2xx response into an appropriate error,
// preserving the backend's detail message verbatim when one is present.
func errorFromResponse(status int, body []byte) error {
	var eb errorBody
	detail := ""
	if err := json.Unmarshal(body, &eb); err == nil {
		detail = eb.Detail
	}

	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		if detail != "" {
			return fmt.Errorf("%w: %s", ErrUnauthorized, detail)
		}
		return ErrUnauthorized
	case http.StatusNotFound:
		if detail != "" {
			return fmt.Errorf("%w: %s", ErrNotFound, detail)
		}
		return ErrNotFound
	default:
		if detail == "" {
			detail = strings.TrimSpace(string(body))
		}
		return &APIError{Status: status, Message: detail}
	}
}

// =============================================================================
// HEALTH
// =============================================================================

// HealthStatus is the payload of the best-effort health probe.
type HealthStatus struct {
	Status string `json:"status"`
}

// Health probes the backend. The probe is rate limited client-side; when a
// probe is suppressed the previous outcome is simply considered current, so
// callers treat a nil error with an empty status as "no news". Health
// failures are advisory only and never block any other operation.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	if !c.healthLimiter.Allow() {
		return nil, nil
	}
	var hs HealthStatus
	if err := c.get(ctx, "/health", &hs); err != nil {
		return nil, err
	}
	return &hs, nil
}
