package partyapi

// Package partyapi is the HTTP adapter for the party REST backend. It owns
// credential exchange (logins), profile resolution, and the generic resource
// client used by the CRUD proxy.

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/partyhub/party-ui-api/internal/ports"
)

// Shared sentinel errors for backend interactions.
var (
	// ErrUnauthorized is returned when the backend rejects the bearer
	// credential (401). Callers must treat the credential as invalid.
	ErrUnauthorized = ports.ErrCredentialRejected
	// ErrInvalidCredentials is returned when a login attempt fails.
	ErrInvalidCredentials = ports.ErrInvalidCredentials
)

const defaultTimeout = 10 * time.Second

// Config groups construction parameters for Client.
type Config struct {
	// BaseURL is the party backend base URL, e.g. "http://localhost:8080".
	BaseURL string
	// Timeout bounds each backend round trip. Zero means the default.
	Timeout time.Duration
	// HTTPClient overrides the transport used for unauthenticated calls
	// (logins). Optional; used mainly by tests.
	HTTPClient *http.Client
}

// Client talks to the party backend. It is safe for concurrent use.
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
}

// NewClient constructs a backend client from Config.
func NewClient(cfg Config) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, errors.New("partyapi: base URL is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		baseURL:    base,
		timeout:    timeout,
		httpClient: httpClient,
	}, nil
}

// bearerClient builds an HTTP client that attaches the credential as a
// Bearer token on every request.
func (c *Client) bearerClient(ctx context.Context, token string) *http.Client {
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	authed := oauth2.NewClient(ctx, src)
	authed.Timeout = c.timeout
	return authed
}

// StatusError carries the backend HTTP status so callers can decide whether
// an endpoint "does not apply" to a credential or something else broke.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend returned status %d: %s", e.StatusCode, e.Body)
}

// Status returns the backend HTTP status code.
func (e *StatusError) Status() int { return e.StatusCode }

// getJSON performs an authenticated GET and decodes the 2xx body into dst.
func (c *Client) getJSON(ctx context.Context, token, path string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request %s: %w", path, err)
	}
	resp, err := c.bearerClient(ctx, token).Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer closeBody(resp.Body)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return statusError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

// postJSON performs an unauthenticated POST (login family) and decodes the
// 2xx body into dst.
func (c *Client) postJSON(ctx context.Context, path string, body, dst any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal %s request: %w", path, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("POST %s: %w", path, err)
	}
	defer closeBody(resp.Body)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return statusError(resp)
	}
	if dst == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

// statusError reads a bounded amount of the error body for diagnostics.
func statusError(resp *http.Response) error {
	const maxErrBody = 2048
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrBody))
	return &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
}

func closeBody(body io.ReadCloser) {
	// Drain so the underlying connection can be reused.
	_, _ = io.Copy(io.Discard, io.LimitReader(body, 4096))
	_ = body.Close()
}
