package partyapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Resource is a generic CRUD client for one backend collection. It forwards
// JSON bodies untouched; the gateway does not re-validate entity fields.
type Resource struct {
	client *Client
	path   string
}

// Resource returns a CRUD client for the given backend collection path,
// e.g. "/countries".
func (c *Client) Resource(path string) *Resource {
	return &Resource{client: c, path: "/" + strings.Trim(path, "/")}
}

// List fetches the whole collection.
func (r *Resource) List(ctx context.Context, token string) (json.RawMessage, error) {
	return r.do(ctx, resourceRequest{token: token, method: http.MethodGet, path: r.path + "/"})
}

// Get fetches one record by id.
func (r *Resource) Get(ctx context.Context, token, id string) (json.RawMessage, error) {
	return r.do(ctx, resourceRequest{token: token, method: http.MethodGet, path: r.itemPath(id)})
}

// Create posts a new record.
func (r *Resource) Create(ctx context.Context, token string, payload json.RawMessage) (json.RawMessage, error) {
	return r.do(ctx, resourceRequest{token: token, method: http.MethodPost, path: r.path + "/", body: payload})
}

// Update replaces a record by id.
func (r *Resource) Update(ctx context.Context, token, id string, payload json.RawMessage) (json.RawMessage, error) {
	return r.do(ctx, resourceRequest{token: token, method: http.MethodPut, path: r.itemPath(id), body: payload})
}

// DeleteByID removes a record by id.
func (r *Resource) DeleteByID(ctx context.Context, token, id string) error {
	_, err := r.do(ctx, resourceRequest{token: token, method: http.MethodDelete, path: r.itemPath(id)})
	return err
}

func (r *Resource) itemPath(id string) string {
	return r.path + "/" + url.PathEscape(id)
}

// resourceRequest groups parameters for do to keep parameter count low.
type resourceRequest struct {
	token  string
	method string
	path   string
	body   json.RawMessage
}

func (r *Resource) do(ctx context.Context, req resourceRequest) (json.RawMessage, error) {
	var body io.Reader
	if len(req.body) > 0 {
		body = bytes.NewReader(req.body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.method, r.client.baseURL+req.path, body)
	if err != nil {
		return nil, fmt.Errorf("build request %s %s: %w", req.method, req.path, err)
	}
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := r.client.bearerClient(ctx, req.token).Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.method, req.path, err)
	}
	defer closeBody(resp.Body)

	if resp.StatusCode == http.StatusUnauthorized {
		// A downstream 401 means the session is gone; the HTTP layer
		// turns this into a forced logout.
		return nil, fmt.Errorf("%w: %s %s", ErrUnauthorized, req.method, req.path)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, statusError(resp)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s %s response: %w", req.method, req.path, err)
	}
	if len(raw) == 0 {
		return nil, nil
	}
	if !json.Valid(raw) {
		return nil, errors.New("backend returned invalid JSON")
	}
	return json.RawMessage(raw), nil
}
