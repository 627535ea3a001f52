package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	domainauth "github.com/partyhub/party-ui-api/internal/domain/auth"
	"github.com/partyhub/party-ui-api/internal/ports"
)

// maxProxyBody bounds request bodies forwarded to the backend.
const maxProxyBody = 1 << 20

// ResourceHandlers proxies CRUD traffic for allowlisted backend collections.
// Payloads pass through untouched; the gateway only contributes the
// credential and the forced-logout behavior when the backend stops
// accepting it.
type ResourceHandlers struct {
	Factory ports.ResourceClientFactory
	Svc     SessionServiceInterface
	Cookie  CookieConfig
	Allowed map[string]bool
	Logger  *slog.Logger
}

func (h *ResourceHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

func (h *ResourceHandlers) allowed() map[string]bool {
	if h.Allowed != nil {
		return h.Allowed
	}
	return defaultProxyResources
}

// resource validates the {resource} path value against the allowlist and
// returns a client for it.
func (h *ResourceHandlers) resource(w http.ResponseWriter, r *http.Request) (ports.ResourceClient, bool) {
	name := r.PathValue("resource")
	if !h.allowed()[name] {
		WriteError(w, ErrorParams{
			Code:    http.StatusNotFound,
			ErrCode: "unknown_resource",
			Err:     errors.New("unknown resource"),
		})
		return nil, false
	}
	return h.Factory(name), true
}

// List handles GET /api/{resource}.
func (h *ResourceHandlers) List(w http.ResponseWriter, r *http.Request) {
	client, ok := h.resource(w, r)
	if !ok {
		return
	}
	raw, err := client.List(r.Context(), GetCredentialFromContext(r.Context()))
	if err != nil {
		h.writeProxyError(w, r, err)
		return
	}
	WriteRawJSON(w, http.StatusOK, raw)
}

// Get handles GET /api/{resource}/{id}.
func (h *ResourceHandlers) Get(w http.ResponseWriter, r *http.Request) {
	client, ok := h.resource(w, r)
	if !ok {
		return
	}
	raw, err := client.Get(r.Context(), GetCredentialFromContext(r.Context()), r.PathValue("id"))
	if err != nil {
		h.writeProxyError(w, r, err)
		return
	}
	WriteRawJSON(w, http.StatusOK, raw)
}

// Create handles POST /api/{resource}.
func (h *ResourceHandlers) Create(w http.ResponseWriter, r *http.Request) {
	client, ok := h.resource(w, r)
	if !ok {
		return
	}
	body, ok := h.readBody(w, r)
	if !ok {
		return
	}
	raw, err := client.Create(r.Context(), GetCredentialFromContext(r.Context()), body)
	if err != nil {
		h.writeProxyError(w, r, err)
		return
	}
	WriteRawJSON(w, http.StatusCreated, raw)
}

// Update handles PUT /api/{resource}/{id}.
func (h *ResourceHandlers) Update(w http.ResponseWriter, r *http.Request) {
	client, ok := h.resource(w, r)
	if !ok {
		return
	}
	body, ok := h.readBody(w, r)
	if !ok {
		return
	}
	raw, err := client.Update(r.Context(), GetCredentialFromContext(r.Context()), r.PathValue("id"), body)
	if err != nil {
		h.writeProxyError(w, r, err)
		return
	}
	WriteRawJSON(w, http.StatusOK, raw)
}

// Delete handles DELETE /api/{resource}/{id}.
func (h *ResourceHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	client, ok := h.resource(w, r)
	if !ok {
		return
	}
	if err := client.DeleteByID(r.Context(), GetCredentialFromContext(r.Context()), r.PathValue("id")); err != nil {
		h.writeProxyError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ResourceHandlers) readBody(w http.ResponseWriter, r *http.Request) (json.RawMessage, bool) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxProxyBody))
	if err != nil {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_body",
			Err:     err,
		})
		return nil, false
	}
	if !json.Valid(body) {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_json",
			Err:     errors.New("request body is not valid JSON"),
		})
		return nil, false
	}
	return body, true
}

// writeProxyError maps backend failures onto gateway responses. A 401 from
// the backend means the credential died mid-session: the session is purged,
// the cookie cleared, and the client told where to re-authenticate.
func (h *ResourceHandlers) writeProxyError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, ports.ErrCredentialRejected) {
		if token := GetCredentialFromContext(r.Context()); token != "" {
			h.Svc.ForceLogout(r.Context(), token)
		}
		clearCredentialCookie(w, h.Cookie)
		WriteJSON(w, http.StatusUnauthorized, map[string]string{
			"error":       "session_expired",
			"message":     "credential is no longer accepted by the backend",
			"redirect_to": domainauth.LoginPath,
		})
		return
	}

	var statusErr interface{ Status() int }
	if errors.As(err, &statusErr) {
		h.logger().WarnContext(r.Context(), "backend error", "status", statusErr.Status(), "error", err)
		WriteError(w, ErrorParams{
			Code:    statusErr.Status(),
			ErrCode: "backend_error",
			Err:     errors.New("backend request failed"),
		})
		return
	}

	h.logger().ErrorContext(r.Context(), "proxy request failed", "error", err)
	WriteError(w, ErrorParams{
		Code:    http.StatusBadGateway,
		ErrCode: "backend_unreachable",
		Err:     errors.New("backend request failed"),
	})
}
