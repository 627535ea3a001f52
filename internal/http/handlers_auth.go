package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	domainauth "github.com/partyhub/party-ui-api/internal/domain/auth"
	"github.com/partyhub/party-ui-api/internal/ports"
	"github.com/partyhub/party-ui-api/internal/service"
)

// SessionServiceInterface defines the session operations the HTTP layer needs.
type SessionServiceInterface interface {
	Login(ctx context.Context, family service.LoginFamily, in ports.LoginInput) (*service.LoginResult, error)
	Resolve(ctx context.Context, token string) (domainauth.Session, error)
	Logout(ctx context.Context, token string)
	ForceLogout(ctx context.Context, token string)
}

// AuthHandlers provides HTTP handlers for the credential lifecycle: the
// three login endpoints, logout, and the status probe.
type AuthHandlers struct {
	Svc    SessionServiceInterface
	Cookie CookieConfig
	Logger *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// adminLoginRequest mirrors the backend admin login payload.
type adminLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// usernameLoginRequest mirrors the person and organization login payloads.
type usernameLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AdminLogin handles POST /auth/login.
func (h *AuthHandlers) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req adminLoginRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if req.Email == "" || req.Password == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "missing_credentials",
			Err:     errors.New("email and password are required"),
		})
		return
	}
	h.login(w, r, service.LoginFamilyAdmin, ports.LoginInput{Email: req.Email, Password: req.Password})
}

// PersonLogin handles POST /persons/login.
func (h *AuthHandlers) PersonLogin(w http.ResponseWriter, r *http.Request) {
	h.usernameLogin(w, r, service.LoginFamilyPerson)
}

// OrganizationLogin handles POST /organizations/login.
func (h *AuthHandlers) OrganizationLogin(w http.ResponseWriter, r *http.Request) {
	h.usernameLogin(w, r, service.LoginFamilyOrganization)
}

func (h *AuthHandlers) usernameLogin(w http.ResponseWriter, r *http.Request, family service.LoginFamily) {
	var req usernameLoginRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if req.Username == "" || req.Password == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "missing_credentials",
			Err:     errors.New("username and password are required"),
		})
		return
	}
	h.login(w, r, family, ports.LoginInput{Username: req.Username, Password: req.Password})
}

// login runs the shared login flow: exchange credentials, persist the
// session, then hand the credential to the browser. The cookie is only set
// once the session exists, so the client never holds an unresolvable token.
func (h *AuthHandlers) login(w http.ResponseWriter, r *http.Request, family service.LoginFamily, in ports.LoginInput) {
	result, err := h.Svc.Login(r.Context(), family, in)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidLogin):
			WriteError(w, ErrorParams{
				Code:    http.StatusUnauthorized,
				ErrCode: "invalid_credentials",
				Err:     errors.New("invalid credentials"),
			})
		case errors.Is(err, service.ErrAuthResolution):
			WriteError(w, ErrorParams{
				Code:    http.StatusUnauthorized,
				ErrCode: "resolution_failed",
				Err:     errors.New("credential could not be resolved to a profile"),
			})
		default:
			h.logger().ErrorContext(r.Context(), "login failed", "family", string(family), "error", err)
			WriteError(w, ErrorParams{
				Code:    http.StatusInternalServerError,
				ErrCode: "login_failed",
				Err:     errors.New("login failed"),
			})
		}
		return
	}

	setCredentialCookie(w, h.Cookie, result.Token)

	home, _ := domainauth.HomePath(result.Session.Role)
	WriteJSON(w, http.StatusOK, map[string]any{
		"role":      result.Session.Role,
		"home":      home,
		"principal": result.Session.Principal,
	})
}

// Logout handles POST /auth/logout. The local session and cookie always go
// away, whatever state the backend or store is in.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if token := readCredential(r); token != "" {
		h.Svc.Logout(r.Context(), token)
	}
	clearCredentialCookie(w, h.Cookie)

	WriteJSON(w, http.StatusOK, map[string]string{
		"status":      "success",
		"redirect_to": domainauth.LoginPath,
	})
}

// Status handles GET /auth/status. It never errors: an absent or broken
// credential simply reports unauthenticated.
func (h *AuthHandlers) Status(w http.ResponseWriter, r *http.Request) {
	token := readCredential(r)
	if token == "" {
		WriteJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}

	session, err := h.Svc.Resolve(r.Context(), token)
	if err != nil {
		// Credential is dead; take it off the browser too.
		clearCredentialCookie(w, h.Cookie)
		WriteJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}

	home, _ := domainauth.HomePath(session.Role)
	WriteJSON(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"role":          session.Role,
		"home":          home,
		"principal":     session.Principal,
		"expires_at":    session.ExpiresAt,
	})
}
