package httpx

import (
	"log/slog"
	"net/http"

	domainauth "github.com/partyhub/party-ui-api/internal/domain/auth"
)

// RootHandlers owns the entry-point dispatch: landing on / sends every
// visitor to exactly one place, the login page or their role's home.
type RootHandlers struct {
	Svc    SessionServiceInterface
	Cookie CookieConfig
	Logger *slog.Logger
}

func (h *RootHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// Dispatch handles GET /. The decision chain is strict:
// no credential -> login page; credential that resolves -> role home;
// anything else -> purge the credential and fall back to the login page.
func (h *RootHandlers) Dispatch(w http.ResponseWriter, r *http.Request) {
	token := readCredential(r)
	if token == "" {
		http.Redirect(w, r, domainauth.LoginPath, http.StatusSeeOther)
		return
	}

	session, err := h.Svc.Resolve(r.Context(), token)
	if err != nil {
		h.logger().InfoContext(r.Context(), "credential did not resolve, sending to login", "error", err)
		clearCredentialCookie(w, h.Cookie)
		http.Redirect(w, r, domainauth.LoginPath, http.StatusSeeOther)
		return
	}

	home, ok := domainauth.HomePath(session.Role)
	if !ok {
		// A role outside the fixed table has no home; treat the
		// credential as unusable rather than guessing a destination.
		h.logger().WarnContext(r.Context(), "session carries unroutable role", "role", string(session.Role))
		h.Svc.ForceLogout(r.Context(), token)
		clearCredentialCookie(w, h.Cookie)
		http.Redirect(w, r, domainauth.LoginPath, http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, home, http.StatusSeeOther)
}

// Home handles GET /homes/{role}. The route guard upstream guarantees a
// session; here we only keep users on their own home page.
func (h *RootHandlers) Home(w http.ResponseWriter, r *http.Request) {
	session := GetSessionFromContext(r.Context())
	if session == nil {
		http.Redirect(w, r, domainauth.LoginPath, http.StatusSeeOther)
		return
	}

	requested := domainauth.Role(r.PathValue("role"))
	if requested != session.Role {
		// Wrong door: send them to the home that matches their session.
		if home, ok := domainauth.HomePath(session.Role); ok {
			http.Redirect(w, r, home, http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, domainauth.LoginPath, http.StatusSeeOther)
		return
	}

	home, _ := domainauth.HomePath(session.Role)
	WriteJSON(w, http.StatusOK, map[string]any{
		"role":      session.Role,
		"home":      home,
		"principal": session.Principal,
	})
}

// LoginPage handles GET /login/{family}. The gateway serves no HTML; it
// answers with the login endpoint the client should POST to, which also
// gives redirect targets a stable 200 destination.
func (h *RootHandlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	family := r.PathValue("family")
	var endpoint string
	switch family {
	case "admin":
		endpoint = "/auth/login"
	case "person":
		endpoint = "/persons/login"
	case "organization":
		endpoint = "/organizations/login"
	default:
		http.Redirect(w, r, domainauth.LoginPath, http.StatusSeeOther)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"login":    family,
		"endpoint": endpoint,
	})
}
