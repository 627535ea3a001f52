package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"

	domainauth "github.com/partyhub/party-ui-api/internal/domain/auth"
)

// Logging returns a middleware that logs HTTP requests and responses.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			const defaultHTTPStatus = 200
			ww := &respWriter{ResponseWriter: w, status: defaultHTTPStatus}
			next.ServeHTTP(ww, r)
			logger.Info("http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.String("request_id", w.Header().Get(RequestIDHeader)),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

type respWriter struct {
	http.ResponseWriter
	status int
}

func (w *respWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// RequestID returns a middleware that tags each request with a correlation ID.
// Inbound IDs from trusted proxies are kept; otherwise a new one is minted.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(RequestIDHeader)
			if id == "" {
				id = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, id)
			next.ServeHTTP(w, r)
		})
	}
}

// Recover returns a middleware that recovers from panics and logs them.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("stack", string(debug.Stack())))
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// browserRequestKey is an unexported context key type for browser request detection.
type browserRequestKey struct{}

// BrowserDetection returns a middleware that detects browser requests vs API requests.
// Downstream auth middleware uses the result to pick between a login redirect
// and a JSON 401.
func BrowserDetection() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			isBrowser := isBrowserRequest(r)
			ctx := context.WithValue(r.Context(), browserRequestKey{}, isBrowser)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IsBrowserRequest returns true if the current request is from a browser.
func IsBrowserRequest(r *http.Request) bool {
	if val := r.Context().Value(browserRequestKey{}); val != nil {
		if isBrowser, ok := val.(bool); ok {
			return isBrowser
		}
	}
	// Fallback to direct detection if middleware wasn't used
	return isBrowserRequest(r)
}

// isBrowserRequest determines if a request is from a browser based on:
// 1. Path prefix - API routes start with /api/ or /auth/.
// 2. Accept header - browsers typically accept text/html.
func isBrowserRequest(r *http.Request) bool {
	if strings.HasPrefix(r.URL.Path, "/api/") || strings.HasPrefix(r.URL.Path, "/auth/") {
		return false
	}

	accept := r.Header.Get("Accept")
	if accept == "" {
		// No Accept header, assume browser for non-API routes
		return true
	}
	return strings.Contains(accept, "text/html")
}

// AuthMiddlewareOptions groups dependencies for the auth middleware set.
type AuthMiddlewareOptions struct {
	Svc    SessionServiceInterface
	Cookie CookieConfig
}

// resolveSession turns the request's credential cookie into a session.
// Returns the session, the raw token, and whether resolution succeeded.
func resolveSession(r *http.Request, svc SessionServiceInterface) (*domainauth.Session, string, bool) {
	token := readCredential(r)
	if token == "" {
		return nil, "", false
	}
	session, err := svc.Resolve(r.Context(), token)
	if err != nil {
		return nil, token, false
	}
	return &session, token, true
}

// withSession installs session and credential on the request context.
func withSession(r *http.Request, session *domainauth.Session, token string) *http.Request {
	ctx := SetSessionInContext(r.Context(), session)
	ctx = SetCredentialInContext(ctx, token)
	return r.WithContext(ctx)
}

// RequireAuth returns a middleware that requires a resolvable credential.
// Unauthenticated API requests get a 401 JSON response; a credential that no
// longer resolves is also cleared from the browser.
func RequireAuth(opts AuthMiddlewareOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, token, ok := resolveSession(r, opts.Svc)
			if !ok {
				if token != "" {
					clearCredentialCookie(w, opts.Cookie)
				}
				WriteError(w, ErrorParams{
					Code:    http.StatusUnauthorized,
					ErrCode: "authentication_required",
					Err:     errors.New("authentication required"),
				})
				return
			}
			next.ServeHTTP(w, withSession(r, session, token))
		})
	}
}

// RequireAuthBrowser returns a middleware that requires authentication with
// browser-aware behavior. Browser requests without a working credential are
// sent to the person login page; API requests get a 401 JSON response.
func RequireAuthBrowser(opts AuthMiddlewareOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, token, ok := resolveSession(r, opts.Svc)
			if !ok {
				if token != "" {
					clearCredentialCookie(w, opts.Cookie)
				}
				if IsBrowserRequest(r) {
					http.Redirect(w, r, domainauth.LoginPath, http.StatusSeeOther)
					return
				}
				WriteError(w, ErrorParams{
					Code:    http.StatusUnauthorized,
					ErrCode: "authentication_required",
					Err:     errors.New("authentication required"),
				})
				return
			}
			next.ServeHTTP(w, withSession(r, session, token))
		})
	}
}

// RequireRole returns a middleware that requires one of the given roles on
// top of authentication. Role membership is exact; there is no hierarchy
// between the six roles.
func RequireRole(opts AuthMiddlewareOptions, roles ...domainauth.Role) func(http.Handler) http.Handler {
	allowed := make(map[domainauth.Role]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, token, ok := resolveSession(r, opts.Svc)
			if !ok {
				if token != "" {
					clearCredentialCookie(w, opts.Cookie)
				}
				WriteError(w, ErrorParams{
					Code:    http.StatusUnauthorized,
					ErrCode: "authentication_required",
					Err:     errors.New("authentication required"),
				})
				return
			}
			if !allowed[session.Role] {
				WriteError(w, ErrorParams{
					Code:    http.StatusForbidden,
					ErrCode: "insufficient_permissions",
					Err:     errors.New("insufficient permissions"),
				})
				return
			}
			next.ServeHTTP(w, withSession(r, session, token))
		})
	}
}
