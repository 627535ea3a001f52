package httpx

import (
	"log/slog"
	"net/http"

	domainauth "github.com/partyhub/party-ui-api/internal/domain/auth"
	"github.com/partyhub/party-ui-api/internal/ports"
)

// RouterOptions groups everything the router needs.
type RouterOptions struct {
	Svc       SessionServiceInterface
	Resources ports.ResourceClientFactory
	Cookie    CookieConfig
	// Events enables the admin audit endpoints when non-nil.
	Events AuthEventReader
	// Allowed overrides the default proxy allowlist when non-nil.
	Allowed map[string]bool
	Logger  *slog.Logger
}

// NewRouter builds the gateway's route table.
func NewRouter(opts RouterOptions) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	authHandlers := &AuthHandlers{Svc: opts.Svc, Cookie: opts.Cookie, Logger: logger}
	rootHandlers := &RootHandlers{Svc: opts.Svc, Cookie: opts.Cookie, Logger: logger}
	resourceHandlers := &ResourceHandlers{
		Factory: opts.Resources,
		Svc:     opts.Svc,
		Cookie:  opts.Cookie,
		Allowed: opts.Allowed,
		Logger:  logger,
	}

	authOpts := AuthMiddlewareOptions{Svc: opts.Svc, Cookie: opts.Cookie}
	requireBrowser := RequireAuthBrowser(authOpts)
	requireAPI := RequireAuth(authOpts)

	mux := http.NewServeMux()

	// Health probes stay unauthenticated.
	mux.HandleFunc("GET /healthz", healthHandler)
	mux.HandleFunc("HEAD /healthz", healthHandler)

	// Entry-point dispatch and login pages.
	mux.HandleFunc("GET /{$}", rootHandlers.Dispatch)
	mux.HandleFunc("GET /login/{family}", rootHandlers.LoginPage)

	// Credential lifecycle.
	mux.HandleFunc("POST /auth/login", authHandlers.AdminLogin)
	mux.HandleFunc("POST /persons/login", authHandlers.PersonLogin)
	mux.HandleFunc("POST /organizations/login", authHandlers.OrganizationLogin)
	mux.HandleFunc("POST /auth/logout", authHandlers.Logout)
	mux.HandleFunc("GET /auth/status", authHandlers.Status)

	// Role homes sit behind the browser-aware guard.
	mux.Handle("GET /homes/{role}", requireBrowser(http.HandlerFunc(rootHandlers.Home)))

	// Audit endpoints are restricted to admin roles that manage people data.
	if opts.Events != nil {
		eventHandlers := &EventHandlers{Events: opts.Events, Logger: logger}
		requireAdmin := RequireRole(authOpts, domainauth.RoleSystemAdmin, domainauth.RoleHRAdmin)
		mux.Handle("GET /admin/auth-events", requireAdmin(http.HandlerFunc(eventHandlers.List)))
		mux.Handle("GET /admin/auth-event-counts", requireAdmin(http.HandlerFunc(eventHandlers.Counts)))
	}

	// CRUD proxy for allowlisted backend collections.
	mux.Handle("GET /api/{resource}", requireAPI(http.HandlerFunc(resourceHandlers.List)))
	mux.Handle("POST /api/{resource}", requireAPI(http.HandlerFunc(resourceHandlers.Create)))
	mux.Handle("GET /api/{resource}/{id}", requireAPI(http.HandlerFunc(resourceHandlers.Get)))
	mux.Handle("PUT /api/{resource}/{id}", requireAPI(http.HandlerFunc(resourceHandlers.Update)))
	mux.Handle("DELETE /api/{resource}/{id}", requireAPI(http.HandlerFunc(resourceHandlers.Delete)))

	// Outer middleware: recover first so panics in logging still 500 cleanly.
	var handler http.Handler = mux
	handler = BrowserDetection()(handler)
	handler = Logging(logger)(handler)
	handler = RequestID()(handler)
	handler = Recover(logger)(handler)
	return handler
}
