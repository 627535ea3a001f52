package httpx

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/partyhub/party-ui-api/internal/domain/auth"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAuthBrowser_BrowserRedirectsToLogin(t *testing.T) {
	mw := RequireAuthBrowser(AuthMiddlewareOptions{Svc: &fakeSessionService{}})
	handler := BrowserDetection()(mw(okHandler()))

	req := httptest.NewRequest(http.MethodGet, "/homes/person_user", nil)
	req.Header.Set("Accept", "text/html")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, domainauth.LoginPath, rec.Header().Get("Location"))
}

func TestRequireAuthBrowser_APIGets401(t *testing.T) {
	mw := RequireAuthBrowser(AuthMiddlewareOptions{Svc: &fakeSessionService{}})
	handler := BrowserDetection()(mw(okHandler()))

	req := httptest.NewRequest(http.MethodGet, "/api/countries", nil)
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "authentication_required")
}

func TestRequireAuthBrowser_StaleCredentialIsCleared(t *testing.T) {
	mw := RequireAuthBrowser(AuthMiddlewareOptions{Svc: &fakeSessionService{}})
	handler := BrowserDetection()(mw(okHandler()))

	req := withCredential(httptest.NewRequest(http.MethodGet, "/homes/person_user", nil), "stale")
	req.Header.Set("Accept", "text/html")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.True(t, clearedCredential(rec.Result().Cookies()))
}

func TestRequireAuth_InstallsSessionAndCredential(t *testing.T) {
	svc := &fakeSessionService{ResolveFunc: resolveAs(domainauth.RoleHRAdmin, testAdminPrincipal())}
	mw := RequireAuth(AuthMiddlewareOptions{Svc: svc})

	var gotRole domainauth.Role
	var gotToken string
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session := GetSessionFromContext(r.Context())
		require.NotNil(t, session)
		gotRole = session.Role
		gotToken = GetCredentialFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := withCredential(httptest.NewRequest(http.MethodGet, "/api/countries", nil), "token-1")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domainauth.RoleHRAdmin, gotRole)
	assert.Equal(t, "token-1", gotToken)
}

func TestRequireRole_ExactMatchOnly(t *testing.T) {
	svc := &fakeSessionService{ResolveFunc: resolveAs(domainauth.RoleOrganizationUser, testPersonPrincipal())}

	allowed := RequireRole(AuthMiddlewareOptions{Svc: svc}, domainauth.RoleOrganizationUser)(okHandler())
	denied := RequireRole(AuthMiddlewareOptions{Svc: svc}, domainauth.RoleSystemAdmin)(okHandler())

	req := withCredential(httptest.NewRequest(http.MethodGet, "/api/countries", nil), "token-1")
	rec := httptest.NewRecorder()
	allowed.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = withCredential(httptest.NewRequest(http.MethodGet, "/api/countries", nil), "token-1")
	rec = httptest.NewRecorder()
	denied.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "insufficient_permissions")
}

func TestRequireRole_Unauthenticated(t *testing.T) {
	handler := RequireRole(AuthMiddlewareOptions{Svc: &fakeSessionService{}}, domainauth.RoleHRAdmin)(okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/countries", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestBrowserDetection(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		accept string
		want   bool
	}{
		{"api path", "/api/countries", "text/html", false},
		{"auth path", "/auth/status", "text/html", false},
		{"html accept", "/homes/person_user", "text/html,application/xhtml+xml", true},
		{"no accept header", "/", "", true},
		{"json accept", "/homes/person_user", "application/json", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got bool
			handler := BrowserDetection()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = IsBrowserRequest(r)
				w.WriteHeader(http.StatusOK)
			}))
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.accept != "" {
				req.Header.Set("Accept", tt.accept)
			}
			handler.ServeHTTP(httptest.NewRecorder(), req)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRequestID_MintsAndPreserves(t *testing.T) {
	handler := RequestID()(okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, "req-42", rec.Header().Get(RequestIDHeader))
}

func TestRecover_Returns500(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := Recover(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHealthz(t *testing.T) {
	router := newGatewayRouter(&fakeSessionService{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodHead, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
}
