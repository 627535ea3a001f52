package httpx

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/partyhub/party-ui-api/internal/domain/auth"
)

func TestDispatch_NoCredentialGoesToLogin(t *testing.T) {
	h := &RootHandlers{Svc: &fakeSessionService{}}

	rec := httptest.NewRecorder()
	h.Dispatch(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, domainauth.LoginPath, rec.Header().Get("Location"))
	assert.False(t, clearedCredential(rec.Result().Cookies()))
}

func TestDispatch_ResolvedSessionGoesHome(t *testing.T) {
	tests := []struct {
		role domainauth.Role
		want string
	}{
		{domainauth.RoleSystemAdmin, "/homes/system_admin"},
		{domainauth.RoleBasetypeAdmin, "/homes/basetype_admin"},
		{domainauth.RoleHRAdmin, "/homes/hr_admin"},
		{domainauth.RoleOrganizationAdmin, "/homes/organization_admin"},
		{domainauth.RoleOrganizationUser, "/homes/organization_user"},
		{domainauth.RolePersonUser, "/homes/person_user"},
	}
	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			svc := &fakeSessionService{ResolveFunc: resolveAs(tt.role, testPersonPrincipal())}
			h := &RootHandlers{Svc: svc}

			rec := httptest.NewRecorder()
			h.Dispatch(rec, withCredential(httptest.NewRequest(http.MethodGet, "/", nil), "token-1"))

			assert.Equal(t, http.StatusSeeOther, rec.Code)
			assert.Equal(t, tt.want, rec.Header().Get("Location"))
		})
	}
}

func TestDispatch_ResolutionFailureClearsCredential(t *testing.T) {
	svc := &fakeSessionService{
		ResolveFunc: func(context.Context, string) (domainauth.Session, error) {
			return domainauth.Session{}, errors.New("no profile endpoint accepted the credential")
		},
	}
	h := &RootHandlers{Svc: svc}

	rec := httptest.NewRecorder()
	h.Dispatch(rec, withCredential(httptest.NewRequest(http.MethodGet, "/", nil), "stale"))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, domainauth.LoginPath, rec.Header().Get("Location"))
	assert.True(t, clearedCredential(rec.Result().Cookies()))
}

func TestDispatch_UnroutableRoleFallsBackToLogin(t *testing.T) {
	svc := &fakeSessionService{ResolveFunc: resolveAs(domainauth.Role("superuser"), testPersonPrincipal())}
	h := &RootHandlers{Svc: svc}

	rec := httptest.NewRecorder()
	h.Dispatch(rec, withCredential(httptest.NewRequest(http.MethodGet, "/", nil), "token-1"))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, domainauth.LoginPath, rec.Header().Get("Location"))
	assert.True(t, clearedCredential(rec.Result().Cookies()))
	assert.Equal(t, []string{"token-1"}, svc.ForceLogoutTokens())
}

func newGatewayRouter(svc SessionServiceInterface) http.Handler {
	return NewRouter(RouterOptions{Svc: svc})
}

func TestHome_OwnRole(t *testing.T) {
	svc := &fakeSessionService{ResolveFunc: resolveAs(domainauth.RolePersonUser, testPersonPrincipal())}
	router := newGatewayRouter(svc)

	req := withCredential(httptest.NewRequest(http.MethodGet, "/homes/person_user", nil), "token-1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"person_user"`)
	assert.Contains(t, rec.Body.String(), `"somchai"`)
}

func TestHome_WrongRoleRedirectsToOwnHome(t *testing.T) {
	svc := &fakeSessionService{ResolveFunc: resolveAs(domainauth.RolePersonUser, testPersonPrincipal())}
	router := newGatewayRouter(svc)

	req := withCredential(httptest.NewRequest(http.MethodGet, "/homes/hr_admin", nil), "token-1")
	req.Header.Set("Accept", "text/html")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/homes/person_user", rec.Header().Get("Location"))
}

func TestHome_Unauthenticated(t *testing.T) {
	router := newGatewayRouter(&fakeSessionService{})

	req := httptest.NewRequest(http.MethodGet, "/homes/person_user", nil)
	req.Header.Set("Accept", "text/html")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, domainauth.LoginPath, rec.Header().Get("Location"))
}

func TestLoginPage_KnownFamilies(t *testing.T) {
	h := &RootHandlers{Svc: &fakeSessionService{}}

	for family, endpoint := range map[string]string{
		"admin":        "/auth/login",
		"person":       "/persons/login",
		"organization": "/organizations/login",
	} {
		req := httptest.NewRequest(http.MethodGet, "/login/"+family, nil)
		req.SetPathValue("family", family)
		rec := httptest.NewRecorder()
		h.LoginPage(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), endpoint)
	}
}

func TestLoginPage_UnknownFamilyRedirects(t *testing.T) {
	h := &RootHandlers{Svc: &fakeSessionService{}}

	req := httptest.NewRequest(http.MethodGet, "/login/robot", nil)
	req.SetPathValue("family", "robot")
	rec := httptest.NewRecorder()
	h.LoginPage(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, domainauth.LoginPath, rec.Header().Get("Location"))
}
