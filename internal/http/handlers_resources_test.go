package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/partyhub/party-ui-api/internal/domain/auth"
	"github.com/partyhub/party-ui-api/internal/ports"
)

// fakeResourceClient records calls and serves canned responses.
type fakeResourceClient struct {
	path string

	listResp json.RawMessage
	err      error

	gotToken string
	gotID    string
	gotBody  json.RawMessage
}

func (f *fakeResourceClient) List(_ context.Context, token string) (json.RawMessage, error) {
	f.gotToken = token
	return f.listResp, f.err
}

func (f *fakeResourceClient) Get(_ context.Context, token, id string) (json.RawMessage, error) {
	f.gotToken, f.gotID = token, id
	return f.listResp, f.err
}

func (f *fakeResourceClient) Create(_ context.Context, token string, body json.RawMessage) (json.RawMessage, error) {
	f.gotToken, f.gotBody = token, body
	return f.listResp, f.err
}

func (f *fakeResourceClient) Update(_ context.Context, token, id string, body json.RawMessage) (json.RawMessage, error) {
	f.gotToken, f.gotID, f.gotBody = token, id, body
	return f.listResp, f.err
}

func (f *fakeResourceClient) DeleteByID(_ context.Context, token, id string) error {
	f.gotToken, f.gotID = token, id
	return f.err
}

func resourceRouter(svc SessionServiceInterface, client *fakeResourceClient) http.Handler {
	return NewRouter(RouterOptions{
		Svc: svc,
		Resources: func(path string) ports.ResourceClient {
			client.path = path
			return client
		},
	})
}

func TestResourceProxy_ListForwardsToken(t *testing.T) {
	svc := &fakeSessionService{ResolveFunc: resolveAs(domainauth.RoleHRAdmin, testAdminPrincipal())}
	client := &fakeResourceClient{listResp: json.RawMessage(`[{"id":1}]`)}
	router := resourceRouter(svc, client)

	req := withCredential(httptest.NewRequest(http.MethodGet, "/api/countries", nil), "token-1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"id":1}]`, rec.Body.String())
	assert.Equal(t, "countries", client.path)
	assert.Equal(t, "token-1", client.gotToken)
}

func TestResourceProxy_CreateAndUpdate(t *testing.T) {
	svc := &fakeSessionService{ResolveFunc: resolveAs(domainauth.RoleBasetypeAdmin, testAdminPrincipal())}
	client := &fakeResourceClient{listResp: json.RawMessage(`{"id":2}`)}
	router := resourceRouter(svc, client)

	req := withCredential(httptest.NewRequest(http.MethodPost, "/api/gender_types", strings.NewReader(`{"description":"Female"}`)), "token-1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"description":"Female"}`, string(client.gotBody))

	req = withCredential(httptest.NewRequest(http.MethodPut, "/api/gender_types/2", strings.NewReader(`{"description":"F"}`)), "token-1")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2", client.gotID)
}

func TestResourceProxy_Delete(t *testing.T) {
	svc := &fakeSessionService{ResolveFunc: resolveAs(domainauth.RoleSystemAdmin, testAdminPrincipal())}
	client := &fakeResourceClient{}
	router := resourceRouter(svc, client)

	req := withCredential(httptest.NewRequest(http.MethodDelete, "/api/countries/9", nil), "token-1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "9", client.gotID)
}

func TestResourceProxy_UnknownResource(t *testing.T) {
	svc := &fakeSessionService{ResolveFunc: resolveAs(domainauth.RoleHRAdmin, testAdminPrincipal())}
	client := &fakeResourceClient{}
	router := resourceRouter(svc, client)

	req := withCredential(httptest.NewRequest(http.MethodGet, "/api/secrets", nil), "token-1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "unknown_resource")
}

func TestResourceProxy_BackendUnauthorizedForcesLogout(t *testing.T) {
	svc := &fakeSessionService{ResolveFunc: resolveAs(domainauth.RolePersonUser, testPersonPrincipal())}
	client := &fakeResourceClient{err: ports.ErrCredentialRejected}
	router := resourceRouter(svc, client)

	req := withCredential(httptest.NewRequest(http.MethodGet, "/api/countries", nil), "token-1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), domainauth.LoginPath)
	assert.True(t, clearedCredential(rec.Result().Cookies()))
	assert.Equal(t, []string{"token-1"}, svc.ForceLogoutTokens())
}

func TestResourceProxy_InvalidBody(t *testing.T) {
	svc := &fakeSessionService{ResolveFunc: resolveAs(domainauth.RoleHRAdmin, testAdminPrincipal())}
	client := &fakeResourceClient{}
	router := resourceRouter(svc, client)

	req := withCredential(httptest.NewRequest(http.MethodPost, "/api/countries", strings.NewReader(`not-json`)), "token-1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_json")
}

func TestResourceProxy_RequiresAuth(t *testing.T) {
	svc := &fakeSessionService{}
	client := &fakeResourceClient{}
	router := resourceRouter(svc, client)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/countries", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "authentication_required")
}
