package httpx

import (
	"context"
	"net/http"
	"sync"
	"time"

	domainauth "github.com/partyhub/party-ui-api/internal/domain/auth"
	"github.com/partyhub/party-ui-api/internal/ports"
	"github.com/partyhub/party-ui-api/internal/service"
)

// fakeSessionService implements SessionServiceInterface for handler tests.
type fakeSessionService struct {
	LoginFunc   func(ctx context.Context, family service.LoginFamily, in ports.LoginInput) (*service.LoginResult, error)
	ResolveFunc func(ctx context.Context, token string) (domainauth.Session, error)

	mu               sync.Mutex
	logoutTokens     []string
	forceLogoutCalls []string
}

func (f *fakeSessionService) Login(ctx context.Context, family service.LoginFamily, in ports.LoginInput) (*service.LoginResult, error) {
	if f.LoginFunc == nil {
		return nil, service.ErrInvalidLogin
	}
	return f.LoginFunc(ctx, family, in)
}

func (f *fakeSessionService) Resolve(ctx context.Context, token string) (domainauth.Session, error) {
	if f.ResolveFunc == nil {
		return domainauth.Session{}, service.ErrAuthResolution
	}
	return f.ResolveFunc(ctx, token)
}

func (f *fakeSessionService) Logout(_ context.Context, token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logoutTokens = append(f.logoutTokens, token)
}

func (f *fakeSessionService) ForceLogout(_ context.Context, token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.forceLogoutCalls = append(f.forceLogoutCalls, token)
}

func (f *fakeSessionService) LogoutTokens() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.logoutTokens))
	copy(out, f.logoutTokens)
	return out
}

func (f *fakeSessionService) ForceLogoutTokens() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.forceLogoutCalls))
	copy(out, f.forceLogoutCalls)
	return out
}

// resolveAs returns a ResolveFunc answering every token with a fixed session.
func resolveAs(role domainauth.Role, principal domainauth.Principal) func(context.Context, string) (domainauth.Session, error) {
	return func(_ context.Context, token string) (domainauth.Session, error) {
		return domainauth.Session{
			TokenHash: domainauth.HashToken(token),
			Role:      role,
			Principal: principal,
			ExpiresAt: time.Now().Add(time.Hour),
		}, nil
	}
}

func testPersonPrincipal() domainauth.Principal {
	return domainauth.PersonPrincipal{ID: 7, Username: "somchai"}
}

func testAdminPrincipal() domainauth.Principal {
	return domainauth.AdminPrincipal{ID: 1, Name: "Alice", Email: "alice@example.com", Role: domainauth.RoleHRAdmin}
}

// withCredential attaches the credential cookie to a request.
func withCredential(r *http.Request, token string) *http.Request {
	r.AddCookie(&http.Cookie{Name: CredentialCookieName, Value: token})
	return r
}

// clearedCredential reports whether the response deletes the credential cookie.
func clearedCredential(cookies []*http.Cookie) bool {
	for _, c := range cookies {
		if c.Name == CredentialCookieName && c.MaxAge < 0 {
			return true
		}
	}
	return false
}

// setCredential returns the credential cookie set by the response, if any.
func setCredential(cookies []*http.Cookie) *http.Cookie {
	for _, c := range cookies {
		if c.Name == CredentialCookieName && c.MaxAge > 0 {
			return c
		}
	}
	return nil
}
