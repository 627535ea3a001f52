package httpx

import (
	"context"

	domainauth "github.com/partyhub/party-ui-api/internal/domain/auth"
)

// sessionKey is an unexported context key type to avoid collisions across packages.
// Centralized in this file so all handlers/middleware use the same key.
type sessionKey struct{}

// credentialKey carries the raw bearer token alongside the session. The
// proxy needs the token itself to talk to the backend; everything else
// should only see the session.
type credentialKey struct{}

// SetSessionInContext returns a child context that carries the given session.
// If session is nil, the original ctx is returned unchanged.
func SetSessionInContext(ctx context.Context, session *domainauth.Session) context.Context {
	if session == nil {
		return ctx
	}
	return context.WithValue(ctx, sessionKey{}, session)
}

// GetUserSessionFromContext returns the user session from context and a boolean indicating presence.
func GetUserSessionFromContext(ctx context.Context) (*domainauth.Session, bool) {
	if session, ok := ctx.Value(sessionKey{}).(*domainauth.Session); ok && session != nil {
		return session, true
	}
	return nil, false
}

// GetSessionFromContext retrieves the session from the request context.
// Maintained for convenience; prefer GetUserSessionFromContext when you need presence info.
func GetSessionFromContext(ctx context.Context) *domainauth.Session {
	if s, ok := GetUserSessionFromContext(ctx); ok {
		return s
	}
	return nil
}

// SetCredentialInContext returns a child context carrying the raw credential.
func SetCredentialInContext(ctx context.Context, token string) context.Context {
	if token == "" {
		return ctx
	}
	return context.WithValue(ctx, credentialKey{}, token)
}

// GetCredentialFromContext returns the raw credential placed by RequireAuth,
// or an empty string when the request is unauthenticated.
func GetCredentialFromContext(ctx context.Context) string {
	if token, ok := ctx.Value(credentialKey{}).(string); ok {
		return token
	}
	return ""
}

// IsAdminSession reports whether the current request belongs to one of the
// four admin-family roles.
func IsAdminSession(ctx context.Context) bool {
	s, ok := GetUserSessionFromContext(ctx)
	if !ok {
		return false
	}
	return s.Role.IsAdmin()
}
