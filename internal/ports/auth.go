package ports

// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	"context"
	"errors"

	domainauth "github.com/partyhub/party-ui-api/internal/domain/auth"
)

// ErrInvalidCredentials is returned by LoginProvider implementations when
// the backend rejects the submitted credentials.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrCredentialRejected is returned by backend clients when a bearer
// credential that previously worked is no longer accepted (HTTP 401).
var ErrCredentialRejected = errors.New("backend rejected credential")

// Resolution is the outcome of a successful profile resolution: which role
// family the credential belongs to and the decoded profile.
type Resolution struct {
	Role      domainauth.Role
	Principal domainauth.Principal
}

// ProfileResolver turns a bearer credential into a (role, principal) pair by
// asking the party backend. The credential alone does not self-declare its
// principal family.
type ProfileResolver interface {
	// Resolve returns the role and principal for the credential, or an
	// error when no profile endpoint accepts it. Implementations must not
	// distinguish "wrong role" from "expired token" before exhausting all
	// applicable endpoints.
	Resolve(ctx context.Context, token string) (Resolution, error)
}

// SessionStore persists and retrieves resolved sessions keyed by token hash.
type SessionStore interface {
	Save(ctx context.Context, sess domainauth.Session) error
	Get(ctx context.Context, tokenHash string) (domainauth.Session, error)
	Delete(ctx context.Context, tokenHash string) error
}

// LoginInput carries credentials for one of the three login families.
type LoginInput struct {
	// Email is set for admin-family logins.
	Email string
	// Username is set for person and organization logins.
	Username string
	Password string
}

// LoginProvider exchanges credentials for a bearer token at the party
// backend. One provider per principal family.
type LoginProvider interface {
	// AdminLogin calls POST /auth/login.
	AdminLogin(ctx context.Context, in LoginInput) (token string, err error)
	// PersonLogin calls POST /persons/login.
	PersonLogin(ctx context.Context, in LoginInput) (token string, err error)
	// OrganizationLogin calls POST /organizations/login.
	OrganizationLogin(ctx context.Context, in LoginInput) (token string, err error)
}

// AuthEventRecorder captures the audit trail of auth activity. Recording is
// best-effort; callers log failures and move on.
type AuthEventRecorder interface {
	Record(ctx context.Context, event AuthEvent) error
}

// AuthEventKind enumerates recordable auth activity.
type AuthEventKind string

const (
	AuthEventLoginSucceeded   AuthEventKind = "login_succeeded"
	AuthEventLoginFailed      AuthEventKind = "login_failed"
	AuthEventLogout           AuthEventKind = "logout"
	AuthEventSessionResolved  AuthEventKind = "session_resolved"
	AuthEventResolutionFailed AuthEventKind = "resolution_failed"
)

// AuthEvent is one entry in the auth activity log.
type AuthEvent struct {
	Kind        AuthEventKind
	Role        domainauth.Role
	PrincipalID int64
	Detail      string
}
