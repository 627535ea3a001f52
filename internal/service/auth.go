package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	domainauth "github.com/partyhub/party-ui-api/internal/domain/auth"
	"github.com/partyhub/party-ui-api/internal/ports"
)

// ErrAuthResolution indicates a credential could not be matched to any
// principal. The credential is purged before this is returned, so callers
// should clear the cookie and send the user back to the login page.
var ErrAuthResolution = errors.New("authentication resolution failed")

// ErrInvalidLogin indicates the backend rejected the submitted credentials.
var ErrInvalidLogin = ports.ErrInvalidCredentials

// LoginFamily selects which backend login endpoint a login attempt uses.
type LoginFamily string

const (
	LoginFamilyAdmin        LoginFamily = "admin"
	LoginFamilyPerson       LoginFamily = "person"
	LoginFamilyOrganization LoginFamily = "organization"
)

// SessionServiceOptions groups dependencies for SessionService.
type SessionServiceOptions struct {
	Provider   ports.LoginProvider
	Resolver   ports.ProfileResolver
	Sessions   ports.SessionStore
	Events     ports.AuthEventRecorder
	Logger     *slog.Logger
	SessionTTL time.Duration
	Now        func() time.Time
}

// SessionService owns the credential lifecycle: it exchanges login
// credentials for a bearer token, resolves the token to a principal, and
// keeps the resulting session cached until logout or expiry.
type SessionService struct {
	provider   ports.LoginProvider
	resolver   ports.ProfileResolver
	sessions   ports.SessionStore
	events     ports.AuthEventRecorder
	logger     *slog.Logger
	sessionTTL time.Duration
	now        func() time.Time

	// resolving collapses concurrent bootstraps of the same credential
	// into a single resolution pass.
	resolving singleflight.Group
}

// DefaultSessionTTL matches the lifetime of the credential cookie.
const DefaultSessionTTL = 7 * 24 * time.Hour

// NewSessionService constructs a new SessionService.
func NewSessionService(opts SessionServiceOptions) (*SessionService, error) {
	if opts.Resolver == nil {
		return nil, errors.New("profile resolver is required")
	}
	if opts.Sessions == nil {
		return nil, errors.New("session store is required")
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = DefaultSessionTTL
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &SessionService{
		provider:   opts.Provider,
		resolver:   opts.Resolver,
		sessions:   opts.Sessions,
		events:     opts.Events,
		logger:     opts.Logger,
		sessionTTL: opts.SessionTTL,
		now:        opts.Now,
	}, nil
}

// LoginResult contains the outcome of a successful login.
type LoginResult struct {
	Token   string
	Session domainauth.Session
}

// Login exchanges credentials for a bearer token on the selected endpoint,
// resolves the token to a principal, and persists the session. The token is
// only handed back once the whole chain succeeded, so a caller never ends up
// holding a credential that has no session behind it.
func (s *SessionService) Login(ctx context.Context, family LoginFamily, input ports.LoginInput) (*LoginResult, error) {
	if s.provider == nil {
		return nil, errors.New("login provider is not configured")
	}

	token, err := s.login(ctx, family, input)
	if err != nil {
		s.record(ctx, ports.AuthEvent{Kind: ports.AuthEventLoginFailed, Detail: string(family)})
		return nil, err
	}

	session, err := s.bootstrap(ctx, token)
	if err != nil {
		s.record(ctx, ports.AuthEvent{Kind: ports.AuthEventLoginFailed, Detail: string(family)})
		return nil, err
	}

	s.record(ctx, ports.AuthEvent{
		Kind:        ports.AuthEventLoginSucceeded,
		Role:        session.Role,
		PrincipalID: session.Principal.PrincipalID(),
		Detail:      string(family),
	})

	return &LoginResult{Token: token, Session: session}, nil
}

func (s *SessionService) login(ctx context.Context, family LoginFamily, input ports.LoginInput) (string, error) {
	switch family {
	case LoginFamilyAdmin:
		return s.provider.AdminLogin(ctx, input)
	case LoginFamilyPerson:
		return s.provider.PersonLogin(ctx, input)
	case LoginFamilyOrganization:
		return s.provider.OrganizationLogin(ctx, input)
	default:
		return "", fmt.Errorf("unknown login family %q", family)
	}
}

// Resolve returns the session for a bearer token, resolving and caching it
// on first sight. A token that cannot be resolved is purged from the store
// before ErrAuthResolution is returned.
func (s *SessionService) Resolve(ctx context.Context, token string) (domainauth.Session, error) {
	if token == "" {
		return domainauth.Session{}, fmt.Errorf("%w: empty credential", ErrAuthResolution)
	}

	hash := domainauth.HashToken(token)

	session, err := s.sessions.Get(ctx, hash)
	if err == nil {
		return session, nil
	}

	return s.bootstrap(ctx, token)
}

// bootstrap resolves a token to a principal and persists the session.
// Concurrent calls for the same token share one resolution pass.
func (s *SessionService) bootstrap(ctx context.Context, token string) (domainauth.Session, error) {
	hash := domainauth.HashToken(token)

	v, err, _ := s.resolving.Do(hash, func() (any, error) {
		// Another caller may have finished the bootstrap while this one
		// waited its turn.
		if cached, getErr := s.sessions.Get(ctx, hash); getErr == nil {
			return cached, nil
		}

		resolution, resolveErr := s.resolver.Resolve(ctx, token)
		if resolveErr != nil {
			s.purge(ctx, hash)
			s.record(ctx, ports.AuthEvent{Kind: ports.AuthEventResolutionFailed})
			return nil, errors.Join(ErrAuthResolution, resolveErr)
		}

		session, injectErr := s.Inject(ctx, token, resolution.Role, resolution.Principal)
		if injectErr != nil {
			return nil, injectErr
		}

		s.record(ctx, ports.AuthEvent{
			Kind:        ports.AuthEventSessionResolved,
			Role:        session.Role,
			PrincipalID: session.Principal.PrincipalID(),
		})

		return session, nil
	})
	if err != nil {
		return domainauth.Session{}, err
	}

	session, ok := v.(domainauth.Session)
	if !ok {
		return domainauth.Session{}, errors.New("unexpected bootstrap result type")
	}
	return session, nil
}

// Inject installs a session for a token whose (role, principal) pair is
// already known, bypassing resolution. It is the single writer for resolved
// state: the bootstrap path funnels every freshly resolved profile through
// it, and callers holding an externally validated pair may use it directly.
func (s *SessionService) Inject(ctx context.Context, token string, role domainauth.Role, principal domainauth.Principal) (domainauth.Session, error) {
	if token == "" {
		return domainauth.Session{}, errors.New("token is required")
	}
	if !role.IsValid() {
		return domainauth.Session{}, fmt.Errorf("unknown role %q", role)
	}
	if principal == nil {
		return domainauth.Session{}, errors.New("principal is required")
	}

	session := domainauth.Session{
		TokenHash: domainauth.HashToken(token),
		Role:      role,
		Principal: principal,
		ExpiresAt: s.now().Add(s.sessionTTL),
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return domainauth.Session{}, fmt.Errorf("save session: %w", err)
	}
	return session, nil
}

// Logout drops the session for a token. It never fails the caller; a store
// error is logged and the credential cookie is still cleared upstream.
func (s *SessionService) Logout(ctx context.Context, token string) {
	if token == "" {
		return
	}

	hash := domainauth.HashToken(token)

	var role domainauth.Role
	var principalID int64
	if session, err := s.sessions.Get(ctx, hash); err == nil {
		role = session.Role
		if session.Principal != nil {
			principalID = session.Principal.PrincipalID()
		}
	}

	s.purge(ctx, hash)
	s.record(ctx, ports.AuthEvent{Kind: ports.AuthEventLogout, Role: role, PrincipalID: principalID})
}

// ForceLogout purges the session for a token whose backend credential is no
// longer accepted, typically after the backend answered 401 mid-session.
func (s *SessionService) ForceLogout(ctx context.Context, token string) {
	if token == "" {
		return
	}
	s.purge(ctx, domainauth.HashToken(token))
	s.record(ctx, ports.AuthEvent{Kind: ports.AuthEventResolutionFailed, Detail: "backend rejected credential"})
}

func (s *SessionService) purge(ctx context.Context, hash string) {
	if err := s.sessions.Delete(ctx, hash); err != nil {
		s.logger.WarnContext(ctx, "failed to purge session", "error", err)
	}
}

// record writes an auth event best-effort; auditing must never block or
// fail an auth flow.
func (s *SessionService) record(ctx context.Context, event ports.AuthEvent) {
	if s.events == nil {
		return
	}
	if err := s.events.Record(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to record auth event", "kind", string(event.Kind), "error", err)
	}
}
