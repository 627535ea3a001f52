// Package auth provides hand-written test doubles for the auth ports.
// They favor small func fields over generated mocks so tests read as plain
// Go; generated gomock variants live alongside for interface drift checks.
package auth

import (
	"context"
	"sync"

	domainauth "github.com/partyhub/party-ui-api/internal/domain/auth"
	"github.com/partyhub/party-ui-api/internal/ports"
)

// MockProfileResolver implements ports.ProfileResolver with a func field.
type MockProfileResolver struct {
	ResolveFunc func(ctx context.Context, token string) (ports.Resolution, error)

	mu    sync.Mutex
	calls int
}

func (m *MockProfileResolver) Resolve(ctx context.Context, token string) (ports.Resolution, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.ResolveFunc == nil {
		return ports.Resolution{}, nil
	}
	return m.ResolveFunc(ctx, token)
}

// Calls reports how many times Resolve was invoked.
func (m *MockProfileResolver) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// MockLoginProvider implements ports.LoginProvider with func fields.
type MockLoginProvider struct {
	AdminLoginFunc        func(ctx context.Context, in ports.LoginInput) (string, error)
	PersonLoginFunc       func(ctx context.Context, in ports.LoginInput) (string, error)
	OrganizationLoginFunc func(ctx context.Context, in ports.LoginInput) (string, error)
}

func (m *MockLoginProvider) AdminLogin(ctx context.Context, in ports.LoginInput) (string, error) {
	if m.AdminLoginFunc == nil {
		return "", ports.ErrInvalidCredentials
	}
	return m.AdminLoginFunc(ctx, in)
}

func (m *MockLoginProvider) PersonLogin(ctx context.Context, in ports.LoginInput) (string, error) {
	if m.PersonLoginFunc == nil {
		return "", ports.ErrInvalidCredentials
	}
	return m.PersonLoginFunc(ctx, in)
}

func (m *MockLoginProvider) OrganizationLogin(ctx context.Context, in ports.LoginInput) (string, error) {
	if m.OrganizationLoginFunc == nil {
		return "", ports.ErrInvalidCredentials
	}
	return m.OrganizationLoginFunc(ctx, in)
}

// MemorySessionStore is an in-memory ports.SessionStore for tests.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]domainauth.Session

	// SaveErr and DeleteErr, when set, are returned by the matching method.
	SaveErr   error
	DeleteErr error
}

// NewMemorySessionStore constructs an empty in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]domainauth.Session)}
}

func (m *MemorySessionStore) Save(_ context.Context, sess domainauth.Session) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sess.TokenHash] = sess
	return nil
}

func (m *MemorySessionStore) Get(_ context.Context, tokenHash string) (domainauth.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[tokenHash]
	if !ok {
		return domainauth.Session{}, errSessionNotFound
	}
	return sess, nil
}

func (m *MemorySessionStore) Delete(_ context.Context, tokenHash string) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, tokenHash)
	return nil
}

// Len reports the number of stored sessions.
func (m *MemorySessionStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Has reports whether a session exists for the token hash.
func (m *MemorySessionStore) Has(tokenHash string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.sessions[tokenHash]
	return ok
}

type sessionNotFoundError struct{}

func (sessionNotFoundError) Error() string { return "session not found" }

var errSessionNotFound = sessionNotFoundError{}

// MemoryEventRecorder collects auth events for assertions.
type MemoryEventRecorder struct {
	mu     sync.Mutex
	events []ports.AuthEvent

	// RecordErr, when set, is returned by Record.
	RecordErr error
}

func (m *MemoryEventRecorder) Record(_ context.Context, event ports.AuthEvent) error {
	if m.RecordErr != nil {
		return m.RecordErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

// Events returns a copy of the recorded events.
func (m *MemoryEventRecorder) Events() []ports.AuthEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]ports.AuthEvent, len(m.events))
	copy(out, m.events)
	return out
}

// Kinds returns just the event kinds, in record order.
func (m *MemoryEventRecorder) Kinds() []ports.AuthEventKind {
	m.mu.Lock()
	defer m.mu.Unlock()
	kinds := make([]ports.AuthEventKind, 0, len(m.events))
	for _, e := range m.events {
		kinds = append(kinds, e.Kind)
	}
	return kinds
}
