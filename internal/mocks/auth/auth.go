package auth

// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	domainauth "github.com/pollbooth/pollbooth-ui/internal/domain/auth"
	"github.com/pollbooth/pollbooth-ui/internal/ports"
	"github.com/pollbooth/pollbooth-ui/internal/token"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.AuthProvider = (*MockAuthProvider)(nil)
	_ ports.SessionStore = (*MemorySessionStore)(nil)
	_ ports.StateStore   = (*MemoryStateStore)(nil)
	_ ports.RoleMapper   = (*StaticRoleMapper)(nil)
)

// CompactToken builds an unsigned identity token carrying the given groups,
// decodable by the token package.
func CompactToken(sub string, groups []string) string {
	payload, _ := json.Marshal(map[string]any{
		"sub":             sub,
		token.GroupsClaim: groups,
	})
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"none"}`))
	return header + "." + base64.RawURLEncoding.EncodeToString(payload) + ".sig"
}

// MockAuthProvider simulates an IdP for tests with deterministic states and
// call counting.
type MockAuthProvider struct {
	BeginFunc    func(ctx context.Context) (ports.BeginResult, error)
	ExchangeFunc func(ctx context.Context, code string) (domainauth.TokenBundle, error)

	// Deterministic values for predictable testing
	AuthURL     string
	StatePrefix string
	Groups      []string

	// Call tracking
	BeginCalls    int
	ExchangeCalls int
}

// NewMockAuthProvider creates a MockAuthProvider with sensible defaults.
func NewMockAuthProvider() *MockAuthProvider {
	return &MockAuthProvider{
		AuthURL:     "https://mock-idp/oauth2/authorize",
		StatePrefix: "state",
		Groups:      []string{"users"},
	}
}

func (m *MockAuthProvider) Begin(ctx context.Context) (ports.BeginResult, error) {
	m.BeginCalls++
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	state := fmt.Sprintf("%s-%d", m.StatePrefix, m.BeginCalls)
	return ports.BeginResult{
		AuthURL: m.AuthURL + "?state=" + state,
		State:   state,
	}, nil
}

func (m *MockAuthProvider) Exchange(ctx context.Context, code string) (domainauth.TokenBundle, error) {
	m.ExchangeCalls++
	if m.ExchangeFunc != nil {
		return m.ExchangeFunc(ctx, code)
	}
	return domainauth.TokenBundle{
		AccessToken: "mock-access-token",
		IDToken:     CompactToken("mock-user-1", m.Groups),
		TokenType:   "Bearer",
		ExpiresIn:   3600,
	}, nil
}

func (m *MockAuthProvider) LogoutURL() string {
	return "https://mock-idp/logout?client_id=mock"
}

// MemorySessionStore is an in-memory session store for unit tests.
type MemorySessionStore struct {
	sessions map[string]domainauth.Session
}

// NewMemorySessionStore creates a new in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]domainauth.Session),
	}
}

func (m *MemorySessionStore) Save(_ context.Context, sess *domainauth.Session) error {
	if sess == nil || sess.ID == "" {
		return errors.New("session ID cannot be empty")
	}
	m.sessions[sess.ID] = *sess
	return nil
}

func (m *MemorySessionStore) Get(_ context.Context, id string) (*domainauth.Session, error) {
	sess, ok := m.sessions[id]
	if id == "" || !ok {
		return nil, ErrNotFound
	}
	copied := sess
	return &copied, nil
}

func (m *MemorySessionStore) Delete(_ context.Context, id string) error {
	delete(m.sessions, id)
	return nil
}

// MemoryStateStore is an in-memory single-use state store for unit tests.
type MemoryStateStore struct {
	states map[string]time.Time
}

// NewMemoryStateStore creates a new in-memory state store.
func NewMemoryStateStore() *MemoryStateStore {
	return &MemoryStateStore{
		states: make(map[string]time.Time),
	}
}

func (m *MemoryStateStore) Issue(_ context.Context, state string, ttl time.Duration) error {
	if state == "" {
		return errors.New("state cannot be empty")
	}
	m.states[state] = time.Now().Add(ttl)
	return nil
}

func (m *MemoryStateStore) Consume(_ context.Context, state string) (bool, error) {
	deadline, ok := m.states[state]
	if !ok {
		return false, nil
	}
	delete(m.states, state)
	if time.Now().After(deadline) {
		return false, nil
	}
	return true, nil
}

// ErrNotFound is returned by mocks when an entity is not present.
type notFoundError struct{}

func (notFoundError) Error() string { return "not found" }

var ErrNotFound error = notFoundError{}

// StaticRoleMapper maps groups by simple string membership.
type StaticRoleMapper struct {
	AdminGroup string
}

func (m StaticRoleMapper) Map(groups []string) domainauth.Role {
	adminGroup := m.AdminGroup
	if adminGroup == "" {
		adminGroup = "admin"
	}
	for _, g := range groups {
		if g == adminGroup {
			return domainauth.RoleAdmin
		}
	}
	return domainauth.RoleVoter
}
