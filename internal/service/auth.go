package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	domainauth "github.com/pollbooth/pollbooth-ui/internal/domain/auth"
	appErrors "github.com/pollbooth/pollbooth-ui/internal/errors"
	"github.com/pollbooth/pollbooth-ui/internal/ports"
	"github.com/pollbooth/pollbooth-ui/internal/token"
)

const (
	// loginStateTTL bounds how long an issued login redirect stays valid.
	loginStateTTL = 10 * time.Minute
	// defaultSessionTTL applies when the provider reports no token lifetime.
	defaultSessionTTL = time.Hour

	statusLoggedIn = "Logged in"
)

// AuthServiceOptions holds the dependencies for AuthService.
type AuthServiceOptions struct {
	Provider ports.AuthProvider
	Sessions ports.SessionStore
	States   ports.StateStore
	Roles    ports.RoleMapper
	Logger   *slog.Logger
}

// AuthService drives the login flow: authorize redirect, single-use state,
// code exchange, session lifecycle and per-request role derivation.
type AuthService struct {
	provider ports.AuthProvider
	sessions ports.SessionStore
	states   ports.StateStore
	roles    ports.RoleMapper
	logger   *slog.Logger
}

// NewAuthService creates an AuthService from options.
func NewAuthService(opts AuthServiceOptions) (*AuthService, error) {
	if opts.Provider == nil {
		return nil, fmt.Errorf("auth service: provider is required")
	}
	if opts.Sessions == nil {
		return nil, fmt.Errorf("auth service: session store is required")
	}
	if opts.States == nil {
		return nil, fmt.Errorf("auth service: state store is required")
	}
	if opts.Roles == nil {
		return nil, fmt.Errorf("auth service: role mapper is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		provider: opts.Provider,
		sessions: opts.Sessions,
		states:   opts.States,
		roles:    opts.Roles,
		logger:   logger,
	}, nil
}

// BeginLogin issues a fresh single-use state and returns the authorize URL
// embedding it.
func (s *AuthService) BeginLogin(ctx context.Context) (string, error) {
	res, err := s.provider.Begin(ctx)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrCodeInternal, "begin login")
	}
	if err := s.states.Issue(ctx, res.State, loginStateTTL); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrCodeInternal, "issue login state")
	}
	return res.AuthURL, nil
}

// CompleteLogin consumes the callback state and exchanges the code. The state
// is consumed before the exchange: a replayed callback finds it gone and is
// rejected without another exchange attempt, so each issued state buys at
// most one code exchange.
func (s *AuthService) CompleteLogin(ctx context.Context, code, state string) (*domainauth.Session, error) {
	if code == "" {
		return nil, appErrors.ValidationField("code", "authorization code is required")
	}
	if state == "" {
		return nil, appErrors.ValidationField("state", "state is required")
	}

	ok, err := s.states.Consume(ctx, state)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrCodeInternal, "consume login state")
	}
	if !ok {
		return nil, appErrors.ValidationField("state", "login state is unknown or already used")
	}

	bundle, err := s.provider.Exchange(ctx, code)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	ttl := time.Duration(bundle.ExpiresIn) * time.Second
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	sess := &domainauth.Session{
		ID:        uuid.New().String(),
		Tokens:    bundle,
		Status:    statusLoggedIn,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrCodeInternal, "save session")
	}
	return sess, nil
}

// GetSession loads a live session; expired or unknown ids report not found.
func (s *AuthService) GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrCodeNotFound, "session not found")
	}
	if sess.Expired() {
		if deleteErr := s.sessions.Delete(ctx, sessionID); deleteErr != nil {
			s.logger.Warn("cleanup expired session", "error", deleteErr)
		}
		return nil, appErrors.NotFound("session expired")
	}
	return sess, nil
}

// SaveSession persists session mutations such as vote records.
func (s *AuthService) SaveSession(ctx context.Context, sess *domainauth.Session) error {
	if err := s.sessions.Save(ctx, sess); err != nil {
		return appErrors.Wrap(err, appErrors.ErrCodeInternal, "save session")
	}
	return nil
}

// RoleFor derives the session's role from its identity token. The role is
// never stored, so a group change takes effect on the next login. A token
// that cannot be decoded yields the voter role rather than an error.
func (s *AuthService) RoleFor(sess *domainauth.Session) domainauth.Role {
	claims, err := token.Decode(sess.Tokens.IDToken)
	if err != nil {
		s.logger.Warn("decode identity token, treating as voter", "error", err)
		return domainauth.RoleVoter
	}
	return s.roles.Map(claims.Groups())
}

// Logout removes the server-side session.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrCodeInternal, "delete session")
	}
	return nil
}

// LogoutURL is the provider's logout redirect target.
func (s *AuthService) LogoutURL() string {
	return s.provider.LogoutURL()
}
