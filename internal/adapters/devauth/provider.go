package devauth

// Package devauth provides a simple, config-driven AuthProvider for local development.

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	domainauth "github.com/pollbooth/pollbooth-ui/internal/domain/auth"
	"github.com/pollbooth/pollbooth-ui/internal/ports"
	"github.com/pollbooth/pollbooth-ui/internal/token"
)

// Config controls the dev auth provider behavior.
type Config struct {
	UserID          string
	Email           string
	Groups          []string
	SessionDuration time.Duration // default 8h when zero
}

// Provider implements ports.AuthProvider for local development. It
// short-circuits the OAuth flow by redirecting straight back to our own
// callback, and Exchange mints an unsigned compact token carrying the
// configured groups so the normal decode and role-mapping path runs
// unchanged.
type Provider struct {
	cfg Config
}

var _ ports.AuthProvider = (*Provider)(nil)

// NewProvider constructs a dev auth provider from Config.
func NewProvider(cfg Config) (*Provider, error) {
	if cfg.UserID == "" {
		return nil, errors.New("dev auth: UserID is required")
	}
	if cfg.Email == "" {
		return nil, errors.New("dev auth: Email is required")
	}
	if cfg.SessionDuration == 0 {
		cfg.SessionDuration = 8 * time.Hour
	}
	return &Provider{cfg: cfg}, nil
}

// Begin returns a local callback URL with a fresh state.
func (p *Provider) Begin(_ context.Context) (ports.BeginResult, error) {
	state, err := randomString(24)
	if err != nil {
		return ports.BeginResult{}, fmt.Errorf("generate state: %w", err)
	}
	// The standard handler expects GET /auth/callback?code=...&state=...
	return ports.BeginResult{
		AuthURL: "/auth/callback?code=dev&state=" + state,
		State:   state,
	}, nil
}

// Exchange ignores the code and returns a bundle whose identity token carries
// the configured claims.
func (p *Provider) Exchange(_ context.Context, _ string) (domainauth.TokenBundle, error) {
	idToken, err := p.mintIDToken()
	if err != nil {
		return domainauth.TokenBundle{}, fmt.Errorf("mint dev id token: %w", err)
	}
	return domainauth.TokenBundle{
		AccessToken: "dev-access-token",
		IDToken:     idToken,
		TokenType:   "Bearer",
		ExpiresIn:   int64(p.cfg.SessionDuration.Seconds()),
	}, nil
}

// LogoutURL sends the browser back to the app root; there is no provider
// session to terminate in dev mode.
func (p *Provider) LogoutURL() string {
	return "/"
}

// mintIDToken builds an unsigned header.payload.signature token.
func (p *Provider) mintIDToken() (string, error) {
	now := time.Now()
	claims := map[string]any{
		"sub":             p.cfg.UserID,
		"email":           p.cfg.Email,
		token.GroupsClaim: p.cfg.Groups,
		"iat":             now.Unix(),
		"exp":             now.Add(p.cfg.SessionDuration).Unix(),
	}
	payload, err := json.Marshal(claims)
	if err != nil {
		return "", err
	}
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"none","typ":"JWT"}`))
	return header + "." + base64.RawURLEncoding.EncodeToString(payload) + ".dev", nil
}

func randomString(n int) (string, error) {
	if n <= 0 {
		return "", nil
	}
	bLen := (n*3 + 3) / 4
	b := make([]byte, bLen)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	s := base64.RawURLEncoding.EncodeToString(b)
	if len(s) < n {
		extra := make([]byte, 1)
		if _, err := rand.Read(extra); err != nil {
			return "", err
		}
		s += base64.RawURLEncoding.EncodeToString(extra)
	}
	return s[:n], nil
}
