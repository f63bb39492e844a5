// Package ports defines the interfaces between services and adapters.
package ports

import (
	"context"
	"time"

	domainauth "github.com/pollbooth/pollbooth-ui/internal/domain/auth"
)

// BeginResult is the provider's answer to starting a login: where to send the
// browser and the state that must come back on the callback.
type BeginResult struct {
	// AuthURL is the absolute (or app-relative, for dev auth) authorize URL
	AuthURL string
	// State is the opaque anti-forgery value embedded in AuthURL
	State string
}

// AuthProvider abstracts the identity provider: authorize URL construction,
// the code-for-token exchange, and the provider-side logout redirect.
type AuthProvider interface {
	// Begin produces the authorize redirect for a new login attempt.
	Begin(ctx context.Context) (BeginResult, error)
	// Exchange swaps an authorization code for the token bundle. It makes a
	// single attempt; a provider rejection surfaces as an exchange error, a
	// transport failure as a network error.
	Exchange(ctx context.Context, code string) (domainauth.TokenBundle, error)
	// LogoutURL is where the browser is sent to terminate the provider session.
	LogoutURL() string
}

// SessionStore persists sessions between requests.
type SessionStore interface {
	Save(ctx context.Context, session *domainauth.Session) error
	Get(ctx context.Context, sessionID string) (*domainauth.Session, error)
	Delete(ctx context.Context, sessionID string) error
}

// StateStore issues single-use login states. Consume is atomic: for any
// issued state exactly one Consume call observes it, which is what limits the
// code exchange to at most one attempt per login redirect.
type StateStore interface {
	Issue(ctx context.Context, state string, ttl time.Duration) error
	Consume(ctx context.Context, state string) (bool, error)
}

// RoleMapper derives a role from normalized identity token groups.
type RoleMapper interface {
	Map(groups []string) domainauth.Role
}
