package config

import (
	"fmt"
	"strings"
)

// AuthMode represents the authentication mode for the application.
type AuthMode string

const (
	// AuthModeOAuth uses OAuth/OIDC against the hosted identity provider.
	AuthModeOAuth AuthMode = "oauth"
	// AuthModeMock uses mock/dev authentication (for development only).
	AuthModeMock AuthMode = "mock"
)

// UnmarshalText implements encoding.TextUnmarshaler for AuthMode.
func (a *AuthMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "oauth", "mock":
		*a = AuthMode(v)
		return nil
	default:
		return fmt.Errorf("invalid AuthMode: %q (valid options: oauth, mock)", v)
	}
}

// OAuthConfig contains OAuth/OIDC configuration for the hosted login domain.
type OAuthConfig struct {
	// Domain is the hosted IdP base URL, e.g. "https://auth.example.com".
	// The authorize, token and logout endpoints hang off this domain.
	Domain            string `env:"DOMAIN"`
	ClientID          string `env:"CLIENT_ID"`
	ClientSecret      string `env:"CLIENT_SECRET"`
	RedirectURL       string `env:"REDIRECT_URL"        envDefault:"http://localhost:8080/auth/callback"`
	LogoutRedirectURL string `env:"LOGOUT_REDIRECT_URL" envDefault:"http://localhost:8080/"`
	Scope             string `env:"SCOPE"               envDefault:"openid email phone"`

	// IssuerURL enables OIDC discovery and ID-token signature verification
	// when set. Left empty, tokens are decoded without verification.
	IssuerURL string `env:"ISSUER_URL"`
}

// DevAuthConfig controls mock/dev authentication identity.
// Used when AUTH_MODE=mock for development and testing.
type DevAuthConfig struct {
	UserID string   `env:"USER_ID" envDefault:"dev-user"`
	Email  string   `env:"EMAIL"   envDefault:"dev@example.com"`
	Groups []string `env:"GROUPS"  envDefault:"admin"           envSeparator:";"`
}

// AuthConfig groups all authentication-related configuration.
type AuthConfig struct {
	// Mode determines which authentication provider to use.
	Mode AuthMode `env:"AUTH_MODE" envDefault:"oauth"`

	// OAuth configuration (used when Mode=oauth).
	OAuth OAuthConfig `envPrefix:"OAUTH_"`

	// DevAuth configuration (used when Mode=mock).
	DevAuth DevAuthConfig `envPrefix:"DEV_AUTH_"`

	// AdminGroup is the IdP group whose members get the admin dashboard.
	AdminGroup string `env:"ADMIN_GROUP" envDefault:"admin"`
}

// Sanitize applies guardrails to auth configuration values.
func (a *AuthConfig) Sanitize() {
	a.OAuth.Domain = strings.TrimRight(strings.TrimSpace(a.OAuth.Domain), "/")
	a.AdminGroup = strings.TrimSpace(a.AdminGroup)
	if a.AdminGroup == "" {
		a.AdminGroup = "admin"
	}
}
