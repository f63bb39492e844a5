package idp

// Package idp talks to the hosted identity provider: authorize and logout
// URL construction plus the authorization-code exchange.

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	gooidc "github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	domainauth "github.com/pollbooth/pollbooth-ui/internal/domain/auth"
	appErrors "github.com/pollbooth/pollbooth-ui/internal/errors"
	"github.com/pollbooth/pollbooth-ui/internal/ports"
)

const defaultScope = "openid email phone"

// GatewayConfig holds configuration for the identity provider gateway.
type GatewayConfig struct {
	// Domain is the provider's hosted UI base URL, e.g. https://auth.example.com
	Domain string
	// ClientID is the app client id registered with the provider
	ClientID string
	// ClientSecret is optional; public clients leave it empty
	ClientSecret string
	// RedirectURL is the absolute callback URL registered with the provider
	RedirectURL string
	// LogoutRedirectURL is where the provider sends the browser after logout
	LogoutRedirectURL string
	// Scope is the space-separated scope list (default "openid email phone")
	Scope string
	// IssuerURL enables identity token verification against the provider's
	// published keys when set; empty skips verification
	IssuerURL string
	// HTTPClient is optional, defaults to a 30s-timeout client
	HTTPClient *http.Client
}

// Gateway implements ports.AuthProvider against Cognito-style hosted endpoints:
// {domain}/oauth2/authorize, {domain}/oauth2/token and {domain}/logout.
type Gateway struct {
	config     *oauth2.Config
	domain     string
	logoutURL  string
	httpClient *http.Client
	verifier   *gooidc.IDTokenVerifier
}

var _ ports.AuthProvider = (*Gateway)(nil)

// NewGateway validates the config and builds the gateway. When IssuerURL is
// set it performs a single discovery fetch to obtain the provider's keys.
func NewGateway(ctx context.Context, cfg GatewayConfig) (*Gateway, error) {
	if cfg.Domain == "" {
		return nil, errors.New("provider domain is required")
	}
	if cfg.ClientID == "" {
		return nil, errors.New("client ID is required")
	}
	if cfg.RedirectURL == "" {
		return nil, errors.New("redirect URL is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	scope := cfg.Scope
	if scope == "" {
		scope = defaultScope
	}

	domain := strings.TrimSuffix(cfg.Domain, "/")
	g := &Gateway{
		domain:     domain,
		logoutURL:  buildLogoutURL(domain, cfg.ClientID, cfg.LogoutRedirectURL),
		httpClient: httpClient,
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       strings.Fields(scope),
			Endpoint: oauth2.Endpoint{
				AuthURL:  domain + "/oauth2/authorize",
				TokenURL: domain + "/oauth2/token",
			},
		},
	}

	if cfg.IssuerURL != "" {
		discoveryCtx := context.WithValue(ctx, oauth2.HTTPClient, httpClient)
		op, err := gooidc.NewProvider(discoveryCtx, strings.TrimSuffix(cfg.IssuerURL, "/"))
		if err != nil {
			return nil, fmt.Errorf("oidc discovery: %w", err)
		}
		g.verifier = op.Verifier(&gooidc.Config{ClientID: cfg.ClientID})
	}

	return g, nil
}

// Begin generates a cryptographically secure state and the authorize URL
// embedding it. The caller is responsible for making the state single-use.
func (g *Gateway) Begin(_ context.Context) (ports.BeginResult, error) {
	state, err := generateRandomString(32)
	if err != nil {
		return ports.BeginResult{}, fmt.Errorf("generate state: %w", err)
	}
	authURL := g.config.AuthCodeURL(state,
		oauth2.SetAuthURLParam("response_type", "code"),
	)
	return ports.BeginResult{AuthURL: authURL, State: state}, nil
}

// Exchange swaps the authorization code for tokens with a single form-encoded
// POST to the token endpoint. A provider rejection becomes an exchange error
// carrying the provider's error_description (or error code); a transport
// failure becomes a network error.
func (g *Gateway) Exchange(ctx context.Context, code string) (domainauth.TokenBundle, error) {
	if code == "" {
		return domainauth.TokenBundle{}, appErrors.Validation("authorization code is required")
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, g.httpClient)
	tok, err := g.config.Exchange(ctx, code)
	if err != nil {
		return domainauth.TokenBundle{}, mapExchangeError(err)
	}

	rawID, ok := tok.Extra("id_token").(string)
	if !ok || rawID == "" {
		return domainauth.TokenBundle{}, appErrors.Exchange("token response is missing id_token")
	}
	if g.verifier != nil {
		if _, verifyErr := g.verifier.Verify(ctx, rawID); verifyErr != nil {
			return domainauth.TokenBundle{}, appErrors.Wrap(verifyErr, appErrors.ErrCodeExchange, "identity token failed verification")
		}
	}

	bundle := domainauth.TokenBundle{
		AccessToken:  tok.AccessToken,
		IDToken:      rawID,
		RefreshToken: tok.RefreshToken,
		TokenType:    tok.TokenType,
	}
	if !tok.Expiry.IsZero() {
		bundle.ExpiresIn = int64(time.Until(tok.Expiry).Seconds())
	}
	return bundle, nil
}

// LogoutURL returns the provider's logout redirect target.
func (g *Gateway) LogoutURL() string {
	return g.logoutURL
}

// mapExchangeError classifies a failed code exchange: an answer from the
// provider is an exchange rejection, no answer at all is a network failure.
func mapExchangeError(err error) error {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		msg := retrieveErr.ErrorDescription
		if msg == "" {
			msg = retrieveErr.ErrorCode
		}
		if msg == "" {
			msg = "the identity provider rejected the login"
		}
		return appErrors.Wrap(err, appErrors.ErrCodeExchange, msg)
	}
	return appErrors.Wrap(err, appErrors.ErrCodeNetwork, "token endpoint unreachable")
}

func buildLogoutURL(domain, clientID, logoutRedirectURL string) string {
	q := url.Values{}
	q.Set("client_id", clientID)
	if logoutRedirectURL != "" {
		q.Set("logout_uri", logoutRedirectURL)
	}
	return domain + "/logout?" + q.Encode()
}

// generateRandomString generates a cryptographically secure URL-safe random string of exact length.
func generateRandomString(length int) (string, error) {
	if length <= 0 {
		return "", nil
	}
	// Number of random bytes needed to produce at least 'length' base64 URL-safe chars
	nBytes := (length*3 + 3) / 4
	b := make([]byte, nBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	s := base64.RawURLEncoding.EncodeToString(b)
	if len(s) < length {
		extra := make([]byte, 1)
		if _, err := rand.Read(extra); err != nil {
			return "", err
		}
		s += base64.RawURLEncoding.EncodeToString(extra)
	}
	return s[:length], nil
}
