package idp

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/pollbooth/pollbooth-ui/internal/errors"
)

func newTestGateway(t *testing.T, domain string) *Gateway {
	t.Helper()
	g, err := NewGateway(context.Background(), GatewayConfig{
		Domain:            domain,
		ClientID:          "client-123",
		RedirectURL:       "https://app.example.com/auth/callback",
		LogoutRedirectURL: "https://app.example.com/",
	})
	require.NoError(t, err)
	return g
}

func TestNewGateway_Validation(t *testing.T) {
	ctx := context.Background()

	_, err := NewGateway(ctx, GatewayConfig{ClientID: "c", RedirectURL: "r"})
	assert.ErrorContains(t, err, "domain")

	_, err = NewGateway(ctx, GatewayConfig{Domain: "https://auth.example.com", RedirectURL: "r"})
	assert.ErrorContains(t, err, "client ID")

	_, err = NewGateway(ctx, GatewayConfig{Domain: "https://auth.example.com", ClientID: "c"})
	assert.ErrorContains(t, err, "redirect URL")
}

func TestGateway_Begin(t *testing.T) {
	g := newTestGateway(t, "https://auth.example.com/")

	res, err := g.Begin(context.Background())
	require.NoError(t, err)
	require.Len(t, res.State, 32)

	u, err := url.Parse(res.AuthURL)
	require.NoError(t, err)
	assert.Equal(t, "/oauth2/authorize", u.Path)
	assert.Equal(t, "client-123", u.Query().Get("client_id"))
	assert.Equal(t, "code", u.Query().Get("response_type"))
	assert.Equal(t, "openid email phone", u.Query().Get("scope"))
	assert.Equal(t, "https://app.example.com/auth/callback", u.Query().Get("redirect_uri"))
	assert.Equal(t, res.State, u.Query().Get("state"))
}

func TestGateway_Begin_FreshStatePerCall(t *testing.T) {
	g := newTestGateway(t, "https://auth.example.com")

	first, err := g.Begin(context.Background())
	require.NoError(t, err)
	second, err := g.Begin(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, first.State, second.State)
}

func TestGateway_LogoutURL(t *testing.T) {
	g := newTestGateway(t, "https://auth.example.com")

	u, err := url.Parse(g.LogoutURL())
	require.NoError(t, err)
	assert.Equal(t, "/logout", u.Path)
	assert.Equal(t, "client-123", u.Query().Get("client_id"))
	assert.Equal(t, "https://app.example.com/", u.Query().Get("logout_uri"))
}

func TestGateway_Exchange(t *testing.T) {
	idToken := "h." + base64.RawURLEncoding.EncodeToString([]byte(`{"sub":"u1"}`)) + ".s"

	t.Run("success", func(t *testing.T) {
		var gotForm url.Values
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/oauth2/token", r.URL.Path)
			require.NoError(t, r.ParseForm())
			gotForm = r.PostForm
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"access_token":"at","id_token":"` + idToken + `","refresh_token":"rt","token_type":"Bearer","expires_in":3600}`))
		}))
		defer srv.Close()

		g := newTestGateway(t, srv.URL)
		bundle, err := g.Exchange(context.Background(), "code-abc")
		require.NoError(t, err)

		assert.Equal(t, "authorization_code", gotForm.Get("grant_type"))
		assert.Equal(t, "code-abc", gotForm.Get("code"))
		assert.Equal(t, "https://app.example.com/auth/callback", gotForm.Get("redirect_uri"))

		assert.Equal(t, "at", bundle.AccessToken)
		assert.Equal(t, idToken, bundle.IDToken)
		assert.Equal(t, "rt", bundle.RefreshToken)
		assert.Equal(t, "Bearer", bundle.TokenType)
		assert.InDelta(t, 3600, bundle.ExpiresIn, 5)
	})

	t.Run("provider rejection carries error_description", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant","error_description":"code expired"}`))
		}))
		defer srv.Close()

		g := newTestGateway(t, srv.URL)
		_, err := g.Exchange(context.Background(), "stale-code")
		require.Error(t, err)
		assert.True(t, appErrors.IsExchange(err))
		assert.Contains(t, err.Error(), "code expired")
	})

	t.Run("provider rejection without description uses error code", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_client"}`))
		}))
		defer srv.Close()

		g := newTestGateway(t, srv.URL)
		_, err := g.Exchange(context.Background(), "code")
		require.Error(t, err)
		assert.True(t, appErrors.IsExchange(err))
		assert.Contains(t, err.Error(), "invalid_client")
	})

	t.Run("missing id_token", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"access_token":"at","token_type":"Bearer"}`))
		}))
		defer srv.Close()

		g := newTestGateway(t, srv.URL)
		_, err := g.Exchange(context.Background(), "code")
		require.Error(t, err)
		assert.True(t, appErrors.IsExchange(err))
	})

	t.Run("unreachable endpoint is a network error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close() // connection refused from here on

		g := newTestGateway(t, srv.URL)
		_, err := g.Exchange(context.Background(), "code")
		require.Error(t, err)
		assert.True(t, appErrors.IsNetwork(err))
	})

	t.Run("empty code rejected without a request", func(t *testing.T) {
		g := newTestGateway(t, "https://auth.example.com")
		_, err := g.Exchange(context.Background(), "")
		require.Error(t, err)
		assert.True(t, appErrors.IsValidation(err))
	})
}
