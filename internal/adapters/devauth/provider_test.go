package devauth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pollbooth/pollbooth-ui/internal/token"
)

func TestNewProvider_Validation(t *testing.T) {
	_, err := NewProvider(Config{Email: "dev@example.com"})
	assert.ErrorContains(t, err, "UserID")

	_, err = NewProvider(Config{UserID: "dev"})
	assert.ErrorContains(t, err, "Email")
}

func TestProvider_Begin(t *testing.T) {
	p, err := NewProvider(Config{UserID: "dev", Email: "dev@example.com"})
	require.NoError(t, err)

	res, err := p.Begin(context.Background())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(res.AuthURL, "/auth/callback?code=dev&state="))
	assert.Len(t, res.State, 24)
	assert.True(t, strings.HasSuffix(res.AuthURL, res.State))
}

func TestProvider_Exchange_MintsDecodableToken(t *testing.T) {
	p, err := NewProvider(Config{
		UserID:          "dev",
		Email:           "dev@example.com",
		Groups:          []string{"admin"},
		SessionDuration: time.Hour,
	})
	require.NoError(t, err)

	bundle, err := p.Exchange(context.Background(), "dev")
	require.NoError(t, err)
	assert.Equal(t, int64(3600), bundle.ExpiresIn)

	claims, err := token.Decode(bundle.IDToken)
	require.NoError(t, err)
	assert.Equal(t, "dev", claims.String("sub"))
	assert.Equal(t, "dev@example.com", claims.String("email"))
	assert.Equal(t, []string{"admin"}, claims.Groups())
}
