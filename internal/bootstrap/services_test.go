package bootstrap

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pollbooth/pollbooth-ui/config"
	"github.com/pollbooth/pollbooth-ui/internal/testutil"
)

func TestBuildServices_NilConfig(t *testing.T) {
	_, err := BuildServices(context.Background(), ServiceDeps{})
	assert.Error(t, err)
}

func TestBuildServices(t *testing.T) {
	client := testutil.SetupTestRedis(t)

	cfg := &config.AppConfig{
		Auth: config.AuthConfig{
			Mode: config.AuthModeMock,
			DevAuth: config.DevAuthConfig{
				UserID: "dev-user",
				Email:  "dev@example.com",
				Groups: []string{"admin"},
			},
			AdminGroup: "admin",
		},
		PollAPI: config.PollAPIConfig{BaseURL: "http://localhost:9000"},
	}
	cfg.Sanitize()

	services, err := BuildServices(context.Background(), ServiceDeps{
		Config:      cfg,
		RedisClient: client,
	})
	require.NoError(t, err)
	assert.NotNil(t, services.Auth)
	assert.NotNil(t, services.Polls)
}

func TestBuildServices_MissingPollAPIBaseURL(t *testing.T) {
	client := testutil.SetupTestRedis(t)

	cfg := &config.AppConfig{
		Auth: config.AuthConfig{
			Mode: config.AuthModeMock,
			DevAuth: config.DevAuthConfig{
				UserID: "dev-user",
				Email:  "dev@example.com",
				Groups: []string{"admin"},
			},
			AdminGroup: "admin",
		},
	}

	_, err := BuildServices(context.Background(), ServiceDeps{
		Config:      cfg,
		RedisClient: client,
	})
	assert.Error(t, err)
}
