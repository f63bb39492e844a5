package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/redis/go-redis/v9"

	"github.com/pollbooth/pollbooth-ui/config"
	"github.com/pollbooth/pollbooth-ui/internal/adapters/pollapi"
	redisadapter "github.com/pollbooth/pollbooth-ui/internal/adapters/redis"
	"github.com/pollbooth/pollbooth-ui/internal/service"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Auth  *service.AuthService
	Polls *service.PollService
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// BuildServices wires adapters into the service layer.
func BuildServices(ctx context.Context, deps ServiceDeps) (ServiceContainer, error) {
	if deps.Config == nil {
		return ServiceContainer{}, fmt.Errorf("build services: config is required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	authSvc := BuildAuthService(ctx, AuthConfig{
		Auth:        deps.Config.Auth,
		RedisClient: deps.RedisClient,
		Logger:      logger,
	})
	if authSvc == nil {
		return ServiceContainer{}, fmt.Errorf("build services: auth service could not be configured")
	}

	apiClient, err := pollapi.NewClient(pollapi.Config{
		BaseURL:    deps.Config.PollAPI.BaseURL,
		HTTPClient: &http.Client{Timeout: deps.Config.PollAPI.Timeout},
		Logger:     logger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("build poll api client: %w", err)
	}

	pollSvc, err := service.NewPollService(service.PollServiceOptions{
		API:      apiClient,
		Sessions: redisadapter.NewSessionStore(deps.RedisClient),
		Logger:   logger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("build poll service: %w", err)
	}

	return ServiceContainer{Auth: authSvc, Polls: pollSvc}, nil
}
