package bootstrap

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/pollbooth/pollbooth-ui/config"
	"github.com/pollbooth/pollbooth-ui/internal/adapters/authroles"
	"github.com/pollbooth/pollbooth-ui/internal/adapters/devauth"
	"github.com/pollbooth/pollbooth-ui/internal/adapters/idp"
	redisadapter "github.com/pollbooth/pollbooth-ui/internal/adapters/redis"
	"github.com/pollbooth/pollbooth-ui/internal/service"
)

// AuthConfig contains configuration for auth service.
type AuthConfig struct {
	Auth        config.AuthConfig
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// BuildAuthService creates an auth service based on the configured auth mode.
// Returns nil if auth is not configured or configuration is invalid.
func BuildAuthService(ctx context.Context, cfg AuthConfig) *service.AuthService {
	if cfg.RedisClient == nil {
		if cfg.Logger != nil {
			cfg.Logger.Warn("auth service disabled: redis client not configured", "mode", cfg.Auth.Mode)
		}
		return nil
	}

	// Redis-backed stores shared by both modes
	sessionStore := redisadapter.NewSessionStore(cfg.RedisClient)
	stateStore := redisadapter.NewStateStore(cfg.RedisClient)

	// Role mapper is shared
	roleMapper := authroles.GroupsMapper{AdminGroup: cfg.Auth.AdminGroup}

	switch cfg.Auth.Mode {
	case config.AuthModeMock:
		return buildDevAuthService(cfg, sessionStore, stateStore, roleMapper)

	case config.AuthModeOAuth:
		return buildOAuthService(ctx, cfg, sessionStore, stateStore, roleMapper)

	default:
		return nil
	}
}

func buildDevAuthService(
	cfg AuthConfig,
	sessionStore *redisadapter.SessionStore,
	stateStore *redisadapter.StateStore,
	roleMapper authroles.GroupsMapper,
) *service.AuthService {
	// Explicitly enabled dev auth mode; build a local provider.
	prov, err := devauth.NewProvider(devauth.Config{
		UserID: cfg.Auth.DevAuth.UserID,
		Email:  cfg.Auth.DevAuth.Email,
		Groups: cfg.Auth.DevAuth.Groups,
		// session duration defaults inside provider
	})
	if err != nil {
		if cfg.Logger != nil {
			cfg.Logger.Warn("failed to create dev auth provider, auth disabled", "error", err)
		}
		return nil
	}

	svc, err := service.NewAuthService(service.AuthServiceOptions{
		Provider: prov,
		Sessions: sessionStore,
		States:   stateStore,
		Roles:    &roleMapper,
		Logger:   cfg.Logger,
	})
	if err != nil {
		if cfg.Logger != nil {
			cfg.Logger.Warn("failed to create auth service, auth disabled", "error", err)
		}
		return nil
	}
	return svc
}

func buildOAuthService(
	ctx context.Context,
	cfg AuthConfig,
	sessionStore *redisadapter.SessionStore,
	stateStore *redisadapter.StateStore,
	roleMapper authroles.GroupsMapper,
) *service.AuthService {
	// Only enable when fully configured
	oauth := cfg.Auth.OAuth
	if oauth.Domain == "" || oauth.ClientID == "" {
		if cfg.Logger != nil {
			cfg.Logger.Warn("AuthModeOAuth selected but required config missing; auth disabled",
				"domain_empty", oauth.Domain == "",
				"client_id_empty", oauth.ClientID == "",
			)
		}
		return nil
	}

	prov, err := idp.NewGateway(ctx, idp.GatewayConfig{
		Domain:            oauth.Domain,
		ClientID:          oauth.ClientID,
		ClientSecret:      oauth.ClientSecret,
		RedirectURL:       oauth.RedirectURL,
		LogoutRedirectURL: oauth.LogoutRedirectURL,
		Scope:             oauth.Scope,
		IssuerURL:         oauth.IssuerURL,
	})
	if err != nil {
		if cfg.Logger != nil {
			cfg.Logger.Warn("failed to create identity provider gateway, auth disabled", "error", err)
		}
		return nil
	}

	svc, err := service.NewAuthService(service.AuthServiceOptions{
		Provider: prov,
		Sessions: sessionStore,
		States:   stateStore,
		Roles:    &roleMapper,
		Logger:   cfg.Logger,
	})
	if err != nil {
		if cfg.Logger != nil {
			cfg.Logger.Warn("failed to create auth service, auth disabled", "error", err)
		}
		return nil
	}
	return svc
}
