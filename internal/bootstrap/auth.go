package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/coachbase/traindeck/config"
	"github.com/coachbase/traindeck/internal/adapters/adminfn"
	"github.com/coachbase/traindeck/internal/adapters/authroles"
	"github.com/coachbase/traindeck/internal/adapters/devauth"
	"github.com/coachbase/traindeck/internal/adapters/oidc"
	redisadapter "github.com/coachbase/traindeck/internal/adapters/redis"
	"github.com/coachbase/traindeck/internal/core"
	"github.com/coachbase/traindeck/internal/ports"
	"github.com/coachbase/traindeck/internal/service"
)

// AuthDeps contains dependencies for auth service construction.
type AuthDeps struct {
	Auth        config.AuthConfig
	RedisClient redis.UniversalClient
	Users       core.UserRepository
	Logger      *slog.Logger
}

// BuildAuthService creates an auth service based on the configured auth mode.
func BuildAuthService(deps AuthDeps) (*service.AuthService, error) {
	if deps.RedisClient == nil {
		return nil, fmt.Errorf("auth mode %q requires a redis client for session storage", deps.Auth.Mode)
	}

	sessionStore := redisadapter.NewSessionStore(deps.RedisClient)

	provider, err := buildAuthProvider(deps.Auth)
	if err != nil {
		return nil, err
	}

	return service.NewAuthService(service.AuthServiceOptions{
		Provider: provider,
		Sessions: sessionStore,
		Users:    deps.Users,
	}), nil
}

//nolint:ireturn // provider selection happens at runtime via AUTH_MODE.
func buildAuthProvider(cfg config.AuthConfig) (ports.AuthProvider, error) {
	switch cfg.Mode {
	case config.AuthModeDev:
		prov, err := devauth.NewProvider(devauth.Config{
			UserID:          cfg.Dev.UserID,
			Email:           cfg.Dev.Email,
			DisplayName:     cfg.Dev.DisplayName,
			Groups:          cfg.Dev.Groups,
			Role:            cfg.Dev.Role,
			SessionDuration: cfg.Dev.SessionDuration,
		})
		if err != nil {
			return nil, fmt.Errorf("build dev auth provider: %w", err)
		}
		return prov, nil

	case config.AuthModeOIDC:
		prov, err := oidc.NewProvider(oidc.ProviderConfig{
			ClientID:     cfg.OIDC.ClientID,
			ClientSecret: cfg.OIDC.ClientSecret,
			RedirectURL:  cfg.OIDC.RedirectURL,
			Scope:        cfg.OIDC.Scope,
			DiscoveryURL: cfg.OIDC.DiscoveryURL,
			LogoutURL:    cfg.OIDC.LogoutURL,
		})
		if err != nil {
			return nil, fmt.Errorf("build OIDC provider: %w", err)
		}
		return prov, nil

	default:
		return nil, fmt.Errorf("unsupported auth mode %q", cfg.Mode)
	}
}

// BuildRoleResolver creates the fail-closed role resolver: direct role
// lookup in the user store, then the privileged is-admin function when an
// endpoint is configured.
func BuildRoleResolver(deps AuthDeps) (*authroles.Resolver, error) {
	var checker authroles.AdminChecker
	if deps.Auth.AdminFn.Endpoint != "" {
		client, err := adminfn.NewClient(adminfn.Config{
			Endpoint: deps.Auth.AdminFn.Endpoint,
			Timeout:  deps.Auth.AdminFn.Timeout,
		})
		if err != nil {
			return nil, fmt.Errorf("build admin function client: %w", err)
		}
		checker = client
	}

	return authroles.NewResolver(authroles.ResolverOptions{
		Roles:   deps.Users,
		AdminFn: checker,
		Logger:  deps.Logger,
	}), nil
}
