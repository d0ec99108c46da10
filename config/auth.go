package config

import (
	"fmt"
	"strings"
	"time"
)

// AuthMode represents the authentication mode for the application.
type AuthMode string

const (
	// AuthModeOIDC uses OIDC for authentication.
	AuthModeOIDC AuthMode = "oidc"
	// AuthModeDev uses local dev authentication (for development only).
	AuthModeDev AuthMode = "dev"
)

// UnmarshalText implements encoding.TextUnmarshaler for AuthMode.
func (a *AuthMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "oidc", "dev":
		*a = AuthMode(v)
		return nil
	default:
		return fmt.Errorf("invalid AuthMode: %q (valid options: oidc, dev)", v)
	}
}

// OIDCConfig contains OIDC configuration.
type OIDCConfig struct {
	ClientID     string `env:"CLIENT_ID"     envDefault:"traindeck"`
	ClientSecret string `env:"CLIENT_SECRET" envDefault:"traindeck"`
	RedirectURL  string `env:"REDIRECT_URL"  envDefault:"http://localhost:8080/auth/callback"`
	Scope        string `env:"SCOPE"         envDefault:"openid profile email"`
	DiscoveryURL string `env:"DISCOVERY_URL"`
	LogoutURL    string `env:"LOGOUT_URL"`
}

// DevAuthConfig controls the local dev authentication identity.
// Used when AUTH_MODE=dev for development and testing.
type DevAuthConfig struct {
	UserID          string        `env:"USER_ID"          envDefault:"dev-user"`
	Email           string        `env:"EMAIL"            envDefault:"dev@example.com"`
	DisplayName     string        `env:"DISPLAY_NAME"     envDefault:"Dev User"`
	Groups          []string      `env:"GROUPS"           envDefault:"admins"          envSeparator:";"`
	Role            string        `env:"ROLE"             envDefault:""`
	SessionDuration time.Duration `env:"SESSION_DURATION" envDefault:"8h"`
}

// AdminFnConfig points at the privileged is-admin function used as the
// fallback path of role resolution.
type AdminFnConfig struct {
	// Endpoint is the full URL of the is-admin function. When empty the
	// resolver stops after the direct role lookup.
	Endpoint string        `env:"ENDPOINT" envDefault:""`
	Timeout  time.Duration `env:"TIMEOUT"  envDefault:"5s"`
}

// AuthConfig groups all authentication-related configuration.
type AuthConfig struct {
	// Mode determines which authentication provider to use.
	Mode AuthMode `env:"AUTH_MODE" envDefault:"oidc"`

	// OIDC configuration (used when Mode=oidc).
	OIDC OIDCConfig `envPrefix:"OIDC_"`

	// Dev configuration (used when Mode=dev).
	Dev DevAuthConfig `envPrefix:"DEV_AUTH_"`

	// AdminFn configures the privileged is-admin function client.
	AdminFn AdminFnConfig `envPrefix:"ADMIN_FN_"`
}

// Sanitize applies guardrails to authentication configuration values.
func (a *AuthConfig) Sanitize() {
	a.AdminFn.Endpoint = strings.TrimSpace(a.AdminFn.Endpoint)
	if a.AdminFn.Timeout <= 0 {
		a.AdminFn.Timeout = 5 * time.Second
	}
	if a.Dev.SessionDuration <= 0 {
		a.Dev.SessionDuration = 8 * time.Hour
	}
}
