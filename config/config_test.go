package config

import (
	"reflect"
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
)

func TestAppConfig_ParseAuthEnv(t *testing.T) {
	t.Setenv("AUTH_MODE", "oidc")
	t.Setenv("OIDC_CLIENT_ID", "portal-client")
	t.Setenv("OIDC_CLIENT_SECRET", "super-secret")
	t.Setenv("OIDC_REDIRECT_URL", "https://learn.example.com/auth/callback")
	t.Setenv("OIDC_DISCOVERY_URL", "https://login.example.com/.well-known/openid-configuration")
	t.Setenv("OIDC_SCOPE", "openid profile email")
	t.Setenv("DEV_AUTH_USER_ID", "dev-user")
	t.Setenv("DEV_AUTH_EMAIL", "dev@example.com")
	t.Setenv("DEV_AUTH_GROUPS", "admins;trainers")
	t.Setenv("ADMIN_FN_ENDPOINT", "https://learn.example.com/api/functions/is-admin")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}

	expected := AuthConfig{
		Mode: AuthModeOIDC,
		OIDC: OIDCConfig{
			ClientID:     "portal-client",
			ClientSecret: "super-secret",
			RedirectURL:  "https://learn.example.com/auth/callback",
			Scope:        "openid profile email",
			DiscoveryURL: "https://login.example.com/.well-known/openid-configuration",
		},
		Dev: DevAuthConfig{
			UserID:          "dev-user",
			Email:           "dev@example.com",
			DisplayName:     "Dev User",
			Groups:          []string{"admins", "trainers"},
			SessionDuration: 8 * time.Hour,
		},
		AdminFn: AdminFnConfig{
			Endpoint: "https://learn.example.com/api/functions/is-admin",
			Timeout:  5 * time.Second,
		},
	}

	if !reflect.DeepEqual(cfg.Auth, expected) {
		t.Fatalf("unexpected auth configuration:\nexpected: %#v\ngot:      %#v", expected, cfg.Auth)
	}
}

func TestAuthMode_UnmarshalText(t *testing.T) {
	tests := []struct {
		input       string
		expected    AuthMode
		expectError bool
	}{
		{input: "oidc", expected: AuthModeOIDC},
		{input: "OIDC", expected: AuthModeOIDC},
		{input: "dev", expected: AuthModeDev},
		{input: "mock", expectError: true},
		{input: "", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var mode AuthMode
			err := mode.UnmarshalText([]byte(tt.input))

			if tt.expectError {
				if err == nil {
					t.Errorf("expected error for %q but got none", tt.input)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			if mode != tt.expected {
				t.Errorf("expected mode %q, got %q", tt.expected, mode)
			}
		})
	}
}

func TestAuthConfig_Sanitize(t *testing.T) {
	cfg := AuthConfig{
		AdminFn: AdminFnConfig{Endpoint: "  https://fn.example.com/is-admin  ", Timeout: -1},
		Dev:     DevAuthConfig{SessionDuration: 0},
	}

	cfg.Sanitize()

	if cfg.AdminFn.Endpoint != "https://fn.example.com/is-admin" {
		t.Errorf("expected endpoint to be trimmed, got %q", cfg.AdminFn.Endpoint)
	}
	if cfg.AdminFn.Timeout != 5*time.Second {
		t.Errorf("expected timeout default, got %v", cfg.AdminFn.Timeout)
	}
	if cfg.Dev.SessionDuration != 8*time.Hour {
		t.Errorf("expected session duration default, got %v", cfg.Dev.SessionDuration)
	}
}

func TestHTTPConfig_Sanitize(t *testing.T) {
	cfg := HTTPConfig{Addr: ""}
	cfg.Sanitize()

	if cfg.Addr != ":8080" {
		t.Errorf("expected default addr, got %q", cfg.Addr)
	}
}

func TestVideoConfig_Sanitize(t *testing.T) {
	cfg := VideoConfig{
		BaseURL:    " https://media.example.com/ ",
		SigningKey: "k",
		URLTTL:     time.Second,
	}

	cfg.Sanitize()

	if cfg.BaseURL != "https://media.example.com" {
		t.Errorf("expected base URL to be trimmed, got %q", cfg.BaseURL)
	}
	if cfg.URLTTL != time.Minute {
		t.Errorf("expected TTL to be clamped to a minute, got %v", cfg.URLTTL)
	}
	if !cfg.Enabled() {
		t.Error("expected video config to be enabled")
	}

	cfg = VideoConfig{}
	cfg.Sanitize()
	if cfg.Enabled() {
		t.Error("expected empty video config to be disabled")
	}
}
