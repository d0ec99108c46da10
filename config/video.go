package config

import (
	"strings"
	"time"
)

// VideoConfig contains configuration for signed video URL resolution.
// When BaseURL or SigningKey is empty, video playback falls back to the
// per-training fallback URL.
type VideoConfig struct {
	// BaseURL is the CDN or storage base URL that video object keys are
	// resolved against (e.g., "https://media.example.com").
	BaseURL string `env:"BASE_URL" envDefault:""`

	// SigningKey is the shared secret used to sign resolved URLs.
	SigningKey string `env:"SIGNING_KEY" envDefault:""`

	// URLTTL is the lifetime of a signed URL.
	URLTTL time.Duration `env:"URL_TTL" envDefault:"15m"`
}

// Enabled reports whether signed URL resolution is configured.
func (v *VideoConfig) Enabled() bool {
	return v.BaseURL != "" && v.SigningKey != ""
}

// Sanitize applies guardrails to video configuration values.
func (v *VideoConfig) Sanitize() {
	v.BaseURL = strings.TrimRight(strings.TrimSpace(v.BaseURL), "/")
	if v.URLTTL < time.Minute {
		v.URLTTL = time.Minute
	}
}
