package config

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config
// files for details on available environment variables:
//   - auth.go: Authentication configuration
//   - database.go: Database and session store configuration
//   - http.go: HTTP server configuration
//   - video.go: Video URL signing configuration
type AppConfig struct {
	// IsDev controls development mode behavior (dev auth defaults, seeding).
	IsDev bool `env:"DEV" envDefault:"false"`

	// SeedOnStart loads development seed data during startup.
	// Only honored when IsDev is true.
	SeedOnStart bool `env:"SEED_ON_START" envDefault:"false"`

	// Authentication configuration
	Auth AuthConfig

	// Database configuration
	Postgres DBConfig    `envPrefix:"DB_"`
	Redis    RedisConfig `envPrefix:"REDIS_"`

	// HTTP server configuration
	HTTP HTTPConfig

	// Video URL resolution configuration
	Video VideoConfig `envPrefix:"VIDEO_"`
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.Auth.Sanitize()
	c.HTTP.Sanitize()
	c.Video.Sanitize()
}
