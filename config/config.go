package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config
// files for details on available environment variables:
//   - auth.go: token secrets and lifetimes
//   - database.go: Postgres and Redis
//   - http.go: HTTP server, cookies, CORS and rate limiting
//   - mail.go: outbound email
//   - storage.go: S3 profile picture bucket
//   - observability.go: metrics and logging
type AppConfig struct {
	// IsDev controls development mode behavior (log mailer allowed, dev seed, etc.)
	// Set DEV=true or NODE_ENV=development for development mode.
	IsDev bool `env:"DEV" envDefault:"false"`

	// MembersPerPage sizes the member listing.
	MembersPerPage int `env:"USERS_PER_PAGE" envDefault:"3"`

	Tokens TokenConfig

	Postgres DBConfig    `envPrefix:"DB_"`
	Redis    RedisConfig `envPrefix:"REDIS_"`

	HTTP HTTPConfig

	Mail    MailConfig    `envPrefix:"MAIL_"`
	Storage StorageConfig `envPrefix:"AWS_"`

	Observability ObservabilityConfig
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.detectDevMode()

	if c.MembersPerPage <= 0 {
		c.MembersPerPage = 3
	}
	c.Tokens.Sanitize()
	c.Redis.Sanitize()
	c.HTTP.Sanitize()
	c.Mail.Sanitize(c.IsDev)
	c.Storage.Sanitize()
	c.Observability.Sanitize()
}

// Validate reports every configuration problem that would prevent startup.
func (c *AppConfig) Validate() error {
	var errs []error
	if err := c.Tokens.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.HTTP.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.Mail.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.Storage.Validate(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

// detectDevMode checks both DEV and NODE_ENV environment variables.
// NODE_ENV is checked as a fallback (common in frontend tooling).
func (c *AppConfig) detectDevMode() {
	if !c.IsDev {
		nodeEnv := strings.ToLower(os.Getenv("NODE_ENV"))
		c.IsDev = nodeEnv == "development" || nodeEnv == "dev"
	}
}

// LogLevel parses LOG_LEVEL names; unknown values select info.
func LogLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
