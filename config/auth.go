package config

import (
	"errors"
	"fmt"
	"time"
)

// MinTokenSecretLength is the shortest accepted HMAC secret in bytes.
const MinTokenSecretLength = 16

// TokenSecret is the signing secret and lifetime of one token purpose.
type TokenSecret struct {
	Secret string        `env:"SECRET_KEY"`
	MaxAge time.Duration `env:"MAX_AGE"`
}

// TokenConfig holds one secret and lifetime per token purpose. Each purpose
// must use a different secret so a token never verifies under another purpose.
type TokenConfig struct {
	Access            TokenSecret `envPrefix:"ACCESS_TOKEN_"`
	Refresh           TokenSecret `envPrefix:"REFRESH_TOKEN_"`
	EmailVerification TokenSecret `envPrefix:"EMAIL_VERIFICATION_TOKEN_"`
	Invite            TokenSecret `envPrefix:"INVITE_USER_TOKEN_"`
	PasswordForgot    TokenSecret `envPrefix:"PASSWORD_FORGOT_TOKEN_"`
	PasswordReset     TokenSecret `envPrefix:"PASSWORD_RESET_TOKEN_"`
	PasswordSet       TokenSecret `envPrefix:"PASSWORD_SET_TOKEN_"`
}

// Default token lifetimes, applied when MAX_AGE is unset.
const (
	DefaultAccessMaxAge       = 15 * time.Minute
	DefaultRefreshMaxAge      = 7 * 24 * time.Hour
	DefaultVerificationMaxAge = 24 * time.Hour
	DefaultInviteMaxAge       = 72 * time.Hour
	DefaultForgotMaxAge       = time.Hour
	DefaultResetMaxAge        = 15 * time.Minute
)

// Sanitize fills in default lifetimes.
func (c *TokenConfig) Sanitize() {
	defaults := []struct {
		t   *TokenSecret
		def time.Duration
	}{
		{&c.Access, DefaultAccessMaxAge},
		{&c.Refresh, DefaultRefreshMaxAge},
		{&c.EmailVerification, DefaultVerificationMaxAge},
		{&c.Invite, DefaultInviteMaxAge},
		{&c.PasswordForgot, DefaultForgotMaxAge},
		{&c.PasswordReset, DefaultResetMaxAge},
		{&c.PasswordSet, DefaultResetMaxAge},
	}
	for _, d := range defaults {
		if d.t.MaxAge <= 0 {
			d.t.MaxAge = d.def
		}
	}
}

// Named returns the secrets keyed by their environment prefix.
func (c *TokenConfig) Named() map[string]TokenSecret {
	return map[string]TokenSecret{
		"ACCESS_TOKEN":             c.Access,
		"REFRESH_TOKEN":            c.Refresh,
		"EMAIL_VERIFICATION_TOKEN": c.EmailVerification,
		"INVITE_USER_TOKEN":        c.Invite,
		"PASSWORD_FORGOT_TOKEN":    c.PasswordForgot,
		"PASSWORD_RESET_TOKEN":     c.PasswordReset,
		"PASSWORD_SET_TOKEN":       c.PasswordSet,
	}
}

// Validate requires every secret to be set, long enough and distinct.
func (c *TokenConfig) Validate() error {
	var errs []error
	seen := make(map[string]string)
	for name, t := range c.Named() {
		switch {
		case t.Secret == "":
			errs = append(errs, fmt.Errorf("%s_SECRET_KEY is required", name))
			continue
		case len(t.Secret) < MinTokenSecretLength:
			errs = append(errs, fmt.Errorf("%s_SECRET_KEY must be at least %d bytes", name, MinTokenSecretLength))
		}
		if other, dup := seen[t.Secret]; dup {
			errs = append(errs, fmt.Errorf("%s_SECRET_KEY and %s_SECRET_KEY must differ", other, name))
		}
		seen[t.Secret] = name
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("token secrets: %w", errors.Join(errs...))
}
