package config

import (
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSecrets() map[string]string {
	return map[string]string{
		"ACCESS_TOKEN_SECRET_KEY":             "access-secret-0123456789",
		"REFRESH_TOKEN_SECRET_KEY":            "refresh-secret-0123456789",
		"EMAIL_VERIFICATION_TOKEN_SECRET_KEY": "verify-secret-0123456789",
		"INVITE_USER_TOKEN_SECRET_KEY":        "invite-secret-0123456789",
		"PASSWORD_FORGOT_TOKEN_SECRET_KEY":    "forgot-secret-0123456789",
		"PASSWORD_RESET_TOKEN_SECRET_KEY":     "reset-secret-0123456789",
		"PASSWORD_SET_TOKEN_SECRET_KEY":       "set-secret-0123456789",
	}
}

func parse(t *testing.T, environ map[string]string) AppConfig {
	t.Helper()
	var cfg AppConfig
	require.NoError(t, env.ParseWithOptions(&cfg, env.Options{Environment: environ}))
	cfg.Sanitize()
	return cfg
}

func TestAppConfig_Defaults(t *testing.T) {
	t.Setenv("NODE_ENV", "")
	cfg := parse(t, validSecrets())

	assert.False(t, cfg.IsDev)
	assert.Equal(t, 3, cfg.MembersPerPage)
	assert.Equal(t, "localhost", cfg.Postgres.Host)
	assert.True(t, cfg.Postgres.RunMigrationsOnStart)
	assert.Equal(t, "localhost:6379", cfg.Redis.URI)
	assert.Empty(t, cfg.Redis.ClusterNodes)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.HTTP.CORSAllowedOrigins)
	assert.Empty(t, cfg.HTTP.CookieDomain)
	assert.Equal(t, MailModeSMTP, cfg.Mail.Mode)
	assert.Equal(t, 587, cfg.Mail.Port)
	assert.False(t, cfg.Storage.Enabled())
	assert.Equal(t, time.Hour, cfg.Storage.SignedURLExpiry)
	assert.True(t, cfg.Observability.Metrics.Enabled)
	assert.Equal(t, "/metrics", cfg.Observability.Metrics.Path)

	assert.Equal(t, DefaultAccessMaxAge, cfg.Tokens.Access.MaxAge)
	assert.Equal(t, DefaultRefreshMaxAge, cfg.Tokens.Refresh.MaxAge)
	assert.Equal(t, DefaultVerificationMaxAge, cfg.Tokens.EmailVerification.MaxAge)
	assert.Equal(t, DefaultInviteMaxAge, cfg.Tokens.Invite.MaxAge)
	assert.Equal(t, DefaultForgotMaxAge, cfg.Tokens.PasswordForgot.MaxAge)
	assert.Equal(t, DefaultResetMaxAge, cfg.Tokens.PasswordReset.MaxAge)
	assert.Equal(t, DefaultResetMaxAge, cfg.Tokens.PasswordSet.MaxAge)

	// SMTP mode without MAIL_HOST is the only problem with a bare environment.
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MAIL_HOST")
}

func TestAppConfig_Overrides(t *testing.T) {
	environ := validSecrets()
	environ["USERS_PER_PAGE"] = "10"
	environ["ACCESS_TOKEN_MAX_AGE"] = "5m"
	environ["REDIS_CLUSTER_NODES"] = "a:1, ,b:2"
	environ["REDIS_USE_CLUSTER"] = "true"
	environ["MAIL_MODE"] = "LOG"
	environ["AWS_BUCKET_NAME"] = "pictures"
	environ["AWS_BUCKET_REGION"] = "us-east-1"
	environ["AWS_ACCESS_KEY"] = "ak"
	environ["AWS_SECRET_ACCESS_KEY"] = "sk"
	environ["METRICS_PATH"] = "internal/metrics"
	environ["HTTP_COMPRESSION_LEVEL"] = "42"

	cfg := parse(t, environ)

	assert.Equal(t, 10, cfg.MembersPerPage)
	assert.Equal(t, 5*time.Minute, cfg.Tokens.Access.MaxAge)
	assert.Equal(t, []string{"a:1", "b:2"}, cfg.Redis.ClusterNodes)
	assert.True(t, cfg.Redis.UseCluster)
	assert.Equal(t, MailModeLog, cfg.Mail.Mode)
	assert.True(t, cfg.Storage.Enabled())
	assert.Equal(t, "/internal/metrics", cfg.Observability.Metrics.Path)
	assert.Equal(t, 9, cfg.HTTP.CompressionLevel)
	require.NoError(t, cfg.Validate())
}

func TestAppConfig_DevModeFromNodeEnv(t *testing.T) {
	t.Setenv("NODE_ENV", "development")
	cfg := parse(t, validSecrets())

	assert.True(t, cfg.IsDev)
	assert.Equal(t, MailModeLog, cfg.Mail.Mode, "development defaults to the log mailer")
	require.NoError(t, cfg.Validate())
}

func TestMailMode_RejectsUnknown(t *testing.T) {
	var cfg AppConfig
	environ := validSecrets()
	environ["MAIL_MODE"] = "pigeon"
	err := env.ParseWithOptions(&cfg, env.Options{Environment: environ})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid MailMode")
}

func TestTokenConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(map[string]string)
		wantErr string
	}{
		{
			name:   "all distinct",
			mutate: func(map[string]string) {},
		},
		{
			name:    "missing secret",
			mutate:  func(m map[string]string) { delete(m, "INVITE_USER_TOKEN_SECRET_KEY") },
			wantErr: "INVITE_USER_TOKEN_SECRET_KEY is required",
		},
		{
			name:    "short secret",
			mutate:  func(m map[string]string) { m["ACCESS_TOKEN_SECRET_KEY"] = "short" },
			wantErr: "ACCESS_TOKEN_SECRET_KEY must be at least 16 bytes",
		},
		{
			name: "shared secret",
			mutate: func(m map[string]string) {
				m["PASSWORD_SET_TOKEN_SECRET_KEY"] = m["PASSWORD_RESET_TOKEN_SECRET_KEY"]
			},
			wantErr: "must differ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			environ := validSecrets()
			tt.mutate(environ)
			cfg := parse(t, environ)

			err := cfg.Tokens.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestHTTPConfig_CookieDomainAuto(t *testing.T) {
	tests := []struct {
		clientURL string
		want      string
	}{
		{"https://app.campaigns.example.co.uk", "example.co.uk"},
		{"https://builder.example.com/", "example.com"},
		{"http://localhost:3000", ""},
		{"http://127.0.0.1:3000", ""},
	}

	for _, tt := range tests {
		t.Run(tt.clientURL, func(t *testing.T) {
			h := HTTPConfig{ClientURL: tt.clientURL, CookieDomain: "AUTO"}
			h.Sanitize()
			assert.Equal(t, tt.want, h.CookieDomain)
		})
	}
}

func TestHTTPConfig_Validate(t *testing.T) {
	h := HTTPConfig{Addr: ":8080", ServerURL: "api.example.com", ClientURL: "https://app.example.com"}
	err := h.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SERVER_URL")
	assert.NotContains(t, err.Error(), "CLIENT_URL")
}

func TestStorageConfig_Validate(t *testing.T) {
	s := StorageConfig{BucketName: "pictures"}
	s.Sanitize()
	err := s.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AWS_BUCKET_REGION")
	assert.Contains(t, err.Error(), "AWS_SECRET_ACCESS_KEY")

	require.NoError(t, (&StorageConfig{}).Validate())
}

func TestLogLevel(t *testing.T) {
	assert.Equal(t, "DEBUG", LogLevel(" debug ").String())
	assert.Equal(t, "WARN", LogLevel("warning").String())
	assert.Equal(t, "ERROR", LogLevel("error").String())
	assert.Equal(t, "INFO", LogLevel("verbose").String())
}
