package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/caarlos0/env/v11"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Asad13/ad-campaign-builder-backend/config"
	"github.com/Asad13/ad-campaign-builder-backend/internal/adapters/mailer"
	domainauth "github.com/Asad13/ad-campaign-builder-backend/internal/domain/auth"
)

func testEnviron() map[string]string {
	return map[string]string{
		"ACCESS_TOKEN_SECRET_KEY":             "access-secret-0123456789",
		"REFRESH_TOKEN_SECRET_KEY":            "refresh-secret-0123456789",
		"EMAIL_VERIFICATION_TOKEN_SECRET_KEY": "verify-secret-0123456789",
		"INVITE_USER_TOKEN_SECRET_KEY":        "invite-secret-0123456789",
		"PASSWORD_FORGOT_TOKEN_SECRET_KEY":    "forgot-secret-0123456789",
		"PASSWORD_RESET_TOKEN_SECRET_KEY":     "reset-secret-0123456789",
		"PASSWORD_SET_TOKEN_SECRET_KEY":       "set-secret-0123456789",
		"MAIL_MODE":                           "log",
	}
}

func testConfig(t *testing.T) *config.AppConfig {
	t.Helper()
	cfg, err := parseConfig(env.Options{Environment: testEnviron()})
	require.NoError(t, err)
	return &cfg
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestParseConfig_ValidatesSecrets(t *testing.T) {
	environ := testEnviron()
	delete(environ, "REFRESH_TOKEN_SECRET_KEY")

	_, err := parseConfig(env.Options{Environment: environ})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REFRESH_TOKEN_SECRET_KEY is required")
}

func TestNewLogger_RespectsLevel(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	logger := newLogger(&buf, slog.LevelWarn)
	logger.Info("hidden")
	logger.Warn("shown", "k", "v")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "shown", line["msg"])
	assert.Equal(t, "v", line["k"])
	assert.Same(t, logger, slog.Default())
}

func TestTokenKeys_CoversEveryPurpose(t *testing.T) {
	cfg := testConfig(t)
	keys := TokenKeys(cfg.Tokens)

	for _, p := range domainauth.Purposes() {
		k, ok := keys[p]
		require.True(t, ok, "missing key for %s", p)
		assert.NotEmpty(t, k.Secret)
		assert.Positive(t, k.TTL)
	}
	assert.Equal(t, config.DefaultAccessMaxAge, keys[domainauth.PurposeAccess].TTL)
	assert.Equal(t, []byte("invite-secret-0123456789"), keys[domainauth.PurposeInvite].Secret)
}

func TestBuildSecurity(t *testing.T) {
	cfg := testConfig(t)

	_, err := BuildSecurity(cfg, nil)
	require.Error(t, err)

	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	t.Cleanup(func() { _ = client.Close() })

	sec, err := BuildSecurity(cfg, client)
	require.NoError(t, err)

	token, err := sec.Codec.Issue(domainauth.PurposeAccess, domainauth.TokenPayload{
		Subject: "11111111-1111-1111-1111-111111111111",
		Name:    "Acme",
		Role:    domainauth.RoleAdmin,
	})
	require.NoError(t, err)
	claims, err := sec.Codec.Verify(domainauth.PurposeAccess, token)
	require.NoError(t, err)
	assert.Equal(t, "11111111-1111-1111-1111-111111111111", claims.Subject)

	_, err = sec.Codec.Verify(domainauth.PurposeRefresh, token)
	assert.Error(t, err, "tokens must not cross purposes")
}

func TestBuildMailer(t *testing.T) {
	m, err := BuildMailer(config.MailConfig{Mode: config.MailModeLog}, discardLogger())
	require.NoError(t, err)
	assert.IsType(t, &mailer.LogMailer{}, m)

	m, err = BuildMailer(config.MailConfig{
		Mode: config.MailModeSMTP, Host: "smtp.example.com", Port: 587, From: "no-reply@example.com", TLS: "starttls",
	}, discardLogger())
	require.NoError(t, err)
	assert.IsType(t, &mailer.SMTPMailer{}, m)

	_, err = BuildMailer(config.MailConfig{Mode: config.MailModeSMTP}, discardLogger())
	assert.Error(t, err)
}

func TestBuildURLSigner(t *testing.T) {
	signer, err := BuildURLSigner(config.StorageConfig{})
	require.NoError(t, err)
	assert.Nil(t, signer)

	signer, err = BuildURLSigner(config.StorageConfig{
		BucketName:      "pictures",
		Region:          "us-east-1",
		AccessKey:       "AKIDEXAMPLE",
		SecretAccessKey: "secret",
		SignedURLExpiry: time.Minute,
	})
	require.NoError(t, err)
	require.NotNil(t, signer)

	url, err := signer.SignedURL(context.Background(), "users/pic.png")
	require.NoError(t, err)
	assert.Contains(t, url, "pictures")
	assert.Contains(t, url, "X-Amz-Signature=")
}

func TestNewRedisClient_Topologies(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.RedisConfig
		wantDesc string
		wantErr  bool
	}{
		{name: "direct", cfg: config.RedisConfig{URI: "localhost:6379"}, wantDesc: "localhost:6379"},
		{name: "url", cfg: config.RedisConfig{URI: "redis://:pw@cache:6380/2"}, wantDesc: "cache:6380"},
		{name: "empty uri", cfg: config.RedisConfig{}, wantErr: true},
		{
			name:     "sentinel",
			cfg:      config.RedisConfig{UseSentinel: true, SentinelNodes: []string{"s1:26379"}, SentinelMasterName: "primary"},
			wantDesc: "sentinel:primary",
		},
		{name: "sentinel without nodes", cfg: config.RedisConfig{UseSentinel: true}, wantErr: true},
		{
			name:     "cluster",
			cfg:      config.RedisConfig{UseCluster: true, ClusterNodes: []string{"a:1", "b:2"}},
			wantDesc: "cluster:a:1,b:2",
		},
		{name: "cluster without nodes", cfg: config.RedisConfig{UseCluster: true}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, desc, err := NewRedisClient(tt.cfg)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			t.Cleanup(func() { _ = client.Close() })
			assert.Equal(t, tt.wantDesc, desc)
		})
	}
}

func TestPostgresDSN_EscapesCredentials(t *testing.T) {
	dsn := PostgresDSN(config.DBConfig{
		Host: "db", Port: 5432, User: "app", Password: "p@ss/word", Name: "campaigns", SSLMode: "require",
	})
	assert.Equal(t, "postgres://app:p%40ss%2Fword@db:5432/campaigns?sslmode=require", dsn)
}

func newTestServices(t *testing.T) (*ServiceContainer, *HTTPServerConfig, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1, DialTimeout: 50 * time.Millisecond})
	t.Cleanup(func() { _ = client.Close() })

	cfg := testConfig(t)
	c, err := NewServices(&ServiceDeps{Config: cfg, DB: db, RedisClient: client, Logger: discardLogger()})
	require.NoError(t, err)

	return c, &HTTPServerConfig{Config: cfg, Services: c, DB: db, Redis: client, Logger: discardLogger()}, mock
}

func TestNewServices_Wiring(t *testing.T) {
	c, _, _ := newTestServices(t)

	assert.NotNil(t, c.Credentials)
	assert.NotNil(t, c.Users)
	assert.NotNil(t, c.Security.Codec)
	assert.NotNil(t, c.Security.Sessions)
	assert.NotNil(t, c.Repos.Tx)
	assert.NotNil(t, c.Metrics, "metrics are enabled by default")

	_, err := NewServices(&ServiceDeps{Config: testConfig(t)})
	assert.Error(t, err)
}

func TestBuildRouterServices_Surface(t *testing.T) {
	_, serverCfg, mock := newTestServices(t)
	server := NewHTTPServer(serverCfg)
	assert.Equal(t, ":8080", server.Addr)

	t.Run("liveness", func(t *testing.T) {
		rec := httptest.NewRecorder()
		server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	})

	t.Run("readiness reports the unreachable redis", func(t *testing.T) {
		mock.ExpectPing()
		rec := httptest.NewRecorder()
		server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, rec.Body.String(), "redis")
	})

	t.Run("metrics", func(t *testing.T) {
		rec := httptest.NewRecorder()
		server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "http_requests_total")
	})

	t.Run("member routes require a bearer token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/users/roles", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestBuildRouterServices_OptionalLayers(t *testing.T) {
	_, serverCfg, _ := newTestServices(t)

	services := BuildRouterServices(serverCfg)
	assert.NotNil(t, services.RateLimit, "rate limiting is on by default")
	assert.Nil(t, services.Compression)
	assert.Len(t, services.HealthChecks, 2)

	serverCfg.Config.HTTP.RateLimitRPS = 0
	serverCfg.Config.HTTP.CompressionEnabled = true
	services = BuildRouterServices(serverCfg)
	assert.Nil(t, services.RateLimit)
	require.NotNil(t, services.Compression)
	assert.Equal(t, serverCfg.Config.HTTP.CompressionLevel, services.Compression.Level)
}

func TestServe_StopsOnCancel(t *testing.T) {
	server := &http.Server{
		Addr:              "127.0.0.1:0",
		Handler:           http.NotFoundHandler(),
		ReadHeaderTimeout: time.Second,
	}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- Serve(ctx, server, discardLogger()) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancellation")
	}
}

func TestServe_ReportsListenError(t *testing.T) {
	server := &http.Server{Addr: "256.0.0.1:bad", ReadHeaderTimeout: time.Second}

	err := Serve(context.Background(), server, discardLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http server")
}
