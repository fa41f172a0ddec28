package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/Asad13/ad-campaign-builder-backend/config"
	httpx "github.com/Asad13/ad-campaign-builder-backend/internal/http"
)

const shutdownTimeout = 10 * time.Second

// HTTPServerConfig contains configuration for the HTTP server.
type HTTPServerConfig struct {
	Config   *config.AppConfig
	Services *ServiceContainer
	DB       *sql.DB
	Redis    redis.UniversalClient
	Logger   *slog.Logger
}

// BuildRouterServices maps the container onto the router's dependencies.
func BuildRouterServices(cfg *HTTPServerConfig) httpx.RouterServices {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	appCfg := cfg.Config
	if appCfg == nil {
		appCfg = &config.AppConfig{}
	}
	svc := cfg.Services

	services := httpx.RouterServices{
		Credentials: svc.Credentials,
		Users:       svc.Users,
		Gate:        httpx.GateDeps{Codec: svc.Security.Codec, Sessions: svc.Security.Sessions},
		Roles:       httpx.RoleLookup{Users: svc.Repos.Users, Roles: svc.Repos.Roles},
		Cookies:     httpx.CookieConfig{Domain: appCfg.HTTP.CookieDomain},
		Metrics:     svc.Metrics,
		MetricsPath: appCfg.Observability.Metrics.Path,
		CORS:        httpx.CORSConfig{AllowedOrigins: appCfg.HTTP.CORSAllowedOrigins},
		Logger:      logger,
	}

	if appCfg.HTTP.RateLimitRPS > 0 {
		services.RateLimit = httpx.NewRateLimiter(httpx.RateLimitConfig{
			PerSecond:  appCfg.HTTP.RateLimitRPS,
			Burst:      appCfg.HTTP.RateLimitBurst,
			TrustProxy: appCfg.HTTP.TrustProxy,
		})
	}
	if appCfg.HTTP.CompressionEnabled {
		logger.Info("HTTP compression enabled", "level", appCfg.HTTP.CompressionLevel)
		services.Compression = &httpx.CompressionConfig{
			Level:   appCfg.HTTP.CompressionLevel,
			MinSize: appCfg.HTTP.CompressionMinSize,
			Logger:  logger,
		}
	}

	checks := make(map[string]httpx.HealthCheck, 2)
	if cfg.DB != nil {
		db := cfg.DB
		checks["postgres"] = db.PingContext
	}
	if cfg.Redis != nil {
		client := cfg.Redis
		checks["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
	}
	services.HealthChecks = checks

	return services
}

// NewHTTPServer creates the server with the full middleware chain.
func NewHTTPServer(cfg *HTTPServerConfig) *http.Server {
	addr := ":8080"
	if cfg.Config != nil && cfg.Config.HTTP.Addr != "" {
		addr = cfg.Config.HTTP.Addr
	}
	return &http.Server{
		Addr:              addr,
		Handler:           httpx.NewHandler(BuildRouterServices(cfg)),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}

// Serve runs server until ctx is cancelled, then shuts it down gracefully.
// It returns the listener error, if any, or the shutdown error.
func Serve(ctx context.Context, server *http.Server, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.InfoContext(ctx, "starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.InfoContext(ctx, "shutting down HTTP server")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		logger.InfoContext(ctx, "HTTP server stopped")
		return nil
	})

	return g.Wait()
}
