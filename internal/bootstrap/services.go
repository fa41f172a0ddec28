package bootstrap

import (
	"database/sql"
	"errors"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/Asad13/ad-campaign-builder-backend/config"
	"github.com/Asad13/ad-campaign-builder-backend/internal/data"
	"github.com/Asad13/ad-campaign-builder-backend/internal/observability/metrics"
	"github.com/Asad13/ad-campaign-builder-backend/internal/ports"
	"github.com/Asad13/ad-campaign-builder-backend/internal/service"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Credentials *service.CredentialService
	Users       *service.UserService
	Repos       Repositories
	Security    SecurityAdapters
	Metrics     *metrics.Metrics // nil when METRICS_ENABLED=false
}

// Repositories groups the Postgres adapters backing service ports.
type Repositories struct {
	Users  *data.UserRepo
	Groups *data.GroupRepo
	Roles  *data.RoleRepo
	Tx     *data.TxRunner
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger

	// Mailer and Signer override the configured transports when set.
	Mailer ports.Mailer
	Signer ports.URLSigner
}

// buildRepositories builds repositories backing service ports; no business rules here.
func buildRepositories(db *sql.DB) Repositories {
	return Repositories{
		Users:  data.NewUserRepo(db),
		Groups: data.NewGroupRepo(db),
		Roles:  data.NewRoleRepo(db),
		Tx:     data.NewTxRunner(db),
	}
}

// NewServices wires adapters into the credential and user services.
func NewServices(deps *ServiceDeps) (*ServiceContainer, error) {
	if deps == nil || deps.Config == nil {
		return nil, errors.New("new services: config is required")
	}
	if deps.DB == nil {
		return nil, errors.New("new services: database is required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg := deps.Config

	security, err := BuildSecurity(cfg, deps.RedisClient)
	if err != nil {
		return nil, err
	}

	mail := deps.Mailer
	if mail == nil {
		if mail, err = BuildMailer(cfg.Mail, logger); err != nil {
			return nil, err
		}
	}
	signer := deps.Signer
	if signer == nil {
		if signer, err = BuildURLSigner(cfg.Storage); err != nil {
			return nil, err
		}
	}

	var m *metrics.Metrics
	observe := service.Observability{Logger: logger}
	if cfg.Observability.Metrics.Enabled {
		m = metrics.New()
		observe.Events = m
	}

	repos := buildRepositories(deps.DB)
	stores := service.Stores{Users: repos.Users, Groups: repos.Groups, Roles: repos.Roles, Tx: repos.Tx}
	sec := service.Security{Codec: security.Codec, Sessions: security.Sessions, Hasher: security.Hasher}
	delivery := service.Delivery{
		Mailer: mail,
		Signer: signer,
		Links:  service.Links{ServerURL: cfg.HTTP.ServerURL, ClientURL: cfg.HTTP.ClientURL},
	}

	c := &ServiceContainer{
		Credentials: service.NewCredentialService(service.CredentialServiceOptions{
			Stores:   stores,
			Security: sec,
			Delivery: delivery,
			Observe:  observe,
		}),
		Users: service.NewUserService(service.UserServiceOptions{
			Stores:   stores,
			Security: sec,
			Delivery: delivery,
			Config:   service.UserServiceConfig{MembersPerPage: cfg.MembersPerPage},
			Observe:  observe,
		}),
		Repos:    repos,
		Security: security,
		Metrics:  m,
	}

	logger.Info("services initialized",
		"mail_mode", cfg.Mail.Mode,
		"picture_signing", signer != nil,
		"metrics", m != nil,
	)
	return c, nil
}
