package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/Asad13/ad-campaign-builder-backend/config"
	"github.com/Asad13/ad-campaign-builder-backend/internal/adapters/jwt"
	"github.com/Asad13/ad-campaign-builder-backend/internal/adapters/mailer"
	"github.com/Asad13/ad-campaign-builder-backend/internal/adapters/password"
	redisadapter "github.com/Asad13/ad-campaign-builder-backend/internal/adapters/redis"
	"github.com/Asad13/ad-campaign-builder-backend/internal/adapters/s3"
	domainauth "github.com/Asad13/ad-campaign-builder-backend/internal/domain/auth"
	"github.com/Asad13/ad-campaign-builder-backend/internal/ports"
)

// TokenKeys maps each token purpose to its configured secret and lifetime.
func TokenKeys(cfg config.TokenConfig) map[domainauth.Purpose]jwt.Key {
	key := func(t config.TokenSecret) jwt.Key {
		return jwt.Key{Secret: []byte(t.Secret), TTL: t.MaxAge}
	}
	return map[domainauth.Purpose]jwt.Key{
		domainauth.PurposeAccess:            key(cfg.Access),
		domainauth.PurposeRefresh:           key(cfg.Refresh),
		domainauth.PurposeEmailVerification: key(cfg.EmailVerification),
		domainauth.PurposeInvite:            key(cfg.Invite),
		domainauth.PurposePasswordForgot:    key(cfg.PasswordForgot),
		domainauth.PurposePasswordReset:     key(cfg.PasswordReset),
		domainauth.PurposePasswordSet:       key(cfg.PasswordSet),
	}
}

// SecurityAdapters bundles the token, session and password primitives.
type SecurityAdapters struct {
	Codec    *jwt.Codec
	Sessions *redisadapter.SessionStore
	Hasher   *password.BcryptHasher
}

// BuildSecurity creates the token codec and the Redis session store.
func BuildSecurity(cfg *config.AppConfig, client redis.UniversalClient) (SecurityAdapters, error) {
	if client == nil {
		return SecurityAdapters{}, fmt.Errorf("build security: redis client is required")
	}
	codec, err := jwt.NewCodec(jwt.Options{Keys: TokenKeys(cfg.Tokens)})
	if err != nil {
		return SecurityAdapters{}, fmt.Errorf("build security: %w", err)
	}
	return SecurityAdapters{
		Codec:    codec,
		Sessions: redisadapter.NewSessionStoreWithPrefix(client, cfg.Redis.KeyPrefix),
		Hasher:   password.NewBcryptHasher(password.DefaultCost),
	}, nil
}

// BuildMailer returns the transport selected by MAIL_MODE.
//
//nolint:ireturn // callers depend on the port, the transport is configuration.
func BuildMailer(cfg config.MailConfig, logger *slog.Logger) (ports.Mailer, error) {
	switch cfg.Mode {
	case config.MailModeLog:
		return mailer.NewLogMailer(logger), nil
	case config.MailModeSMTP:
		m, err := mailer.NewSMTPMailer(mailer.SMTPOptions{
			Host:     cfg.Host,
			Port:     cfg.Port,
			Username: cfg.Username,
			Password: cfg.Password,
			From:     cfg.From,
			TLS:      cfg.TLS,
			Logger:   logger,
		})
		if err != nil {
			return nil, fmt.Errorf("build smtp mailer: %w", err)
		}
		return m, nil
	default:
		return nil, fmt.Errorf("build mailer: unsupported mode %q", cfg.Mode)
	}
}

// BuildURLSigner returns nil when no bucket is configured.
//
//nolint:ireturn // a nil port disables picture URLs.
func BuildURLSigner(cfg config.StorageConfig) (ports.URLSigner, error) {
	if !cfg.Enabled() {
		return nil, nil
	}
	signer, err := s3.NewPresigner(s3.Options{
		Bucket:          cfg.BucketName,
		Region:          cfg.Region,
		AccessKeyID:     cfg.AccessKey,
		SecretAccessKey: cfg.SecretAccessKey,
		Endpoint:        cfg.Endpoint,
		Expiry:          cfg.SignedURLExpiry,
	})
	if err != nil {
		return nil, fmt.Errorf("build url signer: %w", err)
	}
	return signer, nil
}
