package ports

// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	"context"
	"errors"
	"time"

	domainauth "github.com/Asad13/ad-campaign-builder-backend/internal/domain/auth"
)

var (
	// ErrSessionNotFound is returned when no refresh session is stored for a user.
	ErrSessionNotFound = errors.New("session not found")
	// ErrPasswordMismatch is returned by PasswordHasher.Compare when the password is wrong.
	ErrPasswordMismatch = errors.New("password does not match")
)

// TokenCodec signs and verifies purpose-scoped tokens.
// Every purpose has its own secret, so a token never verifies under another purpose.
type TokenCodec interface {
	// Issue mints a token for purpose carrying the payload. Role is dropped
	// for purposes that do not carry one.
	Issue(purpose domainauth.Purpose, payload domainauth.TokenPayload) (string, error)
	// Verify checks signature and expiry. Failures wrap domainauth.ErrInvalidSignature
	// or domainauth.ErrTokenExpired.
	Verify(purpose domainauth.Purpose, token string) (*domainauth.Claims, error)
	// TTL returns the configured lifetime for purpose.
	TTL(purpose domainauth.Purpose) time.Duration
}

// SessionStore keeps the single live refresh token per user and the
// blacklisted access token recorded at logout. Entries expire on their own.
type SessionStore interface {
	PutRefreshToken(ctx context.Context, userID, token string, ttl time.Duration) error
	// GetRefreshToken returns ErrSessionNotFound when no entry exists.
	GetRefreshToken(ctx context.Context, userID string) (string, error)
	DeleteRefreshToken(ctx context.Context, userID string) error
	BlacklistAccessToken(ctx context.Context, userID, token string, ttl time.Duration) error
	IsBlacklisted(ctx context.Context, userID, token string) (bool, error)
}

// PasswordHasher produces and checks salted one-way password hashes.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	// Compare returns nil when plain matches hash and ErrPasswordMismatch when it does not.
	Compare(hash, plain string) error
}
