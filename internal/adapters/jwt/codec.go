// Package jwt implements the token codec with HS256 JSON Web Tokens.
package jwt

import (
	"errors"
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	domainauth "github.com/Asad13/ad-campaign-builder-backend/internal/domain/auth"
	"github.com/Asad13/ad-campaign-builder-backend/internal/ports"
)

// minSecretLength is the shortest HMAC key accepted for any purpose.
const minSecretLength = 16

// Key is the signing secret and lifetime of one token purpose.
type Key struct {
	Secret []byte
	TTL    time.Duration
}

// Options configures a Codec.
type Options struct {
	// Keys must contain an entry for every domainauth.Purposes() value.
	Keys map[domainauth.Purpose]Key
	// Now defaults to time.Now.
	Now func() time.Time
	// NewID generates the jti claim; defaults to uuid.NewString.
	NewID func() string
}

// Codec signs and verifies tokens with one HMAC secret per purpose.
type Codec struct {
	keys  map[domainauth.Purpose]Key
	now   func() time.Time
	newID func() string
}

var _ ports.TokenCodec = (*Codec)(nil)

// NewCodec validates the key set and returns a Codec. It refuses missing
// purposes, short secrets, non-positive lifetimes and secrets shared between purposes.
func NewCodec(opts Options) (*Codec, error) {
	keys := make(map[domainauth.Purpose]Key, len(opts.Keys))
	owner := make(map[string]domainauth.Purpose, len(opts.Keys))
	for _, p := range domainauth.Purposes() {
		k, ok := opts.Keys[p]
		if !ok {
			return nil, fmt.Errorf("token codec: no key for purpose %q", p)
		}
		if len(k.Secret) < minSecretLength {
			return nil, fmt.Errorf("token codec: secret for %q must be at least %d bytes", p, minSecretLength)
		}
		if k.TTL <= 0 {
			return nil, fmt.Errorf("token codec: ttl for %q must be positive", p)
		}
		if other, dup := owner[string(k.Secret)]; dup {
			return nil, fmt.Errorf("token codec: %q and %q share a secret", other, p)
		}
		owner[string(k.Secret)] = p
		keys[p] = Key{Secret: append([]byte(nil), k.Secret...), TTL: k.TTL}
	}

	c := &Codec{keys: keys, now: opts.Now, newID: opts.NewID}
	if c.now == nil {
		c.now = time.Now
	}
	if c.newID == nil {
		c.newID = uuid.NewString
	}
	return c, nil
}

// Issue mints a token for purpose. The role claim is only written for
// purposes that carry one.
func (c *Codec) Issue(purpose domainauth.Purpose, payload domainauth.TokenPayload) (string, error) {
	key, ok := c.keys[purpose]
	if !ok {
		return "", fmt.Errorf("issue token: unknown purpose %q", purpose)
	}
	if payload.Subject == "" {
		return "", errors.New("issue token: subject is required")
	}

	now := c.now()
	claims := domainauth.Claims{
		Name: payload.Name,
		RegisteredClaims: gojwt.RegisteredClaims{
			Subject:   payload.Subject,
			IssuedAt:  gojwt.NewNumericDate(now),
			ExpiresAt: gojwt.NewNumericDate(now.Add(key.TTL)),
			ID:        c.newID(),
		},
	}
	if purpose.CarriesRole() {
		claims.Role = payload.Role
	}

	signed, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString(key.Secret)
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", purpose, err)
	}
	return signed, nil
}

// Verify parses token with purpose's secret. Expired tokens yield
// domainauth.ErrTokenExpired, everything else domainauth.ErrInvalidSignature.
func (c *Codec) Verify(purpose domainauth.Purpose, token string) (*domainauth.Claims, error) {
	key, ok := c.keys[purpose]
	if !ok {
		return nil, fmt.Errorf("%w: unknown purpose %q", domainauth.ErrInvalidSignature, purpose)
	}

	claims := &domainauth.Claims{}
	_, err := gojwt.ParseWithClaims(token, claims,
		func(*gojwt.Token) (any, error) { return key.Secret, nil },
		gojwt.WithValidMethods([]string{gojwt.SigningMethodHS256.Alg()}),
		gojwt.WithExpirationRequired(),
		gojwt.WithIssuedAt(),
		gojwt.WithTimeFunc(c.now),
	)
	switch {
	case err == nil:
	case errors.Is(err, gojwt.ErrTokenExpired):
		return nil, fmt.Errorf("%w: %s token", domainauth.ErrTokenExpired, purpose)
	default:
		return nil, fmt.Errorf("%w: %s token: %w", domainauth.ErrInvalidSignature, purpose, err)
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: %s token has no subject", domainauth.ErrInvalidSignature, purpose)
	}
	if !purpose.CarriesRole() {
		claims.Role = ""
	}
	return claims, nil
}

// TTL returns the configured lifetime for purpose, or zero when unknown.
func (c *Codec) TTL(purpose domainauth.Purpose) time.Duration {
	return c.keys[purpose].TTL
}
