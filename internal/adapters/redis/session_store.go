// Package redis provides the Redis-backed session store.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	domainauth "github.com/Asad13/ad-campaign-builder-backend/internal/domain/auth"
	"github.com/Asad13/ad-campaign-builder-backend/internal/ports"
)

// blacklistMarker is inserted between the prefix and the user id for revoked access tokens.
const blacklistMarker = "BL_"

// SessionStore keeps one refresh token per user under "<prefix><userID>" and the
// access token revoked at logout under "<prefix>BL_<userID>". Both values are
// JSON {"token": "..."} and expire through Redis TTLs.
type SessionStore struct {
	client redis.UniversalClient
	prefix string
}

var _ ports.SessionStore = (*SessionStore)(nil)

// NewSessionStore creates a session store with no key prefix.
func NewSessionStore(client redis.UniversalClient) *SessionStore {
	return &SessionStore{client: client}
}

// NewSessionStoreWithPrefix creates a session store with a custom key prefix.
func NewSessionStoreWithPrefix(client redis.UniversalClient, prefix string) *SessionStore {
	return &SessionStore{client: client, prefix: prefix}
}

func (s *SessionStore) refreshKey(userID string) string   { return s.prefix + userID }
func (s *SessionStore) blacklistKey(userID string) string { return s.prefix + blacklistMarker + userID }

// PutRefreshToken stores token as the user's only live refresh token,
// replacing any previous one.
func (s *SessionStore) PutRefreshToken(ctx context.Context, userID, token string, ttl time.Duration) error {
	if err := s.put(ctx, s.refreshKey(userID), userID, token, ttl); err != nil {
		return fmt.Errorf("put refresh token: %w", err)
	}
	return nil
}

// GetRefreshToken returns the user's refresh token or ports.ErrSessionNotFound.
func (s *SessionStore) GetRefreshToken(ctx context.Context, userID string) (string, error) {
	if userID == "" {
		return "", ports.ErrSessionNotFound
	}
	sess, err := s.get(ctx, s.refreshKey(userID))
	if err != nil {
		return "", fmt.Errorf("get refresh token: %w", err)
	}
	return sess.Token, nil
}

// DeleteRefreshToken removes the user's refresh token. Missing entries are not an error.
func (s *SessionStore) DeleteRefreshToken(ctx context.Context, userID string) error {
	if userID == "" {
		return nil
	}
	if err := s.client.Del(ctx, s.refreshKey(userID)).Err(); err != nil {
		return fmt.Errorf("delete refresh token: %w", err)
	}
	return nil
}

// BlacklistAccessToken marks token as revoked for ttl.
func (s *SessionStore) BlacklistAccessToken(ctx context.Context, userID, token string, ttl time.Duration) error {
	if err := s.put(ctx, s.blacklistKey(userID), userID, token, ttl); err != nil {
		return fmt.Errorf("blacklist access token: %w", err)
	}
	return nil
}

// IsBlacklisted reports whether token is the access token revoked for userID.
func (s *SessionStore) IsBlacklisted(ctx context.Context, userID, token string) (bool, error) {
	if userID == "" || token == "" {
		return false, nil
	}
	sess, err := s.get(ctx, s.blacklistKey(userID))
	if errors.Is(err, ports.ErrSessionNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check blacklist: %w", err)
	}
	return sess.Token == token, nil
}

func (s *SessionStore) put(ctx context.Context, key, userID, token string, ttl time.Duration) error {
	if userID == "" {
		return errors.New("user id cannot be empty")
	}
	if token == "" {
		return errors.New("token cannot be empty")
	}
	if ttl <= 0 {
		return fmt.Errorf("ttl must be positive, got %s", ttl)
	}
	data, err := json.Marshal(domainauth.Session{Token: token})
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	return s.client.Set(ctx, key, data, ttl).Err()
}

func (s *SessionStore) get(ctx context.Context, key string) (domainauth.Session, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domainauth.Session{}, ports.ErrSessionNotFound
	}
	if err != nil {
		return domainauth.Session{}, fmt.Errorf("redis get: %w", err)
	}
	var sess domainauth.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return domainauth.Session{}, fmt.Errorf("unmarshal session: %w", err)
	}
	return sess, nil
}
