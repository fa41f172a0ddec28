package auth

// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Asad13/ad-campaign-builder-backend/internal/adapters/jwt"
	domainauth "github.com/Asad13/ad-campaign-builder-backend/internal/domain/auth"
	"github.com/Asad13/ad-campaign-builder-backend/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.SessionStore = (*MemorySessionStore)(nil)
	_ ports.Mailer       = (*RecordingMailer)(nil)
)

// Clock is a settable time source shared by the fakes and the codec.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock starts a clock at t.
func NewClock(t time.Time) *Clock { return &Clock{now: t} }

// Now returns the current fake time.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type entry struct {
	token     string
	expiresAt time.Time
}

// MemorySessionStore is an in-memory session store for unit tests. Entries
// expire against Now, which defaults to time.Now.
type MemorySessionStore struct {
	mu        sync.Mutex
	refresh   map[string]entry
	blacklist map[string]entry
	Now       func() time.Time
	// Err, when set, is returned by every call.
	Err error
}

// NewMemorySessionStore creates a new in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		refresh:   make(map[string]entry),
		blacklist: make(map[string]entry),
		Now:       time.Now,
	}
}

func (m *MemorySessionStore) put(into map[string]entry, userID, token string, ttl time.Duration) error {
	if m.Err != nil {
		return m.Err
	}
	if userID == "" || token == "" {
		return errors.New("user id and token are required")
	}
	if ttl <= 0 {
		return fmt.Errorf("ttl must be positive, got %s", ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	into[userID] = entry{token: token, expiresAt: m.Now().Add(ttl)}
	return nil
}

func (m *MemorySessionStore) lookup(from map[string]entry, userID string) (entry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := from[userID]
	if !ok || !m.Now().Before(e.expiresAt) {
		return entry{}, false
	}
	return e, true
}

func (m *MemorySessionStore) PutRefreshToken(_ context.Context, userID, token string, ttl time.Duration) error {
	return m.put(m.refresh, userID, token, ttl)
}

func (m *MemorySessionStore) GetRefreshToken(_ context.Context, userID string) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	e, ok := m.lookup(m.refresh, userID)
	if !ok {
		return "", ports.ErrSessionNotFound
	}
	return e.token, nil
}

func (m *MemorySessionStore) DeleteRefreshToken(_ context.Context, userID string) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	delete(m.refresh, userID)
	m.mu.Unlock()
	return nil
}

func (m *MemorySessionStore) BlacklistAccessToken(_ context.Context, userID, token string, ttl time.Duration) error {
	return m.put(m.blacklist, userID, token, ttl)
}

func (m *MemorySessionStore) IsBlacklisted(_ context.Context, userID, token string) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	e, ok := m.lookup(m.blacklist, userID)
	return ok && e.token == token, nil
}

// BlacklistTTL returns the remaining lifetime of the user's blacklist entry.
func (m *MemorySessionStore) BlacklistTTL(userID string) time.Duration {
	e, ok := m.lookup(m.blacklist, userID)
	if !ok {
		return 0
	}
	return e.expiresAt.Sub(m.Now())
}

// RecordingMailer keeps every sent message.
type RecordingMailer struct {
	mu   sync.Mutex
	Sent []ports.Email
	// Err, when set, is returned after the message is recorded.
	Err error
}

func (r *RecordingMailer) Send(_ context.Context, msg ports.Email) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Sent = append(r.Sent, msg)
	return r.Err
}

// Last returns the most recent message, or the zero value.
func (r *RecordingMailer) Last() ports.Email {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Sent) == 0 {
		return ports.Email{}
	}
	return r.Sent[len(r.Sent)-1]
}

// TestKeys returns a valid key set with a distinct secret per purpose.
func TestKeys() map[domainauth.Purpose]jwt.Key {
	ttls := map[domainauth.Purpose]time.Duration{
		domainauth.PurposeAccess:            15 * time.Minute,
		domainauth.PurposeRefresh:           7 * 24 * time.Hour,
		domainauth.PurposeEmailVerification: 24 * time.Hour,
		domainauth.PurposeInvite:            72 * time.Hour,
		domainauth.PurposePasswordForgot:    time.Hour,
		domainauth.PurposePasswordReset:     15 * time.Minute,
		domainauth.PurposePasswordSet:       15 * time.Minute,
	}
	keys := make(map[domainauth.Purpose]jwt.Key, len(ttls))
	for p, ttl := range ttls {
		keys[p] = jwt.Key{Secret: []byte("test-secret-" + string(p) + "-0123456789"), TTL: ttl}
	}
	return keys
}

// NewTestCodec returns a real codec over TestKeys driven by now.
func NewTestCodec(now func() time.Time) *jwt.Codec {
	c, err := jwt.NewCodec(jwt.Options{Keys: TestKeys(), Now: now})
	if err != nil {
		panic(err)
	}
	return c
}
