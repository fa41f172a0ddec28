package redis

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Asad13/ad-campaign-builder-backend/internal/ports"
	"github.com/Asad13/ad-campaign-builder-backend/internal/testutil"
)

// setupTestRedis creates a Redis client for testing.
// Tests will be skipped if Redis is not available.
func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	return testutil.SetupTestRedis(t)
}

// newStore uses a per-test prefix so parallel packages do not collide.
func newStore(t *testing.T) (*SessionStore, *redis.Client, string) {
	t.Helper()
	client := setupTestRedis(t)
	t.Cleanup(func() { _ = client.Close() })
	prefix := "test:" + uuid.NewString()[:8] + ":"
	return NewSessionStoreWithPrefix(client, prefix), client, prefix
}

func TestSessionStore_RefreshLifecycle(t *testing.T) {
	store, client, prefix := newStore(t)
	ctx := context.Background()

	_, err := store.GetRefreshToken(ctx, "user-1")
	assert.ErrorIs(t, err, ports.ErrSessionNotFound)

	require.NoError(t, store.PutRefreshToken(ctx, "user-1", "refresh-a", time.Minute))
	got, err := store.GetRefreshToken(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "refresh-a", got)

	raw, err := client.Get(ctx, prefix+"user-1").Result()
	require.NoError(t, err)
	assert.JSONEq(t, `{"token":"refresh-a"}`, raw)

	ttl := client.TTL(ctx, prefix+"user-1").Val()
	assert.True(t, ttl > 0 && ttl <= time.Minute)

	require.NoError(t, store.DeleteRefreshToken(ctx, "user-1"))
	_, err = store.GetRefreshToken(ctx, "user-1")
	assert.ErrorIs(t, err, ports.ErrSessionNotFound)
}

func TestSessionStore_SecondPutOverwrites(t *testing.T) {
	store, _, _ := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.PutRefreshToken(ctx, "user-2", "first", time.Minute))
	require.NoError(t, store.PutRefreshToken(ctx, "user-2", "second", time.Minute))

	got, err := store.GetRefreshToken(ctx, "user-2")
	require.NoError(t, err)
	assert.Equal(t, "second", got)
}

func TestSessionStore_Blacklist(t *testing.T) {
	store, client, prefix := newStore(t)
	ctx := context.Background()

	ok, err := store.IsBlacklisted(ctx, "user-3", "access-a")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.BlacklistAccessToken(ctx, "user-3", "access-a", 30*time.Second))

	ok, err = store.IsBlacklisted(ctx, "user-3", "access-a")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.IsBlacklisted(ctx, "user-3", "access-b")
	require.NoError(t, err)
	assert.False(t, ok, "only the recorded token is revoked")

	ttl := client.TTL(ctx, prefix+"BL_user-3").Val()
	assert.True(t, ttl > 0 && ttl <= 30*time.Second)

	// the blacklist entry is separate from the refresh entry
	_, err = store.GetRefreshToken(ctx, "user-3")
	assert.ErrorIs(t, err, ports.ErrSessionNotFound)
}

func TestSessionStore_Expiry(t *testing.T) {
	store, _, _ := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.PutRefreshToken(ctx, "user-4", "short", 100*time.Millisecond))
	time.Sleep(250 * time.Millisecond)

	_, err := store.GetRefreshToken(ctx, "user-4")
	assert.ErrorIs(t, err, ports.ErrSessionNotFound)
}

func TestSessionStore_RejectsBadInput(t *testing.T) {
	store, _, _ := newStore(t)
	ctx := context.Background()

	assert.Error(t, store.PutRefreshToken(ctx, "", "tok", time.Minute))
	assert.Error(t, store.PutRefreshToken(ctx, "user-5", "", time.Minute))
	assert.Error(t, store.PutRefreshToken(ctx, "user-5", "tok", 0))
	assert.Error(t, store.BlacklistAccessToken(ctx, "user-5", "tok", -time.Second))
	assert.NoError(t, store.DeleteRefreshToken(ctx, ""))
}

func TestSessionStore_DefaultKeysHaveNoPrefix(t *testing.T) {
	s := NewSessionStore(nil)
	assert.Equal(t, "user-6", s.refreshKey("user-6"))
	assert.Equal(t, "BL_user-6", s.blacklistKey("user-6"))
}
