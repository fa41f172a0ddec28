package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/Asad13/ad-campaign-builder-backend/internal/domain/auth"
	"github.com/Asad13/ad-campaign-builder-backend/internal/ports"
)

func TestMemorySessionStore_Expiry(t *testing.T) {
	clk := NewClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	store := NewMemorySessionStore()
	store.Now = clk.Now
	ctx := context.Background()

	require.NoError(t, store.PutRefreshToken(ctx, "u1", "r1", time.Minute))
	require.NoError(t, store.BlacklistAccessToken(ctx, "u1", "a1", 30*time.Second))

	tok, err := store.GetRefreshToken(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "r1", tok)
	assert.Equal(t, 30*time.Second, store.BlacklistTTL("u1"))

	clk.Advance(31 * time.Second)
	ok, err := store.IsBlacklisted(ctx, "u1", "a1")
	require.NoError(t, err)
	assert.False(t, ok)

	clk.Advance(30 * time.Second)
	_, err = store.GetRefreshToken(ctx, "u1")
	assert.ErrorIs(t, err, ports.ErrSessionNotFound)
}

func TestMemorySessionStore_ErrAndValidation(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	assert.Error(t, store.PutRefreshToken(ctx, "u1", "r1", 0))
	assert.Error(t, store.PutRefreshToken(ctx, "", "r1", time.Minute))

	boom := errors.New("redis down")
	store.Err = boom
	_, err := store.GetRefreshToken(ctx, "u1")
	assert.ErrorIs(t, err, boom)
	_, err = store.IsBlacklisted(ctx, "u1", "a1")
	assert.ErrorIs(t, err, boom)
}

func TestRecordingMailer(t *testing.T) {
	m := &RecordingMailer{}
	assert.Empty(t, m.Last().To)

	require.NoError(t, m.Send(context.Background(), ports.Email{To: "a@example.com"}))
	m.Err = errors.New("smtp down")
	assert.Error(t, m.Send(context.Background(), ports.Email{To: "b@example.com"}))

	assert.Len(t, m.Sent, 2)
	assert.Equal(t, "b@example.com", m.Last().To)
}

func TestNewTestCodec(t *testing.T) {
	clk := NewClock(time.Now())
	c := NewTestCodec(clk.Now)
	tok, err := c.Issue(domainauth.PurposeAccess, domainauth.TokenPayload{Subject: "u1"})
	require.NoError(t, err)
	_, err = c.Verify(domainauth.PurposeAccess, tok)
	require.NoError(t, err)
	assert.Equal(t, 15*time.Minute, c.TTL(domainauth.PurposeAccess))
}
