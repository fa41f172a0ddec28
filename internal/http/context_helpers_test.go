package httpx

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	domainauth "github.com/Asad13/ad-campaign-builder-backend/internal/domain/auth"
)

func TestPrincipalFromContext(t *testing.T) {
	// No principal
	_, ok := PrincipalFrom(context.Background())
	assert.False(t, ok)

	// Empty principal is treated as absent
	_, ok = PrincipalFrom(WithPrincipal(context.Background(), domainauth.Principal{}))
	assert.False(t, ok)

	p := domainauth.Principal{UserID: "u1", Role: domainauth.RoleCreator, CompanyName: "Acme", Token: "t"}
	got, ok := PrincipalFrom(WithPrincipal(context.Background(), p))
	assert.True(t, ok)
	assert.Equal(t, p, got)
}

func TestRequestIDAndLoggerFromContext(t *testing.T) {
	assert.Empty(t, RequestIDFrom(context.Background()))
	assert.Equal(t, "r1", RequestIDFrom(WithRequestID(context.Background(), "r1")))

	assert.Same(t, slog.Default(), LoggerFrom(context.Background()))
	l := slog.New(slog.DiscardHandler)
	assert.Same(t, l, LoggerFrom(WithLogger(context.Background(), l)))
}
