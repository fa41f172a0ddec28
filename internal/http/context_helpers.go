package httpx

import (
	"context"
	"log/slog"

	domainauth "github.com/Asad13/ad-campaign-builder-backend/internal/domain/auth"
)

// Unexported context key types avoid collisions across packages.
type (
	principalKey struct{}
	requestIDKey struct{}
	loggerKey    struct{}
)

// WithPrincipal returns a child context carrying the authenticated caller.
func WithPrincipal(ctx context.Context, p domainauth.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFrom returns the caller attached by one of the token gates.
func PrincipalFrom(ctx context.Context) (domainauth.Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(domainauth.Principal)
	return p, ok && p.UserID != ""
}

// WithRequestID returns a child context carrying the request id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFrom returns the request id, or "" outside a request.
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// WithLogger returns a child context carrying a request-scoped logger.
func WithLogger(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// LoggerFrom returns the request-scoped logger, falling back to slog.Default.
func LoggerFrom(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok && l != nil {
		return l
	}
	return slog.Default()
}
