package httpx

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/Asad13/ad-campaign-builder-backend/internal/core"
	domainauth "github.com/Asad13/ad-campaign-builder-backend/internal/domain/auth"
	apperrors "github.com/Asad13/ad-campaign-builder-backend/internal/errors"
	"github.com/Asad13/ad-campaign-builder-backend/internal/ports"
)

// Gate failure messages.
const (
	MsgAccessDenied    = "Access denied"
	MsgSessionExpired  = "Session Expired"
	MsgSessionFinished = "Session Finished"
)

// GateDeps is what the token gates need to authenticate a request.
type GateDeps struct {
	Codec    ports.TokenCodec
	Sessions ports.SessionStore
}

// RoleLookup resolves the caller's persisted role for RequireCapability.
type RoleLookup struct {
	Users core.UserRepository
	Roles core.RoleRepository
}

// RequireAccessToken authenticates "Authorization: Bearer <access token>" and
// rejects tokens blacklisted at logout.
func RequireAccessToken(deps GateDeps) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				WriteAppError(w, r, apperrors.Unauthenticated(MsgAccessDenied))
				return
			}
			claims, err := deps.Codec.Verify(domainauth.PurposeAccess, token)
			if err != nil {
				WriteAppError(w, r, apperrors.Wrap(err, apperrors.ErrCodeSessionExpired, MsgSessionExpired))
				return
			}
			revoked, err := deps.Sessions.IsBlacklisted(r.Context(), claims.Subject, token)
			if err != nil {
				WriteAppError(w, r, fmt.Errorf("access gate: blacklist lookup: %w", err))
				return
			}
			if revoked {
				WriteAppError(w, r, apperrors.SessionRevoked(MsgSessionFinished))
				return
			}

			ctx := WithPrincipal(r.Context(), principalFrom(claims, token))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRefreshToken authenticates the refresh cookie against the single
// refresh token stored for its subject.
func RequireRefreshToken(deps GateDeps) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, err := r.Cookie(RefreshCookieName)
			if err != nil || c.Value == "" {
				WriteAppError(w, r, apperrors.Unauthenticated(MsgAccessDenied))
				return
			}
			claims, err := deps.Codec.Verify(domainauth.PurposeRefresh, c.Value)
			if err != nil {
				WriteAppError(w, r, apperrors.Wrap(err, apperrors.ErrCodeAccessDenied, MsgAccessDenied))
				return
			}
			stored, err := deps.Sessions.GetRefreshToken(r.Context(), claims.Subject)
			switch {
			case errors.Is(err, ports.ErrSessionNotFound):
				WriteAppError(w, r, apperrors.AccessDenied(MsgAccessDenied))
				return
			case err != nil:
				WriteAppError(w, r, fmt.Errorf("refresh gate: session lookup: %w", err))
				return
			case stored != c.Value:
				WriteAppError(w, r, apperrors.AccessDenied(MsgAccessDenied))
				return
			}

			ctx := WithPrincipal(r.Context(), principalFrom(claims, c.Value))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireCapability admits callers whose persisted role grants capability.
// The role claim in the token is not trusted here. Must run after RequireAccessToken.
func RequireCapability(lookup RoleLookup, capability domainauth.Capability) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := PrincipalFrom(r.Context())
			if !ok {
				WriteAppError(w, r, apperrors.Unauthenticated(MsgAccessDenied))
				return
			}
			role, err := persistedRole(r, lookup, p.UserID)
			if err != nil {
				WriteAppError(w, r, err)
				return
			}
			if !role.Can(capability) {
				WriteAppError(w, r, apperrors.AccessDenied(MsgAccessDenied))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func persistedRole(r *http.Request, lookup RoleLookup, userID string) (domainauth.Role, error) {
	u, err := lookup.Users.FindByID(r.Context(), userID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return "", apperrors.AccessDenied(MsgAccessDenied)
		}
		return "", fmt.Errorf("capability gate: find user: %w", err)
	}
	if u.IsDeleted {
		return "", apperrors.AccessDenied(MsgAccessDenied)
	}
	info, err := lookup.Roles.FindRole(r.Context(), u.RoleID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return "", apperrors.AccessDenied(MsgAccessDenied)
		}
		return "", fmt.Errorf("capability gate: find role: %w", err)
	}
	role, err := domainauth.ParseRole(info.Name)
	if err != nil {
		return "", apperrors.AccessDenied(MsgAccessDenied)
	}
	return role, nil
}

func bearerToken(r *http.Request) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(r.Header.Get("Authorization")), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func principalFrom(c *domainauth.Claims, token string) domainauth.Principal {
	p := domainauth.Principal{
		UserID:      c.Subject,
		CompanyName: c.Name,
		Role:        c.Role,
		Token:       token,
	}
	if c.ExpiresAt != nil {
		p.ExpiresAt = c.ExpiresAt.Time
	}
	return p
}
