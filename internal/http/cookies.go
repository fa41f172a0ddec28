package httpx

import (
	"net/http"
	"strings"
	"time"
)

// RefreshCookieName is the httpOnly cookie carrying the refresh token.
const RefreshCookieName = "token"

// CookieConfig controls the attributes of the refresh cookie.
type CookieConfig struct {
	// Domain is empty for a host-only cookie.
	Domain string
}

// isSecureRequest reports whether the client reached us over TLS, directly or through a proxy.
func isSecureRequest(r *http.Request) bool {
	return r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}

// SetRefreshCookie writes the refresh token with the given lifetime.
func (c CookieConfig) SetRefreshCookie(w http.ResponseWriter, r *http.Request, token string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshCookieName,
		Value:    token,
		Path:     "/",
		Domain:   c.Domain,
		HttpOnly: true,
		Secure:   isSecureRequest(r),
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(ttl.Seconds()),
	})
}

// ClearRefreshCookie expires the refresh cookie, mirroring the attributes it was set with.
func (c CookieConfig) ClearRefreshCookie(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshCookieName,
		Value:    "",
		Path:     "/",
		Domain:   c.Domain,
		HttpOnly: true,
		Secure:   isSecureRequest(r),
		SameSite: http.SameSiteStrictMode,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
	})
}
