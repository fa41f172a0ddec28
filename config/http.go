package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// CookieDomainAuto derives the cookie domain from ClientURL.
const CookieDomainAuto = "auto"

// HTTPConfig contains HTTP server configuration.
type HTTPConfig struct {
	// Addr is the address to bind the HTTP server to.
	Addr string `env:"HTTP_ADDR" envDefault:":8080"`

	// ServerURL is the public base URL of this API, used in emailed links.
	ServerURL string `env:"SERVER_URL" envDefault:"http://localhost:8080"`

	// ClientURL is the base URL of the browser application; confirmation
	// links redirect there.
	ClientURL string `env:"CLIENT_URL" envDefault:"http://localhost:3000"`

	// CookieDomain is the domain for the refresh cookie.
	// Leave empty for a host-only cookie, or set "auto" to use the
	// registrable domain of ClientURL.
	CookieDomain string `env:"APP_COOKIE_DOMAIN" envDefault:""`

	// CORSAllowedOrigins lists browser origins allowed to send credentials.
	// Defaults to ClientURL when empty.
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS"`

	// CompressionEnabled enables gzip compression for JSON responses.
	CompressionEnabled bool `env:"HTTP_COMPRESSION_ENABLED" envDefault:"false"`

	// CompressionLevel is the gzip compression level (1-9).
	CompressionLevel int `env:"HTTP_COMPRESSION_LEVEL" envDefault:"6"`

	// CompressionMinSize is the smallest body worth compressing.
	CompressionMinSize int `env:"HTTP_COMPRESSION_MIN_SIZE" envDefault:"1024"`

	// RateLimitRPS and RateLimitBurst bound signup, login and forgot-password
	// per client IP. Zero RPS disables limiting.
	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS"   envDefault:"1"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"5"`

	// TrustProxy keys rate limits by X-Forwarded-For.
	TrustProxy bool `env:"HTTP_TRUST_PROXY" envDefault:"false"`
}

// Sanitize applies guardrails to HTTP configuration values.
func (h *HTTPConfig) Sanitize() {
	h.ServerURL = strings.TrimRight(strings.TrimSpace(h.ServerURL), "/")
	h.ClientURL = strings.TrimRight(strings.TrimSpace(h.ClientURL), "/")

	// Clamp compression level to valid gzip range (1-9)
	if h.CompressionLevel < 1 {
		h.CompressionLevel = 1
	}
	if h.CompressionLevel > 9 {
		h.CompressionLevel = 9
	}
	if h.CompressionMinSize < 0 {
		h.CompressionMinSize = 0
	}
	if h.RateLimitRPS < 0 {
		h.RateLimitRPS = 0
	}
	if h.RateLimitBurst < 1 {
		h.RateLimitBurst = 1
	}

	h.CORSAllowedOrigins = compact(h.CORSAllowedOrigins)
	if len(h.CORSAllowedOrigins) == 0 && h.ClientURL != "" {
		h.CORSAllowedOrigins = []string{h.ClientURL}
	}

	h.CookieDomain = strings.TrimSpace(h.CookieDomain)
	if strings.EqualFold(h.CookieDomain, CookieDomainAuto) {
		h.CookieDomain = registrableDomain(h.ClientURL)
	}
}

// Validate checks that the public URLs are absolute.
func (h *HTTPConfig) Validate() error {
	var errs []error
	for name, raw := range map[string]string{"SERVER_URL": h.ServerURL, "CLIENT_URL": h.ClientURL} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Errorf("%s must be an absolute URL, got %q", name, raw))
		}
	}
	if h.Addr == "" {
		errs = append(errs, errors.New("HTTP_ADDR is required"))
	}
	return errors.Join(errs...)
}

// registrableDomain returns eTLD+1 of rawURL's host, or "" for IPs,
// localhost and unparsable input so the cookie stays host-only.
func registrableDomain(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	host := u.Hostname()
	if host == "" || net.ParseIP(host) != nil || !strings.Contains(host, ".") {
		return ""
	}
	domain, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return ""
	}
	return domain
}
