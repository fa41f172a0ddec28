package httpx

import (
	"log/slog"
	"net/http"

	domainauth "github.com/Asad13/ad-campaign-builder-backend/internal/domain/auth"
	"github.com/Asad13/ad-campaign-builder-backend/internal/observability/metrics"
)

// APIPrefix is the mount point of every versioned route.
const APIPrefix = "/api/v1"

// DefaultMetricsPath is where Prometheus scrapes when MetricsPath is empty.
const DefaultMetricsPath = "/metrics"

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Credentials CredentialAPI
	Users       UserAPI
	Gate        GateDeps
	Roles       RoleLookup
	Cookies     CookieConfig

	// Optional
	Metrics      *metrics.Metrics
	MetricsPath  string
	RateLimit    *RateLimiter
	CORS         CORSConfig
	Compression  *CompressionConfig
	HealthChecks map[string]HealthCheck
	Logger       *slog.Logger
}

// NewRouter registers the API routes on a fresh ServeMux. Gates are applied
// per route so the mux can record the matched pattern before they run.
func NewRouter(services RouterServices) *http.ServeMux {
	mux := http.NewServeMux()

	auth := &AuthHandlers{Svc: services.Credentials, Cookies: services.Cookies}
	users := &UserHandlers{Svc: services.Users, Invites: services.Credentials}

	registerAuthRoutes(mux, auth, services)
	registerUserRoutes(mux, users, services)

	mux.HandleFunc("GET /healthz", healthHandler)
	mux.HandleFunc("HEAD /healthz", healthHandler)
	if len(services.HealthChecks) > 0 {
		mux.Handle("GET /readyz", readinessHandler(services.HealthChecks))
	}
	if services.Metrics != nil {
		path := services.MetricsPath
		if path == "" {
			path = DefaultMetricsPath
		}
		mux.Handle("GET "+path, services.Metrics.Handler())
	}
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusNotFound, Envelope{Message: "Not found"})
	})
	return mux
}

// NewHandler wraps the router with the server-wide middleware chain.
func NewHandler(services RouterServices) http.Handler {
	mws := []Middleware{
		Recover(services.Logger),
		RequestID(),
		Logging(services.Logger),
	}
	if services.Metrics != nil {
		mws = append(mws, services.Metrics.Instrument)
	}
	mws = append(mws, CORS(services.CORS))
	if services.Compression != nil {
		mws = append(mws, Compression(*services.Compression))
	}
	return Chain(NewRouter(services), mws...)
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers, s RouterServices) {
	limited := func(fn http.HandlerFunc) http.Handler {
		if s.RateLimit == nil {
			return fn
		}
		return s.RateLimit.Middleware(fn)
	}
	access := RequireAccessToken(s.Gate)
	refresh := RequireRefreshToken(s.Gate)

	mux.Handle("POST "+APIPrefix+"/auth/signup", limited(h.Signup))
	mux.Handle("POST "+APIPrefix+"/auth/login", limited(h.Login))
	mux.Handle("POST "+APIPrefix+"/auth/forgot-password", limited(h.ForgotPassword))

	mux.Handle("GET "+APIPrefix+"/auth/access", refresh(http.HandlerFunc(h.RefreshAccess)))
	mux.Handle("GET "+APIPrefix+"/auth/token", refresh(http.HandlerFunc(h.Rotate)))
	mux.Handle("POST "+APIPrefix+"/auth/logout", access(http.HandlerFunc(h.Logout)))

	mux.HandleFunc("GET "+APIPrefix+"/auth/confirm-email/{token}", h.ConfirmEmail)
	mux.HandleFunc("GET "+APIPrefix+"/auth/forgot-password/{token}", h.ConfirmForgotPassword)
	mux.HandleFunc("POST "+APIPrefix+"/auth/reset-password/{token}", h.ResetPassword)
	mux.HandleFunc("GET "+APIPrefix+"/auth/invitation/{token}", h.ConfirmInvite)
	mux.HandleFunc("POST "+APIPrefix+"/auth/set-new-password/{token}", h.SetPassword)
}

func registerUserRoutes(mux *http.ServeMux, h *UserHandlers, s RouterServices) {
	member := func(fn http.HandlerFunc) http.Handler {
		return RequireAccessToken(s.Gate)(fn)
	}
	admin := func(fn http.HandlerFunc) http.Handler {
		return Chain(fn,
			RequireAccessToken(s.Gate),
			RequireCapability(s.Roles, domainauth.CapManageUsers))
	}

	mux.Handle("GET "+APIPrefix+"/users", admin(h.List))
	mux.Handle("POST "+APIPrefix+"/users", member(h.UpdateProfile))
	mux.Handle("GET "+APIPrefix+"/users/roles", member(h.Roles))
	mux.Handle("POST "+APIPrefix+"/users/password", member(h.ChangePassword))
	mux.Handle("POST "+APIPrefix+"/users/invite", admin(h.Invite))
	mux.Handle("POST "+APIPrefix+"/users/invite/resend", admin(h.ResendInvite))
	mux.Handle("GET "+APIPrefix+"/users/{id}", member(h.Get))
	mux.Handle("DELETE "+APIPrefix+"/users/{id}", admin(h.Delete))
	mux.Handle("PUT "+APIPrefix+"/users/role/{id}", admin(h.UpdateRole))
}
