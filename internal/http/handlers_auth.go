package httpx

import (
	"context"
	"net/http"

	domainauth "github.com/Asad13/ad-campaign-builder-backend/internal/domain/auth"
	"github.com/Asad13/ad-campaign-builder-backend/internal/domain/model"
	apperrors "github.com/Asad13/ad-campaign-builder-backend/internal/errors"
	"github.com/Asad13/ad-campaign-builder-backend/internal/service"
)

// CredentialAPI is the part of service.CredentialService the handlers call.
type CredentialAPI interface {
	Signup(ctx context.Context, req model.SignupRequest) error
	VerifyEmail(ctx context.Context, token string) string
	Login(ctx context.Context, req model.LoginRequest) (*service.SessionResult, error)
	Rotate(ctx context.Context, p domainauth.Principal) (*service.SessionResult, error)
	RefreshAccess(ctx context.Context, p domainauth.Principal) (*service.SessionResult, error)
	Logout(ctx context.Context, p domainauth.Principal) error
	ForgotPassword(ctx context.Context, req model.ForgotPasswordRequest) error
	ConfirmForgotPassword(ctx context.Context, token string) string
	ResetPassword(ctx context.Context, token string, pair model.PasswordPair) error
	ConfirmInvite(ctx context.Context, token string) string
	SetPassword(ctx context.Context, token string, pair model.PasswordPair) error
	InviteUser(ctx context.Context, inviter domainauth.Principal, req model.InviteRequest) (*service.InviteResult, error)
}

var _ CredentialAPI = (*service.CredentialService)(nil)

// AuthHandlers provides HTTP handlers for the credential flows under /api/v1/auth.
type AuthHandlers struct {
	Svc     CredentialAPI
	Cookies CookieConfig
}

// sessionData is returned by login and both refresh endpoints.
type sessionData struct {
	AccessToken string        `json:"accessToken"`
	User        model.Profile `json:"user"`
}

// Signup handles POST /api/v1/auth/signup.
func (h *AuthHandlers) Signup(w http.ResponseWriter, r *http.Request) {
	var req model.SignupRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if err := h.Svc.Signup(r.Context(), req); err != nil {
		WriteAppError(w, r, err)
		return
	}
	Respond(w, http.StatusCreated, "Confirm your email", nil)
}

// ConfirmEmail handles GET /api/v1/auth/confirm-email/{token}.
func (h *AuthHandlers) ConfirmEmail(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, h.Svc.VerifyEmail(r.Context(), r.PathValue("token")), http.StatusFound)
}

// Login handles POST /api/v1/auth/login and sets the refresh cookie.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	res, err := h.Svc.Login(r.Context(), req)
	if err != nil {
		WriteAppError(w, r, err)
		return
	}
	h.Cookies.SetRefreshCookie(w, r, res.RefreshToken, res.RefreshTTL)
	Respond(w, http.StatusOK, "Login Successful", sessionData{AccessToken: res.AccessToken, User: res.Profile})
}

// RefreshAccess handles GET /api/v1/auth/access behind the refresh gate.
func (h *AuthHandlers) RefreshAccess(w http.ResponseWriter, r *http.Request) {
	p, ok := PrincipalFrom(r.Context())
	if !ok {
		WriteAppError(w, r, apperrors.Unauthenticated(MsgAccessDenied))
		return
	}
	res, err := h.Svc.RefreshAccess(r.Context(), p)
	if err != nil {
		WriteAppError(w, r, err)
		return
	}
	Respond(w, http.StatusOK, "Success", sessionData{AccessToken: res.AccessToken, User: res.Profile})
}

// Rotate handles GET /api/v1/auth/token behind the refresh gate and rewrites the cookie.
func (h *AuthHandlers) Rotate(w http.ResponseWriter, r *http.Request) {
	p, ok := PrincipalFrom(r.Context())
	if !ok {
		WriteAppError(w, r, apperrors.Unauthenticated(MsgAccessDenied))
		return
	}
	res, err := h.Svc.Rotate(r.Context(), p)
	if err != nil {
		WriteAppError(w, r, err)
		return
	}
	h.Cookies.SetRefreshCookie(w, r, res.RefreshToken, res.RefreshTTL)
	Respond(w, http.StatusOK, "Success", sessionData{AccessToken: res.AccessToken, User: res.Profile})
}

// Logout handles POST /api/v1/auth/logout behind the access gate.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	p, ok := PrincipalFrom(r.Context())
	if !ok {
		WriteAppError(w, r, apperrors.Unauthenticated(MsgAccessDenied))
		return
	}
	if err := h.Svc.Logout(r.Context(), p); err != nil {
		WriteAppError(w, r, err)
		return
	}
	h.Cookies.ClearRefreshCookie(w, r)
	w.WriteHeader(http.StatusNoContent)
}

// ForgotPassword handles POST /api/v1/auth/forgot-password. The answer does not
// depend on whether the address is registered.
func (h *AuthHandlers) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req model.ForgotPasswordRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if err := h.Svc.ForgotPassword(r.Context(), req); err != nil {
		WriteAppError(w, r, err)
		return
	}
	Respond(w, http.StatusOK, "Email sent to reset password", nil)
}

// ConfirmForgotPassword handles GET /api/v1/auth/forgot-password/{token}.
func (h *AuthHandlers) ConfirmForgotPassword(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, h.Svc.ConfirmForgotPassword(r.Context(), r.PathValue("token")), http.StatusFound)
}

// ResetPassword handles POST /api/v1/auth/reset-password/{token}.
func (h *AuthHandlers) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var pair model.PasswordPair
	if !DecodeJSON(w, r, &pair) {
		return
	}
	if err := h.Svc.ResetPassword(r.Context(), r.PathValue("token"), pair); err != nil {
		WriteAppError(w, r, err)
		return
	}
	Respond(w, http.StatusOK, "Password reset successfully", nil)
}

// ConfirmInvite handles GET /api/v1/auth/invitation/{token}.
func (h *AuthHandlers) ConfirmInvite(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, h.Svc.ConfirmInvite(r.Context(), r.PathValue("token")), http.StatusFound)
}

// SetPassword handles POST /api/v1/auth/set-new-password/{token}.
func (h *AuthHandlers) SetPassword(w http.ResponseWriter, r *http.Request) {
	var pair model.PasswordPair
	if !DecodeJSON(w, r, &pair) {
		return
	}
	if err := h.Svc.SetPassword(r.Context(), r.PathValue("token"), pair); err != nil {
		WriteAppError(w, r, err)
		return
	}
	Respond(w, http.StatusOK, "Password set successfully", nil)
}
