package httpx

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	domainauth "github.com/Asad13/ad-campaign-builder-backend/internal/domain/auth"
	"github.com/Asad13/ad-campaign-builder-backend/internal/domain/model"
	apperrors "github.com/Asad13/ad-campaign-builder-backend/internal/errors"
	"github.com/Asad13/ad-campaign-builder-backend/internal/service"
)

// UserAPI is the part of service.UserService the handlers call.
type UserAPI interface {
	ListMembers(ctx context.Context, p domainauth.Principal, page int) (*model.MemberPage, error)
	ListRoles(ctx context.Context) ([]model.RoleInfo, error)
	GetProfile(ctx context.Context, p domainauth.Principal, userID string) (*model.Profile, error)
	UpdateProfile(ctx context.Context, p domainauth.Principal, req model.ProfileUpdate) (*model.Profile, error)
	ChangePassword(ctx context.Context, p domainauth.Principal, req model.ChangePasswordRequest) error
	UpdateRole(ctx context.Context, p domainauth.Principal, userID string, req model.UpdateRoleRequest) (*model.MemberSummary, error)
	DeleteMember(ctx context.Context, p domainauth.Principal, userID string) (int, error)
	ResendInvite(ctx context.Context, p domainauth.Principal, req model.ResendInviteRequest) error
}

// Inviter adds members to the caller's group.
type Inviter interface {
	InviteUser(ctx context.Context, inviter domainauth.Principal, req model.InviteRequest) (*service.InviteResult, error)
}

var _ UserAPI = (*service.UserService)(nil)

// UserHandlers provides HTTP handlers under /api/v1/users. Every route runs
// behind the access gate.
type UserHandlers struct {
	Svc     UserAPI
	Invites Inviter
}

type userData struct {
	User any `json:"user"`
}

type roleChange struct {
	ID     string `json:"id"`
	RoleID int    `json:"role_id"`
}

type deletedMember struct {
	Total int    `json:"numberOfUsers"`
	ID    string `json:"id"`
}

type invitedMember struct {
	Total int                 `json:"numberOfUsers"`
	User  model.MemberSummary `json:"user"`
}

// caller returns the principal or writes a 401.
func caller(w http.ResponseWriter, r *http.Request) (domainauth.Principal, bool) {
	p, ok := PrincipalFrom(r.Context())
	if !ok {
		WriteAppError(w, r, apperrors.Unauthenticated(MsgAccessDenied))
	}
	return p, ok
}

// pathUserID reads the {id} path value and rejects anything that is not a UUID.
func pathUserID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := strings.TrimSpace(r.PathValue("id"))
	if err := (model.UserIDParam{ID: id}).Validate(); err != nil {
		WriteAppError(w, r, err)
		return "", false
	}
	return id, true
}

// List handles GET /api/v1/users?page=N. Pages start at zero.
func (h *UserHandlers) List(w http.ResponseWriter, r *http.Request) {
	p, ok := caller(w, r)
	if !ok {
		return
	}
	page := 0
	if raw := r.URL.Query().Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			WriteAppError(w, r, apperrors.ValidationField("page", "must be a non-negative integer"))
			return
		}
		page = n
	}
	res, err := h.Svc.ListMembers(r.Context(), p, page)
	if err != nil {
		WriteAppError(w, r, err)
		return
	}
	Respond(w, http.StatusOK, "All Users", res)
}

// Roles handles GET /api/v1/users/roles.
func (h *UserHandlers) Roles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.Svc.ListRoles(r.Context())
	if err != nil {
		WriteAppError(w, r, err)
		return
	}
	Respond(w, http.StatusOK, "All Roles", map[string]any{"roles": roles})
}

// Get handles GET /api/v1/users/{id}.
func (h *UserHandlers) Get(w http.ResponseWriter, r *http.Request) {
	p, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := pathUserID(w, r)
	if !ok {
		return
	}
	prof, err := h.Svc.GetProfile(r.Context(), p, id)
	if err != nil {
		WriteAppError(w, r, err)
		return
	}
	Respond(w, http.StatusOK, "User Data", userData{User: prof})
}

// UpdateProfile handles POST /api/v1/users.
func (h *UserHandlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	p, ok := caller(w, r)
	if !ok {
		return
	}
	var req model.ProfileUpdate
	if !DecodeJSON(w, r, &req) {
		return
	}
	prof, err := h.Svc.UpdateProfile(r.Context(), p, req)
	if err != nil {
		WriteAppError(w, r, err)
		return
	}
	Respond(w, http.StatusOK, "Profile information updated successfully", userData{User: prof})
}

// ChangePassword handles POST /api/v1/users/password.
func (h *UserHandlers) ChangePassword(w http.ResponseWriter, r *http.Request) {
	p, ok := caller(w, r)
	if !ok {
		return
	}
	var req model.ChangePasswordRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if err := h.Svc.ChangePassword(r.Context(), p, req); err != nil {
		WriteAppError(w, r, err)
		return
	}
	Respond(w, http.StatusOK, "Password updated successfully", nil)
}

// UpdateRole handles PUT /api/v1/users/role/{id}.
func (h *UserHandlers) UpdateRole(w http.ResponseWriter, r *http.Request) {
	p, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := pathUserID(w, r)
	if !ok {
		return
	}
	var req model.UpdateRoleRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	sum, err := h.Svc.UpdateRole(r.Context(), p, id, req)
	if err != nil {
		WriteAppError(w, r, err)
		return
	}
	Respond(w, http.StatusOK, "User's role updated successfully", userData{User: roleChange{ID: sum.ID, RoleID: sum.RoleID}})
}

// Delete handles DELETE /api/v1/users/{id}.
func (h *UserHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	p, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := pathUserID(w, r)
	if !ok {
		return
	}
	remaining, err := h.Svc.DeleteMember(r.Context(), p, id)
	if err != nil {
		WriteAppError(w, r, err)
		return
	}
	Respond(w, http.StatusOK, "User deleted successfully", userData{User: deletedMember{Total: remaining, ID: id}})
}

// Invite handles POST /api/v1/users/invite.
func (h *UserHandlers) Invite(w http.ResponseWriter, r *http.Request) {
	p, ok := caller(w, r)
	if !ok {
		return
	}
	var req model.InviteRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	res, err := h.Invites.InviteUser(r.Context(), p, req)
	if err != nil {
		WriteAppError(w, r, err)
		return
	}
	Respond(w, http.StatusOK, "New user invited successfully", invitedMember{Total: res.Total, User: res.Member})
}

// ResendInvite handles POST /api/v1/users/invite/resend.
func (h *UserHandlers) ResendInvite(w http.ResponseWriter, r *http.Request) {
	p, ok := caller(w, r)
	if !ok {
		return
	}
	var req model.ResendInviteRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if err := h.Svc.ResendInvite(r.Context(), p, req); err != nil {
		WriteAppError(w, r, err)
		return
	}
	Respond(w, http.StatusOK, "Resend invitation successfully", nil)
}
