//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	domainauth "github.com/Asad13/ad-campaign-builder-backend/internal/domain/auth"
)

var knownRoleIDs = []any{domainauth.RoleIDAdmin, domainauth.RoleIDCreator} //nolint:gochecknoglobals // closed role set

// InviteRequest is what an admin submits to add a member to their group.
type InviteRequest struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	RoleID int    `json:"role_id"`
}

// Normalize trims the name and lower-cases the email.
func (r *InviteRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = NormalizeEmail(r.Email)
}

// Validate checks the request.
func (r InviteRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.RuneLength(1, 255)),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.RoleID, validation.Required, validation.In(knownRoleIDs...)),
	)
}

// UserIDParam is a user id taken from a request path.
type UserIDParam struct {
	ID string `json:"id"`
}

// Validate checks the id is a UUID.
func (p UserIDParam) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.ID, validation.Required, is.UUID),
	)
}

// ResendInviteRequest names the member whose invitation should be mailed again.
type ResendInviteRequest struct {
	ID string `json:"id"`
}

// Validate checks the request.
func (r ResendInviteRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID, validation.Required, is.UUID),
	)
}

// UpdateRoleRequest changes a member's role.
type UpdateRoleRequest struct {
	RoleID int `json:"role_id"`
}

// Validate checks the request.
func (r UpdateRoleRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.RoleID, validation.Required, validation.In(knownRoleIDs...)),
	)
}

// ProfileUpdate is the editable part of a user's profile.
// ClearPicture drops the stored profile picture reference.
type ProfileUpdate struct {
	Name          string `json:"name"`
	CompanyName   string `json:"company_name"`
	CategoryID    *int   `json:"category_id,omitempty"`
	SubcategoryID *int   `json:"subcategory_id,omitempty"`
	Address       string `json:"address,omitempty"`
	ClearPicture  bool   `json:"clear_profile_pic,omitempty"`
}

// Normalize trims free-text fields.
func (r *ProfileUpdate) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.CompanyName = strings.TrimSpace(r.CompanyName)
	r.Address = strings.TrimSpace(r.Address)
}

// Validate checks the request.
func (r ProfileUpdate) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.RuneLength(1, 255)),
		validation.Field(&r.CompanyName, validation.Required, validation.RuneLength(1, 255)),
		validation.Field(&r.CategoryID, validation.Required, validation.Min(1)),
		validation.Field(&r.SubcategoryID, validation.Required, validation.Min(1)),
		validation.Field(&r.Address, validation.RuneLength(0, 512)),
	)
}

// ToUserUpdate converts the profile edit to repository columns.
func (r ProfileUpdate) ToUserUpdate() UserUpdate {
	upd := UserUpdate{
		Name:            &r.Name,
		CompanyName:     &r.CompanyName,
		CategoryID:      r.CategoryID,
		SubcategoryID:   r.SubcategoryID,
		ClearProfilePic: r.ClearPicture,
	}
	if r.Address != "" {
		upd.Address = &r.Address
	}
	return upd
}

// ChangePasswordRequest is submitted by a signed-in user to change their password.
type ChangePasswordRequest struct {
	Password           string `json:"password"`
	NewPassword        string `json:"newPassword"`
	ConfirmNewPassword string `json:"confirmNewPassword"`
}

// Validate checks field lengths.
func (r ChangePasswordRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Password, passwordRules...),
		validation.Field(&r.NewPassword, passwordRules...),
		validation.Field(&r.ConfirmNewPassword, passwordRules...),
	)
}
