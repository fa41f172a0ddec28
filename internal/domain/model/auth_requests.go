//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// MinPasswordLength is the shortest password accepted anywhere in the API.
const MinPasswordLength = 8

var passwordRules = []validation.Rule{ //nolint:gochecknoglobals // shared validation rule set
	validation.Required,
	validation.RuneLength(MinPasswordLength, 1024),
}

// SignupRequest creates a new admin account and the company it represents.
type SignupRequest struct {
	CompanyName string `json:"company_name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
}

// Normalize trims free-text fields and lower-cases the email.
func (r *SignupRequest) Normalize() {
	r.CompanyName = strings.TrimSpace(r.CompanyName)
	r.Email = NormalizeEmail(r.Email)
}

// Validate checks the request.
func (r SignupRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.CompanyName, validation.Required, validation.RuneLength(1, 255)),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, passwordRules...),
	)
}

// LoginRequest carries email/password credentials.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Normalize lower-cases the email.
func (r *LoginRequest) Normalize() { r.Email = NormalizeEmail(r.Email) }

// Validate checks the request.
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, passwordRules...),
	)
}

// ForgotPasswordRequest asks for a password reset link.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// Normalize lower-cases the email.
func (r *ForgotPasswordRequest) Normalize() { r.Email = NormalizeEmail(r.Email) }

// Validate checks the request.
func (r ForgotPasswordRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
	)
}

// PasswordPair is the body of the reset-password and set-new-password forms.
type PasswordPair struct {
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// Validate checks both fields for length. Equality is checked by the service
// so a mismatch can be reported separately from a malformed request.
func (p PasswordPair) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Password, passwordRules...),
		validation.Field(&p.ConfirmPassword, passwordRules...),
	)
}

// Matches reports whether both fields are identical.
func (p PasswordPair) Matches() bool { return p.Password == p.ConfirmPassword }
