package auth

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// Purpose identifies what a signed token may be used for.
// Each purpose has its own secret and lifetime.
type Purpose string

const (
	PurposeAccess            Purpose = "access"
	PurposeRefresh           Purpose = "refresh"
	PurposeEmailVerification Purpose = "email_verification"
	PurposeInvite            Purpose = "invite"
	PurposePasswordForgot    Purpose = "password_forgot"
	PurposePasswordReset     Purpose = "password_reset"
	PurposePasswordSet       Purpose = "password_set"
)

// Purposes lists every token purpose.
func Purposes() []Purpose {
	return []Purpose{
		PurposeAccess,
		PurposeRefresh,
		PurposeEmailVerification,
		PurposeInvite,
		PurposePasswordForgot,
		PurposePasswordReset,
		PurposePasswordSet,
	}
}

// CarriesRole reports whether tokens of this purpose include the role claim.
func (p Purpose) CarriesRole() bool {
	switch p {
	case PurposeAccess, PurposeRefresh, PurposeInvite, PurposePasswordSet:
		return true
	default:
		return false
	}
}

var (
	// ErrInvalidSignature covers malformed tokens, bad signatures and tokens minted for another purpose.
	ErrInvalidSignature = errors.New("invalid token signature")
	// ErrTokenExpired is returned once a token's lifetime has elapsed.
	ErrTokenExpired = errors.New("token expired")
)

// TokenPayload is what callers provide when issuing a token.
type TokenPayload struct {
	Subject string
	Name    string
	Role    Role
}

// Claims is the decoded token body.
type Claims struct {
	Name string `json:"name"`
	Role Role   `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Payload returns the caller-visible part of the claims.
func (c *Claims) Payload() TokenPayload {
	return TokenPayload{Subject: c.Subject, Name: c.Name, Role: c.Role}
}
