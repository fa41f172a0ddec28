//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"strconv"
	"strings"
	"time"

	domainauth "github.com/Asad13/ad-campaign-builder-backend/internal/domain/auth"
)

// User is a persisted identity. PasswordHash is nil for invited users that
// have not set a password yet.
type User struct {
	ID            string    `json:"id"                       db:"id"`
	Email         string    `json:"email"                    db:"email"`
	PasswordHash  *string   `json:"-"                        db:"password"`
	Name          *string   `json:"name,omitempty"           db:"name"`
	CompanyName   string    `json:"company_name"             db:"company_name"`
	RoleID        int       `json:"role_id"                  db:"role_id"`
	IsVerified    bool      `json:"is_verified"              db:"is_verified"`
	IsDeleted     bool      `json:"is_deleted"               db:"is_deleted"`
	ProfilePic    *string   `json:"profile_pic,omitempty"    db:"profile_pic"`
	CategoryID    *int      `json:"category_id,omitempty"    db:"category_id"`
	SubcategoryID *int      `json:"subcategory_id,omitempty" db:"subcategory_id"`
	Address       *string   `json:"address,omitempty"        db:"address"`
	CreatedAt     time.Time `json:"created_at"               db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"               db:"updated_at"`
}

// Role resolves the user's role from its persisted id.
func (u *User) Role() (domainauth.Role, error) {
	return domainauth.RoleFromID(u.RoleID)
}

// DisplayName returns the user's name or an empty string.
func (u *User) DisplayName() string {
	if u.Name == nil {
		return ""
	}
	return *u.Name
}

// CreateUserParams is what the repository needs to insert a user.
type CreateUserParams struct {
	Email        string
	PasswordHash *string
	Name         *string
	CompanyName  string
	RoleID       int
}

// UserUpdate lists the columns an update may touch; nil fields are left as they are.
// ClearProfilePic sets profile_pic to NULL and wins over ProfilePic.
type UserUpdate struct {
	PasswordHash    *string
	Name            *string
	CompanyName     *string
	RoleID          *int
	IsVerified      *bool
	ProfilePic      *string
	ClearProfilePic bool
	CategoryID      *int
	SubcategoryID   *int
	Address         *string
}

// IsEmpty reports whether the update would change nothing.
func (u UserUpdate) IsEmpty() bool {
	return u.PasswordHash == nil && u.Name == nil && u.CompanyName == nil && u.RoleID == nil &&
		u.IsVerified == nil && u.ProfilePic == nil && !u.ClearProfilePic && u.CategoryID == nil &&
		u.SubcategoryID == nil && u.Address == nil
}

// Profile is the user representation returned to the client after login and on profile reads.
// Numeric category ids are rendered as strings, empty when unset.
type Profile struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Role          string `json:"role"`
	Email         string `json:"email"`
	CategoryID    string `json:"category_id"`
	SubcategoryID string `json:"subcategory_id"`
	ImageURL      string `json:"imageUrl"`
	CompanyName   string `json:"company_name"`
	Address       string `json:"address"`
}

// MemberSummary is the list/invite representation of a group member.
// Status mirrors the verification flag.
type MemberSummary struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	RoleID int    `json:"role_id"`
	Status bool   `json:"status"`
}

// Summarize builds a MemberSummary from a user.
func (u *User) Summarize() MemberSummary {
	return MemberSummary{
		ID:     u.ID,
		Name:   u.DisplayName(),
		Email:  u.Email,
		RoleID: u.RoleID,
		Status: u.IsVerified,
	}
}

// ToProfile renders the user for the client. imageURL is the signed picture
// URL, empty when the user has none.
func (u *User) ToProfile(imageURL string) Profile {
	p := Profile{
		ID:          u.ID,
		Name:        u.DisplayName(),
		Email:       u.Email,
		ImageURL:    imageURL,
		CompanyName: u.CompanyName,
	}
	if role, err := u.Role(); err == nil {
		p.Role = string(role)
	}
	if u.CategoryID != nil {
		p.CategoryID = strconv.Itoa(*u.CategoryID)
	}
	if u.SubcategoryID != nil {
		p.SubcategoryID = strconv.Itoa(*u.SubcategoryID)
	}
	if u.Address != nil {
		p.Address = *u.Address
	}
	return p
}

// RoleInfo is a row of the roles reference table.
type RoleInfo struct {
	ID          int    `json:"id"   db:"id"`
	Name        string `json:"name" db:"name"`
	Description string `json:"desc" db:"description"`
}

// NormalizeEmail lower-cases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
