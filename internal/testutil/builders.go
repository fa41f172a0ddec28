package testutil

import (
	"time"

	domainauth "github.com/Asad13/ad-campaign-builder-backend/internal/domain/auth"
	"github.com/Asad13/ad-campaign-builder-backend/internal/domain/model"
)

// UserBuilder provides a fluent interface for building model.User values in tests.
type UserBuilder struct {
	u model.User
}

// NewUser returns a verified admin of "Acme" with a password hash set.
func NewUser(id string) *UserBuilder {
	hash := "$2a$10$abcdefghijklmnopqrstuuP1eGMKeAJ7mI9t0w1pV2g5u8Wm2r6W6"
	return &UserBuilder{u: model.User{
		ID:           id,
		Email:        id + "@example.com",
		PasswordHash: &hash,
		CompanyName:  "Acme",
		RoleID:       domainauth.RoleIDAdmin,
		IsVerified:   true,
		CreatedAt:    TestTime(),
		UpdatedAt:    TestTime(),
	}}
}

// WithEmail sets the email.
func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.u.Email = email
	return b
}

// WithName sets the display name.
func (b *UserBuilder) WithName(name string) *UserBuilder {
	b.u.Name = &name
	return b
}

// WithCompany sets the company (group) name.
func (b *UserBuilder) WithCompany(company string) *UserBuilder {
	b.u.CompanyName = company
	return b
}

// WithPasswordHash sets the stored hash.
func (b *UserBuilder) WithPasswordHash(hash string) *UserBuilder {
	b.u.PasswordHash = &hash
	return b
}

// WithoutPassword models an invited user that has not set a password.
func (b *UserBuilder) WithoutPassword() *UserBuilder {
	b.u.PasswordHash = nil
	return b
}

// AsCreator switches the role to creator.
func (b *UserBuilder) AsCreator() *UserBuilder {
	b.u.RoleID = domainauth.RoleIDCreator
	return b
}

// Unverified clears the verification flag.
func (b *UserBuilder) Unverified() *UserBuilder {
	b.u.IsVerified = false
	return b
}

// Deleted marks the user soft-deleted.
func (b *UserBuilder) Deleted() *UserBuilder {
	b.u.IsDeleted = true
	return b
}

// WithProfilePic sets the stored picture key.
func (b *UserBuilder) WithProfilePic(key string) *UserBuilder {
	b.u.ProfilePic = &key
	return b
}

// UpdatedAt overrides the last update time.
func (b *UserBuilder) UpdatedAt(at time.Time) *UserBuilder {
	b.u.UpdatedAt = at
	return b
}

// Build returns a pointer to a copy of the built user.
func (b *UserBuilder) Build() *model.User {
	u := b.u
	return &u
}
