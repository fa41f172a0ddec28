package auth

// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of framework/adapter concerns.

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Role represents a tenant-level authorization tier.
// The string form is what the roles table stores in its name column.
type Role string

const (
	// RoleAdmin owns and manages a group.
	RoleAdmin Role = "admin"
	// RoleCreator is a restricted group member.
	RoleCreator Role = "creator"
)

// Persisted role identifiers, seeded by migration.
const (
	RoleIDAdmin   = 1
	RoleIDCreator = 2
)

// ErrUnknownRole is returned when a role id or name is not part of the closed set.
var ErrUnknownRole = errors.New("unknown role")

// RoleFromID maps a persisted role id to its Role.
func RoleFromID(id int) (Role, error) {
	switch id {
	case RoleIDAdmin:
		return RoleAdmin, nil
	case RoleIDCreator:
		return RoleCreator, nil
	default:
		return "", fmt.Errorf("%w: id %d", ErrUnknownRole, id)
	}
}

// ParseRole normalizes a role name and reports whether it is known.
func ParseRole(name string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := capabilities[r]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, name)
	}
	return r, nil
}

// ID returns the persisted identifier for the role, or 0 when unknown.
func (r Role) ID() int {
	switch r {
	case RoleAdmin:
		return RoleIDAdmin
	case RoleCreator:
		return RoleIDCreator
	default:
		return 0
	}
}

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	_, ok := capabilities[r]
	return ok
}

// Capability names a permission granted through a role.
type Capability string

const (
	CapManageUsers     Capability = "users:manage"
	CapManageGroup     Capability = "group:manage"
	CapEditProfile     Capability = "profile:edit"
	CapCreateCampaigns Capability = "campaigns:create"
)

var capabilities = map[Role]map[Capability]bool{ //nolint:gochecknoglobals // read-only capability table
	RoleAdmin: {
		CapManageUsers:     true,
		CapManageGroup:     true,
		CapEditProfile:     true,
		CapCreateCampaigns: true,
	},
	RoleCreator: {
		CapEditProfile:     true,
		CapCreateCampaigns: true,
	},
}

// Can reports whether the role grants the capability.
func (r Role) Can(c Capability) bool {
	return capabilities[r][c]
}

// Principal is the authenticated caller resolved by the authorization gates.
// Token holds the raw credential that was presented (access or refresh)
// and ExpiresAt its exp claim.
type Principal struct {
	UserID      string
	CompanyName string
	Role        Role
	Token       string
	ExpiresAt   time.Time
}

// RemainingLifetime is how long the presented token stays valid after now.
// A zero ExpiresAt yields fallback.
func (p Principal) RemainingLifetime(now time.Time, fallback time.Duration) time.Duration {
	if p.ExpiresAt.IsZero() {
		return fallback
	}
	return p.ExpiresAt.Sub(now)
}

// Session is the refresh-token record kept in the session store.
type Session struct {
	Token string `json:"token"`
}
