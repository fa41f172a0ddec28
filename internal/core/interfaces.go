package core

import (
	"context"

	apperrors "github.com/Asad13/ad-campaign-builder-backend/internal/errors"
	"github.com/Asad13/ad-campaign-builder-backend/internal/domain/model"
)

// This file contains repository interface definitions (ports in hexagonal architecture).
// Service implementations depend on these interfaces, not on the data package.

// ErrNotFound is returned by every finder when the row does not exist.
var ErrNotFound = apperrors.NotFound("not found")

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	// FindByEmail matches the normalized email and includes soft-deleted rows.
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	Create(ctx context.Context, params model.CreateUserParams) (*model.User, error)
	Update(ctx context.Context, id string, upd model.UserUpdate) (*model.User, error)
	SoftDelete(ctx context.Context, id string) error
	// Reactivate clears is_deleted and applies upd in the same statement.
	Reactivate(ctx context.Context, id string, upd model.UserUpdate) (*model.User, error)
	// ListByGroup returns active members of a group ordered by creation time.
	ListByGroup(ctx context.Context, groupID string, limit, offset int) ([]*model.User, error)
	CountByGroup(ctx context.Context, groupID string) (int, error)
}

// GroupRepository defines the interface for group and membership data operations.
type GroupRepository interface {
	Create(ctx context.Context, name string) (*model.Group, error)
	AddMember(ctx context.Context, userID, groupID string) error
	// FindGroupIDForUser returns the group of the user's active membership.
	FindGroupIDForUser(ctx context.Context, userID string) (string, error)
	SoftDeleteMember(ctx context.Context, userID string) error
	// ReactivateMember restores the user's most recent membership and moves it to groupID.
	ReactivateMember(ctx context.Context, userID, groupID string) error
	Rename(ctx context.Context, groupID, name string) error
}

// RoleRepository defines the interface for role reference data.
type RoleRepository interface {
	FindRole(ctx context.Context, roleID int) (*model.RoleInfo, error)
	List(ctx context.Context) ([]model.RoleInfo, error)
}

// Repos bundles repositories bound to a single transaction.
type Repos struct {
	Users  UserRepository
	Groups GroupRepository
	Roles  RoleRepository
}

// TxRunner runs fn with repositories that share one database transaction.
// The transaction commits when fn returns nil.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(Repos) error) error
}
