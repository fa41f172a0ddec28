package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Asad13/ad-campaign-builder-backend/internal/core"
	"github.com/Asad13/ad-campaign-builder-backend/internal/data/pgxutil"
	"github.com/Asad13/ad-campaign-builder-backend/internal/domain/model"
	apperrors "github.com/Asad13/ad-campaign-builder-backend/internal/errors"
)

const (
	groupInsertQuery = `
		INSERT INTO groups (id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $3)
		RETURNING id, name, created_at, updated_at`

	groupRenameQuery = `UPDATE groups SET name = $2, updated_at = $3 WHERE id = $1`

	membershipInsertQuery = `
		INSERT INTO users_groups (user_id, group_id, is_deleted, created_at, updated_at)
		VALUES ($1, $2, FALSE, $3, $3)`

	membershipGroupQuery = `
		SELECT group_id FROM users_groups
		WHERE user_id = $1 AND is_deleted = FALSE
		ORDER BY created_at DESC
		LIMIT 1`

	membershipSoftDeleteQuery = `
		UPDATE users_groups SET is_deleted = TRUE, updated_at = $2
		WHERE user_id = $1 AND is_deleted = FALSE`

	// Restores the newest membership row; older rows stay deleted.
	membershipReactivateQuery = `
		UPDATE users_groups SET is_deleted = FALSE, group_id = $2, updated_at = $3
		WHERE id = (
			SELECT id FROM users_groups WHERE user_id = $1
			ORDER BY created_at DESC, id DESC
			LIMIT 1
		)`
)

// GroupRepo provides database operations for groups and memberships.
type GroupRepo struct {
	DB           pgxutil.Querier
	timeProvider TimeProvider
	newID        func() string
}

// NewGroupRepo creates a new GroupRepo.
func NewGroupRepo(db pgxutil.Querier) *GroupRepo {
	return &GroupRepo{DB: db, timeProvider: &RealTimeProvider{}, newID: uuid.NewString}
}

// NewGroupRepoWithProviders creates a GroupRepo with a custom clock and id source.
func NewGroupRepoWithProviders(db pgxutil.Querier, tp TimeProvider, newID func() string) *GroupRepo {
	return &GroupRepo{DB: db, timeProvider: tp, newID: newID}
}

var _ core.GroupRepository = (*GroupRepo)(nil)

// Create inserts a group.
func (r *GroupRepo) Create(ctx context.Context, name string) (*model.Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.ValidationField("name", "group name is required")
	}
	var g model.Group
	err := r.DB.QueryRowContext(ctx, groupInsertQuery, r.newID(), name, r.timeProvider.Now().UTC()).
		Scan(&g.ID, &g.Name, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create group: %w", apperrors.MapDBError(err))
	}
	return &g, nil
}

// AddMember inserts an active membership.
func (r *GroupRepo) AddMember(ctx context.Context, userID, groupID string) error {
	if _, err := r.DB.ExecContext(ctx, membershipInsertQuery, userID, groupID, r.timeProvider.Now().UTC()); err != nil {
		return fmt.Errorf("add member: %w", apperrors.MapDBError(err))
	}
	return nil
}

// FindGroupIDForUser returns the group id of the user's active membership.
func (r *GroupRepo) FindGroupIDForUser(ctx context.Context, userID string) (string, error) {
	var id string
	err := r.DB.QueryRowContext(ctx, membershipGroupQuery, userID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", core.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("find group for user: %w", apperrors.MapDBError(err))
	}
	return id, nil
}

// SoftDeleteMember marks the user's active membership deleted.
func (r *GroupRepo) SoftDeleteMember(ctx context.Context, userID string) error {
	return r.execOne(ctx, "soft delete member", membershipSoftDeleteQuery, userID, r.timeProvider.Now().UTC())
}

// ReactivateMember restores the user's latest membership into groupID.
func (r *GroupRepo) ReactivateMember(ctx context.Context, userID, groupID string) error {
	return r.execOne(ctx, "reactivate member", membershipReactivateQuery, userID, groupID, r.timeProvider.Now().UTC())
}

// Rename changes a group's name.
func (r *GroupRepo) Rename(ctx context.Context, groupID, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return apperrors.ValidationField("name", "group name is required")
	}
	return r.execOne(ctx, "rename group", groupRenameQuery, groupID, name, r.timeProvider.Now().UTC())
}

// execOne runs a write that must touch at least one row.
func (r *GroupRepo) execOne(ctx context.Context, op, query string, args ...any) error {
	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, apperrors.MapDBError(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return core.ErrNotFound
	}
	return nil
}
