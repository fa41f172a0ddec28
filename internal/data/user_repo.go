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

const userColumns = `id, email, password, name, company_name, role_id, is_verified, is_deleted,
	profile_pic, category_id, subcategory_id, address, created_at, updated_at`

const (
	userByEmailQuery = `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	userByIDQuery    = `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	userInsertQuery = `
		INSERT INTO users (id, email, password, name, company_name, role_id, is_verified, is_deleted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, FALSE, FALSE, $7, $7)
		RETURNING ` + userColumns

	userSoftDeleteQuery = `UPDATE users SET is_deleted = TRUE, updated_at = $2 WHERE id = $1 AND is_deleted = FALSE`

	userListByGroupQuery = `
		SELECT u.id, u.email, u.password, u.name, u.company_name, u.role_id, u.is_verified, u.is_deleted,
		       u.profile_pic, u.category_id, u.subcategory_id, u.address, u.created_at, u.updated_at
		FROM users u
		JOIN users_groups ug ON ug.user_id = u.id
		WHERE ug.group_id = $1 AND ug.is_deleted = FALSE AND u.is_deleted = FALSE
		ORDER BY u.created_at ASC, u.id ASC
		LIMIT $2 OFFSET $3`

	userCountByGroupQuery = `
		SELECT COUNT(*)
		FROM users u
		JOIN users_groups ug ON ug.user_id = u.id
		WHERE ug.group_id = $1 AND ug.is_deleted = FALSE AND u.is_deleted = FALSE`
)

// UserRepo provides database operations for users.
type UserRepo struct {
	DB           pgxutil.Querier
	timeProvider TimeProvider
	newID        func() string
}

// NewUserRepo creates a new UserRepo with real time and uuid ids.
func NewUserRepo(db pgxutil.Querier) *UserRepo {
	return &UserRepo{DB: db, timeProvider: &RealTimeProvider{}, newID: uuid.NewString}
}

// NewUserRepoWithProviders creates a UserRepo with custom clock and id source (useful for tests).
func NewUserRepoWithProviders(db pgxutil.Querier, tp TimeProvider, newID func() string) *UserRepo {
	return &UserRepo{DB: db, timeProvider: tp, newID: newID}
}

var _ core.UserRepository = (*UserRepo)(nil)

// FindByEmail returns the user with the given email, deleted or not.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getOne(ctx, userByEmailQuery, model.NormalizeEmail(email))
}

// FindByID returns the user with the given id.
func (r *UserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	return r.getOne(ctx, userByIDQuery, id)
}

// Create inserts an unverified user.
func (r *UserRepo) Create(ctx context.Context, p model.CreateUserParams) (*model.User, error) {
	email := model.NormalizeEmail(p.Email)
	if email == "" {
		return nil, apperrors.ValidationField("email", "email is required")
	}
	row := r.DB.QueryRowContext(ctx, userInsertQuery,
		r.newID(),
		email,
		p.PasswordHash,
		p.Name,
		strings.TrimSpace(p.CompanyName),
		p.RoleID,
		r.timeProvider.Now().UTC(),
	)
	u, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", apperrors.MapDBError(err))
	}
	return u, nil
}

// Update applies the non-nil fields of upd and returns the updated row.
// An empty update returns the current row.
func (r *UserRepo) Update(ctx context.Context, id string, upd model.UserUpdate) (*model.User, error) {
	return r.update(ctx, id, upd, false)
}

// Reactivate clears is_deleted together with upd.
func (r *UserRepo) Reactivate(ctx context.Context, id string, upd model.UserUpdate) (*model.User, error) {
	return r.update(ctx, id, upd, true)
}

// SoftDelete marks an active user deleted.
func (r *UserRepo) SoftDelete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, userSoftDeleteQuery, id, r.timeProvider.Now().UTC())
	if err != nil {
		return fmt.Errorf("soft delete user: %w", apperrors.MapDBError(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("soft delete user: %w", err)
	}
	if n == 0 {
		return core.ErrNotFound
	}
	return nil
}

// ListByGroup returns a page of a group's active members.
func (r *UserRepo) ListByGroup(ctx context.Context, groupID string, limit, offset int) ([]*model.User, error) {
	if limit <= 0 {
		limit = 50
	}
	offset = max(offset, 0)

	rows, err := r.DB.QueryContext(ctx, userListByGroupQuery, groupID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list users by group: %w", apperrors.MapDBError(err))
	}
	defer rows.Close()

	out := make([]*model.User, 0, limit)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list users by group: %w", err)
	}
	return out, nil
}

// CountByGroup counts a group's active members.
func (r *UserRepo) CountByGroup(ctx context.Context, groupID string) (int, error) {
	var n int
	if err := r.DB.QueryRowContext(ctx, userCountByGroupQuery, groupID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count users by group: %w", apperrors.MapDBError(err))
	}
	return n, nil
}

// --- helpers ---

func (r *UserRepo) getOne(ctx context.Context, query string, arg any) (*model.User, error) {
	u, err := scanUser(r.DB.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", apperrors.MapDBError(err))
	}
	return u, nil
}

func (r *UserRepo) update(ctx context.Context, id string, upd model.UserUpdate, reactivate bool) (*model.User, error) {
	if upd.IsEmpty() && !reactivate {
		return r.FindByID(ctx, id)
	}

	setClause, args := buildUserSetClause(upd)
	if reactivate {
		setClause = append(setClause, "is_deleted = FALSE")
	}
	args = append(args, r.timeProvider.Now().UTC())
	setClause = append(setClause, fmt.Sprintf("updated_at = $%d", len(args)))
	args = append(args, id)

	query := "UPDATE users SET " + strings.Join(setClause, ", ") +
		fmt.Sprintf(" WHERE id = $%d RETURNING ", len(args)) + userColumns
	u, err := scanUser(r.DB.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update user: %w", apperrors.MapDBError(err))
	}
	return u, nil
}

// buildUserSetClause builds SET fragments and args for the non-nil fields of upd.
func buildUserSetClause(upd model.UserUpdate) ([]string, []any) {
	set := make([]string, 0, 10)
	args := make([]any, 0, 12)
	add := func(col string, v any) {
		args = append(args, v)
		set = append(set, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if upd.PasswordHash != nil {
		add("password", *upd.PasswordHash)
	}
	if upd.Name != nil {
		add("name", strings.TrimSpace(*upd.Name))
	}
	if upd.CompanyName != nil {
		add("company_name", strings.TrimSpace(*upd.CompanyName))
	}
	if upd.RoleID != nil {
		add("role_id", *upd.RoleID)
	}
	if upd.IsVerified != nil {
		add("is_verified", *upd.IsVerified)
	}
	switch {
	case upd.ClearProfilePic:
		set = append(set, "profile_pic = NULL")
	case upd.ProfilePic != nil:
		add("profile_pic", *upd.ProfilePic)
	}
	if upd.CategoryID != nil {
		add("category_id", *upd.CategoryID)
	}
	if upd.SubcategoryID != nil {
		add("subcategory_id", *upd.SubcategoryID)
	}
	if upd.Address != nil {
		add("address", *upd.Address)
	}
	return set, args
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*model.User, error) {
	var (
		u      model.User
		pw     sql.NullString
		name   sql.NullString
		pic    sql.NullString
		addr   sql.NullString
		cat    sql.NullInt64
		subcat sql.NullInt64
	)
	if err := row.Scan(
		&u.ID, &u.Email, &pw, &name, &u.CompanyName, &u.RoleID, &u.IsVerified, &u.IsDeleted,
		&pic, &cat, &subcat, &addr, &u.CreatedAt, &u.UpdatedAt,
	); err != nil {
		return nil, err
	}
	u.PasswordHash = nullString(pw)
	u.Name = nullString(name)
	u.ProfilePic = nullString(pic)
	u.Address = nullString(addr)
	u.CategoryID = nullInt(cat)
	u.SubcategoryID = nullInt(subcat)
	return &u, nil
}

func nullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func nullInt(ni sql.NullInt64) *int {
	if !ni.Valid {
		return nil
	}
	v := int(ni.Int64)
	return &v
}
