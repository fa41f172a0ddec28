package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Asad13/ad-campaign-builder-backend/internal/core"
	"github.com/Asad13/ad-campaign-builder-backend/internal/data/pgxutil"
	"github.com/Asad13/ad-campaign-builder-backend/internal/domain/model"
	apperrors "github.com/Asad13/ad-campaign-builder-backend/internal/errors"
)

// RoleRepo reads the roles reference table.
type RoleRepo struct {
	DB pgxutil.Querier
}

// NewRoleRepo creates a new RoleRepo.
func NewRoleRepo(db pgxutil.Querier) *RoleRepo {
	return &RoleRepo{DB: db}
}

var _ core.RoleRepository = (*RoleRepo)(nil)

// FindRole returns the role with the given id.
func (r *RoleRepo) FindRole(ctx context.Context, roleID int) (*model.RoleInfo, error) {
	var ri model.RoleInfo
	var desc sql.NullString
	err := r.DB.QueryRowContext(ctx, `SELECT id, name, description FROM roles WHERE id = $1`, roleID).
		Scan(&ri.ID, &ri.Name, &desc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find role: %w", apperrors.MapDBError(err))
	}
	ri.Description = desc.String
	return &ri, nil
}

// List returns all roles ordered by id.
func (r *RoleRepo) List(ctx context.Context) ([]model.RoleInfo, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, name, description FROM roles ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", apperrors.MapDBError(err))
	}
	defer rows.Close()

	var out []model.RoleInfo
	for rows.Next() {
		var ri model.RoleInfo
		var desc sql.NullString
		if err := rows.Scan(&ri.ID, &ri.Name, &desc); err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		ri.Description = desc.String
		out = append(out, ri)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	return out, nil
}
