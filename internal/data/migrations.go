package data

import (
	"context"
	"database/sql"

	"github.com/Asad13/ad-campaign-builder-backend/internal/migrate"
)

// RunMigrations brings the users, groups and roles schema up to date.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	return migrate.Run(ctx, db)
}
