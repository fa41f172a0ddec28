package data

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/Asad13/ad-campaign-builder-backend/internal/core"
	"github.com/Asad13/ad-campaign-builder-backend/internal/data/pgxutil"
)

// TxRunner binds the user, group and role repositories to one *sql.Tx.
type TxRunner struct {
	DB           *sql.DB
	timeProvider TimeProvider
	newID        func() string
}

// NewTxRunner creates a TxRunner over db.
func NewTxRunner(db *sql.DB) *TxRunner {
	return &TxRunner{DB: db, timeProvider: &RealTimeProvider{}, newID: uuid.NewString}
}

// NewTxRunnerWithProviders creates a TxRunner with a custom clock and id source (useful for tests).
func NewTxRunnerWithProviders(db *sql.DB, tp TimeProvider, newID func() string) *TxRunner {
	return &TxRunner{DB: db, timeProvider: tp, newID: newID}
}

var _ core.TxRunner = (*TxRunner)(nil)

// WithTx runs fn in a read-committed transaction.
func (t *TxRunner) WithTx(ctx context.Context, fn func(core.Repos) error) error {
	if t == nil || t.DB == nil {
		return errors.New("tx runner: database not configured")
	}
	return pgxutil.WithSQLTx(ctx, t.DB, pgxutil.SQLTxConfig{
		Opts: pgxutil.ReadCommitted(),
		Fn: func(tx *sql.Tx) error {
			return fn(core.Repos{
				Users:  &UserRepo{DB: tx, timeProvider: t.timeProvider, newID: t.newID},
				Groups: &GroupRepo{DB: tx, timeProvider: t.timeProvider, newID: t.newID},
				Roles:  NewRoleRepo(tx),
			})
		},
	})
}
