// Package devseed creates demo accounts for local development.
package devseed

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Asad13/ad-campaign-builder-backend/internal/adapters/password"
	"github.com/Asad13/ad-campaign-builder-backend/internal/core"
	"github.com/Asad13/ad-campaign-builder-backend/internal/data"
	domainauth "github.com/Asad13/ad-campaign-builder-backend/internal/domain/auth"
	"github.com/Asad13/ad-campaign-builder-backend/internal/domain/model"
	apperrors "github.com/Asad13/ad-campaign-builder-backend/internal/errors"
	"github.com/Asad13/ad-campaign-builder-backend/internal/ports"
)

// Account describes one seeded login.
type Account struct {
	Email    string
	Password string
	Name     string
	Role     domainauth.Role
}

// Fixture is the seeded tenant: one group owned by Admin, plus Members.
type Fixture struct {
	CompanyName string
	Admin       Account
	Members     []Account
}

// DefaultFixture is what `campaign-admin db-seed` creates.
func DefaultFixture() Fixture {
	return Fixture{
		CompanyName: "Demo Agency",
		Admin: Account{
			Email:    "admin@demo.local",
			Password: "Password123!",
			Name:     "Demo Admin",
			Role:     domainauth.RoleAdmin,
		},
		Members: []Account{{
			Email:    "creator@demo.local",
			Password: "Password123!",
			Name:     "Demo Creator",
			Role:     domainauth.RoleCreator,
		}},
	}
}

// Deps are the stores the seeder writes through.
type Deps struct {
	Users  core.UserRepository
	Tx     core.TxRunner
	Hasher ports.PasswordHasher
}

// NewDeps builds Postgres-backed dependencies for db.
func NewDeps(db *sql.DB) Deps {
	return Deps{
		Users:  data.NewUserRepo(db),
		Tx:     data.NewTxRunner(db),
		Hasher: password.NewBcryptHasher(password.DefaultCost),
	}
}

// Run seeds fx. Accounts that already exist are left untouched, so running
// it twice is harmless.
func Run(ctx context.Context, deps Deps, fx Fixture, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	admin, err := deps.Users.FindByEmail(ctx, fx.Admin.Email)
	switch {
	case err == nil:
		logger.InfoContext(ctx, "seed admin already exists", "email", fx.Admin.Email)
		return nil
	case !apperrors.IsNotFound(err):
		return fmt.Errorf("find seed admin: %w", err)
	}

	return deps.Tx.WithTx(ctx, func(r core.Repos) error {
		admin, err = createVerified(ctx, r.Users, deps.Hasher, fx.CompanyName, fx.Admin)
		if err != nil {
			return err
		}
		group, err := r.Groups.Create(ctx, fx.CompanyName)
		if err != nil {
			return fmt.Errorf("create seed group: %w", err)
		}
		if err := r.Groups.AddMember(ctx, admin.ID, group.ID); err != nil {
			return fmt.Errorf("add seed admin to group: %w", err)
		}

		for _, m := range fx.Members {
			u, err := createVerified(ctx, r.Users, deps.Hasher, fx.CompanyName, m)
			if err != nil {
				return err
			}
			if err := r.Groups.AddMember(ctx, u.ID, group.ID); err != nil {
				return fmt.Errorf("add seed member %s: %w", m.Email, err)
			}
		}

		logger.InfoContext(ctx, "seeded development tenant",
			"group_id", group.ID,
			"admin", fx.Admin.Email,
			"members", len(fx.Members),
		)
		return nil
	})
}

func createVerified(
	ctx context.Context,
	users core.UserRepository,
	hasher ports.PasswordHasher,
	company string,
	a Account,
) (*model.User, error) {
	if a.Email == "" || a.Password == "" {
		return nil, errors.New("seed account requires email and password")
	}
	hash, err := hasher.Hash(a.Password)
	if err != nil {
		return nil, fmt.Errorf("hash seed password: %w", err)
	}
	name := a.Name
	u, err := users.Create(ctx, model.CreateUserParams{
		Email:        a.Email,
		PasswordHash: &hash,
		Name:         &name,
		CompanyName:  company,
		RoleID:       a.Role.ID(),
	})
	if err != nil {
		return nil, fmt.Errorf("create seed user %s: %w", a.Email, err)
	}
	verified := true
	u, err = users.Update(ctx, u.ID, model.UserUpdate{IsVerified: &verified})
	if err != nil {
		return nil, fmt.Errorf("verify seed user %s: %w", a.Email, err)
	}
	return u, nil
}
