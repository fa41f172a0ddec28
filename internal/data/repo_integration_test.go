package data

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Asad13/ad-campaign-builder-backend/internal/core"
	domainauth "github.com/Asad13/ad-campaign-builder-backend/internal/domain/auth"
	"github.com/Asad13/ad-campaign-builder-backend/internal/domain/model"
	apperrors "github.com/Asad13/ad-campaign-builder-backend/internal/errors"
	"github.com/Asad13/ad-campaign-builder-backend/internal/testutil"
)

func TestRepos_TenantLifecycle_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	db := testutil.SetupAutoDB(t)
	ctx := context.Background()

	var admin *model.User
	var groupID string
	err := NewTxRunner(db).WithTx(ctx, func(r core.Repos) error {
		var err error
		admin, err = r.Users.Create(ctx, model.CreateUserParams{
			Email:        "  Owner@Example.com ",
			PasswordHash: testutil.StringPtr("hash"),
			CompanyName:  "Acme",
			RoleID:       domainauth.RoleIDAdmin,
		})
		if err != nil {
			return err
		}
		g, err := r.Groups.Create(ctx, "Acme")
		if err != nil {
			return err
		}
		groupID = g.ID
		return r.Groups.AddMember(ctx, admin.ID, g.ID)
	})
	require.NoError(t, err)
	assert.Equal(t, "owner@example.com", admin.Email)
	assert.False(t, admin.IsVerified)

	users := NewUserRepo(db)
	groups := NewGroupRepo(db)

	found, err := users.FindByEmail(ctx, "OWNER@example.com")
	require.NoError(t, err)
	assert.Equal(t, admin.ID, found.ID)

	_, err = users.Create(ctx, model.CreateUserParams{Email: "owner@example.com", CompanyName: "Other", RoleID: domainauth.RoleIDAdmin})
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
	assert.Equal(t, "email", apperrors.GetField(err))

	gid, err := groups.FindGroupIDForUser(ctx, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, groupID, gid)

	member, err := users.Create(ctx, model.CreateUserParams{
		Email:       "creator@example.com",
		CompanyName: "Acme",
		RoleID:      domainauth.RoleIDCreator,
	})
	require.NoError(t, err)
	require.NoError(t, groups.AddMember(ctx, member.ID, groupID))

	n, err := users.CountByGroup(ctx, groupID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	page, err := users.ListByGroup(ctx, groupID, 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, member.ID, page[0].ID)

	require.NoError(t, users.SoftDelete(ctx, member.ID))
	require.NoError(t, groups.SoftDeleteMember(ctx, member.ID))
	n, err = users.CountByGroup(ctx, groupID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	restored, err := users.Reactivate(ctx, member.ID, model.UserUpdate{Name: testutil.StringPtr("Casey")})
	require.NoError(t, err)
	assert.False(t, restored.IsDeleted)
	assert.Equal(t, "Casey", restored.DisplayName())
	require.NoError(t, groups.ReactivateMember(ctx, member.ID, groupID))

	role, err := NewRoleRepo(db).FindRole(ctx, domainauth.RoleIDCreator)
	require.NoError(t, err)
	assert.Equal(t, "creator", role.Name)
}

func TestTxRunner_RollsBackOnError_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	db := testutil.SetupAutoDB(t)
	ctx := context.Background()

	err := NewTxRunner(db).WithTx(ctx, func(r core.Repos) error {
		if _, err := r.Users.Create(ctx, model.CreateUserParams{
			Email:       "rollback@example.com",
			CompanyName: "Acme",
			RoleID:      domainauth.RoleIDAdmin,
		}); err != nil {
			return err
		}
		_, err := r.Groups.Create(ctx, "   ")
		return err
	})
	require.Error(t, err)

	_, err = NewUserRepo(db).FindByEmail(ctx, "rollback@example.com")
	assert.True(t, apperrors.IsNotFound(err))
}
