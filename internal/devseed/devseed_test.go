package devseed

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Asad13/ad-campaign-builder-backend/internal/core"
	domainauth "github.com/Asad13/ad-campaign-builder-backend/internal/domain/auth"
	"github.com/Asad13/ad-campaign-builder-backend/internal/domain/model"
	apperrors "github.com/Asad13/ad-campaign-builder-backend/internal/errors"
	"github.com/Asad13/ad-campaign-builder-backend/internal/mocks"
)

type seedFixture struct {
	users  *mocks.MockUserRepository
	groups *mocks.MockGroupRepository
	tx     *mocks.MockTxRunner
	hasher *mocks.MockPasswordHasher
	deps   Deps
	logger *slog.Logger
}

func newSeedFixture(t *testing.T) *seedFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &seedFixture{
		users:  mocks.NewMockUserRepository(ctrl),
		groups: mocks.NewMockGroupRepository(ctrl),
		tx:     mocks.NewMockTxRunner(ctrl),
		hasher: mocks.NewMockPasswordHasher(ctrl),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	f.deps = Deps{Users: f.users, Tx: f.tx, Hasher: f.hasher}
	f.tx.EXPECT().WithTx(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fn func(core.Repos) error) error {
			return fn(core.Repos{Users: f.users, Groups: f.groups})
		}).AnyTimes()
	return f
}

func TestRun_CreatesTenant(t *testing.T) {
	f := newSeedFixture(t)
	ctx := context.Background()
	fx := DefaultFixture()

	f.users.EXPECT().FindByEmail(ctx, fx.Admin.Email).Return(nil, apperrors.NotFound("user not found"))
	f.hasher.EXPECT().Hash("Password123!").Return("hashed", nil).Times(2)

	var created []model.CreateUserParams
	f.users.EXPECT().Create(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, p model.CreateUserParams) (*model.User, error) {
			created = append(created, p)
			return &model.User{ID: p.Email, Email: p.Email, RoleID: p.RoleID}, nil
		}).Times(2)
	f.users.EXPECT().Update(ctx, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, id string, upd model.UserUpdate) (*model.User, error) {
			require.NotNil(t, upd.IsVerified)
			assert.True(t, *upd.IsVerified)
			return &model.User{ID: id, IsVerified: true}, nil
		}).Times(2)
	f.groups.EXPECT().Create(ctx, "Demo Agency").Return(&model.Group{ID: "g1"}, nil)
	f.groups.EXPECT().AddMember(ctx, fx.Admin.Email, "g1").Return(nil)
	f.groups.EXPECT().AddMember(ctx, "creator@demo.local", "g1").Return(nil)

	require.NoError(t, Run(ctx, f.deps, fx, f.logger))

	require.Len(t, created, 2)
	assert.Equal(t, domainauth.RoleIDAdmin, created[0].RoleID)
	assert.Equal(t, domainauth.RoleIDCreator, created[1].RoleID)
	assert.Equal(t, "Demo Agency", created[1].CompanyName)
	require.NotNil(t, created[0].PasswordHash)
	assert.Equal(t, "hashed", *created[0].PasswordHash)
}

func TestRun_SkipsExistingAdmin(t *testing.T) {
	f := newSeedFixture(t)
	ctx := context.Background()

	f.users.EXPECT().FindByEmail(ctx, "admin@demo.local").Return(&model.User{ID: "u1"}, nil)

	require.NoError(t, Run(ctx, f.deps, DefaultFixture(), f.logger))
}

func TestRun_PropagatesFailures(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")

	t.Run("lookup", func(t *testing.T) {
		f := newSeedFixture(t)
		f.users.EXPECT().FindByEmail(ctx, gomock.Any()).Return(nil, boom)

		err := Run(ctx, f.deps, DefaultFixture(), f.logger)
		require.ErrorIs(t, err, boom)
	})

	t.Run("group create", func(t *testing.T) {
		f := newSeedFixture(t)
		f.users.EXPECT().FindByEmail(ctx, gomock.Any()).Return(nil, apperrors.NotFound("user not found"))
		f.hasher.EXPECT().Hash(gomock.Any()).Return("hashed", nil)
		f.users.EXPECT().Create(ctx, gomock.Any()).Return(&model.User{ID: "u1"}, nil)
		f.users.EXPECT().Update(ctx, "u1", gomock.Any()).Return(&model.User{ID: "u1"}, nil)
		f.groups.EXPECT().Create(ctx, gomock.Any()).Return(nil, boom)

		err := Run(ctx, f.deps, DefaultFixture(), f.logger)
		require.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "create seed group")
	})

	t.Run("missing credentials", func(t *testing.T) {
		f := newSeedFixture(t)
		fx := DefaultFixture()
		fx.Admin.Password = ""
		f.users.EXPECT().FindByEmail(ctx, gomock.Any()).Return(nil, apperrors.NotFound("user not found"))

		require.Error(t, Run(ctx, f.deps, fx, f.logger))
	})
}
