package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/Asad13/ad-campaign-builder-backend/internal/core"
	domainauth "github.com/Asad13/ad-campaign-builder-backend/internal/domain/auth"
	"github.com/Asad13/ad-campaign-builder-backend/internal/domain/model"
	apperrors "github.com/Asad13/ad-campaign-builder-backend/internal/errors"
	"github.com/Asad13/ad-campaign-builder-backend/internal/ports"
)

// DefaultMembersPerPage is the member list page size when none is configured.
const DefaultMembersPerPage = 3

// UserServiceConfig holds tunables for UserService.
type UserServiceConfig struct {
	MembersPerPage int
}

// UserServiceOptions groups dependencies for UserService.
type UserServiceOptions struct {
	Stores   Stores
	Security Security
	Delivery Delivery
	Config   UserServiceConfig
	Observe  Observability
}

// UserService manages profiles and the members of a caller's group.
type UserService struct {
	users    core.UserRepository
	groups   core.GroupRepository
	roles    core.RoleRepository
	tx       core.TxRunner
	codec    ports.TokenCodec
	sessions ports.SessionStore
	hasher   ports.PasswordHasher
	links    Links
	mail     mailer
	profiler profiler
	perPage  int
	logger   *slog.Logger
}

// NewUserService constructs a UserService. It panics when a required dependency is missing.
func NewUserService(opts UserServiceOptions) *UserService {
	switch {
	case opts.Stores.Users == nil:
		panic("user service: Users repository is required")
	case opts.Stores.Groups == nil:
		panic("user service: Groups repository is required")
	case opts.Stores.Roles == nil:
		panic("user service: Roles repository is required")
	case opts.Stores.Tx == nil:
		panic("user service: Tx runner is required")
	case opts.Security.Codec == nil:
		panic("user service: token codec is required")
	case opts.Security.Sessions == nil:
		panic("user service: session store is required")
	case opts.Security.Hasher == nil:
		panic("user service: password hasher is required")
	case opts.Delivery.Mailer == nil:
		panic("user service: mailer is required")
	}
	perPage := opts.Config.MembersPerPage
	if perPage <= 0 {
		perPage = DefaultMembersPerPage
	}
	logger := opts.Observe.logger("user_service")
	return &UserService{
		users:    opts.Stores.Users,
		groups:   opts.Stores.Groups,
		roles:    opts.Stores.Roles,
		tx:       opts.Stores.Tx,
		codec:    opts.Security.Codec,
		sessions: opts.Security.Sessions,
		hasher:   opts.Security.Hasher,
		links:    opts.Delivery.Links,
		mail:     mailer{m: opts.Delivery.Mailer, logger: logger},
		profiler: profiler{signer: opts.Delivery.Signer, logger: logger},
		perPage:  perPage,
		logger:   logger,
	}
}

// ListMembers returns one page of the caller's group. Pages are numbered from zero.
func (s *UserService) ListMembers(ctx context.Context, p domainauth.Principal, page int) (*model.MemberPage, error) {
	groupID, err := s.groups.FindGroupIDForUser(ctx, p.UserID)
	if err != nil {
		return nil, fmt.Errorf("list members: find group: %w", err)
	}
	if page < 0 {
		page = 0
	}

	var (
		total   int
		members []*model.User
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.users.CountByGroup(gctx, groupID)
		if err != nil {
			return fmt.Errorf("count: %w", err)
		}
		total = n
		return nil
	})
	g.Go(func() error {
		list, err := s.users.ListByGroup(gctx, groupID, s.perPage, page*s.perPage)
		if err != nil {
			return fmt.Errorf("page: %w", err)
		}
		members = list
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}

	out := &model.MemberPage{Total: total, Members: make([]model.MemberSummary, 0, len(members))}
	for _, m := range members {
		out.Members = append(out.Members, m.Summarize())
	}
	return out, nil
}

// ListRoles returns the role reference table.
func (s *UserService) ListRoles(ctx context.Context) ([]model.RoleInfo, error) {
	roles, err := s.roles.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	return roles, nil
}

// GetProfile returns a user of the caller's own group.
func (s *UserService) GetProfile(ctx context.Context, p domainauth.Principal, userID string) (*model.Profile, error) {
	if err := (model.UserIDParam{ID: userID}).Validate(); err != nil {
		return nil, err
	}
	u, err := s.activeUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if userID != p.UserID {
		if err := s.sameGroup(ctx, p.UserID, userID); err != nil {
			return nil, err
		}
	}
	prof := s.profiler.profile(ctx, u)
	return &prof, nil
}

// UpdateProfile edits the caller's profile. When the caller manages the
// group, the group is renamed to the new company name in the same transaction.
func (s *UserService) UpdateProfile(ctx context.Context, p domainauth.Principal, req model.ProfileUpdate) (*model.Profile, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var updated *model.User
	err := s.tx.WithTx(ctx, func(r core.Repos) error {
		u, err := r.Users.FindByID(ctx, p.UserID)
		if err != nil {
			return err
		}
		if u.IsDeleted {
			return apperrors.NotFound(MsgUserNotFound)
		}
		updated, err = r.Users.Update(ctx, u.ID, req.ToUserUpdate())
		if err != nil {
			return fmt.Errorf("update user: %w", err)
		}
		role, err := updated.Role()
		if err != nil || !role.Can(domainauth.CapManageGroup) {
			return nil
		}
		groupID, err := r.Groups.FindGroupIDForUser(ctx, u.ID)
		if err != nil {
			return fmt.Errorf("find group: %w", err)
		}
		return r.Groups.Rename(ctx, groupID, req.CompanyName)
	})
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NotFound(MsgUserNotFound)
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}
	prof := s.profiler.profile(ctx, updated)
	return &prof, nil
}

// ChangePassword replaces the caller's password after checking the current one.
func (s *UserService) ChangePassword(ctx context.Context, p domainauth.Principal, req model.ChangePasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	if req.NewPassword != req.ConfirmNewPassword {
		return apperrors.PasswordMismatch(MsgPasswordMismatch)
	}

	u, err := s.activeUser(ctx, p.UserID)
	if err != nil {
		return err
	}
	if u.PasswordHash == nil {
		return apperrors.PasswordMismatch(MsgPasswordMismatch)
	}
	if err := s.hasher.Compare(*u.PasswordHash, req.Password); err != nil {
		if errors.Is(err, ports.ErrPasswordMismatch) {
			return apperrors.PasswordMismatch(MsgPasswordMismatch)
		}
		return fmt.Errorf("change password: compare: %w", err)
	}

	hash, err := s.hasher.Hash(req.NewPassword)
	if err != nil {
		return fmt.Errorf("change password: hash: %w", err)
	}
	if _, err := s.users.Update(ctx, u.ID, model.UserUpdate{PasswordHash: &hash}); err != nil {
		return fmt.Errorf("change password: update: %w", err)
	}
	// Same rule as the reset and set flows: the old refresh session ends.
	if err := s.sessions.DeleteRefreshToken(ctx, u.ID); err != nil {
		s.logger.WarnContext(ctx, "drop refresh session after password change failed", "user_id", u.ID, "error", err)
	}
	s.logger.InfoContext(ctx, "password changed", "user_id", u.ID)
	return nil
}

// UpdateRole changes the role of another member of the caller's group.
func (s *UserService) UpdateRole(ctx context.Context, p domainauth.Principal, userID string, req model.UpdateRoleRequest) (*model.MemberSummary, error) {
	if err := (model.UserIDParam{ID: userID}).Validate(); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if userID == p.UserID {
		return nil, apperrors.AccessDenied("You cannot change your own role")
	}
	if _, err := s.activeUser(ctx, userID); err != nil {
		return nil, err
	}
	if err := s.sameGroup(ctx, p.UserID, userID); err != nil {
		return nil, err
	}

	u, err := s.users.Update(ctx, userID, model.UserUpdate{RoleID: &req.RoleID})
	if err != nil {
		return nil, fmt.Errorf("update role: %w", err)
	}
	s.logger.InfoContext(ctx, "role updated", "user_id", userID, "role_id", req.RoleID, "by", p.UserID)
	sum := u.Summarize()
	return &sum, nil
}

// DeleteMember soft-deletes a member and their membership, ends their session
// and returns how many active members remain.
func (s *UserService) DeleteMember(ctx context.Context, p domainauth.Principal, userID string) (int, error) {
	if err := (model.UserIDParam{ID: userID}).Validate(); err != nil {
		return 0, err
	}
	if userID == p.UserID {
		return 0, apperrors.AccessDenied("You cannot delete yourself")
	}

	var remaining int
	err := s.tx.WithTx(ctx, func(r core.Repos) error {
		u, err := r.Users.FindByID(ctx, userID)
		if err != nil {
			return err
		}
		if u.IsDeleted {
			return apperrors.NotFound(MsgUserNotFound)
		}
		groupID, err := r.Groups.FindGroupIDForUser(ctx, p.UserID)
		if err != nil {
			return fmt.Errorf("find caller group: %w", err)
		}
		target, err := r.Groups.FindGroupIDForUser(ctx, userID)
		if err != nil {
			return err
		}
		if target != groupID {
			return apperrors.NotFound(MsgUserNotFound)
		}
		if err := r.Users.SoftDelete(ctx, userID); err != nil {
			return fmt.Errorf("delete user: %w", err)
		}
		if err := r.Groups.SoftDeleteMember(ctx, userID); err != nil {
			return fmt.Errorf("delete membership: %w", err)
		}
		remaining, err = r.Users.CountByGroup(ctx, groupID)
		if err != nil {
			return fmt.Errorf("count members: %w", err)
		}
		return nil
	})
	if err != nil {
		if apperrors.IsNotFound(err) {
			return 0, apperrors.NotFound(MsgUserNotFound)
		}
		return 0, fmt.Errorf("delete member: %w", err)
	}

	if err := s.sessions.DeleteRefreshToken(ctx, userID); err != nil {
		s.logger.WarnContext(ctx, "drop session of deleted member failed", "user_id", userID, "error", err)
	}
	s.logger.InfoContext(ctx, "member deleted", "user_id", userID, "by", p.UserID)
	return remaining, nil
}

// ResendInvite mails a fresh invitation to a member who has not accepted yet.
func (s *UserService) ResendInvite(ctx context.Context, p domainauth.Principal, req model.ResendInviteRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	u, err := s.activeUser(ctx, req.ID)
	if err != nil {
		return err
	}
	if err := s.sameGroup(ctx, p.UserID, u.ID); err != nil {
		return err
	}
	if u.IsVerified {
		return apperrors.Conflict("User has already accepted the invitation")
	}
	role, err := u.Role()
	if err != nil {
		return fmt.Errorf("resend invite: %w", err)
	}
	if err := sendInvitation(ctx, s.codec, s.mail, s.links, u, p.CompanyName, role); err != nil {
		return fmt.Errorf("resend invite: %w", err)
	}
	return nil
}

func (s *UserService) activeUser(ctx context.Context, userID string) (*model.User, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NotFound(MsgUserNotFound)
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if u.IsDeleted {
		return nil, apperrors.NotFound(MsgUserNotFound)
	}
	return u, nil
}

// sameGroup reports other users as missing rather than forbidden.
func (s *UserService) sameGroup(ctx context.Context, callerID, userID string) error {
	mine, err := s.groups.FindGroupIDForUser(ctx, callerID)
	if err != nil {
		return fmt.Errorf("find caller group: %w", err)
	}
	theirs, err := s.groups.FindGroupIDForUser(ctx, userID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return apperrors.NotFound(MsgUserNotFound)
		}
		return fmt.Errorf("find user group: %w", err)
	}
	if mine != theirs {
		return apperrors.NotFound(MsgUserNotFound)
	}
	return nil
}
