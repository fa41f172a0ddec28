package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Asad13/ad-campaign-builder-backend/internal/core"
	domainauth "github.com/Asad13/ad-campaign-builder-backend/internal/domain/auth"
	"github.com/Asad13/ad-campaign-builder-backend/internal/domain/model"
	apperrors "github.com/Asad13/ad-campaign-builder-backend/internal/errors"
	"github.com/Asad13/ad-campaign-builder-backend/internal/ports"
)

// Client-facing messages shared with the HTTP layer.
const (
	MsgEmailExists        = "Email already exists"
	MsgInvalidCredentials = "Invalid email or password."
	MsgNotVerified        = "Email not Verified."
	MsgPasswordMismatch   = "Password Mismatch"
	MsgSessionExpired     = "Session Expired"
	MsgAccessDenied       = "Access denied"
	MsgUserNotFound       = "User does not exist"
)

// Stores groups the relational dependencies of the services in this package.
type Stores struct {
	Users  core.UserRepository  // Required
	Groups core.GroupRepository // Required
	Roles  core.RoleRepository  // Required by UserService only
	Tx     core.TxRunner        // Required
}

// Security groups token, session and password primitives.
type Security struct {
	Codec    ports.TokenCodec     // Required
	Sessions ports.SessionStore   // Required
	Hasher   ports.PasswordHasher // Required
	Now      func() time.Time     // Defaults to time.Now
}

// Delivery groups outbound email, object-store signing and public URLs.
type Delivery struct {
	Mailer ports.Mailer    // Required
	Signer ports.URLSigner // Optional: profile pictures are returned without a URL when nil
	Links  Links
}

// CredentialServiceOptions groups dependencies for CredentialService.
type CredentialServiceOptions struct {
	Stores   Stores
	Security Security
	Delivery Delivery
	Observe  Observability
}

// CredentialService implements the signup, login, session and password flows.
type CredentialService struct {
	users    core.UserRepository
	groups   core.GroupRepository
	tx       core.TxRunner
	codec    ports.TokenCodec
	sessions ports.SessionStore
	hasher   ports.PasswordHasher
	links    Links
	mail     mailer
	profiler profiler
	observe  Observability
	now      func() time.Time
	logger   *slog.Logger
}

// SessionResult is what a successful login or refresh hands to the transport layer.
// RefreshToken is empty when only a new access token was minted.
type SessionResult struct {
	AccessToken  string
	RefreshToken string
	RefreshTTL   time.Duration
	Profile      model.Profile
}

// InviteResult is the invited member and the group's active member count.
type InviteResult struct {
	Member model.MemberSummary
	Total  int
}

// NewCredentialService constructs a CredentialService. It panics when a required dependency is missing.
func NewCredentialService(opts CredentialServiceOptions) *CredentialService {
	switch {
	case opts.Stores.Users == nil:
		panic("credential service: Users repository is required")
	case opts.Stores.Groups == nil:
		panic("credential service: Groups repository is required")
	case opts.Stores.Tx == nil:
		panic("credential service: Tx runner is required")
	case opts.Security.Codec == nil:
		panic("credential service: token codec is required")
	case opts.Security.Sessions == nil:
		panic("credential service: session store is required")
	case opts.Security.Hasher == nil:
		panic("credential service: password hasher is required")
	case opts.Delivery.Mailer == nil:
		panic("credential service: mailer is required")
	}
	logger := opts.Observe.logger("credential_service")
	now := opts.Security.Now
	if now == nil {
		now = time.Now
	}
	return &CredentialService{
		users:    opts.Stores.Users,
		groups:   opts.Stores.Groups,
		tx:       opts.Stores.Tx,
		codec:    opts.Security.Codec,
		sessions: opts.Security.Sessions,
		hasher:   opts.Security.Hasher,
		links:    opts.Delivery.Links,
		mail:     mailer{m: opts.Delivery.Mailer, logger: logger},
		profiler: profiler{signer: opts.Delivery.Signer, logger: logger},
		observe:  opts.Observe,
		now:      now,
		logger:   logger,
	}
}

// Signup registers an unverified admin and mails the email-verification link.
func (s *CredentialService) Signup(ctx context.Context, req model.SignupRequest) error {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return err
	}

	_, err := s.users.FindByEmail(ctx, req.Email)
	switch {
	case err == nil:
		s.observe.record(EventSignup, resultFailure)
		return emailExists()
	case !apperrors.IsNotFound(err):
		s.observe.record(EventSignup, resultError)
		return fmt.Errorf("signup: find user: %w", err)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		s.observe.record(EventSignup, resultError)
		return fmt.Errorf("signup: hash password: %w", err)
	}
	u, err := s.users.Create(ctx, model.CreateUserParams{
		Email:        req.Email,
		PasswordHash: &hash,
		CompanyName:  req.CompanyName,
		RoleID:       domainauth.RoleIDAdmin,
	})
	if err != nil {
		if apperrors.IsConflict(err) {
			s.observe.record(EventSignup, resultFailure)
			return emailExists()
		}
		s.observe.record(EventSignup, resultError)
		return fmt.Errorf("signup: create user: %w", err)
	}

	tok, err := s.codec.Issue(domainauth.PurposeEmailVerification, domainauth.TokenPayload{
		Subject: u.ID,
		Name:    u.CompanyName,
	})
	if err != nil {
		s.observe.record(EventSignup, resultError)
		return fmt.Errorf("signup: issue verification token: %w", err)
	}
	s.mail.send(ctx, u.Email, subjectVerifyEmail, verifyEmailBody(s.links.api("confirm-email", tok)))
	s.observe.record(EventSignup, resultSuccess)
	s.logger.InfoContext(ctx, "user signed up", "user_id", u.ID)
	return nil
}

// VerifyEmail confirms the address behind an email-verification token and
// returns where the browser should be redirected. The first confirmation also
// creates the user's group.
func (s *CredentialService) VerifyEmail(ctx context.Context, token string) string {
	claims, err := s.codec.Verify(domainauth.PurposeEmailVerification, token)
	if err != nil {
		s.observe.record(EventVerifyEmail, resultFailure)
		s.logger.InfoContext(ctx, "email verification token rejected", "error", err)
		return s.links.ErrorRedirect()
	}

	err = s.tx.WithTx(ctx, func(r core.Repos) error {
		u, err := r.Users.FindByID(ctx, claims.Subject)
		if err != nil {
			return err
		}
		if u.IsDeleted {
			return apperrors.AccessDenied(MsgAccessDenied)
		}
		if !u.IsVerified {
			verified := true
			if _, err := r.Users.Update(ctx, u.ID, model.UserUpdate{IsVerified: &verified}); err != nil {
				return fmt.Errorf("mark verified: %w", err)
			}
		}
		_, err = r.Groups.FindGroupIDForUser(ctx, u.ID)
		if err == nil {
			return nil
		}
		if !apperrors.IsNotFound(err) {
			return fmt.Errorf("find group: %w", err)
		}
		g, err := r.Groups.Create(ctx, u.CompanyName)
		if err != nil {
			return fmt.Errorf("create group: %w", err)
		}
		return r.Groups.AddMember(ctx, u.ID, g.ID)
	})
	if err != nil {
		s.observe.record(EventVerifyEmail, resultError)
		s.logger.ErrorContext(ctx, "verify email failed", "user_id", claims.Subject, "error", err)
		return s.links.ErrorRedirect()
	}
	s.observe.record(EventVerifyEmail, resultSuccess)
	return s.links.client("login")
}

// Login checks credentials and opens a new session, replacing any previous one.
func (s *CredentialService) Login(ctx context.Context, req model.LoginRequest) (*SessionResult, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if apperrors.IsNotFound(err) {
			s.observe.record(EventLogin, resultFailure)
			return nil, apperrors.InvalidCredentials(MsgInvalidCredentials)
		}
		s.observe.record(EventLogin, resultError)
		return nil, fmt.Errorf("login: find user: %w", err)
	}
	if u.IsDeleted || u.PasswordHash == nil {
		s.observe.record(EventLogin, resultFailure)
		return nil, apperrors.InvalidCredentials(MsgInvalidCredentials)
	}
	if err := s.hasher.Compare(*u.PasswordHash, req.Password); err != nil {
		if errors.Is(err, ports.ErrPasswordMismatch) {
			s.observe.record(EventLogin, resultFailure)
			return nil, apperrors.InvalidCredentials(MsgInvalidCredentials)
		}
		s.observe.record(EventLogin, resultError)
		return nil, fmt.Errorf("login: compare password: %w", err)
	}
	if !u.IsVerified {
		s.observe.record(EventLogin, resultFailure)
		return nil, apperrors.NotVerified(MsgNotVerified)
	}

	res, err := s.openSession(ctx, u)
	if err != nil {
		s.observe.record(EventLogin, resultError)
		return nil, fmt.Errorf("login: %w", err)
	}
	s.observe.record(EventLogin, resultSuccess)
	s.logger.InfoContext(ctx, "user logged in", "user_id", u.ID)
	return res, nil
}

// Rotate mints a new access and refresh token pair for a caller that passed the
// refresh gate. The stored refresh token is replaced.
func (s *CredentialService) Rotate(ctx context.Context, p domainauth.Principal) (*SessionResult, error) {
	u, err := s.activeUser(ctx, p.UserID)
	if err != nil {
		s.observe.record(EventRefresh, resultFailure)
		return nil, err
	}
	res, err := s.openSession(ctx, u)
	if err != nil {
		s.observe.record(EventRefresh, resultError)
		return nil, fmt.Errorf("rotate: %w", err)
	}
	s.observe.record(EventRefresh, resultSuccess)
	return res, nil
}

// RefreshAccess mints a new access token and leaves the refresh session untouched.
func (s *CredentialService) RefreshAccess(ctx context.Context, p domainauth.Principal) (*SessionResult, error) {
	u, err := s.activeUser(ctx, p.UserID)
	if err != nil {
		s.observe.record(EventRefresh, resultFailure)
		return nil, err
	}
	payload, err := sessionPayload(u)
	if err != nil {
		s.observe.record(EventRefresh, resultError)
		return nil, fmt.Errorf("refresh access: %w", err)
	}
	access, err := s.codec.Issue(domainauth.PurposeAccess, payload)
	if err != nil {
		s.observe.record(EventRefresh, resultError)
		return nil, fmt.Errorf("refresh access: issue token: %w", err)
	}
	s.observe.record(EventRefresh, resultSuccess)
	return &SessionResult{AccessToken: access, Profile: s.profiler.profile(ctx, u)}, nil
}

// Logout drops the refresh session and blacklists the presented access token
// for the rest of its lifetime.
func (s *CredentialService) Logout(ctx context.Context, p domainauth.Principal) error {
	if err := s.sessions.DeleteRefreshToken(ctx, p.UserID); err != nil {
		s.observe.record(EventLogout, resultError)
		return fmt.Errorf("logout: delete refresh token: %w", err)
	}
	ttl := p.RemainingLifetime(s.now(), s.codec.TTL(domainauth.PurposeAccess))
	if ttl > 0 {
		if err := s.sessions.BlacklistAccessToken(ctx, p.UserID, p.Token, ttl); err != nil {
			s.observe.record(EventLogout, resultError)
			return fmt.Errorf("logout: blacklist access token: %w", err)
		}
	}
	s.observe.record(EventLogout, resultSuccess)
	s.logger.InfoContext(ctx, "user logged out", "user_id", p.UserID)
	return nil
}

// ForgotPassword mails a reset link to verified, active accounts. The caller
// sees the same outcome whether or not the address is registered.
func (s *CredentialService) ForgotPassword(ctx context.Context, req model.ForgotPasswordRequest) error {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return err
	}

	u, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if apperrors.IsNotFound(err) {
			s.logger.DebugContext(ctx, "password reset requested for unknown email")
			return nil
		}
		return fmt.Errorf("forgot password: find user: %w", err)
	}
	if u.IsDeleted || !u.IsVerified {
		s.logger.DebugContext(ctx, "password reset requested for inactive account", "user_id", u.ID)
		return nil
	}

	tok, err := s.codec.Issue(domainauth.ForgotFlow.Emailed, domainauth.TokenPayload{
		Subject: u.ID,
		Name:    u.CompanyName,
	})
	if err != nil {
		return fmt.Errorf("forgot password: issue token: %w", err)
	}
	s.mail.send(ctx, u.Email, subjectResetPassword, resetPasswordBody(s.links.api("forgot-password", tok)))
	return nil
}

// ConfirmForgotPassword exchanges the emailed token for a reset-form token and
// returns the client redirect.
func (s *CredentialService) ConfirmForgotPassword(ctx context.Context, token string) string {
	return s.confirm(ctx, domainauth.ForgotFlow, token)
}

// ConfirmInvite exchanges the invitation token for a set-password token and
// returns the client redirect.
func (s *CredentialService) ConfirmInvite(ctx context.Context, token string) string {
	return s.confirm(ctx, domainauth.InviteFlow, token)
}

// ResetPassword completes the forgot-password flow.
func (s *CredentialService) ResetPassword(ctx context.Context, token string, pair model.PasswordPair) error {
	return s.complete(ctx, domainauth.ForgotFlow, token, pair)
}

// SetPassword completes the invitation flow and marks the account verified.
func (s *CredentialService) SetPassword(ctx context.Context, token string, pair model.PasswordPair) error {
	return s.complete(ctx, domainauth.InviteFlow, token, pair)
}

// InviteUser adds a member to the inviter's group, reviving a soft-deleted
// account with the same email when there is one, and mails the invitation.
func (s *CredentialService) InviteUser(ctx context.Context, inviter domainauth.Principal, req model.InviteRequest) (*InviteResult, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	role, err := domainauth.RoleFromID(req.RoleID)
	if err != nil {
		return nil, apperrors.ValidationField("role_id", "unknown role")
	}

	var (
		member *model.User
		total  int
	)
	err = s.tx.WithTx(ctx, func(r core.Repos) error {
		groupID, err := r.Groups.FindGroupIDForUser(ctx, inviter.UserID)
		if err != nil {
			return fmt.Errorf("find inviter group: %w", err)
		}

		existing, err := r.Users.FindByEmail(ctx, req.Email)
		switch {
		case err == nil && !existing.IsDeleted:
			return emailExists()
		case err == nil:
			member, err = r.Users.Reactivate(ctx, existing.ID, model.UserUpdate{
				Name:        &req.Name,
				RoleID:      &req.RoleID,
				CompanyName: &inviter.CompanyName,
			})
			if err != nil {
				return fmt.Errorf("reactivate user: %w", err)
			}
			if err := r.Groups.ReactivateMember(ctx, member.ID, groupID); err != nil {
				return fmt.Errorf("reactivate membership: %w", err)
			}
		case apperrors.IsNotFound(err):
			member, err = r.Users.Create(ctx, model.CreateUserParams{
				Email:       req.Email,
				Name:        &req.Name,
				CompanyName: inviter.CompanyName,
				RoleID:      req.RoleID,
			})
			if err != nil {
				return fmt.Errorf("create user: %w", err)
			}
			if err := r.Groups.AddMember(ctx, member.ID, groupID); err != nil {
				return fmt.Errorf("add membership: %w", err)
			}
		default:
			return fmt.Errorf("find user: %w", err)
		}

		total, err = r.Users.CountByGroup(ctx, groupID)
		if err != nil {
			return fmt.Errorf("count members: %w", err)
		}
		return nil
	})
	if err != nil {
		if apperrors.IsConflict(err) {
			s.observe.record(EventInvite, resultFailure)
			return nil, err
		}
		s.observe.record(EventInvite, resultError)
		return nil, fmt.Errorf("invite user: %w", err)
	}

	if err := sendInvitation(ctx, s.codec, s.mail, s.links, member, inviter.CompanyName, role); err != nil {
		s.observe.record(EventInvite, resultError)
		return nil, fmt.Errorf("invite user: %w", err)
	}
	s.observe.record(EventInvite, resultSuccess)
	s.logger.InfoContext(ctx, "user invited", "user_id", member.ID, "invited_by", inviter.UserID)
	return &InviteResult{Member: member.Summarize(), Total: total}, nil
}

func (s *CredentialService) confirm(ctx context.Context, flow domainauth.PasswordFlow, token string) string {
	purpose, err := flow.PurposeAt(domainauth.StageConfirmed)
	if err != nil {
		s.logger.ErrorContext(ctx, "password flow misconfigured", "flow", flow.Name, "error", err)
		return s.links.ErrorRedirect()
	}
	claims, err := s.codec.Verify(purpose, token)
	if err != nil {
		s.logger.InfoContext(ctx, "emailed token rejected", "flow", flow.Name, "error", err)
		return s.links.ErrorRedirect()
	}
	formToken, err := s.codec.Issue(flow.Form, claims.Payload())
	if err != nil {
		s.logger.ErrorContext(ctx, "issue form token failed", "flow", flow.Name, "error", err)
		return s.links.ErrorRedirect()
	}
	return s.links.client(flow.ClientPath + formToken)
}

func (s *CredentialService) complete(ctx context.Context, flow domainauth.PasswordFlow, token string, pair model.PasswordPair) error {
	event := EventPasswordReset
	if flow.MarksVerified {
		event = EventInvite
	}
	if err := pair.Validate(); err != nil {
		return err
	}
	if !pair.Matches() {
		s.observe.record(event, resultFailure)
		return apperrors.PasswordMismatch(MsgPasswordMismatch)
	}

	purpose, err := flow.PurposeAt(domainauth.StageCompleted)
	if err != nil {
		return fmt.Errorf("%s: %w", flow.Name, err)
	}
	claims, err := s.codec.Verify(purpose, token)
	if err != nil {
		s.observe.record(event, resultFailure)
		return apperrors.Wrap(err, apperrors.ErrCodeSessionExpired, MsgSessionExpired)
	}

	u, err := s.users.FindByID(ctx, claims.Subject)
	if err != nil {
		if apperrors.IsNotFound(err) {
			s.observe.record(event, resultFailure)
			return apperrors.NotFound(MsgUserNotFound)
		}
		s.observe.record(event, resultError)
		return fmt.Errorf("%s: find user: %w", flow.Name, err)
	}
	if u.IsDeleted {
		s.observe.record(event, resultFailure)
		return apperrors.NotFound(MsgUserNotFound)
	}

	hash, err := s.hasher.Hash(pair.Password)
	if err != nil {
		s.observe.record(event, resultError)
		return fmt.Errorf("%s: hash password: %w", flow.Name, err)
	}
	upd := model.UserUpdate{PasswordHash: &hash}
	if flow.MarksVerified {
		verified := true
		upd.IsVerified = &verified
	}
	if _, err := s.users.Update(ctx, u.ID, upd); err != nil {
		s.observe.record(event, resultError)
		return fmt.Errorf("%s: update password: %w", flow.Name, err)
	}

	// A new password ends any session opened with the old one.
	if err := s.sessions.DeleteRefreshToken(ctx, u.ID); err != nil {
		s.logger.WarnContext(ctx, "drop refresh session after password change failed", "user_id", u.ID, "error", err)
	}
	s.observe.record(event, resultSuccess)
	s.logger.InfoContext(ctx, "password flow completed", "flow", flow.Name, "user_id", u.ID)
	return nil
}

// activeUser re-reads the caller so deleted accounts lose refresh rights at once.
func (s *CredentialService) activeUser(ctx context.Context, userID string) (*model.User, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.AccessDenied(MsgAccessDenied)
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if u.IsDeleted {
		return nil, apperrors.AccessDenied(MsgAccessDenied)
	}
	return u, nil
}

func (s *CredentialService) openSession(ctx context.Context, u *model.User) (*SessionResult, error) {
	payload, err := sessionPayload(u)
	if err != nil {
		return nil, err
	}
	access, err := s.codec.Issue(domainauth.PurposeAccess, payload)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}
	refresh, err := s.codec.Issue(domainauth.PurposeRefresh, payload)
	if err != nil {
		return nil, fmt.Errorf("issue refresh token: %w", err)
	}
	ttl := s.codec.TTL(domainauth.PurposeRefresh)
	if err := s.sessions.PutRefreshToken(ctx, u.ID, refresh, ttl); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}
	return &SessionResult{
		AccessToken:  access,
		RefreshToken: refresh,
		RefreshTTL:   ttl,
		Profile:      s.profiler.profile(ctx, u),
	}, nil
}

// sessionPayload refuses users whose stored role is not a known role, so no
// session token is minted without a role claim.
func sessionPayload(u *model.User) (domainauth.TokenPayload, error) {
	role, err := u.Role()
	if err != nil {
		return domainauth.TokenPayload{}, fmt.Errorf("user %s: %w", u.ID, err)
	}
	return domainauth.TokenPayload{Subject: u.ID, Name: u.CompanyName, Role: role}, nil
}

func emailExists() error {
	return &apperrors.AppError{Code: apperrors.ErrCodeConflict, Message: MsgEmailExists, Field: "email"}
}

// sendInvitation mints an invite token for u and mails the acceptance link.
func sendInvitation(ctx context.Context, codec ports.TokenCodec, m mailer, links Links, u *model.User, company string, role domainauth.Role) error {
	tok, err := codec.Issue(domainauth.InviteFlow.Emailed, domainauth.TokenPayload{
		Subject: u.ID,
		Name:    company,
		Role:    role,
	})
	if err != nil {
		return fmt.Errorf("issue invite token: %w", err)
	}
	m.send(ctx, u.Email, subjectInvitation, invitationBody(company, links.api("invitation", tok)))
	return nil
}
