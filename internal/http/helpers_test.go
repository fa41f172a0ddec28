package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Asad13/ad-campaign-builder-backend/internal/adapters/jwt"
	domainauth "github.com/Asad13/ad-campaign-builder-backend/internal/domain/auth"
	"github.com/Asad13/ad-campaign-builder-backend/internal/domain/model"
	authfake "github.com/Asad13/ad-campaign-builder-backend/internal/mocks/auth"
	"github.com/Asad13/ad-campaign-builder-backend/internal/service"
	"github.com/Asad13/ad-campaign-builder-backend/internal/testutil"
)

var errNotImplemented = errors.New("not implemented")

// envelopeBody mirrors Envelope with the data left raw for per-test decoding.
type envelopeBody struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelopeBody {
	t.Helper()
	var env envelopeBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), "body: %s", rec.Body.String())
	return env
}

func decodeData(t *testing.T, env envelopeBody, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, dst), "data: %s", env.Data)
}

// gateFixture wires the real codec and an in-memory session store to a fake clock.
type gateFixture struct {
	clock    *authfake.Clock
	codec    *jwt.Codec
	sessions *authfake.MemorySessionStore
}

func newGateFixture() *gateFixture {
	clk := authfake.NewClock(testutil.TestTime())
	store := authfake.NewMemorySessionStore()
	store.Now = clk.Now
	return &gateFixture{clock: clk, codec: authfake.NewTestCodec(clk.Now), sessions: store}
}

func (f *gateFixture) deps() GateDeps {
	return GateDeps{Codec: f.codec, Sessions: f.sessions}
}

func (f *gateFixture) issue(t *testing.T, purpose domainauth.Purpose, userID string, role domainauth.Role) string {
	t.Helper()
	tok, err := f.codec.Issue(purpose, domainauth.TokenPayload{Subject: userID, Name: "Acme", Role: role})
	require.NoError(t, err)
	return tok
}

// login stores a refresh token the way a successful login does and returns both tokens.
func (f *gateFixture) login(t *testing.T, userID string, role domainauth.Role) (string, string) {
	t.Helper()
	access := f.issue(t, domainauth.PurposeAccess, userID, role)
	refresh := f.issue(t, domainauth.PurposeRefresh, userID, role)
	require.NoError(t, f.sessions.PutRefreshToken(context.Background(), userID, refresh, f.codec.TTL(domainauth.PurposeRefresh)))
	return access, refresh
}

func bearer(req *http.Request, token string) *http.Request {
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func withRefreshCookie(req *http.Request, token string) *http.Request {
	req.AddCookie(&http.Cookie{Name: RefreshCookieName, Value: token})
	return req
}

// principalEcho answers 200 with the principal the gates attached.
func principalEcho(w http.ResponseWriter, r *http.Request) {
	p, ok := PrincipalFrom(r.Context())
	if !ok {
		WriteJSON(w, http.StatusTeapot, Envelope{Message: "no principal"})
		return
	}
	Respond(w, http.StatusOK, "ok", map[string]string{
		"user_id": p.UserID, "company": p.CompanyName, "role": string(p.Role), "token": p.Token,
		"expires_at": p.ExpiresAt.UTC().Format(time.RFC3339),
	})
}

// stubCredentials is a CredentialAPI test double; unset funcs fail loudly.
type stubCredentials struct {
	signup        func(ctx context.Context, req model.SignupRequest) error
	verifyEmail   func(ctx context.Context, token string) string
	login         func(ctx context.Context, req model.LoginRequest) (*service.SessionResult, error)
	rotate        func(ctx context.Context, p domainauth.Principal) (*service.SessionResult, error)
	refreshAccess func(ctx context.Context, p domainauth.Principal) (*service.SessionResult, error)
	logout        func(ctx context.Context, p domainauth.Principal) error
	forgot        func(ctx context.Context, req model.ForgotPasswordRequest) error
	confirmForgot func(ctx context.Context, token string) string
	reset         func(ctx context.Context, token string, pair model.PasswordPair) error
	confirmInvite func(ctx context.Context, token string) string
	setPassword   func(ctx context.Context, token string, pair model.PasswordPair) error
	invite        func(ctx context.Context, p domainauth.Principal, req model.InviteRequest) (*service.InviteResult, error)
}

var _ CredentialAPI = (*stubCredentials)(nil)

func (s *stubCredentials) Signup(ctx context.Context, req model.SignupRequest) error {
	if s.signup == nil {
		return errNotImplemented
	}
	return s.signup(ctx, req)
}

func (s *stubCredentials) VerifyEmail(ctx context.Context, token string) string {
	if s.verifyEmail == nil {
		return ""
	}
	return s.verifyEmail(ctx, token)
}

func (s *stubCredentials) Login(ctx context.Context, req model.LoginRequest) (*service.SessionResult, error) {
	if s.login == nil {
		return nil, errNotImplemented
	}
	return s.login(ctx, req)
}

func (s *stubCredentials) Rotate(ctx context.Context, p domainauth.Principal) (*service.SessionResult, error) {
	if s.rotate == nil {
		return nil, errNotImplemented
	}
	return s.rotate(ctx, p)
}

func (s *stubCredentials) RefreshAccess(ctx context.Context, p domainauth.Principal) (*service.SessionResult, error) {
	if s.refreshAccess == nil {
		return nil, errNotImplemented
	}
	return s.refreshAccess(ctx, p)
}

func (s *stubCredentials) Logout(ctx context.Context, p domainauth.Principal) error {
	if s.logout == nil {
		return errNotImplemented
	}
	return s.logout(ctx, p)
}

func (s *stubCredentials) ForgotPassword(ctx context.Context, req model.ForgotPasswordRequest) error {
	if s.forgot == nil {
		return errNotImplemented
	}
	return s.forgot(ctx, req)
}

func (s *stubCredentials) ConfirmForgotPassword(ctx context.Context, token string) string {
	if s.confirmForgot == nil {
		return ""
	}
	return s.confirmForgot(ctx, token)
}

func (s *stubCredentials) ResetPassword(ctx context.Context, token string, pair model.PasswordPair) error {
	if s.reset == nil {
		return errNotImplemented
	}
	return s.reset(ctx, token, pair)
}

func (s *stubCredentials) ConfirmInvite(ctx context.Context, token string) string {
	if s.confirmInvite == nil {
		return ""
	}
	return s.confirmInvite(ctx, token)
}

func (s *stubCredentials) SetPassword(ctx context.Context, token string, pair model.PasswordPair) error {
	if s.setPassword == nil {
		return errNotImplemented
	}
	return s.setPassword(ctx, token, pair)
}

func (s *stubCredentials) InviteUser(
	ctx context.Context,
	p domainauth.Principal,
	req model.InviteRequest,
) (*service.InviteResult, error) {
	if s.invite == nil {
		return nil, errNotImplemented
	}
	return s.invite(ctx, p, req)
}

// stubUsers is a UserAPI test double; unset funcs fail loudly.
type stubUsers struct {
	list           func(ctx context.Context, p domainauth.Principal, page int) (*model.MemberPage, error)
	roles          func(ctx context.Context) ([]model.RoleInfo, error)
	get            func(ctx context.Context, p domainauth.Principal, userID string) (*model.Profile, error)
	updateProfile  func(ctx context.Context, p domainauth.Principal, req model.ProfileUpdate) (*model.Profile, error)
	changePassword func(ctx context.Context, p domainauth.Principal, req model.ChangePasswordRequest) error
	updateRole     func(ctx context.Context, p domainauth.Principal, userID string, req model.UpdateRoleRequest) (*model.MemberSummary, error)
	deleteMember   func(ctx context.Context, p domainauth.Principal, userID string) (int, error)
	resend         func(ctx context.Context, p domainauth.Principal, req model.ResendInviteRequest) error
}

var _ UserAPI = (*stubUsers)(nil)

func (s *stubUsers) ListMembers(ctx context.Context, p domainauth.Principal, page int) (*model.MemberPage, error) {
	if s.list == nil {
		return nil, errNotImplemented
	}
	return s.list(ctx, p, page)
}

func (s *stubUsers) ListRoles(ctx context.Context) ([]model.RoleInfo, error) {
	if s.roles == nil {
		return nil, errNotImplemented
	}
	return s.roles(ctx)
}

func (s *stubUsers) GetProfile(ctx context.Context, p domainauth.Principal, userID string) (*model.Profile, error) {
	if s.get == nil {
		return nil, errNotImplemented
	}
	return s.get(ctx, p, userID)
}

func (s *stubUsers) UpdateProfile(
	ctx context.Context,
	p domainauth.Principal,
	req model.ProfileUpdate,
) (*model.Profile, error) {
	if s.updateProfile == nil {
		return nil, errNotImplemented
	}
	return s.updateProfile(ctx, p, req)
}

func (s *stubUsers) ChangePassword(ctx context.Context, p domainauth.Principal, req model.ChangePasswordRequest) error {
	if s.changePassword == nil {
		return errNotImplemented
	}
	return s.changePassword(ctx, p, req)
}

func (s *stubUsers) UpdateRole(
	ctx context.Context,
	p domainauth.Principal,
	userID string,
	req model.UpdateRoleRequest,
) (*model.MemberSummary, error) {
	if s.updateRole == nil {
		return nil, errNotImplemented
	}
	return s.updateRole(ctx, p, userID, req)
}

func (s *stubUsers) DeleteMember(ctx context.Context, p domainauth.Principal, userID string) (int, error) {
	if s.deleteMember == nil {
		return 0, errNotImplemented
	}
	return s.deleteMember(ctx, p, userID)
}

func (s *stubUsers) ResendInvite(ctx context.Context, p domainauth.Principal, req model.ResendInviteRequest) error {
	if s.resend == nil {
		return errNotImplemented
	}
	return s.resend(ctx, p, req)
}

// sessionFor builds the service result returned by login and refresh stubs.
func sessionFor(userID string) *service.SessionResult {
	return &service.SessionResult{
		AccessToken:  "access-" + userID,
		RefreshToken: "refresh-" + userID,
		RefreshTTL:   7 * 24 * time.Hour,
		Profile:      model.Profile{ID: userID, Email: userID + "@example.com", Role: "admin"},
	}
}
