package model

import (
	"testing"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/Asad13/ad-campaign-builder-backend/internal/domain/auth"
)

func TestSignupRequest_Validate(t *testing.T) {
	req := SignupRequest{CompanyName: "  Acme ", Email: " A@X.com ", Password: "pw12345678"}
	req.Normalize()
	assert.Equal(t, "Acme", req.CompanyName)
	assert.Equal(t, "a@x.com", req.Email)
	require.NoError(t, req.Validate())

	bad := SignupRequest{Email: "not-an-email", Password: "short"}
	err := bad.Validate()
	require.Error(t, err)
	var verrs validation.Errors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs, "company_name")
	assert.Contains(t, verrs, "email")
	assert.Contains(t, verrs, "password")
}

func TestLoginRequest_Validate(t *testing.T) {
	assert.NoError(t, LoginRequest{Email: "a@x.com", Password: "pw12345678"}.Validate())
	assert.Error(t, LoginRequest{Email: "a@x.com", Password: "1234567"}.Validate())
	assert.Error(t, LoginRequest{Password: "pw12345678"}.Validate())
}

func TestPasswordPair(t *testing.T) {
	p := PasswordPair{Password: "pw12345678", ConfirmPassword: "pw12345679"}
	assert.NoError(t, p.Validate(), "length rules pass even when fields differ")
	assert.False(t, p.Matches())

	p.ConfirmPassword = p.Password
	assert.True(t, p.Matches())
}

func TestInviteRequest_Validate(t *testing.T) {
	req := InviteRequest{Name: " Bob ", Email: "B@Y.com", RoleID: domainauth.RoleIDCreator}
	req.Normalize()
	require.NoError(t, req.Validate())
	assert.Equal(t, "b@y.com", req.Email)

	req.RoleID = 9
	assert.Error(t, req.Validate())
}

func TestProfileUpdate_ToUserUpdate(t *testing.T) {
	cat, sub := 2, 11
	pu := ProfileUpdate{Name: "Ann", CompanyName: "Acme", CategoryID: &cat, SubcategoryID: &sub, ClearPicture: true}
	require.NoError(t, pu.Validate())

	upd := pu.ToUserUpdate()
	require.NotNil(t, upd.Name)
	assert.Equal(t, "Ann", *upd.Name)
	assert.Equal(t, "Acme", *upd.CompanyName)
	assert.Equal(t, &cat, upd.CategoryID)
	assert.True(t, upd.ClearProfilePic)
	assert.Nil(t, upd.Address)
	assert.False(t, upd.IsEmpty())
	assert.True(t, UserUpdate{}.IsEmpty())
}

func TestUser_SummarizeAndRole(t *testing.T) {
	name := "Bob"
	u := &User{ID: "u1", Email: "b@y.com", Name: &name, RoleID: domainauth.RoleIDCreator, IsVerified: true}
	assert.Equal(t, MemberSummary{ID: "u1", Name: "Bob", Email: "b@y.com", RoleID: 2, Status: true}, u.Summarize())

	role, err := u.Role()
	require.NoError(t, err)
	assert.Equal(t, domainauth.RoleCreator, role)

	u.Name = nil
	assert.Empty(t, u.DisplayName())
}

func TestUser_ToProfile(t *testing.T) {
	cat, sub := 4, 9
	addr := "1 Main St"
	u := &User{
		ID: "u1", Email: "a@x.com", CompanyName: "Acme", RoleID: domainauth.RoleIDAdmin,
		CategoryID: &cat, SubcategoryID: &sub, Address: &addr,
	}
	assert.Equal(t, Profile{
		ID: "u1", Role: "admin", Email: "a@x.com", CategoryID: "4", SubcategoryID: "9",
		ImageURL: "https://signed", CompanyName: "Acme", Address: "1 Main St",
	}, u.ToProfile("https://signed"))

	bare := (&User{ID: "u2", RoleID: 99}).ToProfile("")
	assert.Empty(t, bare.Role)
	assert.Empty(t, bare.CategoryID)
	assert.Empty(t, bare.Address)
}
