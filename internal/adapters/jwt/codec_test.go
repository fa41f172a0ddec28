package jwt

import (
	"fmt"
	"strings"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/Asad13/ad-campaign-builder-backend/internal/domain/auth"
)

func testKeys() map[domainauth.Purpose]Key {
	keys := make(map[domainauth.Purpose]Key)
	for i, p := range domainauth.Purposes() {
		keys[p] = Key{
			Secret: []byte(fmt.Sprintf("secret-for-%s-%02d", p, i)),
			TTL:    time.Duration(i+1) * time.Minute,
		}
	}
	return keys
}

type clock struct{ t time.Time }

func (c *clock) Now() time.Time { return c.t }

func newTestCodec(t *testing.T) (*Codec, *clock) {
	t.Helper()
	clk := &clock{t: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}
	c, err := NewCodec(Options{Keys: testKeys(), Now: clk.Now})
	require.NoError(t, err)
	return c, clk
}

func TestNewCodec_RejectsBadKeySets(t *testing.T) {
	t.Run("missing purpose", func(t *testing.T) {
		keys := testKeys()
		delete(keys, domainauth.PurposeInvite)
		_, err := NewCodec(Options{Keys: keys})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invite")
	})

	t.Run("shared secret", func(t *testing.T) {
		keys := testKeys()
		k := keys[domainauth.PurposeRefresh]
		k.Secret = keys[domainauth.PurposeAccess].Secret
		keys[domainauth.PurposeRefresh] = k
		_, err := NewCodec(Options{Keys: keys})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "share a secret")
	})

	t.Run("short secret", func(t *testing.T) {
		keys := testKeys()
		keys[domainauth.PurposeAccess] = Key{Secret: []byte("short"), TTL: time.Minute}
		_, err := NewCodec(Options{Keys: keys})
		require.Error(t, err)
	})

	t.Run("zero ttl", func(t *testing.T) {
		keys := testKeys()
		keys[domainauth.PurposeAccess] = Key{Secret: keys[domainauth.PurposeAccess].Secret}
		_, err := NewCodec(Options{Keys: keys})
		require.Error(t, err)
	})
}

func TestCodec_IssueVerifyRoundTrip(t *testing.T) {
	c, clk := newTestCodec(t)
	payload := domainauth.TokenPayload{Subject: "u1", Name: "Acme", Role: domainauth.RoleAdmin}

	tok, err := c.Issue(domainauth.PurposeAccess, payload)
	require.NoError(t, err)

	claims, err := c.Verify(domainauth.PurposeAccess, tok)
	require.NoError(t, err)
	assert.Equal(t, payload, claims.Payload())
	assert.Equal(t, clk.t.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, clk.t.Add(c.TTL(domainauth.PurposeAccess)).Unix(), claims.ExpiresAt.Unix())
	assert.NotEmpty(t, claims.ID)
}

func TestCodec_RoleOnlyForRolePurposes(t *testing.T) {
	c, _ := newTestCodec(t)
	payload := domainauth.TokenPayload{Subject: "u1", Name: "Acme", Role: domainauth.RoleCreator}

	for _, p := range domainauth.Purposes() {
		tok, err := c.Issue(p, payload)
		require.NoError(t, err)
		claims, err := c.Verify(p, tok)
		require.NoError(t, err, p)
		if p.CarriesRole() {
			assert.Equal(t, domainauth.RoleCreator, claims.Role, p)
		} else {
			assert.Empty(t, claims.Role, p)
		}
	}
}

func TestCodec_CrossPurposeNeverVerifies(t *testing.T) {
	c, _ := newTestCodec(t)
	payload := domainauth.TokenPayload{Subject: "u1", Name: "Acme", Role: domainauth.RoleAdmin}

	for _, issued := range domainauth.Purposes() {
		tok, err := c.Issue(issued, payload)
		require.NoError(t, err)
		for _, checked := range domainauth.Purposes() {
			if issued == checked {
				continue
			}
			_, err := c.Verify(checked, tok)
			assert.ErrorIs(t, err, domainauth.ErrInvalidSignature, "%s token verified as %s", issued, checked)
		}
	}
}

func TestCodec_Expired(t *testing.T) {
	c, clk := newTestCodec(t)
	tok, err := c.Issue(domainauth.PurposeRefresh, domainauth.TokenPayload{Subject: "u1"})
	require.NoError(t, err)

	clk.t = clk.t.Add(c.TTL(domainauth.PurposeRefresh) + time.Second)
	_, err = c.Verify(domainauth.PurposeRefresh, tok)
	assert.ErrorIs(t, err, domainauth.ErrTokenExpired)
	assert.NotErrorIs(t, err, domainauth.ErrInvalidSignature)
}

func TestCodec_TokensAreUnique(t *testing.T) {
	c, _ := newTestCodec(t)
	payload := domainauth.TokenPayload{Subject: "u1", Name: "Acme", Role: domainauth.RoleAdmin}

	a, err := c.Issue(domainauth.PurposeRefresh, payload)
	require.NoError(t, err)
	b, err := c.Issue(domainauth.PurposeRefresh, payload)
	require.NoError(t, err)
	assert.NotEqual(t, a, b, "tokens minted in the same second must differ")
}

func TestCodec_RejectsTamperingAndOtherAlgorithms(t *testing.T) {
	c, clk := newTestCodec(t)
	tok, err := c.Issue(domainauth.PurposeAccess, domainauth.TokenPayload{Subject: "u1"})
	require.NoError(t, err)

	parts := strings.Split(tok, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + parts[1] + "x." + parts[2]
	_, err = c.Verify(domainauth.PurposeAccess, tampered)
	assert.ErrorIs(t, err, domainauth.ErrInvalidSignature)

	_, err = c.Verify(domainauth.PurposeAccess, "not-a-token")
	assert.ErrorIs(t, err, domainauth.ErrInvalidSignature)

	claims := domainauth.Claims{RegisteredClaims: gojwt.RegisteredClaims{
		Subject:   "u1",
		ExpiresAt: gojwt.NewNumericDate(clk.t.Add(time.Hour)),
	}}
	none, err := gojwt.NewWithClaims(gojwt.SigningMethodNone, claims).SignedString(gojwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = c.Verify(domainauth.PurposeAccess, none)
	assert.ErrorIs(t, err, domainauth.ErrInvalidSignature)

	hs512, err := gojwt.NewWithClaims(gojwt.SigningMethodHS512, claims).
		SignedString(testKeys()[domainauth.PurposeAccess].Secret)
	require.NoError(t, err)
	_, err = c.Verify(domainauth.PurposeAccess, hs512)
	assert.ErrorIs(t, err, domainauth.ErrInvalidSignature)
}

func TestCodec_IssueRequiresSubject(t *testing.T) {
	c, _ := newTestCodec(t)
	_, err := c.Issue(domainauth.PurposeAccess, domainauth.TokenPayload{})
	assert.Error(t, err)
	_, err = c.Issue(domainauth.Purpose("bogus"), domainauth.TokenPayload{Subject: "u1"})
	assert.Error(t, err)
}
