package jwt_test

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hiro-mackay/tripshare/pkg/jwt"
)

const secret = "0123456789abcdef0123456789abcdef"

func newVerifier(t *testing.T, mutate func(*jwt.Config)) *jwt.Verifier {
	t.Helper()
	cfg := jwt.DefaultConfig()
	cfg.SecretKey = secret
	cfg.Issuer = "https://idp.example"
	cfg.Audience = []string{"tripshare"}
	if mutate != nil {
		mutate(&cfg)
	}
	v, err := jwt.NewVerifier(cfg)
	require.NoError(t, err)
	return v
}

func TestNewVerifier_ShortSecret_Fails(t *testing.T) {
	_, err := jwt.NewVerifier(jwt.Config{SecretKey: "short"})
	assert.ErrorIs(t, err, jwt.ErrSecretKeyTooShort)
}

func TestVerifier_IssueThenVerify_ReturnsClaims(t *testing.T) {
	v := newVerifier(t, nil)

	token, err := v.Issue(jwt.Identity{UserID: "user-1", Name: "Aki", Email: "aki@example.com", Picture: "https://img/1"})
	require.NoError(t, err)

	claims, err := v.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID())
	assert.Equal(t, "Aki", claims.Name)
	assert.Equal(t, "aki@example.com", claims.Email)
	assert.Equal(t, "https://img/1", claims.Picture)
}

func TestVerifier_Verify_Expired(t *testing.T) {
	v := newVerifier(t, func(c *jwt.Config) { c.Leeway = 0 })
	claims := jwt.IdentityClaims{RegisteredClaims: gojwt.RegisteredClaims{
		Subject:   "user-1",
		Issuer:    "https://idp.example",
		Audience:  gojwt.ClaimStrings{"tripshare"},
		ExpiresAt: gojwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}}
	token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	_, err = v.Verify(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestVerifier_Verify_WrongAudience(t *testing.T) {
	issuer := newVerifier(t, func(c *jwt.Config) { c.Audience = []string{"other"} })
	v := newVerifier(t, nil)

	token, err := issuer.Issue(jwt.Identity{UserID: "user-1"})
	require.NoError(t, err)

	_, err = v.Verify(token)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}

func TestVerifier_Verify_WrongKey(t *testing.T) {
	other := newVerifier(t, func(c *jwt.Config) { c.SecretKey = "ffffffffffffffffffffffffffffffff" })
	v := newVerifier(t, nil)

	token, err := other.Issue(jwt.Identity{UserID: "user-1"})
	require.NoError(t, err)

	_, err = v.Verify(token)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}

func TestVerifier_Verify_MissingSubject(t *testing.T) {
	v := newVerifier(t, nil)

	token, err := v.Issue(jwt.Identity{})
	require.NoError(t, err)

	_, err = v.Verify(token)
	assert.ErrorIs(t, err, jwt.ErrMissingSubject)
}
