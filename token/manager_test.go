package token

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coursia/authkit/account"
)

var testSecret = []byte("unit-test-secret-key")

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(Config{
		TTL:    24 * time.Hour,
		Secret: testSecret,
		Issuer: "authkit-test",
	})
	require.NoError(t, err)
	return m
}

func TestNewManagerRejectsBadConfig(t *testing.T) {
	_, err := NewManager(Config{TTL: 0, Secret: testSecret})
	assert.Error(t, err)

	_, err = NewManager(Config{TTL: time.Hour})
	assert.Error(t, err)
}

func TestIssueValidateRoundTrip(t *testing.T) {
	m := newTestManager(t)
	u := account.NewUser("Ana", "ana@x.com", account.RoleCreator, account.ProviderEmail)

	tok, err := m.Issue(u)
	require.NoError(t, err)
	assert.Len(t, strings.Split(tok, "."), 3)
	assert.True(t, m.Validate(tok))

	claims, err := m.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.Subject)
	assert.Equal(t, u.Email, claims.Email)
	assert.Equal(t, string(account.RoleCreator), claims.Role)
	assert.True(t, claims.ExpiresAt.After(time.Now()))
}

func TestValidateIsTotalOverArbitraryStrings(t *testing.T) {
	m := newTestManager(t)

	inputs := []string{
		"",
		".",
		"..",
		"...",
		"a.b",
		"a.b.c",
		"a.b.c.d",
		"not a token at all",
		"....",
		"\x00\xff.garbage.\x7f",
		strings.Repeat(".", 100),
		strings.Repeat("A", 4096),
	}
	for _, in := range inputs {
		assert.False(t, m.Validate(in), "input %q must fail closed", in)
	}
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	m := newTestManager(t)

	// Signed with the right key but an expiry just in the past.
	claims := Claims{
		Email: "ana@x.com",
		Role:  "student",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Millisecond)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			Issuer:    "authkit-test",
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	require.NoError(t, err)

	assert.False(t, m.Validate(tok))
}

func TestValidateRejectsForeignSignature(t *testing.T) {
	m := newTestManager(t)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			Issuer:    "authkit-test",
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("some-other-key"))
	require.NoError(t, err)

	assert.False(t, m.Validate(tok))
}

func TestValidateRejectsUnsignedAlgorithm(t *testing.T) {
	m := newTestManager(t)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	assert.False(t, m.Validate(tok))
}
