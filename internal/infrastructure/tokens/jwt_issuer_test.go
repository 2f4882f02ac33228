//go:build unit
// +build unit

package tokens

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/campuscred/campuscred/internal/domain/auth"
	"github.com/campuscred/campuscred/internal/domain/profiles"
	"github.com/campuscred/campuscred/internal/pkg/apperr"
	"github.com/campuscred/campuscred/internal/pkg/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIssuer(t *testing.T) *jwtIssuer {
	t.Helper()

	issuer, err := NewJWTIssuer(&config.AuthSettings{
		JWTSecret: strings.Repeat("s", 32),
		Issuer:    "campuscred-test",
	})
	require.NoError(t, err)
	return issuer.(*jwtIssuer)
}

func testProfile() *profiles.Profile {
	return &profiles.Profile{
		ID:    uuid.NewString(),
		Email: "ada@campus.edu",
		Role:  profiles.RoleStudent,
	}
}

func TestNewJWTIssuer_ShortSecret(t *testing.T) {
	_, err := NewJWTIssuer(&config.AuthSettings{JWTSecret: "short", Issuer: "x"})
	assert.Error(t, err)
}

func TestJWTIssuer_IssueAndParse(t *testing.T) {
	issuer := newTestIssuer(t)
	profile := testProfile()

	token, issued, err := issuer.Issue(profile, auth.PurposeAccess, time.Hour)
	require.NoError(t, err)
	assert.NotEmpty(t, issued.TokenID)

	identity, err := issuer.Parse(token, auth.PurposeAccess)
	require.NoError(t, err)
	assert.Equal(t, profile.ID, identity.ProfileID)
	assert.Equal(t, profile.Email, identity.Email)
	assert.Equal(t, profiles.RoleStudent, identity.Role)
	assert.Equal(t, issued.TokenID, identity.TokenID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), identity.ExpiresAt, 5*time.Second)
}

func TestJWTIssuer_WrongPurpose(t *testing.T) {
	issuer := newTestIssuer(t)

	token, _, err := issuer.Issue(testProfile(), auth.PurposeReset, time.Hour)
	require.NoError(t, err)

	_, err = issuer.Parse(token, auth.PurposeAccess)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrUnauthorized))
}

func TestJWTIssuer_Expired(t *testing.T) {
	issuer := newTestIssuer(t)
	issuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, _, err := issuer.Issue(testProfile(), auth.PurposeAccess, time.Hour)
	require.NoError(t, err)

	issuer.now = time.Now
	_, err = issuer.Parse(token, auth.PurposeAccess)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrUnauthorized))
	assert.Contains(t, err.Error(), "expired")
}

func TestJWTIssuer_ForeignSecretAndAlgorithm(t *testing.T) {
	issuer := newTestIssuer(t)

	other, err := NewJWTIssuer(&config.AuthSettings{JWTSecret: strings.Repeat("o", 32), Issuer: "campuscred-test"})
	require.NoError(t, err)
	token, _, err := other.Issue(testProfile(), auth.PurposeAccess, time.Hour)
	require.NoError(t, err)

	_, err = issuer.Parse(token, auth.PurposeAccess)
	assert.True(t, errors.Is(err, apperr.ErrUnauthorized))

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		Purpose: auth.PurposeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   uuid.NewString(),
			Issuer:    "campuscred-test",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = issuer.Parse(unsigned, auth.PurposeAccess)
	assert.True(t, errors.Is(err, apperr.ErrUnauthorized))
}

func TestJWTIssuer_Garbage(t *testing.T) {
	_, err := newTestIssuer(t).Parse("not-a-token", auth.PurposeAccess)
	assert.True(t, errors.Is(err, apperr.ErrUnauthorized))
}
