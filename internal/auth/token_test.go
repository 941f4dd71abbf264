package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/job-portal/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	t.Parallel()
	tm := NewTokenManager("secret", 30)

	raw, issued, err := tm.GenerateToken("user-1", domain.RoleEmployer)
	require.NoError(t, err)
	assert.NotEmpty(t, issued.ID)
	assert.Equal(t, 30*time.Minute, issued.ExpiresAt.Sub(issued.IssuedAt))

	claims, err := tm.ParseToken(raw)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, domain.RoleEmployer, claims.Role)
	parsed := claims.Token()
	assert.Equal(t, issued.ID, parsed.ID)
	assert.True(t, issued.ExpiresAt.Equal(parsed.ExpiresAt))
}

func TestTokensAreUnique(t *testing.T) {
	t.Parallel()
	tm := NewTokenManager("secret", 30)
	_, first, err := tm.GenerateToken("user-1", domain.RoleJobSeeker)
	require.NoError(t, err)
	_, second, err := tm.GenerateToken("user-1", domain.RoleJobSeeker)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestParseTokenRejects(t *testing.T) {
	t.Parallel()
	tm := NewTokenManager("secret", 30)
	valid, _, err := tm.GenerateToken("user-1", domain.RoleJobSeeker)
	require.NoError(t, err)

	expiring := NewTokenManager("secret", 1)
	expiring.now = func() time.Time { return time.Now().Add(-2 * time.Minute) }
	expired, _, err := expiring.GenerateToken("user-1", domain.RoleJobSeeker)
	require.NoError(t, err)

	noRole := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{UserID: "user-1", Role: "admin"})
	badRole, err := noRole.SignedString([]byte("secret"))
	require.NoError(t, err)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: "user-1", Role: domain.RoleJobSeeker})
	none, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	cases := map[string]struct {
		manager *TokenManager
		token   string
	}{
		"wrong secret": {manager: NewTokenManager("other", 30), token: valid},
		"expired":      {manager: tm, token: expired},
		"unknown role": {manager: tm, token: badRole},
		"alg none":     {manager: tm, token: none},
		"garbage":      {manager: tm, token: "not-a-jwt"},
	}
	for name, tc := range cases {
		_, err := tc.manager.ParseToken(tc.token)
		assert.Error(t, err, name)
	}
}

func TestPasswordHashing(t *testing.T) {
	t.Parallel()
	hash, err := HashPassword("correct horse", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)
	assert.NoError(t, ComparePassword(hash, "correct horse"))
	assert.ErrorIs(t, ComparePassword(hash, "battery staple"), ErrPasswordMismatch)

	err = ComparePassword("not-a-hash", "correct horse")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrPasswordMismatch)
}

func TestNeedsRehash(t *testing.T) {
	t.Parallel()
	hash, err := HashPassword("correct horse", bcrypt.MinCost)
	require.NoError(t, err)

	assert.False(t, NeedsRehash(hash, bcrypt.MinCost))
	assert.True(t, NeedsRehash(hash, bcrypt.MinCost+1))
	assert.True(t, NeedsRehash(hash, 0), "out of range costs mean the default cost")
	assert.False(t, NeedsRehash("not-a-hash", bcrypt.MinCost))
}
