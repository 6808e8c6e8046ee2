package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() *TokenManager {
	return NewTokenManager("access-secret", "refresh-secret", 15*time.Minute, 7*24*time.Hour)
}

func TestIssuePairAndVerify(t *testing.T) {
	tm := newTestManager()

	pair, err := tm.IssuePair("64f1b2c3d4e5f6a7b8c9d0e1", "developer")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, int64((15 * time.Minute).Seconds()), pair.ExpiresIn)

	principal, err := tm.VerifyAccess(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "64f1b2c3d4e5f6a7b8c9d0e1", principal.UserID)
	assert.Equal(t, "developer", principal.Role)

	principal, err = tm.VerifyRefresh(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "developer", principal.Role)
}

func TestRefreshTokenDoesNotVerifyAsAccess(t *testing.T) {
	tm := newTestManager()

	pair, err := tm.IssuePair("64f1b2c3d4e5f6a7b8c9d0e1", "employer")
	require.NoError(t, err)

	_, err = tm.VerifyAccess(pair.RefreshToken)
	assert.Error(t, err)

	_, err = tm.VerifyRefresh(pair.AccessToken)
	assert.Error(t, err)
}

func TestExpiredTokenRejected(t *testing.T) {
	tm := NewTokenManager("access-secret", "refresh-secret", -time.Minute, -time.Minute)

	pair, err := tm.IssuePair("64f1b2c3d4e5f6a7b8c9d0e1", "developer")
	require.NoError(t, err)

	_, err = tm.VerifyAccess(pair.AccessToken)
	assert.Error(t, err)
}

func TestWrongSecretRejected(t *testing.T) {
	tm := newTestManager()
	other := NewTokenManager("another-secret", "another-refresh", 15*time.Minute, time.Hour)

	pair, err := tm.IssuePair("64f1b2c3d4e5f6a7b8c9d0e1", "developer")
	require.NoError(t, err)

	_, err = other.VerifyAccess(pair.AccessToken)
	assert.Error(t, err)
}

func TestSignRequiresIdentity(t *testing.T) {
	tm := newTestManager()

	_, err := tm.IssuePair("", "developer")
	assert.Error(t, err)

	_, err = tm.IssuePair("64f1b2c3d4e5f6a7b8c9d0e1", "")
	assert.Error(t, err)
}
