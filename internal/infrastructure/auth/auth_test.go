package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agentdesk/internal/config"
	"agentdesk/internal/domain/user"
	"agentdesk/internal/utils/platformerrors"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:      "test-secret-at-least-16",
		Issuer:         "agentdesk",
		AccessTokenTTL: time.Hour,
		APIKeySecret:   "another-secret-value",
	}
}

func testUser() *user.User {
	return &user.User{
		ID:    "64f1b3a2c9e77a0012345678",
		Name:  "Ada",
		Email: "ada@example.com",
		Role:  user.RoleAdmin,
	}
}

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer(testConfig())

	token, expiresAt, err := issuer.Issue(testUser())
	require.NoError(t, err)
	assert.True(t, expiresAt.After(time.Now()))

	principal, err := issuer.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "64f1b3a2c9e77a0012345678", principal.UserID)
	assert.Equal(t, "ada@example.com", principal.Email)
	assert.True(t, principal.IsAdmin)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	issuer := NewTokenIssuer(testConfig())
	issuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, _, err := issuer.Issue(testUser())
	require.NoError(t, err)

	issuer.now = time.Now
	_, err = issuer.Verify(context.Background(), token)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeUnauthorized))
}

func TestVerifyRejectsForeignToken(t *testing.T) {
	token, _, err := NewTokenIssuer(testConfig()).Issue(testUser())
	require.NoError(t, err)

	other := testConfig()
	other.JWTSecret = "different-secret-value"
	_, err = NewTokenIssuer(other).Verify(context.Background(), token)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeUnauthorized))
}

func TestBcryptHasherRoundTrip(t *testing.T) {
	hasher := NewBcryptHasher()

	hash, err := hasher.Hash("supersecret")
	require.NoError(t, err)
	assert.NotEqual(t, "supersecret", hash)

	assert.NoError(t, hasher.Compare(hash, "supersecret"))
	assert.Error(t, hasher.Compare(hash, "wrong"))
}

func TestAPIKeyCipherRoundTrip(t *testing.T) {
	cipher := NewAPIKeyCipher(testConfig())

	encrypted, err := cipher.Encrypt("sk-test-123")
	require.NoError(t, err)
	assert.NotEqual(t, "sk-test-123", encrypted)

	plaintext, err := cipher.Decrypt(encrypted)
	require.NoError(t, err)
	assert.Equal(t, "sk-test-123", plaintext)
}
