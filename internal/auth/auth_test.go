package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.True(t, CheckPasswordHash("s3cret-pass", hash))
	assert.False(t, CheckPasswordHash("wrong-pass", hash))
}

func TestJWTRoundTrip(t *testing.T) {
	Init("test-secret", 3600)

	token, err := GenerateJWT("64b5f0c2a1d2e3f4a5b6c7d8", "staff@example.com", "MarketingStaff")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "64b5f0c2a1d2e3f4a5b6c7d8", claims.UserID)
	assert.Equal(t, "staff@example.com", claims.Email)
	assert.Equal(t, "MarketingStaff", claims.Role)
}

func TestParseJWTRejectsWrongSecret(t *testing.T) {
	Init("secret-one", 3600)
	token, err := GenerateJWT("id", "a@b.c", "Admin")
	require.NoError(t, err)

	Init("secret-two", 3600)
	_, err = ParseJWT(token)
	assert.Error(t, err)
}

func TestParseJWTRejectsGarbage(t *testing.T) {
	Init("test-secret", 3600)
	_, err := ParseJWT("not.a.token")
	assert.Error(t, err)
}
