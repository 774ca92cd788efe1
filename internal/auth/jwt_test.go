package auth

import (
	"testing"

	"askpro_backend/internal/config"
	"askpro_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupJWTConfig(t *testing.T) {
	t.Helper()
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.TTL = 5
	config.SetTestConfig(cfg)
}

func TestGenerateAndParseToken(t *testing.T) {
	setupJWTConfig(t)

	token, err := GenerateToken("user-123", models.UserRolePower)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, models.UserRolePower, claims.Role)
}

func TestParseToken_WrongSecret(t *testing.T) {
	setupJWTConfig(t)
	token, err := GenerateToken("user-123", models.UserRoleRegular)
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.JWT.Secret = "another-secret"
	cfg.JWT.TTL = 5
	config.SetTestConfig(cfg)

	_, err = ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_Garbage(t *testing.T) {
	setupJWTConfig(t)
	_, err := ParseToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("password123")
	require.NoError(t, err)
	assert.True(t, CheckPasswordHash("password123", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}

func TestValidatePassword(t *testing.T) {
	assert.Error(t, ValidatePassword("short"))
	assert.NoError(t, ValidatePassword("longenough"))
}
