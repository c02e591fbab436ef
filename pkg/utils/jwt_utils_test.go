package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	SetJWTSecret("test-secret")

	token, err := GenerateAccessToken("operator1", "operator", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "operator1", claims.Username)
	assert.Equal(t, "operator", claims.Role)
}

func TestValidateTokenExpired(t *testing.T) {
	SetJWTSecret("test-secret")

	token, err := GenerateAccessToken("operator1", "operator", -time.Minute)
	require.NoError(t, err)

	_, err = ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenGarbage(t *testing.T) {
	_, err := ValidateToken("not-a-token")
	assert.Error(t, err)
}
