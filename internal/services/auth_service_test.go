package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"ct_studio_backend/pkg/utils"
)

func newAuthFixture(t *testing.T) AuthService {
	t.Helper()
	utils.SetJWTSecret("test-secret")
	hash, err := bcrypt.GenerateFromPassword([]byte("studio-pass"), bcrypt.MinCost)
	require.NoError(t, err)
	return NewAuthService("operator1", string(hash), time.Hour)
}

func TestLoginSuccess(t *testing.T) {
	svc := newAuthFixture(t)

	resp, err := svc.Login(LoginRequest{Username: "operator1", Password: "studio-pass"})
	require.NoError(t, err)
	assert.Equal(t, "operator1", resp.Username)
	assert.Equal(t, RoleOperator, resp.Role)
	assert.Equal(t, int64(3600), resp.ExpiresIn)

	claims, err := utils.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "operator1", claims.Username)
	assert.Equal(t, RoleOperator, claims.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newAuthFixture(t)
	_, err := svc.Login(LoginRequest{Username: "operator1", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownUsername(t *testing.T) {
	svc := newAuthFixture(t)
	_, err := svc.Login(LoginRequest{Username: "someone-else", Password: "studio-pass"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
