package services

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"ct_studio_backend/pkg/utils"
)

// ErrInvalidCredentials is returned on any login failure; the response never
// distinguishes a wrong username from a wrong password.
var ErrInvalidCredentials = errors.New("invalid username or password")

// RoleOperator is the single role the back office issues tokens for.
const RoleOperator = "operator"

// LoginRequest DTO
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse DTO
type AuthResponse struct {
	Username    string `json:"username"`
	Role        string `json:"role"`
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

// --- AuthService Interface ---

type AuthService interface {
	Login(req LoginRequest) (*AuthResponse, error)
}

// --- authService Implementation ---

// The studio runs with a single configured operator account; there is no
// user table behind this.
type authService struct {
	username     string
	passwordHash string
	tokenTTL     time.Duration
}

// NewAuthService creates a new instance of AuthService. passwordHash is a
// bcrypt hash of the operator password.
func NewAuthService(username, passwordHash string, tokenTTL time.Duration) AuthService {
	return &authService{username: username, passwordHash: passwordHash, tokenTTL: tokenTTL}
}

// Login verifies the operator credentials and issues an access token.
func (s *authService) Login(req LoginRequest) (*AuthResponse, error) {
	if req.Username != s.username {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateAccessToken(s.username, RoleOperator, s.tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	utils.LogInfo("Operator logged in", map[string]interface{}{"username": s.username})
	return &AuthResponse{
		Username:    s.username,
		Role:        RoleOperator,
		AccessToken: token,
		ExpiresIn:   int64(s.tokenTTL.Seconds()),
	}, nil
}
