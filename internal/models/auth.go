package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// LoginRequest represents the form-encoded login payload
type LoginRequest struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// RegisterRequest represents the registration request payload
type RegisterRequest struct {
	Username  string `json:"username" binding:"required,min=4,max=45" example:"alice"`
	Password  string `json:"password" binding:"required,min=4" example:"abcd"`
	Email     string `json:"email" binding:"required,email" example:"alice@example.com"`
	FirstName string `json:"first_name,omitempty" binding:"omitempty,min=2" example:"Alice"`
	LastName  string `json:"last_name,omitempty" binding:"omitempty,min=2" example:"Smith"`
}

// RegisterResponse is returned after a successful registration
type RegisterResponse struct {
	ID      uint   `json:"id" example:"1"`
	Message string `json:"message" example:"User with ID: 1 registered"`
}

// TokenResponse is returned after a successful login
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type" example:"bearer"`
	ExpiresIn   int64  `json:"expires_in" example:"2592000"`
}

// JWTClaims represents the JWT claims
type JWTClaims struct {
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

// TokenInfo represents token information
type TokenInfo struct {
	Username  string    `json:"username"`
	IsAdmin   bool      `json:"is_admin"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ChangePasswordRequest represents a request to change user's own password
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=4"`
	ConfirmPassword string `json:"confirm_password" binding:"required,min=4"`
}
