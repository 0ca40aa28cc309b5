package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// LoginRequest holds the credentials submitted on the login screen.
type LoginRequest struct {
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required"`
	SchoolDomain string `json:"school_domain" validate:"required"`
}

// LoginResult mirrors the backend login response.
type LoginResult struct {
	Success bool   `json:"success"`
	User    User   `json:"user"`
	School  School `json:"school"`
	Token   string `json:"token"`
}

// ConsoleClaims is the payload of the token the console hands to its clients.
type ConsoleClaims struct {
	SessionID string    `json:"sid"`
	UserID    string    `json:"user_id"`
	Role      UserRole  `json:"role"`
	Tenant    TenantKey `json:"tenant"`
	jwt.RegisteredClaims
}

// LoginResponse is what the console returns to its client after sign-in.
type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	User        User      `json:"user"`
	School      School    `json:"school"`
}
