package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// LoginRequest holds credentials for authenticating a staff member.
type LoginRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
	IP        string `json:"-"`
	UserAgent string `json:"-"`
}

// LoginResponse returns the issued token, the staff member and where to go next.
type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresIn   int64     `json:"expires_in"`
	Staff       StaffInfo `json:"staff"`
	Next        string    `json:"next"`
	IssuedAt    time.Time `json:"issued_at"`
}

// StaffInfo describes the authenticated staff member in responses.
type StaffInfo struct {
	ID    string    `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
	Role  StaffRole `json:"role"`
}

// JWTClaims represents the JWT payload for access tokens.
type JWTClaims struct {
	StaffID string    `json:"staff_id"`
	Email   string    `json:"email"`
	Role    StaffRole `json:"role"`
	jwt.RegisteredClaims
}
