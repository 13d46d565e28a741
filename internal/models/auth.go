package models

import "github.com/golang-jwt/jwt/v5"

// LoginRequest holds credentials for authenticating a user.
type LoginRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
	IP        string `json:"-"`
	UserAgent string `json:"-"`
}

// LoginResponse returns the issued access token and user info. The refresh
// token travels only in the HTTP-only cookie, never in the body.
type LoginResponse struct {
	User        UserInfo `json:"data"`
	AccessToken string   `json:"accessToken"`
}

// RegisterRequest is the admin-only payload for creating users.
type RegisterRequest struct {
	Name     string   `json:"name" validate:"required,min=3"`
	Email    string   `json:"email" validate:"required,email"`
	Password string   `json:"password" validate:"required,min=6,max=100"`
	Role     UserRole `json:"role" validate:"required,oneof=ADMIN OPERATOR QC"`
}

// UpdateUserRequest is the admin-only payload for mutating a user.
type UpdateUserRequest struct {
	Name  string   `json:"name" validate:"required,min=3"`
	Email string   `json:"email" validate:"required,email"`
	Role  UserRole `json:"role" validate:"required,oneof=ADMIN OPERATOR QC"`
}

// JWTClaims represents the signed payload of both token kinds.
type JWTClaims struct {
	UserID string   `json:"user_id"`
	Name   string   `json:"name"`
	Role   UserRole `json:"role"`
	Email  string   `json:"email,omitempty"`
	jwt.RegisteredClaims
}
