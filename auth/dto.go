// Package auth provides authentication and authorization functionality
// This file, `dto.go` (Data Transfer Object), defines the request and response bodies
// of the register and login endpoints. `example:"..."` tags feed the Swagger docs.
package auth

import "time"

// RegisterRequest represents the registration request payload
type RegisterRequest struct {
	Name     string `json:"name" example:"alice"`
	Password string `json:"password" example:"correct horse battery staple"`
	Email    string `json:"email" example:"alice@example.com"`
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	Name     string `json:"name" example:"alice"`
	Password string `json:"password" example:"correct horse battery staple"`
}

// LoginResponse carries the issued session token.
type LoginResponse struct {
	Token     string    `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	ExpiresAt time.Time `json:"expires_at" example:"2026-01-01T13:00:00Z"`
}

// SuccessResponse is the plain acknowledgement body used by mutating endpoints.
type SuccessResponse struct {
	Success bool `json:"success" example:"true"`
}
