// Package users, as part of the user profile module.
// This file, `dto.go`, defines the response body of the profile endpoint.
package users

import "time"

// UserProfileResponse represents the data returned for a user profile.
// It never carries the password hash.
// @Description User profile information
type UserProfileResponse struct {
	// The ID of the user
	ID int64 `json:"id" example:"1"`
	// The login name of the user
	Name string `json:"name" example:"alice"`
	// The email address of the user, empty when none was given at registration
	Email string `json:"email" example:"alice@example.com"`
	// The time the user was created
	CreatedAt time.Time `json:"created_at" example:"2026-01-15T10:30:00Z"`
}
