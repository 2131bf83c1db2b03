// Package auth, as previously noted, handles authentication.
// This file, `models.go`, defines the data structures the Credential Store and the
// Session Authority work with.
package auth

import "time"

// User represents a registered user as stored by the Credential Store.
// The `json:"-"` tag on PasswordHash keeps the bcrypt digest out of every API response.
type User struct {
	ID           int64     `json:"id" db:"user_id"`
	Name         string    `json:"name" db:"user_name"`
	Email        string    `json:"email" db:"user_email"`
	PasswordHash string    `json:"-" db:"user_pass"` // Never the plaintext
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// Principal is the verified identity attached to a request after its session token
// has been checked. Downstream handlers scope every query by UserID.
type Principal struct {
	UserID    int64
	TokenID   string // jti of the token the principal was derived from
	ExpiresAt time.Time
}

// Session is what a successful Authenticate hands back to the caller.
type Session struct {
	Token     string
	ExpiresAt time.Time
}
