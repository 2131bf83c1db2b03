// Package users, as part of the user profile module.
// This file, `service.go`, contains the business logic for reading the caller's own profile.
package users

import (
	"context"
	"errors"

	"github.com/user/todoquest-go/apperror"
	"github.com/user/todoquest-go/auth"
)

// ProfileSource looks a user up by id. *auth.CredentialStore satisfies it.
type ProfileSource interface {
	FindByID(ctx context.Context, id int64) (*auth.User, error)
}

// UserService provides methods for user profile management.
type UserService struct {
	users ProfileSource
}

// NewUserService creates a new UserService.
func NewUserService(users ProfileSource) *UserService {
	return &UserService{users: users}
}

// GetUserProfile retrieves a user's profile by their ID.
// Errors come back as apperror values ready for auth.WriteError.
func (s *UserService) GetUserProfile(ctx context.Context, userID int64) (*UserProfileResponse, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			return nil, apperror.NewNotFoundError("User not found", err)
		}
		if errors.Is(err, auth.ErrStorageUnavailable) {
			return nil, apperror.NewDatabaseError(auth.MsgDatabaseError, err)
		}
		return nil, apperror.NewInternalError("Internal server error", err)
	}

	return &UserProfileResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}, nil
}
