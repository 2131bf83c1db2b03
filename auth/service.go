// Package auth is responsible for authentication and per-request authorization.
// It holds the two core components of todoquest:
//
//   - CredentialStore persists user identity and a bcrypt hash of the password;
//   - SessionAuthority issues signed, time-bounded session tokens and verifies them.
//
// Storage is injected through UserRepository so the same logic runs against Postgres,
// SQLite or an in-memory map.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// registration is validated with go-playground/validator before anything is hashed.
// Name is limited to 64 characters, matching the users.user_name column.
type registration struct {
	Name  string `validate:"required,max=64"`
	Email string `validate:"omitempty,email,max=255"`
}

// CredentialStore registers users and looks them up.
type CredentialStore struct {
	repo     UserRepository
	hasher   *Hasher
	validate *validator.Validate
}

// NewCredentialStore creates a CredentialStore over repo, hashing with hasher.
func NewCredentialStore(repo UserRepository, hasher *Hasher) *CredentialStore {
	return &CredentialStore{
		repo:     repo,
		hasher:   hasher,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// CreateUser validates the input, hashes the password and persists a new user.
// It fails with ErrValidation, ErrDuplicateName or ErrStorageUnavailable.
// The plaintext password is never stored or included in returned errors.
func (s *CredentialStore) CreateUser(ctx context.Context, name, password, email string) (int64, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	if err := s.validateInput(name, password, email); err != nil {
		return 0, err
	}

	hash, err := s.hasher.Hash([]byte(password))
	if err != nil {
		return 0, fmt.Errorf("%w: password could not be hashed", ErrValidation)
	}

	u := &User{Name: name, Email: email, PasswordHash: hash}
	if err := s.repo.Insert(ctx, u); err != nil {
		return 0, err
	}
	return u.ID, nil
}

func (s *CredentialStore) validateInput(name, password, email string) error {
	if err := s.validate.Struct(registration{Name: name, Email: email}); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("%w: field %s failed %q", ErrValidation, strings.ToLower(verrs[0].Field()), verrs[0].Tag())
		}
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if password == "" {
		return fmt.Errorf("%w: password is required", ErrValidation)
	}
	if len(password) > MaxPasswordBytes {
		return fmt.Errorf("%w: password longer than %d bytes", ErrValidation, MaxPasswordBytes)
	}
	return nil
}

// FindByName returns the user with the given name, or (nil, nil) if there is none.
// Only the Session Authority's login path should call this.
func (s *CredentialStore) FindByName(ctx context.Context, name string) (*User, error) {
	return s.repo.FindByName(ctx, strings.TrimSpace(name))
}

// FindByID returns the user with the given id or ErrUserNotFound.
// Handlers only call it with the id of the verified Principal.
func (s *CredentialStore) FindByID(ctx context.Context, id int64) (*User, error) {
	return s.repo.FindByID(ctx, id)
}
