package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultTokenDuration is the session lifetime used when none is configured.
const DefaultTokenDuration = time.Hour

// Claims is the payload of a session token.
type Claims struct {
	UserID int64 `json:"user_id"`
	jwt.RegisteredClaims
}

// UserFinder is the slice of CredentialStore the Session Authority needs.
type UserFinder interface {
	FindByName(ctx context.Context, name string) (*User, error)
}

// SessionConfig holds the process-wide token settings. Secret is read-only after startup.
type SessionConfig struct {
	Secret   []byte
	Duration time.Duration
	Issuer   string
}

// SessionAuthority issues and verifies HS256 session tokens.
type SessionAuthority struct {
	users     UserFinder
	hasher    *Hasher
	cfg       SessionConfig
	now       func() time.Time
	dummyHash string
}

// Option configures a SessionAuthority.
type Option func(*SessionAuthority)

// WithClock replaces time.Now. Tests use it to move past a token's expiry.
func WithClock(now func() time.Time) Option {
	return func(a *SessionAuthority) { a.now = now }
}

// NewSessionAuthority builds a SessionAuthority. The secret must be non-empty.
func NewSessionAuthority(users UserFinder, hasher *Hasher, cfg SessionConfig, opts ...Option) (*SessionAuthority, error) {
	if len(cfg.Secret) == 0 {
		return nil, errors.New("session secret must not be empty")
	}
	if cfg.Duration <= 0 {
		cfg.Duration = DefaultTokenDuration
	}
	a := &SessionAuthority{users: users, hasher: hasher, cfg: cfg, now: time.Now}
	for _, opt := range opts {
		opt(a)
	}

	// Compared against when the name is unknown so both failure paths cost one bcrypt run.
	dummy, err := hasher.Hash([]byte("todoquest-unknown-user"))
	if err != nil {
		return nil, fmt.Errorf("prepare dummy hash: %w", err)
	}
	a.dummyHash = dummy
	return a, nil
}

// TokenDuration reports the fixed lifetime of issued tokens.
func (a *SessionAuthority) TokenDuration() time.Duration { return a.cfg.Duration }

// Authenticate checks name and password against the Credential Store and issues a token.
// Unknown names and wrong passwords both fail with ErrInvalidCredentials.
func (a *SessionAuthority) Authenticate(ctx context.Context, name, password string) (*Session, error) {
	u, err := a.users.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	// bcrypt ignores bytes past MaxPasswordBytes, and no stored password is longer.
	if u == nil || len(password) > MaxPasswordBytes {
		_ = a.hasher.Compare(a.dummyHash, []byte(password))
		return nil, ErrInvalidCredentials
	}
	if err := a.hasher.Compare(u.PasswordHash, []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return a.Issue(u.ID)
}

// Issue signs a token for userID valid for at least the configured duration from now.
// NumericDate has whole-second precision, so exp is rounded up rather than down.
func (a *SessionAuthority) Issue(userID int64) (*Session, error) {
	now := a.now()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatInt(userID, 10),
			Issuer:    a.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now.Truncate(time.Second)),
			ExpiresAt: jwt.NewNumericDate(ceilSecond(now.Add(a.cfg.Duration))),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(a.cfg.Secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return &Session{Token: signed, ExpiresAt: claims.ExpiresAt.Time.UTC()}, nil
}

// Verify checks the signature, structure and expiry of token and returns its Principal.
// It performs no I/O. Failures are ErrMissingToken, ErrMalformedToken, ErrExpiredToken
// or ErrBadSignature.
func (a *SessionAuthority) Verify(token string) (Principal, error) {
	if token == "" {
		return Principal{}, ErrMissingToken
	}

	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithStrictDecoding(),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(a.now),
	}
	if a.cfg.Issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(a.cfg.Issuer))
	}

	claims := &Claims{}
	_, err := jwt.NewParser(parserOpts...).ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return a.cfg.Secret, nil
	})
	if err != nil {
		return Principal{}, classifyTokenError(err)
	}

	if claims.UserID <= 0 || claims.Subject != strconv.FormatInt(claims.UserID, 10) {
		return Principal{}, fmt.Errorf("%w: subject does not match user_id", ErrMalformedToken)
	}

	return Principal{
		UserID:    claims.UserID,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time.UTC(),
	}, nil
}

func ceilSecond(t time.Time) time.Time {
	if down := t.Truncate(time.Second); !down.Equal(t) {
		return down.Add(time.Second)
	}
	return t
}

func classifyTokenError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %v", ErrExpiredToken, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return fmt.Errorf("%w: %v", ErrBadSignature, err)
	default:
		return fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
}
