package auth

import "errors"

// Failure kinds returned by the Credential Store and the Session Authority.
// Callers match them with errors.Is; handlers map them onto apperror values.
var (
	// ErrValidation means the registration input was rejected before touching storage.
	ErrValidation = errors.New("invalid user input")
	// ErrDuplicateName means another user already holds the requested name.
	ErrDuplicateName = errors.New("user name already taken")
	// ErrInvalidCredentials is returned for both an unknown name and a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserNotFound is returned by FindByID when no user has the given id.
	ErrUserNotFound = errors.New("user not found")
	// ErrStorageUnavailable wraps any failure of the underlying store.
	ErrStorageUnavailable = errors.New("storage unavailable")

	ErrMissingToken   = errors.New("no session token provided")
	ErrMalformedToken = errors.New("malformed session token")
	ErrExpiredToken   = errors.New("session token expired")
	ErrBadSignature   = errors.New("session token signature mismatch")
)

// TokenFailureKind returns a short label for a Verify error, used as a log attribute.
func TokenFailureKind(err error) string {
	switch {
	case errors.Is(err, ErrMissingToken):
		return "missing"
	case errors.Is(err, ErrExpiredToken):
		return "expired"
	case errors.Is(err, ErrBadSignature):
		return "bad_signature"
	case errors.Is(err, ErrMalformedToken):
		return "malformed"
	default:
		return "unknown"
	}
}
