package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_StatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want int
	}{
		{"database", NewDatabaseError("db", nil), http.StatusInternalServerError},
		{"config", NewConfigError("cfg", nil), http.StatusInternalServerError},
		{"auth", NewAuthError("auth", nil), http.StatusUnauthorized},
		{"not found", NewNotFoundError("nf", nil), http.StatusNotFound},
		{"validation", NewValidationError("bad", nil), http.StatusBadRequest},
		{"bad request", NewBadRequestError("bad", nil), http.StatusBadRequest},
		{"internal", NewInternalError("boom", nil), http.StatusInternalServerError},
		{"migration", NewMigrationError("mig", nil), http.StatusInternalServerError},
		{"unknown", &AppError{Type: UnknownError, Message: "?"}, http.StatusInternalServerError},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.err.StatusCode())
		})
	}
}

func TestAppError_ErrorAndUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewDatabaseError("Database error", cause)

	assert.Equal(t, "Database error: connection refused", err.Error())
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "Database error", NewDatabaseError("Database error", nil).Error())
}

func TestAppError_ToResponseHidesCause(t *testing.T) {
	err := NewDatabaseError("Database error", errors.New("password authentication failed for user postgres"))
	assert.Equal(t, ErrorResponse{Error: "Database error"}, err.ToResponse())
}

func TestFromError(t *testing.T) {
	_, ok := FromError(nil)
	assert.False(t, ok)

	_, ok = FromError(errors.New("plain"))
	assert.False(t, ok)

	wrapped := fmt.Errorf("handler: %w", NewNotFoundError("Todo not found", nil))
	ae, ok := FromError(wrapped)
	require.True(t, ok)
	assert.Equal(t, NotFoundError, ae.Type)
}

func TestErrorType_String(t *testing.T) {
	assert.Equal(t, "database", DatabaseError.String())
	assert.Equal(t, "auth", AuthError.String())
	assert.Equal(t, "not_found", NewNotFoundError("x", nil).Type.String())
	assert.Equal(t, "unknown", ErrorType(99).String())
}
