package users

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/user/todoquest-go/auth"
	"github.com/user/todoquest-go/logging"
)

type brokenSource struct{ err error }

func (b brokenSource) FindByID(context.Context, int64) (*auth.User, error) { return nil, b.err }

func requestAs(userID int64) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	if userID > 0 {
		req = req.WithContext(auth.NewContextWithPrincipal(req.Context(), auth.Principal{UserID: userID}))
	}
	return req
}

func TestHandleGetUserProfile(t *testing.T) {
	store := auth.NewCredentialStore(auth.NewMemoryRepository(), auth.NewHasher(bcrypt.MinCost))
	id, err := store.CreateUser(context.Background(), "alice", "wonderland", "alice@example.com")
	require.NoError(t, err)

	h := NewUserHandlers(NewUserService(store), logging.Discard())
	rec := httptest.NewRecorder()
	h.HandleGetUserProfile()(rec, requestAs(id))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "$2a$")
	var got UserProfileResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "alice", got.Name)
	assert.Equal(t, "alice@example.com", got.Email)
}

func TestHandleGetUserProfile_Errors(t *testing.T) {
	tests := []struct {
		name   string
		source ProfileSource
		userID int64
		want   int
	}{
		{"no principal", brokenSource{}, 0, http.StatusUnauthorized},
		{"deleted user", brokenSource{err: auth.ErrUserNotFound}, 7, http.StatusNotFound},
		{"storage down", brokenSource{err: auth.ErrStorageUnavailable}, 7, http.StatusInternalServerError},
		{"unexpected", brokenSource{err: errors.New("boom")}, 7, http.StatusInternalServerError},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := NewUserHandlers(NewUserService(tc.source), logging.Discard())
			rec := httptest.NewRecorder()
			h.HandleGetUserProfile()(rec, requestAs(tc.userID))
			assert.Equal(t, tc.want, rec.Code)
			assert.NotContains(t, rec.Body.String(), "boom")
		})
	}
}
