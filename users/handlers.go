// Package users encapsulates the user profile endpoint.
// This file, `handlers.go`, is the HTTP layer; it must sit behind auth.RequireSession.
package users

import (
	"net/http"

	"github.com/user/todoquest-go/apperror"
	"github.com/user/todoquest-go/auth"
	"github.com/user/todoquest-go/logging"
)

// UserHandlers provides HTTP handlers for user profile management.
type UserHandlers struct {
	service *UserService
	log     logging.Logger
}

// NewUserHandlers creates new UserHandlers.
func NewUserHandlers(service *UserService, log logging.Logger) *UserHandlers {
	return &UserHandlers{service: service, log: log}
}

// HandleGetUserProfile godoc
// @Summary Get current user's profile
// @Description Retrieves the profile of the authenticated user. The id comes from the session token only.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} UserProfileResponse "Successfully retrieved user profile"
// @Failure 401 {object} apperror.ErrorResponse "No token provided / Invalid token"
// @Failure 404 {object} apperror.ErrorResponse "User not found"
// @Failure 500 {object} apperror.ErrorResponse "Database error"
// @Router /users/me [get]
func (h *UserHandlers) HandleGetUserProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := auth.PrincipalFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewAuthError(auth.MsgNoToken, auth.ErrMissingToken))
			return
		}

		profile, err := h.service.GetUserProfile(r.Context(), p.UserID)
		if err != nil {
			if ae, ok := apperror.FromError(err); ok && ae.StatusCode() >= http.StatusInternalServerError {
				h.log.Error(r.Context(), "get profile failed", "user_id", p.UserID, "kind", ae.Type.String(), "error", err)
			}
			auth.WriteError(w, r, err)
			return
		}

		auth.WriteJSON(w, http.StatusOK, profile)
	}
}
