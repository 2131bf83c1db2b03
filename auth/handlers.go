// Package auth, as part of the authentication module.
// This file, `handlers.go`, exposes the Credential Store and Session Authority over HTTP
// (POST /register and POST /login) and provides the JSON response helpers the other
// handler packages share.
package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/user/todoquest-go/apperror"
	"github.com/user/todoquest-go/logging"
)

// maxBodyBytes caps request bodies read by JSON handlers.
const maxBodyBytes = 1 << 20

// Client-facing messages for the public endpoints.
const (
	MsgRegisterFailed     = "Could not register user"
	MsgInvalidCredentials = "Invalid username or password"
	MsgDatabaseError      = "Database error"
	MsgInvalidBody        = "Invalid request body"
)

// Handlers wraps the Credential Store and the Session Authority to provide HTTP handlers.
type Handlers struct {
	store    *CredentialStore
	sessions *SessionAuthority
	log      logging.Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(store *CredentialStore, sessions *SessionAuthority, log logging.Logger) *Handlers {
	return &Handlers{store: store, sessions: sessions, log: log}
}

// HandleRegister godoc
// @Summary User Registration
// @Description Registers a new user. The password is stored only as a bcrypt hash.
// @Tags Auth
// @Accept json
// @Produce json
// @Param registerBody body auth.RegisterRequest true "User registration details"
// @Success 200 {object} auth.SuccessResponse "User created"
// @Failure 400 {object} apperror.ErrorResponse "Could not register user (duplicate name or invalid input)"
// @Failure 500 {object} apperror.ErrorResponse "Database error"
// @Router /register [post]
func (h *Handlers) HandleRegister() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if err := DecodeJSON(w, r, &req); err != nil {
			WriteError(w, r, apperror.NewBadRequestError(MsgRegisterFailed, err))
			return
		}

		id, err := h.store.CreateUser(r.Context(), req.Name, req.Password, req.Email)
		if err != nil {
			switch {
			case errors.Is(err, ErrValidation), errors.Is(err, ErrDuplicateName):
				h.log.Info(r.Context(), "registration refused", "reason", err.Error())
				WriteError(w, r, apperror.NewBadRequestError(MsgRegisterFailed, err))
			case errors.Is(err, ErrStorageUnavailable):
				h.log.Error(r.Context(), "registration failed", "error", err)
				WriteError(w, r, apperror.NewDatabaseError(MsgDatabaseError, err))
			default:
				h.log.Error(r.Context(), "registration failed", "error", err)
				WriteError(w, r, apperror.NewInternalError("Internal server error", err))
			}
			return
		}

		h.log.Info(r.Context(), "user registered", "user_id", id)
		WriteJSON(w, http.StatusOK, SuccessResponse{Success: true})
	}
}

// HandleLogin godoc
// @Summary User Login
// @Description Checks the credentials and returns a signed session token.
// @Tags Auth
// @Accept json
// @Produce json
// @Param loginBody body auth.LoginRequest true "User login credentials"
// @Success 200 {object} auth.LoginResponse "Login successful"
// @Failure 400 {object} apperror.ErrorResponse "Invalid username or password"
// @Failure 500 {object} apperror.ErrorResponse "Database error"
// @Router /login [post]
func (h *Handlers) HandleLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := DecodeJSON(w, r, &req); err != nil {
			WriteError(w, r, apperror.NewBadRequestError(MsgInvalidCredentials, err))
			return
		}

		sess, err := h.sessions.Authenticate(r.Context(), req.Name, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidCredentials):
				h.log.Info(r.Context(), "login refused")
				WriteError(w, r, apperror.NewBadRequestError(MsgInvalidCredentials, err))
			case errors.Is(err, ErrStorageUnavailable):
				h.log.Error(r.Context(), "login failed", "error", err)
				WriteError(w, r, apperror.NewDatabaseError(MsgDatabaseError, err))
			default:
				h.log.Error(r.Context(), "login failed", "error", err)
				WriteError(w, r, apperror.NewInternalError("Internal server error", err))
			}
			return
		}

		WriteJSON(w, http.StatusOK, LoginResponse{Token: sess.Token, ExpiresAt: sess.ExpiresAt})
	}
}

// DecodeJSON reads a size-limited JSON body into dst.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	defer r.Body.Close()
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst)
}

// WriteJSON serializes data to JSON and writes it with the given status.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil { // Avoid writing nil, which can result in "null" response body
		if err := json.NewEncoder(w).Encode(data); err != nil {
			http.Error(w, `{"error":"failed to encode response"}`, http.StatusInternalServerError)
		}
	}
}

// WriteError uses the apperror system to write standardized error responses.
// Errors that are not an *apperror.AppError become a generic 500 so internals never leak.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	appErr, ok := apperror.FromError(err)
	if !ok {
		appErr = apperror.NewInternalError("Internal server error", err)
	}
	WriteJSON(w, appErr.StatusCode(), appErr.ToResponse())
}
