// Package auth, as part of the authentication module.
// This file, `middleware.go`, defines the HTTP middleware that guards every protected route.
// It has the standard `func(next http.Handler) http.Handler` shape so chi can `Use` it.
package auth

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/user/todoquest-go/apperror"
	"github.com/user/todoquest-go/logging"
)

// Client-facing messages. Every verification failure other than a missing token
// collapses to MsgInvalidToken; the precise kind only goes to the log.
const (
	MsgNoToken      = "No token provided"
	MsgInvalidToken = "Invalid token"
)

// RequireSession verifies the bearer token on each request and stores the resulting
// Principal in the request context. Requests without a valid token never reach next.
func RequireSession(sessions *SessionAuthority, log logging.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := bearerToken(r.Header.Get("Authorization"))
			var principal Principal
			if err == nil {
				principal, err = sessions.Verify(token)
			}
			if err != nil {
				log.Warn(r.Context(), "session rejected",
					"reason", TokenFailureKind(err),
					"method", r.Method,
					"path", r.URL.Path,
					"request_id", middleware.GetReqID(r.Context()),
				)
				msg := MsgInvalidToken
				if TokenFailureKind(err) == "missing" {
					msg = MsgNoToken
				}
				WriteError(w, r, apperror.NewAuthError(msg, err))
				return
			}

			next.ServeHTTP(w, r.WithContext(NewContextWithPrincipal(r.Context(), principal)))
		})
	}
}

// bearerToken pulls the token out of an "Authorization: Bearer <token>" header.
// An absent header or an empty token is ErrMissingToken; any other scheme is malformed.
func bearerToken(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", ErrMissingToken
	}
	scheme, token, found := strings.Cut(header, " ")
	if !strings.EqualFold(scheme, "bearer") {
		return "", ErrMalformedToken
	}
	token = strings.TrimSpace(token)
	if !found || token == "" {
		return "", ErrMissingToken
	}
	return token, nil
}
