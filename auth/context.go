// Package auth, as part of the authentication module.
// This file, `context.go`, moves the verified Principal through the request context.
// RequireSession is the only writer; handlers read it back with PrincipalFromContext.
package auth

import (
	"context"
)

// `contextKey` is a custom type for context keys, so no other package can collide with ours.
type contextKey string

const principalContextKey contextKey = "auth_principal"

// NewContextWithPrincipal returns a child context carrying p.
func NewContextWithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, p)
}

// PrincipalFromContext extracts the Principal stored by RequireSession.
// The bool is false when the request never passed through the middleware.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalContextKey).(Principal)
	if !ok || p.UserID <= 0 {
		return Principal{}, false
	}
	return p, true
}
