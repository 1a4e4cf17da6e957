// Package http provides HTTP middleware and handlers for authentication.
package http

import (
	"context"

	userDomain "github.com/proxym/collabmanager/internal/user/domain"
)

// userKey is a context key type for storing the authenticated user.
type userKey struct{}

// authoritiesKey is a context key type for storing the caller's authorities.
type authoritiesKey struct{}

// WithUser stores an authenticated user in the context.
// Called by the identity resolver middleware after successful token validation.
func WithUser(ctx context.Context, user *userDomain.User) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

// GetUser retrieves the authenticated user from the context.
// Returns (user, true) if an identity was bound, or (nil, false) for an
// anonymous request.
func GetUser(ctx context.Context) (*userDomain.User, bool) {
	user, ok := ctx.Value(userKey{}).(*userDomain.User)
	return user, ok
}

// WithAuthorities stores the caller's authorities in the context.
// The authorities are recomputed from the stored role at resolution time,
// never copied from token claims.
func WithAuthorities(ctx context.Context, authorities []string) context.Context {
	return context.WithValue(ctx, authoritiesKey{}, authorities)
}

// GetAuthorities retrieves the caller's authorities from the context.
// Returns (authorities, true) if an identity was bound, or (nil, false)
// for an anonymous request.
func GetAuthorities(ctx context.Context) ([]string, bool) {
	authorities, ok := ctx.Value(authoritiesKey{}).([]string)
	return authorities, ok
}
