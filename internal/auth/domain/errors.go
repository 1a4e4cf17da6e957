package domain

import (
	"github.com/proxym/collabmanager/internal/errors"
)

// Authentication and authorization errors.
var (
	// ErrInvalidCredentials indicates the email/password pair did not match.
	// It is returned for unknown emails too, to prevent user enumeration.
	ErrInvalidCredentials = errors.Wrap(errors.ErrUnauthorized, "invalid email or password")

	// ErrInvalidToken indicates the token is malformed or its signature does not verify.
	ErrInvalidToken = errors.Wrap(errors.ErrUnauthorized, "invalid token")

	// ErrTokenExpired indicates a structurally valid token whose expiry has passed.
	ErrTokenExpired = errors.Wrap(errors.ErrUnauthorized, "token expired")

	// ErrMissingToken indicates a refresh request with a blank token.
	ErrMissingToken = errors.Wrap(errors.ErrInvalidInput, "token is missing")

	// ErrSubjectNotFound indicates the token subject no longer resolves to a user.
	ErrSubjectNotFound = errors.Wrap(errors.ErrUnauthorized, "token subject no longer exists")

	// ErrInvalidRole indicates an unknown role value.
	ErrInvalidRole = errors.Wrap(errors.ErrInvalidInput, "invalid role")
)
