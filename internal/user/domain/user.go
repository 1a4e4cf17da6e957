// Package domain defines the core user domain entities and types.
package domain

import (
	"time"

	"github.com/google/uuid"

	authDomain "github.com/proxym/collabmanager/internal/auth/domain"
	"github.com/proxym/collabmanager/internal/errors"
)

// User represents a registered principal. PasswordHash is never serialized
// in any outward-facing response.
type User struct {
	ID           uuid.UUID
	Nom          string
	Email        string
	PasswordHash string
	Role         authDomain.Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Domain-specific errors for user operations.
var (
	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.Wrap(errors.ErrNotFound, "user not found")

	// ErrUserAlreadyExists indicates a user with the same email already exists.
	ErrUserAlreadyExists = errors.Wrap(errors.ErrConflict, "a user with this email already exists")

	// ErrWrongPassword indicates the proof of the old password failed on a
	// password change.
	ErrWrongPassword = errors.Wrap(errors.ErrInvalidInput, "current password is incorrect")
)

// UpdateProfileInput contains the mutable profile fields.
type UpdateProfileInput struct {
	Nom   string
	Email string
}

// ChangePasswordInput carries a password change with proof of the old secret.
type ChangePasswordInput struct {
	CurrentPassword string
	NewPassword     string
}

// AdminUpdateUserInput contains the fields an admin may change on another
// user's account. Empty fields keep their stored value.
type AdminUpdateUserInput struct {
	Nom   string
	Email string
	Role  authDomain.Role
}

// CreateUserInput contains the parameters for admin-privileged user creation.
// Unlike public self-registration, the requested role is honored.
type CreateUserInput struct {
	Nom      string
	Email    string
	Password string
	Role     authDomain.Role
}
