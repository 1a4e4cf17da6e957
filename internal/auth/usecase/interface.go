// Package usecase implements business logic orchestration for authentication operations.
package usecase

import (
	"context"

	userDomain "github.com/proxym/collabmanager/internal/user/domain"
)

// RegisterInput contains the input data for public self-registration.
// Any requested role is ignored; the stored role is always MEMBRE_EQUIPE.
type RegisterInput struct {
	Nom      string
	Email    string
	Password string
}

// LoginInput contains the credentials presented on login.
type LoginInput struct {
	Email    string
	Password string
}

// Session is the outcome of a successful register/login/refresh: a freshly
// issued token plus a summary of the authenticated identity.
type Session struct {
	Token   string
	User    *userDomain.User
	Message string
}

// AuthUseCase defines the authentication flow operations.
type AuthUseCase interface {
	// Register creates a new identity with role MEMBRE_EQUIPE and logs it in.
	Register(ctx context.Context, input *RegisterInput) (*Session, error)

	// Login verifies the credentials and issues a fresh token with authorities
	// recomputed from the current stored role.
	Login(ctx context.Context, input *LoginInput) (*Session, error)

	// Refresh issues a brand-new token from a presented token whose expiry may
	// have passed, as long as its signature verifies and its subject still
	// resolves to an identity. Authorities are re-derived from the live role.
	Refresh(ctx context.Context, presentedToken string) (*Session, error)

	// ValidateToken is a best-effort check: true only for a currently valid,
	// unexpired token of an existing identity. It never errors.
	ValidateToken(ctx context.Context, token string) bool

	// EmailExists reports whether an identity with the email is registered.
	EmailExists(ctx context.Context, email string) (bool, error)
}

// UserRepository defines the identity-store operations the auth flow needs.
type UserRepository interface {
	Create(ctx context.Context, user *userDomain.User) error
	GetByEmail(ctx context.Context, email string) (*userDomain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
