// Package usecase implements the user business logic and orchestrates user domain operations.
package usecase

import (
	"context"

	"github.com/google/uuid"

	authDomain "github.com/proxym/collabmanager/internal/auth/domain"
	"github.com/proxym/collabmanager/internal/user/domain"
)

// UserUseCase defines the user management operations.
type UserUseCase interface {
	// CreateUser creates a user with an admin-chosen role. Unlike public
	// self-registration, the requested role is honored.
	CreateUser(ctx context.Context, input *domain.CreateUserInput) (*domain.User, error)

	// GetByID retrieves a user by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user by email.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// List retrieves all users.
	List(ctx context.Context) ([]*domain.User, error)

	// GetByRole retrieves all users with the given role.
	GetByRole(ctx context.Context, role authDomain.Role) ([]*domain.User, error)

	// SearchByNom retrieves users whose name contains the term.
	SearchByNom(ctx context.Context, nom string) ([]*domain.User, error)

	// Count returns the total number of users.
	Count(ctx context.Context) (int64, error)

	// UpdateProfile updates the caller's own profile fields.
	UpdateProfile(ctx context.Context, id uuid.UUID, input *domain.UpdateProfileInput) (*domain.User, error)

	// ChangePassword replaces the caller's password after verifying the
	// current one.
	ChangePassword(ctx context.Context, id uuid.UUID, input *domain.ChangePasswordInput) error

	// UpdateRole replaces a user's role. Takes effect on the next request
	// since authorities are always recomputed from storage.
	UpdateRole(ctx context.Context, id uuid.UUID, role authDomain.Role) (*domain.User, error)

	// AdminUpdateUser updates another user's nom, email and role. Empty
	// input fields keep their stored value.
	AdminUpdateUser(ctx context.Context, id uuid.UUID, input *domain.AdminUpdateUserInput) (*domain.User, error)

	// Delete removes a user.
	Delete(ctx context.Context, id uuid.UUID) error
}

// UserRepository defines the persistence operations the user use case needs.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, user *domain.User) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	UpdateRole(ctx context.Context, id uuid.UUID, role authDomain.Role) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*domain.User, error)
	GetByRole(ctx context.Context, role authDomain.Role) ([]*domain.User, error)
	SearchByNom(ctx context.Context, nom string) ([]*domain.User, error)
	Count(ctx context.Context) (int64, error)
}
