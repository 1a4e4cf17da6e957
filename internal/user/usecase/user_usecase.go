package usecase

import (
	"context"
	"strings"

	validation "github.com/jellydator/validation"

	"github.com/google/uuid"

	authDomain "github.com/proxym/collabmanager/internal/auth/domain"
	authService "github.com/proxym/collabmanager/internal/auth/service"
	"github.com/proxym/collabmanager/internal/user/domain"
	appValidation "github.com/proxym/collabmanager/internal/validation"
)

// userUseCase implements UserUseCase.
type userUseCase struct {
	userRepo        UserRepository
	passwordService authService.PasswordService
}

// NewUserUseCase creates a UserUseCase with the provided dependencies.
func NewUserUseCase(userRepo UserRepository, passwordService authService.PasswordService) UserUseCase {
	return &userUseCase{
		userRepo:        userRepo,
		passwordService: passwordService,
	}
}

// validateCreateUserInput validates the admin-privileged creation input.
func (u *userUseCase) validateCreateUserInput(input *domain.CreateUserInput) error {
	err := validation.ValidateStruct(input,
		validation.Field(&input.Nom,
			validation.Required.Error("nom is required"),
			appValidation.NotBlank,
			validation.Length(1, 255).Error("nom must be between 1 and 255 characters"),
		),
		validation.Field(&input.Email,
			validation.Required.Error("email is required"),
			appValidation.NotBlank,
			appValidation.Email,
			validation.Length(5, 255).Error("email must be between 5 and 255 characters"),
		),
		validation.Field(&input.Password,
			validation.Required.Error("password is required"),
			appValidation.Password,
			validation.Length(0, 128).Error("password must be at most 128 characters"),
		),
	)
	if err != nil {
		return appValidation.WrapValidationError(err)
	}

	if !input.Role.IsValid() {
		return authDomain.ErrInvalidRole
	}

	return nil
}

// CreateUser creates a user with an admin-chosen role.
func (u *userUseCase) CreateUser(ctx context.Context, input *domain.CreateUserInput) (*domain.User, error) {
	if err := u.validateCreateUserInput(input); err != nil {
		return nil, err
	}

	email := strings.TrimSpace(strings.ToLower(input.Email))

	exists, err := u.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrUserAlreadyExists
	}

	hashed, err := u.passwordService.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.Must(uuid.NewV7()),
		Nom:          strings.TrimSpace(input.Nom),
		Email:        email,
		PasswordHash: hashed,
		Role:         input.Role,
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// GetByID retrieves a user by ID.
func (u *userUseCase) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return u.userRepo.GetByID(ctx, id)
}

// GetByEmail retrieves a user by email.
func (u *userUseCase) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return u.userRepo.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
}

// List retrieves all users.
func (u *userUseCase) List(ctx context.Context) ([]*domain.User, error) {
	return u.userRepo.List(ctx)
}

// GetByRole retrieves all users with the given role.
func (u *userUseCase) GetByRole(ctx context.Context, role authDomain.Role) ([]*domain.User, error) {
	if !role.IsValid() {
		return nil, authDomain.ErrInvalidRole
	}
	return u.userRepo.GetByRole(ctx, role)
}

// SearchByNom retrieves users whose name contains the term.
func (u *userUseCase) SearchByNom(ctx context.Context, nom string) ([]*domain.User, error) {
	return u.userRepo.SearchByNom(ctx, strings.TrimSpace(nom))
}

// Count returns the total number of users.
func (u *userUseCase) Count(ctx context.Context) (int64, error) {
	return u.userRepo.Count(ctx)
}

// UpdateProfile updates the caller's own profile fields.
func (u *userUseCase) UpdateProfile(
	ctx context.Context,
	id uuid.UUID,
	input *domain.UpdateProfileInput,
) (*domain.User, error) {
	err := validation.ValidateStruct(input,
		validation.Field(&input.Nom,
			validation.Required.Error("nom is required"),
			appValidation.NotBlank,
			validation.Length(1, 255).Error("nom must be between 1 and 255 characters"),
		),
		validation.Field(&input.Email,
			validation.Required.Error("email is required"),
			appValidation.NotBlank,
			appValidation.Email,
			validation.Length(5, 255).Error("email must be between 5 and 255 characters"),
		),
	)
	if err != nil {
		return nil, appValidation.WrapValidationError(err)
	}

	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	email := strings.TrimSpace(strings.ToLower(input.Email))

	// Only check for conflicts when the email actually changes
	if email != user.Email {
		exists, err := u.userRepo.ExistsByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.ErrUserAlreadyExists
		}
	}

	user.Nom = strings.TrimSpace(input.Nom)
	user.Email = email

	if err := u.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// ChangePassword replaces the caller's password after verifying the current one.
func (u *userUseCase) ChangePassword(
	ctx context.Context,
	id uuid.UUID,
	input *domain.ChangePasswordInput,
) error {
	err := validation.ValidateStruct(input,
		validation.Field(&input.CurrentPassword,
			validation.Required.Error("current password is required"),
		),
		validation.Field(&input.NewPassword,
			validation.Required.Error("new password is required"),
			appValidation.Password,
			validation.Length(0, 128).Error("password must be at most 128 characters"),
		),
	)
	if err != nil {
		return appValidation.WrapValidationError(err)
	}

	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !u.passwordService.Compare(input.CurrentPassword, user.PasswordHash) {
		return domain.ErrWrongPassword
	}

	hashed, err := u.passwordService.Hash(input.NewPassword)
	if err != nil {
		return err
	}

	return u.userRepo.UpdatePassword(ctx, id, hashed)
}

// validateAdminUpdateUserInput validates only the fields the admin provided.
func (u *userUseCase) validateAdminUpdateUserInput(input *domain.AdminUpdateUserInput) error {
	err := validation.ValidateStruct(input,
		validation.Field(&input.Nom,
			validation.When(input.Nom != "",
				appValidation.NotBlank,
				validation.Length(1, 255).Error("nom must be between 1 and 255 characters"),
			),
		),
		validation.Field(&input.Email,
			validation.When(input.Email != "",
				appValidation.NotBlank,
				appValidation.Email,
				validation.Length(5, 255).Error("email must be between 5 and 255 characters"),
			),
		),
	)
	if err != nil {
		return appValidation.WrapValidationError(err)
	}

	if input.Role != "" && !input.Role.IsValid() {
		return authDomain.ErrInvalidRole
	}

	return nil
}

// AdminUpdateUser updates another user's nom, email and role. Empty input
// fields keep their stored value.
func (u *userUseCase) AdminUpdateUser(
	ctx context.Context,
	id uuid.UUID,
	input *domain.AdminUpdateUserInput,
) (*domain.User, error) {
	if err := u.validateAdminUpdateUserInput(input); err != nil {
		return nil, err
	}

	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Nom != "" {
		user.Nom = strings.TrimSpace(input.Nom)
	}

	if input.Email != "" {
		email := strings.TrimSpace(strings.ToLower(input.Email))
		if email != user.Email {
			exists, err := u.userRepo.ExistsByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, domain.ErrUserAlreadyExists
			}
		}
		user.Email = email
	}

	if err := u.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	if input.Role != "" && input.Role != user.Role {
		if err := u.userRepo.UpdateRole(ctx, id, input.Role); err != nil {
			return nil, err
		}
		user.Role = input.Role
	}

	return user, nil
}

// UpdateRole replaces a user's role.
func (u *userUseCase) UpdateRole(ctx context.Context, id uuid.UUID, role authDomain.Role) (*domain.User, error) {
	if !role.IsValid() {
		return nil, authDomain.ErrInvalidRole
	}

	if err := u.userRepo.UpdateRole(ctx, id, role); err != nil {
		return nil, err
	}

	return u.userRepo.GetByID(ctx, id)
}

// Delete removes a user.
func (u *userUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	return u.userRepo.Delete(ctx, id)
}
