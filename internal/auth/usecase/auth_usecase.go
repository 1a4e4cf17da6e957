package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	validation "github.com/jellydator/validation"

	"github.com/google/uuid"

	authDomain "github.com/proxym/collabmanager/internal/auth/domain"
	authService "github.com/proxym/collabmanager/internal/auth/service"
	userDomain "github.com/proxym/collabmanager/internal/user/domain"
	appValidation "github.com/proxym/collabmanager/internal/validation"
)

// bearerPrefix is the optional prefix stripped from presented refresh tokens.
const bearerPrefix = "bearer "

// authUseCase implements AuthUseCase.
type authUseCase struct {
	userRepo        UserRepository
	passwordService authService.PasswordService
	jwtService      authService.JWTService
}

// NewAuthUseCase creates an AuthUseCase with the provided dependencies.
func NewAuthUseCase(
	userRepo UserRepository,
	passwordService authService.PasswordService,
	jwtService authService.JWTService,
) AuthUseCase {
	return &authUseCase{
		userRepo:        userRepo,
		passwordService: passwordService,
		jwtService:      jwtService,
	}
}

// validateRegisterInput validates the public self-registration input.
func (a *authUseCase) validateRegisterInput(input *RegisterInput) error {
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
	return appValidation.WrapValidationError(err)
}

// Register creates a new identity and logs it in.
//
// Privilege-escalation prevention: this is the public self-registration entry
// point, so the stored role is always MEMBRE_EQUIPE regardless of what the
// request asked for. Admin-privileged creation lives in the user module.
func (a *authUseCase) Register(ctx context.Context, input *RegisterInput) (*Session, error) {
	if err := a.validateRegisterInput(input); err != nil {
		return nil, err
	}

	email := strings.TrimSpace(strings.ToLower(input.Email))

	exists, err := a.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, userDomain.ErrUserAlreadyExists
	}

	hashed, err := a.passwordService.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &userDomain.User{
		ID:           uuid.Must(uuid.NewV7()),
		Nom:          strings.TrimSpace(input.Nom),
		Email:        email,
		PasswordHash: hashed,
		Role:         authDomain.RoleMembreEquipe,
	}

	if err := a.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	// Auto-login after registration
	token, err := a.jwtService.Generate(user.Email, user.Role.Authorities())
	if err != nil {
		return nil, err
	}

	return &Session{
		Token:   token,
		User:    user,
		Message: "registration successful",
	}, nil
}

// Login verifies the credentials and issues a fresh token.
//
// An unknown email and a wrong password both yield ErrInvalidCredentials, so
// the response never reveals whether the email exists.
func (a *authUseCase) Login(ctx context.Context, input *LoginInput) (*Session, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))

	user, err := a.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, userDomain.ErrUserNotFound) {
			return nil, authDomain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !a.passwordService.Compare(input.Password, user.PasswordHash) {
		return nil, authDomain.ErrInvalidCredentials
	}

	// Authorities are recomputed from the current stored role
	token, err := a.jwtService.Generate(user.Email, user.Role.Authorities())
	if err != nil {
		return nil, err
	}

	return &Session{
		Token:   token,
		User:    user,
		Message: "login successful",
	}, nil
}

// Refresh issues a brand-new token from a presented token.
//
// This is the one path that tolerates expiry by design: its purpose is to let
// an expired-but-recently-valid session renew. A tampered signature still
// fails regardless of expiry, and authorities always come from the live role,
// never from the old token's embedded claims.
func (a *authUseCase) Refresh(ctx context.Context, presentedToken string) (*Session, error) {
	token := strings.TrimSpace(presentedToken)
	if token == "" {
		return nil, authDomain.ErrMissingToken
	}

	// Strip an optional bearer prefix (case-insensitive)
	if len(token) >= len(bearerPrefix) && strings.EqualFold(token[:len(bearerPrefix)], bearerPrefix) {
		token = strings.TrimSpace(token[len(bearerPrefix):])
	}
	if token == "" {
		return nil, authDomain.ErrMissingToken
	}

	claims, err := a.jwtService.DecodeAllowingExpired(token)
	if err != nil {
		return nil, authDomain.ErrInvalidToken
	}

	user, err := a.userRepo.GetByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, userDomain.ErrUserNotFound) {
			return nil, authDomain.ErrSubjectNotFound
		}
		return nil, err
	}

	newToken, err := a.jwtService.Generate(user.Email, user.Role.Authorities())
	if err != nil {
		return nil, err
	}

	return &Session{
		Token:   newToken,
		User:    user,
		Message: "token refreshed",
	}, nil
}

// ValidateToken reports whether the token is currently valid: signature
// verifies, expiry has not passed and the subject still resolves to an
// identity. Any failure yields false; this is a client convenience, not a
// security gate.
func (a *authUseCase) ValidateToken(ctx context.Context, token string) bool {
	claims, err := a.jwtService.Decode(token)
	if err != nil {
		return false
	}
	if a.jwtService.IsExpired(claims, time.Now().UTC()) {
		return false
	}
	if _, err := a.userRepo.GetByEmail(ctx, claims.Subject); err != nil {
		return false
	}
	return true
}

// EmailExists reports whether an identity with the email is registered.
func (a *authUseCase) EmailExists(ctx context.Context, email string) (bool, error) {
	return a.userRepo.ExistsByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
}
