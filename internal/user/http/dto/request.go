// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	authDomain "github.com/proxym/collabmanager/internal/auth/domain"
	"github.com/proxym/collabmanager/internal/user/domain"
)

// CreateUserRequest contains the parameters for admin-privileged user creation.
// Unlike public self-registration, the requested role is honored.
type CreateUserRequest struct {
	Nom      string `json:"nom"`
	Email    string `json:"email"`
	Password string `json:"motDePasse"`
	Role     string `json:"role"`
}

// ToInput converts the request to a domain input.
func (r *CreateUserRequest) ToInput() *domain.CreateUserInput {
	return &domain.CreateUserInput{
		Nom:      r.Nom,
		Email:    r.Email,
		Password: r.Password,
		Role:     authDomain.Role(r.Role),
	}
}

// UpdateProfileRequest contains the mutable profile fields.
type UpdateProfileRequest struct {
	Nom   string `json:"nom"`
	Email string `json:"email"`
}

// ToInput converts the request to a domain input.
func (r *UpdateProfileRequest) ToInput() *domain.UpdateProfileInput {
	return &domain.UpdateProfileInput{
		Nom:   r.Nom,
		Email: r.Email,
	}
}

// ChangePasswordRequest carries a password change with proof of the old secret.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"ancienMotDePasse"`
	NewPassword     string `json:"nouveauMotDePasse"`
}

// ToInput converts the request to a domain input.
func (r *ChangePasswordRequest) ToInput() *domain.ChangePasswordInput {
	return &domain.ChangePasswordInput{
		CurrentPassword: r.CurrentPassword,
		NewPassword:     r.NewPassword,
	}
}

// AdminUpdateUserRequest contains the fields an admin may change on another
// user's account. Absent fields keep their stored value.
type AdminUpdateUserRequest struct {
	Nom   string `json:"nom"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// ToInput converts the request to a domain input.
func (r *AdminUpdateUserRequest) ToInput() *domain.AdminUpdateUserInput {
	return &domain.AdminUpdateUserInput{
		Nom:   r.Nom,
		Email: r.Email,
		Role:  authDomain.Role(r.Role),
	}
}

// UpdateRoleRequest carries the new role for a user.
type UpdateRoleRequest struct {
	Role string `json:"role"`
}
