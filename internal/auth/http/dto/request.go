// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	authUseCase "github.com/proxym/collabmanager/internal/auth/usecase"
)

// RegisterRequest contains the parameters for public self-registration.
// Any role field sent by the client is deliberately absent here: the stored
// role is always MEMBRE_EQUIPE.
type RegisterRequest struct {
	Nom      string `json:"nom"`
	Email    string `json:"email"`
	Password string `json:"motDePasse"`
}

// ToInput converts the request to a use case input.
func (r *RegisterRequest) ToInput() *authUseCase.RegisterInput {
	return &authUseCase.RegisterInput{
		Nom:      r.Nom,
		Email:    r.Email,
		Password: r.Password,
	}
}

// LoginRequest contains the credentials presented on login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"motDePasse"`
}

// ToInput converts the request to a use case input.
func (r *LoginRequest) ToInput() *authUseCase.LoginInput {
	return &authUseCase.LoginInput{
		Email:    r.Email,
		Password: r.Password,
	}
}

// RefreshRequest carries the token to renew. The token may include an
// optional "Bearer " prefix.
type RefreshRequest struct {
	Token string `json:"token"`
}

// ValidateRequest carries the token to check.
type ValidateRequest struct {
	Token string `json:"token"`
}
