package dto

import (
	authUseCase "github.com/proxym/collabmanager/internal/auth/usecase"
	userDomain "github.com/proxym/collabmanager/internal/user/domain"
)

// AuthResponse contains the result of a register, login or refresh operation.
type AuthResponse struct {
	Token   string `json:"token"`
	UserID  string `json:"userId"`
	Nom     string `json:"nom"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	Message string `json:"message,omitempty"`
}

// MapSessionToResponse converts a session to an API response.
func MapSessionToResponse(session *authUseCase.Session) AuthResponse {
	return AuthResponse{
		Token:   session.Token,
		UserID:  session.User.ID.String(),
		Nom:     session.User.Nom,
		Email:   session.User.Email,
		Role:    string(session.User.Role),
		Message: session.Message,
	}
}

// ValidateResponse reports whether a presented token is currently valid.
type ValidateResponse struct {
	Valid bool `json:"valid"`
}

// CheckEmailResponse reports whether an email is already registered.
type CheckEmailResponse struct {
	Exists bool `json:"exists"`
}

// ProfileResponse represents the authenticated caller in API responses.
type ProfileResponse struct {
	ID          string   `json:"id"`
	Nom         string   `json:"nom"`
	Email       string   `json:"email"`
	Role        string   `json:"role"`
	Authorities []string `json:"authorities"`
}

// MapUserToProfileResponse converts a domain user to a profile response.
func MapUserToProfileResponse(user *userDomain.User) ProfileResponse {
	return ProfileResponse{
		ID:          user.ID.String(),
		Nom:         user.Nom,
		Email:       user.Email,
		Role:        string(user.Role),
		Authorities: user.Role.Authorities(),
	}
}

// MessageResponse is a simple confirmation payload.
type MessageResponse struct {
	Message string `json:"message"`
}
