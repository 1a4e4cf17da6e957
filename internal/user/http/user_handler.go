// Package http provides HTTP handlers for user management operations.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authDomain "github.com/proxym/collabmanager/internal/auth/domain"
	authHTTP "github.com/proxym/collabmanager/internal/auth/http"
	apperrors "github.com/proxym/collabmanager/internal/errors"
	"github.com/proxym/collabmanager/internal/httputil"
	"github.com/proxym/collabmanager/internal/user/http/dto"
	userUseCase "github.com/proxym/collabmanager/internal/user/usecase"
)

// UserHandler handles HTTP requests for user management.
type UserHandler struct {
	userUseCase userUseCase.UserUseCase
	logger      *slog.Logger
}

// NewUserHandler creates a new user handler with required dependencies.
func NewUserHandler(userUseCase userUseCase.UserUseCase, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
		logger:      logger,
	}
}

// MyProfileHandler returns the authenticated caller's profile.
// GET /utilisateurs/mon-profil - Any authenticated role.
func (h *UserHandler) MyProfileHandler(c *gin.Context) {
	user, ok := authHTTP.GetUser(c.Request.Context())
	if !ok || user == nil {
		httputil.HandleError(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapUserToResponse(user))
}

// UpdateMyProfileHandler updates the authenticated caller's profile fields.
// PUT /utilisateurs/mon-profil - Any authenticated role.
func (h *UserHandler) UpdateMyProfileHandler(c *gin.Context) {
	user, ok := authHTTP.GetUser(c.Request.Context())
	if !ok || user == nil {
		httputil.HandleError(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequest(c, err, h.logger)
		return
	}

	updated, err := h.userUseCase.UpdateProfile(c.Request.Context(), user.ID, req.ToInput())
	if err != nil {
		httputil.HandleError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapUserToResponse(updated))
}

// ChangeMyPasswordHandler changes the caller's password with proof of the old one.
// PUT /utilisateurs/mon-profil/mot-de-passe - Any authenticated role.
func (h *UserHandler) ChangeMyPasswordHandler(c *gin.Context) {
	user, ok := authHTTP.GetUser(c.Request.Context())
	if !ok || user == nil {
		httputil.HandleError(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequest(c, err, h.logger)
		return
	}

	if err := h.userUseCase.ChangePassword(c.Request.Context(), user.ID, req.ToInput()); err != nil {
		httputil.HandleError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "password updated"})
}

// CreateUserHandler creates a user with an admin-chosen role.
// POST /utilisateurs/admin/create - ADMIN only.
func (h *UserHandler) CreateUserHandler(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequest(c, err, h.logger)
		return
	}

	user, err := h.userUseCase.CreateUser(c.Request.Context(), req.ToInput())
	if err != nil {
		httputil.HandleError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapUserToResponse(user))
}

// UpdateRoleHandler replaces a user's role.
// PUT /utilisateurs/admin/:id/role - ADMIN only.
// The new role governs authorization on the user's very next request; any
// token issued under the old role keeps only its informational claims.
func (h *UserHandler) UpdateRoleHandler(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleError(c,
			apperrors.Wrap(apperrors.ErrInvalidInput, "invalid user id"),
			h.logger)
		return
	}

	var req dto.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequest(c, err, h.logger)
		return
	}

	user, err := h.userUseCase.UpdateRole(c.Request.Context(), id, authDomain.Role(req.Role))
	if err != nil {
		httputil.HandleError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapUserToResponse(user))
}

// AdminUpdateUserHandler updates another user's nom, email and role.
// PUT /utilisateurs/admin/:id - ADMIN only.
// Fields absent from the body keep their stored value.
func (h *UserHandler) AdminUpdateUserHandler(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleError(c,
			apperrors.Wrap(apperrors.ErrInvalidInput, "invalid user id"),
			h.logger)
		return
	}

	var req dto.AdminUpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequest(c, err, h.logger)
		return
	}

	user, err := h.userUseCase.AdminUpdateUser(c.Request.Context(), id, req.ToInput())
	if err != nil {
		httputil.HandleError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapUserToResponse(user))
}

// ListUsersHandler returns all users.
// GET /utilisateurs/all - ADMIN only.
func (h *UserHandler) ListUsersHandler(c *gin.Context) {
	users, err := h.userUseCase.List(c.Request.Context())
	if err != nil {
		httputil.HandleError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapUsersToListResponse(users))
}

// GetByEmailHandler looks up a user by email.
// GET /utilisateurs/email?email=<email> - ADMIN only.
func (h *UserHandler) GetByEmailHandler(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		httputil.HandleError(c,
			apperrors.Wrap(apperrors.ErrInvalidInput, "email query parameter is required"),
			h.logger)
		return
	}

	user, err := h.userUseCase.GetByEmail(c.Request.Context(), email)
	if err != nil {
		httputil.HandleError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapUserToResponse(user))
}

// SearchByNomHandler searches users by name.
// GET /utilisateurs/nom?nom=<term> - ADMIN only.
func (h *UserHandler) SearchByNomHandler(c *gin.Context) {
	nom := c.Query("nom")
	if nom == "" {
		httputil.HandleError(c,
			apperrors.Wrap(apperrors.ErrInvalidInput, "nom query parameter is required"),
			h.logger)
		return
	}

	users, err := h.userUseCase.SearchByNom(c.Request.Context(), nom)
	if err != nil {
		httputil.HandleError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapUsersToListResponse(users))
}

// GetByRoleHandler lists users with a given role.
// GET /utilisateurs/role?role=<role> - ADMIN only.
func (h *UserHandler) GetByRoleHandler(c *gin.Context) {
	role := c.Query("role")
	if role == "" {
		httputil.HandleError(c,
			apperrors.Wrap(apperrors.ErrInvalidInput, "role query parameter is required"),
			h.logger)
		return
	}

	users, err := h.userUseCase.GetByRole(c.Request.Context(), authDomain.Role(role))
	if err != nil {
		httputil.HandleError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapUsersToListResponse(users))
}

// CountHandler returns the total number of users.
// GET /utilisateurs/count - ADMIN only.
func (h *UserHandler) CountHandler(c *gin.Context) {
	count, err := h.userUseCase.Count(c.Request.Context())
	if err != nil {
		httputil.HandleError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.CountResponse{Count: count})
}

// GetByIDHandler looks up a user by ID.
// GET /utilisateurs/:id - ADMIN only.
func (h *UserHandler) GetByIDHandler(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleError(c,
			apperrors.Wrap(apperrors.ErrInvalidInput, "invalid user id"),
			h.logger)
		return
	}

	user, err := h.userUseCase.GetByID(c.Request.Context(), id)
	if err != nil {
		httputil.HandleError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapUserToResponse(user))
}

// DeleteHandler removes a user.
// DELETE /utilisateurs/:id - ADMIN only.
func (h *UserHandler) DeleteHandler(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleError(c,
			apperrors.Wrap(apperrors.ErrInvalidInput, "invalid user id"),
			h.logger)
		return
	}

	if err := h.userUseCase.Delete(c.Request.Context(), id); err != nil {
		httputil.HandleError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "user deleted"})
}
