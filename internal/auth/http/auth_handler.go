package http

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/proxym/collabmanager/internal/auth/http/dto"
	authUseCase "github.com/proxym/collabmanager/internal/auth/usecase"
	apperrors "github.com/proxym/collabmanager/internal/errors"
	"github.com/proxym/collabmanager/internal/httputil"
)

// AuthHandler handles HTTP requests for the authentication endpoints.
type AuthHandler struct {
	authUseCase authUseCase.AuthUseCase
	logger      *slog.Logger
}

// NewAuthHandler creates a new auth handler with required dependencies.
func NewAuthHandler(authUseCase authUseCase.AuthUseCase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
		logger:      logger,
	}
}

// RegisterHandler creates a new account and logs it in.
// POST /auth/register - No authentication required.
// Returns 200 OK with a fresh token; 400 on validation failure or duplicate email.
func (h *AuthHandler) RegisterHandler(c *gin.Context) {
	var req dto.RegisterRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequest(c, err, h.logger)
		return
	}

	session, err := h.authUseCase.Register(c.Request.Context(), req.ToInput())
	if err != nil {
		httputil.HandleError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapSessionToResponse(session))
}

// LoginHandler verifies credentials and issues a fresh token.
// POST /auth/login - No authentication required.
// Returns 200 OK with the token; 401 on wrong email or password.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var req dto.LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequest(c, err, h.logger)
		return
	}

	session, err := h.authUseCase.Login(c.Request.Context(), req.ToInput())
	if err != nil {
		httputil.HandleError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapSessionToResponse(session))
}

// RefreshHandler renews a token whose expiry may already have passed.
// POST /auth/refresh - No authentication required; the presented token itself
// is the proof. The token may come from the request body or, as a fallback,
// the Authorization header.
// Returns 200 OK with a brand-new token; 401 on a tampered or unknown token.
func (h *AuthHandler) RefreshHandler(c *gin.Context) {
	var req dto.RefreshRequest

	// Body is optional; the Authorization header is an accepted alternative
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		httputil.HandleBadRequest(c, err, h.logger)
		return
	}

	token := req.Token
	if token == "" {
		token = c.GetHeader("Authorization")
	}

	session, err := h.authUseCase.Refresh(c.Request.Context(), token)
	if err != nil {
		httputil.HandleError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapSessionToResponse(session))
}

// ValidateHandler reports whether a presented token is currently valid.
// POST /auth/validate - No authentication required.
// Always returns 200 OK with {"valid": true|false}; never an error status.
func (h *AuthHandler) ValidateHandler(c *gin.Context) {
	var req dto.ValidateRequest

	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusOK, dto.ValidateResponse{Valid: false})
		return
	}

	token := req.Token
	if token == "" {
		token = stripBearerPrefix(c.GetHeader("Authorization"))
	}

	valid := h.authUseCase.ValidateToken(c.Request.Context(), token)
	c.JSON(http.StatusOK, dto.ValidateResponse{Valid: valid})
}

// stripBearerPrefix removes an optional "Bearer " prefix, case-insensitive.
func stripBearerPrefix(header string) string {
	const prefix = "bearer "
	header = strings.TrimSpace(header)
	if len(header) >= len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return header
}

// CheckEmailHandler reports whether an email is already registered.
// GET /auth/check-email?email=<email> - No authentication required.
func (h *AuthHandler) CheckEmailHandler(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		httputil.HandleError(c,
			apperrors.Wrap(apperrors.ErrInvalidInput, "email query parameter is required"),
			h.logger)
		return
	}

	exists, err := h.authUseCase.EmailExists(c.Request.Context(), email)
	if err != nil {
		httputil.HandleError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.CheckEmailResponse{Exists: exists})
}

// LogoutHandler acknowledges a logout request.
// POST /auth/logout - No authentication required.
// Tokens are stateless and cannot be revoked server-side; clients discard
// theirs locally. The endpoint exists so clients have a uniform call to make.
func (h *AuthHandler) LogoutHandler(c *gin.Context) {
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "logout successful"})
}

// ProfileHandler returns the authenticated caller's identity.
// GET /auth/profile - Authentication required.
func (h *AuthHandler) ProfileHandler(c *gin.Context) {
	user, ok := GetUser(c.Request.Context())
	if !ok || user == nil {
		httputil.HandleError(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapUserToProfileResponse(user))
}
