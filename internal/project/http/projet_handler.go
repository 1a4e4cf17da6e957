// Package http provides HTTP handlers for project management operations.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/proxym/collabmanager/internal/auth/http"
	apperrors "github.com/proxym/collabmanager/internal/errors"
	"github.com/proxym/collabmanager/internal/httputil"
	"github.com/proxym/collabmanager/internal/project/domain"
	"github.com/proxym/collabmanager/internal/project/http/dto"
	projetUseCase "github.com/proxym/collabmanager/internal/project/usecase"
)

// ProjetHandler handles HTTP requests for project management.
type ProjetHandler struct {
	projetUseCase projetUseCase.ProjetUseCase
	logger        *slog.Logger
}

// NewProjetHandler creates a new project handler with required dependencies.
func NewProjetHandler(projetUseCase projetUseCase.ProjetUseCase, logger *slog.Logger) *ProjetHandler {
	return &ProjetHandler{
		projetUseCase: projetUseCase,
		logger:        logger,
	}
}

// CreateHandler creates a new project.
// POST /projets/add - ADMIN only.
func (h *ProjetHandler) CreateHandler(c *gin.Context) {
	var req dto.CreateProjetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequest(c, err, h.logger)
		return
	}

	projet, err := h.projetUseCase.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		httputil.HandleError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapProjetToResponse(projet))
}

// ListHandler returns all projects.
// GET /projets/all - ADMIN only.
func (h *ProjetHandler) ListHandler(c *gin.Context) {
	projets, err := h.projetUseCase.List(c.Request.Context())
	if err != nil {
		httputil.HandleError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapProjetsToListResponse(projets))
}

// SearchHandler searches projects by name.
// GET /projets/search?nom=<term> - ADMIN only.
func (h *ProjetHandler) SearchHandler(c *gin.Context) {
	nom := c.Query("nom")
	if nom == "" {
		httputil.HandleError(c,
			apperrors.Wrap(apperrors.ErrInvalidInput, "nom query parameter is required"),
			h.logger)
		return
	}

	projets, err := h.projetUseCase.SearchByNom(c.Request.Context(), nom)
	if err != nil {
		httputil.HandleError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapProjetsToListResponse(projets))
}

// GetByStatutHandler lists projects in a given state.
// GET /projets/statut?statut=<statut> - Any authenticated role.
func (h *ProjetHandler) GetByStatutHandler(c *gin.Context) {
	statut := c.Query("statut")
	if statut == "" {
		httputil.HandleError(c,
			apperrors.Wrap(apperrors.ErrInvalidInput, "statut query parameter is required"),
			h.logger)
		return
	}

	projets, err := h.projetUseCase.GetByStatut(c.Request.Context(), domain.Statut(statut))
	if err != nil {
		httputil.HandleError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapProjetsToListResponse(projets))
}

// GetByIDHandler looks up a project by ID.
// GET /projets/:id/projet - Any authenticated role.
func (h *ProjetHandler) GetByIDHandler(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	projet, err := h.projetUseCase.GetByID(c.Request.Context(), id)
	if err != nil {
		httputil.HandleError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapProjetToResponse(projet))
}

// UpdateStatutHandler replaces the state of a project.
// PUT /projets/:id/statut - ADMIN and CHEF_DE_PROJECT.
func (h *ProjetHandler) UpdateStatutHandler(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req dto.UpdateStatutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequest(c, err, h.logger)
		return
	}

	projet, err := h.projetUseCase.UpdateStatut(c.Request.Context(), id, domain.Statut(req.Statut))
	if err != nil {
		httputil.HandleError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapProjetToResponse(projet))
}

// DeleteHandler removes a project.
// DELETE /projets/:id/delete - ADMIN only.
func (h *ProjetHandler) DeleteHandler(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.projetUseCase.Delete(c.Request.Context(), id); err != nil {
		httputil.HandleError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "projet deleted"})
}

// AssignParticipantHandler links a user to a project.
// POST /projets/:id/assigner/:utilisateurId - ADMIN only.
func (h *ProjetHandler) AssignParticipantHandler(c *gin.Context) {
	projetID, ok := h.parseID(c)
	if !ok {
		return
	}

	utilisateurID, err := uuid.Parse(c.Param("utilisateurId"))
	if err != nil {
		httputil.HandleError(c,
			apperrors.Wrap(apperrors.ErrInvalidInput, "invalid utilisateur id"),
			h.logger)
		return
	}

	if err := h.projetUseCase.AssignParticipant(c.Request.Context(), projetID, utilisateurID); err != nil {
		httputil.HandleError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "participant assigned"})
}

// RemoveParticipantHandler unlinks a user from a project.
// DELETE /projets/:id/retirer/:utilisateurId - ADMIN only.
func (h *ProjetHandler) RemoveParticipantHandler(c *gin.Context) {
	projetID, ok := h.parseID(c)
	if !ok {
		return
	}

	utilisateurID, err := uuid.Parse(c.Param("utilisateurId"))
	if err != nil {
		httputil.HandleError(c,
			apperrors.Wrap(apperrors.ErrInvalidInput, "invalid utilisateur id"),
			h.logger)
		return
	}

	if err := h.projetUseCase.RemoveParticipant(c.Request.Context(), projetID, utilisateurID); err != nil {
		httputil.HandleError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "participant removed"})
}

// ListParticipantsHandler returns the users participating in a project.
// GET /projets/:id/participants - Any authenticated role.
func (h *ProjetHandler) ListParticipantsHandler(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	users, err := h.projetUseCase.ListParticipants(c.Request.Context(), id)
	if err != nil {
		httputil.HandleError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapUsersToParticipantsResponse(users))
}

// ListWithoutParticipantsHandler returns projects that have no participants.
// GET /projets/sans-participants - ADMIN only.
func (h *ProjetHandler) ListWithoutParticipantsHandler(c *gin.Context) {
	projets, err := h.projetUseCase.ListWithoutParticipants(c.Request.Context())
	if err != nil {
		httputil.HandleError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapProjetsToListResponse(projets))
}

// MyProjectsHandler returns the projects the caller participates in.
// GET /projets/mes-projets - CHEF_DE_PROJECT and MEMBRE_EQUIPE.
func (h *ProjetHandler) MyProjectsHandler(c *gin.Context) {
	user, ok := authHTTP.GetUser(c.Request.Context())
	if !ok || user == nil {
		httputil.HandleError(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	projets, err := h.projetUseCase.ListByParticipant(c.Request.Context(), user.ID)
	if err != nil {
		httputil.HandleError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapProjetsToListResponse(projets))
}

// StatistiquesHandler returns task and membership statistics for a project.
// GET /projets/:id/statistiques - ADMIN and CHEF_DE_PROJECT.
func (h *ProjetHandler) StatistiquesHandler(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	stats, err := h.projetUseCase.GetStatistiques(c.Request.Context(), id)
	if err != nil {
		httputil.HandleError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapStatistiquesToResponse(stats))
}

// parseID extracts and validates the :id route parameter.
func (h *ProjetHandler) parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleError(c,
			apperrors.Wrap(apperrors.ErrInvalidInput, "invalid projet id"),
			h.logger)
		return uuid.Nil, false
	}
	return id, true
}
