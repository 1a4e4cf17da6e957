// Package http provides HTTP handlers for task management operations.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/proxym/collabmanager/internal/auth/http"
	apperrors "github.com/proxym/collabmanager/internal/errors"
	"github.com/proxym/collabmanager/internal/httputil"
	"github.com/proxym/collabmanager/internal/task/domain"
	"github.com/proxym/collabmanager/internal/task/http/dto"
	tacheUseCase "github.com/proxym/collabmanager/internal/task/usecase"
)

// TacheHandler handles HTTP requests for task management.
type TacheHandler struct {
	tacheUseCase tacheUseCase.TacheUseCase
	logger       *slog.Logger
}

// NewTacheHandler creates a new task handler with required dependencies.
func NewTacheHandler(tacheUseCase tacheUseCase.TacheUseCase, logger *slog.Logger) *TacheHandler {
	return &TacheHandler{
		tacheUseCase: tacheUseCase,
		logger:       logger,
	}
}

// CreateHandler creates a new task.
// POST /taches/add - CHEF_DE_PROJECT only.
func (h *TacheHandler) CreateHandler(c *gin.Context) {
	var req dto.CreateTacheRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequest(c, err, h.logger)
		return
	}

	input, err := req.ToInput()
	if err != nil {
		httputil.HandleError(c,
			apperrors.Wrap(apperrors.ErrInvalidInput, "invalid identifier format"),
			h.logger)
		return
	}

	tache, err := h.tacheUseCase.Create(c.Request.Context(), input)
	if err != nil {
		httputil.HandleError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapTacheToResponse(tache))
}

// UpdateHandler replaces the mutable fields of a task.
// PUT /taches/:id/update - CHEF_DE_PROJECT only.
func (h *TacheHandler) UpdateHandler(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req dto.UpdateTacheRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequest(c, err, h.logger)
		return
	}

	input, err := req.ToInput()
	if err != nil {
		httputil.HandleError(c,
			apperrors.Wrap(apperrors.ErrInvalidInput, "invalid identifier format"),
			h.logger)
		return
	}

	tache, err := h.tacheUseCase.Update(c.Request.Context(), id, input)
	if err != nil {
		httputil.HandleError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapTacheToResponse(tache))
}

// UpdateStatutHandler moves a task to a new state.
// PUT /taches/:id/update-statut - MEMBRE_EQUIPE only (per the route rules);
// the use case additionally requires the task to be assigned to the caller.
func (h *TacheHandler) UpdateStatutHandler(c *gin.Context) {
	user, ok := authHTTP.GetUser(c.Request.Context())
	if !ok || user == nil {
		httputil.HandleError(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req dto.UpdateStatutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequest(c, err, h.logger)
		return
	}

	tache, err := h.tacheUseCase.UpdateStatut(c.Request.Context(), user, id, domain.Statut(req.Statut))
	if err != nil {
		httputil.HandleError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapTacheToResponse(tache))
}

// DeleteHandler removes a task.
// DELETE /taches/:id/delete - CHEF_DE_PROJECT only.
func (h *TacheHandler) DeleteHandler(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.tacheUseCase.Delete(c.Request.Context(), id); err != nil {
		httputil.HandleError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "tache deleted"})
}

// ListHandler returns all tasks.
// GET /taches/all - CHEF_DE_PROJECT only.
func (h *TacheHandler) ListHandler(c *gin.Context) {
	taches, err := h.tacheUseCase.List(c.Request.Context())
	if err != nil {
		httputil.HandleError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapTachesToListResponse(taches))
}

// GetByIDHandler looks up a task by ID.
// GET /taches/:id/tache - CHEF_DE_PROJECT only.
func (h *TacheHandler) GetByIDHandler(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	tache, err := h.tacheUseCase.GetByID(c.Request.Context(), id)
	if err != nil {
		httputil.HandleError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapTacheToResponse(tache))
}

// ListByUtilisateurHandler lists the tasks assigned to a user.
// GET /taches/utilisateur/:id - CHEF_DE_PROJECT only.
func (h *TacheHandler) ListByUtilisateurHandler(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	taches, err := h.tacheUseCase.ListByUtilisateur(c.Request.Context(), id)
	if err != nil {
		httputil.HandleError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapTachesToListResponse(taches))
}

// ListByProjetHandler lists the tasks of a project.
// GET /taches/projet/:id - CHEF_DE_PROJECT only.
func (h *TacheHandler) ListByProjetHandler(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	taches, err := h.tacheUseCase.ListByProjet(c.Request.Context(), id)
	if err != nil {
		httputil.HandleError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapTachesToListResponse(taches))
}

// ListByUtilisateurAndStatutHandler lists a user's tasks in a given state.
// GET /taches/utilisateur/:id/statut?statut=<statut> - CHEF_DE_PROJECT only.
func (h *TacheHandler) ListByUtilisateurAndStatutHandler(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	statut := c.Query("statut")
	if statut == "" {
		httputil.HandleError(c,
			apperrors.Wrap(apperrors.ErrInvalidInput, "statut query parameter is required"),
			h.logger)
		return
	}

	taches, err := h.tacheUseCase.ListByUtilisateurAndStatut(c.Request.Context(), id, domain.Statut(statut))
	if err != nil {
		httputil.HandleError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapTachesToListResponse(taches))
}

// MyTasksHandler lists the tasks assigned to the caller.
// GET /taches/mes-taches - MEMBRE_EQUIPE only.
func (h *TacheHandler) MyTasksHandler(c *gin.Context) {
	user, ok := authHTTP.GetUser(c.Request.Context())
	if !ok || user == nil {
		httputil.HandleError(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	taches, err := h.tacheUseCase.ListByUtilisateur(c.Request.Context(), user.ID)
	if err != nil {
		httputil.HandleError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapTachesToListResponse(taches))
}

// ListByStatutHandler lists tasks in a given state.
// GET /taches/statut?statut=<statut> - CHEF_DE_PROJECT and MEMBRE_EQUIPE.
func (h *TacheHandler) ListByStatutHandler(c *gin.Context) {
	statut := c.Query("statut")
	if statut == "" {
		httputil.HandleError(c,
			apperrors.Wrap(apperrors.ErrInvalidInput, "statut query parameter is required"),
			h.logger)
		return
	}

	taches, err := h.tacheUseCase.ListByStatut(c.Request.Context(), domain.Statut(statut))
	if err != nil {
		httputil.HandleError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapTachesToListResponse(taches))
}

// parseID extracts and validates the :id route parameter.
func (h *TacheHandler) parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleError(c,
			apperrors.Wrap(apperrors.ErrInvalidInput, "invalid tache id"),
			h.logger)
		return uuid.Nil, false
	}
	return id, true
}
