package dto

import (
	"time"

	"github.com/proxym/collabmanager/internal/task/domain"
)

// TacheResponse represents a task in API responses.
type TacheResponse struct {
	ID            string     `json:"id"`
	Titre         string     `json:"titre"`
	Description   string     `json:"description"`
	Statut        string     `json:"statut"`
	Priorite      string     `json:"priorite"`
	DateLimite    *time.Time `json:"dateLimite,omitempty"`
	ProjetID      string     `json:"projetId"`
	UtilisateurID *string    `json:"utilisateurId,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// MapTacheToResponse converts a domain task to an API response.
func MapTacheToResponse(tache *domain.Tache) TacheResponse {
	resp := TacheResponse{
		ID:          tache.ID.String(),
		Titre:       tache.Titre,
		Description: tache.Description,
		Statut:      string(tache.Statut),
		Priorite:    string(tache.Priorite),
		DateLimite:  tache.DateLimite,
		ProjetID:    tache.ProjetID.String(),
		CreatedAt:   tache.CreatedAt,
		UpdatedAt:   tache.UpdatedAt,
	}
	if tache.UtilisateurID != nil {
		id := tache.UtilisateurID.String()
		resp.UtilisateurID = &id
	}
	return resp
}

// ListTachesResponse represents a list of tasks in API responses.
type ListTachesResponse struct {
	Data []TacheResponse `json:"data"`
}

// MapTachesToListResponse converts a slice of domain tasks to a list API response.
func MapTachesToListResponse(taches []*domain.Tache) ListTachesResponse {
	tacheResponses := make([]TacheResponse, 0, len(taches))
	for _, tache := range taches {
		tacheResponses = append(tacheResponses, MapTacheToResponse(tache))
	}
	return ListTachesResponse{
		Data: tacheResponses,
	}
}

// MessageResponse is a simple confirmation payload.
type MessageResponse struct {
	Message string `json:"message"`
}
