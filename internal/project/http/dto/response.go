package dto

import (
	"time"

	"github.com/proxym/collabmanager/internal/project/domain"
	userDomain "github.com/proxym/collabmanager/internal/user/domain"
)

// ProjetResponse represents a project in API responses.
type ProjetResponse struct {
	ID          string     `json:"id"`
	Nom         string     `json:"nom"`
	Description string     `json:"description"`
	Statut      string     `json:"statut"`
	DateDebut   time.Time  `json:"dateDebut"`
	DateFin     *time.Time `json:"dateFin,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// MapProjetToResponse converts a domain project to an API response.
func MapProjetToResponse(projet *domain.Projet) ProjetResponse {
	return ProjetResponse{
		ID:          projet.ID.String(),
		Nom:         projet.Nom,
		Description: projet.Description,
		Statut:      string(projet.Statut),
		DateDebut:   projet.DateDebut,
		DateFin:     projet.DateFin,
		CreatedAt:   projet.CreatedAt,
		UpdatedAt:   projet.UpdatedAt,
	}
}

// ListProjetsResponse represents a list of projects in API responses.
type ListProjetsResponse struct {
	Data []ProjetResponse `json:"data"`
}

// MapProjetsToListResponse converts a slice of domain projects to a list API response.
func MapProjetsToListResponse(projets []*domain.Projet) ListProjetsResponse {
	projetResponses := make([]ProjetResponse, 0, len(projets))
	for _, projet := range projets {
		projetResponses = append(projetResponses, MapProjetToResponse(projet))
	}
	return ListProjetsResponse{
		Data: projetResponses,
	}
}

// ParticipantResponse represents a project participant in API responses.
type ParticipantResponse struct {
	ID    string `json:"id"`
	Nom   string `json:"nom"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// ListParticipantsResponse represents the participants of a project.
type ListParticipantsResponse struct {
	Data []ParticipantResponse `json:"data"`
}

// MapUsersToParticipantsResponse converts domain users to a participant list response.
func MapUsersToParticipantsResponse(users []*userDomain.User) ListParticipantsResponse {
	participants := make([]ParticipantResponse, 0, len(users))
	for _, user := range users {
		participants = append(participants, ParticipantResponse{
			ID:    user.ID.String(),
			Nom:   user.Nom,
			Email: user.Email,
			Role:  string(user.Role),
		})
	}
	return ListParticipantsResponse{
		Data: participants,
	}
}

// StatistiquesResponse summarizes the task progress of a project.
type StatistiquesResponse struct {
	ProjetID        string  `json:"projetId"`
	TotalTaches     int64   `json:"totalTaches"`
	TachesAFaire    int64   `json:"tachesAFaire"`
	TachesEnCours   int64   `json:"tachesEnCours"`
	TachesTerminees int64   `json:"tachesTerminees"`
	NombreMembres   int64   `json:"nombreMembres"`
	TauxAvancement  float64 `json:"tauxAvancement"`
}

// MapStatistiquesToResponse converts domain statistics to an API response.
func MapStatistiquesToResponse(stats *domain.Statistiques) StatistiquesResponse {
	return StatistiquesResponse{
		ProjetID:        stats.ProjetID.String(),
		TotalTaches:     stats.TotalTaches,
		TachesAFaire:    stats.TachesAFaire,
		TachesEnCours:   stats.TachesEnCours,
		TachesTerminees: stats.TachesTerminees,
		NombreMembres:   stats.NombreMembres,
		TauxAvancement:  stats.TauxAvancement,
	}
}

// MessageResponse is a simple confirmation payload.
type MessageResponse struct {
	Message string `json:"message"`
}
