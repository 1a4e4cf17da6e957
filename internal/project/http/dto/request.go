// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"time"

	"github.com/proxym/collabmanager/internal/project/domain"
)

// CreateProjetRequest contains the parameters for creating a project.
type CreateProjetRequest struct {
	Nom         string     `json:"nom"`
	Description string     `json:"description"`
	Statut      string     `json:"statut"`
	DateDebut   time.Time  `json:"dateDebut"`
	DateFin     *time.Time `json:"dateFin"`
}

// ToInput converts the request to a domain input.
func (r *CreateProjetRequest) ToInput() *domain.CreateProjetInput {
	return &domain.CreateProjetInput{
		Nom:         r.Nom,
		Description: r.Description,
		Statut:      domain.Statut(r.Statut),
		DateDebut:   r.DateDebut,
		DateFin:     r.DateFin,
	}
}

// UpdateStatutRequest carries the new state for a project.
type UpdateStatutRequest struct {
	Statut string `json:"statut"`
}
