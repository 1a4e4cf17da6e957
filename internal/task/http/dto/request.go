// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/proxym/collabmanager/internal/task/domain"
)

// CreateTacheRequest contains the parameters for creating a task.
type CreateTacheRequest struct {
	Titre         string     `json:"titre"`
	Description   string     `json:"description"`
	Statut        string     `json:"statut"`
	Priorite      string     `json:"priorite"`
	DateLimite    *time.Time `json:"dateLimite"`
	ProjetID      string     `json:"projetId"`
	UtilisateurID *string    `json:"utilisateurId"`
}

// ToInput converts the request to a domain input. Identifier parse errors are
// reported by the caller.
func (r *CreateTacheRequest) ToInput() (*domain.CreateTacheInput, error) {
	projetID, err := uuid.Parse(r.ProjetID)
	if err != nil {
		return nil, err
	}

	var utilisateurID *uuid.UUID
	if r.UtilisateurID != nil && *r.UtilisateurID != "" {
		id, err := uuid.Parse(*r.UtilisateurID)
		if err != nil {
			return nil, err
		}
		utilisateurID = &id
	}

	return &domain.CreateTacheInput{
		Titre:         r.Titre,
		Description:   r.Description,
		Statut:        domain.Statut(r.Statut),
		Priorite:      domain.Priorite(r.Priorite),
		DateLimite:    r.DateLimite,
		ProjetID:      projetID,
		UtilisateurID: utilisateurID,
	}, nil
}

// UpdateTacheRequest contains the mutable task fields.
type UpdateTacheRequest struct {
	Titre         string     `json:"titre"`
	Description   string     `json:"description"`
	Statut        string     `json:"statut"`
	Priorite      string     `json:"priorite"`
	DateLimite    *time.Time `json:"dateLimite"`
	UtilisateurID *string    `json:"utilisateurId"`
}

// ToInput converts the request to a domain input.
func (r *UpdateTacheRequest) ToInput() (*domain.UpdateTacheInput, error) {
	var utilisateurID *uuid.UUID
	if r.UtilisateurID != nil && *r.UtilisateurID != "" {
		id, err := uuid.Parse(*r.UtilisateurID)
		if err != nil {
			return nil, err
		}
		utilisateurID = &id
	}

	return &domain.UpdateTacheInput{
		Titre:         r.Titre,
		Description:   r.Description,
		Statut:        domain.Statut(r.Statut),
		Priorite:      domain.Priorite(r.Priorite),
		DateLimite:    r.DateLimite,
		UtilisateurID: utilisateurID,
	}, nil
}

// UpdateStatutRequest carries the new state for a task.
type UpdateStatutRequest struct {
	Statut string `json:"statut"`
}
