// Package domain defines the core project domain entities and types.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/proxym/collabmanager/internal/errors"
)

// Statut is the lifecycle state of a project.
type Statut string

// Project lifecycle states.
const (
	StatutPlanifie Statut = "PLANIFIE"
	StatutEnCours  Statut = "EN_COURS"
	StatutTermine  Statut = "TERMINE"
	StatutAnnule   Statut = "ANNULE"
)

// IsValid reports whether the statut is one of the known states.
func (s Statut) IsValid() bool {
	switch s {
	case StatutPlanifie, StatutEnCours, StatutTermine, StatutAnnule:
		return true
	}
	return false
}

// Projet represents a managed project with its participant set.
type Projet struct {
	ID          uuid.UUID
	Nom         string
	Description string
	Statut      Statut
	DateDebut   time.Time
	DateFin     *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Statistiques summarizes the task progress of a project.
type Statistiques struct {
	ProjetID         uuid.UUID
	TotalTaches      int64
	TachesAFaire     int64
	TachesEnCours    int64
	TachesTerminees  int64
	NombreMembres    int64
	TauxAvancement   float64 // completed / total, 0 when no tasks
}

// Domain-specific errors for project operations.
var (
	// ErrProjetNotFound indicates the requested project does not exist.
	ErrProjetNotFound = errors.Wrap(errors.ErrNotFound, "projet not found")

	// ErrInvalidStatut indicates an unknown project statut value.
	ErrInvalidStatut = errors.Wrap(errors.ErrInvalidInput, "invalid projet statut")

	// ErrParticipantAlreadyAssigned indicates the user already participates
	// in the project.
	ErrParticipantAlreadyAssigned = errors.Wrap(errors.ErrConflict, "user is already a participant of this projet")

	// ErrParticipantNotAssigned indicates the user does not participate in
	// the project.
	ErrParticipantNotAssigned = errors.Wrap(errors.ErrNotFound, "user is not a participant of this projet")
)

// CreateProjetInput contains the parameters for creating a project.
type CreateProjetInput struct {
	Nom         string
	Description string
	Statut      Statut
	DateDebut   time.Time
	DateFin     *time.Time
}
