// Package domain defines the core task domain entities and types.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/proxym/collabmanager/internal/errors"
)

// Statut is the lifecycle state of a task.
type Statut string

// Task lifecycle states.
const (
	StatutAFaire  Statut = "A_FAIRE"
	StatutEnCours Statut = "EN_COURS"
	StatutTermine Statut = "TERMINE"
)

// IsValid reports whether the statut is one of the known states.
func (s Statut) IsValid() bool {
	switch s {
	case StatutAFaire, StatutEnCours, StatutTermine:
		return true
	}
	return false
}

// Priorite is the urgency ranking of a task.
type Priorite string

// Task priorities.
const (
	PrioriteBasse   Priorite = "BASSE"
	PrioriteMoyenne Priorite = "MOYENNE"
	PrioriteHaute   Priorite = "HAUTE"
)

// IsValid reports whether the priorite is one of the known rankings.
func (p Priorite) IsValid() bool {
	switch p {
	case PrioriteBasse, PrioriteMoyenne, PrioriteHaute:
		return true
	}
	return false
}

// Tache represents a unit of work inside a project, optionally assigned to a
// user.
type Tache struct {
	ID            uuid.UUID
	Titre         string
	Description   string
	Statut        Statut
	Priorite      Priorite
	DateLimite    *time.Time
	ProjetID      uuid.UUID
	UtilisateurID *uuid.UUID
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Domain-specific errors for task operations.
var (
	// ErrTacheNotFound indicates the requested task does not exist.
	ErrTacheNotFound = errors.Wrap(errors.ErrNotFound, "tache not found")

	// ErrInvalidStatut indicates an unknown task statut value.
	ErrInvalidStatut = errors.Wrap(errors.ErrInvalidInput, "invalid tache statut")

	// ErrInvalidPriorite indicates an unknown task priorite value.
	ErrInvalidPriorite = errors.Wrap(errors.ErrInvalidInput, "invalid tache priorite")

	// ErrNotAssignee indicates the caller tried to act on a task assigned to
	// someone else.
	ErrNotAssignee = errors.Wrap(errors.ErrForbidden, "tache is not assigned to the caller")
)

// CreateTacheInput contains the parameters for creating a task.
type CreateTacheInput struct {
	Titre         string
	Description   string
	Statut        Statut
	Priorite      Priorite
	DateLimite    *time.Time
	ProjetID      uuid.UUID
	UtilisateurID *uuid.UUID
}

// UpdateTacheInput contains the mutable task fields.
type UpdateTacheInput struct {
	Titre         string
	Description   string
	Statut        Statut
	Priorite      Priorite
	DateLimite    *time.Time
	UtilisateurID *uuid.UUID
}
