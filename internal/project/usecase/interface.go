// Package usecase implements business logic orchestration for project operations.
package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/proxym/collabmanager/internal/project/domain"
	userDomain "github.com/proxym/collabmanager/internal/user/domain"
)

// ProjetUseCase defines the project management operations.
type ProjetUseCase interface {
	// Create creates a new project. A zero statut defaults to PLANIFIE.
	Create(ctx context.Context, input *domain.CreateProjetInput) (*domain.Projet, error)

	// GetByID retrieves a project by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Projet, error)

	// List retrieves all projects.
	List(ctx context.Context) ([]*domain.Projet, error)

	// SearchByNom retrieves projects whose name contains the term.
	SearchByNom(ctx context.Context, nom string) ([]*domain.Projet, error)

	// GetByStatut retrieves all projects in the given state.
	GetByStatut(ctx context.Context, statut domain.Statut) ([]*domain.Projet, error)

	// UpdateStatut replaces the state of a project.
	UpdateStatut(ctx context.Context, id uuid.UUID, statut domain.Statut) (*domain.Projet, error)

	// Delete removes a project and its participant links.
	Delete(ctx context.Context, id uuid.UUID) error

	// AssignParticipant links a user to a project.
	AssignParticipant(ctx context.Context, projetID, utilisateurID uuid.UUID) error

	// RemoveParticipant unlinks a user from a project.
	RemoveParticipant(ctx context.Context, projetID, utilisateurID uuid.UUID) error

	// ListParticipants retrieves the users participating in a project.
	ListParticipants(ctx context.Context, projetID uuid.UUID) ([]*userDomain.User, error)

	// ListWithoutParticipants retrieves projects that have no participants.
	ListWithoutParticipants(ctx context.Context) ([]*domain.Projet, error)

	// ListByParticipant retrieves the projects a user participates in.
	ListByParticipant(ctx context.Context, utilisateurID uuid.UUID) ([]*domain.Projet, error)

	// GetStatistiques aggregates task and membership counts for a project.
	GetStatistiques(ctx context.Context, projetID uuid.UUID) (*domain.Statistiques, error)
}

// ProjetRepository defines the persistence operations the project use case needs.
type ProjetRepository interface {
	Create(ctx context.Context, projet *domain.Projet) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Projet, error)
	List(ctx context.Context) ([]*domain.Projet, error)
	SearchByNom(ctx context.Context, nom string) ([]*domain.Projet, error)
	GetByStatut(ctx context.Context, statut domain.Statut) ([]*domain.Projet, error)
	UpdateStatut(ctx context.Context, id uuid.UUID, statut domain.Statut) error
	Delete(ctx context.Context, id uuid.UUID) error
	AssignParticipant(ctx context.Context, projetID, utilisateurID uuid.UUID) error
	RemoveParticipant(ctx context.Context, projetID, utilisateurID uuid.UUID) error
	ListParticipantIDs(ctx context.Context, projetID uuid.UUID) ([]uuid.UUID, error)
	IsParticipant(ctx context.Context, projetID, utilisateurID uuid.UUID) (bool, error)
	ListWithoutParticipants(ctx context.Context) ([]*domain.Projet, error)
	ListByParticipant(ctx context.Context, utilisateurID uuid.UUID) ([]*domain.Projet, error)
	GetStatistiques(ctx context.Context, projetID uuid.UUID) (*domain.Statistiques, error)
}

// UserReader defines the user lookups the project use case needs.
type UserReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*userDomain.User, error)
}
