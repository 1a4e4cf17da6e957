// Package usecase implements business logic orchestration for task operations.
package usecase

import (
	"context"

	"github.com/google/uuid"

	projectDomain "github.com/proxym/collabmanager/internal/project/domain"
	"github.com/proxym/collabmanager/internal/task/domain"
	userDomain "github.com/proxym/collabmanager/internal/user/domain"
)

// TacheUseCase defines the task management operations.
type TacheUseCase interface {
	// Create creates a new task inside an existing project. A zero statut
	// defaults to A_FAIRE, a zero priorite to MOYENNE.
	Create(ctx context.Context, input *domain.CreateTacheInput) (*domain.Tache, error)

	// GetByID retrieves a task by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Tache, error)

	// Update replaces the mutable fields of a task.
	Update(ctx context.Context, id uuid.UUID, input *domain.UpdateTacheInput) (*domain.Tache, error)

	// UpdateStatut replaces the state of a task on behalf of the caller.
	// When the caller is a MEMBRE_EQUIPE, the task must be assigned to them;
	// otherwise the operation is forbidden even though the role allows the
	// route.
	UpdateStatut(ctx context.Context, caller *userDomain.User, id uuid.UUID, statut domain.Statut) (*domain.Tache, error)

	// Delete removes a task.
	Delete(ctx context.Context, id uuid.UUID) error

	// List retrieves all tasks.
	List(ctx context.Context) ([]*domain.Tache, error)

	// ListByUtilisateur retrieves the tasks assigned to a user.
	ListByUtilisateur(ctx context.Context, utilisateurID uuid.UUID) ([]*domain.Tache, error)

	// ListByProjet retrieves the tasks of a project.
	ListByProjet(ctx context.Context, projetID uuid.UUID) ([]*domain.Tache, error)

	// ListByStatut retrieves all tasks in the given state.
	ListByStatut(ctx context.Context, statut domain.Statut) ([]*domain.Tache, error)

	// ListByUtilisateurAndStatut retrieves a user's tasks in the given state.
	ListByUtilisateurAndStatut(ctx context.Context, utilisateurID uuid.UUID, statut domain.Statut) ([]*domain.Tache, error)
}

// TacheRepository defines the persistence operations the task use case needs.
type TacheRepository interface {
	Create(ctx context.Context, tache *domain.Tache) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Tache, error)
	Update(ctx context.Context, tache *domain.Tache) error
	UpdateStatut(ctx context.Context, id uuid.UUID, statut domain.Statut) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*domain.Tache, error)
	ListByUtilisateur(ctx context.Context, utilisateurID uuid.UUID) ([]*domain.Tache, error)
	ListByProjet(ctx context.Context, projetID uuid.UUID) ([]*domain.Tache, error)
	ListByStatut(ctx context.Context, statut domain.Statut) ([]*domain.Tache, error)
	ListByUtilisateurAndStatut(ctx context.Context, utilisateurID uuid.UUID, statut domain.Statut) ([]*domain.Tache, error)
}

// ProjetReader defines the project lookups the task use case needs.
type ProjetReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*projectDomain.Projet, error)
}

// UserReader defines the user lookups the task use case needs.
type UserReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*userDomain.User, error)
}
