package usecase

import (
	"context"
	"strings"

	validation "github.com/jellydator/validation"

	"github.com/google/uuid"

	authDomain "github.com/proxym/collabmanager/internal/auth/domain"
	"github.com/proxym/collabmanager/internal/task/domain"
	userDomain "github.com/proxym/collabmanager/internal/user/domain"
	appValidation "github.com/proxym/collabmanager/internal/validation"
)

// tacheUseCase implements TacheUseCase.
type tacheUseCase struct {
	tacheRepo    TacheRepository
	projetReader ProjetReader
	userReader   UserReader
}

// NewTacheUseCase creates a TacheUseCase with the provided dependencies.
func NewTacheUseCase(
	tacheRepo TacheRepository,
	projetReader ProjetReader,
	userReader UserReader,
) TacheUseCase {
	return &tacheUseCase{
		tacheRepo:    tacheRepo,
		projetReader: projetReader,
		userReader:   userReader,
	}
}

// validateCreateInput validates the task creation input.
func (t *tacheUseCase) validateCreateInput(input *domain.CreateTacheInput) error {
	err := validation.ValidateStruct(input,
		validation.Field(&input.Titre,
			validation.Required.Error("titre is required"),
			appValidation.NotBlank,
			validation.Length(1, 255).Error("titre must be between 1 and 255 characters"),
		),
		validation.Field(&input.Description,
			validation.Length(0, 2000).Error("description must be at most 2000 characters"),
		),
		validation.Field(&input.ProjetID,
			validation.Required.Error("projet_id is required"),
		),
	)
	if err != nil {
		return appValidation.WrapValidationError(err)
	}

	if input.Statut != "" && !input.Statut.IsValid() {
		return domain.ErrInvalidStatut
	}
	if input.Priorite != "" && !input.Priorite.IsValid() {
		return domain.ErrInvalidPriorite
	}

	return nil
}

// Create creates a new task inside an existing project.
func (t *tacheUseCase) Create(ctx context.Context, input *domain.CreateTacheInput) (*domain.Tache, error) {
	if err := t.validateCreateInput(input); err != nil {
		return nil, err
	}

	if _, err := t.projetReader.GetByID(ctx, input.ProjetID); err != nil {
		return nil, err
	}
	if input.UtilisateurID != nil {
		if _, err := t.userReader.GetByID(ctx, *input.UtilisateurID); err != nil {
			return nil, err
		}
	}

	statut := input.Statut
	if statut == "" {
		statut = domain.StatutAFaire
	}
	priorite := input.Priorite
	if priorite == "" {
		priorite = domain.PrioriteMoyenne
	}

	tache := &domain.Tache{
		ID:            uuid.Must(uuid.NewV7()),
		Titre:         strings.TrimSpace(input.Titre),
		Description:   strings.TrimSpace(input.Description),
		Statut:        statut,
		Priorite:      priorite,
		DateLimite:    input.DateLimite,
		ProjetID:      input.ProjetID,
		UtilisateurID: input.UtilisateurID,
	}

	if err := t.tacheRepo.Create(ctx, tache); err != nil {
		return nil, err
	}

	return tache, nil
}

// GetByID retrieves a task by ID.
func (t *tacheUseCase) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tache, error) {
	return t.tacheRepo.GetByID(ctx, id)
}

// Update replaces the mutable fields of a task.
func (t *tacheUseCase) Update(ctx context.Context, id uuid.UUID, input *domain.UpdateTacheInput) (*domain.Tache, error) {
	err := validation.ValidateStruct(input,
		validation.Field(&input.Titre,
			validation.Required.Error("titre is required"),
			appValidation.NotBlank,
			validation.Length(1, 255).Error("titre must be between 1 and 255 characters"),
		),
		validation.Field(&input.Description,
			validation.Length(0, 2000).Error("description must be at most 2000 characters"),
		),
	)
	if err != nil {
		return nil, appValidation.WrapValidationError(err)
	}

	if input.Statut != "" && !input.Statut.IsValid() {
		return nil, domain.ErrInvalidStatut
	}
	if input.Priorite != "" && !input.Priorite.IsValid() {
		return nil, domain.ErrInvalidPriorite
	}

	tache, err := t.tacheRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.UtilisateurID != nil {
		if _, err := t.userReader.GetByID(ctx, *input.UtilisateurID); err != nil {
			return nil, err
		}
	}

	tache.Titre = strings.TrimSpace(input.Titre)
	tache.Description = strings.TrimSpace(input.Description)
	if input.Statut != "" {
		tache.Statut = input.Statut
	}
	if input.Priorite != "" {
		tache.Priorite = input.Priorite
	}
	tache.DateLimite = input.DateLimite
	tache.UtilisateurID = input.UtilisateurID

	if err := t.tacheRepo.Update(ctx, tache); err != nil {
		return nil, err
	}

	return tache, nil
}

// UpdateStatut replaces the state of a task on behalf of the caller.
//
// Route-level authorization already admitted the caller's role; this adds the
// instance-level ownership rule: a MEMBRE_EQUIPE may only move tasks assigned
// to them. The check compares user IDs, not emails, so a profile edit cannot
// bypass it.
func (t *tacheUseCase) UpdateStatut(
	ctx context.Context,
	caller *userDomain.User,
	id uuid.UUID,
	statut domain.Statut,
) (*domain.Tache, error) {
	if !statut.IsValid() {
		return nil, domain.ErrInvalidStatut
	}

	tache, err := t.tacheRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if caller.Role == authDomain.RoleMembreEquipe {
		if tache.UtilisateurID == nil || *tache.UtilisateurID != caller.ID {
			return nil, domain.ErrNotAssignee
		}
	}

	if err := t.tacheRepo.UpdateStatut(ctx, id, statut); err != nil {
		return nil, err
	}

	tache.Statut = statut
	return tache, nil
}

// Delete removes a task.
func (t *tacheUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	return t.tacheRepo.Delete(ctx, id)
}

// List retrieves all tasks.
func (t *tacheUseCase) List(ctx context.Context) ([]*domain.Tache, error) {
	return t.tacheRepo.List(ctx)
}

// ListByUtilisateur retrieves the tasks assigned to a user.
func (t *tacheUseCase) ListByUtilisateur(ctx context.Context, utilisateurID uuid.UUID) ([]*domain.Tache, error) {
	return t.tacheRepo.ListByUtilisateur(ctx, utilisateurID)
}

// ListByProjet retrieves the tasks of a project.
func (t *tacheUseCase) ListByProjet(ctx context.Context, projetID uuid.UUID) ([]*domain.Tache, error) {
	return t.tacheRepo.ListByProjet(ctx, projetID)
}

// ListByStatut retrieves all tasks in the given state.
func (t *tacheUseCase) ListByStatut(ctx context.Context, statut domain.Statut) ([]*domain.Tache, error) {
	if !statut.IsValid() {
		return nil, domain.ErrInvalidStatut
	}
	return t.tacheRepo.ListByStatut(ctx, statut)
}

// ListByUtilisateurAndStatut retrieves a user's tasks in the given state.
func (t *tacheUseCase) ListByUtilisateurAndStatut(
	ctx context.Context,
	utilisateurID uuid.UUID,
	statut domain.Statut,
) ([]*domain.Tache, error) {
	if !statut.IsValid() {
		return nil, domain.ErrInvalidStatut
	}
	return t.tacheRepo.ListByUtilisateurAndStatut(ctx, utilisateurID, statut)
}
