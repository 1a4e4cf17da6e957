package usecase

import (
	"context"
	"strings"

	validation "github.com/jellydator/validation"

	"github.com/google/uuid"

	"github.com/proxym/collabmanager/internal/database"
	"github.com/proxym/collabmanager/internal/project/domain"
	userDomain "github.com/proxym/collabmanager/internal/user/domain"
	appValidation "github.com/proxym/collabmanager/internal/validation"
)

// projetUseCase implements ProjetUseCase.
type projetUseCase struct {
	txManager  database.TxManager
	projetRepo ProjetRepository
	userReader UserReader
}

// NewProjetUseCase creates a ProjetUseCase with the provided dependencies.
func NewProjetUseCase(
	txManager database.TxManager,
	projetRepo ProjetRepository,
	userReader UserReader,
) ProjetUseCase {
	return &projetUseCase{
		txManager:  txManager,
		projetRepo: projetRepo,
		userReader: userReader,
	}
}

// validateCreateInput validates the project creation input.
func (p *projetUseCase) validateCreateInput(input *domain.CreateProjetInput) error {
	err := validation.ValidateStruct(input,
		validation.Field(&input.Nom,
			validation.Required.Error("nom is required"),
			appValidation.NotBlank,
			validation.Length(1, 255).Error("nom must be between 1 and 255 characters"),
		),
		validation.Field(&input.Description,
			validation.Length(0, 2000).Error("description must be at most 2000 characters"),
		),
		validation.Field(&input.DateDebut,
			validation.Required.Error("date_debut is required"),
		),
	)
	if err != nil {
		return appValidation.WrapValidationError(err)
	}

	if input.Statut != "" && !input.Statut.IsValid() {
		return domain.ErrInvalidStatut
	}

	return nil
}

// Create creates a new project. A zero statut defaults to PLANIFIE.
func (p *projetUseCase) Create(ctx context.Context, input *domain.CreateProjetInput) (*domain.Projet, error) {
	if err := p.validateCreateInput(input); err != nil {
		return nil, err
	}

	statut := input.Statut
	if statut == "" {
		statut = domain.StatutPlanifie
	}

	projet := &domain.Projet{
		ID:          uuid.Must(uuid.NewV7()),
		Nom:         strings.TrimSpace(input.Nom),
		Description: strings.TrimSpace(input.Description),
		Statut:      statut,
		DateDebut:   input.DateDebut,
		DateFin:     input.DateFin,
	}

	if err := p.projetRepo.Create(ctx, projet); err != nil {
		return nil, err
	}

	return projet, nil
}

// GetByID retrieves a project by ID.
func (p *projetUseCase) GetByID(ctx context.Context, id uuid.UUID) (*domain.Projet, error) {
	return p.projetRepo.GetByID(ctx, id)
}

// List retrieves all projects.
func (p *projetUseCase) List(ctx context.Context) ([]*domain.Projet, error) {
	return p.projetRepo.List(ctx)
}

// SearchByNom retrieves projects whose name contains the term.
func (p *projetUseCase) SearchByNom(ctx context.Context, nom string) ([]*domain.Projet, error) {
	return p.projetRepo.SearchByNom(ctx, strings.TrimSpace(nom))
}

// GetByStatut retrieves all projects in the given state.
func (p *projetUseCase) GetByStatut(ctx context.Context, statut domain.Statut) ([]*domain.Projet, error) {
	if !statut.IsValid() {
		return nil, domain.ErrInvalidStatut
	}
	return p.projetRepo.GetByStatut(ctx, statut)
}

// UpdateStatut replaces the state of a project.
func (p *projetUseCase) UpdateStatut(ctx context.Context, id uuid.UUID, statut domain.Statut) (*domain.Projet, error) {
	if !statut.IsValid() {
		return nil, domain.ErrInvalidStatut
	}

	if err := p.projetRepo.UpdateStatut(ctx, id, statut); err != nil {
		return nil, err
	}

	return p.projetRepo.GetByID(ctx, id)
}

// Delete removes a project and its participant links.
func (p *projetUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	return p.projetRepo.Delete(ctx, id)
}

// AssignParticipant links a user to a project. Both sides are checked for
// existence inside one transaction so a concurrent delete cannot leave a
// dangling link.
func (p *projetUseCase) AssignParticipant(ctx context.Context, projetID, utilisateurID uuid.UUID) error {
	return p.txManager.WithTx(ctx, func(ctx context.Context) error {
		if _, err := p.projetRepo.GetByID(ctx, projetID); err != nil {
			return err
		}
		if _, err := p.userReader.GetByID(ctx, utilisateurID); err != nil {
			return err
		}
		return p.projetRepo.AssignParticipant(ctx, projetID, utilisateurID)
	})
}

// RemoveParticipant unlinks a user from a project.
func (p *projetUseCase) RemoveParticipant(ctx context.Context, projetID, utilisateurID uuid.UUID) error {
	if _, err := p.projetRepo.GetByID(ctx, projetID); err != nil {
		return err
	}
	return p.projetRepo.RemoveParticipant(ctx, projetID, utilisateurID)
}

// ListParticipants retrieves the users participating in a project.
func (p *projetUseCase) ListParticipants(ctx context.Context, projetID uuid.UUID) ([]*userDomain.User, error) {
	if _, err := p.projetRepo.GetByID(ctx, projetID); err != nil {
		return nil, err
	}

	ids, err := p.projetRepo.ListParticipantIDs(ctx, projetID)
	if err != nil {
		return nil, err
	}

	users := make([]*userDomain.User, 0, len(ids))
	for _, id := range ids {
		user, err := p.userReader.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, nil
}

// ListWithoutParticipants retrieves projects that have no participants.
func (p *projetUseCase) ListWithoutParticipants(ctx context.Context) ([]*domain.Projet, error) {
	return p.projetRepo.ListWithoutParticipants(ctx)
}

// ListByParticipant retrieves the projects a user participates in.
func (p *projetUseCase) ListByParticipant(ctx context.Context, utilisateurID uuid.UUID) ([]*domain.Projet, error) {
	return p.projetRepo.ListByParticipant(ctx, utilisateurID)
}

// GetStatistiques aggregates task and membership counts for a project.
func (p *projetUseCase) GetStatistiques(ctx context.Context, projetID uuid.UUID) (*domain.Statistiques, error) {
	if _, err := p.projetRepo.GetByID(ctx, projetID); err != nil {
		return nil, err
	}
	return p.projetRepo.GetStatistiques(ctx, projetID)
}
