package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authDomain "github.com/proxym/collabmanager/internal/auth/domain"
	apperrors "github.com/proxym/collabmanager/internal/errors"
	projetDomain "github.com/proxym/collabmanager/internal/project/domain"
	"github.com/proxym/collabmanager/internal/task/domain"
	userDomain "github.com/proxym/collabmanager/internal/user/domain"
)

// MockTacheRepository is a mock implementation of TacheRepository
type MockTacheRepository struct {
	mock.Mock
}

func (m *MockTacheRepository) Create(ctx context.Context, tache *domain.Tache) error {
	args := m.Called(ctx, tache)
	return args.Error(0)
}

func (m *MockTacheRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tache, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tache), args.Error(1)
}

func (m *MockTacheRepository) Update(ctx context.Context, tache *domain.Tache) error {
	args := m.Called(ctx, tache)
	return args.Error(0)
}

func (m *MockTacheRepository) UpdateStatut(ctx context.Context, id uuid.UUID, statut domain.Statut) error {
	args := m.Called(ctx, id, statut)
	return args.Error(0)
}

func (m *MockTacheRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTacheRepository) List(ctx context.Context) ([]*domain.Tache, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Tache), args.Error(1)
}

func (m *MockTacheRepository) ListByUtilisateur(ctx context.Context, utilisateurID uuid.UUID) ([]*domain.Tache, error) {
	args := m.Called(ctx, utilisateurID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Tache), args.Error(1)
}

func (m *MockTacheRepository) ListByProjet(ctx context.Context, projetID uuid.UUID) ([]*domain.Tache, error) {
	args := m.Called(ctx, projetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Tache), args.Error(1)
}

func (m *MockTacheRepository) ListByStatut(ctx context.Context, statut domain.Statut) ([]*domain.Tache, error) {
	args := m.Called(ctx, statut)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Tache), args.Error(1)
}

func (m *MockTacheRepository) ListByUtilisateurAndStatut(
	ctx context.Context,
	utilisateurID uuid.UUID,
	statut domain.Statut,
) ([]*domain.Tache, error) {
	args := m.Called(ctx, utilisateurID, statut)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Tache), args.Error(1)
}

// MockProjetReader is a mock implementation of ProjetReader
type MockProjetReader struct {
	mock.Mock
}

func (m *MockProjetReader) GetByID(ctx context.Context, id uuid.UUID) (*projetDomain.Projet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*projetDomain.Projet), args.Error(1)
}

// MockUserReader is a mock implementation of UserReader
type MockUserReader struct {
	mock.Mock
}

func (m *MockUserReader) GetByID(ctx context.Context, id uuid.UUID) (*userDomain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userDomain.User), args.Error(1)
}

func TestTacheUseCase_Create_Success(t *testing.T) {
	tacheRepo := &MockTacheRepository{}
	projetReader := &MockProjetReader{}
	userReader := &MockUserReader{}
	useCase := NewTacheUseCase(tacheRepo, projetReader, userReader)

	ctx := context.Background()
	projetID := uuid.Must(uuid.NewV7())
	utilisateurID := uuid.Must(uuid.NewV7())

	projetReader.On("GetByID", ctx, projetID).Return(&projetDomain.Projet{ID: projetID}, nil)
	userReader.On("GetByID", ctx, utilisateurID).Return(&userDomain.User{ID: utilisateurID}, nil)
	tacheRepo.On("Create", ctx, mock.AnythingOfType("*domain.Tache")).Return(nil)

	tache, err := useCase.Create(ctx, &domain.CreateTacheInput{
		Titre:         "Implement export",
		ProjetID:      projetID,
		UtilisateurID: &utilisateurID,
	})

	require.NoError(t, err)
	require.NotNil(t, tache)
	assert.Equal(t, domain.StatutAFaire, tache.Statut, "statut defaults to A_FAIRE")
	assert.Equal(t, domain.PrioriteMoyenne, tache.Priorite, "priorite defaults to MOYENNE")
	assert.Equal(t, projetID, tache.ProjetID)

	tacheRepo.AssertExpectations(t)
	projetReader.AssertExpectations(t)
	userReader.AssertExpectations(t)
}

func TestTacheUseCase_Create_UnknownProjet(t *testing.T) {
	tacheRepo := &MockTacheRepository{}
	projetReader := &MockProjetReader{}
	userReader := &MockUserReader{}
	useCase := NewTacheUseCase(tacheRepo, projetReader, userReader)

	ctx := context.Background()
	projetID := uuid.Must(uuid.NewV7())
	projetReader.On("GetByID", ctx, projetID).Return(nil, projetDomain.ErrProjetNotFound)

	tache, err := useCase.Create(ctx, &domain.CreateTacheInput{
		Titre:    "Implement export",
		ProjetID: projetID,
	})

	assert.Nil(t, tache)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	tacheRepo.AssertNotCalled(t, "Create")
}

func TestTacheUseCase_Create_InvalidInput(t *testing.T) {
	tacheRepo := &MockTacheRepository{}
	useCase := NewTacheUseCase(tacheRepo, &MockProjetReader{}, &MockUserReader{})

	ctx := context.Background()

	tache, err := useCase.Create(ctx, &domain.CreateTacheInput{
		Titre:    "",
		ProjetID: uuid.Must(uuid.NewV7()),
	})
	assert.Nil(t, tache)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	tache, err = useCase.Create(ctx, &domain.CreateTacheInput{
		Titre:    "Task",
		ProjetID: uuid.Must(uuid.NewV7()),
		Statut:   domain.Statut("BOGUS"),
	})
	assert.Nil(t, tache)
	assert.ErrorIs(t, err, domain.ErrInvalidStatut)

	tacheRepo.AssertNotCalled(t, "Create")
}

func TestTacheUseCase_UpdateStatut_AssignedMember(t *testing.T) {
	tacheRepo := &MockTacheRepository{}
	useCase := NewTacheUseCase(tacheRepo, &MockProjetReader{}, &MockUserReader{})

	ctx := context.Background()
	caller := &userDomain.User{
		ID:   uuid.Must(uuid.NewV7()),
		Role: authDomain.RoleMembreEquipe,
	}
	tacheID := uuid.Must(uuid.NewV7())
	tache := &domain.Tache{
		ID:            tacheID,
		Statut:        domain.StatutAFaire,
		UtilisateurID: &caller.ID,
	}

	tacheRepo.On("GetByID", ctx, tacheID).Return(tache, nil)
	tacheRepo.On("UpdateStatut", ctx, tacheID, domain.StatutEnCours).Return(nil)

	updated, err := useCase.UpdateStatut(ctx, caller, tacheID, domain.StatutEnCours)

	require.NoError(t, err)
	assert.Equal(t, domain.StatutEnCours, updated.Statut)
	tacheRepo.AssertExpectations(t)
}

func TestTacheUseCase_UpdateStatut_MemberNotAssigned(t *testing.T) {
	tacheRepo := &MockTacheRepository{}
	_ = NewTacheUseCase(tacheRepo, &MockProjetReader{}, &MockUserReader{})

	ctx := context.Background()
	caller := &userDomain.User{
		ID:   uuid.Must(uuid.NewV7()),
		Role: authDomain.RoleMembreEquipe,
	}
	someoneElse := uuid.Must(uuid.NewV7())
	tacheID := uuid.Must(uuid.NewV7())

	tests := []struct {
		name          string
		utilisateurID *uuid.UUID
	}{
		{"assigned to someone else", &someoneElse},
		{"unassigned", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &MockTacheRepository{}
			uc := NewTacheUseCase(repo, &MockProjetReader{}, &MockUserReader{})

			repo.On("GetByID", ctx, tacheID).Return(&domain.Tache{
				ID:            tacheID,
				Statut:        domain.StatutAFaire,
				UtilisateurID: tt.utilisateurID,
			}, nil)

			updated, err := uc.UpdateStatut(ctx, caller, tacheID, domain.StatutEnCours)

			assert.Nil(t, updated)
			assert.ErrorIs(t, err, domain.ErrNotAssignee)
			assert.ErrorIs(t, err, apperrors.ErrForbidden)
			repo.AssertNotCalled(t, "UpdateStatut")
		})
	}

	tacheRepo.AssertNotCalled(t, "GetByID")
}

func TestTacheUseCase_UpdateStatut_ChefBypassesOwnership(t *testing.T) {
	tacheRepo := &MockTacheRepository{}
	useCase := NewTacheUseCase(tacheRepo, &MockProjetReader{}, &MockUserReader{})

	ctx := context.Background()
	caller := &userDomain.User{
		ID:   uuid.Must(uuid.NewV7()),
		Role: authDomain.RoleChefDeProject,
	}
	tacheID := uuid.Must(uuid.NewV7())

	// Unassigned task: a chef can still move it
	tacheRepo.On("GetByID", ctx, tacheID).Return(&domain.Tache{
		ID:     tacheID,
		Statut: domain.StatutEnCours,
	}, nil)
	tacheRepo.On("UpdateStatut", ctx, tacheID, domain.StatutTermine).Return(nil)

	updated, err := useCase.UpdateStatut(ctx, caller, tacheID, domain.StatutTermine)

	require.NoError(t, err)
	assert.Equal(t, domain.StatutTermine, updated.Statut)
	tacheRepo.AssertExpectations(t)
}

func TestTacheUseCase_UpdateStatut_InvalidStatut(t *testing.T) {
	tacheRepo := &MockTacheRepository{}
	useCase := NewTacheUseCase(tacheRepo, &MockProjetReader{}, &MockUserReader{})

	ctx := context.Background()
	caller := &userDomain.User{ID: uuid.Must(uuid.NewV7()), Role: authDomain.RoleMembreEquipe}

	updated, err := useCase.UpdateStatut(ctx, caller, uuid.Must(uuid.NewV7()), domain.Statut("BOGUS"))

	assert.Nil(t, updated)
	assert.ErrorIs(t, err, domain.ErrInvalidStatut)
	tacheRepo.AssertNotCalled(t, "GetByID")
}

func TestTacheUseCase_UpdateStatut_NotFound(t *testing.T) {
	tacheRepo := &MockTacheRepository{}
	useCase := NewTacheUseCase(tacheRepo, &MockProjetReader{}, &MockUserReader{})

	ctx := context.Background()
	caller := &userDomain.User{ID: uuid.Must(uuid.NewV7()), Role: authDomain.RoleMembreEquipe}
	tacheID := uuid.Must(uuid.NewV7())

	tacheRepo.On("GetByID", ctx, tacheID).Return(nil, domain.ErrTacheNotFound)

	updated, err := useCase.UpdateStatut(ctx, caller, tacheID, domain.StatutEnCours)

	assert.Nil(t, updated)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestTacheUseCase_Update_Success(t *testing.T) {
	tacheRepo := &MockTacheRepository{}
	userReader := &MockUserReader{}
	useCase := NewTacheUseCase(tacheRepo, &MockProjetReader{}, userReader)

	ctx := context.Background()
	tacheID := uuid.Must(uuid.NewV7())
	assignee := uuid.Must(uuid.NewV7())

	tacheRepo.On("GetByID", ctx, tacheID).Return(&domain.Tache{
		ID:       tacheID,
		Titre:    "Old title",
		Statut:   domain.StatutAFaire,
		Priorite: domain.PrioriteBasse,
	}, nil)
	userReader.On("GetByID", ctx, assignee).Return(&userDomain.User{ID: assignee}, nil)
	tacheRepo.On("Update", ctx, mock.AnythingOfType("*domain.Tache")).Return(nil)

	updated, err := useCase.Update(ctx, tacheID, &domain.UpdateTacheInput{
		Titre:         "New title",
		Priorite:      domain.PrioriteHaute,
		UtilisateurID: &assignee,
	})

	require.NoError(t, err)
	assert.Equal(t, "New title", updated.Titre)
	assert.Equal(t, domain.PrioriteHaute, updated.Priorite)
	assert.Equal(t, &assignee, updated.UtilisateurID)
	assert.Equal(t, domain.StatutAFaire, updated.Statut, "statut untouched when not provided")

	tacheRepo.AssertExpectations(t)
	userReader.AssertExpectations(t)
}

func TestTacheUseCase_ListByStatut_InvalidStatut(t *testing.T) {
	tacheRepo := &MockTacheRepository{}
	useCase := NewTacheUseCase(tacheRepo, &MockProjetReader{}, &MockUserReader{})

	ctx := context.Background()

	taches, err := useCase.ListByStatut(ctx, domain.Statut("BOGUS"))
	assert.Nil(t, taches)
	assert.ErrorIs(t, err, domain.ErrInvalidStatut)

	taches, err = useCase.ListByUtilisateurAndStatut(ctx, uuid.Must(uuid.NewV7()), domain.Statut("BOGUS"))
	assert.Nil(t, taches)
	assert.ErrorIs(t, err, domain.ErrInvalidStatut)

	tacheRepo.AssertNotCalled(t, "ListByStatut")
	tacheRepo.AssertNotCalled(t, "ListByUtilisateurAndStatut")
}
