package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/proxym/collabmanager/internal/errors"
	"github.com/proxym/collabmanager/internal/project/domain"
	userDomain "github.com/proxym/collabmanager/internal/user/domain"
)

// MockTxManager is a mock implementation of database.TxManager
type MockTxManager struct {
	mock.Mock
}

func (m *MockTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, fn)
	if args.Get(0) != nil {
		return args.Error(0)
	}
	// Execute the function to test the logic inside
	return fn(ctx)
}

// MockProjetRepository is a mock implementation of ProjetRepository
type MockProjetRepository struct {
	mock.Mock
}

func (m *MockProjetRepository) Create(ctx context.Context, projet *domain.Projet) error {
	args := m.Called(ctx, projet)
	return args.Error(0)
}

func (m *MockProjetRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Projet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Projet), args.Error(1)
}

func (m *MockProjetRepository) List(ctx context.Context) ([]*domain.Projet, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Projet), args.Error(1)
}

func (m *MockProjetRepository) SearchByNom(ctx context.Context, nom string) ([]*domain.Projet, error) {
	args := m.Called(ctx, nom)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Projet), args.Error(1)
}

func (m *MockProjetRepository) GetByStatut(ctx context.Context, statut domain.Statut) ([]*domain.Projet, error) {
	args := m.Called(ctx, statut)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Projet), args.Error(1)
}

func (m *MockProjetRepository) UpdateStatut(ctx context.Context, id uuid.UUID, statut domain.Statut) error {
	args := m.Called(ctx, id, statut)
	return args.Error(0)
}

func (m *MockProjetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProjetRepository) AssignParticipant(ctx context.Context, projetID, utilisateurID uuid.UUID) error {
	args := m.Called(ctx, projetID, utilisateurID)
	return args.Error(0)
}

func (m *MockProjetRepository) RemoveParticipant(ctx context.Context, projetID, utilisateurID uuid.UUID) error {
	args := m.Called(ctx, projetID, utilisateurID)
	return args.Error(0)
}

func (m *MockProjetRepository) ListParticipantIDs(ctx context.Context, projetID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, projetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockProjetRepository) IsParticipant(ctx context.Context, projetID, utilisateurID uuid.UUID) (bool, error) {
	args := m.Called(ctx, projetID, utilisateurID)
	return args.Bool(0), args.Error(1)
}

func (m *MockProjetRepository) ListWithoutParticipants(ctx context.Context) ([]*domain.Projet, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Projet), args.Error(1)
}

func (m *MockProjetRepository) ListByParticipant(ctx context.Context, utilisateurID uuid.UUID) ([]*domain.Projet, error) {
	args := m.Called(ctx, utilisateurID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Projet), args.Error(1)
}

func (m *MockProjetRepository) GetStatistiques(ctx context.Context, projetID uuid.UUID) (*domain.Statistiques, error) {
	args := m.Called(ctx, projetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Statistiques), args.Error(1)
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

func newTestProjetUseCase(
	txManager *MockTxManager,
	projetRepo *MockProjetRepository,
	userReader *MockUserReader,
) ProjetUseCase {
	return NewProjetUseCase(txManager, projetRepo, userReader)
}

func TestProjetUseCase_Create_Success(t *testing.T) {
	projetRepo := &MockProjetRepository{}
	useCase := newTestProjetUseCase(&MockTxManager{}, projetRepo, &MockUserReader{})

	ctx := context.Background()
	debut := time.Now().UTC()

	projetRepo.On("Create", ctx, mock.AnythingOfType("*domain.Projet")).Return(nil)

	projet, err := useCase.Create(ctx, &domain.CreateProjetInput{
		Nom:       "Refonte du portail",
		DateDebut: debut,
	})

	require.NoError(t, err)
	require.NotNil(t, projet)
	assert.Equal(t, domain.StatutPlanifie, projet.Statut, "statut defaults to PLANIFIE")
	assert.Equal(t, "Refonte du portail", projet.Nom)

	projetRepo.AssertExpectations(t)
}

func TestProjetUseCase_Create_InvalidInput(t *testing.T) {
	projetRepo := &MockProjetRepository{}
	useCase := newTestProjetUseCase(&MockTxManager{}, projetRepo, &MockUserReader{})

	ctx := context.Background()
	debut := time.Now().UTC()

	// Missing nom
	projet, err := useCase.Create(ctx, &domain.CreateProjetInput{DateDebut: debut})
	assert.Nil(t, projet)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	// Missing date_debut
	projet, err = useCase.Create(ctx, &domain.CreateProjetInput{Nom: "Projet"})
	assert.Nil(t, projet)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	// Unknown statut
	projet, err = useCase.Create(ctx, &domain.CreateProjetInput{
		Nom:       "Projet",
		DateDebut: debut,
		Statut:    domain.Statut("BOGUS"),
	})
	assert.Nil(t, projet)
	assert.ErrorIs(t, err, domain.ErrInvalidStatut)

	projetRepo.AssertNotCalled(t, "Create")
}

func TestProjetUseCase_UpdateStatut(t *testing.T) {
	projetRepo := &MockProjetRepository{}
	useCase := newTestProjetUseCase(&MockTxManager{}, projetRepo, &MockUserReader{})

	ctx := context.Background()
	id := uuid.Must(uuid.NewV7())

	projetRepo.On("UpdateStatut", ctx, id, domain.StatutEnCours).Return(nil)
	projetRepo.On("GetByID", ctx, id).Return(&domain.Projet{ID: id, Statut: domain.StatutEnCours}, nil)

	projet, err := useCase.UpdateStatut(ctx, id, domain.StatutEnCours)

	require.NoError(t, err)
	assert.Equal(t, domain.StatutEnCours, projet.Statut)
	projetRepo.AssertExpectations(t)
}

func TestProjetUseCase_UpdateStatut_Invalid(t *testing.T) {
	projetRepo := &MockProjetRepository{}
	useCase := newTestProjetUseCase(&MockTxManager{}, projetRepo, &MockUserReader{})

	ctx := context.Background()

	projet, err := useCase.UpdateStatut(ctx, uuid.Must(uuid.NewV7()), domain.Statut("BOGUS"))

	assert.Nil(t, projet)
	assert.ErrorIs(t, err, domain.ErrInvalidStatut)
	projetRepo.AssertNotCalled(t, "UpdateStatut")
}

func TestProjetUseCase_AssignParticipant_Success(t *testing.T) {
	txManager := &MockTxManager{}
	projetRepo := &MockProjetRepository{}
	userReader := &MockUserReader{}
	useCase := newTestProjetUseCase(txManager, projetRepo, userReader)

	ctx := context.Background()
	projetID := uuid.Must(uuid.NewV7())
	utilisateurID := uuid.Must(uuid.NewV7())

	txManager.On("WithTx", ctx, mock.AnythingOfType("func(context.Context) error")).Return(nil)
	projetRepo.On("GetByID", ctx, projetID).Return(&domain.Projet{ID: projetID}, nil)
	userReader.On("GetByID", ctx, utilisateurID).Return(&userDomain.User{ID: utilisateurID}, nil)
	projetRepo.On("AssignParticipant", ctx, projetID, utilisateurID).Return(nil)

	err := useCase.AssignParticipant(ctx, projetID, utilisateurID)

	require.NoError(t, err)
	txManager.AssertExpectations(t)
	projetRepo.AssertExpectations(t)
	userReader.AssertExpectations(t)
}

func TestProjetUseCase_AssignParticipant_UnknownProjet(t *testing.T) {
	txManager := &MockTxManager{}
	projetRepo := &MockProjetRepository{}
	userReader := &MockUserReader{}
	useCase := newTestProjetUseCase(txManager, projetRepo, userReader)

	ctx := context.Background()
	projetID := uuid.Must(uuid.NewV7())
	utilisateurID := uuid.Must(uuid.NewV7())

	txManager.On("WithTx", ctx, mock.AnythingOfType("func(context.Context) error")).Return(nil)
	projetRepo.On("GetByID", ctx, projetID).Return(nil, domain.ErrProjetNotFound)

	err := useCase.AssignParticipant(ctx, projetID, utilisateurID)

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	projetRepo.AssertNotCalled(t, "AssignParticipant")
	userReader.AssertNotCalled(t, "GetByID")
}

func TestProjetUseCase_AssignParticipant_AlreadyAssigned(t *testing.T) {
	txManager := &MockTxManager{}
	projetRepo := &MockProjetRepository{}
	userReader := &MockUserReader{}
	useCase := newTestProjetUseCase(txManager, projetRepo, userReader)

	ctx := context.Background()
	projetID := uuid.Must(uuid.NewV7())
	utilisateurID := uuid.Must(uuid.NewV7())

	txManager.On("WithTx", ctx, mock.AnythingOfType("func(context.Context) error")).Return(nil)
	projetRepo.On("GetByID", ctx, projetID).Return(&domain.Projet{ID: projetID}, nil)
	userReader.On("GetByID", ctx, utilisateurID).Return(&userDomain.User{ID: utilisateurID}, nil)
	projetRepo.On("AssignParticipant", ctx, projetID, utilisateurID).
		Return(domain.ErrParticipantAlreadyAssigned)

	err := useCase.AssignParticipant(ctx, projetID, utilisateurID)

	assert.ErrorIs(t, err, domain.ErrParticipantAlreadyAssigned)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestProjetUseCase_RemoveParticipant_NotAssigned(t *testing.T) {
	projetRepo := &MockProjetRepository{}
	useCase := newTestProjetUseCase(&MockTxManager{}, projetRepo, &MockUserReader{})

	ctx := context.Background()
	projetID := uuid.Must(uuid.NewV7())
	utilisateurID := uuid.Must(uuid.NewV7())

	projetRepo.On("GetByID", ctx, projetID).Return(&domain.Projet{ID: projetID}, nil)
	projetRepo.On("RemoveParticipant", ctx, projetID, utilisateurID).
		Return(domain.ErrParticipantNotAssigned)

	err := useCase.RemoveParticipant(ctx, projetID, utilisateurID)

	assert.ErrorIs(t, err, domain.ErrParticipantNotAssigned)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestProjetUseCase_ListParticipants(t *testing.T) {
	projetRepo := &MockProjetRepository{}
	userReader := &MockUserReader{}
	useCase := newTestProjetUseCase(&MockTxManager{}, projetRepo, userReader)

	ctx := context.Background()
	projetID := uuid.Must(uuid.NewV7())
	id1 := uuid.Must(uuid.NewV7())
	id2 := uuid.Must(uuid.NewV7())

	projetRepo.On("GetByID", ctx, projetID).Return(&domain.Projet{ID: projetID}, nil)
	projetRepo.On("ListParticipantIDs", ctx, projetID).Return([]uuid.UUID{id1, id2}, nil)
	userReader.On("GetByID", ctx, id1).Return(&userDomain.User{ID: id1, Nom: "Jean"}, nil)
	userReader.On("GetByID", ctx, id2).Return(&userDomain.User{ID: id2, Nom: "Marie"}, nil)

	users, err := useCase.ListParticipants(ctx, projetID)

	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "Jean", users[0].Nom)
	assert.Equal(t, "Marie", users[1].Nom)
}

func TestProjetUseCase_GetStatistiques(t *testing.T) {
	projetRepo := &MockProjetRepository{}
	useCase := newTestProjetUseCase(&MockTxManager{}, projetRepo, &MockUserReader{})

	ctx := context.Background()
	projetID := uuid.Must(uuid.NewV7())

	stats := &domain.Statistiques{
		ProjetID:        projetID,
		TotalTaches:     4,
		TachesTerminees: 2,
		TauxAvancement:  50,
	}
	projetRepo.On("GetByID", ctx, projetID).Return(&domain.Projet{ID: projetID}, nil)
	projetRepo.On("GetStatistiques", ctx, projetID).Return(stats, nil)

	got, err := useCase.GetStatistiques(ctx, projetID)

	require.NoError(t, err)
	assert.Equal(t, stats, got)
}

func TestProjetUseCase_GetStatistiques_UnknownProjet(t *testing.T) {
	projetRepo := &MockProjetRepository{}
	useCase := newTestProjetUseCase(&MockTxManager{}, projetRepo, &MockUserReader{})

	ctx := context.Background()
	projetID := uuid.Must(uuid.NewV7())

	projetRepo.On("GetByID", ctx, projetID).Return(nil, domain.ErrProjetNotFound)

	got, err := useCase.GetStatistiques(ctx, projetID)

	assert.Nil(t, got)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	projetRepo.AssertNotCalled(t, "GetStatistiques")
}

func TestProjetUseCase_GetByStatut_Invalid(t *testing.T) {
	projetRepo := &MockProjetRepository{}
	useCase := newTestProjetUseCase(&MockTxManager{}, projetRepo, &MockUserReader{})

	ctx := context.Background()

	projets, err := useCase.GetByStatut(ctx, domain.Statut("BOGUS"))

	assert.Nil(t, projets)
	assert.ErrorIs(t, err, domain.ErrInvalidStatut)
	projetRepo.AssertNotCalled(t, "GetByStatut")
}
