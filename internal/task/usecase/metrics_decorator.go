package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/proxym/collabmanager/internal/metrics"
	"github.com/proxym/collabmanager/internal/task/domain"
	userDomain "github.com/proxym/collabmanager/internal/user/domain"
)

// metricsDecorator wraps a TacheUseCase and records operation metrics.
type metricsDecorator struct {
	next    TacheUseCase
	metrics metrics.BusinessMetrics
}

// NewMetricsDecorator wraps the use case with business metrics instrumentation.
func NewMetricsDecorator(next TacheUseCase, businessMetrics metrics.BusinessMetrics) TacheUseCase {
	return &metricsDecorator{
		next:    next,
		metrics: businessMetrics,
	}
}

const metricsDomain = "task"

func (d *metricsDecorator) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	d.metrics.RecordOperation(ctx, metricsDomain, operation, status)
	d.metrics.RecordDuration(ctx, metricsDomain, operation, time.Since(start), status)
}

func (d *metricsDecorator) Create(ctx context.Context, input *domain.CreateTacheInput) (*domain.Tache, error) {
	start := time.Now()
	tache, err := d.next.Create(ctx, input)
	d.record(ctx, "create", start, err)
	return tache, err
}

func (d *metricsDecorator) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tache, error) {
	start := time.Now()
	tache, err := d.next.GetByID(ctx, id)
	d.record(ctx, "get_by_id", start, err)
	return tache, err
}

func (d *metricsDecorator) Update(
	ctx context.Context,
	id uuid.UUID,
	input *domain.UpdateTacheInput,
) (*domain.Tache, error) {
	start := time.Now()
	tache, err := d.next.Update(ctx, id, input)
	d.record(ctx, "update", start, err)
	return tache, err
}

func (d *metricsDecorator) UpdateStatut(
	ctx context.Context,
	caller *userDomain.User,
	id uuid.UUID,
	statut domain.Statut,
) (*domain.Tache, error) {
	start := time.Now()
	tache, err := d.next.UpdateStatut(ctx, caller, id, statut)
	d.record(ctx, "update_statut", start, err)
	return tache, err
}

func (d *metricsDecorator) Delete(ctx context.Context, id uuid.UUID) error {
	start := time.Now()
	err := d.next.Delete(ctx, id)
	d.record(ctx, "delete", start, err)
	return err
}

func (d *metricsDecorator) List(ctx context.Context) ([]*domain.Tache, error) {
	start := time.Now()
	taches, err := d.next.List(ctx)
	d.record(ctx, "list", start, err)
	return taches, err
}

func (d *metricsDecorator) ListByUtilisateur(ctx context.Context, utilisateurID uuid.UUID) ([]*domain.Tache, error) {
	start := time.Now()
	taches, err := d.next.ListByUtilisateur(ctx, utilisateurID)
	d.record(ctx, "list_by_utilisateur", start, err)
	return taches, err
}

func (d *metricsDecorator) ListByProjet(ctx context.Context, projetID uuid.UUID) ([]*domain.Tache, error) {
	start := time.Now()
	taches, err := d.next.ListByProjet(ctx, projetID)
	d.record(ctx, "list_by_projet", start, err)
	return taches, err
}

func (d *metricsDecorator) ListByStatut(ctx context.Context, statut domain.Statut) ([]*domain.Tache, error) {
	start := time.Now()
	taches, err := d.next.ListByStatut(ctx, statut)
	d.record(ctx, "list_by_statut", start, err)
	return taches, err
}

func (d *metricsDecorator) ListByUtilisateurAndStatut(
	ctx context.Context,
	utilisateurID uuid.UUID,
	statut domain.Statut,
) ([]*domain.Tache, error) {
	start := time.Now()
	taches, err := d.next.ListByUtilisateurAndStatut(ctx, utilisateurID, statut)
	d.record(ctx, "list_by_utilisateur_and_statut", start, err)
	return taches, err
}
