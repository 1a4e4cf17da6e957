package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/proxym/collabmanager/internal/metrics"
	"github.com/proxym/collabmanager/internal/project/domain"
	userDomain "github.com/proxym/collabmanager/internal/user/domain"
)

// metricsDecorator wraps a ProjetUseCase and records operation metrics.
type metricsDecorator struct {
	next    ProjetUseCase
	metrics metrics.BusinessMetrics
}

// NewMetricsDecorator wraps the use case with business metrics instrumentation.
func NewMetricsDecorator(next ProjetUseCase, businessMetrics metrics.BusinessMetrics) ProjetUseCase {
	return &metricsDecorator{
		next:    next,
		metrics: businessMetrics,
	}
}

const metricsDomain = "project"

func (d *metricsDecorator) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	d.metrics.RecordOperation(ctx, metricsDomain, operation, status)
	d.metrics.RecordDuration(ctx, metricsDomain, operation, time.Since(start), status)
}

func (d *metricsDecorator) Create(ctx context.Context, input *domain.CreateProjetInput) (*domain.Projet, error) {
	start := time.Now()
	projet, err := d.next.Create(ctx, input)
	d.record(ctx, "create", start, err)
	return projet, err
}

func (d *metricsDecorator) GetByID(ctx context.Context, id uuid.UUID) (*domain.Projet, error) {
	start := time.Now()
	projet, err := d.next.GetByID(ctx, id)
	d.record(ctx, "get_by_id", start, err)
	return projet, err
}

func (d *metricsDecorator) List(ctx context.Context) ([]*domain.Projet, error) {
	start := time.Now()
	projets, err := d.next.List(ctx)
	d.record(ctx, "list", start, err)
	return projets, err
}

func (d *metricsDecorator) SearchByNom(ctx context.Context, nom string) ([]*domain.Projet, error) {
	start := time.Now()
	projets, err := d.next.SearchByNom(ctx, nom)
	d.record(ctx, "search_by_nom", start, err)
	return projets, err
}

func (d *metricsDecorator) GetByStatut(ctx context.Context, statut domain.Statut) ([]*domain.Projet, error) {
	start := time.Now()
	projets, err := d.next.GetByStatut(ctx, statut)
	d.record(ctx, "get_by_statut", start, err)
	return projets, err
}

func (d *metricsDecorator) UpdateStatut(
	ctx context.Context,
	id uuid.UUID,
	statut domain.Statut,
) (*domain.Projet, error) {
	start := time.Now()
	projet, err := d.next.UpdateStatut(ctx, id, statut)
	d.record(ctx, "update_statut", start, err)
	return projet, err
}

func (d *metricsDecorator) Delete(ctx context.Context, id uuid.UUID) error {
	start := time.Now()
	err := d.next.Delete(ctx, id)
	d.record(ctx, "delete", start, err)
	return err
}

func (d *metricsDecorator) AssignParticipant(ctx context.Context, projetID, utilisateurID uuid.UUID) error {
	start := time.Now()
	err := d.next.AssignParticipant(ctx, projetID, utilisateurID)
	d.record(ctx, "assign_participant", start, err)
	return err
}

func (d *metricsDecorator) RemoveParticipant(ctx context.Context, projetID, utilisateurID uuid.UUID) error {
	start := time.Now()
	err := d.next.RemoveParticipant(ctx, projetID, utilisateurID)
	d.record(ctx, "remove_participant", start, err)
	return err
}

func (d *metricsDecorator) ListParticipants(
	ctx context.Context,
	projetID uuid.UUID,
) ([]*userDomain.User, error) {
	start := time.Now()
	users, err := d.next.ListParticipants(ctx, projetID)
	d.record(ctx, "list_participants", start, err)
	return users, err
}

func (d *metricsDecorator) ListWithoutParticipants(ctx context.Context) ([]*domain.Projet, error) {
	start := time.Now()
	projets, err := d.next.ListWithoutParticipants(ctx)
	d.record(ctx, "list_without_participants", start, err)
	return projets, err
}

func (d *metricsDecorator) ListByParticipant(
	ctx context.Context,
	utilisateurID uuid.UUID,
) ([]*domain.Projet, error) {
	start := time.Now()
	projets, err := d.next.ListByParticipant(ctx, utilisateurID)
	d.record(ctx, "list_by_participant", start, err)
	return projets, err
}

func (d *metricsDecorator) GetStatistiques(
	ctx context.Context,
	projetID uuid.UUID,
) (*domain.Statistiques, error) {
	start := time.Now()
	stats, err := d.next.GetStatistiques(ctx, projetID)
	d.record(ctx, "get_statistiques", start, err)
	return stats, err
}
