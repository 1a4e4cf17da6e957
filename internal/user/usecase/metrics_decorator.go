package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/proxym/collabmanager/internal/auth/domain"
	"github.com/proxym/collabmanager/internal/metrics"
	"github.com/proxym/collabmanager/internal/user/domain"
)

// metricsDecorator wraps a UserUseCase and records operation metrics.
type metricsDecorator struct {
	next    UserUseCase
	metrics metrics.BusinessMetrics
}

// NewMetricsDecorator wraps the use case with business metrics instrumentation.
func NewMetricsDecorator(next UserUseCase, businessMetrics metrics.BusinessMetrics) UserUseCase {
	return &metricsDecorator{
		next:    next,
		metrics: businessMetrics,
	}
}

const metricsDomain = "user"

func (d *metricsDecorator) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	d.metrics.RecordOperation(ctx, metricsDomain, operation, status)
	d.metrics.RecordDuration(ctx, metricsDomain, operation, time.Since(start), status)
}

func (d *metricsDecorator) CreateUser(ctx context.Context, input *domain.CreateUserInput) (*domain.User, error) {
	start := time.Now()
	user, err := d.next.CreateUser(ctx, input)
	d.record(ctx, "create", start, err)
	return user, err
}

func (d *metricsDecorator) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	start := time.Now()
	user, err := d.next.GetByID(ctx, id)
	d.record(ctx, "get_by_id", start, err)
	return user, err
}

func (d *metricsDecorator) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	start := time.Now()
	user, err := d.next.GetByEmail(ctx, email)
	d.record(ctx, "get_by_email", start, err)
	return user, err
}

func (d *metricsDecorator) List(ctx context.Context) ([]*domain.User, error) {
	start := time.Now()
	users, err := d.next.List(ctx)
	d.record(ctx, "list", start, err)
	return users, err
}

func (d *metricsDecorator) GetByRole(ctx context.Context, role authDomain.Role) ([]*domain.User, error) {
	start := time.Now()
	users, err := d.next.GetByRole(ctx, role)
	d.record(ctx, "get_by_role", start, err)
	return users, err
}

func (d *metricsDecorator) SearchByNom(ctx context.Context, nom string) ([]*domain.User, error) {
	start := time.Now()
	users, err := d.next.SearchByNom(ctx, nom)
	d.record(ctx, "search_by_nom", start, err)
	return users, err
}

func (d *metricsDecorator) Count(ctx context.Context) (int64, error) {
	start := time.Now()
	count, err := d.next.Count(ctx)
	d.record(ctx, "count", start, err)
	return count, err
}

func (d *metricsDecorator) UpdateProfile(
	ctx context.Context,
	id uuid.UUID,
	input *domain.UpdateProfileInput,
) (*domain.User, error) {
	start := time.Now()
	user, err := d.next.UpdateProfile(ctx, id, input)
	d.record(ctx, "update_profile", start, err)
	return user, err
}

func (d *metricsDecorator) ChangePassword(
	ctx context.Context,
	id uuid.UUID,
	input *domain.ChangePasswordInput,
) error {
	start := time.Now()
	err := d.next.ChangePassword(ctx, id, input)
	d.record(ctx, "change_password", start, err)
	return err
}

func (d *metricsDecorator) UpdateRole(
	ctx context.Context,
	id uuid.UUID,
	role authDomain.Role,
) (*domain.User, error) {
	start := time.Now()
	user, err := d.next.UpdateRole(ctx, id, role)
	d.record(ctx, "update_role", start, err)
	return user, err
}

func (d *metricsDecorator) AdminUpdateUser(
	ctx context.Context,
	id uuid.UUID,
	input *domain.AdminUpdateUserInput,
) (*domain.User, error) {
	start := time.Now()
	user, err := d.next.AdminUpdateUser(ctx, id, input)
	d.record(ctx, "admin_update", start, err)
	return user, err
}

func (d *metricsDecorator) Delete(ctx context.Context, id uuid.UUID) error {
	start := time.Now()
	err := d.next.Delete(ctx, id)
	d.record(ctx, "delete", start, err)
	return err
}
