package usecase

import (
	"context"
	"time"

	"github.com/proxym/collabmanager/internal/metrics"
)

// metricsDecorator wraps an AuthUseCase and records operation metrics.
type metricsDecorator struct {
	next    AuthUseCase
	metrics metrics.BusinessMetrics
}

// NewMetricsDecorator wraps the use case with business metrics instrumentation.
func NewMetricsDecorator(next AuthUseCase, businessMetrics metrics.BusinessMetrics) AuthUseCase {
	return &metricsDecorator{
		next:    next,
		metrics: businessMetrics,
	}
}

const metricsDomain = "auth"

func (d *metricsDecorator) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	d.metrics.RecordOperation(ctx, metricsDomain, operation, status)
	d.metrics.RecordDuration(ctx, metricsDomain, operation, time.Since(start), status)
}

func (d *metricsDecorator) Register(ctx context.Context, input *RegisterInput) (*Session, error) {
	start := time.Now()
	session, err := d.next.Register(ctx, input)
	d.record(ctx, "register", start, err)
	return session, err
}

func (d *metricsDecorator) Login(ctx context.Context, input *LoginInput) (*Session, error) {
	start := time.Now()
	session, err := d.next.Login(ctx, input)
	d.record(ctx, "login", start, err)
	return session, err
}

func (d *metricsDecorator) Refresh(ctx context.Context, presentedToken string) (*Session, error) {
	start := time.Now()
	session, err := d.next.Refresh(ctx, presentedToken)
	d.record(ctx, "refresh", start, err)
	return session, err
}

func (d *metricsDecorator) ValidateToken(ctx context.Context, token string) bool {
	start := time.Now()
	valid := d.next.ValidateToken(ctx, token)
	d.record(ctx, "validate_token", start, nil)
	return valid
}

func (d *metricsDecorator) EmailExists(ctx context.Context, email string) (bool, error) {
	start := time.Now()
	exists, err := d.next.EmailExists(ctx, email)
	d.record(ctx, "email_exists", start, err)
	return exists, err
}
