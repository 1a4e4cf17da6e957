package app

import (
	"context"
	"fmt"

	otelmetric "go.opentelemetry.io/otel/metric"

	authHTTP "github.com/proxym/collabmanager/internal/auth/http"
	"github.com/proxym/collabmanager/internal/http"
	"github.com/proxym/collabmanager/internal/metrics"
	projectHTTP "github.com/proxym/collabmanager/internal/project/http"
	taskHTTP "github.com/proxym/collabmanager/internal/task/http"
	userHTTP "github.com/proxym/collabmanager/internal/user/http"
)

// initHandlers assembles the per-domain HTTP handlers.
func (c *Container) initHandlers(ctx context.Context) (http.Handlers, error) {
	logger := c.Logger()

	authUC, err := c.AuthUseCase(ctx)
	if err != nil {
		return http.Handlers{}, fmt.Errorf("failed to get auth use case for http server: %w", err)
	}

	userUC, err := c.UserUseCase()
	if err != nil {
		return http.Handlers{}, fmt.Errorf("failed to get user use case for http server: %w", err)
	}

	projetUC, err := c.ProjetUseCase()
	if err != nil {
		return http.Handlers{}, fmt.Errorf("failed to get projet use case for http server: %w", err)
	}

	tacheUC, err := c.TacheUseCase()
	if err != nil {
		return http.Handlers{}, fmt.Errorf("failed to get tache use case for http server: %w", err)
	}

	return http.Handlers{
		Auth:   authHTTP.NewAuthHandler(authUC, logger),
		User:   userHTTP.NewUserHandler(userUC, logger),
		Projet: projectHTTP.NewProjetHandler(projetUC, logger),
		Tache:  taskHTTP.NewTacheHandler(tacheUC, logger),
	}, nil
}

// meterProviderOrNil unwraps the optional provider into the interface the HTTP
// server expects. A typed nil pointer must not leak into the interface value.
func meterProviderOrNil(provider *metrics.Provider) otelmetric.MeterProvider {
	if provider == nil {
		return nil
	}
	return provider.MeterProvider()
}
