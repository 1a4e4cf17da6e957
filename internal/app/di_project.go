package app

import (
	"fmt"

	projectRepository "github.com/proxym/collabmanager/internal/project/repository"
	projectUsecase "github.com/proxym/collabmanager/internal/project/usecase"
)

// ProjetRepository returns the project repository instance.
func (c *Container) ProjetRepository() (projectUsecase.ProjetRepository, error) {
	var err error
	c.projetRepoInit.Do(func() {
		c.projetRepo, err = c.initProjetRepository()
		if err != nil {
			c.initErrors["projetRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["projetRepo"]; exists {
		return nil, storedErr
	}
	return c.projetRepo, nil
}

// initProjetRepository creates the project repository instance.
func (c *Container) initProjetRepository() (projectUsecase.ProjetRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for projet repository: %w", err)
	}

	// Select the appropriate repository based on the database driver
	switch c.config.DBDriver {
	case "mysql":
		return projectRepository.NewMySQLProjetRepository(db), nil
	case "postgres":
		return projectRepository.NewPostgreSQLProjetRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// ProjetUseCase returns the project use case instance.
func (c *Container) ProjetUseCase() (projectUsecase.ProjetUseCase, error) {
	var err error
	c.projetUseCaseInit.Do(func() {
		c.projetUseCase, err = c.initProjetUseCase()
		if err != nil {
			c.initErrors["projetUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["projetUseCase"]; exists {
		return nil, storedErr
	}
	return c.projetUseCase, nil
}

// initProjetUseCase creates the project use case with all its dependencies.
func (c *Container) initProjetUseCase() (projectUsecase.ProjetUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for projet use case: %w", err)
	}

	projetRepo, err := c.ProjetRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get projet repository for projet use case: %w", err)
	}

	userRepo, err := c.UserRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get user repository for projet use case: %w", err)
	}

	useCase := projectUsecase.NewProjetUseCase(txManager, projetRepo, userRepo)

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for projet use case: %w", err)
	}
	if businessMetrics != nil {
		useCase = projectUsecase.NewMetricsDecorator(useCase, businessMetrics)
	}

	return useCase, nil
}
