package app

import (
	"fmt"

	taskRepository "github.com/proxym/collabmanager/internal/task/repository"
	taskUsecase "github.com/proxym/collabmanager/internal/task/usecase"
)

// TacheRepository returns the task repository instance.
func (c *Container) TacheRepository() (taskUsecase.TacheRepository, error) {
	var err error
	c.tacheRepoInit.Do(func() {
		c.tacheRepo, err = c.initTacheRepository()
		if err != nil {
			c.initErrors["tacheRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["tacheRepo"]; exists {
		return nil, storedErr
	}
	return c.tacheRepo, nil
}

// initTacheRepository creates the task repository instance.
func (c *Container) initTacheRepository() (taskUsecase.TacheRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for tache repository: %w", err)
	}

	// Select the appropriate repository based on the database driver
	switch c.config.DBDriver {
	case "mysql":
		return taskRepository.NewMySQLTacheRepository(db), nil
	case "postgres":
		return taskRepository.NewPostgreSQLTacheRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// TacheUseCase returns the task use case instance.
func (c *Container) TacheUseCase() (taskUsecase.TacheUseCase, error) {
	var err error
	c.tacheUseCaseInit.Do(func() {
		c.tacheUseCase, err = c.initTacheUseCase()
		if err != nil {
			c.initErrors["tacheUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["tacheUseCase"]; exists {
		return nil, storedErr
	}
	return c.tacheUseCase, nil
}

// initTacheUseCase creates the task use case with all its dependencies.
func (c *Container) initTacheUseCase() (taskUsecase.TacheUseCase, error) {
	tacheRepo, err := c.TacheRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get tache repository for tache use case: %w", err)
	}

	projetRepo, err := c.ProjetRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get projet repository for tache use case: %w", err)
	}

	userRepo, err := c.UserRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get user repository for tache use case: %w", err)
	}

	useCase := taskUsecase.NewTacheUseCase(tacheRepo, projetRepo, userRepo)

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for tache use case: %w", err)
	}
	if businessMetrics != nil {
		useCase = taskUsecase.NewMetricsDecorator(useCase, businessMetrics)
	}

	return useCase, nil
}
