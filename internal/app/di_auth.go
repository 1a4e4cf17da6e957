package app

import (
	"context"
	"fmt"

	authService "github.com/proxym/collabmanager/internal/auth/service"
	authUsecase "github.com/proxym/collabmanager/internal/auth/usecase"
)

// PasswordService returns the password hashing service.
func (c *Container) PasswordService() authService.PasswordService {
	c.passwordSvcInit.Do(func() {
		c.passwordService = authService.NewPasswordService()
	})
	return c.passwordService
}

// JWTService returns the token service. The signing key is resolved once at
// first access, decrypting through the configured KMS keeper when needed.
func (c *Container) JWTService(ctx context.Context) (authService.JWTService, error) {
	var err error
	c.jwtServiceInit.Do(func() {
		var secret []byte
		secret, err = authService.NewSigningKeyService(c.config).Resolve(ctx)
		if err != nil {
			c.initErrors["jwtService"] = fmt.Errorf("failed to resolve signing key: %w", err)
			return
		}
		c.jwtService = authService.NewJWTService(secret, c.config.JWTExpiration)
	})
	if err != nil {
		return nil, c.initErrors["jwtService"]
	}
	if storedErr, exists := c.initErrors["jwtService"]; exists {
		return nil, storedErr
	}
	return c.jwtService, nil
}

// AuthUseCase returns the authentication use case instance.
func (c *Container) AuthUseCase(ctx context.Context) (authUsecase.AuthUseCase, error) {
	var err error
	c.authUseCaseInit.Do(func() {
		c.authUseCase, err = c.initAuthUseCase(ctx)
		if err != nil {
			c.initErrors["authUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["authUseCase"]; exists {
		return nil, storedErr
	}
	return c.authUseCase, nil
}

// initAuthUseCase creates the auth use case with all its dependencies.
func (c *Container) initAuthUseCase(ctx context.Context) (authUsecase.AuthUseCase, error) {
	userRepo, err := c.UserRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get user repository for auth use case: %w", err)
	}

	jwtService, err := c.JWTService(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get jwt service for auth use case: %w", err)
	}

	useCase := authUsecase.NewAuthUseCase(userRepo, c.PasswordService(), jwtService)

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for auth use case: %w", err)
	}
	if businessMetrics != nil {
		useCase = authUsecase.NewMetricsDecorator(useCase, businessMetrics)
	}

	return useCase, nil
}
