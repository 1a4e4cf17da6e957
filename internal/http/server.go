package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	otelmetric "go.opentelemetry.io/otel/metric"

	authDomain "github.com/proxym/collabmanager/internal/auth/domain"
	authHTTP "github.com/proxym/collabmanager/internal/auth/http"
	authService "github.com/proxym/collabmanager/internal/auth/service"
	authUseCase "github.com/proxym/collabmanager/internal/auth/usecase"
	"github.com/proxym/collabmanager/internal/config"
	"github.com/proxym/collabmanager/internal/metrics"
	projectHTTP "github.com/proxym/collabmanager/internal/project/http"
	taskHTTP "github.com/proxym/collabmanager/internal/task/http"
	userHTTP "github.com/proxym/collabmanager/internal/user/http"
)

// Handlers groups the per-domain HTTP handlers mounted on the server.
type Handlers struct {
	Auth   *authHTTP.AuthHandler
	User   *userHTTP.UserHandler
	Projet *projectHTTP.ProjetHandler
	Tache  *taskHTTP.TacheHandler
}

// Server is the API HTTP server. All routes pass through the identity
// resolver and the rule-table authorization middleware.
type Server struct {
	server *http.Server
	logger *slog.Logger
}

// NewServer creates the API server and wires the full middleware chain and
// route table.
func NewServer(
	cfg *config.Config,
	logger *slog.Logger,
	handlers Handlers,
	jwtService authService.JWTService,
	userRepo authUseCase.UserRepository,
	meterProvider otelmetric.MeterProvider,
) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New())
	router.Use(CustomLoggerMiddleware(logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if meterProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(meterProvider, "collabmanager"))
	}

	// Identity resolution is pass-through; the authorization middleware is
	// the single enforcement point for the whole surface.
	router.Use(authHTTP.IdentityResolverMiddleware(jwtService, userRepo, logger))
	router.Use(authHTTP.AuthorizationMiddleware(authDomain.DefaultRules(), logger))

	registerRoutes(router, cfg, logger, handlers)

	return &Server{
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// registerRoutes mounts every endpoint on the router.
func registerRoutes(router *gin.Engine, cfg *config.Config, logger *slog.Logger, handlers Handlers) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	router.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	auth := router.Group("/auth")
	{
		if cfg.RateLimitLoginEnabled {
			limited := auth.Group("")
			limited.Use(authHTTP.LoginRateLimitMiddleware(
				cfg.RateLimitLoginRequestsPerSec,
				cfg.RateLimitLoginBurst,
				logger,
			))
			limited.POST("/login", handlers.Auth.LoginHandler)
			limited.POST("/register", handlers.Auth.RegisterHandler)
		} else {
			auth.POST("/login", handlers.Auth.LoginHandler)
			auth.POST("/register", handlers.Auth.RegisterHandler)
		}

		auth.POST("/refresh", handlers.Auth.RefreshHandler)
		auth.POST("/validate", handlers.Auth.ValidateHandler)
		auth.GET("/check-email", handlers.Auth.CheckEmailHandler)
		auth.POST("/logout", handlers.Auth.LogoutHandler)
		auth.GET("/profile", handlers.Auth.ProfileHandler)
	}

	utilisateurs := router.Group("/utilisateurs")
	{
		utilisateurs.GET("/mon-profil", handlers.User.MyProfileHandler)
		utilisateurs.PUT("/mon-profil", handlers.User.UpdateMyProfileHandler)
		utilisateurs.PUT("/mon-profil/mot-de-passe", handlers.User.ChangeMyPasswordHandler)
		utilisateurs.POST("/admin/create", handlers.User.CreateUserHandler)
		utilisateurs.PUT("/admin/:id/role", handlers.User.UpdateRoleHandler)
		utilisateurs.PUT("/admin/:id", handlers.User.AdminUpdateUserHandler)
		utilisateurs.GET("/all", handlers.User.ListUsersHandler)
		utilisateurs.GET("/email", handlers.User.GetByEmailHandler)
		utilisateurs.GET("/nom", handlers.User.SearchByNomHandler)
		utilisateurs.GET("/role", handlers.User.GetByRoleHandler)
		utilisateurs.GET("/count", handlers.User.CountHandler)
		utilisateurs.GET("/:id", handlers.User.GetByIDHandler)
		utilisateurs.DELETE("/:id", handlers.User.DeleteHandler)
	}

	projets := router.Group("/projets")
	{
		projets.POST("/add", handlers.Projet.CreateHandler)
		projets.GET("/all", handlers.Projet.ListHandler)
		projets.GET("/search", handlers.Projet.SearchHandler)
		projets.GET("/statut", handlers.Projet.GetByStatutHandler)
		projets.GET("/sans-participants", handlers.Projet.ListWithoutParticipantsHandler)
		projets.GET("/mes-projets", handlers.Projet.MyProjectsHandler)
		projets.DELETE("/:id/delete", handlers.Projet.DeleteHandler)
		projets.POST("/:id/assigner/:utilisateurId", handlers.Projet.AssignParticipantHandler)
		projets.DELETE("/:id/retirer/:utilisateurId", handlers.Projet.RemoveParticipantHandler)
		projets.GET("/:id/statistiques", handlers.Projet.StatistiquesHandler)
		projets.PUT("/:id/statut", handlers.Projet.UpdateStatutHandler)
		projets.GET("/:id/projet", handlers.Projet.GetByIDHandler)
		projets.GET("/:id/participants", handlers.Projet.ListParticipantsHandler)
	}

	taches := router.Group("/taches")
	{
		taches.POST("/add", handlers.Tache.CreateHandler)
		taches.GET("/all", handlers.Tache.ListHandler)
		taches.GET("/statut", handlers.Tache.ListByStatutHandler)
		taches.GET("/mes-taches", handlers.Tache.MyTasksHandler)
		taches.GET("/utilisateur/:id", handlers.Tache.ListByUtilisateurHandler)
		taches.GET("/utilisateur/:id/statut", handlers.Tache.ListByUtilisateurAndStatutHandler)
		taches.GET("/projet/:id", handlers.Tache.ListByProjetHandler)
		taches.PUT("/:id/update", handlers.Tache.UpdateHandler)
		taches.PUT("/:id/update-statut", handlers.Tache.UpdateStatutHandler)
		taches.DELETE("/:id/delete", handlers.Tache.DeleteHandler)
		taches.GET("/:id/tache", handlers.Tache.GetByIDHandler)
	}
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.server.Handler
}

// Start starts the HTTP server.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}
