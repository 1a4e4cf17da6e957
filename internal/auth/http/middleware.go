package http

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	authDomain "github.com/proxym/collabmanager/internal/auth/domain"
	authService "github.com/proxym/collabmanager/internal/auth/service"
	authUseCase "github.com/proxym/collabmanager/internal/auth/usecase"
	apperrors "github.com/proxym/collabmanager/internal/errors"
	"github.com/proxym/collabmanager/internal/httputil"
)

// IdentityResolverMiddleware resolves the caller's identity from a Bearer token
// in the Authorization header and binds it to the request context.
//
// The middleware is strictly pass-through: it never writes a response and never
// aborts the chain. A missing header, a malformed header, an invalid signature,
// an expired token or an unknown subject all leave the request anonymous and
// let it continue; the authorization middleware decides what anonymity means
// for the route.
//
// Authorities are recomputed from the user's current stored role, not read from
// the token's embedded claims, so a role change takes effect on the very next
// request. The identity is bound at most once: if an earlier middleware already
// bound a user, this one does nothing.
//
// Usage:
//
//	router.Use(IdentityResolverMiddleware(jwtService, userRepo, logger))
//	router.Use(AuthorizationMiddleware(authDomain.DefaultRules(), logger))
func IdentityResolverMiddleware(
	jwtService authService.JWTService,
	userRepo authUseCase.UserRepository,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Bind at most once
		if _, ok := GetUser(c.Request.Context()); ok {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		// Parse Bearer token (case-insensitive)
		const bearerPrefix = "bearer "
		if len(authHeader) < len(bearerPrefix) ||
			!strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
			logger.Debug("identity resolution skipped: malformed authorization header")
			c.Next()
			return
		}

		token := strings.TrimSpace(authHeader[len(bearerPrefix):])
		if token == "" {
			c.Next()
			return
		}

		// An expired or tampered token resolves to no identity, not an error
		claims, err := jwtService.Decode(token)
		if err != nil {
			logger.Debug("identity resolution skipped: invalid token",
				slog.String("error", err.Error()))
			c.Next()
			return
		}

		user, err := userRepo.GetByEmail(c.Request.Context(), claims.Subject)
		if err != nil {
			logger.Debug("identity resolution skipped: subject not found",
				slog.String("subject", claims.Subject))
			c.Next()
			return
		}

		ctx := WithUser(c.Request.Context(), user)
		ctx = WithAuthorities(ctx, user.Role.Authorities())
		c.Request = c.Request.WithContext(ctx)

		logger.Debug("identity resolved",
			slog.String("user_id", user.ID.String()),
			slog.String("role", string(user.Role)))

		c.Next()
	}
}

// AuthorizationMiddleware enforces the route access rules against the identity
// bound by IdentityResolverMiddleware.
//
// The rules are evaluated in declaration order and the first match wins. A
// public decision lets the request through with or without an identity. Every
// other decision requires an authenticated caller: an anonymous request gets
// 401, an authenticated caller whose role is not in the decision's role set
// gets 403. An empty role set means any authenticated caller is allowed.
func AuthorizationMiddleware(rules authDomain.Rules, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		decision := rules.Evaluate(c.Request.Method, c.Request.URL.Path)

		if decision.Public {
			c.Next()
			return
		}

		user, ok := GetUser(c.Request.Context())
		if !ok || user == nil {
			logger.Debug("authorization failed: no authenticated caller",
				slog.String("method", c.Request.Method),
				slog.String("path", c.Request.URL.Path))
			httputil.HandleError(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		if !decision.Allows(user.Role) {
			logger.Debug("authorization failed: insufficient role",
				slog.String("user_id", user.ID.String()),
				slog.String("role", string(user.Role)),
				slog.String("method", c.Request.Method),
				slog.String("path", c.Request.URL.Path))
			httputil.HandleError(c, apperrors.ErrForbidden, logger)
			c.Abort()
			return
		}

		c.Next()
	}
}
