package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authDomain "github.com/proxym/collabmanager/internal/auth/domain"
	authService "github.com/proxym/collabmanager/internal/auth/service"
	userDomain "github.com/proxym/collabmanager/internal/user/domain"
)

// MockUserRepository is a mock implementation of the identity lookup used by
// the middleware.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *userDomain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*userDomain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userDomain.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

var middlewareTestSecret = []byte("middleware-test-secret")

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestRouter builds a router with the resolver and authorization chain and
// a probe endpoint that reports the resolved identity.
func newTestRouter(
	jwtService authService.JWTService,
	userRepo *MockUserRepository,
	rules authDomain.Rules,
) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(IdentityResolverMiddleware(jwtService, userRepo, testLogger()))
	router.Use(AuthorizationMiddleware(rules, testLogger()))

	probe := func(c *gin.Context) {
		user, ok := GetUser(c.Request.Context())
		if !ok {
			c.JSON(http.StatusOK, gin.H{"anonymous": true})
			return
		}
		c.JSON(http.StatusOK, gin.H{"email": user.Email, "role": string(user.Role)})
	}
	router.GET("/public", probe)
	router.GET("/authenticated", probe)
	router.GET("/admin-only", probe)
	return router
}

func testRules() authDomain.Rules {
	return authDomain.Rules{
		{Pattern: "/public", Public: true},
		{Pattern: "/authenticated"},
		{Pattern: "/admin-only", Roles: []authDomain.Role{authDomain.RoleAdmin}},
	}
}

func doRequest(router *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestIdentityResolverBindsUser(t *testing.T) {
	jwtService := authService.NewJWTService(middlewareTestSecret, time.Hour)
	userRepo := &MockUserRepository{}
	router := newTestRouter(jwtService, userRepo, testRules())

	user := &userDomain.User{
		ID:    uuid.Must(uuid.NewV7()),
		Email: "jean@example.com",
		Role:  authDomain.RoleAdmin,
	}
	userRepo.On("GetByEmail", mock.Anything, "jean@example.com").Return(user, nil)

	token, err := jwtService.Generate("jean@example.com", user.Role.Authorities())
	require.NoError(t, err)

	w := doRequest(router, "/authenticated", token)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "jean@example.com")
	userRepo.AssertExpectations(t)
}

func TestIdentityResolverPassThroughWithoutToken(t *testing.T) {
	jwtService := authService.NewJWTService(middlewareTestSecret, time.Hour)
	userRepo := &MockUserRepository{}
	router := newTestRouter(jwtService, userRepo, testRules())

	// Public route stays reachable anonymously
	w := doRequest(router, "/public", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "anonymous")

	// Protected route yields 401, written by the authorization middleware
	w = doRequest(router, "/authenticated", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	userRepo.AssertNotCalled(t, "GetByEmail")
}

func TestIdentityResolverExpiredTokenYields401Not403(t *testing.T) {
	expiredJWTService := authService.NewJWTService(middlewareTestSecret, -time.Minute)
	jwtService := authService.NewJWTService(middlewareTestSecret, time.Hour)
	userRepo := &MockUserRepository{}
	router := newTestRouter(jwtService, userRepo, testRules())

	token, err := expiredJWTService.Generate("jean@example.com", nil)
	require.NoError(t, err)

	// The expired token resolves to no identity, so the request is anonymous
	w := doRequest(router, "/authenticated", token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Public routes are unaffected by a bad token
	w = doRequest(router, "/public", token)
	assert.Equal(t, http.StatusOK, w.Code)

	userRepo.AssertNotCalled(t, "GetByEmail")
}

func TestIdentityResolverMalformedHeader(t *testing.T) {
	jwtService := authService.NewJWTService(middlewareTestSecret, time.Hour)
	userRepo := &MockUserRepository{}
	router := newTestRouter(jwtService, userRepo, testRules())

	for _, header := range []string{"Token abc", "Bearer", "bogus"} {
		req := httptest.NewRequest(http.MethodGet, "/authenticated", nil)
		req.Header.Set("Authorization", header)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
	}

	userRepo.AssertNotCalled(t, "GetByEmail")
}

func TestIdentityResolverUnknownSubject(t *testing.T) {
	jwtService := authService.NewJWTService(middlewareTestSecret, time.Hour)
	userRepo := &MockUserRepository{}
	router := newTestRouter(jwtService, userRepo, testRules())

	userRepo.On("GetByEmail", mock.Anything, "deleted@example.com").
		Return(nil, userDomain.ErrUserNotFound)

	token, err := jwtService.Generate("deleted@example.com", nil)
	require.NoError(t, err)

	w := doRequest(router, "/authenticated", token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	userRepo.AssertExpectations(t)
}

func TestIdentityResolverSkipsWhenIdentityAlreadyBound(t *testing.T) {
	jwtService := authService.NewJWTService(middlewareTestSecret, time.Hour)
	userRepo := &MockUserRepository{}

	preBound := &userDomain.User{
		ID:    uuid.Must(uuid.NewV7()),
		Email: "deja@example.com",
		Role:  authDomain.RoleAdmin,
	}

	gin.SetMode(gin.TestMode)
	router := gin.New()
	// An upstream middleware already resolved the caller
	router.Use(func(c *gin.Context) {
		ctx := WithUser(c.Request.Context(), preBound)
		ctx = WithAuthorities(ctx, preBound.Role.Authorities())
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})
	router.Use(IdentityResolverMiddleware(jwtService, userRepo, testLogger()))
	router.GET("/whoami", func(c *gin.Context) {
		user, ok := GetUser(c.Request.Context())
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"email": user.Email})
	})

	// The bearer token names a different subject; it must be ignored
	token, err := jwtService.Generate("autre@example.com", nil)
	require.NoError(t, err)

	w := doRequest(router, "/whoami", token)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "deja@example.com")
	userRepo.AssertNotCalled(t, "GetByEmail")
}

func TestAuthorizationRoleEnforcement(t *testing.T) {
	jwtService := authService.NewJWTService(middlewareTestSecret, time.Hour)
	userRepo := &MockUserRepository{}
	router := newTestRouter(jwtService, userRepo, testRules())

	member := &userDomain.User{
		ID:    uuid.Must(uuid.NewV7()),
		Email: "membre@example.com",
		Role:  authDomain.RoleMembreEquipe,
	}
	userRepo.On("GetByEmail", mock.Anything, "membre@example.com").Return(member, nil)

	token, err := jwtService.Generate("membre@example.com", member.Role.Authorities())
	require.NoError(t, err)

	// Authenticated but lacking the required role: 403
	w := doRequest(router, "/admin-only", token)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Any-authenticated route still works
	w = doRequest(router, "/authenticated", token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthorizationReflectsLiveRole(t *testing.T) {
	jwtService := authService.NewJWTService(middlewareTestSecret, time.Hour)
	userRepo := &MockUserRepository{}
	router := newTestRouter(jwtService, userRepo, testRules())

	// Token was issued while the user was MEMBRE_EQUIPE; the stored role has
	// since been promoted to ADMIN. Access reflects the live role immediately.
	promoted := &userDomain.User{
		ID:    uuid.Must(uuid.NewV7()),
		Email: "promu@example.com",
		Role:  authDomain.RoleAdmin,
	}
	userRepo.On("GetByEmail", mock.Anything, "promu@example.com").Return(promoted, nil)

	token, err := jwtService.Generate("promu@example.com", authDomain.RoleMembreEquipe.Authorities())
	require.NoError(t, err)

	w := doRequest(router, "/admin-only", token)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ADMIN")
}

func TestContextUserBinding(t *testing.T) {
	ctx := context.Background()

	_, ok := GetUser(ctx)
	assert.False(t, ok)

	user := &userDomain.User{ID: uuid.Must(uuid.NewV7()), Email: "jean@example.com"}
	ctx = WithUser(ctx, user)
	got, ok := GetUser(ctx)
	require.True(t, ok)
	assert.Equal(t, user, got)

	_, ok = GetAuthorities(ctx)
	assert.False(t, ok)

	ctx = WithAuthorities(ctx, []string{"ROLE_ADMIN"})
	authorities, ok := GetAuthorities(ctx)
	require.True(t, ok)
	assert.Equal(t, []string{"ROLE_ADMIN"}, authorities)
}
