package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/auth"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) UpdatePhotoURL(ctx context.Context, id string, url string) error {
	args := m.Called(ctx, id, url)
	return args.Error(0)
}

func (m *mockUserRepo) TouchLastLogin(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func setupAuthRouter(tokens *auth.TokenManager, repo domain.UserRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AuthMiddleware(tokens, repo))
	r.GET("/protected", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": CurrentUserID(c)})
	})
	return r
}

func doRequest(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareAcceptsValidToken(t *testing.T) {
	tokens := auth.NewTokenManager("secret", time.Hour)
	repo := new(mockUserRepo)
	repo.On("GetByID", mock.Anything, "u1").Return(&domain.User{
		ID:     "u1",
		Status: domain.UserStatusActive,
	}, nil)

	token, _ := tokens.Issue("u1")
	w := doRequest(setupAuthRouter(tokens, repo), "Bearer "+token)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "u1")
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	tokens := auth.NewTokenManager("secret", time.Hour)
	w := doRequest(setupAuthRouter(tokens, new(mockUserRepo)), "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Authorization header required")
}

func TestAuthMiddlewareMalformedHeader(t *testing.T) {
	tokens := auth.NewTokenManager("secret", time.Hour)
	w := doRequest(setupAuthRouter(tokens, new(mockUserRepo)), "Token abc123")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Bearer")
}

func TestAuthMiddlewareExpiredToken(t *testing.T) {
	expired := auth.NewTokenManager("secret", -time.Minute)
	live := auth.NewTokenManager("secret", time.Hour)

	token, _ := expired.Issue("u1")
	w := doRequest(setupAuthRouter(live, new(mockUserRepo)), "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Token expired")
}

func TestAuthMiddlewareDeletedAccount(t *testing.T) {
	tokens := auth.NewTokenManager("secret", time.Hour)
	repo := new(mockUserRepo)
	deletedAt := time.Now()
	repo.On("GetByID", mock.Anything, "u1").Return(&domain.User{
		ID:        "u1",
		Status:    domain.UserStatusActive,
		DeletedAt: &deletedAt,
	}, nil)

	token, _ := tokens.Issue("u1")
	w := doRequest(setupAuthRouter(tokens, repo), "Bearer "+token)

	// A valid token does not outlive the account.
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Account deleted")
}

func TestAuthMiddlewareSuspendedAccount(t *testing.T) {
	tokens := auth.NewTokenManager("secret", time.Hour)
	repo := new(mockUserRepo)
	repo.On("GetByID", mock.Anything, "u1").Return(&domain.User{
		ID:     "u1",
		Status: domain.UserStatusSuspended,
	}, nil)

	token, _ := tokens.Issue("u1")
	w := doRequest(setupAuthRouter(tokens, repo), "Bearer "+token)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAuthMiddlewareUnknownUser(t *testing.T) {
	tokens := auth.NewTokenManager("secret", time.Hour)
	repo := new(mockUserRepo)
	repo.On("GetByID", mock.Anything, "ghost").Return(nil, nil)

	token, _ := tokens.Issue("ghost")
	w := doRequest(setupAuthRouter(tokens, repo), "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
