package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gemchat/backend/internal/config"
	"github.com/gemchat/backend/internal/model"
	"github.com/gemchat/backend/internal/service"
	"github.com/gemchat/backend/internal/token"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUsers struct {
	byName map[string]*model.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byName: make(map[string]*model.User)}
}

func (f *fakeUsers) CreateUser(_ context.Context, username, passwordHash string) (*model.User, error) {
	user := &model.User{ID: uuid.New(), Username: username, PasswordHash: passwordHash}
	f.byName[username] = user
	return user, nil
}

func (f *fakeUsers) GetUserByUsername(_ context.Context, username string) (*model.User, error) {
	if user, ok := f.byName[username]; ok {
		return user, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUsers) GetUserByID(_ context.Context, userID uuid.UUID) (*model.User, error) {
	for _, user := range f.byName {
		if user.ID == userID {
			return user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func newTestAuthService(t *testing.T) (*service.AuthService, *fakeUsers) {
	t.Helper()
	users := newFakeUsers()
	svc, err := service.NewAuthService(users, token.NewMemoryStore(), config.AuthConfig{
		JWTSecret:    "test-secret",
		JWTAccessTTL: "24h",
		CookieSecure: "false",
	})
	require.NoError(t, err)
	return svc, users
}

func seedUser(t *testing.T, users *fakeUsers, username, password string) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user, err := users.CreateUser(context.Background(), username, string(hash))
	require.NoError(t, err)
	return user
}

func protectedRouter(svc *service.AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", AuthMiddleware(svc), func(c *gin.Context) {
		user := GetAuthUser(c)
		c.JSON(http.StatusOK, gin.H{"id": user.ID.String()})
	})
	return router
}

func TestAuthMiddlewareRejectsMissingHeader(t *testing.T) {
	svc, _ := newTestAuthService(t)
	router := protectedRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareRejectsBadTokens(t *testing.T) {
	svc, _ := newTestAuthService(t)
	router := protectedRouter(svc)

	for _, header := range []string{"Bearer ", "Bearer garbage", "Basic abc", "garbage"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", header)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
	}
}

func TestAuthMiddlewareAttachesIdentity(t *testing.T) {
	svc, users := newTestAuthService(t)
	user := seedUser(t, users, "ada", "pw")
	router := protectedRouter(svc)

	pair, err := svc.Login(context.Background(), "ada", "pw")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), user.ID.String())
}
