package service

import (
	"context"
	"testing"

	"github.com/gemchat/backend/internal/config"
	"github.com/gemchat/backend/internal/model"
	"github.com/gemchat/backend/internal/token"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	byName map[string]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byName: make(map[string]*model.User)}
}

func (f *fakeUserRepo) CreateUser(_ context.Context, username, passwordHash string) (*model.User, error) {
	user := &model.User{ID: uuid.New(), Username: username, PasswordHash: passwordHash}
	f.byName[username] = user
	return user, nil
}

func (f *fakeUserRepo) GetUserByUsername(_ context.Context, username string) (*model.User, error) {
	if user, ok := f.byName[username]; ok {
		return user, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) GetUserByID(_ context.Context, userID uuid.UUID) (*model.User, error) {
	for _, user := range f.byName {
		if user.ID == userID {
			return user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:    "test-secret",
		JWTAlgorithm: "HS256",
		JWTAccessTTL: "24h",
	}
}

func newTestAuthService(t *testing.T) (*AuthService, *fakeUserRepo) {
	t.Helper()
	users := newFakeUserRepo()
	svc, err := NewAuthService(users, token.NewMemoryStore(), testAuthConfig())
	require.NoError(t, err)
	return svc, users
}

func seedUser(t *testing.T, users *fakeUserRepo, username, password string) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user, err := users.CreateUser(context.Background(), username, string(hash))
	require.NoError(t, err)
	return user
}

func TestNewAuthServiceMisconfigured(t *testing.T) {
	users := newFakeUserRepo()

	cfg := testAuthConfig()
	cfg.JWTSecret = ""
	_, err := NewAuthService(users, token.NewMemoryStore(), cfg)
	assert.ErrorIs(t, err, ErrMisconfigured)

	cfg = testAuthConfig()
	cfg.JWTAccessTTL = "not-a-duration"
	_, err = NewAuthService(users, token.NewMemoryStore(), cfg)
	assert.ErrorIs(t, err, ErrMisconfigured)

	cfg = testAuthConfig()
	cfg.JWTAlgorithm = "RS256"
	_, err = NewAuthService(users, token.NewMemoryStore(), cfg)
	assert.ErrorIs(t, err, ErrMisconfigured)

	cfg = testAuthConfig()
	cfg.CookieSameSite = "none"
	cfg.CookieSecure = "false"
	_, err = NewAuthService(users, token.NewMemoryStore(), cfg)
	assert.ErrorIs(t, err, ErrMisconfigured)
}

func TestLogin(t *testing.T) {
	svc, users := newTestAuthService(t)
	user := seedUser(t, users, "ada", "correct horse")
	ctx := context.Background()

	pair, err := svc.Login(ctx, "ada", "correct horse")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, int64(86400), pair.ExpiresIn)

	identity, err := svc.ParseAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, identity.ID)
}

func TestLoginRejections(t *testing.T) {
	svc, users := newTestAuthService(t)
	seedUser(t, users, "ada", "correct horse")
	ctx := context.Background()

	_, err := svc.Login(ctx, "ada", "wrong")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.Login(ctx, "nobody", "correct horse")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.Login(ctx, "", "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRefreshRotatesAndDetectsReuse(t *testing.T) {
	svc, users := newTestAuthService(t)
	seedUser(t, users, "ada", "pw")
	ctx := context.Background()

	first, err := svc.Login(ctx, "ada", "pw")
	require.NoError(t, err)

	second, err := svc.Refresh(ctx, first.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

	// Replay of the retired token kills the whole lineage.
	_, err = svc.Refresh(ctx, first.RefreshToken)
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, err = svc.Refresh(ctx, second.RefreshToken)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestLogoutRevokesSession(t *testing.T) {
	svc, users := newTestAuthService(t)
	seedUser(t, users, "ada", "pw")
	ctx := context.Background()

	pair, err := svc.Login(ctx, "ada", "pw")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, pair.RefreshToken))

	_, err = svc.Refresh(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, ErrUnauthorized)

	// Logout with no cookie is a no-op.
	assert.NoError(t, svc.Logout(ctx, ""))
}

func TestLogoutKeepsOtherSessions(t *testing.T) {
	svc, users := newTestAuthService(t)
	seedUser(t, users, "ada", "pw")
	ctx := context.Background()

	laptop, err := svc.Login(ctx, "ada", "pw")
	require.NoError(t, err)
	phone, err := svc.Login(ctx, "ada", "pw")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, laptop.RefreshToken))

	_, err = svc.Refresh(ctx, phone.RefreshToken)
	assert.NoError(t, err)
}

func TestRevokeAllSessions(t *testing.T) {
	svc, users := newTestAuthService(t)
	user := seedUser(t, users, "ada", "pw")
	ctx := context.Background()

	laptop, err := svc.Login(ctx, "ada", "pw")
	require.NoError(t, err)
	phone, err := svc.Login(ctx, "ada", "pw")
	require.NoError(t, err)

	require.NoError(t, svc.RevokeAllSessions(ctx, user.ID))

	_, err = svc.Refresh(ctx, laptop.RefreshToken)
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, err = svc.Refresh(ctx, phone.RefreshToken)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestParseAccessTokenRejectsGarbage(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.ParseAccessToken("garbage")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestEnsureAdmin(t *testing.T) {
	svc, users := newTestAuthService(t)
	ctx := context.Background()

	require.NoError(t, svc.EnsureAdmin(ctx, "admin", "hunter22"))
	created := users.byName["admin"]
	require.NotNil(t, created)

	// Idempotent: the existing user is kept.
	require.NoError(t, svc.EnsureAdmin(ctx, "admin", "different"))
	assert.Equal(t, created, users.byName["admin"])

	assert.ErrorIs(t, svc.EnsureAdmin(ctx, "", ""), ErrMisconfigured)
}
