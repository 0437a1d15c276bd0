package service

import (
	"context"
	"testing"

	"github.com/Sergiom84/Lucy3000/internal/config"
	"github.com/Sergiom84/Lucy3000/internal/dto"
	"github.com/Sergiom84/Lucy3000/internal/model"
	"github.com/Sergiom84/Lucy3000/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── In-memory UserRepository ─────────────────────────────────────────────────

type fakeUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, u *model.User) error {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) Update(_ context.Context, u *model.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) List(_ context.Context) ([]model.User, error) {
	all := make([]model.User, 0, len(r.users))
	for _, u := range r.users {
		all = append(all, *u)
	}
	return all, nil
}

var _ repository.UserRepository = (*fakeUserRepo)(nil)

func testAuthConfig() *config.Config {
	return &config.Config{
		JWTSecret:          "unit-test-secret",
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
	}
}

func registerUser(t *testing.T, svc AuthService, email, password, role string) *dto.UserResponse {
	t.Helper()
	resp, err := svc.Register(context.Background(), dto.CreateUserRequest{
		Email: email, Name: "Test User", Password: password, Role: role,
	})
	require.NoError(t, err)
	return resp
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestLoginSuccess(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, testAuthConfig())
	registerUser(t, svc, "ana@salon.test", "correct-horse", model.RoleAdmin)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{
		Email: "ana@salon.test", Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 8*3600, resp.ExpiresIn)
	assert.Equal(t, model.RoleAdmin, resp.User.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, testAuthConfig())
	registerUser(t, svc, "ana@salon.test", "correct-horse", model.RoleAdmin)

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Email: "ana@salon.test", Password: "wrong",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, testAuthConfig())

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Email: "nobody@salon.test", Password: "anything",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginInactiveUser(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, testAuthConfig())
	created := registerUser(t, svc, "ana@salon.test", "correct-horse", model.RoleEmployee)

	repo.users[uuid.MustParse(created.ID)].IsActive = false

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Email: "ana@salon.test", Password: "correct-horse",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshRoundTrip(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, testAuthConfig())
	registerUser(t, svc, "ana@salon.test", "correct-horse", model.RoleAdmin)

	login, err := svc.Login(context.Background(), dto.LoginRequest{
		Email: "ana@salon.test", Password: "correct-horse",
	})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Equal(t, login.User.ID, refreshed.User.ID)
}

func TestRefreshGarbageToken(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, testAuthConfig())

	_, err := svc.Refresh(context.Background(), "not-a-jwt")
	assert.Error(t, err)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, testAuthConfig())
	registerUser(t, svc, "ana@salon.test", "correct-horse", model.RoleAdmin)

	_, err := svc.Register(context.Background(), dto.CreateUserRequest{
		Email: "ana@salon.test", Name: "Dup", Password: "whatever1", Role: model.RoleEmployee,
	})
	assert.Error(t, err)
}

func TestRegisterHashesPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, testAuthConfig())
	created := registerUser(t, svc, "ana@salon.test", "correct-horse", model.RoleEmployee)

	stored := repo.users[uuid.MustParse(created.ID)]
	assert.NotEqual(t, "correct-horse", stored.PasswordHash)
	assert.NotEmpty(t, stored.PasswordHash)
}

func TestUpdateUserChangesPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, testAuthConfig())
	created := registerUser(t, svc, "ana@salon.test", "old-password1", model.RoleEmployee)

	_, err := svc.UpdateUser(context.Background(), uuid.MustParse(created.ID), dto.UpdateUserRequest{
		Password: "new-password1",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), dto.LoginRequest{
		Email: "ana@salon.test", Password: "old-password1",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), dto.LoginRequest{
		Email: "ana@salon.test", Password: "new-password1",
	})
	assert.NoError(t, err)
}
