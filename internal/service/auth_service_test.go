package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/InMostCalmness-Rahul/skillswap/internal/domain"
	"github.com/InMostCalmness-Rahul/skillswap/internal/repository"
)

type mockAuthUserRepo struct {
	repository.UserRepository
	users map[string]*domain.User // keyed by email
	byID  map[uuid.UUID]*domain.User
}

func newMockAuthUserRepo() *mockAuthUserRepo {
	return &mockAuthUserRepo{
		users: make(map[string]*domain.User),
		byID:  make(map[uuid.UUID]*domain.User),
	}
}

func (m *mockAuthUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return m.users[email], nil
}

func (m *mockAuthUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return m.byID[id], nil
}

func (m *mockAuthUserRepo) Create(ctx context.Context, user *domain.User) error {
	m.users[user.Email] = user
	m.byID[user.ID] = user
	return nil
}

func (m *mockAuthUserRepo) UpdateRefreshToken(ctx context.Context, id uuid.UUID, token string) error {
	if u := m.byID[id]; u != nil {
		u.RefreshToken = token
	}
	return nil
}

func (m *mockAuthUserRepo) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return nil
}

func newTestAuthService(repo repository.UserRepository) *AuthService {
	return NewAuthService(repo, "access-secret", "refresh-secret", 15*time.Minute, 7*24*time.Hour)
}

func TestSignup(t *testing.T) {
	t.Run("creates user with defaults", func(t *testing.T) {
		repo := newMockAuthUserRepo()
		svc := newTestAuthService(repo)

		resp, err := svc.Signup(context.Background(), SignupInput{
			Name:     "Alice",
			Email:    "  Alice@Example.COM ",
			Password: "secret123",
		})
		require.NoError(t, err)

		assert.Equal(t, "alice@example.com", resp.User.Email)
		assert.Equal(t, domain.RoleUser, resp.User.Role)
		assert.True(t, resp.User.IsActive)
		assert.True(t, resp.User.IsPublic)
		assert.NotNil(t, resp.User.SkillsOffered)
		assert.NotEmpty(t, resp.AccessToken)
		assert.NotEmpty(t, resp.RefreshToken)
		assert.Equal(t, resp.RefreshToken, repo.users["alice@example.com"].RefreshToken)
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo := newMockAuthUserRepo()
		svc := newTestAuthService(repo)

		_, err := svc.Signup(context.Background(), SignupInput{Name: "Alice", Email: "a@b.com", Password: "secret123"})
		require.NoError(t, err)

		_, err = svc.Signup(context.Background(), SignupInput{Name: "Imposter", Email: "A@B.com", Password: "secret456"})
		assert.ErrorIs(t, err, ErrEmailTaken)
	})
}

func TestLogin(t *testing.T) {
	repo := newMockAuthUserRepo()
	svc := newTestAuthService(repo)

	_, err := svc.Signup(context.Background(), SignupInput{Name: "Alice", Email: "a@b.com", Password: "secret123"})
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		resp, err := svc.Login(context.Background(), LoginInput{Email: "a@b.com", Password: "secret123"})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
		assert.NotNil(t, resp.User.LastLogin)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(context.Background(), LoginInput{Email: "a@b.com", Password: "nope"})
		assert.ErrorIs(t, err, ErrInvalidCreds)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(context.Background(), LoginInput{Email: "ghost@b.com", Password: "secret123"})
		assert.ErrorIs(t, err, ErrInvalidCreds)
	})

	t.Run("disabled account", func(t *testing.T) {
		repo.users["a@b.com"].IsActive = false
		defer func() { repo.users["a@b.com"].IsActive = true }()

		_, err := svc.Login(context.Background(), LoginInput{Email: "a@b.com", Password: "secret123"})
		assert.ErrorIs(t, err, ErrAccountDisabled)
	})
}

func TestRefresh(t *testing.T) {
	repo := newMockAuthUserRepo()
	svc := newTestAuthService(repo)

	resp, err := svc.Signup(context.Background(), SignupInput{Name: "Alice", Email: "a@b.com", Password: "secret123"})
	require.NoError(t, err)
	user := repo.users["a@b.com"]

	t.Run("rotation invalidates the old token", func(t *testing.T) {
		// Token iat/exp have second granularity; without this the rotated
		// token can come out identical to the one being replaced.
		time.Sleep(1100 * time.Millisecond)

		first := resp.RefreshToken
		rotated, err := svc.Refresh(context.Background(), first)
		require.NoError(t, err)
		assert.NotEqual(t, first, rotated.RefreshToken)

		_, err = svc.Refresh(context.Background(), first)
		assert.ErrorIs(t, err, ErrInvalidRefresh)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.Refresh(context.Background(), "not.a.token")
		assert.ErrorIs(t, err, ErrInvalidRefresh)
	})

	t.Run("disabled user", func(t *testing.T) {
		user.IsActive = false
		defer func() { user.IsActive = true }()

		_, err := svc.Refresh(context.Background(), user.RefreshToken)
		assert.ErrorIs(t, err, ErrInvalidRefresh)
	})

	t.Run("after logout", func(t *testing.T) {
		stored := user.RefreshToken
		require.NoError(t, svc.Logout(context.Background(), user.ID))
		_, err := svc.Refresh(context.Background(), stored)
		assert.ErrorIs(t, err, ErrInvalidRefresh)
	})
}

func TestPasswordHashing(t *testing.T) {
	hash, err := hashPassword("secret123")
	require.NoError(t, err)

	assert.True(t, verifyPassword("secret123", hash))
	assert.False(t, verifyPassword("secret124", hash))
	assert.False(t, verifyPassword("secret123", "malformed"))

	// Fresh salt per hash.
	hash2, err := hashPassword("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, hash, hash2)
}
