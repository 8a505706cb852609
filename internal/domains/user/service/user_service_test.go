package service

import (
	"context"
	"testing"
	"time"

	"certificates-backend/internal/domains/user"
	"certificates-backend/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type mockUserRepo struct {
	createFunc          func(ctx context.Context, u *user.User) error
	findByIDFunc        func(ctx context.Context, id uuid.UUID) (*user.User, error)
	findByEmailFunc     func(ctx context.Context, email string) (*user.User, error)
	updatePasswordFunc  func(ctx context.Context, id uuid.UUID, passwordHash string) error
	updateLastLoginFunc func(ctx context.Context, id uuid.UUID) error
	setActiveFunc       func(ctx context.Context, id uuid.UUID, active bool) error
	existsByEmailFunc   func(ctx context.Context, email string) (bool, error)
}

func (m *mockUserRepo) Create(ctx context.Context, u *user.User) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, u)
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, user.ErrNotFound
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	if m.findByEmailFunc != nil {
		return m.findByEmailFunc(ctx, email)
	}
	return nil, user.ErrNotFound
}

func (m *mockUserRepo) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	if m.updatePasswordFunc != nil {
		return m.updatePasswordFunc(ctx, id, passwordHash)
	}
	return nil
}

func (m *mockUserRepo) UpdateLastLogin(ctx context.Context, id uuid.UUID) error {
	if m.updateLastLoginFunc != nil {
		return m.updateLastLoginFunc(ctx, id)
	}
	return nil
}

func (m *mockUserRepo) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	if m.setActiveFunc != nil {
		return m.setActiveFunc(ctx, id, active)
	}
	return nil
}

func (m *mockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.existsByEmailFunc != nil {
		return m.existsByEmailFunc(ctx, email)
	}
	return false, nil
}

func testManager() *jwt.Manager {
	return jwt.NewManager("test-secret", 15*time.Minute, 24*time.Hour)
}

func hashedUser(t *testing.T, password string) *user.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &user.User{
		ID:           uuid.New(),
		Email:        "operator@example.com",
		PasswordHash: string(hash),
		FullName:     "Operator",
		Role:         user.RoleOperator,
		IsActive:     true,
	}
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	req := user.RegisterRequest{
		Email: "new@example.com", Password: "s3cret-pass",
		FullName: "New Operator", Role: "operator",
	}

	t.Run("creates an active account with a hashed password", func(t *testing.T) {
		var storedHash string
		var active bool
		repo := &mockUserRepo{
			createFunc: func(ctx context.Context, u *user.User) error {
				storedHash = u.PasswordHash
				active = u.IsActive
				u.ID = uuid.New()
				return nil
			},
		}
		svc := NewUserService(repo, testManager())

		got, err := svc.Register(ctx, req)

		require.NoError(t, err)
		assert.NoError(t, bcrypt.CompareHashAndPassword(
			[]byte(storedHash), []byte("s3cret-pass")))
		assert.True(t, active)
		assert.Empty(t, got.PasswordHash, "response is sanitized")
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo := &mockUserRepo{
			existsByEmailFunc: func(ctx context.Context, email string) (bool, error) { return true, nil },
		}
		svc := NewUserService(repo, testManager())

		_, err := svc.Register(ctx, req)
		assert.ErrorIs(t, err, user.ErrEmailAlreadyExists)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("valid credentials yield a token pair", func(t *testing.T) {
		u := hashedUser(t, "s3cret-pass")
		repo := &mockUserRepo{
			findByEmailFunc: func(ctx context.Context, email string) (*user.User, error) { return u, nil },
		}
		mgr := testManager()
		svc := NewUserService(repo, mgr)

		pair, err := svc.Login(ctx, user.LoginRequest{
			Email: u.Email, Password: "s3cret-pass",
		})

		require.NoError(t, err)
		assert.NotEmpty(t, pair.AccessToken)
		assert.NotEmpty(t, pair.RefreshToken)
		assert.Empty(t, pair.User.PasswordHash)

		claims, err := mgr.ValidateAccessToken(pair.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, u.ID.String(), claims.UserID)
		assert.Equal(t, "operator", claims.Role)
	})

	t.Run("unknown email and wrong password are indistinguishable", func(t *testing.T) {
		svc := NewUserService(&mockUserRepo{}, testManager())
		_, err := svc.Login(ctx, user.LoginRequest{Email: "ghost@example.com", Password: "x"})
		assert.ErrorIs(t, err, user.ErrInvalidCredentials)

		u := hashedUser(t, "right-pass")
		repo := &mockUserRepo{
			findByEmailFunc: func(ctx context.Context, email string) (*user.User, error) { return u, nil },
		}
		svc = NewUserService(repo, testManager())
		_, err = svc.Login(ctx, user.LoginRequest{Email: u.Email, Password: "wrong-pass"})
		assert.ErrorIs(t, err, user.ErrInvalidCredentials)
	})

	t.Run("deactivated account", func(t *testing.T) {
		u := hashedUser(t, "s3cret-pass")
		u.IsActive = false
		repo := &mockUserRepo{
			findByEmailFunc: func(ctx context.Context, email string) (*user.User, error) { return u, nil },
		}
		svc := NewUserService(repo, testManager())

		_, err := svc.Login(ctx, user.LoginRequest{Email: u.Email, Password: "s3cret-pass"})
		assert.ErrorIs(t, err, user.ErrInactiveAccount)
	})
}

func TestRefresh(t *testing.T) {
	ctx := context.Background()
	u := hashedUser(t, "s3cret-pass")
	mgr := testManager()

	repo := &mockUserRepo{
		findByIDFunc: func(ctx context.Context, id uuid.UUID) (*user.User, error) {
			if id == u.ID {
				return u, nil
			}
			return nil, user.ErrNotFound
		},
	}
	svc := NewUserService(repo, mgr)

	refresh, err := mgr.GenerateRefreshToken(u.ID.String())
	require.NoError(t, err)

	pair, err := svc.Refresh(ctx, user.RefreshRequest{RefreshToken: refresh})
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)

	// Access tokens are not accepted on the refresh path.
	access, err := mgr.GenerateAccessToken(u.ID.String(), u.Email, "operator")
	require.NoError(t, err)
	_, err = svc.Refresh(ctx, user.RefreshRequest{RefreshToken: access})
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()
	u := hashedUser(t, "old-pass")
	repo := &mockUserRepo{
		findByIDFunc: func(ctx context.Context, id uuid.UUID) (*user.User, error) { return u, nil },
	}
	svc := NewUserService(repo, testManager())

	err := svc.ChangePassword(ctx, u.ID, user.ChangePasswordRequest{
		CurrentPassword: "wrong", NewPassword: "new-pass",
	})
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)

	err = svc.ChangePassword(ctx, u.ID, user.ChangePasswordRequest{
		CurrentPassword: "old-pass", NewPassword: "old-pass",
	})
	assert.ErrorIs(t, err, user.ErrSamePassword)

	var stored string
	repo.updatePasswordFunc = func(ctx context.Context, id uuid.UUID, passwordHash string) error {
		stored = passwordHash
		return nil
	}
	err = svc.ChangePassword(ctx, u.ID, user.ChangePasswordRequest{
		CurrentPassword: "old-pass", NewPassword: "new-pass",
	})
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored), []byte("new-pass")))
}
