package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	autherrors "github.com/yungsandro2003/vivaponto/internal/auth/errors"
	"github.com/yungsandro2003/vivaponto/internal/domain"
	"github.com/yungsandro2003/vivaponto/internal/user"
)

type fakeUserRepo struct {
	user.Repository
	findByEmailFn func(ctx context.Context, email string) (*user.User, error)
	findByIDFn    func(ctx context.Context, id string) (*user.User, error)
	createFn      func(ctx context.Context, u *user.User) error
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return f.findByEmailFn(ctx, email)
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id string) (*user.User, error) {
	return f.findByIDFn(ctx, id)
}

func (f *fakeUserRepo) Create(ctx context.Context, u *user.User) error {
	return f.createFn(ctx, u)
}

func hashPassword(t *testing.T, plain string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(hash)
}

func TestService_Login(t *testing.T) {
	t.Setenv("JWT_SECRET", "unit-test-secret")

	stored := &user.User{
		ID:           uuid.New(),
		Name:         "Ana Souza",
		Email:        "ana@vivaponto.dev",
		PasswordHash: hashPassword(t, "senha123"),
		Role:         domain.RoleEmployee,
	}

	t.Run("success returns signed token with identity claims", func(t *testing.T) {
		repo := &fakeUserRepo{
			findByEmailFn: func(ctx context.Context, email string) (*user.User, error) {
				assert.Equal(t, stored.Email, email)
				return stored, nil
			},
		}

		resp, err := NewService(repo).Login(context.Background(), stored.Email, "senha123")
		assert.NoError(t, err)
		assert.Equal(t, stored.ID.String(), resp.User.ID)
		assert.NotEmpty(t, resp.Token)

		parsed, err := jwt.Parse(resp.Token, func(tok *jwt.Token) (any, error) {
			return []byte("unit-test-secret"), nil
		})
		assert.NoError(t, err)
		claims, ok := parsed.Claims.(jwt.MapClaims)
		assert.True(t, ok)
		assert.Equal(t, stored.ID.String(), claims["user_id"])
		assert.Equal(t, domain.RoleEmployee, claims["role"])
	})

	t.Run("wrong password", func(t *testing.T) {
		repo := &fakeUserRepo{
			findByEmailFn: func(ctx context.Context, email string) (*user.User, error) {
				return stored, nil
			},
		}

		_, err := NewService(repo).Login(context.Background(), stored.Email, "errada")
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("unknown email gets the same answer", func(t *testing.T) {
		repo := &fakeUserRepo{
			findByEmailFn: func(ctx context.Context, email string) (*user.User, error) {
				return nil, errors.New("record not found")
			},
		}

		_, err := NewService(repo).Login(context.Background(), "ninguem@vivaponto.dev", "senha123")
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})
}

func TestService_Register(t *testing.T) {
	t.Run("hashes password before persisting", func(t *testing.T) {
		var persisted *user.User
		repo := &fakeUserRepo{
			createFn: func(ctx context.Context, u *user.User) error {
				persisted = u
				return nil
			},
		}

		resp, err := NewService(repo).Register(context.Background(), RegisterRequest{
			Name:     "Carlos Lima",
			Email:    "carlos@vivaponto.dev",
			CPF:      "12345678901",
			Password: "senha123",
			Role:     domain.RoleEmployee,
		})
		assert.NoError(t, err)
		assert.NotNil(t, persisted)
		assert.NotEqual(t, "senha123", persisted.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(persisted.PasswordHash), []byte("senha123")))
		assert.Equal(t, persisted.ID.String(), resp.ID)
	})

	t.Run("rejects malformed shift id", func(t *testing.T) {
		bad := "not-a-uuid"
		_, err := NewService(&fakeUserRepo{}).Register(context.Background(), RegisterRequest{
			Name:     "Carlos Lima",
			Email:    "carlos@vivaponto.dev",
			CPF:      "12345678901",
			Password: "senha123",
			Role:     domain.RoleEmployee,
			ShiftID:  &bad,
		})
		assert.ErrorIs(t, err, autherrors.ErrInvalidShiftID)
	})
}

func TestService_GetMe(t *testing.T) {
	t.Run("invalid id", func(t *testing.T) {
		_, err := NewService(&fakeUserRepo{}).GetMe(context.Background(), "abc")
		assert.ErrorIs(t, err, autherrors.ErrInvalidUserID)
	})

	t.Run("unknown user", func(t *testing.T) {
		repo := &fakeUserRepo{
			findByIDFn: func(ctx context.Context, id string) (*user.User, error) {
				return nil, errors.New("record not found")
			},
		}

		_, err := NewService(repo).GetMe(context.Background(), uuid.New().String())
		assert.ErrorIs(t, err, autherrors.ErrUserNotFound)
	})
}
