package auth_test

import (
	"context"
	"testing"
	"time"

	"go-presensi/internal/auth"
	autherrors "go-presensi/internal/auth/errors"
	"go-presensi/internal/user"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeUserRepository struct {
	findByEmailFn func(ctx context.Context, email string) (*user.User, error)
	findByIDFn    func(ctx context.Context, id string) (*user.User, error)
}

func (f *fakeUserRepository) Create(ctx context.Context, u *user.User) error { return nil }

func (f *fakeUserRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	if f.findByEmailFn != nil {
		return f.findByEmailFn(ctx, email)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) FindAll(ctx context.Context) ([]user.User, error) { return nil, nil }

func (f *fakeUserRepository) Update(ctx context.Context, u *user.User) error { return nil }

func activeUser(t *testing.T, password string) *user.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	assert.NoError(t, err)
	return &user.User{
		ID:       uuid.New(),
		FullName: "Budi Santoso",
		Email:    "budi@presensi.id",
		Password: string(hash),
		Role:     user.RoleEmployee,
		IsActive: true,
	}
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("success returns both tokens with role claim", func(t *testing.T) {
		u := activeUser(t, "rahasia-123")
		repo := &fakeUserRepository{
			findByEmailFn: func(ctx context.Context, email string) (*user.User, error) {
				assert.Equal(t, u.Email, email)
				return u, nil
			},
		}
		svc := auth.NewService(repo)

		resp, err := svc.Login(ctx, u.Email, "rahasia-123")

		assert.NoError(t, err)
		assert.Equal(t, u.ID.String(), resp.User.ID)
		assert.Equal(t, user.RoleEmployee, resp.User.Role)
		assert.NotEmpty(t, resp.AccessToken)
		assert.NotEmpty(t, resp.RefreshToken)

		token, err := jwt.Parse(resp.AccessToken, func(token *jwt.Token) (interface{}, error) {
			return []byte("test-secret"), nil
		})
		assert.NoError(t, err)
		claims := token.Claims.(jwt.MapClaims)
		assert.Equal(t, u.ID.String(), claims["user_id"])
		assert.Equal(t, user.RoleEmployee, claims["role"])
	})

	t.Run("wrong password", func(t *testing.T) {
		u := activeUser(t, "rahasia-123")
		repo := &fakeUserRepository{
			findByEmailFn: func(ctx context.Context, email string) (*user.User, error) {
				return u, nil
			},
		}
		svc := auth.NewService(repo)

		_, err := svc.Login(ctx, u.Email, "salah-total")

		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		svc := auth.NewService(&fakeUserRepository{})

		_, err := svc.Login(ctx, "tidak-ada@presensi.id", "apapun")

		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("inactive account", func(t *testing.T) {
		u := activeUser(t, "rahasia-123")
		u.IsActive = false
		repo := &fakeUserRepository{
			findByEmailFn: func(ctx context.Context, email string) (*user.User, error) {
				return u, nil
			},
		}
		svc := auth.NewService(repo)

		_, err := svc.Login(ctx, u.Email, "rahasia-123")

		assert.ErrorIs(t, err, autherrors.ErrUserInactive)
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctx := context.Background()
	t.Setenv("JWT_SECRET", "test-secret")

	signedToken := func(userID string, expiry time.Duration) string {
		claims := jwt.MapClaims{
			"user_id": userID,
			"role":    user.RoleEmployee,
			"exp":     time.Now().Add(expiry).Unix(),
		}
		s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
		assert.NoError(t, err)
		return s
	}

	t.Run("success re-issues tokens after user lookup", func(t *testing.T) {
		u := activeUser(t, "rahasia-123")
		repo := &fakeUserRepository{
			findByIDFn: func(ctx context.Context, id string) (*user.User, error) {
				assert.Equal(t, u.ID.String(), id)
				return u, nil
			},
		}
		svc := auth.NewService(repo)

		resp, err := svc.RefreshToken(ctx, signedToken(u.ID.String(), time.Hour))

		assert.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
		assert.Equal(t, u.Email, resp.User.Email)
	})

	t.Run("expired token", func(t *testing.T) {
		u := activeUser(t, "rahasia-123")
		svc := auth.NewService(&fakeUserRepository{})

		_, err := svc.RefreshToken(ctx, signedToken(u.ID.String(), -time.Minute))

		assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)
	})

	t.Run("garbage token", func(t *testing.T) {
		svc := auth.NewService(&fakeUserRepository{})

		_, err := svc.RefreshToken(ctx, "bukan.token.jwt")

		assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)
	})

	t.Run("user deactivated since issue", func(t *testing.T) {
		u := activeUser(t, "rahasia-123")
		u.IsActive = false
		repo := &fakeUserRepository{
			findByIDFn: func(ctx context.Context, id string) (*user.User, error) {
				return u, nil
			},
		}
		svc := auth.NewService(repo)

		_, err := svc.RefreshToken(ctx, signedToken(u.ID.String(), time.Hour))

		assert.ErrorIs(t, err, autherrors.ErrUserInactive)
	})
}

func TestAuthService_GetMe(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		u := activeUser(t, "rahasia-123")
		repo := &fakeUserRepository{
			findByIDFn: func(ctx context.Context, id string) (*user.User, error) {
				return u, nil
			},
		}
		svc := auth.NewService(repo)

		resp, err := svc.GetMe(ctx, u.ID.String())

		assert.NoError(t, err)
		assert.Equal(t, u.FullName, resp.FullName)
	})

	t.Run("invalid id", func(t *testing.T) {
		svc := auth.NewService(&fakeUserRepository{})

		_, err := svc.GetMe(ctx, "bukan-uuid")

		assert.ErrorIs(t, err, autherrors.ErrInvalidUserID)
	})
}
