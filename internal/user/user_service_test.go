package user_test

import (
	"context"
	"errors"
	"testing"

	"go-presensi/internal/user"
	usererrors "go-presensi/internal/user/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeUserRepository struct {
	createFn   func(ctx context.Context, u *user.User) error
	findByIDFn func(ctx context.Context, id string) (*user.User, error)
	updateFn   func(ctx context.Context, u *user.User) error
}

func (f *fakeUserRepository) Create(ctx context.Context, u *user.User) error {
	if f.createFn != nil {
		return f.createFn(ctx, u)
	}
	return nil
}

func (f *fakeUserRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) FindAll(ctx context.Context) ([]user.User, error) { return nil, nil }

func (f *fakeUserRepository) Update(ctx context.Context, u *user.User) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, u)
	}
	return nil
}

type fakeRoleSyncer struct {
	assignedUser string
	assignedRole string
	err          error
}

func (f *fakeRoleSyncer) AssignRole(ctx context.Context, userID, role string) error {
	if f.err != nil {
		return f.err
	}
	f.assignedUser = userID
	f.assignedRole = role
	return nil
}

func TestUserService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("hashes password, lowercases email, syncs role", func(t *testing.T) {
		var created *user.User
		repo := &fakeUserRepository{
			createFn: func(ctx context.Context, u *user.User) error {
				created = u
				return nil
			},
		}
		syncer := &fakeRoleSyncer{}
		svc := user.NewService(repo, syncer)

		resp, err := svc.Create(ctx, user.CreateUserRequest{
			FullName: "Siti Aminah",
			Email:    "Siti@Presensi.ID",
			Password: "rahasia-123",
			Role:     user.RoleSupervisor,
		})

		assert.NoError(t, err)
		assert.Equal(t, "siti@presensi.id", created.Email)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("rahasia-123")))
		assert.True(t, created.IsActive)
		assert.Equal(t, created.ID.String(), syncer.assignedUser)
		assert.Equal(t, user.RoleSupervisor, syncer.assignedRole)
		assert.Equal(t, user.RoleSupervisor, resp.Role)
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo := &fakeUserRepository{
			createFn: func(ctx context.Context, u *user.User) error {
				return errors.New(`ERROR: duplicate key value violates unique constraint "uq_users_email" (SQLSTATE 23505)`)
			},
		}
		svc := user.NewService(repo, &fakeRoleSyncer{})

		_, err := svc.Create(ctx, user.CreateUserRequest{
			FullName: "Siti Aminah",
			Email:    "siti@presensi.id",
			Password: "rahasia-123",
			Role:     user.RoleEmployee,
		})

		assert.ErrorIs(t, err, usererrors.ErrEmailAlreadyRegistered)
	})

	t.Run("unknown role", func(t *testing.T) {
		svc := user.NewService(&fakeUserRepository{}, &fakeRoleSyncer{})

		_, err := svc.Create(ctx, user.CreateUserRequest{
			FullName: "Siti Aminah",
			Email:    "siti@presensi.id",
			Password: "rahasia-123",
			Role:     "manager",
		})

		assert.ErrorIs(t, err, usererrors.ErrInvalidRole)
	})
}

func TestUserService_UpdateRole(t *testing.T) {
	ctx := context.Background()
	existing := &user.User{
		ID:       uuid.New(),
		FullName: "Budi Santoso",
		Email:    "budi@presensi.id",
		Role:     user.RoleEmployee,
		IsActive: true,
	}

	t.Run("updates row and re-syncs policy", func(t *testing.T) {
		var updated *user.User
		repo := &fakeUserRepository{
			findByIDFn: func(ctx context.Context, id string) (*user.User, error) {
				return existing, nil
			},
			updateFn: func(ctx context.Context, u *user.User) error {
				updated = u
				return nil
			},
		}
		syncer := &fakeRoleSyncer{}
		svc := user.NewService(repo, syncer)

		resp, err := svc.UpdateRole(ctx, existing.ID.String(), user.RoleAdmin)

		assert.NoError(t, err)
		assert.Equal(t, user.RoleAdmin, updated.Role)
		assert.Equal(t, user.RoleAdmin, syncer.assignedRole)
		assert.Equal(t, user.RoleAdmin, resp.Role)
	})

	t.Run("user not found", func(t *testing.T) {
		svc := user.NewService(&fakeUserRepository{}, &fakeRoleSyncer{})

		_, err := svc.UpdateRole(ctx, uuid.NewString(), user.RoleAdmin)

		assert.ErrorIs(t, err, usererrors.ErrUserNotFound)
	})
}
