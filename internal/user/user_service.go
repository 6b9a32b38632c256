package user

import (
	"context"
	"errors"
	"strings"

	usererrors "go-presensi/internal/user/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateUserRequest) (UserResponse, error)
	GetAll(ctx context.Context) ([]UserResponse, error)
	GetByID(ctx context.Context, id string) (UserResponse, error)
	UpdateRole(ctx context.Context, id, role string) (UserResponse, error)
	ToggleStatus(ctx context.Context, id string, isActive bool) error
}

// RoleSyncer menyelaraskan role user ke policy enforcement.
type RoleSyncer interface {
	AssignRole(ctx context.Context, userID, role string) error
}

type service struct {
	repo       Repository
	roleSyncer RoleSyncer
	logger     *zap.Logger
}

func NewService(repo Repository, roleSyncer RoleSyncer, logger ...*zap.Logger) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{repo: repo, roleSyncer: roleSyncer, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateUserRequest) (UserResponse, error) {
	s.logger.Debug("create user requested", zap.String("email", req.Email))

	if !ValidRole(req.Role) {
		return UserResponse{}, usererrors.ErrInvalidRole
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return UserResponse{}, err
	}

	u := &User{
		ID:       uuid.New(),
		FullName: req.FullName,
		Email:    strings.ToLower(req.Email),
		Password: string(hashed),
		Role:     req.Role,
		IsActive: true,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "uq_users_email") {
			return UserResponse{}, usererrors.ErrEmailAlreadyRegistered
		}
		s.logger.Error("create user persist failed", zap.Error(err))
		return UserResponse{}, err
	}

	if s.roleSyncer != nil {
		if err := s.roleSyncer.AssignRole(ctx, u.ID.String(), u.Role); err != nil {
			s.logger.Error("assign role failed",
				zap.String("user_id", u.ID.String()),
				zap.String("role", u.Role),
				zap.Error(err),
			)
			return UserResponse{}, err
		}
	}

	s.logger.Info("create user success", zap.String("user_id", u.ID.String()), zap.String("role", u.Role))
	return mapToResponse(*u), nil
}

func (s *service) GetAll(ctx context.Context) ([]UserResponse, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]UserResponse, len(users))
	for i, u := range users {
		resp[i] = mapToResponse(u)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (UserResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return UserResponse{}, usererrors.ErrInvalidUserID
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return UserResponse{}, usererrors.ErrUserNotFound
		}
		return UserResponse{}, err
	}
	return mapToResponse(*u), nil
}

func (s *service) UpdateRole(ctx context.Context, id, role string) (UserResponse, error) {
	if !ValidRole(role) {
		return UserResponse{}, usererrors.ErrInvalidRole
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return UserResponse{}, usererrors.ErrUserNotFound
		}
		return UserResponse{}, err
	}

	u.Role = role
	if err := s.repo.Update(ctx, u); err != nil {
		s.logger.Error("update role persist failed", zap.String("user_id", id), zap.Error(err))
		return UserResponse{}, err
	}

	if s.roleSyncer != nil {
		if err := s.roleSyncer.AssignRole(ctx, id, role); err != nil {
			s.logger.Error("sync role failed", zap.String("user_id", id), zap.Error(err))
			return UserResponse{}, err
		}
	}

	s.logger.Info("update role success", zap.String("user_id", id), zap.String("role", role))
	return mapToResponse(*u), nil
}

func (s *service) ToggleStatus(ctx context.Context, id string, isActive bool) error {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return usererrors.ErrUserNotFound
		}
		return err
	}

	u.IsActive = isActive
	if err := s.repo.Update(ctx, u); err != nil {
		s.logger.Error("toggle status persist failed", zap.String("user_id", id), zap.Error(err))
		return err
	}
	return nil
}

func mapToResponse(u User) UserResponse {
	return UserResponse{
		ID:       u.ID.String(),
		FullName: u.FullName,
		Email:    u.Email,
		Role:     u.Role,
		IsActive: u.IsActive,
	}
}
