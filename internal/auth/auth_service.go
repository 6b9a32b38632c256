package auth

import (
	"context"
	"os"
	"time"

	autherrors "go-presensi/internal/auth/errors"
	"go-presensi/internal/user"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, email, password string) (TokenResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (TokenResponse, error)
	GetMe(ctx context.Context, userID string) (AuthResponse, error)
}

type service struct {
	users  user.Repository
	logger *zap.Logger
}

func NewService(users user.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{users: users, logger: l}
}

func (s *service) Login(ctx context.Context, email, password string) (TokenResponse, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return TokenResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		s.logger.Warn("login password mismatch", zap.String("email", email))
		return TokenResponse{}, autherrors.ErrInvalidCredentials
	}
	if !u.IsActive {
		return TokenResponse{}, autherrors.ErrUserInactive
	}

	accessToken, err := generateToken(u.ID.String(), u.Role, 15*time.Minute)
	if err != nil {
		return TokenResponse{}, autherrors.ErrTokenGenerationFailed
	}
	refreshToken, err := generateToken(u.ID.String(), u.Role, 7*24*time.Hour)
	if err != nil {
		return TokenResponse{}, autherrors.ErrTokenGenerationFailed
	}

	s.logger.Info("login success", zap.String("user_id", u.ID.String()), zap.String("role", u.Role))
	return TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         mapToAuthResponse(u),
	}, nil
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (TokenResponse, error) {
	token, err := jwt.Parse(refreshToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return TokenResponse{}, autherrors.ErrInvalidRefreshToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return TokenResponse{}, autherrors.ErrInvalidToken
	}
	userID, ok := claims["user_id"].(string)
	if !ok {
		return TokenResponse{}, autherrors.ErrInvalidToken
	}
	if _, err := uuid.Parse(userID); err != nil {
		return TokenResponse{}, autherrors.ErrInvalidUserID
	}

	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return TokenResponse{}, autherrors.ErrUserNotFound
	}
	if !u.IsActive {
		return TokenResponse{}, autherrors.ErrUserInactive
	}

	newAccess, err := generateToken(u.ID.String(), u.Role, 15*time.Minute)
	if err != nil {
		return TokenResponse{}, autherrors.ErrTokenGenerationFailed
	}
	newRefresh, err := generateToken(u.ID.String(), u.Role, 7*24*time.Hour)
	if err != nil {
		return TokenResponse{}, autherrors.ErrTokenGenerationFailed
	}

	return TokenResponse{
		AccessToken:  newAccess,
		RefreshToken: newRefresh,
		User:         mapToAuthResponse(u),
	}, nil
}

func (s *service) GetMe(ctx context.Context, userID string) (AuthResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return AuthResponse{}, autherrors.ErrInvalidUserID
	}

	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return AuthResponse{}, autherrors.ErrUserNotFound
	}
	return mapToAuthResponse(u), nil
}

func generateToken(userID, role string, expiry time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

func mapToAuthResponse(u *user.User) AuthResponse {
	return AuthResponse{
		ID:       u.ID.String(),
		Email:    u.Email,
		FullName: u.FullName,
		Role:     u.Role,
	}
}
