package logbook

import (
	"context"
	"database/sql"
	"errors"
	"time"

	logbookerrors "go-presensi/internal/logbook/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// AttendanceChecker menjawab apakah user sudah check-in pada tanggal tertentu.
// Logbook hari ini hanya boleh diisi setelah check-in.
type AttendanceChecker interface {
	HasCheckedIn(ctx context.Context, userID string, date time.Time) (bool, error)
}

//go:generate mockgen -source=logbook_service.go -destination=mock/logbook_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, userID string, req CreateLogbookRequest) (LogbookResponse, error)
	GetToday(ctx context.Context, userID string) (LogbookResponse, error)
	GetAllByUser(ctx context.Context, userID string) ([]LogbookResponse, error)
	GetAllForReview(ctx context.Context, statusFilter string) ([]LogbookResponse, error)
	Update(ctx context.Context, userID, id string, req UpdateLogbookRequest) (LogbookResponse, error)
	Approve(ctx context.Context, reviewerID, id string, notes *string) (LogbookResponse, error)
	Reject(ctx context.Context, reviewerID, id, notes string) (LogbookResponse, error)
}

type service struct {
	db         *sql.DB
	repo       Repository
	attendance AttendanceChecker
	logger     *zap.Logger
}

func NewService(db *sql.DB, repo Repository, attendance AttendanceChecker, logger ...*zap.Logger) Service {
	l := zap.L().Named("logbook.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("logbook.service")
	}
	return &service{db: db, repo: repo, attendance: attendance, logger: l}
}

func todayDate() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func (s *service) Create(ctx context.Context, userID string, req CreateLogbookRequest) (LogbookResponse, error) {
	s.logger.Debug("create logbook requested", zap.String("user_id", userID))

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return LogbookResponse{}, logbookerrors.ErrInvalidUserID
	}

	today := todayDate()
	checkedIn, err := s.attendance.HasCheckedIn(ctx, userID, today)
	if err != nil {
		s.logger.Error("create logbook attendance check failed", zap.Error(err))
		return LogbookResponse{}, err
	}
	if !checkedIn {
		s.logger.Warn("create logbook without check-in", zap.String("user_id", userID))
		return LogbookResponse{}, logbookerrors.ErrCheckInRequired
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create logbook begin tx failed", zap.Error(err))
		return LogbookResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	lb := &Logbook{
		ID:          uuid.New(),
		UserID:      userUUID,
		LogDate:     today,
		Activity:    req.Activity,
		Description: req.Description,
		Status:      StatusPending,
	}

	if err := qtx.Create(ctx, lb); err != nil {
		mapped := mapRepositoryError(err)
		if errors.Is(mapped, logbookerrors.ErrLogbookAlreadyExists) {
			s.logger.Warn("create logbook duplicate for date",
				zap.String("user_id", userID),
				zap.String("log_date", today.Format("2006-01-02")),
			)
		} else {
			s.logger.Error("create logbook persist failed", zap.Error(err))
		}
		return LogbookResponse{}, mapped
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create logbook commit failed", zap.Error(err))
		return LogbookResponse{}, err
	}
	s.logger.Info("create logbook success",
		zap.String("logbook_id", lb.ID.String()),
		zap.String("user_id", userID),
	)

	return mapToResponse(*lb), nil
}

func (s *service) GetToday(ctx context.Context, userID string) (LogbookResponse, error) {
	lb, err := s.repo.FindByUserAndDate(ctx, userID, todayDate())
	if err != nil {
		return LogbookResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*lb), nil
}

func (s *service) GetAllByUser(ctx context.Context, userID string) ([]LogbookResponse, error) {
	logbooks, err := s.repo.FindAllByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(logbooks), nil
}

func (s *service) GetAllForReview(ctx context.Context, statusFilter string) ([]LogbookResponse, error) {
	switch statusFilter {
	case "", StatusPending, StatusApproved, StatusRejected:
	default:
		return nil, logbookerrors.ErrInvalidStatusFilter
	}

	logbooks, err := s.repo.FindAllByStatus(ctx, statusFilter)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(logbooks), nil
}

func (s *service) Update(ctx context.Context, userID, id string, req UpdateLogbookRequest) (LogbookResponse, error) {
	s.logger.Debug("update logbook requested",
		zap.String("logbook_id", id),
		zap.String("user_id", userID),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update logbook begin tx failed", zap.Error(err))
		return LogbookResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	lb, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LogbookResponse{}, logbookerrors.ErrLogbookNotFound
		}
		return LogbookResponse{}, err
	}
	if lb.UserID.String() != userID {
		return LogbookResponse{}, logbookerrors.ErrLogbookNotOwned
	}
	if lb.Status != StatusPending {
		return LogbookResponse{}, logbookerrors.ErrLogbookNotPending
	}

	lb.Activity = req.Activity
	lb.Description = req.Description

	if err := qtx.Update(ctx, lb); err != nil {
		s.logger.Error("update logbook persist failed", zap.String("logbook_id", id), zap.Error(err))
		return LogbookResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("update logbook commit failed", zap.String("logbook_id", id), zap.Error(err))
		return LogbookResponse{}, err
	}
	s.logger.Info("update logbook success", zap.String("logbook_id", id))

	return mapToResponse(*lb), nil
}

func (s *service) Approve(ctx context.Context, reviewerID, id string, notes *string) (LogbookResponse, error) {
	return s.review(ctx, reviewerID, id, StatusApproved, notes)
}

func (s *service) Reject(ctx context.Context, reviewerID, id, notes string) (LogbookResponse, error) {
	if notes == "" {
		return LogbookResponse{}, logbookerrors.ErrReviewNotesRequired
	}
	return s.review(ctx, reviewerID, id, StatusRejected, &notes)
}

func (s *service) review(ctx context.Context, reviewerID, id, targetStatus string, notes *string) (LogbookResponse, error) {
	s.logger.Debug("review logbook requested",
		zap.String("logbook_id", id),
		zap.String("reviewer_id", reviewerID),
		zap.String("target_status", targetStatus),
	)

	reviewerUUID, err := uuid.Parse(reviewerID)
	if err != nil {
		return LogbookResponse{}, logbookerrors.ErrInvalidReviewerID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("review logbook begin tx failed", zap.Error(err))
		return LogbookResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	lb, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LogbookResponse{}, logbookerrors.ErrLogbookNotFound
		}
		return LogbookResponse{}, err
	}
	if lb.Status != StatusPending {
		s.logger.Warn("review logbook not pending",
			zap.String("logbook_id", id),
			zap.String("status", lb.Status),
		)
		return LogbookResponse{}, logbookerrors.ErrLogbookNotPending
	}

	now := time.Now().UTC()
	lb.Status = targetStatus
	lb.ReviewNotes = notes
	lb.ReviewedBy = &reviewerUUID
	lb.ReviewedAt = &now

	if err := qtx.Update(ctx, lb); err != nil {
		s.logger.Error("review logbook persist failed", zap.String("logbook_id", id), zap.Error(err))
		return LogbookResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("review logbook commit failed", zap.String("logbook_id", id), zap.Error(err))
		return LogbookResponse{}, err
	}
	s.logger.Info("review logbook success",
		zap.String("logbook_id", id),
		zap.String("status", targetStatus),
	)

	return mapToResponse(*lb), nil
}

func mapToResponse(lb Logbook) LogbookResponse {
	resp := LogbookResponse{
		ID:          lb.ID.String(),
		UserID:      lb.UserID.String(),
		LogDate:     lb.LogDate.Format("2006-01-02"),
		Activity:    lb.Activity,
		Description: lb.Description,
		Status:      lb.Status,
		ReviewNotes: lb.ReviewNotes,
		CreatedAt:   lb.CreatedAt.Format(time.RFC3339),
	}
	if lb.User != nil {
		resp.UserName = lb.User.FullName
	}
	if lb.ReviewedBy != nil {
		v := lb.ReviewedBy.String()
		resp.ReviewedBy = &v
	}
	if lb.ReviewedAt != nil {
		v := lb.ReviewedAt.Format(time.RFC3339)
		resp.ReviewedAt = &v
	}
	return resp
}

func mapToListResponse(logbooks []Logbook) []LogbookResponse {
	resp := make([]LogbookResponse, len(logbooks))
	for i, lb := range logbooks {
		resp[i] = mapToResponse(lb)
	}
	return resp
}
