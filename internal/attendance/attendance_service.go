package attendance

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"math"
	"time"

	attendanceerrors "go-presensi/internal/attendance/errors"
	"go-presensi/internal/events"
	"go-presensi/internal/messaging/kafka"
	"go-presensi/internal/officenetwork"
	"go-presensi/internal/shared/apperror"
	"go-presensi/internal/shared/contextutil"
	"go-presensi/internal/storage"
	"go-presensi/internal/timewindow"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	StatusPresent = "present"
	StatusLate    = "late"
	StatusEarly   = "early"

	ApprovalPending  = "pending"
	ApprovalApproved = "approved"
	ApprovalRejected = "rejected"
)

const maxOffsiteReasonLength = 1000

const photoKind = "attendance"

// Classifier memutuskan onsite/offsite untuk satu aksi presensi.
type Classifier interface {
	Classify(ctx context.Context, input officenetwork.ClassifyInput) (officenetwork.Classification, error)
}

// SettingsProvider membaca konfigurasi jendela waktu terkini. Dipanggil
// ulang pada setiap validasi, tanpa cache di sisi sini.
type SettingsProvider interface {
	TimeWindowSettings(ctx context.Context) (timewindow.TimeSettings, error)
}

// LogbookChecker menjawab apakah logbook tanggal tersebut sudah ada;
// check-out diblokir sebelum logbook terisi.
type LogbookChecker interface {
	ExistsForDate(ctx context.Context, userID string, date time.Time) (bool, error)
}

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	PreCheck(ctx context.Context, userID, ip string, req PreCheckRequest) (PreCheckResponse, error)
	CheckIn(ctx context.Context, userID, ip string, req CheckInRequest) (CheckInResponse, error)
	CheckOut(ctx context.Context, userID, ip string, req CheckOutRequest) (CheckOutResponse, error)
	Approve(ctx context.Context, reviewerID, id string) (AttendanceResponse, error)
	Reject(ctx context.Context, reviewerID, id, reason string) (AttendanceResponse, error)
	GetToday(ctx context.Context, userID string) (AttendanceResponse, error)
	GetAll(ctx context.Context, actorID string, canReadAll bool, f ListFilter) ([]AttendanceResponse, int64, error)
}

type service struct {
	db         *sql.DB
	repo       Repository
	classifier Classifier
	settings   SettingsProvider
	logbooks   LogbookChecker
	store      storage.Store
	outbox     kafka.OutboxRepository
	logger     *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	classifier Classifier,
	settings SettingsProvider,
	logbooks LogbookChecker,
	store storage.Store,
	outbox kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{
		db:         db,
		repo:       repo,
		classifier: classifier,
		settings:   settings,
		logbooks:   logbooks,
		store:      store,
		outbox:     outbox,
		logger:     l,
	}
}

func todayDate() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func (s *service) PreCheck(ctx context.Context, userID, ip string, req PreCheckRequest) (PreCheckResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return PreCheckResponse{}, attendanceerrors.ErrInvalidUserID
	}

	cls, err := s.classifier.Classify(ctx, officenetwork.ClassifyInput{
		IP:        ip,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	})
	if err != nil {
		s.logger.Error("pre-check classify failed", zap.String("user_id", userID), zap.Error(err))
		return PreCheckResponse{}, err
	}

	resp := PreCheckResponse{
		WorkType: cls.WorkType,
		IsOnsite: cls.IsOnsite,
		Method:   cls.Method,
		Reason:   cls.Reason,
	}
	if cls.Office != nil {
		resp.Office = &PreCheckOffice{ID: cls.Office.ID, Name: cls.Office.Name}
	}
	return resp, nil
}

// validateOffsiteEvidence menolak leg offsite tanpa alasan atau foto.
func validateOffsiteEvidence(workType, reason string, photo *FileUpload) error {
	if workType != officenetwork.WorkTypeOffsite {
		return nil
	}
	if reason == "" {
		return apperror.RequiredField("offsite_reason")
	}
	if len(reason) > maxOffsiteReasonLength {
		return apperror.InvalidFieldMessage("offsite_reason", "must be at most 1000 characters")
	}
	if photo == nil {
		return apperror.RequiredField("photo")
	}
	return nil
}

func (s *service) CheckIn(ctx context.Context, userID, ip string, req CheckInRequest) (CheckInResponse, error) {
	s.logger.Debug("check-in requested", zap.String("user_id", userID), zap.String("ip", ip))

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return CheckInResponse{}, attendanceerrors.ErrInvalidUserID
	}

	settings, err := s.settings.TimeWindowSettings(ctx)
	if err != nil {
		s.logger.Error("check-in read settings failed", zap.Error(err))
		return CheckInResponse{}, err
	}

	now := time.Now().UTC()
	validation := timewindow.ValidateCheckIn(now, settings)
	if validation.Rejected() {
		s.logger.Warn("check-in window rejected",
			zap.String("user_id", userID),
			zap.String("status", validation.Status),
		)
		return CheckInResponse{}, attendanceerrors.CheckInWindowRejected(
			validation.Status,
			validation.CheckInStart.Clock(),
			validation.CheckInEnd.Clock(),
		)
	}

	cls, err := s.classifier.Classify(ctx, officenetwork.ClassifyInput{
		IP:        ip,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	})
	if err != nil {
		s.logger.Error("check-in classify failed", zap.String("user_id", userID), zap.Error(err))
		return CheckInResponse{}, err
	}

	if err := validateOffsiteEvidence(cls.WorkType, req.OffsiteReason, req.Photo); err != nil {
		s.logger.Warn("check-in offsite evidence missing",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return CheckInResponse{}, err
	}

	// Foto disimpan durable dulu; kegagalan menulis baris menghapusnya lagi.
	var photoPath *string
	if req.Photo != nil {
		path, err := s.store.Save(ctx, photoKind, req.Photo.Filename, req.Photo.Content)
		if err != nil {
			s.logger.Error("check-in photo store failed", zap.String("user_id", userID), zap.Error(err))
			return CheckInResponse{}, err
		}
		photoPath = &path
	}

	status := StatusPresent
	if validation.IsLate {
		status = StatusLate
	}

	row := &Attendance{
		ID:              uuid.New(),
		UserID:          userUUID,
		Date:            todayDate(),
		CheckInTime:     now,
		CheckInWorkType: cls.WorkType,
		CheckInPhoto:    photoPath,
		CheckInIP:       strPtr(ip),
		Status:          status,
		LateMinutes:     validation.LateMinutes,
		ApprovalStatus:  ApprovalPending,
	}
	if req.OffsiteReason != "" {
		row.CheckInOffsiteReason = &req.OffsiteReason
	}
	if req.Address != "" {
		row.CheckInAddress = &req.Address
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("check-in begin tx failed", zap.Error(err))
		s.removeStoredPhoto(ctx, photoPath)
		return CheckInResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Create(ctx, row); err != nil {
		s.removeStoredPhoto(ctx, photoPath)
		mapped := mapRepositoryError(err)
		if errors.Is(mapped, attendanceerrors.ErrAlreadyCheckedIn) {
			s.logger.Warn("check-in duplicate for date", zap.String("user_id", userID))
		} else {
			s.logger.Error("check-in persist failed", zap.Error(err))
		}
		return CheckInResponse{}, mapped
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("check-in commit failed", zap.Error(err))
		s.removeStoredPhoto(ctx, photoPath)
		return CheckInResponse{}, err
	}

	s.logger.Info("check-in success",
		zap.String("attendance_id", row.ID.String()),
		zap.String("user_id", userID),
		zap.String("work_type", cls.WorkType),
		zap.String("status", status),
	)

	return CheckInResponse{
		Attendance: mapToResponse(*row),
		WorkType:   cls.WorkType,
		TimeValidation: CheckInTimeValidation{
			Status:      validation.Status,
			IsLate:      validation.IsLate,
			LateMinutes: validation.LateMinutes,
		},
	}, nil
}

func (s *service) CheckOut(ctx context.Context, userID, ip string, req CheckOutRequest) (CheckOutResponse, error) {
	s.logger.Debug("check-out requested", zap.String("user_id", userID), zap.String("ip", ip))

	if _, err := uuid.Parse(userID); err != nil {
		return CheckOutResponse{}, attendanceerrors.ErrInvalidUserID
	}

	today := todayDate()
	row, err := s.repo.FindByUserAndDate(ctx, userID, today)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CheckOutResponse{}, attendanceerrors.ErrNotCheckedIn
		}
		return CheckOutResponse{}, err
	}
	if row.CheckOutTime != nil {
		return CheckOutResponse{}, attendanceerrors.ErrAlreadyCheckedOut
	}

	settings, err := s.settings.TimeWindowSettings(ctx)
	if err != nil {
		s.logger.Error("check-out read settings failed", zap.Error(err))
		return CheckOutResponse{}, err
	}

	now := time.Now().UTC()
	validation := timewindow.ValidateCheckOut(now, settings)
	if validation.Rejected() {
		s.logger.Warn("check-out window rejected",
			zap.String("user_id", userID),
			zap.Int("wait_minutes", validation.WaitMinutes),
		)
		return CheckOutResponse{}, attendanceerrors.CheckOutTooEarly(
			validation.WaitMinutes,
			validation.CanCheckoutAt.Clock(),
		)
	}

	hasLogbook, err := s.logbooks.ExistsForDate(ctx, userID, today)
	if err != nil {
		s.logger.Error("check-out logbook check failed", zap.Error(err))
		return CheckOutResponse{}, err
	}
	if !hasLogbook {
		s.logger.Warn("check-out without logbook", zap.String("user_id", userID))
		return CheckOutResponse{}, attendanceerrors.ErrLogbookRequired
	}

	// Klasifikasi ulang: work type check-out boleh beda dari check-in.
	cls, err := s.classifier.Classify(ctx, officenetwork.ClassifyInput{
		IP:        ip,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	})
	if err != nil {
		s.logger.Error("check-out classify failed", zap.String("user_id", userID), zap.Error(err))
		return CheckOutResponse{}, err
	}

	if err := validateOffsiteEvidence(cls.WorkType, req.OffsiteReason, req.Photo); err != nil {
		s.logger.Warn("check-out offsite evidence missing",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return CheckOutResponse{}, err
	}

	var photoPath *string
	if req.Photo != nil {
		path, err := s.store.Save(ctx, photoKind, req.Photo.Filename, req.Photo.Content)
		if err != nil {
			s.logger.Error("check-out photo store failed", zap.String("user_id", userID), zap.Error(err))
			return CheckOutResponse{}, err
		}
		photoPath = &path
	}

	workHours := math.Round(now.Sub(row.CheckInTime).Hours()*100) / 100

	row.CheckOutTime = &now
	row.CheckOutWorkType = &cls.WorkType
	row.CheckOutPhoto = photoPath
	row.CheckOutIP = strPtr(ip)
	row.WorkHours = &workHours
	if req.OffsiteReason != "" {
		row.CheckOutOffsiteReason = &req.OffsiteReason
	}
	if req.Address != "" {
		row.CheckOutAddress = &req.Address
	}
	if validation.Status == timewindow.StatusEarly && row.Status != StatusLate {
		row.Status = StatusEarly
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("check-out begin tx failed", zap.Error(err))
		s.removeStoredPhoto(ctx, photoPath)
		return CheckOutResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.UpdateCheckOut(ctx, row); err != nil {
		s.logger.Error("check-out persist failed", zap.Error(err))
		s.removeStoredPhoto(ctx, photoPath)
		return CheckOutResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("check-out commit failed", zap.Error(err))
		s.removeStoredPhoto(ctx, photoPath)
		return CheckOutResponse{}, err
	}

	s.logger.Info("check-out success",
		zap.String("attendance_id", row.ID.String()),
		zap.String("user_id", userID),
		zap.String("work_type", cls.WorkType),
		zap.Float64("work_hours", workHours),
	)

	resp := CheckOutResponse{
		Attendance: mapToResponse(*row),
		WorkType:   cls.WorkType,
		WorkHours:  workHours,
		TimeValidation: CheckOutTimeValidation{
			Status: validation.Status,
		},
	}
	if validation.Status == timewindow.StatusEarly {
		early := validation.EarlyMinutes
		until := validation.ShouldWorkUntil.Clock()
		resp.TimeValidation.EarlyMinutes = &early
		resp.TimeValidation.ShouldWorkUntil = &until
	}
	return resp, nil
}

func (s *service) Approve(ctx context.Context, reviewerID, id string) (AttendanceResponse, error) {
	return s.review(ctx, reviewerID, id, ApprovalApproved, "")
}

func (s *service) Reject(ctx context.Context, reviewerID, id, reason string) (AttendanceResponse, error) {
	if reason == "" {
		return AttendanceResponse{}, attendanceerrors.ErrRejectionReasonRequired
	}
	return s.review(ctx, reviewerID, id, ApprovalRejected, reason)
}

func (s *service) review(ctx context.Context, reviewerID, id, target, reason string) (AttendanceResponse, error) {
	s.logger.Debug("review attendance requested",
		zap.String("attendance_id", id),
		zap.String("reviewer_id", reviewerID),
		zap.String("target_status", target),
	)

	reviewerUUID, err := uuid.Parse(reviewerID)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidReviewerID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("review attendance begin tx failed", zap.Error(err))
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	row, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AttendanceResponse{}, attendanceerrors.ErrAttendanceNotFound
		}
		return AttendanceResponse{}, err
	}
	if row.ApprovalStatus != ApprovalPending {
		s.logger.Warn("review attendance not pending",
			zap.String("attendance_id", id),
			zap.String("approval_status", row.ApprovalStatus),
		)
		return AttendanceResponse{}, attendanceerrors.ErrAttendanceNotPending
	}

	now := time.Now().UTC()
	row.ApprovalStatus = target
	switch target {
	case ApprovalApproved:
		row.ApprovedBy = &reviewerUUID
		row.ApprovedAt = &now
	case ApprovalRejected:
		row.RejectedBy = &reviewerUUID
		row.RejectedAt = &now
		row.RejectionReason = &reason
	}

	if err := qtx.UpdateApproval(ctx, row); err != nil {
		s.logger.Error("review attendance persist failed", zap.String("attendance_id", id), zap.Error(err))
		return AttendanceResponse{}, err
	}

	eventType := events.EventTypeAttendanceApproved
	if target == ApprovalRejected {
		eventType = events.EventTypeAttendanceRejected
	}
	event := events.AttendanceReviewedEvent{
		EventType:    eventType,
		AttendanceID: row.ID.String(),
		UserID:       row.UserID.String(),
		ReviewerID:   reviewerID,
		Date:         row.Date.Format("2006-01-02"),
		Reason:       reason,
		OccurredAt:   now,
	}
	if s.outbox != nil {
		payload, err := json.Marshal(event)
		if err != nil {
			s.logger.Error("marshal attendance reviewed event failed", zap.Error(err))
			return AttendanceResponse{}, err
		}

		outboxRepo := s.outbox.WithTx(tx)
		if err := outboxRepo.Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     contextutil.GetRequestID(ctx),
			AggregateType: "attendance",
			AggregateID:   row.ID.String(),
			EventType:     eventType,
			Topic:         events.AttendanceReviewedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("review attendance outbox persist failed",
				zap.String("attendance_id", id),
				zap.Error(err),
			)
			return AttendanceResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("review attendance commit failed", zap.String("attendance_id", id), zap.Error(err))
		return AttendanceResponse{}, err
	}
	s.logger.Info("review attendance success",
		zap.String("attendance_id", id),
		zap.String("approval_status", target),
	)

	return mapToResponse(*row), nil
}

func (s *service) GetToday(ctx context.Context, userID string) (AttendanceResponse, error) {
	row, err := s.repo.FindByUserAndDate(ctx, userID, todayDate())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AttendanceResponse{}, attendanceerrors.ErrAttendanceNotFound
		}
		return AttendanceResponse{}, err
	}
	return mapToResponse(*row), nil
}

func (s *service) GetAll(ctx context.Context, actorID string, canReadAll bool, f ListFilter) ([]AttendanceResponse, int64, error) {
	if !canReadAll {
		if _, err := uuid.Parse(actorID); err != nil {
			return nil, 0, attendanceerrors.ErrInvalidUserID
		}
		f.UserID = actorID
	}

	rows, total, err := s.repo.FindAll(ctx, f)
	if err != nil {
		return nil, 0, err
	}

	res := make([]AttendanceResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res, total, nil
}

func (s *service) removeStoredPhoto(ctx context.Context, path *string) {
	if path == nil {
		return
	}
	if err := s.store.Remove(ctx, *path); err != nil {
		s.logger.Warn("remove stored photo failed", zap.String("path", *path), zap.Error(err))
	}
}

func strPtr(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

func mapToResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:                    a.ID.String(),
		UserID:                a.UserID.String(),
		Date:                  a.Date.Format("2006-01-02"),
		CheckInTime:           a.CheckInTime.Format(time.RFC3339),
		CheckInWorkType:       a.CheckInWorkType,
		CheckOutWorkType:      a.CheckOutWorkType,
		CheckInOffsiteReason:  a.CheckInOffsiteReason,
		CheckOutOffsiteReason: a.CheckOutOffsiteReason,
		CheckInPhoto:          a.CheckInPhoto,
		CheckOutPhoto:         a.CheckOutPhoto,
		CheckInAddress:        a.CheckInAddress,
		CheckOutAddress:       a.CheckOutAddress,
		CheckInIP:             a.CheckInIP,
		CheckOutIP:            a.CheckOutIP,
		Status:                a.Status,
		LateMinutes:           a.LateMinutes,
		WorkHours:             a.WorkHours,
		ApprovalStatus:        a.ApprovalStatus,
		RejectionReason:       a.RejectionReason,
	}
	if a.User != nil {
		resp.UserName = a.User.FullName
	}
	if a.CheckOutTime != nil {
		v := a.CheckOutTime.Format(time.RFC3339)
		resp.CheckOutTime = &v
	}
	if a.ApprovedBy != nil {
		v := a.ApprovedBy.String()
		resp.ApprovedBy = &v
	}
	if a.ApprovedAt != nil {
		v := a.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &v
	}
	if a.RejectedBy != nil {
		v := a.RejectedBy.String()
		resp.RejectedBy = &v
	}
	if a.RejectedAt != nil {
		v := a.RejectedAt.Format(time.RFC3339)
		resp.RejectedAt = &v
	}
	return resp
}
