package leave

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"go-presensi/internal/appsettings"
	"go-presensi/internal/events"
	leaveerrors "go-presensi/internal/leave/errors"
	"go-presensi/internal/messaging/kafka"
	"go-presensi/internal/shared/contextutil"
	"go-presensi/internal/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"

	TypeIzin  = "izin"
	TypeSakit = "sakit"
)

const attachmentKind = "leave"

// PolicyProvider membaca kebijakan cuti terkini per pengajuan.
type PolicyProvider interface {
	LeavePolicy(ctx context.Context) (appsettings.LeavePolicy, error)
}

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, userID string, req CreateLeaveRequest) (LeaveResponse, error)
	GetByID(ctx context.Context, id string) (LeaveResponse, error)
	GetAllByUser(ctx context.Context, userID string) ([]LeaveResponse, error)
	GetAllForReview(ctx context.Context, statusFilter string) ([]LeaveResponse, error)
	Approve(ctx context.Context, reviewerID, id string, notes *string) (LeaveResponse, error)
	Reject(ctx context.Context, reviewerID, id, notes string) (LeaveResponse, error)
	GetQuota(ctx context.Context, userID string, year int) (QuotaResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	policy PolicyProvider
	store  storage.Store
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	policy PolicyProvider,
	store storage.Store,
	outbox kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{db: db, repo: repo, policy: policy, store: store, outbox: outbox, logger: l}
}

func todayDate() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}

// earliestStartDate menghitung tanggal mulai paling cepat dari deadline jam.
// Jam dibulatkan ke atas ke hari kalender: 24 jam berarti paling cepat besok.
func earliestStartDate(today time.Time, deadlineHours int) time.Time {
	days := (deadlineHours + 23) / 24
	if days < 0 {
		days = 0
	}
	return today.AddDate(0, 0, days)
}

func (s *service) Create(ctx context.Context, userID string, req CreateLeaveRequest) (LeaveResponse, error) {
	s.logger.Debug("create leave requested",
		zap.String("user_id", userID),
		zap.String("leave_type", req.LeaveType),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidUserID
	}
	if req.LeaveType != TypeIzin && req.LeaveType != TypeSakit {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveType
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	if startDate.After(endDate) {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateRange
	}

	policy, err := s.policy.LeavePolicy(ctx)
	if err != nil {
		s.logger.Error("create leave read policy failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if len(req.Reason) < policy.MinReasonLength {
		return LeaveResponse{}, leaveerrors.ReasonTooShort(policy.MinReasonLength)
	}

	earliest := earliestStartDate(todayDate(), policy.SubmitDeadlineHours)
	if startDate.Before(earliest) {
		s.logger.Warn("create leave deadline not met",
			zap.String("user_id", userID),
			zap.String("start_date", req.StartDate),
			zap.String("earliest_start", earliest.Format("2006-01-02")),
		)
		return LeaveResponse{}, leaveerrors.DeadlineNotMet(earliest.Format("2006-01-02"))
	}

	if req.LeaveType == TypeSakit && req.Attachment == nil {
		return LeaveResponse{}, leaveerrors.ErrAttachmentRequired
	}

	overlap, err := s.repo.HasOverlappingPeriod(ctx, userID, startDate, endDate)
	if err != nil {
		s.logger.Error("create leave overlap check failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if overlap {
		return LeaveResponse{}, leaveerrors.ErrLeaveOverlap
	}

	totalDays := int(endDate.Sub(startDate).Hours()/24) + 1

	// Kuota tahunan hanya menghitung izin; sakit tidak memotong kuota.
	if req.LeaveType == TypeIzin {
		year := startDate.Year()
		used, err := s.repo.QuotaUsedDays(ctx, userID, year)
		if err != nil {
			s.logger.Error("create leave quota check failed", zap.Error(err))
			return LeaveResponse{}, err
		}
		pending, err := s.repo.PendingDaysInYear(ctx, userID, TypeIzin, year)
		if err != nil {
			s.logger.Error("create leave pending check failed", zap.Error(err))
			return LeaveResponse{}, err
		}
		if used+pending+totalDays > policy.AnnualQuotaDays {
			s.logger.Warn("create leave quota exceeded",
				zap.String("user_id", userID),
				zap.Int("used", used),
				zap.Int("pending", pending),
				zap.Int("requested", totalDays),
				zap.Int("quota", policy.AnnualQuotaDays),
			)
			return LeaveResponse{}, leaveerrors.QuotaExceeded(policy.AnnualQuotaDays - used - pending)
		}
	}

	// Lampiran disimpan durable dulu; kegagalan menulis baris menghapusnya.
	var attachmentPath *string
	if req.Attachment != nil {
		path, err := s.store.Save(ctx, attachmentKind, req.Attachment.Filename, req.Attachment.Content)
		if err != nil {
			s.logger.Error("create leave attachment store failed", zap.Error(err))
			return LeaveResponse{}, err
		}
		attachmentPath = &path
	}

	l := &Leave{
		ID:         uuid.New(),
		UserID:     userUUID,
		LeaveType:  req.LeaveType,
		StartDate:  startDate,
		EndDate:    endDate,
		TotalDays:  totalDays,
		Reason:     req.Reason,
		Attachment: attachmentPath,
		Status:     StatusPending,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create leave begin tx failed", zap.Error(err))
		s.removeStoredAttachment(ctx, attachmentPath)
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("create leave persist failed", zap.Error(err))
		s.removeStoredAttachment(ctx, attachmentPath)
		return LeaveResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("create leave commit failed", zap.Error(err))
		s.removeStoredAttachment(ctx, attachmentPath)
		return LeaveResponse{}, err
	}

	s.logger.Info("create leave success",
		zap.String("leave_id", l.ID.String()),
		zap.String("user_id", userID),
		zap.String("leave_type", l.LeaveType),
		zap.Int("total_days", totalDays),
	)

	return mapToResponse(*l), nil
}

func (s *service) GetByID(ctx context.Context, id string) (LeaveResponse, error) {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return LeaveResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*l), nil
}

func (s *service) GetAllByUser(ctx context.Context, userID string) ([]LeaveResponse, error) {
	leaves, err := s.repo.FindAllByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) GetAllForReview(ctx context.Context, statusFilter string) ([]LeaveResponse, error) {
	switch statusFilter {
	case "", StatusPending, StatusApproved, StatusRejected:
	default:
		return nil, leaveerrors.ErrInvalidStatusFilter
	}

	leaves, err := s.repo.FindAllByStatus(ctx, statusFilter)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) Approve(ctx context.Context, reviewerID, id string, notes *string) (LeaveResponse, error) {
	return s.review(ctx, reviewerID, id, StatusApproved, notes)
}

func (s *service) Reject(ctx context.Context, reviewerID, id, notes string) (LeaveResponse, error) {
	if notes == "" {
		return LeaveResponse{}, leaveerrors.ErrReviewNotesRequired
	}
	return s.review(ctx, reviewerID, id, StatusRejected, &notes)
}

func (s *service) review(ctx context.Context, reviewerID, id, targetStatus string, notes *string) (LeaveResponse, error) {
	s.logger.Debug("review leave requested",
		zap.String("leave_id", id),
		zap.String("reviewer_id", reviewerID),
		zap.String("target_status", targetStatus),
	)

	reviewerUUID, err := uuid.Parse(reviewerID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidReviewerID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("review leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByID(ctx, id)
	if err != nil {
		return LeaveResponse{}, mapRepositoryError(err)
	}
	if l.Status != StatusPending {
		s.logger.Warn("review leave not pending",
			zap.String("leave_id", id),
			zap.String("status", l.Status),
		)
		return LeaveResponse{}, leaveerrors.ErrLeaveNotPending
	}

	now := time.Now().UTC()
	l.Status = targetStatus
	l.ReviewNotes = notes
	l.ReviewedBy = &reviewerUUID
	l.ReviewedAt = &now

	if err := qtx.UpdateReview(ctx, l); err != nil {
		s.logger.Error("review leave persist failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}

	eventType := events.EventTypeLeaveApproved
	if targetStatus == StatusRejected {
		eventType = events.EventTypeLeaveRejected
	}
	event := events.LeaveReviewedEvent{
		EventType:  eventType,
		LeaveID:    l.ID.String(),
		UserID:     l.UserID.String(),
		ReviewerID: reviewerID,
		LeaveType:  l.LeaveType,
		StartDate:  l.StartDate.Format("2006-01-02"),
		EndDate:    l.EndDate.Format("2006-01-02"),
		TotalDays:  l.TotalDays,
		OccurredAt: now,
	}
	if s.outbox != nil {
		payload, err := json.Marshal(event)
		if err != nil {
			s.logger.Error("marshal leave reviewed event failed", zap.Error(err))
			return LeaveResponse{}, err
		}

		outboxRepo := s.outbox.WithTx(tx)
		if err := outboxRepo.Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     contextutil.GetRequestID(ctx),
			AggregateType: "leave",
			AggregateID:   l.ID.String(),
			EventType:     eventType,
			Topic:         events.LeaveReviewedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("review leave outbox persist failed",
				zap.String("leave_id", id),
				zap.Error(err),
			)
			return LeaveResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("review leave commit failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}
	s.logger.Info("review leave success",
		zap.String("leave_id", id),
		zap.String("status", targetStatus),
	)

	return mapToResponse(*l), nil
}

func (s *service) GetQuota(ctx context.Context, userID string, year int) (QuotaResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return QuotaResponse{}, leaveerrors.ErrInvalidUserID
	}
	if year == 0 {
		year = time.Now().UTC().Year()
	}

	policy, err := s.policy.LeavePolicy(ctx)
	if err != nil {
		return QuotaResponse{}, err
	}
	used, err := s.repo.QuotaUsedDays(ctx, userID, year)
	if err != nil {
		return QuotaResponse{}, err
	}
	pending, err := s.repo.PendingDaysInYear(ctx, userID, TypeIzin, year)
	if err != nil {
		return QuotaResponse{}, err
	}

	remaining := policy.AnnualQuotaDays - used - pending
	if remaining < 0 {
		remaining = 0
	}
	return QuotaResponse{
		Year:          year,
		AnnualQuota:   policy.AnnualQuotaDays,
		UsedDays:      used,
		PendingDays:   pending,
		RemainingDays: remaining,
	}, nil
}

func (s *service) removeStoredAttachment(ctx context.Context, path *string) {
	if path == nil {
		return
	}
	if err := s.store.Remove(ctx, *path); err != nil {
		s.logger.Warn("remove stored attachment failed", zap.String("path", *path), zap.Error(err))
	}
}

func mapToResponse(l Leave) LeaveResponse {
	resp := LeaveResponse{
		ID:          l.ID.String(),
		UserID:      l.UserID.String(),
		LeaveType:   l.LeaveType,
		StartDate:   l.StartDate.Format("2006-01-02"),
		EndDate:     l.EndDate.Format("2006-01-02"),
		TotalDays:   l.TotalDays,
		Reason:      l.Reason,
		Attachment:  l.Attachment,
		Status:      l.Status,
		ReviewNotes: l.ReviewNotes,
		CreatedAt:   l.CreatedAt.Format(time.RFC3339),
	}
	if l.User != nil {
		resp.UserName = l.User.FullName
	}
	if l.ReviewedBy != nil {
		v := l.ReviewedBy.String()
		resp.ReviewedBy = &v
	}
	if l.ReviewedAt != nil {
		v := l.ReviewedAt.Format(time.RFC3339)
		resp.ReviewedAt = &v
	}
	return resp
}

func mapToListResponse(leaves []Leave) []LeaveResponse {
	resp := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		resp[i] = mapToResponse(l)
	}
	return resp
}
