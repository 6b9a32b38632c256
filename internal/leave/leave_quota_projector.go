package leave

import (
	"context"
	"time"

	"go-presensi/internal/events"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// QuotaProjector menerapkan event leave yang sudah diapprove ke proyeksi
// pemakaian kuota tahunan.
type QuotaProjector interface {
	ApplyApprovedLeave(ctx context.Context, event events.LeaveReviewedEvent) error
}

type quotaProjector struct {
	repo   Repository
	logger *zap.Logger
}

func NewQuotaProjector(repo Repository, logger ...*zap.Logger) QuotaProjector {
	l := zap.L().Named("leave.quota_projector")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.quota_projector")
	}
	return &quotaProjector{repo: repo, logger: l}
}

func (p *quotaProjector) ApplyApprovedLeave(ctx context.Context, event events.LeaveReviewedEvent) error {
	if event.EventType != events.EventTypeLeaveApproved {
		return nil
	}
	// Hanya izin yang memotong kuota tahunan.
	if event.LeaveType != TypeIzin {
		p.logger.Debug("skip non-quota leave event",
			zap.String("leave_id", event.LeaveID),
			zap.String("leave_type", event.LeaveType),
		)
		return nil
	}

	leaveID, err := uuid.Parse(event.LeaveID)
	if err != nil {
		p.logger.Error("apply approved leave invalid leave id",
			zap.String("leave_id", event.LeaveID),
			zap.Error(err),
		)
		return err
	}
	userID, err := uuid.Parse(event.UserID)
	if err != nil {
		p.logger.Error("apply approved leave invalid user id",
			zap.String("user_id", event.UserID),
			zap.Error(err),
		)
		return err
	}

	startDate, err := time.Parse("2006-01-02", event.StartDate)
	if err != nil {
		p.logger.Error("apply approved leave invalid start date",
			zap.String("start_date", event.StartDate),
			zap.Error(err),
		)
		return err
	}

	usage := &LeaveQuotaUsage{
		ID:      uuid.New(),
		LeaveID: leaveID,
		UserID:  userID,
		Year:    startDate.Year(),
		Days:    event.TotalDays,
	}
	if err := p.repo.CreateQuotaUsage(ctx, usage); err != nil {
		// Event yang sama bisa terkirim lebih dari sekali; baris unik per
		// leave sudah ada berarti event sudah diterapkan.
		if isDuplicateQuotaUsage(err) {
			p.logger.Info("quota usage already applied",
				zap.String("leave_id", event.LeaveID),
			)
			return nil
		}
		p.logger.Error("apply approved leave persist failed",
			zap.String("leave_id", event.LeaveID),
			zap.Error(err),
		)
		return err
	}

	p.logger.Info("quota usage applied",
		zap.String("leave_id", event.LeaveID),
		zap.String("user_id", event.UserID),
		zap.Int("days", event.TotalDays),
		zap.Int("year", startDate.Year()),
	)
	return nil
}
