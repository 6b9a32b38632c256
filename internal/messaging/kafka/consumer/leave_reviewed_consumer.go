package consumer

import (
	"context"
	"encoding/json"
	"go-presensi/internal/events"
	"go-presensi/internal/leave"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeLeaveReviewed memproyeksikan event leave.approved ke tabel
// pemakaian kuota. Event selain approved hanya di-commit.
func ConsumeLeaveReviewed(
	ctx context.Context,
	reader *kafkago.Reader,
	projector leave.QuotaProjector,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.leave_reviewed")
	log.Info("leave reviewed consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("leave reviewed consumer stopped")
				return
			}
			log.Error("fetch leave reviewed message failed", zap.Error(err))
			continue
		}

		var event events.LeaveReviewedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode leave reviewed event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if event.EventType != events.EventTypeLeaveApproved {
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := projector.ApplyApprovedLeave(ctx, event); err != nil {
			log.Error("apply approved leave to quota failed",
				zap.String("leave_id", event.LeaveID),
				zap.String("user_id", event.UserID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit leave reviewed message failed", zap.Error(err))
			continue
		}

		log.Info("leave quota usage updated",
			zap.String("leave_id", event.LeaveID),
			zap.String("user_id", event.UserID),
			zap.Int("total_days", event.TotalDays),
		)
	}
}
