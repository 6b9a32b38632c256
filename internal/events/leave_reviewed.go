package events

import "time"

const LeaveReviewedTopic = "presensi.leave.reviewed.v1"

const (
	EventTypeLeaveApproved = "leave.approved"
	EventTypeLeaveRejected = "leave.rejected"
)

type LeaveReviewedEvent struct {
	EventType  string    `json:"event_type"`
	LeaveID    string    `json:"leave_id"`
	UserID     string    `json:"user_id"`
	ReviewerID string    `json:"reviewer_id"`
	LeaveType  string    `json:"leave_type"`
	StartDate  string    `json:"start_date"`
	EndDate    string    `json:"end_date"`
	TotalDays  int       `json:"total_days"`
	OccurredAt time.Time `json:"occurred_at"`
}
