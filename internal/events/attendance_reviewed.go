package events

import "time"

const AttendanceReviewedTopic = "presensi.attendance.reviewed.v1"

const (
	EventTypeAttendanceApproved = "attendance.approved"
	EventTypeAttendanceRejected = "attendance.rejected"
)

type AttendanceReviewedEvent struct {
	EventType    string    `json:"event_type"`
	AttendanceID string    `json:"attendance_id"`
	UserID       string    `json:"user_id"`
	ReviewerID   string    `json:"reviewer_id"`
	Date         string    `json:"date"`
	Reason       string    `json:"reason,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}
