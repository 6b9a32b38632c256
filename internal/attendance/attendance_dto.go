package attendance

import (
	"io"
	"time"
)

type PreCheckRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type PreCheckOffice struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type PreCheckResponse struct {
	WorkType string          `json:"work_type"`
	IsOnsite bool            `json:"is_onsite"`
	Method   string          `json:"method"`
	Reason   string          `json:"reason"`
	Office   *PreCheckOffice `json:"office,omitempty"`
}

// FileUpload membawa isi berkas dari handler ke service tanpa
// ketergantungan pada multipart.
type FileUpload struct {
	Filename string
	Content  io.Reader
}

type CheckInRequest struct {
	Latitude      *float64 `form:"latitude"`
	Longitude     *float64 `form:"longitude"`
	Address       string   `form:"address"`
	OffsiteReason string   `form:"offsite_reason"`
	Photo         *FileUpload
}

type CheckOutRequest struct {
	Latitude      *float64 `form:"latitude"`
	Longitude     *float64 `form:"longitude"`
	Address       string   `form:"address"`
	OffsiteReason string   `form:"offsite_reason"`
	Photo         *FileUpload
}

type RejectAttendanceRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type CheckInTimeValidation struct {
	Status      string `json:"status"`
	IsLate      bool   `json:"is_late"`
	LateMinutes int    `json:"late_minutes"`
}

type CheckOutTimeValidation struct {
	Status          string  `json:"status"`
	EarlyMinutes    *int    `json:"early_minutes,omitempty"`
	ShouldWorkUntil *string `json:"should_work_until,omitempty"`
}

type CheckInResponse struct {
	Attendance     AttendanceResponse    `json:"attendance"`
	WorkType       string                `json:"work_type"`
	TimeValidation CheckInTimeValidation `json:"time_validation"`
}

type CheckOutResponse struct {
	Attendance     AttendanceResponse     `json:"attendance"`
	WorkType       string                 `json:"work_type"`
	WorkHours      float64                `json:"work_hours"`
	TimeValidation CheckOutTimeValidation `json:"time_validation"`
}

type AttendanceResponse struct {
	ID       string `json:"id"`
	UserID   string `json:"user_id"`
	UserName string `json:"user_name,omitempty"`
	Date     string `json:"date"`

	CheckInTime  string  `json:"check_in_time"`
	CheckOutTime *string `json:"check_out_time,omitempty"`

	CheckInWorkType       string  `json:"check_in_work_type"`
	CheckOutWorkType      *string `json:"check_out_work_type,omitempty"`
	CheckInOffsiteReason  *string `json:"check_in_offsite_reason,omitempty"`
	CheckOutOffsiteReason *string `json:"check_out_offsite_reason,omitempty"`
	CheckInPhoto          *string `json:"check_in_photo,omitempty"`
	CheckOutPhoto         *string `json:"check_out_photo,omitempty"`
	CheckInAddress        *string `json:"check_in_address,omitempty"`
	CheckOutAddress       *string `json:"check_out_address,omitempty"`
	CheckInIP             *string `json:"check_in_ip,omitempty"`
	CheckOutIP            *string `json:"check_out_ip,omitempty"`

	Status      string   `json:"status"`
	LateMinutes int      `json:"late_minutes"`
	WorkHours   *float64 `json:"work_hours,omitempty"`

	ApprovalStatus  string  `json:"approval_status"`
	ApprovedBy      *string `json:"approved_by,omitempty"`
	ApprovedAt      *string `json:"approved_at,omitempty"`
	RejectedBy      *string `json:"rejected_by,omitempty"`
	RejectedAt      *string `json:"rejected_at,omitempty"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
}

type ListFilter struct {
	UserID    string
	WorkType  string
	Status    string
	StartDate *time.Time
	EndDate   *time.Time
	Page      int
	PageSize  int
}
