package leave

import "io"

// FileUpload membawa lampiran dari handler ke service.
type FileUpload struct {
	Filename string
	Content  io.Reader
}

type CreateLeaveRequest struct {
	LeaveType  string `form:"leave_type" binding:"required,oneof=izin sakit"`
	StartDate  string `form:"start_date" binding:"required"`
	EndDate    string `form:"end_date" binding:"required"`
	Reason     string `form:"reason" binding:"required"`
	Attachment *FileUpload
}

type ReviewLeaveRequest struct {
	Notes string `json:"notes"`
}

type LeaveResponse struct {
	ID          string  `json:"id"`
	UserID      string  `json:"user_id"`
	UserName    string  `json:"user_name,omitempty"`
	LeaveType   string  `json:"leave_type"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	TotalDays   int     `json:"total_days"`
	Reason      string  `json:"reason"`
	Attachment  *string `json:"attachment,omitempty"`
	Status      string  `json:"status"`
	ReviewNotes *string `json:"review_notes,omitempty"`
	ReviewedBy  *string `json:"reviewed_by,omitempty"`
	ReviewedAt  *string `json:"reviewed_at,omitempty"`
	CreatedAt   string  `json:"created_at"`
}

type QuotaResponse struct {
	Year          int `json:"year"`
	AnnualQuota   int `json:"annual_quota"`
	UsedDays      int `json:"used_days"`
	PendingDays   int `json:"pending_days"`
	RemainingDays int `json:"remaining_days"`
}
