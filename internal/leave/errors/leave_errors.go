package leaveerrors

import (
	"fmt"
	"net/http"

	"go-presensi/internal/shared/apperror"
)

var (
	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid user id",
		http.StatusBadRequest,
	)
	ErrInvalidReviewerID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid reviewer id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"start_date must be before or equal end_date",
		http.StatusBadRequest,
	)
	ErrInvalidLeaveType = apperror.New(
		apperror.CodeInvalidInput,
		"leave_type must be izin or sakit",
		http.StatusBadRequest,
	)
	ErrAttachmentRequired = apperror.NewWithDetails(
		apperror.CodeValidation,
		"attachment is required for sick leave",
		http.StatusUnprocessableEntity,
		map[string]string{"field": "attachment"},
	)
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave not found",
		http.StatusNotFound,
	)
	ErrLeaveOverlap = apperror.New(
		apperror.CodeConflict,
		"leave already exists in overlapping period",
		http.StatusConflict,
	)
	ErrLeaveNotPending = apperror.New(
		apperror.CodeInvalidState,
		"leave has already been reviewed",
		http.StatusUnprocessableEntity,
	)
	ErrReviewNotesRequired = apperror.New(
		apperror.CodeInvalidInput,
		"notes is required when rejecting a leave",
		http.StatusBadRequest,
	)
	ErrInvalidStatusFilter = apperror.New(
		apperror.CodeInvalidInput,
		"status must be one of pending, approved, rejected",
		http.StatusBadRequest,
	)
)

// ReasonTooShort membawa panjang minimal yang berlaku saat pengajuan.
func ReasonTooShort(minLength int) *apperror.AppError {
	return apperror.NewWithDetails(
		apperror.CodeValidation,
		fmt.Sprintf("reason must be at least %d characters", minLength),
		http.StatusUnprocessableEntity,
		map[string]any{"field": "reason", "min_length": minLength},
	)
}

// DeadlineNotMet membawa tanggal mulai paling cepat yang masih diterima.
func DeadlineNotMet(earliestStart string) *apperror.AppError {
	return apperror.NewWithDetails(
		apperror.CodeValidation,
		"leave must be submitted before the deadline",
		http.StatusUnprocessableEntity,
		map[string]any{"earliest_start_date": earliestStart},
	)
}

// QuotaExceeded membawa sisa kuota agar pemohon bisa menyesuaikan durasi.
func QuotaExceeded(remainingDays int) *apperror.AppError {
	if remainingDays < 0 {
		remainingDays = 0
	}
	return apperror.NewWithDetails(
		apperror.CodeValidation,
		"annual leave quota exceeded",
		http.StatusUnprocessableEntity,
		map[string]any{"remaining_days": remainingDays},
	)
}
