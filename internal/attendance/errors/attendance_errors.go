package attendanceerrors

import (
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
	ErrAttendanceNotFound = apperror.New(
		apperror.CodeNotFound,
		"attendance not found",
		http.StatusNotFound,
	)
	ErrAlreadyCheckedIn = apperror.New(
		apperror.CodeConflict,
		"already checked in for today",
		http.StatusConflict,
	)
	ErrAlreadyCheckedOut = apperror.New(
		apperror.CodeConflict,
		"already checked out for today",
		http.StatusConflict,
	)
	ErrNotCheckedIn = apperror.New(
		apperror.CodeInvalidState,
		"check in not found for today",
		http.StatusUnprocessableEntity,
	)
	ErrLogbookRequired = apperror.New(
		apperror.CodeInvalidState,
		"fill today's logbook before checking out",
		http.StatusUnprocessableEntity,
	)
	ErrAttendanceNotPending = apperror.New(
		apperror.CodeInvalidState,
		"attendance has already been reviewed",
		http.StatusUnprocessableEntity,
	)
	ErrRejectionReasonRequired = apperror.New(
		apperror.CodeInvalidInput,
		"reason is required when rejecting attendance",
		http.StatusBadRequest,
	)
)

// CheckInWindowRejected membawa batas jendela check-in agar klien bisa
// menampilkan kapan check-in dibuka/ditutup.
func CheckInWindowRejected(status, checkInStart, checkInEnd string) *apperror.AppError {
	message := "check-in is not open yet"
	if status == "too_late" {
		message = "check-in window has closed, contact your supervisor"
	}
	return apperror.NewWithDetails(
		apperror.CodeValidation,
		message,
		http.StatusUnprocessableEntity,
		map[string]any{
			"validation": map[string]any{
				"status": status,
				"details": map[string]string{
					"check_in_start": checkInStart,
					"check_in_end":   checkInEnd,
				},
			},
		},
	)
}

// CheckOutTooEarly membawa sisa tunggu agar klien bisa menampilkan kapan
// check-out diizinkan.
func CheckOutTooEarly(waitMinutes int, canCheckoutAt string) *apperror.AppError {
	return apperror.NewWithDetails(
		apperror.CodeValidation,
		"check-out is not open yet",
		http.StatusUnprocessableEntity,
		map[string]any{
			"validation": map[string]any{
				"status":          "too_early",
				"wait_minutes":    waitMinutes,
				"can_checkout_at": canCheckoutAt,
			},
		},
	)
}
