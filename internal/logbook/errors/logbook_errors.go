package logbookerrors

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
	ErrLogbookNotFound = apperror.New(
		apperror.CodeNotFound,
		"logbook not found",
		http.StatusNotFound,
	)
	ErrLogbookAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"logbook for this date already exists",
		http.StatusConflict,
	)
	ErrCheckInRequired = apperror.New(
		apperror.CodeInvalidState,
		"check in first before filling today's logbook",
		http.StatusUnprocessableEntity,
	)
	ErrLogbookNotOwned = apperror.New(
		apperror.CodeForbidden,
		"logbook belongs to another user",
		http.StatusForbidden,
	)
	ErrLogbookNotPending = apperror.New(
		apperror.CodeInvalidState,
		"logbook has already been reviewed",
		http.StatusUnprocessableEntity,
	)
	ErrReviewNotesRequired = apperror.New(
		apperror.CodeInvalidInput,
		"notes is required when rejecting a logbook",
		http.StatusBadRequest,
	)
	ErrInvalidStatusFilter = apperror.New(
		apperror.CodeInvalidInput,
		"status must be one of pending, approved, rejected",
		http.StatusBadRequest,
	)
)
