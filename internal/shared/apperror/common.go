package apperror

import (
	"fmt"
	"net/http"
)

var (
	ErrNotFound = New(
		CodeNotFound,
		"Resource not found",
		http.StatusNotFound,
	)

	ErrForbidden = New(
		CodeForbidden,
		"You do not have permission to access this resource",
		http.StatusForbidden,
	)

	ErrInternal = New(
		CodeInternalError,
		"An unexpected error occurred",
		http.StatusInternalServerError,
	)

	ErrUnauthorized = New(
		CodeUnauthorized,
		"Authentication is required",
		http.StatusUnauthorized,
	)

	ErrInvalidInput = New(
		CodeInvalidInput,
		"The provided input is invalid",
		http.StatusBadRequest,
	)
)

// RequiredField builds the validation error for a missing field.
func RequiredField(field string) *AppError {
	return NewWithDetails(
		CodeValidation,
		fmt.Sprintf("%s is required", field),
		http.StatusBadRequest,
		map[string]string{"field": field},
	)
}

// InvalidField builds the validation error for a field that failed a rule.
func InvalidField(field string) *AppError {
	return NewWithDetails(
		CodeValidation,
		fmt.Sprintf("%s is invalid", field),
		http.StatusBadRequest,
		map[string]string{"field": field},
	)
}

// InvalidFieldMessage is InvalidField with the failed rule spelled out.
func InvalidFieldMessage(field, message string) *AppError {
	return NewWithDetails(
		CodeValidation,
		fmt.Sprintf("%s %s", field, message),
		http.StatusBadRequest,
		map[string]string{"field": field},
	)
}
