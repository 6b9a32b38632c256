package officenetworkerrors

import (
	"net/http"

	"go-presensi/internal/shared/apperror"
)

var (
	ErrOfficeNetworkNotFound = apperror.New(
		apperror.CodeNotFound,
		"office network not found",
		http.StatusNotFound,
	)
	ErrIdentityRequired = apperror.New(
		apperror.CodeValidation,
		"at least one of ip_address, ip range, or gps coordinate must be set",
		http.StatusBadRequest,
	)
	ErrInvalidRadius = apperror.New(
		apperror.CodeValidation,
		"radius_meters must be greater than zero",
		http.StatusBadRequest,
	)
	ErrIncompleteIPRange = apperror.New(
		apperror.CodeValidation,
		"ip_range_start and ip_range_end must be set together",
		http.StatusBadRequest,
	)
	ErrIncompleteCoordinate = apperror.New(
		apperror.CodeValidation,
		"latitude and longitude must be set together",
		http.StatusBadRequest,
	)
)
