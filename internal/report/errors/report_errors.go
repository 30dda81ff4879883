package reporterrors

import (
	"net/http"

	"github.com/yungsandro2003/vivaponto/internal/shared/apperror"
)

var (
	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid user id",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"start_date and end_date must be valid YYYY-MM-DD values",
		http.StatusBadRequest,
	)
	ErrMissingRange = apperror.New(
		apperror.CodeInvalidInput,
		"either period or a start_date/end_date pair is required",
		http.StatusBadRequest,
	)
	ErrInvalidPeriod = apperror.New(
		apperror.CodeInvalidInput,
		"period must be one of today, week, month, year",
		http.StatusBadRequest,
	)
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"user not found",
		http.StatusNotFound,
	)
)
