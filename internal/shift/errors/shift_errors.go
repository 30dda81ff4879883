package shifterrors

import (
	"net/http"

	"github.com/yungsandro2003/vivaponto/internal/shared/apperror"
)

var (
	ErrShiftNotFound = apperror.New(
		apperror.CodeNotFound,
		"shift not found",
		http.StatusNotFound,
	)
	ErrInvalidShiftID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid shift id",
		http.StatusBadRequest,
	)
	ErrInvalidBoundaryTimes = apperror.New(
		apperror.CodeInvalidInput,
		"shift boundary times must be valid HH:MM values",
		http.StatusBadRequest,
	)
	ErrTotalMinutesMismatch = apperror.New(
		apperror.CodeInvalidInput,
		"total_minutes must equal the worked span defined by the boundary times",
		http.StatusBadRequest,
	)
	ErrNonPositiveTotal = apperror.New(
		apperror.CodeInvalidInput,
		"shift total must be positive",
		http.StatusBadRequest,
	)
	ErrShiftInUse = apperror.New(
		apperror.CodeConflict,
		"shift is still assigned to one or more employees",
		http.StatusConflict,
	)
)
