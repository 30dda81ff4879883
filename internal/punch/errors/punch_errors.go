package puncherrors

import (
	"net/http"

	"github.com/yungsandro2003/vivaponto/internal/shared/apperror"
)

var (
	ErrPunchNotFound = apperror.New(
		apperror.CodeNotFound,
		"punch not found",
		http.StatusNotFound,
	)
	ErrInvalidPunchID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid punch id",
		http.StatusBadRequest,
	)
	ErrInvalidPunchType = apperror.New(
		apperror.CodeInvalidInput,
		"punch type must be one of entry, break_start, break_end, exit",
		http.StatusBadRequest,
	)
	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"date must be a valid YYYY-MM-DD value",
		http.StatusBadRequest,
	)
	ErrInvalidTime = apperror.New(
		apperror.CodeInvalidInput,
		"time must be a valid HH:MM value",
		http.StatusBadRequest,
	)
	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid user id",
		http.StatusBadRequest,
	)
	ErrDayComplete = apperror.New(
		apperror.CodeConflict,
		"all punch types already recorded for today",
		http.StatusConflict,
	)
	ErrPunchExists = apperror.New(
		apperror.CodeConflict,
		"a punch of this type already exists for this user and date",
		http.StatusConflict,
	)
)
