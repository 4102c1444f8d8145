package attendanceerrors

import (
	"net/http"

	"organizerpro/internal/shared/apperror"
)

var (
	ErrInvalidMemberID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid member id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"unknown attendance status",
		http.StatusBadRequest,
	)
	ErrInvalidTimeOfDay = apperror.New(
		apperror.CodeInvalidInput,
		"invalid time of day, expected HH:MM",
		http.StatusBadRequest,
	)
	ErrNegativeHours = apperror.New(
		apperror.CodeInvalidInput,
		"total_hours cannot be negative",
		http.StatusBadRequest,
	)
	ErrAttendanceNotFound = apperror.New(
		apperror.CodeNotFound,
		"attendance record not found",
		http.StatusNotFound,
	)
	ErrShiftConflict = apperror.New(
		apperror.CodeConflict,
		"an overlapping shift already exists for this member and date",
		http.StatusConflict,
	)
	ErrDuplicateDay = apperror.New(
		apperror.CodeConflict,
		"an attendance record already exists for this member and date",
		http.StatusConflict,
	)
	ErrPastDateForbidden = apperror.New(
		apperror.CodePastDateForbidden,
		"attendance for past dates can only be changed by a privileged member",
		http.StatusForbidden,
	)
	ErrScopeLocked = apperror.New(
		apperror.CodeLocked,
		"attendance is locked for this period",
		http.StatusLocked,
	)
	ErrInvalidPeriodFilter = apperror.New(
		apperror.CodeInvalidInput,
		"exactly one of date, week, month, year or start_date+end_date is required",
		http.StatusBadRequest,
	)
)
