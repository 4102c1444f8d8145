package payrollerrors

import (
	"net/http"

	"organizerpro/internal/shared/apperror"
)

var (
	ErrPayrollNotFound = apperror.New(
		apperror.CodeNotFound,
		"payroll not found",
		http.StatusNotFound,
	)
	ErrInvalidPeriod = apperror.New(
		apperror.CodeInvalidInput,
		"month must be 1-12 and year must be plausible",
		http.StatusBadRequest,
	)
	ErrNoAttendanceData = apperror.New(
		apperror.CodeNoData,
		"no attendance data for the requested period",
		http.StatusUnprocessableEntity,
	)
	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"payroll status does not allow this transition",
		http.StatusConflict,
	)
	ErrPayrollPaidImmutable = apperror.New(
		apperror.CodeImmutableRecord,
		"a paid payroll cannot be modified",
		http.StatusConflict,
	)
	ErrInvalidPaymentMode = apperror.New(
		apperror.CodeInvalidInput,
		"unknown payment mode",
		http.StatusBadRequest,
	)
)
