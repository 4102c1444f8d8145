package apperror

const (
	// Client errors (4xx)
	CodeInvalidInput = "INVALID_INPUT"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeInvalidState = "INVALID_STATE"

	// Business-rule rejections specific to the attendance/payroll core.
	CodeLocked              = "ATTENDANCE_LOCKED"
	CodePastDateForbidden   = "PAST_DATE_FORBIDDEN"
	CodeInsufficientBalance = "INSUFFICIENT_LEAVE_BALANCE"
	CodeNoData              = "NO_ATTENDANCE_DATA"
	CodeImmutableRecord     = "PAYROLL_IMMUTABLE"

	// Server errors (5xx)
	CodeInternalError      = "INTERNAL_ERROR"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)
