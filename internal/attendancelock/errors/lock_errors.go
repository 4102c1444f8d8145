package lockerrors

import (
	"net/http"

	"organizerpro/internal/shared/apperror"
)

var (
	ErrInvalidScopeKey = apperror.New(
		apperror.CodeInvalidInput,
		"scope key does not match the sector's lock granularity",
		http.StatusBadRequest,
	)
	ErrNotLocked = apperror.New(
		apperror.CodeInvalidState,
		"this period is not locked",
		http.StatusConflict,
	)
	ErrUnlockReasonRequired = apperror.New(
		apperror.CodeInvalidInput,
		"an unlock reason is required",
		http.StatusBadRequest,
	)
)
