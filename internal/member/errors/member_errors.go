package membererrors

import (
	"fmt"
	"net/http"

	"organizerpro/internal/shared/apperror"
)

var (
	ErrMemberNotFound = apperror.New(
		apperror.CodeNotFound,
		"member not found",
		http.StatusNotFound,
	)
	ErrUnknownLeaveType = apperror.New(
		apperror.CodeInvalidInput,
		"unknown leave type, expected CL, SL or EL",
		http.StatusBadRequest,
	)
)

// InsufficientBalance names the exhausted leave type in the message.
func InsufficientBalance(leaveType string) *apperror.AppError {
	return apperror.New(
		apperror.CodeInsufficientBalance,
		fmt.Sprintf("%s balance is exhausted", leaveType),
		http.StatusUnprocessableEntity,
	)
}
