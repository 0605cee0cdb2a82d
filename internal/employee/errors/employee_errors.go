package employeeerrors

import (
	"net/http"

	"go-hrm/internal/shared/apperror"
)

var (
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrEmailAlreadyUsed = apperror.New(
		apperror.CodeConflict,
		"email is already used by another employee",
		http.StatusConflict,
	)
	ErrEmptyPhoto = apperror.New(
		apperror.CodeInvalidInput,
		"photo file is required",
		http.StatusBadRequest,
	)
)
