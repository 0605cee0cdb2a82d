package payrollerrors

import (
	"net/http"

	"go-hrm/internal/shared/apperror"
)

var (
	ErrInvalidEmployeeID   = apperror.New("INVALID_INPUT", "ID karyawan tidak valid", http.StatusBadRequest)
	ErrInvalidMonth        = apperror.New("INVALID_INPUT", "Format bulan tidak valid, gunakan YYYY-MM", http.StatusBadRequest)
	ErrSalaryNotConfigured = apperror.New("UNCONFIGURED", "Gaji karyawan belum dikonfigurasi", http.StatusUnprocessableEntity)
	ErrNotOwner            = apperror.New("FORBIDDEN", "Slip gaji hanya bisa diakses pemiliknya", http.StatusForbidden)
)
