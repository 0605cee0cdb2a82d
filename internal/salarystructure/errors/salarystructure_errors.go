package salarystructureerrors

import (
	"net/http"

	"go-hrm/internal/shared/apperror"
)

var (
	ErrInvalidEmployeeID = apperror.New("INVALID_INPUT", "ID karyawan tidak valid", http.StatusBadRequest)
	ErrStructureNotFound = apperror.New("NOT_FOUND", "Salary structure tidak ditemukan", http.StatusNotFound)
	ErrInvalidComponent  = apperror.New("INVALID_INPUT", "Komponen salary tidak valid", http.StatusBadRequest)
)
