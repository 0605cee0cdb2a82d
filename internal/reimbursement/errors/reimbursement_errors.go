package reimbursementerrors

import (
	"net/http"

	"go-hrm/internal/shared/apperror"
)

var (
	ErrInvalidID       = apperror.New("INVALID_INPUT", "ID reimbursement tidak valid", http.StatusBadRequest)
	ErrNotFound        = apperror.New("NOT_FOUND", "Reimbursement tidak ditemukan", http.StatusNotFound)
	ErrNotOwner        = apperror.New("FORBIDDEN", "Reimbursement hanya bisa diakses pemiliknya", http.StatusForbidden)
	ErrInvalidDate     = apperror.New("INVALID_INPUT", "Format tanggal tidak valid, gunakan YYYY-MM-DD", http.StatusBadRequest)
	ErrRemarksRequired = apperror.New("INVALID_INPUT", "Remarks wajib diisi saat menolak reimbursement", http.StatusBadRequest)

	ErrNotPending       = apperror.New("INVALID_STATE", "Reimbursement hanya bisa diproses saat status PENDING", http.StatusConflict)
	ErrNotApproved      = apperror.New("INVALID_STATE", "Reimbursement hanya bisa dicairkan saat status APPROVED", http.StatusConflict)
	ErrDeleteNotAllowed = apperror.New("INVALID_STATE", "Reimbursement yang sudah diproses hanya bisa dihapus admin", http.StatusConflict)
)
