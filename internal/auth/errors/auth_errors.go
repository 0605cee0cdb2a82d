package autherrors

import (
	"net/http"

	"go-hrm/internal/shared/apperror"
)

var (
	ErrInvalidCredentials    = apperror.New("UNAUTHORIZED", "Email atau password salah", http.StatusUnauthorized)
	ErrInvalidToken          = apperror.New("UNAUTHORIZED", "Token tidak valid", http.StatusUnauthorized)
	ErrInvalidRefreshToken   = apperror.New("UNAUTHORIZED", "Refresh token tidak valid", http.StatusUnauthorized)
	ErrTokenExpired          = apperror.New("UNAUTHORIZED", "Token sudah kedaluwarsa", http.StatusUnauthorized)
	ErrInvalidUserID         = apperror.New("INVALID_INPUT", "ID user tidak valid", http.StatusBadRequest)
	ErrUserNotFound          = apperror.New("NOT_FOUND", "User tidak ditemukan", http.StatusNotFound)
	ErrTokenGenerationFailed = apperror.New("INTERNAL_ERROR", "Gagal membuat token", http.StatusInternalServerError)
	ErrEmailAlreadyUsed      = apperror.New("CONFLICT", "Email sudah terdaftar", http.StatusConflict)
	ErrForbidden             = apperror.New("FORBIDDEN", "Akses ditolak", http.StatusForbidden)

	// Token reset expired dan sudah-terpakai sengaja dibedakan kodenya
	// supaya UI bisa menjelaskan ke user mana yang terjadi.
	ErrResetTokenNotFound = apperror.New("INVALID_INPUT", "Token reset tidak dikenal", http.StatusBadRequest)
	ErrResetTokenExpired  = apperror.New("TOKEN_EXPIRED", "Token reset sudah kedaluwarsa", http.StatusBadRequest)
	ErrResetTokenUsed     = apperror.New("TOKEN_USED", "Token reset sudah dipakai", http.StatusBadRequest)
)
