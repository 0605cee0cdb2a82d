package auth

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	EmployeeID *uuid.UUID `gorm:"type:uuid;uniqueIndex"`

	Email    string `gorm:"uniqueIndex;not null"`
	Name     string `gorm:"type:varchar(150);not null"`
	Password string `gorm:"not null"`
	Role     string `gorm:"type:varchar(20);not null;default:'employee'"`
	IsActive bool   `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PasswordResetToken: maksimal satu token unused yang belum kedaluwarsa per
// email. Request baru menandai semua token unused lama sebagai used dulu.
// Kedaluwarsa dicek saat validasi/pakai, tidak ada sweep berkala.
type PasswordResetToken struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Token string    `gorm:"uniqueIndex;not null"`
	Email string    `gorm:"index;not null"`
	Used  bool      `gorm:"not null;default:false"`

	CreatedAt time.Time
	ExpiresAt time.Time
}
