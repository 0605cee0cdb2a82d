package leave

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Leave struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_leaves_employee_start"`

	// Tipe cuti bebas (string); hanya "Unpaid Leave" yang berdampak ke payroll.
	LeaveType string    `gorm:"type:varchar(50);not null"`
	StartDate time.Time `gorm:"type:date;not null;index:idx_leaves_employee_start"`
	DaysCount float64   `gorm:"not null;default:1"`
	Reason    string    `gorm:"type:text"`

	Status          string     `gorm:"type:varchar(20);not null;default:'PENDING'"`
	CreatedBy       uuid.UUID  `gorm:"type:uuid;not null"`
	ApprovedBy      *uuid.UUID `gorm:"type:uuid"`
	RejectionReason *string    `gorm:"type:text"`

	CreatedAt  time.Time
	UpdatedAt  time.Time
	ApprovedAt *time.Time
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}

// CompOff adalah hak cuti pengganti atas kerja ekstra.
// Berlaku 90 hari sejak diberikan; used tidak boleh melebihi days.
type CompOff struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index"`
	Days       float64   `gorm:"not null"`
	Used       float64   `gorm:"not null;default:0"`
	WorkDate   time.Time `gorm:"type:date;not null"`
	ExpiryDate time.Time `gorm:"type:date;not null"`
	GrantedBy  uuid.UUID `gorm:"type:uuid;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
