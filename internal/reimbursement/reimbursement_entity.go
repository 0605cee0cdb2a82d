package reimbursement

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
	StatusCleared  = "CLEARED"
)

// Reimbursement dibuat oleh karyawan, lalu dimiliki workflow approval admin.
// Lampiran bill opsional; kegagalan upload tidak membatalkan record.
type Reimbursement struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index"`

	Title       string  `gorm:"type:varchar(150);not null"`
	Category    string  `gorm:"type:varchar(100)"`
	Amount      float64 `gorm:"not null"`
	Description string  `gorm:"type:text"`
	ExpenseDate time.Time

	BillKey *string `gorm:"type:text"`
	BillURL *string `gorm:"type:text"`

	Status       string  `gorm:"type:varchar(20);not null;default:'PENDING'"`
	AdminRemarks *string `gorm:"type:text"`

	ProcessedBy *uuid.UUID `gorm:"type:uuid"`
	ProcessedAt *time.Time
	ClearedAt   *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
