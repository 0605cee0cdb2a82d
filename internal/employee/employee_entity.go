package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Employee struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName    string    `gorm:"type:varchar(150);not null"`
	Email       string    `gorm:"uniqueIndex;not null"`
	Department  string    `gorm:"type:varchar(100)"`
	Designation string    `gorm:"type:varchar(100)"`

	// Gaji bulanan berjalan. Nil = belum dikonfigurasi.
	// Di-update otomatis setiap salary structure disimpan (net salary baru).
	MonthlySalary *float64

	PhotoKey *string `gorm:"type:text"`
	PhotoURL *string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
