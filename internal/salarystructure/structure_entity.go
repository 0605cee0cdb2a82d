package salarystructure

import (
	"time"

	"github.com/google/uuid"
)

const (
	ComponentEarning   = "EARNING"
	ComponentDeduction = "DEDUCTION"

	BaseBasic = "BASIC"
	BaseGross = "GROSS"
)

// SalaryStructure: maksimal satu baris aktif per karyawan (unique employee_id).
// Menyimpan structure baru menggantikan yang lama secara atomik dan
// meng-update monthly_salary karyawan ke net salary terbaru.
type SalaryStructure struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	BasicSalary float64   `gorm:"not null"`

	// Nilai turunan; selalu dihitung ulang dari komponen, tidak pernah stale.
	GrossSalary     float64
	TotalDeductions float64
	NetSalary       float64

	Components []SalaryComponent `gorm:"foreignKey:StructureID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type SalaryComponent struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	StructureID uuid.UUID `gorm:"type:uuid;not null;index"`

	Name string `gorm:"type:varchar(100);not null"`
	Type string `gorm:"type:varchar(20);not null"` // EARNING / DEDUCTION

	Amount       float64 `gorm:"not null"`
	IsPercentage bool    `gorm:"not null;default:false"`
	// Hanya berarti kalau IsPercentage: persentase dihitung dari BASIC atau GROSS.
	CalculationBase string `gorm:"type:varchar(10);default:'BASIC'"`

	// Turunan dari Amount/IsPercentage/CalculationBase + basic/gross structure.
	CalculatedAmount float64

	Position  int `gorm:"not null;default:0"`
	CreatedAt time.Time
}

// SalaryTemplateItem adalah metadata advisory untuk UI (nama komponen default
// dan urutannya). Satu set global, tidak dipakai dalam perhitungan.
type SalaryTemplateItem struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name     string    `gorm:"type:varchar(100);not null"`
	Type     string    `gorm:"type:varchar(20);not null"`
	Position int       `gorm:"not null;default:0"`
}
