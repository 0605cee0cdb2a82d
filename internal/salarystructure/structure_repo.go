package salarystructure

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=structure_repo.go -destination=mock/structure_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Upsert(ctx context.Context, s *SalaryStructure) error
	ReplaceComponents(ctx context.Context, structureID uuid.UUID, components []SalaryComponent) error
	FindByEmployeeID(ctx context.Context, employeeID string) (*SalaryStructure, error)
	ReplaceTemplate(ctx context.Context, items []SalaryTemplateItem) error
	FindTemplate(ctx context.Context) ([]SalaryTemplateItem, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

// conn mengikat session gorm ke transaksi aktif (kalau ada) supaya semua
// statement ikut commit/rollback transaksi milik service.
func (r *repository) conn(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.tx != nil {
		db.Statement.ConnPool = r.tx
	}
	return db
}

// Upsert atomik via ON CONFLICT, bukan delete-then-insert, supaya dua request
// bersamaan untuk karyawan yang sama tidak bisa menghasilkan dua baris.
// Returning mengisi kembali ID baris kanonik kalau baris lama yang menang.
func (r *repository) Upsert(ctx context.Context, s *SalaryStructure) error {
	return r.conn(ctx).
		Clauses(
			clause.OnConflict{
				Columns: []clause.Column{{Name: "employee_id"}},
				DoUpdates: clause.AssignmentColumns([]string{
					"basic_salary", "gross_salary", "total_deductions", "net_salary", "updated_at",
				}),
			},
			clause.Returning{},
		).
		Omit("Components").
		Create(s).Error
}

func (r *repository) ReplaceComponents(ctx context.Context, structureID uuid.UUID, components []SalaryComponent) error {
	if err := r.conn(ctx).
		Where("structure_id = ?", structureID).
		Delete(&SalaryComponent{}).Error; err != nil {
		return err
	}
	if len(components) == 0 {
		return nil
	}
	return r.conn(ctx).Create(&components).Error
}

func (r *repository) FindByEmployeeID(ctx context.Context, employeeID string) (*SalaryStructure, error) {
	var s SalaryStructure
	err := r.conn(ctx).
		Preload("Components", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&s, "employee_id = ?", employeeID).Error
	return &s, err
}

func (r *repository) ReplaceTemplate(ctx context.Context, items []SalaryTemplateItem) error {
	if err := r.conn(ctx).
		Where("1 = 1").
		Delete(&SalaryTemplateItem{}).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	return r.conn(ctx).Create(&items).Error
}

func (r *repository) FindTemplate(ctx context.Context) ([]SalaryTemplateItem, error) {
	var items []SalaryTemplateItem
	err := r.conn(ctx).
		Order("position ASC").
		Find(&items).Error
	return items, err
}
