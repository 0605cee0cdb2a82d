package reimbursement

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=reimbursement_repo.go -destination=mock/reimbursement_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, r *Reimbursement) error
	FindAll(ctx context.Context) ([]Reimbursement, error)
	FindByEmployee(ctx context.Context, employeeID string) ([]Reimbursement, error)
	FindByID(ctx context.Context, id string) (*Reimbursement, error)
	Update(ctx context.Context, r *Reimbursement) error
	Delete(ctx context.Context, id string) error
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

func (r *repository) Create(ctx context.Context, reimb *Reimbursement) error {
	return r.conn(ctx).Create(reimb).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Reimbursement, error) {
	var rows []Reimbursement
	err := r.conn(ctx).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string) ([]Reimbursement, error) {
	var rows []Reimbursement
	err := r.conn(ctx).
		Where("employee_id = ?", employeeID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Reimbursement, error) {
	var row Reimbursement
	err := r.conn(ctx).First(&row, "id = ?", id).Error
	return &row, err
}

func (r *repository) Update(ctx context.Context, reimb *Reimbursement) error {
	return r.conn(ctx).Save(reimb).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.conn(ctx).Delete(&Reimbursement{}, "id = ?", id).Error
}
