package leave

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *Leave) error
	FindAll(ctx context.Context) ([]Leave, error)
	FindByID(ctx context.Context, id string) (*Leave, error)
	FindByEmployeeAndRange(ctx context.Context, employeeID string, start, end time.Time) ([]Leave, error)
	Update(ctx context.Context, l *Leave) error
	Delete(ctx context.Context, id string) error

	CreateCompOff(ctx context.Context, c *CompOff) error
	FindCompOffByID(ctx context.Context, id string) (*CompOff, error)
	FindCompOffByEmployee(ctx context.Context, employeeID string) ([]CompOff, error)
	UpdateCompOff(ctx context.Context, c *CompOff) error
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

func (r *repository) Create(ctx context.Context, l *Leave) error {
	return r.conn(ctx).Create(l).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Leave, error) {
	var leaves []Leave
	err := r.conn(ctx).
		Order("start_date DESC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Leave, error) {
	var l Leave
	err := r.conn(ctx).First(&l, "id = ?", id).Error
	return &l, err
}

func (r *repository) FindByEmployeeAndRange(
	ctx context.Context,
	employeeID string,
	start, end time.Time,
) ([]Leave, error) {
	var leaves []Leave
	err := r.conn(ctx).
		Where("employee_id = ?", employeeID).
		Where("start_date >= ? AND start_date <= ?", start, end).
		Order("start_date ASC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) Update(ctx context.Context, l *Leave) error {
	return r.conn(ctx).Save(l).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.conn(ctx).Delete(&Leave{}, "id = ?", id).Error
}

func (r *repository) CreateCompOff(ctx context.Context, c *CompOff) error {
	return r.conn(ctx).Create(c).Error
}

func (r *repository) FindCompOffByID(ctx context.Context, id string) (*CompOff, error) {
	var c CompOff
	err := r.conn(ctx).First(&c, "id = ?", id).Error
	return &c, err
}

func (r *repository) FindCompOffByEmployee(ctx context.Context, employeeID string) ([]CompOff, error) {
	var grants []CompOff
	err := r.conn(ctx).
		Where("employee_id = ?", employeeID).
		Order("work_date DESC").
		Find(&grants).Error
	return grants, err
}

func (r *repository) UpdateCompOff(ctx context.Context, c *CompOff) error {
	return r.conn(ctx).Save(c).Error
}
