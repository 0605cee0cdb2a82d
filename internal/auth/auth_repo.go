package auth

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=auth_repo.go -destination=mock/auth_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, u *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	UpdatePassword(ctx context.Context, userID, passwordHash string) error

	CreateResetToken(ctx context.Context, t *PasswordResetToken) error
	FindResetToken(ctx context.Context, token string) (*PasswordResetToken, error)
	InvalidateResetTokens(ctx context.Context, email string) error
	MarkResetTokenUsed(ctx context.Context, id string) error
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

func (r *repository) Create(ctx context.Context, u *User) error {
	return r.conn(ctx).Create(u).Error
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := r.conn(ctx).First(&u, "email = ?", email).Error
	return &u, err
}

func (r *repository) GetByID(ctx context.Context, id string) (*User, error) {
	var u User
	err := r.conn(ctx).First(&u, "id = ?", id).Error
	return &u, err
}

func (r *repository) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	return r.conn(ctx).
		Model(&User{}).
		Where("id = ?", userID).
		Update("password", passwordHash).Error
}

func (r *repository) CreateResetToken(ctx context.Context, t *PasswordResetToken) error {
	return r.conn(ctx).Create(t).Error
}

func (r *repository) FindResetToken(ctx context.Context, token string) (*PasswordResetToken, error) {
	var t PasswordResetToken
	err := r.conn(ctx).First(&t, "token = ?", token).Error
	return &t, err
}

// InvalidateResetTokens menandai semua token unused milik email sebagai used.
// Dipanggil sebelum token baru dibuat.
func (r *repository) InvalidateResetTokens(ctx context.Context, email string) error {
	return r.conn(ctx).
		Model(&PasswordResetToken{}).
		Where("email = ? AND used = false", email).
		Update("used", true).Error
}

func (r *repository) MarkResetTokenUsed(ctx context.Context, id string) error {
	return r.conn(ctx).
		Model(&PasswordResetToken{}).
		Where("id = ?", id).
		Update("used", true).Error
}
