package app

import (
	"os"
	"strconv"

	"go-hrm/internal/auth"
	"go-hrm/internal/employee"
	"go-hrm/internal/leave"
	"go-hrm/internal/reimbursement"
	"go-hrm/internal/salarystructure"
	"go-hrm/internal/shared/connection"
	"go-hrm/internal/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// BuildApp merangkai infrastruktur dan seluruh modul HTTP.
func BuildApp(router *gin.Engine) error {
	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}

	if err := migrate(gormDB); err != nil {
		return err
	}

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}

	objectStorage, err := storage.NewS3ObjectStorage(storageConfigFromEnv(), zap.L())
	if err != nil {
		return err
	}

	return registerModules(router, sqlDB, gormDB, redisClient, objectStorage)
}

func storageConfigFromEnv() storage.Config {
	useSSL, _ := strconv.ParseBool(os.Getenv("STORAGE_USE_SSL"))
	return storage.Config{
		Endpoint:  os.Getenv("STORAGE_ENDPOINT"),
		Region:    os.Getenv("STORAGE_REGION"),
		Bucket:    os.Getenv("STORAGE_BUCKET"),
		AccessKey: os.Getenv("STORAGE_ACCESS_KEY"),
		SecretKey: os.Getenv("STORAGE_SECRET_KEY"),
		UseSSL:    useSSL,
		PublicURL: os.Getenv("STORAGE_PUBLIC_URL"),
	}
}

func migrate(gormDB *gorm.DB) error {
	if err := gormDB.AutoMigrate(
		&auth.User{},
		&auth.PasswordResetToken{},
		&employee.Employee{},
		&leave.Leave{},
		&leave.CompOff{},
		&salarystructure.SalaryStructure{},
		&salarystructure.SalaryComponent{},
		&salarystructure.SalaryTemplateItem{},
		&reimbursement.Reimbursement{},
	); err != nil {
		return err
	}

	// Tabel outbox diakses lewat database/sql, bukan gorm.
	return gormDB.Exec(`
CREATE TABLE IF NOT EXISTS outbox_events (
    id UUID PRIMARY KEY,
    request_id TEXT,
    aggregate_type TEXT NOT NULL,
    aggregate_id TEXT NOT NULL,
    event_type TEXT NOT NULL,
    topic TEXT NOT NULL,
    payload JSONB NOT NULL,
    status TEXT NOT NULL DEFAULT 'pending',
    retry_count INT NOT NULL DEFAULT 0,
    error_message TEXT,
    next_retry_at TIMESTAMPTZ,
    processed_at TIMESTAMPTZ,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`).Error
}
