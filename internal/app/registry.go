package app

import (
	"database/sql"

	"go-hrm/internal/auth"
	"go-hrm/internal/employee"
	"go-hrm/internal/leave"
	"go-hrm/internal/messaging/kafka"
	"go-hrm/internal/middleware"
	"go-hrm/internal/payroll"
	"go-hrm/internal/rbac"
	"go-hrm/internal/reimbursement"
	"go-hrm/internal/salarystructure"
	"go-hrm/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	objectStorage storage.ObjectStorage,
) error {
	// --- Repositories ---
	authRepo := auth.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	structureRepo := salarystructure.NewRepository(gormDB)
	reimbursementRepo := reimbursement.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC ---
	enforcer, err := rbac.NewEnforcer()
	if err != nil {
		return err
	}

	// --- Services ---
	authService := auth.NewService(db, authRepo, employeeRepo, outboxRepo)
	employeeService := employee.NewService(db, employeeRepo, objectStorage)
	leaveService := leave.NewService(db, leaveRepo)
	structureService := salarystructure.NewService(db, structureRepo, employeeRepo)
	payrollService := payroll.NewService(db, employeeRepo, leaveRepo, structureRepo, outboxRepo, objectStorage, rdb)
	reimbursementService := reimbursement.NewService(db, reimbursementRepo, employeeRepo, outboxRepo, objectStorage)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	employeeHandler := employee.NewHandler(employeeService)
	leaveHandler := leave.NewHandler(leaveService)
	structureHandler := salarystructure.NewHandler(structureService)
	payrollHandler := payroll.NewHandler(payrollService)
	reimbursementHandler := reimbursement.NewHandler(reimbursementService)

	// --- Middleware global ---
	router.Use(middleware.RequestID())
	router.Use(middleware.ContextLogger(zap.L()))

	// --- Routes ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		employee.RegisterRoutes(api, employeeHandler, enforcer)
		leave.RegisterRoutes(api, leaveHandler, enforcer)
		salarystructure.RegisterRoutes(api, structureHandler, enforcer)
		payroll.RegisterRoutes(api, payrollHandler, enforcer, rdb)
		reimbursement.RegisterRoutes(api, reimbursementHandler, enforcer)
	}

	return nil
}
