package payroll

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-hrm/internal/employee"
	"go-hrm/internal/events"
	"go-hrm/internal/leave"
	kafka "go-hrm/internal/messaging/kafka"
	payrollerrors "go-hrm/internal/payroll/errors"
	"go-hrm/internal/salarystructure"
	"go-hrm/internal/shared/contextutil"
	"go-hrm/internal/storage"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const slipCacheTTL = 10 * time.Minute

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type Service interface {
	GetMonthlySlip(ctx context.Context, actor contextutil.Actor, employeeID, month string) (SlipResponse, error)
	GenerateDetailedSlip(ctx context.Context, actor contextutil.Actor, req GenerateSlipRequest) (SlipResponse, error)
}

type service struct {
	db            *sql.DB
	employeeRepo  employee.Repository
	leaveRepo     leave.Repository
	structureRepo salarystructure.Repository
	outboxRepo    kafka.OutboxRepository
	storage       storage.ObjectStorage
	cache         *redis.Client
	group         singleflight.Group
	logger        *zap.Logger
}

func NewService(
	db *sql.DB,
	employeeRepo employee.Repository,
	leaveRepo leave.Repository,
	structureRepo salarystructure.Repository,
	outboxRepo kafka.OutboxRepository,
	objectStorage storage.ObjectStorage,
	cache *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	return &service{
		db:            db,
		employeeRepo:  employeeRepo,
		leaveRepo:     leaveRepo,
		structureRepo: structureRepo,
		outboxRepo:    outboxRepo,
		storage:       objectStorage,
		cache:         cache,
		logger:        l,
	}
}

func slipCacheKey(employeeID, month string) string {
	return fmt.Sprintf("payslip:%s:%s", employeeID, month)
}

// GetMonthlySlip menghitung slip flat bulanan dari monthly_salary dan
// agregasi unpaid leave. Hasil di-cache di redis; singleflight mencegah
// cache stampede saat banyak request bulan yang sama datang bersamaan.
func (s *service) GetMonthlySlip(
	ctx context.Context,
	actor contextutil.Actor,
	employeeID, month string,
) (SlipResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return SlipResponse{}, payrollerrors.ErrInvalidEmployeeID
	}
	year, monthNum, err := leave.ParseMonth(month)
	if err != nil {
		return SlipResponse{}, payrollerrors.ErrInvalidMonth
	}
	if !actor.IsManager() && actor.EmployeeID != employeeID {
		return SlipResponse{}, payrollerrors.ErrNotOwner
	}

	key := slipCacheKey(employeeID, month)
	if cached, err := s.cache.Get(ctx, key).Bytes(); err == nil {
		var resp SlipResponse
		if err := json.Unmarshal(cached, &resp); err == nil {
			return resp, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		s.logger.Warn("payslip cache read failed", zap.String("key", key), zap.Error(err))
	}

	v, err, _ := s.group.Do(key, func() (any, error) {
		resp, err := s.computeMonthlySlip(ctx, employeeID, month, year, monthNum)
		if err != nil {
			return SlipResponse{}, err
		}

		if payload, err := json.Marshal(resp); err == nil {
			if err := s.cache.Set(ctx, key, payload, slipCacheTTL).Err(); err != nil {
				s.logger.Warn("payslip cache write failed", zap.String("key", key), zap.Error(err))
			}
		}
		return resp, nil
	})
	if err != nil {
		return SlipResponse{}, err
	}

	return v.(SlipResponse), nil
}

func (s *service) computeMonthlySlip(
	ctx context.Context,
	employeeID, month string,
	year, monthNum int,
) (SlipResponse, error) {
	emp, err := s.employeeRepo.FindByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SlipResponse{}, payrollerrors.ErrInvalidEmployeeID
		}
		return SlipResponse{}, err
	}
	if emp.MonthlySalary == nil {
		return SlipResponse{}, payrollerrors.ErrSalaryNotConfigured
	}

	start, end := leave.MonthWindow(year, monthNum)
	leaves, err := s.leaveRepo.FindByEmployeeAndRange(ctx, employeeID, start, end)
	if err != nil {
		return SlipResponse{}, err
	}
	summary := leave.Summarize(leaves, year, monthNum)

	calc := CalculateFlat(*emp.MonthlySalary, year, monthNum, summary.UnpaidDays)

	slip := SlipData{
		EmployeeName:    emp.FullName,
		EmployeeEmail:   emp.Email,
		Department:      emp.Department,
		Designation:     emp.Designation,
		Period:          start.Format("January 2006"),
		TotalDays:       calc.TotalDays,
		PayableDays:     calc.PayableDays,
		UnpaidDays:      calc.UnpaidDays,
		PerDaySalary:    calc.PerDaySalary,
		UnpaidDeduction: calc.UnpaidDeduction,
		Earnings:        []LineItem{{Name: "Monthly Salary", Amount: calc.GrossSalary}},
		GrossSalary:     calc.GrossSalary,
		TotalDeductions: calc.UnpaidDeduction,
		NetSalary:       calc.NetSalary,
	}
	if calc.UnpaidDeduction > 0 {
		slip.Deductions = []LineItem{{Name: "Unpaid Leave", Amount: calc.UnpaidDeduction}}
	}

	return SlipResponse{
		EmployeeID: employeeID,
		Month:      month,
		Mode:       ModeFlat,
		Slip:       slip,
	}, nil
}

// GenerateDetailedSlip membangun slip komponen lengkap dari salary structure.
// PDF diupload best-effort; kegagalan upload tidak menggagalkan slip.
// Email payslip masuk lewat outbox dalam transaksi sendiri.
func (s *service) GenerateDetailedSlip(
	ctx context.Context,
	actor contextutil.Actor,
	req GenerateSlipRequest,
) (SlipResponse, error) {
	if _, err := uuid.Parse(req.EmployeeID); err != nil {
		return SlipResponse{}, payrollerrors.ErrInvalidEmployeeID
	}
	year, monthNum, err := leave.ParseMonth(req.Month)
	if err != nil {
		return SlipResponse{}, payrollerrors.ErrInvalidMonth
	}

	emp, err := s.employeeRepo.FindByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SlipResponse{}, payrollerrors.ErrInvalidEmployeeID
		}
		return SlipResponse{}, err
	}

	structure, err := s.structureRepo.FindByEmployeeID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SlipResponse{}, payrollerrors.ErrSalaryNotConfigured
		}
		return SlipResponse{}, err
	}

	calc := CalculateStructured(structure.BasicSalary, structure.Components, year, monthNum, req.ManualLeave)

	start, _ := leave.MonthWindow(year, monthNum)
	slip := SlipData{
		EmployeeName:    emp.FullName,
		EmployeeEmail:   emp.Email,
		Department:      emp.Department,
		Designation:     emp.Designation,
		Period:          start.Format("January 2006"),
		TotalDays:       calc.TotalDays,
		PayableDays:     calc.PayableDays,
		Earnings:        calc.Earnings,
		Deductions:      calc.Deductions,
		GrossSalary:     calc.GrossSalary,
		TotalDeductions: calc.TotalDeductions,
		NetSalary:       calc.NetSalary,
	}
	if req.ManualLeave != nil {
		slip.UnpaidDays = req.ManualLeave.UnpaidFullDays + req.ManualLeave.UnpaidHalfDays*0.5
		slip.UnpaidDeduction = req.ManualLeave.Total
		slip.PerDaySalary = req.ManualLeave.PerFullDayDeduction
	}

	resp := SlipResponse{
		EmployeeID: req.EmployeeID,
		Month:      req.Month,
		Mode:       ModeStructured,
		Slip:       slip,
	}

	if pdf, err := buildSlipPDF(slip); err != nil {
		s.logger.Warn("payslip pdf build failed",
			zap.String("employee_id", req.EmployeeID),
			zap.String("month", req.Month),
			zap.Error(err),
		)
	} else {
		fileName := fmt.Sprintf("payslip-%s.pdf", req.Month)
		stored, err := s.storage.Put(ctx, pdf, fileName, "application/pdf", "payslips", req.EmployeeID)
		if err != nil {
			s.logger.Warn("payslip pdf upload failed",
				zap.String("employee_id", req.EmployeeID),
				zap.String("month", req.Month),
				zap.Error(err),
			)
		} else {
			resp.PDFURL = &stored.URL
		}
	}

	if req.SendEmail {
		if err := s.enqueuePayslipEmail(ctx, emp.Email, slip, req); err != nil {
			return SlipResponse{}, err
		}
	}

	s.logger.Info("detailed payslip generated",
		zap.String("employee_id", req.EmployeeID),
		zap.String("month", req.Month),
		zap.String("actor_id", actor.UserID),
		zap.Bool("email_enqueued", req.SendEmail),
	)

	return resp, nil
}

func (s *service) enqueuePayslipEmail(ctx context.Context, to string, slip SlipData, req GenerateSlipRequest) error {
	htmlBody, err := RenderSlipHTML(slip)
	if err != nil {
		return err
	}

	event, err := kafka.NewEmailOutboxEvent(
		contextutil.GetRequestID(ctx),
		"payslip",
		req.EmployeeID,
		events.EmailRequestedEvent{
			EventType:  events.EmailRequestedTopic,
			Kind:       events.EmailKindPayslip,
			To:         to,
			Subject:    fmt.Sprintf("Salary Slip - %s", slip.Period),
			HTMLBody:   htmlBody,
			OccurredAt: time.Now().UTC(),
		},
	)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.outboxRepo.WithTx(tx).Create(ctx, event); err != nil {
		return err
	}

	return tx.Commit()
}
