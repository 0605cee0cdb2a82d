package payroll_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"go-hrm/internal/employee"
	"go-hrm/internal/leave"
	kafka "go-hrm/internal/messaging/kafka"
	"go-hrm/internal/payroll"
	payrollerrors "go-hrm/internal/payroll/errors"
	"go-hrm/internal/salarystructure"
	"go-hrm/internal/shared/contextutil"
	"go-hrm/internal/storage"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeEmployeeRepository struct {
	findByIDFn    func(ctx context.Context, id string) (*employee.Employee, error)
	findByIDCalls int
}

func (f *fakeEmployeeRepository) WithTx(tx *sql.Tx) employee.Repository { return f }

func (f *fakeEmployeeRepository) Create(ctx context.Context, e *employee.Employee) error { return nil }

func (f *fakeEmployeeRepository) FindAll(ctx context.Context) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepository) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	f.findByIDCalls++
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEmployeeRepository) FindByEmail(ctx context.Context, email string) (*employee.Employee, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEmployeeRepository) Update(ctx context.Context, e *employee.Employee) error { return nil }

func (f *fakeEmployeeRepository) UpdateMonthlySalary(ctx context.Context, id string, monthlySalary float64) error {
	return nil
}

func (f *fakeEmployeeRepository) UpdatePhoto(ctx context.Context, id string, photoKey, photoURL *string) error {
	return nil
}

func (f *fakeEmployeeRepository) Delete(ctx context.Context, id string) error { return nil }

type fakeLeaveRepository struct {
	findByEmployeeAndRangeFn func(ctx context.Context, employeeID string, start, end time.Time) ([]leave.Leave, error)
}

func (f *fakeLeaveRepository) WithTx(tx *sql.Tx) leave.Repository { return f }

func (f *fakeLeaveRepository) Create(ctx context.Context, l *leave.Leave) error { return nil }

func (f *fakeLeaveRepository) FindAll(ctx context.Context) ([]leave.Leave, error) { return nil, nil }

func (f *fakeLeaveRepository) FindByID(ctx context.Context, id string) (*leave.Leave, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLeaveRepository) FindByEmployeeAndRange(ctx context.Context, employeeID string, start, end time.Time) ([]leave.Leave, error) {
	if f.findByEmployeeAndRangeFn != nil {
		return f.findByEmployeeAndRangeFn(ctx, employeeID, start, end)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) Update(ctx context.Context, l *leave.Leave) error { return nil }

func (f *fakeLeaveRepository) Delete(ctx context.Context, id string) error { return nil }

func (f *fakeLeaveRepository) CreateCompOff(ctx context.Context, c *leave.CompOff) error { return nil }

func (f *fakeLeaveRepository) FindCompOffByID(ctx context.Context, id string) (*leave.CompOff, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLeaveRepository) FindCompOffByEmployee(ctx context.Context, employeeID string) ([]leave.CompOff, error) {
	return nil, nil
}

func (f *fakeLeaveRepository) UpdateCompOff(ctx context.Context, c *leave.CompOff) error { return nil }

type fakeStructureRepository struct {
	findByEmployeeIDFn func(ctx context.Context, employeeID string) (*salarystructure.SalaryStructure, error)
}

func (f *fakeStructureRepository) WithTx(tx *sql.Tx) salarystructure.Repository { return f }

func (f *fakeStructureRepository) Upsert(ctx context.Context, s *salarystructure.SalaryStructure) error {
	return nil
}

func (f *fakeStructureRepository) ReplaceComponents(ctx context.Context, structureID uuid.UUID, components []salarystructure.SalaryComponent) error {
	return nil
}

func (f *fakeStructureRepository) FindByEmployeeID(ctx context.Context, employeeID string) (*salarystructure.SalaryStructure, error) {
	if f.findByEmployeeIDFn != nil {
		return f.findByEmployeeIDFn(ctx, employeeID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeStructureRepository) ReplaceTemplate(ctx context.Context, items []salarystructure.SalaryTemplateItem) error {
	return nil
}

func (f *fakeStructureRepository) FindTemplate(ctx context.Context) ([]salarystructure.SalaryTemplateItem, error) {
	return nil, nil
}

type fakeOutboxRepository struct {
	created []kafka.OutboxEvent
}

func (f *fakeOutboxRepository) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }

func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.created = append(f.created, event)
	return nil
}

func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error { return nil }

func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

type fakeObjectStorage struct {
	putFn func(ctx context.Context, data []byte, fileName, contentType, folder, ownerID string) (storage.StoredObject, error)
}

func (f *fakeObjectStorage) Put(ctx context.Context, data []byte, fileName, contentType, folder, ownerID string) (storage.StoredObject, error) {
	if f.putFn != nil {
		return f.putFn(ctx, data, fileName, contentType, folder, ownerID)
	}
	return storage.StoredObject{
		Key: folder + "/" + ownerID + "/" + fileName,
		URL: "https://cdn.example.com/" + fileName,
	}, nil
}

func (f *fakeObjectStorage) Delete(ctx context.Context, key string) error { return nil }

func (f *fakeObjectStorage) KeyFromURL(rawURL string) string { return rawURL }

type payrollDeps struct {
	db            *sql.DB
	sqlMock       sqlmock.Sqlmock
	redisMock     redismock.ClientMock
	service       payroll.Service
	employeeRepo  *fakeEmployeeRepository
	leaveRepo     *fakeLeaveRepository
	structureRepo *fakeStructureRepository
	outboxRepo    *fakeOutboxRepository
	objectStorage *fakeObjectStorage
}

func setupPayrollTest(t *testing.T) *payrollDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	rdb, redisMock := redismock.NewClientMock()

	employeeRepo := &fakeEmployeeRepository{}
	leaveRepo := &fakeLeaveRepository{}
	structureRepo := &fakeStructureRepository{}
	outboxRepo := &fakeOutboxRepository{}
	objectStorage := &fakeObjectStorage{}

	svc := payroll.NewService(db, employeeRepo, leaveRepo, structureRepo, outboxRepo, objectStorage, rdb)

	return &payrollDeps{
		db:            db,
		sqlMock:       sqlMock,
		redisMock:     redisMock,
		service:       svc,
		employeeRepo:  employeeRepo,
		leaveRepo:     leaveRepo,
		structureRepo: structureRepo,
		outboxRepo:    outboxRepo,
		objectStorage: objectStorage,
	}
}

func managerActor() contextutil.Actor {
	return contextutil.Actor{
		UserID:     uuid.New().String(),
		EmployeeID: uuid.New().String(),
		Email:      "manager@example.com",
		Role:       "manager",
	}
}

func TestPayrollService_GetMonthlySlip(t *testing.T) {
	ctx := context.Background()

	t.Run("cache miss computes and stores", func(t *testing.T) {
		deps := setupPayrollTest(t)
		defer deps.db.Close()

		employeeID := uuid.New().String()
		salary := 31000.0
		key := "payslip:" + employeeID + ":2026-02"

		deps.redisMock.ExpectGet(key).RedisNil()
		deps.redisMock.Regexp().ExpectSet(key, `.*`, 10*time.Minute).SetVal("OK")

		deps.employeeRepo.findByIDFn = func(ctx context.Context, id string) (*employee.Employee, error) {
			return &employee.Employee{
				ID:            uuid.MustParse(id),
				FullName:      "Budi",
				Email:         "budi@example.com",
				MonthlySalary: &salary,
			}, nil
		}
		deps.leaveRepo.findByEmployeeAndRangeFn = func(ctx context.Context, eid string, start, end time.Time) ([]leave.Leave, error) {
			return []leave.Leave{
				{
					ID:         uuid.New(),
					EmployeeID: uuid.MustParse(eid),
					LeaveType:  leave.UnpaidLeaveType,
					Status:     leave.StatusApproved,
					StartDate:  time.Date(2026, 2, 5, 0, 0, 0, 0, time.UTC),
					DaysCount:  2,
				},
			}, nil
		}

		resp, err := deps.service.GetMonthlySlip(ctx, managerActor(), employeeID, "2026-02")

		assert.NoError(t, err)
		assert.Equal(t, payroll.ModeFlat, resp.Mode)
		assert.Equal(t, 28, resp.Slip.TotalDays)
		assert.Equal(t, 26.0, resp.Slip.PayableDays)
		assert.InDelta(t, 28785.71, resp.Slip.NetSalary, 0.01)
		assert.NoError(t, deps.redisMock.ExpectationsWereMet())
	})

	t.Run("cache hit skips recompute", func(t *testing.T) {
		deps := setupPayrollTest(t)
		defer deps.db.Close()

		employeeID := uuid.New().String()
		key := "payslip:" + employeeID + ":2026-02"

		cached := payroll.SlipResponse{
			EmployeeID: employeeID,
			Month:      "2026-02",
			Mode:       payroll.ModeFlat,
			Slip:       payroll.SlipData{EmployeeName: "Budi", NetSalary: 28785.71},
		}
		payload, err := json.Marshal(cached)
		assert.NoError(t, err)

		deps.redisMock.ExpectGet(key).SetVal(string(payload))

		resp, err := deps.service.GetMonthlySlip(ctx, managerActor(), employeeID, "2026-02")

		assert.NoError(t, err)
		assert.Equal(t, "Budi", resp.Slip.EmployeeName)
		assert.Zero(t, deps.employeeRepo.findByIDCalls)
		assert.NoError(t, deps.redisMock.ExpectationsWereMet())
	})

	t.Run("negative salary not configured", func(t *testing.T) {
		deps := setupPayrollTest(t)
		defer deps.db.Close()

		employeeID := uuid.New().String()
		key := "payslip:" + employeeID + ":2026-02"

		deps.redisMock.ExpectGet(key).RedisNil()

		deps.employeeRepo.findByIDFn = func(ctx context.Context, id string) (*employee.Employee, error) {
			return &employee.Employee{ID: uuid.MustParse(id), FullName: "Budi"}, nil
		}

		_, err := deps.service.GetMonthlySlip(ctx, managerActor(), employeeID, "2026-02")

		assert.ErrorIs(t, err, payrollerrors.ErrSalaryNotConfigured)
	})

	t.Run("negative employee reads someone else's slip", func(t *testing.T) {
		deps := setupPayrollTest(t)
		defer deps.db.Close()

		actor := contextutil.Actor{
			UserID:     uuid.New().String(),
			EmployeeID: uuid.New().String(),
			Role:       "employee",
		}

		_, err := deps.service.GetMonthlySlip(ctx, actor, uuid.New().String(), "2026-02")

		assert.ErrorIs(t, err, payrollerrors.ErrNotOwner)
	})

	t.Run("negative invalid month", func(t *testing.T) {
		deps := setupPayrollTest(t)
		defer deps.db.Close()

		_, err := deps.service.GetMonthlySlip(ctx, managerActor(), uuid.New().String(), "Feb 2026")

		assert.ErrorIs(t, err, payrollerrors.ErrInvalidMonth)
	})
}

func TestPayrollService_GenerateDetailedSlip(t *testing.T) {
	ctx := context.Background()

	structureFor := func(employeeID string) *salarystructure.SalaryStructure {
		return &salarystructure.SalaryStructure{
			ID:          uuid.New(),
			EmployeeID:  uuid.MustParse(employeeID),
			BasicSalary: 1000,
			Components: []salarystructure.SalaryComponent{
				{Name: "Allowance", Type: salarystructure.ComponentEarning, Amount: 500},
				{
					Name:            "Tax",
					Type:            salarystructure.ComponentDeduction,
					Amount:          10,
					IsPercentage:    true,
					CalculationBase: salarystructure.BaseGross,
				},
			},
		}
	}

	withEmployee := func(deps *payrollDeps) {
		deps.employeeRepo.findByIDFn = func(ctx context.Context, id string) (*employee.Employee, error) {
			return &employee.Employee{
				ID:       uuid.MustParse(id),
				FullName: "Budi",
				Email:    "budi@example.com",
			}, nil
		}
	}

	t.Run("success uploads pdf", func(t *testing.T) {
		deps := setupPayrollTest(t)
		defer deps.db.Close()

		employeeID := uuid.New().String()
		withEmployee(deps)
		deps.structureRepo.findByEmployeeIDFn = func(ctx context.Context, id string) (*salarystructure.SalaryStructure, error) {
			return structureFor(employeeID), nil
		}

		resp, err := deps.service.GenerateDetailedSlip(ctx, managerActor(), payroll.GenerateSlipRequest{
			EmployeeID: employeeID,
			Month:      "2026-03",
		})

		assert.NoError(t, err)
		assert.Equal(t, payroll.ModeStructured, resp.Mode)
		assert.Equal(t, 1500.0, resp.Slip.GrossSalary)
		assert.Equal(t, 150.0, resp.Slip.TotalDeductions)
		assert.Equal(t, 1350.0, resp.Slip.NetSalary)
		assert.NotNil(t, resp.PDFURL)
	})

	t.Run("pdf upload failure keeps slip", func(t *testing.T) {
		deps := setupPayrollTest(t)
		defer deps.db.Close()

		employeeID := uuid.New().String()
		withEmployee(deps)
		deps.structureRepo.findByEmployeeIDFn = func(ctx context.Context, id string) (*salarystructure.SalaryStructure, error) {
			return structureFor(employeeID), nil
		}
		deps.objectStorage.putFn = func(ctx context.Context, data []byte, fileName, contentType, folder, ownerID string) (storage.StoredObject, error) {
			return storage.StoredObject{}, assert.AnError
		}

		resp, err := deps.service.GenerateDetailedSlip(ctx, managerActor(), payroll.GenerateSlipRequest{
			EmployeeID: employeeID,
			Month:      "2026-03",
		})

		assert.NoError(t, err)
		assert.Nil(t, resp.PDFURL)
	})

	t.Run("send email enqueues outbox event", func(t *testing.T) {
		deps := setupPayrollTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		employeeID := uuid.New().String()
		withEmployee(deps)
		deps.structureRepo.findByEmployeeIDFn = func(ctx context.Context, id string) (*salarystructure.SalaryStructure, error) {
			return structureFor(employeeID), nil
		}

		_, err := deps.service.GenerateDetailedSlip(ctx, managerActor(), payroll.GenerateSlipRequest{
			EmployeeID: employeeID,
			Month:      "2026-03",
			SendEmail:  true,
		})

		assert.NoError(t, err)
		assert.Len(t, deps.outboxRepo.created, 1)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative no structure configured", func(t *testing.T) {
		deps := setupPayrollTest(t)
		defer deps.db.Close()

		withEmployee(deps)
		deps.structureRepo.findByEmployeeIDFn = nil

		_, err := deps.service.GenerateDetailedSlip(ctx, managerActor(), payroll.GenerateSlipRequest{
			EmployeeID: uuid.New().String(),
			Month:      "2026-03",
		})

		assert.ErrorIs(t, err, payrollerrors.ErrSalaryNotConfigured)
	})

	t.Run("manual leave reduces payable days", func(t *testing.T) {
		deps := setupPayrollTest(t)
		defer deps.db.Close()

		employeeID := uuid.New().String()
		withEmployee(deps)
		deps.structureRepo.findByEmployeeIDFn = func(ctx context.Context, id string) (*salarystructure.SalaryStructure, error) {
			return structureFor(employeeID), nil
		}

		resp, err := deps.service.GenerateDetailedSlip(ctx, managerActor(), payroll.GenerateSlipRequest{
			EmployeeID: employeeID,
			Month:      "2026-04",
			ManualLeave: &payroll.ManualLeaveDeduction{
				UnpaidFullDays: 1,
				UnpaidHalfDays: 1,
				Total:          75,
			},
		})

		assert.NoError(t, err)
		assert.Equal(t, 28.5, resp.Slip.PayableDays)
		assert.Equal(t, 225.0, resp.Slip.TotalDeductions)
	})
}
