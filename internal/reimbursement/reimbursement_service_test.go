package reimbursement_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"go-hrm/internal/employee"
	kafka "go-hrm/internal/messaging/kafka"
	"go-hrm/internal/reimbursement"
	reimbursementerrors "go-hrm/internal/reimbursement/errors"
	"go-hrm/internal/shared/contextutil"
	"go-hrm/internal/storage"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeReimbursementRepository struct {
	withTxFn         func(tx *sql.Tx) reimbursement.Repository
	createFn         func(ctx context.Context, r *reimbursement.Reimbursement) error
	findAllFn        func(ctx context.Context) ([]reimbursement.Reimbursement, error)
	findByEmployeeFn func(ctx context.Context, employeeID string) ([]reimbursement.Reimbursement, error)
	findByIDFn       func(ctx context.Context, id string) (*reimbursement.Reimbursement, error)
	updateFn         func(ctx context.Context, r *reimbursement.Reimbursement) error
	deleteFn         func(ctx context.Context, id string) error
}

func (f *fakeReimbursementRepository) WithTx(tx *sql.Tx) reimbursement.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeReimbursementRepository) Create(ctx context.Context, r *reimbursement.Reimbursement) error {
	if f.createFn != nil {
		return f.createFn(ctx, r)
	}
	return nil
}

func (f *fakeReimbursementRepository) FindAll(ctx context.Context) ([]reimbursement.Reimbursement, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeReimbursementRepository) FindByEmployee(ctx context.Context, employeeID string) ([]reimbursement.Reimbursement, error) {
	if f.findByEmployeeFn != nil {
		return f.findByEmployeeFn(ctx, employeeID)
	}
	return nil, nil
}

func (f *fakeReimbursementRepository) FindByID(ctx context.Context, id string) (*reimbursement.Reimbursement, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeReimbursementRepository) Update(ctx context.Context, r *reimbursement.Reimbursement) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, r)
	}
	return nil
}

func (f *fakeReimbursementRepository) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

type fakeEmployeeRepository struct {
	findByIDFn func(ctx context.Context, id string) (*employee.Employee, error)
}

func (f *fakeEmployeeRepository) WithTx(tx *sql.Tx) employee.Repository { return f }

func (f *fakeEmployeeRepository) Create(ctx context.Context, e *employee.Employee) error { return nil }

func (f *fakeEmployeeRepository) FindAll(ctx context.Context) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepository) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return &employee.Employee{ID: uuid.MustParse(id), FullName: "Budi", Email: "budi@example.com"}, nil
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
	putFn    func(ctx context.Context, data []byte, fileName, contentType, folder, ownerID string) (storage.StoredObject, error)
	deleted  []string
	deleteFn func(ctx context.Context, key string) error
}

func (f *fakeObjectStorage) Put(ctx context.Context, data []byte, fileName, contentType, folder, ownerID string) (storage.StoredObject, error) {
	if f.putFn != nil {
		return f.putFn(ctx, data, fileName, contentType, folder, ownerID)
	}
	return storage.StoredObject{Key: "reimbursements/" + ownerID + "/" + fileName, URL: "https://cdn.example.com/" + fileName}, nil
}

func (f *fakeObjectStorage) Delete(ctx context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	if f.deleteFn != nil {
		return f.deleteFn(ctx, key)
	}
	return nil
}

func (f *fakeObjectStorage) KeyFromURL(rawURL string) string { return rawURL }

type reimbursementDeps struct {
	db            *sql.DB
	sqlMock       sqlmock.Sqlmock
	service       reimbursement.Service
	repo          *fakeReimbursementRepository
	employeeRepo  *fakeEmployeeRepository
	outboxRepo    *fakeOutboxRepository
	objectStorage *fakeObjectStorage
}

func setupReimbursementTest(t *testing.T) *reimbursementDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeReimbursementRepository{}
	employeeRepo := &fakeEmployeeRepository{}
	outboxRepo := &fakeOutboxRepository{}
	objectStorage := &fakeObjectStorage{}
	svc := reimbursement.NewService(db, repo, employeeRepo, outboxRepo, objectStorage)

	return &reimbursementDeps{
		db:            db,
		sqlMock:       sqlMock,
		service:       svc,
		repo:          repo,
		employeeRepo:  employeeRepo,
		outboxRepo:    outboxRepo,
		objectStorage: objectStorage,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func employeeActor(employeeID string) contextutil.Actor {
	return contextutil.Actor{
		UserID:     uuid.New().String(),
		EmployeeID: employeeID,
		Email:      "staff@example.com",
		Role:       "employee",
	}
}

func adminActor() contextutil.Actor {
	return contextutil.Actor{
		UserID:     uuid.New().String(),
		EmployeeID: uuid.New().String(),
		Email:      "admin@example.com",
		Role:       "admin",
	}
}

func pendingReimbursement(id, employeeID uuid.UUID) *reimbursement.Reimbursement {
	return &reimbursement.Reimbursement{
		ID:          id,
		EmployeeID:  employeeID,
		Title:       "Taksi ke klien",
		Category:    "TRANSPORT",
		Amount:      150000,
		ExpenseDate: time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC),
		Status:      reimbursement.StatusPending,
	}
}

func TestReimbursementService_Create(t *testing.T) {
	deps := setupReimbursementTest(t)
	defer deps.db.Close()

	ctx := context.Background()
	actor := employeeActor(uuid.New().String())

	req := reimbursement.CreateReimbursementRequest{
		Title:       "Taksi ke klien",
		Category:    "TRANSPORT",
		Amount:      150000,
		ExpenseDate: "2026-02-10",
	}

	t.Run("success with bill", func(t *testing.T) {
		expectTx(t, deps.sqlMock, true)

		deps.repo.createFn = func(ctx context.Context, r *reimbursement.Reimbursement) error {
			assert.Equal(t, actor.EmployeeID, r.EmployeeID.String())
			assert.Equal(t, reimbursement.StatusPending, r.Status)
			assert.NotNil(t, r.BillKey)
			return nil
		}

		resp, err := deps.service.Create(ctx, actor, req, &reimbursement.BillUpload{
			Data:        []byte("%PDF-1.4"),
			FileName:    "bill.pdf",
			ContentType: "application/pdf",
		})

		assert.NoError(t, err)
		assert.Equal(t, reimbursement.StatusPending, resp.Status)
		assert.NotNil(t, resp.BillURL)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("storage failure does not block record", func(t *testing.T) {
		expectTx(t, deps.sqlMock, true)

		deps.objectStorage.putFn = func(ctx context.Context, data []byte, fileName, contentType, folder, ownerID string) (storage.StoredObject, error) {
			return storage.StoredObject{}, assert.AnError
		}
		deps.repo.createFn = func(ctx context.Context, r *reimbursement.Reimbursement) error {
			assert.Nil(t, r.BillKey)
			return nil
		}

		resp, err := deps.service.Create(ctx, actor, req, &reimbursement.BillUpload{
			Data:     []byte("x"),
			FileName: "bill.pdf",
		})

		assert.NoError(t, err)
		assert.Nil(t, resp.BillURL)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
		deps.objectStorage.putFn = nil
	})

	t.Run("negative invalid expense date", func(t *testing.T) {
		bad := req
		bad.ExpenseDate = "10/02/2026"

		_, err := deps.service.Create(ctx, actor, bad, nil)

		assert.ErrorIs(t, err, reimbursementerrors.ErrInvalidDate)
	})
}

func TestReimbursementService_StatusTransitions(t *testing.T) {
	deps := setupReimbursementTest(t)
	defer deps.db.Close()

	ctx := context.Background()
	reimbID := uuid.New()
	ownerID := uuid.New()

	t.Run("approve pending success", func(t *testing.T) {
		expectTx(t, deps.sqlMock, true)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*reimbursement.Reimbursement, error) {
			return pendingReimbursement(reimbID, ownerID), nil
		}
		deps.repo.updateFn = func(ctx context.Context, r *reimbursement.Reimbursement) error {
			assert.Equal(t, reimbursement.StatusApproved, r.Status)
			assert.NotNil(t, r.ProcessedBy)
			assert.NotNil(t, r.ProcessedAt)
			return nil
		}

		resp, err := deps.service.Approve(ctx, adminActor(), reimbID.String())

		assert.NoError(t, err)
		assert.Equal(t, reimbursement.StatusApproved, resp.Status)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative clear while still pending", func(t *testing.T) {
		expectTx(t, deps.sqlMock, false)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*reimbursement.Reimbursement, error) {
			return pendingReimbursement(reimbID, ownerID), nil
		}

		_, err := deps.service.Clear(ctx, adminActor(), reimbID.String(), "")

		assert.ErrorIs(t, err, reimbursementerrors.ErrNotApproved)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative reject without remarks", func(t *testing.T) {
		_, err := deps.service.Reject(ctx, adminActor(), reimbID.String(), "")

		assert.ErrorIs(t, err, reimbursementerrors.ErrRemarksRequired)
	})

	t.Run("reject enqueues notification", func(t *testing.T) {
		expectTx(t, deps.sqlMock, true)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*reimbursement.Reimbursement, error) {
			return pendingReimbursement(reimbID, ownerID), nil
		}
		deps.repo.updateFn = func(ctx context.Context, r *reimbursement.Reimbursement) error {
			assert.Equal(t, reimbursement.StatusRejected, r.Status)
			assert.Equal(t, "nota tidak terbaca", *r.AdminRemarks)
			return nil
		}

		before := len(deps.outboxRepo.created)
		resp, err := deps.service.Reject(ctx, adminActor(), reimbID.String(), "nota tidak terbaca")

		assert.NoError(t, err)
		assert.Equal(t, reimbursement.StatusRejected, resp.Status)
		assert.Len(t, deps.outboxRepo.created, before+1)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("clear approved enqueues notification", func(t *testing.T) {
		expectTx(t, deps.sqlMock, true)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*reimbursement.Reimbursement, error) {
			r := pendingReimbursement(reimbID, ownerID)
			r.Status = reimbursement.StatusApproved
			return r, nil
		}
		deps.repo.updateFn = func(ctx context.Context, r *reimbursement.Reimbursement) error {
			assert.Equal(t, reimbursement.StatusCleared, r.Status)
			assert.NotNil(t, r.ClearedAt)
			return nil
		}

		before := len(deps.outboxRepo.created)
		resp, err := deps.service.Clear(ctx, adminActor(), reimbID.String(), "transfer 28 Feb")

		assert.NoError(t, err)
		assert.Equal(t, reimbursement.StatusCleared, resp.Status)
		assert.Len(t, deps.outboxRepo.created, before+1)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative approve already rejected", func(t *testing.T) {
		expectTx(t, deps.sqlMock, false)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*reimbursement.Reimbursement, error) {
			r := pendingReimbursement(reimbID, ownerID)
			r.Status = reimbursement.StatusRejected
			return r, nil
		}

		_, err := deps.service.Approve(ctx, adminActor(), reimbID.String())

		assert.ErrorIs(t, err, reimbursementerrors.ErrNotPending)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestReimbursementService_Delete(t *testing.T) {
	deps := setupReimbursementTest(t)
	defer deps.db.Close()

	ctx := context.Background()
	reimbID := uuid.New()
	ownerID := uuid.New()

	t.Run("negative owner deletes cleared record", func(t *testing.T) {
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*reimbursement.Reimbursement, error) {
			r := pendingReimbursement(reimbID, ownerID)
			r.Status = reimbursement.StatusCleared
			return r, nil
		}

		err := deps.service.Delete(ctx, employeeActor(ownerID.String()), reimbID.String())

		assert.ErrorIs(t, err, reimbursementerrors.ErrDeleteNotAllowed)
	})

	t.Run("negative non owner", func(t *testing.T) {
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*reimbursement.Reimbursement, error) {
			return pendingReimbursement(reimbID, ownerID), nil
		}

		err := deps.service.Delete(ctx, employeeActor(uuid.New().String()), reimbID.String())

		assert.ErrorIs(t, err, reimbursementerrors.ErrNotOwner)
	})

	t.Run("admin deletes and cleans up bill", func(t *testing.T) {
		expectTx(t, deps.sqlMock, true)

		key := "reimbursements/bill.pdf"
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*reimbursement.Reimbursement, error) {
			r := pendingReimbursement(reimbID, ownerID)
			r.Status = reimbursement.StatusCleared
			r.BillKey = &key
			return r, nil
		}

		err := deps.service.Delete(ctx, adminActor(), reimbID.String())

		assert.NoError(t, err)
		assert.Contains(t, deps.objectStorage.deleted, key)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestReimbursementService_GetAll(t *testing.T) {
	deps := setupReimbursementTest(t)
	defer deps.db.Close()

	ctx := context.Background()
	ownerID := uuid.New()

	deps.repo.findAllFn = func(ctx context.Context) ([]reimbursement.Reimbursement, error) {
		return []reimbursement.Reimbursement{
			*pendingReimbursement(uuid.New(), ownerID),
			*pendingReimbursement(uuid.New(), uuid.New()),
		}, nil
	}
	deps.repo.findByEmployeeFn = func(ctx context.Context, employeeID string) ([]reimbursement.Reimbursement, error) {
		assert.Equal(t, ownerID.String(), employeeID)
		return []reimbursement.Reimbursement{*pendingReimbursement(uuid.New(), ownerID)}, nil
	}

	t.Run("manager sees all", func(t *testing.T) {
		actor := adminActor()
		rows, err := deps.service.GetAll(ctx, actor)

		assert.NoError(t, err)
		assert.Len(t, rows, 2)
	})

	t.Run("employee sees own only", func(t *testing.T) {
		rows, err := deps.service.GetAll(ctx, employeeActor(ownerID.String()))

		assert.NoError(t, err)
		assert.Len(t, rows, 1)
	})
}
