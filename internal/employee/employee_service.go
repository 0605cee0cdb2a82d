package employee

import (
	"context"
	"database/sql"
	"errors"

	employeeerrors "go-hrm/internal/employee/errors"
	"go-hrm/internal/shared/contextutil"
	"go-hrm/internal/storage"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	UploadPhoto(ctx context.Context, id string, data []byte, fileName, contentType string) (EmployeeResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	store  storage.ObjectStorage
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, store storage.ObjectStorage, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{db: db, repo: repo, store: store, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("email", req.Email),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	e := &Employee{
		ID:            uuid.New(),
		FullName:      req.FullName,
		Email:         req.Email,
		Department:    req.Department,
		Designation:   req.Designation,
		MonthlySalary: req.MonthlySalary,
	}

	if err := qtx.Create(ctx, e); err != nil {
		if isUniqueViolation(err) {
			return EmployeeResponse{}, employeeerrors.ErrEmailAlreadyUsed
		}
		s.logger.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create employee commit failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	s.logger.Info("create employee success",
		zap.String("employee_id", e.ID.String()),
		zap.String("email", e.Email),
	)

	return mapToResponse(*e), nil
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	employees, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(employees), nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return EmployeeResponse{}, err
	}
	return mapToResponse(*e), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	e, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return EmployeeResponse{}, err
	}

	e.FullName = req.FullName
	e.Email = req.Email
	e.Department = req.Department
	e.Designation = req.Designation
	e.MonthlySalary = req.MonthlySalary

	if err := qtx.Update(ctx, e); err != nil {
		if isUniqueViolation(err) {
			return EmployeeResponse{}, employeeerrors.ErrEmailAlreadyUsed
		}
		s.logger.Error("update employee persist failed",
			zap.String("employee_id", id),
			zap.Error(err),
		)
		return EmployeeResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return EmployeeResponse{}, err
	}
	s.logger.Info("update employee success", zap.String("employee_id", id))

	return mapToResponse(*e), nil
}

func (s *service) UploadPhoto(
	ctx context.Context,
	id string,
	data []byte,
	fileName, contentType string,
) (EmployeeResponse, error) {
	if len(data) == 0 {
		return EmployeeResponse{}, employeeerrors.ErrEmptyPhoto
	}

	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return EmployeeResponse{}, err
	}

	obj, err := s.store.Put(ctx, data, fileName, contentType, "employee-photos", id)
	if err != nil {
		s.logger.Error("upload employee photo failed",
			zap.String("employee_id", id),
			zap.Error(err),
		)
		return EmployeeResponse{}, err
	}

	oldKey := e.PhotoKey

	if err := s.repo.UpdatePhoto(ctx, id, &obj.Key, &obj.URL); err != nil {
		return EmployeeResponse{}, err
	}

	// Hapus foto lama best-effort; gagal hapus tidak membatalkan update.
	if oldKey != nil && *oldKey != "" {
		if err := s.store.Delete(ctx, *oldKey); err != nil {
			s.logger.Warn("delete old employee photo failed",
				zap.String("employee_id", id),
				zap.String("key", *oldKey),
				zap.Error(err),
			)
		}
	}

	e.PhotoKey = &obj.Key
	e.PhotoURL = &obj.URL
	return mapToResponse(*e), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return employeeerrors.ErrInvalidEmployeeID
	}

	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return employeeerrors.ErrEmployeeNotFound
		}
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	if e.PhotoKey != nil && *e.PhotoKey != "" {
		if err := s.store.Delete(ctx, *e.PhotoKey); err != nil {
			s.logger.Warn("delete employee photo on remove failed",
				zap.String("employee_id", id),
				zap.Error(err),
			)
		}
	}

	s.logger.Info("delete employee success", zap.String("employee_id", id))
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func mapToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:            e.ID.String(),
		FullName:      e.FullName,
		Email:         e.Email,
		Department:    e.Department,
		Designation:   e.Designation,
		MonthlySalary: e.MonthlySalary,
		PhotoURL:      e.PhotoURL,
	}
}

func mapToListResponse(employees []Employee) []EmployeeResponse {
	resp := make([]EmployeeResponse, len(employees))
	for i, e := range employees {
		resp[i] = mapToResponse(e)
	}
	return resp
}
