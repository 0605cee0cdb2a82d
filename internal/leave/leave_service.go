package leave

import (
	"context"
	"database/sql"
	"errors"
	"time"

	leaveerrors "go-hrm/internal/leave/errors"
	"go-hrm/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
	StatusCanceled = "CANCELLED"
)

const compOffValidityDays = 90

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actor contextutil.Actor, req CreateLeaveRequest) (LeaveResponse, error)
	GetAll(ctx context.Context) ([]LeaveResponse, error)
	GetByID(ctx context.Context, id string) (LeaveResponse, error)
	Approve(ctx context.Context, actor contextutil.Actor, id string) (LeaveResponse, error)
	Reject(ctx context.Context, actor contextutil.Actor, id, rejectionReason string) (LeaveResponse, error)
	Cancel(ctx context.Context, actor contextutil.Actor, id string) (LeaveResponse, error)
	Delete(ctx context.Context, actor contextutil.Actor, id string) error
	MonthlySummary(ctx context.Context, employeeID, month string) (MonthlySummaryResponse, error)

	GrantCompOff(ctx context.Context, actor contextutil.Actor, req GrantCompOffRequest) (CompOffResponse, error)
	UseCompOff(ctx context.Context, actor contextutil.Actor, id string, req UseCompOffRequest) (CompOffResponse, error)
	ListCompOff(ctx context.Context, employeeID string) ([]CompOffResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, actor contextutil.Actor, req CreateLeaveRequest) (LeaveResponse, error) {
	s.logger.Debug("create leave requested",
		zap.String("actor_id", actor.EmployeeID),
		zap.String("employee_id", req.EmployeeID),
		zap.String("start_date", req.StartDate),
	)

	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidEmployeeID
	}
	createdByUUID, err := uuid.Parse(actor.EmployeeID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidActorID
	}
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return LeaveResponse{}, err
	}

	// Karyawan biasa hanya boleh mengajukan cuti untuk dirinya sendiri.
	if !actor.IsAdmin() && !actor.IsManager() && req.EmployeeID != actor.EmployeeID {
		return LeaveResponse{}, leaveerrors.ErrNotOwner
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l := &Leave{
		ID:         uuid.New(),
		EmployeeID: employeeUUID,
		LeaveType:  req.LeaveType,
		StartDate:  startDate,
		DaysCount:  req.DaysCount,
		Reason:     req.Reason,
		Status:     StatusPending,
		CreatedBy:  createdByUUID,
	}

	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("create leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	s.logger.Info("create leave success",
		zap.String("leave_id", l.ID.String()),
		zap.String("employee_id", req.EmployeeID),
	)

	return mapToResponse(*l), nil
}

func (s *service) GetAll(ctx context.Context) ([]LeaveResponse, error) {
	leaves, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) GetByID(ctx context.Context, id string) (LeaveResponse, error) {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	return mapToResponse(*l), nil
}

func (s *service) Approve(ctx context.Context, actor contextutil.Actor, id string) (LeaveResponse, error) {
	return s.transitionStatus(ctx, actor, id, StatusApproved, nil)
}

func (s *service) Reject(ctx context.Context, actor contextutil.Actor, id, rejectionReason string) (LeaveResponse, error) {
	return s.transitionStatus(ctx, actor, id, StatusRejected, &rejectionReason)
}

func (s *service) Cancel(ctx context.Context, actor contextutil.Actor, id string) (LeaveResponse, error) {
	return s.transitionStatus(ctx, actor, id, StatusCanceled, nil)
}

func isAllowedStatusTransition(currentStatus, targetStatus string) bool {
	switch currentStatus {
	case StatusPending:
		return targetStatus == StatusApproved ||
			targetStatus == StatusRejected ||
			targetStatus == StatusCanceled
	default:
		return false
	}
}

func (s *service) transitionStatus(
	ctx context.Context,
	actor contextutil.Actor,
	id, targetStatus string,
	rejectionReason *string,
) (LeaveResponse, error) {
	s.logger.Debug("transition leave status requested",
		zap.String("leave_id", id),
		zap.String("actor_id", actor.EmployeeID),
		zap.String("target_status", targetStatus),
	)

	actorUUID, err := uuid.Parse(actor.EmployeeID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidActorID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("transition leave status begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}

	// Cancel hanya oleh pemilik cuti (atau admin).
	if targetStatus == StatusCanceled && !actor.IsAdmin() && l.EmployeeID.String() != actor.EmployeeID {
		return LeaveResponse{}, leaveerrors.ErrNotOwner
	}

	if !isAllowedStatusTransition(l.Status, targetStatus) {
		s.logger.Warn("transition leave status invalid",
			zap.String("leave_id", id),
			zap.String("from_status", l.Status),
			zap.String("to_status", targetStatus),
		)
		return LeaveResponse{}, leaveerrors.ErrInvalidStatusTransition
	}

	l.Status = targetStatus
	switch targetStatus {
	case StatusApproved:
		l.ApprovedBy = &actorUUID
		now := time.Now().UTC()
		l.ApprovedAt = &now
		l.RejectionReason = nil
	case StatusRejected:
		if rejectionReason == nil || *rejectionReason == "" {
			return LeaveResponse{}, leaveerrors.ErrRejectionReasonRequired
		}
		l.ApprovedBy = nil
		l.ApprovedAt = nil
		l.RejectionReason = rejectionReason
	default:
		l.ApprovedBy = nil
		l.ApprovedAt = nil
		l.RejectionReason = nil
	}

	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("transition leave status persist failed",
			zap.String("leave_id", id),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("transition leave status commit failed",
			zap.String("leave_id", id),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}
	s.logger.Info("transition leave status success",
		zap.String("leave_id", id),
		zap.String("status", targetStatus),
	)
	return mapToResponse(*l), nil
}

func (s *service) Delete(ctx context.Context, actor contextutil.Actor, id string) error {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return leaveerrors.ErrLeaveNotFound
		}
		return err
	}

	if !actor.IsAdmin() {
		if l.EmployeeID.String() != actor.EmployeeID {
			return leaveerrors.ErrNotOwner
		}
		if l.Status != StatusPending {
			return leaveerrors.ErrInvalidStatusTransition
		}
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
	return tx.Commit()
}

func (s *service) MonthlySummary(ctx context.Context, employeeID, month string) (MonthlySummaryResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return MonthlySummaryResponse{}, leaveerrors.ErrInvalidEmployeeID
	}
	year, monthNum, err := ParseMonth(month)
	if err != nil {
		return MonthlySummaryResponse{}, err
	}

	start, end := MonthWindow(year, monthNum)
	leaves, err := s.repo.FindByEmployeeAndRange(ctx, employeeID, start, end)
	if err != nil {
		return MonthlySummaryResponse{}, err
	}

	summary := Summarize(leaves, year, monthNum)
	return MonthlySummaryResponse{
		EmployeeID:     employeeID,
		Year:           year,
		Month:          monthNum,
		TotalLeaveDays: summary.TotalLeaveDays,
		UnpaidDays:     summary.UnpaidDays,
	}, nil
}

func (s *service) GrantCompOff(ctx context.Context, actor contextutil.Actor, req GrantCompOffRequest) (CompOffResponse, error) {
	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return CompOffResponse{}, leaveerrors.ErrInvalidEmployeeID
	}
	grantedByUUID, err := uuid.Parse(actor.EmployeeID)
	if err != nil {
		return CompOffResponse{}, leaveerrors.ErrInvalidActorID
	}
	workDate, err := parseDate(req.WorkDate)
	if err != nil {
		return CompOffResponse{}, err
	}

	now := time.Now().UTC()
	c := &CompOff{
		ID:         uuid.New(),
		EmployeeID: employeeUUID,
		Days:       req.Days,
		Used:       0,
		WorkDate:   workDate,
		ExpiryDate: now.AddDate(0, 0, compOffValidityDays),
		GrantedBy:  grantedByUUID,
	}

	if err := s.repo.CreateCompOff(ctx, c); err != nil {
		s.logger.Error("grant comp-off persist failed", zap.Error(err))
		return CompOffResponse{}, err
	}
	s.logger.Info("grant comp-off success",
		zap.String("compoff_id", c.ID.String()),
		zap.String("employee_id", req.EmployeeID),
		zap.Float64("days", req.Days),
	)

	return mapCompOffToResponse(*c), nil
}

func (s *service) UseCompOff(ctx context.Context, actor contextutil.Actor, id string, req UseCompOffRequest) (CompOffResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return CompOffResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	c, err := qtx.FindCompOffByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CompOffResponse{}, leaveerrors.ErrCompOffNotFound
		}
		return CompOffResponse{}, err
	}

	if !actor.IsAdmin() && c.EmployeeID.String() != actor.EmployeeID {
		return CompOffResponse{}, leaveerrors.ErrNotOwner
	}

	// Grant kedaluwarsa tidak bisa dipakai; record dibiarkan (tidak di-purge).
	if time.Now().UTC().After(c.ExpiryDate) {
		return CompOffResponse{}, leaveerrors.ErrCompOffExpired
	}
	if c.Used+req.Days > c.Days {
		return CompOffResponse{}, leaveerrors.ErrCompOffInsufficient
	}

	c.Used += req.Days
	if err := qtx.UpdateCompOff(ctx, c); err != nil {
		return CompOffResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return CompOffResponse{}, err
	}
	s.logger.Info("use comp-off success",
		zap.String("compoff_id", id),
		zap.Float64("used", c.Used),
	)

	return mapCompOffToResponse(*c), nil
}

func (s *service) ListCompOff(ctx context.Context, employeeID string) ([]CompOffResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, leaveerrors.ErrInvalidEmployeeID
	}

	grants, err := s.repo.FindCompOffByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	resp := make([]CompOffResponse, len(grants))
	for i, c := range grants {
		resp[i] = mapCompOffToResponse(c)
	}
	return resp, nil
}

// ParseMonth menerima "YYYY-MM" dan mengembalikan (tahun, bulan 1-12).
func ParseMonth(v string) (int, int, error) {
	t, err := time.Parse("2006-01", v)
	if err != nil {
		return 0, 0, leaveerrors.ErrInvalidMonth
	}
	return t.Year(), int(t.Month()), nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapToResponse(l Leave) LeaveResponse {
	resp := LeaveResponse{
		ID:         l.ID.String(),
		EmployeeID: l.EmployeeID.String(),
		LeaveType:  l.LeaveType,
		StartDate:  l.StartDate.Format("2006-01-02"),
		DaysCount:  l.DaysCount,
		Reason:     l.Reason,
		Status:     l.Status,
		CreatedBy:  l.CreatedBy.String(),
	}
	if l.ApprovedBy != nil {
		v := l.ApprovedBy.String()
		resp.ApprovedBy = &v
	}
	if l.ApprovedAt != nil {
		v := l.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &v
	}
	resp.RejectionReason = l.RejectionReason
	return resp
}

func mapToListResponse(leaves []Leave) []LeaveResponse {
	resp := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		resp[i] = mapToResponse(l)
	}
	return resp
}

func mapCompOffToResponse(c CompOff) CompOffResponse {
	return CompOffResponse{
		ID:         c.ID.String(),
		EmployeeID: c.EmployeeID.String(),
		Days:       c.Days,
		Used:       c.Used,
		WorkDate:   c.WorkDate.Format("2006-01-02"),
		ExpiryDate: c.ExpiryDate.Format("2006-01-02"),
		Expired:    time.Now().UTC().After(c.ExpiryDate),
	}
}
