package reimbursement

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go-hrm/internal/employee"
	"go-hrm/internal/events"
	kafka "go-hrm/internal/messaging/kafka"
	reimbursementerrors "go-hrm/internal/reimbursement/errors"
	"go-hrm/internal/shared/contextutil"
	"go-hrm/internal/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// BillUpload adalah lampiran bill yang sudah dibaca handler dari multipart.
type BillUpload struct {
	Data        []byte
	FileName    string
	ContentType string
}

//go:generate mockgen -source=reimbursement_service.go -destination=mock/reimbursement_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actor contextutil.Actor, req CreateReimbursementRequest, bill *BillUpload) (ReimbursementResponse, error)
	GetAll(ctx context.Context, actor contextutil.Actor) ([]ReimbursementResponse, error)
	GetByID(ctx context.Context, actor contextutil.Actor, id string) (ReimbursementResponse, error)
	Approve(ctx context.Context, actor contextutil.Actor, id string) (ReimbursementResponse, error)
	Reject(ctx context.Context, actor contextutil.Actor, id, remarks string) (ReimbursementResponse, error)
	Clear(ctx context.Context, actor contextutil.Actor, id, note string) (ReimbursementResponse, error)
	Delete(ctx context.Context, actor contextutil.Actor, id string) error
}

type service struct {
	db           *sql.DB
	repo         Repository
	employeeRepo employee.Repository
	outboxRepo   kafka.OutboxRepository
	storage      storage.ObjectStorage
	logger       *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	employeeRepo employee.Repository,
	outboxRepo kafka.OutboxRepository,
	objectStorage storage.ObjectStorage,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("reimbursement.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("reimbursement.service")
	}
	return &service{
		db:           db,
		repo:         repo,
		employeeRepo: employeeRepo,
		outboxRepo:   outboxRepo,
		storage:      objectStorage,
		logger:       l,
	}
}

// Create menyimpan pengajuan baru atas nama actor. Upload bill best-effort:
// kalau object storage gagal, record tetap dibuat tanpa lampiran.
func (s *service) Create(
	ctx context.Context,
	actor contextutil.Actor,
	req CreateReimbursementRequest,
	bill *BillUpload,
) (ReimbursementResponse, error) {
	employeeUUID, err := uuid.Parse(actor.EmployeeID)
	if err != nil {
		return ReimbursementResponse{}, reimbursementerrors.ErrNotOwner
	}

	expenseDate, err := time.Parse("2006-01-02", req.ExpenseDate)
	if err != nil {
		return ReimbursementResponse{}, reimbursementerrors.ErrInvalidDate
	}

	reimb := Reimbursement{
		ID:          uuid.New(),
		EmployeeID:  employeeUUID,
		Title:       req.Title,
		Category:    req.Category,
		Amount:      req.Amount,
		Description: req.Description,
		ExpenseDate: expenseDate,
		Status:      StatusPending,
	}

	if bill != nil && len(bill.Data) > 0 {
		stored, err := s.storage.Put(ctx, bill.Data, bill.FileName, bill.ContentType, "reimbursements", actor.EmployeeID)
		if err != nil {
			s.logger.Warn("bill upload failed, record proceeds without attachment",
				zap.String("employee_id", actor.EmployeeID),
				zap.Error(err),
			)
		} else {
			reimb.BillKey = &stored.Key
			reimb.BillURL = &stored.URL
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ReimbursementResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Create(ctx, &reimb); err != nil {
		return ReimbursementResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return ReimbursementResponse{}, err
	}

	return mapToResponse(reimb), nil
}

func (s *service) GetAll(ctx context.Context, actor contextutil.Actor) ([]ReimbursementResponse, error) {
	var (
		rows []Reimbursement
		err  error
	)
	if actor.IsManager() {
		rows, err = s.repo.FindAll(ctx)
	} else {
		rows, err = s.repo.FindByEmployee(ctx, actor.EmployeeID)
	}
	if err != nil {
		return nil, err
	}

	return mapToListResponse(rows), nil
}

func (s *service) GetByID(ctx context.Context, actor contextutil.Actor, id string) (ReimbursementResponse, error) {
	reimb, err := s.findByID(ctx, id)
	if err != nil {
		return ReimbursementResponse{}, err
	}

	if !actor.IsManager() && reimb.EmployeeID.String() != actor.EmployeeID {
		return ReimbursementResponse{}, reimbursementerrors.ErrNotOwner
	}

	return mapToResponse(*reimb), nil
}

func (s *service) Approve(ctx context.Context, actor contextutil.Actor, id string) (ReimbursementResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ReimbursementResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	reimb, err := s.findByIDWith(ctx, qtx, id)
	if err != nil {
		return ReimbursementResponse{}, err
	}
	if reimb.Status != StatusPending {
		return ReimbursementResponse{}, reimbursementerrors.ErrNotPending
	}

	now := time.Now().UTC()
	processor, err := uuid.Parse(actor.UserID)
	if err != nil {
		return ReimbursementResponse{}, reimbursementerrors.ErrNotOwner
	}
	reimb.Status = StatusApproved
	reimb.ProcessedBy = &processor
	reimb.ProcessedAt = &now

	if err := qtx.Update(ctx, reimb); err != nil {
		return ReimbursementResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return ReimbursementResponse{}, err
	}

	s.logger.Info("reimbursement approved",
		zap.String("id", id),
		zap.String("processed_by", actor.UserID),
	)

	return mapToResponse(*reimb), nil
}

// Reject butuh remarks dan mengantrikan email penolakan lewat outbox di
// transaksi yang sama. Email menyusul setelah commit, tidak pernah
// membatalkan transisi.
func (s *service) Reject(ctx context.Context, actor contextutil.Actor, id, remarks string) (ReimbursementResponse, error) {
	if remarks == "" {
		return ReimbursementResponse{}, reimbursementerrors.ErrRemarksRequired
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ReimbursementResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	reimb, err := s.findByIDWith(ctx, qtx, id)
	if err != nil {
		return ReimbursementResponse{}, err
	}
	if reimb.Status != StatusPending {
		return ReimbursementResponse{}, reimbursementerrors.ErrNotPending
	}

	now := time.Now().UTC()
	processor, err := uuid.Parse(actor.UserID)
	if err != nil {
		return ReimbursementResponse{}, reimbursementerrors.ErrNotOwner
	}
	reimb.Status = StatusRejected
	reimb.AdminRemarks = &remarks
	reimb.ProcessedBy = &processor
	reimb.ProcessedAt = &now

	if err := qtx.Update(ctx, reimb); err != nil {
		return ReimbursementResponse{}, err
	}

	if err := s.enqueueRejectedEmail(ctx, tx, reimb, remarks); err != nil {
		return ReimbursementResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return ReimbursementResponse{}, err
	}

	return mapToResponse(*reimb), nil
}

func (s *service) Clear(ctx context.Context, actor contextutil.Actor, id, note string) (ReimbursementResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ReimbursementResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	reimb, err := s.findByIDWith(ctx, qtx, id)
	if err != nil {
		return ReimbursementResponse{}, err
	}
	if reimb.Status != StatusApproved {
		return ReimbursementResponse{}, reimbursementerrors.ErrNotApproved
	}

	now := time.Now().UTC()
	reimb.Status = StatusCleared
	reimb.ClearedAt = &now

	if err := qtx.Update(ctx, reimb); err != nil {
		return ReimbursementResponse{}, err
	}

	if err := s.enqueueClearedEmail(ctx, tx, reimb, note); err != nil {
		return ReimbursementResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return ReimbursementResponse{}, err
	}

	s.logger.Info("reimbursement cleared",
		zap.String("id", id),
		zap.String("actor_id", actor.UserID),
	)

	return mapToResponse(*reimb), nil
}

// Delete: pemilik hanya boleh menghapus selama PENDING, admin kapan saja.
// Lampiran bill dihapus best-effort setelah record hilang.
func (s *service) Delete(ctx context.Context, actor contextutil.Actor, id string) error {
	reimb, err := s.findByID(ctx, id)
	if err != nil {
		return err
	}

	if !actor.IsAdmin() {
		if reimb.EmployeeID.String() != actor.EmployeeID {
			return reimbursementerrors.ErrNotOwner
		}
		if reimb.Status != StatusPending {
			return reimbursementerrors.ErrDeleteNotAllowed
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Delete(ctx, id); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	if reimb.BillKey != nil {
		if err := s.storage.Delete(ctx, *reimb.BillKey); err != nil {
			s.logger.Warn("bill cleanup failed",
				zap.String("id", id),
				zap.String("key", *reimb.BillKey),
				zap.Error(err),
			)
		}
	}

	return nil
}

func (s *service) findByID(ctx context.Context, id string) (*Reimbursement, error) {
	return s.findByIDWith(ctx, s.repo, id)
}

func (s *service) findByIDWith(ctx context.Context, repo Repository, id string) (*Reimbursement, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, reimbursementerrors.ErrInvalidID
	}

	reimb, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, reimbursementerrors.ErrNotFound
		}
		return nil, err
	}
	return reimb, nil
}

func (s *service) enqueueRejectedEmail(ctx context.Context, tx *sql.Tx, reimb *Reimbursement, remarks string) error {
	emp, err := s.employeeRepo.FindByID(ctx, reimb.EmployeeID.String())
	if err != nil {
		s.logger.Warn("rejected email skipped, employee lookup failed",
			zap.String("employee_id", reimb.EmployeeID.String()),
			zap.Error(err),
		)
		return nil
	}

	htmlBody, err := renderRejectedEmail(rejectedEmailData{
		EmployeeName: emp.FullName,
		Title:        reimb.Title,
		Amount:       reimb.Amount,
		Remarks:      remarks,
	})
	if err != nil {
		return err
	}

	event, err := kafka.NewEmailOutboxEvent(
		contextutil.GetRequestID(ctx),
		"reimbursement",
		reimb.ID.String(),
		events.EmailRequestedEvent{
			EventType:  events.EmailRequestedTopic,
			Kind:       events.EmailKindReimbursementReject,
			To:         emp.Email,
			Subject:    "Reimbursement Ditolak: " + reimb.Title,
			HTMLBody:   htmlBody,
			OccurredAt: time.Now().UTC(),
		},
	)
	if err != nil {
		return err
	}

	return s.outboxRepo.WithTx(tx).Create(ctx, event)
}

func (s *service) enqueueClearedEmail(ctx context.Context, tx *sql.Tx, reimb *Reimbursement, note string) error {
	emp, err := s.employeeRepo.FindByID(ctx, reimb.EmployeeID.String())
	if err != nil {
		s.logger.Warn("cleared email skipped, employee lookup failed",
			zap.String("employee_id", reimb.EmployeeID.String()),
			zap.Error(err),
		)
		return nil
	}

	htmlBody, err := renderClearedEmail(clearedEmailData{
		EmployeeName: emp.FullName,
		Title:        reimb.Title,
		Amount:       reimb.Amount,
		ClearedAt:    *reimb.ClearedAt,
		Note:         note,
	})
	if err != nil {
		return err
	}

	event, err := kafka.NewEmailOutboxEvent(
		contextutil.GetRequestID(ctx),
		"reimbursement",
		reimb.ID.String(),
		events.EmailRequestedEvent{
			EventType:  events.EmailRequestedTopic,
			Kind:       events.EmailKindReimbursementCleared,
			To:         emp.Email,
			Subject:    "Reimbursement Dibayarkan: " + reimb.Title,
			HTMLBody:   htmlBody,
			OccurredAt: time.Now().UTC(),
		},
	)
	if err != nil {
		return err
	}

	return s.outboxRepo.WithTx(tx).Create(ctx, event)
}

func mapToResponse(r Reimbursement) ReimbursementResponse {
	resp := ReimbursementResponse{
		ID:           r.ID.String(),
		EmployeeID:   r.EmployeeID.String(),
		Title:        r.Title,
		Category:     r.Category,
		Amount:       r.Amount,
		Description:  r.Description,
		ExpenseDate:  r.ExpenseDate.Format("2006-01-02"),
		BillURL:      r.BillURL,
		Status:       r.Status,
		AdminRemarks: r.AdminRemarks,
		ProcessedAt:  r.ProcessedAt,
		ClearedAt:    r.ClearedAt,
		CreatedAt:    r.CreatedAt,
	}
	if r.ProcessedBy != nil {
		v := r.ProcessedBy.String()
		resp.ProcessedBy = &v
	}
	return resp
}

func mapToListResponse(rows []Reimbursement) []ReimbursementResponse {
	resp := make([]ReimbursementResponse, len(rows))
	for i, r := range rows {
		resp[i] = mapToResponse(r)
	}
	return resp
}
