package salarystructure

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go-hrm/internal/employee"
	employeeerrors "go-hrm/internal/employee/errors"
	salarystructureerrors "go-hrm/internal/salarystructure/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	Save(ctx context.Context, req SaveStructureRequest) (StructureResponse, error)
	GetByEmployee(ctx context.Context, employeeID string) (StructureResponse, error)
	GetTemplate(ctx context.Context) ([]TemplateItemResponse, error)
	SaveTemplate(ctx context.Context, req SaveTemplateRequest) ([]TemplateItemResponse, error)
}

type service struct {
	db           *sql.DB
	repo         Repository
	employeeRepo employee.Repository
	logger       *zap.Logger
}

func NewService(db *sql.DB, repo Repository, employeeRepo employee.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("salarystructure.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("salarystructure.service")
	}
	return &service{db: db, repo: repo, employeeRepo: employeeRepo, logger: l}
}

// Save mengganti structure karyawan secara utuh dalam satu transaksi:
// upsert header, replace komponen, lalu sinkronkan monthly_salary karyawan
// ke net salary hasil evaluasi. Tidak ada jendela waktu di mana payroll
// bisa membaca kombinasi lama/baru.
func (s *service) Save(ctx context.Context, req SaveStructureRequest) (StructureResponse, error) {
	if _, err := uuid.Parse(req.EmployeeID); err != nil {
		return StructureResponse{}, salarystructureerrors.ErrInvalidEmployeeID
	}

	if _, err := s.employeeRepo.FindByID(ctx, req.EmployeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return StructureResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return StructureResponse{}, err
	}

	structure := SalaryStructure{
		ID:          uuid.New(),
		EmployeeID:  uuid.MustParse(req.EmployeeID),
		BasicSalary: req.BasicSalary,
		UpdatedAt:   time.Now().UTC(),
	}

	components := make([]SalaryComponent, 0, len(req.Components))
	for i, c := range req.Components {
		base := c.CalculationBase
		if base == "" {
			base = BaseBasic
		}
		components = append(components, SalaryComponent{
			ID:              uuid.New(),
			Name:            c.Name,
			Type:            c.Type,
			Amount:          c.Amount,
			IsPercentage:    c.IsPercentage,
			CalculationBase: base,
			Position:        i,
		})
	}

	gross, deductions, net, evaluated := Evaluate(req.BasicSalary, components)
	structure.GrossSalary = gross
	structure.TotalDeductions = deductions
	structure.NetSalary = net

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return StructureResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Upsert(ctx, &structure); err != nil {
		return StructureResponse{}, err
	}

	for i := range evaluated {
		evaluated[i].StructureID = structure.ID
	}
	if err := qtx.ReplaceComponents(ctx, structure.ID, evaluated); err != nil {
		return StructureResponse{}, err
	}

	if err := s.employeeRepo.WithTx(tx).UpdateMonthlySalary(ctx, req.EmployeeID, net); err != nil {
		return StructureResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return StructureResponse{}, err
	}

	s.logger.Info("salary structure saved",
		zap.String("employee_id", req.EmployeeID),
		zap.Float64("net_salary", net),
	)

	structure.Components = evaluated
	return mapToResponse(structure), nil
}

func (s *service) GetByEmployee(ctx context.Context, employeeID string) (StructureResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return StructureResponse{}, salarystructureerrors.ErrInvalidEmployeeID
	}

	structure, err := s.repo.FindByEmployeeID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return StructureResponse{}, salarystructureerrors.ErrStructureNotFound
		}
		return StructureResponse{}, err
	}

	return mapToResponse(*structure), nil
}

func (s *service) GetTemplate(ctx context.Context) ([]TemplateItemResponse, error) {
	items, err := s.repo.FindTemplate(ctx)
	if err != nil {
		return nil, err
	}
	return mapTemplateItems(items), nil
}

func (s *service) SaveTemplate(ctx context.Context, req SaveTemplateRequest) ([]TemplateItemResponse, error) {
	items := make([]SalaryTemplateItem, 0, len(req.Items))
	for i, it := range req.Items {
		items = append(items, SalaryTemplateItem{
			ID:       uuid.New(),
			Name:     it.Name,
			Type:     it.Type,
			Position: i,
		})
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).ReplaceTemplate(ctx, items); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return mapTemplateItems(items), nil
}

func mapToResponse(s SalaryStructure) StructureResponse {
	components := make([]ComponentResponse, 0, len(s.Components))
	for _, c := range s.Components {
		components = append(components, ComponentResponse{
			ID:               c.ID.String(),
			Name:             c.Name,
			Type:             c.Type,
			Amount:           c.Amount,
			IsPercentage:     c.IsPercentage,
			CalculationBase:  c.CalculationBase,
			CalculatedAmount: c.CalculatedAmount,
			Position:         c.Position,
		})
	}
	return StructureResponse{
		ID:              s.ID.String(),
		EmployeeID:      s.EmployeeID.String(),
		BasicSalary:     s.BasicSalary,
		GrossSalary:     s.GrossSalary,
		TotalDeductions: s.TotalDeductions,
		NetSalary:       s.NetSalary,
		Components:      components,
		UpdatedAt:       s.UpdatedAt,
	}
}

func mapTemplateItems(items []SalaryTemplateItem) []TemplateItemResponse {
	out := make([]TemplateItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, TemplateItemResponse{
			Name:     it.Name,
			Type:     it.Type,
			Position: it.Position,
		})
	}
	return out
}
