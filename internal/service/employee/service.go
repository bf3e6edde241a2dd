package employee

import (
	"context"
	"errors"
	"fmt"

	"github.com/Mobiman12/stundenliste-backend-go/internal/domain/employee"
	"github.com/Mobiman12/stundenliste-backend-go/internal/domain/overtime"
	"github.com/Mobiman12/stundenliste-backend-go/internal/pkg/auth"
	"github.com/Mobiman12/stundenliste-backend-go/internal/pkg/database"
	"github.com/Mobiman12/stundenliste-backend-go/internal/repository/postgresql"
	"github.com/jackc/pgx/v5"
)

type EmployeeServiceImpl struct {
	db           *database.DB
	employeeRepo employee.EmployeeRepository
	recalculator overtime.Recalculator
}

func NewEmployeeService(
	db *database.DB,
	employeeRepo employee.EmployeeRepository,
	recalculator overtime.Recalculator,
) employee.Service {
	return &EmployeeServiceImpl{
		db:           db,
		employeeRepo: employeeRepo,
		recalculator: recalculator,
	}
}

// List implements employee.Service.
func (s *EmployeeServiceImpl) List(ctx context.Context) ([]employee.Employee, error) {
	companyID, err := auth.CompanyID(ctx)
	if err != nil {
		return nil, err
	}

	employees, err := s.employeeRepo.GetActiveByCompanyID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return employees, nil
}

// Get implements employee.Service.
func (s *EmployeeServiceImpl) Get(ctx context.Context, id string) (employee.Employee, error) {
	companyID, err := auth.CompanyID(ctx)
	if err != nil {
		return employee.Employee{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, id, companyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return emp, nil
}

// UpdateSettings implements employee.Service. The imported balance and the
// clamps feed the ledger, so the update and the recompute share one
// transaction.
func (s *EmployeeServiceImpl) UpdateSettings(ctx context.Context, req employee.UpdateSettingsRequest) (employee.Employee, error) {
	if err := req.Validate(); err != nil {
		return employee.Employee{}, err
	}

	companyID, err := auth.CompanyID(ctx)
	if err != nil {
		return employee.Employee{}, err
	}

	var updated employee.Employee
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := postgresql.LockEmployee(txCtx, req.EmployeeID); err != nil {
			return err
		}

		updated, err = s.employeeRepo.UpdateSettings(txCtx, req, companyID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return employee.ErrEmployeeNotFound
			}
			return fmt.Errorf("failed to update employee settings: %w", err)
		}

		ledger, err := s.recalculator.Recalculate(txCtx, req.EmployeeID, companyID)
		if err != nil {
			return fmt.Errorf("failed to recompute overtime ledger: %w", err)
		}
		updated.OvertimeBalance = ledger.Balance
		return nil
	})
	if err != nil {
		return employee.Employee{}, err
	}

	return updated, nil
}
