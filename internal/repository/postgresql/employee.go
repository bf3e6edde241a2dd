package postgresql

import (
	"context"

	"github.com/Mobiman12/stundenliste-backend-go/internal/domain/employee"
	"github.com/Mobiman12/stundenliste-backend-go/internal/pkg/database"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT id, company_id, full_name, shift_label,
			   imported_overtime_hours, max_overtime_hours, max_minus_hours, overtime_balance,
			   annual_revenue_target, created_at, updated_at, deleted_at
		FROM employees
		WHERE id = $1 AND company_id = $2 AND deleted_at IS NULL
	`

	var emp employee.Employee
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&emp.ID, &emp.CompanyID, &emp.FullName, &emp.ShiftLabel,
		&emp.ImportedOvertimeHours, &emp.MaxOvertimeHours, &emp.MaxMinusHours, &emp.OvertimeBalance,
		&emp.AnnualRevenueTarget, &emp.CreatedAt, &emp.UpdatedAt, &emp.DeletedAt,
	)
	if err != nil {
		return employee.Employee{}, err
	}
	return emp, nil
}

// GetActiveByCompanyID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetActiveByCompanyID(ctx context.Context, companyID string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT id, company_id, full_name, shift_label,
			   imported_overtime_hours, max_overtime_hours, max_minus_hours, overtime_balance,
			   annual_revenue_target, created_at, updated_at, deleted_at
		FROM employees
		WHERE company_id = $1 AND deleted_at IS NULL
		ORDER BY full_name
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := make([]employee.Employee, 0)
	for rows.Next() {
		var emp employee.Employee
		if err := rows.Scan(
			&emp.ID, &emp.CompanyID, &emp.FullName, &emp.ShiftLabel,
			&emp.ImportedOvertimeHours, &emp.MaxOvertimeHours, &emp.MaxMinusHours, &emp.OvertimeBalance,
			&emp.AnnualRevenueTarget, &emp.CreatedAt, &emp.UpdatedAt, &emp.DeletedAt,
		); err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}

	return employees, rows.Err()
}

// UpdateOvertimeBalance implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) UpdateOvertimeBalance(ctx context.Context, id string, balance float64, companyID string) error {
	q := GetQuerier(ctx, e.db)

	query := `
		UPDATE employees
		SET overtime_balance = $1, updated_at = NOW()
		WHERE id = $2 AND company_id = $3
	`

	tag, err := q.Exec(ctx, query, balance, id, companyID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// UpdateSettings implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) UpdateSettings(ctx context.Context, req employee.UpdateSettingsRequest, companyID string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		UPDATE employees
		SET shift_label = $1,
			imported_overtime_hours = $2,
			max_overtime_hours = $3,
			max_minus_hours = $4,
			annual_revenue_target = $5,
			updated_at = NOW()
		WHERE id = $6 AND company_id = $7 AND deleted_at IS NULL
		RETURNING id, company_id, full_name, shift_label,
			imported_overtime_hours, max_overtime_hours, max_minus_hours, overtime_balance,
			annual_revenue_target, created_at, updated_at, deleted_at
	`

	var emp employee.Employee
	err := q.QueryRow(ctx, query,
		req.ShiftLabel, req.ImportedOvertimeHours, req.MaxOvertimeHours, req.MaxMinusHours,
		req.AnnualRevenueTarget, req.EmployeeID, companyID,
	).Scan(
		&emp.ID, &emp.CompanyID, &emp.FullName, &emp.ShiftLabel,
		&emp.ImportedOvertimeHours, &emp.MaxOvertimeHours, &emp.MaxMinusHours, &emp.OvertimeBalance,
		&emp.AnnualRevenueTarget, &emp.CreatedAt, &emp.UpdatedAt, &emp.DeletedAt,
	)
	if err != nil {
		return employee.Employee{}, err
	}
	return emp, nil
}
