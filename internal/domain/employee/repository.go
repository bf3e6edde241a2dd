package employee

import "context"

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string, companyID string) (Employee, error)
	GetActiveByCompanyID(ctx context.Context, companyID string) ([]Employee, error)

	// UpdateOvertimeBalance rewrites the persisted aggregate after a ledger
	// recompute.
	UpdateOvertimeBalance(ctx context.Context, id string, balance float64, companyID string) error

	// UpdateSettings rewrites the engine-owned settings columns.
	UpdateSettings(ctx context.Context, req UpdateSettingsRequest, companyID string) (Employee, error)
}
