package employee

import (
	"context"

	"github.com/Mobiman12/stundenliste-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// UpdateSettingsRequest changes the engine-relevant settings of one
// employee. Everything else about the person is managed by the portal.
type UpdateSettingsRequest struct {
	EmployeeID            string          `json:"-"`
	ShiftLabel            string          `json:"shift_label"`
	ImportedOvertimeHours float64         `json:"imported_overtime_hours"`
	MaxOvertimeHours      float64         `json:"max_overtime_hours"`
	MaxMinusHours         float64         `json:"max_minus_hours"`
	AnnualRevenueTarget   decimal.Decimal `json:"annual_revenue_target"`
}

func (r *UpdateSettingsRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if r.MaxOvertimeHours < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "max_overtime_hours",
			Message: "max overtime hours must not be negative",
		})
	}
	if r.MaxMinusHours < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "max_minus_hours",
			Message: "max minus hours must not be negative",
		})
	}
	if r.AnnualRevenueTarget.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "annual_revenue_target",
			Message: "annual revenue target must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Service exposes the employee settings the engine owns.
type Service interface {
	List(ctx context.Context) ([]Employee, error)
	Get(ctx context.Context, id string) (Employee, error)

	// UpdateSettings stores new settings and recomputes the overtime
	// ledger; the imported balance and clamps feed directly into it.
	UpdateSettings(ctx context.Context, req UpdateSettingsRequest) (Employee, error)
}
