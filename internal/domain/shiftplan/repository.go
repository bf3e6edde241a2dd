package shiftplan

import (
	"context"
	"time"
)

type PlanDayRepository interface {
	// ListByEmployeeRange returns plan days in [from, to] ascending by date.
	ListByEmployeeRange(ctx context.Context, employeeID string, from, to time.Time, companyID string) ([]PlanDay, error)

	// Upsert replaces the segments of one employee-day.
	Upsert(ctx context.Context, day PlanDay) (PlanDay, error)

	// Delete removes one employee-day from the plan.
	Delete(ctx context.Context, employeeID string, date time.Time, companyID string) error
}

type TemplateRepository interface {
	// ListByEmployee returns all weekly template rows of an employee.
	ListByEmployee(ctx context.Context, employeeID string, companyID string) ([]TemplateRow, error)
}

// Resolver turns plan days and the weekly-template fallback into SOLL hours
// per date. Pure apart from repository reads; safe for concurrent use.
type Resolver interface {
	// Resolve decides the plan source once for the window and returns the
	// per-date plans. Dates without any plan resolve to SOLL 0.
	Resolve(ctx context.Context, employeeID string, from, to time.Time, companyID string) (Window, error)
}
