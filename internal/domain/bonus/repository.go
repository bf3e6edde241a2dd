package bonus

import (
	"context"
	"time"
)

type SchemeRepository interface {
	GetByEmployee(ctx context.Context, employeeID string, companyID string) (Scheme, error)
	Upsert(ctx context.Context, scheme Scheme) (Scheme, error)
}

type PayoutRepository interface {
	Create(ctx context.Context, payout Payout) (Payout, error)

	// ListByEmployee returns all payouts, ascending by year and month; the
	// carry-over chain folds over them.
	ListByEmployee(ctx context.Context, employeeID string, companyID string) ([]Payout, error)
}

// Service computes the tiered revenue bonus per month. It is independent of
// the overtime ledger.
type Service interface {
	// MonthSummary computes bonus, carry-over and available payout for one
	// employee-month from aggregated revenue.
	MonthSummary(ctx context.Context, employeeID string, year int, month time.Month, companyID string) (MonthResult, error)

	// RecordPayout stores a payout against an employee-month.
	RecordPayout(ctx context.Context, employeeID string, year int, month time.Month, amount string, companyID string) (MonthResult, error)

	// SaveScheme validates and stores an employee's bonus scheme.
	SaveScheme(ctx context.Context, scheme Scheme) (Scheme, error)
}
