package overtime

import (
	"context"
	"time"
)

type PayoutRepository interface {
	Create(ctx context.Context, payout Payout) (Payout, error)

	// ListByEmployee returns payouts ascending by date for ledger replay.
	ListByEmployee(ctx context.Context, employeeID string, companyID string) ([]Payout, error)

	Delete(ctx context.Context, id string, companyID string) error
}

// Recalculator replays an employee's complete history and persists the new
// aggregate balance. Never incremental: any single-day change triggers a
// full replay.
type Recalculator interface {
	// Recalculate replays all daily rows plus synthetic plan-derived rows
	// and persists the resulting balance.
	Recalculate(ctx context.Context, employeeID string, companyID string) (LedgerResult, error)

	// Summary returns the replay result without persisting, for reads.
	Summary(ctx context.Context, employeeID string, companyID string) (LedgerResult, error)

	// RecordPayout stores a payout and recomputes the ledger.
	RecordPayout(ctx context.Context, employeeID, companyID string, date time.Time, hours float64, note string) (LedgerResult, error)

	// DeletePayout removes a payout and recomputes the ledger.
	DeletePayout(ctx context.Context, employeeID, payoutID, companyID string) (LedgerResult, error)
}
