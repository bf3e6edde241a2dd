package timesheet

import (
	"context"
	"time"
)

// DailyEntryRepository defines data access for daily entries. All methods
// take companyID to prevent cross-company data access.
type DailyEntryRepository interface {
	// Upsert creates or replaces the entry for the employee-day.
	Upsert(ctx context.Context, entry DailyEntry) (DailyEntry, error)

	// GetByEmployeeAndDate returns nil when no entry exists for the day.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, companyID string) (*DailyEntry, error)

	// ListByEmployee returns all entries of one employee in ascending date
	// order. The ledger recompute replays this full history.
	ListByEmployee(ctx context.Context, employeeID string, companyID string) ([]DailyEntry, error)

	// ListByEmployeeMonth returns one employee-month in ascending date order.
	ListByEmployeeMonth(ctx context.Context, employeeID string, year int, month time.Month, companyID string) ([]DailyEntry, error)

	// Delete removes the entry for the employee-day.
	Delete(ctx context.Context, employeeID string, date time.Time, companyID string) error
}

// Service is the Daily Entry Processor: it normalizes raw input per absence
// code, persists the row and triggers the full ledger recompute.
type Service interface {
	// Save validates, normalizes and persists one employee-day, then
	// recomputes the employee's overtime ledger in the same transaction.
	Save(ctx context.Context, req SaveEntryRequest) (SaveEntryResponse, error)

	// Delete removes an entry and recomputes the ledger.
	Delete(ctx context.Context, employeeID, date string, actor Actor) error

	// ListMonth returns one employee-month with totals.
	ListMonth(ctx context.Context, filter ListEntriesFilter) (ListEntriesResponse, error)
}
