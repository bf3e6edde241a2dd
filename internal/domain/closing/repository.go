package closing

import (
	"context"
	"time"
)

type Repository interface {
	// Get returns the closing row for the employee-month; pgx.ErrNoRows
	// when the month was never closed.
	Get(ctx context.Context, employeeID string, year int, month time.Month, companyID string) (MonthlyClosing, error)

	// Upsert creates or updates the closing row.
	Upsert(ctx context.Context, closing MonthlyClosing) (MonthlyClosing, error)

	// ListByEmployee returns all closings of an employee, newest first.
	ListByEmployee(ctx context.Context, employeeID string, companyID string) ([]MonthlyClosing, error)
}

// Service is the monthly closing lock. The lock does not inspect dates;
// write paths must check every month a change touches.
type Service interface {
	// Close locks the month. Fails with ErrAlreadyClosed when closed.
	Close(ctx context.Context, employeeID string, year int, month time.Month, actorName string, companyID string) (MonthlyClosing, error)

	// Reopen unlocks the month. Fails with ErrAlreadyOpen when open.
	Reopen(ctx context.Context, employeeID string, year int, month time.Month, companyID string) (MonthlyClosing, error)

	// IsClosed reports the lock state of one employee-month.
	IsClosed(ctx context.Context, employeeID string, year int, month time.Month, companyID string) (bool, error)

	// AssertOpenRange fails when any month touched by [from, to] is closed.
	AssertOpenRange(ctx context.Context, employeeID string, from, to time.Time, companyID string) error
}
