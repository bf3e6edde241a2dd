package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee carries the engine-relevant settings of one employee. Account,
// login and personal data live in the surrounding portal.
type Employee struct {
	ID        string
	CompanyID string
	FullName  string

	// ShiftLabel selects week 2 of a two-week rotating template when it
	// contains "spät" (matched case-insensitively as a substring).
	ShiftLabel string

	// Overtime ledger settings.
	ImportedOvertimeHours float64 // balance carried in from the previous system
	MaxOvertimeHours      float64
	MaxMinusHours         float64
	OvertimeBalance       float64 // aggregate, rewritten on every ledger recompute

	// Bonus settings.
	AnnualRevenueTarget decimal.Decimal

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}
